// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openalex queries the OpenAlex academic graph for works, authors
// and sources. Every operation fetches exactly one page.
package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/library-tools/internal/config"
	"github.com/pdiddy/library-tools/internal/httputil"
	"github.com/pdiddy/library-tools/internal/paging"
	"github.com/pdiddy/library-tools/internal/toolerr"
	"github.com/pdiddy/library-tools/pkg/types"
)

// anonymousEmail is sent as mailto when no contact email is configured.
const anonymousEmail = "anonymous@example.com"

// authorIDPrefix qualifies bare author ids.
const authorIDPrefix = "https://openalex.org/"

// WorksQuery holds the arguments of SearchWorks.
type WorksQuery struct {
	Query          string
	Limit          int
	Page           int
	YearFrom       int // zero means no year filter
	OpenAccessOnly bool
}

// AuthorsQuery holds the arguments of SearchAuthors.
type AuthorsQuery struct {
	Name          string
	InstitutionID string
	Limit         int
	Page          int
}

// Client talks to the OpenAlex REST API.
type Client struct {
	baseURL string
	email   string
	caller  *httputil.Caller
	timeout time.Duration
}

// New returns a Client. OpenAlex needs no credentials, so New never fails;
// the error return keeps the constructor shape of the other clients.
func New(cfg types.OpenAlexConfig, httpCfg types.HTTPConfig, client *http.Client) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = config.Defaults[config.OpenAlexBaseURL]
	}
	email := cfg.Email
	if email == "" {
		email = anonymousEmail
	}
	if client == nil {
		client = httputil.NewClient(httpCfg.Timeout)
	}
	timeout := httpCfg.Timeout
	if timeout <= 0 {
		timeout = httputil.DefaultTimeout
	}
	return &Client{
		baseURL: base,
		email:   email,
		caller: &httputil.Caller{
			Client:         client,
			UserAgent:      httpCfg.UserAgent,
			Service:        "OpenAlex",
			ConnectMessage: "Could not connect to OpenAlex. Please try again.",
		},
		timeout: timeout,
	}, nil
}

// SearchWorks runs a full-text works search.
func (c *Client) SearchWorks(ctx context.Context, q WorksQuery) ([]types.Work, error) {
	if strings.TrimSpace(q.Query) == "" {
		return nil, toolerr.NewValidationError("query", "query is required", "")
	}
	params := c.pageParams(paging.Works.Clamp(q.Limit), q.Page)
	params.Set("search", q.Query)

	var filters []string
	if q.YearFrom > 0 {
		filters = append(filters, fmt.Sprintf("from_publication_date:%04d-01-01", q.YearFrom))
	}
	if q.OpenAccessOnly {
		filters = append(filters, "is_oa:true")
	}
	if len(filters) > 0 {
		params.Set("filter", strings.Join(filters, ","))
	}

	works, err := fetchPage(ctx, c, "/works", params, parseWork)
	if err != nil {
		return nil, toolerr.Rewrap("OpenAlex search failed", err)
	}
	return works, nil
}

// SearchAuthors finds authors by display name, optionally restricted to an
// institution id such as "I121847817".
func (c *Client) SearchAuthors(ctx context.Context, q AuthorsQuery) ([]types.Author, error) {
	name := filterValue(q.Name)
	if name == "" {
		return nil, toolerr.NewValidationError("name", "name is required", "")
	}
	params := c.pageParams(paging.Works.Clamp(q.Limit), q.Page)

	filters := []string{"display_name.search:" + name}
	if q.InstitutionID != "" {
		filters = append(filters, "last_known_institutions.id:"+q.InstitutionID)
	}
	params.Set("filter", strings.Join(filters, ","))

	authors, err := fetchPage(ctx, c, "/authors", params, parseAuthor)
	if err != nil {
		return nil, toolerr.Rewrap("Author search failed", err)
	}
	return authors, nil
}

// filterValue makes s safe inside a filter expression, where a comma
// separates filters: "Lovelace, Ada" becomes "Lovelace Ada".
func filterValue(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, ",", " ")), " ")
}

// GetAuthorWorks lists an author's works, newest first. Bare ids such as
// "A5023888391" are expanded to full OpenAlex URLs.
func (c *Client) GetAuthorWorks(ctx context.Context, authorID string, limit, page int) ([]types.Work, error) {
	authorID = NormalizeAuthorID(authorID)
	if authorID == "" {
		return nil, toolerr.NewValidationError("author_id", "author_id is required", "")
	}
	params := c.pageParams(paging.AuthorWorks.Clamp(limit), page)
	params.Set("filter", "author.id:"+authorID)
	params.Set("sort", "publication_date:desc")

	works, err := fetchPage(ctx, c, "/works", params, parseWork)
	if err != nil {
		return nil, toolerr.Rewrap("Failed to get author works", err)
	}
	return works, nil
}

// SearchJournals searches sources (journals, repositories, conferences).
func (c *Client) SearchJournals(ctx context.Context, name string, limit, page int) ([]types.Journal, error) {
	if strings.TrimSpace(name) == "" {
		return nil, toolerr.NewValidationError("name", "name is required", "")
	}
	params := c.pageParams(paging.Works.Clamp(limit), page)
	params.Set("search", name)

	journals, err := fetchPage(ctx, c, "/sources", params, parseJournal)
	if err != nil {
		return nil, toolerr.Rewrap("Journal search failed", err)
	}
	return journals, nil
}

// NormalizeAuthorID trims id and qualifies it with the OpenAlex URL prefix
// unless it already is a URL.
func NormalizeAuthorID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || strings.HasPrefix(id, "https://") || strings.HasPrefix(id, "http://") {
		return id
	}
	return authorIDPrefix + id
}

func (c *Client) pageParams(perPage, page int) url.Values {
	return url.Values{
		"per-page": {strconv.Itoa(perPage)},
		"page":     {strconv.Itoa(paging.AtLeast(page, 1))},
		"mailto":   {c.email},
	}
}

// fetchPage GETs one result page and parses each record independently.
func fetchPage[T any](ctx context.Context, c *Client, path string, params url.Values, parse func(json.RawMessage) (T, error)) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var resp listResponse
	if err := c.caller.GetJSON(ctx, c.baseURL+path, params, nil, &resp); err != nil {
		return nil, err
	}
	out, _ := httputil.DecodeEach("openalex", resp.Results, parse)
	return out, nil
}

// OpenAlex list response envelope.
type listResponse struct {
	Meta    listMeta          `json:"meta"`
	Results []json.RawMessage `json:"results"`
}

type listMeta struct {
	Count   int `json:"count"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}
