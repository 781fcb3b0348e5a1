// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package repository searches a bePress Digital Commons institutional
// repository through its content-out query API.
package repository

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

// searchFields is the field list requested by searches.
const searchFields = "title,author,publication_year,publication_date,document_type,url,fulltext_url," +
	"parent_link,abstract,keywords,subject,publication_title,advisor,committee_member"

// SearchParams holds the arguments of Search. Every filter is optional.
type SearchParams struct {
	Query      string
	Collection string

	// Year is applied only when it is all digits; anything else is ignored.
	Year  string
	Limit int
	Start int
}

// Client queries one repository.
type Client struct {
	baseURL string
	apiKey  string

	// collectionTemplate has {domain} already substituted.
	collectionTemplate string
	caller             *httputil.Caller
	timeout            time.Duration
}

// New validates cfg and returns a Client. Base URL and API key are required.
func New(cfg types.RepositoryConfig, httpCfg types.HTTPConfig, client *http.Client) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, toolerr.MissingSetting(config.RepositoryBaseURL, "Repository base URL")
	}
	if cfg.APIKey == "" {
		return nil, toolerr.MissingSetting(config.RepositoryAPIKey, "Repository API key")
	}
	if client == nil {
		client = httputil.NewClient(httpCfg.Timeout)
	}
	timeout := httpCfg.Timeout
	if timeout <= 0 {
		timeout = httputil.DefaultTimeout
	}

	tmpl := cfg.CollectionURLTemplate
	if tmpl == "" {
		tmpl = config.Defaults[config.RepositoryCollectionURLTemplate]
	}
	domain := base[strings.LastIndex(base, "/")+1:]

	return &Client{
		baseURL:            base,
		apiKey:             cfg.APIKey,
		collectionTemplate: strings.ReplaceAll(tmpl, "{domain}", domain),
		caller: &httputil.Caller{
			Client:         client,
			UserAgent:      httpCfg.UserAgent,
			Service:        "Repository",
			ConnectMessage: "Could not connect to repository. Please try again.",
		},
		timeout: timeout,
	}, nil
}

// Search runs a repository query. Limit is clamped to [1,1000] and Start
// to >= 0.
func (c *Client) Search(ctx context.Context, p SearchParams) (*types.RepositorySearchResult, error) {
	params := url.Values{
		"limit":  {strconv.Itoa(paging.Repository.Clamp(p.Limit))},
		"start":  {strconv.Itoa(paging.AtLeast(p.Start, 0))},
		"fields": {searchFields},
	}
	if p.Query != "" {
		params.Set("q", p.Query)
	}
	if p.Collection != "" {
		params.Set("parent_link", c.CollectionURL(p.Collection))
	}
	if isDigits(p.Year) {
		params.Set("publication_year", p.Year)
	}

	resp, err := c.query(ctx, params)
	if err != nil {
		return nil, toolerr.RewrapStatus("Repository search failed", "Could not search repository. Please try again.", err)
	}

	works, _ := httputil.DecodeEach("repository", resp.Results, func(raw json.RawMessage) (types.RepositoryWork, error) {
		return parseWork(raw, false)
	})
	return &types.RepositorySearchResult{Works: works, Total: int(resp.QueryMeta.TotalHits), Query: p.Query}, nil
}

// LatestWorks lists the most recently added works. It is Search without a
// query; the upstream orders unqueried results newest first.
func (c *Client) LatestWorks(ctx context.Context, collection string, limit, start int) (*types.RepositorySearchResult, error) {
	return c.Search(ctx, SearchParams{Collection: collection, Limit: limit, Start: start})
}

// Details fetches the work whose landing URL is itemURL, with abstract and
// keywords populated. It returns nil, nil when no work matches.
func (c *Client) Details(ctx context.Context, itemURL string) (*types.RepositoryWork, error) {
	itemURL = strings.TrimSpace(itemURL)
	if itemURL == "" {
		return nil, toolerr.NewValidationError("item_url", "item_url is required", "")
	}
	params := url.Values{
		"q":             {`url:"` + itemURL + `"`},
		"select_fields": {"all"},
		"limit":         {"1"},
	}

	resp, err := c.query(ctx, params)
	if err != nil {
		return nil, toolerr.RewrapStatus("Repository get details failed", "Could not retrieve work details.", err)
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	work, err := parseWork(resp.Results[0], true)
	if err != nil {
		return nil, toolerr.NewAPIError(fmt.Sprintf("parsing repository work: %v", err), 0,
			"An error occurred while retrieving work details.").Wrap(err)
	}
	return &work, nil
}

// CollectionURL builds the parent_link value for a collection code from
// the configured template, e.g. "http://academicworks.cuny.edu/gc_etds".
func (c *Client) CollectionURL(collection string) string {
	return strings.ReplaceAll(c.collectionTemplate, "{collection}", collection)
}

func (c *Client) query(ctx context.Context, params url.Values) (*queryResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	header := http.Header{"Authorization": {c.apiKey}}
	var resp queryResponse
	if err := c.caller.GetJSON(ctx, c.baseURL+"/query", params, header, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Repository query API JSON structures.
type queryResponse struct {
	QueryMeta queryMeta         `json:"query_meta"`
	Results   []json.RawMessage `json:"results"`
}

type queryMeta struct {
	TotalHits httputil.FlexInt `json:"total_hits"`
	Start     httputil.FlexInt `json:"start"`
	Limit     httputil.FlexInt `json:"limit"`
}
