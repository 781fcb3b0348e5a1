// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package libguides reads the Springshare LibGuides directory: the A-Z
// database list and the research guides published by a site.
package libguides

import (
	"bytes"
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
	"github.com/pdiddy/library-tools/internal/oauth"
	"github.com/pdiddy/library-tools/internal/paging"
	"github.com/pdiddy/library-tools/internal/textfmt"
	"github.com/pdiddy/library-tools/internal/toolerr"
	"github.com/pdiddy/library-tools/pkg/types"
)

// DatabaseQuery holds the arguments of SearchDatabases.
type DatabaseQuery struct {
	// Search filters by name, description and alternate names. It is
	// applied locally after the full list is fetched.
	Search    string
	SubjectID string
	TypeID    string
	Limit     int
}

// GuideQuery holds the arguments of SearchGuides. A non-zero GuideID
// fetches that guide and ignores Search.
type GuideQuery struct {
	Search      string
	GuideID     int
	Limit       int
	ExpandPages bool
}

// Client talks to the LibGuides API of one site. A Client caches its OAuth
// token and is safe for concurrent use.
type Client struct {
	cfg     types.LibGuidesConfig
	caller  *httputil.Caller
	tokens  *oauth.TokenSource
	timeout time.Duration
}

// New validates cfg and returns a Client. Site id, client id and client
// secret are all required.
func New(cfg types.LibGuidesConfig, httpCfg types.HTTPConfig, client *http.Client) (*Client, error) {
	if cfg.SiteID == "" {
		return nil, toolerr.MissingSetting(config.LibGuidesSiteID, "LibGuides site ID")
	}
	if cfg.ClientID == "" {
		return nil, toolerr.MissingSetting(config.LibGuidesClientID, "LibGuides client ID")
	}
	if cfg.ClientSecret == "" {
		return nil, toolerr.MissingSetting(config.LibGuidesClientSecret, "LibGuides client secret")
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = config.Defaults[config.LibGuidesBaseURL]
	}
	if client == nil {
		client = httputil.NewClient(httpCfg.Timeout)
	}
	timeout := httpCfg.Timeout
	if timeout <= 0 {
		timeout = httputil.DefaultTimeout
	}

	return &Client{
		cfg: cfg,
		caller: &httputil.Caller{
			Client:         client,
			UserAgent:      httpCfg.UserAgent,
			Service:        "LibGuides",
			ConnectMessage: "Could not connect to LibGuides. Please try again.",
		},
		tokens: oauth.NewTokenSource(oauth.Config{
			TokenURL:     cfg.BaseURL + "/oauth/token",
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Service:      "LibGuides",
		}, client),
		timeout: timeout,
	}, nil
}

// SearchDatabases fetches the A-Z list, filters it by q.Search
// (case-insensitive substring of name, description or any alternate name)
// and keeps the first q.Limit matches.
func (c *Client) SearchDatabases(ctx context.Context, q DatabaseQuery) (*types.DatabaseSearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := url.Values{
		"site_id": {c.cfg.SiteID},
		"expand":  {"subjects,types,vendors"},
	}
	if q.SubjectID != "" {
		params.Set("subject_id", q.SubjectID)
	}
	if q.TypeID != "" {
		params.Set("type_id", q.TypeID)
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	var raws []json.RawMessage
	if err := c.get(ctx, token, "/az", params, &raws); err != nil {
		return nil, toolerr.RewrapStatus("LibGuides database search failed",
			"Could not search databases. Please try again.", err)
	}

	databases, _ := httputil.DecodeEach("libguides", raws, parseDatabase)
	if needle := strings.ToLower(strings.TrimSpace(q.Search)); needle != "" {
		kept := databases[:0]
		for _, db := range databases {
			if matchesDatabase(db, needle) {
				kept = append(kept, db)
			}
		}
		databases = kept
	}
	databases = textfmt.Head(databases, paging.Databases.Clamp(q.Limit))

	return &types.DatabaseSearchResult{Databases: databases, Total: len(databases)}, nil
}

// SearchGuides searches published and unlisted guides, or fetches a single
// guide when q.GuideID is set. The upstream returns an object for a single
// guide and an array for a search; both become a list.
func (c *Client) SearchGuides(ctx context.Context, q GuideQuery) (*types.GuideSearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := url.Values{
		"site_id": {c.cfg.SiteID},
		"status":  {"1,2"},
	}
	if q.ExpandPages {
		params.Set("expand", "pages.boxes")
	}

	path := "/guides"
	if q.GuideID != 0 {
		path += "/" + strconv.Itoa(q.GuideID)
	} else if search := strings.TrimSpace(q.Search); search != "" {
		params.Set("search_terms", search)
		params.Set("sort_by", "relevance")
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	var body json.RawMessage
	if err := c.get(ctx, token, path, params, &body); err != nil {
		return nil, toolerr.RewrapStatus("LibGuides search failed",
			"Could not search guides. Please try again.", err)
	}

	raws, err := asList(body)
	if err != nil {
		return nil, toolerr.NewAPIError(fmt.Sprintf("parsing LibGuides guides: %v", err), 0,
			"An error occurred while searching guides.").Wrap(err)
	}
	raws = textfmt.Head(raws, paging.Guides.Clamp(q.Limit))

	guides, _ := httputil.DecodeEach("libguides", raws, parseGuide)
	return &types.GuideSearchResult{Guides: guides, Total: len(guides)}, nil
}

// get issues an authorized GET. A 401 drops the cached token so the next
// call authenticates again.
func (c *Client) get(ctx context.Context, token, path string, params url.Values, out any) error {
	header := http.Header{"Authorization": {"Bearer " + token}}
	err := c.caller.GetJSON(ctx, c.cfg.BaseURL+path, params, header, out)
	if toolerr.StatusCode(err) == http.StatusUnauthorized {
		c.tokens.Invalidate()
	}
	return err
}

// asList normalizes a JSON object, array or null into a list of items.
func asList(body json.RawMessage) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		return []json.RawMessage{}, nil
	case trimmed[0] == '[':
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	case trimmed[0] == '{':
		return []json.RawMessage{trimmed}, nil
	}
	return nil, fmt.Errorf("unexpected JSON value %.20q", trimmed)
}

func matchesDatabase(db types.Database, needle string) bool {
	if strings.Contains(strings.ToLower(db.Name), needle) ||
		strings.Contains(strings.ToLower(db.Description), needle) {
		return true
	}
	for _, alt := range db.AltNames {
		if strings.Contains(strings.ToLower(alt), needle) {
			return true
		}
	}
	return false
}
