// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package worldcat queries the OCLC WorldCat Metadata and Discovery APIs:
// identifier lookup, keyword book search, classification, full records and
// holdings.
package worldcat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/library-tools/internal/config"
	"github.com/pdiddy/library-tools/internal/httputil"
	"github.com/pdiddy/library-tools/internal/oauth"
	"github.com/pdiddy/library-tools/internal/toolerr"
	"github.com/pdiddy/library-tools/pkg/types"
)

// OAuth scopes per API.
const (
	MetadataScope  = "WorldCatMetadataAPI"
	DiscoveryScope = "wcapi:view_holdings wcapi:view_institution_holdings"
)

// Client talks to WorldCat on behalf of one OCLC API key. Tokens are cached
// for the lifetime of the Client.
type Client struct {
	cfg       types.WorldCatConfig
	caller    *httputil.Caller
	metadata  *oauth.TokenSource
	discovery *oauth.TokenSource

	// timeout bounds each upstream request. Lookups issue several
	// requests and the holdings walk may issue many.
	timeout time.Duration
}

// New validates cfg and returns a Client. Client id and secret are required.
func New(cfg types.WorldCatConfig, httpCfg types.HTTPConfig, client *http.Client) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, toolerr.MissingSetting(config.OCLCClientID, "OCLC client ID")
	}
	if cfg.ClientSecret == "" {
		return nil, toolerr.MissingSetting(config.OCLCClientSecret, "OCLC client secret")
	}
	cfg.TokenURL = orDefault(cfg.TokenURL, config.OCLCTokenURL)
	cfg.MetadataURL = orDefault(cfg.MetadataURL, config.OCLCMetadataURL)
	cfg.DiscoveryURL = orDefault(cfg.DiscoveryURL, config.OCLCDiscoveryURL)
	if client == nil {
		client = httputil.NewClient(httpCfg.Timeout)
	}
	timeout := httpCfg.Timeout
	if timeout <= 0 {
		timeout = httputil.DefaultTimeout
	}

	tokens := func(scope string) *oauth.TokenSource {
		return oauth.NewTokenSource(oauth.Config{
			TokenURL:     cfg.TokenURL,
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scope:        scope,
			BasicAuth:    true,
			Service:      "WorldCat",
		}, client)
	}

	return &Client{
		cfg: cfg,
		caller: &httputil.Caller{
			Client:         client,
			UserAgent:      httpCfg.UserAgent,
			Service:        "WorldCat",
			ConnectMessage: "Could not connect to WorldCat. Please try again.",
		},
		metadata:  tokens(MetadataScope),
		discovery: tokens(DiscoveryScope),
		timeout:   timeout,
	}, nil
}

// GetClassification returns the most popular LC and Dewey numbers for an
// OCLC number, each with its full ranked list.
func (c *Client) GetClassification(ctx context.Context, oclcNumber string) (*types.WorldCatClassification, error) {
	oclcNumber, err := requireOCLC(oclcNumber)
	if err != nil {
		return nil, err
	}

	var resp classificationResponse
	if err := c.getMetadata(ctx, "/search/classification-bibs/"+url.PathEscape(oclcNumber), nil, &resp); err != nil {
		return nil, toolerr.Rewrap("Classification lookup failed", err)
	}

	out := &types.WorldCatClassification{
		OCLCNumber: oclcNumber,
		LCAll:      resp.LC.MostPopular.Slice(),
		DeweyAll:   resp.Dewey.MostPopular.Slice(),
	}
	out.LC = resp.LC.MostPopular.First()
	out.Dewey = resp.Dewey.MostPopular.First()
	return out, nil
}

// GetFullBib returns the complete bibliographic record for an OCLC number.
func (c *Client) GetFullBib(ctx context.Context, oclcNumber string) (*types.WorldCatFullBib, error) {
	oclcNumber, err := requireOCLC(oclcNumber)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.getMetadata(ctx, "/search/bibs/"+url.PathEscape(oclcNumber), nil, &raw); err != nil {
		return nil, toolerr.Rewrap("Full bib lookup failed", err)
	}
	bib, err := parseFullBib(raw, oclcNumber)
	if err != nil {
		return nil, toolerr.NewAPIError("parsing WorldCat bib: "+err.Error(), 0,
			"WorldCat returned a record that could not be read.").Wrap(err)
	}
	return bib, nil
}

// getMetadata issues an authorized GET against the Metadata API.
func (c *Client) getMetadata(ctx context.Context, path string, params url.Values, out any) error {
	return c.get(ctx, c.metadata, c.cfg.MetadataURL+path, params, out)
}

// getDiscovery issues an authorized GET against the Discovery API.
func (c *Client) getDiscovery(ctx context.Context, path string, params url.Values, out any) error {
	return c.get(ctx, c.discovery, c.cfg.DiscoveryURL+path, params, out)
}

func (c *Client) get(ctx context.Context, tokens *oauth.TokenSource, target string, params url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	token, err := tokens.Token(ctx)
	if err != nil {
		return err
	}
	header := http.Header{"Authorization": {"Bearer " + token}}
	err = c.caller.GetJSON(ctx, target, params, header, out)
	if toolerr.StatusCode(err) == http.StatusUnauthorized {
		tokens.Invalidate()
	}
	return err
}

func requireOCLC(n string) (string, error) {
	n = strings.TrimSpace(n)
	if n == "" {
		return "", toolerr.NewValidationError("oclc_number", "oclc_number is required", "")
	}
	return n, nil
}

func orDefault(v, key string) string {
	v = strings.TrimRight(strings.TrimSpace(v), "/")
	if v == "" {
		return config.Defaults[key]
	}
	return v
}
