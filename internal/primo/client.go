// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package primo searches an Ex Libris Primo discovery index and renders the
// hits as compact text.
package primo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/library-tools/internal/config"
	"github.com/pdiddy/library-tools/internal/httputil"
	"github.com/pdiddy/library-tools/internal/paging"
	"github.com/pdiddy/library-tools/internal/toolerr"
	"github.com/pdiddy/library-tools/pkg/types"
)

// Field selects which index a query runs against.
type Field string

// Searchable fields.
const (
	FieldAny     Field = "any"
	FieldTitle   Field = "title"
	FieldCreator Field = "creator"
	FieldSubject Field = "subject"
	FieldISBN    Field = "isbn"
	FieldISSN    Field = "issn"
)

// Fields lists every valid Field.
var Fields = []Field{FieldAny, FieldTitle, FieldCreator, FieldSubject, FieldISBN, FieldISSN}

// Operator selects flexible or exact matching.
type Operator string

// Match operators.
const (
	OperatorContains Operator = "contains"
	OperatorExact    Operator = "exact"
)

// Operators lists every valid Operator.
var Operators = []Operator{OperatorContains, OperatorExact}

const defaultPermalinkHost = "primo.exlibrisgroup.com"

// SearchParams holds the arguments of one catalog search. Zero Field and
// Operator select FieldAny and OperatorContains.
type SearchParams struct {
	Query        string
	Field        Field
	Operator     Operator
	Limit        int
	Start        int
	JournalsOnly bool
}

// Client queries one Primo view.
type Client struct {
	cfg     types.PrimoConfig
	caller  *httputil.Caller
	timeout time.Duration
}

// New validates cfg and returns a Client. A missing API key or view id is a
// *toolerr.ConfigError.
func New(cfg types.PrimoConfig, httpCfg types.HTTPConfig, client *http.Client) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, toolerr.MissingSetting(config.PrimoAPIKey, "Primo API key")
	}
	if cfg.VID == "" {
		return nil, toolerr.MissingSetting(config.PrimoVID, "Primo view ID")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = config.Defaults[config.PrimoBaseURL]
	}
	if client == nil {
		client = httputil.NewClient(httpCfg.Timeout)
	}
	return &Client{
		cfg: cfg,
		caller: &httputil.Caller{
			Client:         client,
			UserAgent:      httpCfg.UserAgent,
			Service:        "Primo",
			ConnectMessage: "Could not connect to the library catalog. Please try again.",
		},
		timeout: timeoutOrDefault(httpCfg.Timeout),
	}, nil
}

// Search runs one catalog search. Limit is clamped to [1,100] and Start to
// >= 0 without error; an empty query or unknown field/operator is a
// *toolerr.ValidationError.
func (c *Client) Search(ctx context.Context, p SearchParams) (*types.CatalogSearchResult, error) {
	query := strings.TrimSpace(p.Query)
	if query == "" {
		return nil, toolerr.NewValidationError("query", "query is required", "")
	}
	field, err := ParseField(string(p.Field))
	if err != nil {
		return nil, err
	}
	op, err := ParseOperator(string(p.Operator))
	if err != nil {
		return nil, err
	}

	scope := c.cfg.Scope
	if scope == "" {
		scope = "Everything"
	}
	params := url.Values{
		"q":      {fmt.Sprintf("%s,%s,%s", field, op, query)},
		"vid":    {c.cfg.VID},
		"scope":  {scope},
		"apikey": {c.cfg.APIKey},
		"limit":  {strconv.Itoa(paging.Catalog.Clamp(p.Limit))},
		"offset": {strconv.Itoa(paging.AtLeast(p.Start, 0))},
		"sort":   {"rank"},
	}
	if p.JournalsOnly {
		params.Set("tab", "jsearch_slot")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var resp searchResponse
	if err := c.caller.GetJSON(ctx, c.cfg.BaseURL, params, nil, &resp); err != nil {
		return nil, err
	}

	docs, _ := httputil.DecodeEach("primo", resp.Docs, c.parseDocument)
	return &types.CatalogSearchResult{
		Total:     int(resp.Info.Total),
		Documents: docs,
		Query:     p.Query,
	}, nil
}

// ParseField maps a field name (case-insensitive, empty for any) to a Field.
func ParseField(s string) (Field, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FieldAny, nil
	}
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", toolerr.NewValidationError("field",
		fmt.Sprintf("unknown search field %q", s),
		fmt.Sprintf("Invalid input: field must be one of %s.", joinNames(Fields)))
}

// ParseOperator maps an operator name (case-insensitive, empty for contains)
// to an Operator.
func ParseOperator(s string) (Operator, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return OperatorContains, nil
	}
	for _, o := range Operators {
		if string(o) == s {
			return o, nil
		}
	}
	return "", toolerr.NewValidationError("operator",
		fmt.Sprintf("unknown search operator %q", s),
		fmt.Sprintf("Invalid input: operator must be one of %s.", joinNames(Operators)))
}

// Permalink builds the full-display link for a record, or "" when any part
// is missing.
func (c *Client) Permalink(recordID, searchContext string) string {
	if recordID == "" || searchContext == "" || c.cfg.VID == "" {
		return ""
	}
	return fmt.Sprintf("https://%s/discovery/fulldisplay?docid=%s&context=%s&vid=%s",
		permalinkHost(c.cfg), url.QueryEscape(recordID), url.QueryEscape(searchContext), url.QueryEscape(c.cfg.VID))
}

// permalinkHost picks the host whose marker occurs in the view id. Markers
// are tried in lexical order; the configured default applies otherwise.
func permalinkHost(cfg types.PrimoConfig) string {
	vid := strings.ToLower(cfg.VID)
	markers := make([]string, 0, len(cfg.PermalinkHosts))
	for m := range cfg.PermalinkHosts {
		markers = append(markers, m)
	}
	sort.Strings(markers)
	for _, m := range markers {
		if m != "" && strings.Contains(vid, strings.ToLower(m)) {
			return cfg.PermalinkHosts[m]
		}
	}
	if cfg.PermalinkHost != "" {
		return cfg.PermalinkHost
	}
	return defaultPermalinkHost
}

func joinNames[T ~string](list []T) string {
	return strings.Join(names(list), ", ")
}

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return httputil.DefaultTimeout
	}
	return d
}

// Primo search API JSON structures.
type searchResponse struct {
	Info searchInfo        `json:"info"`
	Docs []json.RawMessage `json:"docs"`
}

type searchInfo struct {
	Total httputil.FlexInt `json:"total"`
}
