// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package libguides

import (
	"context"
	"net/http"
	"sync"

	"github.com/pdiddy/library-tools/internal/paging"
	"github.com/pdiddy/library-tools/internal/toolerr"
	"github.com/pdiddy/library-tools/internal/tools"
	"github.com/pdiddy/library-tools/pkg/types"
)

// DatabasesArgs are the arguments of search_databases.
type DatabasesArgs struct {
	Search    string `json:"search"`
	SubjectID string `json:"subject_id"`
	TypeID    string `json:"type_id"`
	Limit     int    `json:"limit"`
}

// GuidesArgs are the arguments of search_guides.
type GuidesArgs struct {
	Search  string `json:"search"`
	GuideID int    `json:"guide_id"`
	Limit   int    `json:"limit"`
}

// Tools exposes the guides directory to a language model. The underlying
// Client is built on first use and kept, so its token cache spans calls.
type Tools struct {
	Settings *types.Settings
	Client   *http.Client

	mu     sync.Mutex
	cached *Client
}

func (t *Tools) client() (*Client, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cached != nil {
		return t.cached, nil
	}
	c, err := New(t.Settings.LibGuides, t.Settings.HTTP, t.Client)
	if err != nil {
		return nil, err
	}
	t.cached = c
	return c, nil
}

// SearchDatabases implements search_databases.
func (t *Tools) SearchDatabases(ctx context.Context, args DatabasesArgs) string {
	c, err := t.client()
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	res, err := c.SearchDatabases(ctx, DatabaseQuery(args))
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	return FormatDatabases(res, args.Search)
}

// SearchGuides implements search_guides.
func (t *Tools) SearchGuides(ctx context.Context, args GuidesArgs) string {
	c, err := t.client()
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	res, err := c.SearchGuides(ctx, GuideQuery{Search: args.Search, GuideID: args.GuideID, Limit: args.Limit, ExpandPages: true})
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	return FormatGuides(res, args.Search)
}

// Definitions returns the tools this package provides.
func (t *Tools) Definitions() []tools.Tool {
	limit := func(r paging.Range, def int) tools.Param {
		return tools.Param{Name: "limit", Type: "integer", Description: "Maximum results to return",
			Minimum: tools.Int(r.Min), Maximum: tools.Int(r.Max), Default: def}
	}
	return []tools.Tool{
		{
			Name: "search_databases",
			Description: "Search the library's A-Z list of research databases (LibGuides). " +
				"Use it when the user asks whether a database is available (\"Do we have JSTOR?\"), wants databases for a subject, " +
				"or before recommending a database. Search by name ('ProQuest') or topic ('nursing'); results include access URLs " +
				"and whether off-campus authentication is required.",
			InputSchema: tools.Schema(
				tools.Param{Name: "search", Type: "string", Description: "Database name or topic"},
				tools.Param{Name: "subject_id", Type: "string", Description: "LibGuides subject ID to filter by"},
				tools.Param{Name: "type_id", Type: "string", Description: "LibGuides database type ID to filter by"},
				limit(paging.Databases, 20),
			),
			Handler: tools.Typed(func() DatabasesArgs { return DatabasesArgs{Limit: 20} }, t.SearchDatabases),
		},
		{
			Name: "search_guides",
			Description: "Search the library's research guides (LibGuides) by subject, course or topic, or fetch one guide by ID. " +
				"Use it when the user needs help starting research on a topic or asks whether a guide exists for a course ('ENG 101'). " +
				"Multiple words are OR-ed. Results list each guide's pages with links.",
			InputSchema: tools.Schema(
				tools.Param{Name: "search", Type: "string", Description: "Subject, course or topic"},
				tools.Param{Name: "guide_id", Type: "integer", Description: "Specific guide ID to fetch"},
				limit(paging.Guides, 10),
			),
			Handler: tools.Typed(func() GuidesArgs { return GuidesArgs{Limit: 10} }, t.SearchGuides),
		},
	}
}
