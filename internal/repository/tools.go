// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package repository

import (
	"context"
	"net/http"

	"github.com/pdiddy/library-tools/internal/httputil"
	"github.com/pdiddy/library-tools/internal/paging"
	"github.com/pdiddy/library-tools/internal/toolerr"
	"github.com/pdiddy/library-tools/internal/tools"
	"github.com/pdiddy/library-tools/pkg/types"
)

const defaultLimit = 50

// SearchArgs are the arguments of search_repository. Year accepts a string
// or a number.
type SearchArgs struct {
	Query      string              `json:"query"`
	Collection string              `json:"collection"`
	Year       httputil.FlexString `json:"year"`
	Limit      int                 `json:"limit"`
	Start      int                 `json:"start"`
}

// LatestArgs are the arguments of get_latest_repository_works.
type LatestArgs struct {
	Collection string `json:"collection"`
	Limit      int    `json:"limit"`
	Start      int    `json:"start"`
}

// DetailsArgs are the arguments of get_repository_work_details.
type DetailsArgs struct {
	ItemURL string `json:"item_url"`
}

// Tools exposes the institutional repository to a language model.
type Tools struct {
	Settings *types.Settings
	Client   *http.Client
}

func (t *Tools) client() (*Client, error) {
	return New(t.Settings.Repository, t.Settings.HTTP, t.Client)
}

// Search implements search_repository.
func (t *Tools) Search(ctx context.Context, args SearchArgs) string {
	c, err := t.client()
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	res, err := c.Search(ctx, SearchParams{
		Query:      args.Query,
		Collection: args.Collection,
		Year:       string(args.Year),
		Limit:      args.Limit,
		Start:      args.Start,
	})
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	return FormatWorks(res, false)
}

// Latest implements get_latest_repository_works.
func (t *Tools) Latest(ctx context.Context, args LatestArgs) string {
	c, err := t.client()
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	res, err := c.LatestWorks(ctx, args.Collection, args.Limit, args.Start)
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	return FormatWorks(res, false)
}

// Details implements get_repository_work_details.
func (t *Tools) Details(ctx context.Context, args DetailsArgs) string {
	c, err := t.client()
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	work, err := c.Details(ctx, args.ItemURL)
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	return FormatDetails(work, args.ItemURL)
}

// Definitions returns the tools this package provides.
func (t *Tools) Definitions() []tools.Tool {
	limit := tools.Param{Name: "limit", Type: "integer", Description: "Maximum results to return",
		Minimum: tools.Int(paging.Repository.Min), Maximum: tools.Int(paging.Repository.Max), Default: defaultLimit}
	start := tools.Param{Name: "start", Type: "integer",
		Description: "Starting offset for pagination (0-based): 0 for the first page, 50 for the second", Minimum: tools.Int(0), Default: 0}
	collection := tools.Param{Name: "collection", Type: "string", Description: "Collection code (e.g. 'gc_etds', 'faculty_pubs')"}

	return []tools.Tool{
		{
			Name: "search_repository",
			Description: "Search the institutional repository (bePress Digital Commons) for theses, dissertations, " +
				"faculty publications and other scholarly output. Leave query empty to list a collection. " +
				"Results include all authors, full-text links and collection codes.",
			InputSchema: tools.Schema(
				tools.Param{Name: "query", Type: "string", Description: "Keywords to search in titles and abstracts"},
				collection,
				tools.Param{Name: "year", Type: "string", Description: "Publication year (e.g. '2023')"},
				limit, start,
			),
			Handler: tools.Typed(func() SearchArgs { return SearchArgs{Limit: defaultLimit} }, t.Search),
		},
		{
			Name: "get_latest_repository_works",
			Description: "List the works most recently added to the institutional repository, newest first, " +
				"optionally within one collection. Use it for questions like \"What are the latest theses?\"",
			InputSchema: tools.Schema(collection, limit, start),
			Handler:     tools.Typed(func() LatestArgs { return LatestArgs{Limit: defaultLimit} }, t.Latest),
		},
		{
			Name: "get_repository_work_details",
			Description: "Get the full record of one repository work (abstract, keywords, venue, advisor) " +
				"by the landing-page URL returned from search_repository.",
			InputSchema: tools.Schema(
				tools.Param{Name: "item_url", Type: "string", Description: "Full URL of the repository work", Required: true},
			),
			Handler: tools.Typed(func() DetailsArgs { return DetailsArgs{} }, t.Details),
		},
	}
}
