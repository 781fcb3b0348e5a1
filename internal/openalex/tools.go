// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"context"
	"net/http"

	"github.com/pdiddy/library-tools/internal/paging"
	"github.com/pdiddy/library-tools/internal/toolerr"
	"github.com/pdiddy/library-tools/internal/tools"
	"github.com/pdiddy/library-tools/pkg/types"
)

// WorksArgs are the arguments of search_works.
type WorksArgs struct {
	Query          string `json:"query"`
	Limit          int    `json:"limit"`
	Page           int    `json:"page"`
	YearFrom       *int   `json:"year_from"`
	OpenAccessOnly bool   `json:"open_access_only"`
}

// AuthorsArgs are the arguments of search_authors.
type AuthorsArgs struct {
	Name          string `json:"name"`
	InstitutionID string `json:"institution_id"`
	Limit         int    `json:"limit"`
	Page          int    `json:"page"`
}

// AuthorWorksArgs are the arguments of get_author_works.
type AuthorWorksArgs struct {
	AuthorID string `json:"author_id"`
	Limit    int    `json:"limit"`
	Page     int    `json:"page"`
}

// JournalsArgs are the arguments of search_journals.
type JournalsArgs struct {
	Name  string `json:"name"`
	Limit int    `json:"limit"`
	Page  int    `json:"page"`
}

// Tools exposes the academic-graph operations to a language model.
type Tools struct {
	Settings *types.Settings
	Client   *http.Client
}

func (t *Tools) client() (*Client, error) {
	return New(t.Settings.OpenAlex, t.Settings.HTTP, t.Client)
}

// SearchWorks implements search_works.
func (t *Tools) SearchWorks(ctx context.Context, args WorksArgs) string {
	c, err := t.client()
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	q := WorksQuery{Query: args.Query, Limit: args.Limit, Page: args.Page, OpenAccessOnly: args.OpenAccessOnly}
	if args.YearFrom != nil {
		q.YearFrom = *args.YearFrom
	}
	works, err := c.SearchWorks(ctx, q)
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	return FormatWorks(works, args.Query)
}

// SearchAuthors implements search_authors.
func (t *Tools) SearchAuthors(ctx context.Context, args AuthorsArgs) string {
	c, err := t.client()
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	authors, err := c.SearchAuthors(ctx, AuthorsQuery(args))
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	return FormatAuthors(authors, args.Name)
}

// GetAuthorWorks implements get_author_works.
func (t *Tools) GetAuthorWorks(ctx context.Context, args AuthorWorksArgs) string {
	c, err := t.client()
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	works, err := c.GetAuthorWorks(ctx, args.AuthorID, args.Limit, args.Page)
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	return FormatWorks(works, "author "+args.AuthorID)
}

// SearchJournals implements search_journals.
func (t *Tools) SearchJournals(ctx context.Context, args JournalsArgs) string {
	c, err := t.client()
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	journals, err := c.SearchJournals(ctx, args.Name, args.Limit, args.Page)
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	return FormatJournals(journals, args.Name)
}

// Definitions returns the tools this package provides.
func (t *Tools) Definitions() []tools.Tool {
	limit := func(r paging.Range) tools.Param {
		return tools.Param{Name: "limit", Type: "integer", Description: "Maximum results per page",
			Minimum: tools.Int(r.Min), Maximum: tools.Int(r.Max), Default: 10}
	}
	page := tools.Param{Name: "page", Type: "integer", Description: "Page number for pagination (1-based)", Minimum: tools.Int(1), Default: 1}

	return []tools.Tool{
		{
			Name: "search_works",
			Description: "Search OpenAlex for research papers, articles and other scholarly works. " +
				"Use it when the user asks for papers on a topic, recent research in a field, or open access publications. " +
				"Results include OpenAlex work IDs, authors, citation counts and DOIs.",
			InputSchema: tools.Schema(
				tools.Param{Name: "query", Type: "string", Description: "Research topic or keywords", Required: true},
				limit(paging.Works), page,
				tools.Param{Name: "year_from", Type: "integer", Description: "Only papers published from this year onwards (e.g. 2020)"},
				tools.Param{Name: "open_access_only", Type: "boolean", Description: "Return only open access papers", Default: false},
			),
			Handler: tools.Typed(func() WorksArgs { return WorksArgs{Limit: 10, Page: 1} }, t.SearchWorks),
		},
		{
			Name: "search_authors",
			Description: "Search OpenAlex for researchers by name, optionally at one institution. " +
				"Results include publication counts, citations, h-index and author IDs for get_author_works.",
			InputSchema: tools.Schema(
				tools.Param{Name: "name", Type: "string", Description: "Researcher name (full or partial)", Required: true},
				tools.Param{Name: "institution_id", Type: "string", Description: "OpenAlex institution ID to filter by (e.g. 'I121847817')"},
				limit(paging.Works), page,
			),
			Handler: tools.Typed(func() AuthorsArgs { return AuthorsArgs{Limit: 10, Page: 1} }, t.SearchAuthors),
		},
		{
			Name: "get_author_works",
			Description: "List publications by one researcher, newest first, using the OpenAlex author ID from search_authors " +
				"('A1234567890' or the full https://openalex.org/ URL).",
			InputSchema: tools.Schema(
				tools.Param{Name: "author_id", Type: "string", Description: "OpenAlex author ID", Required: true},
				limit(paging.AuthorWorks), page,
			),
			Handler: tools.Typed(func() AuthorWorksArgs { return AuthorWorksArgs{Limit: 10, Page: 1} }, t.GetAuthorWorks),
		},
		{
			Name: "search_journals",
			Description: "Search OpenAlex for journals and other publication venues by name. " +
				"Results include ISSN, publisher, publication counts and open access status.",
			InputSchema: tools.Schema(
				tools.Param{Name: "name", Type: "string", Description: "Journal name or keywords", Required: true},
				limit(paging.Works), page,
			),
			Handler: tools.Typed(func() JournalsArgs { return JournalsArgs{Limit: 10, Page: 1} }, t.SearchJournals),
		},
	}
}
