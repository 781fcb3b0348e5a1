// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package worldcat

import (
	"context"
	"net/http"
	"sync"

	"github.com/pdiddy/library-tools/internal/paging"
	"github.com/pdiddy/library-tools/internal/toolerr"
	"github.com/pdiddy/library-tools/internal/tools"
	"github.com/pdiddy/library-tools/pkg/types"
)

// LookupArgs are the arguments of lookup_worldcat_isbn.
type LookupArgs struct {
	DOI               string   `json:"doi"`
	Title             string   `json:"title"`
	Author            string   `json:"author"`
	Year              int      `json:"year"`
	YearFrom          int      `json:"year_from"`
	YearTo            int      `json:"year_to"`
	ISBN              string   `json:"isbn"`
	FetchHoldings     bool     `json:"fetch_holdings"`
	HoldingsLimit     int      `json:"holdings_limit"`
	CheckInstitutions []string `json:"check_institutions"`
}

// SearchArgs are the arguments of search_worldcat_books.
type SearchArgs struct {
	Query         string `json:"query"`
	YearFrom      int    `json:"year_from"`
	YearTo        int    `json:"year_to"`
	Language      string `json:"language"`
	Limit         int    `json:"limit"`
	Offset        int    `json:"offset"`
	FetchHoldings bool   `json:"fetch_holdings"`
	HoldingsLimit int    `json:"holdings_limit"`
}

// OCLCArgs are the arguments of the tools keyed by OCLC number.
type OCLCArgs struct {
	OCLCNumber string `json:"oclc_number"`
}

// Tools exposes WorldCat to a language model. The underlying Client, and
// with it the OAuth tokens, is built on first use and then reused.
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
	c, err := New(t.Settings.WorldCat, t.Settings.HTTP, t.Client)
	if err != nil {
		return nil, err
	}
	t.cached = c
	return c, nil
}

// Lookup implements lookup_worldcat_isbn.
func (t *Tools) Lookup(ctx context.Context, args LookupArgs) string {
	c, err := t.client()
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	p := LookupParams{
		ISBN:     args.ISBN,
		DOI:      args.DOI,
		Title:    args.Title,
		Author:   args.Author,
		Year:     args.Year,
		YearFrom: args.YearFrom,
		YearTo:   args.YearTo,
		Holdings: HoldingsOptions{Fetch: args.FetchHoldings, Limit: args.HoldingsLimit, Institutions: args.CheckInstitutions},
	}
	book, err := c.LookupISBN(ctx, p)
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	return FormatLookup(book, p)
}

// Search implements search_worldcat_books.
func (t *Tools) Search(ctx context.Context, args SearchArgs) string {
	c, err := t.client()
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	books, err := c.SearchBooks(ctx, BookQuery{
		Query:    args.Query,
		YearFrom: args.YearFrom,
		YearTo:   args.YearTo,
		Language: args.Language,
		Limit:    args.Limit,
		Offset:   args.Offset,
		Holdings: HoldingsOptions{Fetch: args.FetchHoldings, Limit: args.HoldingsLimit},
	})
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	return FormatBooks(books, args.Query)
}

// Classification implements get_worldcat_classification.
func (t *Tools) Classification(ctx context.Context, args OCLCArgs) string {
	c, err := t.client()
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	cls, err := c.GetClassification(ctx, args.OCLCNumber)
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	return FormatClassification(cls)
}

// FullRecord implements get_worldcat_full_record.
func (t *Tools) FullRecord(ctx context.Context, args OCLCArgs) string {
	c, err := t.client()
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	bib, err := c.GetFullBib(ctx, args.OCLCNumber)
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	return FormatFullBib(bib)
}

// Definitions returns the tools this package provides.
func (t *Tools) Definitions() []tools.Tool {
	fetchHoldings := tools.Param{Name: "fetch_holdings", Type: "boolean",
		Description: "Also fetch the libraries holding the item (slower, extra requests)", Default: false}
	holdingsLimit := tools.Param{Name: "holdings_limit", Type: "integer",
		Description: "Maximum holding institutions to fetch; omit to fetch all", Minimum: tools.Int(1)}
	oclc := tools.Param{Name: "oclc_number", Type: "string",
		Description: "OCLC number (e.g. '742206236') from lookup_worldcat_isbn or search_worldcat_books", Required: true}

	return []tools.Tool{
		{
			Name: "lookup_worldcat_isbn",
			Description: "Look up a book in WorldCat and return its authoritative ISBNs (all variants), OCLC number and core metadata. " +
				"Tries ISBN first, then DOI, then title with optional author and year. Use it to find or verify an ISBN, " +
				"or to check which libraries hold a book.",
			InputSchema: tools.Schema(
				tools.Param{Name: "isbn", Type: "string", Description: "ISBN to verify or enrich"},
				tools.Param{Name: "doi", Type: "string", Description: "DOI of the book (e.g. '10.1234/example')"},
				tools.Param{Name: "title", Type: "string", Description: "Book title"},
				tools.Param{Name: "author", Type: "string", Description: "Author name"},
				tools.Param{Name: "year", Type: "integer", Description: "Exact publication year"},
				tools.Param{Name: "year_from", Type: "integer", Description: "Earliest publication year"},
				tools.Param{Name: "year_to", Type: "integer", Description: "Latest publication year"},
				fetchHoldings, holdingsLimit,
				tools.Param{Name: "check_institutions", Type: "array", Items: "string",
					Description: "Only report holdings at these OCLC institution symbols (e.g. ['NYP', 'DLC']); omit for all"},
			),
			Handler: tools.Typed(func() LookupArgs { return LookupArgs{} }, t.Lookup),
		},
		{
			Name: "search_worldcat_books",
			Description: "Search WorldCat, the global library catalog, for books by keyword or subject, with optional year range and language. " +
				"Each result includes ISBNs and an OCLC number for the classification and full-record tools. " +
				"Paginate with offset (1-based): offset=1 for the first page, offset=51 for the second with limit=50.",
			InputSchema: tools.Schema(
				tools.Param{Name: "query", Type: "string", Description: "Keywords or subject (e.g. 'climate justice')", Required: true},
				tools.Param{Name: "year_from", Type: "integer", Description: "Earliest publication year"},
				tools.Param{Name: "year_to", Type: "integer", Description: "Latest publication year"},
				tools.Param{Name: "language", Type: "string", Description: "ISO 639-2 language code (e.g. 'eng', 'spa')"},
				tools.Param{Name: "limit", Type: "integer", Description: "Maximum results",
					Minimum: tools.Int(paging.WorldCatSearch.Min), Maximum: tools.Int(paging.WorldCatSearch.Max), Default: 25},
				tools.Param{Name: "offset", Type: "integer", Description: "Starting position (1-based)", Minimum: tools.Int(1), Default: 1},
				fetchHoldings, holdingsLimit,
			),
			Handler: tools.Typed(func() SearchArgs { return SearchArgs{Limit: 25, Offset: 1} }, t.Search),
		},
		{
			Name: "get_worldcat_classification",
			Description: "Get the Library of Congress and Dewey Decimal classification for a book by OCLC number, " +
				"with the most popular number first and alternates after.",
			InputSchema: tools.Schema(oclc),
			Handler:     tools.Typed(func() OCLCArgs { return OCLCArgs{} }, t.Classification),
		},
		{
			Name: "get_worldcat_full_record",
			Description: "Get the complete WorldCat bibliographic record for an OCLC number: subject headings with vocabularies, " +
				"genres, classification, physical description and publication details.",
			InputSchema: tools.Schema(oclc),
			Handler:     tools.Typed(func() OCLCArgs { return OCLCArgs{} }, t.FullRecord),
		},
	}
}
