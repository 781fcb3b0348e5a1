// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package worldcat

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/library-tools/internal/paging"
	"github.com/pdiddy/library-tools/internal/textfmt"
	"github.com/pdiddy/library-tools/internal/toolerr"
	"github.com/pdiddy/library-tools/pkg/types"
)

// HoldingsOptions controls optional holdings enrichment.
type HoldingsOptions struct {
	Fetch bool

	// Limit caps the number of holding institutions fetched; zero fetches
	// all of them.
	Limit int

	// Institutions restricts holdings to these OCLC symbols. Nil means no
	// restriction; a non-nil empty slice is rejected. Setting it implies
	// Fetch.
	Institutions []string
}

// LookupParams holds the identifiers LookupISBN tries. At least one of
// ISBN, DOI and Title is required.
type LookupParams struct {
	ISBN   string
	DOI    string
	Title  string
	Author string

	// Year is an exact year; YearFrom/YearTo give an open or closed range
	// and are ignored when Year is set. Zero means unset.
	Year     int
	YearFrom int
	YearTo   int

	Holdings HoldingsOptions
}

// BookQuery holds the arguments of SearchBooks.
type BookQuery struct {
	Query    string
	YearFrom int
	YearTo   int

	// Language is an ISO 639-2 code such as "eng".
	Language string
	Limit    int

	// Offset is one-based: 1, 1+limit, 1+2*limit, ...
	Offset   int
	Holdings HoldingsOptions
}

// strategy resolves a LookupParams to a book, or reports a miss with a nil
// book. It is skipped when its identifier is absent.
type strategy struct {
	name    string
	applies func(LookupParams) bool
	run     func(context.Context, LookupParams) (*types.WorldCatBook, error)
}

func (c *Client) strategies() []strategy {
	return []strategy{
		{"isbn", func(p LookupParams) bool { return p.ISBN != "" }, c.byISBN},
		{"doi", func(p LookupParams) bool { return p.DOI != "" }, c.byDOI},
		{"title", func(p LookupParams) bool { return p.Title != "" }, c.byTitle},
	}
}

// LookupISBN tries ISBN, DOI and title/author in that order and returns the
// first match. Later strategies never run once one matches. It returns
// nil, nil when nothing matches.
func (c *Client) LookupISBN(ctx context.Context, p LookupParams) (*types.WorldCatBook, error) {
	p.ISBN = strings.TrimSpace(p.ISBN)
	p.DOI = strings.TrimSpace(p.DOI)
	p.Title = strings.TrimSpace(p.Title)
	if p.ISBN == "" && p.DOI == "" && p.Title == "" {
		return nil, toolerr.NewValidationError("isbn", "one of isbn, doi or title is required",
			"Invalid input: provide an ISBN, a DOI or a title to look up.")
	}
	if err := validateHoldings(p.Holdings); err != nil {
		return nil, err
	}

	for _, s := range c.strategies() {
		if !s.applies(p) {
			continue
		}
		book, err := s.run(ctx, p)
		if err != nil {
			return nil, toolerr.Rewrap("WorldCat lookup failed ("+s.name+")", err)
		}
		if book == nil {
			slog.Debug("worldcat strategy missed", "strategy", s.name)
			continue
		}
		if err := c.populateHoldings(ctx, book, p.Holdings); err != nil {
			return nil, err
		}
		return book, nil
	}
	return nil, nil
}

func (c *Client) byISBN(ctx context.Context, p LookupParams) (*types.WorldCatBook, error) {
	return c.summaryRecord(ctx, url.Values{"isbn": {CleanISBN(p.ISBN)}})
}

func (c *Client) byDOI(ctx context.Context, p LookupParams) (*types.WorldCatBook, error) {
	return c.briefThenSummary(ctx, url.Values{"q": {DOIQuery(p.DOI)}})
}

func (c *Client) byTitle(ctx context.Context, p LookupParams) (*types.WorldCatBook, error) {
	parts := []string{fmt.Sprintf(`ti:"%s"`, strings.ReplaceAll(p.Title, `"`, ""))}
	if author := strings.TrimSpace(p.Author); author != "" {
		parts = append(parts, fmt.Sprintf(`au:"%s"`, strings.ReplaceAll(author, `"`, "")))
	}
	params := url.Values{"itemType": {"book"}}
	if p.Year != 0 {
		parts = append(parts, "yr:"+strconv.Itoa(p.Year))
	} else if r := DateRange(p.YearFrom, p.YearTo); r != "" {
		params.Set("datePublished", r)
	}
	params.Set("q", strings.Join(parts, " AND "))
	return c.briefThenSummary(ctx, params)
}

// briefThenSummary runs a brief-bibs search and resolves its first hit
// through the summary holdings search, which carries the ISBNs.
func (c *Client) briefThenSummary(ctx context.Context, params url.Values) (*types.WorldCatBook, error) {
	var brief searchResponse
	if err := c.getMetadata(ctx, "/search/brief-bibs", params, &brief); err != nil {
		if toolerr.StatusCode(err) == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	hit, ok := brief.first()
	if !ok {
		return nil, nil
	}
	return c.resolve(ctx, string(hit.OCLCNumber))
}

// resolve fetches the summary holdings record for an OCLC number.
func (c *Client) resolve(ctx context.Context, oclcNumber string) (*types.WorldCatBook, error) {
	if oclcNumber == "" {
		return nil, nil
	}
	return c.summaryRecord(ctx, url.Values{"oclcNumber": {oclcNumber}})
}

func (c *Client) summaryRecord(ctx context.Context, params url.Values) (*types.WorldCatBook, error) {
	var resp searchResponse
	if err := c.getMetadata(ctx, "/search/summary-holdings", params, &resp); err != nil {
		if toolerr.StatusCode(err) == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	rec, ok := resp.first()
	if !ok {
		return nil, nil
	}
	book := rec.book()
	return &book, nil
}

// SearchBooks runs a keyword search and resolves every hit into a full
// record, costing one request per hit. Hits the upstream refuses to
// resolve are dropped.
func (c *Client) SearchBooks(ctx context.Context, q BookQuery) ([]types.WorldCatBook, error) {
	if strings.TrimSpace(q.Query) == "" {
		return nil, toolerr.NewValidationError("query", "query is required", "")
	}
	if err := validateHoldings(q.Holdings); err != nil {
		return nil, err
	}

	limit := paging.WorldCatSearch.Clamp(q.Limit)
	params := url.Values{
		"q":        {q.Query},
		"itemType": {"book"},
		"limit":    {strconv.Itoa(limit)},
		"offset":   {strconv.Itoa(paging.AtLeast(q.Offset, 1))},
	}
	if r := DateRange(q.YearFrom, q.YearTo); r != "" {
		params.Set("datePublished", r)
	}
	if q.Language != "" {
		params.Set("inLanguage", q.Language)
	}

	var brief searchResponse
	if err := c.getMetadata(ctx, "/search/brief-bibs", params, &brief); err != nil {
		return nil, toolerr.Rewrap("WorldCat search failed", err)
	}

	books := []types.WorldCatBook{}
	for _, hit := range textfmt.Head(brief.BriefRecords, limit) {
		book, err := c.resolve(ctx, string(hit.OCLCNumber))
		if err != nil {
			if toolerr.StatusCode(err) == 0 {
				return nil, toolerr.Rewrap("WorldCat search failed", err)
			}
			slog.Warn("dropping unresolvable worldcat hit", "oclc", hit.OCLCNumber, "error", err)
			continue
		}
		if book == nil {
			continue
		}
		if err := c.populateHoldings(ctx, book, q.Holdings); err != nil {
			return nil, err
		}
		books = append(books, *book)
	}
	return books, nil
}

// CleanISBN strips hyphens and spaces.
func CleanISBN(isbn string) string {
	return strings.NewReplacer("-", "", " ", "").Replace(strings.TrimSpace(isbn))
}

var doiPrefixes = []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "http://dx.doi.org/", "doi:"}

// DOIQuery builds the brief-bibs query for a DOI: resolver prefixes are
// removed and slashes escaped for the query grammar.
func DOIQuery(doi string) string {
	doi = strings.TrimSpace(doi)
	for _, prefix := range doiPrefixes {
		if len(doi) >= len(prefix) && strings.EqualFold(doi[:len(prefix)], prefix) {
			doi = doi[len(prefix):]
			break
		}
	}
	return "bn:" + strings.ReplaceAll(doi, "/", `\/`)
}

// DateRange renders a datePublished filter: "2015-2020", "2015-" or "-2020".
// Both zero yields "".
func DateRange(from, to int) string {
	switch {
	case from != 0 && to != 0:
		return fmt.Sprintf("%d-%d", from, to)
	case from != 0:
		return fmt.Sprintf("%d-", from)
	case to != 0:
		return fmt.Sprintf("-%d", to)
	}
	return ""
}
