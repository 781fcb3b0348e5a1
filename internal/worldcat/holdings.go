// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package worldcat

import (
	"context"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/pdiddy/library-tools/internal/paging"
	"github.com/pdiddy/library-tools/internal/textfmt"
	"github.com/pdiddy/library-tools/internal/toolerr"
	"github.com/pdiddy/library-tools/pkg/types"
)

// HoldingsPageSize is the largest page the Discovery API serves.
const HoldingsPageSize = 50

// FetchHoldings walks the holding institutions of an OCLC number, 50 per
// page at offsets 1, 51, 101, ... The walk stops when the accumulated
// count reaches the declared total, when a page comes back short, or when
// limit (if positive) is reached; the result is then truncated to limit.
// A non-empty institutions list restricts the walk to those symbols.
// Total is always the global holdings count reported upstream.
func (c *Client) FetchHoldings(ctx context.Context, oclcNumber string, limit int, institutions []string) (*types.Holdings, error) {
	oclcNumber, err := requireOCLC(oclcNumber)
	if err != nil {
		return nil, err
	}

	params := url.Values{
		"oclcNumber": {oclcNumber},
		"limit":      {strconv.Itoa(HoldingsPageSize)},
	}
	if len(institutions) > 0 {
		params.Set("heldBySymbol", strings.Join(institutions, ","))
	}

	out := &types.Holdings{InstitutionSymbols: []string{}, Institutions: []types.Institution{}}
	for offset := 1; ; offset = paging.NextOffset(offset, HoldingsPageSize) {
		if offset > 1 {
			params.Set("offset", strconv.Itoa(offset))
		}

		var resp holdingsResponse
		if err := c.getDiscovery(ctx, "/bibs-holdings", params, &resp); err != nil {
			return nil, toolerr.Rewrap("Holdings API request failed", err)
		}

		page := 0
		for _, rec := range resp.BriefRecords {
			out.Total = int(rec.InstitutionHolding.TotalHoldingCount)
			for _, h := range rec.InstitutionHolding.BriefHoldings {
				out.Institutions = append(out.Institutions, h.institution())
				page++
			}
		}

		if len(out.Institutions) >= out.Total || page < HoldingsPageSize {
			break
		}
		if limit > 0 && len(out.Institutions) >= limit {
			break
		}
	}

	if limit > 0 {
		out.Institutions = textfmt.Head(out.Institutions, limit)
	}
	if len(institutions) > 0 {
		out.Institutions = slices.DeleteFunc(out.Institutions, func(inst types.Institution) bool {
			return !containsFold(institutions, inst.Symbol)
		})
	}
	for _, inst := range out.Institutions {
		if inst.Symbol != "" {
			out.InstitutionSymbols = append(out.InstitutionSymbols, inst.Symbol)
		}
	}
	return out, nil
}

// populateHoldings fills the holdings fields of book when requested.
func (c *Client) populateHoldings(ctx context.Context, book *types.WorldCatBook, opts HoldingsOptions) error {
	if !opts.Fetch && opts.Institutions == nil {
		return nil
	}
	h, err := c.FetchHoldings(ctx, book.OCLCNumber, opts.Limit, opts.Institutions)
	if err != nil {
		return err
	}
	total := h.Total
	book.HoldingInstitutions = h.InstitutionSymbols
	book.TotalHoldings = &total
	book.HeldByInstitution = c.cfg.InstitutionID != "" && containsFold(h.InstitutionSymbols, c.cfg.InstitutionID)
	return nil
}

func validateHoldings(opts HoldingsOptions) error {
	if opts.Institutions != nil && len(opts.Institutions) == 0 {
		return toolerr.NewValidationError("check_institutions", "check_institutions cannot be empty",
			"Invalid input: check_institutions cannot be empty. Omit it to fetch all holdings.")
	}
	return nil
}

func containsFold(list []string, s string) bool {
	return slices.ContainsFunc(list, func(v string) bool { return strings.EqualFold(strings.TrimSpace(v), s) })
}
