// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package primo

import (
	"context"
	"net/http"

	"github.com/pdiddy/library-tools/internal/paging"
	"github.com/pdiddy/library-tools/internal/toolerr"
	"github.com/pdiddy/library-tools/internal/tools"
	"github.com/pdiddy/library-tools/pkg/types"
)

// SearchArgs are the arguments of the search_primo tool.
type SearchArgs struct {
	Query        string `json:"query"`
	Field        string `json:"field"`
	Operator     string `json:"operator"`
	Limit        int    `json:"limit"`
	Start        int    `json:"start"`
	JournalsOnly bool   `json:"journals_only"`
}

// DefaultSearchArgs returns the documented defaults.
func DefaultSearchArgs() SearchArgs {
	return SearchArgs{Field: string(FieldAny), Operator: string(OperatorContains), Limit: 10}
}

// Tools exposes the catalog search to a language model.
type Tools struct {
	Settings *types.Settings
	Client   *http.Client
}

// Search builds a client, runs the search and formats the result. It never
// returns an error; failures are rendered as text.
func (t *Tools) Search(ctx context.Context, args SearchArgs) string {
	client, err := New(t.Settings.Primo, t.Settings.HTTP, t.Client)
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	res, err := client.Search(ctx, SearchParams{
		Query:        args.Query,
		Field:        Field(args.Field),
		Operator:     Operator(args.Operator),
		Limit:        args.Limit,
		Start:        args.Start,
		JournalsOnly: args.JournalsOnly,
	})
	if err != nil {
		return toolerr.FormatForLLM(err)
	}
	return FormatSearch(res)
}

// Definitions returns the tools this package provides.
func (t *Tools) Definitions() []tools.Tool {
	return []tools.Tool{{
		Name: "search_primo",
		Description: "Search the library catalog (Ex Libris Primo) for books, journals, articles and other resources. " +
			"Use it when the user asks whether a title is in the library, wants resources on a topic, or asks about journal availability. " +
			"Use field 'title' for known items, 'creator' for authors and 'subject' for topics; set journals_only for periodicals. " +
			"Paginate with start (0-based offset).",
		InputSchema: tools.Schema(
			tools.Param{Name: "query", Type: "string", Description: "Search terms or title", Required: true},
			tools.Param{Name: "field", Type: "string", Description: "Field to search", Enum: names(Fields), Default: string(FieldAny)},
			tools.Param{Name: "operator", Type: "string", Description: "'contains' for flexible matching, 'exact' for a precise phrase", Enum: names(Operators), Default: string(OperatorContains)},
			tools.Param{Name: "limit", Type: "integer", Description: "Maximum results to return", Minimum: tools.Int(paging.Catalog.Min), Maximum: tools.Int(paging.Catalog.Max), Default: 10},
			tools.Param{Name: "start", Type: "integer", Description: "Starting offset for pagination (0-based)", Minimum: tools.Int(0), Default: 0},
			tools.Param{Name: "journals_only", Type: "boolean", Description: "Search only journals/periodicals", Default: false},
		),
		Handler: tools.Typed(DefaultSearchArgs, t.Search),
	}}
}

func names[T ~string](list []T) []string {
	out := make([]string, len(list))
	for i, v := range list {
		out[i] = string(v)
	}
	return out
}
