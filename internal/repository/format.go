// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package repository

import (
	"fmt"
	"strings"

	"github.com/pdiddy/library-tools/internal/textfmt"
	"github.com/pdiddy/library-tools/pkg/types"
)

var typeMarkers = map[string]string{
	"dissertation": "🎓",
	"thesis":       "🎓",
	"article":      "📄",
	"book":         "📚",
}

const defaultMarker = "📋"

// FormatWorks renders a result page. detailed adds the abstract, keywords,
// venue and advisor lines.
func FormatWorks(res *types.RepositorySearchResult, detailed bool) string {
	forQuery := ""
	if res != nil && res.Query != "" {
		forQuery = fmt.Sprintf(" for '%s'", res.Query)
	}
	if res == nil || res.Total == 0 {
		return fmt.Sprintf("No works found%s. Try broader search terms.", forQuery)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %s%s. Showing %d:\n\n", textfmt.Plural(res.Total, "work", ""), forQuery, len(res.Works))
	for i, w := range res.Works {
		docType := w.DocumentType
		if docType == "" {
			docType = "work"
		}
		marker, ok := typeMarkers[strings.ToLower(docType)]
		if !ok {
			marker = defaultMarker
		}
		fmt.Fprintf(&b, "%d. %s %s: %s\n", i+1, marker, strings.ToUpper(docType), w.Title)

		if len(w.Authors) > 0 {
			fmt.Fprintf(&b, "   Author(s): %s\n", strings.Join(w.Authors, ", "))
		}
		if w.PublicationYear != "" {
			fmt.Fprintf(&b, "   Year: %s\n", w.PublicationYear)
		}
		if w.Collection != "" || w.CollectionName != "" {
			var parts []string
			if w.CollectionName != "" {
				parts = append(parts, w.CollectionName)
			}
			if w.Collection != "" {
				parts = append(parts, "("+w.Collection+")")
			}
			fmt.Fprintf(&b, "   Collection: %s\n", strings.Join(parts, " "))
		}
		if w.URL != "" {
			fmt.Fprintf(&b, "   URL: %s\n", w.URL)
		}
		if w.FulltextURL != "" && w.FulltextURL != w.URL {
			fmt.Fprintf(&b, "   Full Text: %s\n", w.FulltextURL)
		}

		if detailed {
			if w.Abstract != "" {
				fmt.Fprintf(&b, "\n   Abstract: %s\n", w.Abstract)
			}
			if len(w.Keywords) > 0 {
				fmt.Fprintf(&b, "   Keywords: %s\n", strings.Join(w.Keywords, ", "))
			}
			if w.PublicationTitle != "" {
				fmt.Fprintf(&b, "   Published in: %s\n", w.PublicationTitle)
			}
			if w.Advisor != "" {
				fmt.Fprintf(&b, "   Advisor: %s\n", w.Advisor)
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatDetails renders a single work fetched by URL.
func FormatDetails(work *types.RepositoryWork, itemURL string) string {
	if work == nil {
		return "No work found at URL: " + itemURL
	}
	return FormatWorks(&types.RepositorySearchResult{Works: []types.RepositoryWork{*work}, Total: 1}, true)
}
