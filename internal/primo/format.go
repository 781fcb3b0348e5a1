// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package primo

import (
	"fmt"
	"strings"

	"github.com/pdiddy/library-tools/pkg/types"
)

// shownAuthors is how many authors the summary line names before "et al.".
const shownAuthors = 2

// FormatSearch renders a catalog search result for a language model.
func FormatSearch(res *types.CatalogSearchResult) string {
	if res.Total == 0 {
		return fmt.Sprintf("No results found for '%s'. Try:\n"+
			"1. Using broader search terms\n"+
			"2. Checking spelling\n"+
			"3. Searching in 'any' field instead of specific fields", res.Query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d results for '%s' (showing %d):\n\n", res.Total, res.Query, len(res.Documents))

	for i, doc := range res.Documents {
		parts := []string{fmt.Sprintf("%d. %s", i+1, doc.Title)}
		if doc.PublicationYear != "" {
			parts = append(parts, "("+doc.PublicationYear+")")
		}
		if doc.Format != "" {
			parts = append(parts, "["+doc.Format+"]")
		}
		if by := authorLine(doc.Authors); by != "" {
			parts = append(parts, "by "+by)
		}
		b.WriteString(strings.Join(parts, " "))
		b.WriteString("\n")

		var meta []string
		if doc.Publisher != "" {
			meta = append(meta, "Publisher: "+doc.Publisher)
		}
		if doc.ISBN != "" {
			meta = append(meta, "ISBN: "+doc.ISBN)
		}
		if doc.ISSN != "" {
			meta = append(meta, "ISSN: "+doc.ISSN)
		}
		if len(meta) > 0 {
			fmt.Fprintf(&b, "   %s\n", strings.Join(meta, " | "))
		}

		switch {
		case doc.IsAvailable && doc.AvailabilityStatus != "":
			fmt.Fprintf(&b, "   ✓ Available (%s)\n", doc.AvailabilityStatus)
		case doc.IsAvailable:
			b.WriteString("   ✓ Available\n")
		case doc.AvailabilityStatus != "":
			fmt.Fprintf(&b, "   Status: %s\n", doc.AvailabilityStatus)
		}

		if doc.Permalink != "" {
			fmt.Fprintf(&b, "   Link: %s\n", doc.Permalink)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// authorLine names the first authors, cleaned of "$$" subfield markers.
func authorLine(authors []string) string {
	if len(authors) == 0 {
		return ""
	}
	n := min(len(authors), shownAuthors)
	names := make([]string, 0, n)
	for _, a := range authors[:n] {
		if name := CleanAuthor(a); name != "" {
			names = append(names, name)
		}
	}
	line := strings.Join(names, ", ")
	if len(authors) > shownAuthors {
		line += " et al."
	}
	return line
}

// CleanAuthor drops PNX subfield markers: "Smith, J.$$QSmith" becomes "Smith, J.".
func CleanAuthor(s string) string {
	name, _, _ := strings.Cut(s, "$$")
	return strings.TrimSpace(name)
}
