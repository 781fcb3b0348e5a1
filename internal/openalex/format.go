// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"fmt"
	"strings"

	"github.com/pdiddy/library-tools/internal/textfmt"
	"github.com/pdiddy/library-tools/pkg/types"
)

const abstractPreview = 200

// FormatWorks renders works found for label (a query, or "author <id>").
func FormatWorks(works []types.Work, label string) string {
	if len(works) == 0 {
		return fmt.Sprintf("No publications found for '%s'. Try broader search terms or check spelling.", label)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d publications for '%s':\n\n", len(works), label)
	for i, w := range works {
		parts := []string{fmt.Sprintf("%d. %s", i+1, w.Title)}
		if w.PublicationYear != nil {
			parts = append(parts, fmt.Sprintf("(%d)", *w.PublicationYear))
		}
		if w.Journal != "" {
			parts = append(parts, "- "+w.Journal)
		}
		b.WriteString(strings.Join(parts, " ") + "\n")

		if len(w.Authors) > 0 {
			fmt.Fprintf(&b, "   Authors: %s\n", strings.Join(w.Authors, ", "))
		}

		var metrics []string
		if w.ID != "" {
			metrics = append(metrics, "ID: "+w.ID)
		}
		if w.CitedByCount > 0 {
			metrics = append(metrics, fmt.Sprintf("Cited: %d", w.CitedByCount))
		}
		if w.IsOpenAccess {
			metrics = append(metrics, "Open Access")
		}
		if w.DOI != "" {
			metrics = append(metrics, "DOI: "+w.DOI)
		}
		if len(metrics) > 0 {
			fmt.Fprintf(&b, "   %s\n", strings.Join(metrics, " | "))
		}

		if w.Abstract != "" {
			fmt.Fprintf(&b, "   Abstract: %s\n", textfmt.Preview(w.Abstract, abstractPreview))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatAuthors renders researchers found for name.
func FormatAuthors(authors []types.Author, name string) string {
	if len(authors) == 0 {
		return fmt.Sprintf("No researchers found for '%s'. Try variations of the name.", name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d researchers for '%s':\n\n", len(authors), name)
	for i, a := range authors {
		line := fmt.Sprintf("%d. %s", i+1, a.Name)
		if a.Institution != "" {
			line += " - " + a.Institution
		}
		b.WriteString(line + "\n")

		var metrics []string
		if a.WorksCount > 0 {
			metrics = append(metrics, fmt.Sprintf("Publications: %d", a.WorksCount))
		}
		if a.CitedByCount > 0 {
			metrics = append(metrics, fmt.Sprintf("Citations: %d", a.CitedByCount))
		}
		if a.HIndex != nil && *a.HIndex > 0 {
			metrics = append(metrics, fmt.Sprintf("h-index: %d", *a.HIndex))
		}
		if len(metrics) > 0 {
			fmt.Fprintf(&b, "   %s\n", strings.Join(metrics, " | "))
		}
		fmt.Fprintf(&b, "   ID: %s\n\n", a.ID)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatJournals renders sources found for name.
func FormatJournals(journals []types.Journal, name string) string {
	if len(journals) == 0 {
		return fmt.Sprintf("No journals found for '%s'. Try broader search terms.", name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d journals for '%s':\n\n", len(journals), name)
	for i, j := range journals {
		line := fmt.Sprintf("%d. %s", i+1, j.Name)
		if j.Publisher != "" {
			line += " - " + j.Publisher
		}
		b.WriteString(line + "\n")

		var info []string
		if j.ISSN != "" {
			info = append(info, "ISSN: "+j.ISSN)
		}
		if j.WorksCount > 0 {
			info = append(info, fmt.Sprintf("Publications: %d", j.WorksCount))
		}
		if j.IsOpenAccess {
			info = append(info, "Open Access")
		}
		if len(info) > 0 {
			fmt.Fprintf(&b, "   %s\n", strings.Join(info, " | "))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
