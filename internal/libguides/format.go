// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package libguides

import (
	"fmt"
	"strings"

	"github.com/pdiddy/library-tools/internal/textfmt"
	"github.com/pdiddy/library-tools/pkg/types"
)

const (
	databasePreview = 150
	guidePreview    = 200
	maxGuidePages   = 10
)

// FormatDatabases renders database results. search may be empty.
func FormatDatabases(res *types.DatabaseSearchResult, search string) string {
	if res == nil || res.Total == 0 {
		return fmt.Sprintf("No databases found%s. Try broader search terms.", forSearch(search))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %s%s:\n\n", textfmt.Plural(res.Total, "database", ""), forSearch(search))
	for i, db := range res.Databases {
		fmt.Fprintf(&b, "%d. %s\n", i+1, db.Name)

		if desc := textfmt.StripHTML(db.Description); desc != "" {
			fmt.Fprintf(&b, "   %s\n", textfmt.Preview(desc, databasePreview))
		}

		var info []string
		if db.ID != 0 {
			info = append(info, fmt.Sprintf("ID: %d", db.ID))
		}
		if db.Vendor != "" {
			info = append(info, "Vendor: "+db.Vendor)
		}
		if len(db.Subjects) > 0 {
			info = append(info, "Subjects: "+strings.Join(textfmt.Head(db.Subjects, 3), ", "))
		}
		if len(db.Types) > 0 {
			info = append(info, "Types: "+strings.Join(textfmt.Head(db.Types, 2), ", "))
		}
		if db.RequiresProxy {
			info = append(info, "Requires authentication")
		}
		if len(info) > 0 {
			fmt.Fprintf(&b, "   %s\n", strings.Join(info, " | "))
		}

		if len(db.AltNames) > 0 {
			alt := strings.Join(textfmt.Head(db.AltNames, 3), ", ")
			if len(db.AltNames) > 3 {
				alt += ", ..."
			}
			fmt.Fprintf(&b, "   Also known as: %s\n", alt)
		}
		if db.URL != "" {
			fmt.Fprintf(&b, "   URL: %s\n", db.URL)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatGuides renders guide results, listing at most ten pages per guide.
func FormatGuides(res *types.GuideSearchResult, search string) string {
	if res == nil || res.Total == 0 {
		return fmt.Sprintf("No guides found%s. Try different search terms.", forSearch(search))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %s%s:\n\n", textfmt.Plural(res.Total, "guide", ""), forSearch(search))
	for i, g := range res.Guides {
		fmt.Fprintf(&b, "%d. %s\n", i+1, g.Name)

		if desc := textfmt.StripHTML(g.Description); desc != "" {
			fmt.Fprintf(&b, "   %s\n", textfmt.Preview(desc, guidePreview))
		}

		var meta []string
		if g.ID != 0 {
			meta = append(meta, fmt.Sprintf("ID: %d", g.ID))
		}
		if g.StatusLabel != "" {
			meta = append(meta, "Status: "+g.StatusLabel)
		}
		if g.OwnerName != "" {
			meta = append(meta, "By: "+g.OwnerName)
		}
		if len(meta) > 0 {
			fmt.Fprintf(&b, "   %s\n", strings.Join(meta, " | "))
		}
		if g.URL != "" {
			fmt.Fprintf(&b, "   Guide URL: %s\n", g.URL)
		}

		if len(g.Pages) > 0 {
			fmt.Fprintf(&b, "\n   Pages (%d tabs):\n", len(g.Pages))
			for _, p := range textfmt.Head(g.Pages, maxGuidePages) {
				fmt.Fprintf(&b, "      - %s\n", p.Name)
				if p.URL != "" {
					fmt.Fprintf(&b, "        URL: %s\n", p.URL)
				}
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func forSearch(search string) string {
	if search == "" {
		return ""
	}
	return fmt.Sprintf(" for '%s'", search)
}
