// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package worldcat

import (
	"fmt"
	"strings"

	"github.com/pdiddy/library-tools/pkg/types"
)

// FormatLookup renders the result of LookupISBN. A nil book renders the
// identifiers that were tried.
func FormatLookup(book *types.WorldCatBook, p LookupParams) string {
	if book == nil {
		var tried []string
		if p.ISBN != "" {
			tried = append(tried, "ISBN: "+p.ISBN)
		}
		if p.DOI != "" {
			tried = append(tried, "DOI: "+p.DOI)
		}
		if p.Title != "" {
			tried = append(tried, "Title: "+p.Title)
		}
		if p.Author != "" {
			tried = append(tried, "Author: "+p.Author)
		}
		return fmt.Sprintf("No book found in WorldCat for %s. Try different search terms or verify the information.",
			strings.Join(tried, ", "))
	}
	return "Book found in WorldCat:\n\n" + FormatBook(book)
}

// FormatBook renders one book, one field per line.
func FormatBook(b *types.WorldCatBook) string {
	lines := []string{"Title: " + b.Title}
	if b.Creator != "" {
		lines = append(lines, "Author: "+b.Creator)
	}
	if b.Date != "" {
		lines = append(lines, "Date: "+b.Date)
	}
	if b.Publisher != "" {
		lines = append(lines, "Publisher: "+b.Publisher)
	}
	if len(b.ISBNs) > 0 {
		lines = append(lines, "ISBNs: "+strings.Join(b.ISBNs, ", "))
	} else {
		lines = append(lines, "ISBNs: None found")
	}
	if b.Language != "" {
		lines = append(lines, "Language: "+b.Language)
	}
	if b.Format != "" {
		lines = append(lines, "Format: "+b.Format)
	}
	lines = append(lines, "OCLC Number: "+b.OCLCNumber)
	lines = append(lines, holdingsLines(b, "")...)
	return strings.Join(lines, "\n")
}

// FormatBooks renders search results.
func FormatBooks(books []types.WorldCatBook, query string) string {
	if len(books) == 0 {
		return fmt.Sprintf("No books found for '%s'. Try broader search terms or check spelling.", query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d books for '%s':\n\n", len(books), query)
	for i := range books {
		book := &books[i]
		fmt.Fprintf(&b, "%d. %s\n", i+1, book.Title)
		if book.Creator != "" {
			fmt.Fprintf(&b, "   Author: %s\n", book.Creator)
		}
		if book.Date != "" {
			fmt.Fprintf(&b, "   Date: %s\n", book.Date)
		}
		if len(book.ISBNs) > 0 {
			fmt.Fprintf(&b, "   ISBNs: %s\n", strings.Join(book.ISBNs, ", "))
		}

		var info []string
		if book.Language != "" {
			info = append(info, "Language: "+book.Language)
		}
		if book.Format != "" {
			info = append(info, "Format: "+book.Format)
		}
		info = append(info, "OCLC: "+book.OCLCNumber)
		fmt.Fprintf(&b, "   %s\n", strings.Join(info, " | "))

		for _, line := range holdingsLines(book, "   ") {
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// holdingsLines renders the holdings fields, which are only present when
// holdings were requested.
func holdingsLines(b *types.WorldCatBook, indent string) []string {
	if b.TotalHoldings == nil {
		return nil
	}
	lines := []string{fmt.Sprintf("%sTotal Holdings: %d", indent, *b.TotalHoldings)}
	if len(b.HoldingInstitutions) > 0 {
		lines = append(lines, indent+"Available at: "+strings.Join(b.HoldingInstitutions, ", "))
	}
	if b.HeldByInstitution {
		lines = append(lines, indent+"Holdings: Available at your institution")
	}
	return lines
}

// FormatClassification renders LC and Dewey numbers with their alternates.
func FormatClassification(c *types.WorldCatClassification) string {
	lines := []string{fmt.Sprintf("Classification for OCLC %s:", c.OCLCNumber), ""}

	if c.LC != "" {
		lines = append(lines, "LC Classification: "+c.LC)
		if len(c.LCAll) > 1 {
			lines = append(lines, "  Other LC: "+strings.Join(c.LCAll[1:], ", "))
		}
	} else {
		lines = append(lines, "LC Classification: None found")
	}

	if c.Dewey != "" {
		lines = append(lines, "Dewey Decimal: "+c.Dewey)
		if len(c.DeweyAll) > 1 {
			lines = append(lines, "  Other Dewey: "+strings.Join(c.DeweyAll[1:], ", "))
		}
	} else {
		lines = append(lines, "Dewey Decimal: None found")
	}
	return strings.Join(lines, "\n")
}

// FormatFullBib renders the complete record: publication, classification,
// subjects, genres and physical format.
func FormatFullBib(bib *types.WorldCatFullBib) string {
	lines := []string{fmt.Sprintf("Complete Record for OCLC %s:", bib.OCLCNumber), ""}

	if bib.Title != "" {
		lines = append(lines, "Title: "+bib.Title)
	}
	if bib.Creator != "" {
		lines = append(lines, "Author: "+bib.Creator)
	}
	if bib.Publisher != "" {
		pub := bib.Publisher
		if bib.PublicationPlace != "" {
			pub = bib.PublicationPlace + ": " + pub
		}
		if bib.PublicationDate != "" {
			pub += ", " + bib.PublicationDate
		}
		lines = append(lines, "Publication: "+pub)
	}
	if bib.Edition != "" {
		lines = append(lines, "Edition: "+bib.Edition)
	}
	if bib.Series != "" {
		lines = append(lines, "Series: "+bib.Series)
	}
	if bib.Language != "" {
		lines = append(lines, "Language: "+bib.Language)
	}
	if len(bib.ISBNs) > 0 {
		lines = append(lines, "ISBNs: "+strings.Join(bib.ISBNs, ", "))
	}

	lines = append(lines, "", "Classification:")
	if bib.LCClassification != "" {
		lines = append(lines, "  LC: "+bib.LCClassification)
	}
	if bib.DeweyClassification != "" {
		lines = append(lines, "  Dewey: "+bib.DeweyClassification)
	}

	if len(bib.Subjects) > 0 {
		lines = append(lines, "", "Subjects:")
		for _, s := range bib.Subjects {
			if s.Name == "" {
				continue
			}
			vocab := s.Vocabulary
			if vocab == "" {
				vocab = "Unknown"
			}
			lines = append(lines, fmt.Sprintf("  - %s (%s)", s.Name, vocab))
		}
	}

	if len(bib.Genres) > 0 {
		lines = append(lines, "", "Genres: "+strings.Join(bib.Genres, ", "))
	}

	if bib.GeneralFormat != "" || bib.SpecificFormat != "" {
		lines = append(lines, "")
		if bib.GeneralFormat != "" {
			lines = append(lines, "Format: "+bib.GeneralFormat)
		}
		if bib.SpecificFormat != "" {
			lines = append(lines, "  Specific: "+bib.SpecificFormat)
		}
	}
	if bib.PhysicalDescription != "" {
		lines = append(lines, "Physical Description: "+bib.PhysicalDescription)
	}
	return strings.Join(lines, "\n")
}
