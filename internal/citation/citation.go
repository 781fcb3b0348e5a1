// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation converts normalized records into CSL (Citation Style
// Language) items and writes them as CSL-YAML, the format Pandoc and most
// reference managers read.
package citation

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/library-tools/pkg/types"
)

// Item is one CSL bibliographic entry. Field names follow the CSL-JSON and
// CSL-YAML schema.
type Item struct {
	ID              string `yaml:"id"`
	Type            string `yaml:"type"`
	Title           string `yaml:"title"`
	Author          []Name `yaml:"author,omitempty"`
	ContainerTitle  string `yaml:"container-title,omitempty"`
	CollectionTitle string `yaml:"collection-title,omitempty"`
	Publisher       string `yaml:"publisher,omitempty"`
	PublisherPlace  string `yaml:"publisher-place,omitempty"`
	Edition         string `yaml:"edition,omitempty"`
	Genre           string `yaml:"genre,omitempty"`
	Abstract        string `yaml:"abstract,omitempty"`
	Keyword         string `yaml:"keyword,omitempty"`
	Language        string `yaml:"language,omitempty"`
	Issued          *Date  `yaml:"issued,omitempty"`
	DOI             string `yaml:"DOI,omitempty"`
	ISBN            string `yaml:"ISBN,omitempty"`
	URL             string `yaml:"URL,omitempty"`
}

// Name is a person's name in CSL form.
type Name struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// Date is a CSL date using date-parts.
type Date struct {
	DateParts [][]int `yaml:"date-parts"`
}

// Encode writes items as a CSL-YAML list. Repeated ids after the first get
// the smallest numeric suffix not already used by another entry, so every
// entry stays addressable.
func Encode(w io.Writer, items []Item) error {
	used := make(map[string]bool, len(items))
	for _, it := range items {
		used[it.ID] = true
	}
	kept := make(map[string]bool, len(items))
	for i := range items {
		id := items[i].ID
		if !kept[id] {
			kept[id] = true
			continue
		}
		n := 2
		for used[fmt.Sprintf("%s-%d", id, n)] {
			n++
		}
		items[i].ID = fmt.Sprintf("%s-%d", id, n)
		used[items[i].ID] = true
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// FromWork converts an OpenAlex work.
func FromWork(w types.Work) Item {
	item := Item{
		ID:             lastSegment(w.ID),
		Type:           "article-journal",
		Title:          w.Title,
		Author:         names(w.Authors),
		ContainerTitle: w.Journal,
		Abstract:       w.Abstract,
		DOI:            bareDOI(w.DOI),
	}
	if w.PublicationYear != nil {
		item.Issued = year(*w.PublicationYear)
	}
	if item.ID == "" {
		item.ID = fallbackID(w.Title)
	}
	return item
}

// FromBook converts a WorldCat book.
func FromBook(b types.WorldCatBook) Item {
	item := Item{
		ID:             "oclc-" + b.OCLCNumber,
		Type:           "book",
		Title:          b.Title,
		Author:         names(append([]string{b.Creator}, b.Contributors...)),
		Publisher:      b.Publisher,
		PublisherPlace: b.PublicationPlace,
		Edition:        b.Edition,
		Language:       b.Language,
		Issued:         year(firstYear(b.MachineReadableDate, b.Date)),
	}
	if len(b.ISBNs) > 0 {
		item.ISBN = b.ISBNs[0]
	}
	if b.Series != "" {
		item.CollectionTitle = b.Series
	}
	if b.OCLCNumber == "" {
		item.ID = fallbackID(b.Title)
	}
	return item
}

// FromRepositoryWork converts a repository item. Theses and dissertations
// become CSL thesis entries with the document type as genre.
func FromRepositoryWork(w types.RepositoryWork) Item {
	item := Item{
		Type:           repositoryType(w.DocumentType),
		Title:          w.Title,
		Author:         names(w.Authors),
		ContainerTitle: w.PublicationTitle,
		Abstract:       w.Abstract,
		Keyword:        strings.Join(w.Keywords, ", "),
		Issued:         year(firstYear(w.PublicationYear)),
		URL:            w.URL,
	}
	if item.Type == "thesis" {
		item.Genre = w.DocumentType
	}
	switch seg := lastSegment(w.URL); {
	case seg != "" && w.Collection != "":
		item.ID = w.Collection + "-" + seg
	case seg != "":
		item.ID = seg
	default:
		item.ID = fallbackID(w.Title)
	}
	return item
}

func repositoryType(docType string) string {
	t := strings.ToLower(docType)
	switch {
	case strings.Contains(t, "dissertation"), strings.Contains(t, "thesis"):
		return "thesis"
	case strings.Contains(t, "article"):
		return "article-journal"
	case strings.Contains(t, "book"):
		return "book"
	case strings.Contains(t, "report"):
		return "report"
	}
	return "document"
}

// ParseName splits a name into CSL family/given parts. "Family, Given" is
// split on the comma; otherwise the last space separates given names from
// the family name. Single-token names use the literal field.
func ParseName(name string) Name {
	name = strings.TrimSpace(name)
	if name == "" {
		return Name{}
	}
	if family, given, ok := strings.Cut(name, ","); ok {
		family, given = strings.TrimSpace(family), strings.TrimSpace(given)
		if family != "" && given != "" {
			return Name{Family: family, Given: given}
		}
		name = family + given
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return Name{Literal: name}
	}
	return Name{
		Given:  strings.TrimSpace(name[:idx]),
		Family: name[idx+1:],
	}
}

// names parses raw names, dropping blanks and repeats.
func names(raw []string) []Name {
	var out []Name
	for _, n := range raw {
		parsed := ParseName(n)
		if parsed == (Name{}) || slices.Contains(out, parsed) {
			continue
		}
		out = append(out, parsed)
	}
	return out
}

func year(y int) *Date {
	if y <= 0 {
		return nil
	}
	return &Date{DateParts: [][]int{{y}}}
}

// firstYear returns the first four-digit run found in the candidates, or 0.
func firstYear(candidates ...string) int {
	for _, s := range candidates {
		run := 0
		for i := 0; i < len(s); i++ {
			if s[i] < '0' || s[i] > '9' {
				run = 0
				continue
			}
			run++
			if run == 4 && (i+1 == len(s) || s[i+1] < '0' || s[i+1] > '9') {
				y, _ := strconv.Atoi(s[i-3 : i+1])
				return y
			}
		}
	}
	return 0
}

var doiPrefixes = []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "doi:"}

func bareDOI(doi string) string {
	for _, p := range doiPrefixes {
		if strings.HasPrefix(strings.ToLower(doi), p) {
			return doi[len(p):]
		}
	}
	return doi
}

func lastSegment(u string) string {
	u = strings.TrimRight(strings.TrimSpace(u), "/")
	if u == "" {
		return ""
	}
	return u[strings.LastIndex(u, "/")+1:]
}

// fallbackID derives an id from the first words of a title.
func fallbackID(title string) string {
	words := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9')
	})
	if len(words) > 3 {
		words = words[:3]
	}
	if len(words) == 0 {
		return "item"
	}
	return strings.Join(words, "-")
}
