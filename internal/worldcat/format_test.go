// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package worldcat

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/library-tools/pkg/types"
)

func intPtr(n int) *int { return &n }

func TestFormatLookup(t *testing.T) {
	book := &types.WorldCatBook{
		OCLCNumber: "42",
		Title:      "Dune",
		Creator:    "Frank Herbert",
		Date:       "1965",
		Publisher:  "Chilton",
		Language:   "eng",
		Format:     "Book",
		ISBNs:      []string{"9780441013593", "0441013597"},
	}
	assert.Equal(t, strings.Join([]string{
		"Book found in WorldCat:",
		"",
		"Title: Dune",
		"Author: Frank Herbert",
		"Date: 1965",
		"Publisher: Chilton",
		"ISBNs: 9780441013593, 0441013597",
		"Language: eng",
		"Format: Book",
		"OCLC Number: 42",
	}, "\n"), FormatLookup(book, LookupParams{ISBN: "x"}))

	book.ISBNs = nil
	book.TotalHoldings = intPtr(812)
	book.HoldingInstitutions = []string{"NYP", "DLC"}
	book.HeldByInstitution = true
	got := FormatBook(book)
	assert.Contains(t, got, "ISBNs: None found\n")
	assert.True(t, strings.HasSuffix(got, "OCLC Number: 42\nTotal Holdings: 812\nAvailable at: NYP, DLC\nHoldings: Available at your institution"))

	assert.Equal(t,
		"No book found in WorldCat for Title: Dune. Try different search terms or verify the information.",
		FormatLookup(nil, LookupParams{Title: "Dune"}))
}

func TestFormatBooks(t *testing.T) {
	assert.Equal(t, "No books found for 'zzz'. Try broader search terms or check spelling.", FormatBooks(nil, "zzz"))

	got := FormatBooks([]types.WorldCatBook{
		{OCLCNumber: "1", Title: "Dune", Creator: "Frank Herbert", Date: "1965", ISBNs: []string{"9780441013593"}, Language: "eng", Format: "Book"},
		{OCLCNumber: "2", Title: "Untitled", TotalHoldings: intPtr(0)},
	}, "dune")
	assert.Equal(t, strings.Join([]string{
		"Found 2 books for 'dune':",
		"",
		"1. Dune",
		"   Author: Frank Herbert",
		"   Date: 1965",
		"   ISBNs: 9780441013593",
		"   Language: eng | Format: Book | OCLC: 1",
		"",
		"2. Untitled",
		"   OCLC: 2",
		"   Total Holdings: 0",
	}, "\n"), got)
}

func TestFormatClassification(t *testing.T) {
	got := FormatClassification(&types.WorldCatClassification{
		OCLCNumber: "742206236",
		LC:         "QA76.73.G63",
		LCAll:      []string{"QA76.73.G63", "QA76.73"},
		DeweyAll:   []string{},
	})
	assert.Equal(t, strings.Join([]string{
		"Classification for OCLC 742206236:",
		"",
		"LC Classification: QA76.73.G63",
		"  Other LC: QA76.73",
		"Dewey Decimal: None found",
	}, "\n"), got)
}

func TestFormatFullBib(t *testing.T) {
	got := FormatFullBib(&types.WorldCatFullBib{
		OCLCNumber:          "742206236",
		Title:               "The Go programming language",
		Creator:             "Alan A. A. Donovan",
		Publisher:           "Addison-Wesley",
		PublicationPlace:    "New York",
		PublicationDate:     "2016",
		Language:            "eng",
		LCClassification:    "QA76.73.G63",
		DeweyClassification: "005.133",
		Subjects:            []types.Subject{{Name: "Go (Computer program language)", Vocabulary: "lcsh"}, {Name: "Programmation"}},
		Genres:              []string{"Handbooks and manuals"},
		GeneralFormat:       "Book",
		SpecificFormat:      "PrintBook",
		PhysicalDescription: "xvii, 380 pages",
	})
	assert.Equal(t, strings.Join([]string{
		"Complete Record for OCLC 742206236:",
		"",
		"Title: The Go programming language",
		"Author: Alan A. A. Donovan",
		"Publication: New York: Addison-Wesley, 2016",
		"Language: eng",
		"",
		"Classification:",
		"  LC: QA76.73.G63",
		"  Dewey: 005.133",
		"",
		"Subjects:",
		"  - Go (Computer program language) (lcsh)",
		"  - Programmation (Unknown)",
		"",
		"Genres: Handbooks and manuals",
		"",
		"Format: Book",
		"  Specific: PrintBook",
		"Physical Description: xvii, 380 pages",
	}, "\n"), got)
}

func TestToolDefinitions(t *testing.T) {
	f := newFake(t)
	f.handle("/search/summary-holdings", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(summary("42", "Dune", "9780441013593")))
	})
	f.handle("/bibs-holdings", holdingsServer(2))
	f.handle("/search/classification-bibs/42", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"lc":{"mostPopular":["PS3558.E63"]}}`))
	})

	tl := &Tools{
		Settings: &types.Settings{WorldCat: types.WorldCatConfig{
			ClientID: "cid", ClientSecret: "secret", TokenURL: f.srv.URL + "/token",
			MetadataURL: f.srv.URL, DiscoveryURL: f.srv.URL,
		}},
		Client: f.srv.Client(),
	}
	defs := tl.Definitions()
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	assert.Equal(t, []string{
		"lookup_worldcat_isbn", "search_worldcat_books", "get_worldcat_classification", "get_worldcat_full_record",
	}, names)

	out := defs[0].Handler(context.Background(), json.RawMessage(`{"isbn":"978-0-441-01359-3","fetch_holdings":true}`))
	require.True(t, strings.HasPrefix(out, "Book found in WorldCat:"), out)
	assert.Contains(t, out, "Total Holdings: 2\nAvailable at: S001, S002")

	out = defs[0].Handler(context.Background(), json.RawMessage(`{"isbn":"1","check_institutions":[]}`))
	assert.Equal(t, "Invalid input: check_institutions cannot be empty. Omit it to fetch all holdings.", out)

	out = defs[2].Handler(context.Background(), json.RawMessage(`{"oclc_number":"42"}`))
	assert.Contains(t, out, "LC Classification: PS3558.E63")

	// The client, and with it the metadata token, is reused across calls.
	assert.Equal(t, []string{MetadataScope, DiscoveryScope}, f.tokenScopes())
}

func TestToolsMissingConfig(t *testing.T) {
	tl := &Tools{Settings: &types.Settings{}}
	out := tl.Classification(context.Background(), OCLCArgs{OCLCNumber: "1"})
	assert.Equal(t, "OCLC client ID is required. Please set OCLC_CLIENT_ID in your environment or .env file.", out)
}
