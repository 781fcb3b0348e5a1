// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// WorldCatBook is a bibliographic record resolved through the summary
// holdings search. HoldingInstitutions, TotalHoldings and HeldByInstitution
// are only set when holdings were explicitly requested.
type WorldCatBook struct {
	OCLCNumber          string   `json:"oclc_number" yaml:"oclc_number"`
	Title               string   `json:"title" yaml:"title"`
	Creator             string   `json:"creator,omitempty" yaml:"creator,omitempty"`
	Contributors        []string `json:"contributors" yaml:"contributors"`
	Date                string   `json:"date,omitempty" yaml:"date,omitempty"`
	MachineReadableDate string   `json:"machine_readable_date,omitempty" yaml:"machine_readable_date,omitempty"`
	Publisher           string   `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	PublicationPlace    string   `json:"publication_place,omitempty" yaml:"publication_place,omitempty"`
	Edition             string   `json:"edition,omitempty" yaml:"edition,omitempty"`
	Series              string   `json:"series,omitempty" yaml:"series,omitempty"`
	Language            string   `json:"language,omitempty" yaml:"language,omitempty"`

	// Format is the general format ("Book"); SpecificFormat refines it
	// ("PrintBook", "Digital").
	Format         string `json:"format,omitempty" yaml:"format,omitempty"`
	SpecificFormat string `json:"specific_format,omitempty" yaml:"specific_format,omitempty"`

	ISBNs               []string `json:"isbns" yaml:"isbns"`
	HoldingInstitutions []string `json:"holding_institutions" yaml:"holding_institutions"`
	TotalHoldings       *int     `json:"total_holdings,omitempty" yaml:"total_holdings,omitempty"`
	MergedOCLCNumbers   []string `json:"merged_oclc_numbers" yaml:"merged_oclc_numbers"`

	// HeldByInstitution reports whether the configured institution symbol
	// appears among the fetched holdings.
	HeldByInstitution bool `json:"held_by_institution" yaml:"held_by_institution"`
}

// WorldCatClassification holds the ranked LC and Dewey classifications.
// LC and Dewey are the most popular entries of LCAll and DeweyAll.
type WorldCatClassification struct {
	OCLCNumber string   `json:"oclc_number" yaml:"oclc_number"`
	LC         string   `json:"lc,omitempty" yaml:"lc,omitempty"`
	LCAll      []string `json:"lc_all" yaml:"lc_all"`
	Dewey      string   `json:"dewey,omitempty" yaml:"dewey,omitempty"`
	DeweyAll   []string `json:"dewey_all" yaml:"dewey_all"`
}

// Contributor is a named contributor with a relator role.
type Contributor struct {
	Name string `json:"name" yaml:"name"`
	Role string `json:"role" yaml:"role"`
}

// Subject is a subject heading with its type and controlled vocabulary.
type Subject struct {
	Name       string `json:"name" yaml:"name"`
	Type       string `json:"type,omitempty" yaml:"type,omitempty"`
	Vocabulary string `json:"vocabulary,omitempty" yaml:"vocabulary,omitempty"`
}

// WorldCatFullBib is the complete bibliographic record.
type WorldCatFullBib struct {
	OCLCNumber          string        `json:"oclc_number" yaml:"oclc_number"`
	Title               string        `json:"title,omitempty" yaml:"title,omitempty"`
	Creator             string        `json:"creator,omitempty" yaml:"creator,omitempty"`
	Contributors        []Contributor `json:"contributors" yaml:"contributors"`
	ISBNs               []string      `json:"isbns" yaml:"isbns"`
	Edition             string        `json:"edition,omitempty" yaml:"edition,omitempty"`
	Series              string        `json:"series,omitempty" yaml:"series,omitempty"`
	Language            string        `json:"language,omitempty" yaml:"language,omitempty"`
	LCClassification    string        `json:"lc_classification,omitempty" yaml:"lc_classification,omitempty"`
	DeweyClassification string        `json:"dewey_classification,omitempty" yaml:"dewey_classification,omitempty"`
	Subjects            []Subject     `json:"subjects" yaml:"subjects"`
	Genres              []string      `json:"genres" yaml:"genres"`
	GeneralFormat       string        `json:"general_format,omitempty" yaml:"general_format,omitempty"`
	SpecificFormat      string        `json:"specific_format,omitempty" yaml:"specific_format,omitempty"`
	PhysicalDescription string        `json:"physical_description,omitempty" yaml:"physical_description,omitempty"`
	Publisher           string        `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	PublicationPlace    string        `json:"publication_place,omitempty" yaml:"publication_place,omitempty"`
	PublicationDate     string        `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`
	PublicationYear     string        `json:"publication_year,omitempty" yaml:"publication_year,omitempty"`
}

// Institution is one library holding an item.
type Institution struct {
	Symbol  string `json:"symbol" yaml:"symbol"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Country string `json:"country,omitempty" yaml:"country,omitempty"`
	State   string `json:"state,omitempty" yaml:"state,omitempty"`
	Type    string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Holdings is the accumulated result of walking the holdings pages.
type Holdings struct {
	InstitutionSymbols []string      `json:"institution_symbols" yaml:"institution_symbols"`
	Total              int           `json:"total" yaml:"total"`
	Institutions       []Institution `json:"institutions" yaml:"institutions"`
}
