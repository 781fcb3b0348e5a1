// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package worldcat

import (
	"encoding/json"
	"strings"

	"github.com/pdiddy/library-tools/internal/httputil"
	"github.com/pdiddy/library-tools/internal/textfmt"
	"github.com/pdiddy/library-tools/pkg/types"
)

func (r briefRecord) book() types.WorldCatBook {
	b := types.WorldCatBook{
		OCLCNumber:          string(r.OCLCNumber),
		Title:               string(r.Title),
		Creator:             string(r.Creator),
		Contributors:        r.Contributors.Slice(),
		Date:                string(r.Date),
		MachineReadableDate: string(r.MachineReadableDate),
		Publisher:           string(r.Publisher),
		PublicationPlace:    string(r.PublicationPlace),
		Edition:             string(r.Edition),
		Series:              string(r.Series),
		Language:            string(r.Language),
		Format:              string(r.GeneralFormat),
		SpecificFormat:      string(r.SpecificFormat),
		ISBNs:               r.ISBNs.Slice(),
		HoldingInstitutions: []string{},
		MergedOCLCNumbers:   r.MergedOCLCNumbers.Slice(),
	}
	if b.Title == "" {
		b.Title = "Untitled"
	}
	return b
}

func (h briefHolding) institution() types.Institution {
	return types.Institution{
		Symbol:  strings.TrimSpace(string(h.OCLCSymbol)),
		Name:    string(h.InstitutionName),
		Country: string(h.Country),
		State:   string(h.State),
		Type:    string(h.InstitutionType),
	}
}

func parseFullBib(raw json.RawMessage, oclcNumber string) (*types.WorldCatFullBib, error) {
	var d fullBib
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}

	bib := &types.WorldCatFullBib{
		OCLCNumber:          oclcNumber,
		Contributors:        []types.Contributor{},
		ISBNs:               []string{},
		Edition:             string(d.Edition.EditionStatement),
		Language:            string(d.Language.ItemLanguage),
		LCClassification:    string(d.Classification.LC),
		DeweyClassification: string(d.Classification.Dewey),
		Subjects:            []types.Subject{},
		Genres:              d.Description.Genres.Slice(),
		GeneralFormat:       string(d.Format.GeneralFormat),
		SpecificFormat:      string(d.Format.SpecificFormat),
		PhysicalDescription: string(d.Description.PhysicalDescription),
		PublicationDate:     string(d.Date.PublicationDate),
		PublicationYear:     string(d.Date.MachineReadableDate),
	}

	if len(d.Title.MainTitles) > 0 {
		bib.Title = string(d.Title.MainTitles[0].Text)
	}
	if len(d.Publishers) > 0 {
		bib.Publisher = string(d.Publishers[0].PublisherName.Text)
		bib.PublicationPlace = string(d.Publishers[0].PublicationPlace)
	}

	for i, cr := range d.Contributor.Creators {
		name := cr.displayName()
		if i == 0 {
			bib.Creator = name
		}
		if name == "" {
			continue
		}
		role := string(cr.RelatorTerm.Text)
		if role == "" {
			role = "Creator"
		}
		bib.Contributors = append(bib.Contributors, types.Contributor{Name: name, Role: role})
	}

	for _, entry := range d.Identifier.ISBNs {
		if entry != "" {
			bib.ISBNs = append(bib.ISBNs, string(entry))
		}
	}

	if len(d.Series) > 0 {
		if name := string(d.Series[0].SeriesName.Text); name != "" {
			bib.Series = textfmt.JoinNonEmpty(", ", name, string(d.Series[0].SeriesVolume))
		}
	}

	for _, s := range d.Subjects {
		bib.Subjects = append(bib.Subjects, types.Subject{
			Name:       string(s.SubjectName.Text),
			Type:       string(s.SubjectType),
			Vocabulary: string(s.Vocabulary),
		})
	}
	return bib, nil
}

func (c fullCreator) displayName() string {
	if name := strings.TrimSpace(string(c.Name.Text)); name != "" {
		return name
	}
	return textfmt.JoinNonEmpty(" ", strings.TrimSpace(string(c.FirstName.Text)), strings.TrimSpace(string(c.SecondName.Text)))
}

// first returns the first brief record when the response reports any.
func (r searchResponse) first() (briefRecord, bool) {
	if r.NumberOfRecords <= 0 || len(r.BriefRecords) == 0 {
		return briefRecord{}, false
	}
	return r.BriefRecords[0], true
}

// WorldCat Metadata API JSON structures.
type searchResponse struct {
	NumberOfRecords httputil.FlexInt `json:"numberOfRecords"`
	BriefRecords    []briefRecord    `json:"briefRecords"`
}

type briefRecord struct {
	OCLCNumber          httputil.FlexString  `json:"oclcNumber"`
	Title               httputil.FlexString  `json:"title"`
	Creator             httputil.FlexString  `json:"creator"`
	Contributors        httputil.FlexStrings `json:"contributors"`
	Date                httputil.FlexString  `json:"date"`
	MachineReadableDate httputil.FlexString  `json:"machineReadableDate"`
	Publisher           httputil.FlexString  `json:"publisher"`
	PublicationPlace    httputil.FlexString  `json:"publicationPlace"`
	Edition             httputil.FlexString  `json:"edition"`
	Series              httputil.FlexString  `json:"series"`
	Language            httputil.FlexString  `json:"language"`
	GeneralFormat       httputil.FlexString  `json:"generalFormat"`
	SpecificFormat      httputil.FlexString  `json:"specificFormat"`
	ISBNs               httputil.FlexStrings `json:"isbns"`
	MergedOCLCNumbers   httputil.FlexStrings `json:"mergedOclcNumbers"`
}

type classificationResponse struct {
	LC    rankedClasses `json:"lc"`
	Dewey rankedClasses `json:"dewey"`
}

type rankedClasses struct {
	MostPopular httputil.FlexStrings `json:"mostPopular"`
}

type textValue struct {
	Text httputil.FlexString `json:"text"`
}

type fullBib struct {
	Title struct {
		MainTitles []textValue `json:"mainTitles"`
	} `json:"title"`
	Contributor struct {
		Creators []fullCreator `json:"creators"`
	} `json:"contributor"`
	Subjects []struct {
		SubjectName textValue           `json:"subjectName"`
		SubjectType httputil.FlexString `json:"subjectType"`
		Vocabulary  httputil.FlexString `json:"vocabulary"`
	} `json:"subjects"`
	Classification struct {
		LC    httputil.FlexString `json:"lc"`
		Dewey httputil.FlexString `json:"dewey"`
	} `json:"classification"`
	Publishers []struct {
		PublisherName    textValue           `json:"publisherName"`
		PublicationPlace httputil.FlexString `json:"publicationPlace"`
	} `json:"publishers"`
	Date struct {
		PublicationDate     httputil.FlexString `json:"publicationDate"`
		MachineReadableDate httputil.FlexString `json:"machineReadableDate"`
	} `json:"date"`
	Language struct {
		ItemLanguage httputil.FlexString `json:"itemLanguage"`
	} `json:"language"`
	Format struct {
		GeneralFormat  httputil.FlexString `json:"generalFormat"`
		SpecificFormat httputil.FlexString `json:"specificFormat"`
	} `json:"format"`
	Description struct {
		Genres              httputil.FlexStrings `json:"genres"`
		PhysicalDescription httputil.FlexString  `json:"physicalDescription"`
	} `json:"description"`
	Identifier struct {
		ISBNs []isbnEntry `json:"isbns"`
	} `json:"identifier"`
	Edition struct {
		EditionStatement httputil.FlexString `json:"editionStatement"`
	} `json:"edition"`
	Series []struct {
		SeriesName   textValue           `json:"seriesName"`
		SeriesVolume httputil.FlexString `json:"seriesVolume"`
	} `json:"series"`
}

type fullCreator struct {
	Name        textValue `json:"name"`
	FirstName   textValue `json:"firstName"`
	SecondName  textValue `json:"secondName"`
	RelatorTerm textValue `json:"relatorTerm"`
}

// isbnEntry decodes an ISBN given either as a string or as {"isbn": "..."}.
type isbnEntry string

func (e *isbnEntry) UnmarshalJSON(data []byte) error {
	var obj struct {
		ISBN httputil.FlexString `json:"isbn"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		*e = isbnEntry(obj.ISBN)
		return nil
	}
	var s httputil.FlexString
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*e = isbnEntry(s)
	return nil
}

// WorldCat Discovery API JSON structures.
type holdingsResponse struct {
	NumberOfRecords httputil.FlexInt `json:"numberOfRecords"`
	BriefRecords    []holdingsRecord `json:"briefRecords"`
}

type holdingsRecord struct {
	OCLCNumber         httputil.FlexString `json:"oclcNumber"`
	InstitutionHolding struct {
		TotalHoldingCount httputil.FlexInt `json:"totalHoldingCount"`
		BriefHoldings     []briefHolding   `json:"briefHoldings"`
	} `json:"institutionHolding"`
}

type briefHolding struct {
	OCLCSymbol      httputil.FlexString `json:"oclcSymbol"`
	InstitutionName httputil.FlexString `json:"institutionName"`
	Country         httputil.FlexString `json:"country"`
	State           httputil.FlexString `json:"state"`
	InstitutionType httputil.FlexString `json:"institutionType"`
}
