// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package primo

import (
	"encoding/json"
	"strings"

	"github.com/pdiddy/library-tools/internal/httputil"
	"github.com/pdiddy/library-tools/pkg/types"
)

// maxAuthors caps the contributors kept per document.
const maxAuthors = 5

// untitled stands in for a record without a display title.
const untitled = "Untitled"

// parseDocument maps one PNX record to a CatalogDocument. Any shape mismatch
// is returned as an error so the caller drops the record.
func (c *Client) parseDocument(raw json.RawMessage) (types.CatalogDocument, error) {
	var d primoDoc
	if err := json.Unmarshal(raw, &d); err != nil {
		return types.CatalogDocument{}, err
	}
	display := d.PNX.Display

	doc := types.CatalogDocument{
		Title:     display.Title.First(),
		Authors:   display.Contributor.Slice(),
		Format:    display.Type.First(),
		Publisher: display.Publisher.First(),
		ISSN:      d.PNX.Addata.ISSN.First(),
	}
	if doc.Title == "" {
		doc.Title = untitled
	}
	if len(doc.Authors) > maxAuthors {
		doc.Authors = doc.Authors[:maxAuthors]
	}
	if date := display.CreationDate.First(); date != "" {
		doc.PublicationYear = firstN(date, 4)
	}
	if doc.ISSN == "" {
		doc.ISBN = display.Identifier.First()
	}

	doc.Permalink = c.Permalink(d.PNX.Control.RecordID.First(), strings.TrimSpace(string(d.Context)))

	if len(d.Delivery.Availability) > 0 {
		doc.IsAvailable = true
		doc.AvailabilityStatus = d.Delivery.Availability.First()
	}
	return doc, nil
}

func firstN(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

// PNX record JSON structures.
type primoDoc struct {
	Context  httputil.FlexString `json:"context"`
	PNX      pnx                 `json:"pnx"`
	Delivery delivery            `json:"delivery"`
}

type pnx struct {
	Display pnxDisplay `json:"display"`
	Control pnxControl `json:"control"`
	Addata  pnxAddata  `json:"addata"`
}

type pnxDisplay struct {
	Title        httputil.FlexStrings `json:"title"`
	Contributor  httputil.FlexStrings `json:"contributor"`
	CreationDate httputil.FlexStrings `json:"creationdate"`
	Type         httputil.FlexStrings `json:"type"`
	Publisher    httputil.FlexStrings `json:"publisher"`
	Identifier   httputil.FlexStrings `json:"identifier"`
}

type pnxControl struct {
	RecordID httputil.FlexStrings `json:"recordid"`
}

type pnxAddata struct {
	ISSN httputil.FlexStrings `json:"issn"`
}

type delivery struct {
	Availability httputil.FlexStrings `json:"availability"`
}
