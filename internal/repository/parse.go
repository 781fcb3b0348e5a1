// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package repository

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pdiddy/library-tools/internal/httputil"
	"github.com/pdiddy/library-tools/internal/textfmt"
	"github.com/pdiddy/library-tools/pkg/types"
)

// parseWork normalizes one query result. The abstract is only kept when
// detailed is set.
func parseWork(raw json.RawMessage, detailed bool) (types.RepositoryWork, error) {
	var d bepressWork
	if err := json.Unmarshal(raw, &d); err != nil {
		return types.RepositoryWork{}, err
	}

	work := types.RepositoryWork{
		Title:            string(d.Title),
		Authors:          d.Author.Slice(),
		PublicationYear:  textfmt.Clip(firstNonEmpty(d.PublicationYear, d.PublicationDate), 4),
		DocumentType:     string(d.DocumentType),
		URL:              string(d.URL),
		FulltextURL:      string(d.FulltextURL),
		Keywords:         keywords(d.Keywords),
		PublicationTitle: string(d.PublicationTitle),
		Advisor:          firstNonEmpty(d.Advisor, d.CommitteeMember),
	}
	if work.Title == "" {
		work.Title = "Untitled"
	}
	if len(work.Keywords) == 0 {
		work.Keywords = keywords(d.Subject)
	}
	if link := strings.TrimRight(string(d.ParentLink), "/"); link != "" {
		work.Collection = link[strings.LastIndex(link, "/")+1:]
		work.CollectionName = textfmt.TitleCase(work.Collection)
	}
	if detailed {
		work.Abstract = textfmt.StripHTML(string(d.Abstract))
	}
	return work, nil
}

// keywords accepts a list, or a single comma-separated string.
func keywords(raw json.RawMessage) []string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil && s != "" {
			parts := strings.Split(s, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return parts
		}
		return []string{}
	}
	var list httputil.FlexStrings
	if len(trimmed) > 0 {
		_ = json.Unmarshal(trimmed, &list)
	}
	return list.Slice()
}

func firstNonEmpty(values ...httputil.FlexString) string {
	for _, v := range values {
		if s := strings.TrimSpace(string(v)); s != "" {
			return s
		}
	}
	return ""
}

// bePress content-out JSON structures.
type bepressWork struct {
	Title            httputil.FlexString  `json:"title"`
	Author           httputil.FlexStrings `json:"author"`
	PublicationYear  httputil.FlexString  `json:"publication_year"`
	PublicationDate  httputil.FlexString  `json:"publication_date"`
	DocumentType     httputil.FlexString  `json:"document_type"`
	URL              httputil.FlexString  `json:"url"`
	FulltextURL      httputil.FlexString  `json:"fulltext_url"`
	ParentLink       httputil.FlexString  `json:"parent_link"`
	Abstract         httputil.FlexString  `json:"abstract"`
	Keywords         json.RawMessage      `json:"keywords"`
	Subject          json.RawMessage      `json:"subject"`
	PublicationTitle httputil.FlexString  `json:"publication_title"`
	Advisor          httputil.FlexString  `json:"advisor"`
	CommitteeMember  httputil.FlexString  `json:"committee_member"`
}
