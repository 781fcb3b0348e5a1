// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/pdiddy/library-tools/internal/textfmt"
	"github.com/pdiddy/library-tools/pkg/types"
)

const (
	maxAuthors     = 5
	abstractBudget = 500
	untitled       = "Untitled"
)

func parseWork(raw json.RawMessage) (types.Work, error) {
	var w openAlexWork
	if err := json.Unmarshal(raw, &w); err != nil {
		return types.Work{}, err
	}

	work := types.Work{
		ID:              w.ID,
		Title:           w.Title,
		PublicationYear: w.PublicationYear,
		DOI:             w.DOI,
		CitedByCount:    w.CitedByCount,
		IsOpenAccess:    w.OpenAccess.IsOA,
		Authors:         []string{},
	}
	if work.Title == "" {
		work.Title = w.DisplayName
	}
	if work.Title == "" {
		work.Title = untitled
	}
	if w.PrimaryLocation != nil && w.PrimaryLocation.Source != nil {
		work.Journal = w.PrimaryLocation.Source.DisplayName
	}

	for _, a := range w.Authorships {
		if len(work.Authors) == maxAuthors {
			break
		}
		if a.Author.DisplayName != "" {
			work.Authors = append(work.Authors, a.Author.DisplayName)
		}
	}

	abstract := w.Abstract
	if abstract == "" {
		abstract = ReconstructAbstract(w.AbstractInvertedIndex)
	}
	work.Abstract = textfmt.Clip(abstract, abstractBudget)
	return work, nil
}

func parseAuthor(raw json.RawMessage) (types.Author, error) {
	var a openAlexAuthor
	if err := json.Unmarshal(raw, &a); err != nil {
		return types.Author{}, err
	}
	author := types.Author{
		ID:           a.ID,
		Name:         a.DisplayName,
		WorksCount:   a.WorksCount,
		CitedByCount: a.CitedByCount,
		HIndex:       a.SummaryStats.HIndex,
	}
	if len(a.Affiliations) > 0 {
		author.Institution = a.Affiliations[0].Institution.DisplayName
	}
	return author, nil
}

func parseJournal(raw json.RawMessage) (types.Journal, error) {
	var s openAlexSource
	if err := json.Unmarshal(raw, &s); err != nil {
		return types.Journal{}, err
	}
	return types.Journal{
		ID:           s.ID,
		Name:         s.DisplayName,
		ISSN:         s.ISSNL,
		Publisher:    s.HostOrganizationName,
		WorksCount:   s.WorksCount,
		IsOpenAccess: s.IsOA,
	}, nil
}

// ReconstructAbstract converts an abstract_inverted_index (word to token
// positions) back to text by ordering every (word, position) pair by
// position. Ties are broken by word so the output never depends on map
// iteration order.
func ReconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].pos != pairs[j].pos {
			return pairs[i].pos < pairs[j].pos
		}
		return pairs[i].word < pairs[j].word
	})

	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.word
	}
	return strings.Join(words, " ")
}

// OpenAlex API JSON structures.
type openAlexWork struct {
	ID                    string               `json:"id"`
	Title                 string               `json:"title"`
	DisplayName           string               `json:"display_name"`
	PublicationYear       *int                 `json:"publication_year"`
	DOI                   string               `json:"doi"`
	CitedByCount          int                  `json:"cited_by_count"`
	OpenAccess            openAlexOpenAccess   `json:"open_access"`
	Authorships           []openAlexAuthorship `json:"authorships"`
	PrimaryLocation       *openAlexLocation    `json:"primary_location"`
	Abstract              string               `json:"abstract"`
	AbstractInvertedIndex map[string][]int     `json:"abstract_inverted_index"`
}

type openAlexOpenAccess struct {
	IsOA bool `json:"is_oa"`
}

type openAlexAuthorship struct {
	Author openAlexNamed `json:"author"`
}

type openAlexLocation struct {
	Source *openAlexNamed `json:"source"`
}

type openAlexNamed struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type openAlexAuthor struct {
	ID           string                `json:"id"`
	DisplayName  string                `json:"display_name"`
	WorksCount   int                   `json:"works_count"`
	CitedByCount int                   `json:"cited_by_count"`
	SummaryStats openAlexSummaryStats  `json:"summary_stats"`
	Affiliations []openAlexAffiliation `json:"affiliations"`
}

type openAlexSummaryStats struct {
	HIndex *int `json:"h_index"`
}

type openAlexAffiliation struct {
	Institution openAlexNamed `json:"institution"`
}

type openAlexSource struct {
	ID                   string `json:"id"`
	DisplayName          string `json:"display_name"`
	ISSNL                string `json:"issn_l"`
	HostOrganizationName string `json:"host_organization_name"`
	WorksCount           int    `json:"works_count"`
	IsOA                 bool   `json:"is_oa"`
}
