// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package libguides

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/pdiddy/library-tools/internal/httputil"
	"github.com/pdiddy/library-tools/pkg/types"
)

func parseDatabase(raw json.RawMessage) (types.Database, error) {
	var d lgDatabase
	if err := json.Unmarshal(raw, &d); err != nil {
		return types.Database{}, err
	}

	db := types.Database{
		ID:            int(d.ID),
		Name:          string(d.Name),
		Description:   string(d.Description),
		URL:           string(d.URL),
		AltNames:      d.AltNames.Slice(),
		Subjects:      names(d.Subjects),
		Types:         names(d.Types),
		RequiresProxy: bool(d.EnableProxy),
	}
	if v, ok := object[lgNamed](d.Vendor); ok {
		db.Vendor = v.Name
	}
	return db, nil
}

func parseGuide(raw json.RawMessage) (types.Guide, error) {
	var g lgGuide
	if err := json.Unmarshal(raw, &g); err != nil {
		return types.Guide{}, err
	}

	guide := types.Guide{
		ID:          int(g.ID),
		Name:        string(g.Name),
		Description: string(g.Description),
		URL:         string(g.FriendlyURL),
		Pages:       make([]types.GuidePage, 0, len(g.Pages)),
		StatusLabel: string(g.StatusLabel),
	}
	if guide.URL == "" {
		guide.URL = string(g.URL)
	}
	for _, p := range g.Pages {
		guide.Pages = append(guide.Pages, types.GuidePage{ID: int(p.ID), Name: string(p.Name), URL: string(p.URL)})
	}
	if o, ok := object[lgOwner](g.Owner); ok {
		guide.OwnerName = strings.TrimSpace(o.FirstName + " " + o.LastName)
	}
	return guide, nil
}

func names(list []lgNamed) []string {
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.Name
	}
	return out
}

// object decodes raw into T when it holds a JSON object. Anything else
// (absent, null, a string, a list) reports false.
func object[T any](raw json.RawMessage) (T, bool) {
	var v T
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return v, false
	}
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return v, false
	}
	return v, true
}

// flag decodes true/false as well as the 0/1 integers some LibGuides
// endpoints use for booleans.
type flag bool

func (f *flag) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(bytes.TrimSpace(data)), `"`) {
	case "true", "1":
		*f = true
	default:
		*f = false
	}
	return nil
}

// LibGuides API JSON structures.
type lgDatabase struct {
	ID          httputil.FlexInt     `json:"id"`
	Name        httputil.FlexString  `json:"name"`
	Description httputil.FlexString  `json:"description"`
	URL         httputil.FlexString  `json:"url"`
	AltNames    httputil.FlexStrings `json:"alt_names"`
	Subjects    []lgNamed            `json:"subjects"`
	Types       []lgNamed            `json:"types"`
	Vendor      json.RawMessage      `json:"vendor"`
	EnableProxy flag                 `json:"enable_proxy"`
}

type lgNamed struct {
	ID   httputil.FlexInt `json:"id"`
	Name string           `json:"name"`
}

type lgGuide struct {
	ID          httputil.FlexInt    `json:"id"`
	Name        httputil.FlexString `json:"name"`
	Description httputil.FlexString `json:"description"`
	URL         httputil.FlexString `json:"url"`
	FriendlyURL httputil.FlexString `json:"friendly_url"`
	StatusLabel httputil.FlexString `json:"status_label"`
	Owner       json.RawMessage     `json:"owner"`
	Pages       []lgPage            `json:"pages"`
}

type lgPage struct {
	ID   httputil.FlexInt    `json:"id"`
	Name httputil.FlexString `json:"name"`
	URL  httputil.FlexString `json:"url"`
}

type lgOwner struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
