// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import "encoding/json"

// Param describes one tool argument.
type Param struct {
	Name        string
	Type        string // "string", "integer", "boolean", "array"
	Description string
	Required    bool
	Enum        []string
	Default     any
	Minimum     *int
	Maximum     *int

	// Items is the element type for array parameters.
	Items string
}

// Int returns a pointer to n, for Minimum and Maximum.
func Int(n int) *int { return &n }

// Schema builds a JSON Schema object for params.
func Schema(params ...Param) json.RawMessage {
	props := make(map[string]any, len(params))
	required := []string{}
	for _, p := range params {
		prop := map[string]any{"type": p.Type}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		if p.Default != nil {
			prop["default"] = p.Default
		}
		if p.Minimum != nil {
			prop["minimum"] = *p.Minimum
		}
		if p.Maximum != nil {
			prop["maximum"] = *p.Maximum
		}
		if p.Type == "array" {
			items := p.Items
			if items == "" {
				items = "string"
			}
			prop["items"] = map[string]any{"type": items}
		}
		props[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}

	schema := map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	data, err := json.Marshal(schema)
	if err != nil {
		panic(err)
	}
	return data
}
