// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoArgs struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func echoTool() Tool {
	return Tool{
		Name:        "echo",
		Description: "Echo the query.",
		InputSchema: Schema(
			Param{Name: "query", Type: "string", Required: true},
			Param{Name: "limit", Type: "integer", Default: 10},
		),
		Handler: Typed(func() echoArgs { return echoArgs{Limit: 10} }, func(_ context.Context, a echoArgs) string {
			return fmt.Sprintf("%s/%d", a.Query, a.Limit)
		}),
	}
}

func TestRegistryCall(t *testing.T) {
	r := NewRegistry([]Tool{echoTool()})

	tests := []struct {
		name string
		args string
		want string
	}{
		{"defaults fill omitted fields", `{"query":"cats"}`, "cats/10"},
		{"explicit values win", `{"query":"dogs","limit":3}`, "dogs/3"},
		{"null arguments", `null`, "/10"},
		{"empty arguments", ``, "/10"},
		{"malformed arguments become text", `{"limit":"many"}`, "Invalid input: the tool arguments could not be read"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Call(context.Background(), "echo", json.RawMessage(tt.args))
			require.NoError(t, err)
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestRegistryUnknownTool(t *testing.T) {
	r := NewRegistry([]Tool{echoTool()})
	_, err := r.Call(context.Background(), "nope", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown tool "nope"`)
	assert.Contains(t, err.Error(), "echo")
}

func TestRegistryRecoversPanics(t *testing.T) {
	boom := Tool{Name: "boom", Handler: func(context.Context, json.RawMessage) string {
		var m map[string]int
		m["x"] = 1
		return "unreachable"
	}}
	r := NewRegistry([]Tool{boom})

	got, err := r.Call(context.Background(), "boom", nil)
	require.NoError(t, err)
	assert.Equal(t, "An unexpected error occurred (PanicError). Please try rephrasing your request or contact support if the problem persists.", got)
	assert.NotContains(t, got, "nil map")
}

func TestRegistryOrderAndDuplicates(t *testing.T) {
	a := Tool{Name: "b_tool"}
	b := Tool{Name: "a_tool"}
	r := NewRegistry([]Tool{a}, []Tool{b})

	assert.Equal(t, []string{"a_tool", "b_tool"}, r.Names())
	got := r.Tools()
	require.Len(t, got, 2)
	assert.Equal(t, "b_tool", got[0].Name, "Tools keeps registration order")

	_, ok := r.Lookup("a_tool")
	assert.True(t, ok)
	_, ok = r.Lookup("c_tool")
	assert.False(t, ok)

	assert.Panics(t, func() { NewRegistry([]Tool{a}, []Tool{a}) })
}

func TestSchema(t *testing.T) {
	raw := Schema(
		Param{Name: "query", Type: "string", Description: "Search terms", Required: true},
		Param{Name: "field", Type: "string", Enum: []string{"any", "title"}, Default: "any"},
		Param{Name: "limit", Type: "integer", Minimum: Int(1), Maximum: Int(100), Default: 10},
		Param{Name: "institutions", Type: "array"},
	)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "object", got["type"])
	assert.Equal(t, []any{"query"}, got["required"])

	props := got["properties"].(map[string]any)
	limit := props["limit"].(map[string]any)
	assert.Equal(t, float64(1), limit["minimum"])
	assert.Equal(t, float64(100), limit["maximum"])
	field := props["field"].(map[string]any)
	assert.Equal(t, []any{"any", "title"}, field["enum"])
	inst := props["institutions"].(map[string]any)
	assert.Equal(t, map[string]any{"type": "string"}, inst["items"])

	noRequired := Schema(Param{Name: "search", Type: "string"})
	var bare map[string]any
	require.NoError(t, json.Unmarshal(noRequired, &bare))
	_, has := bare["required"]
	assert.False(t, has)
}
