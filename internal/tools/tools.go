// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tools defines the LLM tool surface: a Tool pairs a name,
// description and JSON Schema with a handler that always returns text.
// Each service package exports its own []Tool; a Registry collects them and
// dispatches calls by name.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/pdiddy/library-tools/internal/toolerr"
)

// Handler executes a tool with JSON-encoded arguments. It returns text for
// both success and failure.
type Handler func(ctx context.Context, args json.RawMessage) string

// Tool is one LLM-callable operation.
type Tool struct {
	// Name is the snake_case tool name (e.g. "search_primo").
	Name string `json:"name" yaml:"name"`

	// Description tells the model when to use the tool.
	Description string `json:"description" yaml:"description"`

	// InputSchema is the JSON Schema for the arguments object.
	InputSchema json.RawMessage `json:"input_schema" yaml:"-"`

	Handler Handler `json:"-" yaml:"-"`
}

// Typed adapts fn to a Handler. Arguments are decoded into the value
// returned by defaults, so omitted fields keep their documented defaults.
// Undecodable arguments become a validation message.
func Typed[A any](defaults func() A, fn func(context.Context, A) string) Handler {
	return func(ctx context.Context, raw json.RawMessage) string {
		args := defaults()
		raw = bytes.TrimSpace(raw)
		if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
			if err := json.Unmarshal(raw, &args); err != nil {
				return toolerr.FormatForLLM(toolerr.NewValidationError("arguments",
					fmt.Sprintf("decoding arguments: %v", err),
					"Invalid input: the tool arguments could not be read. Please check parameter names and types and try again."))
			}
		}
		return fn(ctx, args)
	}
}

// PanicError carries a value recovered from a panicking handler.
type PanicError struct {
	Tool  string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("tool %s panicked: %v", e.Tool, e.Value)
}

// Registry dispatches tool calls by name.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry registers every tool in sets. A duplicate name is a programming
// error and panics.
func NewRegistry(sets ...[]Tool) *Registry {
	r := &Registry{tools: map[string]Tool{}}
	for _, set := range sets {
		for _, t := range set {
			if _, dup := r.tools[t.Name]; dup {
				panic(fmt.Sprintf("tools: duplicate tool name %q", t.Name))
			}
			r.tools[t.Name] = t
			r.order = append(r.order, t.Name)
		}
	}
	return r
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Names returns the registered tool names, sorted.
func (r *Registry) Names() []string {
	names := append([]string(nil), r.order...)
	sort.Strings(names)
	return names
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Call runs the named tool. The only error is an unknown tool name; every
// failure inside the tool, including a panic, is returned as text.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (out string, err error) {
	t, ok := r.Lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown tool %q (available: %s)", name, strings.Join(r.Names(), ", "))
	}

	defer func() {
		if v := recover(); v != nil {
			perr := &PanicError{Tool: name, Value: v}
			slog.Error("tool panicked", "tool", name, "panic", v)
			out, err = toolerr.FormatForLLM(perr), nil
		}
	}()

	slog.Debug("calling tool", "tool", name)
	return t.Handler(ctx, args), nil
}
