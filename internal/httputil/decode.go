// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// DecodeEach parses every raw item independently. Items whose parse fails
// are dropped and logged at warn level; the count of dropped items is
// returned alongside the kept records. The result is never nil.
func DecodeEach[T any](service string, raws []json.RawMessage, parse func(json.RawMessage) (T, error)) ([]T, int) {
	out := make([]T, 0, len(raws))
	dropped := 0
	for i, raw := range raws {
		rec, err := parse(raw)
		if err != nil {
			dropped++
			slog.Warn("dropping malformed record", "service", service, "index", i, "error", err)
			continue
		}
		out = append(out, rec)
	}
	return out, dropped
}

// FlexStrings decodes a JSON field that may be a string, a list of strings,
// a list of mixed scalars, or null. The decoded value is never nil.
type FlexStrings []string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*f = FlexStrings{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		for _, item := range items {
			var s FlexString
			if err := json.Unmarshal(item, &s); err != nil {
				return err
			}
			if v := strings.TrimSpace(string(s)); v != "" {
				*f = append(*f, v)
			}
		}
		return nil
	}
	var s FlexString
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if v := strings.TrimSpace(string(s)); v != "" {
		*f = FlexStrings{v}
	}
	return nil
}

// First returns the first element or "".
func (f FlexStrings) First() string {
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

// Slice returns the values as a plain, non-nil slice.
func (f FlexStrings) Slice() []string {
	if f == nil {
		return []string{}
	}
	return []string(f)
}

// FlexString decodes a JSON scalar (string, number, bool) or null into a
// string. A list decodes to its first element.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
	case '[':
		var items []FlexString
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*f = ""
		if len(items) > 0 {
			*f = items[0]
		}
	case '{':
		return errors.New("cannot decode object as string")
	default:
		*f = FlexString(string(data))
	}
	return nil
}

// FlexInt decodes a JSON number or numeric string. Anything else is zero.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var s FlexString
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(string(s)), 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(int(n))
	return nil
}
