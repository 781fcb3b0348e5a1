// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEach(t *testing.T) {
	raws := []json.RawMessage{
		json.RawMessage(`{"n":1}`),
		json.RawMessage(`{"n":"bad"}`),
		json.RawMessage(`{"n":3}`),
	}
	parse := func(raw json.RawMessage) (int, error) {
		var v struct {
			N int `json:"n"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return 0, err
		}
		return v.N, nil
	}

	got, dropped := DecodeEach("test", raws, parse)
	assert.Equal(t, []int{1, 3}, got)
	assert.Equal(t, 1, dropped)

	empty, dropped := DecodeEach("test", nil, func(json.RawMessage) (int, error) { return 0, errors.New("x") })
	assert.NotNil(t, empty, "result is never nil")
	assert.Empty(t, empty)
	assert.Equal(t, 0, dropped)
}

func TestFlexStrings(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want FlexStrings
	}{
		{"string", `"Thesis"`, FlexStrings{"Thesis"}},
		{"list", `["Ada Lovelace", " Alan Turing "]`, FlexStrings{"Ada Lovelace", "Alan Turing"}},
		{"mixed scalars", `["a", 2, null, ""]`, FlexStrings{"a", "2"}},
		{"null", `null`, FlexStrings{}},
		{"blank string", `"  "`, FlexStrings{}},
		{"number", `2021`, FlexStrings{"2021"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got struct {
				V FlexStrings `json:"v"`
			}
			require.NoError(t, json.Unmarshal([]byte(`{"v":`+tt.in+`}`), &got))
			assert.Equal(t, tt.want, got.V)
		})
	}

	var missing struct {
		V FlexStrings `json:"v"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &missing))
	assert.Equal(t, "", missing.V.First())
}

func TestFlexStringAndInt(t *testing.T) {
	var v struct {
		S1 FlexString `json:"s1"`
		S2 FlexString `json:"s2"`
		S3 FlexString `json:"s3"`
		I1 FlexInt    `json:"i1"`
		I2 FlexInt    `json:"i2"`
		I3 FlexInt    `json:"i3"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"s1":"x","s2":42,"s3":["first","second"],"i1":7,"i2":"12","i3":"n/a"}`), &v))
	assert.Equal(t, FlexString("x"), v.S1)
	assert.Equal(t, FlexString("42"), v.S2)
	assert.Equal(t, FlexString("first"), v.S3)
	assert.Equal(t, FlexInt(7), v.I1)
	assert.Equal(t, FlexInt(12), v.I2)
	assert.Equal(t, FlexInt(0), v.I3)

	var obj struct {
		S FlexString `json:"s"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"s":{"a":1}}`), &obj))
}
