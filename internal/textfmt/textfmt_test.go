// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textfmt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "plain text", "plain text"},
		{"tags", "<p>Resources for <strong>nursing</strong> students.</p>", "Resources for nursing students."},
		{"entities", "Tom &amp; Jerry&#39;s", "Tom & Jerry's"},
		{"block breaks", "<p>one</p><p>two</p>line<br/>three", "one two line three"},
		{"comments", "a<!-- hidden -->b", "ab"},
		{"whitespace", "  a \n\n\t b  ", "a b"},
		{"attributes", `<a href="https://x.edu">link</a>`, "link"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTML(tt.in))
		})
	}
}

func TestPreviewAndClip(t *testing.T) {
	assert.Equal(t, "short", Preview("short", 10))
	assert.Equal(t, "exactly10!", Preview("exactly10!", 10))
	assert.Equal(t, "abcde...", Preview("abcdefghij", 5))
	assert.Equal(t, "ééé...", Preview("éééééé", 3), "counts runes, not bytes")

	long := strings.Repeat("x", 600)
	assert.Len(t, Clip(long, 500), 500)
	assert.Equal(t, "abc", Clip("abc", 500))
	assert.Equal(t, "", Clip("abc", -1))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 work", Plural(1, "work", ""))
	assert.Equal(t, "0 works", Plural(0, "work", ""))
	assert.Equal(t, "3 libraries", Plural(3, "library", "libraries"))
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"gc_etds", "Gc Etds"},
		{"CC_PUBS", "Cc Pubs"},
		{"single", "Single"},
		{"", ""},
		{"a__b", "A B"},
		{"o'neil_papers", "O'Neil Papers"},
		{"open-access_works", "Open-Access Works"},
		{"2nd_ed", "2Nd Ed"},
		{"études_françaises", "Études Françaises"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleCase(tt.in))
		})
	}
}

func TestJoinNonEmptyAndHead(t *testing.T) {
	assert.Equal(t, "a | c", JoinNonEmpty(" | ", "a", "", " ", "c"))
	assert.Equal(t, "", JoinNonEmpty(", "))
	assert.Equal(t, []int{1, 2}, Head([]int{1, 2, 3}, 2))
	assert.Equal(t, []int{1}, Head([]int{1}, 5))
	assert.Empty(t, Head([]int{1}, -1))
}
