// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textfmt holds the text conventions shared by every formatter:
// HTML stripping, character-budget truncation, pluralization and
// title-casing. All lengths are counted in runes.
package textfmt

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Ellipsis marks a truncated preview.
const Ellipsis = "..."

var (
	htmlCommentRegex = regexp.MustCompile(`<!--[\s\S]*?-->`)
	htmlTagRegex     = regexp.MustCompile(`<[^>]+>`)
	blockBreakRegex  = regexp.MustCompile(`(?i)<br\s*/?>|</(?:p|div|li|h[1-6]|blockquote|tr)>`)
	multiSpaceRegex  = regexp.MustCompile(`\s+`)
)

// StripHTML removes tags and comments, decodes entities and collapses all
// whitespace runs to a single space.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	s = htmlCommentRegex.ReplaceAllString(s, "")
	s = blockBreakRegex.ReplaceAllString(s, " ")
	s = htmlTagRegex.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = multiSpaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Clip hard-truncates s to at most n runes with no marker.
func Clip(s string, n int) string {
	if n < 0 {
		n = 0
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Preview truncates s to n runes and appends Ellipsis when anything was cut.
func Preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return Clip(s, n) + Ellipsis
}

// Plural returns "1 work" or "3 works". plural defaults to singular+"s".
func Plural(n int, singular, plural string) string {
	if plural == "" {
		plural = singular + "s"
	}
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// TitleCase replaces underscores with spaces and upper-cases every letter
// that follows a non-letter, lower-casing the rest: "gc_etds" becomes
// "Gc Etds" and "o'neil_papers" becomes "O'Neil Papers".
func TitleCase(s string) string {
	s = strings.Join(strings.Fields(strings.ReplaceAll(s, "_", " ")), " ")
	var b strings.Builder
	b.Grow(len(s))
	afterLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if afterLetter {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToUpper(r)
			}
			afterLetter = true
		} else {
			afterLetter = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// JoinNonEmpty joins the non-blank parts with sep.
func JoinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// Head returns at most n items of list.
func Head[T any](list []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(list) <= n {
		return list
	}
	return list[:n]
}
