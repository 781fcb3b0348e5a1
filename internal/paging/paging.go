// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package paging clamps caller-supplied page sizes and offsets into the
// ranges each upstream accepts. Out-of-range input never fails; it is
// silently pulled into range, and clamping is idempotent.
package paging

// Range is an inclusive [Min, Max] bound for a page size.
type Range struct {
	Min, Max int
}

// Page-size ranges per operation.
var (
	Catalog        = Range{1, 100}
	Works          = Range{1, 100}
	AuthorWorks    = Range{1, 200}
	Databases      = Range{1, 100}
	Guides         = Range{1, 100}
	Repository     = Range{1, 1000}
	WorldCatSearch = Range{1, 50}
)

// Clamp pulls n into r.
func (r Range) Clamp(n int) int {
	return Clamp(n, r.Min, r.Max)
}

// Clamp pulls n into [lo, hi].
func Clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// AtLeast returns n, or lo when n is smaller. Zero-based offsets use
// AtLeast(n, 0); one-based pages and offsets use AtLeast(n, 1).
func AtLeast(n, lo int) int {
	if n < lo {
		return lo
	}
	return n
}

// NextOffset returns the one-based offset of the page after the one starting
// at offset with the given size: 1, 1+size, 1+2*size, ...
func NextOffset(offset, size int) int {
	return AtLeast(offset, 1) + size
}
