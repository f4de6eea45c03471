package domain

import "math"

// UnboundedPageSize requests every row of the result in a single page.
const UnboundedPageSize = math.MaxInt32

// PageWindow is a zero-based page index and a positive page size.
type PageWindow struct {
	Index int `json:"page"`
	Size  int `json:"pageSize"`
}

// Unbounded returns the window covering the entire result set.
func Unbounded() PageWindow {
	return PageWindow{Index: 0, Size: UnboundedPageSize}
}

// IsUnbounded reports whether the window covers the entire result set.
func (w PageWindow) IsUnbounded() bool {
	return w.Size >= UnboundedPageSize
}

// IsValid reports whether the index is non-negative and the size positive.
func (w PageWindow) IsValid() bool {
	return w.Index >= 0 && w.Size > 0
}

// Offset returns the number of rows preceding the window.
func (w PageWindow) Offset() int {
	if w.IsUnbounded() {
		return 0
	}
	return w.Index * w.Size
}

// PageCount returns the number of pages needed for total rows (at least 1).
func (w PageWindow) PageCount(total int) int {
	if w.Size <= 0 || total <= 0 {
		return 1
	}
	return (total + w.Size - 1) / w.Size
}

// LastIndex returns the last valid zero-based page index for total rows.
func (w PageWindow) LastIndex(total int) int {
	return w.PageCount(total) - 1
}

// Slice returns the part of rows covered by the window.
func Slice[T any](rows []T, w PageWindow) []T {
	start := w.Offset()
	if start >= len(rows) {
		return []T{}
	}
	end := len(rows)
	if !w.IsUnbounded() && start+w.Size < end {
		end = start + w.Size
	}
	out := make([]T, end-start)
	copy(out, rows[start:end])
	return out
}

// Query bundles the parameters of a list request.
type Query struct {
	Sort    SortSpec
	Filters FilterSpec
	Window  PageWindow
}

// Page is one window of an ordered, filtered result and the result's total size.
type Page[T any] struct {
	Rows  []T
	Total int
}
