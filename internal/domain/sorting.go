package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Student columns. Names follow the wire format so they can be sent as-is.
const (
	ColumnSchoolID  = "studentSchoolId"
	ColumnFirstName = "firstName"
	ColumnLastName  = "lastName"
	ColumnEmail     = "studentEmail"
)

// Detail columns.
const (
	ColumnTermCreatedDate = "termCreatedDate"
	ColumnTerm            = "term"
	ColumnCourse          = "course"
	ColumnGrade           = "grade"
)

// StudentColumns lists the student columns in display order.
var StudentColumns = []string{ColumnSchoolID, ColumnFirstName, ColumnLastName, ColumnEmail}

// DetailColumns lists the detail columns in display order.
var DetailColumns = []string{ColumnTermCreatedDate, ColumnTerm, ColumnCourse, ColumnGrade}

// IsStudentColumn reports whether column is a known student column.
func IsStudentColumn(column string) bool {
	for _, c := range StudentColumns {
		if c == column {
			return true
		}
	}
	return false
}

// IsDetailColumn reports whether column is a known detail column.
func IsDetailColumn(column string) bool {
	for _, c := range DetailColumns {
		if c == column {
			return true
		}
	}
	return false
}

// SortDirection specifies the sort direction of a column.
type SortDirection string

const (
	SortNone SortDirection = ""
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// IsValid checks if the sort direction is valid.
func (d SortDirection) IsValid() bool {
	switch d {
	case SortNone, SortAsc, SortDesc:
		return true
	default:
		return false
	}
}

// Next returns the direction that follows d when a header is clicked:
// none -> asc -> desc -> none.
func (d SortDirection) Next() SortDirection {
	switch d {
	case SortAsc:
		return SortDesc
	case SortDesc:
		return SortNone
	default:
		return SortAsc
	}
}

// String returns the string representation of the sort direction.
func (d SortDirection) String() string {
	if d == SortNone {
		return "none"
	}
	return string(d)
}

// ParseSortDirection parses a string into a SortDirection.
// "none" and the empty string both map to SortNone.
func ParseSortDirection(direction string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "", "none":
		return SortNone, nil
	case "asc", "ascending":
		return SortAsc, nil
	case "desc", "descending":
		return SortDesc, nil
	default:
		return SortNone, fmt.Errorf("invalid sort direction: %s", direction)
	}
}

// SortSpec is the single active sort column and its direction.
type SortSpec struct {
	Column    string        `json:"sortColumn"`
	Direction SortDirection `json:"sortDirection"`
}

// IsActive reports whether s orders rows at all.
func (s SortSpec) IsActive() bool {
	return s.Column != "" && s.Direction != SortNone
}

// DirectionFor returns the direction applied to column; every column other
// than the active one is unsorted.
func (s SortSpec) DirectionFor(column string) SortDirection {
	if s.Column != column {
		return SortNone
	}
	return s.Direction
}

// Toggle returns the sort produced by clicking column's header.
// Clicking resets every other column to none.
func (s SortSpec) Toggle(column string) SortSpec {
	return SortSpec{Column: column, Direction: s.DirectionFor(column).Next()}
}

// DefaultStudentSort returns the initial student sort (last name ascending).
func DefaultStudentSort() SortSpec {
	return SortSpec{Column: ColumnLastName, Direction: SortAsc}
}

// DefaultDetailSort returns the initial detail sort (newest term first).
func DefaultDetailSort() SortSpec {
	return SortSpec{Column: ColumnTermCreatedDate, Direction: SortDesc}
}

// valuer is implemented by rows that can be sorted and filtered by column.
type valuer interface {
	Value(column string) string
}

// SortRows sorts rows by s and returns a new slice without modifying
// the original. Comparison ignores ASCII case and is stable.
func SortRows[T valuer](rows []T, spec SortSpec) []T {
	sorted := make([]T, len(rows))
	copy(sorted, rows)
	if !spec.IsActive() || len(sorted) < 2 {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a := FoldCase(sorted[i].Value(spec.Column))
		b := FoldCase(sorted[j].Value(spec.Column))
		if spec.Direction == SortDesc {
			return a > b
		}
		return a < b
	})

	return sorted
}
