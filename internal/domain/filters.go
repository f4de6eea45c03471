package domain

import (
	"fmt"
	"sort"
	"strings"
)

// FilterOperator is the comparison applied by a column filter.
// Values are the labels shown in the filter editor and sent over the wire.
type FilterOperator string

const (
	OpEquals      FilterOperator = "Is equal to"
	OpNotEquals   FilterOperator = "Is not equal to"
	OpStartsWith  FilterOperator = "Starts with"
	OpContains    FilterOperator = "Contains"
	OpNotContains FilterOperator = "Does not contain"
	OpEndsWith    FilterOperator = "Ends with"
)

// DefaultFilterOperator is used when a column has no filter yet.
const DefaultFilterOperator = OpEquals

// FilterOperators lists the operators in the order the editor cycles them.
var FilterOperators = []FilterOperator{OpEquals, OpNotEquals, OpStartsWith, OpContains, OpNotContains, OpEndsWith}

var operatorAliases = map[string]FilterOperator{
	"eq":           OpEquals,
	"ne":           OpNotEquals,
	"sw":           OpStartsWith,
	"contains":     OpContains,
	"nc":           OpNotContains,
	"ew":           OpEndsWith,
	"equals":       OpEquals,
	"not-equals":   OpNotEquals,
	"starts-with":  OpStartsWith,
	"not-contains": OpNotContains,
	"ends-with":    OpEndsWith,
}

// IsValid checks if the operator is one of the fixed enumeration.
func (o FilterOperator) IsValid() bool {
	for _, op := range FilterOperators {
		if op == o {
			return true
		}
	}
	return false
}

// String returns the string representation of the operator.
func (o FilterOperator) String() string {
	return string(o)
}

// Next returns the operator after o in FilterOperators, wrapping around.
func (o FilterOperator) Next() FilterOperator {
	for i, op := range FilterOperators {
		if op == o {
			return FilterOperators[(i+1)%len(FilterOperators)]
		}
	}
	return DefaultFilterOperator
}

// FoldCase lower-cases ASCII letters and leaves every other rune alone, the
// same folding SQLite applies in LOWER() and COLLATE NOCASE.
func FoldCase(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

// Match reports whether candidate satisfies the operator against value.
// Comparison ignores ASCII case.
func (o FilterOperator) Match(candidate, value string) bool {
	c := FoldCase(candidate)
	v := FoldCase(value)
	switch o {
	case OpEquals:
		return c == v
	case OpNotEquals:
		return c != v
	case OpStartsWith:
		return strings.HasPrefix(c, v)
	case OpContains:
		return strings.Contains(c, v)
	case OpNotContains:
		return !strings.Contains(c, v)
	case OpEndsWith:
		return strings.HasSuffix(c, v)
	default:
		return false
	}
}

// ParseFilterOperator parses an operator label or one of its short forms.
func ParseFilterOperator(operator string) (FilterOperator, error) {
	trimmed := strings.TrimSpace(operator)
	for _, op := range FilterOperators {
		if strings.EqualFold(string(op), trimmed) {
			return op, nil
		}
	}
	if op, ok := operatorAliases[strings.ToLower(trimmed)]; ok {
		return op, nil
	}
	return "", fmt.Errorf("invalid filter operator: %s", operator)
}

// Filter is a predicate on one column.
type Filter struct {
	Field    string         `json:"field"`
	Operator FilterOperator `json:"operator"`
	Value    string         `json:"value"`
}

// Matches reports whether the row satisfies the filter.
func (f Filter) Matches(row valuer) bool {
	return f.Operator.Match(row.Value(f.Field), f.Value)
}

// ParseFilter parses the "field:operator:value" form used on the command line.
// The value may itself contain colons.
func ParseFilter(raw string) (Filter, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) != 3 {
		return Filter{}, fmt.Errorf("invalid filter %q: expected field:operator:value", raw)
	}
	if !IsStudentColumn(parts[0]) {
		return Filter{}, fmt.Errorf("invalid filter %q: unknown column %s", raw, parts[0])
	}
	op, err := ParseFilterOperator(parts[1])
	if err != nil {
		return Filter{}, err
	}
	return Filter{Field: parts[0], Operator: op, Value: parts[2]}, nil
}

// FilterSpec maps a column to its filter. Columns absent from the map are unfiltered.
type FilterSpec map[string]Filter

// Set adds or replaces the filter for f.Field.
func (fs FilterSpec) Set(f Filter) {
	fs[f.Field] = f
}

// Remove drops the filter of column.
func (fs FilterSpec) Remove(column string) {
	delete(fs, column)
}

// Get returns the filter of column, if any.
func (fs FilterSpec) Get(column string) (Filter, bool) {
	f, ok := fs[column]
	return f, ok
}

// Has reports whether column is filtered.
func (fs FilterSpec) Has(column string) bool {
	_, ok := fs[column]
	return ok
}

// Len returns the number of filtered columns.
func (fs FilterSpec) Len() int {
	return len(fs)
}

// Clone returns an independent copy of the spec.
func (fs FilterSpec) Clone() FilterSpec {
	clone := make(FilterSpec, len(fs))
	for k, v := range fs {
		clone[k] = v
	}
	return clone
}

// Sorted returns the filters ordered by field name.
func (fs FilterSpec) Sorted() []Filter {
	out := make([]Filter, 0, len(fs))
	for _, f := range fs {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// Matches reports whether the row satisfies every filter.
func (fs FilterSpec) Matches(row valuer) bool {
	for _, f := range fs {
		if !f.Matches(row) {
			return false
		}
	}
	return true
}

// FilterRows returns the rows matching every filter in the spec.
func FilterRows[T valuer](rows []T, fs FilterSpec) []T {
	if len(fs) == 0 {
		return rows
	}
	result := make([]T, 0, len(rows))
	for _, r := range rows {
		if fs.Matches(r) {
			result = append(result, r)
		}
	}
	return result
}
