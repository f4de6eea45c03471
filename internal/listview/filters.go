package listview

import (
	"strings"

	"github.com/cristianoliveira/student-roster/internal/domain"
)

// FilterDraft is the state of the filter editor for one column.
type FilterDraft struct {
	Column   string
	Operator domain.FilterOperator
	Value    string
}

// CycleOperator moves the draft to the next operator.
func (d *FilterDraft) CycleOperator() {
	d.Operator = d.Operator.Next()
}

// OpenFilter returns a draft pre-populated with column's current filter, or
// the default operator and an empty value.
func (c *Controller) OpenFilter(column string) FilterDraft {
	if f, ok := c.filters.Get(column); ok {
		return FilterDraft{Column: column, Operator: f.Operator, Value: f.Value}
	}
	return FilterDraft{Column: column, Operator: domain.DefaultFilterOperator}
}

// CommitFilter applies the draft. A blank value removes the column's filter.
func (c *Controller) CommitFilter(d FilterDraft) Effect {
	if !domain.IsStudentColumn(d.Column) {
		return nil
	}
	next := c.filters.Clone()
	if strings.TrimSpace(d.Value) == "" {
		next.Remove(d.Column)
	} else {
		op := d.Operator
		if !op.IsValid() {
			op = domain.DefaultFilterOperator
		}
		next.Set(domain.Filter{Field: d.Column, Operator: op, Value: d.Value})
	}
	c.filters = next
	return c.Reload(clearExpanded)
}

// ClearFilter removes column's filter.
func (c *Controller) ClearFilter(column string) Effect {
	return c.CommitFilter(FilterDraft{Column: column})
}

// IsColumnFiltered reports whether column has a filter.
func (c *Controller) IsColumnFiltered(column string) bool {
	return c.filters.Has(column)
}

// Filters returns a copy of the active filters.
func (c *Controller) Filters() domain.FilterSpec {
	return c.filters.Clone()
}
