package listview

import "github.com/cristianoliveira/student-roster/internal/domain"

// ToggleSort rotates column's direction (none, asc, desc) and resets every
// other column. Unknown columns are ignored.
func (c *Controller) ToggleSort(column string) Effect {
	if !domain.IsStudentColumn(column) {
		return nil
	}
	c.sort = c.sort.Toggle(column)
	return c.Reload(clearExpanded)
}

// SetPage moves to page index. Indexes outside the current result are ignored.
func (c *Controller) SetPage(index int) Effect {
	if index < 0 || index > c.window.LastIndex(c.total) {
		return nil
	}
	c.window.Index = index
	return c.Reload(clearExpanded)
}

// NextPage moves one page forward.
func (c *Controller) NextPage() Effect {
	return c.SetPage(c.window.Index + 1)
}

// PrevPage moves one page back.
func (c *Controller) PrevPage() Effect {
	return c.SetPage(c.window.Index - 1)
}

// SetPageSize changes the page size and keeps the first visible row on the
// new page. Non-positive sizes are ignored.
func (c *Controller) SetPageSize(size int) Effect {
	if size <= 0 {
		return nil
	}
	first := c.window.Offset()
	c.window.Size = size
	c.window.Index = first / size
	return c.Reload(clearExpanded)
}
