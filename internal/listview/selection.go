package listview

import (
	"context"

	"github.com/cristianoliveira/student-roster/internal/domain"
	"github.com/cristianoliveira/student-roster/internal/gateway"
)

// selectionLoaded carries the ids of every row matching the filters.
type selectionLoaded struct {
	page domain.Page[domain.Student]
	err  error
}

// Toggle flips the selection of id.
func (c *Controller) Toggle(id int) {
	if c.selected[id] {
		delete(c.selected, id)
		return
	}
	c.selected[id] = true
}

// IsSelected reports whether id is selected.
func (c *Controller) IsSelected(id int) bool {
	return c.selected[id]
}

// HasSelected reports whether any row is selected.
func (c *Controller) HasSelected() bool {
	return len(c.selected) > 0
}

// IsAllSelected reports whether the selection covers the whole result.
func (c *Controller) IsAllSelected() bool {
	return c.total > 0 && len(c.selected) == c.total
}

// Selected returns the selected ids in ascending order.
func (c *Controller) Selected() []int {
	return sortedIDs(c.selected)
}

// SelectAll clears a complete selection, otherwise replaces it with every
// row of the result. When the result spans several pages the ids come from an unbounded
// fetch that fills the selection without replacing the visible page.
func (c *Controller) SelectAll() Effect {
	if c.IsAllSelected() {
		clearSelection(c)
		return nil
	}
	if c.total <= c.window.Size {
		clearSelection(c)
		for _, r := range c.rows {
			c.selected[r.ID] = true
		}
		return nil
	}

	clearSelection(c)
	q := domain.Query{Sort: c.sort, Filters: c.filters.Clone(), Window: domain.Unbounded()}
	gw := c.gw
	c.acquire()
	return func(ctx context.Context) Outcome {
		page, err := gw.FetchPage(ctx, q)
		return selectionLoaded{page: page, err: err}
	}
}

func (o selectionLoaded) apply(c *Controller) (Effect, error) {
	c.release()
	if o.err != nil {
		c.logger.Error("select all failed", "error", o.err)
		return nil, gateway.Transport(gateway.OpFetchPage, o.err)
	}
	for _, r := range o.page.Rows {
		c.selected[r.ID] = true
	}
	return nil, nil
}
