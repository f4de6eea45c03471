package listview

import (
	"context"

	"github.com/cristianoliveira/student-roster/internal/domain"
	"github.com/cristianoliveira/student-roster/internal/gateway"
)

// pageLoaded carries the answer to a reload.
type pageLoaded struct {
	query     domain.Query
	page      domain.Page[domain.Student]
	err       error
	reconcile Reconcile
}

// Load fetches the first view of the list.
func (c *Controller) Load() Effect {
	return c.Reload(clearExpanded)
}

// Reload fetches the current window with the current sort and filters.
// On success the rows and total are replaced and reconcile runs.
// Overlapping reloads are not deduplicated: the last answer applied wins.
func (c *Controller) Reload(reconcile Reconcile) Effect {
	q := domain.Query{Sort: c.sort, Filters: c.filters.Clone(), Window: c.window}
	gw := c.gw
	c.acquire()
	c.logger.Debug("reload", "page", q.Window.Index, "size", q.Window.Size, "sort", q.Sort.Column, "direction", q.Sort.Direction.String(), "filters", q.Filters.Len())
	return func(ctx context.Context) Outcome {
		page, err := gw.FetchPage(ctx, q)
		return pageLoaded{query: q, page: page, err: err, reconcile: reconcile}
	}
}

func (o pageLoaded) apply(c *Controller) (Effect, error) {
	c.release()
	if o.err != nil {
		c.logger.Error("reload failed", "error", o.err)
		return nil, gateway.Transport(gateway.OpFetchPage, o.err)
	}

	// The window points past the end of a shrunken result: move to the last
	// page and fetch again with the same reconcile.
	w := o.query.Window
	if o.page.Total > 0 && len(o.page.Rows) == 0 && w.Index > w.LastIndex(o.page.Total) {
		c.window.Index = c.window.LastIndex(o.page.Total)
		c.logger.Debug("page index clamped", "from", w.Index, "to", c.window.Index)
		return c.Reload(o.reconcile), nil
	}

	rows := o.page.Rows
	if !w.IsUnbounded() && len(rows) > w.Size {
		c.logger.Warn("source returned more rows than requested", "requested", w.Size, "got", len(rows))
		rows = rows[:w.Size]
	}
	if o.page.Total == 0 {
		c.window.Index = 0
	}
	c.rows = append([]domain.Student{}, rows...)
	c.total = o.page.Total
	if o.reconcile != nil {
		o.reconcile(c)
	}
	return nil, nil
}

func clearExpanded(c *Controller) {
	c.expanded = make(map[int]*DetailView)
}

func exitAdd(c *Controller) {
	if c.mode == Adding {
		c.setMode(Idle, domain.NewStudentID)
	}
}

func exitEdit(c *Controller) {
	if c.mode == Editing {
		c.setMode(Idle, domain.NewStudentID)
	}
}

func clearSelection(c *Controller) {
	c.selected = make(map[int]bool)
}

func deselect(id int) Reconcile {
	return func(c *Controller) {
		delete(c.selected, id)
	}
}
