package listview

import (
	"context"

	"github.com/cristianoliveira/student-roster/internal/domain"
	"github.com/cristianoliveira/student-roster/internal/gateway"
)

// DetailView is the expanded term list of one student.
type DetailView struct {
	StudentID int
	Rows      []domain.StudentDetail
	Total     int
	Sort      domain.SortSpec
	Window    domain.PageWindow

	inflight int
}

// IsProcessing reports whether a detail request is in flight.
func (d *DetailView) IsProcessing() bool {
	return d.inflight > 0
}

// PageCount returns the number of detail pages.
func (d *DetailView) PageCount() int {
	return d.Window.PageCount(d.Total)
}

// detailLoaded carries one detail page for the view that asked for it.
type detailLoaded struct {
	view *DetailView
	page domain.Page[domain.StudentDetail]
	err  error
}

// Expand opens the detail list of id and loads its first page.
func (c *Controller) Expand(id int) Effect {
	if d, ok := c.expanded[id]; ok {
		return c.loadDetail(d)
	}
	d := &DetailView{
		StudentID: id,
		Rows:      []domain.StudentDetail{},
		Sort:      domain.DefaultDetailSort(),
		Window:    domain.PageWindow{Index: 0, Size: c.detailPageSize},
	}
	c.expanded[id] = d
	return c.loadDetail(d)
}

// Collapse closes the detail list of id. Answers still in flight for it are
// discarded.
func (c *Controller) Collapse(id int) {
	delete(c.expanded, id)
}

// ToggleExpanded expands a collapsed row or collapses an expanded one.
func (c *Controller) ToggleExpanded(id int) Effect {
	if c.IsExpanded(id) {
		c.Collapse(id)
		return nil
	}
	return c.Expand(id)
}

// IsExpanded reports whether id shows its detail list.
func (c *Controller) IsExpanded(id int) bool {
	_, ok := c.expanded[id]
	return ok
}

// Detail returns the detail view of id.
func (c *Controller) Detail(id int) (*DetailView, bool) {
	d, ok := c.expanded[id]
	return d, ok
}

// ToggleDetailSort rotates column's direction in id's detail list.
func (c *Controller) ToggleDetailSort(id int, column string) Effect {
	d, ok := c.expanded[id]
	if !ok || !domain.IsDetailColumn(column) {
		return nil
	}
	d.Sort = d.Sort.Toggle(column)
	d.Window.Index = 0
	return c.loadDetail(d)
}

// SetDetailPage moves id's detail list to page index.
func (c *Controller) SetDetailPage(id, index int) Effect {
	d, ok := c.expanded[id]
	if !ok || index < 0 || index > d.Window.LastIndex(d.Total) {
		return nil
	}
	d.Window.Index = index
	return c.loadDetail(d)
}

// SetDetailPageSize changes the page size of id's detail list.
func (c *Controller) SetDetailPageSize(id, size int) Effect {
	d, ok := c.expanded[id]
	if !ok || size <= 0 {
		return nil
	}
	first := d.Window.Offset()
	d.Window.Size = size
	d.Window.Index = first / size
	return c.loadDetail(d)
}

func (c *Controller) loadDetail(d *DetailView) Effect {
	id, sort, window := d.StudentID, d.Sort, d.Window
	gw := c.gw
	d.inflight++
	return func(ctx context.Context) Outcome {
		page, err := gw.FetchDetails(ctx, id, sort, window)
		return detailLoaded{view: d, page: page, err: err}
	}
}

func (o detailLoaded) apply(c *Controller) (Effect, error) {
	d := o.view
	if d.inflight > 0 {
		d.inflight--
	}
	if cur, ok := c.expanded[d.StudentID]; !ok || cur != d {
		c.logger.Debug("detail answer discarded", "student", d.StudentID)
		return nil, nil
	}
	if o.err != nil {
		c.logger.Error("detail load failed", "student", d.StudentID, "error", o.err)
		return nil, gateway.Transport(gateway.OpFetchDetails, o.err)
	}
	rows := o.page.Rows
	if len(rows) > d.Window.Size {
		rows = rows[:d.Window.Size]
	}
	d.Rows = append([]domain.StudentDetail{}, rows...)
	d.Total = o.page.Total
	if d.Total == 0 {
		d.Window.Index = 0
	}
	return nil, nil
}
