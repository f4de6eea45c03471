// Package listview holds the state machine behind the students list: rows,
// paging, sorting, filters, selection, the inline add/edit form, prompts and
// expanded detail lists. It is driven by one event loop and talks to the
// source only through gateway.Gateway effects.
package listview

import (
	"sort"
	"strings"

	"github.com/cristianoliveira/student-roster/internal/domain"
	"github.com/cristianoliveira/student-roster/internal/gateway"
	"github.com/cristianoliveira/student-roster/internal/logging"
)

// Default sizes used when Options leaves them unset.
const (
	DefaultPageSize       = 5
	DefaultDetailPageSize = 5
)

// Mode is the row interaction mode.
type Mode int

const (
	// Idle means no row is being added or edited.
	Idle Mode = iota
	// Adding means the inline add row is open.
	Adding
	// Editing means one existing row is open in the form.
	Editing
)

func (m Mode) String() string {
	switch m {
	case Adding:
		return "adding"
	case Editing:
		return "editing"
	default:
		return "idle"
	}
}

// Options configures a Controller.
type Options struct {
	PageSize       int
	DetailPageSize int
	// Sort is the initial sort. The zero value selects last name ascending.
	Sort domain.SortSpec
	// Filters are applied from the first load on. Invalid entries are dropped.
	Filters domain.FilterSpec
	Logger  logging.Logger
}

// Controller owns every piece of list state visible to a renderer.
// It is not safe for concurrent use: call it from one event loop only.
type Controller struct {
	gw     gateway.Gateway
	logger logging.Logger

	rows    []domain.Student
	total   int
	window  domain.PageWindow
	sort    domain.SortSpec
	filters domain.FilterSpec

	selected map[int]bool

	mode   Mode
	editID int
	form   *Form

	expanded       map[int]*DetailView
	detailPageSize int

	prompt   *Prompt
	inflight int
}

// New returns a controller for gw. Call Load to fetch the first page.
func New(gw gateway.Gateway, opts Options) *Controller {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.DetailPageSize <= 0 {
		opts.DetailPageSize = DefaultDetailPageSize
	}
	if opts.Sort == (domain.SortSpec{}) {
		opts.Sort = domain.DefaultStudentSort()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	filters := domain.FilterSpec{}
	for _, f := range opts.Filters.Sorted() {
		if domain.IsStudentColumn(f.Field) && f.Operator.IsValid() && strings.TrimSpace(f.Value) != "" {
			filters.Set(f)
		}
	}
	return &Controller{
		gw:             gw,
		logger:         opts.Logger.With("component", "listview"),
		rows:           []domain.Student{},
		window:         domain.PageWindow{Index: 0, Size: opts.PageSize},
		sort:           opts.Sort,
		filters:        filters,
		selected:       make(map[int]bool),
		editID:         domain.NewStudentID,
		form:           newForm(),
		expanded:       make(map[int]*DetailView),
		detailPageSize: opts.DetailPageSize,
	}
}

// acquire marks one request as in flight. Every acquire is matched by a
// release when the request's outcome is applied.
func (c *Controller) acquire() {
	c.inflight++
}

func (c *Controller) release() {
	if c.inflight > 0 {
		c.inflight--
	}
}

// IsProcessing reports whether any list request is in flight.
func (c *Controller) IsProcessing() bool {
	return c.inflight > 0
}

// Rows returns a copy of the visible rows.
func (c *Controller) Rows() []domain.Student {
	return append([]domain.Student(nil), c.rows...)
}

// Row returns the visible row with id.
func (c *Controller) Row(id int) (domain.Student, bool) {
	for _, r := range c.rows {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Student{}, false
}

// Total returns the size of the filtered result reported by the last reload.
func (c *Controller) Total() int {
	return c.total
}

// Window returns the current page window.
func (c *Controller) Window() domain.PageWindow {
	return c.window
}

// PageCount returns the number of pages of the current result.
func (c *Controller) PageCount() int {
	return c.window.PageCount(c.total)
}

// Sort returns the active sort.
func (c *Controller) Sort() domain.SortSpec {
	return c.sort
}

// SortDirection returns the direction shown on column's header.
func (c *Controller) SortDirection(column string) domain.SortDirection {
	return c.sort.DirectionFor(column)
}

// Mode returns the row interaction mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// EditID returns the student in edit mode, or domain.NewStudentID.
func (c *Controller) EditID() int {
	return c.editID
}

// IsEditing reports whether id is the row in edit mode.
func (c *Controller) IsEditing(id int) bool {
	return c.mode == Editing && c.editID == id
}

// IsAdding reports whether the add row is open.
func (c *Controller) IsAdding() bool {
	return c.mode == Adding
}

// DetailPageSize returns the page size given to newly expanded detail lists.
func (c *Controller) DetailPageSize() int {
	return c.detailPageSize
}

// Form returns the inline form. Mutate it only through the controller.
func (c *Controller) Form() *Form {
	return c.form
}

func sortedIDs(set map[int]bool) []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
