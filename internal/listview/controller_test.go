package listview

import (
	"context"
	"errors"
	"testing"

	"github.com/cristianoliveira/student-roster/internal/domain"
	"github.com/cristianoliveira/student-roster/internal/gateway"
	"github.com/cristianoliveira/student-roster/internal/gateway/memory"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newLoaded returns a controller over the sample roster with its first page loaded.
func newLoaded(t *testing.T) (*Controller, *memory.Gateway) {
	t.Helper()
	gw := memory.NewSeeded()
	c := New(gw, Options{})
	require.NoError(t, c.Run(context.Background(), c.Load()))
	return c, gw
}

func run(t *testing.T, c *Controller, eff Effect) {
	t.Helper()
	require.NotNil(t, eff, "expected an effect")
	require.NoError(t, c.Run(context.Background(), eff))
}

func ids(rows []domain.Student) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestLoadFirstAndNextPage(t *testing.T) {
	c, _ := newLoaded(t)

	assert.Equal(t, 12, c.Total())
	assert.Equal(t, 3, c.PageCount())
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5}, ids(c.Rows())); diff != "" {
		t.Errorf("first page mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, domain.SortAsc, c.SortDirection(domain.ColumnLastName))
	assert.Equal(t, domain.SortNone, c.SortDirection(domain.ColumnFirstName))

	run(t, c, c.NextPage())
	assert.Equal(t, 1, c.Window().Index)
	assert.Equal(t, 12, c.Total())
	if diff := cmp.Diff([]int{6, 7, 8, 9, 10}, ids(c.Rows())); diff != "" {
		t.Errorf("second page mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, c.IsProcessing())
}

func TestNewAppliesDefaults(t *testing.T) {
	c := New(memory.New(), Options{})
	assert.Equal(t, domain.PageWindow{Index: 0, Size: DefaultPageSize}, c.Window())
	assert.Equal(t, domain.DefaultStudentSort(), c.Sort())
	assert.Equal(t, Idle, c.Mode())
	assert.Equal(t, domain.NewStudentID, c.EditID())
	assert.Empty(t, c.Rows())
}

func TestToggleSortKeepsOneActiveColumn(t *testing.T) {
	c, _ := newLoaded(t)
	clicks := []string{
		domain.ColumnFirstName, domain.ColumnFirstName, domain.ColumnEmail,
		domain.ColumnSchoolID, domain.ColumnSchoolID, domain.ColumnSchoolID,
		domain.ColumnLastName, domain.ColumnEmail,
	}
	columns := []string{domain.ColumnSchoolID, domain.ColumnFirstName, domain.ColumnLastName, domain.ColumnEmail}

	for _, col := range clicks {
		run(t, c, c.ToggleSort(col))
		active := 0
		for _, other := range columns {
			if c.SortDirection(other) != domain.SortNone {
				active++
			}
		}
		assert.LessOrEqual(t, active, 1, "after clicking %s", col)
	}
}

func TestToggleSortRotatesDirection(t *testing.T) {
	c, _ := newLoaded(t)

	run(t, c, c.ToggleSort(domain.ColumnLastName))
	assert.Equal(t, domain.SortDesc, c.SortDirection(domain.ColumnLastName))
	assert.Equal(t, []int{12, 11, 10, 9, 8}, ids(c.Rows()))

	run(t, c, c.ToggleSort(domain.ColumnLastName))
	assert.Equal(t, domain.SortNone, c.SortDirection(domain.ColumnLastName))

	run(t, c, c.ToggleSort(domain.ColumnLastName))
	assert.Equal(t, domain.SortAsc, c.SortDirection(domain.ColumnLastName))

	assert.Nil(t, c.ToggleSort("nope"))
}

func TestSetPageIgnoresOutOfRange(t *testing.T) {
	c, gw := newLoaded(t)
	calls := gw.Calls(gateway.OpFetchPage)

	assert.Nil(t, c.SetPage(3))
	assert.Nil(t, c.SetPage(-1))
	assert.Nil(t, c.PrevPage())
	assert.Equal(t, calls, gw.Calls(gateway.OpFetchPage))
	assert.False(t, c.IsProcessing())
}

func TestSetPageSizeKeepsFirstVisibleRow(t *testing.T) {
	c, _ := newLoaded(t)
	run(t, c, c.SetPage(2))
	require.Equal(t, []int{11, 12}, ids(c.Rows()))

	run(t, c, c.SetPageSize(4))
	assert.Equal(t, 2, c.Window().Index)
	assert.Equal(t, []int{9, 10, 11, 12}, ids(c.Rows()))

	assert.Nil(t, c.SetPageSize(0))
}

func TestReloadKeepsRowsWithinPageSize(t *testing.T) {
	gw := new(gateway.MockGateway)
	rows := gateway.SampleStudents()[:7]
	gw.On("FetchPage", mock.Anything, mock.Anything).
		Return(domain.Page[domain.Student]{Rows: rows, Total: 40}, nil)

	c := New(gw, Options{PageSize: 5})
	require.NoError(t, c.Run(context.Background(), c.Load()))

	assert.Equal(t, 40, c.Total())
	assert.Len(t, c.Rows(), 5)
	gw.AssertExpectations(t)
}

func TestReloadTransportFailureReleasesProcessing(t *testing.T) {
	gw := new(gateway.MockGateway)
	gw.On("FetchPage", mock.Anything, mock.Anything).
		Return(domain.Page[domain.Student]{}, errors.New("connection refused"))

	c := New(gw, Options{})
	eff := c.Load()
	assert.True(t, c.IsProcessing())

	next, err := c.Apply(eff(context.Background()))
	assert.Nil(t, next)
	require.Error(t, err)
	assert.True(t, gateway.IsTransport(err))

	var te *gateway.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, gateway.OpFetchPage, te.Op)
	assert.False(t, c.IsProcessing())
	assert.Empty(t, c.Rows())
}

func TestOverlappingReloadsHoldProcessing(t *testing.T) {
	c, _ := newLoaded(t)
	ctx := context.Background()

	first := c.NextPage()
	second := c.Reload(nil)
	assert.True(t, c.IsProcessing())

	_, err := c.Apply(second(ctx))
	require.NoError(t, err)
	assert.True(t, c.IsProcessing())

	_, err = c.Apply(first(ctx))
	require.NoError(t, err)
	assert.False(t, c.IsProcessing())
}

func TestFilterNarrowingClampsPage(t *testing.T) {
	c, gw := newLoaded(t)
	run(t, c, c.SetPage(2))
	before := gw.Calls(gateway.OpFetchPage)

	d := c.OpenFilter(domain.ColumnFirstName)
	d.Operator = domain.OpContains
	d.Value = "an"
	run(t, c, c.CommitFilter(d))

	assert.Equal(t, 0, c.Window().Index)
	assert.Equal(t, 4, c.Total())
	assert.Equal(t, []int{1, 4, 10, 12}, ids(c.Rows()))
	assert.Equal(t, before+2, gw.Calls(gateway.OpFetchPage))
}

func TestFilterSetAndClear(t *testing.T) {
	c, _ := newLoaded(t)

	d := c.OpenFilter(domain.ColumnFirstName)
	assert.Equal(t, domain.DefaultFilterOperator, d.Operator)
	assert.Empty(t, d.Value)

	d.CycleOperator()
	d.CycleOperator()
	d.CycleOperator()
	require.Equal(t, domain.OpContains, d.Operator)
	d.Value = "an"
	run(t, c, c.CommitFilter(d))

	filters := c.Filters()
	assert.Equal(t, 1, filters.Len())
	f, ok := filters.Get(domain.ColumnFirstName)
	require.True(t, ok)
	assert.Equal(t, domain.Filter{Field: domain.ColumnFirstName, Operator: domain.OpContains, Value: "an"}, f)
	assert.True(t, c.IsColumnFiltered(domain.ColumnFirstName))

	reopened := c.OpenFilter(domain.ColumnFirstName)
	assert.Equal(t, FilterDraft{Column: domain.ColumnFirstName, Operator: domain.OpContains, Value: "an"}, reopened)

	run(t, c, c.ClearFilter(domain.ColumnFirstName))
	assert.False(t, c.IsColumnFiltered(domain.ColumnFirstName))
	assert.Equal(t, 0, c.Filters().Len())
	assert.Equal(t, 12, c.Total())
}

func TestBlankFilterValueRemovesFilter(t *testing.T) {
	c, _ := newLoaded(t)
	run(t, c, c.CommitFilter(FilterDraft{Column: domain.ColumnLastName, Operator: domain.OpStartsWith, Value: "g"}))
	require.Equal(t, 1, c.Total())

	run(t, c, c.CommitFilter(FilterDraft{Column: domain.ColumnLastName, Operator: domain.OpStartsWith, Value: "   "}))
	assert.False(t, c.IsColumnFiltered(domain.ColumnLastName))
	assert.Equal(t, 12, c.Total())
}

func TestInitialFilters(t *testing.T) {
	c := New(memory.NewSeeded(), Options{
		PageSize: 10,
		Filters: domain.FilterSpec{
			domain.ColumnFirstName: {Field: domain.ColumnFirstName, Operator: domain.OpContains, Value: "an"},
			"age":                  {Field: "age", Operator: domain.OpEquals, Value: "9"},
			domain.ColumnEmail:     {Field: domain.ColumnEmail, Operator: domain.OpEquals, Value: " "},
		},
	})
	run(t, c, c.Load())

	assert.True(t, c.IsColumnFiltered(domain.ColumnFirstName))
	assert.False(t, c.IsColumnFiltered(domain.ColumnEmail))
	assert.Equal(t, 1, c.Filters().Len())
	assert.Equal(t, []int{1, 4, 10, 12}, ids(c.Rows()))
}

func TestFiltersReturnsCopy(t *testing.T) {
	c, _ := newLoaded(t)
	f := c.Filters()
	f.Set(domain.Filter{Field: domain.ColumnEmail, Operator: domain.OpEquals, Value: "x"})
	assert.False(t, c.IsColumnFiltered(domain.ColumnEmail))
}

func TestViewChangesCollapseDetails(t *testing.T) {
	changes := map[string]func(c *Controller) Effect{
		"page":      func(c *Controller) Effect { return c.NextPage() },
		"page size": func(c *Controller) Effect { return c.SetPageSize(3) },
		"sort":      func(c *Controller) Effect { return c.ToggleSort(domain.ColumnEmail) },
		"filter": func(c *Controller) Effect {
			return c.CommitFilter(FilterDraft{Column: domain.ColumnEmail, Operator: domain.OpContains, Value: "a"})
		},
	}
	for name, change := range changes {
		t.Run(name, func(t *testing.T) {
			c, _ := newLoaded(t)
			run(t, c, c.Expand(1))
			run(t, c, c.Expand(2))
			require.True(t, c.IsExpanded(1))

			run(t, c, change(c))
			assert.False(t, c.IsExpanded(1))
			assert.False(t, c.IsExpanded(2))
		})
	}
}

func TestSelection(t *testing.T) {
	c, _ := newLoaded(t)
	assert.False(t, c.HasSelected())

	c.Toggle(3)
	c.Toggle(1)
	assert.True(t, c.IsSelected(1))
	assert.Equal(t, []int{1, 3}, c.Selected())

	c.Toggle(3)
	assert.False(t, c.IsSelected(3))
	assert.Equal(t, []int{1}, c.Selected())
	assert.False(t, c.IsAllSelected())
}

func TestSelectAllAcrossPages(t *testing.T) {
	c, gw := newLoaded(t)
	c.Toggle(2)
	visible := c.Rows()

	run(t, c, c.SelectAll())
	assert.True(t, c.IsAllSelected())
	assert.Len(t, c.Selected(), 12)
	assert.Equal(t, visible, c.Rows())
	assert.Equal(t, 2, gw.Calls(gateway.OpFetchPage))

	assert.Nil(t, c.SelectAll())
	assert.False(t, c.HasSelected())
}

func TestSelectAllWithinOnePage(t *testing.T) {
	c, gw := newLoaded(t)
	run(t, c, c.CommitFilter(FilterDraft{Column: domain.ColumnFirstName, Operator: domain.OpContains, Value: "an"}))
	calls := gw.Calls(gateway.OpFetchPage)

	assert.Nil(t, c.SelectAll())
	assert.Equal(t, []int{1, 4, 10, 12}, c.Selected())
	assert.True(t, c.IsAllSelected())
	assert.Equal(t, calls, gw.Calls(gateway.OpFetchPage))
}

func TestSelectAllReplacesSelectionFromEarlierView(t *testing.T) {
	c, gw := newLoaded(t)
	c.Toggle(2)
	run(t, c, c.CommitFilter(FilterDraft{Column: domain.ColumnFirstName, Operator: domain.OpContains, Value: "an"}))
	require.Equal(t, []int{1, 4, 10, 12}, ids(c.Rows()))

	assert.Nil(t, c.SelectAll())
	assert.Equal(t, []int{1, 4, 10, 12}, c.Selected())
	assert.True(t, c.IsAllSelected())

	assert.Nil(t, c.SelectAll())
	assert.False(t, c.HasSelected())
	assert.Equal(t, 0, gw.Calls(gateway.OpDeleteMany))
}

func TestSelectAllTransportFailure(t *testing.T) {
	c, gw := newLoaded(t)
	gw.FailNext(gateway.OpFetchPage, memory.ErrUnavailable)

	err := c.Run(context.Background(), c.SelectAll())
	require.Error(t, err)
	assert.True(t, gateway.IsTransport(err))
	assert.False(t, c.IsProcessing())
	assert.False(t, c.HasSelected())
}
