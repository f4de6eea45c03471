package render

import (
	"strings"
	"testing"
	"time"

	"github.com/cristianoliveira/student-roster/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestHeaderShowsSortAndFilter(t *testing.T) {
	out := Header(HeaderState{
		Sort:     domain.SortSpec{Column: domain.ColumnLastName, Direction: domain.SortDesc},
		Filtered: map[string]bool{domain.ColumnEmail: true},
	})
	assert.Contains(t, out, "[ ]")
	assert.Contains(t, out, "3 Last name "+descendingArrow)
	assert.Contains(t, out, "4 Email "+filterMarker)
	assert.NotContains(t, out, ascendingArrow)

	all := Header(HeaderState{Sort: domain.DefaultStudentSort(), AllSelected: true})
	assert.Contains(t, all, "[x]")
	assert.Contains(t, all, "Last name "+ascendingArrow)
}

func TestRow(t *testing.T) {
	s := domain.Student{ID: 1, SchoolID: "S100", FirstName: "Ana", LastName: "Almeida", Email: "ana@school.example"}

	out := Row(RowState{Student: s, Selected: true, Expanded: true})
	assert.True(t, strings.HasPrefix(out, expandedSymbol+" [x]"))
	assert.Contains(t, out, "S100")
	assert.Contains(t, out, "ana@school.example")

	collapsed := Row(RowState{Student: s})
	assert.True(t, strings.HasPrefix(collapsed, collapsedSymbol+" [ ]"))
}

func TestFormRow(t *testing.T) {
	out := FormRow(FormState{
		Adding: true,
		Values: []string{"S100", "Zoe", "", "bad"},
		Errors: []string{"ID already in use", "", "You must enter a value", "Not a valid email"},
		Focus:  0,
	})
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "new")
	assert.Contains(t, lines[0], "enter: add")
	assert.Contains(t, lines[1], "ID already in use")
	assert.Contains(t, lines[1], "Not a valid email")

	edit := FormRow(FormState{Values: []string{"S1"}, Checking: true})
	assert.Contains(t, edit, "edit")
	assert.Contains(t, edit, "checking id")
}

func TestDetailRows(t *testing.T) {
	assert.Contains(t, DetailRows(DetailState{Loading: true}), "loading")
	assert.Contains(t, DetailRows(DetailState{}), "No records")

	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	out := DetailRows(DetailState{
		Rows:      []domain.StudentDetail{{Term: "2024-1", Course: "Algebra", Grade: "A", TermCreatedDate: created}},
		Sort:      domain.DefaultDetailSort(),
		PageCount: 2,
		Total:     6,
	})
	assert.Contains(t, out, "Created "+descendingArrow)
	assert.Contains(t, out, "2024-03-01")
	assert.Contains(t, out, "Algebra")
	assert.Contains(t, out, "page 1/2 (6 records)")
}

func TestFilterEditorAndPrompt(t *testing.T) {
	out := FilterEditor(FilterState{Column: domain.ColumnFirstName, Operator: domain.OpContains, Input: "an"})
	assert.Contains(t, out, "First name")
	assert.Contains(t, out, "Contains")
	assert.Contains(t, out, "an")

	confirm := Prompt(PromptState{Title: "Delete", Message: "Are you sure?", Confirm: true})
	assert.Contains(t, confirm, "Delete")
	assert.Contains(t, confirm, "y: yes")

	notice := Prompt(PromptState{Title: "Info", Message: "No students are selected."})
	assert.Contains(t, notice, "enter: ok")
}

func TestFooter(t *testing.T) {
	out := Footer(FooterState{Page: 1, PageCount: 3, Total: 12, PageSize: 5, Selected: 2, Processing: true, Spinner: "*",
		Status: "Could not load students", StatusKind: StatusError})
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "* page 2/3  12 students  5 per page  2 selected", lines[0])
	assert.Equal(t, "Could not load students", lines[1])
	assert.Contains(t, lines[2], "q: quit")

	editing := Footer(FooterState{PageCount: 1, Editing: true})
	assert.Contains(t, editing, "tab: next field")
	assert.NotContains(t, editing, "q: quit")
}

func TestCell(t *testing.T) {
	assert.Equal(t, "ab  ", cell("ab", 4))
	assert.Equal(t, "abc"+ellipsis, cell("abcdef", 4))
	assert.Equal(t, "Zoë ", cell("Zoë", 4))
	assert.Equal(t, "34", ansiColorNumber("\033[0;34m"))
}
