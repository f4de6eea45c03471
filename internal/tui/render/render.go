// Package render draws the students list for the terminal UI.
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/student-roster/internal/colors"
	"github.com/cristianoliveira/student-roster/internal/domain"
)

const (
	boxWidth        = 4
	cursorWidth     = 2
	detailIndent    = 6
	ascendingArrow  = "▲"
	descendingArrow = "▼"
	filterMarker    = "⚑"
	expandedSymbol  = "▾"
	collapsedSymbol = "▸"
	ellipsis        = "…"
)

// Column describes one student column on screen.
type Column struct {
	Key   string
	Title string
	Width int
}

// StudentColumns are the list columns in key order (1 to 4).
var StudentColumns = []Column{
	{Key: domain.ColumnSchoolID, Title: "School ID", Width: 12},
	{Key: domain.ColumnFirstName, Title: "First name", Width: 16},
	{Key: domain.ColumnLastName, Title: "Last name", Width: 16},
	{Key: domain.ColumnEmail, Title: "Email", Width: 32},
}

// DetailColumns are the columns of an expanded detail list.
var DetailColumns = []Column{
	{Key: domain.ColumnTermCreatedDate, Title: "Created", Width: 12},
	{Key: domain.ColumnTerm, Title: "Term", Width: 12},
	{Key: domain.ColumnCourse, Title: "Course", Width: 24},
	{Key: domain.ColumnGrade, Title: "Grade", Width: 6},
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))
	cursorStyle   = lipgloss.NewStyle().Background(lipgloss.Color(ansiColorNumber(colors.Blue))).Foreground(lipgloss.Color("0"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Red)))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Yellow)))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(colors.Green)))
	focusStyle    = lipgloss.NewStyle().Underline(true)
	promptStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	promptTitleSt = lipgloss.NewStyle().Bold(true)
)

// HeaderState defines the inputs needed to render the column header.
type HeaderState struct {
	Sort        domain.SortSpec
	Filtered    map[string]bool
	AllSelected bool
}

// Header renders the column titles with sort arrows and filter markers.
func Header(state HeaderState) string {
	box := "[ ]"
	if state.AllSelected {
		box = "[x]"
	}
	cells := []string{cell("", cursorWidth) + cell(box, boxWidth)}
	for i, col := range StudentColumns {
		title := fmt.Sprintf("%d %s", i+1, col.Title)
		switch state.Sort.DirectionFor(col.Key) {
		case domain.SortAsc:
			title += " " + ascendingArrow
		case domain.SortDesc:
			title += " " + descendingArrow
		}
		if state.Filtered[col.Key] {
			title += " " + filterMarker
		}
		cells = append(cells, cell(title, col.Width))
	}
	return headerStyle.Render(strings.TrimRight(strings.Join(cells, " "), " "))
}

// RowState defines the inputs needed to render a student row.
type RowState struct {
	Student  domain.Student
	Cursor   bool
	Selected bool
	Expanded bool
}

// Row renders one student.
func Row(state RowState) string {
	marker := collapsedSymbol
	if state.Expanded {
		marker = expandedSymbol
	}
	box := "[ ]"
	if state.Selected {
		box = "[x]"
	}
	cells := []string{cell(marker, cursorWidth) + cell(box, boxWidth)}
	for _, col := range StudentColumns {
		cells = append(cells, cell(state.Student.Value(col.Key), col.Width))
	}
	line := strings.TrimRight(strings.Join(cells, " "), " ")
	if state.Cursor {
		return cursorStyle.Render(line)
	}
	return line
}

// FormState defines the inputs needed to render the inline add/edit row.
type FormState struct {
	Adding bool
	// Values are the raw field values in column order.
	Values   []string
	Errors   []string
	Focus    int
	Checking bool
	Ready    bool
}

// FormRow renders the inline form: one line of inputs and one of errors.
func FormRow(state FormState) string {
	label := "edit"
	if state.Adding {
		label = "new"
	}
	inputs := []string{cell("", cursorWidth) + cell(label, boxWidth)}
	errs := []string{strings.Repeat(" ", cursorWidth+boxWidth)}
	for i, col := range StudentColumns {
		value := ""
		if i < len(state.Values) {
			value = state.Values[i]
		}
		c := cell(value, col.Width)
		if i == state.Focus {
			c = focusStyle.Render(c)
		}
		inputs = append(inputs, c)

		msg := ""
		if i < len(state.Errors) {
			msg = state.Errors[i]
		}
		errs = append(errs, errorStyle.Render(cell(msg, col.Width)))
	}

	action := "enter: add"
	if !state.Adding {
		action = "enter: update"
	}
	switch {
	case state.Checking:
		action = "checking id…"
	case !state.Ready:
		action = mutedStyle.Render(action)
	}
	return strings.Join(inputs, " ") + "  " + action + "\n" + strings.TrimRight(strings.Join(errs, " "), " ")
}

// DetailState defines the inputs needed to render an expanded detail list.
type DetailState struct {
	Rows      []domain.StudentDetail
	Sort      domain.SortSpec
	Page      int
	PageCount int
	Total     int
	Loading   bool
}

// DetailRows renders the detail list of one student under its row.
func DetailRows(state DetailState) string {
	indent := strings.Repeat(" ", detailIndent)
	if state.Loading && len(state.Rows) == 0 {
		return mutedStyle.Render(indent + "loading…")
	}
	if len(state.Rows) == 0 {
		return mutedStyle.Render(indent + "No records")
	}

	var b strings.Builder
	titles := make([]string, 0, len(DetailColumns))
	for _, col := range DetailColumns {
		title := col.Title
		switch state.Sort.DirectionFor(col.Key) {
		case domain.SortAsc:
			title += " " + ascendingArrow
		case domain.SortDesc:
			title += " " + descendingArrow
		}
		titles = append(titles, cell(title, col.Width))
	}
	b.WriteString(mutedStyle.Render(indent + strings.TrimRight(strings.Join(titles, " "), " ")))
	for _, d := range state.Rows {
		cells := make([]string, 0, len(DetailColumns))
		for _, col := range DetailColumns {
			v := d.Value(col.Key)
			if col.Key == domain.ColumnTermCreatedDate {
				v = d.TermCreatedDate.Format("2006-01-02")
			}
			cells = append(cells, cell(v, col.Width))
		}
		b.WriteString("\n" + indent + strings.TrimRight(strings.Join(cells, " "), " "))
	}
	b.WriteString("\n" + mutedStyle.Render(fmt.Sprintf("%spage %d/%d (%d records)", indent, state.Page+1, state.PageCount, state.Total)))
	return b.String()
}

// FilterState defines the inputs needed to render the filter editor.
type FilterState struct {
	Column   string
	Operator domain.FilterOperator
	Input    string
}

// FilterEditor renders the one line filter editor.
func FilterEditor(state FilterState) string {
	return fmt.Sprintf("Filter %s %s: %s  %s",
		headerStyle.Render(columnTitle(state.Column)),
		state.Operator,
		state.Input,
		mutedStyle.Render("tab: operator  enter: apply  ctrl+u: clear  esc: close"))
}

// PromptState defines the inputs needed to render a prompt.
type PromptState struct {
	Title   string
	Message string
	Confirm bool
}

// Prompt renders a confirmation or notification box.
func Prompt(state PromptState) string {
	hint := "enter: ok"
	if state.Confirm {
		hint = "y: yes  n: no"
	}
	body := promptTitleSt.Render(state.Title) + "\n" + state.Message + "\n" + mutedStyle.Render(hint)
	return promptStyle.Render(body)
}

// StatusKind is the severity of the status line.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusError
	StatusWarning
	StatusInfo
	StatusSuccess
)

// FooterState defines the inputs needed to render footer help text.
type FooterState struct {
	Page       int
	PageCount  int
	Total      int
	PageSize   int
	Selected   int
	Processing bool
	Spinner    string
	Editing    bool
	Status     string
	StatusKind StatusKind
}

// Footer renders paging facts, the status line and key help.
func Footer(state FooterState) string {
	info := fmt.Sprintf("page %d/%d  %d students  %d per page", state.Page+1, state.PageCount, state.Total, state.PageSize)
	if state.Selected > 0 {
		info += fmt.Sprintf("  %d selected", state.Selected)
	}
	if state.Processing {
		info = state.Spinner + " " + info
	}

	var help []string
	if state.Editing {
		help = []string{"tab: next field", "enter: submit", "esc: cancel"}
	} else {
		help = []string{"j/k: move", "h/l: page", "+/-: size", "1-4: sort", "f: filter", "space: select", "A: all",
			"a: add", "e: edit", "enter: details", "d/D: delete", "q: quit"}
	}

	lines := []string{info}
	if state.Status != "" {
		lines = append(lines, statusStyle(state.StatusKind).Render(state.Status))
	}
	lines = append(lines, mutedStyle.Render(strings.Join(help, "  |  ")))
	return strings.Join(lines, "\n")
}

// Empty renders the placeholder shown when no student matches.
func Empty() string {
	return mutedStyle.Render("No students found")
}

func statusStyle(kind StatusKind) lipgloss.Style {
	switch kind {
	case StatusError:
		return errorStyle
	case StatusWarning:
		return warningStyle
	case StatusSuccess:
		return successStyle
	default:
		return lipgloss.NewStyle()
	}
}

func columnTitle(key string) string {
	for _, col := range StudentColumns {
		if col.Key == key {
			return col.Title
		}
	}
	return key
}

// cell pads or cuts s to exactly width runes.
func cell(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n > width {
		if width <= 1 {
			return string([]rune(s)[:width])
		}
		return string([]rune(s)[:width-1]) + ellipsis
	}
	return s + strings.Repeat(" ", width-n)
}

// ansiColorNumber extracts the color number from an ANSI escape sequence.
// Example: "\033[0;34m" -> "34"
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}
