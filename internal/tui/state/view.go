package state

import (
	"strings"

	"github.com/cristianoliveira/student-roster/internal/errors"
	"github.com/cristianoliveira/student-roster/internal/listview"
	"github.com/cristianoliveira/student-roster/internal/tui/render"
)

// View renders the TUI.
func (m *Model) View() string {
	var s strings.Builder

	filtered := make(map[string]bool, len(render.StudentColumns))
	for _, col := range render.StudentColumns {
		filtered[col.Key] = m.list.IsColumnFiltered(col.Key)
	}
	s.WriteString(render.Header(render.HeaderState{
		Sort:        m.list.Sort(),
		Filtered:    filtered,
		AllSelected: m.list.IsAllSelected(),
	}))

	if m.list.IsAdding() {
		s.WriteString("\n" + m.formRow(true))
	}

	rows := m.list.Rows()
	if len(rows) == 0 && !m.list.IsAdding() {
		s.WriteString("\n" + render.Empty())
	}
	for i, r := range rows {
		s.WriteString("\n")
		if m.list.IsEditing(r.ID) {
			s.WriteString(m.formRow(false))
			continue
		}
		s.WriteString(render.Row(render.RowState{
			Student:  r,
			Cursor:   i == m.cursor && m.list.Mode() == listview.Idle,
			Selected: m.list.IsSelected(r.ID),
			Expanded: m.list.IsExpanded(r.ID),
		}))
		if d, ok := m.list.Detail(r.ID); ok {
			s.WriteString("\n" + render.DetailRows(render.DetailState{
				Rows:      d.Rows,
				Sort:      d.Sort,
				Page:      d.Window.Index,
				PageCount: d.PageCount(),
				Total:     d.Total,
				Loading:   d.IsProcessing(),
			}))
		}
	}

	if m.filterDraft != nil {
		s.WriteString("\n\n" + render.FilterEditor(render.FilterState{
			Column:   m.filterDraft.Column,
			Operator: m.filterDraft.Operator,
			Input:    m.filterInput.Value(),
		}))
	}
	if p := m.list.Prompt(); p != nil {
		s.WriteString("\n\n" + render.Prompt(render.PromptState{
			Title:   p.Title,
			Message: p.Message,
			Confirm: p.Kind == listview.Confirm,
		}))
	}

	footer := render.FooterState{
		Page:       m.list.Window().Index,
		PageCount:  m.list.PageCount(),
		Total:      m.list.Total(),
		PageSize:   m.list.Window().Size,
		Selected:   len(m.list.Selected()),
		Processing: m.busy(),
		Spinner:    m.spinner.View(),
		Editing:    m.list.Mode() != listview.Idle,
	}
	if msg, ok := m.errorHandler.Current(m.statusTTL); ok {
		footer.Status = msg.Text
		footer.StatusKind = statusKind(msg.Type)
	}
	s.WriteString("\n\n" + render.Footer(footer))
	return s.String()
}

func (m *Model) formRow(adding bool) string {
	form := m.list.Form()
	values := make([]string, len(listview.Fields))
	errs := make([]string, len(listview.Fields))
	for i, f := range listview.Fields {
		values[i] = form.Value(f)
		errs[i] = form.Error(f)
	}
	return render.FormRow(render.FormState{
		Adding:   adding,
		Values:   values,
		Errors:   errs,
		Focus:    int(m.focus),
		Checking: form.IsChecking(),
		Ready:    form.CanSubmit(),
	})
}

func statusKind(t errors.MessageType) render.StatusKind {
	switch t {
	case errors.MessageTypeError:
		return render.StatusError
	case errors.MessageTypeWarning:
		return render.StatusWarning
	case errors.MessageTypeSuccess:
		return render.StatusSuccess
	default:
		return render.StatusInfo
	}
}
