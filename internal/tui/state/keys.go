package state

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/student-roster/internal/domain"
	"github.com/cristianoliveira/student-roster/internal/listview"
	"github.com/cristianoliveira/student-roster/internal/tui/render"
)

// handleKeyMsg routes a key to the prompt, the filter editor, the form or the
// list, in that order of precedence.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if m.list.Prompt() != nil {
		return m.handlePromptKey(msg)
	}
	if m.filterDraft != nil {
		return m.handleFilterKey(msg)
	}
	if m.awaitingFilterColumn {
		m.awaitingFilterColumn = false
		if col, ok := columnForKey(msg.String()); ok {
			m.openFilter(col)
		}
		return nil
	}
	if m.list.Mode() != listview.Idle {
		return m.handleFormKey(msg)
	}
	return m.handleListKey(msg)
}

func (m *Model) quit() tea.Cmd {
	m.Close()
	return tea.Quit
}

// handlePromptKey answers the open prompt. Notifications close on any answer.
func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y", "enter":
		return m.run(m.list.ResolvePrompt(true))
	case "n", "N", "esc":
		return m.run(m.list.ResolvePrompt(false))
	}
	return nil
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if col, ok := columnForKey(key); ok {
		m.cursor = 0
		return m.run(m.list.ToggleSort(col))
	}

	switch key {
	case "q":
		return m.quit()
	case "j", "down":
		m.cursor++
		m.clampCursor()
	case "k", "up":
		m.cursor--
		m.clampCursor()
	case "h", "left":
		m.cursor = 0
		return m.run(m.list.PrevPage())
	case "l", "right":
		m.cursor = 0
		return m.run(m.list.NextPage())
	case "+", "=":
		return m.run(m.list.SetPageSize(m.list.Window().Size + 1))
	case "-":
		return m.run(m.list.SetPageSize(m.list.Window().Size - 1))
	case "f":
		m.awaitingFilterColumn = true
	case " ":
		if id, ok := m.current(); ok {
			m.list.Toggle(id)
		}
	case "A":
		return m.run(m.list.SelectAll())
	case "a":
		m.list.BeginAdd()
		m.startForm()
	case "e":
		if id, ok := m.current(); ok && m.list.BeginEdit(id) {
			m.startForm()
		}
	case "enter":
		if id, ok := m.current(); ok {
			return m.run(m.list.ToggleExpanded(id))
		}
	case "t":
		if id, ok := m.current(); ok {
			return m.run(m.list.ToggleDetailSort(id, domain.ColumnTermCreatedDate))
		}
	case "[", "]":
		id, ok := m.current()
		if !ok {
			return nil
		}
		if d, open := m.list.Detail(id); open {
			step := 1
			if key == "[" {
				step = -1
			}
			return m.run(m.list.SetDetailPage(id, d.Window.Index+step))
		}
	case "d":
		if id, ok := m.current(); ok {
			m.list.RequestDelete(id)
		}
	case "D":
		m.list.RequestDeleteSelected()
	}
	return nil
}

func (m *Model) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		if m.list.IsAdding() {
			m.list.CancelAdd()
		} else {
			m.list.CancelEdit()
		}
		m.stopForm()
		return nil
	case "tab", "shift+tab":
		var eff listview.Effect
		if m.focus == listview.FieldSchoolID {
			eff = m.list.BlurSchoolID()
		}
		next := m.focus.Next()
		if msg.String() == "shift+tab" {
			next = listview.Field((int(m.focus) + len(listview.Fields) - 1) % len(listview.Fields))
		}
		m.focusField(next)
		return m.run(eff)
	case "enter":
		eff := m.list.Submit()
		if eff == nil {
			eff = m.list.BlurSchoolID()
		}
		return m.run(eff)
	}

	in := m.formInputs[m.focus]
	in, _ = in.Update(msg)
	m.formInputs[m.focus] = in
	m.list.SetField(m.focus, in.Value())
	return nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.closeFilter()
		return nil
	case "tab":
		m.filterDraft.CycleOperator()
		return nil
	case "ctrl+u":
		col := m.filterDraft.Column
		m.closeFilter()
		m.cursor = 0
		return m.run(m.list.ClearFilter(col))
	case "enter":
		draft := *m.filterDraft
		draft.Value = m.filterInput.Value()
		m.closeFilter()
		m.cursor = 0
		return m.run(m.list.CommitFilter(draft))
	}
	m.filterInput, _ = m.filterInput.Update(msg)
	return nil
}

func (m *Model) openFilter(column string) {
	draft := m.list.OpenFilter(column)
	m.filterDraft = &draft
	m.filterInput.SetValue(draft.Value)
	m.filterInput.CursorEnd()
	m.filterInput.Focus()
}

func (m *Model) closeFilter() {
	m.filterDraft = nil
	m.filterInput.Blur()
	m.filterInput.SetValue("")
}

// startForm copies the controller's form into the inputs and focuses the first.
func (m *Model) startForm() {
	m.syncFormInputs()
	m.focusField(listview.FieldSchoolID)
}

func (m *Model) stopForm() {
	for i := range m.formInputs {
		m.formInputs[i].Blur()
	}
	m.syncFormInputs()
}

func (m *Model) focusField(f listview.Field) {
	m.formInputs[m.focus].Blur()
	m.focus = f
	m.formInputs[f].Focus()
	m.formInputs[f].CursorEnd()
}

// syncFormInputs mirrors form values the controller changed on its own, such
// as a reset after a successful submit.
func (m *Model) syncFormInputs() {
	form := m.list.Form()
	for i, f := range listview.Fields {
		if m.formInputs[i].Value() != form.Value(f) {
			m.formInputs[i].SetValue(form.Value(f))
		}
	}
	if m.list.Mode() == listview.Idle {
		for i := range m.formInputs {
			m.formInputs[i].Blur()
		}
		m.focus = listview.FieldSchoolID
	}
}

func columnForKey(key string) (string, bool) {
	if len(key) != 1 || key[0] < '1' || int(key[0]-'1') >= len(render.StudentColumns) {
		return "", false
	}
	return render.StudentColumns[key[0]-'1'].Key, true
}
