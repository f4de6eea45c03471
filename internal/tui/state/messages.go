package state

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/student-roster/internal/errors"
	"github.com/cristianoliveira/student-roster/internal/listview"
)

// outcomeMsg carries a finished gateway call back to the event loop.
type outcomeMsg struct {
	outcome listview.Outcome
}

// statusExpiredMsg asks for a redraw once a status message may have expired.
type statusExpiredMsg struct{}

// run turns an effect into a command and starts the spinner.
func (m *Model) run(eff listview.Effect) tea.Cmd {
	if eff == nil {
		return nil
	}
	ctx := m.ctx
	cmd := func() tea.Msg {
		return outcomeMsg{outcome: eff(ctx)}
	}
	if m.spinning {
		return cmd
	}
	m.spinning = true
	return tea.Batch(cmd, m.spinner.Tick)
}

// applyOutcome folds an outcome into the controller and chains the follow-up
// effect, if any.
func (m *Model) applyOutcome(msg outcomeMsg) tea.Cmd {
	next, err := m.list.Apply(msg.outcome)
	m.clampCursor()
	m.syncFormInputs()
	if err != nil {
		m.logger.Error("gateway call failed", "error", err)
		return tea.Batch(m.report(err), m.run(next))
	}
	return m.run(next)
}

// report shows err on the status line and schedules its expiry.
func (m *Model) report(err error) tea.Cmd {
	errors.Report(m.errorHandler, err)
	return m.schedule(m.statusTTL, statusExpiredMsg{})
}
