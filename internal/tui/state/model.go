// Package state holds the bubbletea model of the students list.
package state

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/student-roster/internal/errors"
	"github.com/cristianoliveira/student-roster/internal/gateway"
	"github.com/cristianoliveira/student-roster/internal/listview"
	"github.com/cristianoliveira/student-roster/internal/logging"
)

const (
	defaultViewportWidth = 80
	errorClearDuration   = 5 * time.Second
)

// Options configures a Model.
type Options struct {
	// Context bounds every gateway call. Defaults to context.Background.
	Context context.Context
	List    listview.Options
	Logger  logging.Logger
}

// Model represents the TUI model for bubbletea.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	list   *listview.Controller
	logger logging.Logger

	errorHandler *errors.TUIHandler
	statusTTL    time.Duration
	// schedule delivers msg after d. Tests replace it to avoid timers.
	schedule func(d time.Duration, msg tea.Msg) tea.Cmd

	spinner  spinner.Model
	spinning bool

	cursor int
	width  int
	height int

	// awaitingFilterColumn is set after "f" until a column key arrives.
	awaitingFilterColumn bool
	filterDraft          *listview.FilterDraft
	filterInput          textinput.Model

	formInputs []textinput.Model
	focus      listview.Field
}

// NewModel creates a TUI model over gw. Init loads the first page.
func NewModel(gw gateway.Gateway, opts Options) *Model {
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.List.Logger == nil {
		opts.List.Logger = opts.Logger
	}
	ctx, cancel := context.WithCancel(parent)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	filterInput := textinput.New()
	filterInput.Placeholder = "value"
	filterInput.CharLimit = 64

	inputs := make([]textinput.Model, len(listview.Fields))
	for i, f := range listview.Fields {
		in := textinput.New()
		in.Placeholder = f.Label()
		in.CharLimit = 128
		inputs[i] = in
	}

	return &Model{
		ctx:          ctx,
		cancel:       cancel,
		list:         listview.New(gw, opts.List),
		logger:       opts.Logger.With("component", "tui"),
		errorHandler: errors.NewTUIHandler(nil),
		statusTTL:    errorClearDuration,
		schedule: func(d time.Duration, msg tea.Msg) tea.Cmd {
			return tea.Tick(d, func(time.Time) tea.Msg { return msg })
		},
		spinner:     sp,
		filterInput: filterInput,
		formInputs:  inputs,
		width:       defaultViewportWidth,
	}
}

// List exposes the underlying controller.
func (m *Model) List() *listview.Controller {
	return m.list
}

// Close cancels every gateway call still running.
func (m *Model) Close() {
	m.cancel()
}

// Init loads the first page.
func (m *Model) Init() tea.Cmd {
	return m.run(m.list.Load())
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case outcomeMsg:
		return m, m.applyOutcome(msg)
	case statusExpiredMsg:
		// Re-render only; the handler decides what is still current.
		return m, nil
	case spinner.TickMsg:
		if !m.busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// busy reports whether any list or detail request is in flight.
func (m *Model) busy() bool {
	if m.list.IsProcessing() {
		return true
	}
	for _, row := range m.list.Rows() {
		if d, ok := m.list.Detail(row.ID); ok && d.IsProcessing() {
			return true
		}
	}
	return m.list.Form().IsChecking()
}

// clampCursor keeps the cursor on a visible row.
func (m *Model) clampCursor() {
	n := len(m.list.Rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// current returns the id of the row under the cursor.
func (m *Model) current() (int, bool) {
	rows := m.list.Rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return 0, false
	}
	return rows[m.cursor].ID, true
}
