// Package tui is the interactive terminal shell of the task list: an input
// form, the filtered list with inline editing, filter tabs and
// confirmation dialogs for destructive actions.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"todo/internal/executor"
	"todo/internal/store"
	"todo/internal/task"
	"todo/internal/view"
)

type mode int

const (
	modeList mode = iota
	modeInput
	modeEdit
	modeConfirmDelete
	modeConfirmClear
)

// PersistFunc saves the store after a commit lands.
type PersistFunc func(ctx context.Context) error

// committedMsg reports that a scheduled mutation landed and was persisted.
type committedMsg struct {
	op  executor.Op
	err error
}

// Model is the bubbletea model of the task list screen.
type Model struct {
	store   *store.Store
	persist PersistFunc
	filter  *view.FilterView
	log     *zap.Logger

	input   textinput.Model
	edit    textinput.Model
	spinner spinner.Model
	styles  Styles

	mode      mode
	cursor    int
	confirmID task.ID
	banner    string
	width     int
}

// New creates the model over st. persist may be nil.
func New(st *store.Store, persist PersistFunc, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	if persist == nil {
		persist = func(context.Context) error { return nil }
	}
	styles := DefaultStyles()

	in := textinput.New()
	in.Placeholder = "What needs to be done?"
	in.Prompt = "+ "
	in.CharLimit = 500
	in.Focus()

	ed := textinput.New()
	ed.Prompt = "✎ "
	ed.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return Model{
		store:   st,
		persist: persist,
		filter:  view.NewFilterView(),
		log:     log,
		input:   in,
		edit:    ed,
		spinner: sp,
		styles:  styles,
		mode:    modeInput,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Run starts the program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

func (m Model) projection() view.Projection {
	return m.filter.Project(m.store.Tasks())
}

// selected returns the task under the cursor.
func (m Model) selected(p view.Projection) (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(p.Rows) {
		return task.Task{}, false
	}
	return p.Rows[m.cursor].Task, true
}

func (m *Model) clampCursor(p view.Projection) {
	if m.cursor >= len(p.Rows) {
		m.cursor = len(p.Rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// wait returns a command that blocks until p commits, then persists.
func (m Model) wait(op executor.Op, p *store.Pending) tea.Cmd {
	persist := m.persist
	return func() tea.Msg {
		<-p.Done()
		return committedMsg{op: op, err: persist(context.Background())}
	}
}

// dispatched handles the result of a store mutation call.
func (m Model) dispatched(op executor.Op, p *store.Pending, err error) (Model, tea.Cmd) {
	if err != nil {
		if !task.IsValidation(err) {
			m.banner = err.Error()
			m.log.Warn("operation rejected", zap.String("op", string(op)), zap.Error(err))
		}
		return m, nil
	}
	cmds := []tea.Cmd{m.wait(op, p)}
	if len(m.store.Snapshot().Busy) > 0 {
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}
