package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"todo/internal/executor"
	"todo/internal/store"
	"todo/internal/task"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 4
		m.edit.Width = msg.Width - 8
		return m, nil

	case committedMsg:
		return m.committed(msg)

	case spinner.TickMsg:
		// Keep ticking only while something is in flight.
		if len(m.store.Snapshot().Busy) == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeInput:
			return m.updateInput(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeConfirmDelete, modeConfirmClear:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m Model) committed(msg committedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.banner = msg.err.Error()
	}
	snap := m.store.Snapshot()
	switch msg.op {
	case executor.OpAdd:
		// The store cleared its input value on commit.
		m.input.SetValue(snap.Input)
	case executor.OpEdit, executor.OpDelete, executor.OpClearCompleted:
		// A save, or removal of the task under edit, closes the slot.
		if snap.Editing == nil && m.mode == modeEdit {
			m.edit.Blur()
			m.mode = modeList
		}
	}
	m.clampCursor(m.projection())
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.store.SetInput(m.input.Value())
		p, err := m.store.SubmitInput()
		return m.dispatched(executor.OpAdd, p, err)
	case "esc", "tab", "down":
		m.input.Blur()
		m.mode = modeList
		return m, nil
	}
	// The field is read-only until the pending add commits and clears it.
	if m.store.Busy(executor.OpAdd) {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.store.SetInput(m.input.Value())
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.store.SetDraft(m.edit.Value())
		p, err := m.store.SaveEdit()
		return m.dispatched(executor.OpEdit, p, err)
	case "esc":
		if err := m.store.CancelEdit(); err != nil {
			// Saving; the commit will leave edit mode.
			return m, nil
		}
		m.edit.Blur()
		m.mode = modeList
		return m, nil
	}
	if m.store.Busy(executor.OpEdit) {
		return m, nil
	}
	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	m.store.SetDraft(m.edit.Value())
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		confirmed := m.mode
		m.mode = modeList
		if confirmed == modeConfirmDelete {
			m.log.Info("delete confirmed", zap.String("task_id", string(m.confirmID)))
			p, err := m.store.Delete(m.confirmID)
			m.confirmID = ""
			return m.dispatched(executor.OpDelete, p, err)
		}
		p, err := m.store.ClearCompleted()
		return m.dispatched(executor.OpClearCompleted, p, err)
	case "n", "N", "esc", "q":
		m.mode = modeList
		m.confirmID = ""
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.projection()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.banner = ""
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(p.Rows)-1 {
			m.cursor++
		}
	case "tab":
		m.filter.Cycle()
		m.cursor = 0
	case "1":
		m.filter.Set(task.FilterAll)
		m.cursor = 0
	case "2":
		m.filter.Set(task.FilterActive)
		m.cursor = 0
	case "3":
		m.filter.Set(task.FilterCompleted)
		m.cursor = 0
	case "a", "i", "n":
		m.mode = modeInput
		cmd := m.input.Focus()
		return m, cmd
	case " ", "x":
		if t, ok := m.selected(p); ok {
			pending, err := m.store.Toggle(t.ID)
			return m.dispatched(executor.OpToggle, pending, err)
		}
	case "e", "enter":
		if t, ok := m.selected(p); ok {
			if err := m.store.BeginEdit(t.ID); err != nil {
				m.banner = err.Error()
				return m, nil
			}
			slot, _ := m.store.Editing()
			m.edit.SetValue(slot.Draft)
			m.edit.CursorEnd()
			m.mode = modeEdit
			cmd := m.edit.Focus()
			return m, cmd
		}
	case "d", "delete":
		if t, ok := m.selected(p); ok {
			if m.store.Busy(executor.OpDelete) {
				m.banner = store.ErrBusy.Error()
				return m, nil
			}
			m.confirmID = t.ID
			m.mode = modeConfirmDelete
		}
	case "c":
		if p.ClearEnabled && !m.store.Busy(executor.OpClearCompleted) {
			m.mode = modeConfirmClear
		}
	}
	return m, nil
}
