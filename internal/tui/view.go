package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todo/internal/executor"
	"todo/internal/store"
	"todo/internal/task"
	"todo/internal/view"
)

// busyLabels name the in-flight operations shown below the list.
var busyLabels = []struct {
	op    executor.Op
	label string
}{
	{executor.OpDelete, "deleting"},
	{executor.OpClearCompleted, "clearing"},
}

// View implements tea.Model.
func (m Model) View() string {
	snap := m.store.Snapshot()
	p := view.Project(snap.Tasks, m.filter.Filter())

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("To-Do List"))
	b.WriteString("\n")

	b.WriteString(m.input.View())
	if snap.IsBusy(executor.OpAdd) {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n")
	if snap.InputError != "" {
		b.WriteString(m.styles.FieldError.Render(snap.InputError))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.tabs())
	b.WriteString("\n")
	if p.Summary != "" {
		b.WriteString(m.styles.Summary.Render(p.Summary))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if p.Empty {
		b.WriteString(m.styles.Muted.Render(p.EmptyMessage))
		b.WriteString("\n")
	}
	for i, row := range p.Rows {
		b.WriteString(m.row(i, row, snap))
		b.WriteString("\n")
	}

	if status := m.busyStatus(snap); status != "" {
		b.WriteString("\n")
		b.WriteString(status)
		b.WriteString("\n")
	}

	switch m.mode {
	case modeConfirmDelete:
		desc := string(m.confirmID)
		if t, ok := m.store.Get(m.confirmID); ok {
			desc = t.Description
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Modal.Render(
			fmt.Sprintf("Delete %q?\nThis cannot be undone. (y/n)", desc)))
		b.WriteString("\n")
	case modeConfirmClear:
		b.WriteString("\n")
		b.WriteString(m.styles.Modal.Render(
			fmt.Sprintf("Delete %d completed %s?\nThis cannot be undone. (y/n)",
				p.Counts.Completed, plural(p.Counts.Completed))))
		b.WriteString("\n")
	}

	if m.banner != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Banner.Render("Error: " + m.banner))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(m.help(p)))
	return b.String()
}

func (m Model) tabs() string {
	tabs := make([]string, 0, len(task.Filters))
	for i, f := range task.Filters {
		label := fmt.Sprintf("%d %s", i+1, f.Label())
		if f == m.filter.Filter() {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) row(i int, row view.Row, snap store.Snapshot) string {
	cursor := "  "
	if i == m.cursor && m.mode != modeInput {
		cursor = m.styles.Selected.Render("› ")
	}

	if snap.IsEditing(row.Task.ID) && m.mode == modeEdit {
		line := cursor + m.edit.View()
		if snap.IsBusy(executor.OpEdit) {
			line += " " + m.spinner.View()
		}
		if snap.Editing.Error != "" {
			line += "\n    " + m.styles.FieldError.Render(snap.Editing.Error)
		}
		return line
	}

	check := "[ ]"
	desc := row.Task.Description
	if row.Task.Completed {
		check = "[x]"
		desc = m.styles.Completed.Render(desc)
	}
	return fmt.Sprintf("%s%s %s", cursor, check, desc)
}

func (m Model) busyStatus(snap store.Snapshot) string {
	var parts []string
	for _, l := range busyLabels {
		if snap.IsBusy(l.op) {
			parts = append(parts, l.label)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return m.spinner.View() + " " + strings.Join(parts, ", ") + "…"
}

func (m Model) help(p view.Projection) string {
	switch m.mode {
	case modeInput:
		return "enter: add • esc: go to list • ctrl+c: quit"
	case modeEdit:
		return "enter: save • esc: cancel"
	case modeConfirmDelete, modeConfirmClear:
		return "y: confirm • n: cancel"
	}
	h := "j/k: move • space: toggle • e: edit • d: delete • tab/1-3: filter • a: add"
	if p.ClearEnabled {
		h += " • c: clear completed"
	}
	return h + " • q: quit"
}

func plural(n int) string {
	if n == 1 {
		return "task"
	}
	return "tasks"
}
