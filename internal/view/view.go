// Package view projects a task list into the subset shown for a filter,
// along with the counts and summary text rendered next to it.
// Nothing here mutates the task list.
package view

import (
	"fmt"

	"todo/internal/task"
)

// EmptyMessage is shown when the projection has no rows.
const EmptyMessage = "No tasks to show for this filter."

// Counts summarizes a task list.
type Counts struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// Count tallies tasks. Active+Completed always equals Total.
func Count(tasks []task.Task) Counts {
	c := Counts{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			c.Completed++
		} else {
			c.Active++
		}
	}
	return c
}

// Row is one displayed task. Number is its 1-based position in the full
// list, so it stays the same whichever filter is active.
type Row struct {
	Number int
	Task   task.Task
}

// Projection is what a shell renders for the current filter.
type Projection struct {
	Filter       task.Filter
	Rows         []Row
	Counts       Counts
	Summary      string
	Empty        bool
	EmptyMessage string
	// ClearEnabled reports whether there is anything for clear-completed to remove.
	ClearEnabled bool
}

// Tasks returns the tasks of the projected rows in order.
func (p Projection) Tasks() []task.Task {
	out := make([]task.Task, len(p.Rows))
	for i, r := range p.Rows {
		out[i] = r.Task
	}
	return out
}

// Project derives the displayed subset of tasks for filter.
func Project(tasks []task.Task, filter task.Filter) Projection {
	p := Projection{
		Filter: filter,
		Rows:   make([]Row, 0, len(tasks)),
		Counts: Count(tasks),
	}
	for i, t := range tasks {
		if filter.Match(t) {
			p.Rows = append(p.Rows, Row{Number: i + 1, Task: t})
		}
	}
	p.Summary = Summary(filter, p.Counts)
	p.ClearEnabled = p.Counts.Completed > 0
	if len(p.Rows) == 0 {
		p.Empty = true
		p.EmptyMessage = EmptyMessage
	}
	return p
}

// Summary returns the line shown under the filter tabs.
func Summary(filter task.Filter, c Counts) string {
	switch filter {
	case task.FilterActive:
		return fmt.Sprintf("%d active %s shown", c.Active, plural(c.Active))
	case task.FilterCompleted:
		return fmt.Sprintf("%d completed %s shown", c.Completed, plural(c.Completed))
	default:
		if c.Total == 0 {
			return ""
		}
		return fmt.Sprintf("%d active, %d completed tasks", c.Active, c.Completed)
	}
}

func plural(n int) string {
	if n == 1 {
		return "task"
	}
	return "tasks"
}

// FilterView holds the active filter of one session.
type FilterView struct {
	filter task.Filter
}

// NewFilterView starts at FilterAll.
func NewFilterView() *FilterView {
	return &FilterView{filter: task.FilterAll}
}

// Filter returns the active filter.
func (v *FilterView) Filter() task.Filter { return v.filter }

// Set changes the active filter.
func (v *FilterView) Set(f task.Filter) { v.filter = f }

// Cycle moves to the next filter and returns it.
func (v *FilterView) Cycle() task.Filter {
	v.filter = v.filter.Next()
	return v.filter
}

// Project projects tasks through the active filter.
func (v *FilterView) Project(tasks []task.Task) Projection {
	return Project(tasks, v.filter)
}
