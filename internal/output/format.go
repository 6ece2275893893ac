// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/task"
	"todo/internal/view"
)

const (
	// Separator is the separator line around a filter header.
	Separator = "------------"
)

// FormatRow formats a task line.
// Format: "{N:>4}  [ ] {DESCRIPTION}\n", with [x] for completed tasks.
func FormatRow(w io.Writer, row view.Row) {
	fmt.Fprintf(w, "%4d  %s %s\n", row.Number, checkbox(row.Task), normalizeDescription(row.Task.Description))
}

// FormatRows formats every row of a projection.
func FormatRows(w io.Writer, p view.Projection) {
	for _, row := range p.Rows {
		FormatRow(w, row)
	}
}

// FormatFilterHeader formats the header printed above a filtered list.
func FormatFilterHeader(w io.Writer, f task.Filter) {
	fmt.Fprintln(w, Separator)
	fmt.Fprintln(w, f.Label())
	fmt.Fprintln(w, Separator)
}

// FormatProjection formats a full list view: header for non-default
// filters, rows or the empty message, then the summary line.
func FormatProjection(w io.Writer, p view.Projection) {
	if p.Filter != task.FilterAll {
		FormatFilterHeader(w, p.Filter)
	}
	if p.Empty {
		fmt.Fprintln(w, p.EmptyMessage)
	} else {
		FormatRows(w, p)
	}
	if p.Summary != "" {
		fmt.Fprintln(w, p.Summary)
	}
}

// FormatTask formats a single task with its full ID, for `edit` and
// `toggle` feedback in debug mode.
func FormatTask(w io.Writer, t task.Task) {
	fmt.Fprintf(w, "%s  %s %s\n", t.ID.Short(), checkbox(t), normalizeDescription(t.Description))
}

func checkbox(t task.Task) string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

// normalizeDescription normalizes a description for display.
// Newlines are replaced with spaces.
func normalizeDescription(desc string) string {
	desc = strings.ReplaceAll(desc, "\r", " ")
	desc = strings.ReplaceAll(desc, "\n", " ")
	if strings.TrimSpace(desc) == "" {
		return "(untitled)"
	}
	return desc
}
