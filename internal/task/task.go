// Package task defines the to-do record, filters and validation rules.
package task

import (
	"strings"

	"github.com/google/uuid"
)

// ID is the opaque identifier of a task. It is assigned at creation and never changes.
type ID string

// NewID returns a fresh unique task ID.
func NewID() ID {
	return ID(uuid.NewString())
}

func (id ID) String() string { return string(id) }

// Short returns the first 8 characters of the ID for display.
func (id ID) Short() string {
	if len(id) > 8 {
		return string(id[:8])
	}
	return string(id)
}

// Task is a single to-do item.
type Task struct {
	ID          ID     `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Completed   bool   `json:"completed" yaml:"completed"`
}

// New creates an active task with a fresh ID and a trimmed description.
// Callers validate the description first.
func New(description string) Task {
	return Task{
		ID:          NewID(),
		Description: strings.TrimSpace(description),
	}
}

// Status returns "completed" or "active".
func (t Task) Status() string {
	if t.Completed {
		return "completed"
	}
	return "active"
}
