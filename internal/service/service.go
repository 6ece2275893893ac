// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"

	"todo/internal/task"
)

// ErrNotFound is returned when no task has the requested ID.
var ErrNotFound = errors.New("task not found")

// Service defines the interface for task operations.
// Commands and HTTP handlers go through this interface and never touch a
// store or a remote client directly.
type Service interface {
	// ListTasks returns every task in list order.
	ListTasks(ctx context.Context) ([]task.Task, error)

	// GetTask returns the task with id or ErrNotFound.
	GetTask(ctx context.Context, id task.ID) (task.Task, error)

	// CreateTask appends a new active task.
	// An empty description returns a *task.ValidationError.
	CreateTask(ctx context.Context, description string) (task.Task, error)

	// EditTask replaces a task's description.
	EditTask(ctx context.Context, id task.ID, description string) (task.Task, error)

	// ToggleTask flips a task's completed flag and returns the new state.
	ToggleTask(ctx context.Context, id task.ID) (task.Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id task.ID) error

	// ClearCompleted removes every completed task and reports how many.
	ClearCompleted(ctx context.Context) (int, error)
}
