// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"todo/internal/service"
	"todo/internal/task"
)

// ErrBackend is a generic injected backend failure.
var ErrBackend = errors.New("backend unavailable")

// FakeService is an in-memory implementation of service.Service for testing.
// IDs are derived from descriptions so tests can predict them.
type FakeService struct {
	mu    sync.RWMutex
	tasks []task.Task

	// Error injection for testing
	ListTasksErr      error
	GetTaskErr        error
	CreateTaskErr     error
	EditTaskErr       error
	ToggleTaskErr     error
	DeleteTaskErr     error
	ClearCompletedErr error

	// Calls records mutating calls in order, e.g. "delete:abcd1234".
	Calls []string
}

var _ service.Service = (*FakeService)(nil)

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// AddTask adds a task directly, bypassing validation and error injection.
func (f *FakeService) AddTask(id, description string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task.Task{ID: task.ID(id), Description: description, Completed: completed})
}

// Tasks returns a copy of the current tasks.
func (f *FakeService) Tasks() []task.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]task.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]task.Task, error) {
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	return f.Tasks(), nil
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, id task.ID) (task.Task, error) {
	if f.GetTaskErr != nil {
		return task.Task{}, f.GetTaskErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if i := f.indexOf(id); i >= 0 {
		return f.tasks[i], nil
	}
	return task.Task{}, fmt.Errorf("%w: %s", service.ErrNotFound, id)
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, description string) (task.Task, error) {
	if f.CreateTaskErr != nil {
		return task.Task{}, f.CreateTaskErr
	}
	desc, err := task.ValidateDescription(task.FieldInput, description)
	if err != nil {
		return task.Task{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	// Generate a simple ID
	id := task.ID(strings.ToLower(strings.ReplaceAll(desc, " ", "-")))
	t := task.Task{ID: id, Description: desc}
	f.tasks = append(f.tasks, t)
	f.Calls = append(f.Calls, "create:"+string(id))
	return t, nil
}

// EditTask implements service.Service.
func (f *FakeService) EditTask(ctx context.Context, id task.ID, description string) (task.Task, error) {
	if f.EditTaskErr != nil {
		return task.Task{}, f.EditTaskErr
	}
	desc, err := task.ValidateDescription(task.FieldEdit, description)
	if err != nil {
		return task.Task{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.indexOf(id)
	if i < 0 {
		return task.Task{}, fmt.Errorf("%w: %s", service.ErrNotFound, id)
	}
	f.tasks[i].Description = desc
	f.Calls = append(f.Calls, "edit:"+string(id))
	return f.tasks[i], nil
}

// ToggleTask implements service.Service.
func (f *FakeService) ToggleTask(ctx context.Context, id task.ID) (task.Task, error) {
	if f.ToggleTaskErr != nil {
		return task.Task{}, f.ToggleTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.indexOf(id)
	if i < 0 {
		return task.Task{}, fmt.Errorf("%w: %s", service.ErrNotFound, id)
	}
	f.tasks[i].Completed = !f.tasks[i].Completed
	f.Calls = append(f.Calls, "toggle:"+string(id))
	return f.tasks[i], nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id task.ID) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if i := f.indexOf(id); i >= 0 {
		f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	}
	f.Calls = append(f.Calls, "delete:"+string(id))
	return nil
}

// ClearCompleted implements service.Service.
func (f *FakeService) ClearCompleted(ctx context.Context) (int, error) {
	if f.ClearCompletedErr != nil {
		return 0, f.ClearCompletedErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	kept := f.tasks[:0]
	for _, t := range f.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	n := len(f.tasks) - len(kept)
	f.tasks = kept
	f.Calls = append(f.Calls, "clear")
	return n, nil
}

func (f *FakeService) indexOf(id task.ID) int {
	for i, t := range f.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
