package repository

import (
	"context"
	"sync"

	"todo/internal/task"
)

// Memory keeps tasks in process memory.
type Memory struct {
	mu    sync.Mutex
	tasks []task.Task
	saves int
}

// NewMemory returns a repository seeded with tasks.
func NewMemory(tasks []task.Task) *Memory {
	return &Memory{tasks: clone(tasks)}
}

func (m *Memory) Load(context.Context) ([]task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.tasks), nil
}

func (m *Memory) Save(_ context.Context, tasks []task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = clone(tasks)
	m.saves++
	return nil
}

// Saves returns how many times Save was called.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *Memory) Close() error { return nil }

func clone(in []task.Task) []task.Task {
	if in == nil {
		return nil
	}
	out := make([]task.Task, len(in))
	copy(out, in)
	return out
}
