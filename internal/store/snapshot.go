package store

import (
	"todo/internal/executor"
	"todo/internal/task"
)

// Snapshot is a read-only copy of the store state for rendering.
type Snapshot struct {
	Tasks      []task.Task
	Input      string
	InputError string
	Editing    *EditSlot
	Busy       map[executor.Op]bool
}

// IsBusy reports whether op's control was in flight when the snapshot was taken.
func (s Snapshot) IsBusy(op executor.Op) bool {
	return s.Busy[op]
}

// IsEditing reports whether the task with id was in edit mode.
func (s Snapshot) IsEditing(id task.ID) bool {
	return s.Editing != nil && s.Editing.ID == id
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Tasks:      cloneTasks(s.tasks),
		Input:      s.input,
		InputError: s.inputError,
		Busy:       make(map[executor.Op]bool, len(s.busy)),
	}
	if s.editing != nil {
		slot := *s.editing
		snap.Editing = &slot
	}
	for op, b := range s.busy {
		if b {
			snap.Busy[op] = true
		}
	}
	return snap
}
