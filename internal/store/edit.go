package store

import (
	"todo/internal/executor"
	"todo/internal/task"
)

// BeginEdit puts the task with id into edit mode with its description as the
// draft. Any other task leaves edit mode. Unknown ids are ignored.
func (s *Store) BeginEdit(id task.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy[executor.OpEdit] {
		return ErrBusy
	}
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.editing = &EditSlot{ID: id, Draft: s.tasks[i].Description}
	return nil
}

// SetDraft updates the edit draft and clears the slot error.
func (s *Store) SetDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing == nil || s.busy[executor.OpEdit] {
		return
	}
	s.editing.Draft = text
	s.editing.Error = ""
}

// SaveEdit commits the draft of the task in edit mode.
func (s *Store) SaveEdit() (*Pending, error) {
	s.mu.Lock()
	if s.editing == nil {
		s.mu.Unlock()
		return nil, ErrNotEditing
	}
	id, draft := s.editing.ID, s.editing.Draft
	s.mu.Unlock()
	return s.Edit(id, draft)
}

// CancelEdit leaves edit mode without saving.
func (s *Store) CancelEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy[executor.OpEdit] {
		return ErrBusy
	}
	s.editing = nil
	return nil
}

// Editing returns the edit slot, if any task is in edit mode.
func (s *Store) Editing() (EditSlot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing == nil {
		return EditSlot{}, false
	}
	return *s.editing, true
}
