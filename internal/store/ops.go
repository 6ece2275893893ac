package store

import (
	"go.uber.org/zap"

	"todo/internal/executor"
	"todo/internal/task"
)

// SetInput updates the new-task input value and clears its validation error.
func (s *Store) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = text
	s.inputError = ""
}

// SubmitInput adds a task from the current input value.
func (s *Store) SubmitInput() (*Pending, error) {
	s.mu.Lock()
	in := s.input
	s.mu.Unlock()
	return s.Add(in)
}

// Add appends a new active task. An empty description sets the input error
// and returns a *task.ValidationError without mutating anything.
// On commit the input value and its error are cleared.
func (s *Store) Add(description string) (*Pending, error) {
	desc, verr := task.ValidateDescription(task.FieldInput, description)

	s.mu.Lock()
	if verr != nil {
		s.inputError = verr.Error()
		s.mu.Unlock()
		return nil, verr
	}
	if err := s.acquire(executor.OpAdd); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	t := task.New(desc)
	return s.schedule(executor.OpAdd, t.ID, true, func(*Pending) {
		s.tasks = append(s.tasks, t)
		s.input = ""
		s.inputError = ""
		s.log.Debug("task added", zap.String("task_id", string(t.ID)))
	})
}

// Edit replaces the description of the task with id. An empty description
// is rejected; when id is in edit mode the error is attached to the slot.
// On commit, edit mode is left if it was on id. Unknown ids commit as no-ops.
func (s *Store) Edit(id task.ID, newDescription string) (*Pending, error) {
	desc, verr := task.ValidateDescription(task.FieldEdit, newDescription)

	s.mu.Lock()
	if verr != nil {
		if s.editing != nil && s.editing.ID == id {
			s.editing.Error = verr.Error()
		}
		s.mu.Unlock()
		return nil, verr
	}
	if err := s.acquire(executor.OpEdit); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	return s.schedule(executor.OpEdit, id, true, func(*Pending) {
		if i := s.indexOf(id); i >= 0 {
			s.tasks[i].Description = desc
			s.log.Debug("task edited", zap.String("task_id", string(id)))
		}
		if s.editing != nil && s.editing.ID == id {
			s.editing = nil
		}
	})
}

// Toggle flips the completed flag of the task with id.
func (s *Store) Toggle(id task.ID) (*Pending, error) {
	return s.schedule(executor.OpToggle, id, false, func(*Pending) {
		if i := s.indexOf(id); i >= 0 {
			s.tasks[i].Completed = !s.tasks[i].Completed
			s.log.Debug("task toggled",
				zap.String("task_id", string(id)),
				zap.Bool("completed", s.tasks[i].Completed))
		}
	})
}

// Delete removes the task with id. Confirmation is the caller's concern.
func (s *Store) Delete(id task.ID) (*Pending, error) {
	s.mu.Lock()
	if err := s.acquire(executor.OpDelete); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	return s.schedule(executor.OpDelete, id, true, func(p *Pending) {
		i := s.indexOf(id)
		if i < 0 {
			return
		}
		s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
		p.removed = 1
		if s.editing != nil && s.editing.ID == id {
			s.editing = nil
		}
		s.log.Info("task deleted", zap.String("task_id", string(id)))
	})
}

// ClearCompleted removes every completed task in one commit. Active tasks
// keep their relative order.
func (s *Store) ClearCompleted() (*Pending, error) {
	s.mu.Lock()
	if err := s.acquire(executor.OpClearCompleted); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	return s.schedule(executor.OpClearCompleted, "", true, func(p *Pending) {
		kept := make([]task.Task, 0, len(s.tasks))
		for _, t := range s.tasks {
			if t.Completed {
				if s.editing != nil && s.editing.ID == t.ID {
					s.editing = nil
				}
				continue
			}
			kept = append(kept, t)
		}
		p.removed = len(s.tasks) - len(kept)
		s.tasks = kept
		s.log.Info("cleared completed tasks", zap.Int("removed", p.removed))
	})
}
