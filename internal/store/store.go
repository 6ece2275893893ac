// Package store holds the ordered task list of a session and applies
// validated mutations through an executor.
//
// Validation happens synchronously. The commit step of every mutation is
// handed to the executor, so it may land immediately or after a simulated
// latency. While an add, edit, delete or clear-completed commit is in flight
// the matching control is busy and a second invocation returns ErrBusy.
package store

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"todo/internal/executor"
	"todo/internal/task"
)

var (
	// ErrBusy is returned when the control for an operation is still in flight.
	ErrBusy = errors.New("operation already in progress")

	// ErrNotEditing is returned by SaveEdit when no task is in edit mode.
	ErrNotEditing = errors.New("no task is being edited")
)

// EditSlot is the single task currently in edit mode.
type EditSlot struct {
	ID    task.ID
	Draft string
	Error string
}

// Store is an in-memory ordered task collection. It is safe for concurrent use.
type Store struct {
	exec executor.Executor
	log  *zap.Logger

	mu         sync.Mutex
	tasks      []task.Task
	input      string
	inputError string
	editing    *EditSlot
	busy       map[executor.Op]bool

	seed []task.Task
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithTasks seeds the store. Records with an empty ID, a duplicate ID or an
// empty description are dropped.
func WithTasks(tasks []task.Task) Option {
	return func(s *Store) {
		s.seed = tasks
	}
}

// New creates a store. A nil executor commits immediately.
func New(exec executor.Executor, opts ...Option) *Store {
	if exec == nil {
		exec = executor.Immediate{}
	}
	s := &Store{
		exec: exec,
		log:  zap.NewNop(),
		busy: make(map[executor.Op]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load(s.seed)
	s.seed = nil
	return s
}

func (s *Store) load(tasks []task.Task) {
	seen := make(map[task.ID]bool, len(tasks))
	for _, t := range tasks {
		desc, err := task.ValidateDescription(task.FieldInput, t.Description)
		if t.ID == "" || seen[t.ID] || err != nil {
			s.log.Warn("dropping invalid task record",
				zap.String("task_id", string(t.ID)),
				zap.Bool("duplicate", seen[t.ID]))
			continue
		}
		seen[t.ID] = true
		t.Description = desc
		s.tasks = append(s.tasks, t)
	}
}

// Tasks returns a copy of the task list in order.
func (s *Store) Tasks() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.tasks)
}

// Get returns the task with id.
func (s *Store) Get(id task.ID) (task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return task.Task{}, false
	}
	return s.tasks[i], true
}

// Busy reports whether op's control is in flight.
func (s *Store) Busy(op executor.Op) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy[op]
}

func (s *Store) indexOf(id task.ID) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func cloneTasks(in []task.Task) []task.Task {
	out := make([]task.Task, len(in))
	copy(out, in)
	return out
}

// acquire marks op busy. Must be called with s.mu held.
func (s *Store) acquire(op executor.Op) error {
	if s.busy[op] {
		return ErrBusy
	}
	s.busy[op] = true
	return nil
}

// schedule hands mutate to the executor. mutate runs with s.mu held and
// gated ops are released in the same critical section.
func (s *Store) schedule(op executor.Op, id task.ID, gated bool, mutate func(p *Pending)) (*Pending, error) {
	p := newPending(id)
	err := s.exec.Run(op, func() {
		s.mu.Lock()
		mutate(p)
		if gated {
			delete(s.busy, op)
		}
		s.mu.Unlock()
		p.finish()
	})
	if err != nil {
		if gated {
			s.mu.Lock()
			delete(s.busy, op)
			s.mu.Unlock()
		}
		s.log.Warn("operation rejected by executor", zap.String("op", string(op)), zap.Error(err))
		return nil, err
	}
	return p, nil
}
