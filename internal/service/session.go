package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"todo/internal/executor"
	"todo/internal/repository"
	"todo/internal/store"
	"todo/internal/task"
)

// Session is the local Service: a Store loaded from a Repository and saved
// back after every committed mutation.
type Session struct {
	store *store.Store
	repo  repository.Repository
	exec  executor.Executor
	log   *zap.Logger

	// mu serializes Service mutations; saveMu serializes saves.
	mu     sync.Mutex
	saveMu sync.Mutex
}

var _ Service = (*Session)(nil)

// Open loads the task list from repo and starts a session on it.
// A nil exec commits immediately.
func Open(ctx context.Context, repo repository.Repository, exec executor.Executor, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if exec == nil {
		exec = executor.Immediate{}
	}
	tasks, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	log.Debug("session opened", zap.Int("tasks", len(tasks)))
	return &Session{
		store: store.New(exec, store.WithLogger(log), store.WithTasks(tasks)),
		repo:  repo,
		exec:  exec,
		log:   log,
	}, nil
}

// Store exposes the underlying store for interactive shells. Callers that
// mutate it directly must call Persist once their commits land.
func (s *Session) Store() *store.Store { return s.store }

// Persist saves the current task list.
func (s *Session) Persist(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if err := s.repo.Save(ctx, s.store.Tasks()); err != nil {
		s.log.Error("saving tasks failed", zap.Error(err))
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}

// Close drains pending commits, saves once more and closes the repository.
func (s *Session) Close() error {
	ctx := context.Background()
	if sd, ok := s.exec.(interface{ Shutdown(context.Context) error }); ok {
		if err := sd.Shutdown(ctx); err != nil {
			s.log.Warn("executor shutdown", zap.Error(err))
		}
	}
	perr := s.Persist(ctx)
	if err := s.repo.Close(); err != nil {
		return fmt.Errorf("closing repository: %w", err)
	}
	return perr
}

// ListTasks returns every task in list order.
func (s *Session) ListTasks(context.Context) ([]task.Task, error) {
	return s.store.Tasks(), nil
}

// GetTask returns the task with id, or ErrNotFound.
func (s *Session) GetTask(_ context.Context, id task.ID) (task.Task, error) {
	t, ok := s.store.Get(id)
	if !ok {
		return task.Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return t, nil
}

// CreateTask adds a task and waits for it to be committed and saved.
func (s *Session) CreateTask(ctx context.Context, description string) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.Add(description)
	if err != nil {
		return task.Task{}, err
	}
	if err := s.commit(ctx, p); err != nil {
		return task.Task{}, err
	}
	return s.GetTask(ctx, p.TaskID)
}

// EditTask replaces the description of the task with id.
func (s *Session) EditTask(ctx context.Context, id task.ID, description string) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.GetTask(ctx, id); err != nil {
		return task.Task{}, err
	}
	p, err := s.store.Edit(id, description)
	if err != nil {
		return task.Task{}, err
	}
	if err := s.commit(ctx, p); err != nil {
		return task.Task{}, err
	}
	return s.GetTask(ctx, id)
}

// ToggleTask flips the completed flag of the task with id.
func (s *Session) ToggleTask(ctx context.Context, id task.ID) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.GetTask(ctx, id); err != nil {
		return task.Task{}, err
	}
	p, err := s.store.Toggle(id)
	if err != nil {
		return task.Task{}, err
	}
	if err := s.commit(ctx, p); err != nil {
		return task.Task{}, err
	}
	return s.GetTask(ctx, id)
}

// DeleteTask removes the task with id. Unknown ids are a no-op.
func (s *Session) DeleteTask(ctx context.Context, id task.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.Delete(id)
	if err != nil {
		return err
	}
	if err := s.commit(ctx, p); err != nil {
		return err
	}
	if p.Removed() == 0 {
		s.log.Debug("delete of unknown task", zap.String("task_id", string(id)))
	}
	return nil
}

// ClearCompleted removes every completed task and returns how many were removed.
func (s *Session) ClearCompleted(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.ClearCompleted()
	if err != nil {
		return 0, err
	}
	if err := s.commit(ctx, p); err != nil {
		return 0, err
	}
	return p.Removed(), nil
}

// commit waits for p to land and saves the result.
func (s *Session) commit(ctx context.Context, p *store.Pending) error {
	if err := p.Wait(ctx); err != nil {
		return err
	}
	return s.Persist(ctx)
}
