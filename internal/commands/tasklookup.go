package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"todo/internal/service"
	"todo/internal/task"
)

var (
	// ErrTaskOutOfRange indicates a list number past the end of the list.
	ErrTaskOutOfRange = errors.New("task number out of range")

	// ErrNoMatch indicates an ID prefix that matches no task.
	ErrNoMatch = errors.New("no task matches")

	// ErrAmbiguousRef indicates an ID prefix that matches several tasks.
	ErrAmbiguousRef = errors.New("ambiguous task reference")
)

// findTask resolves ref against the current task list.
func findTask(ctx context.Context, svc service.Service, ref TaskRef) (task.Task, error) {
	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return task.Task{}, err
	}
	return lookupTask(tasks, ref)
}

func lookupTask(tasks []task.Task, ref TaskRef) (task.Task, error) {
	if ref.IDPrefix == "" {
		if ref.Number < 1 || ref.Number > len(tasks) {
			return task.Task{}, fmt.Errorf("%w: %d", ErrTaskOutOfRange, ref.Number)
		}
		return tasks[ref.Number-1], nil
	}

	var matches []task.Task
	for _, t := range tasks {
		if strings.HasPrefix(strings.ToLower(string(t.ID)), ref.IDPrefix) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return task.Task{}, fmt.Errorf("%w: %s", ErrNoMatch, ref.IDPrefix)
	case 1:
		return matches[0], nil
	default:
		return task.Task{}, fmt.Errorf("%w: %s", ErrAmbiguousRef, ref.IDPrefix)
	}
}
