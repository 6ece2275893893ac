package store

import (
	"context"

	"todo/internal/task"
)

// Pending tracks a mutation whose commit has been handed to the executor.
type Pending struct {
	// TaskID is the task the mutation targets. Empty for ClearCompleted.
	TaskID task.ID

	done    chan struct{}
	removed int
}

func newPending(id task.ID) *Pending {
	return &Pending{TaskID: id, done: make(chan struct{})}
}

func (p *Pending) finish() { close(p.done) }

// Done is closed once the mutation has committed.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait blocks until the mutation commits or ctx ends.
// Returning early does not cancel the commit.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Removed is the number of tasks removed by the mutation. Valid after Done.
func (p *Pending) Removed() int { return p.removed }
