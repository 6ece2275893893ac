// Package executor schedules the commit step of store mutations.
package executor

import (
	"errors"
	"time"
)

var (
	// ErrClosed is returned by Run after Shutdown.
	ErrClosed = errors.New("executor is shut down")

	// ErrQueueFull is returned by Run when the pending queue is at capacity.
	ErrQueueFull = errors.New("executor queue is full")
)

// Op names a mutating operation.
type Op string

const (
	OpAdd            Op = "add"
	OpEdit           Op = "edit"
	OpToggle         Op = "toggle"
	OpDelete         Op = "delete"
	OpClearCompleted Op = "clear_completed"
)

// Ops lists every operation.
var Ops = []Op{OpAdd, OpEdit, OpToggle, OpDelete, OpClearCompleted}

// Executor runs commit exactly once, now or later.
// Run must not block on the commit itself.
type Executor interface {
	Run(op Op, commit func()) error
}

// Immediate commits inline before Run returns.
type Immediate struct{}

// Run implements Executor.
func (Immediate) Run(_ Op, commit func()) error {
	commit()
	return nil
}

// DefaultDelays returns the simulated latency of each operation.
func DefaultDelays() map[Op]time.Duration {
	return map[Op]time.Duration{
		OpAdd:            500 * time.Millisecond,
		OpEdit:           500 * time.Millisecond,
		OpToggle:         0,
		OpDelete:         500 * time.Millisecond,
		OpClearCompleted: 700 * time.Millisecond,
	}
}
