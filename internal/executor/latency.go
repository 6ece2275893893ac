package executor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultQueueSize is the capacity of the Latency queue.
const DefaultQueueSize = 64

type job struct {
	op     Op
	commit func()
}

// Latency commits each job on a single worker after the job's delay.
// Jobs commit in submission order. Shutdown drains the queue; nothing is cancelled.
type Latency struct {
	delays map[Op]time.Duration
	queue  chan job
	log    *zap.Logger

	mu      sync.RWMutex
	closed  bool
	started bool
	done    chan struct{}
}

// NewLatency creates a latency executor. Missing ops commit without delay.
func NewLatency(delays map[Op]time.Duration, queueSize int, log *zap.Logger) *Latency {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	d := make(map[Op]time.Duration, len(delays))
	for op, v := range delays {
		d[op] = v
	}
	return &Latency{
		delays: d,
		queue:  make(chan job, queueSize),
		log:    log,
		done:   make(chan struct{}),
	}
}

// Start launches the worker. Calling Start twice is a no-op.
func (l *Latency) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return
	}
	l.started = true
	go l.work()
}

func (l *Latency) work() {
	defer close(l.done)
	for j := range l.queue {
		if d := l.delays[j.op]; d > 0 {
			time.Sleep(d)
		}
		l.log.Debug("committing operation", zap.String("op", string(j.op)))
		j.commit()
	}
}

// Run implements Executor. It never blocks.
func (l *Latency) Run(op Op, commit func()) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return ErrClosed
	}
	select {
	case l.queue <- job{op: op, commit: commit}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops admission and waits for queued commits to finish.
func (l *Latency) Shutdown(ctx context.Context) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	close(l.queue)
	started := l.started
	l.mu.Unlock()

	if !started {
		// Nobody is consuming; drain inline so every commit still runs once.
		for j := range l.queue {
			j.commit()
		}
		return nil
	}

	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
