package executor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestImmediate_CommitsInline(t *testing.T) {
	ran := false
	if err := (Immediate{}).Run(OpAdd, func() { ran = true }); err != nil {
		t.Fatalf("Run() err=%v, want nil", err)
	}
	if !ran {
		t.Fatal("commit did not run before Run returned")
	}
}

func TestLatency_CommitsInSubmissionOrder(t *testing.T) {
	delays := map[Op]time.Duration{
		OpAdd:    20 * time.Millisecond,
		OpToggle: 0,
		OpDelete: 5 * time.Millisecond,
	}
	l := NewLatency(delays, 16, nil)
	l.Start()

	var mu sync.Mutex
	var got []int
	record := func(i int) func() {
		return func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		}
	}

	// The slow add goes first; later, faster ops must still commit after it.
	ops := []Op{OpAdd, OpToggle, OpDelete, OpToggle}
	for i, op := range ops {
		if err := l.Run(op, record(i)); err != nil {
			t.Fatalf("Run(%s) err=%v", op, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := l.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() err=%v", err)
	}

	if len(got) != len(ops) {
		t.Fatalf("expected %d commits, got %d", len(ops), len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("commit order=%v, want ascending", got)
		}
	}
}

func TestLatency_DelaysCommit(t *testing.T) {
	l := NewLatency(map[Op]time.Duration{OpAdd: 30 * time.Millisecond}, 0, nil)
	l.Start()
	defer l.Shutdown(context.Background())

	done := make(chan time.Time, 1)
	start := time.Now()
	if err := l.Run(OpAdd, func() { done <- time.Now() }); err != nil {
		t.Fatalf("Run() err=%v", err)
	}

	select {
	case at := <-done:
		if at.Sub(start) < 30*time.Millisecond {
			t.Fatalf("commit after %v, want >= 30ms", at.Sub(start))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("commit never ran")
	}
}

func TestLatency_RunAfterShutdown(t *testing.T) {
	l := NewLatency(nil, 1, nil)
	l.Start()
	if err := l.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() err=%v", err)
	}
	err := l.Run(OpAdd, func() {})
	if !errors.Is(err, ErrClosed) {
		t.Fatalf("Run() err=%v, want %v", err, ErrClosed)
	}
	// Second shutdown is harmless.
	if err := l.Shutdown(context.Background()); err != nil {
		t.Fatalf("second Shutdown() err=%v", err)
	}
}

func TestLatency_QueueFull(t *testing.T) {
	// Not started: nothing consumes, so the second job overflows.
	l := NewLatency(nil, 1, nil)
	if err := l.Run(OpAdd, func() {}); err != nil {
		t.Fatalf("first Run() err=%v", err)
	}
	if err := l.Run(OpAdd, func() {}); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("second Run() err=%v, want %v", err, ErrQueueFull)
	}
	_ = l.Shutdown(context.Background())
}

func TestLatency_ShutdownWithoutStartDrains(t *testing.T) {
	l := NewLatency(map[Op]time.Duration{OpAdd: time.Hour}, 4, nil)
	count := 0
	for i := 0; i < 3; i++ {
		if err := l.Run(OpAdd, func() { count++ }); err != nil {
			t.Fatalf("Run() err=%v", err)
		}
	}
	if err := l.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() err=%v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 commits, got %d", count)
	}
}

func TestDefaultDelays(t *testing.T) {
	d := DefaultDelays()
	for _, op := range Ops {
		if _, ok := d[op]; !ok {
			t.Errorf("missing delay for %s", op)
		}
	}
	if d[OpToggle] != 0 {
		t.Errorf("expected toggle to commit without delay, got %v", d[OpToggle])
	}
	if d[OpClearCompleted] != 700*time.Millisecond {
		t.Errorf("expected clear_completed delay 700ms, got %v", d[OpClearCompleted])
	}
}
