package scheduler_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"scribe/internal/logging"
	"scribe/internal/scheduler"
)

func TestRunImmediateExecutesBeforeFirstTick(t *testing.T) {
	var runs atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())

	s := scheduler.New(time.Hour, true, logging.NewNop())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, func(context.Context) {
			runs.Add(1)
			cancel()
		})
	}()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
	if got := runs.Load(); got != 1 {
		t.Fatalf("expected 1 immediate run, got %d", got)
	}
}

func TestRunWithoutImmediateWaitsForTick(t *testing.T) {
	var runs atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := scheduler.New(50*time.Millisecond, false, logging.NewNop())
	go s.Run(ctx, func(context.Context) { runs.Add(1) })

	if got := runs.Load(); got != 0 {
		t.Fatalf("expected no run before the first tick, got %d", got)
	}

	deadline := time.Now().Add(5 * time.Second)
	for runs.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("job never ran")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := scheduler.New(time.Hour, false, logging.NewNop())
	if err := s.Run(ctx, func(context.Context) {}); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
