package runguard_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"scribe/internal/logging"
	"scribe/internal/runguard"
	"scribe/internal/stats"
)

func newGuard(t *testing.T, staleAfter time.Duration) (*runguard.Guard, *runguard.FileStore) {
	t.Helper()
	dir := t.TempDir()
	store := runguard.NewFileStore(
		filepath.Join(dir, "run_state.json"),
		filepath.Join(dir, "run_state.lock"),
	)
	return runguard.New(store, staleAfter, logging.NewNop()), store
}

func TestAcquireThenSecondAcquireRefused(t *testing.T) {
	guard, _ := newGuard(t, 2*time.Hour)

	if err := guard.Acquire(); err != nil {
		t.Fatalf("first Acquire: %v", err)
	}
	err := guard.Acquire()
	if !errors.Is(err, runguard.ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
}

func TestAcquireSelfHealsStaleRecord(t *testing.T) {
	guard, store := newGuard(t, 2*time.Hour)

	stale := &runguard.Record{
		Running:   true,
		StartTime: time.Now().Add(-3 * time.Hour),
		PID:       12345,
	}
	if err := store.Write(stale); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	if err := guard.Acquire(); err != nil {
		t.Fatalf("expected self-heal acquire, got %v", err)
	}

	rec, err := guard.Inspect()
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if !rec.Running {
		t.Fatal("expected running record after acquire")
	}
	if rec.PID != os.Getpid() {
		t.Fatalf("expected current pid, got %d", rec.PID)
	}
}

func TestAcquireRefusesFreshRecordAtBoundary(t *testing.T) {
	guard, store := newGuard(t, 2*time.Hour)

	now := time.Now()
	guard.WithClock(func() time.Time { return now })
	if err := store.Write(&runguard.Record{Running: true, StartTime: now.Add(-2 * time.Hour)}); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	// Exactly at the threshold the prior run is still presumed alive.
	if err := guard.Acquire(); !errors.Is(err, runguard.ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning at boundary, got %v", err)
	}
}

func TestReleasePersistsOutcomeAndStats(t *testing.T) {
	guard, _ := newGuard(t, 2*time.Hour)

	if err := guard.Acquire(); err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	run := stats.NewRun(time.Now())
	run.RecordOutcome(true)
	snap := run.Finalize(time.Now())

	if err := guard.Release(true, snap); err != nil {
		t.Fatalf("Release: %v", err)
	}

	rec, err := guard.Inspect()
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if rec.Running {
		t.Fatal("expected record not running after release")
	}
	if !rec.LastRunSuccess {
		t.Fatal("expected last run success")
	}
	if rec.LastRunStats == nil || rec.LastRunStats.Processed != 1 {
		t.Fatalf("unexpected persisted stats: %+v", rec.LastRunStats)
	}

	// The guard is reusable after release.
	if err := guard.Acquire(); err != nil {
		t.Fatalf("reacquire after release: %v", err)
	}
}

func TestAcquireTreatsCorruptRecordAsAbsent(t *testing.T) {
	dir := t.TempDir()
	recordPath := filepath.Join(dir, "run_state.json")
	store := runguard.NewFileStore(recordPath, filepath.Join(dir, "run_state.lock"))
	guard := runguard.New(store, 2*time.Hour, logging.NewNop())

	if err := os.WriteFile(recordPath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt record: %v", err)
	}

	if err := guard.Acquire(); err != nil {
		t.Fatalf("expected acquire despite corrupt record, got %v", err)
	}
}

func TestInspectReturnsNilWhenNeverRun(t *testing.T) {
	guard, _ := newGuard(t, time.Hour)
	rec, err := guard.Inspect()
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil record, got %+v", rec)
	}
}
