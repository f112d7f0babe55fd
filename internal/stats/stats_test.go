package stats_test

import (
	"fmt"
	"testing"
	"time"

	"scribe/internal/stats"
)

func TestRunFinalizeCounts(t *testing.T) {
	start := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	run := stats.NewRun(start)

	run.RecordOutcome(true)
	run.RecordOutcome(true)
	run.RecordOutcome(false)
	run.RecordMoved()
	run.RecordDeleted()
	run.RecordError("%s: boom", "a.wav")

	snap := run.Finalize(start.Add(90 * time.Second))

	if snap.Processed != 3 || snap.Successful != 2 || snap.Failed != 1 {
		t.Fatalf("unexpected counters: %+v", snap)
	}
	if snap.Moved != 1 || snap.Deleted != 1 {
		t.Fatalf("unexpected move counters: %+v", snap)
	}
	if snap.DurationMinutes != 1.5 {
		t.Fatalf("unexpected duration: %v", snap.DurationMinutes)
	}
	if len(snap.Errors) != 1 || snap.Errors[0] != "a.wav: boom" {
		t.Fatalf("unexpected errors: %v", snap.Errors)
	}

	rate, ok := snap.SuccessRate()
	if !ok {
		t.Fatal("expected defined success rate")
	}
	if rate < 66.6 || rate > 66.7 {
		t.Fatalf("unexpected success rate: %v", rate)
	}
}

func TestSuccessRateUndefinedForZeroProcessed(t *testing.T) {
	snap := stats.NewRun(time.Now()).Finalize(time.Now())
	if _, ok := snap.SuccessRate(); ok {
		t.Fatal("expected undefined success rate when nothing processed")
	}
}

func TestTruncatedErrors(t *testing.T) {
	run := stats.NewRun(time.Now())
	for i := 0; i < stats.ReportErrorLimit+4; i++ {
		run.RecordError(fmt.Sprintf("error %d", i))
	}
	snap := run.Finalize(time.Now())

	listed, omitted := snap.TruncatedErrors()
	if len(listed) != stats.ReportErrorLimit {
		t.Fatalf("unexpected listed count: %d", len(listed))
	}
	if omitted != 4 {
		t.Fatalf("unexpected omitted count: %d", omitted)
	}
	if listed[0] != "error 0" {
		t.Fatalf("expected ordered errors, got %q", listed[0])
	}
}
