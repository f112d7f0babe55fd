// Package stats accumulates per-run counters and finalizes them into an
// immutable snapshot for reporting and run-record persistence. It is a pure
// in-memory tally for one execution; nothing here is ever recomputed from
// storage.
package stats

import (
	"fmt"
	"time"
)

// ReportErrorLimit bounds how many error strings a report lists verbatim;
// the remainder is summarized by count. Storage of errors in the snapshot
// itself is unbounded.
const ReportErrorLimit = 10

// Run accumulates counters while a run executes. It is owned by a single
// goroutine and must not be shared.
type Run struct {
	start      time.Time
	processed  int
	successful int
	failed     int
	moved      int
	deleted    int
	errors     []string
}

// NewRun starts an accumulator anchored at start.
func NewRun(start time.Time) *Run {
	return &Run{start: start}
}

// RecordOutcome counts one processed item.
func (r *Run) RecordOutcome(success bool) {
	r.processed++
	if success {
		r.successful++
	} else {
		r.failed++
	}
}

// RecordMoved counts one verified copy into the archive namespace.
func (r *Run) RecordMoved() { r.moved++ }

// RecordDeleted counts one verified source deletion.
func (r *Run) RecordDeleted() { r.deleted++ }

// RecordError appends an item-level error string. Every counted failure
// also lands here so nothing is silently dropped.
func (r *Run) RecordError(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

// Errors returns the accumulated error strings in order.
func (r *Run) Errors() []string {
	out := make([]string, len(r.errors))
	copy(out, r.errors)
	return out
}

// Finalize freezes the accumulator into a snapshot at end.
func (r *Run) Finalize(end time.Time) Snapshot {
	return Snapshot{
		StartTime:       r.start,
		DurationMinutes: end.Sub(r.start).Minutes(),
		Processed:       r.processed,
		Successful:      r.successful,
		Failed:          r.failed,
		Moved:           r.moved,
		Deleted:         r.deleted,
		Errors:          r.Errors(),
	}
}

// Snapshot is the finalized, read-only result of one run. It is persisted
// into the run record and handed to the reporting collaborator.
type Snapshot struct {
	StartTime       time.Time `json:"start_time"`
	DurationMinutes float64   `json:"duration_minutes"`
	Processed       int       `json:"processed"`
	Successful      int       `json:"successful"`
	Failed          int       `json:"failed"`
	Moved           int       `json:"moved"`
	Deleted         int       `json:"deleted"`
	Errors          []string  `json:"errors,omitempty"`
}

// SuccessRate returns the successful/processed percentage. The second
// return is false when nothing was processed and no rate is defined.
func (s Snapshot) SuccessRate() (float64, bool) {
	if s.Processed == 0 {
		return 0, false
	}
	return float64(s.Successful) / float64(s.Processed) * 100, true
}

// TruncatedErrors returns at most ReportErrorLimit error strings plus the
// count of omitted ones.
func (s Snapshot) TruncatedErrors() ([]string, int) {
	if len(s.Errors) <= ReportErrorLimit {
		return s.Errors, 0
	}
	return s.Errors[:ReportErrorLimit], len(s.Errors) - ReportErrorLimit
}
