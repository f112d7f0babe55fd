package runguard

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"scribe/internal/logging"
	"scribe/internal/stats"
)

// ErrAlreadyRunning reports that another execution holds the guard and its
// record is not yet stale.
var ErrAlreadyRunning = errors.New("another run is already active")

// Guard admits at most one active execution at a time. Its state machine
// is Idle -> Running -> {Completed, Failed}, with a self-heal transition
// back to Idle when a persisted Running record is older than the staleness
// window, which is taken as evidence of a crashed prior run.
//
// The guard is advisory and record based. It is correct for a single host
// running at most one scheduler process, not a distributed lock.
type Guard struct {
	store      RecordStore
	staleAfter time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

// New constructs a guard over the given record store.
func New(store RecordStore, staleAfter time.Duration, logger *slog.Logger) *Guard {
	return &Guard{
		store:      store,
		staleAfter: staleAfter,
		logger:     logging.NewComponentLogger(logger, "runguard"),
		now:        time.Now,
	}
}

// WithClock overrides the time source (for tests).
func (g *Guard) WithClock(now func() time.Time) {
	g.now = now
}

// Acquire transitions the guard to Running, persisting the active record.
// It returns ErrAlreadyRunning when a live record exists inside the
// staleness window. A record older than the window is treated as a crashed
// run, cleared, and replaced.
func (g *Guard) Acquire() error {
	if err := g.store.Lock(); err != nil {
		return err
	}
	defer g.store.Unlock()

	rec, err := g.store.Read()
	if err != nil {
		// A record that cannot be read cannot prove an active run.
		g.logger.Warn("run record unreadable, treating as absent", logging.Error(err))
		rec = nil
	}

	if rec != nil && rec.Running {
		elapsed := g.now().Sub(rec.StartTime)
		if elapsed <= g.staleAfter {
			return fmt.Errorf("run started %s ago by pid %d: %w",
				elapsed.Round(time.Second), rec.PID, ErrAlreadyRunning)
		}
		g.logger.Warn("clearing stale run record",
			logging.Time("start_time", rec.StartTime),
			logging.Int("pid", rec.PID),
			logging.Duration("age", elapsed))
		if err := g.store.Clear(); err != nil {
			return err
		}
	}

	return g.store.Write(&Record{
		Running:   true,
		StartTime: g.now(),
		PID:       os.Getpid(),
	})
}

// Release transitions the guard out of Running, persisting the outcome and
// the finalized statistics snapshot.
func (g *Guard) Release(success bool, snap stats.Snapshot) error {
	if err := g.store.Lock(); err != nil {
		return err
	}
	defer g.store.Unlock()

	return g.store.Write(&Record{
		Running:        false,
		LastRunTime:    g.now(),
		LastRunSuccess: success,
		LastRunStats:   &snap,
	})
}

// Inspect returns the persisted record without mutating guard state. The
// record is nil when no run has ever been recorded.
func (g *Guard) Inspect() (*Record, error) {
	if err := g.store.Lock(); err != nil {
		return nil, err
	}
	defer g.store.Unlock()
	return g.store.Read()
}
