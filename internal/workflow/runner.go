package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"scribe/internal/blobstore"
	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/pipeline"
	"scribe/internal/report"
	"scribe/internal/runguard"
	"scribe/internal/scanner"
	"scribe/internal/staging"
	"scribe/internal/stats"
)

// ErrAlreadyRunning is returned when another run holds the guard.
var ErrAlreadyRunning = runguard.ErrAlreadyRunning

// Runner wires the full reconciliation cycle: guard acquisition, scan,
// orphan replay, batched transcription, archival and report emission.
// One Runner serves many sequential runs; each Run call is one cycle.
type Runner struct {
	cfg        *config.Config
	store      blobstore.Store
	guard      *runguard.Guard
	scanner    *scanner.NamespaceScanner
	reconciler *pipeline.Reconciler
	committer  *pipeline.Committer
	reporter   report.Service
	logger     *slog.Logger
	batchSize  int

	// executorFactory binds a fresh executor to each run's staging dir.
	executorFactory func(stagingDir string) *pipeline.Executor
}

func NewRunner(cfg *config.Config, store blobstore.Store, transcriber pipeline.Transcriber, guard *runguard.Guard, reporter report.Service, logger *slog.Logger) *Runner {
	oracle := scanner.NewOracle(store, cfg.Storage.TranscriptionsContainer, logger)
	return &Runner{
		cfg:        cfg,
		store:      store,
		guard:      guard,
		scanner:    scanner.New(store, cfg.Storage.RecordingsContainer, oracle, logger),
		reconciler: pipeline.NewReconciler(store, cfg.Storage.RecordingsContainer, cfg.Storage.ProcessedContainer, logger),
		committer:  pipeline.NewCommitter(store, cfg.Storage.RecordingsContainer, cfg.Storage.ProcessedContainer, logger),
		reporter:   reporter,
		logger:     logging.NewComponentLogger(logger, "workflow"),
		batchSize:  cfg.Processing.BatchSize,
		executorFactory: func(stagingDir string) *pipeline.Executor {
			return pipeline.NewExecutor(store, cfg.Storage.RecordingsContainer, cfg.Storage.TranscriptionsContainer, transcriber, stagingDir, logger)
		},
	}
}

// SetBatchSize overrides the configured batch size for subsequent runs.
func (r *Runner) SetBatchSize(size int) {
	if size > 0 {
		r.batchSize = size
	}
}

// Run executes one full reconciliation cycle. The guard record is always
// restored to "not running" on the way out, including on cancellation.
func (r *Runner) Run(ctx context.Context) (stats.Snapshot, error) {
	if err := r.guard.Acquire(); err != nil {
		if errors.Is(err, runguard.ErrAlreadyRunning) {
			r.logger.Warn("run already active, refusing to start")
		}
		return stats.Snapshot{}, err
	}

	run := stats.NewRun(time.Now())
	success := false
	defer func() {
		if err := r.guard.Release(success, run.Finalize(time.Now())); err != nil {
			r.logger.Error("could not persist run record", logging.Error(err))
		}
	}()

	r.logger.Info("run started",
		logging.String(logging.FieldContainer, r.cfg.Storage.RecordingsContainer),
		logging.Int("batch_size", r.batchSize))

	if err := r.cycle(ctx, run); err != nil {
		run.RecordError("run aborted: %v", err)
		return run.Finalize(time.Now()), err
	}

	success = true
	final := run.Finalize(time.Now())
	r.emitReport(final)
	return final, nil
}

func (r *Runner) cycle(ctx context.Context, run *stats.Run) error {
	scanned, err := r.scanner.Scan(ctx)
	if err != nil {
		return err
	}

	if _, err := r.reconciler.Reconcile(ctx, scanned.Orphans, run); err != nil {
		return err
	}

	if len(scanned.Pending) == 0 {
		r.logger.Info("no pending assets")
		return nil
	}

	stagingDir, err := staging.NewRunDir(r.cfg.Paths.StagingDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := staging.Remove(stagingDir); err != nil {
			r.logger.Warn("could not remove staging dir", logging.Error(err))
		}
	}()

	executor := r.executorFactory(stagingDir)
	batches := pipeline.Batches(scanned.Pending, r.batchSize)
	for i, batch := range batches {
		r.logger.Info("processing batch",
			logging.Int(logging.FieldBatch, i+1),
			logging.Int("of", len(batches)),
			logging.Int("items", len(batch)))

		outcomes := make([]pipeline.Outcome, 0, len(batch))
		for _, asset := range batch {
			// Interrupts are observed between items. Items already
			// published in this batch are left as orphans and picked
			// up by the next run's reconciler.
			if err := ctx.Err(); err != nil {
				return err
			}
			outcome, err := executor.RunItem(ctx, asset)
			if err != nil {
				return err
			}
			run.RecordOutcome(outcome.Success)
			if outcome.Err != nil {
				run.RecordError("%v", outcome.Err)
			}
			outcomes = append(outcomes, outcome)
		}
		moved, deleted := r.committer.Commit(ctx, outcomes, run)
		r.logger.Info("batch committed",
			logging.Int(logging.FieldBatch, i+1),
			logging.Int("moved", moved),
			logging.Int("deleted", deleted))
	}
	return nil
}

func (r *Runner) emitReport(snap stats.Snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := r.reporter.SendRunReport(ctx, snap); err != nil {
		r.logger.Error("report delivery failed", logging.Error(err))
	}
}

// Status returns the last persisted run record, or nil if no run has
// ever been recorded.
func (r *Runner) Status() (*runguard.Record, error) {
	rec, err := r.guard.Inspect()
	if err != nil {
		return nil, fmt.Errorf("inspect run record: %w", err)
	}
	return rec, nil
}
