// Package scheduler runs the pipeline on a fixed interval. Overlap is
// prevented twice over: cron skips a tick while the previous one is
// still running, and the run guard refuses concurrent executions from
// any other process.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"scribe/internal/logging"
)

// Job is one scheduled pipeline execution.
type Job func(ctx context.Context)

type Scheduler struct {
	interval  time.Duration
	immediate bool
	logger    *slog.Logger
}

func New(interval time.Duration, immediate bool, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		interval:  interval,
		immediate: immediate,
		logger:    logging.NewComponentLogger(logger, "scheduler"),
	}
}

// Run executes job every interval until ctx is canceled. When immediate
// is set the first execution happens right away instead of waiting one
// full interval.
func (s *Scheduler) Run(ctx context.Context, job Job) error {
	cronLog := &cronLogger{logger: s.logger}
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cronLog),
		cron.Recover(cronLog),
	))
	_, err := c.AddFunc(fmt.Sprintf("@every %s", s.interval), func() {
		job(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule job: %w", err)
	}

	s.logger.Info("scheduler started",
		logging.Duration("interval", s.interval),
		logging.Bool("immediate", s.immediate))

	if s.immediate {
		job(ctx)
	}
	c.Start()
	<-ctx.Done()

	stopped := c.Stop()
	<-stopped.Done()
	s.logger.Info("scheduler stopped")
	return ctx.Err()
}

// cronLogger adapts slog to the cron.Logger interface.
type cronLogger struct {
	logger *slog.Logger
}

func (l *cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...any) {
	args := append([]any{"error", err}, keysAndValues...)
	l.logger.Error(msg, args...)
}
