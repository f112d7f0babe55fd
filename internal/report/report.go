package report

import (
	"context"
	"log/slog"

	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/stats"
)

// Service delivers the per-run summary. Delivery is best effort: a
// failed send is logged by the caller and never fails the run.
type Service interface {
	// SendRunReport emits the summary for one completed run. Runs that
	// processed nothing are skipped.
	SendRunReport(ctx context.Context, snap stats.Snapshot) error
	// SendTest delivers a synthetic report so operators can verify the
	// SMTP configuration without running the pipeline.
	SendTest(ctx context.Context) error
	// Enabled reports whether delivery is configured at all.
	Enabled() bool
}

// New selects the mail-backed service when SMTP settings are complete,
// otherwise a no-op that logs at debug level.
func New(cfg *config.Config, logger *slog.Logger) Service {
	if !cfg.EmailEnabled() {
		return &noopService{logger: logging.NewComponentLogger(logger, "report")}
	}
	return NewMailer(cfg.Email, logger)
}

type noopService struct {
	logger *slog.Logger
}

func (n *noopService) SendRunReport(_ context.Context, snap stats.Snapshot) error {
	n.logger.Debug("report delivery not configured, skipping",
		logging.Int("processed", snap.Processed))
	return nil
}

func (n *noopService) SendTest(context.Context) error {
	n.logger.Info("report delivery not configured, nothing to test")
	return nil
}

func (n *noopService) Enabled() bool { return false }
