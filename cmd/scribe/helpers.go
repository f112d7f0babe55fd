package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"scribe/internal/runguard"
	"scribe/internal/stats"
)

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// runPipeline executes one cycle and prints the summary. A refused run
// (guard already held) is reported on stdout and is not an error exit.
func runPipeline(ctx context.Context, rt *runtime, out io.Writer) error {
	rt.logger.Info("scribe starting",
		"model", rt.cfg.Whisper.Model,
		"recordings", rt.cfg.Storage.RecordingsContainer,
		"transcriptions", rt.cfg.Storage.TranscriptionsContainer,
		"processed", rt.cfg.Storage.ProcessedContainer,
		"batch_size", rt.cfg.Processing.BatchSize,
		"staging_dir", rt.cfg.Paths.StagingDir,
		"email_reports", rt.reporter.Enabled())

	snap, err := rt.runner.Run(ctx)
	if err != nil {
		if errors.Is(err, runguard.ErrAlreadyRunning) {
			fmt.Fprintln(out, "Another run is already active; nothing to do.")
			return nil
		}
		return err
	}
	printSummary(out, snap)
	return nil
}

func printSummary(out io.Writer, snap stats.Snapshot) {
	fmt.Fprintf(out, "Processed %d (successful %d, failed %d), archived %d, deleted %d in %.1f minutes.\n",
		snap.Processed, snap.Successful, snap.Failed, snap.Moved, snap.Deleted, snap.DurationMinutes)
	if rate, ok := snap.SuccessRate(); ok {
		fmt.Fprintf(out, "Success rate: %.1f%%\n", rate)
	}
	if errList, omitted := snap.TruncatedErrors(); len(errList) > 0 {
		fmt.Fprintln(out, "Errors:")
		for _, msg := range errList {
			fmt.Fprintf(out, "  - %s\n", msg)
		}
		if omitted > 0 {
			fmt.Fprintf(out, "  ... and %d more\n", omitted)
		}
	}
}
