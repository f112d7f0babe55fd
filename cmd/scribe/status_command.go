package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"scribe/internal/logging"
	"scribe/internal/runguard"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the last persisted run record without starting a run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			guard := runguard.New(
				runguard.NewFileStore(cfg.RunStatePath(), cfg.RunLockPath()),
				cfg.StaleLockWindow(),
				logging.NewNop(),
			)
			rec, err := guard.Inspect()
			if err != nil {
				return fmt.Errorf("read run record: %w", err)
			}

			out := cmd.OutOrStdout()
			if rec == nil {
				fmt.Fprintln(out, "No run has been recorded yet.")
				return nil
			}
			fmt.Fprintln(out, renderStatus(rec))
			return nil
		},
	}
}

func renderStatus(rec *runguard.Record) string {
	rows := [][]string{
		{"State", stateLabel(rec)},
	}
	if rec.Running {
		rows = append(rows,
			[]string{"Started", rec.StartTime.Local().Format(time.RFC1123)},
			[]string{"PID", strconv.Itoa(rec.PID)},
		)
	}
	if !rec.LastRunTime.IsZero() {
		rows = append(rows,
			[]string{"Last run", rec.LastRunTime.Local().Format(time.RFC1123)},
			[]string{"Last run succeeded", strconv.FormatBool(rec.LastRunSuccess)},
		)
	}
	if snap := rec.LastRunStats; snap != nil {
		rows = append(rows,
			[]string{"Processed", strconv.Itoa(snap.Processed)},
			[]string{"Successful", strconv.Itoa(snap.Successful)},
			[]string{"Failed", strconv.Itoa(snap.Failed)},
			[]string{"Archived", strconv.Itoa(snap.Moved)},
			[]string{"Deleted", strconv.Itoa(snap.Deleted)},
		)
		if rate, ok := snap.SuccessRate(); ok {
			rows = append(rows, []string{"Success rate", fmt.Sprintf("%.1f%%", rate)})
		}
	}
	return renderTable([]string{"Field", "Value"}, rows)
}

func stateLabel(rec *runguard.Record) string {
	if rec.Running {
		return "running"
	}
	return "idle"
}
