package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"scribe/internal/scheduler"
)

func newStartCommand(ctx *commandContext) *cobra.Command {
	var intervalMinutes int
	var noImmediate bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the pipeline on a recurring interval until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := ctx.buildRuntime()
			if err != nil {
				return err
			}

			interval := rt.cfg.Interval()
			if intervalMinutes > 0 {
				interval = time.Duration(intervalMinutes) * time.Minute
			}

			runCtx, cancel := signalContext()
			defer cancel()

			s := scheduler.New(interval, !noImmediate, rt.logger)
			err = s.Run(runCtx, func(jobCtx context.Context) {
				if err := runPipeline(jobCtx, rt, cmd.OutOrStdout()); err != nil && !errors.Is(err, context.Canceled) {
					rt.logger.Error("scheduled run failed", "error", err)
				}
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().IntVarP(&intervalMinutes, "interval", "i", 0, "Minutes between runs (overrides configuration)")
	cmd.Flags().BoolVar(&noImmediate, "no-immediate", false, "Wait one full interval before the first run")
	return cmd
}
