package main

import (
	"github.com/spf13/cobra"
)

// run-once mirrors process without flags; it is the entry point invoked
// by external schedulers such as systemd timers.
func newRunOnceCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run-once",
		Short: "Run one reconciliation cycle (scheduler entry point)",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := ctx.buildRuntime()
			if err != nil {
				return err
			}
			runCtx, cancel := signalContext()
			defer cancel()
			return runPipeline(runCtx, rt, cmd.OutOrStdout())
		},
	}
}
