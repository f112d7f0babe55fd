package main

import (
	"github.com/spf13/cobra"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var batchSize int

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Run one reconciliation cycle now",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := ctx.buildRuntime()
			if err != nil {
				return err
			}
			if batchSize > 0 {
				rt.runner.SetBatchSize(batchSize)
			}

			runCtx, cancel := signalContext()
			defer cancel()
			return runPipeline(runCtx, rt, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&batchSize, "batch-size", "b", 0, "Override the configured batch size for this run")
	return cmd
}
