package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scribe/internal/logging"
	"scribe/internal/report"
)

func newTestEmailCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-email",
		Short: "Send a report built from synthetic statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			svc := report.New(cfg, logging.NewNop())
			out := cmd.OutOrStdout()
			if !svc.Enabled() {
				fmt.Fprintln(out, "Email reporting is not configured; set recipients and SMTP credentials first.")
				return nil
			}

			runCtx, cancel := signalContext()
			defer cancel()
			if err := svc.SendTest(runCtx); err != nil {
				return err
			}
			fmt.Fprintf(out, "Test report sent to %d recipient(s).\n", len(cfg.Email.Recipients))
			return nil
		},
	}
}
