// Package helpers provides shared helper functions for CLI commands.
package helpers

import (
	"github.com/spf13/cobra"

	"shipit.dev/shipit/internal/runtime"
)

// Run is a helper that provides the prepared runtime context to a command's
// execution function. The context is shared across the whole process, so the
// provider adapter is resolved and authenticated at most once per run.
func Run(cmd *cobra.Command, fn func(ctx *runtime.Context) error) error {
	ctx, err := runtime.GetContext(cmd.Context())
	if err != nil {
		return err
	}
	if quiet, err := cmd.Flags().GetBool("quiet"); err == nil && quiet {
		ctx.Splog.SetQuiet(true)
	}
	return fn(ctx)
}
