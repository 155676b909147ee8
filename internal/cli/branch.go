package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"shipit.dev/shipit/internal/cli/helpers"
	"shipit.dev/shipit/internal/output"
	"shipit.dev/shipit/internal/runtime"
	"shipit.dev/shipit/internal/tui"
)

// newBranchCmd creates the branch command group
func newBranchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "branch",
		Aliases: []string{"branches"},
		Short:   "Work with branches on the configured provider",
	}
	addRepoFlags(cmd)

	cmd.AddCommand(newBranchListCmd())
	cmd.AddCommand(newBranchDeleteCmd())

	return cmd
}

func newBranchListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List remote branches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(rctx *runtime.Context) error {
				owner, repo, err := repoFromFlags(cmd, rctx)
				if err != nil {
					return err
				}

				branches, err := rctx.Adapter.ListBranches(cmd.Context(), owner, repo)
				if err != nil {
					return err
				}

				if len(branches) == 0 {
					rctx.Splog.Info("No branches found in %s/%s", owner, repo)
					return nil
				}
				for _, branch := range branches {
					rctx.Splog.Info(output.FormatBranchLine(branch))
				}
				return nil
			})
		},
	}
}

func newBranchDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:               "delete <name>",
		Short:             "Delete a remote branch",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: helpers.CompleteBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(rctx *runtime.Context) error {
				owner, repo, err := repoFromFlags(cmd, rctx)
				if err != nil {
					return err
				}
				branchName := args[0]

				if !yes {
					confirmed, err := tui.PromptConfirm(fmt.Sprintf("Delete remote branch %s from %s/%s?", branchName, owner, repo), false)
					if err != nil {
						return err
					}
					if !confirmed {
						rctx.Splog.Info("Delete aborted")
						return nil
					}
				}

				if err := rctx.Adapter.DeleteBranch(cmd.Context(), owner, repo, branchName); err != nil {
					return err
				}

				rctx.Splog.Success("Deleted remote branch %s", branchName)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking for confirmation")

	return cmd
}
