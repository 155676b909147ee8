package helpers

import (
	"github.com/spf13/cobra"

	"shipit.dev/shipit/internal/git"
)

// CompleteBranches is a helper for cobra.ValidArgsFunction and
// RegisterFlagCompletionFunc that returns all local branch names.
func CompleteBranches(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	repo, err := git.OpenRepository(".")
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	branches, err := repo.BranchNames()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return branches, cobra.ShellCompDirectiveNoFileComp
}
