// Package cli wires the cobra command tree for shipit.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	// The demo package registers its adapter factory with the runtime on
	// import, which is what makes SHIPIT_DEMO work.
	_ "shipit.dev/shipit/internal/demo"
	"shipit.dev/shipit/internal/runtime"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shipit",
		Short: "Shipit automates your pull request, issue and release chores",
		Long: `Shipit talks to GitHub, GitHub Enterprise, Bitbucket and GitLab straight
from your working copy, so the round trips through a browser disappear.

The provider is taken from your configuration, or detected from the origin
remote when you have not picked one. Run 'shipit configure' once to store
credentials.`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress console output")

	rootCmd.AddCommand(newConfigureCmd())

	// Everything below talks to a provider, so registered observers get to
	// decorate the flag surface before dispatch.
	for _, cmd := range []*cobra.Command{
		newIssueCmd(),
		newPullRequestCmd(),
		newReleaseCmd(),
		newBranchCmd(),
	} {
		decorateTree(cmd)
		rootCmd.AddCommand(cmd)
	}

	return rootCmd
}

// decorateTree applies registered observers to cmd and all its subcommands.
func decorateTree(cmd *cobra.Command) {
	runtime.DecorateCommand(cmd)
	for _, sub := range cmd.Commands() {
		decorateTree(sub)
	}
}
