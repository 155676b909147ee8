package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"shipit.dev/shipit/internal/browser"
	"shipit.dev/shipit/internal/git"
	"shipit.dev/shipit/internal/runtime"
)

// addRepoFlags declares the repository override flags shared by every
// provider-facing command group.
func addRepoFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("org", "", "Organization or user owning the repository (default: from the origin remote)")
	cmd.PersistentFlags().String("repo", "", "Repository name (default: from the origin remote)")
}

// repoFromFlags applies --org and --repo overrides and returns the target
// repository for this invocation.
func repoFromFlags(cmd *cobra.Command, rctx *runtime.Context) (string, string, error) {
	if org, err := cmd.Flags().GetString("org"); err == nil && org != "" {
		rctx.Owner = org
	}
	if repo, err := cmd.Flags().GetString("repo"); err == nil && repo != "" {
		rctx.Repo = repo
	}
	return rctx.RequireRepo()
}

// numberArg parses a positional issue or pull request number. A leading #
// is tolerated so copied references like #41 work.
func numberArg(arg string) (int, error) {
	number, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil || number <= 0 {
		return 0, fmt.Errorf("%q is not an issue or pull request number", arg)
	}
	return number, nil
}

// currentBranch returns the checked out branch of the working copy.
func currentBranch(rctx *runtime.Context) (string, error) {
	repo, err := git.OpenRepository(rctx.WorkDir)
	if err != nil {
		return "", err
	}
	return repo.CurrentBranch()
}

// openInBrowser opens the provider page for an issue or pull request.
func openInBrowser(rctx *runtime.Context, url string) error {
	if url == "" {
		return fmt.Errorf("the provider did not report a web URL")
	}
	rctx.Splog.Info("Opening %s", url)
	return browser.Open(url)
}
