package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"shipit.dev/shipit/internal/adapter"
	"shipit.dev/shipit/internal/cli/helpers"
	"shipit.dev/shipit/internal/output"
	"shipit.dev/shipit/internal/runtime"
	"shipit.dev/shipit/internal/tui"
)

// newPullRequestCmd creates the pr command group
func newPullRequestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pr",
		Aliases: []string{"pull-request"},
		Short:   "Work with pull requests on the configured provider",
	}
	addRepoFlags(cmd)

	cmd.AddCommand(newPRCreateCmd())
	cmd.AddCommand(newPRListCmd())
	cmd.AddCommand(newPRShowCmd())
	cmd.AddCommand(newPRMergeCmd())

	return cmd
}

func newPRCreateCmd() *cobra.Command {
	var (
		title string
		body  string
		base  string
		head  string
		draft bool
	)

	cmd := &cobra.Command{
		Use:         "create",
		Short:       "Open a pull request for the current branch",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{runtime.TemplateAnnotation: "pull-request-create"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(rctx *runtime.Context) error {
				owner, repo, err := repoFromFlags(cmd, rctx)
				if err != nil {
					return err
				}

				if head == "" {
					head, err = currentBranch(rctx)
					if err != nil {
						return fmt.Errorf("cannot determine the source branch, pass --head: %w", err)
					}
				}
				if head == base {
					return fmt.Errorf("refusing to open a pull request from %s onto itself", head)
				}

				if title == "" {
					title, err = tui.PromptTextInput("Pull request title", "")
					if err != nil {
						return err
					}
				}
				if title == "" {
					return fmt.Errorf("a pull request needs a title, pass --title")
				}

				if body == "" {
					if body, err = templateBody(cmd); err != nil {
						return err
					}
				}

				pr, err := rctx.Adapter.CreatePullRequest(cmd.Context(), owner, repo, adapter.CreatePROptions{
					Title: title,
					Body:  body,
					Head:  head,
					Base:  base,
					Draft: draft,
				})
				if err != nil {
					return err
				}

				rctx.Splog.Success("Opened pull request #%d: %s", pr.Number, pr.HTMLURL)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Pull request title")
	cmd.Flags().StringVarP(&body, "description", "d", "", "Pull request description")
	cmd.Flags().StringVar(&base, "base", "main", "Branch the pull request targets")
	cmd.Flags().StringVar(&head, "head", "", "Source branch (default: the checked out branch)")
	cmd.Flags().BoolVar(&draft, "draft", false, "Open the pull request as a draft")
	_ = cmd.RegisterFlagCompletionFunc("base", helpers.CompleteBranches)

	return cmd
}

func newPRListCmd() *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pull requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(rctx *runtime.Context) error {
				owner, repo, err := repoFromFlags(cmd, rctx)
				if err != nil {
					return err
				}

				prs, err := rctx.Adapter.ListPullRequests(cmd.Context(), owner, repo, state)
				if err != nil {
					return err
				}

				if len(prs) == 0 {
					rctx.Splog.Info("No pull requests found in %s/%s", owner, repo)
					return nil
				}
				for _, pr := range prs {
					rctx.Splog.Info(output.FormatPullRequestLine(pr))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&state, "state", "open", "Filter by state (open, closed, all)")

	return cmd
}

func newPRShowCmd() *cobra.Command {
	var web bool

	cmd := &cobra.Command{
		Use:   "show [number]",
		Short: "Show one pull request in full",
		Long: `Show prints a pull request. With no argument it looks up the pull request
whose head is the checked out branch.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(rctx *runtime.Context) error {
				owner, repo, err := repoFromFlags(cmd, rctx)
				if err != nil {
					return err
				}

				pr, err := resolvePullRequest(cmd.Context(), rctx, owner, repo, args)
				if err != nil {
					return err
				}

				if web {
					return openInBrowser(rctx, pr.HTMLURL)
				}
				rctx.Splog.Page(output.FormatPullRequestDetail(pr))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&web, "web", "w", false, "Open the pull request in the browser instead")

	return cmd
}

func newPRMergeCmd() *cobra.Command {
	var (
		message string
		yes     bool
	)

	cmd := &cobra.Command{
		Use:   "merge [number]",
		Short: "Merge a pull request",
		Long: `Merge merges a pull request on the provider. With no argument it merges the
pull request whose head is the checked out branch.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(rctx *runtime.Context) error {
				owner, repo, err := repoFromFlags(cmd, rctx)
				if err != nil {
					return err
				}

				pr, err := resolvePullRequest(cmd.Context(), rctx, owner, repo, args)
				if err != nil {
					return err
				}
				if pr.Merged {
					rctx.Splog.Info("Pull request #%d is already merged", pr.Number)
					return nil
				}

				if !yes {
					confirmed, err := tui.PromptConfirm(fmt.Sprintf("Merge pull request #%d (%s)?", pr.Number, pr.Title), true)
					if err != nil {
						return err
					}
					if !confirmed {
						rctx.Splog.Info("Merge aborted")
						return nil
					}
				}

				if message == "" {
					message = fmt.Sprintf("Merge pull request #%d from %s", pr.Number, pr.Head)
				}
				if err := rctx.Adapter.MergePullRequest(cmd.Context(), owner, repo, pr.Number, message); err != nil {
					return err
				}

				rctx.Splog.Success("Merged pull request #%d", pr.Number)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Merge commit message")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Merge without asking for confirmation")

	return cmd
}

// resolvePullRequest finds the pull request named by the positional number,
// or the one belonging to the checked out branch when no number was given.
func resolvePullRequest(ctx context.Context, rctx *runtime.Context, owner, repo string, args []string) (*adapter.PullRequestInfo, error) {
	if len(args) > 0 {
		number, err := numberArg(args[0])
		if err != nil {
			return nil, err
		}

		prs, err := rctx.Adapter.ListPullRequests(ctx, owner, repo, "all")
		if err != nil {
			return nil, err
		}
		for _, pr := range prs {
			if pr.Number == number {
				return pr, nil
			}
		}
		return nil, fmt.Errorf("pull request #%d not found in %s/%s", number, owner, repo)
	}

	branch, err := currentBranch(rctx)
	if err != nil {
		return nil, fmt.Errorf("cannot determine the current branch, pass a pull request number: %w", err)
	}

	pr, err := rctx.Adapter.GetPullRequestByBranch(ctx, owner, repo, branch)
	if err != nil {
		return nil, err
	}
	if pr == nil {
		return nil, fmt.Errorf("no pull request found for branch %s", branch)
	}
	return pr, nil
}
