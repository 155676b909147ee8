package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"shipit.dev/shipit/internal/adapter"
	"shipit.dev/shipit/internal/branchutil"
	"shipit.dev/shipit/internal/cli/helpers"
	"shipit.dev/shipit/internal/git"
	"shipit.dev/shipit/internal/output"
	"shipit.dev/shipit/internal/runtime"
	"shipit.dev/shipit/internal/tui"
)

// newIssueCmd creates the issue command group
func newIssueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "issue",
		Aliases: []string{"issues"},
		Short:   "Work with issues on the configured provider",
	}
	addRepoFlags(cmd)

	cmd.AddCommand(newIssueListCmd())
	cmd.AddCommand(newIssueShowCmd())
	cmd.AddCommand(newIssueCreateCmd())
	cmd.AddCommand(newIssueCloseCmd())
	cmd.AddCommand(newIssueTakeCmd())

	return cmd
}

func newIssueListCmd() *cobra.Command {
	var (
		state    string
		assignee string
		creator  string
		labels   []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(rctx *runtime.Context) error {
				owner, repo, err := repoFromFlags(cmd, rctx)
				if err != nil {
					return err
				}

				filter := adapter.IssueFilter{
					State:    state,
					Assignee: assignee,
					Creator:  creator,
					Labels:   labels,
				}
				issues, err := rctx.Adapter.ListIssues(cmd.Context(), owner, repo, filter)
				if err != nil {
					return err
				}

				if len(issues) == 0 {
					rctx.Splog.Info("No issues found in %s/%s", owner, repo)
					return nil
				}
				for _, issue := range issues {
					rctx.Splog.Info(output.FormatIssueLine(issue))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&state, "state", "open", "Filter by state (open, closed, all)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Only issues assigned to this user")
	cmd.Flags().StringVar(&creator, "creator", "", "Only issues opened by this user")
	cmd.Flags().StringSliceVar(&labels, "label", nil, "Only issues carrying this label (repeatable)")

	return cmd
}

func newIssueShowCmd() *cobra.Command {
	var web bool

	cmd := &cobra.Command{
		Use:   "show <number>",
		Short: "Show one issue in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(rctx *runtime.Context) error {
				owner, repo, err := repoFromFlags(cmd, rctx)
				if err != nil {
					return err
				}
				number, err := numberArg(args[0])
				if err != nil {
					return err
				}

				issue, err := rctx.Adapter.GetIssue(cmd.Context(), owner, repo, number)
				if err != nil {
					return err
				}

				if web {
					return openInBrowser(rctx, issue.HTMLURL)
				}
				rctx.Splog.Page(output.FormatIssueDetail(issue))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&web, "web", "w", false, "Open the issue in the browser instead")

	return cmd
}

func newIssueCreateCmd() *cobra.Command {
	var (
		title     string
		body      string
		assignee  string
		labels    []string
		milestone string
	)

	cmd := &cobra.Command{
		Use:         "create",
		Short:       "Open a new issue",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{runtime.TemplateAnnotation: "issue-create"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(rctx *runtime.Context) error {
				owner, repo, err := repoFromFlags(cmd, rctx)
				if err != nil {
					return err
				}

				if title == "" {
					title, err = tui.PromptTextInput("Issue title", "")
					if err != nil {
						return err
					}
				}
				if title == "" {
					return fmt.Errorf("an issue needs a title, pass --title")
				}

				if body == "" {
					if body, err = templateBody(cmd); err != nil {
						return err
					}
				}

				issue, err := rctx.Adapter.CreateIssue(cmd.Context(), owner, repo, adapter.IssueOptions{
					Title:     title,
					Body:      body,
					Assignee:  assignee,
					Labels:    labels,
					Milestone: milestone,
				})
				if err != nil {
					return err
				}

				rctx.Splog.Success("Opened issue #%d: %s", issue.Number, issue.HTMLURL)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Issue title")
	cmd.Flags().StringVarP(&body, "description", "d", "", "Issue description")
	cmd.Flags().StringVar(&assignee, "assignee", "", "User to assign")
	cmd.Flags().StringSliceVar(&labels, "label", nil, "Label to apply (repeatable)")
	cmd.Flags().StringVar(&milestone, "milestone", "", "Milestone to file the issue under")

	return cmd
}

func newIssueCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close <number>",
		Short: "Close an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(rctx *runtime.Context) error {
				owner, repo, err := repoFromFlags(cmd, rctx)
				if err != nil {
					return err
				}
				number, err := numberArg(args[0])
				if err != nil {
					return err
				}

				if err := rctx.Adapter.CloseIssue(cmd.Context(), owner, repo, number); err != nil {
					return err
				}

				rctx.Splog.Success("Closed issue #%d", number)
				return nil
			})
		},
	}
}

func newIssueTakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "take [number]",
		Short: "Create a working branch for an issue and check it out",
		Long: `Take looks up the issue, derives a branch name from its number and title,
and checks that branch out so you can start working. Without a number it
offers a filterable picker over the open issues. Taking the same issue again
just returns to the existing branch.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.Run(cmd, func(rctx *runtime.Context) error {
				owner, repo, err := repoFromFlags(cmd, rctx)
				if err != nil {
					return err
				}

				var number int
				if len(args) == 1 {
					number, err = numberArg(args[0])
				} else {
					number, err = pickOpenIssue(cmd, rctx, owner, repo)
				}
				if err != nil {
					return err
				}

				issue, err := rctx.Adapter.GetIssue(cmd.Context(), owner, repo, number)
				if err != nil {
					return err
				}

				branchName := branchutil.BranchNameForIssue(issue.Number, issue.Title)
				exists, err := git.LocalBranchExists(cmd.Context(), branchName)
				if err != nil {
					return err
				}
				if exists {
					if err := git.CheckoutBranch(cmd.Context(), branchName); err != nil {
						return err
					}
					rctx.Splog.Info("Branch %s already exists, checked it out", branchName)
					return nil
				}

				if err := git.CreateAndCheckoutBranch(cmd.Context(), branchName); err != nil {
					return err
				}

				rctx.Splog.Success("Issue #%d is yours, working on branch %s", number, branchName)
				return nil
			})
		},
	}
}

// pickOpenIssue lets the user choose one of the repository's open issues.
func pickOpenIssue(cmd *cobra.Command, rctx *runtime.Context, owner, repo string) (int, error) {
	issues, err := rctx.Adapter.ListIssues(cmd.Context(), owner, repo, adapter.IssueFilter{State: "open"})
	if err != nil {
		return 0, err
	}
	if len(issues) == 0 {
		return 0, fmt.Errorf("no open issues to take in %s/%s", owner, repo)
	}

	options := make([]tui.SelectOption, 0, len(issues))
	for _, issue := range issues {
		options = append(options, tui.SelectOption{
			Label: fmt.Sprintf("#%d %s", issue.Number, issue.Title),
			Value: strconv.Itoa(issue.Number),
		})
	}

	choice, err := tui.PromptFilterSelect("Take which issue?", options)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(choice)
}
