package cli

import (
	"github.com/spf13/cobra"

	"shipit.dev/shipit/internal/adapter"
	"shipit.dev/shipit/internal/cli/helpers"
	"shipit.dev/shipit/internal/output"
	"shipit.dev/shipit/internal/runtime"
)

// newReleaseCmd creates the release command group
func newReleaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "release",
		Aliases: []string{"releases"},
		Short:   "Work with releases on the configured provider",
	}
	addRepoFlags(cmd)

	cmd.AddCommand(newReleaseListCmd())
	cmd.AddCommand(newReleaseCreateCmd())

	return cmd
}

func newReleaseListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List releases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(rctx *runtime.Context) error {
				owner, repo, err := repoFromFlags(cmd, rctx)
				if err != nil {
					return err
				}

				releases, err := rctx.Adapter.ListReleases(cmd.Context(), owner, repo)
				if err != nil {
					return err
				}

				if len(releases) == 0 {
					rctx.Splog.Info("No releases found in %s/%s", owner, repo)
					return nil
				}
				for _, release := range releases {
					rctx.Splog.Info(output.FormatReleaseLine(release))
				}
				return nil
			})
		},
	}
}

func newReleaseCreateCmd() *cobra.Command {
	var (
		tag        string
		name       string
		body       string
		target     string
		draft      bool
		prerelease bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.Run(cmd, func(rctx *runtime.Context) error {
				owner, repo, err := repoFromFlags(cmd, rctx)
				if err != nil {
					return err
				}

				release, err := rctx.Adapter.CreateRelease(cmd.Context(), owner, repo, adapter.ReleaseOptions{
					TagName:         tag,
					Name:            name,
					Body:            body,
					TargetCommitish: target,
					Draft:           draft,
					Prerelease:      prerelease,
				})
				if err != nil {
					return err
				}

				rctx.Splog.Success("Created release %s: %s", release.TagName, release.HTMLURL)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "Tag to release (created on the target if it does not exist)")
	cmd.Flags().StringVar(&name, "name", "", "Release name (default: the tag)")
	cmd.Flags().StringVarP(&body, "description", "d", "", "Release notes")
	cmd.Flags().StringVar(&target, "target", "", "Commitish the tag should point at (default: the default branch)")
	cmd.Flags().BoolVar(&draft, "draft", false, "Create the release as a draft")
	cmd.Flags().BoolVar(&prerelease, "prerelease", false, "Mark the release as a prerelease")
	_ = cmd.MarkFlagRequired("tag")

	return cmd
}
