package cli_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"shipit.dev/shipit/internal/adapter"
	"shipit.dev/shipit/testhelpers"
)

func TestReleaseCreateCommand(t *testing.T) {
	t.Run("publishes a release", func(t *testing.T) {
		mock := testhelpers.NewMockAdapter("github")

		out, err := runCommand(t, mock, "release", "create",
			"--tag", "v1.2.0",
			"--name", "Spoon Knife 1.2",
			"--description", "Sharper than ever")
		require.NoError(t, err)
		require.Contains(t, out, "Created release v1.2.0")

		releases, err := mock.ListReleases(context.Background(), "octocat", "spoon-knife")
		require.NoError(t, err)
		require.Len(t, releases, 1)
		require.Equal(t, "Spoon Knife 1.2", releases[0].Name)
		require.Equal(t, "Sharper than ever", releases[0].Body)
	})

	t.Run("passes draft and prerelease through", func(t *testing.T) {
		mock := testhelpers.NewMockAdapter("github")

		_, err := runCommand(t, mock, "release", "create", "--tag", "v2.0.0-rc.1", "--draft", "--prerelease")
		require.NoError(t, err)

		releases, err := mock.ListReleases(context.Background(), "octocat", "spoon-knife")
		require.NoError(t, err)
		require.Len(t, releases, 1)
		require.True(t, releases[0].Draft)
		require.True(t, releases[0].Prerelease)
	})

	t.Run("requires a tag", func(t *testing.T) {
		mock := testhelpers.NewMockAdapter("github")

		_, err := runCommand(t, mock, "release", "create")
		require.Error(t, err)
		require.Contains(t, err.Error(), "tag")
	})
}

func TestReleaseListCommand(t *testing.T) {
	t.Run("lists releases", func(t *testing.T) {
		mock := testhelpers.NewMockAdapter("github")
		_, err := mock.CreateRelease(context.Background(), "octocat", "spoon-knife", adapter.ReleaseOptions{
			TagName: "v1.0.0",
			Name:    "First stable",
		})
		require.NoError(t, err)

		out, err := runCommand(t, mock, "release", "list")
		require.NoError(t, err)
		require.Contains(t, out, "v1.0.0")
		require.Contains(t, out, "First stable")
	})

	t.Run("reports an empty repository", func(t *testing.T) {
		mock := testhelpers.NewMockAdapter("github")

		out, err := runCommand(t, mock, "release", "list")
		require.NoError(t, err)
		require.Contains(t, out, "No releases found in octocat/spoon-knife")
	})
}
