package cli_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"shipit.dev/shipit/testhelpers"
)

func TestBranchListCommand(t *testing.T) {
	t.Run("lists branches with short hashes", func(t *testing.T) {
		mock := testhelpers.NewMockAdapter("github")
		mock.SeedBranch("main", "d0dd1f61b33d64e29d8bc1372a94ef6a2fee76a9")
		mock.SeedBranch("docs/fork-workflow", "3d21ec53a331a6f037a91c368710b99387d012c1")

		out, err := runCommand(t, mock, "branch", "list")
		require.NoError(t, err)
		require.Contains(t, out, "main d0dd1f61")
		require.Contains(t, out, "docs/fork-workflow 3d21ec53")
	})

	t.Run("reports an empty repository", func(t *testing.T) {
		mock := testhelpers.NewMockAdapter("github")

		out, err := runCommand(t, mock, "branch", "list")
		require.NoError(t, err)
		require.Contains(t, out, "No branches found in octocat/spoon-knife")
	})
}

func TestBranchDeleteCommand(t *testing.T) {
	t.Run("deletes with confirmation skipped", func(t *testing.T) {
		mock := testhelpers.NewMockAdapter("github")
		mock.SeedBranch("stale/old-work", "3d21ec53a331a6f037a91c368710b99387d012c1")

		out, err := runCommand(t, mock, "branch", "delete", "stale/old-work", "--yes")
		require.NoError(t, err)
		require.Contains(t, out, "Deleted remote branch stale/old-work")

		branches, err := mock.ListBranches(context.Background(), "octocat", "spoon-knife")
		require.NoError(t, err)
		require.Empty(t, branches)
	})

	t.Run("asks before deleting when prompts are disabled", func(t *testing.T) {
		mock := testhelpers.NewMockAdapter("github")
		mock.SeedBranch("stale/old-work", "3d21ec53a331a6f037a91c368710b99387d012c1")

		_, err := runCommand(t, mock, "branch", "delete", "stale/old-work")
		require.Error(t, err)

		branches, err := mock.ListBranches(context.Background(), "octocat", "spoon-knife")
		require.NoError(t, err)
		require.Len(t, branches, 1)
	})

	t.Run("fails for an unknown branch", func(t *testing.T) {
		mock := testhelpers.NewMockAdapter("github")

		_, err := runCommand(t, mock, "branch", "delete", "ghost", "--yes")
		require.Error(t, err)
		require.Contains(t, err.Error(), "not found")
	})
}
