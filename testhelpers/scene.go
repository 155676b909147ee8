package testhelpers

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// Scene is a scratch git repository that the test process has changed into.
// Commands under test resolve the repository from the process working
// directory, so the scene chdirs on creation and restores the previous
// directory when the test ends.
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// SceneSetup prepares a freshly initialized scene, usually by committing
// something so the repository has a HEAD.
type SceneSetup func(*Scene) error

// NewScene creates a scratch repository, makes it the working directory, and
// applies setup. Set DEBUG to keep the directory around after the test for
// inspection.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	dir, err := os.MkdirTemp("", "shipit-scene-*")
	require.NoError(t, err)
	t.Cleanup(func() {
		if os.Getenv("DEBUG") == "" {
			os.RemoveAll(dir)
		}
	})

	previous, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = os.Chdir(previous)
	})

	repo, err := NewGitRepo(dir)
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))

	scene := &Scene{Dir: dir, Repo: repo}
	if setup != nil {
		require.NoError(t, setup(scene))
	}
	return scene
}

// BasicSceneSetup commits a single file so the branch exists.
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("1", "1")
}
