package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"shipit.dev/shipit/internal/config"
	shipiterrors "shipit.dev/shipit/internal/errors"
)

// writeProjectConfig drops a .shipit.yml into dir.
func writeProjectConfig(t *testing.T, dir string, contents string) {
	t.Helper()
	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
}

func TestLoad(t *testing.T) {
	t.Run("loads without any config files", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())

		store, err := config.Load(t.TempDir())
		require.NoError(t, err)
		require.NotNil(t, store)
	})

	t.Run("reads values from the project file", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		dir := t.TempDir()
		writeProjectConfig(t, dir, "adapter: gitlab\n")

		store, err := config.Load(dir)
		require.NoError(t, err)
		require.Equal(t, "gitlab", store.GetString("adapter"))
	})

	t.Run("reads nested values by dotted path", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		dir := t.TempDir()
		writeProjectConfig(t, dir, `
adapters:
  github:
    config:
      base_url: https://api.github.com/
    authentication:
      username: cordoval
`)

		store, err := config.Load(dir)
		require.NoError(t, err)
		require.Equal(t, "https://api.github.com/", store.GetString("adapters.github.config.base_url"))
		require.Equal(t, "cordoval", store.GetString("adapters.github.authentication.username"))
	})

	t.Run("returns ConfigParseError for malformed yaml", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		dir := t.TempDir()
		writeProjectConfig(t, dir, "adapter: [unclosed\n")

		_, err := config.Load(dir)
		require.Error(t, err)

		var parseErr *shipiterrors.ConfigParseError
		require.True(t, errors.As(err, &parseErr))
		require.True(t, errors.Is(err, shipiterrors.ErrConfigParse))
	})

	t.Run("environment variables override file values", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		dir := t.TempDir()
		writeProjectConfig(t, dir, "adapter: github\n")
		t.Setenv("SHIPIT_ADAPTER", "bitbucket")

		store, err := config.Load(dir)
		require.NoError(t, err)
		require.Equal(t, "bitbucket", store.GetString("adapter"))
	})

	t.Run("project file overrides user file", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		require.NoError(t, os.WriteFile(filepath.Join(home, config.ConfigFileName), []byte(`
adapter: github
cache-dir: /from/user
`), 0644))

		dir := t.TempDir()
		writeProjectConfig(t, dir, "adapter: gitlab\n")

		store, err := config.Load(dir)
		require.NoError(t, err)
		// Project layer wins for keys it sets.
		require.Equal(t, "gitlab", store.GetString("adapter"))
		// User layer still contributes keys the project does not set.
		require.Equal(t, "/from/user", store.GetString("cache-dir"))
	})

	t.Run("seeds built-in defaults", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())

		store, err := config.Load(t.TempDir())
		require.NoError(t, err)
		require.Equal(t, "info", store.GetString("log.level"))
		require.NotEmpty(t, store.GetString("cache-dir"))
	})
}

func TestGet(t *testing.T) {
	t.Run("distinguishes absent from present", func(t *testing.T) {
		store := config.FromTree(map[string]any{
			"adapter": "github",
		})

		val, ok := store.Get("adapter")
		require.True(t, ok)
		require.Equal(t, "github", val)

		_, ok = store.Get("never.set.path")
		require.False(t, ok)
	})

	t.Run("reports empty values as present", func(t *testing.T) {
		store := config.FromTree(map[string]any{
			"adapter": "",
		})

		val, ok := store.Get("adapter")
		require.True(t, ok)
		require.Equal(t, "", val)
	})
}

func TestMerge(t *testing.T) {
	t.Run("deep merges with incoming values winning at leaves", func(t *testing.T) {
		store := config.FromTree(map[string]any{
			"adapters": map[string]any{
				"github": map[string]any{
					"config": map[string]any{
						"base_url": "https://api.github.com/",
						"timeout":  30,
					},
				},
			},
		})

		err := store.Merge(map[string]any{
			"adapters": map[string]any{
				"github": map[string]any{
					"config": map[string]any{
						"base_url": "https://ghe.example.com/api/v3/",
					},
				},
			},
		})
		require.NoError(t, err)

		// Overridden leaf takes the new value.
		require.Equal(t, "https://ghe.example.com/api/v3/", store.GetString("adapters.github.config.base_url"))
		// Untouched sibling leaf survives the merge.
		timeout, ok := store.Get("adapters.github.config.timeout")
		require.True(t, ok)
		require.Equal(t, 30, timeout)
	})

	t.Run("adds new branches without disturbing existing ones", func(t *testing.T) {
		store := config.FromTree(map[string]any{
			"adapter": "github",
		})

		err := store.Merge(map[string]any{
			"authentication": map[string]any{"username": "cordoval"},
		})
		require.NoError(t, err)

		require.Equal(t, "github", store.GetString("adapter"))
		require.Equal(t, "cordoval", store.GetString("authentication.username"))
	})
}

func TestSub(t *testing.T) {
	t.Run("returns subtree as a plain map", func(t *testing.T) {
		store := config.FromTree(map[string]any{
			"adapters": map[string]any{
				"github": map[string]any{
					"config": map[string]any{"base_url": "https://api.github.com/"},
				},
			},
		})

		sub := store.Sub("adapters.github")
		require.NotNil(t, sub)
		require.Contains(t, sub, "config")
	})

	t.Run("returns nil for unset paths", func(t *testing.T) {
		store := config.FromTree(nil)
		require.Nil(t, store.Sub("adapters.github"))
	})
}

func TestRaw(t *testing.T) {
	t.Run("returns the whole merged tree", func(t *testing.T) {
		store := config.FromTree(map[string]any{
			"adapter": "github",
			"adapters": map[string]any{
				"github": map[string]any{"config": map[string]any{}},
			},
		})

		raw := store.Raw()
		require.Equal(t, "github", raw["adapter"])
		require.Contains(t, raw, "adapters")
	})
}

func TestWriteUserConfig(t *testing.T) {
	t.Run("persists and reloads the user tree", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		path, err := config.WriteUserConfig(map[string]any{
			"adapter": "bitbucket",
			"adapters": map[string]any{
				"bitbucket": map[string]any{
					"authentication": map[string]any{"username": "cordoval"},
				},
			},
		})
		require.NoError(t, err)
		require.Equal(t, filepath.Join(home, config.ConfigFileName), path)

		store, err := config.Load(t.TempDir())
		require.NoError(t, err)
		require.Equal(t, "bitbucket", store.GetString("adapter"))
		require.Equal(t, "cordoval", store.GetString("adapters.bitbucket.authentication.username"))
	})
}
