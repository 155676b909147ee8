package forge_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"shipit.dev/shipit/internal/adapter"
	"shipit.dev/shipit/internal/config"
	"shipit.dev/shipit/internal/forge"
)

func TestBuiltins(t *testing.T) {
	t.Run("registers the four built-in providers", func(t *testing.T) {
		reg := adapter.NewRegistry()
		require.NoError(t, forge.Builtins(reg))

		require.Equal(t, []string{
			forge.Bitbucket,
			forge.GitHub,
			forge.GitHubEnterprise,
			forge.GitLab,
		}, reg.Identifiers())
	})

	t.Run("registered factories report their identifiers", func(t *testing.T) {
		reg := adapter.NewRegistry()
		require.NoError(t, forge.Builtins(reg))

		for _, identifier := range reg.Identifiers() {
			factory, ok := reg.Lookup(identifier)
			require.True(t, ok)
			require.Equal(t, identifier, factory.Identifier())
		}
	})
}

func TestGitHubFactory(t *testing.T) {
	t.Run("builds an adapter for github.com", func(t *testing.T) {
		factory := forge.NewGitHubFactory(forge.GitHub)

		built, err := factory.New(config.FromTree(map[string]any{
			"github": map[string]any{
				"base_url": "https://api.github.com/",
			},
			"authentication": map[string]any{
				"username": "cordoval",
				"token":    "secret",
			},
			"adapter": forge.GitHub,
		}))
		require.NoError(t, err)
		require.Equal(t, forge.GitHub, built.Identifier())
	})

	t.Run("builds an enterprise adapter with a custom endpoint", func(t *testing.T) {
		factory := forge.NewGitHubFactory(forge.GitHubEnterprise)

		built, err := factory.New(config.FromTree(map[string]any{
			"github_enterprise": map[string]any{
				"base_url": "https://ghe.example.com/api/v3",
			},
			"authentication": map[string]any{
				"token": "secret",
			},
			"adapter": forge.GitHubEnterprise,
		}))
		require.NoError(t, err)
		require.Equal(t, forge.GitHubEnterprise, built.Identifier())
	})

	t.Run("rejects an unparsable enterprise endpoint", func(t *testing.T) {
		factory := forge.NewGitHubFactory(forge.GitHubEnterprise)

		_, err := factory.New(config.FromTree(map[string]any{
			"github_enterprise": map[string]any{
				"base_url": "://not-a-url",
			},
		}))
		require.Error(t, err)
	})
}

func TestGitLabFactory(t *testing.T) {
	t.Run("builds an adapter", func(t *testing.T) {
		factory := forge.NewGitLabFactory()
		require.Equal(t, forge.GitLab, factory.Identifier())

		built, err := factory.New(config.FromTree(map[string]any{
			"authentication": map[string]any{"token": "secret"},
		}))
		require.NoError(t, err)
		require.Equal(t, forge.GitLab, built.Identifier())
	})

	t.Run("honours a self-hosted base_url", func(t *testing.T) {
		factory := forge.NewGitLabFactory()

		built, err := factory.New(config.FromTree(map[string]any{
			"gitlab": map[string]any{
				"base_url": "https://gitlab.internal.corp/api/v4",
			},
			"authentication": map[string]any{"token": "secret"},
		}))
		require.NoError(t, err)
		require.NotNil(t, built)
	})
}

func TestBitbucketFactory(t *testing.T) {
	t.Run("builds an adapter from basic credentials", func(t *testing.T) {
		factory := forge.NewBitbucketFactory()
		require.Equal(t, forge.Bitbucket, factory.Identifier())

		built, err := factory.New(config.FromTree(map[string]any{
			"authentication": map[string]any{
				"username":          "cordoval",
				"password-or-token": "app-password",
			},
		}))
		require.NoError(t, err)
		require.Equal(t, forge.Bitbucket, built.Identifier())
	})
}
