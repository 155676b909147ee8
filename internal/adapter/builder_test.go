package adapter_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"shipit.dev/shipit/internal/adapter"
	"shipit.dev/shipit/internal/config"
	shipiterrors "shipit.dev/shipit/internal/errors"
	"shipit.dev/shipit/testhelpers"
)

func builderStore() *config.Store {
	return config.FromTree(map[string]any{
		"adapter":   "github",
		"cache-dir": "/tmp/shipit",
		"adapters": map[string]any{
			"github": map[string]any{
				"config": map[string]any{
					"base_url": "https://api.github.com/",
				},
				"authentication": map[string]any{
					"username": "cordoval",
				},
			},
		},
	})
}

func TestBuild(t *testing.T) {
	t.Run("builds and authenticates the registered adapter", func(t *testing.T) {
		reg := adapter.NewRegistry()
		factory := testhelpers.NewMockFactory("github")
		require.NoError(t, reg.Register(factory))

		built, err := adapter.Build(context.Background(), reg, builderStore(), "github")
		require.NoError(t, err)
		require.NotNil(t, built)
		require.Equal(t, "github", built.Identifier())
		require.Equal(t, 1, factory.Built.AuthCalls)
	})

	t.Run("hands the factory a reshaped configuration view", func(t *testing.T) {
		reg := adapter.NewRegistry()
		factory := testhelpers.NewMockFactory("github")
		require.NoError(t, reg.Register(factory))

		_, err := adapter.Build(context.Background(), reg, builderStore(), "github")
		require.NoError(t, err)

		cfg := factory.LastConfig
		require.NotNil(t, cfg)
		require.Equal(t, "github", cfg.GetString("adapter"))
		require.Equal(t, "https://api.github.com/", cfg.GetString("github.base_url"))
		require.Equal(t, "cordoval", cfg.GetString("authentication.username"))
		require.Equal(t, "/tmp/shipit", cfg.GetString("cache-dir"))

		_, hasAdapters := cfg.Get("adapters")
		require.False(t, hasAdapters)
	})

	t.Run("fails for an unregistered identifier", func(t *testing.T) {
		reg := adapter.NewRegistry()

		_, err := adapter.Build(context.Background(), reg, builderStore(), "gitlab")
		require.Error(t, err)

		var buildErr *shipiterrors.AdapterBuildError
		require.True(t, errors.As(err, &buildErr))
		require.Equal(t, "gitlab", buildErr.Identifier)
	})

	t.Run("fails when the provider has no config entry", func(t *testing.T) {
		reg := adapter.NewRegistry()
		factory := testhelpers.NewMockFactory("github")
		require.NoError(t, reg.Register(factory))

		store := config.FromTree(map[string]any{
			"adapters": map[string]any{
				"github": map[string]any{
					"authentication": map[string]any{"username": "x"},
				},
			},
		})

		_, err := adapter.Build(context.Background(), reg, store, "github")
		require.Error(t, err)
		require.True(t, errors.Is(err, shipiterrors.ErrAdapterBuild))
		// The factory must never run without its config entry.
		require.Equal(t, 0, factory.NewCalls)
	})

	t.Run("wraps constructor failures", func(t *testing.T) {
		reg := adapter.NewRegistry()
		factory := testhelpers.NewMockFactory("github")
		factory.NewErr = errors.New("bad base_url")
		require.NoError(t, reg.Register(factory))

		_, err := adapter.Build(context.Background(), reg, builderStore(), "github")
		require.Error(t, err)

		var buildErr *shipiterrors.AdapterBuildError
		require.True(t, errors.As(err, &buildErr))
		require.ErrorContains(t, err, "bad base_url")
	})

	t.Run("propagates authentication failures verbatim", func(t *testing.T) {
		reg := adapter.NewRegistry()
		factory := testhelpers.NewMockFactory("github")
		factory.AuthErr = shipiterrors.NewAuthError("github", errors.New("401 bad credentials"))
		require.NoError(t, reg.Register(factory))

		_, err := adapter.Build(context.Background(), reg, builderStore(), "github")
		require.Error(t, err)
		require.True(t, errors.Is(err, shipiterrors.ErrAuth))

		var authErr *shipiterrors.AuthError
		require.True(t, errors.As(err, &authErr))
		require.Equal(t, "github", authErr.Provider)
	})
}
