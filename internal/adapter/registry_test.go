package adapter_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"shipit.dev/shipit/internal/adapter"
	shipiterrors "shipit.dev/shipit/internal/errors"
	"shipit.dev/shipit/testhelpers"
)

func TestRegister(t *testing.T) {
	t.Run("registers a valid factory under its identifier", func(t *testing.T) {
		reg := adapter.NewRegistry()

		err := reg.Register(testhelpers.NewMockFactory("github"))
		require.NoError(t, err)

		factory, ok := reg.Lookup("github")
		require.True(t, ok)
		require.Equal(t, "github", factory.Identifier())
	})

	t.Run("rejects a nil handle with ErrUnknownAdapter", func(t *testing.T) {
		reg := adapter.NewRegistry()

		err := reg.Register(nil)
		require.Error(t, err)
		require.True(t, errors.Is(err, shipiterrors.ErrUnknownAdapter))
		require.Equal(t, 0, reg.Len())
	})

	t.Run("rejects a handle that is not a factory with ErrInvalidAdapter", func(t *testing.T) {
		reg := adapter.NewRegistry()

		err := reg.Register("not a factory")
		require.Error(t, err)
		require.True(t, errors.Is(err, shipiterrors.ErrInvalidAdapter))
		require.Equal(t, 0, reg.Len())
	})

	t.Run("rejects a factory with an empty identifier", func(t *testing.T) {
		reg := adapter.NewRegistry()

		err := reg.Register(testhelpers.NewMockFactory(""))
		require.Error(t, err)
		require.True(t, errors.Is(err, shipiterrors.ErrInvalidAdapter))
		require.Equal(t, 0, reg.Len())
	})

	t.Run("failed registration leaves existing entries untouched", func(t *testing.T) {
		reg := adapter.NewRegistry()
		require.NoError(t, reg.Register(testhelpers.NewMockFactory("github")))

		require.Error(t, reg.Register(nil))
		require.Error(t, reg.Register(42))

		require.Equal(t, []string{"github"}, reg.Identifiers())
	})

	t.Run("re-registering an identifier replaces the factory", func(t *testing.T) {
		reg := adapter.NewRegistry()
		first := testhelpers.NewMockFactory("github")
		second := testhelpers.NewMockFactory("github")

		require.NoError(t, reg.Register(first))
		require.NoError(t, reg.Register(second))

		require.Equal(t, 1, reg.Len())
		factory, ok := reg.Lookup("github")
		require.True(t, ok)
		require.Same(t, second, factory)
	})
}

func TestLookup(t *testing.T) {
	t.Run("reports absent identifiers", func(t *testing.T) {
		reg := adapter.NewRegistry()

		_, ok := reg.Lookup("gitlab")
		require.False(t, ok)
	})
}

func TestIdentifiers(t *testing.T) {
	t.Run("returns identifiers in sorted order", func(t *testing.T) {
		reg := adapter.NewRegistry()
		require.NoError(t, reg.Register(testhelpers.NewMockFactory("gitlab")))
		require.NoError(t, reg.Register(testhelpers.NewMockFactory("bitbucket")))
		require.NoError(t, reg.Register(testhelpers.NewMockFactory("github")))

		require.Equal(t, []string{"bitbucket", "github", "gitlab"}, reg.Identifiers())
	})
}

func TestList(t *testing.T) {
	t.Run("returns a copy that does not alias the registry", func(t *testing.T) {
		reg := adapter.NewRegistry()
		require.NoError(t, reg.Register(testhelpers.NewMockFactory("github")))

		listed := reg.List()
		delete(listed, "github")

		_, ok := reg.Lookup("github")
		require.True(t, ok)
	})
}
