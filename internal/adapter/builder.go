package adapter

import (
	"context"
	"fmt"

	"shipit.dev/shipit/internal/config"
	shipiterrors "shipit.dev/shipit/internal/errors"
)

// Build constructs and authenticates the adapter registered under the given
// identifier. The adapter receives a reshaped view of the configuration in
// which its own settings sit at the top level. Build returns the instance;
// binding it into a runtime context is the caller's job.
func Build(ctx context.Context, reg *Registry, store *config.Store, identifier string) (Adapter, error) {
	factory, ok := reg.Lookup(identifier)
	if !ok {
		return nil, shipiterrors.NewAdapterBuildError(identifier, "no such adapter is registered", nil)
	}

	configPath := fmt.Sprintf("adapters.%s.config", identifier)
	if _, ok := store.Get(configPath); !ok {
		return nil, shipiterrors.NewAdapterBuildError(identifier, fmt.Sprintf("configuration has no %s entry, run 'shipit configure'", configPath), nil)
	}

	instance, err := factory.New(config.FromTree(ReshapeConfig(store.Raw(), identifier)))
	if err != nil {
		return nil, shipiterrors.NewAdapterBuildError(identifier, "constructor failed", err)
	}

	if err := instance.Authenticate(ctx); err != nil {
		return nil, err
	}

	return instance, nil
}
