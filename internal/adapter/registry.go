package adapter

import (
	"fmt"
	"sort"
	"sync"

	shipiterrors "shipit.dev/shipit/internal/errors"
)

// Registry holds the provider factories available to the resolution pipeline.
// Built-in providers register through it the same way third-party ones would.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register validates and records a provider factory handle. A nil handle
// fails with ErrUnknownAdapter. A handle that does not implement Factory, or
// whose identifier is empty, fails with ErrInvalidAdapter. A failed
// registration leaves the registry untouched.
func (r *Registry) Register(handle any) error {
	if handle == nil {
		return fmt.Errorf("%w: nil handle", shipiterrors.ErrUnknownAdapter)
	}

	factory, ok := handle.(Factory)
	if !ok {
		return fmt.Errorf("%w: %T does not implement adapter.Factory", shipiterrors.ErrInvalidAdapter, handle)
	}

	identifier := factory.Identifier()
	if identifier == "" {
		return fmt.Errorf("%w: %T has an empty identifier", shipiterrors.ErrInvalidAdapter, factory)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[identifier] = factory

	return nil
}

// Lookup returns the factory registered under the given identifier.
func (r *Registry) Lookup(identifier string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[identifier]
	return factory, ok
}

// List returns a copy of the registered factories keyed by identifier.
func (r *Registry) List() map[string]Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factories := make(map[string]Factory, len(r.factories))
	for identifier, factory := range r.factories {
		factories[identifier] = factory
	}
	return factories
}

// Identifiers returns the registered identifiers in sorted order.
func (r *Registry) Identifiers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	identifiers := make([]string, 0, len(r.factories))
	for identifier := range r.factories {
		identifiers = append(identifiers, identifier)
	}
	sort.Strings(identifiers)
	return identifiers
}

// Len returns the number of registered factories.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}
