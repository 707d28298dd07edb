// Package registry implements a process-wide single-instance record
// registry with reset-to-factory semantics. Each registered name maps to a
// factory; the registry hands out one instance per name and can discard it
// so the next lookup rebuilds a pristine record.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	traitkit "github.com/traitkit-dev/traitkit"
	"github.com/traitkit-dev/traitkit/funcs"
)

// Sentinel errors for common error patterns.
var (
	// ErrNotRegistered is returned when a record name has no factory.
	ErrNotRegistered = errors.New("record not registered")

	// ErrAlreadyRegistered is returned when a name is registered twice.
	ErrAlreadyRegistered = errors.New("record already registered")
)

// NotRegisteredError indicates a lookup of an unregistered record.
type NotRegisteredError struct {
	Name string
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("record not registered: %s", e.Name)
}

// Is implements error matching for errors.Is() checks.
func (e *NotRegisteredError) Is(target error) bool {
	return target == ErrNotRegistered
}

// Registry implements RecordRegistry using in-memory storage.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	instances map[string]traitkit.Carrier
}

// RegistryOption configures the Registry.
type RegistryOption func(*Registry) error

// WithFactories registers factories at construction time.
func WithFactories(factories map[string]Factory) RegistryOption {
	return func(r *Registry) error {
		for name, factory := range factories {
			if err := r.Register(name, factory); err != nil {
				return err
			}
		}
		return nil
	}
}

// NewRegistry creates a new record registry.
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	r := &Registry{
		factories: make(map[string]Factory),
		instances: make(map[string]traitkit.Carrier),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a factory for a named record.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return &traitkit.InvalidArgumentError{Reason: "record name must not be empty"}
	}
	if factory == nil {
		return &traitkit.InvalidArgumentError{Reason: "factory must not be nil"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if funcs.ContainsKey(r.factories, name) {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}
	r.factories[name] = factory
	return nil
}

// Get returns the singleton instance for name, building it from the factory
// on first use.
func (r *Registry) Get(name string) (traitkit.Carrier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec, ok := r.instances[name]; ok {
		return rec, nil
	}
	factory, ok := r.factories[name]
	if !ok {
		return nil, &NotRegisteredError{Name: name}
	}
	rec := factory()
	if rec == nil {
		return nil, fmt.Errorf("factory for %s returned nil", name)
	}
	r.instances[name] = rec
	return rec, nil
}

// List returns all registered record names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := funcs.Keys(r.factories)
	sort.Strings(names)
	return names
}

// Match returns the registered record names matching a glob pattern, in
// sorted order.
func (r *Registry) Match(pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, &traitkit.InvalidArgumentError{Reason: fmt.Sprintf("invalid pattern: %s", pattern)}
	}
	return funcs.Filter(r.List(), func(name string) bool {
		ok, _ := doublestar.Match(pattern, name)
		return ok
	}), nil
}

// Reset discards the singleton instance for name; the next Get rebuilds it
// from the factory.
func (r *Registry) Reset(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !funcs.ContainsKey(r.factories, name) {
		return &NotRegisteredError{Name: name}
	}
	delete(r.instances, name)
	return nil
}

// ResetAll discards every singleton instance, keeping the factories.
func (r *Registry) ResetAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instances = make(map[string]traitkit.Carrier)
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry, _ = NewRegistry()
	})
	return defaultRegistry
}
