package registry

import traitkit "github.com/traitkit-dev/traitkit"

// Factory builds a record in its factory-default state.
type Factory func() traitkit.Carrier

// RecordRegistry manages process-wide singleton records by name.
type RecordRegistry interface {
	// Register adds a factory for a named record.
	Register(name string, factory Factory) error

	// Get returns the singleton instance for name, building it from the
	// factory on first use.
	Get(name string) (traitkit.Carrier, error)

	// List returns all registered record names.
	List() []string

	// Match returns the registered record names matching a glob pattern.
	Match(pattern string) ([]string, error)

	// Reset discards the singleton instance for name; the next Get rebuilds
	// it from the factory.
	Reset(name string) error

	// ResetAll discards every singleton instance.
	ResetAll()
}
