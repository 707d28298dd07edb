package traitkit

import (
	"sort"
	"strings"

	"github.com/traitkit-dev/traitkit/funcs"
)

// Descriptor is an immutable capability descriptor: a named set of required
// operations with optional default implementations and an ordered list of
// precondition descriptors. Descriptors are defined once and never mutated;
// mixin operations copy from them, never into them. Because preconditions
// are supplied as already-built descriptors, the precondition relation is
// acyclic by construction.
type Descriptor struct {
	name          string
	operations    map[string]Op
	preconditions []*Descriptor
}

// DescriptorOption configures a Descriptor under construction.
type DescriptorOption func(*descriptorConfig)

type descriptorConfig struct {
	preconditions []*Descriptor
}

// WithPreconditions sets the descriptors that must be structurally satisfied
// before this one is applied, in resolution order.
func WithPreconditions(descs ...*Descriptor) DescriptorOption {
	return func(c *descriptorConfig) {
		c.preconditions = descs
	}
}

// NewDescriptor creates a descriptor declaring the given operations.
// A nil implementation value is a placeholder: it declares the operation as
// required without providing a default. Operations must be non-nil as a
// mapping (an empty map declares a capability with no required operations).
func NewDescriptor(name string, operations map[string]Op, opts ...DescriptorOption) (*Descriptor, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &InvalidArgumentError{Reason: "descriptor name must not be empty"}
	}
	if operations == nil {
		return nil, &InvalidArgumentError{Reason: "descriptor operations must not be nil"}
	}
	for op := range operations {
		if strings.TrimSpace(op) == "" {
			return nil, &InvalidArgumentError{Reason: "operation name must not be empty"}
		}
	}

	cfg := descriptorConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	preconditions := make([]*Descriptor, 0, len(cfg.preconditions))
	for _, p := range cfg.preconditions {
		if p == nil {
			return nil, &InvalidArgumentError{Reason: "precondition descriptor must not be nil"}
		}
		preconditions = append(preconditions, p)
	}

	return &Descriptor{
		name:          name,
		operations:    funcs.CloneMap(operations),
		preconditions: preconditions,
	}, nil
}

// MustDescriptor is like NewDescriptor but panics on error. It is intended
// for catalog construction at process start.
func MustDescriptor(name string, operations map[string]Op, opts ...DescriptorOption) *Descriptor {
	d, err := NewDescriptor(name, operations, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the descriptor's name.
func (d *Descriptor) Name() string { return d.name }

// OperationNames returns the required operation names in sorted order.
func (d *Descriptor) OperationNames() []string {
	names := funcs.Keys(d.operations)
	sort.Strings(names)
	return names
}

// Default returns the default implementation declared for name. A declared
// operation with a nil default (a placeholder) reports ok=true, impl=nil.
func (d *Descriptor) Default(name string) (impl Op, ok bool) {
	impl, ok = d.operations[name]
	return impl, ok
}

// Requires reports whether the descriptor declares an operation under name.
func (d *Descriptor) Requires(name string) bool {
	return funcs.ContainsKey(d.operations, name)
}

// Preconditions returns the precondition descriptors in resolution order.
func (d *Descriptor) Preconditions() []*Descriptor {
	out := make([]*Descriptor, len(d.preconditions))
	copy(out, d.preconditions)
	return out
}
