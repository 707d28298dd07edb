// Package traitkit composes named capability sets ("typeclasses") onto
// arbitrary records at runtime. A Descriptor declares the operations a
// capability requires; Satisfies checks structural conformance; Mixin merges
// a descriptor's default operations onto a record, transitively resolving
// every capability the descriptor depends on.
package traitkit

import (
	"sort"

	"github.com/traitkit-dev/traitkit/funcs"
)

// Op is a single bound operation implementation. The carrier is passed
// explicitly so that default implementations can dispatch through the
// record's own surface.
type Op func(rec Carrier, args ...any) (any, error)

// Carrier is any record that can expose a capability surface. Embedding
// Surface in a struct is enough to satisfy this interface.
type Carrier interface {
	CapabilitySurface() *Surface
}

// Surface is the per-record, mutable mapping of operation name to bound
// implementation. The zero value is ready to use; the backing map is created
// on the first binding. A surface belongs to exactly one record and shares
// its lifetime; it must not be copied between records.
type Surface struct {
	ops map[string]Op
}

// CapabilitySurface returns the surface itself, so any struct embedding
// Surface is a Carrier.
func (s *Surface) CapabilitySurface() *Surface { return s }

// Bind binds name to impl, replacing any existing binding. Binding a nil
// implementation removes the entry.
func (s *Surface) Bind(name string, impl Op) {
	if impl == nil {
		delete(s.ops, name)
		return
	}
	if s.ops == nil {
		s.ops = make(map[string]Op)
	}
	s.ops[name] = impl
}

// Lookup returns the implementation bound under name.
func (s *Surface) Lookup(name string) (Op, bool) {
	if s == nil {
		return nil, false
	}
	impl, ok := s.ops[name]
	return impl, ok
}

// Bound reports whether a callable implementation is bound under name.
func (s *Surface) Bound(name string) bool {
	if s == nil {
		return false
	}
	return funcs.ContainsKey(s.ops, name)
}

// Names returns the bound operation names in sorted order.
func (s *Surface) Names() []string {
	if s == nil {
		return nil
	}
	names := funcs.Keys(s.ops)
	sort.Strings(names)
	return names
}

// Len returns the number of bound operations.
func (s *Surface) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ops)
}

// Invoke calls the operation bound under name on rec's surface.
func Invoke(rec Carrier, name string, args ...any) (any, error) {
	if rec == nil {
		return nil, &OpNotBoundError{Name: name}
	}
	impl, ok := rec.CapabilitySurface().Lookup(name)
	if !ok {
		return nil, &OpNotBoundError{Name: name}
	}
	return impl(rec, args...)
}
