package traitkit

import "github.com/traitkit-dev/traitkit/funcs"

// Satisfies reports whether rec structurally conforms to d: every operation
// name the descriptor declares is bound on the record's surface. Declared
// type identity plays no part; only the presence of correctly named
// callables counts. A record with no surface satisfies only descriptors with
// zero required operations. Total over any record/descriptor pair; absent
// data means "not satisfied", never failure.
func Satisfies(rec Carrier, d *Descriptor) bool {
	if d == nil {
		return false
	}
	var s *Surface
	if rec != nil {
		s = rec.CapabilitySurface()
	}
	return funcs.All(d.OperationNames(), s.Bound)
}

// MissingOps returns the operation names d requires that are not bound on
// rec's surface, in sorted order. Empty iff Satisfies(rec, d).
func MissingOps(rec Carrier, d *Descriptor) []string {
	if d == nil {
		return nil
	}
	var s *Surface
	if rec != nil {
		s = rec.CapabilitySurface()
	}
	return funcs.Filter(d.OperationNames(), func(name string) bool {
		return !s.Bound(name)
	})
}
