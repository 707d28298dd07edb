package traitkit

import (
	"go.uber.org/zap"
)

// Resolver applies capability descriptors to records. It recursively
// satisfies every transitive precondition before merging a descriptor's
// default operations into the record's surface. A Resolver is safe for
// concurrent use across distinct records; concurrent mixin calls on the same
// record must be serialized by the caller.
type Resolver struct {
	logger     *zap.Logger
	middleware []OpMiddleware
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger used to trace resolution at debug level.
func WithLogger(logger *zap.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithOpMiddleware appends middleware applied to every default
// implementation the resolver installs. Operations the record already binds
// are never wrapped.
func WithOpMiddleware(mw ...OpMiddleware) ResolverOption {
	return func(r *Resolver) {
		r.middleware = append(r.middleware, mw...)
	}
}

// NewResolver creates a resolver.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultResolver = NewResolver()

// Mixin merges the descriptors' operations onto rec's surface using the
// default resolver. See Resolver.Mixin.
func Mixin(rec Carrier, descs ...*Descriptor) (Carrier, error) {
	return defaultResolver.Mixin(rec, descs...)
}

// Mixin merges each descriptor's operations onto rec's surface, in argument
// order, and returns the same record. Before a descriptor is merged, every
// precondition it declares is checked individually with Satisfies and, if
// unsatisfied, resolved recursively in the order listed. Merging binds only
// operation names the record does not yet bind (first-bound-wins); declared
// operations without a default are never bound. Applying the same descriptor
// twice is idempotent.
//
// Returns ErrInvalidArgument if no descriptors are supplied or any
// descriptor is nil, and ErrPreconditionCycle if resolution revisits a
// descriptor, which cannot happen for descriptors built with NewDescriptor.
func (r *Resolver) Mixin(rec Carrier, descs ...*Descriptor) (Carrier, error) {
	if rec == nil {
		return nil, &InvalidArgumentError{Reason: "record must not be nil"}
	}
	if len(descs) == 0 {
		return nil, &InvalidArgumentError{Reason: "at least one descriptor is required"}
	}
	for _, d := range descs {
		if d == nil {
			return nil, &InvalidArgumentError{Reason: "descriptor must not be nil"}
		}
	}
	for _, d := range descs {
		if err := r.resolve(rec, d, nil); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func (r *Resolver) resolve(rec Carrier, d *Descriptor, trail []string) error {
	for _, seen := range trail {
		if seen == d.name {
			return &PreconditionCycleError{Chain: append(append([]string{}, trail...), d.name)}
		}
	}
	trail = append(trail, d.name)

	for _, p := range d.preconditions {
		if Satisfies(rec, p) {
			continue
		}
		if err := r.resolve(rec, p, trail); err != nil {
			return err
		}
	}

	r.merge(rec, d)
	return nil
}

// merge installs d's default operations on rec's surface, entry by entry,
// skipping names the record already binds and placeholders without a
// default. Implementations are bound by reference; the surface never aliases
// the descriptor's own map.
func (r *Resolver) merge(rec Carrier, d *Descriptor) {
	s := rec.CapabilitySurface()
	for _, name := range d.OperationNames() {
		if s.Bound(name) {
			continue
		}
		impl, _ := d.Default(name)
		if impl == nil {
			continue
		}
		s.Bind(name, r.wrap(name, impl))
		r.logger.Debug("bound default operation",
			zap.String("capability", d.name),
			zap.String("op", name))
	}
}

// wrap applies middleware in FIFO order: the first registered middleware
// wraps first (onion model).
func (r *Resolver) wrap(name string, impl Op) Op {
	for i := len(r.middleware) - 1; i >= 0; i-- {
		impl = r.middleware[i](name, impl)
	}
	return impl
}
