package capability

import (
	"fmt"
	"reflect"

	traitkit "github.com/traitkit-dev/traitkit"
)

// Builtin capability names.
const (
	Monoid         = "Monoid"
	Container      = "Container"
	Traversable    = "Traversable"
	Sequential     = "Sequential"
	Reversable     = "Reversable"
	Foldable       = "Foldable"
	TwoWayFoldable = "TwoWayFoldable"
	Comparable     = "Comparable"
	Ordered        = "Ordered"
	Arithmetic     = "Arithmetic"
	Serializable   = "Serializable"
	Mixable        = "Mixable"
	Createable     = "Createable"
)

// Builtin returns a catalog preloaded with the standard descriptor set.
// Every call builds a fresh catalog; the descriptors inside one catalog
// share precondition edges, so resolving a dependent capability pulls in
// exactly these instances.
//
// Defaults are stubs that declare the contract; concrete records supply real
// behavior before mixing in, and the merge only fills gaps. A few defaults
// are derived typeclass-style through the record's own surface: lt from
// le and eq, foldl from fold, foldr from revert and fold.
func Builtin() *Catalog {
	c, err := NewCatalog(WithDescriptors(builtinDescriptors()...))
	if err != nil {
		panic(err)
	}
	return c
}

func builtinDescriptors() []*traitkit.Descriptor {
	monoid := traitkit.MustDescriptor(Monoid, map[string]traitkit.Op{
		"empty": stub(),
	})
	container := traitkit.MustDescriptor(Container, map[string]traitkit.Op{
		"size":   stubValue(0),
		"insert": stub(),
		"remove": stub(),
	}, traitkit.WithPreconditions(monoid))
	traversable := traitkit.MustDescriptor(Traversable, map[string]traitkit.Op{
		"iterate": stub(),
		"pairs":   stub(),
	}, traitkit.WithPreconditions(container))
	sequential := traitkit.MustDescriptor(Sequential, map[string]traitkit.Op{
		"head": stub(),
		"tail": stub(),
		"last": stub(),
		"init": stub(),
	}, traitkit.WithPreconditions(traversable))
	reversable := traitkit.MustDescriptor(Reversable, map[string]traitkit.Op{
		"revert": stub(),
	}, traitkit.WithPreconditions(sequential))
	foldable := traitkit.MustDescriptor(Foldable, map[string]traitkit.Op{
		"fold": stub(),
	}, traitkit.WithPreconditions(traversable))
	twoWayFoldable := traitkit.MustDescriptor(TwoWayFoldable, map[string]traitkit.Op{
		"foldl": delegate("fold"),
		"foldr": foldReversed,
	}, traitkit.WithPreconditions(foldable, reversable))

	comparable := traitkit.MustDescriptor(Comparable, map[string]traitkit.Op{
		"eq": deepEqual,
	})
	ordered := traitkit.MustDescriptor(Ordered, map[string]traitkit.Op{
		"le": stubValue(false),
		"lt": lessThan,
	}, traitkit.WithPreconditions(comparable))

	arithmetic := traitkit.MustDescriptor(Arithmetic, map[string]traitkit.Op{
		"add": stub(),
		"sub": stub(),
		"mul": stub(),
		"div": stub(),
		"neg": stub(),
	})
	serializable := traitkit.MustDescriptor(Serializable, map[string]traitkit.Op{
		"tostring": toString,
	})
	mixable := traitkit.MustDescriptor(Mixable, map[string]traitkit.Op{
		"mixin": mixinSelf,
	})
	createable := traitkit.MustDescriptor(Createable, map[string]traitkit.Op{
		"create": stub(),
	})

	return []*traitkit.Descriptor{
		monoid, container, traversable, sequential, reversable,
		foldable, twoWayFoldable, comparable, ordered,
		arithmetic, serializable, mixable, createable,
	}
}

// stub returns a no-op default.
func stub() traitkit.Op {
	return func(rec traitkit.Carrier, args ...any) (any, error) {
		return nil, nil
	}
}

// stubValue returns a default that always yields v.
func stubValue(v any) traitkit.Op {
	return func(rec traitkit.Carrier, args ...any) (any, error) {
		return v, nil
	}
}

// delegate returns a default that forwards to another operation bound on
// the record.
func delegate(name string) traitkit.Op {
	return func(rec traitkit.Carrier, args ...any) (any, error) {
		return traitkit.Invoke(rec, name, args...)
	}
}

// foldReversed reverts the record, then folds the result. If revert yields
// a carrier the fold runs on it, otherwise on the record itself.
func foldReversed(rec traitkit.Carrier, args ...any) (any, error) {
	reversed, err := traitkit.Invoke(rec, "revert")
	if err != nil {
		return nil, err
	}
	if c, ok := reversed.(traitkit.Carrier); ok {
		return traitkit.Invoke(c, "fold", args...)
	}
	return traitkit.Invoke(rec, "fold", args...)
}

// deepEqual compares its two arguments structurally.
func deepEqual(rec traitkit.Carrier, args ...any) (any, error) {
	if len(args) != 2 {
		return nil, &traitkit.InvalidArgumentError{Reason: "eq requires exactly two arguments"}
	}
	return reflect.DeepEqual(args[0], args[1]), nil
}

// lessThan derives strict ordering from le and eq on the record's surface.
func lessThan(rec traitkit.Carrier, args ...any) (any, error) {
	le, err := traitkit.Invoke(rec, "le", args...)
	if err != nil {
		return nil, err
	}
	eq, err := traitkit.Invoke(rec, "eq", args...)
	if err != nil {
		return nil, err
	}
	leOK, _ := le.(bool)
	eqOK, _ := eq.(bool)
	return leOK && !eqOK, nil
}

func toString(rec traitkit.Carrier, args ...any) (any, error) {
	if len(args) > 0 {
		return fmt.Sprintf("%v", args[0]), nil
	}
	return fmt.Sprintf("%v", rec), nil
}

// mixinSelf lets a record compose further descriptors through its own
// surface.
func mixinSelf(rec traitkit.Carrier, args ...any) (any, error) {
	descs := make([]*traitkit.Descriptor, 0, len(args))
	for _, arg := range args {
		d, ok := arg.(*traitkit.Descriptor)
		if !ok {
			return nil, &traitkit.InvalidArgumentError{Reason: "mixin arguments must be descriptors"}
		}
		descs = append(descs, d)
	}
	return traitkit.Mixin(rec, descs...)
}
