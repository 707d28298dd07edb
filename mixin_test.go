package traitkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	traitkit "github.com/traitkit-dev/traitkit"
)

// monoidContainer builds the Monoid <- Container chain from the scenario:
// Container requires size, insert, remove and is preconditioned on Monoid.
func monoidContainer(t *testing.T) (monoid, container *traitkit.Descriptor) {
	t.Helper()
	monoid = traitkit.MustDescriptor("Monoid", map[string]traitkit.Op{
		"empty": constOp(nil),
	})
	container = traitkit.MustDescriptor("Container", map[string]traitkit.Op{
		"size":   constOp(0),
		"insert": constOp(nil),
		"remove": constOp(nil),
	}, traitkit.WithPreconditions(monoid))
	return monoid, container
}

func TestMixin_ResolvesPreconditions(t *testing.T) {
	monoid, container := monoidContainer(t)

	rec := &record{}
	returned, err := traitkit.Mixin(rec, container)
	require.NoError(t, err)
	assert.Same(t, rec, returned.(*record))

	assert.Equal(t, []string{"empty", "insert", "remove", "size"}, rec.CapabilitySurface().Names())
	assert.True(t, traitkit.Satisfies(rec, monoid))
	assert.True(t, traitkit.Satisfies(rec, container))
}

func TestMixin_Idempotent(t *testing.T) {
	_, container := monoidContainer(t)

	rec := &record{}
	_, err := traitkit.Mixin(rec, container)
	require.NoError(t, err)

	before := rec.CapabilitySurface().Names()
	sizeBefore, _ := rec.CapabilitySurface().Lookup("size")

	_, err = traitkit.Mixin(rec, container)
	require.NoError(t, err)

	assert.Equal(t, before, rec.CapabilitySurface().Names())
	sizeAfter, _ := rec.CapabilitySurface().Lookup("size")
	got, err := sizeAfter(rec)
	require.NoError(t, err)
	want, err := sizeBefore(rec)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestMixin_FirstBoundWins(t *testing.T) {
	_, container := monoidContainer(t)

	rec := &record{}
	rec.CapabilitySurface().Bind("size", constOp(99))

	_, err := traitkit.Mixin(rec, container)
	require.NoError(t, err)

	result, err := traitkit.Invoke(rec, "size")
	require.NoError(t, err)
	assert.Equal(t, 99, result, "record's own binding must survive the mixin")
}

func TestMixin_FirstDescriptorWins(t *testing.T) {
	a := traitkit.MustDescriptor("A", map[string]traitkit.Op{
		"render": constOp("a"),
	})
	b := traitkit.MustDescriptor("B", map[string]traitkit.Op{
		"render": constOp("b"),
	})

	rec := &record{}
	_, err := traitkit.Mixin(rec, a, b)
	require.NoError(t, err)

	result, err := traitkit.Invoke(rec, "render")
	require.NoError(t, err)
	assert.Equal(t, "a", result)
}

func TestMixin_TransitiveClosure(t *testing.T) {
	p2 := traitkit.MustDescriptor("P2", map[string]traitkit.Op{
		"base": constOp(nil),
	})
	p1 := traitkit.MustDescriptor("P1", map[string]traitkit.Op{
		"middle": constOp(nil),
	}, traitkit.WithPreconditions(p2))
	top := traitkit.MustDescriptor("Top", map[string]traitkit.Op{
		"apex": constOp(nil),
	}, traitkit.WithPreconditions(p1))

	rec := &record{}
	_, err := traitkit.Mixin(rec, top)
	require.NoError(t, err)

	assert.True(t, traitkit.Satisfies(rec, p1))
	assert.True(t, traitkit.Satisfies(rec, p2))
	assert.True(t, traitkit.Satisfies(rec, top))
}

func TestMixin_IndependentCopies(t *testing.T) {
	_, container := monoidContainer(t)

	r1 := &record{label: "r1"}
	r2 := &record{label: "r2"}
	_, err := traitkit.Mixin(r1, container)
	require.NoError(t, err)
	_, err = traitkit.Mixin(r2, container)
	require.NoError(t, err)

	r1.CapabilitySurface().Bind("size", constOp(1000))

	got, err := traitkit.Invoke(r2, "size")
	require.NoError(t, err)
	assert.Equal(t, 0, got, "rebinding on r1 must not leak into r2")

	// The descriptor's own defaults are untouched as well.
	r3 := &record{label: "r3"}
	_, err = traitkit.Mixin(r3, container)
	require.NoError(t, err)
	got, err = traitkit.Invoke(r3, "size")
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestMixin_PlaceholdersNotBound(t *testing.T) {
	foldable := traitkit.MustDescriptor("Foldable", map[string]traitkit.Op{
		"fold": nil,
	})

	rec := &record{}
	_, err := traitkit.Mixin(rec, foldable)
	require.NoError(t, err)

	assert.False(t, rec.CapabilitySurface().Bound("fold"))
	assert.False(t, traitkit.Satisfies(rec, foldable))
}

func TestMixin_SkipsSatisfiedPreconditions(t *testing.T) {
	calls := 0
	monoid := traitkit.MustDescriptor("Monoid", map[string]traitkit.Op{
		"empty": func(rec traitkit.Carrier, args ...any) (any, error) {
			calls++
			return nil, nil
		},
	})
	container := traitkit.MustDescriptor("Container", map[string]traitkit.Op{
		"size": constOp(0),
	}, traitkit.WithPreconditions(monoid))

	rec := &record{}
	rec.CapabilitySurface().Bind("empty", constOp("mine"))

	_, err := traitkit.Mixin(rec, container)
	require.NoError(t, err)

	result, err := traitkit.Invoke(rec, "empty")
	require.NoError(t, err)
	assert.Equal(t, "mine", result)
	assert.Zero(t, calls)
}

func TestMixin_InvalidArguments(t *testing.T) {
	_, container := monoidContainer(t)

	t.Run("no descriptors", func(t *testing.T) {
		_, err := traitkit.Mixin(&record{})
		require.Error(t, err)
		assert.ErrorIs(t, err, traitkit.ErrInvalidArgument)
	})

	t.Run("nil descriptor", func(t *testing.T) {
		_, err := traitkit.Mixin(&record{}, container, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, traitkit.ErrInvalidArgument)
	})

	t.Run("nil record", func(t *testing.T) {
		_, err := traitkit.Mixin(nil, container)
		require.Error(t, err)
		assert.ErrorIs(t, err, traitkit.ErrInvalidArgument)
	})

	t.Run("nothing bound on failure", func(t *testing.T) {
		rec := &record{}
		_, err := traitkit.Mixin(rec, container, nil)
		require.Error(t, err)
		assert.Equal(t, 0, rec.CapabilitySurface().Len())
	})
}

func TestNewDescriptor_Validation(t *testing.T) {
	tests := []struct {
		name    string
		desc    string
		ops     map[string]traitkit.Op
		wantErr bool
	}{
		{"valid", "Foldable", map[string]traitkit.Op{"fold": nil}, false},
		{"empty name", "", map[string]traitkit.Op{"fold": nil}, true},
		{"blank name", "   ", map[string]traitkit.Op{"fold": nil}, true},
		{"nil operations", "Foldable", nil, true},
		{"empty operation name", "Foldable", map[string]traitkit.Op{"": nil}, true},
		{"zero operations", "Marker", map[string]traitkit.Op{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := traitkit.NewDescriptor(tt.desc, tt.ops)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, traitkit.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.desc, d.Name())
		})
	}
}

func TestDescriptor_Immutable(t *testing.T) {
	ops := map[string]traitkit.Op{"fold": constOp("original")}
	d := traitkit.MustDescriptor("Foldable", ops)

	// Mutating the source map after construction changes nothing.
	ops["fold"] = constOp("mutated")
	ops["extra"] = constOp(nil)

	assert.Equal(t, []string{"fold"}, d.OperationNames())
	impl, ok := d.Default("fold")
	require.True(t, ok)
	result, err := impl(&record{})
	require.NoError(t, err)
	assert.Equal(t, "original", result)
}

func TestResolver_Logging(t *testing.T) {
	_, container := monoidContainer(t)
	r := traitkit.NewResolver(traitkit.WithLogger(zap.NewNop()))

	rec := &record{}
	_, err := r.Mixin(rec, container)
	require.NoError(t, err)
	assert.True(t, traitkit.Satisfies(rec, container))
}
