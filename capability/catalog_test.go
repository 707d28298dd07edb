package capability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	traitkit "github.com/traitkit-dev/traitkit"
	"github.com/traitkit-dev/traitkit/capability"
	"github.com/traitkit-dev/traitkit/parser"
)

func TestCatalog_RegisterGet(t *testing.T) {
	c, err := capability.NewCatalog()
	require.NoError(t, err)

	foldable := traitkit.MustDescriptor("Foldable", map[string]traitkit.Op{"fold": nil})
	require.NoError(t, c.Register(foldable))

	got, ok := c.Get("Foldable")
	require.True(t, ok)
	assert.Same(t, foldable, got)

	_, ok = c.Get("Unknown")
	assert.False(t, ok)

	t.Run("duplicate rejected", func(t *testing.T) {
		err := c.Register(traitkit.MustDescriptor("Foldable", map[string]traitkit.Op{"fold": nil}))
		require.Error(t, err)
	})

	t.Run("nil rejected", func(t *testing.T) {
		err := c.Register(nil)
		assert.ErrorIs(t, err, traitkit.ErrInvalidArgument)
	})

	t.Run("invalid name rejected", func(t *testing.T) {
		err := c.Register(traitkit.MustDescriptor("not a name", map[string]traitkit.Op{"op": nil}))
		assert.ErrorIs(t, err, traitkit.ErrInvalidArgument)
	})
}

func TestCatalog_WithDescriptors(t *testing.T) {
	a := traitkit.MustDescriptor("Alpha", map[string]traitkit.Op{"a": nil})
	b := traitkit.MustDescriptor("Beta", map[string]traitkit.Op{"b": nil})

	c, err := capability.NewCatalog(capability.WithDescriptors(a, b))
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Beta"}, c.Names())
}

func TestCatalog_Match(t *testing.T) {
	c := capability.Builtin()

	tests := []struct {
		pattern string
		want    []string
	}{
		{"*Foldable", []string{"Foldable", "TwoWayFoldable"}},
		{"C*", []string{"Comparable", "Container", "Createable"}},
		{"Monoid", []string{"Monoid"}},
		{"Nope*", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := c.Match(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := c.Match("[")
		require.Error(t, err)
		assert.ErrorIs(t, err, traitkit.ErrInvalidArgument)
	})
}

func TestCatalog_SatisfiedBy(t *testing.T) {
	c := capability.Builtin()

	rec := &bag{}
	assert.Empty(t, c.SatisfiedBy(rec), "bare record satisfies nothing with required ops")

	rec.CapabilitySurface().Bind("fold", func(r traitkit.Carrier, args ...any) (any, error) {
		return nil, nil
	})
	assert.Equal(t, []string{capability.Foldable}, c.SatisfiedBy(rec))
}

func TestCatalog_Apply(t *testing.T) {
	doc := &parser.Document{
		Version: "1.0.0",
		Descriptors: []parser.DescriptorDecl{
			{Name: "Hashable", Operations: []string{"hash"}},
			{Name: "Cacheable", Operations: []string{"cachekey"}, Preconditions: []string{"Hashable", "Serializable"}},
		},
	}

	c := capability.Builtin()
	require.NoError(t, c.Apply(doc))

	hashable, ok := c.Get("Hashable")
	require.True(t, ok)
	assert.Equal(t, []string{"hash"}, hashable.OperationNames())

	cacheable, ok := c.Get("Cacheable")
	require.True(t, ok)

	var preconditionNames []string
	for _, p := range cacheable.Preconditions() {
		preconditionNames = append(preconditionNames, p.Name())
	}
	assert.Equal(t, []string{"Hashable", "Serializable"}, preconditionNames)

	// Document operations are placeholders: mixin installs nothing, but the
	// precondition chain still resolves.
	rec := &bag{}
	_, err := traitkit.Mixin(rec, cacheable)
	require.NoError(t, err)
	assert.False(t, rec.CapabilitySurface().Bound("cachekey"))
	assert.True(t, rec.CapabilitySurface().Bound("tostring"), "Serializable default installed transitively")
}

func TestCatalog_ApplyRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  *parser.Document
	}{
		{
			name: "unknown precondition",
			doc: &parser.Document{
				Version: "1.0.0",
				Descriptors: []parser.DescriptorDecl{
					{Name: "Hashable", Operations: []string{"hash"}, Preconditions: []string{"Missing"}},
				},
			},
		},
		{
			name: "cycle",
			doc: &parser.Document{
				Version: "1.0.0",
				Descriptors: []parser.DescriptorDecl{
					{Name: "Chicken", Operations: []string{"cluck"}, Preconditions: []string{"Egg"}},
					{Name: "Egg", Operations: []string{"hatch"}, Preconditions: []string{"Chicken"}},
				},
			},
		},
		{
			name: "duplicate declaration",
			doc: &parser.Document{
				Version: "1.0.0",
				Descriptors: []parser.DescriptorDecl{
					{Name: "Hashable", Operations: []string{"hash"}},
					{Name: "Hashable", Operations: []string{"hash"}},
				},
			},
		},
		{
			name: "shadows existing capability",
			doc: &parser.Document{
				Version: "1.0.0",
				Descriptors: []parser.DescriptorDecl{
					{Name: "Monoid", Operations: []string{"empty"}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := capability.Builtin()
			before := c.Names()
			err := c.Apply(tt.doc)
			require.Error(t, err)
			assert.Equal(t, before, c.Names(), "nothing registered on failure")
		})
	}
}

func TestCatalog_ApplyCycleError(t *testing.T) {
	doc := &parser.Document{
		Version: "1.0.0",
		Descriptors: []parser.DescriptorDecl{
			{Name: "Chicken", Operations: []string{"cluck"}, Preconditions: []string{"Egg"}},
			{Name: "Egg", Operations: []string{"hatch"}, Preconditions: []string{"Chicken"}},
		},
	}

	c, err := capability.NewCatalog()
	require.NoError(t, err)
	err = c.Apply(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, traitkit.ErrPreconditionCycle)
}
