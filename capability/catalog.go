// Package capability provides the descriptor catalog: the named, immutable
// capability templates that the mixin resolver composes onto records, plus
// the builtin descriptor set.
package capability

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	traitkit "github.com/traitkit-dev/traitkit"
	"github.com/traitkit-dev/traitkit/funcs"
	"github.com/traitkit-dev/traitkit/parser"
)

// Catalog is a concurrency-safe collection of capability descriptors keyed
// by name. Descriptors themselves are immutable; the catalog only guards its
// own index.
type Catalog struct {
	mu          sync.RWMutex
	descriptors map[string]*traitkit.Descriptor
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog) error

// WithDescriptors registers descriptors at construction time.
func WithDescriptors(descs ...*traitkit.Descriptor) CatalogOption {
	return func(c *Catalog) error {
		for _, d := range descs {
			if err := c.Register(d); err != nil {
				return err
			}
		}
		return nil
	}
}

// NewCatalog creates an empty catalog.
func NewCatalog(opts ...CatalogOption) (*Catalog, error) {
	c := &Catalog{
		descriptors: make(map[string]*traitkit.Descriptor),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Register adds a descriptor to the catalog. The descriptor's name must be a
// valid capability name and must not already be registered.
func (c *Catalog) Register(d *traitkit.Descriptor) error {
	if d == nil {
		return &traitkit.InvalidArgumentError{Reason: "descriptor must not be nil"}
	}
	if _, err := NewName(d.Name()); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if funcs.ContainsKey(c.descriptors, d.Name()) {
		return fmt.Errorf("capability already registered: %s", d.Name())
	}
	c.descriptors[d.Name()] = d
	return nil
}

// Get retrieves a descriptor by name.
func (c *Catalog) Get(name string) (*traitkit.Descriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.descriptors[name]
	return d, ok
}

// Names returns all registered capability names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := funcs.Keys(c.descriptors)
	sort.Strings(names)
	return names
}

// Match returns the registered capability names matching a glob pattern
// (e.g. "*Foldable"), in sorted order.
func (c *Catalog) Match(pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, &traitkit.InvalidArgumentError{Reason: fmt.Sprintf("invalid pattern: %s", pattern)}
	}
	matched := funcs.Filter(c.Names(), func(name string) bool {
		ok, _ := doublestar.Match(pattern, name)
		return ok
	})
	return matched, nil
}

// SatisfiedBy returns the names of all catalog descriptors the record
// already structurally satisfies, in sorted order.
func (c *Catalog) SatisfiedBy(rec traitkit.Carrier) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := funcs.Filter(funcs.Keys(c.descriptors), func(name string) bool {
		return traitkit.Satisfies(rec, c.descriptors[name])
	})
	sort.Strings(names)
	return names
}

// Apply registers the descriptors a catalog document declares. Document
// operations are placeholders: they declare the contract without defaults.
// Precondition references are resolved first against the document, then
// against descriptors already in the catalog. Cyclic or unknown references
// are rejected before anything is registered.
func (c *Catalog) Apply(doc *parser.Document) error {
	if doc == nil {
		return &traitkit.InvalidArgumentError{Reason: "document must not be nil"}
	}

	decls := make(map[string]parser.DescriptorDecl, len(doc.Descriptors))
	for _, decl := range doc.Descriptors {
		if funcs.ContainsKey(decls, decl.Name) {
			return &traitkit.InvalidArgumentError{Reason: fmt.Sprintf("duplicate descriptor: %s", decl.Name)}
		}
		decls[decl.Name] = decl
	}

	for name := range decls {
		if _, err := NewName(name); err != nil {
			return err
		}
		if _, exists := c.Get(name); exists {
			return fmt.Errorf("capability already registered: %s", name)
		}
	}

	built := make(map[string]*traitkit.Descriptor, len(decls))
	var build func(name string, trail []string) (*traitkit.Descriptor, error)
	build = func(name string, trail []string) (*traitkit.Descriptor, error) {
		if d, ok := built[name]; ok {
			return d, nil
		}
		if funcs.Contains(trail, name) {
			return nil, &traitkit.PreconditionCycleError{Chain: append(append([]string{}, trail...), name)}
		}
		decl, ok := decls[name]
		if !ok {
			if d, found := c.Get(name); found {
				return d, nil
			}
			return nil, &traitkit.InvalidArgumentError{Reason: fmt.Sprintf("unknown precondition: %s", name)}
		}

		trail = append(trail, name)
		preconditions := make([]*traitkit.Descriptor, 0, len(decl.Preconditions))
		for _, ref := range decl.Preconditions {
			p, err := build(ref, trail)
			if err != nil {
				return nil, err
			}
			preconditions = append(preconditions, p)
		}

		operations := make(map[string]traitkit.Op, len(decl.Operations))
		for _, op := range decl.Operations {
			operations[op] = nil
		}
		d, err := traitkit.NewDescriptor(decl.Name, operations, traitkit.WithPreconditions(preconditions...))
		if err != nil {
			return nil, err
		}
		built[name] = d
		return d, nil
	}

	for _, decl := range doc.Descriptors {
		if _, err := build(decl.Name, nil); err != nil {
			return err
		}
	}
	for _, decl := range doc.Descriptors {
		if err := c.Register(built[decl.Name]); err != nil {
			return err
		}
	}
	return nil
}
