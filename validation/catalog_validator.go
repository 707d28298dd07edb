// Package validation validates catalog documents: structural validation
// against a generated JSON Schema, format version compatibility, and
// semantic checks on the declared precondition graph.
package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/invopop/jsonschema"
	santhosh "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/traitkit-dev/traitkit/funcs"
	"github.com/traitkit-dev/traitkit/parser"
)

// DefaultFormatConstraint accepts any 1.x document format version.
const DefaultFormatConstraint = "^1.0.0"

// DocumentValidator implements CatalogValidator. The document schema is
// generated from the parser.Document struct at construction time.
type DocumentValidator struct {
	schema     *santhosh.Schema
	constraint *semver.Constraints
	known      []string
}

// ValidatorOption configures a DocumentValidator.
type ValidatorOption func(*validatorConfig)

type validatorConfig struct {
	formatConstraint string
	known            []string
}

// WithFormatConstraint sets the semver constraint accepted for the document
// format version.
func WithFormatConstraint(constraint string) ValidatorOption {
	return func(c *validatorConfig) {
		c.formatConstraint = constraint
	}
}

// WithKnownCapabilities names capabilities that precondition references may
// resolve to outside the document, typically an existing catalog's names.
func WithKnownCapabilities(names ...string) ValidatorOption {
	return func(c *validatorConfig) {
		c.known = append(c.known, names...)
	}
}

// NewDocumentValidator creates a validator.
func NewDocumentValidator(opts ...ValidatorOption) (*DocumentValidator, error) {
	cfg := validatorConfig{
		formatConstraint: DefaultFormatConstraint,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	constraint, err := semver.NewConstraint(cfg.formatConstraint)
	if err != nil {
		return nil, fmt.Errorf("invalid format constraint: %w", err)
	}

	reflector := new(jsonschema.Reflector)
	reflector.ExpandedStruct = true
	generated, err := json.Marshal(reflector.Reflect(&parser.Document{}))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document schema: %w", err)
	}

	compiler := santhosh.NewCompiler()
	if err := compiler.AddResource("catalog.schema.json", strings.NewReader(string(generated))); err != nil {
		return nil, fmt.Errorf("failed to add document schema: %w", err)
	}
	schema, err := compiler.Compile("catalog.schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile document schema: %w", err)
	}

	return &DocumentValidator{
		schema:     schema,
		constraint: constraint,
		known:      cfg.known,
	}, nil
}

// ValidateBytes checks raw document bytes against the generated schema.
// YAML input is normalized to JSON-compatible values first; JSON input is a
// YAML subset and needs no special case.
func (v *DocumentValidator) ValidateBytes(data []byte) (*ValidationResult, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	res := &ValidationResult{Valid: true}
	if err := v.schema.Validate(normalize(raw)); err != nil {
		res.Valid = false
		res.Errors = append(res.Errors, err.Error())
	}
	return res, nil
}

// Validate runs the semantic checks on a parsed document.
func (v *DocumentValidator) Validate(doc *parser.Document) (*ValidationResult, error) {
	if doc == nil {
		return nil, fmt.Errorf("document must not be nil")
	}

	res := &ValidationResult{Valid: true}
	report := func(format string, args ...any) {
		res.Valid = false
		res.Errors = append(res.Errors, fmt.Sprintf(format, args...))
	}

	version, err := semver.NewVersion(doc.Version)
	if err != nil {
		report("invalid format version %q", doc.Version)
	} else if !v.constraint.Check(version) {
		report("unsupported format version %s (want %s)", doc.Version, v.constraint)
	}

	declared := funcs.Map(doc.Descriptors, func(d parser.DescriptorDecl) string { return d.Name })
	seen := make(map[string]bool, len(declared))
	for _, name := range declared {
		if seen[name] {
			report("duplicate descriptor: %s", name)
		}
		seen[name] = true
	}

	for _, decl := range doc.Descriptors {
		if len(decl.Operations) == 0 {
			report("descriptor %s declares no operations", decl.Name)
		}
		for _, ref := range decl.Preconditions {
			if !seen[ref] && !funcs.Contains(v.known, ref) {
				report("descriptor %s references unknown precondition %s", decl.Name, ref)
			}
		}
	}

	if chain := findCycle(doc); chain != nil {
		report("precondition cycle: %s", strings.Join(chain, " -> "))
	}

	return res, nil
}

// findCycle runs a depth-first search over the declared precondition graph
// and returns the first cycle found, or nil.
func findCycle(doc *parser.Document) []string {
	preconditions := make(map[string][]string, len(doc.Descriptors))
	for _, decl := range doc.Descriptors {
		preconditions[decl.Name] = decl.Preconditions
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(preconditions))

	var walk func(name string, trail []string) []string
	walk = func(name string, trail []string) []string {
		switch state[name] {
		case visiting:
			return append(append([]string{}, trail...), name)
		case done:
			return nil
		}
		state[name] = visiting
		trail = append(trail, name)
		for _, ref := range preconditions[name] {
			if _, declared := preconditions[ref]; !declared {
				continue
			}
			if chain := walk(ref, trail); chain != nil {
				return chain
			}
		}
		state[name] = done
		return nil
	}

	for _, decl := range doc.Descriptors {
		if chain := walk(decl.Name, nil); chain != nil {
			return chain
		}
	}
	return nil
}

// normalize converts YAML-decoded values into JSON-compatible ones
// (string-keyed maps all the way down).
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprintf("%v", k)] = normalize(val)
		}
		return out
	case []any:
		return funcs.Map(t, normalize)
	case int:
		return float64(t)
	default:
		return v
	}
}
