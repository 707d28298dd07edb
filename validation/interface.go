package validation

import "github.com/traitkit-dev/traitkit/parser"

// CatalogValidator validates catalog documents before they are applied.
type CatalogValidator interface {
	// Validate checks a parsed document: format version, duplicate names,
	// precondition references, and precondition acyclicity.
	Validate(doc *parser.Document) (*ValidationResult, error)

	// ValidateBytes checks raw document bytes (JSON or YAML) against the
	// document schema before parsing.
	ValidateBytes(data []byte) (*ValidationResult, error)
}

// ValidationResult describes the outcome of a validation.
type ValidationResult struct {
	Errors []string
	Valid  bool
}
