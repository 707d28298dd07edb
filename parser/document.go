package parser

// Document is a declarative catalog definition. It declares descriptor
// contracts only: operation names are placeholders with no default
// implementations, and precondition references are resolved by name when
// the document is applied to a catalog.
type Document struct {
	// Version is the document format version (semver).
	Version string `json:"version" yaml:"version"`

	// Descriptors lists the declared capability descriptors.
	Descriptors []DescriptorDecl `json:"descriptors" yaml:"descriptors"`
}

// DescriptorDecl declares a single capability descriptor.
type DescriptorDecl struct {
	// Name is the capability name.
	Name string `json:"name" yaml:"name"`

	// Operations lists the required operation names.
	Operations []string `json:"operations" yaml:"operations"`

	// Preconditions names the capabilities that must be satisfied before
	// this one is applied, in resolution order.
	Preconditions []string `json:"preconditions,omitempty" yaml:"preconditions,omitempty"`
}
