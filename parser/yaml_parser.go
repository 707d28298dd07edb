// Package parser provides functionality for parsing catalog definitions.
package parser

import (
	"github.com/goccy/go-yaml"
)

// YamlCatalogParser implements CatalogParser for YAML.
type YamlCatalogParser struct{}

// NewYamlCatalogParser creates a new YamlCatalogParser.
func NewYamlCatalogParser() CatalogParser {
	return &YamlCatalogParser{}
}

// Parse unmarshals YAML bytes into a Document struct. Unknown fields are
// rejected.
func (p *YamlCatalogParser) Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.Strict()); err != nil {
		return nil, err
	}
	return &doc, nil
}
