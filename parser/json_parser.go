package parser

import (
	"bytes"
	"encoding/json"
)

// JSONCatalogParser implements CatalogParser for JSON.
type JSONCatalogParser struct{}

// NewJSONCatalogParser creates a new JSONCatalogParser.
func NewJSONCatalogParser() CatalogParser {
	return &JSONCatalogParser{}
}

// Parse unmarshals JSON bytes into a Document struct. Unknown fields are
// rejected.
func (p *JSONCatalogParser) Parse(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
