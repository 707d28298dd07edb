package parser

// CatalogParser parses raw catalog definition bytes into a Document.
type CatalogParser interface {
	// Parse unmarshals catalog bytes into a Document struct.
	Parse(data []byte) (*Document, error)
}
