package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses family documents from JSON format.
type JSONParser struct{}

// Parse reads a JSON document from the reader.
func (p *JSONParser) Parse(r io.Reader) (*RawDocument, error) {
	var doc RawDocument

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	doc.normalize()
	return &doc, nil
}
