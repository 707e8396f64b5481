package parsers

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLParser parses family documents from YAML format.
type YAMLParser struct{}

// Parse reads a YAML document from the reader.
func (p *YAMLParser) Parse(r io.Reader) (*RawDocument, error) {
	var doc RawDocument

	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	doc.normalize()
	return &doc, nil
}
