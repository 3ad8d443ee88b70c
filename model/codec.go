package model

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// documentHeader precedes every written document. The standalone
// pseudo-attribute is pinned to "no" to match the framework's other tools.
const documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>` + "\n"

// Marshal renders a document root as canonical XML: fixed declaration,
// two-space indentation, attributes and children in declaration order and a
// trailing newline. Output bytes are deterministic for a given document.
func Marshal(doc any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(documentHeader)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Unmarshal parses a document into a fresh T. Child elements may appear in
// any order; unknown elements and attributes are ignored.
func Unmarshal[T any](data []byte) (*T, error) {
	doc := new(T)
	if err := xml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}
