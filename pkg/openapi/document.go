package openapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Document wraps a raw OpenAPI payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

type bytesSource struct{}

func (bytesSource) Location() string { return "inline" }
func (bytesSource) Kind() SourceKind { return SourceKindFile }

// NewDocument constructs a Document. A nil source marks an inline document.
func NewDocument(src Source, raw []byte) (Document, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}, errors.New("openapi: raw document is empty")
	}
	if src == nil {
		src = bytesSource{}
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Detect reports whether raw looks like an OpenAPI or Swagger document.
func Detect(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] == '{' {
		var payload map[string]any
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			_, openapi := payload["openapi"]
			_, swagger := payload["swagger"]
			return openapi || swagger
		}
	}
	lower := strings.ToLower(string(trimmed))
	return strings.Contains(lower, "openapi:") || strings.Contains(lower, "swagger:")
}

// Operation is the subset of an OpenAPI operation needed to build a payload.
type Operation struct {
	ID          string `json:"id"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Summary     string `json:"summary,omitempty"`
	RequestBody Schema `json:"-"`
}

// Schema is a request body schema tree with the constraints that shape
// synthesized values.
type Schema struct {
	Ref        string
	Type       string
	Format     string
	Required   []string
	Properties map[string]Schema
	Items      *Schema
	Enum       []any
	Default    any
	Example    any
	MinLength  *int
	MaxLength  *int
	Minimum    *float64
	Maximum    *float64
	MinItems   int
}

// IsRequired reports whether name is listed as required.
func (s Schema) IsRequired(name string) bool {
	for _, required := range s.Required {
		if required == name {
			return true
		}
	}
	return false
}
