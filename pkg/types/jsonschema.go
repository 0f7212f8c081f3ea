// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

// DefaultDialect is the JSON Schema dialect written into $schema.
const DefaultDialect = "https://json-schema.org/draft/2020-12/schema"

// DefaultIDBase prefixes the $id of generated schema documents.
const DefaultIDBase = "https://example.com/"

// JSONSchema is a standalone, object-typed JSON Schema document describing
// one record.
type JSONSchema struct {
	// ID is the document URI ($id), e.g. https://example.com/Pet.schema.json
	ID string `json:"$id,omitempty" yaml:"$id,omitempty"`

	// Schema is the dialect URI ($schema)
	Schema string `json:"$schema,omitempty" yaml:"$schema,omitempty"`

	// Title is the record name
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Description is the record documentation
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Type is always "object" for generated documents
	Type string `json:"type" yaml:"type"`

	// Properties holds one schema per field, in declaration order
	Properties Properties `json:"properties,omitempty" yaml:"properties,omitempty"`

	// Required lists the fields without a default
	Required []string `json:"required,omitempty" yaml:"required,omitempty"`
}

// IsRequired reports whether name is listed in Required.
func (s *JSONSchema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}
