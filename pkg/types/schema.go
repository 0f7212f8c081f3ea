// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import "strings"

// Schema represents an OpenAPI schema object.
// It follows the JSON Schema Specification with OpenAPI extensions.
type Schema struct {
	// Ref is a reference to another schema ($ref)
	Ref string `json:"$ref,omitempty" yaml:"$ref,omitempty"`

	// Type is the data type (string, number, integer, boolean, array, object)
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Format is the data format (date-time, email, uuid, etc.)
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// Title is a short title for the schema
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Description is a detailed description of the schema
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Default is the default value
	Default interface{} `json:"default,omitempty" yaml:"default,omitempty"`

	// Enum is a list of allowed values
	Enum []interface{} `json:"enum,omitempty" yaml:"enum,omitempty"`

	// Nullable indicates if the value can be null
	Nullable bool `json:"nullable,omitempty" yaml:"nullable,omitempty"`

	// Deprecated indicates the schema is deprecated
	Deprecated bool `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`

	// --- Array ---

	// Items is the schema for array items
	Items *Schema `json:"items,omitempty" yaml:"items,omitempty"`

	// --- Object ---

	// Properties maps property names to their schemas, in declaration order
	Properties Properties `json:"properties,omitempty" yaml:"properties,omitempty"`

	// Required is a list of required property names
	Required []string `json:"required,omitempty" yaml:"required,omitempty"`

	// AdditionalProperties defines the schema for additional properties
	AdditionalProperties *Schema `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	// --- Composition ---

	// AllOf is a list of schemas that must all be valid
	AllOf []*Schema `json:"allOf,omitempty" yaml:"allOf,omitempty"`

	// OneOf is a list of schemas where exactly one must be valid
	OneOf []*Schema `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`

	// AnyOf is a list of schemas where at least one must be valid
	AnyOf []*Schema `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`
}

const componentPrefix = "#/components/schemas/"

// ComponentRef creates a reference to a schema in components.
func ComponentRef(name string) *Schema {
	return &Schema{Ref: componentPrefix + name}
}

// RefName returns the component name a "#/components/schemas/X" reference
// points to, or "" for other references.
func RefName(ref string) string {
	if !strings.HasPrefix(ref, componentPrefix) {
		return ""
	}
	return ref[len(componentPrefix):]
}

// IsRequired reports whether name is listed in Required.
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}
