// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"github.com/api2spec/ktbridge/internal/ir"
	"github.com/api2spec/ktbridge/internal/kdoc"
	"github.com/api2spec/ktbridge/pkg/types"
)

// ToComponent converts a standalone document into a components.schemas
// entry. The document URIs are dropped.
func ToComponent(doc *types.JSONSchema) *types.Schema {
	return &types.Schema{
		Type:        "object",
		Title:       doc.Title,
		Description: doc.Description,
		Properties:  doc.Properties,
		Required:    doc.Required,
	}
}

// FromComponent converts the components.schemas entry called name into a
// standalone document. Non-object schemas are rejected with a ShapeError.
func FromComponent(name string, s *types.Schema, opts Options) (*types.JSONSchema, error) {
	if s.Type != "object" {
		got := s.Type
		if got == "" {
			got = "no type"
		}
		return nil, &ShapeError{
			Pointer:  "/components/schemas/" + name + "/type",
			Expected: `"object"`,
			Got:      got,
		}
	}

	opts = opts.withDefaults()
	title := s.Title
	if title == "" {
		title = name
	}
	return &types.JSONSchema{
		ID:          opts.DocumentID(name),
		Schema:      opts.Dialect,
		Title:       title,
		Description: s.Description,
		Type:        "object",
		Properties:  s.Properties,
		Required:    s.Required,
	}, nil
}

// Component builds the components.schemas entry of a record.
func Component(rec ir.Record, doc kdoc.Fields) *types.Schema {
	return ToComponent(FromRecord(rec, doc, Options{}))
}
