// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package schema translates records to standalone JSON Schema documents and
// OpenAPI component schemas, and back.
//
// The translation keeps the fixed scalar table of package ir. Map key types
// are not encoded (keys are always strings), and a nullable source type is
// written as its non-null kind.
package schema

import (
	"strconv"
	"strings"

	"github.com/api2spec/ktbridge/internal/ir"
	"github.com/api2spec/ktbridge/internal/kdoc"
	"github.com/api2spec/ktbridge/pkg/types"
)

// Options controls document-level metadata of generated schemas.
type Options struct {
	// IDBase prefixes $id; "<IDBase><Name>.schema.json".
	IDBase string
	// Dialect is written into $schema.
	Dialect string
}

func (o Options) withDefaults() Options {
	if o.IDBase == "" {
		o.IDBase = types.DefaultIDBase
	}
	if !strings.HasSuffix(o.IDBase, "/") {
		o.IDBase += "/"
	}
	if o.Dialect == "" {
		o.Dialect = types.DefaultDialect
	}
	return o
}

// DocumentID returns the $id of the document describing name.
func (o Options) DocumentID(name string) string {
	return o.withDefaults().IDBase + name + ".schema.json"
}

// FromRecord builds the JSON Schema document of rec. A field is required iff
// it is marked required and has no default. Property descriptions come from the doc parameters,
// looked up by source name; the property key is the field alias when set.
func FromRecord(rec ir.Record, doc kdoc.Fields, opts Options) *types.JSONSchema {
	opts = opts.withDefaults()

	out := &types.JSONSchema{
		ID:          opts.DocumentID(rec.Name),
		Schema:      opts.Dialect,
		Title:       rec.Name,
		Description: doc.Description,
		Type:        "object",
	}

	for _, f := range rec.Fields {
		prop := FieldSchema(f.Type)
		if p, ok := doc.Param(f.Name); ok {
			prop.Description = p.Description
		}
		if f.Default != nil {
			prop.Default = DefaultValue(*f.Default)
		} else if f.Required {
			out.Required = append(out.Required, f.Key())
		}
		out.Properties.Set(f.Key(), prop)
	}
	return out
}

// FieldSchema returns the schema fragment of a field type. Any has no type.
func FieldSchema(t ir.FieldType) *types.Schema {
	switch t.Container {
	case ir.List:
		return &types.Schema{Type: "array", Items: scalarSchema(t.Of)}
	case ir.Map:
		return &types.Schema{Type: "object", AdditionalProperties: scalarSchema(t.Of)}
	default:
		return scalarSchema(t.Of)
	}
}

func scalarSchema(k ir.ScalarKind) *types.Schema {
	if k == ir.Any || k == "" {
		return &types.Schema{}
	}
	return &types.Schema{Type: string(k)}
}

// TypeOf is the inverse of FieldSchema. Objects without
// additionalProperties and references are Any.
func TypeOf(s *types.Schema) ir.FieldType {
	if s == nil {
		return ir.ScalarType(ir.Any)
	}
	switch s.Type {
	case "array":
		return ir.ListOf(kindOf(s.Items))
	case "object":
		if s.AdditionalProperties != nil {
			return ir.MapOf(kindOf(s.AdditionalProperties))
		}
		return ir.ScalarType(ir.Any)
	default:
		return ir.ScalarType(kindOf(s))
	}
}

func kindOf(s *types.Schema) ir.ScalarKind {
	if s == nil {
		return ir.Any
	}
	return ir.ParseKind(s.Type)
}

// ToRecord is the inverse of FromRecord. A property is required iff it is
// listed in required; an optional property keeps the schema default, if
// any. Aliases are not recoverable: the property key
// becomes the field name.
func ToRecord(s *types.JSONSchema) (ir.Record, kdoc.Fields) {
	rec := ir.Record{Name: s.Title}
	doc := kdoc.Fields{Description: s.Description}

	for _, prop := range s.Properties {
		f := ir.Field{
			Name:     prop.Name,
			Type:     TypeOf(prop.Schema),
			Required: s.IsRequired(prop.Name),
		}
		if !f.Required && prop.Schema != nil && prop.Schema.Default != nil {
			text := SourceLiteral(prop.Schema.Default, f.Type)
			f.Default = &text
		}
		rec.Fields = append(rec.Fields, f)

		if prop.Schema != nil && prop.Schema.Description != "" {
			doc.Parameters = append(doc.Parameters, kdoc.Param{
				Name:        prop.Name,
				Description: prop.Schema.Description,
			})
		}
	}
	return rec, doc
}

// DefaultValue converts a default expression as written in source into a
// JSON value. Literals become strings, numbers and booleans. Null and
// non-literal expressions such as listOf() become nil and are omitted.
func DefaultValue(text string) any {
	text = strings.TrimSpace(text)
	switch text {
	case "null", "":
		return nil
	case "true":
		return true
	case "false":
		return false
	}

	if s, ok := unquote(text); ok {
		return s
	}
	if !numeric(text) {
		return nil
	}
	if i, err := strconv.ParseInt(strings.TrimRight(text, "L"), 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(strings.TrimRight(text, "fF"), 64); err == nil {
		return f
	}
	return nil
}

func numeric(text string) bool {
	text = strings.TrimPrefix(text, "-")
	return text != "" && text[0] >= '0' && text[0] <= '9'
}

func unquote(text string) (string, bool) {
	if strings.HasPrefix(text, `"""`) && strings.HasSuffix(text, `"""`) && len(text) >= 6 {
		return text[3 : len(text)-3], true
	}
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return "", false
	}
	if s, err := strconv.Unquote(text); err == nil {
		return s, true
	}
	return text[1 : len(text)-1], true
}

// SourceLiteral renders a JSON default as a source expression for a field of
// type t.
func SourceLiteral(v any, t ir.FieldType) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return numberLiteral(float64(v), t)
	case int64:
		return numberLiteral(float64(v), t)
	case uint64:
		return numberLiteral(float64(v), t)
	case float64:
		return numberLiteral(v, t)
	default:
		return "null"
	}
}

func numberLiteral(f float64, t ir.FieldType) string {
	if f == float64(int64(f)) {
		if t.Container == ir.Scalar && t.Of == ir.Number {
			return strconv.FormatFloat(f, 'f', 1, 64)
		}
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
