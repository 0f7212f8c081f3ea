// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package convert runs the pipelines between Kotlin sources, JSON Schema
// documents and OpenAPI fragments. It reads and writes no files.
package convert

import (
	"github.com/api2spec/ktbridge/internal/ast"
	"github.com/api2spec/ktbridge/internal/ir"
	"github.com/api2spec/ktbridge/internal/openapi"
	"github.com/api2spec/ktbridge/internal/parser"
	"github.com/api2spec/ktbridge/internal/schema"
	"github.com/api2spec/ktbridge/pkg/types"
)

// Options configure the forward pipelines.
type Options struct {
	// Schema sets $id and $schema of generated documents.
	Schema schema.Options
	// MaxDepth bounds lexer and parser nesting; zero uses the default.
	MaxDepth int
}

// Parse lexes and parses one source text.
func Parse(src string, opts Options) (*ast.Source, error) {
	return parser.ParseString(src, parser.WithMaxDepth(opts.MaxDepth))
}

// ModelToSchema converts the first class declaration of src into a JSON
// Schema document.
func ModelToSchema(src string, opts Options) (*types.JSONSchema, error) {
	file, err := Parse(src, opts)
	if err != nil {
		return nil, err
	}
	rec, doc, err := ir.ExtractRecord(file)
	if err != nil {
		return nil, err
	}
	return schema.FromRecord(rec, doc, opts.Schema), nil
}

// ModelToComponents converts every class and interface of src into
// components.schemas entries keyed by name.
func ModelToComponents(src string, opts Options) (map[string]*types.Schema, error) {
	file, err := Parse(src, opts)
	if err != nil {
		return nil, err
	}
	models, err := ir.ExtractRecords(file)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*types.Schema, len(models))
	for _, m := range models {
		out[m.Record.Name] = schema.Component(m.Record, m.Doc)
	}
	return out, nil
}

// RoutesToPaths converts the first route block of src into a paths object.
func RoutesToPaths(src string, opts Options) (types.Paths, error) {
	file, err := Parse(src, opts)
	if err != nil {
		return nil, err
	}
	table, err := ir.ExtractRoutes(file)
	if err != nil {
		return nil, err
	}
	return openapi.FromRoutes(table), nil
}
