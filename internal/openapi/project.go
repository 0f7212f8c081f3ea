// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"sort"
	"strings"

	"github.com/api2spec/ktbridge/internal/schema"
	"github.com/api2spec/ktbridge/pkg/types"
)

// Projection is the part of an OpenAPI document reverse generation works
// from: object-typed component schemas and the paths object.
type Projection struct {
	// Schemas holds the object-typed component schemas by name.
	Schemas map[string]*types.JSONSchema

	// Names lists Schemas in document order.
	Names []string

	// Excluded names the component schemas skipped because their type is
	// not object.
	Excluded []string

	Paths types.Paths
}

// Project shape-checks an already-decoded OpenAPI document and projects it.
func Project(doc map[string]any) (*Projection, error) {
	n, err := schema.NodeOf(doc)
	if err != nil {
		return nil, err
	}
	return ProjectNode(n)
}

// ParseProjection projects an OpenAPI document given as YAML or JSON text,
// keeping the document order of component schemas and their properties.
func ParseProjection(data []byte) (*Projection, error) {
	n, err := schema.ParseNode(data)
	if err != nil {
		return nil, err
	}
	return ProjectNode(n)
}

// ProjectNode projects a decoded OpenAPI document. Missing components or
// paths give empty results.
func ProjectNode(n schema.Node) (*Projection, error) {
	p := &Projection{
		Schemas: make(map[string]*types.JSONSchema),
		Paths:   make(types.Paths),
	}

	components, err := n.Get("components")
	if err != nil {
		return nil, err
	}
	if !components.Missing() {
		schemas, err := components.Get("schemas")
		if err != nil {
			return nil, err
		}
		if !schemas.Missing() {
			if err := p.addSchemas(schemas); err != nil {
				return nil, err
			}
		}
	}

	paths, err := n.Get("paths")
	if err != nil {
		return nil, err
	}
	if !paths.Missing() {
		if p.Paths, err = DecodePathsNode(paths); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Projection) addSchemas(n schema.Node) error {
	members, err := n.Members()
	if err != nil {
		return err
	}
	for _, m := range members {
		typ, err := m.Value.Get("type")
		if err != nil {
			return err
		}
		if t, _ := typ.Text(); t != "object" {
			p.Excluded = append(p.Excluded, m.Key)
			continue
		}

		doc, err := schema.DecodeDocument(m.Value)
		if err != nil {
			return err
		}
		if doc.Title == "" {
			doc.Title = m.Key
		}
		p.Schemas[m.Key] = doc
		p.Names = append(p.Names, m.Key)
	}
	return nil
}

// Component looks up a projected schema by name.
func (p *Projection) Component(name string) (*types.JSONSchema, bool) {
	s, ok := p.Schemas[name]
	return s, ok
}

// OperationSchemas maps each operationId to the names of the schemas its
// successful (2xx) responses reference, directly or as array items. Only
// names present in schemas are kept; operations without an operationId use
// the synthesized one.
func OperationSchemas(paths types.Paths, schemas map[string]*types.JSONSchema) map[string][]string {
	out := make(map[string][]string)
	for _, path := range SortedPaths(paths) {
		item := paths[path]
		for _, mo := range item.Operations() {
			id := mo.Operation.OperationID
			if id == "" {
				id = OperationID(mo.Method, path)
			}

			var names []string
			for _, code := range sortedCodes(mo.Operation.Responses) {
				if !strings.HasPrefix(code, "2") {
					continue
				}
				for _, ct := range sortedKeys(mo.Operation.Responses[code].Content) {
					s := mo.Operation.Responses[code].Content[ct].Schema
					if s == nil {
						continue
					}
					name := types.RefName(schemaRefOf(s))
					if _, ok := schemas[name]; !ok || contains(names, name) {
						continue
					}
					names = append(names, name)
				}
			}
			if len(names) > 0 {
				out[id] = names
			}
		}
	}
	return out
}

// GroupBySchema inverts OperationSchemas: each schema name maps to the
// sorted operationIds that return it.
func GroupBySchema(opSchemas map[string][]string) map[string][]string {
	out := make(map[string][]string)
	for id, names := range opSchemas {
		for _, name := range names {
			out[name] = append(out[name], id)
		}
	}
	for name := range out {
		sort.Strings(out[name])
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
