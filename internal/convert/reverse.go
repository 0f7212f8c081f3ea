// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package convert

import (
	"sort"

	"github.com/api2spec/ktbridge/internal/ir"
	"github.com/api2spec/ktbridge/internal/kdoc"
	"github.com/api2spec/ktbridge/internal/openapi"
	"github.com/api2spec/ktbridge/internal/schema"
	"github.com/api2spec/ktbridge/internal/util"
)

// Group collects the operations returning one schema.
type Group struct {
	Schema     string   `json:"schema" yaml:"schema"`
	Repository string   `json:"repository" yaml:"repository"`
	Operations []string `json:"operations" yaml:"operations"`
}

// Reverse is everything reverse generation derives from an OpenAPI
// document.
type Reverse struct {
	Models []ir.Model `json:"models" yaml:"models"`
	// Excluded names component schemas that are not objects.
	Excluded []string      `json:"excluded,omitempty" yaml:"excluded,omitempty"`
	Routes   ir.RouteTable `json:"routes" yaml:"routes"`
	// Operations maps operationIds to the schemas their 2xx responses return.
	Operations map[string][]string `json:"operations" yaml:"operations"`
	// Groups lists Operations inverted, ordered by schema name.
	Groups []Group `json:"groups" yaml:"groups"`
}

// SchemaToModel converts a decoded JSON Schema document into a record.
func SchemaToModel(doc map[string]any) (ir.Record, kdoc.Fields, error) {
	js, err := schema.Decode(doc)
	if err != nil {
		return ir.Record{}, kdoc.Fields{}, err
	}
	rec, fields := normalize(schema.ToRecord(js))
	return rec, fields, nil
}

// ComponentsToModels converts the object-typed component schemas of a
// decoded OpenAPI document into records, in document order.
func ComponentsToModels(doc map[string]any) ([]ir.Model, error) {
	p, err := openapi.Project(doc)
	if err != nil {
		return nil, err
	}
	return modelsOf(p), nil
}

// PathsToRoutes converts a decoded paths object into a route table.
func PathsToRoutes(paths map[string]any) (ir.RouteTable, error) {
	decoded, err := openapi.DecodePaths(paths)
	if err != nil {
		return ir.RouteTable{}, err
	}
	return openapi.ToRoutes(decoded), nil
}

// DocumentToModels runs reverse generation over a decoded OpenAPI document.
func DocumentToModels(doc map[string]any) (*Reverse, error) {
	p, err := openapi.Project(doc)
	if err != nil {
		return nil, err
	}
	return FromProjection(p), nil
}

// FromProjection runs reverse generation over a projected document.
func FromProjection(p *openapi.Projection) *Reverse {
	ops := openapi.OperationSchemas(p.Paths, p.Schemas)
	return &Reverse{
		Models:     modelsOf(p),
		Excluded:   p.Excluded,
		Routes:     openapi.ToRoutes(p.Paths),
		Operations: ops,
		Groups:     groupsOf(openapi.GroupBySchema(ops)),
	}
}

func modelsOf(p *openapi.Projection) []ir.Model {
	names := p.Names
	if len(names) != len(p.Schemas) {
		names = make([]string, 0, len(p.Schemas))
		for name := range p.Schemas {
			names = append(names, name)
		}
		sort.Strings(names)
	}
	models := make([]ir.Model, 0, len(names))
	for _, name := range names {
		rec, doc := normalize(schema.ToRecord(p.Schemas[name]))
		models = append(models, ir.Model{Record: rec, Doc: doc})
	}
	return models
}

func groupsOf(bySchema map[string][]string) []Group {
	names := make([]string, 0, len(bySchema))
	for name := range bySchema {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		groups = append(groups, Group{
			Schema:     name,
			Repository: util.Pluralize(util.ToLowerCamelCase(util.TypeName(name))),
			Operations: bySchema[name],
		})
	}
	return groups
}

// normalize makes record and field names usable in source. A renamed field
// keeps its original key as the alias, and an optional field without a
// default is given "null".
func normalize(rec ir.Record, doc kdoc.Fields) (ir.Record, kdoc.Fields) {
	if !util.IsIdentifier(rec.Name) {
		rec.Name = util.TypeName(rec.Name)
	}
	for i := range rec.Fields {
		f := &rec.Fields[i]
		if !f.Required && f.Default == nil {
			null := "null"
			f.Default = &null
		}
		if util.IsIdentifier(f.Name) {
			continue
		}
		key := f.Name
		f.Name = util.FieldName(key)
		f.Alias = key
		for j := range doc.Parameters {
			if doc.Parameters[j].Name == key {
				doc.Parameters[j].Name = f.Name
			}
		}
	}
	return rec, doc
}
