// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"sort"
	"sync"

	"github.com/api2spec/ktbridge/internal/ir"
	"github.com/api2spec/ktbridge/pkg/types"
)

// Registry collects named component schemas across files. It is safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*types.Schema
	origins map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas: make(map[string]*types.Schema),
		origins: make(map[string]string),
	}
}

// Add stores a schema under name, replacing any earlier one.
func (r *Registry) Add(name string, schema *types.Schema) {
	r.AddFrom("", name, schema)
}

// AddFrom stores a schema and remembers the file it came from. It returns
// the origin of the schema it replaced, if any.
func (r *Registry) AddFrom(origin, name string, schema *types.Schema) (replaced string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[name]; exists {
		replaced, ok = r.origins[name], true
	}
	r.schemas[name] = schema
	r.origins[name] = origin
	return replaced, ok
}

// AddModel stores the component schema of a record under its name.
func (r *Registry) AddModel(origin string, m ir.Model) (replaced string, ok bool) {
	return r.AddFrom(origin, m.Record.Name, Component(m.Record, m.Doc))
}

// Get returns a schema by name.
func (r *Registry) Get(name string) (*types.Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema, ok := r.schemas[name]
	return schema, ok
}

// Has checks if a schema exists in the registry.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.schemas[name]
	return ok
}

// Origin returns the file a schema was registered from.
func (r *Registry) Origin(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.origins[name]
}

// All returns a copy of the registered schemas.
func (r *Registry) All() map[string]*types.Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]*types.Schema, len(r.schemas))
	for k, v := range r.schemas {
		result[k] = v
	}
	return result
}

// Names returns all schema names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of schemas in the registry.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.schemas)
}

// Merge adds all schemas from another registry.
func (r *Registry) Merge(other *Registry) {
	if other == nil || other == r {
		return
	}

	other.mu.RLock()
	defer other.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	for name, schema := range other.schemas {
		r.schemas[name] = schema
		r.origins[name] = other.origins[name]
	}
}

// Documents converts every registered object schema into a standalone
// JSON Schema document, ordered by name.
func (r *Registry) Documents(opts Options) ([]*types.JSONSchema, error) {
	var docs []*types.JSONSchema
	for _, name := range r.Names() {
		s, _ := r.Get(name)
		doc, err := FromComponent(name, s, opts)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
