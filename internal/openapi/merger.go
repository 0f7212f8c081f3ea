// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"maps"

	"github.com/api2spec/ktbridge/pkg/types"
)

// MergeStrategy defines how to handle conflicts during merge.
type MergeStrategy string

const (
	// MergeStrategyKeepExisting keeps the existing value on conflict.
	MergeStrategyKeepExisting MergeStrategy = "keep-existing"

	// MergeStrategyOverwrite overwrites with the generated value on conflict.
	MergeStrategyOverwrite MergeStrategy = "overwrite"
)

// MergeOptions configures the merge behavior.
type MergeOptions struct {
	// Strategy decides which side wins for an operation or schema present
	// in both documents.
	Strategy MergeStrategy

	// PreservePaths keeps existing operations the generated document lacks.
	PreservePaths bool

	// PreserveSchemas keeps existing schemas the generated document lacks.
	PreserveSchemas bool

	// PreserveDescriptions keeps existing summaries and descriptions where
	// the generated operation has none.
	PreserveDescriptions bool

	// PreserveInfo preserves info from the existing document.
	PreserveInfo bool

	// PreserveServers preserves servers from the existing document.
	PreserveServers bool

	// PreserveTags preserves tags from the existing document.
	PreserveTags bool
}

// DefaultMergeOptions returns the default merge options.
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{
		Strategy:             MergeStrategyOverwrite,
		PreservePaths:        true,
		PreserveSchemas:      true,
		PreserveDescriptions: true,
		PreserveInfo:         true,
		PreserveServers:      true,
		PreserveTags:         true,
	}
}

// Merger handles merging OpenAPI documents.
type Merger struct {
	options MergeOptions
}

// NewMerger creates a new Merger with the given options.
func NewMerger(options MergeOptions) *Merger {
	return &Merger{
		options: options,
	}
}

// Merge combines an existing, possibly hand-edited document with a freshly
// generated one. Neither input is modified.
func (m *Merger) Merge(existing, generated *types.OpenAPI) (*types.OpenAPI, error) {
	if existing == nil {
		return generated, nil
	}
	if generated == nil {
		return existing, nil
	}

	result := *generated
	result.Paths = m.mergePaths(existing.Paths, generated.Paths)
	result.Components = m.mergeComponents(existing.Components, generated.Components)

	if m.options.PreserveInfo && existing.Info.Title != "" {
		result.Info = existing.Info
	}

	if m.options.PreserveServers && len(existing.Servers) > 0 {
		result.Servers = existing.Servers
	}

	if m.options.PreserveTags && len(existing.Tags) > 0 {
		result.Tags = mergeTags(existing.Tags, generated.Tags)
	}

	if result.ExternalDocs == nil {
		result.ExternalDocs = existing.ExternalDocs
	}

	return &result, nil
}

func (m *Merger) mergePaths(existing, generated types.Paths) types.Paths {
	out := make(types.Paths, len(generated))
	for path, gen := range generated {
		item := gen
		old, ok := existing[path]
		if ok {
			if item.Summary == "" {
				item.Summary = old.Summary
			}
			if item.Description == "" {
				item.Description = old.Description
			}
			for _, method := range types.Methods {
				item.SetOperation(method, m.mergeOperation(old.Operation(method), gen.Operation(method)))
			}
		}
		out[path] = item
	}

	if !m.options.PreservePaths {
		return out
	}
	for path, old := range existing {
		item, ok := out[path]
		if !ok {
			out[path] = old
			continue
		}
		for _, mo := range old.Operations() {
			if item.Operation(mo.Method) == nil {
				item.SetOperation(mo.Method, mo.Operation)
			}
		}
		out[path] = item
	}
	return out
}

func (m *Merger) mergeOperation(old, gen *types.Operation) *types.Operation {
	switch {
	case gen == nil:
		return nil
	case old == nil:
		return gen
	case m.options.Strategy == MergeStrategyKeepExisting:
		return old
	}

	op := *gen
	if m.options.PreserveDescriptions {
		if op.Summary == "" {
			op.Summary = old.Summary
		}
		if op.Description == "" {
			op.Description = old.Description
		}
		if len(op.Tags) == 0 {
			op.Tags = old.Tags
		}
	}
	return &op
}

func (m *Merger) mergeComponents(existing, generated *types.Components) *types.Components {
	if existing == nil {
		return generated
	}

	out := &types.Components{}
	if generated != nil {
		*out = *generated
	}
	out.Schemas = maps.Clone(out.Schemas)
	if out.Schemas == nil {
		out.Schemas = make(map[string]*types.Schema)
	}

	for name, old := range existing.Schemas {
		_, regenerated := out.Schemas[name]
		switch {
		case !regenerated && m.options.PreserveSchemas:
			out.Schemas[name] = old
		case regenerated && m.options.Strategy == MergeStrategyKeepExisting:
			out.Schemas[name] = old
		}
	}

	if out.Responses == nil {
		out.Responses = existing.Responses
	}
	if out.Parameters == nil {
		out.Parameters = existing.Parameters
	}
	if out.RequestBodies == nil {
		out.RequestBodies = existing.RequestBodies
	}

	if len(out.Schemas) == 0 && out.Responses == nil && out.Parameters == nil && out.RequestBodies == nil {
		return nil
	}
	return out
}

// mergeTags keeps the existing tags in order and appends generated tags
// not already present.
func mergeTags(existing, generated []types.Tag) []types.Tag {
	out := append([]types.Tag(nil), existing...)
	for _, t := range generated {
		found := false
		for _, e := range existing {
			if e.Name == t.Name {
				found = true
				break
			}
		}
		if !found {
			out = append(out, t)
		}
	}
	return out
}

// MergeDefault merges two documents using default options.
func MergeDefault(existing, generated *types.OpenAPI) (*types.OpenAPI, error) {
	merger := NewMerger(DefaultMergeOptions())
	return merger.Merge(existing, generated)
}
