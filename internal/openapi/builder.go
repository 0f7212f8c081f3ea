// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package openapi translates route tables to and from OpenAPI paths objects
// and builds, reads, writes, compares and merges OpenAPI documents.
package openapi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/api2spec/ktbridge/internal/config"
	"github.com/api2spec/ktbridge/internal/ir"
	"github.com/api2spec/ktbridge/pkg/types"
)

// Builder constructs OpenAPI documents from route tables and component
// schemas.
type Builder struct {
	config *config.Config
}

// NewBuilder creates a new OpenAPI builder with the given configuration.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{
		config: cfg,
	}
}

// Build creates an OpenAPI document. The generation mode decides whether
// paths, components or both are written.
func (b *Builder) Build(routes ir.RouteTable, components map[string]*types.Schema) (*types.OpenAPI, error) {
	doc := &types.OpenAPI{
		OpenAPI: b.config.OpenAPI.Version,
		Info:    b.buildInfo(),
		Servers: b.buildServers(),
		Paths:   make(types.Paths),
	}

	if b.config.Generation.Mode != "schemas-only" {
		if err := b.buildPaths(doc, routes); err != nil {
			return nil, fmt.Errorf("failed to build paths: %w", err)
		}
	}

	if b.config.Generation.Mode != "routes-only" && len(components) > 0 {
		doc.Components = b.buildComponents(components)
	}

	doc.Tags = b.buildTags(doc.Paths)
	return doc, nil
}

// buildInfo constructs the Info object from configuration.
func (b *Builder) buildInfo() types.Info {
	info := types.Info{
		Title:          b.config.OpenAPI.Info.Title,
		Description:    b.config.OpenAPI.Info.Description,
		TermsOfService: b.config.OpenAPI.Info.TermsOfService,
		Version:        b.config.OpenAPI.Info.Version,
	}

	if b.config.OpenAPI.Info.Contact.Name != "" ||
		b.config.OpenAPI.Info.Contact.Email != "" ||
		b.config.OpenAPI.Info.Contact.URL != "" {
		info.Contact = &types.Contact{
			Name:  b.config.OpenAPI.Info.Contact.Name,
			URL:   b.config.OpenAPI.Info.Contact.URL,
			Email: b.config.OpenAPI.Info.Contact.Email,
		}
	}

	if b.config.OpenAPI.Info.License.Name != "" {
		info.License = &types.License{
			Name: b.config.OpenAPI.Info.License.Name,
			URL:  b.config.OpenAPI.Info.License.URL,
		}
	}

	return info
}

// buildServers constructs the servers list from configuration.
func (b *Builder) buildServers() []types.Server {
	servers := make([]types.Server, 0, len(b.config.OpenAPI.Servers))
	for _, s := range b.config.OpenAPI.Servers {
		servers = append(servers, types.Server{
			URL:         s.URL,
			Description: s.Description,
		})
	}
	return servers
}

// buildTags lists the configured tags first, then any other tag used by an
// operation, sorted.
func (b *Builder) buildTags(paths types.Paths) []types.Tag {
	tags := make([]types.Tag, 0, len(b.config.OpenAPI.Tags))
	seen := make(map[string]bool)
	for _, t := range b.config.OpenAPI.Tags {
		tags = append(tags, types.Tag{
			Name:        t.Name,
			Description: t.Description,
		})
		seen[t.Name] = true
	}

	var extra []string
	for _, item := range paths {
		for _, mo := range item.Operations() {
			for _, t := range mo.Operation.Tags {
				if !seen[t] {
					seen[t] = true
					extra = append(extra, t)
				}
			}
		}
	}
	sort.Strings(extra)
	for _, t := range extra {
		tags = append(tags, types.Tag{Name: t})
	}
	return tags
}

// buildPaths translates the route table, rejecting methods a path item
// cannot hold, and gives undocumented operations the default responses.
func (b *Builder) buildPaths(doc *types.OpenAPI, routes ir.RouteTable) error {
	for _, p := range routes.Paths {
		for _, op := range p.Operations {
			if !isMethod(strings.ToLower(op.Method)) {
				return fmt.Errorf("unsupported HTTP method %s on %s", op.Method, p.Path)
			}
		}
	}

	doc.Paths = FromRoutes(routes)
	for _, item := range doc.Paths {
		for _, mo := range item.Operations() {
			if len(mo.Operation.Responses) == 0 {
				mo.Operation.Responses = b.buildDefaultResponses()
			}
		}
	}
	return nil
}

// buildDefaultResponses creates default responses based on configuration.
func (b *Builder) buildDefaultResponses() map[string]types.Response {
	responses := make(map[string]types.Response)

	for _, code := range b.config.Generation.DefaultResponses {
		responses[code] = types.Response{Description: DefaultDescription(code)}
	}

	// Ensure at least one response exists
	if len(responses) == 0 {
		responses["200"] = types.Response{
			Description: DefaultDescription("200"),
		}
	}

	return responses
}

// DefaultDescription returns the description given to a status code no
// doc comment describes.
func DefaultDescription(code string) string {
	switch code {
	case "200":
		return "Successful response"
	case "201":
		return "Created"
	case "204":
		return "No content"
	case "400":
		return "Bad request"
	case "401":
		return "Unauthorized"
	case "403":
		return "Forbidden"
	case "404":
		return "Not found"
	case "500":
		return "Internal server error"
	default:
		return fmt.Sprintf("Response %s", code)
	}
}

// buildComponents constructs the Components object from named schemas.
func (b *Builder) buildComponents(schemas map[string]*types.Schema) *types.Components {
	components := &types.Components{
		Schemas: make(map[string]*types.Schema, len(schemas)),
	}
	for name, s := range schemas {
		components.Schemas[name] = s
	}
	return components
}

// SchemaRef creates a reference to a schema in components.
func SchemaRef(schemaName string) *types.Schema {
	return types.ComponentRef(schemaName)
}

// SortedPaths returns a sorted list of path keys for deterministic output.
func SortedPaths(paths types.Paths) []string {
	keys := make([]string, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SortedSchemas returns a sorted list of schema keys for deterministic output.
func SortedSchemas(schemas map[string]*types.Schema) []string {
	keys := make([]string, 0, len(schemas))
	for k := range schemas {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
