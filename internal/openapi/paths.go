// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"sort"
	"strings"
	"unicode"

	"github.com/api2spec/ktbridge/internal/ir"
	"github.com/api2spec/ktbridge/pkg/types"
)

// DefaultContentType is used for documented schemas without @produces.
const DefaultContentType = "application/json"

// FromRoutes converts a route table into an OpenAPI paths object. Methods
// are lower-cased; a missing operationId is synthesized from method and path.
func FromRoutes(table ir.RouteTable) types.Paths {
	paths := make(types.Paths, len(table.Paths))
	for _, p := range table.Paths {
		item := paths[p.Path]
		for _, op := range p.Operations {
			item.SetOperation(op.Method, toOperation(p.Path, op))
		}
		paths[p.Path] = item
	}
	return paths
}

func toOperation(path string, op ir.Operation) *types.Operation {
	out := &types.Operation{
		Tags:        op.Tags,
		Summary:     op.Summary,
		Description: op.Description,
		OperationID: op.OperationID,
	}
	if out.OperationID == "" {
		out.OperationID = OperationID(op.Method, path)
	}

	for _, p := range op.Parameters {
		out.Parameters = append(out.Parameters, types.Parameter{
			Name:        p.Name,
			In:          p.In,
			Description: p.Description,
			Required:    p.Required,
			Schema:      &types.Schema{Type: string(p.Type)},
		})
	}

	contentType := op.Produces
	if contentType == "" {
		contentType = DefaultContentType
	}
	for _, r := range op.Responses {
		if out.Responses == nil {
			out.Responses = make(map[string]types.Response, len(op.Responses))
		}
		resp := types.Response{Description: r.Description}
		if r.SchemaRef != "" {
			resp.Content = map[string]types.MediaType{
				contentType: {Schema: &types.Schema{Ref: r.SchemaRef}},
			}
		}
		out.Responses[r.Code] = resp
	}

	if len(op.RequestBody) > 0 || op.BodyDescription != "" {
		body := &types.RequestBody{Description: op.BodyDescription}
		for _, c := range op.RequestBody {
			if body.Content == nil {
				body.Content = make(map[string]types.MediaType, len(op.RequestBody))
			}
			mt := types.MediaType{}
			if c.SchemaRef != "" {
				mt.Schema = &types.Schema{Ref: c.SchemaRef}
			}
			body.Content[c.ContentType] = mt
		}
		body.Required = len(body.Content) > 0
		out.RequestBody = body
	}
	return out
}

// OperationID synthesizes "method_path" with every run of characters other
// than letters and digits in the path replaced by one underscore, e.g.
// get /pets/{petId} -> get_pets_petId.
func OperationID(method, path string) string {
	var sb strings.Builder
	sb.WriteString(strings.ToLower(method))
	pending := true
	for _, r := range path {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pending {
				sb.WriteByte('_')
				pending = false
			}
			sb.WriteRune(r)
			continue
		}
		pending = true
	}
	return sb.String()
}

// ToRoutes is the inverse of FromRoutes. Paths come out sorted; operations
// follow types.Methods order.
func ToRoutes(paths types.Paths) ir.RouteTable {
	var table ir.RouteTable
	for _, path := range SortedPaths(paths) {
		item := paths[path]
		var ops []ir.Operation
		for _, mo := range item.Operations() {
			ops = append(ops, fromOperation(mo.Method, mo.Operation, item.Parameters))
		}
		table.Add(path, ops...)
	}
	return table
}

func fromOperation(method string, op *types.Operation, shared []types.Parameter) ir.Operation {
	out := ir.Operation{
		Method:      method,
		Summary:     op.Summary,
		Description: op.Description,
		OperationID: op.OperationID,
		Tags:        op.Tags,
	}

	for _, p := range mergeParameters(shared, op.Parameters) {
		param := ir.Parameter{
			Name:        p.Name,
			In:          p.In,
			Required:    p.Required,
			Type:        ir.String,
			Description: p.Description,
		}
		if p.Schema != nil && p.Schema.Type != "" {
			param.Type = ir.ParseKind(p.Schema.Type)
		}
		out.Parameters = append(out.Parameters, param)
	}

	for _, code := range sortedCodes(op.Responses) {
		resp := op.Responses[code]
		ct, ref := primaryContent(resp.Content)
		if ref != "" && ct != DefaultContentType && out.Produces == "" {
			out.Produces = ct
		}
		out.Responses = append(out.Responses, ir.Response{
			Code:        code,
			Description: resp.Description,
			SchemaRef:   ref,
		})
	}

	if op.RequestBody != nil {
		out.BodyDescription = op.RequestBody.Description
		for _, ct := range sortedKeys(op.RequestBody.Content) {
			mt := op.RequestBody.Content[ct]
			c := ir.Content{ContentType: ct}
			if mt.Schema != nil {
				c.SchemaRef = mt.Schema.Ref
			}
			out.RequestBody = append(out.RequestBody, c)
		}
	}
	return out
}

// mergeParameters applies path-level parameters, overridden by operation
// parameters with the same name and location.
func mergeParameters(shared, own []types.Parameter) []types.Parameter {
	if len(shared) == 0 {
		return own
	}
	out := make([]types.Parameter, 0, len(shared)+len(own))
	for _, s := range shared {
		overridden := false
		for _, o := range own {
			if o.Name == s.Name && o.In == s.In {
				overridden = true
				break
			}
		}
		if !overridden {
			out = append(out, s)
		}
	}
	return append(out, own...)
}

// primaryContent picks application/json when present, else the first media
// type by name, and returns it with its schema reference.
func primaryContent(content map[string]types.MediaType) (string, string) {
	if len(content) == 0 {
		return "", ""
	}
	ct := DefaultContentType
	if _, ok := content[ct]; !ok {
		ct = sortedKeys(content)[0]
	}
	if s := content[ct].Schema; s != nil {
		return ct, schemaRefOf(s)
	}
	return ct, ""
}

// schemaRefOf returns the reference of a schema, or of its items for an
// array of references.
func schemaRefOf(s *types.Schema) string {
	if s.Ref != "" {
		return s.Ref
	}
	if s.Items != nil {
		return s.Items.Ref
	}
	return ""
}

// sortedCodes orders status codes numerically-by-text with "default" last.
func sortedCodes(responses map[string]types.Response) []string {
	codes := make([]string, 0, len(responses))
	for code := range responses {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		if codes[i] == "default" || codes[j] == "default" {
			return codes[j] == "default" && codes[i] != "default"
		}
		return codes[i] < codes[j]
	})
	return codes
}

func sortedKeys(m map[string]types.MediaType) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
