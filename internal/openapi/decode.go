// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"strings"

	"github.com/api2spec/ktbridge/internal/schema"
	"github.com/api2spec/ktbridge/pkg/types"
)

// DecodePaths shape-checks an already-decoded OpenAPI paths object.
func DecodePaths(paths map[string]any) (types.Paths, error) {
	n, err := schema.NodeOf(paths)
	if err != nil {
		return nil, err
	}
	return DecodePathsNode(n)
}

// DecodePathsNode shape-checks a paths object. Unknown members of a path
// item, such as servers or vendor extensions, are skipped.
func DecodePathsNode(n schema.Node) (types.Paths, error) {
	members, err := n.Members()
	if err != nil {
		return nil, err
	}

	out := make(types.Paths, len(members))
	for _, m := range members {
		item, err := decodePathItem(m.Value)
		if err != nil {
			return nil, err
		}
		out[m.Key] = item
	}
	return out, nil
}

func decodePathItem(n schema.Node) (types.PathItem, error) {
	var item types.PathItem
	members, err := n.Members()
	if err != nil {
		return item, err
	}

	for _, m := range members {
		switch key := strings.ToLower(m.Key); key {
		case "summary":
			if item.Summary, err = m.Value.OptionalText(); err != nil {
				return item, err
			}
		case "description":
			if item.Description, err = m.Value.OptionalText(); err != nil {
				return item, err
			}
		case "parameters":
			if item.Parameters, err = decodeParameters(m.Value); err != nil {
				return item, err
			}
		default:
			if item.Operation(key) != nil || !isMethod(key) {
				continue
			}
			op, err := decodeOperation(m.Value)
			if err != nil {
				return item, err
			}
			item.SetOperation(key, op)
		}
	}
	return item, nil
}

func isMethod(key string) bool {
	for _, m := range types.Methods {
		if m == key {
			return true
		}
	}
	return false
}

func decodeOperation(n schema.Node) (*types.Operation, error) {
	if _, err := n.Members(); err != nil {
		return nil, err
	}

	op := &types.Operation{}
	var err error

	if op.Summary, err = optionalText(n, "summary"); err != nil {
		return nil, err
	}
	if op.Description, err = optionalText(n, "description"); err != nil {
		return nil, err
	}
	if op.OperationID, err = optionalText(n, "operationId"); err != nil {
		return nil, err
	}

	tags, err := n.Get("tags")
	if err != nil {
		return nil, err
	}
	if op.Tags, err = tags.Strings(); err != nil {
		return nil, err
	}

	deprecated, err := n.Get("deprecated")
	if err != nil {
		return nil, err
	}
	if op.Deprecated, err = deprecated.Bool(); err != nil {
		return nil, err
	}

	params, err := n.Get("parameters")
	if err != nil {
		return nil, err
	}
	if op.Parameters, err = decodeParameters(params); err != nil {
		return nil, err
	}

	body, err := n.Get("requestBody")
	if err != nil {
		return nil, err
	}
	if !body.Missing() {
		if op.RequestBody, err = decodeRequestBody(body); err != nil {
			return nil, err
		}
	}

	responses, err := n.Get("responses")
	if err != nil {
		return nil, err
	}
	if !responses.Missing() {
		members, err := responses.Members()
		if err != nil {
			return nil, err
		}
		op.Responses = make(map[string]types.Response, len(members))
		for _, m := range members {
			resp, err := decodeResponse(m.Value)
			if err != nil {
				return nil, err
			}
			op.Responses[m.Key] = resp
		}
	}
	return op, nil
}

func decodeParameters(n schema.Node) ([]types.Parameter, error) {
	if n.Missing() {
		return nil, nil
	}
	items, err := n.Items()
	if err != nil {
		return nil, err
	}

	out := make([]types.Parameter, 0, len(items))
	for _, item := range items {
		if _, err := item.Members(); err != nil {
			return nil, err
		}

		var p types.Parameter
		if p.Name, err = requiredText(item, "name"); err != nil {
			return nil, err
		}
		if p.In, err = requiredText(item, "in"); err != nil {
			return nil, err
		}
		if p.Description, err = optionalText(item, "description"); err != nil {
			return nil, err
		}

		required, err := item.Get("required")
		if err != nil {
			return nil, err
		}
		if p.Required, err = required.Bool(); err != nil {
			return nil, err
		}

		deprecated, err := item.Get("deprecated")
		if err != nil {
			return nil, err
		}
		if p.Deprecated, err = deprecated.Bool(); err != nil {
			return nil, err
		}

		s, err := item.Get("schema")
		if err != nil {
			return nil, err
		}
		if !s.Missing() {
			if p.Schema, err = schema.DecodeSchema(s); err != nil {
				return nil, err
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func decodeRequestBody(n schema.Node) (*types.RequestBody, error) {
	if _, err := n.Members(); err != nil {
		return nil, err
	}

	body := &types.RequestBody{}
	var err error
	if body.Description, err = optionalText(n, "description"); err != nil {
		return nil, err
	}

	required, err := n.Get("required")
	if err != nil {
		return nil, err
	}
	if body.Required, err = required.Bool(); err != nil {
		return nil, err
	}

	if body.Content, err = decodeContent(n); err != nil {
		return nil, err
	}
	return body, nil
}

func decodeResponse(n schema.Node) (types.Response, error) {
	var resp types.Response
	if _, err := n.Members(); err != nil {
		return resp, err
	}

	var err error
	if resp.Description, err = optionalText(n, "description"); err != nil {
		return resp, err
	}
	if resp.Content, err = decodeContent(n); err != nil {
		return resp, err
	}
	return resp, nil
}

func decodeContent(n schema.Node) (map[string]types.MediaType, error) {
	content, err := n.Get("content")
	if err != nil {
		return nil, err
	}
	if content.Missing() {
		return nil, nil
	}

	members, err := content.Members()
	if err != nil {
		return nil, err
	}
	out := make(map[string]types.MediaType, len(members))
	for _, m := range members {
		if _, err := m.Value.Members(); err != nil {
			return nil, err
		}

		var mt types.MediaType
		s, err := m.Value.Get("schema")
		if err != nil {
			return nil, err
		}
		if !s.Missing() {
			if mt.Schema, err = schema.DecodeSchema(s); err != nil {
				return nil, err
			}
		}

		example, err := m.Value.Get("example")
		if err != nil {
			return nil, err
		}
		if mt.Example, err = example.Value(); err != nil {
			return nil, err
		}
		out[m.Key] = mt
	}
	return out, nil
}

func optionalText(n schema.Node, key string) (string, error) {
	v, err := n.Get(key)
	if err != nil {
		return "", err
	}
	return v.OptionalText()
}

func requiredText(n schema.Node, key string) (string, error) {
	v, err := n.Get(key)
	if err != nil {
		return "", err
	}
	if v.Missing() {
		return "", v.Mismatch("string")
	}
	return v.Text()
}
