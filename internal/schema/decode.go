// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"github.com/api2spec/ktbridge/pkg/types"
)

// Decode shape-checks an already-decoded JSON Schema document. Properties
// come out sorted by name since the input map carries no order; use Parse to
// keep document order.
func Decode(doc map[string]any) (*types.JSONSchema, error) {
	n, err := NodeOf(doc)
	if err != nil {
		return nil, err
	}
	return DecodeDocument(n)
}

// Parse decodes and shape-checks a JSON Schema document from YAML or JSON
// text.
func Parse(data []byte) (*types.JSONSchema, error) {
	n, err := ParseNode(data)
	if err != nil {
		return nil, err
	}
	return DecodeDocument(n)
}

// DecodeDocument shape-checks a record-level JSON Schema document. Both
// "$id"/"$schema" and the bare "id"/"schema" spellings are accepted.
func DecodeDocument(n Node) (*types.JSONSchema, error) {
	if _, err := n.Members(); err != nil {
		return nil, err
	}

	out := &types.JSONSchema{Type: "object"}

	typ, err := n.Get("type")
	if err != nil {
		return nil, err
	}
	if !typ.Missing() {
		t, err := typ.Text()
		if err != nil {
			return nil, err
		}
		if t != "object" {
			return nil, &ShapeError{Pointer: typ.Pointer, Expected: `"object"`, Got: `"` + t + `"`}
		}
	}

	if out.ID, err = firstText(n, "$id", "id"); err != nil {
		return nil, err
	}
	if out.Schema, err = firstText(n, "$schema", "schema"); err != nil {
		return nil, err
	}
	if out.Title, err = text(n, "title"); err != nil {
		return nil, err
	}
	if out.Description, err = text(n, "description"); err != nil {
		return nil, err
	}
	if out.Properties, err = properties(n); err != nil {
		return nil, err
	}

	req, err := n.Get("required")
	if err != nil {
		return nil, err
	}
	if out.Required, err = req.Strings(); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeSchema shape-checks one schema object. A type list such as
// ["string", "null"] becomes the first non-null type plus Nullable.
func DecodeSchema(n Node) (*types.Schema, error) {
	if _, err := n.Members(); err != nil {
		return nil, err
	}

	s := &types.Schema{}
	var err error

	if s.Ref, err = text(n, "$ref"); err != nil {
		return nil, err
	}
	if s.Type, s.Nullable, err = schemaType(n); err != nil {
		return nil, err
	}
	if s.Format, err = text(n, "format"); err != nil {
		return nil, err
	}
	if s.Title, err = text(n, "title"); err != nil {
		return nil, err
	}
	if s.Description, err = text(n, "description"); err != nil {
		return nil, err
	}

	def, err := n.Get("default")
	if err != nil {
		return nil, err
	}
	if s.Default, err = def.Value(); err != nil {
		return nil, err
	}

	enum, err := n.Get("enum")
	if err != nil {
		return nil, err
	}
	if !enum.Missing() {
		items, err := enum.Items()
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			v, err := item.Value()
			if err != nil {
				return nil, err
			}
			s.Enum = append(s.Enum, v)
		}
	}

	nullable, err := n.Get("nullable")
	if err != nil {
		return nil, err
	}
	explicit, err := nullable.Bool()
	if err != nil {
		return nil, err
	}
	s.Nullable = s.Nullable || explicit

	deprecated, err := n.Get("deprecated")
	if err != nil {
		return nil, err
	}
	if s.Deprecated, err = deprecated.Bool(); err != nil {
		return nil, err
	}

	if s.Items, err = optionalSchema(n, "items"); err != nil {
		return nil, err
	}
	if s.Properties, err = properties(n); err != nil {
		return nil, err
	}

	req, err := n.Get("required")
	if err != nil {
		return nil, err
	}
	if s.Required, err = req.Strings(); err != nil {
		return nil, err
	}

	if s.AdditionalProperties, err = additionalProperties(n); err != nil {
		return nil, err
	}

	if s.AllOf, err = schemaList(n, "allOf"); err != nil {
		return nil, err
	}
	if s.OneOf, err = schemaList(n, "oneOf"); err != nil {
		return nil, err
	}
	if s.AnyOf, err = schemaList(n, "anyOf"); err != nil {
		return nil, err
	}
	return s, nil
}

func text(n Node, key string) (string, error) {
	v, err := n.Get(key)
	if err != nil {
		return "", err
	}
	return v.OptionalText()
}

func firstText(n Node, keys ...string) (string, error) {
	for _, key := range keys {
		s, err := text(n, key)
		if err != nil || s != "" {
			return s, err
		}
	}
	return "", nil
}

func schemaType(n Node) (string, bool, error) {
	typ, err := n.Get("type")
	if err != nil {
		return "", false, err
	}
	if typ.Kind() != "sequence" {
		t, err := typ.OptionalText()
		return t, false, err
	}

	names, err := typ.Strings()
	if err != nil {
		return "", false, err
	}
	var (
		first    string
		nullable bool
	)
	for _, name := range names {
		if name == "null" {
			nullable = true
			continue
		}
		if first == "" {
			first = name
		}
	}
	return first, nullable, nil
}

func optionalSchema(n Node, key string) (*types.Schema, error) {
	v, err := n.Get(key)
	if err != nil || v.Missing() {
		return nil, err
	}
	return DecodeSchema(v)
}

func additionalProperties(n Node) (*types.Schema, error) {
	v, err := n.Get("additionalProperties")
	if err != nil || v.Missing() {
		return nil, err
	}
	if v.Kind() == "boolean" {
		allowed, err := v.Bool()
		if err != nil || !allowed {
			return nil, err
		}
		return &types.Schema{}, nil
	}
	return DecodeSchema(v)
}

func properties(n Node) (types.Properties, error) {
	v, err := n.Get("properties")
	if err != nil || v.Missing() {
		return nil, err
	}
	members, err := v.Members()
	if err != nil {
		return nil, err
	}
	out := make(types.Properties, 0, len(members))
	for _, m := range members {
		s, err := DecodeSchema(m.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, types.Property{Name: m.Key, Schema: s})
	}
	return out, nil
}

func schemaList(n Node, key string) ([]*types.Schema, error) {
	v, err := n.Get(key)
	if err != nil || v.Missing() {
		return nil, err
	}
	items, err := v.Items()
	if err != nil {
		return nil, err
	}
	out := make([]*types.Schema, 0, len(items))
	for _, item := range items {
		s, err := DecodeSchema(item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
