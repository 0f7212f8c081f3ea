// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ShapeError reports a JSON Schema or OpenAPI value that is missing or of
// the wrong kind. Pointer is a JSON pointer to the offending value.
type ShapeError struct {
	Pointer  string
	Expected string
	Got      string
}

func (e *ShapeError) Error() string {
	pointer := e.Pointer
	if pointer == "" {
		pointer = "/"
	}
	return fmt.Sprintf("%s: expected %s, got %s", pointer, e.Expected, e.Got)
}

// Node is a decoded YAML or JSON value located by its JSON pointer.
type Node struct {
	node    *yaml.Node
	Pointer string
}

// Member is one key/value pair of a mapping node.
type Member struct {
	Key   string
	Value Node
}

// NodeOf encodes an already-decoded value (nested maps and slices) as a
// Node. Mapping keys come out sorted.
func NodeOf(v any) (Node, error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return Node{}, fmt.Errorf("encoding value: %w", err)
	}
	return Node{node: &n}, nil
}

// ParseNode decodes YAML or JSON text. Mapping keys keep document order.
func ParseNode(data []byte) (Node, error) {
	var n yaml.Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return Node{}, fmt.Errorf("parsing document: %w", err)
	}
	return Node{node: &n}, nil
}

func (n Node) resolve() *yaml.Node {
	y := n.node
	for y != nil {
		switch {
		case y.Kind == yaml.DocumentNode && len(y.Content) > 0:
			y = y.Content[0]
		case y.Kind == yaml.AliasNode:
			y = y.Alias
		default:
			return y
		}
	}
	return nil
}

// Kind names the value kind: mapping, sequence, string, integer, number,
// boolean, null or nothing.
func (n Node) Kind() string {
	y := n.resolve()
	if y == nil || y.Kind == yaml.DocumentNode {
		return "nothing"
	}
	switch y.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	}
	switch y.ShortTag() {
	case "!!int":
		return "integer"
	case "!!float":
		return "number"
	case "!!bool":
		return "boolean"
	case "!!null":
		return "null"
	default:
		return "string"
	}
}

// Missing reports whether the node holds no value at all.
func (n Node) Missing() bool {
	return n.Kind() == "nothing"
}

// Mismatch returns a ShapeError saying n was expected to be of kind expected.
func (n Node) Mismatch(expected string) error {
	return &ShapeError{Pointer: n.Pointer, Expected: expected, Got: n.Kind()}
}

func (n Node) child(token string, y *yaml.Node) Node {
	token = strings.ReplaceAll(strings.ReplaceAll(token, "~", "~0"), "/", "~1")
	return Node{node: y, Pointer: n.Pointer + "/" + token}
}

// Members returns the pairs of a mapping node in order.
func (n Node) Members() ([]Member, error) {
	y := n.resolve()
	if y == nil || y.Kind != yaml.MappingNode {
		return nil, n.Mismatch("mapping")
	}
	out := make([]Member, 0, len(y.Content)/2)
	for i := 0; i+1 < len(y.Content); i += 2 {
		key := y.Content[i].Value
		out = append(out, Member{Key: key, Value: n.child(key, y.Content[i+1])})
	}
	return out, nil
}

// Get returns the named member of a mapping node. A missing member is a
// Node whose Kind is "nothing".
func (n Node) Get(key string) (Node, error) {
	y := n.resolve()
	if y == nil || y.Kind != yaml.MappingNode {
		return Node{}, n.Mismatch("mapping")
	}
	for i := 0; i+1 < len(y.Content); i += 2 {
		if y.Content[i].Value == key {
			return n.child(key, y.Content[i+1]), nil
		}
	}
	return n.child(key, nil), nil
}

// Items returns the elements of a sequence node.
func (n Node) Items() ([]Node, error) {
	y := n.resolve()
	if y == nil || y.Kind != yaml.SequenceNode {
		return nil, n.Mismatch("sequence")
	}
	out := make([]Node, len(y.Content))
	for i, item := range y.Content {
		out[i] = n.child(fmt.Sprint(i), item)
	}
	return out, nil
}

// Text returns the text of a scalar node. Numbers and booleans are
// accepted as their text; mappings, sequences and null are not.
func (n Node) Text() (string, error) {
	switch n.Kind() {
	case "string", "integer", "number", "boolean":
		return n.resolve().Value, nil
	}
	return "", n.Mismatch("string")
}

// OptionalText is Text, with "" for a missing or null node.
func (n Node) OptionalText() (string, error) {
	switch n.Kind() {
	case "nothing", "null":
		return "", nil
	}
	return n.Text()
}

// Strings returns a sequence of strings. A missing node is an empty list.
func (n Node) Strings() ([]string, error) {
	if n.Missing() {
		return nil, nil
	}
	items, err := n.Items()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, err := item.Text()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Bool returns a boolean node; missing means false.
func (n Node) Bool() (bool, error) {
	switch n.Kind() {
	case "nothing":
		return false, nil
	case "boolean":
		var b bool
		if err := n.resolve().Decode(&b); err != nil {
			return false, n.Mismatch("boolean")
		}
		return b, nil
	}
	return false, n.Mismatch("boolean")
}

// Value decodes the node into plain Go values.
func (n Node) Value() (any, error) {
	y := n.resolve()
	if y == nil {
		return nil, nil
	}
	var v any
	if err := y.Decode(&v); err != nil {
		return nil, fmt.Errorf("%s: %w", n.Pointer, err)
	}
	return v, nil
}
