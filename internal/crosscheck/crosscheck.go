// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package crosscheck parses Kotlin sources a second time with tree-sitter
// and compares what it finds against the hand-written parser: the number of
// records (classes with a primary constructor, and interfaces) and the
// number of handlers declared inside route blocks.
package crosscheck

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/kotlin"

	"github.com/api2spec/ktbridge/internal/ast"
	"github.com/api2spec/ktbridge/internal/ir"
	"github.com/api2spec/ktbridge/internal/parser"
)

// Declaration is a record declaration found by tree-sitter.
type Declaration struct {
	Name string
	Line int
}

// Route is a handler call found inside a route block.
type Route struct {
	Method string
	// Path is the sub-path argument, empty for bare handlers.
	Path string
	Line int
}

// Outline is what tree-sitter sees in one file.
type Outline struct {
	Records []Declaration
	Routes  []Route
	// Partial is set when the tree contains error nodes.
	Partial bool
}

// Counts summarises one side of the comparison.
type Counts struct {
	Records int
	Routes  int
}

// Result is the comparison for one file.
type Result struct {
	Path       string
	TreeSitter Counts
	Parser     Counts
	Partial    bool
}

// OK reports whether both parsers agree.
func (r Result) OK() bool {
	return r.TreeSitter == r.Parser
}

func (r Result) String() string {
	if r.OK() {
		return fmt.Sprintf("%s: %d records, %d routes", r.Path, r.Parser.Records, r.Parser.Routes)
	}
	return fmt.Sprintf("%s: parser found %d records and %d routes, tree-sitter found %d records and %d routes",
		r.Path, r.Parser.Records, r.Parser.Routes, r.TreeSitter.Records, r.TreeSitter.Routes)
}

// Checker wraps a tree-sitter parser. It is not safe for concurrent use.
type Checker struct {
	parser *sitter.Parser
}

// New creates a Checker for Kotlin.
func New() *Checker {
	p := sitter.NewParser()
	p.SetLanguage(kotlin.GetLanguage())
	return &Checker{parser: p}
}

var routeVerbs = parser.RouteVerbs

// Outline parses content with tree-sitter.
func (c *Checker) Outline(ctx context.Context, content []byte) (*Outline, error) {
	tree, err := c.parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Kotlin: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, errors.New("failed to get root node")
	}

	out := &Outline{Partial: root.HasError()}
	c.walk(root, content, false, out)
	return out, nil
}

func (c *Checker) walk(node *sitter.Node, content []byte, inRoute bool, out *Outline) {
	switch node.Type() {
	case "class_declaration":
		if d, ok := recordOf(node, content); ok {
			out.Records = append(out.Records, d)
		}
	case "call_expression":
		name := calleeName(node, content)
		switch {
		case name == "route":
			inRoute = true
		case inRoute && routeVerbs[name] && hasLambda(node):
			out.Routes = append(out.Routes, Route{
				Method: name,
				Path:   subPath(node, content),
				Line:   int(node.StartPoint().Row) + 1,
			})
			// handler bodies are opaque to the parser
			return
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		c.walk(node.NamedChild(i), content, inRoute, out)
	}
}

// recordOf accepts classes with a primary constructor and interfaces.
func recordOf(node *sitter.Node, content []byte) (Declaration, bool) {
	var name string
	record := false
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "type_identifier":
			if name == "" {
				name = child.Content(content)
			}
		case "primary_constructor", "interface":
			record = true
		}
	}
	if !record || name == "" {
		return Declaration{}, false
	}
	return Declaration{Name: name, Line: int(node.StartPoint().Row) + 1}, true
}

func calleeName(call *sitter.Node, content []byte) string {
	if call.NamedChildCount() == 0 {
		return ""
	}
	callee := call.NamedChild(0)
	if callee.Type() != "simple_identifier" {
		return ""
	}
	return callee.Content(content)
}

func callSuffix(call *sitter.Node) *sitter.Node {
	for i := 0; i < int(call.NamedChildCount()); i++ {
		if child := call.NamedChild(i); child.Type() == "call_suffix" {
			return child
		}
	}
	return nil
}

func hasLambda(call *sitter.Node) bool {
	suffix := callSuffix(call)
	if suffix == nil {
		return false
	}
	for i := 0; i < int(suffix.NamedChildCount()); i++ {
		if suffix.NamedChild(i).Type() == "annotated_lambda" {
			return true
		}
	}
	return false
}

func subPath(call *sitter.Node, content []byte) string {
	suffix := callSuffix(call)
	if suffix == nil {
		return ""
	}
	for i := 0; i < int(suffix.NamedChildCount()); i++ {
		args := suffix.NamedChild(i)
		if args.Type() != "value_arguments" {
			continue
		}
		var path string
		find(args, "string_literal", func(n *sitter.Node) {
			if path == "" {
				path = strings.Trim(n.Content(content), `"`)
			}
		})
		return path
	}
	return ""
}

func find(node *sitter.Node, typ string, fn func(*sitter.Node)) {
	if node.Type() == typ {
		fn(node)
		return
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		find(node.NamedChild(i), typ, fn)
	}
}

// Check compares the tree-sitter outline of content with the parsed file.
// A nil file counts as zero records and zero routes.
func (c *Checker) Check(ctx context.Context, path string, content []byte, file *ast.Source) (Result, error) {
	outline, err := c.Outline(ctx, content)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}

	res := Result{
		Path:       path,
		TreeSitter: Counts{Records: len(outline.Records), Routes: len(outline.Routes)},
		Partial:    outline.Partial,
	}
	if file == nil {
		return res, nil
	}

	models, err := ir.ExtractRecords(file)
	if err != nil && !isNotFound(err) {
		return Result{}, err
	}
	res.Parser.Records = len(models)

	routes, err := ir.ExtractAllRoutes(file)
	if err != nil && !isNotFound(err) {
		return Result{}, err
	}
	res.Parser.Routes = routes.Len()

	return res, nil
}

func isNotFound(err error) bool {
	var nf *ir.NotFoundError
	return errors.As(err, &nf)
}
