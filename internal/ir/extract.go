// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package ir

import (
	"regexp"
	"slices"
	"strings"

	"github.com/api2spec/ktbridge/internal/ast"
	"github.com/api2spec/ktbridge/internal/kdoc"
)

// TypeOf maps a source type reference onto a FieldType. A nil type is Any.
func TypeOf(t *ast.Type) FieldType {
	if t == nil {
		return ScalarType(Any)
	}
	switch containers[t.SimpleName()] {
	case List:
		of := Any
		if len(t.Args) > 0 {
			of = ScalarOf(t.Args[0].SimpleName())
		}
		return ListOf(of)
	case Map:
		of := Any
		if len(t.Args) == 2 {
			of = ScalarOf(t.Args[1].SimpleName())
		}
		return MapOf(of)
	}
	return ScalarType(ScalarOf(t.SimpleName()))
}

// FindClass returns the first class declaration in root.
func FindClass(root ast.Node) (*ast.ClassDecl, error) {
	class, ok := ast.Find[*ast.ClassDecl](root)
	if !ok {
		return nil, &NotFoundError{Construct: "class declaration"}
	}
	return class, nil
}

// ExtractRecord converts the first class declaration of src into a record
// and returns the doc comment nearest before it.
func ExtractRecord(src *ast.Source) (Record, kdoc.Fields, error) {
	class, err := FindClass(src)
	if err != nil {
		return Record{}, kdoc.Fields{}, err
	}
	doc := DocBefore(src, class)
	rec := recordOf(class.Name, class.Arguments, &doc)
	return rec, doc, nil
}

// ExtractRecords converts every named class and interface in src, in
// source order.
func ExtractRecords(src *ast.Source) ([]Model, error) {
	var models []Model
	ast.Walk(src, func(n ast.Node) bool {
		switch decl := n.(type) {
		case *ast.ClassDecl:
			if decl.Name != "" && decl.Arguments != nil {
				doc := DocBefore(src, decl)
				rec := recordOf(decl.Name, decl.Arguments, &doc)
				models = append(models, Model{Record: rec, Doc: doc})
			}
			return true
		case *ast.InterfaceDecl:
			doc := DocBefore(src, decl)
			rec := recordOf(decl.Name, decl.Fields, &doc)
			models = append(models, Model{Record: rec, Doc: doc})
			return false
		}
		return true
	})
	if len(models) == 0 {
		return nil, &NotFoundError{Construct: "class or interface declaration"}
	}
	return models, nil
}

// DocBefore returns the doc comment that ends closest before target.
// Comments on fields of earlier declarations are not considered.
func DocBefore(root, target ast.Node) kdoc.Fields {
	var doc *ast.Comment
	ast.Walk(root, func(n ast.Node) bool {
		if n.Pos() >= target.Pos() {
			return false
		}
		if _, ok := n.(*ast.Argument); ok {
			return false
		}
		if c, ok := n.(*ast.Comment); ok && c.IsDoc && c.End() <= target.Pos() {
			doc = c
		}
		return true
	})
	if doc == nil {
		return kdoc.Fields{}
	}
	return doc.Doc
}

// recordOf builds a record from declared fields. Field doc comments are
// added to doc as parameters unless the type doc already covers them.
func recordOf(name string, args []*ast.Argument, doc *kdoc.Fields) Record {
	rec := Record{Name: name, Fields: make([]Field, 0, len(args))}
	for _, arg := range args {
		f := Field{
			Name:     arg.Name,
			Type:     TypeOf(arg.Type),
			Alias:    arg.Alias,
			Required: arg.Default == nil,
		}
		if arg.Default != nil {
			text := arg.DefaultText()
			f.Default = &text
		}
		rec.Fields = append(rec.Fields, f)

		if arg.Doc != nil && arg.Doc.Doc.Description != "" {
			if _, ok := doc.Param(arg.Name); !ok {
				doc.Parameters = append(slices.Clip(doc.Parameters), kdoc.Param{Name: arg.Name, Description: arg.Doc.Doc.Description})
			}
		}
	}
	return rec
}

// ExtractRoutes converts the first route block of src, nested blocks
// included.
func ExtractRoutes(src *ast.Source) (RouteTable, error) {
	block, ok := ast.Find[*ast.RouteBlock](src)
	if !ok {
		return RouteTable{}, &NotFoundError{Construct: "route block"}
	}
	var table RouteTable
	addRouteBlock(&table, "", block)
	return table, nil
}

// ExtractAllRoutes merges every route block of src in source order.
func ExtractAllRoutes(src *ast.Source) (RouteTable, error) {
	blocks := ast.FindAll[*ast.RouteBlock](src)
	if len(blocks) == 0 {
		return RouteTable{}, &NotFoundError{Construct: "route block"}
	}
	var table RouteTable
	for _, block := range blocks {
		addRouteBlock(&table, "", block)
	}
	return table, nil
}

func addRouteBlock(table *RouteTable, prefix string, block *ast.RouteBlock) {
	root := JoinPath(prefix, block.Path)
	for _, n := range block.Children() {
		switch v := n.(type) {
		case *ast.RouteMethod:
			path := JoinPath(root, v.SubPath)
			table.Add(path, OperationOf(path, v.Verb, v.Doc))
		case *ast.RouteBlock:
			addRouteBlock(table, root, v)
		}
	}
}

// JoinPath concatenates a route prefix and a sub-path without doubling the
// separator.
func JoinPath(prefix, sub string) string {
	switch {
	case sub == "":
		return prefix
	case prefix == "":
		return sub
	case strings.HasSuffix(prefix, "/") && strings.HasPrefix(sub, "/"):
		return prefix + sub[1:]
	}
	return prefix + sub
}

var pathParam = regexp.MustCompile(`\{([^}/]+)\}`)

// PathParams returns the template parameter names of path in order.
func PathParams(path string) []string {
	var names []string
	for _, m := range pathParam.FindAllStringSubmatch(path, -1) {
		names = append(names, m[1])
	}
	return names
}

// OperationOf converts a route method's doc comment into an operation.
// Undocumented parameters are located in the path when the template names
// them and in the query otherwise.
func OperationOf(path, verb string, doc kdoc.Fields) Operation {
	op := Operation{
		Method:      strings.ToLower(verb),
		Summary:     doc.Summary,
		Description: doc.Description,
		OperationID: doc.OperationID,
		Tags:        doc.Tags,
		Produces:    doc.Produces,
	}

	inPath := map[string]bool{}
	for _, name := range PathParams(path) {
		inPath[name] = true
	}
	for _, p := range doc.Parameters {
		param := Parameter{
			Name:        p.Name,
			In:          p.In,
			Type:        String,
			Description: p.Description,
		}
		if param.In == "" {
			param.In = "query"
			if inPath[p.Name] {
				param.In = "path"
			}
		}
		if p.Type != "" {
			param.Type = ParseKind(p.Type)
			if param.Type == Any {
				param.Type = ScalarOf(p.Type)
			}
		}
		param.Required = param.In == "path"
		if p.Required != nil {
			param.Required = *p.Required
		}
		op.Parameters = append(op.Parameters, param)
	}

	for _, r := range doc.Responses {
		op.Responses = append(op.Responses, Response{Code: r.Code, Description: r.Description, SchemaRef: r.SchemaRef})
	}

	if doc.Body != nil {
		op.BodyDescription = doc.Body.Text
		if doc.Body.SchemaRef != "" || doc.Body.ContentType != "" {
			ct := doc.Body.ContentType
			if ct == "" {
				ct = "application/json"
			}
			op.RequestBody = append(op.RequestBody, Content{ContentType: ct, SchemaRef: doc.Body.SchemaRef})
		}
	}
	return op
}
