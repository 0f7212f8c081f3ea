// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package ast

import (
	"strings"

	"github.com/api2spec/ktbridge/internal/kdoc"
	"github.com/api2spec/ktbridge/internal/lexer"
)

// Binding is the val/var marker of a field or local.
type Binding int

const (
	BindingNone Binding = iota
	BindingVal
	BindingVar
)

func (b Binding) String() string {
	switch b {
	case BindingVal:
		return "val"
	case BindingVar:
		return "var"
	default:
		return "none"
	}
}

// PackageOrImport is a "package a.b" or "import a.b.*" directive.
type PackageOrImport struct {
	base
	Keyword string
	Path    string
}

func NewPackageOrImport(children []Node) *PackageOrImport {
	p := &PackageOrImport{base: base{children}}
	var path strings.Builder
	for i, c := range significant(children) {
		if i == 0 {
			p.Keyword = leafText(c)
			continue
		}
		path.WriteString(Code(c))
	}
	p.Path = path.String()
	return p
}

func (*PackageOrImport) Kind() Kind { return KindPackageOrImport }

// Identifier is a bare name.
type Identifier struct {
	base
	Name string
}

func NewIdentifier(children []Node) *Identifier {
	id := &Identifier{base: base{children}}
	for _, c := range children {
		if k, ok := leafKind(c); ok && !k.IsTrivia() {
			id.Name = leafText(c)
			break
		}
	}
	return id
}

func (*Identifier) Kind() Kind { return KindIdentifier }

// Type is a possibly generic, possibly nullable type reference.
type Type struct {
	base
	Name     string
	Args     []*Type
	Nullable bool
}

func NewType(children []Node) *Type {
	t := &Type{base: base{children}}
	var name strings.Builder
	inArgs := false
	for _, c := range significant(children) {
		switch n := c.(type) {
		case *Identifier:
			if !inArgs {
				name.WriteString(n.Name)
			}
		case *Type:
			t.Args = append(t.Args, n)
		case *Leaf:
			switch n.Token.Kind {
			case lexer.Dot:
				if !inArgs {
					name.WriteString(".")
				}
			case lexer.Less:
				inArgs = true
			case lexer.Greater:
				inArgs = false
			case lexer.Question:
				t.Nullable = true
			}
		}
	}
	t.Name = name.String()
	return t
}

func (*Type) Kind() Kind { return KindType }

// String renders the type without trivia, e.g. "Map<String, Int>?".
func (t *Type) String() string {
	var sb strings.Builder
	sb.WriteString(t.Name)
	if len(t.Args) > 0 {
		sb.WriteString("<")
		for i, a := range t.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.String())
		}
		sb.WriteString(">")
	}
	if t.Nullable {
		sb.WriteString("?")
	}
	return sb.String()
}

// SimpleName returns the last segment of a qualified name.
func (t *Type) SimpleName() string {
	if i := strings.LastIndex(t.Name, "."); i >= 0 {
		return t.Name[i+1:]
	}
	return t.Name
}

// StringLiteral is a quoted string. Value is the raw text between the quotes.
type StringLiteral struct {
	base
	Value        string
	Raw          bool
	Interpolated bool
}

func NewStringLiteral(children []Node) *StringLiteral {
	s := &StringLiteral{base: base{children}}
	var value strings.Builder
	for i, c := range children {
		if i == 0 {
			s.Raw = leafText(c) == `"""`
			continue
		}
		if k, ok := leafKind(c); ok && k == lexer.StringEnd {
			break
		}
		if _, ok := c.(*StringTemplate); ok {
			s.Interpolated = true
		}
		value.WriteString(Code(c))
	}
	s.Value = value.String()
	return s
}

func (*StringLiteral) Kind() Kind { return KindStringLiteral }

// StringTemplate is a "$name" or "${expr}" part of a string.
type StringTemplate struct {
	base
	Name string
	Expr Node
}

func NewStringTemplate(children []Node) *StringTemplate {
	st := &StringTemplate{base: base{children}}
	sig := significant(children)
	if len(sig) >= 2 {
		if k, _ := leafKind(sig[1]); k == lexer.Identifier {
			st.Name = leafText(sig[1])
		} else if len(sig) >= 3 {
			st.Expr = sig[2]
		}
	}
	return st
}

func (*StringTemplate) Kind() Kind { return KindStringTemplate }

// CharLiteral is a quoted character; Value keeps escapes as written.
type CharLiteral struct {
	base
	Value string
}

func NewCharLiteral(children []Node) *CharLiteral {
	c := &CharLiteral{base: base{children}}
	for _, n := range children {
		if k, ok := leafKind(n); ok && k == lexer.Char {
			c.Value = leafText(n)
		}
	}
	return c
}

func (*CharLiteral) Kind() Kind { return KindCharLiteral }

// Comment wraps a comment token. Doc comments are interpreted eagerly.
type Comment struct {
	base
	Text  string
	IsDoc bool
	Doc   kdoc.Fields
}

func NewComment(children []Node) *Comment {
	c := &Comment{base: base{children}}
	for _, n := range children {
		if leaf, ok := n.(*Leaf); ok && leaf.Token.Kind == lexer.Comment {
			c.Text = leaf.Token.Text
			c.IsDoc = leaf.Token.IsDocComment()
		}
	}
	if c.IsDoc {
		c.Doc = kdoc.Parse(c.Text)
	}
	return c
}

func (*Comment) Kind() Kind { return KindComment }

// Annotation is "@Name" or "@Name(args)". Alias is the first string
// argument, as in @SerialName("cat_name") or @Json(name = "cat_name").
type Annotation struct {
	base
	Name  string
	Args  []*CallArgument
	Alias string
}

func NewAnnotation(children []Node) *Annotation {
	a := &Annotation{base: base{children}}
	for _, c := range children {
		switch n := c.(type) {
		case *Identifier:
			a.Name = n.Name
		case *CallArgument:
			a.Args = append(a.Args, n)
			if s, ok := n.Value.(*StringLiteral); ok && a.Alias == "" {
				a.Alias = s.Value
			}
		}
	}
	return a
}

func (*Annotation) Kind() Kind { return KindAnnotation }

// Argument is a constructor parameter, function parameter or interface
// property. For "val x: T get() = expr" the getter body becomes Default.
type Argument struct {
	base
	Binding     Binding
	Name        string
	Type        *Type
	Default     Node
	Alias       string
	Annotations []*Annotation
	Doc         *Comment
	Getter      bool
}

func NewArgument(children []Node) *Argument {
	a := &Argument{base: base{children}}
	afterAssign := false
	for _, c := range significant(children) {
		if afterAssign {
			a.Default = c
			afterAssign = false
			continue
		}
		switch n := c.(type) {
		case *Comment:
			if n.IsDoc {
				a.Doc = n
			}
		case *Annotation:
			a.Annotations = append(a.Annotations, n)
			if a.Alias == "" && n.Alias != "" {
				a.Alias = n.Alias
			}
		case *Identifier:
			if a.Name == "" {
				a.Name = n.Name
			}
		case *Type:
			a.Type = n
		case *Leaf:
			switch {
			case n.Token.Kind == lexer.Val:
				a.Binding = BindingVal
			case n.Token.Kind == lexer.Var:
				a.Binding = BindingVar
			case n.Token.Is("get"):
				a.Getter = true
			case n.Token.Kind == lexer.Assign:
				afterAssign = true
			}
		}
	}
	return a
}

func (*Argument) Kind() Kind { return KindArgument }

// DefaultText returns the default expression as written, or "" if absent.
func (a *Argument) DefaultText() string {
	if a.Default == nil {
		return ""
	}
	return strings.TrimSpace(Code(a.Default))
}

// Arguments is a parenthesized argument declaration list.
type Arguments struct {
	base
	Args []*Argument
}

func NewArguments(children []Node) *Arguments {
	a := &Arguments{base: base{children}}
	for _, c := range children {
		if arg, ok := c.(*Argument); ok {
			a.Args = append(a.Args, arg)
		}
	}
	return a
}

func (*Arguments) Kind() Kind { return KindArguments }

// FunctionDecl is "fun [Receiver.]Name(params)[: Type] body".
type FunctionDecl struct {
	base
	Modifiers  []string
	Receiver   string
	Name       string
	Params     *Arguments
	ReturnType *Type
	Body       *Body
	Expr       Node
}

func NewFunctionDecl(children []Node) *FunctionDecl {
	f := &FunctionDecl{base: base{children}}
	var names []string
	seenFun := false
	afterAssign := false
	for _, c := range significant(children) {
		if afterAssign {
			f.Expr = c
			afterAssign = false
			continue
		}
		switch n := c.(type) {
		case *Leaf:
			switch {
			case n.Token.Kind == lexer.Fun:
				seenFun = true
			case !seenFun:
				f.Modifiers = append(f.Modifiers, n.Token.Text)
			case n.Token.Kind == lexer.Assign:
				afterAssign = true
			}
		case *Identifier:
			if f.Params == nil {
				names = append(names, n.Name)
			}
		case *Arguments:
			f.Params = n
		case *Type:
			f.ReturnType = n
		case *Body:
			f.Body = n
		}
	}
	if len(names) > 0 {
		f.Name = names[len(names)-1]
		f.Receiver = strings.Join(names[:len(names)-1], ".")
	}
	return f
}

func (*FunctionDecl) Kind() Kind { return KindFunctionDecl }

// ClassDecl is "[modifiers] class Name[(fields)] [body]". Object
// declarations share the shape; a companion object may have no Name.
type ClassDecl struct {
	base
	Modifiers []string
	Data      bool
	Name      string
	Arguments []*Argument
	Body      *Body
}

func NewClassDecl(children []Node) *ClassDecl {
	cd := &ClassDecl{base: base{children}}
	seenClass := false
	for _, c := range significant(children) {
		switch n := c.(type) {
		case *Leaf:
			if n.Token.Kind == lexer.Class || n.Token.Kind == lexer.Object {
				seenClass = true
			} else if !seenClass {
				cd.Modifiers = append(cd.Modifiers, n.Token.Text)
				if n.Token.Is("data") {
					cd.Data = true
				}
			}
		case *Identifier:
			if cd.Name == "" {
				cd.Name = n.Name
			}
		case *Arguments:
			cd.Arguments = n.Args
		case *Body:
			cd.Body = n
		}
	}
	return cd
}

func (*ClassDecl) Kind() Kind { return KindClassDecl }

// InterfaceDecl is "interface Name { members }". Property members are
// collected in Fields, function members in Methods.
type InterfaceDecl struct {
	base
	Modifiers []string
	Name      string
	Fields    []*Argument
	Methods   []*FunctionDecl
}

func NewInterfaceDecl(children []Node) *InterfaceDecl {
	in := &InterfaceDecl{base: base{children}}
	seenKeyword := false
	for _, c := range significant(children) {
		switch n := c.(type) {
		case *Leaf:
			if n.Token.Kind == lexer.Interface {
				seenKeyword = true
			} else if !seenKeyword {
				in.Modifiers = append(in.Modifiers, n.Token.Text)
			}
		case *Identifier:
			if in.Name == "" {
				in.Name = n.Name
			}
		case *Argument:
			in.Fields = append(in.Fields, n)
		case *FunctionDecl:
			in.Methods = append(in.Methods, n)
		}
	}
	return in
}

func (*InterfaceDecl) Kind() Kind { return KindInterfaceDecl }

// RouteBlock is `route("/path") { ... }`. Nested route blocks extend Path.
type RouteBlock struct {
	base
	Path    string
	Methods []*RouteMethod
	Nested  []*RouteBlock
}

func NewRouteBlock(children []Node) *RouteBlock {
	r := &RouteBlock{base: base{children}}
	for _, c := range children {
		switch n := c.(type) {
		case *StringLiteral:
			if r.Path == "" {
				r.Path = n.Value
			}
		case *RouteMethod:
			r.Methods = append(r.Methods, n)
		case *RouteBlock:
			r.Nested = append(r.Nested, n)
		}
	}
	return r
}

func (*RouteBlock) Kind() Kind { return KindRouteBlock }

// RouteMethod is `verb[("/sub")] { ... }` with an optional preceding doc
// comment. The handler body is kept as opaque leaves.
type RouteMethod struct {
	base
	Verb    string
	SubPath string
	HasDoc  bool
	Doc     kdoc.Fields
}

func NewRouteMethod(children []Node) *RouteMethod {
	m := &RouteMethod{base: base{children}}
	for _, c := range children {
		switch n := c.(type) {
		case *Comment:
			if n.IsDoc {
				m.Doc = n.Doc
				m.HasDoc = true
			}
		case *Identifier:
			if m.Verb == "" {
				m.Verb = n.Name
			}
		case *StringLiteral:
			if m.SubPath == "" {
				m.SubPath = n.Value
			}
		}
	}
	m.Doc.Method = m.Verb
	return m
}

func (*RouteMethod) Kind() Kind { return KindRouteMethod }
