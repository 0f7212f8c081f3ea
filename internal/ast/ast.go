// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package ast declares the lossless syntax tree produced by the parser.
//
// A tree is made of two kinds of nodes: a *Leaf wraps one lexer token, and a
// Block groups an ordered list of child nodes. Each Block variant is its own
// concrete type carrying a typed payload (names, bindings, route paths and
// so on) that is filled in once by its constructor. Rendering every leaf in
// order yields the original source text, trivia included.
package ast

import "github.com/api2spec/ktbridge/internal/lexer"

// Node is either a *Leaf or a Block.
type Node interface {
	// Pos returns the byte offset of the first character.
	Pos() int
	// End returns the byte offset just past the last character.
	End() int
	node()
}

// Block is a syntax construct with ordered children.
type Block interface {
	Node
	Kind() Kind
	Children() []Node
}

// Kind names a Block variant.
type Kind string

const (
	KindSource          Kind = "Source"
	KindPackageOrImport Kind = "PackageOrImport"
	KindAnnotation      Kind = "Annotation"
	KindIdentifier      Kind = "Identifier"
	KindType            Kind = "Type"
	KindStringLiteral   Kind = "StringLiteral"
	KindStringTemplate  Kind = "StringInterpolated"
	KindCharLiteral     Kind = "CharLiteral"
	KindComment         Kind = "Comment"
	KindArgument        Kind = "Argument"
	KindArguments       Kind = "Arguments"
	KindFunctionDecl    Kind = "FunctionDecl"
	KindClassDecl       Kind = "ClassDecl"
	KindInterfaceDecl   Kind = "InterfaceDecl"
	KindBody            Kind = "Body"
	KindRouteBlock      Kind = "RouteBlock"
	KindRouteMethod     Kind = "RouteMethod"
	KindIf              Kind = "If"
	KindWhile           Kind = "While"
	KindControl         Kind = "Control"
	KindFunctionCall    Kind = "FunctionCall"
	KindCallArgument    Kind = "CallArgument"
	KindMemberAccess    Kind = "MemberAccess"
	KindIndex           Kind = "Index"
	KindAssignment      Kind = "Assignment"
	KindDeclaration     Kind = "Declaration"
	KindPostfix         Kind = "Postfix"
	KindBinary          Kind = "BinaryExpression"
	KindNumber          Kind = "Number"
	KindLiteral         Kind = "Literal"
	KindSignal          Kind = "Signal"
	KindParenthesis     Kind = "Parenthesis"
)

// Leaf wraps a single token.
type Leaf struct {
	Token lexer.Token
}

// NewLeaf wraps tok.
func NewLeaf(tok lexer.Token) *Leaf {
	return &Leaf{Token: tok}
}

func (l *Leaf) Pos() int { return l.Token.Span.Start }
func (l *Leaf) End() int { return l.Token.Span.End }
func (*Leaf) node()      {}

// IsTrivia reports whether the leaf is whitespace or a comment token.
func (l *Leaf) IsTrivia() bool {
	return l.Token.Kind.IsTrivia()
}

type base struct {
	children []Node
}

func (b *base) Children() []Node { return b.children }
func (*base) node()              {}

func (b *base) Pos() int {
	if len(b.children) == 0 {
		return 0
	}
	return b.children[0].Pos()
}

func (b *base) End() int {
	if len(b.children) == 0 {
		return 0
	}
	return b.children[len(b.children)-1].End()
}

// significant returns the children that are not trivia leaves.
func significant(children []Node) []Node {
	out := make([]Node, 0, len(children))
	for _, c := range children {
		if leaf, ok := c.(*Leaf); ok && leaf.IsTrivia() {
			continue
		}
		out = append(out, c)
	}
	return out
}

func leafKind(n Node) (lexer.Kind, bool) {
	leaf, ok := n.(*Leaf)
	if !ok {
		return 0, false
	}
	return leaf.Token.Kind, true
}

func leafText(n Node) string {
	if leaf, ok := n.(*Leaf); ok {
		return leaf.Token.Text
	}
	return ""
}

// Source is the root of a parsed file. Its last child is the EOF leaf.
type Source struct {
	base
}

func NewSource(children []Node) *Source {
	return &Source{base{children}}
}

func (*Source) Kind() Kind { return KindSource }

// Declarations returns the top-level blocks in order.
func (s *Source) Declarations() []Block {
	var out []Block
	for _, c := range s.children {
		if b, ok := c.(Block); ok {
			out = append(out, b)
		}
	}
	return out
}

// Body is a braced statement list.
type Body struct {
	base
	Statements []Node
}

// NewBody builds a Body. Statements are the block children; braces,
// separators and lambda parameters stay leaves.
func NewBody(children []Node) *Body {
	b := &Body{base: base{children}}
	for _, c := range children {
		if _, ok := c.(Block); ok {
			b.Statements = append(b.Statements, c)
		}
	}
	return b
}

func (*Body) Kind() Kind { return KindBody }
