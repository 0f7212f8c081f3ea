// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package ast

import (
	"fmt"
	"strings"

	"github.com/api2spec/ktbridge/internal/lexer"
)

// Code renders the exact source text covered by n.
func Code(n Node) string {
	var sb strings.Builder
	writeCode(&sb, n)
	return sb.String()
}

func writeCode(sb *strings.Builder, n Node) {
	switch v := n.(type) {
	case nil:
	case *Leaf:
		sb.WriteString(v.Token.Text)
	case Block:
		for _, c := range v.Children() {
			writeCode(sb, c)
		}
	}
}

// Walk visits n and its descendants depth-first in source order. If fn
// returns false the children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	if b, ok := n.(Block); ok {
		for _, c := range b.Children() {
			Walk(c, fn)
		}
	}
}

// Find returns the first block of type T in depth-first order.
func Find[T Block](root Node) (T, bool) {
	var found T
	ok := false
	Walk(root, func(n Node) bool {
		if ok {
			return false
		}
		if t, match := n.(T); match {
			found, ok = t, true
			return false
		}
		return true
	})
	return found, ok
}

// FindAll returns every block of type T in depth-first order. Matches are
// not searched for nested matches.
func FindAll[T Block](root Node) []T {
	var out []T
	Walk(root, func(n Node) bool {
		if t, match := n.(T); match {
			out = append(out, t)
			return false
		}
		return true
	})
	return out
}

// Tokens flattens n back into its leaf tokens.
func Tokens(n Node) []lexer.Token {
	var out []lexer.Token
	Walk(n, func(n Node) bool {
		if leaf, ok := n.(*Leaf); ok {
			out = append(out, leaf.Token)
		}
		return true
	})
	return out
}

// Dump renders an indented outline of the tree. Whitespace leaves are
// omitted.
func Dump(n Node) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

func dump(sb *strings.Builder, n Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := n.(type) {
	case *Leaf:
		if v.Token.Kind == lexer.Whitespace {
			return
		}
		fmt.Fprintf(sb, "%s%s\n", indent, v.Token)
	case Block:
		fmt.Fprintf(sb, "%s%s%s\n", indent, v.Kind(), describe(v))
		for _, c := range v.Children() {
			dump(sb, c, depth+1)
		}
	}
}

func describe(b Block) string {
	switch v := b.(type) {
	case *Identifier:
		return " " + v.Name
	case *Type:
		return " " + v.String()
	case *StringLiteral:
		return fmt.Sprintf(" %q", v.Value)
	case *PackageOrImport:
		return fmt.Sprintf(" %s %s", v.Keyword, v.Path)
	case *Annotation:
		if v.Alias != "" {
			return fmt.Sprintf(" @%s(%q)", v.Name, v.Alias)
		}
		return " @" + v.Name
	case *Argument:
		return fmt.Sprintf(" %s %s", v.Binding, v.Name)
	case *FunctionDecl:
		return " " + v.Name
	case *ClassDecl:
		return " " + v.Name
	case *InterfaceDecl:
		return " " + v.Name
	case *RouteBlock:
		return fmt.Sprintf(" %q", v.Path)
	case *RouteMethod:
		return fmt.Sprintf(" %s %q", v.Verb, v.SubPath)
	case *Control:
		return " " + string(v.Op)
	case *BinaryExpression:
		return fmt.Sprintf(" %s %s", v.Family, v.Op)
	case *Number:
		return fmt.Sprintf(" %s %s", v.Form, v.Text)
	case *Literal:
		return " " + v.Value
	case *Signal:
		return " " + v.Op
	case *Postfix:
		return " " + v.Op
	case *Assignment:
		return " " + v.Op
	case *Declaration:
		return fmt.Sprintf(" %s %s", v.Binding, v.Name)
	case *MemberAccess:
		return " ." + v.Name
	case *FunctionCall:
		if v.Name != "" {
			return " " + v.Name
		}
	case *Comment:
		if v.IsDoc {
			return " doc"
		}
	}
	return ""
}
