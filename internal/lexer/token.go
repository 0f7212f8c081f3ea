// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package lexer

import "fmt"

// Kind classifies a token.
type Kind int

const (
	EOF Kind = iota
	Unknown
	Whitespace
	Comment
	Identifier
	Int
	Double

	StringStart
	StringContent
	StringInterpolation
	StringEnd
	CharStart
	Char
	CharEnd

	// Keywords.
	Fun
	Val
	Var
	Return
	Class
	Interface
	Enum
	AndBitwise
	OrBitwise
	Boolean
	As
	Null
	Object
	Typealias
	Constructor
	Sealed
	In
	Out
	Super
	This
	Try
	Catch
	Finally
	Throw
	Break
	Continue
	Package
	Import
	If
	Else
	When
	For
	While
	Do
	Suspend
	Companion

	// Symbols.
	Reserved
	RangeUntil
	EqualsRef
	NotEqualsRef
	Equals
	NotEquals
	LessEqual
	GreaterEqual
	Increment
	Decrement
	And
	Or
	AddAssign
	SubAssign
	MulAssign
	DivAssign
	ModAssign
	Range
	Arrow
	DoubleArrow
	DoubleColon
	DoubleSemicolon
	LParen
	RParen
	LBrace
	RBrace
	LSquare
	RSquare
	Colon
	Assign
	Plus
	Minus
	Question
	Times
	Divide
	Mod
	Less
	Greater
	At
	Comma
	Semicolon
	Dot
	Bang
)

var kindNames = map[Kind]string{
	EOF:                 "EOF",
	Unknown:             "Unknown",
	Whitespace:          "Whitespace",
	Comment:             "Comment",
	Identifier:          "Identifier",
	Int:                 "Int",
	Double:              "Double",
	StringStart:         "StringStart",
	StringContent:       "StringContent",
	StringInterpolation: "StringInterpolation",
	StringEnd:           "StringEnd",
	CharStart:           "CharStart",
	Char:                "Char",
	CharEnd:             "CharEnd",
}

// keywords maps reserved words to their kinds. Soft keywords such as
// "data", "get" or "private" lex as identifiers.
var keywords = map[string]Kind{
	"fun":         Fun,
	"val":         Val,
	"var":         Var,
	"return":      Return,
	"class":       Class,
	"interface":   Interface,
	"enum":        Enum,
	"and":         AndBitwise,
	"or":          OrBitwise,
	"true":        Boolean,
	"false":       Boolean,
	"as":          As,
	"null":        Null,
	"object":      Object,
	"typealias":   Typealias,
	"constructor": Constructor,
	"sealed":      Sealed,
	"in":          In,
	"out":         Out,
	"super":       Super,
	"this":        This,
	"try":         Try,
	"catch":       Catch,
	"finally":     Finally,
	"throw":       Throw,
	"break":       Break,
	"continue":    Continue,
	"package":     Package,
	"import":      Import,
	"if":          If,
	"else":        Else,
	"when":        When,
	"for":         For,
	"while":       While,
	"do":          Do,
	"suspend":     Suspend,
	"companion":   Companion,
}

type symbol struct {
	text string
	kind Kind
}

// symbols is ordered so that longer spellings are tried first.
var symbols = []symbol{
	{"...", Reserved},
	{"..<", RangeUntil},
	{"===", EqualsRef},
	{"!==", NotEqualsRef},
	{"==", Equals},
	{"!=", NotEquals},
	{"<=", LessEqual},
	{">=", GreaterEqual},
	{"++", Increment},
	{"--", Decrement},
	{"&&", And},
	{"||", Or},
	{"+=", AddAssign},
	{"-=", SubAssign},
	{"*=", MulAssign},
	{"/=", DivAssign},
	{"%=", ModAssign},
	{"..", Range},
	{"->", Arrow},
	{"=>", DoubleArrow},
	{"::", DoubleColon},
	{";;", DoubleSemicolon},
	{"(", LParen},
	{")", RParen},
	{"{", LBrace},
	{"}", RBrace},
	{"[", LSquare},
	{"]", RSquare},
	{":", Colon},
	{"=", Assign},
	{"+", Plus},
	{"-", Minus},
	{"?", Question},
	{"*", Times},
	{"/", Divide},
	{"%", Mod},
	{"<", Less},
	{">", Greater},
	{"@", At},
	{",", Comma},
	{";", Semicolon},
	{".", Dot},
	{"!", Bang},
}

func init() {
	for word, kind := range keywords {
		if kind != Boolean {
			kindNames[kind] = "'" + word + "'"
		}
	}
	kindNames[Boolean] = "Boolean"
	for _, s := range symbols {
		kindNames[s.kind] = "'" + s.text + "'"
	}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= Fun && k <= Companion
}

// IsTrivia reports whether k carries no syntax of its own.
func (k Kind) IsTrivia() bool {
	return k == Whitespace || k == Comment
}

// Span is a half-open byte range [Start, End) into the source.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns the number of bytes covered.
func (s Span) Len() int {
	return s.End - s.Start
}

// Token is a single lexeme. Text is the exact source slice covered by Span.
type Token struct {
	Kind Kind
	Text string
	Span Span
}

func (t Token) String() string {
	switch {
	case t.Kind == EOF:
		return "end of input"
	case t.Kind.IsKeyword() || t.Kind >= Reserved:
		return "'" + t.Text + "'"
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}

// IsDocComment reports whether t is a "/**" documentation comment.
func (t Token) IsDocComment() bool {
	return t.Kind == Comment && len(t.Text) >= 5 && t.Text[:3] == "/**"
}

// Is reports whether t is an identifier spelled name.
func (t Token) Is(name string) bool {
	return t.Kind == Identifier && t.Text == name
}
