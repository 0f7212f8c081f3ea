// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package parser builds an ast.Source from lexer tokens.
//
// The parser is a single-cursor recursive descent over the token slice. It
// never backtracks and never recovers: the first mismatch is returned as a
// *SyntaxError. Every consumed token ends up as a leaf of the resulting
// tree, so ast.Code(source) reproduces the input exactly.
package parser

import (
	"fmt"
	"strings"

	"github.com/api2spec/ktbridge/internal/ast"
	"github.com/api2spec/ktbridge/internal/lexer"
)

// DefaultMaxDepth bounds syntactic nesting.
const DefaultMaxDepth = 256

// SyntaxError reports the first token that did not fit the grammar.
type SyntaxError struct {
	Expected string
	Got      lexer.Token
	Offset   int
	// Msg replaces the expected/got wording when set.
	Msg string
}

func (e *SyntaxError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("syntax error at position %d: %s", e.Offset, e.Msg)
	}
	return fmt.Sprintf("expected %s, got %s at position %d", e.Expected, e.Got, e.Offset)
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth sets the maximum nesting of blocks and expressions.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// Parser holds the cursor over one token slice.
type Parser struct {
	tokens   []lexer.Token
	pos      int
	depth    int
	maxDepth int
}

// New creates a Parser. A missing trailing EOF token is supplied.
func New(tokens []lexer.Token, opts ...Option) *Parser {
	if n := len(tokens); n == 0 || tokens[n-1].Kind != lexer.EOF {
		end := 0
		if n > 0 {
			end = tokens[n-1].Span.End
		}
		tokens = append(tokens[:n:n], lexer.Token{Kind: lexer.EOF, Span: lexer.Span{Start: end, End: end}})
	}
	p := &Parser{tokens: tokens, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses a complete token stream.
func Parse(tokens []lexer.Token, opts ...Option) (*ast.Source, error) {
	return New(tokens, opts...).Parse()
}

// ParseString lexes and parses src with the same depth limit for both.
func ParseString(src string, opts ...Option) (*ast.Source, error) {
	p := New(nil, opts...)
	tokens, err := lexer.Tokenize(src, lexer.WithMaxDepth(p.maxDepth))
	if err != nil {
		return nil, err
	}
	p = New(tokens, opts...)
	return p.Parse()
}

// --- cursor helpers ---

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) at(kind lexer.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) advance() *ast.Leaf {
	tok := p.tokens[p.pos]
	if tok.Kind != lexer.EOF {
		p.pos++
	}
	return ast.NewLeaf(tok)
}

func (p *Parser) expect(kind lexer.Kind, what string) (*ast.Leaf, error) {
	if !p.at(kind) {
		return nil, p.errorf(what)
	}
	return p.advance(), nil
}

func (p *Parser) errorf(expected string) error {
	tok := p.peek()
	return &SyntaxError{Expected: expected, Got: tok, Offset: tok.Span.Start}
}

func (p *Parser) enter() error {
	if p.depth >= p.maxDepth {
		tok := p.peek()
		return &SyntaxError{Got: tok, Offset: tok.Span.Start, Msg: "nesting too deep"}
	}
	p.depth++
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// isPlain reports whether tok can be skipped as layout: whitespace or a
// comment that is not a doc comment.
func isPlain(tok lexer.Token) bool {
	return tok.Kind == lexer.Whitespace || (tok.Kind == lexer.Comment && !tok.IsDocComment())
}

// ws absorbs whitespace and plain comments.
func (p *Parser) ws(children *[]ast.Node) {
	for isPlain(p.peek()) {
		*children = append(*children, p.advance())
	}
}

// trivia absorbs whitespace and every comment, doc comments included.
func (p *Parser) trivia(children *[]ast.Node) {
	for p.peek().Kind.IsTrivia() {
		*children = append(*children, p.advance())
	}
}

// sameLine absorbs one whitespace token if it does not cross a line.
func (p *Parser) sameLine(children *[]ast.Node) {
	if tok := p.peek(); tok.Kind == lexer.Whitespace && !strings.Contains(tok.Text, "\n") {
		*children = append(*children, p.advance())
	}
}

// peekSig returns the n-th token (0-based) after the cursor that is not
// whitespace or a plain comment.
func (p *Parser) peekSig(n int) lexer.Token {
	for i := p.pos; i < len(p.tokens); i++ {
		if isPlain(p.tokens[i]) {
			continue
		}
		if n == 0 {
			return p.tokens[i]
		}
		n--
	}
	return p.tokens[len(p.tokens)-1]
}

// peekSameLine returns the next token, looking past one whitespace token
// only when it stays on the current line.
func (p *Parser) peekSameLine() lexer.Token {
	tok := p.peek()
	if tok.Kind == lexer.Whitespace && !strings.Contains(tok.Text, "\n") {
		return p.tokens[p.pos+1]
	}
	return tok
}

// peekOverSpace returns the next token, looking past at most one whitespace
// token of any shape.
func (p *Parser) peekOverSpace() lexer.Token {
	if tok := p.peek(); tok.Kind == lexer.Whitespace {
		return p.tokens[p.pos+1]
	}
	return p.peek()
}
