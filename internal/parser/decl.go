// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package parser

import (
	"github.com/api2spec/ktbridge/internal/ast"
	"github.com/api2spec/ktbridge/internal/lexer"
)

// RouteVerbs lists the handler names accepted inside a route block.
var RouteVerbs = map[string]bool{
	"get":     true,
	"post":    true,
	"put":     true,
	"patch":   true,
	"delete":  true,
	"head":    true,
	"options": true,
}

var modifiers = map[string]bool{
	"public":    true,
	"private":   true,
	"protected": true,
	"internal":  true,
	"open":      true,
	"abstract":  true,
	"final":     true,
	"override":  true,
	"data":      true,
	"inline":    true,
	"value":     true,
	"inner":     true,
	"external":  true,
	"const":     true,
	"lateinit":  true,
	"operator":  true,
	"infix":     true,
	"tailrec":   true,
	"actual":    true,
	"expect":    true,
}

func isModifier(tok lexer.Token) bool {
	switch tok.Kind {
	case lexer.Sealed, lexer.Suspend, lexer.Enum, lexer.Companion:
		return true
	case lexer.Identifier:
		return modifiers[tok.Text]
	}
	return false
}

// atModifiedDeclaration reports whether the cursor sits on one or more
// modifiers followed by a declaration keyword.
func (p *Parser) atModifiedDeclaration() bool {
	for i := 0; ; i++ {
		tok := p.peekSig(i)
		if isModifier(tok) {
			continue
		}
		if i == 0 {
			return false
		}
		switch tok.Kind {
		case lexer.Class, lexer.Object, lexer.Interface, lexer.Fun, lexer.Val, lexer.Var:
			return true
		}
		return false
	}
}

// Parse parses declarations until EOF.
func (p *Parser) Parse() (*ast.Source, error) {
	var children []ast.Node
	for {
		tok := p.peek()
		switch {
		case tok.Kind == lexer.EOF:
			children = append(children, p.advance())
			return ast.NewSource(children), nil
		case tok.Kind == lexer.Whitespace || tok.Kind == lexer.Semicolon:
			children = append(children, p.advance())
		default:
			decl, err := p.parseDeclaration()
			if err != nil {
				return nil, err
			}
			children = append(children, decl)
		}
	}
}

func (p *Parser) parseDeclaration() (ast.Node, error) {
	switch p.peek().Kind {
	case lexer.Package, lexer.Import:
		return p.parsePackageOrImport()
	}
	return p.parseStatement()
}

func (p *Parser) parseComment() *ast.Comment {
	return ast.NewComment([]ast.Node{p.advance()})
}

func (p *Parser) parsePackageOrImport() (ast.Node, error) {
	children := []ast.Node{p.advance()}
	p.sameLine(&children)

	leaf, err := p.expect(lexer.Identifier, "qualified name")
	if err != nil {
		return nil, err
	}
	children = append(children, leaf)
	for p.at(lexer.Dot) {
		children = append(children, p.advance())
		switch p.peek().Kind {
		case lexer.Identifier, lexer.Times:
			children = append(children, p.advance())
		default:
			return nil, p.errorf("name or '*'")
		}
	}
	if p.peekSameLine().Kind == lexer.As {
		p.sameLine(&children)
		children = append(children, p.advance())
		p.sameLine(&children)
		alias, err := p.expect(lexer.Identifier, "import alias")
		if err != nil {
			return nil, err
		}
		children = append(children, alias)
	}
	return ast.NewPackageOrImport(children), nil
}

func (p *Parser) parseIdentifier(what string) (*ast.Identifier, error) {
	leaf, err := p.expect(lexer.Identifier, what)
	if err != nil {
		return nil, err
	}
	return ast.NewIdentifier([]ast.Node{leaf}), nil
}

func (p *Parser) parseAnnotation() (*ast.Annotation, error) {
	children := []ast.Node{p.advance()}

	// Use-site targets: @field:SerialName, @get:JsonProperty.
	if p.at(lexer.Identifier) && p.tokens[p.pos+1].Kind == lexer.Colon {
		children = append(children, p.advance(), p.advance())
	}

	id, err := p.parseIdentifier("annotation name")
	if err != nil {
		return nil, err
	}
	children = append(children, id)
	for p.at(lexer.Dot) {
		children = append(children, p.advance())
		if id, err = p.parseIdentifier("annotation name"); err != nil {
			return nil, err
		}
		children = append(children, id)
	}

	if p.at(lexer.LParen) {
		if _, err := p.parseCallArguments(&children); err != nil {
			return nil, err
		}
	}
	return ast.NewAnnotation(children), nil
}

// parseModified parses modifiers followed by a class, interface, function
// or local declaration.
func (p *Parser) parseModified() (ast.Node, error) {
	var prefix []ast.Node
	for isModifier(p.peekSig(0)) {
		p.ws(&prefix)
		prefix = append(prefix, p.advance())
	}
	p.ws(&prefix)
	switch p.peek().Kind {
	case lexer.Class, lexer.Object:
		return p.parseClass(prefix)
	case lexer.Interface:
		return p.parseInterface(prefix)
	case lexer.Fun:
		return p.parseFunction(prefix)
	case lexer.Val, lexer.Var:
		return p.parseLocalDeclaration(prefix)
	}
	return nil, p.errorf("declaration")
}

func (p *Parser) parseClass(prefix []ast.Node) (ast.Node, error) {
	keyword := p.peek().Kind
	children := append(prefix, p.advance())
	if keyword == lexer.Class || p.peekSig(0).Kind == lexer.Identifier {
		p.ws(&children)
		id, err := p.parseIdentifier("class name")
		if err != nil {
			return nil, err
		}
		children = append(children, id)
	}

	if p.peekSig(0).Kind == lexer.LParen {
		p.ws(&children)
		args, err := p.parseArguments(false)
		if err != nil {
			return nil, err
		}
		children = append(children, args)
	}

	if p.peekSig(0).Kind == lexer.Colon {
		p.ws(&children)
		children = append(children, p.advance())
		if err := p.parseSupertypes(&children); err != nil {
			return nil, err
		}
	}

	if p.peekSig(0).Kind == lexer.LBrace {
		p.ws(&children)
		body, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		children = append(children, body)
	}
	return ast.NewClassDecl(children), nil
}

// parseSupertypes consumes ": A(), B<T>" after a class header. Supertypes
// are kept for round-tripping only.
func (p *Parser) parseSupertypes(children *[]ast.Node) error {
	for {
		p.ws(children)
		typ, err := p.parseType()
		if err != nil {
			return err
		}
		*children = append(*children, typ)
		if p.at(lexer.LParen) {
			if _, err := p.parseCallArguments(children); err != nil {
				return err
			}
		}
		if p.peekSig(0).Kind != lexer.Comma {
			return nil
		}
		p.ws(children)
		*children = append(*children, p.advance())
	}
}

func (p *Parser) parseInterface(prefix []ast.Node) (ast.Node, error) {
	children := append(prefix, p.advance())
	p.ws(&children)
	id, err := p.parseIdentifier("interface name")
	if err != nil {
		return nil, err
	}
	children = append(children, id)
	p.ws(&children)

	open, err := p.expect(lexer.LBrace, "'{'")
	if err != nil {
		return nil, err
	}
	children = append(children, open)

	for {
		p.ws(&children)
		tok := p.peek()
		switch {
		case tok.Kind == lexer.RBrace:
			children = append(children, p.advance())
			return ast.NewInterfaceDecl(children), nil
		case tok.Kind == lexer.Semicolon:
			children = append(children, p.advance())
		case tok.Kind == lexer.Fun:
			fn, err := p.parseFunction(nil)
			if err != nil {
				return nil, err
			}
			children = append(children, fn)
		case isModifier(tok) && p.atModifiedFunction():
			fn, err := p.parseModified()
			if err != nil {
				return nil, err
			}
			children = append(children, fn)
		case tok.IsDocComment() && !p.docPrecedesProperty():
			children = append(children, p.parseComment())
		case tok.Kind == lexer.Comment, tok.Kind == lexer.At,
			tok.Kind == lexer.Val, tok.Kind == lexer.Var, isModifier(tok):
			prop, err := p.parseArgument(true)
			if err != nil {
				return nil, err
			}
			children = append(children, prop)
		default:
			return nil, p.errorf("'val' or 'var'")
		}
	}
}

// docPrecedesProperty reports whether the doc comment under the cursor is
// followed by an interface property rather than a function.
func (p *Parser) docPrecedesProperty() bool {
	for i := 1; ; i++ {
		tok := p.peekSig(i)
		switch {
		case isModifier(tok), tok.Kind == lexer.At, tok.Kind == lexer.Identifier,
			tok.Kind == lexer.LParen, tok.Kind == lexer.RParen, tok.Kind == lexer.StringStart,
			tok.Kind == lexer.StringContent, tok.Kind == lexer.StringEnd, tok.Kind == lexer.Dot:
			continue
		case tok.Kind == lexer.Val, tok.Kind == lexer.Var:
			return true
		default:
			return false
		}
	}
}

func (p *Parser) atModifiedFunction() bool {
	for i := 0; ; i++ {
		tok := p.peekSig(i)
		if !isModifier(tok) {
			return tok.Kind == lexer.Fun
		}
	}
}

// parseArguments parses "( arg, arg, )".
func (p *Parser) parseArguments(property bool) (*ast.Arguments, error) {
	open, err := p.expect(lexer.LParen, "'('")
	if err != nil {
		return nil, err
	}
	children := []ast.Node{open}
	for {
		p.ws(&children)
		if p.at(lexer.RParen) {
			children = append(children, p.advance())
			return ast.NewArguments(children), nil
		}
		arg, err := p.parseArgument(property)
		if err != nil {
			return nil, err
		}
		children = append(children, arg)
		p.ws(&children)
		switch p.peek().Kind {
		case lexer.Comma:
			children = append(children, p.advance())
		case lexer.RParen:
		default:
			return nil, p.errorf("',' or ')'")
		}
	}
}

// parseArgument parses
//
//	[doc] {annotation} {modifier} [val|var] name : Type [= expr]
//
// With property set a binding is required and a "get() = expr" accessor may
// follow the type.
func (p *Parser) parseArgument(property bool) (*ast.Argument, error) {
	var children []ast.Node
	if p.peek().IsDocComment() {
		children = append(children, p.parseComment())
		p.ws(&children)
	}
	for p.at(lexer.At) {
		ann, err := p.parseAnnotation()
		if err != nil {
			return nil, err
		}
		children = append(children, ann)
		p.ws(&children)
	}
	for isModifier(p.peek()) && p.peekSig(1).Kind != lexer.Colon {
		children = append(children, p.advance())
		p.ws(&children)
	}

	switch p.peek().Kind {
	case lexer.Val, lexer.Var:
		children = append(children, p.advance())
		p.ws(&children)
	default:
		if property {
			return nil, p.errorf("'val' or 'var'")
		}
		if p.peek().Is("vararg") {
			children = append(children, p.advance())
			p.ws(&children)
		}
	}

	id, err := p.parseIdentifier("argument name")
	if err != nil {
		return nil, err
	}
	children = append(children, id)
	p.ws(&children)

	colon, err := p.expect(lexer.Colon, "':'")
	if err != nil {
		return nil, err
	}
	children = append(children, colon)
	p.ws(&children)

	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	children = append(children, typ)

	if property && p.peekSig(0).Is("get") {
		p.ws(&children)
		children = append(children, p.advance())
		p.ws(&children)
		for _, kind := range []lexer.Kind{lexer.LParen, lexer.RParen} {
			leaf, err := p.expect(kind, kind.String())
			if err != nil {
				return nil, err
			}
			children = append(children, leaf)
			p.ws(&children)
		}
	}

	if p.peekSig(0).Kind == lexer.Assign {
		p.ws(&children)
		children = append(children, p.advance())
		p.trivia(&children)
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		children = append(children, value)
	}
	return ast.NewArgument(children), nil
}

// parseType parses Name{.Name}[<Type{, Type}>][?].
func (p *Parser) parseType() (*ast.Type, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	var children []ast.Node
	id, err := p.parseIdentifier("type")
	if err != nil {
		return nil, err
	}
	children = append(children, id)
	for p.at(lexer.Dot) && p.tokens[p.pos+1].Kind == lexer.Identifier {
		children = append(children, p.advance())
		id, err := p.parseIdentifier("type")
		if err != nil {
			return nil, err
		}
		children = append(children, id)
	}

	if p.at(lexer.Less) {
		children = append(children, p.advance())
		for {
			p.ws(&children)
			switch p.peek().Kind {
			case lexer.Times:
				children = append(children, p.advance())
			case lexer.In, lexer.Out:
				children = append(children, p.advance())
				p.ws(&children)
				arg, err := p.parseType()
				if err != nil {
					return nil, err
				}
				children = append(children, arg)
			default:
				arg, err := p.parseType()
				if err != nil {
					return nil, err
				}
				children = append(children, arg)
			}
			p.ws(&children)
			if p.at(lexer.Comma) {
				children = append(children, p.advance())
				continue
			}
			closing, err := p.expect(lexer.Greater, "'>'")
			if err != nil {
				return nil, err
			}
			children = append(children, closing)
			break
		}
	}

	if p.at(lexer.Question) {
		children = append(children, p.advance())
	}
	return ast.NewType(children), nil
}

func (p *Parser) parseFunction(prefix []ast.Node) (ast.Node, error) {
	children := append(prefix, p.advance())
	p.ws(&children)

	if p.at(lexer.Less) {
		if err := p.skipTypeParameters(&children); err != nil {
			return nil, err
		}
		p.ws(&children)
	}

	id, err := p.parseIdentifier("function name")
	if err != nil {
		return nil, err
	}
	children = append(children, id)
	for p.at(lexer.Dot) {
		children = append(children, p.advance())
		id, err := p.parseIdentifier("function name")
		if err != nil {
			return nil, err
		}
		children = append(children, id)
	}
	p.ws(&children)

	params, err := p.parseArguments(false)
	if err != nil {
		return nil, err
	}
	children = append(children, params)

	if p.peekSig(0).Kind == lexer.Colon {
		p.ws(&children)
		children = append(children, p.advance())
		p.ws(&children)
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		children = append(children, typ)
	}

	switch {
	case p.peekSig(0).Kind == lexer.LBrace:
		p.ws(&children)
		body, err := p.parseBody()
		if err != nil {
			return nil, err
		}
		children = append(children, body)
	case p.peekSig(0).Kind == lexer.Assign:
		p.ws(&children)
		children = append(children, p.advance())
		p.trivia(&children)
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		children = append(children, expr)
	}
	return ast.NewFunctionDecl(children), nil
}

// skipTypeParameters consumes a balanced "<...>" list as plain leaves.
func (p *Parser) skipTypeParameters(children *[]ast.Node) error {
	depth := 0
	for {
		tok := p.peek()
		switch tok.Kind {
		case lexer.EOF:
			return p.errorf("'>'")
		case lexer.Less:
			depth++
		case lexer.Greater:
			depth--
		}
		*children = append(*children, p.advance())
		if depth == 0 {
			return nil
		}
	}
}

// parseRouteBlock parses
//
//	route("/path") { {[doc] verb[("/sub")] { ... } | route(...) { ... }} }
func (p *Parser) parseRouteBlock() (ast.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	children := []ast.Node{p.advance()}
	p.ws(&children)
	open, err := p.expect(lexer.LParen, "'('")
	if err != nil {
		return nil, err
	}
	children = append(children, open)
	p.trivia(&children)
	if !p.at(lexer.StringStart) {
		return nil, p.errorf("route path string")
	}
	path, err := p.parseStringLiteral()
	if err != nil {
		return nil, err
	}
	children = append(children, path)
	p.trivia(&children)
	closing, err := p.expect(lexer.RParen, "')'")
	if err != nil {
		return nil, err
	}
	children = append(children, closing)
	p.ws(&children)

	lbrace, err := p.expect(lexer.LBrace, "'{'")
	if err != nil {
		return nil, err
	}
	children = append(children, lbrace)

	for {
		p.ws(&children)
		tok := p.peek()
		switch {
		case tok.Kind == lexer.RBrace:
			children = append(children, p.advance())
			return ast.NewRouteBlock(children), nil
		case tok.IsDocComment():
			prefix := []ast.Node{p.parseComment()}
			p.ws(&prefix)
			if p.peek().Is("route") {
				children = append(children, prefix...)
				continue
			}
			method, err := p.parseRouteMethod(prefix)
			if err != nil {
				return nil, err
			}
			children = append(children, method)
		case tok.Is("route") && p.peekSig(1).Kind == lexer.LParen:
			nested, err := p.parseRouteBlock()
			if err != nil {
				return nil, err
			}
			children = append(children, nested)
		case tok.Kind == lexer.Identifier:
			method, err := p.parseRouteMethod(nil)
			if err != nil {
				return nil, err
			}
			children = append(children, method)
		default:
			return nil, p.errorf("route method")
		}
	}
}

func (p *Parser) parseRouteMethod(prefix []ast.Node) (ast.Node, error) {
	children := prefix
	tok := p.peek()
	if tok.Kind != lexer.Identifier || !RouteVerbs[tok.Text] {
		return nil, p.errorf("route method (get, post, put, patch, delete, head, options)")
	}
	children = append(children, ast.NewIdentifier([]ast.Node{p.advance()}))
	p.sameLine(&children)

	if p.at(lexer.LParen) {
		children = append(children, p.advance())
		p.trivia(&children)
		if !p.at(lexer.StringStart) {
			return nil, p.errorf("route sub-path string")
		}
		sub, err := p.parseStringLiteral()
		if err != nil {
			return nil, err
		}
		children = append(children, sub)
		p.trivia(&children)
		closing, err := p.expect(lexer.RParen, "')'")
		if err != nil {
			return nil, err
		}
		children = append(children, closing)
		p.ws(&children)
	}

	open, err := p.expect(lexer.LBrace, "'{'")
	if err != nil {
		return nil, err
	}
	children = append(children, open)

	// The handler body is opaque; only brace balance matters.
	depth := 1
	for depth > 0 {
		tok := p.peek()
		switch tok.Kind {
		case lexer.EOF:
			return nil, p.errorf("'}'")
		case lexer.LBrace:
			depth++
		case lexer.RBrace:
			depth--
		}
		children = append(children, p.advance())
	}
	return ast.NewRouteMethod(children), nil
}
