// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package parser

import (
	"github.com/api2spec/ktbridge/internal/ast"
	"github.com/api2spec/ktbridge/internal/lexer"
)

func (p *Parser) parseStatement() (ast.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	tok := p.peek()
	switch {
	case tok.Kind == lexer.Comment:
		return p.parseComment(), nil
	case tok.Kind == lexer.At:
		return p.parseAnnotation()
	case tok.Kind == lexer.Class, tok.Kind == lexer.Object:
		return p.parseClass(nil)
	case tok.Kind == lexer.Interface:
		return p.parseInterface(nil)
	case tok.Kind == lexer.Fun:
		return p.parseFunction(nil)
	case tok.Kind == lexer.Val, tok.Kind == lexer.Var:
		return p.parseLocalDeclaration(nil)
	case tok.Kind == lexer.If:
		return p.parseIf()
	case tok.Kind == lexer.While:
		return p.parseWhile()
	case tok.Kind == lexer.Return, tok.Kind == lexer.Break, tok.Kind == lexer.Continue:
		return p.parseControl()
	case isModifier(tok) && p.atModifiedDeclaration():
		return p.parseModified()
	case tok.Is("route") && p.peekSig(1).Kind == lexer.LParen:
		return p.parseRouteBlock()
	}
	return p.parseExpressionStatement()
}

// parseBody parses "{ statements }".
func (p *Parser) parseBody() (*ast.Body, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	open, err := p.expect(lexer.LBrace, "'{'")
	if err != nil {
		return nil, err
	}
	children := []ast.Node{open}
	p.lambdaParameters(&children)

	for {
		tok := p.peek()
		switch tok.Kind {
		case lexer.Whitespace, lexer.Semicolon, lexer.Comma:
			children = append(children, p.advance())
		case lexer.RBrace:
			children = append(children, p.advance())
			return ast.NewBody(children), nil
		case lexer.EOF:
			return nil, p.errorf("'}'")
		default:
			stmt, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			children = append(children, stmt)
		}
	}
}

// lambdaParameters consumes a leading "a, b ->" parameter list of a lambda
// body, if there is one.
func (p *Parser) lambdaParameters(children *[]ast.Node) {
	n := 0
	for {
		tok := p.peekSig(n)
		switch {
		case tok.Kind == lexer.Identifier && n%2 == 0:
		case tok.Kind == lexer.Comma && n%2 == 1:
		case tok.Kind == lexer.Arrow && n%2 == 1:
			for i := 0; i <= n; i++ {
				p.ws(children)
				*children = append(*children, p.advance())
			}
			return
		default:
			return
		}
		n++
	}
}

// parseBranch parses the body of if/else/while: a braced block or one
// statement.
func (p *Parser) parseBranch() (ast.Node, error) {
	if p.at(lexer.LBrace) {
		return p.parseBody()
	}
	return p.parseStatement()
}

func (p *Parser) parseCondition(children *[]ast.Node) (ast.Node, error) {
	p.ws(children)
	open, err := p.expect(lexer.LParen, "'('")
	if err != nil {
		return nil, err
	}
	*children = append(*children, open)
	p.trivia(children)
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	*children = append(*children, cond)
	p.trivia(children)
	closing, err := p.expect(lexer.RParen, "')'")
	if err != nil {
		return nil, err
	}
	*children = append(*children, closing)
	p.ws(children)
	return cond, nil
}

func (p *Parser) parseIf() (ast.Node, error) {
	children := []ast.Node{p.advance()}
	cond, err := p.parseCondition(&children)
	if err != nil {
		return nil, err
	}
	then, err := p.parseBranch()
	if err != nil {
		return nil, err
	}
	children = append(children, then)

	var els ast.Node
	if p.peekSig(0).Kind == lexer.Else {
		p.ws(&children)
		children = append(children, p.advance())
		p.ws(&children)
		if p.at(lexer.If) {
			els, err = p.parseIf()
		} else {
			els, err = p.parseBranch()
		}
		if err != nil {
			return nil, err
		}
		children = append(children, els)
	}
	return ast.NewIf(children, cond, then, els), nil
}

func (p *Parser) parseWhile() (ast.Node, error) {
	children := []ast.Node{p.advance()}
	cond, err := p.parseCondition(&children)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBranch()
	if err != nil {
		return nil, err
	}
	children = append(children, body)
	return ast.NewWhile(children, cond, body), nil
}

func (p *Parser) parseControl() (ast.Node, error) {
	keyword := p.advance()
	children := []ast.Node{keyword}

	var op ast.ControlOp
	switch keyword.Token.Kind {
	case lexer.Return:
		op = ast.ControlReturn
	case lexer.Break:
		op = ast.ControlBreak
	default:
		op = ast.ControlContinue
	}

	var value ast.Node
	if op == ast.ControlReturn {
		switch p.peekSameLine().Kind {
		case lexer.EOF, lexer.RBrace, lexer.Semicolon, lexer.Comment, lexer.Whitespace:
		default:
			p.sameLine(&children)
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			value = expr
			children = append(children, expr)
		}
	}
	return ast.NewControl(children, op, value), nil
}

// parseLocalDeclaration parses "val|var name[: Type] [= expr | by expr]",
// including a trailing "get() = expr" accessor in class bodies.
func (p *Parser) parseLocalDeclaration(prefix []ast.Node) (ast.Node, error) {
	keyword := p.advance()
	children := append(prefix, keyword)
	binding := ast.BindingVal
	if keyword.Token.Kind == lexer.Var {
		binding = ast.BindingVar
	}
	p.ws(&children)

	id, err := p.parseIdentifier("variable name")
	if err != nil {
		return nil, err
	}
	children = append(children, id)

	var typ *ast.Type
	if p.peekOverSpace().Kind == lexer.Colon {
		p.ws(&children)
		children = append(children, p.advance())
		p.ws(&children)
		if typ, err = p.parseType(); err != nil {
			return nil, err
		}
		children = append(children, typ)
	}

	if p.peekSig(0).Is("get") && p.peekSig(1).Kind == lexer.LParen {
		p.ws(&children)
		children = append(children, p.advance())
		p.ws(&children)
		children = append(children, p.advance())
		p.ws(&children)
		closing, err := p.expect(lexer.RParen, "')'")
		if err != nil {
			return nil, err
		}
		children = append(children, closing)
	}

	var value ast.Node
	next := p.peekOverSpace()
	if next.Kind == lexer.Assign || next.Is("by") {
		p.ws(&children)
		children = append(children, p.advance())
		p.trivia(&children)
		if value, err = p.parseExpression(); err != nil {
			return nil, err
		}
		children = append(children, value)
	}
	return ast.NewDeclaration(children, binding, id.Name, typ, value), nil
}

var assignOps = map[lexer.Kind]bool{
	lexer.Assign:    true,
	lexer.AddAssign: true,
	lexer.SubAssign: true,
	lexer.MulAssign: true,
	lexer.DivAssign: true,
	lexer.ModAssign: true,
}

// parseExpressionStatement parses an expression and turns it into an
// assignment when the next token, past at most one whitespace, is an
// assignment operator.
func (p *Parser) parseExpressionStatement() (ast.Node, error) {
	target, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !assignOps[p.peekOverSpace().Kind] {
		return target, nil
	}

	children := []ast.Node{target}
	if p.at(lexer.Whitespace) {
		children = append(children, p.advance())
	}
	op := p.advance()
	children = append(children, op)
	p.trivia(&children)
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	children = append(children, value)
	return ast.NewAssignment(children, target, op.Token.Text, value), nil
}
