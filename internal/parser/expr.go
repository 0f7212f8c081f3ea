// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package parser

import (
	"github.com/api2spec/ktbridge/internal/ast"
	"github.com/api2spec/ktbridge/internal/lexer"
)

// Precedence, loosest first:
//
//	comparison      < > <= >= == != === !==
//	additive        + -
//	multiplicative  * / %  && || and or
//	unary           - + ! ++ --
//	postfix         call, member, index, ++ --, !!
//	primary

func comparative(k lexer.Kind) (ast.BinaryFamily, bool) {
	switch k {
	case lexer.Less, lexer.Greater, lexer.LessEqual, lexer.GreaterEqual,
		lexer.Equals, lexer.NotEquals, lexer.EqualsRef, lexer.NotEqualsRef:
		return ast.FamilyComparative, true
	}
	return "", false
}

func additive(k lexer.Kind) (ast.BinaryFamily, bool) {
	switch k {
	case lexer.Plus, lexer.Minus:
		return ast.FamilyAddSub, true
	}
	return "", false
}

func multiplicative(k lexer.Kind) (ast.BinaryFamily, bool) {
	switch k {
	case lexer.Times, lexer.Divide, lexer.Mod:
		return ast.FamilyMultDivMod, true
	case lexer.And, lexer.Or, lexer.AndBitwise, lexer.OrBitwise:
		return ast.FamilyLogical, true
	}
	return "", false
}

func (p *Parser) parseExpression() (ast.Node, error) {
	return p.parseBinary(p.parseAdditive, comparative)
}

func (p *Parser) parseAdditive() (ast.Node, error) {
	return p.parseBinary(p.parseMultiplicative, additive)
}

func (p *Parser) parseMultiplicative() (ast.Node, error) {
	return p.parseBinary(p.parseUnary, multiplicative)
}

// parseBinary folds "operand (op operand)*" to the left. An operator must
// start on the same line as its left operand.
func (p *Parser) parseBinary(operand func() (ast.Node, error), family func(lexer.Kind) (ast.BinaryFamily, bool)) (ast.Node, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		fam, ok := family(p.peekSameLine().Kind)
		if !ok {
			return left, nil
		}
		children := []ast.Node{left}
		p.sameLine(&children)
		op := p.advance()
		children = append(children, op)
		p.trivia(&children)

		right, err := operand()
		if err != nil {
			return nil, err
		}
		children = append(children, right)
		left = ast.NewBinary(children, fam, op.Token.Text, left, right)
	}
}

func (p *Parser) parseUnary() (ast.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch p.peek().Kind {
	case lexer.Minus, lexer.Plus, lexer.Bang, lexer.Increment, lexer.Decrement:
		op := p.advance()
		children := []ast.Node{op}
		p.trivia(&children)
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		children = append(children, operand)
		return ast.NewSignal(children, op.Token.Text, operand), nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Node, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.at(lexer.LParen) || (p.at(lexer.Less) && p.typeArgumentsAhead()):
			children := []ast.Node{expr}
			if p.at(lexer.Less) {
				if err := p.skipTypeParameters(&children); err != nil {
					return nil, err
				}
			}
			args, err := p.parseCallArguments(&children)
			if err != nil {
				return nil, err
			}
			var lambda *ast.Body
			if p.peekSameLine().Kind == lexer.LBrace {
				p.sameLine(&children)
				if lambda, err = p.parseBody(); err != nil {
					return nil, err
				}
				children = append(children, lambda)
			}
			expr = ast.NewFunctionCall(children, expr, args, lambda)

		case p.peekSameLine().Kind == lexer.LBrace && acceptsTrailingLambda(expr):
			children := []ast.Node{expr}
			p.sameLine(&children)
			lambda, err := p.parseBody()
			if err != nil {
				return nil, err
			}
			children = append(children, lambda)
			expr = ast.NewFunctionCall(children, expr, nil, lambda)

		case p.atMemberAccess():
			children := []ast.Node{expr}
			if p.at(lexer.Whitespace) {
				children = append(children, p.advance())
			}
			if p.at(lexer.Question) {
				children = append(children, p.advance())
			}
			children = append(children, p.advance())
			p.ws(&children)

			var name string
			switch p.peek().Kind {
			case lexer.Identifier, lexer.Class:
				leaf := p.advance()
				name = leaf.Token.Text
				children = append(children, ast.NewIdentifier([]ast.Node{leaf}))
			default:
				return nil, p.errorf("member name")
			}
			expr = ast.NewMemberAccess(children, expr, name)

		case p.at(lexer.LSquare):
			children := []ast.Node{expr}
			args, err := p.parseDelimitedArguments(&children, lexer.LSquare, lexer.RSquare)
			if err != nil {
				return nil, err
			}
			expr = ast.NewIndex(children, expr, args)

		case p.at(lexer.Increment), p.at(lexer.Decrement):
			op := p.advance()
			expr = ast.NewPostfix([]ast.Node{expr, op}, expr, op.Token.Text)

		case p.at(lexer.Bang) && p.tokens[p.pos+1].Kind == lexer.Bang:
			first, second := p.advance(), p.advance()
			expr = ast.NewPostfix([]ast.Node{expr, first, second}, expr, "!!")

		default:
			return expr, nil
		}
	}
}

func acceptsTrailingLambda(n ast.Node) bool {
	switch v := n.(type) {
	case *ast.Identifier, *ast.MemberAccess:
		return true
	case *ast.FunctionCall:
		return v.Lambda == nil
	}
	return false
}

// atMemberAccess reports whether "." , "?." or "::" follows, possibly at the
// start of the next line.
func (p *Parser) atMemberAccess() bool {
	i := p.pos
	if p.tokens[i].Kind == lexer.Whitespace {
		i++
	}
	switch p.tokens[i].Kind {
	case lexer.Dot, lexer.DoubleColon:
		return true
	case lexer.Question:
		return p.tokens[i+1].Kind == lexer.Dot
	}
	return false
}

// typeArgumentsAhead reports whether the "<" under the cursor opens explicit
// type arguments of a call, as in receive<Cat>().
func (p *Parser) typeArgumentsAhead() bool {
	depth := 0
	for i := p.pos; i < len(p.tokens); i++ {
		switch p.tokens[i].Kind {
		case lexer.Less:
			depth++
		case lexer.Greater:
			depth--
			if depth == 0 {
				return p.tokens[i+1].Kind == lexer.LParen
			}
		case lexer.Identifier, lexer.Dot, lexer.Comma, lexer.Whitespace,
			lexer.Question, lexer.Times, lexer.In, lexer.Out:
		default:
			return false
		}
	}
	return false
}

func (p *Parser) parseCallArguments(children *[]ast.Node) ([]*ast.CallArgument, error) {
	return p.parseDelimitedArguments(children, lexer.LParen, lexer.RParen)
}

// parseDelimitedArguments parses "(a, name = b)" style lists, appending the
// leaves and CallArgument blocks to children.
func (p *Parser) parseDelimitedArguments(children *[]ast.Node, open, closing lexer.Kind) ([]*ast.CallArgument, error) {
	leaf, err := p.expect(open, open.String())
	if err != nil {
		return nil, err
	}
	*children = append(*children, leaf)

	var args []*ast.CallArgument
	for {
		p.trivia(children)
		if p.at(closing) {
			*children = append(*children, p.advance())
			return args, nil
		}

		var argChildren []ast.Node
		var name string
		if p.at(lexer.Identifier) && p.peekNamedArgument() {
			nameLeaf := p.advance()
			name = nameLeaf.Token.Text
			argChildren = append(argChildren, ast.NewIdentifier([]ast.Node{nameLeaf}))
			p.ws(&argChildren)
			argChildren = append(argChildren, p.advance())
			p.trivia(&argChildren)
		}
		if p.at(lexer.Times) {
			argChildren = append(argChildren, p.advance())
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		argChildren = append(argChildren, value)
		arg := ast.NewCallArgument(argChildren, name, value)
		args = append(args, arg)
		*children = append(*children, arg)

		p.trivia(children)
		switch p.peek().Kind {
		case lexer.Comma:
			*children = append(*children, p.advance())
		case closing:
		default:
			return nil, p.errorf("',' or " + closing.String())
		}
	}
}

// peekNamedArgument reports whether the identifier under the cursor is
// followed by a single "=".
func (p *Parser) peekNamedArgument() bool {
	next := p.tokens[p.pos+1]
	if next.Kind == lexer.Whitespace {
		next = p.tokens[p.pos+2]
	}
	return next.Kind == lexer.Assign
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.Identifier:
		return ast.NewIdentifier([]ast.Node{p.advance()}), nil
	case lexer.Boolean, lexer.Null, lexer.This, lexer.Super:
		return ast.NewLiteral([]ast.Node{p.advance()}, tok.Text), nil
	case lexer.Int:
		return ast.NewNumber([]ast.Node{p.advance()}, ast.NumberInteger, tok.Text), nil
	case lexer.Double:
		return ast.NewNumber([]ast.Node{p.advance()}, ast.NumberDouble, tok.Text), nil
	case lexer.StringStart:
		return p.parseStringLiteral()
	case lexer.CharStart:
		return p.parseCharLiteral()
	case lexer.LParen:
		return p.parseParenthesis()
	case lexer.LBrace:
		return p.parseBody()
	case lexer.If:
		return p.parseIf()
	}
	return nil, p.errorf("expression")
}

func (p *Parser) parseParenthesis() (ast.Node, error) {
	children := []ast.Node{p.advance()}
	p.trivia(&children)
	inner, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	children = append(children, inner)
	p.trivia(&children)
	closing, err := p.expect(lexer.RParen, "')'")
	if err != nil {
		return nil, err
	}
	children = append(children, closing)
	return ast.NewParenthesis(children, inner), nil
}

func (p *Parser) parseStringLiteral() (*ast.StringLiteral, error) {
	children := []ast.Node{p.advance()}
	for {
		switch p.peek().Kind {
		case lexer.StringContent:
			children = append(children, p.advance())
		case lexer.StringEnd:
			children = append(children, p.advance())
			return ast.NewStringLiteral(children), nil
		case lexer.StringInterpolation:
			tmpl, err := p.parseStringTemplate()
			if err != nil {
				return nil, err
			}
			children = append(children, tmpl)
		default:
			return nil, p.errorf("string content")
		}
	}
}

func (p *Parser) parseStringTemplate() (ast.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	children := []ast.Node{p.advance()}
	if p.at(lexer.Identifier) {
		children = append(children, p.advance())
		return ast.NewStringTemplate(children), nil
	}

	open, err := p.expect(lexer.LBrace, "'{'")
	if err != nil {
		return nil, err
	}
	children = append(children, open)
	p.trivia(&children)
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	children = append(children, expr)
	p.trivia(&children)
	closing, err := p.expect(lexer.RBrace, "'}'")
	if err != nil {
		return nil, err
	}
	children = append(children, closing)
	return ast.NewStringTemplate(children), nil
}

func (p *Parser) parseCharLiteral() (ast.Node, error) {
	children := []ast.Node{p.advance()}
	for _, kind := range []lexer.Kind{lexer.Char, lexer.CharEnd} {
		leaf, err := p.expect(kind, kind.String())
		if err != nil {
			return nil, err
		}
		children = append(children, leaf)
	}
	return ast.NewCharLiteral(children), nil
}
