package parser

import (
	"strconv"

	"github.com/ChinaNuke/ast-interpreter/internal/ast"
	"github.com/ChinaNuke/ast-interpreter/internal/lexer"
)

// parseExpression is the Pratt parsing core: it parses a prefix
// expression and folds in infix operators while their precedence
// exceeds the caller's.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefixFn, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.addError("no prefix parse function for %s found", p.curToken.Type)
		return nil
	}
	left := prefixFn()

	for !p.peekTokenIs(lexer.SEMICOLON) && precedence < p.peekPrecedence() {
		infixFn, ok := p.infixParseFns[p.peekToken.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infixFn(left)
	}

	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	lit := &ast.IntegerLiteral{Token: p.curToken}

	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addError("could not parse %q as integer", p.curToken.Literal)
		return nil
	}
	lit.Value = value

	return lit
}

func (p *Parser) parseCharLiteral() ast.Expression {
	lit := &ast.CharLiteral{Token: p.curToken}
	if runes := []rune(p.curToken.Literal); len(runes) > 0 {
		lit.Value = runes[0]
	}
	return lit
}

// parsePrefixExpression parses a unary operator expression.
func (p *Parser) parsePrefixExpression() ast.Expression {
	expr := &ast.UnaryExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
	}

	p.nextToken()
	expr.Operand = p.parseExpression(PREFIX)

	return expr
}

// parseInfixExpression parses a left-associative binary operator.
func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := &ast.BinaryExpression{
		Token:    p.curToken,
		Left:     left,
		Operator: p.curToken.Literal,
	}

	precedence := precedences[p.curToken.Type]
	p.nextToken()
	expr.Right = p.parseExpression(precedence)

	return expr
}

// parseAssignExpression parses '=' right-associatively so that
// a = b = c groups as a = (b = c).
func (p *Parser) parseAssignExpression(left ast.Expression) ast.Expression {
	expr := &ast.BinaryExpression{
		Token:    p.curToken,
		Left:     left,
		Operator: p.curToken.Literal,
	}

	p.nextToken()
	expr.Right = p.parseExpression(ASSIGN - 1)

	return expr
}

// parseGroupedOrCastExpression disambiguates '(' in expression
// position: a following type specifier makes it a C-style cast,
// anything else a parenthesized expression.
func (p *Parser) parseGroupedOrCastExpression() ast.Expression {
	tok := p.curToken

	if p.peekToken.IsTypeSpecifier() {
		p.nextToken()
		target := p.parsePointerSuffix(p.parseBaseType())
		if !p.expectPeek(lexer.RPAREN) {
			return nil
		}
		p.nextToken()
		return &ast.CastExpression{
			Token:      tok,
			TargetType: target,
			Expr:       p.parseExpression(PREFIX),
		}
	}

	p.nextToken()
	expr := &ast.ParenExpression{Token: tok, Expr: p.parseExpression(LOWEST)}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}

	return expr
}

// parseSizeofExpression parses sizeof '(' type-or-expr ')'.
func (p *Parser) parseSizeofExpression() ast.Expression {
	expr := &ast.SizeofExpression{Token: p.curToken}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}

	if p.peekToken.IsTypeSpecifier() {
		p.nextToken()
		expr.TargetType = p.parsePointerSuffix(p.parseBaseType())
	} else {
		p.nextToken()
		expr.Expr = p.parseExpression(LOWEST)
	}

	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}

	return expr
}

// parseCallExpression parses a call's argument list. Only direct
// calls through a function name are supported.
func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	ident, ok := function.(*ast.Identifier)
	if !ok {
		pos := p.curToken.Pos
		if function != nil {
			pos = function.Pos()
		}
		p.addErrorAt(pos, "called object is not a function name")
		return nil
	}

	expr := &ast.CallExpression{Token: p.curToken, Function: ident}
	expr.Args = p.parseCallArguments()

	return expr
}

func (p *Parser) parseCallArguments() []ast.Expression {
	args := []ast.Expression{}

	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		return args
	}

	p.nextToken()
	args = append(args, p.parseExpression(LOWEST))

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken() // consume ','
		p.nextToken()
		args = append(args, p.parseExpression(LOWEST))
	}

	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}

	return args
}

// parseIndexExpression parses base '[' index ']'.
func (p *Parser) parseIndexExpression(base ast.Expression) ast.Expression {
	expr := &ast.IndexExpression{Token: p.curToken, Base: base}

	p.nextToken()
	expr.Index = p.parseExpression(LOWEST)

	if !p.expectPeek(lexer.RBRACK) {
		return nil
	}

	return expr
}
