package parser

import (
	"github.com/ChinaNuke/ast-interpreter/internal/ast"
	"github.com/ChinaNuke/ast-interpreter/internal/lexer"
)

// parseStatement dispatches on the current token to the statement
// parsers. A leading type specifier marks a local declaration.
func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.curTokenIs(lexer.LBRACE):
		return p.parseCompoundStatement()
	case p.curTokenIs(lexer.IF):
		return p.parseIfStatement()
	case p.curTokenIs(lexer.WHILE):
		return p.parseWhileStatement()
	case p.curTokenIs(lexer.FOR):
		return p.parseForStatement()
	case p.curTokenIs(lexer.RETURN):
		return p.parseReturnStatement()
	case p.curToken.IsTypeSpecifier():
		return p.parseDeclStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseCompoundStatement parses '{' statement* '}'. The current token
// is the opening brace; on return it is the closing brace.
func (p *Parser) parseCompoundStatement() *ast.CompoundStmt {
	block := &ast.CompoundStmt{Token: p.curToken}

	p.nextToken()
	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}

	if p.curTokenIs(lexer.EOF) {
		p.addError("expected } to close block")
	}

	return block
}

// parseDeclStatement parses a local declaration with one or more
// declarators sharing a base type (int a, *b, c[2];).
func (p *Parser) parseDeclStatement() *ast.DeclStmt {
	stmt := &ast.DeclStmt{Token: p.curToken}
	base := p.parseBaseType()

	for {
		typ := p.parsePointerSuffix(base)
		if !p.expectPeek(lexer.IDENT) {
			p.skipToSemicolon()
			return stmt
		}
		vd := p.parseVarDeclaratorRemainder(p.curToken, p.curToken.Literal, typ)
		if vd == nil {
			p.skipToSemicolon()
			return stmt
		}
		stmt.Decls = append(stmt.Decls, vd)

		if !p.peekTokenIs(lexer.COMMA) {
			break
		}
		p.nextToken() // consume ','
	}

	if !p.expectPeek(lexer.SEMICOLON) {
		p.skipToSemicolon()
	}
	return stmt
}

// parseExpressionStatement parses an expression in statement position.
// A bare semicolon yields an empty statement.
func (p *Parser) parseExpressionStatement() *ast.ExprStmt {
	stmt := &ast.ExprStmt{Token: p.curToken}

	if p.curTokenIs(lexer.SEMICOLON) {
		return stmt
	}

	stmt.Expr = p.parseExpression(LOWEST)

	if !p.expectPeek(lexer.SEMICOLON) {
		p.skipToSemicolon()
	}
	return stmt
}

// parseIfStatement parses if '(' cond ')' stmt [else stmt].
func (p *Parser) parseIfStatement() *ast.IfStmt {
	stmt := &ast.IfStmt{Token: p.curToken}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Cond = p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}

	p.nextToken()
	stmt.Then = p.parseStatement()

	if p.peekTokenIs(lexer.ELSE) {
		p.nextToken() // consume 'else'
		p.nextToken()
		stmt.Else = p.parseStatement()
	}

	return stmt
}

// parseWhileStatement parses while '(' cond ')' stmt.
func (p *Parser) parseWhileStatement() *ast.WhileStmt {
	stmt := &ast.WhileStmt{Token: p.curToken}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Cond = p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}

	p.nextToken()
	stmt.Body = p.parseStatement()

	return stmt
}

// parseForStatement parses for '(' init cond ';' inc ')' stmt.
// The init clause may be a declaration, an expression or empty; the
// condition and increment are required.
func (p *Parser) parseForStatement() *ast.ForStmt {
	stmt := &ast.ForStmt{Token: p.curToken}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}

	p.nextToken()
	switch {
	case p.curTokenIs(lexer.SEMICOLON):
		// empty init clause
	case p.curToken.IsTypeSpecifier():
		stmt.Init = p.parseDeclStatement()
	default:
		stmt.Init = p.parseExpressionStatement()
	}

	p.nextToken()
	stmt.Cond = p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}

	p.nextToken()
	stmt.Inc = p.parseExpression(LOWEST)
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}

	p.nextToken()
	stmt.Body = p.parseStatement()

	return stmt
}

// parseReturnStatement parses return [expr] ';'.
func (p *Parser) parseReturnStatement() *ast.ReturnStmt {
	stmt := &ast.ReturnStmt{Token: p.curToken}

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		return stmt
	}

	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)

	if !p.expectPeek(lexer.SEMICOLON) {
		p.skipToSemicolon()
	}
	return stmt
}
