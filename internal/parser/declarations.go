package parser

import (
	"strconv"

	"github.com/ChinaNuke/ast-interpreter/internal/ast"
	"github.com/ChinaNuke/ast-interpreter/internal/ctypes"
	"github.com/ChinaNuke/ast-interpreter/internal/lexer"
)

// parseExternalDeclarations parses one file-scope declaration, which
// yields either a single function declaration or one or more variable
// declarations (int a, b;).
func (p *Parser) parseExternalDeclarations() []ast.Decl {
	startTok := p.curToken

	isExtern := false
	if p.curTokenIs(lexer.EXTERN) {
		isExtern = true
		p.nextToken()
	}

	if !p.curToken.IsTypeSpecifier() {
		p.addError("expected declaration, got %s", p.curToken.Type)
		p.skipToSemicolon()
		return nil
	}
	base := p.parseBaseType()

	typ := p.parsePointerSuffix(base)

	if !p.expectPeek(lexer.IDENT) {
		p.skipToSemicolon()
		return nil
	}
	nameTok := p.curToken

	if p.peekTokenIs(lexer.LPAREN) {
		fn := p.parseFunctionRemainder(startTok, nameTok.Literal, typ, isExtern)
		if fn == nil {
			return nil
		}
		return []ast.Decl{fn}
	}

	var decls []ast.Decl
	vd := p.parseVarDeclaratorRemainder(startTok, nameTok.Literal, typ)
	if vd == nil {
		p.skipToSemicolon()
		return nil
	}
	decls = append(decls, vd)

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken() // consume ','
		declTyp := p.parsePointerSuffix(base)
		if !p.expectPeek(lexer.IDENT) {
			p.skipToSemicolon()
			return decls
		}
		vd := p.parseVarDeclaratorRemainder(p.curToken, p.curToken.Literal, declTyp)
		if vd == nil {
			p.skipToSemicolon()
			return decls
		}
		decls = append(decls, vd)
	}

	if !p.expectPeek(lexer.SEMICOLON) {
		p.skipToSemicolon()
	}
	return decls
}

// parseBaseType converts the current type-specifier token to its type.
func (p *Parser) parseBaseType() ctypes.Type {
	switch p.curToken.Type {
	case lexer.KW_INT:
		return ctypes.IntType
	case lexer.KW_CHAR:
		return ctypes.CharType
	default:
		return ctypes.VoidType
	}
}

// parsePointerSuffix wraps the base type in one pointer layer per '*'.
func (p *Parser) parsePointerSuffix(base ctypes.Type) ctypes.Type {
	typ := base
	for p.peekTokenIs(lexer.ASTERISK) {
		p.nextToken()
		typ = &ctypes.Pointer{Elem: typ}
	}
	return typ
}

// parseVarDeclaratorRemainder parses the rest of one variable
// declarator after its name: an optional constant array extent and an
// optional initializer. The caller consumes the terminating token.
func (p *Parser) parseVarDeclaratorRemainder(tok lexer.Token, name string, typ ctypes.Type) *ast.VarDecl {
	if p.peekTokenIs(lexer.LBRACK) {
		p.nextToken() // consume '['
		if !p.expectPeek(lexer.INT) {
			return nil
		}
		length, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
		if err != nil {
			p.addError("could not parse %q as array extent", p.curToken.Literal)
			return nil
		}
		if !p.expectPeek(lexer.RBRACK) {
			return nil
		}
		typ = &ctypes.Array{Elem: typ, Len: length}
	}

	vd := &ast.VarDecl{Token: tok, Name: name, Type: typ}

	if p.peekTokenIs(lexer.ASSIGN) {
		p.nextToken() // consume '='
		p.nextToken()
		vd.Init = p.parseExpression(LOWEST)
	}

	return vd
}

// parseFunctionRemainder parses a function's parameter list and body
// (or terminating semicolon for prototypes). The current token is the
// function name; on return it is the closing '}' or the ';'.
func (p *Parser) parseFunctionRemainder(tok lexer.Token, name string, ret ctypes.Type, isExtern bool) *ast.FunctionDecl {
	p.nextToken() // consume name, current token is '('

	params, ok := p.parseParameterList()
	if !ok {
		return nil
	}

	fn := &ast.FunctionDecl{
		Token:      tok,
		Name:       name,
		Params:     params,
		ReturnType: ret,
		Extern:     isExtern,
	}

	switch {
	case p.peekTokenIs(lexer.LBRACE):
		p.nextToken()
		fn.Body = p.parseCompoundStatement()
	case p.peekTokenIs(lexer.SEMICOLON):
		p.nextToken()
	default:
		p.peekError(lexer.LBRACE)
		return nil
	}

	return fn
}

// parseParameterList parses '(' ... ')'. An empty list and a single
// unnamed void parameter both mean "no parameters". Parameter names
// are optional so prototypes like MALLOC(int) parse.
func (p *Parser) parseParameterList() ([]*ast.ParamDecl, bool) {
	params := []*ast.ParamDecl{}

	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		return params, true
	}

	for {
		p.nextToken()
		param := p.parseParameter()
		if param == nil {
			return nil, false
		}
		params = append(params, param)

		if !p.peekTokenIs(lexer.COMMA) {
			break
		}
		p.nextToken() // consume ','
	}

	if !p.expectPeek(lexer.RPAREN) {
		return nil, false
	}

	// (void) declares an empty parameter list.
	if len(params) == 1 && params[0].Name == "" && params[0].Type == ctypes.VoidType {
		params = params[:0]
	}

	return params, true
}

// parseParameter parses one parameter: a type and an optional name.
func (p *Parser) parseParameter() *ast.ParamDecl {
	if !p.curToken.IsTypeSpecifier() {
		p.addError("expected parameter type, got %s", p.curToken.Type)
		return nil
	}
	tok := p.curToken
	typ := p.parsePointerSuffix(p.parseBaseType())

	name := ""
	if p.peekTokenIs(lexer.IDENT) {
		p.nextToken()
		name = p.curToken.Literal
	}

	return &ast.ParamDecl{Token: tok, Name: name, Type: typ}
}

// skipToSemicolon advances past the next semicolon for error recovery.
func (p *Parser) skipToSemicolon() {
	for !p.curTokenIs(lexer.SEMICOLON) && !p.curTokenIs(lexer.EOF) {
		p.nextToken()
	}
}
