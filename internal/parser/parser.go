// Package parser implements the parser for the restricted C dialect
// using Pratt parsing for expressions and hand-written recursive
// descent for declarations and statements.
//
// Key patterns:
//   - prefix/infix parse function registries keyed by token type
//   - numeric precedence ladder, lowest to highest
//   - errors accumulate in p.Errors(); the parser never panics
package parser

import (
	"github.com/ChinaNuke/ast-interpreter/internal/ast"
	"github.com/ChinaNuke/ast-interpreter/internal/lexer"
)

// Precedence levels for operators (lowest to highest).
const (
	_ int = iota
	LOWEST
	ASSIGN      // =
	EQUALS      // == !=
	LESSGREATER // < > <= >=
	SUM         // + -
	PRODUCT     // * /
	PREFIX      // -x, !x, *p, casts
	CALL        // function(args)
	INDEX       // array[index]
)

// precedences maps token types to their precedence levels.
var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN:     ASSIGN,
	lexer.EQ:         EQUALS,
	lexer.NOT_EQ:     EQUALS,
	lexer.LESS:       LESSGREATER,
	lexer.GREATER:    LESSGREATER,
	lexer.LESS_EQ:    LESSGREATER,
	lexer.GREATER_EQ: LESSGREATER,
	lexer.PLUS:       SUM,
	lexer.MINUS:      SUM,
	lexer.ASTERISK:   PRODUCT,
	lexer.SLASH:      PRODUCT,
	lexer.LPAREN:     CALL,
	lexer.LBRACK:     INDEX,
}

// prefixParseFn parses prefix expressions (literals, unary ops, grouping).
type prefixParseFn func() ast.Expression

// infixParseFn parses infix expressions (binary ops, calls, indexing).
type infixParseFn func(ast.Expression) ast.Expression

// Parser represents the C-subset parser.
type Parser struct {
	l              *lexer.Lexer
	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
	errors         []*ParserError
	curToken       lexer.Token
	peekToken      lexer.Token
}

// New creates a new Parser reading tokens from the given lexer.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = make(map[lexer.TokenType]prefixParseFn)
	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.INT, p.parseIntegerLiteral)
	p.registerPrefix(lexer.CHAR, p.parseCharLiteral)
	p.registerPrefix(lexer.MINUS, p.parsePrefixExpression)
	p.registerPrefix(lexer.PLUS, p.parsePrefixExpression)
	p.registerPrefix(lexer.TILDE, p.parsePrefixExpression)
	p.registerPrefix(lexer.BANG, p.parsePrefixExpression)
	p.registerPrefix(lexer.ASTERISK, p.parsePrefixExpression)
	p.registerPrefix(lexer.AMP, p.parsePrefixExpression)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedOrCastExpression)
	p.registerPrefix(lexer.SIZEOF, p.parseSizeofExpression)

	p.infixParseFns = make(map[lexer.TokenType]infixParseFn)
	p.registerInfix(lexer.PLUS, p.parseInfixExpression)
	p.registerInfix(lexer.MINUS, p.parseInfixExpression)
	p.registerInfix(lexer.ASTERISK, p.parseInfixExpression)
	p.registerInfix(lexer.SLASH, p.parseInfixExpression)
	p.registerInfix(lexer.EQ, p.parseInfixExpression)
	p.registerInfix(lexer.NOT_EQ, p.parseInfixExpression)
	p.registerInfix(lexer.LESS, p.parseInfixExpression)
	p.registerInfix(lexer.GREATER, p.parseInfixExpression)
	p.registerInfix(lexer.LESS_EQ, p.parseInfixExpression)
	p.registerInfix(lexer.GREATER_EQ, p.parseInfixExpression)
	p.registerInfix(lexer.ASSIGN, p.parseAssignExpression)
	p.registerInfix(lexer.LPAREN, p.parseCallExpression)
	p.registerInfix(lexer.LBRACK, p.parseIndexExpression)

	// Read two tokens so curToken and peekToken are both set.
	p.nextToken()
	p.nextToken()

	return p
}

// Errors returns the list of parsing errors.
func (p *Parser) Errors() []*ParserError {
	return p.errors
}

// LexerErrors returns all lexer errors accumulated during tokenization.
// This should be checked in addition to parser errors for complete
// error reporting.
func (p *Parser) LexerErrors() []lexer.LexerError {
	return p.l.Errors()
}

// registerPrefix registers a prefix parse function for a token type.
func (p *Parser) registerPrefix(tokenType lexer.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

// registerInfix registers an infix parse function for a token type.
func (p *Parser) registerInfix(tokenType lexer.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

// nextToken advances both the current and peek tokens.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// curTokenIs checks if the current token is of the given type.
func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

// peekTokenIs checks if the peek token is of the given type.
func (p *Parser) peekTokenIs(t lexer.TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek advances when the peek token has the expected type, and
// records an error otherwise.
func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

// peekPrecedence returns the precedence of the peek token.
func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// ParseTranslationUnit parses a whole source file.
func (p *Parser) ParseTranslationUnit() *ast.TranslationUnit {
	unit := &ast.TranslationUnit{}

	for !p.curTokenIs(lexer.EOF) {
		unit.Decls = append(unit.Decls, p.parseExternalDeclarations()...)
		p.nextToken()
	}

	return unit
}
