package parser

import (
	"fmt"

	"github.com/ChinaNuke/ast-interpreter/internal/lexer"
)

// ParserError represents a single parse error with position information.
type ParserError struct {
	Message string
	Pos     lexer.Position
}

// Error implements the error interface.
func (e *ParserError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Pos.Line, e.Pos.Column)
}

// addError appends an error at the current token's position.
func (p *Parser) addError(format string, args ...any) {
	p.errors = append(p.errors, &ParserError{
		Message: fmt.Sprintf(format, args...),
		Pos:     p.curToken.Pos,
	})
}

// addErrorAt appends an error at an explicit position.
func (p *Parser) addErrorAt(pos lexer.Position, format string, args ...any) {
	p.errors = append(p.errors, &ParserError{
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	})
}

// peekError records an unexpected-token error against the peek token.
func (p *Parser) peekError(expected lexer.TokenType) {
	p.errors = append(p.errors, &ParserError{
		Message: fmt.Sprintf("expected next token to be %s, got %s instead",
			expected, p.peekToken.Type),
		Pos: p.peekToken.Pos,
	})
}
