package ast

import (
	"bytes"
	"strings"

	"github.com/ChinaNuke/ast-interpreter/internal/lexer"
)

// CompoundStmt represents a braced block of statements.
type CompoundStmt struct {
	Token      lexer.Token // The '{' token
	Statements []Statement // The statements in the block
}

func (cs *CompoundStmt) statementNode()       {}
func (cs *CompoundStmt) TokenLiteral() string { return cs.Token.Literal }
func (cs *CompoundStmt) Pos() lexer.Position  { return cs.Token.Pos }
func (cs *CompoundStmt) String() string {
	var out bytes.Buffer

	out.WriteString("{\n")
	for _, stmt := range cs.Statements {
		out.WriteString("  ")
		out.WriteString(strings.ReplaceAll(stmt.String(), "\n", "\n  "))
		out.WriteString("\n")
	}
	out.WriteString("}")

	return out.String()
}

// DeclStmt represents a local declaration statement. A single
// statement may declare several variables (int a, b;).
type DeclStmt struct {
	Token lexer.Token // The first token of the declaration
	Decls []*VarDecl  // The declared variables, in source order
}

func (ds *DeclStmt) statementNode()       {}
func (ds *DeclStmt) TokenLiteral() string { return ds.Token.Literal }
func (ds *DeclStmt) Pos() lexer.Position  { return ds.Token.Pos }
func (ds *DeclStmt) String() string {
	parts := make([]string, len(ds.Decls))
	for i, d := range ds.Decls {
		parts[i] = d.String()
	}
	return strings.Join(parts, " ")
}

// ExprStmt represents an expression used in statement position.
type ExprStmt struct {
	Token lexer.Token // The first token of the expression
	Expr  Expression  // The expression
}

func (es *ExprStmt) statementNode()       {}
func (es *ExprStmt) TokenLiteral() string { return es.Token.Literal }
func (es *ExprStmt) Pos() lexer.Position  { return es.Token.Pos }
func (es *ExprStmt) String() string {
	if es.Expr != nil {
		return es.Expr.String() + ";"
	}
	return ";"
}

// IfStmt represents an if statement with an optional else branch.
type IfStmt struct {
	Token lexer.Token // The 'if' token
	Cond  Expression  // The condition
	Then  Statement   // The then branch
	Else  Statement   // The else branch, or nil
}

func (is *IfStmt) statementNode()       {}
func (is *IfStmt) TokenLiteral() string { return is.Token.Literal }
func (is *IfStmt) Pos() lexer.Position  { return is.Token.Pos }
func (is *IfStmt) String() string {
	var out bytes.Buffer

	out.WriteString("if (")
	out.WriteString(is.Cond.String())
	out.WriteString(") ")
	out.WriteString(is.Then.String())
	if is.Else != nil {
		out.WriteString(" else ")
		out.WriteString(is.Else.String())
	}

	return out.String()
}

// WhileStmt represents a while loop.
type WhileStmt struct {
	Token lexer.Token // The 'while' token
	Cond  Expression  // The condition
	Body  Statement   // The loop body
}

func (ws *WhileStmt) statementNode()       {}
func (ws *WhileStmt) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStmt) Pos() lexer.Position  { return ws.Token.Pos }
func (ws *WhileStmt) String() string {
	return "while (" + ws.Cond.String() + ") " + ws.Body.String()
}

// ForStmt represents a for loop. The init clause may be absent; the
// condition and increment are required by the accepted grammar.
type ForStmt struct {
	Token lexer.Token // The 'for' token
	Init  Statement   // The init clause, or nil
	Cond  Expression  // The condition
	Inc   Expression  // The increment expression
	Body  Statement   // The loop body
}

func (fs *ForStmt) statementNode()       {}
func (fs *ForStmt) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStmt) Pos() lexer.Position  { return fs.Token.Pos }
func (fs *ForStmt) String() string {
	var out bytes.Buffer

	out.WriteString("for (")
	if fs.Init != nil {
		out.WriteString(fs.Init.String())
	} else {
		out.WriteString(";")
	}
	out.WriteString(" ")
	out.WriteString(fs.Cond.String())
	out.WriteString("; ")
	out.WriteString(fs.Inc.String())
	out.WriteString(") ")
	out.WriteString(fs.Body.String())

	return out.String()
}

// ReturnStmt represents a return statement with an optional value.
type ReturnStmt struct {
	Token lexer.Token // The 'return' token
	Value Expression  // The returned expression, or nil
}

func (rs *ReturnStmt) statementNode()       {}
func (rs *ReturnStmt) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStmt) Pos() lexer.Position  { return rs.Token.Pos }
func (rs *ReturnStmt) String() string {
	if rs.Value != nil {
		return "return " + rs.Value.String() + ";"
	}
	return "return;"
}
