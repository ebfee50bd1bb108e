// Package sema implements the resolution pass that runs between
// parsing and evaluation. It binds every identifier to the declaration
// it names and every call to its callee, so the evaluator can work
// purely with declaration identity and never resolves by name.
package sema

import (
	"fmt"

	"github.com/ChinaNuke/ast-interpreter/internal/ast"
	"github.com/ChinaNuke/ast-interpreter/internal/lexer"
)

// ResolveError represents a resolution failure with position information.
type ResolveError struct {
	Message string
	Pos     lexer.Position
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Pos.Line, e.Pos.Column)
}

// Resolver binds identifiers to declarations using a scope stack.
// Names must be declared before use, in source order, as in C.
type Resolver struct {
	scopes []map[string]ast.Decl
	errors []*ResolveError
}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Errors returns the list of resolution errors.
func (r *Resolver) Errors() []*ResolveError {
	return r.errors
}

// Resolve walks the translation unit and links every identifier and
// call to its declaration. It returns an error when any name fails to
// resolve or is declared twice in one scope.
func (r *Resolver) Resolve(unit *ast.TranslationUnit) error {
	r.pushScope()
	defer r.popScope()

	for _, decl := range unit.Decls {
		switch d := decl.(type) {
		case *ast.FunctionDecl:
			r.declare(d)
			r.resolveFunction(d)
		case *ast.VarDecl:
			if d.Init != nil {
				r.resolveExpr(d.Init)
			}
			r.declare(d)
		}
	}

	if len(r.errors) > 0 {
		return fmt.Errorf("resolution failed with %d error(s)", len(r.errors))
	}
	return nil
}

func (r *Resolver) pushScope() {
	r.scopes = append(r.scopes, make(map[string]ast.Decl))
}

func (r *Resolver) popScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare binds a name in the innermost scope. Redeclaring a function
// prototype with another prototype or a definition of the same name is
// tolerated, and the later declaration wins; any other duplicate in
// one scope is an error.
func (r *Resolver) declare(d ast.Decl) {
	scope := r.scopes[len(r.scopes)-1]
	name := d.DeclName()
	if name == "" {
		return
	}
	if prev, ok := scope[name]; ok {
		prevFn, prevIsFn := prev.(*ast.FunctionDecl)
		_, curIsFn := d.(*ast.FunctionDecl)
		if !(prevIsFn && curIsFn && prevFn.IsPrototype()) {
			r.addError(d.Pos(), "redeclaration of %q", name)
			return
		}
	}
	scope[name] = d
}

// lookup searches the scope stack innermost-first.
func (r *Resolver) lookup(name string) (ast.Decl, bool) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if d, ok := r.scopes[i][name]; ok {
			return d, true
		}
	}
	return nil, false
}

func (r *Resolver) addError(pos lexer.Position, format string, args ...any) {
	r.errors = append(r.errors, &ResolveError{
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	})
}

func (r *Resolver) resolveFunction(fn *ast.FunctionDecl) {
	if fn.Body == nil {
		return
	}

	r.pushScope()
	defer r.popScope()

	for _, param := range fn.Params {
		if param.Name == "" {
			r.addError(param.Pos(), "parameter of %q needs a name", fn.Name)
			continue
		}
		r.declare(param)
	}

	r.resolveStmt(fn.Body)
}

func (r *Resolver) resolveStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.CompoundStmt:
		r.pushScope()
		for _, inner := range s.Statements {
			r.resolveStmt(inner)
		}
		r.popScope()
	case *ast.DeclStmt:
		for _, vd := range s.Decls {
			if vd.Init != nil {
				r.resolveExpr(vd.Init)
			}
			r.declare(vd)
		}
	case *ast.ExprStmt:
		if s.Expr != nil {
			r.resolveExpr(s.Expr)
		}
	case *ast.IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	case *ast.ForStmt:
		r.pushScope()
		if s.Init != nil {
			r.resolveStmt(s.Init)
		}
		r.resolveExpr(s.Cond)
		r.resolveExpr(s.Inc)
		r.resolveStmt(s.Body)
		r.popScope()
	case *ast.ReturnStmt:
		if s.Value != nil {
			r.resolveExpr(s.Value)
		}
	}
}

func (r *Resolver) resolveExpr(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Identifier:
		d, ok := r.lookup(e.Value)
		if !ok {
			r.addError(e.Pos(), "undeclared identifier %q", e.Value)
			return
		}
		e.Decl = d
	case *ast.BinaryExpression:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.UnaryExpression:
		r.resolveExpr(e.Operand)
	case *ast.ParenExpression:
		r.resolveExpr(e.Expr)
	case *ast.CastExpression:
		r.resolveExpr(e.Expr)
	case *ast.SizeofExpression:
		if e.Expr != nil {
			r.resolveExpr(e.Expr)
		}
	case *ast.IndexExpression:
		r.resolveExpr(e.Base)
		r.resolveExpr(e.Index)
	case *ast.CallExpression:
		r.resolveCall(e)
	}
}

// resolveCall links a call to its direct callee and resolves the
// argument expressions.
func (r *Resolver) resolveCall(call *ast.CallExpression) {
	d, ok := r.lookup(call.Function.Value)
	if !ok {
		r.addError(call.Function.Pos(), "call to undeclared function %q", call.Function.Value)
	} else if fn, isFn := d.(*ast.FunctionDecl); isFn {
		call.Function.Decl = fn
		call.Callee = fn
	} else {
		r.addError(call.Function.Pos(), "%q is not a function", call.Function.Value)
	}

	for _, arg := range call.Args {
		r.resolveExpr(arg)
	}
}
