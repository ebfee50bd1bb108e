package evaluator

import (
	"github.com/ChinaNuke/ast-interpreter/internal/ast"
	"github.com/ChinaNuke/ast-interpreter/internal/interp/runtime"
)

// Evaluator walks the AST in evaluation order. Pure expressions are
// visited post-order (children first, then the semantic action);
// if/while/for/call/return drive their own traversal because naive
// post-order would evaluate branches and bodies unconditionally.
type Evaluator struct {
	env *Environment
}

// New creates an Evaluator over the given environment.
func New(env *Environment) *Evaluator {
	return &Evaluator{env: env}
}

// Env returns the evaluator's environment.
func (e *Evaluator) Env() *Environment {
	return e.env
}

// Run executes a resolved translation unit: it evaluates the global
// initializers in a bootstrap frame while recording the intrinsic and
// entry handles, then visits the entry function's body in a fresh
// frame.
func (e *Evaluator) Run(unit *ast.TranslationUnit) error {
	// Bootstrap frame: global initializers cache their sub-expression
	// values here for initUnit to read back.
	e.env.push(runtime.NewFrame())

	if err := e.env.initUnit(unit, e.Visit); err != nil {
		return err
	}

	e.env.pop()
	e.env.push(runtime.NewFrame())

	return e.Visit(e.env.Entry().Body)
}

// Visit dispatches on the node kind, evaluates the node and caches
// its result on the current frame. This is the dispatching visit:
// control-flow handlers use it to evaluate a sub-tree standalone.
func (e *Evaluator) Visit(node ast.Node) error {
	switch n := node.(type) {
	// Expressions, post-order: children first, then the action.
	case *ast.IntegerLiteral:
		e.env.literal(n)
	case *ast.CharLiteral:
		e.env.charLiteral(n)
	case *ast.SizeofExpression:
		// sizeof never evaluates its operand.
		e.env.sizeofExpr(n)
	case *ast.Identifier:
		return e.env.declref(n)
	case *ast.ParenExpression:
		if err := e.Visit(n.Expr); err != nil {
			return err
		}
		return e.env.paren(n)
	case *ast.CastExpression:
		if err := e.Visit(n.Expr); err != nil {
			return err
		}
		return e.env.cast(n)
	case *ast.UnaryExpression:
		if err := e.Visit(n.Operand); err != nil {
			return err
		}
		return e.env.unaryop(n)
	case *ast.BinaryExpression:
		if err := e.Visit(n.Left); err != nil {
			return err
		}
		if err := e.Visit(n.Right); err != nil {
			return err
		}
		return e.env.binop(n)
	case *ast.IndexExpression:
		if err := e.Visit(n.Base); err != nil {
			return err
		}
		if err := e.Visit(n.Index); err != nil {
			return err
		}
		return e.env.arraySubscript(n)
	case *ast.CallExpression:
		return e.visitCall(n)

	// Statements.
	case *ast.CompoundStmt:
		return e.visitCompound(n)
	case *ast.ExprStmt:
		if n.Expr != nil {
			return e.Visit(n.Expr)
		}
	case *ast.DeclStmt:
		return e.visitDecl(n)
	case *ast.ReturnStmt:
		return e.visitReturn(n)
	case *ast.IfStmt:
		return e.visitIf(n)
	case *ast.WhileStmt:
		return e.visitWhile(n)
	case *ast.ForStmt:
		return e.visitFor(n)

	default:
		return runtime.NewUnsupportedErrorf("node kind %T", node)
	}
	return nil
}

// visitCompound visits statements in order, stopping as soon as a
// return statement has executed in the current frame.
func (e *Evaluator) visitCompound(cs *ast.CompoundStmt) error {
	for _, stmt := range cs.Statements {
		if e.env.top().Returned() {
			return nil
		}
		if err := e.Visit(stmt); err != nil {
			return err
		}
	}
	return nil
}

// visitDecl evaluates the initializer expressions, then binds the
// declared variables.
func (e *Evaluator) visitDecl(ds *ast.DeclStmt) error {
	for _, vd := range ds.Decls {
		if vd.Init == nil {
			continue
		}
		if err := e.Visit(vd.Init); err != nil {
			return err
		}
	}
	return e.env.declStmt(ds)
}

// visitReturn evaluates the returned expression and writes the return
// slot. Unwinding happens in the enclosing statement visits.
func (e *Evaluator) visitReturn(rs *ast.ReturnStmt) error {
	if rs.Value != nil {
		if err := e.Visit(rs.Value); err != nil {
			return err
		}
	}
	return e.env.retStmt(rs)
}

// visitIf evaluates the condition, then visits exactly one branch.
// A missing else branch is legal.
func (e *Evaluator) visitIf(is *ast.IfStmt) error {
	if err := e.Visit(is.Cond); err != nil {
		return err
	}
	cond, err := e.env.ExprValue(is.Cond)
	if err != nil {
		return err
	}

	if cond != 0 {
		return e.Visit(is.Then)
	}
	if is.Else != nil {
		return e.Visit(is.Else)
	}
	return nil
}

// visitWhile re-evaluates the condition before every iteration so the
// cached condition value tracks the loop state.
func (e *Evaluator) visitWhile(ws *ast.WhileStmt) error {
	if err := e.Visit(ws.Cond); err != nil {
		return err
	}
	for {
		cond, err := e.env.ExprValue(ws.Cond)
		if err != nil {
			return err
		}
		if cond == 0 || e.env.top().Returned() {
			return nil
		}
		if err := e.Visit(ws.Body); err != nil {
			return err
		}
		if e.env.top().Returned() {
			return nil
		}
		if err := e.Visit(ws.Cond); err != nil {
			return err
		}
	}
}

// visitFor runs init once, then body and increment while the
// re-evaluated condition stays nonzero.
func (e *Evaluator) visitFor(fs *ast.ForStmt) error {
	if fs.Init != nil {
		if err := e.Visit(fs.Init); err != nil {
			return err
		}
	}
	if err := e.Visit(fs.Cond); err != nil {
		return err
	}
	for {
		cond, err := e.env.ExprValue(fs.Cond)
		if err != nil {
			return err
		}
		if cond == 0 || e.env.top().Returned() {
			return nil
		}
		if err := e.Visit(fs.Body); err != nil {
			return err
		}
		if e.env.top().Returned() {
			return nil
		}
		if err := e.Visit(fs.Inc); err != nil {
			return err
		}
		if err := e.Visit(fs.Cond); err != nil {
			return err
		}
	}
}

// visitCall evaluates the arguments in the caller's frame, dispatches
// intrinsics without a frame push, and otherwise pushes a fresh frame,
// binds the parameters, visits the callee's body and binds the return
// value to the call node in the caller's frame. The callee frame is
// released on every return path.
func (e *Evaluator) visitCall(call *ast.CallExpression) error {
	for _, arg := range call.Args {
		if err := e.Visit(arg); err != nil {
			return err
		}
	}

	if call.Callee == nil {
		return runtime.NewUndefinedErrorf(runtime.ErrUnresolvedRef, "call to unresolved %q", call.Function.Value)
	}

	wasIntrinsic, err := e.env.callIntrinsic(call)
	if wasIntrinsic || err != nil {
		return err
	}

	callee := call.Callee
	if callee.IsPrototype() {
		return runtime.NewUnsupportedErrorf("call to undefined function %q", callee.Name)
	}
	if len(call.Args) != len(callee.Params) {
		return runtime.NewUnsupportedErrorf("%q called with %d argument(s), wants %d",
			callee.Name, len(call.Args), len(callee.Params))
	}

	// Read argument words from the caller's frame before pushing.
	caller := e.env.top()
	frame := runtime.NewFrame()
	for i, param := range callee.Params {
		v, err := caller.StmtValue(call.Args[i])
		if err != nil {
			return err
		}
		frame.BindDecl(param, v)
	}

	e.env.push(frame)
	err = e.Visit(callee.Body)
	ret := e.env.top().ReturnValue()
	e.env.pop()
	if err != nil {
		return err
	}

	caller.BindStmt(call, ret)
	return nil
}
