package evaluator

import (
	"github.com/ChinaNuke/ast-interpreter/internal/ast"
	"github.com/ChinaNuke/ast-interpreter/internal/ctypes"
	"github.com/ChinaNuke/ast-interpreter/internal/interp/runtime"
)

// literal binds an integer literal's signed value to its node.
func (env *Environment) literal(lit *ast.IntegerLiteral) {
	env.top().BindStmt(lit, lit.Value)
}

// charLiteral binds a character literal's code point, zero-extended
// into a word.
func (env *Environment) charLiteral(lit *ast.CharLiteral) {
	env.top().BindStmt(lit, runtime.Word(lit.Value))
}

// sizeofExpr binds the word size. Every object in this dialect
// occupies exactly one word, whatever the operand.
func (env *Environment) sizeofExpr(se *ast.SizeofExpression) {
	env.top().BindStmt(se, ctypes.WordSize)
}

// paren propagates the child's cached value to the paren node, and
// the child's address when it produced one, so parenthesized lvalues
// stay assignable.
func (env *Environment) paren(pe *ast.ParenExpression) error {
	frame := env.top()
	v, err := frame.StmtValue(pe.Expr)
	if err != nil {
		return err
	}
	frame.BindStmt(pe, v)
	if addr, err := frame.Addr(pe.Expr); err == nil {
		frame.BindAddr(pe, addr)
	}
	return nil
}

// cast propagates the sub-expression's word unchanged for integer and
// data-pointer targets. Function-pointer casts bind nothing: they
// exist only so a call can reach its callee through the declaration
// graph.
func (env *Environment) cast(ce *ast.CastExpression) error {
	if ctypes.IsFunctionPointer(ce.TargetType) {
		return nil
	}
	if !ctypes.IsInteger(ce.TargetType) && !ctypes.IsPointer(ce.TargetType) {
		return nil
	}

	frame := env.top()
	v, err := frame.StmtValue(ce.Expr)
	if err != nil {
		return err
	}
	frame.BindStmt(ce, v)
	return nil
}

// declref resolves the referenced declaration and binds its current
// value: top frame first, then globals. Function references bind no
// value; only calls consume them.
func (env *Environment) declref(ident *ast.Identifier) error {
	d := ident.Decl
	if d == nil {
		return runtime.NewUndefinedErrorf(runtime.ErrUnresolvedRef, "reference to %q has no declaration", ident.Value)
	}
	if _, isFn := d.(*ast.FunctionDecl); isFn {
		return nil
	}

	frame := env.top()
	if frame.HasDecl(d) {
		v, err := frame.DeclValue(d)
		if err != nil {
			return err
		}
		frame.BindStmt(ident, v)
		return nil
	}
	if v, ok := env.globals[d]; ok {
		frame.BindStmt(ident, v)
		return nil
	}

	return runtime.NewUndefinedErrorf(runtime.ErrUnresolvedRef, "%q is not bound in any scope", ident.Value)
}

// binop performs assignment, arithmetic and comparison. Both operands
// have already been evaluated into the top frame.
func (env *Environment) binop(be *ast.BinaryExpression) error {
	if be.IsAssignment() {
		return env.assign(be)
	}

	frame := env.top()
	lhs, err := frame.StmtValue(be.Left)
	if err != nil {
		return err
	}
	rhs, err := frame.StmtValue(be.Right)
	if err != nil {
		return err
	}

	// Element-scaled pointer arithmetic: when exactly one operand of
	// + or - is a pointer, the integer operand is scaled by the word
	// size before the operation.
	if be.Operator == "+" || be.Operator == "-" {
		leftPtr := isPointerValued(be.Left)
		rightPtr := isPointerValued(be.Right)
		switch {
		case leftPtr && !rightPtr:
			rhs *= ctypes.WordSize
		case rightPtr && !leftPtr:
			lhs *= ctypes.WordSize
		}
	}

	var result runtime.Word
	switch be.Operator {
	case "+":
		result = lhs + rhs
	case "-":
		result = lhs - rhs
	case "*":
		result = lhs * rhs
	case "/":
		if rhs == 0 {
			return runtime.NewRuntimeErrorf(runtime.ErrDivideByZero, "%d / 0", lhs)
		}
		result = lhs / rhs
	case "==":
		result = boolWord(lhs == rhs)
	case "!=":
		result = boolWord(lhs != rhs)
	case "<":
		result = boolWord(lhs < rhs)
	case ">":
		result = boolWord(lhs > rhs)
	case "<=":
		result = boolWord(lhs <= rhs)
	case ">=":
		result = boolWord(lhs >= rhs)
	default:
		return runtime.NewUnsupportedErrorf("binary operator %q", be.Operator)
	}

	frame.BindStmt(be, result)
	return nil
}

// assign stores the RHS value through the LHS: directly for declrefs,
// through the cached address for subscripts and dereferences. The
// assignment's own value is the RHS.
func (env *Environment) assign(be *ast.BinaryExpression) error {
	frame := env.top()
	rhs, err := frame.StmtValue(be.Right)
	if err != nil {
		return err
	}

	// Parentheses around the target do not change what is assigned.
	target := be.Left
	for pe, ok := target.(*ast.ParenExpression); ok; pe, ok = target.(*ast.ParenExpression) {
		target = pe.Expr
	}

	switch lhs := target.(type) {
	case *ast.Identifier:
		d := lhs.Decl
		if d == nil {
			return runtime.NewUndefinedErrorf(runtime.ErrUnresolvedRef, "assignment to unresolved %q", lhs.Value)
		}
		if _, ok := env.globals[d]; ok && !frame.HasDecl(d) {
			env.globals[d] = rhs
		} else {
			frame.BindDecl(d, rhs)
		}
	case *ast.IndexExpression:
		addr, err := frame.Addr(lhs)
		if err != nil {
			return err
		}
		if err := env.mem.Store(addr, rhs); err != nil {
			return err
		}
	case *ast.UnaryExpression:
		if lhs.Operator != "*" {
			return runtime.NewUnsupportedErrorf("assignment to unary %q expression", lhs.Operator)
		}
		addr, err := frame.Addr(lhs)
		if err != nil {
			return err
		}
		if err := env.mem.Store(addr, rhs); err != nil {
			return err
		}
	default:
		return runtime.NewUnsupportedErrorf("assignment to %s", lhs.String())
	}

	frame.BindStmt(be, rhs)
	return nil
}

// unaryop performs the unary operators. Dereference binds both the
// loaded word and the address itself, so assignment through *p can
// later write through it.
func (env *Environment) unaryop(ue *ast.UnaryExpression) error {
	frame := env.top()

	// Address-of yields the operand's cached lvalue address; there is
	// no address-of-local facility beyond that.
	if ue.Operator == "&" {
		addr, err := frame.Addr(ue.Operand)
		if err != nil {
			return runtime.NewUnsupportedErrorf("cannot take the address of %s", ue.Operand.String())
		}
		frame.BindStmt(ue, addr)
		return nil
	}

	v, err := frame.StmtValue(ue.Operand)
	if err != nil {
		return err
	}

	switch ue.Operator {
	case "+":
		frame.BindStmt(ue, v)
	case "-":
		frame.BindStmt(ue, -v)
	case "~":
		frame.BindStmt(ue, ^v)
	case "!":
		frame.BindStmt(ue, boolWord(v == 0))
	case "*":
		loaded, err := env.mem.Load(v)
		if err != nil {
			return err
		}
		frame.BindStmt(ue, loaded)
		frame.BindAddr(ue, v)
	default:
		return runtime.NewUnsupportedErrorf("unary operator %q", ue.Operator)
	}

	return nil
}

// arraySubscript computes the element-scaled effective address and
// binds both the loaded word and the address for write-through.
func (env *Environment) arraySubscript(ie *ast.IndexExpression) error {
	frame := env.top()

	base, err := frame.StmtValue(ie.Base)
	if err != nil {
		return err
	}
	index, err := frame.StmtValue(ie.Index)
	if err != nil {
		return err
	}

	addr := base + index*ctypes.WordSize
	loaded, err := env.mem.Load(addr)
	if err != nil {
		return err
	}

	frame.BindStmt(ie, loaded)
	frame.BindAddr(ie, addr)
	return nil
}

func boolWord(b bool) runtime.Word {
	if b {
		return 1
	}
	return 0
}

// isPointerValued reports whether an expression statically has pointer
// type, for the element-scaling rule. Arrays count: referencing an
// array yields its base address.
func isPointerValued(e ast.Expression) bool {
	t := staticType(e)
	return t != nil && (ctypes.IsPointer(t) || ctypes.IsArray(t))
}

// staticType computes the declared type of an expression from the
// resolved declaration graph. It returns nil when no type is known;
// unknown operands are treated as integers.
func staticType(e ast.Expression) ctypes.Type {
	switch n := e.(type) {
	case *ast.IntegerLiteral, *ast.CharLiteral, *ast.SizeofExpression:
		return ctypes.IntType
	case *ast.Identifier:
		switch d := n.Decl.(type) {
		case *ast.VarDecl:
			return d.Type
		case *ast.ParamDecl:
			return d.Type
		}
		return nil
	case *ast.ParenExpression:
		return staticType(n.Expr)
	case *ast.CastExpression:
		return n.TargetType
	case *ast.UnaryExpression:
		if n.Operator == "*" {
			if p, ok := staticType(n.Operand).(*ctypes.Pointer); ok {
				return p.Elem
			}
			return nil
		}
		if n.Operator == "&" {
			if t := staticType(n.Operand); t != nil {
				return &ctypes.Pointer{Elem: t}
			}
			return nil
		}
		return ctypes.IntType
	case *ast.BinaryExpression:
		switch n.Operator {
		case "=":
			return staticType(n.Left)
		case "+", "-":
			if lt := staticType(n.Left); lt != nil && (ctypes.IsPointer(lt) || ctypes.IsArray(lt)) {
				return lt
			}
			if rt := staticType(n.Right); rt != nil && (ctypes.IsPointer(rt) || ctypes.IsArray(rt)) {
				return rt
			}
			return ctypes.IntType
		default:
			return ctypes.IntType
		}
	case *ast.IndexExpression:
		switch t := staticType(n.Base).(type) {
		case *ctypes.Pointer:
			return t.Elem
		case *ctypes.Array:
			return t.Elem
		}
		return nil
	case *ast.CallExpression:
		if n.Callee != nil {
			return n.Callee.ReturnType
		}
		return nil
	}
	return nil
}
