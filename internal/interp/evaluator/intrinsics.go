package evaluator

import (
	"fmt"

	"github.com/ChinaNuke/ast-interpreter/internal/ast"
	"github.com/ChinaNuke/ast-interpreter/internal/interp/runtime"
)

// callIntrinsic dispatches a call whose callee is one of the four
// intrinsics. It reports whether the call was an intrinsic so the
// visitor skips frame push, body visit and frame pop. Argument values
// are already cached in the top (caller's) frame.
func (env *Environment) callIntrinsic(call *ast.CallExpression) (bool, error) {
	frame := env.top()

	switch {
	case call.Callee == env.fnGet:
		fmt.Fprint(env.out, "Please Input an Integer Value : ")
		var v runtime.Word
		if _, err := fmt.Fscan(env.in, &v); err != nil {
			return true, runtime.NewRuntimeErrorf(runtime.ErrInput, "GET could not read an integer: %v", err)
		}
		frame.BindStmt(call, v)
		return true, nil

	case call.Callee == env.fnPrint:
		v, err := env.intrinsicArg(call, 0)
		if err != nil {
			return true, err
		}
		fmt.Fprintf(env.out, "%d", v)
		frame.BindStmt(call, 0)
		return true, nil

	case call.Callee == env.fnMalloc:
		n, err := env.intrinsicArg(call, 0)
		if err != nil {
			return true, err
		}
		base, err := env.mem.Alloc(n)
		if err != nil {
			return true, err
		}
		frame.BindStmt(call, base)
		return true, nil

	case call.Callee == env.fnFree:
		p, err := env.intrinsicArg(call, 0)
		if err != nil {
			return true, err
		}
		// FREE binds no value; callers discard it.
		return true, env.mem.Free(p)
	}

	return false, nil
}

// intrinsicArg reads the cached word of an intrinsic call argument.
func (env *Environment) intrinsicArg(call *ast.CallExpression, i int) (runtime.Word, error) {
	if i >= len(call.Args) {
		return 0, runtime.NewUnsupportedErrorf("%s expects at least %d argument(s)", call.Function.Value, i+1)
	}
	return env.top().StmtValue(call.Args[i])
}
