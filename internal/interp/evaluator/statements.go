package evaluator

import (
	"github.com/ChinaNuke/ast-interpreter/internal/ast"
	"github.com/ChinaNuke/ast-interpreter/internal/ctypes"
	"github.com/ChinaNuke/ast-interpreter/internal/interp/runtime"
)

// declStmt binds each declared variable in the top frame. Scalars and
// pointers take their initializer's cached value, or zero. A constant
// extent array allocates a zeroed block and binds its base address;
// the block lives for the rest of the program.
func (env *Environment) declStmt(ds *ast.DeclStmt) error {
	frame := env.top()

	for _, vd := range ds.Decls {
		if arr, ok := vd.Type.(*ctypes.Array); ok {
			if vd.Init != nil {
				return runtime.NewUnsupportedErrorf("initializer on array %q", vd.Name)
			}
			base, err := env.mem.Alloc(arr.Len * ctypes.WordSize)
			if err != nil {
				return err
			}
			frame.BindDecl(vd, base)
			continue
		}

		var v runtime.Word
		if vd.Init != nil {
			var err error
			v, err = frame.StmtValue(vd.Init)
			if err != nil {
				return err
			}
		}
		frame.BindDecl(vd, v)
	}

	return nil
}

// retStmt writes the return slot of the top frame and marks it
// returned. It does not itself unwind; the enclosing statement
// visits stop once the frame reports returned.
func (env *Environment) retStmt(rs *ast.ReturnStmt) error {
	frame := env.top()

	if rs.Value == nil {
		frame.SetReturn(0)
		return nil
	}

	v, err := frame.StmtValue(rs.Value)
	if err != nil {
		return err
	}
	frame.SetReturn(v)
	return nil
}
