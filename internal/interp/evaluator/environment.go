// Package evaluator implements the tree-walking evaluator: the global
// interpreter state, the per-node semantic actions and the visitor
// that drives traversal in evaluation order.
package evaluator

import (
	"bufio"
	"io"

	"github.com/ChinaNuke/ast-interpreter/internal/ast"
	"github.com/ChinaNuke/ast-interpreter/internal/ctypes"
	"github.com/ChinaNuke/ast-interpreter/internal/interp/runtime"
)

// Environment is the global interpreter state: the stack of frames,
// the global-variable map, the word memory, and the resolved handles
// to the four intrinsics and the entry function.
//
// Intrinsics and the entry point are recognized by declaration
// identity; names are only consulted once, during initUnit.
type Environment struct {
	stack   []*runtime.Frame
	globals map[ast.Decl]runtime.Word
	mem     *runtime.Memory

	fnFree   *ast.FunctionDecl
	fnMalloc *ast.FunctionDecl
	fnGet    *ast.FunctionDecl
	fnPrint  *ast.FunctionDecl
	entry    *ast.FunctionDecl

	in  *bufio.Reader
	out io.Writer
}

// NewEnvironment creates an Environment reading GET input from in and
// writing PRINT output and prompts to out.
func NewEnvironment(out io.Writer, in io.Reader) *Environment {
	return &Environment{
		globals: make(map[ast.Decl]runtime.Word),
		mem:     runtime.NewMemory(),
		in:      bufio.NewReader(in),
		out:     out,
	}
}

// Entry returns the resolved entry function, or nil before Init.
func (env *Environment) Entry() *ast.FunctionDecl {
	return env.entry
}

// Memory exposes the word memory backing MALLOC and array blocks.
func (env *Environment) Memory() *runtime.Memory {
	return env.mem
}

// StackDepth returns the current number of frames.
func (env *Environment) StackDepth() int {
	return len(env.stack)
}

// top returns the currently executing frame. The stack is never empty
// during execution.
func (env *Environment) top() *runtime.Frame {
	return env.stack[len(env.stack)-1]
}

func (env *Environment) push(f *runtime.Frame) {
	env.stack = append(env.stack, f)
}

func (env *Environment) pop() *runtime.Frame {
	f := env.stack[len(env.stack)-1]
	env.stack = env.stack[:len(env.stack)-1]
	return f
}

// ExprValue reads the cached value of an evaluated expression from the
// top frame. Control-flow handlers use it to branch on conditions.
func (env *Environment) ExprValue(e ast.Expression) (runtime.Word, error) {
	return env.top().StmtValue(e)
}

// initUnit walks the top-level declarations once, recording the
// intrinsic and entry handles and populating the globals map. Global
// initializers are evaluated through visit into the bootstrap frame
// (the current top frame), in declaration order, so an initializer
// may read globals declared above it.
func (env *Environment) initUnit(unit *ast.TranslationUnit, visit func(ast.Node) error) error {
	bootstrap := env.top()

	for _, decl := range unit.Decls {
		switch d := decl.(type) {
		case *ast.FunctionDecl:
			switch d.Name {
			case "FREE":
				env.fnFree = d
			case "MALLOC":
				env.fnMalloc = d
			case "GET":
				env.fnGet = d
			case "PRINT":
				env.fnPrint = d
			case "main":
				env.entry = d
			}
		case *ast.VarDecl:
			if arr, ok := d.Type.(*ctypes.Array); ok {
				base, err := env.mem.Alloc(arr.Len * ctypes.WordSize)
				if err != nil {
					return err
				}
				env.globals[d] = base
				continue
			}
			if d.Init != nil {
				if err := visit(d.Init); err != nil {
					return err
				}
				v, err := bootstrap.StmtValue(d.Init)
				if err != nil {
					return err
				}
				env.globals[d] = v
			} else {
				env.globals[d] = 0
			}
		}
	}

	if env.entry == nil {
		return runtime.NewUndefinedErrorf(runtime.ErrNoEntry, "entry function main not found")
	}

	return nil
}
