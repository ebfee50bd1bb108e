// Package interp provides the public entry point for executing a
// resolved translation unit. It wires the evaluator's environment and
// visitor together behind a small facade.
package interp

import (
	"io"
	"os"

	"github.com/ChinaNuke/ast-interpreter/internal/ast"
	"github.com/ChinaNuke/ast-interpreter/internal/interp/evaluator"
)

// Interpreter executes translation units. Program output (PRINT and
// the GET prompt) goes to out; GET reads decimal integers from in.
type Interpreter struct {
	out io.Writer
	in  io.Reader
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithInput sets the reader GET consumes integers from.
// The default is standard input.
func WithInput(r io.Reader) Option {
	return func(i *Interpreter) {
		i.in = r
	}
}

// New creates a new Interpreter writing program output to out.
func New(out io.Writer, opts ...Option) *Interpreter {
	i := &Interpreter{out: out, in: os.Stdin}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run executes a resolved translation unit from its main function.
// Each call runs in a fresh environment with fresh memory.
func (i *Interpreter) Run(unit *ast.TranslationUnit) error {
	env := evaluator.NewEnvironment(i.out, i.in)
	return evaluator.New(env).Run(unit)
}
