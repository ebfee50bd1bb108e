// Package runtime provides the value model, stack frames and word
// memory backing the evaluator. The single runtime value type is a
// 64-bit signed word that encodes both integers and addresses.
package runtime

import (
	"github.com/ChinaNuke/ast-interpreter/internal/ast"
)

// Word is the uniform runtime value: a 64-bit signed integer that
// also carries addresses into Memory.
type Word = int64

// Frame is the per-call storage of the evaluator. It maps declaration
// identity to current values, AST node identity to cached evaluation
// results, and lvalue nodes to the addresses their last evaluation
// produced, plus a return-value slot.
//
// All maps key on pointer identity of the AST nodes; two nodes are the
// same binding only when they are the same node.
type Frame struct {
	declValues  map[ast.Decl]Word
	stmtValues  map[ast.Node]Word
	stmtAddrs   map[ast.Node]Word
	returnValue Word
	returned    bool
}

// NewFrame creates an empty frame.
func NewFrame() *Frame {
	return &Frame{
		declValues: make(map[ast.Decl]Word),
		stmtValues: make(map[ast.Node]Word),
		stmtAddrs:  make(map[ast.Node]Word),
	}
}

// BindDecl sets the current value of a declaration in this frame.
func (f *Frame) BindDecl(d ast.Decl, v Word) {
	f.declValues[d] = v
}

// HasDecl reports whether the declaration has a value in this frame.
func (f *Frame) HasDecl(d ast.Decl) bool {
	_, ok := f.declValues[d]
	return ok
}

// DeclValue returns the current value of a declaration. A missing
// binding is an evaluator bug, not a user-program error.
func (f *Frame) DeclValue(d ast.Decl) (Word, error) {
	v, ok := f.declValues[d]
	if !ok {
		return 0, NewInternalErrorf(ErrMissingBinding, "no value bound for declaration %q", d.DeclName())
	}
	return v, nil
}

// BindStmt caches the evaluated value of an AST node.
func (f *Frame) BindStmt(n ast.Node, v Word) {
	f.stmtValues[n] = v
}

// HasStmt reports whether the node has a cached value in this frame.
func (f *Frame) HasStmt(n ast.Node) bool {
	_, ok := f.stmtValues[n]
	return ok
}

// StmtValue returns the cached value of an AST node. A missing
// binding indicates a gap in visit coverage.
func (f *Frame) StmtValue(n ast.Node) (Word, error) {
	v, ok := f.stmtValues[n]
	if !ok {
		return 0, NewInternalErrorf(ErrMissingBinding, "no value cached for node %q", n.String())
	}
	return v, nil
}

// BindAddr caches the address produced by an lvalue node so that
// assignment can later write through it.
func (f *Frame) BindAddr(n ast.Node, a Word) {
	f.stmtAddrs[n] = a
}

// Addr returns the cached address of an lvalue node.
func (f *Frame) Addr(n ast.Node) (Word, error) {
	a, ok := f.stmtAddrs[n]
	if !ok {
		return 0, NewInternalErrorf(ErrMissingBinding, "no address cached for node %q", n.String())
	}
	return a, nil
}

// SetReturn stores the function's return value and marks the frame as
// returned, which stops further statement visits in this function.
func (f *Frame) SetReturn(v Word) {
	f.returnValue = v
	f.returned = true
}

// ReturnValue reads the return slot. Its value is unspecified when no
// return statement executed.
func (f *Frame) ReturnValue() Word {
	return f.returnValue
}

// Returned reports whether a return statement has executed in this frame.
func (f *Frame) Returned() bool {
	return f.returned
}
