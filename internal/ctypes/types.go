// Package ctypes models the small C type system the interpreter
// understands: the basic types int, char and void, pointers, fixed
// extent arrays and function signatures.
//
// The runtime representation is untyped 64-bit words, so types matter
// only to the front-end (declaration parsing, cast classification) and
// to the pointer-scaling rule in the evaluator. Every object occupies
// one word regardless of its declared basic type.
package ctypes

import (
	"fmt"
	"strings"
)

// WordSize is the uniform size in bytes of every runtime value.
// Pointer arithmetic scales integer offsets by this amount.
const WordSize = 8

// Type is the interface implemented by all type representations.
type Type interface {
	String() string
	typeNode()
}

// Kind enumerates the basic types.
type Kind int

const (
	Int Kind = iota
	Char
	Void
)

// Basic represents one of the built-in scalar types.
type Basic struct {
	Kind Kind
}

func (b *Basic) typeNode() {}

func (b *Basic) String() string {
	switch b.Kind {
	case Int:
		return "int"
	case Char:
		return "char"
	case Void:
		return "void"
	}
	return fmt.Sprintf("Kind(%d)", int(b.Kind))
}

// Pointer represents a pointer to an element type.
type Pointer struct {
	Elem Type
}

func (p *Pointer) typeNode() {}

func (p *Pointer) String() string {
	return p.Elem.String() + "*"
}

// Array represents a constant-extent array of an element type.
type Array struct {
	Elem Type
	Len  int64
}

func (a *Array) typeNode() {}

func (a *Array) String() string {
	return fmt.Sprintf("%s[%d]", a.Elem.String(), a.Len)
}

// Func represents a function signature.
type Func struct {
	Params []Type
	Result Type
}

func (f *Func) typeNode() {}

func (f *Func) String() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("%s(%s)", f.Result.String(), strings.Join(params, ", "))
}

// Singleton instances for the basic types. The parser hands out these
// shared instances, so a basic type it produced may be compared by
// identity (the parser's (void) parameter-list check does so); other
// code compares types by predicate.
var (
	IntType  = &Basic{Kind: Int}
	CharType = &Basic{Kind: Char}
	VoidType = &Basic{Kind: Void}
)

// IsInteger reports whether t is an integer-valued type (int or char).
func IsInteger(t Type) bool {
	b, ok := t.(*Basic)
	return ok && (b.Kind == Int || b.Kind == Char)
}

// IsPointer reports whether t is a pointer type.
func IsPointer(t Type) bool {
	_, ok := t.(*Pointer)
	return ok
}

// IsArray reports whether t is a constant-extent array type.
func IsArray(t Type) bool {
	_, ok := t.(*Array)
	return ok
}

// IsFunctionPointer reports whether t is a pointer whose element type
// is a function signature. Casts to such types are no-ops at runtime;
// they exist only so a call expression can reach its callee through
// the declaration graph.
func IsFunctionPointer(t Type) bool {
	p, ok := t.(*Pointer)
	if !ok {
		return false
	}
	_, ok = p.Elem.(*Func)
	return ok
}
