package runtime

import (
	"errors"
	"testing"

	"github.com/ChinaNuke/ast-interpreter/internal/ast"
	"github.com/ChinaNuke/ast-interpreter/internal/ctypes"
	"github.com/ChinaNuke/ast-interpreter/internal/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVarDecl(name string) *ast.VarDecl {
	return &ast.VarDecl{Name: name, Type: ctypes.IntType}
}

func newIdent(name string) *ast.Identifier {
	return &ast.Identifier{
		Token: lexer.Token{Type: lexer.IDENT, Literal: name},
		Value: name,
	}
}

func TestFrameDeclBindings(t *testing.T) {
	f := NewFrame()
	d := newVarDecl("a")

	assert.False(t, f.HasDecl(d))

	f.BindDecl(d, 42)
	require.True(t, f.HasDecl(d))

	v, err := f.DeclValue(d)
	require.NoError(t, err)
	assert.Equal(t, Word(42), v)

	// Rebinding overwrites.
	f.BindDecl(d, 7)
	v, err = f.DeclValue(d)
	require.NoError(t, err)
	assert.Equal(t, Word(7), v)
}

func TestFrameDeclIdentity(t *testing.T) {
	f := NewFrame()
	a := newVarDecl("x")
	b := newVarDecl("x")

	f.BindDecl(a, 1)

	// Same name, different declaration: no binding.
	assert.False(t, f.HasDecl(b))
}

func TestFrameMissingBindings(t *testing.T) {
	f := NewFrame()

	_, err := f.DeclValue(newVarDecl("a"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingBinding))

	_, err = f.StmtValue(newIdent("a"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingBinding))

	_, err = f.Addr(newIdent("a"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingBinding))
}

func TestFrameStmtAndAddrCaches(t *testing.T) {
	f := NewFrame()
	n := newIdent("p")

	f.BindStmt(n, 5)
	require.True(t, f.HasStmt(n))

	v, err := f.StmtValue(n)
	require.NoError(t, err)
	assert.Equal(t, Word(5), v)

	// Value and address caches are independent.
	_, err = f.Addr(n)
	require.Error(t, err)

	f.BindAddr(n, 0x10008)
	a, err := f.Addr(n)
	require.NoError(t, err)
	assert.Equal(t, Word(0x10008), a)
}

func TestFrameReturnSlot(t *testing.T) {
	f := NewFrame()

	assert.False(t, f.Returned())

	f.SetReturn(13)
	assert.True(t, f.Returned())
	assert.Equal(t, Word(13), f.ReturnValue())
}
