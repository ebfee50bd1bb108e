package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/ChinaNuke/ast-interpreter/internal/ctypes"
	"github.com/ChinaNuke/ast-interpreter/internal/lexer"
)

// VarDecl represents a variable declaration, at file scope or inside a
// function body. Array extents are carried by the declared type.
type VarDecl struct {
	Token lexer.Token // The first token of the declaration
	Name  string      // The declared name
	Type  ctypes.Type // The declared type
	Init  Expression  // The initializer expression, or nil
}

func (vd *VarDecl) declNode()            {}
func (vd *VarDecl) TokenLiteral() string { return vd.Token.Literal }
func (vd *VarDecl) Pos() lexer.Position  { return vd.Token.Pos }
func (vd *VarDecl) DeclName() string     { return vd.Name }

func (vd *VarDecl) String() string {
	var out bytes.Buffer

	if arr, ok := vd.Type.(*ctypes.Array); ok {
		out.WriteString(arr.Elem.String())
		out.WriteString(" ")
		out.WriteString(vd.Name)
		out.WriteString("[")
		out.WriteString(strconv.FormatInt(arr.Len, 10))
		out.WriteString("]")
	} else {
		out.WriteString(vd.Type.String())
		out.WriteString(" ")
		out.WriteString(vd.Name)
	}
	if vd.Init != nil {
		out.WriteString(" = ")
		out.WriteString(vd.Init.String())
	}
	out.WriteString(";")

	return out.String()
}

// ParamDecl represents a function parameter declaration.
type ParamDecl struct {
	Token lexer.Token // The first token of the parameter
	Name  string      // The parameter name
	Type  ctypes.Type // The parameter type
}

func (pd *ParamDecl) declNode()            {}
func (pd *ParamDecl) TokenLiteral() string { return pd.Token.Literal }
func (pd *ParamDecl) Pos() lexer.Position  { return pd.Token.Pos }
func (pd *ParamDecl) DeclName() string     { return pd.Name }

func (pd *ParamDecl) String() string {
	return pd.Type.String() + " " + pd.Name
}

// FunctionDecl represents a function definition or an extern
// prototype. Prototypes have a nil Body; the four intrinsics are
// declared this way and implemented by the interpreter itself.
type FunctionDecl struct {
	Token      lexer.Token   // The first token of the declaration
	Name       string        // The function name
	Params     []*ParamDecl  // The parameters, in source order
	ReturnType ctypes.Type   // The declared return type
	Body       *CompoundStmt // The function body, or nil for prototypes
	Extern     bool          // Whether the declaration was marked extern
}

func (fd *FunctionDecl) declNode()            {}
func (fd *FunctionDecl) TokenLiteral() string { return fd.Token.Literal }
func (fd *FunctionDecl) Pos() lexer.Position  { return fd.Token.Pos }
func (fd *FunctionDecl) DeclName() string     { return fd.Name }

// IsPrototype reports whether this declaration has no body.
func (fd *FunctionDecl) IsPrototype() bool { return fd.Body == nil }

func (fd *FunctionDecl) String() string {
	var out bytes.Buffer

	if fd.Extern {
		out.WriteString("extern ")
	}
	out.WriteString(fd.ReturnType.String())
	out.WriteString(" ")
	out.WriteString(fd.Name)
	out.WriteString("(")
	params := make([]string, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = p.String()
	}
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(")")
	if fd.Body != nil {
		out.WriteString(" ")
		out.WriteString(fd.Body.String())
	} else {
		out.WriteString(";")
	}

	return out.String()
}
