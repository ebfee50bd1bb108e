package parser

import (
	"testing"

	"github.com/ChinaNuke/ast-interpreter/internal/ast"
	"github.com/ChinaNuke/ast-interpreter/internal/ctypes"
	"github.com/ChinaNuke/ast-interpreter/internal/lexer"
)

func parseUnit(t *testing.T, input string) *ast.TranslationUnit {
	t.Helper()

	l := lexer.New(input)
	p := New(l)
	unit := p.ParseTranslationUnit()

	if errs := p.Errors(); len(errs) != 0 {
		for _, e := range errs {
			t.Errorf("parser error: %s", e)
		}
		t.FailNow()
	}
	return unit
}

func TestParseFunctionDefinition(t *testing.T) {
	input := `int main() { return 0; }`

	unit := parseUnit(t, input)

	if len(unit.Decls) != 1 {
		t.Fatalf("unit.Decls has %d declarations, want 1", len(unit.Decls))
	}

	fn, ok := unit.Decls[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("decl is %T, want *ast.FunctionDecl", unit.Decls[0])
	}
	if fn.Name != "main" {
		t.Errorf("fn.Name = %q, want %q", fn.Name, "main")
	}
	if fn.ReturnType != ctypes.IntType {
		t.Errorf("fn.ReturnType = %s, want int", fn.ReturnType)
	}
	if fn.Body == nil || len(fn.Body.Statements) != 1 {
		t.Fatalf("fn.Body should hold exactly one statement")
	}
	if _, ok := fn.Body.Statements[0].(*ast.ReturnStmt); !ok {
		t.Errorf("statement is %T, want *ast.ReturnStmt", fn.Body.Statements[0])
	}
}

func TestParseExternPrototypes(t *testing.T) {
	input := `extern int GET();
extern void * MALLOC(int);
extern void FREE(void *);
extern void PRINT(int);`

	unit := parseUnit(t, input)

	if len(unit.Decls) != 4 {
		t.Fatalf("unit.Decls has %d declarations, want 4", len(unit.Decls))
	}

	tests := []struct {
		name       string
		returnType string
		params     int
	}{
		{"GET", "int", 0},
		{"MALLOC", "void*", 1},
		{"FREE", "void", 1},
		{"PRINT", "void", 1},
	}

	for i, tt := range tests {
		fn, ok := unit.Decls[i].(*ast.FunctionDecl)
		if !ok {
			t.Fatalf("decls[%d] is %T, want *ast.FunctionDecl", i, unit.Decls[i])
		}
		if fn.Name != tt.name {
			t.Errorf("decls[%d].Name = %q, want %q", i, fn.Name, tt.name)
		}
		if !fn.Extern || !fn.IsPrototype() {
			t.Errorf("decls[%d] should be an extern prototype", i)
		}
		if got := fn.ReturnType.String(); got != tt.returnType {
			t.Errorf("decls[%d].ReturnType = %s, want %s", i, got, tt.returnType)
		}
		if len(fn.Params) != tt.params {
			t.Errorf("decls[%d] has %d params, want %d", i, len(fn.Params), tt.params)
		}
	}
}

func TestParseParameterNames(t *testing.T) {
	input := `void swap(int *x, int *y) { }`

	unit := parseUnit(t, input)
	fn := unit.Decls[0].(*ast.FunctionDecl)

	if len(fn.Params) != 2 {
		t.Fatalf("fn has %d params, want 2", len(fn.Params))
	}
	for i, name := range []string{"x", "y"} {
		if fn.Params[i].Name != name {
			t.Errorf("params[%d].Name = %q, want %q", i, fn.Params[i].Name, name)
		}
		if !ctypes.IsPointer(fn.Params[i].Type) {
			t.Errorf("params[%d].Type = %s, want a pointer", i, fn.Params[i].Type)
		}
	}
}

func TestParseLocalDeclarations(t *testing.T) {
	input := `int main() {
	int a = 5;
	int *p;
	int c[2];
	int x, y;
}`

	unit := parseUnit(t, input)
	body := unit.Decls[0].(*ast.FunctionDecl).Body

	if len(body.Statements) != 4 {
		t.Fatalf("body has %d statements, want 4", len(body.Statements))
	}

	ds := body.Statements[0].(*ast.DeclStmt)
	if ds.Decls[0].Name != "a" || ds.Decls[0].Init == nil {
		t.Errorf("first declaration should be a with initializer")
	}

	ds = body.Statements[1].(*ast.DeclStmt)
	if !ctypes.IsPointer(ds.Decls[0].Type) {
		t.Errorf("p should have pointer type, got %s", ds.Decls[0].Type)
	}

	ds = body.Statements[2].(*ast.DeclStmt)
	arr, ok := ds.Decls[0].Type.(*ctypes.Array)
	if !ok || arr.Len != 2 {
		t.Errorf("c should have type int[2], got %s", ds.Decls[0].Type)
	}

	ds = body.Statements[3].(*ast.DeclStmt)
	if len(ds.Decls) != 2 {
		t.Errorf("int x, y; should declare 2 variables, got %d", len(ds.Decls))
	}
}

func TestParsePointerArrayDeclarator(t *testing.T) {
	input := `int main() { int* c[2]; }`

	unit := parseUnit(t, input)
	body := unit.Decls[0].(*ast.FunctionDecl).Body
	vd := body.Statements[0].(*ast.DeclStmt).Decls[0]

	arr, ok := vd.Type.(*ctypes.Array)
	if !ok {
		t.Fatalf("c has type %s, want an array", vd.Type)
	}
	if !ctypes.IsPointer(arr.Elem) {
		t.Errorf("element type is %s, want int*", arr.Elem)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a + b * c", "(a + (b * c))"},
		{"a * b + c", "((a * b) + c)"},
		{"a + b - c", "((a + b) - c)"},
		{"a < b + c", "(a < (b + c))"},
		{"a == b < c", "(a == (b < c))"},
		{"-a * b", "((-a) * b)"},
		{"!a == b", "((!a) == b)"},
		{"*p + 1", "((*p) + 1)"},
		{"a = b = c", "(a = (b = c))"},
		{"a = b + c", "(a = (b + c))"},
		{"*(a + 1)", "(*((a + 1)))"},
		{"a[i + 1]", "a[(i + 1)]"},
		{"f(a, b + c)", "f(a, (b + c))"},
	}

	for _, tt := range tests {
		unit := parseUnit(t, "int main() { "+tt.input+"; }")
		body := unit.Decls[0].(*ast.FunctionDecl).Body
		expr := body.Statements[0].(*ast.ExprStmt).Expr

		if got := expr.String(); got != tt.expected {
			t.Errorf("input %q parsed as %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestParseCastExpression(t *testing.T) {
	input := `int main() { a = (int*)MALLOC(sizeof(int)*2); }`

	unit := parseUnit(t, input)
	body := unit.Decls[0].(*ast.FunctionDecl).Body
	assign := body.Statements[0].(*ast.ExprStmt).Expr.(*ast.BinaryExpression)

	cast, ok := assign.Right.(*ast.CastExpression)
	if !ok {
		t.Fatalf("RHS is %T, want *ast.CastExpression", assign.Right)
	}
	if got := cast.TargetType.String(); got != "int*" {
		t.Errorf("cast target = %s, want int*", got)
	}

	call, ok := cast.Expr.(*ast.CallExpression)
	if !ok {
		t.Fatalf("cast operand is %T, want *ast.CallExpression", cast.Expr)
	}
	if call.Function.Value != "MALLOC" || len(call.Args) != 1 {
		t.Errorf("cast operand should be MALLOC with one argument")
	}
}

func TestParseSizeof(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"sizeof(int)", "sizeof(int)"},
		{"sizeof(int *)", "sizeof(int*)"},
		{"sizeof(x)", "sizeof(x)"},
	}

	for _, tt := range tests {
		unit := parseUnit(t, "int main() { "+tt.input+"; }")
		body := unit.Decls[0].(*ast.FunctionDecl).Body
		expr := body.Statements[0].(*ast.ExprStmt).Expr

		se, ok := expr.(*ast.SizeofExpression)
		if !ok {
			t.Fatalf("input %q parsed as %T, want *ast.SizeofExpression", tt.input, expr)
		}
		if got := se.String(); got != tt.expected {
			t.Errorf("input %q rendered as %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestParseGroupedExpressionIsNotCast(t *testing.T) {
	input := `int main() { a = (b + c); }`

	unit := parseUnit(t, input)
	body := unit.Decls[0].(*ast.FunctionDecl).Body
	assign := body.Statements[0].(*ast.ExprStmt).Expr.(*ast.BinaryExpression)

	if _, ok := assign.Right.(*ast.ParenExpression); !ok {
		t.Errorf("RHS is %T, want *ast.ParenExpression", assign.Right)
	}
}

func TestParseControlFlow(t *testing.T) {
	input := `int main() {
	if (a > 0) PRINT(1); else PRINT(0);
	while (i < 10) i = i + 1;
	for (i = 0; i < 4; i = i + 1) { s = s + i; }
}`

	unit := parseUnit(t, input)
	body := unit.Decls[0].(*ast.FunctionDecl).Body

	if len(body.Statements) != 3 {
		t.Fatalf("body has %d statements, want 3", len(body.Statements))
	}

	ifStmt, ok := body.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("statements[0] is %T, want *ast.IfStmt", body.Statements[0])
	}
	if ifStmt.Else == nil {
		t.Error("if statement should have an else branch")
	}

	if _, ok := body.Statements[1].(*ast.WhileStmt); !ok {
		t.Fatalf("statements[1] is %T, want *ast.WhileStmt", body.Statements[1])
	}

	forStmt, ok := body.Statements[2].(*ast.ForStmt)
	if !ok {
		t.Fatalf("statements[2] is %T, want *ast.ForStmt", body.Statements[2])
	}
	if forStmt.Init == nil || forStmt.Cond == nil || forStmt.Inc == nil {
		t.Error("for statement should have init, condition and increment")
	}
}

func TestParseForWithDeclInit(t *testing.T) {
	input := `int main() { for (int i = 0; i < 4; i = i + 1) { } }`

	unit := parseUnit(t, input)
	body := unit.Decls[0].(*ast.FunctionDecl).Body
	forStmt := body.Statements[0].(*ast.ForStmt)

	if _, ok := forStmt.Init.(*ast.DeclStmt); !ok {
		t.Errorf("for init is %T, want *ast.DeclStmt", forStmt.Init)
	}
}

func TestParseForWithEmptyInit(t *testing.T) {
	input := `int main() { for (; i < 4; i = i + 1) { } }`

	unit := parseUnit(t, input)
	body := unit.Decls[0].(*ast.FunctionDecl).Body
	forStmt := body.Statements[0].(*ast.ForStmt)

	if forStmt.Init != nil {
		t.Errorf("for init is %v, want nil", forStmt.Init)
	}
}

func TestParseGlobalVariable(t *testing.T) {
	input := `int g = 5;
int main() { }`

	unit := parseUnit(t, input)

	if len(unit.Decls) != 2 {
		t.Fatalf("unit.Decls has %d declarations, want 2", len(unit.Decls))
	}
	vd, ok := unit.Decls[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("decls[0] is %T, want *ast.VarDecl", unit.Decls[0])
	}
	if vd.Name != "g" || vd.Init == nil {
		t.Errorf("g should be declared with an initializer")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		`int main() { a = ; }`,
		`int main() { if a) b; }`,
		`int 5x;`,
		`int main() { a[1; }`,
	}

	for _, input := range tests {
		l := lexer.New(input)
		p := New(l)
		p.ParseTranslationUnit()

		if len(p.Errors()) == 0 {
			t.Errorf("input %q should produce parser errors", input)
		}
	}
}
