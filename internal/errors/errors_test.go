package errors

import (
	"strings"
	"testing"

	"github.com/ChinaNuke/ast-interpreter/internal/lexer"
)

func TestFormatSingleDiagnostic(t *testing.T) {
	l := NewList("int main() {\n  x = 1;\n}", "test.c")
	l.Add(PhaseResolve, lexer.Position{Line: 2, Column: 3}, `undeclared identifier "x"`)

	out := l.Format(false)

	if !strings.Contains(out, "test.c:2:3: resolve error:") {
		t.Errorf("missing position header in %q", out)
	}
	if !strings.Contains(out, "  2 |   x = 1;") {
		t.Errorf("missing source line in %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("missing caret in %q", out)
	}
	if !strings.Contains(out, `undeclared identifier "x"`) {
		t.Errorf("missing message in %q", out)
	}
}

func TestCaretColumn(t *testing.T) {
	l := NewList("abcdef", "")
	l.Add(PhaseParse, lexer.Position{Line: 1, Column: 4}, "boom")

	out := l.Format(false)

	// The caret sits under column 4, after the "  1 | " gutter whose
	// width the caret line mirrors with "    | ".
	if !strings.Contains(out, "    |    ^") {
		t.Errorf("caret misplaced in %q", out)
	}
	if !strings.Contains(out, "<input>:1:4:") {
		t.Errorf("missing fallback file name in %q", out)
	}
}

func TestFormatMultipleDiagnostics(t *testing.T) {
	l := NewList("a\nb", "")
	l.Add(PhaseLex, lexer.Position{Line: 1, Column: 1}, "first")
	l.Add(PhaseParse, lexer.Position{Line: 2, Column: 1}, "second")

	out := l.Format(false)

	if !strings.Contains(out, "lex error: first") || !strings.Contains(out, "parse error: second") {
		t.Errorf("missing diagnostics in %q", out)
	}
}

func TestErrorSummary(t *testing.T) {
	l := NewList("", "")
	l.Add(PhaseParse, lexer.Position{Line: 1, Column: 1}, "unexpected token")

	if got := l.Error(); got != "parse error: unexpected token" {
		t.Errorf("Error() = %q", got)
	}

	l.Add(PhaseParse, lexer.Position{Line: 2, Column: 1}, "another")
	if got := l.Error(); got != "2 front-end error(s)" {
		t.Errorf("Error() = %q", got)
	}
}

func TestLineOutOfRange(t *testing.T) {
	// A position past the buffer renders the header without an excerpt.
	l := NewList("one line", "")
	l.Add(PhaseParse, lexer.Position{Line: 99, Column: 1}, "eof")

	out := l.Format(false)
	if !strings.Contains(out, "eof") {
		t.Errorf("missing message in %q", out)
	}
	if strings.Contains(out, "|") {
		t.Errorf("unexpected excerpt in %q", out)
	}
}
