// Package errors collects and renders front-end diagnostics. Each
// diagnostic is tagged with the pipeline phase that produced it (lex,
// parse, resolve), so the CLI reports every phase through one scheme
// instead of formatting each error type separately.
package errors

import (
	"fmt"
	"strings"

	"github.com/ChinaNuke/ast-interpreter/internal/lexer"
)

// Phase identifies the front-end stage that rejected the program.
type Phase string

const (
	PhaseLex     Phase = "lex"
	PhaseParse   Phase = "parse"
	PhaseResolve Phase = "resolve"
)

// Diagnostic is one front-end error with its phase and position.
type Diagnostic struct {
	Phase   Phase
	Message string
	Pos     lexer.Position
}

// List accumulates diagnostics against one source buffer. It
// implements error, so a failed compile can be returned directly.
type List struct {
	Source string
	File   string
	Diags  []Diagnostic
}

// NewList creates an empty diagnostic list for the given source.
func NewList(source, file string) *List {
	return &List{Source: source, File: file}
}

// Add records a diagnostic.
func (l *List) Add(phase Phase, pos lexer.Position, message string) {
	l.Diags = append(l.Diags, Diagnostic{Phase: phase, Message: message, Pos: pos})
}

// Len returns the number of recorded diagnostics.
func (l *List) Len() int {
	return len(l.Diags)
}

// Error implements the error interface with a one-line summary; the
// full report comes from Format.
func (l *List) Error() string {
	if len(l.Diags) == 1 {
		d := l.Diags[0]
		return fmt.Sprintf("%s error: %s", d.Phase, d.Message)
	}
	return fmt.Sprintf("%d front-end error(s)", len(l.Diags))
}

// Format renders every diagnostic with its source excerpt. If color
// is true the caret and message are highlighted for terminals.
//
// The layout is one block per diagnostic:
//
//	test.c:2:3: parse error: expected next token to be ;
//	  2 | x = 1
//	    |   ^
func (l *List) Format(color bool) string {
	var sb strings.Builder

	for i, d := range l.Diags {
		if i > 0 {
			sb.WriteString("\n")
		}
		l.formatOne(&sb, d, color)
	}

	return sb.String()
}

func (l *List) formatOne(sb *strings.Builder, d Diagnostic, color bool) {
	file := l.File
	if file == "" {
		file = "<input>"
	}

	sb.WriteString(fmt.Sprintf("%s:%d:%d: ", file, d.Pos.Line, d.Pos.Column))
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString(string(d.Phase))
	sb.WriteString(" error")
	if color {
		sb.WriteString("\033[0m")
	}
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	sb.WriteString("\n")

	line, ok := l.sourceLine(d.Pos.Line)
	if !ok {
		return
	}

	gutter := fmt.Sprintf("%3d | ", d.Pos.Line)
	sb.WriteString(gutter)
	sb.WriteString(line)
	sb.WriteString("\n")

	col := d.Pos.Column
	if col < 1 {
		col = 1
	}
	sb.WriteString(strings.Repeat(" ", len(gutter)-2))
	sb.WriteString("| ")
	sb.WriteString(strings.Repeat(" ", col-1))
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString("^")
	if color {
		sb.WriteString("\033[0m")
	}
	sb.WriteString("\n")
}

// sourceLine returns the 1-indexed line of the source buffer.
func (l *List) sourceLine(n int) (string, bool) {
	if l.Source == "" {
		return "", false
	}
	lines := strings.Split(l.Source, "\n")
	if n < 1 || n > len(lines) {
		return "", false
	}
	return lines[n-1], true
}
