package cmd

import (
	"fmt"
	"os"

	"github.com/ChinaNuke/ast-interpreter/internal/ast"
	"github.com/ChinaNuke/ast-interpreter/internal/errors"
	"github.com/ChinaNuke/ast-interpreter/internal/interp"
	"github.com/ChinaNuke/ast-interpreter/internal/lexer"
	"github.com/ChinaNuke/ast-interpreter/internal/parser"
	"github.com/ChinaNuke/ast-interpreter/internal/sema"
	"github.com/spf13/cobra"
)

var sourceFile string

var runCmd = &cobra.Command{
	Use:   "run [source]",
	Short: "Run a C program given as source text",
	Long: `Execute a C-subset program. The argument is the program text itself,
matching the original tool's contract:

  cinterp run "$(cat testdata/fixtures/test00_arithmetic.c)"

Use --file to read the program from a path instead:

  cinterp run --file testdata/fixtures/test00_arithmetic.c

PRINT output and the GET prompt go to stderr; GET reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&sourceFile, "file", "f", "", "read the program from a file instead of the argument")
}

func runProgram(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(args)
	if err != nil {
		return err
	}

	unit, err := compile(input, filename)
	if err != nil {
		return err
	}

	interpreter := interp.New(os.Stderr)
	if err := interpreter.Run(unit); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("execution failed")
	}

	return nil
}

// readSource resolves the program text from the argument or --file.
func readSource(args []string) (input, filename string, err error) {
	if sourceFile != "" {
		content, err := os.ReadFile(sourceFile)
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", sourceFile, err)
		}
		return string(content), sourceFile, nil
	}
	if len(args) == 1 {
		return args[0], "<arg>", nil
	}
	return "", "", fmt.Errorf("either provide the program text or use --file")
}

// compile runs the front-end pipeline: lex, parse, resolve. Failures
// are rendered to stderr as phase-tagged diagnostics and returned as
// the diagnostic list.
func compile(input, filename string) (*ast.TranslationUnit, error) {
	l := lexer.New(input)
	p := parser.New(l)
	unit := p.ParseTranslationUnit()

	diags := errors.NewList(input, filename)
	for _, e := range p.LexerErrors() {
		diags.Add(errors.PhaseLex, e.Pos, e.Message)
	}
	for _, e := range p.Errors() {
		diags.Add(errors.PhaseParse, e.Pos, e.Message)
	}
	if diags.Len() > 0 {
		fmt.Fprint(os.Stderr, diags.Format(true))
		return nil, diags
	}

	resolver := sema.NewResolver()
	if err := resolver.Resolve(unit); err != nil {
		for _, e := range resolver.Errors() {
			diags.Add(errors.PhaseResolve, e.Pos, e.Message)
		}
		fmt.Fprint(os.Stderr, diags.Format(true))
		return nil, diags
	}

	return unit, nil
}
