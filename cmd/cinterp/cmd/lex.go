package cmd

import (
	"fmt"
	"os"

	"github.com/ChinaNuke/ast-interpreter/internal/lexer"
	"github.com/spf13/cobra"
)

var showPos bool

var lexCmd = &cobra.Command{
	Use:   "lex [source]",
	Short: "Tokenize a C program and print the tokens",
	Long: `Tokenize (lex) a C-subset program and print the resulting tokens.

This command is useful for debugging the lexer and understanding how
source code is tokenized.

Examples:
  # Tokenize inline source
  cinterp lex "int main() { return 0; }"

  # Show token positions
  cinterp lex --show-pos --file testdata/fixtures/test00_arithmetic.c`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexProgram,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&sourceFile, "file", "f", "", "read the program from a file instead of the argument")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
}

func lexProgram(_ *cobra.Command, args []string) error {
	input, _, err := readSource(args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	for {
		tok := l.NextToken()
		if tok.Type == lexer.EOF {
			break
		}
		if showPos {
			fmt.Printf("%3d:%-3d %-10s %q\n", tok.Pos.Line, tok.Pos.Column, tok.Type, tok.Literal)
		} else {
			fmt.Printf("%-10s %q\n", tok.Type, tok.Literal)
		}
	}

	if errs := l.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("lexing failed with %d error(s)", len(errs))
	}

	return nil
}
