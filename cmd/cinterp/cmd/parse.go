package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [source]",
	Short: "Parse a C program and dump the AST",
	Long: `Parse a C-subset program, run resolution, and print the AST.

Examples:
  # Parse inline source
  cinterp parse "int main() { return 0; }"

  # Parse a file
  cinterp parse --file testdata/fixtures/test00_arithmetic.c`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseProgram,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&sourceFile, "file", "f", "", "read the program from a file instead of the argument")
}

func parseProgram(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(args)
	if err != nil {
		return err
	}

	unit, err := compile(input, filename)
	if err != nil {
		return err
	}

	fmt.Print(unit.String())
	return nil
}
