package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "cinterp",
	Short: "AST interpreter for a small C subset",
	Long: `cinterp is a tree-walking interpreter for a restricted dialect of C
covering integers, pointers, fixed arrays and the usual control flow.

Programs interact with the host through four declared intrinsics:

  extern int GET();           read a decimal integer from stdin
  extern void PRINT(int);     write a decimal integer to stderr
  extern void * MALLOC(int);  allocate a block of memory
  extern void FREE(void *);   release a block from MALLOC

Execution starts at a function named main.`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}
