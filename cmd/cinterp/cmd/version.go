package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the interpreter version",
	Long:  `Show the cinterp version together with the commit and build date baked in at build time.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cinterp %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
