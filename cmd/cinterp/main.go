package main

import (
	"os"

	"github.com/ChinaNuke/ast-interpreter/cmd/cinterp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
