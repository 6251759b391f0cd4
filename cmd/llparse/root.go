package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "llparse",
	Short: "Compile, parse and run programs in this language",
	Long: `llparse provides four features:
- Compiles the fixed grammar into a portable LL control table.
- Parses a source file against a compiled (or the built-in) table.
- Runs a source file by building it to LLVM IR and JIT-executing it.
- Prints a compiled table in human-readable form.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
