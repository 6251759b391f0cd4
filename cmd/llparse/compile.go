package main

import (
	"fmt"
	"os"

	"github.com/Relz/LL-Parser-Library/internal/compiler"
	"github.com/Relz/LL-Parser-Library/internal/table"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile",
		Short:   "Compile this language's fixed grammar into a portable parsing table",
		Example: `  llparse compile -o grammar.json`,
		Args:    cobra.NoArgs,
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	cg := compiler.Build()

	w := os.Stdout
	if *compileFlags.output != "" {
		f, err := os.OpenFile(*compileFlags.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("cannot create the output file %s: %w", *compileFlags.output, err)
		}
		defer f.Close()
		return table.Write(f, cg)
	}
	return table.Write(w, cg)
}
