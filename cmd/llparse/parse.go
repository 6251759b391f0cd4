package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var parseFlags = struct {
	source    *string
	table     *string
	onlyParse *bool
	emitIR    *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse",
		Short:   "Parse a source file and report acceptance or the first error",
		Example: `  cat src | llparse parse`,
		Args:    cobra.NoArgs,
		RunE:    runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	parseFlags.table = cmd.Flags().StringP("table", "t", "", "compiled table path (default the built-in grammar)")
	parseFlags.onlyParse = cmd.Flags().Bool("only-parse", false, "parse only, without running semantic actions")
	parseFlags.emitIR = cmd.Flags().Bool("emit-ir", false, "print the emitted IR on acceptance (ignored with --only-parse)")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	tbl, err := loadTable(*parseFlags.table)
	if err != nil {
		return fmt.Errorf("cannot load the grammar table: %w", err)
	}

	src, err := openSource(*parseFlags.source)
	if err != nil {
		return err
	}
	defer src.Close()

	withSemantics := !*parseFlags.onlyParse
	p, err := newPipeline(tbl, src, withSemantics)
	if err != nil {
		return err
	}
	if p.irBuilder != nil {
		defer p.irBuilder.Dispose()
	}

	res, err := p.driver.Run()
	if err != nil {
		return err
	}
	if err := p.report(res); err != nil {
		return err
	}

	if res.Accepted && withSemantics && *parseFlags.emitIR {
		p.out.IR(p.irBuilder.String())
	}
	return nil
}
