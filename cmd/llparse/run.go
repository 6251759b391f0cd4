package main

import (
	"fmt"

	"github.com/Relz/LL-Parser-Library/internal/ir"
	"github.com/spf13/cobra"
)

var runFlags = struct {
	source *string
	table  *string
	emitIR *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "run",
		Short:   "Parse a source file and JIT-execute it",
		Example: `  cat src | llparse run`,
		Args:    cobra.NoArgs,
		RunE:    runRun,
	}
	runFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	runFlags.table = cmd.Flags().StringP("table", "t", "", "compiled table path (default the built-in grammar)")
	runFlags.emitIR = cmd.Flags().Bool("emit-ir", false, "print the emitted IR before running it")
	rootCmd.AddCommand(cmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	tbl, err := loadTable(*runFlags.table)
	if err != nil {
		return fmt.Errorf("cannot load the grammar table: %w", err)
	}

	src, err := openSource(*runFlags.source)
	if err != nil {
		return err
	}
	defer src.Close()

	p, err := newPipeline(tbl, src, true)
	if err != nil {
		return err
	}

	res, err := p.driver.Run()
	if err != nil {
		p.irBuilder.Dispose()
		return err
	}
	if err := p.report(res); err != nil {
		p.irBuilder.Dispose()
		return err
	}

	if *runFlags.emitIR {
		p.out.IR(p.irBuilder.String())
	}

	engine, err := ir.Finalize(p.irBuilder)
	if err != nil {
		return fmt.Errorf("cannot finalize the JIT engine: %w", err)
	}
	defer engine.Dispose()

	result, err := engine.Run(entryFunctionName)
	if err != nil {
		return fmt.Errorf("cannot run %s: %w", entryFunctionName, err)
	}
	p.out.Output(fmt.Sprintf("%d\n", result))
	return nil
}
