package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Relz/LL-Parser-Library/internal/table"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "describe <table file path>",
		Short:   "Print a compiled table in readable format",
		Example: `  llparse describe grammar.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runDescribe,
	}
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("cannot open the table file %s: %w", args[0], err)
	}
	defer f.Close()

	t, err := table.Load(f)
	if err != nil {
		return err
	}

	for id := 1; id < len(t.Rows); id++ {
		row, ok := t.GetRow(id)
		if !ok {
			continue
		}
		writeRow(os.Stdout, row)
	}
	return nil
}

func writeRow(w io.Writer, row *table.Row) {
	var flags []string
	if row.DoShift {
		flags = append(flags, "shift")
	}
	if row.IsEnd {
		flags = append(flags, "end")
	}
	if row.IsError {
		flags = append(flags, "error")
	}

	fmt.Fprintf(w, "%4d  next=%-4d push=%-4d action=%-40s refs=[%s]",
		row.ID, row.NextID, row.PushID, row.ActionName, strings.Join(row.ReferencingSet, ","))
	if len(flags) > 0 {
		fmt.Fprintf(w, "  (%s)", strings.Join(flags, ","))
	}
	fmt.Fprintln(w)
}
