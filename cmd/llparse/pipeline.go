package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Relz/LL-Parser-Library/internal/action"
	"github.com/Relz/LL-Parser-Library/internal/ast"
	"github.com/Relz/LL-Parser-Library/internal/compiler"
	"github.com/Relz/LL-Parser-Library/internal/diag"
	"github.com/Relz/LL-Parser-Library/internal/driver"
	"github.com/Relz/LL-Parser-Library/internal/ir"
	"github.com/Relz/LL-Parser-Library/internal/lexer"
	"github.com/Relz/LL-Parser-Library/internal/scope"
	"github.com/Relz/LL-Parser-Library/internal/semantic"
	"github.com/Relz/LL-Parser-Library/internal/symtab"
	"github.com/Relz/LL-Parser-Library/internal/table"
)

// entryFunctionName is the name every parse's single top-level function is
// declared and JIT-run under.
const entryFunctionName = "main"

// openSource opens path, or stdin when path is empty.
func openSource(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open the source file %s: %w", path, err)
	}
	return f, nil
}

// loadTable returns the built-in grammar's table, or the one stored at
// path when path is non-empty.
func loadTable(path string) (driver.Table, error) {
	if path == "" {
		return compiler.Build(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open the table file %s: %w", path, err)
	}
	defer f.Close()
	return table.Load(f)
}

// pipeline bundles the constructed driver and, when semantic actions are
// enabled, the IR builder backing it.
type pipeline struct {
	driver    *driver.Driver
	out       *diag.Printer
	irBuilder *ir.Builder
}

// newPipeline wires a lexer, action registry and driver over tbl and src.
// withSemantics selects whether internal/semantic.Handlers is registered
// at all: disabling it (the "--only-parse" path) skips constructing an IR
// builder entirely, since every handler that needs one touches it
// unconditionally.
func newPipeline(tbl driver.Table, src io.Reader, withSemantics bool) (*pipeline, error) {
	out := diag.NewPrinter(os.Stdout)
	stack := ast.NewStack()

	lx, err := lexer.New(src)
	if err != nil {
		return nil, fmt.Errorf("cannot read source: %w", err)
	}

	reg := action.New(stack, func(name string) {
		out.Warning(fmt.Sprintf("unrecognized action %q", name))
	})

	var emitter ir.Emitter
	var irBuilder *ir.Builder
	if withSemantics {
		irBuilder = ir.New(entryFunctionName)
		be := ir.BuilderEmitter{B: irBuilder}

		retType, err := be.CreateType(ir.TypeInteger, 0)
		if err != nil {
			irBuilder.Dispose()
			return nil, err
		}
		fn := be.AddFunction(entryFunctionName, retType, nil, false)
		entryBB := be.AddBasicBlock(fn, "entry")
		be.SetInsertPoint(entryBB)

		handlers := semantic.New(stack, scope.New(), symtab.New(), be, out)
		handlers.SetFunction(fn)
		handlers.Register(reg)
		emitter = be
	}

	d := driver.New(tbl, lx, stack, reg, out, emitter)
	return &pipeline{driver: d, out: out, irBuilder: irBuilder}, nil
}

// report prints res's syntax/acceptance outcome and returns a non-nil error
// when the CLI invocation as a whole should be treated as failed.
func (p *pipeline) report(res driver.Result) error {
	if res.Accepted {
		return nil
	}
	if len(res.ExpectedTokens) == 0 {
		p.out.Error(&diag.SemanticError{FailIndex: res.FailIndex, Message: "rejected by a semantic action"})
	} else {
		p.out.Error(&diag.SyntaxError{FailIndex: res.FailIndex, ExpectedTokens: res.ExpectedTokens})
	}
	return fmt.Errorf("parse failed at token %d", res.FailIndex)
}
