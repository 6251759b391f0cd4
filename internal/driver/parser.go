package driver

import (
	"bytes"
	"fmt"
	"os"

	"github.com/Relz/LL-Parser-Library/internal/action"
	"github.com/Relz/LL-Parser-Library/internal/ast"
	"github.com/Relz/LL-Parser-Library/internal/compiler"
	"github.com/Relz/LL-Parser-Library/internal/diag"
	"github.com/Relz/LL-Parser-Library/internal/ir"
	"github.com/Relz/LL-Parser-Library/internal/lexer"
	"github.com/Relz/LL-Parser-Library/internal/scope"
	"github.com/Relz/LL-Parser-Library/internal/semantic"
	"github.com/Relz/LL-Parser-Library/internal/symtab"
)

// entryFunctionName is the name every parse's single top-level function is
// declared under, matching cmd/llparse's own entry point.
const entryFunctionName = "main"

// Parser is the package's one public, embedder-facing entry point: give it
// a source file and get back whether it is valid, with no AST stack,
// action registry, or IR builder plumbing exposed. Table selects a
// pre-compiled grammar (e.g. loaded via internal/table.Load); nil selects
// the built-in grammar compiler.Build assembles.
type Parser struct {
	Table Table
}

// NewParser returns a Parser driving the built-in grammar.
func NewParser() *Parser {
	return &Parser{}
}

// IsValid parses inputPath start to finish: ok reports acceptance, fail
// carries the rejection detail when ok is false, and err is reserved for
// conditions outside the language itself (the file cannot be opened, or
// the driving loop hits an internal-fatal condition).
func (p *Parser) IsValid(inputPath string) (ok bool, fail *diag.Failure, err error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return false, nil, fmt.Errorf("driver: opening %s: %w", inputPath, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	out := diag.NewPrinter(&buf)
	stack := ast.NewStack()

	lx, err := lexer.New(f)
	if err != nil {
		return false, nil, fmt.Errorf("driver: reading %s: %w", inputPath, err)
	}

	reg := action.New(stack, func(name string) {
		out.Warning(fmt.Sprintf("unrecognized action %q", name))
	})

	irBuilder := ir.New(entryFunctionName)
	defer irBuilder.Dispose()
	be := ir.BuilderEmitter{B: irBuilder}

	retType, err := be.CreateType(ir.TypeInteger, 0)
	if err != nil {
		return false, nil, err
	}
	fn := be.AddFunction(entryFunctionName, retType, nil, false)
	entryBB := be.AddBasicBlock(fn, "entry")
	be.SetInsertPoint(entryBB)

	handlers := semantic.New(stack, scope.New(), symtab.New(), be, out)
	handlers.SetFunction(fn)
	handlers.Register(reg)

	tbl := p.Table
	if tbl == nil {
		tbl = compiler.Build()
	}

	res, err := New(tbl, lx, stack, reg, out, be).Run()
	if err != nil {
		return false, nil, err
	}
	if res.Accepted {
		return true, nil, nil
	}
	return false, &diag.Failure{
		FailIndex:      res.FailIndex,
		ExpectedTokens: res.ExpectedTokens,
		Diagnostics:    buf.String(),
	}, nil
}
