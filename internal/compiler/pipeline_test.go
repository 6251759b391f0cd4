package compiler_test

import (
	"bytes"
	"strings"
	"testing"

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
)

// runWithHandlers drives src through the real built table with a real
// internal/semantic.Handlers registered against a FakeEmitter, unlike run()
// in grammar_test.go, which uses a bare registry and so never exercises a
// single handler's actual stack-shape expectations.
func runWithHandlers(t *testing.T, src string) (driver.Result, *bytes.Buffer) {
	t.Helper()

	lx, err := lexer.New(strings.NewReader(src))
	if err != nil {
		t.Fatalf("lexer.New: %v", err)
	}

	stack := ast.NewStack()
	var buf bytes.Buffer
	out := diag.NewPrinter(&buf)
	reg := action.New(stack, func(name string) {
		out.Warning("unrecognized action " + name)
	})

	emitter := &ir.FakeEmitter{}
	handlers := semantic.New(stack, scope.New(), symtab.New(), emitter, out)
	handlers.Register(reg)

	d := driver.New(compiler.Build(), lx, stack, reg, out, emitter)
	res, err := d.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return res, &buf
}

func TestBuild_DeclarationWithBinaryArithmeticInitializer(t *testing.T) {
	res, buf := runWithHandlers(t, `int x = 2 + 3;`)
	if !res.Accepted {
		t.Fatalf("Run: Accepted = false, want true (fail index %d, expected %v, diagnostics: %s)",
			res.FailIndex, res.ExpectedTokens, buf.String())
	}
}

func TestBuild_DeclarationAssignmentAndWriteWithHandlers(t *testing.T) {
	res, buf := runWithHandlers(t, `
		int x;
		x = 1 + 2 * 3;
		write(x);
	`)
	if !res.Accepted {
		t.Fatalf("Run: Accepted = false, want true (fail index %d, expected %v, diagnostics: %s)",
			res.FailIndex, res.ExpectedTokens, buf.String())
	}
}

func TestBuild_ParenthesizedRelationWithHandlers(t *testing.T) {
	res, buf := runWithHandlers(t, `int x = (2 + 3) == 5;`)
	if !res.Accepted {
		t.Fatalf("Run: Accepted = false, want true (fail index %d, expected %v, diagnostics: %s)",
			res.FailIndex, res.ExpectedTokens, buf.String())
	}
}
