package driver

import (
	"bytes"
	"testing"

	"github.com/Relz/LL-Parser-Library/internal/action"
	"github.com/Relz/LL-Parser-Library/internal/ast"
	"github.com/Relz/LL-Parser-Library/internal/diag"
	"github.com/Relz/LL-Parser-Library/internal/ir"
	"github.com/Relz/LL-Parser-Library/internal/table"
	"github.com/Relz/LL-Parser-Library/internal/token"
)

// tokenFeed is a fixed token.Token sequence terminated by an endless
// stream of EOF, the simplest lexer.Source a table-mechanics test needs.
type tokenFeed struct {
	toks []token.Token
	pos  int
}

func (f *tokenFeed) Next() (token.Token, error) {
	if f.pos >= len(f.toks) {
		return token.Token{Kind: token.EOF}, nil
	}
	t := f.toks[f.pos]
	f.pos++
	return t, nil
}

func newTestDriver(t *testing.T, rows []table.Row, toks []token.Token, reg *action.Registry) (*Driver, *ast.Stack, *bytes.Buffer) {
	t.Helper()
	stack := ast.NewStack()
	var buf bytes.Buffer
	if reg == nil {
		reg = action.New(stack, nil)
	}
	d := New(table.FromRows(rows), &tokenFeed{toks: toks}, stack, reg, diag.NewPrinter(&buf), &ir.FakeEmitter{})
	return d, stack, &buf
}

// A single is_end row whose referencing set holds EOF accepts on the first
// token, with an empty call stack.
func TestRun_AcceptsImmediatelyOnEnd(t *testing.T) {
	rows := []table.Row{
		{ID: 1, ReferencingSet: []string{token.EOF.String()}, IsEnd: true},
	}
	d, stack, _ := newTestDriver(t, rows, nil, nil)
	res, err := d.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Accepted {
		t.Fatalf("Run: Accepted = false, want true")
	}
	if stack.Len() != 1 {
		t.Errorf("stack depth = %d, want 1 (the EOF leaf)", stack.Len())
	}
}

// A chain of do_shift rows pushes one leaf per token before accepting.
func TestRun_ShiftsEachTokenInSequence(t *testing.T) {
	rows := []table.Row{
		{ID: 1, ReferencingSet: []string{token.KeywordInt.String()}, DoShift: true, NextID: 2},
		{ID: 2, ReferencingSet: []string{token.Identifier.String()}, DoShift: true, NextID: 3},
		{ID: 3, ReferencingSet: []string{token.EOF.String()}, IsEnd: true},
	}
	toks := []token.Token{
		{Kind: token.KeywordInt, Lexeme: "int"},
		{Kind: token.Identifier, Lexeme: "x"},
	}
	d, stack, _ := newTestDriver(t, rows, toks, nil)
	res, err := d.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Accepted {
		t.Fatalf("Run: Accepted = false, want true")
	}
	if stack.Len() != 3 {
		t.Fatalf("stack depth = %d, want 3 (int, x, eof leaves)", stack.Len())
	}
	wantLexeme := []string{"int", "x", ""}
	wantName := []string{token.KeywordInt.String(), token.Identifier.String(), token.EOF.String()}
	for i := range wantLexeme {
		n, _ := stack.At(2 - i)
		if n.Lexeme != wantLexeme[i] {
			t.Errorf("leaf %d lexeme = %q, want %q", i, n.Lexeme, wantLexeme[i])
		}
		if n.Name != wantName[i] {
			t.Errorf("leaf %d name = %q, want %q", i, n.Name, wantName[i])
		}
	}
}

// A call/return pair: row 1 enters a sub-rule at row 10 while remembering
// to resume at row 100; row 11 (the sub-rule's last row) pops the call
// stack and dispatches its post-reduce action.
func TestRun_CallStackPushAndPop(t *testing.T) {
	var fired bool
	stack := ast.NewStack()
	reg := action.New(stack, nil)
	reg.RegisterPostReduce("ReduceX", func() (bool, error) {
		fired = true
		return true, nil
	})

	rows := []table.Row{
		{ID: 1, ReferencingSet: []string{token.Identifier.String()}, PushID: 100, NextID: 10},
		{ID: 10, ReferencingSet: []string{token.Identifier.String()}, DoShift: true, NextID: 11},
		{ID: 11, ActionName: "ReduceX"},
		{ID: 100, ReferencingSet: []string{token.EOF.String()}, IsEnd: true},
	}
	toks := []token.Token{{Kind: token.Identifier, Lexeme: "x"}}

	var buf bytes.Buffer
	d := New(table.FromRows(rows), &tokenFeed{toks: toks}, stack, reg, diag.NewPrinter(&buf), &ir.FakeEmitter{})
	res, err := d.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Accepted {
		t.Fatalf("Run: Accepted = false, want true")
	}
	if !fired {
		t.Errorf("ReduceX handler never fired")
	}
	if stack.Len() != 2 {
		t.Errorf("stack depth = %d, want 2 (x and eof leaves)", stack.Len())
	}
}

// Entering an is_error row reports the current token index and the union
// of referencing sets across the contiguous non-error block that precedes
// it, stopping at the first earlier is_error row.
func TestRun_SyntaxErrorExpectedTokens(t *testing.T) {
	rows := []table.Row{
		{ID: 1, ReferencingSet: []string{token.KeywordInt.String()}, IsError: true},
	}
	toks := []token.Token{{Kind: token.Identifier, Lexeme: "oops"}}
	d, _, _ := newTestDriver(t, rows, toks, nil)
	res, err := d.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Accepted {
		t.Fatalf("Run: Accepted = true, want false")
	}
	if res.FailIndex != 0 {
		t.Errorf("FailIndex = %d, want 0", res.FailIndex)
	}
	if len(res.ExpectedTokens) != 1 || res.ExpectedTokens[0] != token.KeywordInt.String() {
		t.Errorf("ExpectedTokens = %v, want [%v]", res.ExpectedTokens, token.KeywordInt)
	}
}

func TestExpectedTokens_WalksBackToPriorErrorBoundary(t *testing.T) {
	ct := table.FromRows([]table.Row{
		{ID: 2, ReferencingSet: []string{token.OpAssign.String()}, IsError: true},
		{ID: 3, ReferencingSet: []string{token.OpPlus.String()}},
		{ID: 4, ReferencingSet: []string{token.OpMinus.String()}},
		{ID: 5, ReferencingSet: []string{token.OpStar.String()}, IsError: true},
	})
	d, _, _ := newTestDriver(t, nil, nil, nil)
	d.table = ct
	errorRow, _ := ct.GetRow(5)
	got := d.expectedTokens(5, errorRow)
	want := map[string]bool{token.OpStar.String(): true, token.OpMinus.String(): true, token.OpPlus.String(): true}
	if len(got) != len(want) {
		t.Fatalf("expectedTokens = %v, want exactly %v", got, want)
	}
	for _, g := range got {
		if !want[g] {
			t.Errorf("unexpected token %q in result %v", g, got)
		}
	}
}

// A handler that reports false during pre-shift dispatch aborts the parse
// as a semantic-soft failure, without ever reaching step 4/5/6.
func TestRun_PreShiftHandlerFailure(t *testing.T) {
	stack := ast.NewStack()
	reg := action.New(stack, nil)
	reg.RegisterPreShift("FailHere", func() (bool, error) { return false, nil })

	rows := []table.Row{{ID: 1, ActionName: "FailHere"}}
	var buf bytes.Buffer
	d := New(table.FromRows(rows), &tokenFeed{}, stack, reg, diag.NewPrinter(&buf), &ir.FakeEmitter{})
	res, err := d.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Accepted {
		t.Fatalf("Run: Accepted = true, want false")
	}
}

// A handler that reports false during the accept row's post-reduce
// dispatch also aborts, even though the row is flagged is_end.
func TestRun_PostReduceHandlerFailureAtAccept(t *testing.T) {
	stack := ast.NewStack()
	reg := action.New(stack, nil)
	reg.RegisterPostReduce("RejectAtEnd", func() (bool, error) { return false, nil })

	rows := []table.Row{
		{ID: 1, ReferencingSet: []string{token.EOF.String()}, IsEnd: true, ActionName: "RejectAtEnd"},
	}
	var buf bytes.Buffer
	d := New(table.FromRows(rows), &tokenFeed{}, stack, reg, diag.NewPrinter(&buf), &ir.FakeEmitter{})
	res, err := d.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Accepted {
		t.Fatalf("Run: Accepted = true, want false")
	}
}

// Comment tokens are skipped without changing row id and never reach the
// AST stack.
func TestRun_SkipsComments(t *testing.T) {
	rows := []table.Row{
		{ID: 1, ReferencingSet: []string{token.Identifier.String()}, DoShift: true, NextID: 2},
		{ID: 2, ReferencingSet: []string{token.EOF.String()}, IsEnd: true},
	}
	toks := []token.Token{
		{Kind: token.Comment, Lexeme: "// note"},
		{Kind: token.Identifier, Lexeme: "x"},
	}
	d, stack, _ := newTestDriver(t, rows, toks, nil)
	res, err := d.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Accepted {
		t.Fatalf("Run: Accepted = false, want true")
	}
	if stack.Len() != 2 {
		t.Fatalf("stack depth = %d, want 2 (no leaf for the comment)", stack.Len())
	}
}

// On acceptance, with an emitter attached, the driver emits the final
// return-zero instruction.
func TestRun_EmitsFinalReturnOnAccept(t *testing.T) {
	rows := []table.Row{
		{ID: 1, ReferencingSet: []string{token.EOF.String()}, IsEnd: true},
	}
	stack := ast.NewStack()
	reg := action.New(stack, nil)
	var buf bytes.Buffer
	emitter := &ir.FakeEmitter{}
	d := New(table.FromRows(rows), &tokenFeed{}, stack, reg, diag.NewPrinter(&buf), emitter)
	res, err := d.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Accepted {
		t.Fatalf("Run: Accepted = false, want true")
	}
	var sawRet bool
	for _, inst := range emitter.Instructions {
		if inst.Op == "ret" {
			sawRet = true
		}
	}
	if !sawRet {
		t.Errorf("driver did not emit a final ret instruction, instructions: %+v", emitter.Instructions)
	}
}
