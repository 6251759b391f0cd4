package semantic

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Relz/LL-Parser-Library/internal/ast"
	"github.com/Relz/LL-Parser-Library/internal/diag"
	"github.com/Relz/LL-Parser-Library/internal/ir"
	"github.com/Relz/LL-Parser-Library/internal/scope"
	"github.com/Relz/LL-Parser-Library/internal/symtab"
)

// newTestHandlers builds a Handlers wired to a FakeEmitter and a buffered
// diagnostic printer, the shape every test in this package starts from.
func newTestHandlers(t *testing.T) (*Handlers, *bytes.Buffer, *ir.FakeEmitter) {
	t.Helper()
	var buf bytes.Buffer
	emitter := &ir.FakeEmitter{}
	h := New(ast.NewStack(), scope.New(), symtab.New(), emitter, diag.NewPrinter(&buf))
	h.SetFunction(ir.FakeFunction{Name: "main"})
	return h, &buf, emitter
}

// pushIntegerLiteral pushes and synthesizes an integer-literal leaf,
// returning the node for further use.
func pushIntegerLiteral(t *testing.T, h *Handlers, lexeme string) *ast.Node {
	t.Helper()
	h.Stack.Push(&ast.Node{Name: "integer_literal", Lexeme: lexeme})
	if ok, err := h.SynthesisIntegerLiteral(); !ok || err != nil {
		t.Fatalf("SynthesisIntegerLiteral(%q): ok=%v err=%v", lexeme, ok, err)
	}
	n, _ := h.Stack.Pop()
	return n
}

func pushFloatLiteral(t *testing.T, h *Handlers, lexeme string) *ast.Node {
	t.Helper()
	h.Stack.Push(&ast.Node{Name: "float_literal", Lexeme: lexeme})
	if ok, err := h.SynthesisFloatLiteral(); !ok || err != nil {
		t.Fatalf("SynthesisFloatLiteral(%q): ok=%v err=%v", lexeme, ok, err)
	}
	n, _ := h.Stack.Pop()
	return n
}

// buildBinaryExpr assembles the "lhs"/"operator_rhs" stack shape
// SynthesizeBinaryArithmetic expects, from already-synthesized lhs/rhs
// leaves and an operator spelling, and pushes the reduced parent.
func buildBinaryExpr(h *Handlers, lhs *ast.Node, op string, rhs *ast.Node) {
	h.Stack.Push(&ast.Node{Name: "operator", Lexeme: op})
	h.Stack.Push(rhs)
	h.Stack.Reduce("operator_rhs", 2)
	opRhs, _ := h.Stack.Pop()
	h.Stack.Push(lhs)
	h.Stack.Push(opRhs)
	h.Stack.Reduce("expr", 2)
}

func buildRelationExpr(h *Handlers, lhs *ast.Node, op string, rhs *ast.Node) {
	h.Stack.Push(&ast.Node{Name: "operator", Lexeme: op})
	h.Stack.Push(rhs)
	h.Stack.Reduce("relation_rhs", 2)
	relRhs, _ := h.Stack.Pop()
	h.Stack.Push(lhs)
	h.Stack.Push(relRhs)
	h.Stack.Reduce("expr", 2)
}

// Scenario 1: `int x = 2 + 3;` folds to the constant "5" without touching
// the IR builder's arithmetic instructions.
func TestSynthesizeBinaryArithmetic_ConstantFold(t *testing.T) {
	h, _, emitter := newTestHandlers(t)
	lhs := pushIntegerLiteral(t, h, "2")
	rhs := pushIntegerLiteral(t, h, "3")
	buildBinaryExpr(h, lhs, "+", rhs)

	ok, err := h.SynthesizeBinaryArithmetic()
	if !ok || err != nil {
		t.Fatalf("SynthesizeBinaryArithmetic: ok=%v err=%v", ok, err)
	}
	top, _ := h.Stack.Top()
	if top.Lexeme != "5" {
		t.Errorf("folded lexeme = %q, want %q", top.Lexeme, "5")
	}
	if top.ComputedType != TypeInteger {
		t.Errorf("computed type = %q, want %q", top.ComputedType, TypeInteger)
	}
	if h.Stack.Len() != 1 {
		t.Errorf("stack depth = %d, want 1", h.Stack.Len())
	}
	for _, inst := range emitter.Instructions {
		if inst.Op == "add" {
			t.Errorf("constant fold should not emit a runtime add instruction, got %+v", inst)
		}
	}
}

// Scenario 3: `float y = 2 + 3.0;` widens the integer side and folds to
// "5.000000", std::to_string(float)'s fixed six-decimal formatting.
func TestSynthesizeBinaryArithmetic_FloatWidening(t *testing.T) {
	h, _, _ := newTestHandlers(t)
	lhs := pushIntegerLiteral(t, h, "2")
	rhs := pushFloatLiteral(t, h, "3.0")
	buildBinaryExpr(h, lhs, "+", rhs)

	ok, err := h.SynthesizeBinaryArithmetic()
	if !ok || err != nil {
		t.Fatalf("SynthesizeBinaryArithmetic: ok=%v err=%v", ok, err)
	}
	top, _ := h.Stack.Top()
	if top.Lexeme != "5.000000" {
		t.Errorf("folded lexeme = %q, want %q", top.Lexeme, "5.000000")
	}
	if top.ComputedType != TypeFloat {
		t.Errorf("computed type = %q, want %q", top.ComputedType, TypeFloat)
	}
}

// Scenario 5: `int x = 1 / 0;` is rejected, division by zero being the one
// defined arithmetic error regardless of which division operator is used.
func TestSynthesizeBinaryArithmetic_DivisionByZero(t *testing.T) {
	h, buf, _ := newTestHandlers(t)
	lhs := pushIntegerLiteral(t, h, "1")
	rhs := pushIntegerLiteral(t, h, "0")
	buildBinaryExpr(h, lhs, "/", rhs)

	ok, err := h.SynthesizeBinaryArithmetic()
	if err != nil {
		t.Fatalf("SynthesizeBinaryArithmetic returned Go error: %v", err)
	}
	if ok {
		t.Fatalf("SynthesizeBinaryArithmetic: ok = true, want false (division by zero)")
	}
	if !strings.Contains(strings.ToLower(buf.String()), "divide by zero") {
		t.Errorf("diagnostic output = %q, want it to mention division by zero", buf.String())
	}
}

// Integer exact-division ("//") also rejects a zero divisor.
func TestSynthesizeBinaryArithmetic_IntDivisionByZero(t *testing.T) {
	h, buf, _ := newTestHandlers(t)
	lhs := pushIntegerLiteral(t, h, "9")
	rhs := pushIntegerLiteral(t, h, "0")
	buildBinaryExpr(h, lhs, "//", rhs)

	ok, err := h.SynthesizeBinaryArithmetic()
	if err != nil {
		t.Fatalf("SynthesizeBinaryArithmetic returned Go error: %v", err)
	}
	if ok {
		t.Fatalf("SynthesizeBinaryArithmetic: ok = true, want false (division by zero)")
	}
	if !strings.Contains(strings.ToLower(buf.String()), "divide by zero") {
		t.Errorf("diagnostic output = %q, want it to mention division by zero", buf.String())
	}
}

// A runtime operand (one already resolved from the symbol table) forces
// the handler down the IR-emission path instead of constant folding.
func TestSynthesizeBinaryArithmetic_RuntimeEmitsInstruction(t *testing.T) {
	h, _, emitter := newTestHandlers(t)
	lhs := &ast.Node{
		Name: "identifier", Lexeme: "a",
		DeclaredType: TypeIdentifier, ComputedType: TypeInteger,
		IRValue: ir.FakeValue{Op: "load:a_value"},
	}
	rhs := pushIntegerLiteral(t, h, "1")
	buildBinaryExpr(h, lhs, "+", rhs)

	ok, err := h.SynthesizeBinaryArithmetic()
	if !ok || err != nil {
		t.Fatalf("SynthesizeBinaryArithmetic: ok=%v err=%v", ok, err)
	}
	top, _ := h.Stack.Top()
	if !top.IsTemporary {
		t.Errorf("runtime result should be marked temporary")
	}
	found := false
	for _, inst := range emitter.Instructions {
		if inst.Op == "add" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a runtime add instruction, got %+v", emitter.Instructions)
	}
}

// Unary minus: "(-3" parses as lhs="(" (an opening parenthesis acting as a
// placeholder lhs) followed by operator_rhs{"-", 3}; IsUnaryMinus should
// make SynthesizeBinaryArithmetic treat it as "0 - 3".
func TestSynthesizeBinaryArithmetic_UnaryMinus(t *testing.T) {
	h, _, _ := newTestHandlers(t)
	lhs := &ast.Node{Name: "operator", Lexeme: "("}
	rhs := pushIntegerLiteral(t, h, "3")
	buildBinaryExpr(h, lhs, "-", rhs)

	ok, err := h.SynthesizeBinaryArithmetic()
	if !ok || err != nil {
		t.Fatalf("SynthesizeBinaryArithmetic: ok=%v err=%v", ok, err)
	}
	top, _ := h.Stack.Top()
	if top.Lexeme != "-3" {
		t.Errorf("folded lexeme = %q, want %q", top.Lexeme, "-3")
	}
}

// Relational operators always emit a runtime compare, never fold.
func TestSynthesizeRelation_EmitsCompare(t *testing.T) {
	h, _, emitter := newTestHandlers(t)
	lhs := pushIntegerLiteral(t, h, "2")
	rhs := pushIntegerLiteral(t, h, "3")
	buildRelationExpr(h, lhs, "<", rhs)

	ok, err := h.SynthesizeRelation()
	if !ok || err != nil {
		t.Fatalf("SynthesizeRelation: ok=%v err=%v", ok, err)
	}
	top, _ := h.Stack.Top()
	if top.ComputedType != TypeBoolean {
		t.Errorf("computed type = %q, want %q", top.ComputedType, TypeBoolean)
	}
	last := emitter.Instructions[len(emitter.Instructions)-1]
	if last.Op != "cmp:<" {
		t.Errorf("last instruction = %+v, want op cmp:<", last)
	}
}

func TestSynthesizeRelation_IncompatibleTypes(t *testing.T) {
	h, buf, _ := newTestHandlers(t)
	lhs := pushIntegerLiteral(t, h, "2")
	rhs := &ast.Node{Name: "string_literal", Lexeme: `"x"`, DeclaredType: TypeStringLiteral, ComputedType: TypeStringLiteral}
	buildRelationExpr(h, lhs, "<", rhs)

	ok, err := h.SynthesizeRelation()
	if err != nil {
		t.Fatalf("SynthesizeRelation returned Go error: %v", err)
	}
	if ok {
		t.Fatalf("SynthesizeRelation: ok = true, want false for incompatible types")
	}
	if !strings.Contains(buf.String(), "Incompatible operand types") {
		t.Errorf("diagnostic output = %q, want incompatible-types message", buf.String())
	}
}
