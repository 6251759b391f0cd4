package semantic

import (
	"testing"

	"github.com/Relz/LL-Parser-Library/internal/ast"
)

func TestSynthesisBooleanLiteral_NormalizesSpelling(t *testing.T) {
	h, _, _ := newTestHandlers(t)
	h.Stack.Push(&ast.Node{Name: "boolean_literal", Lexeme: "TRUE"})
	ok, err := h.SynthesisBooleanLiteral()
	if !ok || err != nil {
		t.Fatalf("SynthesisBooleanLiteral: ok=%v err=%v", ok, err)
	}
	top, _ := h.Stack.Top()
	if top.ComputedType != TypeBoolLiteral {
		t.Errorf("computed type = %q, want %q", top.ComputedType, TypeBoolLiteral)
	}
}

func TestSynthesisStringLiteral_StripsQuotes(t *testing.T) {
	h, _, _ := newTestHandlers(t)
	h.Stack.Push(&ast.Node{Name: "string_literal", Lexeme: `"hello"`})
	ok, err := h.SynthesisStringLiteral()
	if !ok || err != nil {
		t.Fatalf("SynthesisStringLiteral: ok=%v err=%v", ok, err)
	}
	top, _ := h.Stack.Top()
	if top.Lexeme != `"hello"` {
		t.Errorf("SynthesisStringLiteral must not mutate the node's own lexeme, got %q", top.Lexeme)
	}
	if top.ComputedType != TypeStringLiteral {
		t.Errorf("computed type = %q, want %q", top.ComputedType, TypeStringLiteral)
	}
}

// Array-literal elements infer their shared element type from the first
// already-synthesized element.
func TestSynthesisArrayLiteral_InfersElementType(t *testing.T) {
	h, _, emitter := newTestHandlers(t)
	e1 := pushIntegerLiteral(t, h, "1")
	e2 := pushIntegerLiteral(t, h, "2")
	e3 := pushIntegerLiteral(t, h, "3")
	top := &ast.Node{Name: "array_literal", Children: []*ast.Node{e1, e2, e3}}
	h.Stack.Push(top)

	ok, err := h.SynthesisArrayLiteral()
	if !ok || err != nil {
		t.Fatalf("SynthesisArrayLiteral: ok=%v err=%v", ok, err)
	}
	if top.ComputedType != TypeArrayLiteral {
		t.Errorf("computed type = %q, want %q", top.ComputedType, TypeArrayLiteral)
	}
	var sawArrayConst, sawPrivate bool
	for _, inst := range emitter.Instructions {
		if inst.Op == "array_const" {
			sawArrayConst = true
			values, _ := inst.Args[1].([]any)
			if len(values) != 3 {
				t.Errorf("array_const recorded %d values, want 3", len(values))
			}
		}
		if inst.Op == "private_constant" {
			sawPrivate = true
		}
	}
	if !sawArrayConst || !sawPrivate {
		t.Errorf("SynthesisArrayLiteral did not build a private array constant, instructions: %+v", emitter.Instructions)
	}
}

func TestSynthesisArrayLiteral_EmptyIsRejected(t *testing.T) {
	h, _, _ := newTestHandlers(t)
	top := &ast.Node{Name: "array_literal"}
	h.Stack.Push(top)

	_, err := h.SynthesisArrayLiteral()
	if err == nil {
		t.Fatalf("SynthesisArrayLiteral on an empty literal returned nil error, want one")
	}
}
