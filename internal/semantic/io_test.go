package semantic

import (
	"strings"
	"testing"

	"github.com/Relz/LL-Parser-Library/internal/ast"
)

// Write builds its printf format string from each argument's own type, one
// conversion specifier per argument, in order.
func TestWrite_BuildsFormatStringPerArgument(t *testing.T) {
	h, _, emitter := newTestHandlers(t)
	n := pushIntegerLiteral(t, h, "42")
	s := &ast.Node{Name: "string_literal", Lexeme: `"hi"`, DeclaredType: TypeStringLiteral, ComputedType: TypeStringLiteral, IRValue: "hi_ptr"}
	top := &ast.Node{Name: "write_args", Children: []*ast.Node{n, s}}
	h.Stack.Push(top)

	ok, err := h.Write()
	if !ok || err != nil {
		t.Fatalf("Write: ok=%v err=%v", ok, err)
	}

	var format string
	var sawCall bool
	for _, inst := range emitter.Instructions {
		if inst.Op == "global_string" {
			format, _ = inst.Args[0].(string)
		}
		if inst.Op == "function" && inst.Args[0] == "printf" {
			sawCall = true
		}
	}
	if format != "%d%s" {
		t.Errorf("format string = %q, want %q", format, "%d%s")
	}
	if !sawCall {
		t.Errorf("Write did not declare the printf prototype, instructions: %+v", emitter.Instructions)
	}
}

// Read desugars into a scanf call whose arguments are the target
// variables' allocation pointers, not loaded values.
func TestRead_PassesAllocationPointers(t *testing.T) {
	h, _, emitter := newTestHandlers(t)
	ptr := h.IR.CreateAlloca(TypeInteger, "(x)_pointer")
	idx := h.Symbols.CreateRow(TypeInteger, "x", ptr, nil)
	h.Scopes.Declare("x", idx)

	target := &ast.Node{Name: "identifier", Lexeme: "x"}
	top := &ast.Node{Name: "read_args", Children: []*ast.Node{target}}
	h.Stack.Push(top)

	ok, err := h.Read()
	if !ok || err != nil {
		t.Fatalf("Read: ok=%v err=%v", ok, err)
	}

	var callArgs []any
	for _, inst := range emitter.Instructions {
		if inst.Op == "call" {
			callArgs, _ = inst.Args[1].([]any)
		}
	}
	if len(callArgs) != 2 {
		t.Fatalf("scanf call args = %+v, want [format, ptr]", callArgs)
	}
	if callArgs[1] != ptr {
		t.Errorf("scanf's second argument = %v, want the allocation pointer %v", callArgs[1], ptr)
	}
}

func TestRead_UndeclaredTarget(t *testing.T) {
	h, buf, _ := newTestHandlers(t)
	target := &ast.Node{Name: "identifier", Lexeme: "missing"}
	top := &ast.Node{Name: "read_args", Children: []*ast.Node{target}}
	h.Stack.Push(top)

	ok, err := h.Read()
	if err != nil {
		t.Fatalf("Read returned Go error: %v", err)
	}
	if ok {
		t.Fatalf("Read: ok = true, want false for an undeclared target")
	}
	if want := `Undeclared identifier "missing"`; !strings.Contains(buf.String(), want) {
		t.Errorf("diagnostic output = %q, want it to contain %q", buf.String(), want)
	}
}
