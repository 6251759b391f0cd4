package semantic

import (
	"testing"

	"github.com/Relz/LL-Parser-Library/internal/ast"
)

func pushBoolLiteral(t *testing.T, h *Handlers, lexeme string) *ast.Node {
	t.Helper()
	h.Stack.Push(&ast.Node{Name: "boolean_literal", Lexeme: lexeme})
	if ok, err := h.SynthesisBooleanLiteral(); !ok || err != nil {
		t.Fatalf("SynthesisBooleanLiteral(%q): ok=%v err=%v", lexeme, ok, err)
	}
	n, _ := h.Stack.Pop()
	return n
}

// Scenario 6: `if (a) {...} else {...}` opens distinct true/false blocks
// and emits a single conditional branch into them, then joins both arms
// into one shared post-if block.
func TestIfElse_CondBrAndSharedJoin(t *testing.T) {
	h, _, emitter := newTestHandlers(t)
	cond := pushBoolLiteral(t, h, "true")
	h.Stack.Push(cond)

	if ok, err := h.CreateIfStatement(); !ok || err != nil {
		t.Fatalf("CreateIfStatement: ok=%v err=%v", ok, err)
	}
	if len(h.trueBlock) != 1 || len(h.falseBlock) != 1 {
		t.Fatalf("trueBlock/falseBlock depths = %d/%d, want 1/1", len(h.trueBlock), len(h.falseBlock))
	}
	last := emitter.Instructions[len(emitter.Instructions)-1]
	if last.Op != "condbr" {
		t.Fatalf("last instruction = %+v, want condbr", last)
	}

	if ok, err := h.StartBlockTrue(); !ok || err != nil {
		t.Fatalf("StartBlockTrue: ok=%v err=%v", ok, err)
	}
	if len(h.trueBlock) != 0 {
		t.Errorf("trueBlock depth after StartBlockTrue = %d, want 0", len(h.trueBlock))
	}

	if ok, err := h.SavePostIfStatementToPreviousBlocks(); !ok || err != nil {
		t.Fatalf("SavePostIfStatementToPreviousBlocks: ok=%v err=%v", ok, err)
	}
	if ok, err := h.GotoPostIfStatementLabel(); !ok || err != nil {
		t.Fatalf("GotoPostIfStatementLabel (true arm): ok=%v err=%v", ok, err)
	}
	if len(h.previous) != 1 {
		t.Fatalf("previous depth after true arm's goto = %d, want 1 (not popped)", len(h.previous))
	}

	if ok, err := h.StartBlockFalse(); !ok || err != nil {
		t.Fatalf("StartBlockFalse: ok=%v err=%v", ok, err)
	}
	if ok, err := h.GotoPostIfStatementLabel(); !ok || err != nil {
		t.Fatalf("GotoPostIfStatementLabel (false arm): ok=%v err=%v", ok, err)
	}
	if len(h.previous) != 1 {
		t.Fatalf("previous depth after false arm's goto = %d, want 1 (still shared, not popped)", len(h.previous))
	}

	var brCount int
	for _, inst := range emitter.Instructions {
		if inst.Op == "br" {
			brCount++
		}
	}
	if brCount != 2 {
		t.Errorf("unconditional br count = %d, want 2 (one per arm, same target)", brCount)
	}

	if ok, err := h.StartBlockPrevious(); !ok || err != nil {
		t.Fatalf("StartBlockPrevious: ok=%v err=%v", ok, err)
	}
	if len(h.previous) != 0 {
		t.Errorf("previous depth after StartBlockPrevious = %d, want 0", len(h.previous))
	}
}

// while (cond) { body } opens a pre-while condition block, a body block,
// and a shared post-while join block, and branches back to the
// pre-while block at the end of the body.
func TestWhileLoop_Flow(t *testing.T) {
	h, _, emitter := newTestHandlers(t)

	if ok, err := h.CreateBlockPreWhile(); !ok || err != nil {
		t.Fatalf("CreateBlockPreWhile: ok=%v err=%v", ok, err)
	}
	if ok, err := h.GotoBlockPreWhile(); !ok || err != nil {
		t.Fatalf("GotoBlockPreWhile: ok=%v err=%v", ok, err)
	}
	if ok, err := h.StartBlockPreWhile(); !ok || err != nil {
		t.Fatalf("StartBlockPreWhile: ok=%v err=%v", ok, err)
	}

	cond := pushBoolLiteral(t, h, "true")
	h.Stack.Push(cond)

	if ok, err := h.CreateBlockWhile(); !ok || err != nil {
		t.Fatalf("CreateBlockWhile: ok=%v err=%v", ok, err)
	}
	if ok, err := h.CreateWhileStatement(); !ok || err != nil {
		t.Fatalf("CreateWhileStatement: ok=%v err=%v", ok, err)
	}
	if len(h.previous) != 1 {
		t.Fatalf("previous depth after CreateWhileStatement = %d, want 1", len(h.previous))
	}

	if ok, err := h.StartBlockWhile(); !ok || err != nil {
		t.Fatalf("StartBlockWhile: ok=%v err=%v", ok, err)
	}
	if len(h.whileBody) != 0 {
		t.Errorf("whileBody depth after StartBlockWhile = %d, want 0", len(h.whileBody))
	}

	if ok, err := h.EndBlockPreWhile(); !ok || err != nil {
		t.Fatalf("EndBlockPreWhile: ok=%v err=%v", ok, err)
	}
	if len(h.preWhile) != 0 {
		t.Errorf("preWhile depth after EndBlockPreWhile = %d, want 0", len(h.preWhile))
	}

	if ok, err := h.StartBlockPrevious(); !ok || err != nil {
		t.Fatalf("StartBlockPrevious: ok=%v err=%v", ok, err)
	}

	var condBrCount, brCount int
	for _, inst := range emitter.Instructions {
		switch inst.Op {
		case "condbr":
			condBrCount++
		case "br":
			brCount++
		}
	}
	if condBrCount != 1 {
		t.Errorf("condbr count = %d, want 1", condBrCount)
	}
	if brCount != 2 {
		t.Errorf("unconditional br count = %d, want 2 (entering the loop, and closing it back to pre-while)", brCount)
	}
}
