package semantic

import (
	"fmt"

	"github.com/Relz/LL-Parser-Library/internal/ast"
	"github.com/Relz/LL-Parser-Library/internal/ir"
)

// synthesizeCondition widens a boolean or integer expression to float and
// compares it against 0.0, the common shape both `if` and `while`
// conditions reduce to.
func (h *Handlers) synthesizeCondition(expr *ast.Node) (any, error) {
	val := expr.IRValue
	switch typeOf(expr) {
	case TypeBoolean, TypeBoolLiteral, TypeInteger:
		val = h.IR.ConvertToFloat(val)
	}
	zero, err := h.IR.CreateConstant(TypeFloat, "0.0")
	if err != nil {
		return nil, err
	}
	return h.IR.CreateCompare(TypeFloat, ir.CmpNE, val, zero, "condition")
}

// CreateIfStatement synthesizes the branch condition from the top
// expression, opens a true and a false basic block, and emits the
// conditional branch.
func (h *Handlers) CreateIfStatement() (bool, error) {
	cond, ok := h.Stack.Top()
	if !ok {
		return false, fmt.Errorf("CreateIfStatement: AST stack is empty")
	}
	condVal, err := h.synthesizeCondition(cond)
	if err != nil {
		return h.fail("%v", err)
	}
	trueBB := h.IR.AddBasicBlock(h.fn, "if_true")
	falseBB := h.IR.AddBasicBlock(h.fn, "if_false")
	h.trueBlock.push(trueBB)
	h.falseBlock.push(falseBB)
	h.IR.CreateCondBr(condVal, trueBB, falseBB)
	return true, nil
}

// StartBlockTrue redirects the insertion point to the pending true block.
func (h *Handlers) StartBlockTrue() (bool, error) {
	bb, ok := h.trueBlock.pop()
	if !ok {
		return false, fmt.Errorf("StartBlockTrue: no pending true block")
	}
	h.IR.SetInsertPoint(bb)
	return true, nil
}

// StartBlockFalse redirects the insertion point to the pending false block.
func (h *Handlers) StartBlockFalse() (bool, error) {
	bb, ok := h.falseBlock.pop()
	if !ok {
		return false, fmt.Errorf("StartBlockFalse: no pending false block")
	}
	h.IR.SetInsertPoint(bb)
	return true, nil
}

// StartBlockPrevious redirects the insertion point to the pending join
// block, used after both an if/else and a while loop to resume straight-
// line emission.
func (h *Handlers) StartBlockPrevious() (bool, error) {
	bb, ok := h.previous.pop()
	if !ok {
		return false, fmt.Errorf("StartBlockPrevious: no pending block")
	}
	h.IR.SetInsertPoint(bb)
	return true, nil
}

// SavePostIfStatementToPreviousBlocks opens the post-if join block.
func (h *Handlers) SavePostIfStatementToPreviousBlocks() (bool, error) {
	bb := h.IR.AddBasicBlock(h.fn, "post_if")
	h.previous.push(bb)
	return true, nil
}

// GotoPostIfStatementLabel emits an unconditional branch to the pending
// join block, without popping it: both the true and the false arm of an
// if/else each call this once, targeting the same block.
func (h *Handlers) GotoPostIfStatementLabel() (bool, error) {
	bb, ok := h.previous.top()
	if !ok {
		return false, fmt.Errorf("GotoPostIfStatementLabel: no pending join block")
	}
	h.IR.CreateBr(bb)
	return true, nil
}

// CreateBlockPreWhile opens the loop's pre-condition block.
func (h *Handlers) CreateBlockPreWhile() (bool, error) {
	bb := h.IR.AddBasicBlock(h.fn, "pre_while")
	h.preWhile.push(bb)
	return true, nil
}

// GotoBlockPreWhile emits the branch that enters the loop from the
// straight-line code preceding it.
func (h *Handlers) GotoBlockPreWhile() (bool, error) {
	bb, ok := h.preWhile.top()
	if !ok {
		return false, fmt.Errorf("GotoBlockPreWhile: no pending pre-while block")
	}
	h.IR.CreateBr(bb)
	return true, nil
}

// StartBlockPreWhile redirects the insertion point into the pre-while
// block so the loop condition is emitted there.
func (h *Handlers) StartBlockPreWhile() (bool, error) {
	bb, ok := h.preWhile.top()
	if !ok {
		return false, fmt.Errorf("StartBlockPreWhile: no pending pre-while block")
	}
	h.IR.SetInsertPoint(bb)
	return true, nil
}

// CreateBlockWhile opens the loop-body block, ahead of the condition being
// synthesized, so CreateWhileStatement's branch can target it.
func (h *Handlers) CreateBlockWhile() (bool, error) {
	bb := h.IR.AddBasicBlock(h.fn, "while_body")
	h.whileBody.push(bb)
	return true, nil
}

// CreateWhileStatement synthesizes the loop condition, opens the post-loop
// block (shared with if/else's join-block stack), and emits the
// conditional branch into the already-opened body block or out to the
// post-loop block.
func (h *Handlers) CreateWhileStatement() (bool, error) {
	cond, ok := h.Stack.Top()
	if !ok {
		return false, fmt.Errorf("CreateWhileStatement: AST stack is empty")
	}
	condVal, err := h.synthesizeCondition(cond)
	if err != nil {
		return h.fail("%v", err)
	}
	bodyBB, ok := h.whileBody.top()
	if !ok {
		return false, fmt.Errorf("CreateWhileStatement: no pending while-body block")
	}
	postBB := h.IR.AddBasicBlock(h.fn, "post_while")
	h.previous.push(postBB)
	h.IR.CreateCondBr(condVal, bodyBB, postBB)
	return true, nil
}

// StartBlockWhile redirects the insertion point to the loop body.
func (h *Handlers) StartBlockWhile() (bool, error) {
	bb, ok := h.whileBody.pop()
	if !ok {
		return false, fmt.Errorf("StartBlockWhile: no pending while-body block")
	}
	h.IR.SetInsertPoint(bb)
	return true, nil
}

// EndBlockPreWhile closes the loop: branches back to the pre-while block to
// re-check the condition, and retires that block's stack entry.
func (h *Handlers) EndBlockPreWhile() (bool, error) {
	bb, ok := h.preWhile.pop()
	if !ok {
		return false, fmt.Errorf("EndBlockPreWhile: no pending pre-while block")
	}
	h.IR.CreateBr(bb)
	return true, nil
}
