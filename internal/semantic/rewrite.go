package semantic

import (
	"fmt"

	"github.com/Relz/LL-Parser-Library/internal/ast"
)

// bracketLexemes identifies the punctuation leaves RemoveBrackets and its
// aliases (RemoveIfRoundBrackets, RemoveSemicolon, RemoveScopeBrackets) must
// discard, distinguishing them from the kept content child by lexeme
// rather than by grammar-rule name, since the same handler serves
// productions with the bracket pair on either side of the content
// (`( expr )`, `[ size ]`, `{ stmts }`) or on only one side (`statement ;`).
var bracketLexemes = map[string]bool{
	"(": true, ")": true, "[": true, "]": true, "{": true, "}": true, ";": true,
}

// collapseStructural fully adopts child's identity onto parent — name,
// types, lexeme, IR value and children — the shape a pure structural
// rewrite needs (unlike expr.go's collapseInto, which deliberately keeps
// the parent's rule name and drops children after an expression folds).
func collapseStructural(parent, child *ast.Node) {
	parent.Name = child.Name
	parent.DeclaredType = child.DeclaredType
	parent.ComputedType = child.ComputedType
	parent.Lexeme = child.Lexeme
	parent.IRValue = child.IRValue
	parent.IsTemporary = child.IsTemporary
	parent.Children = child.Children
}

// RemoveBrackets drops the surrounding punctuation leaves a bracketed
// production reduces, keeping only the single non-punctuation child.
func (h *Handlers) RemoveBrackets() (bool, error) {
	top, ok := h.Stack.Top()
	if !ok {
		return false, fmt.Errorf("RemoveBrackets: AST stack is empty")
	}
	for _, c := range top.Children {
		if !bracketLexemes[c.Lexeme] {
			collapseStructural(top, c)
			return true, nil
		}
	}
	return false, fmt.Errorf("RemoveBrackets: no non-bracket child found")
}

// RemoveBracketsAndSynthesis is RemoveBrackets for productions whose kept
// child has already been fully synthesized by the time this fires; there is
// no further work to layer on top.
func (h *Handlers) RemoveBracketsAndSynthesis() (bool, error) {
	return h.RemoveBrackets()
}

// ExpandChildrenLastChildren hoists the last child's own children up into
// the current node in its place, flattening one level of a recursively
// built list.
func (h *Handlers) ExpandChildrenLastChildren() (bool, error) {
	top, ok := h.Stack.Top()
	if !ok {
		return false, fmt.Errorf("ExpandChildrenLastChildren: AST stack is empty")
	}
	if len(top.Children) == 0 {
		return true, nil
	}
	last := top.Children[len(top.Children)-1]
	top.Children = append(top.Children[:len(top.Children)-1], last.Children...)
	return true, nil
}

// SynthesisLastChildren collapses the current node down to its last child
// entirely, used by epsilon-tail list productions where the real content
// lives arbitrarily deep in the last slot.
func (h *Handlers) SynthesisLastChildren() (bool, error) {
	top, ok := h.Stack.Top()
	if !ok {
		return false, fmt.Errorf("SynthesisLastChildren: AST stack is empty")
	}
	if len(top.Children) == 0 {
		return true, nil
	}
	collapseStructural(top, top.Children[len(top.Children)-1])
	return true, nil
}

// SynthesisType copies a single child's declared/computed type onto the
// parent node.
func (h *Handlers) SynthesisType() (bool, error) {
	top, ok := h.Stack.Top()
	if !ok {
		return false, fmt.Errorf("SynthesisType: AST stack is empty")
	}
	if len(top.Children) == 0 {
		return true, nil
	}
	child := top.Children[0]
	top.DeclaredType = child.DeclaredType
	top.ComputedType = child.ComputedType
	return true, nil
}
