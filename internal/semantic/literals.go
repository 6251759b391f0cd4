package semantic

import (
	"fmt"
	"strings"
)

// SynthesisIntegerLiteral materializes the top-of-stack leaf's lexeme as an
// i32 constant. Integer has no distinct "_literal" entry in the
// compatibility table, so both declared and computed type collapse to
// TypeInteger directly.
func (h *Handlers) SynthesisIntegerLiteral() (bool, error) {
	node, ok := h.Stack.Top()
	if !ok {
		return false, fmt.Errorf("SynthesisIntegerLiteral: AST stack is empty")
	}
	v, err := h.IR.CreateConstant(TypeInteger, node.Lexeme)
	if err != nil {
		return h.fail("%v", err)
	}
	node.DeclaredType = TypeInteger
	node.ComputedType = TypeInteger
	node.IRValue = v
	return true, nil
}

// SynthesisFloatLiteral materializes a double constant.
func (h *Handlers) SynthesisFloatLiteral() (bool, error) {
	node, ok := h.Stack.Top()
	if !ok {
		return false, fmt.Errorf("SynthesisFloatLiteral: AST stack is empty")
	}
	v, err := h.IR.CreateConstant(TypeFloat, node.Lexeme)
	if err != nil {
		return h.fail("%v", err)
	}
	node.DeclaredType = TypeFloat
	node.ComputedType = TypeFloat
	node.IRValue = v
	return true, nil
}

// SynthesisBooleanLiteral materializes an i1 constant, matching the literal
// case-insensitively and passing on the "True"/"False"
// spellings internal/ir.Builder.CreateBooleanConstant accepts (ported from
// LlvmHelper::CreateBooleanConstant, which only recognizes those two).
func (h *Handlers) SynthesisBooleanLiteral() (bool, error) {
	node, ok := h.Stack.Top()
	if !ok {
		return false, fmt.Errorf("SynthesisBooleanLiteral: AST stack is empty")
	}
	spelling := "False"
	if strings.EqualFold(node.Lexeme, "true") {
		spelling = "True"
	}
	v, err := h.IR.CreateBooleanConstant(spelling)
	if err != nil {
		return h.fail("%v", err)
	}
	node.DeclaredType = TypeBoolLiteral
	node.ComputedType = TypeBoolLiteral
	node.IRValue = v
	return true, nil
}

// SynthesisCharacterLiteral materializes an i8 constant from a quoted
// character lexeme like 'a'.
func (h *Handlers) SynthesisCharacterLiteral() (bool, error) {
	node, ok := h.Stack.Top()
	if !ok {
		return false, fmt.Errorf("SynthesisCharacterLiteral: AST stack is empty")
	}
	v, err := h.IR.CreateConstant(TypeCharacter, node.Lexeme)
	if err != nil {
		return h.fail("%v", err)
	}
	node.DeclaredType = TypeCharLiteral
	node.ComputedType = TypeCharLiteral
	node.IRValue = v
	return true, nil
}

// SynthesisStringLiteral materializes a global constant string and stores
// a pointer to it, decoding the surrounding quotes before handing the raw
// text to the IR builder (which itself decodes \n/\t escapes).
func (h *Handlers) SynthesisStringLiteral() (bool, error) {
	node, ok := h.Stack.Top()
	if !ok {
		return false, fmt.Errorf("SynthesisStringLiteral: AST stack is empty")
	}
	raw := strings.TrimSuffix(strings.TrimPrefix(node.Lexeme, `"`), `"`)
	v := h.IR.CreateGlobalStringPtr(raw, "string_literal")
	node.DeclaredType = TypeStringLiteral
	node.ComputedType = TypeStringLiteral
	node.IRValue = v
	return true, nil
}

// SynthesisArrayLiteral materializes a private unnamed-addr constant array
// from the already-synthesized element literals under the top node,
// inferring the element type from the first element rather than from the
// surrounding declaration: the elements are already typed by the time this
// handler runs, which is equivalent for any literal array and requires no
// lookahead into the enclosing declaration.
func (h *Handlers) SynthesisArrayLiteral() (bool, error) {
	node, ok := h.Stack.Top()
	if !ok {
		return false, fmt.Errorf("SynthesisArrayLiteral: AST stack is empty")
	}
	if len(node.Children) == 0 {
		return false, fmt.Errorf("SynthesisArrayLiteral: array literal has no elements")
	}
	elemType := baseType(node.Children[0].ComputedType)
	irElemType, err := h.IR.CreateType(elemType, 0)
	if err != nil {
		return h.fail("%v", err)
	}
	values := make([]any, len(node.Children))
	for i, c := range node.Children {
		values[i] = c.IRValue
	}
	arr := h.IR.CreateArrayConstant(irElemType, values)
	global := h.IR.AddPrivateConstant("array_literal", arr)

	node.DeclaredType = TypeArrayLiteral
	node.ComputedType = TypeArrayLiteral
	node.IRValue = global
	return true, nil
}

// baseType strips a literal type's "_literal" suffix, e.g. "character_literal"
// → "character", so it can be handed to internal/ir.Builder.CreateType which
// only knows the scalar primitive names.
func baseType(t string) string {
	return strings.TrimSuffix(t, "_literal")
}
