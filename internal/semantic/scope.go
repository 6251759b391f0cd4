package semantic

import (
	"fmt"
	"strconv"

	"github.com/Relz/LL-Parser-Library/internal/ast"
)

// CreateScope pushes a new lexical scope.
func (h *Handlers) CreateScope() (bool, error) {
	h.Scopes.Push()
	return true, nil
}

// DestroyScope pops the current scope and tombstones every symbol row it
// declared, per scope.Stack.Pop's contract.
func (h *Handlers) DestroyScope() (bool, error) {
	indices, err := h.Scopes.Pop()
	if err != nil {
		return false, err
	}
	for _, idx := range indices {
		h.Symbols.RemoveRow(idx)
	}
	return true, nil
}

// CheckIdentifierForAlreadyExisting reports a semantic error if the
// top-of-stack identifier leaf is already declared in the *innermost*
// scope: declaration-uniqueness is scoped to "the current innermost
// scope", the precise reading adopted here over the looser "search all
// scopes" (see DESIGN.md's Open Question decision).
func (h *Handlers) CheckIdentifierForAlreadyExisting() (bool, error) {
	node, ok := h.Stack.Top()
	if !ok {
		return false, fmt.Errorf("CheckIdentifierForAlreadyExisting: AST stack is empty")
	}
	if _, found := h.Scopes.ResolveInnermost(node.Lexeme); found {
		return h.fail("Redeclaring identifier %q", node.Lexeme)
	}
	return true, nil
}

// CheckIdentifierForExisting reports a semantic error if the top-of-stack
// identifier leaf is undeclared in every enclosing scope.
func (h *Handlers) CheckIdentifierForExisting() (bool, error) {
	node, ok := h.Stack.Top()
	if !ok {
		return false, fmt.Errorf("CheckIdentifierForExisting: AST stack is empty")
	}
	if _, found := h.Scopes.Resolve(node.Lexeme); !found {
		return h.fail("Undeclared identifier %q", node.Lexeme)
	}
	return true, nil
}

// dimensionsOf reads the dimension-size children of an extended-type node,
// parsing each child's lexeme as a decimal integer.
func dimensionsOf(typeNode *ast.Node) []int {
	var dims []int
	for _, c := range typeNode.Children {
		n, err := strconv.Atoi(c.Lexeme)
		if err != nil {
			continue
		}
		dims = append(dims, n)
	}
	return dims
}

// AddVariableToScope finalizes a declaration statement: stack shape
// […, extended_type_node, initializer_node]. It builds the
// allocation, optionally widens an integer initializer to float, copies an
// array-literal initializer in with memcpy, and records the new symbol in
// the innermost scope.
func (h *Handlers) AddVariableToScope() (bool, error) {
	initializer, ok := h.Stack.Pop()
	if !ok {
		return false, fmt.Errorf("AddVariableToScope: missing initializer node")
	}
	typeNode, ok := h.Stack.Pop()
	if !ok {
		return false, fmt.Errorf("AddVariableToScope: missing extended-type node")
	}

	varName := typeNode.Lexeme
	declType := typeNode.DeclaredType
	dims := dimensionsOf(typeNode)
	dimension := 0
	if len(dims) > 0 {
		dimension = dims[0]
	}

	irType, err := h.IR.CreateType(declType, dimension)
	if err != nil {
		return h.fail("%v", err)
	}
	ptr := h.IR.CreateAlloca(irType, fmt.Sprintf("(%s)_pointer", varName))

	initVal := initializer.IRValue
	if declType == TypeFloat && typeOf(initializer) == TypeInteger {
		initVal = h.IR.ConvertToFloat(initVal)
	}
	if dimension > 0 && initVal != nil {
		h.emitArrayCopy(ptr, initVal, declType, dimension)
	} else if initVal != nil {
		h.IR.CreateStore(initVal, ptr)
	}

	idx := h.Symbols.CreateRow(declType, varName, ptr, dims)
	if !h.Scopes.Declare(varName, idx) {
		return h.fail("Redeclaring identifier %q", varName)
	}
	return true, nil
}

// UpdateVariableInScope stores the top-of-stack value into the allocation
// of the variable referenced three slots below the top.
func (h *Handlers) UpdateVariableInScope() (bool, error) {
	value, ok := h.Stack.Top()
	if !ok {
		return false, fmt.Errorf("UpdateVariableInScope: AST stack is empty")
	}
	varNode, ok := h.Stack.At(3)
	if !ok {
		return false, fmt.Errorf("UpdateVariableInScope: missing target variable reference")
	}
	idx, found := h.Scopes.Resolve(varNode.Lexeme)
	if !found {
		return h.fail("Undeclared identifier %q", varNode.Lexeme)
	}
	row, found := h.Symbols.Get(idx)
	if !found {
		return h.fail("Undeclared identifier %q", varNode.Lexeme)
	}

	val := value.IRValue
	if row.Type == TypeFloat && typeOf(value) == TypeInteger {
		val = h.IR.ConvertToFloat(val)
	}
	h.IR.CreateStore(val, row.IRHandle)
	return true, nil
}
