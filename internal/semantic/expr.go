package semantic

import (
	"fmt"
	"strconv"

	"github.com/Relz/LL-Parser-Library/internal/ast"
	"github.com/Relz/LL-Parser-Library/internal/calc"
	"github.com/Relz/LL-Parser-Library/internal/ir"
)

// relOpToCmp maps this language's relational spellings onto internal/ir's
// predicate constants.
var relOpToCmp = map[string]string{
	"==": ir.CmpEQ,
	"!=": ir.CmpNE,
	"<":  ir.CmpLT,
	"<=": ir.CmpLE,
	">":  ir.CmpGT,
	">=": ir.CmpGE,
}

// IsUnaryMinus reports whether lexeme is one of the tokens after which a
// "-" must be read as unary negation rather than binary subtraction: an
// assignment or arithmetic operator, or an opening parenthesis.
func IsUnaryMinus(lexeme string) bool {
	switch lexeme {
	case "=", "+", "-", "*", "/", "//", "%", "(":
		return true
	}
	return false
}

// operandType resolves an expression operand's type for compatibility
// checking: an unresolved identifier leaf is looked up in scope; anything
// else — a literal, or a node already
// carrying a computed type from an earlier synthesis — reports its own
// type. The second return value is true whenever the operand is backed by
// a real IR value rather than foldable literal text.
func (h *Handlers) operandType(n *ast.Node) (string, bool) {
	if n.DeclaredType == TypeIdentifier {
		if n.ComputedType == "" || n.ComputedType == TypeIdentifier {
			if idx, found := h.Scopes.Resolve(n.Lexeme); found {
				if row, found := h.Symbols.Get(idx); found {
					return row.Type, true
				}
			}
			return TypeIdentifier, true
		}
		return n.ComputedType, true
	}
	return typeOf(n), false
}

func (h *Handlers) valueOf(n *ast.Node) any {
	return n.IRValue
}

// insertSyntheticZero turns lhs into a synthesized integer-literal zero,
// the stack-level effect of the unary-minus rule: "0 - rhs" is
// synthesized by the time the binary-arithmetic handler proper runs, so
// this mutates the already-present lhs slot in place rather than pushing a
// new stack entry.
func (h *Handlers) insertSyntheticZero(lhs *ast.Node) {
	lhs.DeclaredType = TypeInteger
	lhs.ComputedType = TypeInteger
	lhs.Lexeme = "0"
	lhs.Children = nil
	if zero, err := h.IR.CreateConstant(TypeInteger, "0"); err == nil {
		lhs.IRValue = zero
	}
}

func (h *Handlers) applyArithmetic(op, resultType string, lhs, rhs any) (any, error) {
	switch op {
	case "+":
		return h.IR.CreateAdd(resultType, lhs, rhs, "")
	case "-":
		return h.IR.CreateSub(resultType, lhs, rhs, "")
	case "*":
		return h.IR.CreateMul(resultType, lhs, rhs, "")
	case "/":
		return h.IR.CreateSDiv(TypeFloat, lhs, rhs, "")
	case "//":
		return h.IR.CreateExactSDiv(TypeInteger, lhs, rhs, "")
	case "%":
		return h.IR.CreateSRem(TypeInteger, lhs, rhs, "")
	default:
		return nil, fmt.Errorf("unsupported arithmetic operator %q", op)
	}
}

func (h *Handlers) foldConstant(op, lhsLexeme, rhsLexeme, calcT string) (string, error) {
	switch op {
	case "+":
		return calc.Add(lhsLexeme, rhsLexeme, calcT)
	case "-":
		return calc.Sub(lhsLexeme, rhsLexeme, calcT)
	case "*":
		return calc.Mul(lhsLexeme, rhsLexeme, calcT)
	case "/":
		return calc.Div(lhsLexeme, rhsLexeme, calcT)
	case "//":
		return calc.IntDiv(lhsLexeme, rhsLexeme, calcT)
	case "%":
		return calc.Mod(lhsLexeme, rhsLexeme, calcT)
	default:
		return "", fmt.Errorf("unsupported arithmetic operator %q", op)
	}
}

// collapseInto copies the synthesized expression's fields from child onto
// parent and clears parent's children, so that the templated reduce node
// becomes the synthesized expression node directly.
func collapseInto(parent, child *ast.Node) {
	parent.Lexeme = child.Lexeme
	parent.ComputedType = child.ComputedType
	parent.DeclaredType = child.DeclaredType
	parent.IRValue = child.IRValue
	parent.IsTemporary = child.IsTemporary
	parent.Children = nil
}

// SynthesizeBinaryArithmetic is the binary arithmetic handler for every
// one of +, -, *, /, //, %, dispatched through a single
// handler because this grammar names every such production's children
// uniformly "lhs" and "operator_rhs" (see DESIGN.md).
func (h *Handlers) SynthesizeBinaryArithmetic() (bool, error) {
	top, ok := h.Stack.Top()
	if !ok || len(top.Children) < 2 {
		return false, fmt.Errorf("SynthesizeBinaryArithmetic: missing lhs/operator_rhs children")
	}
	lhs := top.Children[0]
	opRhs := top.Children[1]
	if len(opRhs.Children) < 2 {
		return false, fmt.Errorf("SynthesizeBinaryArithmetic: operator_rhs missing operator/rhs children")
	}
	opNode := opRhs.Children[0]
	rhs := opRhs.Children[1]
	op := opNode.Lexeme

	if op == "-" && IsUnaryMinus(lhs.Lexeme) {
		h.insertSyntheticZero(lhs)
	}

	lhsType, lhsRuntime := h.operandType(lhs)
	rhsType, rhsRuntime := h.operandType(rhs)
	runtime := lhsRuntime || rhsRuntime

	resultType, compatible := AreTypesCompatible(lhsType, rhsType)
	if !compatible {
		return h.fail("Incompatible operand types %q and %q for operator %q", lhsType, rhsType, op)
	}
	switch op {
	case "/":
		resultType = TypeFloat
	case "//":
		resultType = TypeInteger
	case "%":
		if resultType != TypeInteger {
			return h.fail("Modulus requires integer operands")
		}
	}

	if runtime {
		result, err := h.applyArithmetic(op, resultType, h.valueOf(lhs), h.valueOf(rhs))
		if err != nil {
			return h.fail("%v", err)
		}
		lhs.DeclaredType = TypeIdentifier
		lhs.ComputedType = resultType
		lhs.Lexeme = fmt.Sprintf("(%s %s %s)", lhs.Lexeme, op, rhs.Lexeme)
		lhs.IsTemporary = true
		lhs.IRValue = result
	} else {
		folded, err := h.foldConstant(op, lhs.Lexeme, rhs.Lexeme, calcType(resultType))
		if err != nil {
			return h.fail("%v", err)
		}
		constVal, err := h.IR.CreateConstant(resultType, folded)
		if err != nil {
			return h.fail("%v", err)
		}
		lhs.Lexeme = folded
		lhs.ComputedType = resultType
		lhs.IRValue = constVal
	}

	lhs.Children = nil
	opRhs.Children = nil
	collapseInto(top, lhs)
	return true, nil
}

// SynthesizeRelation is the relational-operator handler, sharing the
// binary handler's stack shape and node-naming scheme but always emitting
// a runtime compare: relations have no constant-folding path.
func (h *Handlers) SynthesizeRelation() (bool, error) {
	top, ok := h.Stack.Top()
	if !ok || len(top.Children) < 2 {
		return false, fmt.Errorf("SynthesizeRelation: missing lhs/relation_rhs children")
	}
	lhs := top.Children[0]
	relRhs := top.Children[1]
	if len(relRhs.Children) < 2 {
		return false, fmt.Errorf("SynthesizeRelation: relation_rhs missing operator/rhs children")
	}
	opNode := relRhs.Children[0]
	rhs := relRhs.Children[1]
	op := opNode.Lexeme

	cmp, ok := relOpToCmp[op]
	if !ok {
		return false, fmt.Errorf("SynthesizeRelation: unsupported relational operator %q", op)
	}

	lhsType, _ := h.operandType(lhs)
	rhsType, _ := h.operandType(rhs)
	operandType, compatible := AreTypesCompatible(lhsType, rhsType)
	if !compatible {
		return h.fail("Incompatible operand types %q and %q for operator %q", lhsType, rhsType, op)
	}

	result, err := h.IR.CreateCompare(operandType, cmp, h.valueOf(lhs), h.valueOf(rhs), "")
	if err != nil {
		return h.fail("%v", err)
	}

	lhs.DeclaredType = TypeIdentifier
	lhs.ComputedType = TypeBoolean
	lhs.Lexeme = fmt.Sprintf("(%s %s %s)", lhs.Lexeme, op, rhs.Lexeme)
	lhs.IsTemporary = true
	lhs.IRValue = result

	lhs.Children = nil
	relRhs.Children = nil
	collapseInto(top, lhs)
	return true, nil
}

// TryToLoadLlvmValueFromSymbolTable emits a load from the referenced
// variable's allocation. When the identifier node carries an
// index-expression child, it first emits an in-bounds GEP for array
// element access.
func (h *Handlers) TryToLoadLlvmValueFromSymbolTable() (bool, error) {
	node, ok := h.Stack.Top()
	if !ok {
		return false, fmt.Errorf("TryToLoadLlvmValueFromSymbolTable: AST stack is empty")
	}
	idx, found := h.Scopes.Resolve(node.Lexeme)
	if !found {
		return h.fail("Undeclared identifier %q", node.Lexeme)
	}
	row, found := h.Symbols.Get(idx)
	if !found {
		return h.fail("Undeclared identifier %q", node.Lexeme)
	}

	ptr := row.IRHandle
	if row.ArrayInfo != nil && len(node.Children) > 0 {
		elemType, err := h.IR.CreateType(row.Type, 0)
		if err != nil {
			return h.fail("%v", err)
		}
		zero, err := h.IR.CreateConstant(TypeInteger, "0")
		if err != nil {
			return h.fail("%v", err)
		}
		indexVal := h.valueOf(node.Children[0])
		ptr = h.IR.CreateGEP(elemType, ptr, []any{zero, indexVal}, fmt.Sprintf("%s_element", node.Lexeme))
	}

	value := h.IR.CreateLoad(ptr, fmt.Sprintf("%s_value", node.Lexeme))
	node.ComputedType = row.Type
	node.DeclaredType = TypeIdentifier
	node.IRValue = value
	node.Children = nil
	return true, nil
}

// byteSizeOf reports the fixed scalar width this front end assumes for
// declType's LLVM lowering (internal/ir.Builder.scalarType), used only to
// size array memcpy calls.
func byteSizeOf(declType string) int {
	switch declType {
	case TypeFloat:
		return 8
	case TypeCharacter, TypeBoolean:
		return 1
	default:
		return 4
	}
}

// memcpyPrototype declares (once) the memcpy intrinsic used for array
// initialization and array-argument I/O, caching it on first use the way
// the source caches its scanf/printf prototypes.
func (h *Handlers) memcpyPrototype() (any, error) {
	if h.memcpyProto != nil {
		return h.memcpyProto, nil
	}
	i8ptr, err := h.IR.CreateType(TypeString, 0)
	if err != nil {
		return nil, err
	}
	i32, err := h.IR.CreateType(TypeInteger, 0)
	if err != nil {
		return nil, err
	}
	boolType, err := h.IR.CreateType(TypeBoolean, 0)
	if err != nil {
		return nil, err
	}
	voidType, err := h.IR.CreateType(TypeVoid, 0)
	if err != nil {
		return nil, err
	}
	fn := h.IR.AddFunction("llvm.memcpy.p0i8.p0i8.i32", voidType, []any{i8ptr, i8ptr, i32, boolType}, false)
	h.memcpyProto = fn
	return fn, nil
}

// emitArrayCopy memcpy's dimension*byteSizeOf(declType) bytes from src into
// dst, bitcasting both sides to i8* first.
func (h *Handlers) emitArrayCopy(dst, src any, declType string, dimension int) {
	fn, err := h.memcpyPrototype()
	if err != nil {
		return
	}
	i8ptr, err := h.IR.CreateType(TypeString, 0)
	if err != nil {
		return
	}
	dstCast := h.IR.CreateBitCast(dst, i8ptr, "memcpy_dst")
	srcCast := h.IR.CreateBitCast(src, i8ptr, "memcpy_src")
	size, err := h.IR.CreateConstant(TypeInteger, strconv.Itoa(dimension*byteSizeOf(declType)))
	if err != nil {
		return
	}
	isVolatile, err := h.IR.CreateBooleanConstant("False")
	if err != nil {
		return
	}
	h.IR.CreateCall(fn, []any{dstCast, srcCast, size, isVolatile}, "")
}
