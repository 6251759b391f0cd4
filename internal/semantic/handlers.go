package semantic

import (
	"fmt"

	"github.com/Relz/LL-Parser-Library/internal/action"
	"github.com/Relz/LL-Parser-Library/internal/ast"
	"github.com/Relz/LL-Parser-Library/internal/calc"
	"github.com/Relz/LL-Parser-Library/internal/diag"
	"github.com/Relz/LL-Parser-Library/internal/ir"
	"github.com/Relz/LL-Parser-Library/internal/scope"
	"github.com/Relz/LL-Parser-Library/internal/symtab"
)

// blockFrame is one of five parallel control-flow block stacks that could
// in principle be unified into one tagged-frame stack; kept separate here
// because each is pushed/popped by a disjoint set of handlers and a shared
// stack would only add a discriminant check at every call site.
type blockFrame []any

func (b *blockFrame) push(v any) { *b = append(*b, v) }

func (b *blockFrame) pop() (any, bool) {
	s := *b
	if len(s) == 0 {
		return nil, false
	}
	v := s[len(s)-1]
	*b = s[:len(s)-1]
	return v, true
}

func (b *blockFrame) top() (any, bool) {
	s := *b
	if len(s) == 0 {
		return nil, false
	}
	return s[len(s)-1], true
}

// Handlers holds the mutable state every semantic action reads or mutates:
// the AST stack, the scope stack, the symbol table, and the IR emitter.
// A fifth shared resource, the IR builder's insertion point, lives inside
// the emitter itself rather than as a field here.
type Handlers struct {
	Stack   *ast.Stack
	Scopes  *scope.Stack
	Symbols *symtab.Table
	IR      ir.Emitter
	Out     *diag.Printer

	preWhile   blockFrame
	whileBody  blockFrame
	trueBlock  blockFrame
	falseBlock blockFrame
	previous   blockFrame

	scanfProto  any
	printfProto any
	memcpyProto any

	fn any // the single top-level function every statement emits into; this language has no user-defined functions
}

// New returns a Handlers operating over the given shared resources.
func New(stack *ast.Stack, scopes *scope.Stack, symbols *symtab.Table, irEmitter ir.Emitter, out *diag.Printer) *Handlers {
	return &Handlers{Stack: stack, Scopes: scopes, Symbols: symbols, IR: irEmitter, Out: out}
}

// SetFunction records the function every basic block this parse creates is
// appended to. The embedder (driver.Parser.IsValid, cmd/llparse's pipeline)
// calls this once, right after declaring the program's entry function and
// before running any action.
func (h *Handlers) SetFunction(fn any) {
	h.fn = fn
}

// fail prints a semantic error and reports the handler as failed, the
// uniform shape every "semantic-soft" error takes.
func (h *Handlers) fail(format string, args ...any) (bool, error) {
	h.Out.Error(&diag.SemanticError{Message: fmt.Sprintf(format, args...)})
	return false, nil
}

// Register installs every named semantic handler into reg under its literal
// action name, plus the two generic expression synthesis handlers under the
// "Synthesis <lhs> <operator_rhs>" / "Synthesis <lhs> <relation_rhs>" names
// the Create-AST-node template derives for this grammar's binary-expression
// and relation productions.
func (h *Handlers) Register(reg *action.Registry) {
	reg.RegisterPostReduce("CreateScope", h.CreateScope)
	reg.RegisterPostReduce("DestroyScope", h.DestroyScope)
	reg.RegisterPostReduce("AddVariableToScope", h.AddVariableToScope)
	reg.RegisterPostReduce("UpdateVariableInScope", h.UpdateVariableInScope)
	reg.RegisterPostReduce("CheckIdentifierForAlreadyExisting", h.CheckIdentifierForAlreadyExisting)
	reg.RegisterPostReduce("CheckIdentifierForExisting", h.CheckIdentifierForExisting)

	reg.RegisterPostReduce("Synthesis lhs operator_rhs", h.SynthesizeBinaryArithmetic)
	reg.RegisterPostReduce("Synthesis lhs relation_rhs", h.SynthesizeRelation)
	reg.RegisterPostReduce("TryToLoadLlvmValueFromSymbolTable", h.TryToLoadLlvmValueFromSymbolTable)

	reg.RegisterPostReduce("SynthesisIntegerLiteral", h.SynthesisIntegerLiteral)
	reg.RegisterPostReduce("SynthesisFloatLiteral", h.SynthesisFloatLiteral)
	reg.RegisterPostReduce("SynthesisBooleanLiteral", h.SynthesisBooleanLiteral)
	reg.RegisterPostReduce("SynthesisCharacterLiteral", h.SynthesisCharacterLiteral)
	reg.RegisterPostReduce("SynthesisStringLiteral", h.SynthesisStringLiteral)
	reg.RegisterPostReduce("SynthesisArrayLiteral", h.SynthesisArrayLiteral)

	reg.RegisterPostReduce("CreateIfStatement", h.CreateIfStatement)
	reg.RegisterPostReduce("StartBlockTrue", h.StartBlockTrue)
	reg.RegisterPostReduce("StartBlockFalse", h.StartBlockFalse)
	reg.RegisterPostReduce("StartBlockPrevious", h.StartBlockPrevious)
	reg.RegisterPostReduce("SavePostIfStatementToPreviousBlocks", h.SavePostIfStatementToPreviousBlocks)
	reg.RegisterPostReduce("GotoPostIfStatementLabel", h.GotoPostIfStatementLabel)

	reg.RegisterPostReduce("CreateBlockPreWhile", h.CreateBlockPreWhile)
	reg.RegisterPostReduce("GotoBlockPreWhile", h.GotoBlockPreWhile)
	reg.RegisterPostReduce("StartBlockPreWhile", h.StartBlockPreWhile)
	reg.RegisterPostReduce("CreateBlockWhile", h.CreateBlockWhile)
	reg.RegisterPostReduce("CreateWhileStatement", h.CreateWhileStatement)
	reg.RegisterPostReduce("StartBlockWhile", h.StartBlockWhile)
	reg.RegisterPostReduce("EndBlockPreWhile", h.EndBlockPreWhile)

	reg.RegisterPostReduce("Read", h.Read)
	reg.RegisterPostReduce("Write", h.Write)

	reg.RegisterPostReduce("RemoveBrackets", h.RemoveBrackets)
	reg.RegisterPostReduce("RemoveBracketsAndSynthesis", h.RemoveBracketsAndSynthesis)
	reg.RegisterPostReduce("RemoveIfRoundBrackets", h.RemoveBrackets)
	reg.RegisterPostReduce("RemoveSemicolon", h.RemoveBrackets)
	reg.RegisterPostReduce("RemoveScopeBrackets", h.RemoveBrackets)
	reg.RegisterPostReduce("ExpandChildrenLastChildren", h.ExpandChildrenLastChildren)
	reg.RegisterPostReduce("SynthesisLastChildrenChildren", h.ExpandChildrenLastChildren)
	reg.RegisterPostReduce("SynthesisLastChildren", h.SynthesisLastChildren)
	reg.RegisterPostReduce("SynthesisType", h.SynthesisType)

	reg.Ignore("Nothing")
}

func typeOf(n *ast.Node) string {
	if n.ComputedType != "" {
		return n.ComputedType
	}
	return n.DeclaredType
}

// calcType maps this language's computed types onto internal/calc's
// narrower integer/float vocabulary; only arithmetic's two numeric types
// ever reach the Calculator.
func calcType(t string) string {
	if t == TypeFloat {
		return calc.TypeFloat
	}
	return calc.TypeInteger
}
