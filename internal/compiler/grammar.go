// Package compiler builds the fixed LL control table this module's
// language needs, in place of vartan's cmd/vartan pipeline that reads
// a user-authored .vr grammar file and lowers it through internal/grammar
// and internal/grammar/lr0/lalr1. This language's grammar does not vary
// between runs, so Build assembles it once in Go rather than parsing a
// grammar description, the way vartan's CompiledGrammar is itself a
// fixed lowering target either way.
package compiler

import (
	"fmt"

	"github.com/Relz/LL-Parser-Library/internal/table"
	"github.com/Relz/LL-Parser-Library/internal/token"
)

// names used repeatedly below, kept local to avoid a sea of
// token.OpX.String() calls at every call site.
var (
	tInt      = token.KeywordInt.String()
	tFloat    = token.KeywordFloat.String()
	tChar     = token.KeywordChar.String()
	tBool     = token.KeywordBool.String()
	tString   = token.KeywordString.String()
	tIf       = token.KeywordIf.String()
	tElse     = token.KeywordElse.String()
	tWhile    = token.KeywordWhile.String()
	tRead     = token.KeywordRead.String()
	tWrite    = token.KeywordWrite.String()
	tIdent    = token.Identifier.String()
	tIntLit   = token.IntegerLiteral.String()
	tFloatLit = token.FloatLiteral.String()
	tCharLit  = token.CharacterLiteral.String()
	tStrLit   = token.StringLiteral.String()
	tBoolLit  = token.BooleanLiteral.String()
	tAssign   = token.OpAssign.String()
	tPlus     = token.OpPlus.String()
	tMinus    = token.OpMinus.String()
	tStar     = token.OpStar.String()
	tSlash    = token.OpSlash.String()
	tSlash2   = token.OpSlashSlash.String()
	tPercent  = token.OpPercent.String()
	tEq       = token.OpEq.String()
	tNe       = token.OpNe.String()
	tLt       = token.OpLt.String()
	tLe       = token.OpLe.String()
	tGt       = token.OpGt.String()
	tGe       = token.OpGe.String()
	tLParen   = token.OpLParen.String()
	tRParen   = token.OpRParen.String()
	tLBrace   = token.OpLBrace.String()
	tRBrace   = token.OpRBrace.String()
	tLBracket = token.OpLBracket.String()
	tRBracket = token.OpRBracket.String()
	tSemi     = token.OpSemicolon.String()
	tEOF      = token.EOF.String()
)

// binaryOp is one operator-token spelling paired with the reduce action
// that fires once its right-hand operand has been parsed.
type binaryOp struct {
	tok    string
	reduce string
}

// synthesizeBinary reduces the operator leaf and its already-parsed rhs
// operand into one rhsRule node, reduces that alongside the pending lhs
// value into one expr node, and only then fires synthesisAction. The
// registry's template match (the mechanism that actually pops children
// into a parent via Stack.Reduce) only triggers on a literal
// "Create AST node ... using N" name; a bare "Synthesis ..." name is
// dispatched straight to its handler with no reduce first, so it must run
// after the stack is already shaped this way, not before.
func synthesizeBinary(a *assembler, rhsRule, synthesisAction string) item {
	return a.chain(
		a.action(fmt.Sprintf("Create AST node %s using 2", rhsRule)),
		a.action("Create AST node expr using 2"),
		a.action(synthesisAction),
	)
}

// closeBracket reduces the k entries a bracketed or terminated construct
// left on top of the AST stack (the opening/closing leaves plus whatever
// they enclose) into one node named rule, then fires removeAction against
// that node. Firing removeAction straight off the shift that pushed the
// closing leaf would hand it a childless leaf instead.
func closeBracket(a *assembler, rule string, k int, removeAction string) item {
	return a.chain(
		a.action(fmt.Sprintf("Create AST node %s using %d", rule, k)),
		a.action(removeAction),
	)
}

// Build assembles the complete control table for this language: row 1 is
// always the program entry, since driving always starts there.
func Build() *table.CompiledTable {
	a := newAssembler()

	_, resolveProgram := a.hub() // guarantees row 1 == program entry

	exprEntry, exprFirst := buildExprFamily(a)
	stmtEntry, stmtFirst := buildStmt(a, exprEntry, exprFirst)
	stmtListEntry := buildStmtList(a, stmtEntry, stmtFirst)

	program := a.chain(
		item{entry: stmtListEntry}, // nullable: always enter, stmt_list decides for itself
		a.accept(tEOF),
	)
	resolveProgram(program.entry)

	return a.build()
}

// buildExprFamily wires expr/arith_expr/term/factor, the one genuinely
// mutually recursive corner of the grammar: factor re-enters expr for a
// parenthesized sub-expression, and re-enters itself for unary minus.
func buildExprFamily(a *assembler) (entry int, first []string) {
	exprHub, resolveExpr := a.hub()
	factorHub, resolveFactor := a.hub()

	factorFirst := []string{tLParen, tIntLit, tFloatLit, tCharLit, tStrLit, tBoolLit, tIdent, tMinus}
	exprHubItem := item{entry: exprHub, first: factorFirst}
	factorHubItem := item{entry: factorHub, first: factorFirst}

	// factor := '(' expr ')' | int_lit | float_lit | char_lit | string_lit
	//         | bool_lit | identifier | '-' factor
	parenFactor := a.chain(
		a.shift(tLParen, ""),
		exprHubItem,
		a.shift(tRParen, ""),
		closeBracket(a, "paren_factor", 3, "RemoveBracketsAndSynthesis"),
	)
	identFactor := a.chain(
		a.shift(tIdent, ""),
		a.action("CheckIdentifierForExisting"),
		a.action("TryToLoadLlvmValueFromSymbolTable"),
	)
	negFactor := a.chain(
		a.shift(tMinus, ""),
		factorHubItem,
		a.action("SynthesisLastChildren"),
	)
	factorBody := a.choiceTail(
		parenFactor,
		literalFactor(a, tIntLit, "SynthesisIntegerLiteral"),
		literalFactor(a, tFloatLit, "SynthesisFloatLiteral"),
		literalFactor(a, tCharLit, "SynthesisCharacterLiteral"),
		literalFactor(a, tStrLit, "SynthesisStringLiteral"),
		literalFactor(a, tBoolLit, "SynthesisBooleanLiteral"),
		identFactor,
		negFactor,
	)
	resolveFactor(factorBody.entry)
	factorItem := item{entry: factorBody.entry, first: factorBody.first}

	// term := factor (('*' | '/' | '//' | '%') factor)*
	termBody := a.chain(factorItem, buildOpLoop(a, factorItem, []binaryOp{
		{tStar, "Synthesis lhs operator_rhs"},
		{tSlash, "Synthesis lhs operator_rhs"},
		{tSlash2, "Synthesis lhs operator_rhs"},
		{tPercent, "Synthesis lhs operator_rhs"},
	}))
	termItem := item{entry: termBody.entry, first: termBody.first}

	// arith_expr := term (('+' | '-') term)*
	arithBody := a.chain(termItem, buildOpLoop(a, termItem, []binaryOp{
		{tPlus, "Synthesis lhs operator_rhs"},
		{tMinus, "Synthesis lhs operator_rhs"},
	}))
	arithItem := item{entry: arithBody.entry, first: arithBody.first}

	// expr := arith_expr (relop arith_expr)?
	relAlts := make([]item, 0, 6)
	for _, op := range []binaryOp{
		{tEq, "Synthesis lhs relation_rhs"}, {tNe, "Synthesis lhs relation_rhs"},
		{tLt, "Synthesis lhs relation_rhs"}, {tLe, "Synthesis lhs relation_rhs"},
		{tGt, "Synthesis lhs relation_rhs"}, {tGe, "Synthesis lhs relation_rhs"},
	} {
		relAlts = append(relAlts, a.chain(a.shift(op.tok, ""), arithItem, synthesizeBinary(a, "relation_rhs", op.reduce)))
	}
	exprTail := a.optItem(a.choiceTail(relAlts...))
	exprBody := a.chain(arithItem, exprTail)
	resolveExpr(exprBody.entry)

	return exprBody.entry, exprBody.first
}

// buildOpLoop builds "(op rhsOperand reduce)*", returning an item entered
// via starTail: exhausted iterations pop straight back to whichever call
// site entered the loop (term/arith_expr's own caller), since the loop is
// always the tail element of the enclosing level's chain.
func buildOpLoop(a *assembler, rhsOperand item, ops []binaryOp) item {
	alts := make([]item, 0, len(ops))
	for _, op := range ops {
		alts = append(alts, a.chain(a.shift(op.tok, ""), rhsOperand, synthesizeBinary(a, "operator_rhs", op.reduce)))
	}
	choice := a.choiceTail(alts...)
	loop := a.starTail(choice.first, choice.entry)
	return item{entry: loop, first: nil}
}

// literalFactor shifts a literal token and synthesizes its AST leaf.
func literalFactor(a *assembler, tok, synthesisName string) item {
	return a.chain(a.shift(tok, ""), a.action(synthesisName))
}

// buildStmt wires the six statement forms. exprEntry/exprFirst are the
// already-built expr rule.
func buildStmt(a *assembler, exprEntry int, exprFirst []string) (entry int, first []string) {
	exprItem := item{entry: exprEntry, first: exprFirst}

	declStmt := buildDeclStmt(a, exprItem)
	assignStmt := buildAssignStmt(a, exprItem)
	ifStmt := buildIfStmt(a, exprItem)
	whileStmt := buildWhileStmt(a, exprItem)
	readStmt := a.chain(
		a.shift(tRead, ""),
		a.shift(tLParen, ""),
		a.chain(a.shift(tIdent, ""), a.action("CheckIdentifierForExisting")),
		a.shift(tRParen, ""),
		closeBracket(a, "read_args", 3, "RemoveIfRoundBrackets"),
		a.shift(tSemi, ""),
		closeBracket(a, "read_stmt", 2, "RemoveSemicolon"),
		a.action("Create AST node read_call using 1"),
		a.action("Read"),
	)
	writeStmt := a.chain(
		a.shift(tWrite, ""),
		a.shift(tLParen, ""),
		exprItem,
		a.shift(tRParen, ""),
		closeBracket(a, "write_args", 3, "RemoveIfRoundBrackets"),
		a.shift(tSemi, ""),
		closeBracket(a, "write_stmt", 2, "RemoveSemicolon"),
		a.action("Create AST node write_call using 1"),
		a.action("Write"),
	)

	body := a.choiceTail(declStmt, assignStmt, ifStmt, whileStmt, readStmt, writeStmt)
	return body.entry, body.first
}

// buildDeclStmt implements:
//
//	decl_stmt := type_kw identifier ('=' expr | '[' integer_literal ']')? ';'
func buildDeclStmt(a *assembler, exprItem item) item {
	initializer := a.chain(a.shift(tAssign, ""), exprItem)
	arraySize := a.chain(
		a.shift(tLBracket, ""),
		a.shift(tIntLit, ""),
		a.shift(tRBracket, ""),
		closeBracket(a, "array_size", 3, "RemoveBrackets"),
	)
	optSuffix := a.optItem(a.choiceTail(initializer, arraySize))

	identAndCheck := a.chain(a.shift(tIdent, ""), a.action("CheckIdentifierForAlreadyExisting"))
	tail := a.chain(
		identAndCheck,
		optSuffix,
		a.action("ExpandChildrenLastChildren"),
		a.shift(tSemi, ""),
		closeBracket(a, "decl_tail", 2, "RemoveSemicolon"),
		a.action("AddVariableToScope"),
	)

	typeKw := a.choiceTail(
		a.chain(a.shift(tInt, ""), a.action("SynthesisType")),
		a.chain(a.shift(tFloat, ""), a.action("SynthesisType")),
		a.chain(a.shift(tChar, ""), a.action("SynthesisType")),
		a.chain(a.shift(tBool, ""), a.action("SynthesisType")),
		a.chain(a.shift(tString, ""), a.action("SynthesisType")),
	)
	return a.chain(typeKw, tail)
}

// buildAssignStmt implements: assign_stmt := identifier '=' expr ';'
func buildAssignStmt(a *assembler, exprItem item) item {
	return a.chain(
		a.chain(a.shift(tIdent, ""), a.action("CheckIdentifierForExisting")),
		a.shift(tAssign, ""),
		exprItem,
		a.shift(tSemi, ""),
		closeBracket(a, "assign_tail", 2, "RemoveSemicolon"),
		a.action("UpdateVariableInScope"),
	)
}

// pendingBlockResolvers collects the stmt_list-hub resolvers created while
// building if/while statements (both need to call back into stmt_list
// before stmt_list itself exists, since stmt_list is built from stmt).
// buildStmtList points every pending resolver at the real stmt_list entry
// once it is known, then resets the slice to nil so the next Build() call
// starts from an empty list.
var pendingBlockResolvers []func(int)

// buildIfStmt implements:
//
//	if_stmt := 'if' '(' expr ')' '{' stmt_list '}' ('else' '{' stmt_list '}')?
//
// Block scoping/branch wiring is grounded on the semantic handler names
// (CreateIfStatement, StartBlockTrue/False/Previous,
// SavePostIfStatementToPreviousBlocks, GotoPostIfStatementLabel).
func buildIfStmt(a *assembler, exprItem item) item {
	blockHub, resolveBlock := a.hub()
	blockItem := item{entry: blockHub}
	pendingBlockResolvers = append(pendingBlockResolvers, resolveBlock)

	elseBranch := a.chain(
		a.shift(tElse, ""),
		a.shift(tLBrace, ""),
		blockItem,
		a.shift(tRBrace, ""),
		closeBracket(a, "else_block", 3, "RemoveScopeBrackets"),
	)
	tail := a.chain(
		a.action("StartBlockTrue"),
		a.shift(tLBrace, ""),
		blockItem,
		a.shift(tRBrace, ""),
		closeBracket(a, "true_block", 3, "RemoveScopeBrackets"),
		a.action("SavePostIfStatementToPreviousBlocks"),
		a.action("GotoPostIfStatementLabel"),
		a.action("StartBlockFalse"),
		a.optItem(elseBranch),
		a.action("GotoPostIfStatementLabel"),
		a.action("StartBlockPrevious"),
	)
	return a.chain(
		a.shift(tIf, ""),
		a.shift(tLParen, ""),
		exprItem,
		a.shift(tRParen, ""),
		closeBracket(a, "if_cond", 3, "RemoveIfRoundBrackets"),
		a.action("CreateIfStatement"),
		tail,
	)
}

// buildWhileStmt implements:
//
//	while_stmt := 'while' '(' expr ')' '{' stmt_list '}'
//
// grounded on the pre/post-loop handler names (CreateBlockPreWhile,
// GotoBlockPreWhile, StartBlockPreWhile, CreateBlockWhile,
// CreateWhileStatement, StartBlockWhile, EndBlockPreWhile). The keyword
// shift leads so this alternative's FIRST set stays the real 'while'
// spelling; the pre-loop bookkeeping actions fire immediately after it is
// recognized rather than before.
func buildWhileStmt(a *assembler, exprItem item) item {
	blockHub, resolveBlock := a.hub()
	blockItem := item{entry: blockHub}
	pendingBlockResolvers = append(pendingBlockResolvers, resolveBlock)

	return a.chain(
		a.shift(tWhile, ""),
		a.action("CreateBlockPreWhile"),
		a.action("GotoBlockPreWhile"),
		a.action("StartBlockPreWhile"),
		a.shift(tLParen, ""),
		exprItem,
		a.shift(tRParen, ""),
		closeBracket(a, "while_cond", 3, "RemoveIfRoundBrackets"),
		a.action("CreateBlockWhile"),
		a.action("CreateWhileStatement"),
		a.action("StartBlockWhile"),
		a.shift(tLBrace, ""),
		blockItem,
		a.shift(tRBrace, ""),
		closeBracket(a, "while_block", 3, "RemoveScopeBrackets"),
		a.action("EndBlockPreWhile"),
		a.action("StartBlockPrevious"),
	)
}

// buildStmtList implements: stmt_list := stmt stmt_list | epsilon, with
// CreateScope/DestroyScope bracketing the whole list the way a compound
// statement's block scope does.
func buildStmtList(a *assembler, stmtEntry int, stmtFirst []string) int {
	innerHub, resolveInner := a.hub()
	stmtItem := item{entry: stmtEntry, first: stmtFirst}
	listBody := a.chain(stmtItem, item{entry: innerHub})
	loop := a.star(stmtFirst, listBody.entry, a.action("Nothing").entry)
	resolveInner(loop)

	scoped := a.chain(a.action("CreateScope"), item{entry: loop}, a.action("DestroyScope"))

	for _, resolve := range pendingBlockResolvers {
		resolve(scoped.entry)
	}
	pendingBlockResolvers = nil
	return scoped.entry
}
