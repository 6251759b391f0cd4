package driver

import (
	"fmt"
	"sort"

	"github.com/Relz/LL-Parser-Library/internal/action"
	"github.com/Relz/LL-Parser-Library/internal/ast"
	"github.com/Relz/LL-Parser-Library/internal/diag"
	"github.com/Relz/LL-Parser-Library/internal/ir"
	"github.com/Relz/LL-Parser-Library/internal/lexer"
	"github.com/Relz/LL-Parser-Library/internal/token"
)

// Result is the driver's public outcome: the acceptance/fail-index/
// expected-tokens triple, reshaped into an idiomatic return value instead
// of output parameters.
type Result struct {
	Accepted       bool
	FailIndex      int
	ExpectedTokens []string
}

// Driver is the LL control-table walker. It owns the call stack and the
// current-token cursor; the AST stack, scope stack, symbol table and IR
// builder it drives are owned by whatever constructed its action.Registry.
type Driver struct {
	table   Table
	tokens  lexer.Source
	stack   *ast.Stack
	reg     *action.Registry
	out     *diag.Printer
	emitter ir.Emitter // optional; nil is legal for a parse-only driver
}

// New returns a Driver reading tokens from src, driving stack through reg
// against table. emitter may be nil when the caller only wants acceptance
// checking without the final-return emission.
func New(table Table, src lexer.Source, stack *ast.Stack, reg *action.Registry, out *diag.Printer, emitter ir.Emitter) *Driver {
	return &Driver{table: table, tokens: src, stack: stack, reg: reg, out: out, emitter: emitter}
}

// Run executes the LL driving loop to completion: either acceptance, a
// syntax error (entering an is_error row), a semantic-soft failure (a
// handler returning false), or a Go error for the two internal-fatal
// conditions (a null row, or an empty call stack at a required pop).
func (d *Driver) Run() (Result, error) {
	rowID := 1
	var callStack []int
	tokenIndex := -1

	nextToken := func() (token.Token, error) {
		tok, err := d.tokens.Next()
		tokenIndex++
		return tok, err
	}

	tok, err := nextToken()
	if err != nil {
		return Result{}, fmt.Errorf("driver: reading first token: %w", err)
	}

	for {
		row, ok := d.table.GetRow(rowID)
		if !ok {
			return Result{}, fmt.Errorf("driver: row %d does not exist", rowID)
		}

		if shiftOK, err := d.reg.ResolvePreShift(row.ActionName); err != nil {
			return Result{}, err
		} else if !shiftOK {
			return Result{Accepted: false, FailIndex: tokenIndex}, nil
		}

		if tok.Kind == token.Comment {
			tok, err = nextToken()
			if err != nil {
				return Result{}, fmt.Errorf("driver: reading token at index %d: %w", tokenIndex, err)
			}
			continue
		}

		if row.References(tok.Kind.String()) || row.ActionName != "" {
			if row.IsEnd && len(callStack) == 0 {
				d.pushLeaf(tok)
				if ok, err := d.reg.ResolvePostReduce(row.ActionName); err != nil {
					return Result{}, err
				} else if !ok {
					return Result{Accepted: false, FailIndex: tokenIndex}, nil
				}
				d.onAccept()
				return Result{Accepted: true}, nil
			}

			if row.DoShift {
				d.pushLeaf(tok)
				tok, err = nextToken()
				if err != nil {
					return Result{}, fmt.Errorf("driver: reading token at index %d: %w", tokenIndex, err)
				}
			} else if row.PushID != 0 {
				callStack = append(callStack, row.PushID)
			}

			if row.NextID != 0 {
				rowID = row.NextID
			} else {
				if len(callStack) == 0 {
					return Result{}, fmt.Errorf("driver: call stack underflow at row %d", rowID)
				}
				rowID, callStack = callStack[len(callStack)-1], callStack[:len(callStack)-1]
				if ok, err := d.reg.ResolvePostReduce(row.ActionName); err != nil {
					return Result{}, err
				} else if !ok {
					return Result{Accepted: false, FailIndex: tokenIndex}, nil
				}
			}
			continue
		}

		if row.IsError {
			return Result{
				Accepted:       false,
				FailIndex:      tokenIndex,
				ExpectedTokens: d.expectedTokens(rowID, row),
			}, nil
		}

		rowID++
	}
}

// pushLeaf pushes a terminal AST leaf for tok: name is the token's kind
// spelling, declared_type and computed_type both equal that name, and
// lexeme is the token's raw text.
func (d *Driver) pushLeaf(tok token.Token) {
	name := tok.Kind.String()
	d.stack.Push(&ast.Node{
		Name:         name,
		DeclaredType: name,
		ComputedType: name,
		Lexeme:       tok.Lexeme,
	})
}

// onAccept terminates the main IR basic block with a return of integer 0,
// the one piece of IR emission that belongs to the driver itself rather
// than to a semantic handler. Handing the finished module off to an
// execution engine is the embedder's job (internal/ir.Finalize/Engine.Run),
// since Driver only depends on the narrow ir.Emitter interface, not a
// concrete module.
func (d *Driver) onAccept() {
	if d.emitter == nil {
		return
	}
	zero, err := d.emitter.CreateConstant(ir.TypeInteger, "0")
	if err != nil {
		return
	}
	d.emitter.CreateRet(zero)
}

// expectedTokens computes the union of the referencing sets of errorRow
// and every preceding row belonging to the same error block, walking back
// while rows are non-error.
func (d *Driver) expectedTokens(errorRowID int, errorRow *Row) []string {
	seen := map[string]bool{}
	for _, name := range errorRow.ReferencingSet {
		seen[name] = true
	}
	for id := errorRowID - 1; id >= 1; id-- {
		row, ok := d.table.GetRow(id)
		if !ok || row.IsError {
			break
		}
		for _, name := range row.ReferencingSet {
			seen[name] = true
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
