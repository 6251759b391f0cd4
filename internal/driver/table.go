// Package driver is the table-driven LL engine: the shift/reduce-like loop
// that consumes tokens, drives the AST stack, and fires the action
// registry's pre-shift and post-reduce handlers. It is grounded on
// vartan's driver/parser.Parser.Parse() loop shape (a state-stack walk
// over a compiled table, firing semantic actions at shift time) but drives
// a call stack of return row ids rather than a shift/reduce stack of
// grammar states, in place of vartan's LALR shift/reduce.
//
// The control table itself (Row/Table) lives in internal/table, the
// JSON-loadable representation grounded on vartan's CompiledGrammar
// round-trip; this package only consumes that interface.
package driver

import (
	"github.com/Relz/LL-Parser-Library/internal/table"
)

// Row and Table are the shapes internal/table.Row/Table take; aliased here
// so callers of this package don't need a second import for the common
// case of driving straight off a loaded table.
type Row = table.Row
type Table = table.Table
