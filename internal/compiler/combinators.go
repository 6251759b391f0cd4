package compiler

import "github.com/Relz/LL-Parser-Library/internal/table"

// assembler accumulates control-table rows under sequentially allocated ids.
// It mirrors, at a much smaller scale, the way vartan's grammar
// compiler lowers productions into table rows; here the productions are
// fixed by this language's syntax instead of a parsed grammar file, so the
// lowering happens directly in Go (grammar.go) instead of from a grammar
// description file.
type assembler struct {
	rows []table.Row
}

func newAssembler() *assembler {
	return &assembler{}
}

// reserve allocates the next row id without filling it in yet, for the
// forward references mutually recursive rules need (expr/arith_expr/term/
// factor all call back into each other, and if/while call back into
// stmt_list before stmt_list itself is built).
func (a *assembler) reserve() int {
	id := len(a.rows) + 1
	a.rows = append(a.rows, table.Row{ID: id})
	return id
}

func (a *assembler) fill(id int, r table.Row) {
	r.ID = id
	a.rows[id-1] = r
}

func (a *assembler) build() *table.CompiledTable {
	return table.FromRows(a.rows)
}

// item is a built rule fragment: callers need only its entry row id and its
// FIRST set (the token spellings that legally start it) to splice it into a
// larger sequence or choice. An item with a nil first set is understood to
// be unconditionally enterable (a pure action, or another construct whose
// own internal rows already gate on the lookahead).
type item struct {
	entry int
	first []string
}

// action appends a token-free row: entering it always runs (branch 4 of the
// driving loop is entered unconditionally, since action_name is non-empty)
// and, having no PushID/NextID of its own, immediately pops back to
// whichever call site invoked it, dispatching name in post-reduce mode.
// This is the mechanism for firing a semantic handler that doesn't itself
// correspond to consuming a token (CreateScope, AddVariableToScope, the
// control-flow block actions, and so on).
func (a *assembler) action(name string) item {
	id := a.reserve()
	a.fill(id, table.Row{ActionName: name})
	return item{entry: id, first: nil}
}

// shift appends a single-token row: it matches only tok, consumes it, and
// pops back to its caller (firing name in post-reduce mode, often "" for a
// bare terminal with no handler of its own).
func (a *assembler) shift(tok string, name string) item {
	id := a.reserve()
	a.fill(id, table.Row{ReferencingSet: []string{tok}, DoShift: true, ActionName: name})
	return item{entry: id, first: []string{tok}}
}

// accept appends the row marking grammar acceptance: reaching it with an
// empty call stack and tok as the lookahead ends the parse successfully.
// Exactly one row in the whole table should carry is_end; program's
// trailing EOF is it.
func (a *assembler) accept(tok string) item {
	id := a.reserve()
	a.fill(id, table.Row{ReferencingSet: []string{tok}, IsEnd: true})
	return item{entry: id, first: []string{tok}}
}

// goTo appends an unconditional jump to target: "Nothing" is registered as
// an ignored action name in both dispatch modes (internal/semantic's
// Register), so this row is a pure control-flow hop with no diagnostic
// noise and no dependence on the current lookahead.
func (a *assembler) goTo(target int) int {
	id := a.reserve()
	a.fill(id, table.Row{ActionName: "Nothing", NextID: target})
	return id
}

// hub reserves a row id to stand in for a rule whose body is defined later.
// resolve must be called once the real entry is known; until then the hub
// forwards to nothing and must not be reached.
func (a *assembler) hub() (id int, resolve func(realEntry int)) {
	id = a.reserve()
	return id, func(realEntry int) {
		a.fill(id, table.Row{ActionName: "Nothing", NextID: realEntry})
	}
}

// launcherRow fills a row that, when reached, enters it (pushing pushID
// when non-zero, then jumping to target): gated on first when first is
// non-empty, or unconditional (via the ignored "Nothing" action name) when
// first is empty, since an empty first set means the wrapped item is
// itself a pure action or already self-gating.
func (a *assembler) launcherRow(id int, first []string, pushID, target int) {
	if len(first) == 0 {
		a.fill(id, table.Row{ActionName: "Nothing", PushID: pushID, NextID: target})
		return
	}
	a.fill(id, table.Row{ReferencingSet: first, PushID: pushID, NextID: target})
}

// chain splices a fixed sequence of items end to end: item[i]'s completion
// resumes at item[i+1]'s launcher, except the last item, which is entered
// directly (a tail call) so that its own completion pops back to whatever
// called the whole chain. Every launcher gated on a FIRST set is followed by
// an is_error row, so a lookahead outside that set ends the parse as a
// syntax error. The returned item's FIRST set is items[0]'s.
func (a *assembler) chain(items ...item) item {
	if len(items) == 0 {
		panic("compiler: empty chain")
	}
	cur := items[len(items)-1].entry
	for i := len(items) - 2; i >= 0; i-- {
		it := items[i]
		launcher := a.reserve()
		if len(it.first) > 0 {
			a.fill(a.reserve(), table.Row{IsError: true})
		}
		a.launcherRow(launcher, it.first, cur, it.entry)
		cur = launcher
	}
	return item{entry: cur, first: items[0].first}
}

// choiceTail lays out one launcher row per alternative, in order,
// immediately followed by a trailing is_error row, and tail-calls whichever
// alternative matches (no extra frame is pushed, so that alternative's own
// completion pops back to whoever called the whole choice). A lookahead
// outside every alternative falls through launcher-by-launcher (the
// driver's plain row_id++ step) until it reaches the error row, so any
// alternative with an empty (unconditional) first set must be listed last.
func (a *assembler) choiceTail(alts ...item) item {
	ids := make([]int, len(alts))
	for i := range alts {
		ids[i] = a.reserve()
	}
	errRow := a.reserve()
	for i, alt := range alts {
		a.launcherRow(ids[i], alt.first, 0, alt.entry)
	}
	a.fill(errRow, table.Row{IsError: true})

	var allFirst []string
	for _, alt := range alts {
		allFirst = append(allFirst, alt.first...)
	}
	return item{entry: ids[0], first: allFirst}
}

// optItem wraps body as an optional occurrence: present when the lookahead
// is in body's own first set, absent (epsilon, no token consumed)
// otherwise. Its own first set is deliberately nil, so an enclosing chain
// or choiceTail always enters it unconditionally and lets this construct's
// internal gating decide for itself.
func (a *assembler) optItem(body item) item {
	epsilon := a.action("Nothing")
	return item{entry: a.choiceTail(body, epsilon).entry, first: nil}
}

// star repeats body zero or more times while the lookahead is in
// bodyFirst, then falls through to exitK via an unconditional jump (no
// pop): appropriate when what comes next is a fixed further step within
// the same rule, such as stmt_list's closing DestroyScope.
func (a *assembler) star(bodyFirst []string, bodyEntry, exitK int) int {
	loop := a.reserve()
	a.fill(loop, table.Row{ReferencingSet: bodyFirst, PushID: loop, NextID: bodyEntry})
	a.goTo(exitK) // reserved immediately after loop; the non-matching fallthrough lands here
	return loop
}

// starTail is star's tail-call counterpart: once the lookahead falls
// outside bodyFirst, it pops back to whichever call site entered the
// repetition in the first place, instead of jumping to a fixed row. This
// is what arith_expr/term need for their trailing operator loops, since
// what comes "after the loop" is simply "return to the caller".
func (a *assembler) starTail(bodyFirst []string, bodyEntry int) int {
	loop := a.reserve()
	a.action("Nothing") // reserved immediately after loop; its pop is where the non-matching fallthrough lands
	a.fill(loop, table.Row{ReferencingSet: bodyFirst, PushID: loop, NextID: bodyEntry})
	return loop
}
