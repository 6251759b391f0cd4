// Package symtab is the persistent indexed store of declared names. Rows
// are addressed by a stable, monotonically assigned index;
// removal tombstones the row instead of shifting it, so indices already
// handed out (e.g. held by an AST node's computed reference) never go
// stale or get reused.
package symtab

// ArrayInfo records the ordered dimension sizes of an array declaration.
type ArrayInfo struct {
	Dimensions []int
}

// Row is one symbol-table entry: a declared name's type, its opaque IR
// handle, and, for arrays, its dimensions.
type Row struct {
	Type      string
	Name      string
	IRHandle  any
	ArrayInfo *ArrayInfo

	tombstoned bool
}

// Table is the append-only, tombstoning symbol table.
type Table struct {
	rows []Row
}

// New returns an empty symbol table.
func New() *Table {
	return &Table{}
}

// CreateRow appends a row and returns its 0-based index. There is no
// uniqueness check here; that is scope.Stack.Declare's duty.
func (t *Table) CreateRow(typ, name string, irHandle any, dims []int) int {
	row := Row{Type: typ, Name: name, IRHandle: irHandle}
	if len(dims) > 0 {
		d := make([]int, len(dims))
		copy(d, dims)
		row.ArrayInfo = &ArrayInfo{Dimensions: d}
	}
	t.rows = append(t.rows, row)
	return len(t.rows) - 1
}

// RemoveRow tombstones the row at index, clearing its fields but leaving
// the index itself addressable (it will just report as not-found via Get).
// Reports false if index is out of range.
func (t *Table) RemoveRow(index int) bool {
	if index < 0 || index >= len(t.rows) {
		return false
	}
	t.rows[index] = Row{tombstoned: true}
	return true
}

// Get returns a copy of the row at index, or false if index is out of
// range or the row has been tombstoned.
func (t *Table) Get(index int) (Row, bool) {
	if index < 0 || index >= len(t.rows) {
		return Row{}, false
	}
	row := t.rows[index]
	if row.tombstoned {
		return Row{}, false
	}
	return row, true
}
