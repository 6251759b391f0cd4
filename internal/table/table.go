// Package table is the LL-table model and loader, the external collaborator
// an LL parser drives against. Row fields mirror
// original_source/LLParser.cpp's TableRow exactly (referencingSet,
// pushToStack, nextId, doShift, isEnd, isError), and the JSON
// (de)serialization follows vartan's CompiledGrammar round-trip
// (cmd/vartan/parse.go's readCompiledGrammar: encoding/json straight into a
// plain struct, no third-party codec).
package table

import (
	"encoding/json"
	"fmt"
	"io"
)

// Row is one row of the LL control table, addressed by a 1-based row id.
type Row struct {
	ID             int      `json:"id"`
	ReferencingSet []string `json:"referencing_set"`
	NextID         int      `json:"next_id"`
	PushID         int      `json:"push_id"`
	DoShift        bool     `json:"do_shift"`
	IsEnd          bool     `json:"is_end"`
	IsError        bool     `json:"is_error"`
	ActionName     string   `json:"action_name"`
}

// References reports whether tok is in the row's referencing set.
func (r *Row) References(tok string) bool {
	for _, t := range r.ReferencingSet {
		if t == tok {
			return true
		}
	}
	return false
}

// Table is the interface internal/driver consumes: get_row(id) returns a
// row or none. Row id 1 is the start state.
type Table interface {
	GetRow(id int) (*Row, bool)
}

// CompiledTable is a JSON-serializable Table backed by a plain slice,
// indexed by row id (1-based; index 0 is unused padding).
type CompiledTable struct {
	Rows []Row `json:"rows"`
}

var _ Table = &CompiledTable{}

// GetRow implements Table.
func (t *CompiledTable) GetRow(id int) (*Row, bool) {
	if id <= 0 || id >= len(t.Rows) {
		return nil, false
	}
	row := t.Rows[id]
	if row.ID == 0 {
		return nil, false
	}
	return &row, true
}

// Load reads a CompiledTable from its JSON representation.
func Load(r io.Reader) (*CompiledTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read compiled table: %w", err)
	}
	var t CompiledTable
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode compiled table: %w", err)
	}
	return &t, nil
}

// Write serializes t as JSON to w.
func Write(w io.Writer, t *CompiledTable) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// FromRows builds a CompiledTable from a set of rows addressed by their own
// ID field, padding any gaps; used by internal/compiler once it has
// constructed every row of the fixed grammar.
func FromRows(rows []Row) *CompiledTable {
	maxID := 0
	for _, r := range rows {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	slice := make([]Row, maxID+1)
	for _, r := range rows {
		slice[r.ID] = r
	}
	return &CompiledTable{Rows: slice}
}
