package table

import "testing"

func TestCompiledTable_GetRow(t *testing.T) {
	ct := FromRows([]Row{
		{ID: 1, ReferencingSet: []string{"int"}, NextID: 2},
		{ID: 2, IsEnd: true},
	})

	row, ok := ct.GetRow(1)
	if !ok || !row.References("int") {
		t.Fatalf("GetRow(1) = %+v, %v; want a row referencing \"int\"", row, ok)
	}

	if _, ok := ct.GetRow(99); ok {
		t.Fatalf("GetRow(99) = found, want not found")
	}

	if _, ok := ct.GetRow(0); ok {
		t.Fatalf("GetRow(0) = found, want not found (row ids are 1-based)")
	}
}

func TestRow_References(t *testing.T) {
	r := &Row{ReferencingSet: []string{"a", "b"}}
	if !r.References("a") {
		t.Fatalf("References(a) = false, want true")
	}
	if r.References("c") {
		t.Fatalf("References(c) = true, want false")
	}
}
