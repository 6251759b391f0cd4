package ast

import "testing"

func TestStack_PushPopTop(t *testing.T) {
	s := NewStack()
	s.Push(&Node{Name: "a"})
	s.Push(&Node{Name: "b"})

	top, ok := s.Top()
	if !ok || top.Name != "b" {
		t.Fatalf("Top() = %v, %v; want b, true", top, ok)
	}

	n, ok := s.Pop()
	if !ok || n.Name != "b" {
		t.Fatalf("Pop() = %v, %v; want b, true", n, ok)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() after one pop = %d, want 1", s.Len())
	}
}

func TestStack_ReduceOrdersChildrenLeftToRight(t *testing.T) {
	s := NewStack()
	s.Push(&Node{Name: "lhs"})
	s.Push(&Node{Name: "op"})
	s.Push(&Node{Name: "rhs"})

	n, err := s.Reduce("expr", 3)
	if err != nil {
		t.Fatalf("Reduce() error: %v", err)
	}
	if n.Name != "expr" || len(n.Children) != 3 {
		t.Fatalf("Reduce() = %+v, want 3 children named expr", n)
	}
	want := []string{"lhs", "op", "rhs"}
	for i, c := range n.Children {
		if c.Name != want[i] {
			t.Fatalf("Children[%d].Name = %v, want %v (must preserve left-to-right order)", i, c.Name, want[i])
		}
	}
	if s.Len() != 1 {
		t.Fatalf("Len() after Reduce = %d, want 1 (parent replaces children on stack)", s.Len())
	}
}

func TestStack_ReduceInsufficientOperands(t *testing.T) {
	s := NewStack()
	s.Push(&Node{Name: "only"})

	_, err := s.Reduce("expr", 3)
	if err == nil {
		t.Fatalf("Reduce() with too few operands = nil error, want InsufficientOperands")
	}
	if _, ok := err.(*InsufficientOperands); !ok {
		t.Fatalf("Reduce() error type = %T, want *InsufficientOperands", err)
	}
}

func TestStack_ReduceZero(t *testing.T) {
	s := NewStack()
	n, err := s.Reduce("empty", 0)
	if err != nil {
		t.Fatalf("Reduce(rule, 0) error: %v", err)
	}
	if len(n.Children) != 0 {
		t.Fatalf("Reduce(rule, 0).Children = %v, want empty", n.Children)
	}
}

func TestStack_At(t *testing.T) {
	s := NewStack()
	s.Push(&Node{Name: "a"})
	s.Push(&Node{Name: "b"})
	s.Push(&Node{Name: "c"})

	n, ok := s.At(2)
	if !ok || n.Name != "a" {
		t.Fatalf("At(2) = %v, %v; want a, true", n, ok)
	}
	if _, ok := s.At(3); ok {
		t.Fatalf("At(3) past the bottom = found, want not found")
	}
}
