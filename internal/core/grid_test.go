package core

import "testing"

func TestLayerIndexRowMajor(t *testing.T) {
	l := NewLayer[int](4, 3)
	l.Set(3, 2, 9)
	if got := l.Cells()[2*4+3]; got != 9 {
		t.Fatalf("row-major slot = %d, want 9", got)
	}
	if got := l.At(3, 2); got != 9 {
		t.Fatalf("At = %d, want 9", got)
	}
}

func TestLayerOutOfBoundsPanics(t *testing.T) {
	l := NewLayer[uint8](2, 2)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-bounds access")
		}
	}()
	l.At(2, 0)
}

func TestLayerCountFillRows(t *testing.T) {
	l := NewLayer[string](3, 2)
	l.Fill("a")
	l.Set(1, 1, "b")
	if got := l.Count("a"); got != 5 {
		t.Fatalf("count = %d, want 5", got)
	}
	rows := l.Rows()
	if len(rows) != 2 || len(rows[1]) != 3 || rows[1][1] != "b" {
		t.Fatalf("rows = %v", rows)
	}
	rows[0][0] = "z"
	if l.At(0, 0) != "a" {
		t.Fatal("Rows must copy")
	}
}

func TestNewLayerClampsDimensions(t *testing.T) {
	l := NewLayer[int](0, -3)
	if l.W != 1 || l.H != 1 || len(l.Cells()) != 1 {
		t.Fatalf("unexpected layer %dx%d", l.W, l.H)
	}
}
