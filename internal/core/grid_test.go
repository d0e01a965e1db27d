package core

import (
	"slices"
	"testing"
)

func TestNewFieldRejectsInvalidSize(t *testing.T) {
	for _, n := range []int{0, -1, -32} {
		if f, err := NewField(n, 2); err == nil || f != nil {
			t.Fatalf("size %d should be rejected", n)
		}
	}
	if _, err := NewField(4, 1); err == nil {
		t.Fatal("a single state should be rejected")
	}
	f, err := NewField(3, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Cells()) != 9 || f.N() != 3 || f.States() != 4 {
		t.Fatalf("unexpected field %d×%d k=%d", f.N(), f.N(), f.States())
	}
}

func TestGetSetWrap(t *testing.T) {
	f, _ := NewField(5, 4)
	f.Set(-1, -1, 3)
	if got := f.Get(4, 4); got != 3 {
		t.Fatalf("(-1,-1) should alias (4,4), got %d", got)
	}
	f.Set(7, 12, 2)
	if got := f.Get(2, 2); got != 2 {
		t.Fatalf("(7,12) should alias (2,2), got %d", got)
	}
	f.Set(0, 0, 9)
	if got := f.Get(0, 0); got != 1 {
		t.Fatalf("out of range state should reduce modulo K, got %d", got)
	}
}

func TestNeighborsWrapAtBoundary(t *testing.T) {
	const n = 6
	f, _ := NewField(n, 2)
	for _, shape := range []Shape{VonNeumann, Diamond} {
		want := shape.Count()
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				if got := len(f.Neighbors(x, y, shape, nil)); got != want {
					t.Fatalf("%v at (%d,%d): %d neighbors, want %d", shape, x, y, got, want)
				}
			}
		}
	}
	if VonNeumann.Count() != 4 || Diamond.Count() != 12 {
		t.Fatalf("counts: von neumann %d, diamond %d", VonNeumann.Count(), Diamond.Count())
	}

	// Mark the two cells that (0,0) reaches only through wrap-around.
	f.Set(n-1, 0, 1)
	f.Set(0, n-1, 1)
	got := f.Neighbors(0, 0, VonNeumann, nil)
	ones := 0
	for _, s := range got {
		ones += int(s)
	}
	if ones != 2 {
		t.Fatalf("(0,0) should see (N-1,0) and (0,N-1), got %v", got)
	}

	f.Clear()
	f.Set(n-2, 0, 1)
	f.Set(0, n-2, 1)
	f.Set(n-1, n-1, 1)
	got = f.Neighbors(0, 0, Diamond, nil)
	ones = 0
	for _, s := range got {
		ones += int(s)
	}
	if ones != 3 {
		t.Fatalf("diamond at (0,0) should reach the radius-2 wrapped cells, got %v", got)
	}
}

func TestNeighborsReusesBuffer(t *testing.T) {
	f, _ := NewField(4, 2)
	buf := make([]uint8, 0, 12)
	buf = f.Neighbors(1, 1, VonNeumann, buf[:0])
	buf = f.Neighbors(2, 2, VonNeumann, buf[:0])
	if len(buf) != 4 {
		t.Fatalf("got %d", len(buf))
	}
}

func TestSwapCloneEqual(t *testing.T) {
	f, _ := NewField(3, 2)
	f.Set(1, 1, 1)
	c := f.Clone()
	if !f.Equal(c) {
		t.Fatal("clone should be equal")
	}
	next := make([]uint8, 9)
	old := f.Swap(next)
	if old[4] != 1 || f.Get(1, 1) != 0 {
		t.Fatal("swap should install the new buffer and return the old")
	}
	if f.Equal(c) {
		t.Fatal("fields should differ after swap")
	}
	if !slices.Equal(c.Cells(), old) {
		t.Fatal("clone must not share the buffer")
	}
}

func TestShapeFromRadius(t *testing.T) {
	if s, ok := ShapeFromRadius(1); !ok || s != VonNeumann {
		t.Fatal("radius 1")
	}
	if s, ok := ShapeFromRadius(2); !ok || s != Diamond {
		t.Fatal("radius 2")
	}
	if _, ok := ShapeFromRadius(3); ok {
		t.Fatal("radius 3 should be rejected")
	}
}
