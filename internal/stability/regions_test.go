package stability

import (
	"slices"
	"testing"
)

func emaWith(n int, stable []int) []float64 {
	ema := make([]float64, n*n)
	for i := range ema {
		ema[i] = 1
	}
	for _, i := range stable {
		ema[i] = 0
	}
	return ema
}

func TestRegionsMinSizeBoundary(t *testing.T) {
	const n = 8
	// A 2×2 block (4 cells) and an isolated 3-cell bar.
	block := []int{0*n + 1, 0*n + 2, 1*n + 1, 1*n + 2}
	bar := []int{5*n + 3, 5*n + 4, 5*n + 5}
	ema := emaWith(n, append(slices.Clone(block), bar...))

	got := ExtractStableRegions(ema, nil, n, 0.05, 4)
	if len(got) != 1 {
		t.Fatalf("min 4: got %d regions", len(got))
	}
	cells := slices.Sorted(slices.Values(got[0].Cells))
	if !slices.Equal(cells, block) {
		t.Fatalf("kept %v", cells)
	}

	got = ExtractStableRegions(ema, nil, n, 0.05, 3)
	if len(got) != 2 {
		t.Fatalf("min 3: got %d regions", len(got))
	}
	if len(got[1].Cells) != 3 {
		t.Fatalf("bar has %d cells", len(got[1].Cells))
	}
}

func TestRegionsWrapAcrossEdges(t *testing.T) {
	const n = 6
	// Cells on the left and right columns of row 2 touch through the seam.
	ema := emaWith(n, []int{2*n + 0, 2*n + n - 1, 0*n + 3, (n-1)*n + 3})
	got := ExtractStableRegions(ema, nil, n, 0.05, 1)
	if len(got) != 2 {
		t.Fatalf("got %d regions: %+v", len(got), got)
	}
	for _, r := range got {
		if len(r.Cells) != 2 {
			t.Fatalf("region %v should join across the seam", r.Cells)
		}
	}
}

func TestRegionsSplitByState(t *testing.T) {
	const n = 4
	ema := make([]float64, n*n)
	states := make([]uint8, n*n)
	for y := 0; y < n; y++ {
		for x := n / 2; x < n; x++ {
			states[y*n+x] = 1
		}
	}
	got := ExtractStableRegions(ema, states, n, 0.05, 1)
	if len(got) != 2 {
		t.Fatalf("got %d regions", len(got))
	}
	if got[0].State != 0 || got[1].State != 1 {
		t.Fatalf("states %d %d", got[0].State, got[1].State)
	}
	if len(got[0].Cells) != 8 || len(got[1].Cells) != 8 {
		t.Fatalf("sizes %d %d", len(got[0].Cells), len(got[1].Cells))
	}
	// Without states the whole stable torus is one region.
	if got := ExtractStableRegions(ema, nil, n, 0.05, 1); len(got) != 1 || len(got[0].Cells) != n*n {
		t.Fatalf("stateless extraction: %+v", got)
	}
}

func TestRegionsEmptyWhenNothingStable(t *testing.T) {
	ema := emaWith(5, nil)
	if got := ExtractStableRegions(ema, nil, 5, 0.05, 1); len(got) != 0 {
		t.Fatalf("got %d regions", len(got))
	}
}

func TestOutlineSingleCell(t *testing.T) {
	const n = 5
	edges := Outline([]Region{{Cells: []int{2*n + 2}}}, n)
	if len(edges) != 4 {
		t.Fatalf("a lone cell has 4 borders, got %d", len(edges))
	}
	sides := map[Side]bool{}
	for _, e := range edges {
		if e.X != 2 || e.Y != 2 {
			t.Fatalf("edge at (%d,%d)", e.X, e.Y)
		}
		sides[e.Side] = true
	}
	if len(sides) != 4 {
		t.Fatalf("sides %v", sides)
	}
}

func TestOutlineSkipsInteriorAndWrappedBorders(t *testing.T) {
	const n = 4
	// A full row wraps onto itself: only top and bottom borders remain.
	var row []int
	for x := 0; x < n; x++ {
		row = append(row, 1*n+x)
	}
	edges := Outline([]Region{{Cells: row}}, n)
	if len(edges) != 2*n {
		t.Fatalf("got %d edges", len(edges))
	}
	for _, e := range edges {
		if e.Side == SideLeft || e.Side == SideRight {
			t.Fatalf("unexpected side border %+v", e)
		}
	}
	// Two adjacent regions still outline their shared border.
	edges = Outline([]Region{{Cells: []int{0}}, {Cells: []int{1}}}, n)
	if len(edges) != 8 {
		t.Fatalf("got %d edges", len(edges))
	}
}
