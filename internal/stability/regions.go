package stability

// Region is a 4-connected, wrap-aware set of stable cells.
type Region struct {
	State uint8
	Cells []int
}

// Side names the border of a cell an outline edge runs along.
type Side uint8

const (
	// SideTop is the border toward y-1.
	SideTop Side = iota
	// SideLeft is the border toward x-1.
	SideLeft
	// SideRight is the border toward x+1.
	SideRight
	// SideBottom is the border toward y+1.
	SideBottom
)

// Edge is one cell border to be drawn as part of a region outline.
type Edge struct {
	X, Y int
	Side Side
}

var sideOffsets = [4]struct {
	dx, dy int
	side   Side
}{
	{0, -1, SideTop},
	{-1, 0, SideLeft},
	{1, 0, SideRight},
	{0, 1, SideBottom},
}

// ExtractStableRegions flood-fills the cells whose EMA is at or below
// threshold on an n×n torus and keeps components of at least minSize cells.
// When states is non-nil two neighbors only join if they hold the same state.
// Regions come back ordered by their lowest cell index.
func ExtractStableRegions(ema []float64, states []uint8, n int, threshold float64, minSize int) []Region {
	total := n * n
	if n <= 0 || len(ema) < total {
		return nil
	}
	visited := make([]bool, total)
	var regions []Region
	queue := make([]int, 0, 64)
	for start := 0; start < total; start++ {
		if visited[start] || ema[start] > threshold {
			continue
		}
		visited[start] = true
		queue = append(queue[:0], start)
		var state uint8
		if states != nil {
			state = states[start]
		}
		// The queue doubles as the member list: head walks it, tail grows.
		for head := 0; head < len(queue); head++ {
			i := queue[head]
			x, y := i%n, i/n
			for _, off := range sideOffsets {
				j := wrapIndex(x+off.dx, y+off.dy, n)
				if visited[j] || ema[j] > threshold {
					continue
				}
				if states != nil && states[j] != state {
					continue
				}
				visited[j] = true
				queue = append(queue, j)
			}
		}
		if len(queue) < minSize {
			continue
		}
		regions = append(regions, Region{State: state, Cells: append([]int(nil), queue...)})
	}
	return regions
}

// Outline returns the cell borders where a region meets a cell that is not
// part of the same region: unstable cells, dropped islands or other regions.
func Outline(regions []Region, n int) []Edge {
	if n <= 0 {
		return nil
	}
	owner := make([]int32, n*n)
	for ri, r := range regions {
		for _, i := range r.Cells {
			owner[i] = int32(ri + 1)
		}
	}
	var edges []Edge
	for ri, r := range regions {
		id := int32(ri + 1)
		for _, i := range r.Cells {
			x, y := i%n, i/n
			for _, off := range sideOffsets {
				if owner[wrapIndex(x+off.dx, y+off.dy, n)] != id {
					edges = append(edges, Edge{X: x, Y: y, Side: off.side})
				}
			}
		}
	}
	return edges
}

func wrapIndex(x, y, n int) int {
	x = (x%n + n) % n
	y = (y%n + n) % n
	return y*n + x
}
