package core

import (
	"fmt"
	"slices"
)

// Shape selects the neighborhood read around a cell.
type Shape uint8

const (
	// VonNeumann is the radius-1 cross: four orthogonal neighbors.
	VonNeumann Shape = 1
	// Diamond is the radius-2 diamond: every cell within Manhattan distance 2,
	// twelve neighbors in total.
	Diamond Shape = 2
)

var (
	vonNeumannOffsets = [][2]int{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}
	diamondOffsets    = [][2]int{
		{0, -2},
		{-1, -1}, {0, -1}, {1, -1},
		{-2, 0}, {-1, 0}, {1, 0}, {2, 0},
		{-1, 1}, {0, 1}, {1, 1},
		{0, 2},
	}
)

// ShapeFromRadius maps a configured radius onto a neighborhood shape.
func ShapeFromRadius(radius int) (Shape, bool) {
	switch radius {
	case 1:
		return VonNeumann, true
	case 2:
		return Diamond, true
	}
	return 0, false
}

// Radius returns the reach of the shape in cells.
func (s Shape) Radius() int { return int(s) }

// Count returns how many neighbors the shape yields for every cell.
func (s Shape) Count() int { return len(s.offsets()) }

func (s Shape) offsets() [][2]int {
	if s == Diamond {
		return diamondOffsets
	}
	return vonNeumannOffsets
}

func (s Shape) String() string {
	switch s {
	case VonNeumann:
		return "von-neumann"
	case Diamond:
		return "diamond"
	}
	return fmt.Sprintf("shape(%d)", uint8(s))
}

// Field stores an N×N toroidal grid of cell states in row-major order. Every
// state is in [0, K).
type Field struct {
	n, k int
	data []uint8
}

// NewField allocates a zeroed field. Invalid sizes are rejected, not clamped.
func NewField(n, k int) (*Field, error) {
	if n <= 0 {
		return nil, fmt.Errorf("field size must be positive, got %d", n)
	}
	if k < 2 || k > 255 {
		return nil, fmt.Errorf("state count must be in [2,255], got %d", k)
	}
	return &Field{n: n, k: k, data: make([]uint8, n*n)}, nil
}

// N returns the side length of the grid.
func (f *Field) N() int { return f.n }

// States returns the state cardinality K.
func (f *Field) States() int { return f.k }

// Size returns the grid dimensions.
func (f *Field) Size() Size { return Size{W: f.n, H: f.n} }

// Cells exposes the backing slice so callers can read values directly.
func (f *Field) Cells() []uint8 { return f.data }

// Wrap applies toroidal wrapping to the provided coordinates.
func (f *Field) Wrap(x, y int) (int, int) {
	x = (x%f.n + f.n) % f.n
	y = (y%f.n + f.n) % f.n
	return x, y
}

// Index returns the linear slice index for (x, y) after wrapping.
func (f *Field) Index(x, y int) int {
	x, y = f.Wrap(x, y)
	return y*f.n + x
}

// Get returns the state at (x, y) after wrapping.
func (f *Field) Get(x, y int) uint8 { return f.data[f.Index(x, y)] }

// Set stores state s at (x, y) after wrapping. States outside [0,K) are
// reduced modulo K.
func (f *Field) Set(x, y int, s uint8) {
	f.data[f.Index(x, y)] = s % uint8(f.k)
}

// Neighbors appends the states around (x, y) for the given shape to dst and
// returns the extended slice. Pass dst[:0] to reuse a buffer across cells.
func (f *Field) Neighbors(x, y int, shape Shape, dst []uint8) []uint8 {
	return neighborsOf(f.data, f.n, x, y, shape, dst)
}

func neighborsOf(cells []uint8, n, x, y int, shape Shape, dst []uint8) []uint8 {
	for _, off := range shape.offsets() {
		nx := ((x+off[0])%n + n) % n
		ny := ((y+off[1])%n + n) % n
		dst = append(dst, cells[ny*n+nx])
	}
	return dst
}

// NeighborsIn reads neighbors from an arbitrary N×N buffer laid out like a
// Field. The stepper uses it to read a frozen pre-tick snapshot.
func NeighborsIn(cells []uint8, n, x, y int, shape Shape, dst []uint8) []uint8 {
	return neighborsOf(cells, n, x, y, shape, dst)
}

// Swap installs buf as the backing slice and returns the previous one. The
// buffers must have equal length.
func (f *Field) Swap(buf []uint8) []uint8 {
	if len(buf) != len(f.data) {
		panic(fmt.Sprintf("core: swap buffer length %d, want %d", len(buf), len(f.data)))
	}
	old := f.data
	f.data = buf
	return old
}

// Clone returns a deep copy of the field.
func (f *Field) Clone() *Field {
	return &Field{n: f.n, k: f.k, data: slices.Clone(f.data)}
}

// Equal reports whether both fields hold the same states.
func (f *Field) Equal(o *Field) bool {
	if o == nil {
		return false
	}
	return f.n == o.n && f.k == o.k && slices.Equal(f.data, o.data)
}

// Clear fills the field with zeros.
func (f *Field) Clear() {
	clear(f.data)
}
