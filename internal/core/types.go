package core

import "time"

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a toy must implement to be hosted.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// Advancer is implemented by sims that run on their own tick clock rather
// than once per host frame. It returns the ticks executed.
type Advancer interface {
	Advance(elapsed time.Duration) int
}

// Painter is implemented by sims that render their own RGBA frame.
type Painter interface {
	// Draw returns the frame pixels and the frame width and height.
	Draw() (pix []byte, w, h int)
}
