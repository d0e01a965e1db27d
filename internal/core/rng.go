package core

import (
	"math/rand/v2"
	"time"
)

// Source is the randomness consumed by seeding and rules. *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// NewClockRNG seeds from the wall clock. Runs are not reproducible.
func NewClockRNG() *RNG {
	return NewRNG(time.Now().UnixNano())
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// IntN returns a value in [0, n).
func (r *RNG) IntN(n int) int { return r.r.IntN(n) }
