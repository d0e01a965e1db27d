package core

import (
	"fmt"
	"math"

	perlin "github.com/aquilax/go-perlin"
)

// SeedStrategy names how a fresh field is populated.
type SeedStrategy string

const (
	// SeedUniform draws one uniform random state per cell.
	SeedUniform SeedStrategy = "uniform"
	// SeedPatches draws one random state per PatchSize×PatchSize block.
	SeedPatches SeedStrategy = "patches"
	// SeedPatchesSmoothed seeds patches, then runs mode-filter passes to
	// soften block boundaries.
	SeedPatchesSmoothed SeedStrategy = "patches-smoothed"
	// SeedNoise quantises 2D Perlin noise into K bands.
	SeedNoise SeedStrategy = "noise"
)

// SeedStrategies lists every recognised strategy.
func SeedStrategies() []SeedStrategy {
	return []SeedStrategy{SeedUniform, SeedPatches, SeedPatchesSmoothed, SeedNoise}
}

// Valid reports whether s names a known strategy.
func (s SeedStrategy) Valid() bool {
	switch s {
	case SeedUniform, SeedPatches, SeedPatchesSmoothed, SeedNoise:
		return true
	}
	return false
}

// SeedOptions tunes the block and noise strategies.
type SeedOptions struct {
	PatchSize    int
	SmoothPasses int
	NoiseScale   float64
}

// DefaultSeedOptions returns the options used by the built-in toys.
func DefaultSeedOptions() SeedOptions {
	return SeedOptions{PatchSize: 4, SmoothPasses: 1, NoiseScale: 0.08}
}

// Seed overwrites every cell of f according to strategy.
func Seed(f *Field, strategy SeedStrategy, rng Source, opts SeedOptions) error {
	switch strategy {
	case SeedUniform:
		seedUniform(f, rng)
	case SeedPatches:
		seedPatches(f, rng, opts.PatchSize)
	case SeedPatchesSmoothed:
		seedPatches(f, rng, opts.PatchSize)
		passes := opts.SmoothPasses
		if passes < 1 {
			passes = 1
		}
		if passes > 2 {
			passes = 2
		}
		for i := 0; i < passes; i++ {
			modeFilter(f)
		}
	case SeedNoise:
		seedNoise(f, rng, opts.NoiseScale)
	default:
		return fmt.Errorf("unknown seed strategy %q", strategy)
	}
	return nil
}

func seedUniform(f *Field, rng Source) {
	for i := range f.data {
		f.data[i] = uint8(rng.IntN(f.k))
	}
}

func seedPatches(f *Field, rng Source, patch int) {
	if patch <= 0 {
		patch = 1
	}
	for by := 0; by < f.n; by += patch {
		for bx := 0; bx < f.n; bx += patch {
			s := uint8(rng.IntN(f.k))
			for y := by; y < by+patch && y < f.n; y++ {
				for x := bx; x < bx+patch && x < f.n; x++ {
					f.data[y*f.n+x] = s
				}
			}
		}
	}
}

// modeFilter replaces each cell with the most common state of its wrapped 3×3
// window. Ties go to the lowest state.
func modeFilter(f *Field) {
	out := make([]uint8, len(f.data))
	counts := make([]int, f.k)
	for y := 0; y < f.n; y++ {
		for x := 0; x < f.n; x++ {
			clear(counts)
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					counts[f.Get(x+dx, y+dy)]++
				}
			}
			best := 0
			for s := 1; s < f.k; s++ {
				if counts[s] > counts[best] {
					best = s
				}
			}
			out[y*f.n+x] = uint8(best)
		}
	}
	copy(f.data, out)
}

func seedNoise(f *Field, rng Source, scale float64) {
	if scale <= 0 {
		scale = DefaultSeedOptions().NoiseScale
	}
	p := perlin.NewPerlin(2, 2, 3, int64(rng.IntN(math.MaxInt32)))
	for y := 0; y < f.n; y++ {
		for x := 0; x < f.n; x++ {
			// Noise2D is roughly in [-1, 1].
			v := (p.Noise2D(float64(x)*scale, float64(y)*scale) + 1) / 2
			band := int(v * float64(f.k))
			if band < 0 {
				band = 0
			}
			if band >= f.k {
				band = f.k - 1
			}
			f.data[y*f.n+x] = uint8(band)
		}
	}
}
