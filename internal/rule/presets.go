package rule

import (
	"fmt"
	"slices"
)

// Preset names a prebuilt influence configuration.
type Preset string

const (
	PresetMajority    Preset = "majority"
	PresetConformist  Preset = "conformist"
	PresetTolerant    Preset = "tolerant"
	PresetCyclic      Preset = "cyclic"
	PresetOscillating Preset = "oscillating"
)

// OscillatingHistoryBias is the pull toward the state from two ticks prior
// used by the oscillating preset.
const OscillatingHistoryBias = 0.22

// Presets lists every preset in display order.
func Presets() []Preset {
	return []Preset{PresetMajority, PresetConformist, PresetTolerant, PresetCyclic, PresetOscillating}
}

// Valid reports whether p names a known preset.
func (p Preset) Valid() bool {
	return slices.Contains(Presets(), p)
}

// Matrix builds the preset's influence matrix for k states.
func (p Preset) Matrix(k int) (Matrix, error) {
	switch p {
	case PresetMajority, PresetOscillating:
		return MajorityMatrix(k), nil
	case PresetConformist:
		return scaledMatrix(k, 2, -1), nil
	case PresetTolerant:
		return scaledMatrix(k, 1, -0.25), nil
	case PresetCyclic:
		return CyclicMatrix(k), nil
	}
	return nil, fmt.Errorf("%w: unknown influence preset %q", ErrInvalid, p)
}

// History returns the history bias the preset layers on the rule, if any.
func (p Preset) History() *HistoryBias {
	if p == PresetOscillating {
		return &HistoryBias{Probability: OscillatingHistoryBias}
	}
	return nil
}

// MajorityMatrix is +1 on the diagonal and -1 elsewhere.
func MajorityMatrix(k int) Matrix {
	return scaledMatrix(k, 1, -1)
}

// CyclicMatrix is the majority matrix except that each state suppresses its
// successor (n+1 mod k) at half strength, so regions drift around the cycle.
func CyclicMatrix(k int) Matrix {
	m := MajorityMatrix(k)
	for n := range m {
		m[n][(n+1)%k] = -0.5
	}
	return m
}

func scaledMatrix(k int, like, unlike float64) Matrix {
	m := make(Matrix, k)
	for n := range m {
		m[n] = make([]float64, k)
		for c := range m[n] {
			if n == c {
				m[n][c] = like
			} else {
				m[n][c] = unlike
			}
		}
	}
	return m
}
