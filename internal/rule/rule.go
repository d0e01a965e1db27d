// Package rule decides the next state of a cell from its neighborhood.
//
// A decision runs in a fixed order: inertia may keep the current state
// outright, otherwise every candidate state is scored by summing the
// influence each neighbor exerts on it and the best candidate wins. An
// optional history bias can then pull the result back to the state the cell
// held two ticks earlier, and jitter finally overrides the result with a
// uniformly random state.
package rule

import (
	"errors"
	"fmt"
	"math"

	"github.com/MindsEye69/information-ontology-site-sub000/internal/core"
)

// Matrix holds influence[n][c]: the support a neighbor in state n lends to
// candidate state c.
type Matrix [][]float64

// HistoryBias pulls a decision back to the state from two ticks prior.
type HistoryBias struct {
	Probability float64
}

// Options configures a Rule. A nil Influence selects the majority matrix.
type Options struct {
	Inertia   float64
	Jitter    float64
	Shape     core.Shape
	Influence Matrix
	History   *HistoryBias
}

// Rule is an immutable local update rule. Swap the whole value to change it.
type Rule struct {
	k         int
	inertia   float64
	jitter    float64
	shape     core.Shape
	influence Matrix
	history   float64
}

// ErrInvalid wraps every rejected option set.
var ErrInvalid = errors.New("invalid rule")

// New validates opts against k states and builds a Rule.
func New(k int, opts Options) (*Rule, error) {
	if k < 2 {
		return nil, fmt.Errorf("%w: need at least 2 states, got %d", ErrInvalid, k)
	}
	if !probability(opts.Inertia) {
		return nil, fmt.Errorf("%w: inertia %v outside [0,1]", ErrInvalid, opts.Inertia)
	}
	if !probability(opts.Jitter) {
		return nil, fmt.Errorf("%w: jitter %v outside [0,1]", ErrInvalid, opts.Jitter)
	}
	shape := opts.Shape
	if shape == 0 {
		shape = core.VonNeumann
	}
	if shape != core.VonNeumann && shape != core.Diamond {
		return nil, fmt.Errorf("%w: unsupported neighborhood %v", ErrInvalid, shape)
	}
	m := opts.Influence
	if m == nil {
		m = MajorityMatrix(k)
	}
	if err := checkMatrix(m, k); err != nil {
		return nil, err
	}
	var history float64
	if opts.History != nil {
		if !probability(opts.History.Probability) {
			return nil, fmt.Errorf("%w: history bias %v outside [0,1]", ErrInvalid, opts.History.Probability)
		}
		history = opts.History.Probability
	}
	return &Rule{
		k:         k,
		inertia:   opts.Inertia,
		jitter:    opts.Jitter,
		shape:     shape,
		influence: m.clone(),
		history:   history,
	}, nil
}

func probability(p float64) bool {
	return !math.IsNaN(p) && p >= 0 && p <= 1
}

// checkMatrix enforces shape K×K, a positive diagonal and a non-positive
// off-diagonal: like reinforces like, unlike suppresses.
func checkMatrix(m Matrix, k int) error {
	if len(m) != k {
		return fmt.Errorf("%w: influence matrix has %d rows, want %d", ErrInvalid, len(m), k)
	}
	for n, row := range m {
		if len(row) != k {
			return fmt.Errorf("%w: influence row %d has %d columns, want %d", ErrInvalid, n, len(row), k)
		}
		for c, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: influence[%d][%d] is not finite", ErrInvalid, n, c)
			}
			if n == c && v <= 0 {
				return fmt.Errorf("%w: influence[%d][%d]=%v must be positive", ErrInvalid, n, c, v)
			}
			if n != c && v > 0 {
				return fmt.Errorf("%w: influence[%d][%d]=%v must not be positive", ErrInvalid, n, c, v)
			}
		}
	}
	return nil
}

func (m Matrix) clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// States returns K.
func (r *Rule) States() int { return r.k }

// Shape returns the neighborhood the rule reads.
func (r *Rule) Shape() core.Shape { return r.shape }

// Inertia returns the probability of keeping the current state outright.
func (r *Rule) Inertia() float64 { return r.inertia }

// Jitter returns the probability of a random override.
func (r *Rule) Jitter() float64 { return r.jitter }

// HistoryBias returns the history bias probability, zero when disabled.
func (r *Rule) HistoryBias() float64 { return r.history }

// UsesHistory reports whether decisions need the state from two ticks prior.
func (r *Rule) UsesHistory() bool { return r.history > 0 }

// Influence returns a copy of the influence matrix.
func (r *Rule) Influence() Matrix { return r.influence.clone() }

// Decide returns the next state for a cell currently in state current.
func (r *Rule) Decide(current uint8, neighbors []uint8, rng core.Source) uint8 {
	return r.decide(current, current, false, neighbors, rng)
}

// DecideWithHistory is Decide with the history bias applied, past being the
// cell's state two ticks before the one being produced.
func (r *Rule) DecideWithHistory(current, past uint8, neighbors []uint8, rng core.Source) uint8 {
	return r.decide(current, past, true, neighbors, rng)
}

func (r *Rule) decide(current, past uint8, withHistory bool, neighbors []uint8, rng core.Source) uint8 {
	if r.inertia > 0 && rng.Float64() < r.inertia {
		return current
	}
	next := r.Best(neighbors)
	if withHistory && r.history > 0 && rng.Float64() < r.history {
		next = past
	}
	if r.jitter > 0 && rng.Float64() < r.jitter {
		next = uint8(rng.IntN(r.k))
	}
	return next
}

// Best returns the candidate with the strictly highest summed influence.
// Ties go to the lowest candidate index.
func (r *Rule) Best(neighbors []uint8) uint8 {
	best := 0
	bestScore := math.Inf(-1)
	for c := 0; c < r.k; c++ {
		var score float64
		for _, n := range neighbors {
			score += r.influence[n][c]
		}
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	return uint8(best)
}
