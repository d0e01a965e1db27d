package engine

import (
	"time"

	"github.com/MindsEye69/information-ontology-site-sub000/internal/core"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/rule"
)

// Stepper advances a field by whole ticks. Every tick reads a frozen pre-tick
// buffer and writes a scratch buffer that is swapped in afterwards, so no cell
// ever sees a neighbor's updated value within the same tick.
type Stepper struct {
	clock   *core.Clock
	scratch []uint8
	// back holds the state one tick before the current one, kept only while
	// the rule uses a history bias.
	back  []uint8
	nbuf  []uint8
	ticks uint64
}

// NewStepper allocates buffers for an n×n field running at rate ticks/sec.
func NewStepper(n int, rate float64) *Stepper {
	return &Stepper{
		clock:   core.NewClock(rate),
		scratch: make([]uint8, n*n),
		nbuf:    make([]uint8, 0, core.Diamond.Count()),
	}
}

// Clock exposes the fractional tick clock.
func (s *Stepper) Clock() *core.Clock { return s.clock }

// Ticks returns the number of ticks run since construction.
func (s *Stepper) Ticks() uint64 { return s.ticks }

// Due converts elapsed time into the number of ticks to run now.
func (s *Stepper) Due(elapsed time.Duration) int {
	return s.clock.Ticks(elapsed)
}

// Target supplies the field and rule for each tick. Both are read afresh
// before every tick so a rule swapped between ticks applies to the next one.
type Target interface {
	Field() *core.Field
	Rule() *rule.Rule
}

// Advance runs every tick due for elapsed and returns how many ran. observe,
// when non-nil, sees the new and previous buffers after each tick; returning
// false drops the rest of the due ticks.
func (s *Stepper) Advance(t Target, rng core.Source, elapsed time.Duration, observe func(cur, prev []uint8) bool) int {
	n := s.Due(elapsed)
	for i := 0; i < n; i++ {
		f := t.Field()
		prev := s.Tick(f, t.Rule(), rng)
		if observe != nil && !observe(f.Cells(), prev) {
			return i + 1
		}
	}
	return n
}

// Tick applies r to every cell once and returns the pre-tick buffer, which
// stays intact until the next Tick.
func (s *Stepper) Tick(f *core.Field, r *rule.Rule, rng core.Source) []uint8 {
	cur := f.Cells()
	n := f.N()
	shape := r.Shape()
	history := r.UsesHistory()
	if !history {
		s.back = nil
	} else if s.back == nil {
		s.back = append([]uint8(nil), cur...)
	}

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			i := y*n + x
			s.nbuf = core.NeighborsIn(cur, n, x, y, shape, s.nbuf[:0])
			if history {
				s.scratch[i] = r.DecideWithHistory(cur[i], s.back[i], s.nbuf, rng)
			} else {
				s.scratch[i] = r.Decide(cur[i], s.nbuf, rng)
			}
		}
	}

	prev := f.Swap(s.scratch)
	if history {
		s.scratch, s.back = s.back, prev
	} else {
		s.scratch = prev
	}
	s.ticks++
	return prev
}
