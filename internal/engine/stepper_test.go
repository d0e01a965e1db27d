package engine

import (
	"slices"
	"testing"
	"time"

	"github.com/MindsEye69/information-ontology-site-sub000/internal/core"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/rule"
)

func checkerboard(t *testing.T, n int) *core.Field {
	t.Helper()
	f, err := core.NewField(n, 2)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			f.Set(x, y, uint8((x+y)%2))
		}
	}
	return f
}

// stepInPlace updates cells in raster order, letting later cells read values
// already written this tick.
func stepInPlace(f *core.Field, r *rule.Rule, rng core.Source) {
	var nbuf []uint8
	for y := 0; y < f.N(); y++ {
		for x := 0; x < f.N(); x++ {
			nbuf = f.Neighbors(x, y, r.Shape(), nbuf[:0])
			f.Set(x, y, r.Decide(f.Get(x, y), nbuf, rng))
		}
	}
}

func TestTickReadsFrozenSnapshot(t *testing.T) {
	r, err := rule.New(2, rule.Options{})
	if err != nil {
		t.Fatal(err)
	}
	rng := core.NewRNG(1)

	f := checkerboard(t, 4)
	s := NewStepper(4, 1)
	prev := s.Tick(f, r, rng)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := uint8((x + y + 1) % 2)
			if got := f.Get(x, y); got != want {
				t.Fatalf("(%d,%d) = %d, the board should invert", x, y, got)
			}
		}
	}
	if !slices.Equal(prev, checkerboard(t, 4).Cells()) {
		t.Fatal("Tick should return the pre-tick buffer")
	}

	inPlace := checkerboard(t, 4)
	stepInPlace(inPlace, r, rng)
	if inPlace.Equal(f) {
		t.Fatal("in-place update should diverge from the double-buffered tick")
	}
	// (1,1) already sees two flipped neighbors when updated in place.
	if inPlace.Get(1, 1) != 0 || f.Get(1, 1) != 1 {
		t.Fatalf("(1,1): in place %d, buffered %d", inPlace.Get(1, 1), f.Get(1, 1))
	}
}

func TestTickAlternatesBuffers(t *testing.T) {
	r, _ := rule.New(2, rule.Options{})
	rng := core.NewRNG(1)
	f := checkerboard(t, 6)
	s := NewStepper(6, 1)
	a := s.Tick(f, r, rng)
	b := s.Tick(f, r, rng)
	if &a[0] == &b[0] {
		t.Fatal("consecutive ticks returned the same buffer")
	}
	if !f.Equal(checkerboard(t, 6)) {
		t.Fatal("two inversions should restore the board")
	}
	if s.Ticks() != 2 {
		t.Fatalf("ticks %d", s.Ticks())
	}
}

func TestHistoryBiasFreezesAtFullStrength(t *testing.T) {
	r, err := rule.New(2, rule.Options{History: &rule.HistoryBias{Probability: 1}})
	if err != nil {
		t.Fatal(err)
	}
	rng := core.NewRNG(1)
	f := checkerboard(t, 4)
	s := NewStepper(4, 1)
	for i := 0; i < 4; i++ {
		prev := s.Tick(f, r, rng)
		if !f.Equal(checkerboard(t, 4)) {
			t.Fatalf("tick %d moved the board", i+1)
		}
		if !slices.Equal(prev, f.Cells()) {
			t.Fatalf("tick %d returned a stale previous buffer", i+1)
		}
	}
}

type target struct {
	field *core.Field
	rule  *rule.Rule
}

func (t *target) Field() *core.Field { return t.field }
func (t *target) Rule() *rule.Rule   { return t.rule }

func TestStepperAdvanceObserves(t *testing.T) {
	r, _ := rule.New(2, rule.Options{})
	tg := &target{field: checkerboard(t, 4), rule: r}
	s := NewStepper(4, 20)
	calls := 0
	n := s.Advance(tg, core.NewRNG(1), 250*time.Millisecond, func(cur, prev []uint8) bool {
		calls++
		if slices.Equal(cur, prev) {
			t.Fatal("checkerboard tick should change every cell")
		}
		return true
	})
	if n != 5 || calls != 5 {
		t.Fatalf("advanced %d ticks with %d observations", n, calls)
	}
}

func TestStepperAdvanceStopsWhenObserverDeclines(t *testing.T) {
	r, _ := rule.New(2, rule.Options{})
	tg := &target{field: checkerboard(t, 4), rule: r}
	s := NewStepper(4, 20)
	n := s.Advance(tg, core.NewRNG(1), 250*time.Millisecond, func(cur, prev []uint8) bool {
		return s.Ticks() < 2
	})
	if n != 2 || s.Ticks() != 2 {
		t.Fatalf("advanced %d ticks, stepper at %d", n, s.Ticks())
	}
}

func TestStepperAdvanceReadsRuleEachTick(t *testing.T) {
	flip, _ := rule.New(2, rule.Options{})
	frozen, _ := rule.New(2, rule.Options{Inertia: 1})
	tg := &target{field: checkerboard(t, 4), rule: flip}
	s := NewStepper(4, 20)
	var changed []bool
	s.Advance(tg, core.NewRNG(1), 250*time.Millisecond, func(cur, prev []uint8) bool {
		changed = append(changed, !slices.Equal(cur, prev))
		tg.rule = frozen
		return true
	})
	if len(changed) != 5 || !changed[0] || changed[1] || changed[4] {
		t.Fatalf("changes per tick %v", changed)
	}
}
