package rule

import (
	"errors"
	"math"
	"testing"

	"github.com/MindsEye69/information-ontology-site-sub000/internal/core"
)

// scripted replays fixed draws and counts how many were taken.
type scripted struct {
	floats []float64
	ints   []int
	calls  int
}

func (s *scripted) Float64() float64 {
	s.calls++
	if len(s.floats) == 0 {
		return 0.999
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scripted) IntN(n int) int {
	s.calls++
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0] % n
	s.ints = s.ints[1:]
	return v
}

func mustRule(t *testing.T, k int, opts Options) *Rule {
	t.Helper()
	r, err := New(k, opts)
	if err != nil {
		t.Fatalf("new rule: %v", err)
	}
	return r
}

func TestBestTieGoesToLowestIndex(t *testing.T) {
	r := mustRule(t, 2, Options{})
	if got := r.Best([]uint8{1, 1, 0, 0}); got != 0 {
		t.Fatalf("2-2 tie should pick state 0, got %d", got)
	}
	r3 := mustRule(t, 3, Options{})
	// States 1 and 2 both score 0.
	if got := r3.Best([]uint8{1, 1, 2, 2}); got != 1 {
		t.Fatalf("tie between 1 and 2 should pick 1, got %d", got)
	}
	if got := r.Best([]uint8{1, 1, 1, 0}); got != 1 {
		t.Fatalf("majority of ones should win, got %d", got)
	}
}

func TestDecideDeterministicWithoutNoise(t *testing.T) {
	r := mustRule(t, 2, Options{})
	src := &scripted{}
	if got := r.Decide(0, []uint8{1, 1, 1, 0}, src); got != 1 {
		t.Fatalf("got %d", got)
	}
	if src.calls != 0 {
		t.Fatalf("a noiseless rule drew %d random values", src.calls)
	}
}

func TestInertiaOneAlwaysKeeps(t *testing.T) {
	r := mustRule(t, 2, Options{Inertia: 1})
	rng := core.NewRNG(9)
	for i := 0; i < 200; i++ {
		if got := r.Decide(0, []uint8{1, 1, 1, 1}, rng); got != 0 {
			t.Fatalf("inertia 1 changed state at draw %d", i)
		}
	}
}

func TestInertiaRunsBeforeScoring(t *testing.T) {
	r := mustRule(t, 2, Options{Inertia: 0.5, Jitter: 0.5})
	src := &scripted{floats: []float64{0.1}}
	if got := r.Decide(1, []uint8{0, 0, 0, 0}, src); got != 1 {
		t.Fatalf("inertia hit should keep state, got %d", got)
	}
	if src.calls != 1 {
		t.Fatalf("inertia hit should return before jitter, drew %d", src.calls)
	}
}

func TestJitterOneOverridesWithDrawnState(t *testing.T) {
	r := mustRule(t, 4, Options{Jitter: 1})
	src := &scripted{floats: []float64{0.5}, ints: []int{3}}
	if got := r.Decide(0, []uint8{0, 0, 0, 0}, src); got != 3 {
		t.Fatalf("jitter should pick the drawn state, got %d", got)
	}
	rng := core.NewRNG(4)
	for i := 0; i < 100; i++ {
		if got := r.Decide(0, []uint8{0, 0, 0, 0}, rng); got >= 4 {
			t.Fatalf("state %d out of range", got)
		}
	}
}

func TestHistoryBiasBeforeJitter(t *testing.T) {
	r := mustRule(t, 2, Options{History: &HistoryBias{Probability: 0.5}})
	// History draw below the bias: result is the past state.
	src := &scripted{floats: []float64{0.1}}
	if got := r.DecideWithHistory(0, 1, []uint8{0, 0, 0, 0}, src); got != 1 {
		t.Fatalf("history hit should restore past state, got %d", got)
	}
	src = &scripted{floats: []float64{0.9}}
	if got := r.DecideWithHistory(0, 1, []uint8{0, 0, 0, 0}, src); got != 0 {
		t.Fatalf("history miss should keep the majority, got %d", got)
	}
	if !r.UsesHistory() {
		t.Fatal("rule should report history use")
	}
	// Decide ignores history even when the rule has a bias.
	src = &scripted{}
	if got := r.Decide(0, []uint8{0, 0, 0, 0}, src); got != 0 || src.calls != 0 {
		t.Fatalf("Decide touched history: state %d, draws %d", got, src.calls)
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	cases := map[string]Options{
		"inertia":      {Inertia: 1.5},
		"jitter":       {Jitter: -0.1},
		"nan jitter":   {Jitter: math.NaN()},
		"shape":        {Shape: core.Shape(3)},
		"rows":         {Influence: Matrix{{1, -1}}},
		"cols":         {Influence: Matrix{{1}, {-1, 1}}},
		"diagonal":     {Influence: Matrix{{0, -1}, {-1, 1}}},
		"off diagonal": {Influence: Matrix{{1, 0.5}, {-1, 1}}},
		"infinite":     {Influence: Matrix{{math.Inf(1), -1}, {-1, 1}}},
		"history bias": {History: &HistoryBias{Probability: 2}},
	}
	for name, opts := range cases {
		if _, err := New(2, opts); !errors.Is(err, ErrInvalid) {
			t.Fatalf("%s: expected ErrInvalid, got %v", name, err)
		}
	}
	if _, err := New(1, Options{}); !errors.Is(err, ErrInvalid) {
		t.Fatal("one state should be rejected")
	}
}

func TestInfluenceIsCopied(t *testing.T) {
	m := MajorityMatrix(2)
	r := mustRule(t, 2, Options{Influence: m})
	m[0][0] = 99
	if r.Influence()[0][0] != 1 {
		t.Fatal("rule must not alias the caller's matrix")
	}
	got := r.Influence()
	got[1][1] = 42
	if r.Influence()[1][1] != 1 {
		t.Fatal("Influence must return a copy")
	}
}

func TestDiamondShape(t *testing.T) {
	r := mustRule(t, 2, Options{Shape: core.Diamond})
	if r.Shape() != core.Diamond {
		t.Fatalf("got %v", r.Shape())
	}
	if mustRule(t, 2, Options{}).Shape() != core.VonNeumann {
		t.Fatal("zero shape should default to von neumann")
	}
}
