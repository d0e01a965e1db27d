// Package sweep runs a toy headlessly across a grid of rule parameters and
// summarises how quickly and how completely each run settles.
package sweep

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/MindsEye69/information-ontology-site-sub000/internal/engine"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/rule"
)

// Scenario is one point of the sweep grid.
type Scenario struct {
	Preset  rule.Preset `yaml:"preset"`
	Inertia float64     `yaml:"inertia"`
	Jitter  float64     `yaml:"jitter"`
}

func (s Scenario) String() string {
	return fmt.Sprintf("preset=%s inertia=%.3f jitter=%.4f", s.Preset, s.Inertia, s.Jitter)
}

// Result summarises one scenario run.
type Result struct {
	Scenario Scenario `yaml:"scenario"`
	Ticks    int      `yaml:"ticks"`
	// SettledAt is the first tick after which no cell changed for the quiet
	// period, or -1 if the run never settled.
	SettledAt      int     `yaml:"settled_at"`
	FinalChanged   int     `yaml:"final_changed"`
	StableFraction float64 `yaml:"stable_fraction"`
	Regions        int     `yaml:"regions"`
	LargestRegion  int     `yaml:"largest_region"`
	Error          string  `yaml:"error,omitempty"`
}

// Settled reports whether the run reached a fixed point.
func (r Result) Settled() bool { return r.SettledAt >= 0 }

// Grid expands every combination of the given values. Presets come out
// outermost.
func Grid(presets []rule.Preset, inertias, jitters []float64) []Scenario {
	var out []Scenario
	for _, p := range presets {
		for _, in := range inertias {
			for _, j := range jitters {
				out = append(out, Scenario{Preset: p, Inertia: in, Jitter: j})
			}
		}
	}
	return out
}

// Run executes one scenario for up to steps ticks. A run ends early once no
// cell has changed for quiet consecutive ticks; only such runs are settled.
func Run(base engine.Config, sc Scenario, steps, quiet int) Result {
	res := Result{Scenario: sc, SettledAt: -1}
	cfg := base
	cfg.Name = string(sc.Preset)
	cfg.InfluencePreset = sc.Preset
	cfg.Inertia = sc.Inertia
	cfg.Jitter = sc.Jitter
	e, err := engine.New(cfg)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer e.Destroy()

	streak := 0
	for res.Ticks < steps {
		e.Step()
		res.Ticks++
		changed := e.Tracker().Changed()
		res.FinalChanged = changed
		if changed != 0 {
			streak = 0
			continue
		}
		streak++
		if streak == 1 {
			res.SettledAt = res.Ticks - 1
		}
		if streak >= quiet {
			break
		}
	}
	if streak < quiet {
		res.SettledAt = -1
	}

	res.StableFraction = e.Tracker().StableFraction()
	regions := e.Regions()
	res.Regions = len(regions)
	for _, r := range regions {
		res.LargestRegion = max(res.LargestRegion, len(r.Cells))
	}
	return res
}

// RunAll fans scenarios out to workers goroutines and returns the results in
// scenario order. Cancelling ctx stops handing out new scenarios.
func RunAll(ctx context.Context, base engine.Config, scenarios []Scenario, steps, quiet, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = 1
	}
	type job struct {
		idx int
		sc  Scenario
	}
	jobs := make(chan job)
	results := make([]Result, len(scenarios))
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.idx] = Run(base, j.sc, steps, quiet)
			}
		}()
	}

	var err error
feed:
	for i, sc := range scenarios {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case jobs <- job{idx: i, sc: sc}:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	return results, err
}

// Rank orders results: settled runs first, faster settling first, then by
// stable fraction.
func Rank(results []Result) []Result {
	out := slices.Clone(results)
	slices.SortStableFunc(out, func(a, b Result) int {
		switch {
		case a.Settled() != b.Settled():
			if a.Settled() {
				return -1
			}
			return 1
		case a.Settled() && a.SettledAt != b.SettledAt:
			return a.SettledAt - b.SettledAt
		case a.StableFraction > b.StableFraction:
			return -1
		case a.StableFraction < b.StableFraction:
			return 1
		}
		return 0
	})
	return out
}

// Report is the YAML document written by the sweep command.
type Report struct {
	Base    engine.Config `yaml:"base"`
	Steps   int           `yaml:"steps"`
	Quiet   int           `yaml:"quiet"`
	Results []Result      `yaml:"results"`
}

// WriteYAML encodes r to w.
func WriteYAML(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}
