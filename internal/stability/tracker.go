// Package stability tracks how often each cell changes and extracts the
// connected regions that have settled.
package stability

import (
	"fmt"
	"math"
)

// Tracker keeps a per-cell exponential moving average of "changed last tick".
// An EMA stands in for a sliding window without storing any history.
type Tracker struct {
	n         int
	window    int
	threshold float64
	minIsland int

	ema     []float64
	changed int
	ticks   uint64
}

// NewTracker allocates a tracker for an n×n field. The EMA starts at 1 so no
// cell counts as stable before it has been observed for a while.
func NewTracker(n, window int, threshold float64, minIsland int) (*Tracker, error) {
	if n <= 0 {
		return nil, fmt.Errorf("stability: field size must be positive, got %d", n)
	}
	if err := checkFilter(window, threshold, minIsland); err != nil {
		return nil, err
	}
	t := &Tracker{
		n:         n,
		window:    window,
		threshold: threshold,
		minIsland: minIsland,
		ema:       make([]float64, n*n),
	}
	t.Reset()
	return t, nil
}

func checkFilter(window int, threshold float64, minIsland int) error {
	if window <= 0 {
		return fmt.Errorf("stability: window must be positive, got %d", window)
	}
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return fmt.Errorf("stability: threshold %v outside [0,1]", threshold)
	}
	if minIsland <= 0 {
		return fmt.Errorf("stability: minimum island size must be positive, got %d", minIsland)
	}
	return nil
}

// SetFilter changes the window, threshold and minimum island size in place.
// The EMA keeps its history; a new window only changes Alpha from the next
// observation on.
func (t *Tracker) SetFilter(window int, threshold float64, minIsland int) error {
	if err := checkFilter(window, threshold, minIsland); err != nil {
		return err
	}
	t.window = window
	t.threshold = threshold
	t.minIsland = minIsland
	return nil
}

// Reset forgets all history.
func (t *Tracker) Reset() {
	for i := range t.ema {
		t.ema[i] = 1
	}
	t.changed = 0
	t.ticks = 0
}

// Alpha is the smoothing factor, 1/window.
func (t *Tracker) Alpha() float64 { return 1 / float64(t.window) }

// Threshold returns the stability threshold.
func (t *Tracker) Threshold() float64 { return t.threshold }

// MinIsland returns the smallest region size kept by Regions.
func (t *Tracker) MinIsland() int { return t.minIsland }

// EMA exposes the per-cell change frequency estimates.
func (t *Tracker) EMA() []float64 { return t.ema }

// Changed returns how many cells changed on the last observed tick.
func (t *Tracker) Changed() int { return t.changed }

// ChangeRate returns Changed as a fraction of all cells.
func (t *Tracker) ChangeRate() float64 { return float64(t.changed) / float64(len(t.ema)) }

// Ticks returns the number of observed ticks since the last Reset.
func (t *Tracker) Ticks() uint64 { return t.ticks }

// Observe folds one tick into the EMA: cur is the new state, prev the state
// before the tick. Both must cover the whole field.
func (t *Tracker) Observe(cur, prev []uint8, alpha float64) {
	changed := 0
	for i := range t.ema {
		var d float64
		if cur[i] != prev[i] {
			d = 1
			changed++
		}
		t.ema[i] += alpha * (d - t.ema[i])
	}
	t.changed = changed
	t.ticks++
}

// Stable reports whether cell i is classified stable. The threshold is
// inclusive.
func (t *Tracker) Stable(i int) bool { return t.ema[i] <= t.threshold }

// StableFraction returns the share of cells currently classified stable.
func (t *Tracker) StableFraction() float64 {
	stable := 0
	for _, v := range t.ema {
		if v <= t.threshold {
			stable++
		}
	}
	return float64(stable) / float64(len(t.ema))
}

// Regions extracts the surviving stable regions for the given states.
func (t *Tracker) Regions(states []uint8) []Region {
	return ExtractStableRegions(t.ema, states, t.n, t.threshold, t.minIsland)
}
