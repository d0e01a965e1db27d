package core

import (
	"math"
	"time"
)

// Clock converts elapsed wall time into whole simulation ticks at a target
// rate. The fractional remainder is carried between calls, so the long-run
// tick rate converges on the configured rate whatever the frame cadence.
type Clock struct {
	rate float64
	acc  float64
}

// NewClock constructs a Clock targeting rate ticks per second. Non-positive
// rates never produce ticks.
func NewClock(rate float64) *Clock {
	c := &Clock{}
	c.SetRate(rate)
	return c
}

// SetRate changes the tick rate. The pending fraction is kept.
func (c *Clock) SetRate(rate float64) {
	if rate < 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		rate = 0
	}
	c.rate = rate
}

// Rate returns the configured ticks per second.
func (c *Clock) Rate() float64 { return c.rate }

// Pending returns the fractional tick carried into the next call.
func (c *Clock) Pending() float64 { return c.acc }

// Reset drops any pending fraction.
func (c *Clock) Reset() { c.acc = 0 }

// Ticks accumulates elapsed*rate and returns floor(accumulator), keeping the
// remainder. Negative durations count as zero.
func (c *Clock) Ticks(elapsed time.Duration) int {
	if elapsed > 0 {
		c.acc += elapsed.Seconds() * c.rate
	}
	n := math.Floor(c.acc)
	c.acc -= n
	return int(n)
}
