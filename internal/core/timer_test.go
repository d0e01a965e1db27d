package core

import (
	"math"
	"testing"
	"time"
)

func TestClockCarriesFraction(t *testing.T) {
	c := NewClock(4)
	// 4 ticks/sec: 375ms is 1.5 ticks.
	if n := c.Ticks(375 * time.Millisecond); n != 1 {
		t.Fatalf("got %d", n)
	}
	if math.Abs(c.Pending()-0.5) > 1e-9 {
		t.Fatalf("pending %v", c.Pending())
	}
	if n := c.Ticks(125 * time.Millisecond); n != 1 {
		t.Fatalf("remainder should complete a tick, got %d", n)
	}
	if n := c.Ticks(-time.Second); n != 0 {
		t.Fatalf("negative elapsed should not tick, got %d", n)
	}
	c.Reset()
	if c.Pending() != 0 {
		t.Fatal("reset should drop the fraction")
	}
}

func TestClockConvergesRegardlessOfChunking(t *testing.T) {
	const rate = 37.0
	rng := NewRNG(11)
	for trial := 0; trial < 20; trial++ {
		c := NewClock(rate)
		var total time.Duration
		ticks := 0
		for i := 0; i < 500; i++ {
			d := time.Duration(rng.IntN(50)) * time.Millisecond
			if rng.IntN(10) == 0 {
				d += time.Duration(rng.IntN(400)) * time.Millisecond
			}
			total += d
			ticks += c.Ticks(d)
		}
		want := rate * total.Seconds()
		if math.Abs(float64(ticks)-want) > 1 {
			t.Fatalf("trial %d: %d ticks for %v, want %.2f±1", trial, ticks, total, want)
		}
	}
}

func TestClockZeroRate(t *testing.T) {
	c := NewClock(0)
	if n := c.Ticks(time.Hour); n != 0 {
		t.Fatalf("got %d", n)
	}
	c.SetRate(math.NaN())
	if c.Rate() != 0 {
		t.Fatal("NaN rate should be treated as zero")
	}
}
