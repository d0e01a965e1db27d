package homeostasis

import (
	"math"
	"testing"
)

func TestControllerSteersTowardTarget(t *testing.T) {
	c := DefaultController()
	if got := c.Next(0.05, 0.5); got >= 0.05 {
		t.Fatalf("too much motion should lower jitter, got %v", got)
	}
	if got := c.Next(0.05, 0); got <= 0.05 {
		t.Fatalf("a frozen field should raise jitter, got %v", got)
	}
	if got := c.Next(0.05, c.Target); math.Abs(got-0.05) > 1e-12 {
		t.Fatalf("on target jitter should hold, got %v", got)
	}
}

func TestControllerClamps(t *testing.T) {
	c := Controller{Target: 0.5, Gain: 10, MaxJitter: 0.2}
	if got := c.Next(0.1, 0); got != 0.2 {
		t.Fatalf("got %v", got)
	}
	if got := c.Next(0.1, 1); got != 0 {
		t.Fatalf("got %v", got)
	}
}

func TestHookAdjustsJitter(t *testing.T) {
	cfg := Defaults()
	cfg.Size = 16
	cfg.Seed = 9
	// Full inertia freezes the field, so the controller only ever sees a
	// zero change rate and keeps raising jitter.
	cfg.Inertia = 1
	cfg.Jitter = 0
	e, err := New(cfg, Controller{Target: 0.1, Gain: 0.1, MaxJitter: 0.05})
	if err != nil {
		t.Fatal(err)
	}
	e.Step()
	if got := e.Config().Jitter; math.Abs(got-0.01) > 1e-12 {
		t.Fatalf("jitter after one tick %v", got)
	}
	for i := 0; i < 10; i++ {
		e.Step()
	}
	if got := e.Config().Jitter; got != 0.05 {
		t.Fatalf("jitter should saturate at the cap, got %v", got)
	}
}
