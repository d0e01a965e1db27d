// Package homeostasis is a feedback-loop toy: a majority field whose jitter is
// steered after every tick so the share of changing cells hovers around a set
// point.
package homeostasis

import (
	"math"

	"github.com/MindsEye69/information-ontology-site-sub000/internal/core"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/engine"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/rule"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/sims"
)

// Name is the registry key of the toy.
const Name = "homeostasis"

// Controller is a proportional controller acting on jitter.
type Controller struct {
	// Target is the desired fraction of cells changing per tick.
	Target float64
	// Gain scales the error into a jitter correction.
	Gain float64
	// MaxJitter caps the controller output.
	MaxJitter float64
}

// DefaultController keeps roughly two percent of cells in motion.
func DefaultController() Controller {
	return Controller{Target: 0.02, Gain: 0.05, MaxJitter: 0.2}
}

// Next returns the jitter to use after observing changeRate with the current
// jitter.
func (c Controller) Next(jitter, changeRate float64) float64 {
	next := jitter + c.Gain*(c.Target-changeRate)
	return math.Min(math.Max(next, 0), c.MaxJitter)
}

// Defaults returns the engine configuration of the toy.
func Defaults() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.Name = Name
	cfg.InfluencePreset = rule.PresetConformist
	cfg.Inertia = 0.05
	cfg.Jitter = 0.05
	cfg.Speed = 15
	cfg.SeedStrategy = core.SeedUniform
	cfg.Palette = []string{"#202a44", "#ef8354"}
	cfg.Outline = "#bfc0c0"
	return cfg
}

// New builds an engine whose tick hook runs ctl.
func New(cfg engine.Config, ctl Controller, opts ...engine.Option) (*engine.Engine, error) {
	hook := engine.WithTickHook(func(e *engine.Engine, stats engine.TickStats) {
		current := e.Config().Jitter
		next := ctl.Next(current, stats.ChangeRate)
		if next != current {
			e.SetFloatParameter("jitter", next)
		}
	})
	return engine.New(cfg, append(opts, hook)...)
}

func init() {
	sims.Register(sims.Toy{
		Name:     Name,
		Defaults: Defaults,
		Build: func(cfg engine.Config, opts ...engine.Option) (core.Sim, error) {
			return New(cfg, DefaultController(), opts...)
		},
	})
}
