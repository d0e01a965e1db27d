// Package majority registers the local-majority toys, one per influence
// preset.
package majority

import (
	"github.com/MindsEye69/information-ontology-site-sub000/internal/core"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/engine"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/rule"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/sims"
)

// ConfigFor returns the default configuration of the named preset's toy.
func ConfigFor(p rule.Preset) engine.Config {
	cfg := engine.DefaultConfig()
	cfg.Name = string(p)
	cfg.InfluencePreset = p
	switch p {
	case rule.PresetConformist:
		cfg.Inertia = 0.2
		cfg.SeedStrategy = core.SeedUniform
		cfg.Outline = "#f2c14e"
	case rule.PresetTolerant:
		cfg.States = 3
		cfg.Radius = 2
		cfg.Jitter = 0.001
		cfg.Palette = []string{"#1b1f2a", "#5a8f7b", "#d9b26f"}
	case rule.PresetCyclic:
		cfg.States = 4
		cfg.Inertia = 0.3
		cfg.Jitter = 0.004
		cfg.SeedStrategy = core.SeedNoise
		cfg.Palette = []string{"#1d2b53", "#7e2553", "#008751", "#ffa300"}
	case rule.PresetOscillating:
		cfg.Inertia = 0.05
		cfg.Jitter = 0.001
		cfg.Speed = 8
		cfg.Palette = []string{"#0b0c10", "#66fcf1"}
	}
	return cfg
}

func init() {
	for _, p := range rule.Presets() {
		sims.Register(sims.Toy{
			Name:     string(p),
			Defaults: func() engine.Config { return ConfigFor(p) },
			Build: func(cfg engine.Config, opts ...engine.Option) (core.Sim, error) {
				return engine.New(cfg, opts...)
			},
		})
	}
}
