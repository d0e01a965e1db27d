package engine

import (
	"math"

	"github.com/MindsEye69/information-ontology-site-sub000/internal/core"
)

// Parameters reports the active configuration for the HUD.
func (e *Engine) Parameters() core.ParameterSnapshot {
	c := e.cfg
	groups := []core.ParameterGroup{
		{
			Name: "Field",
			Params: []core.Parameter{
				core.IntParam("size", "Size", c.Size),
				core.IntParam("states", "States", c.States),
				core.StringParam("seed_strategy", "Seeding", string(c.SeedStrategy)),
				core.IntParam("patch_size", "Patch size", c.PatchSize),
				core.Int64Param("seed", "Seed", e.seed),
			},
		},
		{
			Name: "Rule",
			Params: []core.Parameter{
				core.StringParam("preset", "Preset", string(c.InfluencePreset)),
				core.IntParam("radius", "Radius", c.Radius),
				core.FloatParam("inertia", "Inertia", c.Inertia),
				core.FloatParam("jitter", "Jitter", c.Jitter),
			},
		},
		{
			Name: "Clock",
			Params: []core.Parameter{
				core.FloatParam("speed", "Ticks/sec", c.Speed),
				core.IntParam("ticks", "Ticks", int(e.Ticks())),
			},
		},
		{
			Name: "Stability",
			Params: []core.Parameter{
				core.IntParam("stability_window", "Window", c.StabilityWindow),
				core.FloatParam("stability_threshold", "Threshold", c.StabilityThreshold),
				core.IntParam("min_island_size", "Min island", c.MinIslandSize),
			},
		},
	}
	if e.rule != nil && e.rule.UsesHistory() {
		groups[1].Params = append(groups[1].Params, core.FloatParam("history_bias", "History bias", e.rule.HistoryBias()))
	}
	if e.tracker != nil {
		groups[3].Params = append(groups[3].Params,
			core.FloatParam("stable_fraction", "Stable", round3(e.tracker.StableFraction())),
			core.FloatParam("change_rate", "Changing", round3(e.tracker.ChangeRate())),
		)
	}
	return core.ParameterSnapshot{Groups: groups}
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

var controls = []core.ParameterControl{
	{Key: "inertia", Label: "Inertia", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1},
	{Key: "jitter", Label: "Jitter", Type: core.ParamTypeFloat, Step: 0.001, Min: 0, Max: 1},
	{Key: "speed", Label: "Ticks/sec", Type: core.ParamTypeFloat, Step: 1, Min: 1, Max: 240},
	{Key: "radius", Label: "Radius", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 2},
	{Key: "stability_threshold", Label: "Threshold", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1},
	{Key: "min_island_size", Label: "Min island", Type: core.ParamTypeInt, Step: 2, Min: 1, Max: 4096},
	{Key: "size", Label: "Size", Type: core.ParamTypeInt, Step: 8, Min: 8, Max: 512},
}

// ParameterControls lists the values the HUD may adjust.
func (e *Engine) ParameterControls() []core.ParameterControl {
	return append([]core.ParameterControl(nil), controls...)
}

func controlFor(key string, typ core.ParamType) (core.ParameterControl, bool) {
	for _, c := range controls {
		if c.Key == key && c.Type == typ {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

// SetFloatParameter clamps value to the control bounds and applies it.
func (e *Engine) SetFloatParameter(key string, value float64) bool {
	ctrl, ok := controlFor(key, core.ParamTypeFloat)
	if !ok || math.IsNaN(value) {
		return false
	}
	value = math.Min(math.Max(value, ctrl.Min), ctrl.Max)
	cfg := e.cfg
	switch key {
	case "inertia":
		cfg.Inertia = value
	case "jitter":
		cfg.Jitter = value
	case "speed":
		cfg.Speed = value
	case "stability_threshold":
		cfg.StabilityThreshold = value
	}
	return e.Reconfigure(cfg) == nil
}

// SetIntParameter clamps value to the control bounds and applies it.
func (e *Engine) SetIntParameter(key string, value int) bool {
	ctrl, ok := controlFor(key, core.ParamTypeInt)
	if !ok {
		return false
	}
	value = int(math.Min(math.Max(float64(value), ctrl.Min), ctrl.Max))
	cfg := e.cfg
	switch key {
	case "radius":
		cfg.Radius = value
	case "min_island_size":
		cfg.MinIslandSize = value
	case "size":
		cfg.Size = value
	}
	return e.Reconfigure(cfg) == nil
}
