package engine

import (
	"errors"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/MindsEye69/information-ontology-site-sub000/internal/core"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/render"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/rule"
)

// Config is the whole construction-time surface of an engine. Field names
// follow the keys accepted in CUE config files, and sweep reports reuse them.
type Config struct {
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Size   int    `json:"size" yaml:"size"`
	States int    `json:"states" yaml:"states"`
	Scale  int    `json:"scale" yaml:"scale"`
	Seed   int64  `json:"seed,omitempty" yaml:"seed,omitempty"`

	// Speed is the target rate in ticks per second.
	Speed float64 `json:"speed" yaml:"speed"`

	Radius          int         `json:"radius" yaml:"radius"`
	Inertia         float64     `json:"inertia" yaml:"inertia"`
	Jitter          float64     `json:"jitter" yaml:"jitter"`
	InfluencePreset rule.Preset `json:"influencePreset" yaml:"influencePreset"`
	// HistoryBias overrides the preset's pull toward the state two ticks
	// prior. Zero keeps the preset value.
	HistoryBias float64 `json:"historyBias,omitempty" yaml:"historyBias,omitempty"`

	SeedStrategy core.SeedStrategy `json:"seedStrategy" yaml:"seedStrategy"`
	PatchSize    int               `json:"patchSize" yaml:"patchSize"`
	SmoothPasses int               `json:"smoothPasses" yaml:"smoothPasses"`
	NoiseScale   float64           `json:"noiseScale,omitempty" yaml:"noiseScale,omitempty"`

	Palette []string `json:"palette" yaml:"palette"`
	// Outline is the color of stable-region borders; empty disables them.
	Outline string `json:"outline,omitempty" yaml:"outline,omitempty"`

	StabilityWindow    int     `json:"stabilityWindow" yaml:"stabilityWindow"`
	StabilityThreshold float64 `json:"stabilityThreshold" yaml:"stabilityThreshold"`
	MinIslandSize      int     `json:"minIslandSize" yaml:"minIslandSize"`
}

// DefaultConfig returns the two-state majority toy.
func DefaultConfig() Config {
	return Config{
		Name:               "majority",
		Size:               96,
		States:             2,
		Scale:              6,
		Speed:              12,
		Radius:             1,
		Inertia:            0.1,
		Jitter:             0.002,
		InfluencePreset:    rule.PresetMajority,
		SeedStrategy:       core.SeedPatchesSmoothed,
		PatchSize:          4,
		SmoothPasses:       1,
		Palette:            []string{"#14161c", "#e8d9b0"},
		StabilityWindow:    24,
		StabilityThreshold: 0.05,
		MinIslandSize:      12,
	}
}

// Validate checks every option and reports all violations at once.
func (c Config) Validate() error {
	var errs []error
	add := func(err error) { errs = append(errs, err) }

	if c.Size <= 0 {
		add(configErr("size", "must be positive, got %d", c.Size))
	}
	if c.States < 2 || c.States > 255 {
		add(configErr("states", "must be in [2,255], got %d", c.States))
	}
	if len(c.Palette) != c.States {
		add(configErr("palette", "has %d colors for %d states", len(c.Palette), c.States))
	}
	if _, err := render.ParsePalette(c.Palette); err != nil {
		add(configErr("palette", "%v", err))
	}
	if c.Outline != "" {
		if _, err := render.ParseColor(c.Outline); err != nil {
			add(configErr("outline", "%v", err))
		}
	}
	if c.Scale <= 0 {
		add(configErr("scale", "must be positive, got %d", c.Scale))
	}
	if !(c.Speed > 0) || math.IsInf(c.Speed, 0) {
		add(configErr("speed", "must be a positive finite rate, got %v", c.Speed))
	}
	if _, ok := core.ShapeFromRadius(c.Radius); !ok {
		add(configErr("radius", "must be 1 or 2, got %d", c.Radius))
	}
	checkProbability(add, "inertia", c.Inertia)
	checkProbability(add, "jitter", c.Jitter)
	checkProbability(add, "historyBias", c.HistoryBias)
	checkProbability(add, "stabilityThreshold", c.StabilityThreshold)
	if !c.InfluencePreset.Valid() {
		add(configErr("influencePreset", "unknown preset %q", c.InfluencePreset))
	}
	if !c.SeedStrategy.Valid() {
		add(configErr("seedStrategy", "unknown strategy %q", c.SeedStrategy))
	}
	if c.PatchSize <= 0 {
		add(configErr("patchSize", "must be positive, got %d", c.PatchSize))
	}
	if c.SmoothPasses < 0 || c.SmoothPasses > 2 {
		add(configErr("smoothPasses", "must be in [0,2], got %d", c.SmoothPasses))
	}
	if c.NoiseScale < 0 || math.IsNaN(c.NoiseScale) {
		add(configErr("noiseScale", "must not be negative, got %v", c.NoiseScale))
	}
	if c.StabilityWindow <= 0 {
		add(configErr("stabilityWindow", "must be positive, got %d", c.StabilityWindow))
	}
	if c.MinIslandSize <= 0 {
		add(configErr("minIslandSize", "must be positive, got %d", c.MinIslandSize))
	}
	return errors.Join(errs...)
}

func checkProbability(add func(error), field string, v float64) {
	if math.IsNaN(v) || v < 0 || v > 1 {
		add(configErr(field, "must be in [0,1], got %v", v))
	}
}

// RuleOptions derives the rule options. The config must be valid.
func (c Config) RuleOptions() (rule.Options, error) {
	m, err := c.InfluencePreset.Matrix(c.States)
	if err != nil {
		return rule.Options{}, err
	}
	shape, _ := core.ShapeFromRadius(c.Radius)
	history := c.InfluencePreset.History()
	if c.HistoryBias > 0 {
		history = &rule.HistoryBias{Probability: c.HistoryBias}
	}
	return rule.Options{
		Inertia:   c.Inertia,
		Jitter:    c.Jitter,
		Shape:     shape,
		Influence: m,
		History:   history,
	}, nil
}

// SeedOptions derives the seeding options.
func (c Config) SeedOptions() core.SeedOptions {
	opts := core.DefaultSeedOptions()
	opts.PatchSize = c.PatchSize
	opts.SmoothPasses = c.SmoothPasses
	if c.NoiseScale > 0 {
		opts.NoiseScale = c.NoiseScale
	}
	return opts
}

func (c Config) colors() ([]color.RGBA, *color.RGBA, error) {
	palette, err := render.ParsePalette(c.Palette)
	if err != nil {
		return nil, nil, err
	}
	if c.Outline == "" {
		return palette, nil, nil
	}
	outline, err := render.ParseColor(c.Outline)
	if err != nil {
		return nil, nil, err
	}
	return palette, &outline, nil
}

// FromMap applies flag-style key/value overrides to base. Values that do not
// parse are reported; range checks are left to Validate.
func FromMap(base Config, cfg map[string]string) (Config, error) {
	c := base
	c.Palette = append([]string(nil), base.Palette...)
	var errs []error
	intVal := func(key string, dst *int) {
		if v, ok := cfg[key]; ok {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, configErr(key, "not an integer: %q", v))
				return
			}
			*dst = parsed
		}
	}
	floatVal := func(key string, dst *float64) {
		if v, ok := cfg[key]; ok {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, configErr(key, "not a number: %q", v))
				return
			}
			*dst = parsed
		}
	}

	if v, ok := cfg["name"]; ok {
		c.Name = v
	}
	intVal("size", &c.Size)
	intVal("states", &c.States)
	intVal("scale", &c.Scale)
	if v, ok := cfg["seed"]; ok {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, configErr("seed", "not an integer: %q", v))
		} else {
			c.Seed = parsed
		}
	}
	floatVal("speed", &c.Speed)
	intVal("radius", &c.Radius)
	floatVal("inertia", &c.Inertia)
	floatVal("jitter", &c.Jitter)
	floatVal("history_bias", &c.HistoryBias)
	if v, ok := cfg["preset"]; ok {
		c.InfluencePreset = rule.Preset(v)
	}
	if v, ok := cfg["seed_strategy"]; ok {
		c.SeedStrategy = core.SeedStrategy(v)
	}
	intVal("patch_size", &c.PatchSize)
	intVal("smooth_passes", &c.SmoothPasses)
	floatVal("noise_scale", &c.NoiseScale)
	if v, ok := cfg["palette"]; ok {
		c.Palette = strings.Split(v, ",")
	}
	if v, ok := cfg["outline"]; ok {
		c.Outline = v
	}
	intVal("stability_window", &c.StabilityWindow)
	floatVal("stability_threshold", &c.StabilityThreshold)
	intVal("min_island_size", &c.MinIslandSize)
	return c, errors.Join(errs...)
}
