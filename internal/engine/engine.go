// Package engine hosts one grid automaton: a toroidal field advanced by a
// local rule on its own tick clock, watched by a stability tracker and drawn
// by a palette renderer.
//
// An Engine is single-threaded. The host calls Advance and Draw from its
// frame callback and stops calling them to pause or cancel.
package engine

import (
	"image/color"
	"log/slog"
	"slices"
	"time"

	"github.com/MindsEye69/information-ontology-site-sub000/internal/core"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/render"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/rule"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/stability"
)

// TickStats summarises one completed tick.
type TickStats struct {
	Tick    uint64
	Changed int
	// ChangeRate is Changed over the number of cells.
	ChangeRate float64
}

// Option customises an Engine at construction.
type Option func(*Engine)

// WithLogger routes lifecycle logs to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.log = logger
		}
	}
}

// WithSource replaces the rng factory. It is called on every reset with the
// effective seed.
func WithSource(newSource func(seed int64) core.Source) Option {
	return func(e *Engine) {
		if newSource != nil {
			e.newSource = newSource
		}
	}
}

// WithTickHook registers fn to run after every tick. The hook may change
// parameters; the change applies from the next tick on.
func WithTickHook(fn func(*Engine, TickStats)) Option {
	return func(e *Engine) { e.onTick = fn }
}

// Engine owns every buffer of one running toy.
type Engine struct {
	cfg       Config
	log       *slog.Logger
	newSource func(seed int64) core.Source
	onTick    func(*Engine, TickStats)

	rng      core.Source
	seed     int64
	field    *core.Field
	rule     *rule.Rule
	stepper  *Stepper
	tracker  *stability.Tracker
	renderer *render.Renderer
	outline  *color.RGBA

	destroyed bool
}

// New validates cfg and builds a seeded engine. Nothing is allocated when the
// configuration is rejected.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:       cfg,
		log:       slog.New(slog.DiscardHandler),
		newSource: defaultSource,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.rebuild(); err != nil {
		return nil, err
	}
	e.log.Debug("engine created",
		"name", e.Name(),
		"size", cfg.Size,
		"states", cfg.States,
		"preset", cfg.InfluencePreset,
		"seed_strategy", cfg.SeedStrategy,
	)
	return e, nil
}

func defaultSource(seed int64) core.Source {
	if seed == 0 {
		return core.NewClockRNG()
	}
	return core.NewRNG(seed)
}

// rebuild (re)allocates every component from e.cfg and seeds the field.
func (e *Engine) rebuild() error {
	cfg := e.cfg
	ropts, err := cfg.RuleOptions()
	if err != nil {
		return err
	}
	r, err := rule.New(cfg.States, ropts)
	if err != nil {
		return err
	}
	palette, outline, err := cfg.colors()
	if err != nil {
		return err
	}
	field, err := core.NewField(cfg.Size, cfg.States)
	if err != nil {
		return err
	}
	tracker, err := stability.NewTracker(cfg.Size, cfg.StabilityWindow, cfg.StabilityThreshold, cfg.MinIslandSize)
	if err != nil {
		return err
	}
	renderer, err := render.NewRenderer(cfg.Size, cfg.Scale, palette)
	if err != nil {
		return err
	}
	e.rule = r
	e.field = field
	e.tracker = tracker
	e.renderer = renderer
	e.outline = outline
	e.destroyed = false
	return e.reseed(cfg.Seed)
}

func (e *Engine) reseed(seed int64) error {
	e.seed = seed
	e.rng = e.newSource(seed)
	if err := core.Seed(e.field, e.cfg.SeedStrategy, e.rng, e.cfg.SeedOptions()); err != nil {
		return err
	}
	e.stepper = NewStepper(e.cfg.Size, e.cfg.Speed)
	e.tracker.Reset()
	return nil
}

// Name returns the configured name, falling back to the preset.
func (e *Engine) Name() string {
	if e.cfg.Name != "" {
		return e.cfg.Name
	}
	return string(e.cfg.InfluencePreset)
}

// Config returns the active configuration.
func (e *Engine) Config() Config { return e.cfg }

// Size returns the grid dimensions.
func (e *Engine) Size() core.Size { return core.Size{W: e.cfg.Size, H: e.cfg.Size} }

// Field exposes the live field, nil after Destroy.
func (e *Engine) Field() *core.Field { return e.field }

// Rule returns the active rule.
func (e *Engine) Rule() *rule.Rule { return e.rule }

// Tracker exposes the stability tracker, nil after Destroy.
func (e *Engine) Tracker() *stability.Tracker { return e.tracker }

// Cells exposes the current states, nil after Destroy.
func (e *Engine) Cells() []uint8 {
	if e.field == nil {
		return nil
	}
	return e.field.Cells()
}

// Ticks returns the ticks run since the last reset.
func (e *Engine) Ticks() uint64 {
	if e.stepper == nil {
		return 0
	}
	return e.stepper.Ticks()
}

// Seed returns the seed of the last reset; zero means wall-clock seeded.
func (e *Engine) Seed() int64 { return e.seed }

// Reset reseeds the field and restarts the clock and tracker. A zero seed
// falls back to the configured seed. A destroyed engine is rebuilt.
func (e *Engine) Reset(seed int64) {
	if seed == 0 {
		seed = e.cfg.Seed
	}
	if e.destroyed {
		e.cfg.Seed = seed
		if err := e.rebuild(); err != nil {
			// The config was validated at construction.
			panic(err)
		}
	} else if err := e.reseed(seed); err != nil {
		panic(err)
	}
	e.log.Debug("engine reset", "name", e.Name(), "seed", seed)
}

// Advance runs every tick that elapsed wall time makes due at the configured
// speed and returns how many ran. A tick hook that resets, rebuilds or
// destroys the engine ends the batch.
func (e *Engine) Advance(elapsed time.Duration) int {
	if e.destroyed {
		return 0
	}
	s := e.stepper
	return s.Advance(e, e.rng, elapsed, func(cur, prev []uint8) bool {
		e.observe(cur, prev)
		return !e.destroyed && e.stepper == s
	})
}

// Step runs exactly one tick regardless of the clock.
func (e *Engine) Step() {
	if e.destroyed {
		return
	}
	prev := e.stepper.Tick(e.field, e.rule, e.rng)
	e.observe(e.field.Cells(), prev)
}

func (e *Engine) observe(cur, prev []uint8) {
	e.tracker.Observe(cur, prev, e.tracker.Alpha())
	if e.onTick != nil {
		e.onTick(e, TickStats{
			Tick:       e.stepper.Ticks(),
			Changed:    e.tracker.Changed(),
			ChangeRate: e.tracker.ChangeRate(),
		})
	}
}

// Regions returns the current stable regions that pass the island filter.
func (e *Engine) Regions() []stability.Region {
	if e.destroyed {
		return nil
	}
	return e.tracker.Regions(e.field.Cells())
}

// Draw renders the field, plus stable-region outlines when an outline color
// is configured, and returns the frame with its pixel dimensions.
func (e *Engine) Draw() ([]byte, int, int) {
	if e.destroyed {
		return nil, 0, 0
	}
	pix := e.renderer.Draw(e.field.Cells())
	if e.outline != nil {
		edges := stability.Outline(e.Regions(), e.cfg.Size)
		e.renderer.DrawOutlines(edges, *e.outline)
	}
	w, h := e.renderer.Bounds()
	return pix, w, h
}

// Renderer exposes the frame renderer, nil after Destroy.
func (e *Engine) Renderer() *render.Renderer { return e.renderer }

// Destroy releases every buffer. Later calls are no-ops until Reset.
func (e *Engine) Destroy() {
	if e.destroyed {
		return
	}
	e.field = nil
	e.stepper = nil
	e.tracker = nil
	e.renderer = nil
	e.destroyed = true
	e.log.Debug("engine destroyed", "name", e.Name())
}

// Reconfigure validates cfg and applies it. Changes to size, states or
// seeding reseed the field. Palette and scale changes only rebuild the
// renderer, and stability filter changes keep the tracker's history. Rule and
// speed changes apply from the next tick. On error nothing changes.
func (e *Engine) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	old := e.cfg
	if e.destroyed || needsReseed(old, cfg) {
		e.cfg = cfg
		if err := e.rebuild(); err != nil {
			e.cfg = old
			return err
		}
		e.log.Debug("engine rebuilt", "name", e.Name(), "size", cfg.Size)
		return nil
	}
	ropts, err := cfg.RuleOptions()
	if err != nil {
		return err
	}
	r, err := rule.New(cfg.States, ropts)
	if err != nil {
		return err
	}
	palette, outline, err := cfg.colors()
	if err != nil {
		return err
	}
	renderer := e.renderer
	if needsRenderer(old, cfg) {
		if renderer, err = render.NewRenderer(cfg.Size, cfg.Scale, palette); err != nil {
			return err
		}
	}
	if err := e.tracker.SetFilter(cfg.StabilityWindow, cfg.StabilityThreshold, cfg.MinIslandSize); err != nil {
		return err
	}
	e.cfg = cfg
	e.rule = r
	e.outline = outline
	e.renderer = renderer
	e.stepper.Clock().SetRate(cfg.Speed)
	return nil
}

func needsReseed(a, b Config) bool {
	return a.Size != b.Size || a.States != b.States ||
		a.SeedStrategy != b.SeedStrategy || a.PatchSize != b.PatchSize ||
		a.SmoothPasses != b.SmoothPasses || a.NoiseScale != b.NoiseScale
}

func needsRenderer(a, b Config) bool {
	return a.Scale != b.Scale || !slices.Equal(a.Palette, b.Palette)
}
