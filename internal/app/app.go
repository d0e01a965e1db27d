//go:build ebiten

package app

import (
	"image/color"
	"log/slog"
	"time"

	"github.com/MindsEye69/information-ontology-site-sub000/internal/core"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/render"
	"github.com/MindsEye69/information-ontology-site-sub000/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim      core.Sim
	log      *slog.Logger
	painter  *render.GridPainter
	fallback *render.Renderer
	hud      *ui.HUD
	hudWidth int

	frameW, frameH int

	paused   bool
	tickOnce bool
	seed     int64
	last     time.Time

	failure string
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, hudWidth int, seed int64, logger *slog.Logger) *Game {
	g := &Game{sim: sim, log: logger, hudWidth: hudWidth, seed: seed}
	if p, ok := sim.(core.Painter); ok {
		_, g.frameW, g.frameH = p.Draw()
	} else {
		size := sim.Size()
		g.fallback, _ = render.NewRenderer(size.W, 1, []color.RGBA{{A: 255}, {R: 255, G: 255, B: 255, A: 255}})
		g.frameW, g.frameH = size.W, size.H
	}
	g.painter = render.NewGridPainter(g.frameW, g.frameH)
	if hudWidth > 0 {
		g.hud = ui.NewHUD(sim, hudWidth)
	}
	return g
}

// NewFailed constructs a Game that only shows why the sim could not start.
func NewFailed(name string, err error) *Game {
	return &Game{failure: "cannot start " + name + ":\n" + err.Error(), frameW: 480, frameH: 160}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.last = time.Time{}
	if g.log != nil {
		g.log.Info("reset", "sim", g.sim.Name(), "seed", seed)
	}
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.sim == nil {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	if g.hud != nil {
		g.hud.Update()
	}

	now := time.Now()
	elapsed := time.Duration(0)
	if !g.last.IsZero() {
		elapsed = now.Sub(g.last)
	}
	g.last = now

	if g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
		return nil
	}
	if g.paused {
		return nil
	}
	if adv, ok := g.sim.(core.Advancer); ok {
		adv.Advance(elapsed)
	} else {
		g.sim.Step()
	}
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.sim == nil {
		ui.DrawMessage(screen, g.failure)
		return
	}
	var pix []byte
	if p, ok := g.sim.(core.Painter); ok {
		var w, h int
		pix, w, h = p.Draw()
		if w != g.frameW || h != g.frameH {
			// The HUD resized the field.
			g.frameW, g.frameH = w, h
			g.painter = render.NewGridPainter(w, h)
		}
	} else if g.fallback != nil {
		pix = g.fallback.Draw(g.sim.Cells())
	}
	g.painter.Blit(screen, pix, 0, 0)
	if g.hud != nil {
		g.hud.Draw(screen, g.frameW, g.frameH, g.paused)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.frameW + g.hudWidth, g.frameH
}
