//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/MindsEye69/information-ontology-site-sub000/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var (
	titleColor  = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	mutedColor  = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	panelColor  = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	buttonColor = color.RGBA{R: 54, G: 56, B: 64, A: 255}
)

// HUD renders the parameter panel to the right of the simulation view.
type HUD struct {
	sim   core.Sim
	width int
	panel *ebiten.Image
	pixel *ebiten.Image

	snapshot    core.ParameterSnapshot
	controls    []hudControlState
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
	offsetX     int
}

type hudControlState struct {
	control   core.ParameterControl
	value     float64
	hasValue  bool
	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: width}
	h.pixel = ebiten.NewImage(1, 1)
	h.pixel.Fill(color.White)
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for i, ctrl := range provider.ParameterControls() {
			top := controlsTop + i*lineHeight
			buttonY := top + (lineHeight-buttonSize)/2
			plus := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
			minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
			h.controls = append(h.controls, hudControlState{control: ctrl, top: top, minusRect: minus, plusRect: plus})
		}
	}
	h.intSetter, _ = sim.(core.IntParameterSetter)
	h.floatSetter, _ = sim.(core.FloatParameterSetter)
	return h
}

// Update refreshes the parameter snapshot and handles clicks on the buttons.
func (h *HUD) Update() {
	if h == nil {
		return
	}
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = provider.Parameters()
	for i := range h.controls {
		state := &h.controls[i]
		param, ok := h.snapshot.Lookup(state.control.Key)
		if !ok {
			state.hasValue = false
			continue
		}
		v, err := strconv.ParseFloat(param.Value, 64)
		state.value, state.hasValue = v, err == nil
	}
	h.handleInput()
}

func (h *HUD) handleInput() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	px := mx - h.offsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		switch {
		case image.Pt(px, my).In(state.minusRect):
			h.adjust(state, -1)
			return
		case image.Pt(px, my).In(state.plusRect):
			h.adjust(state, 1)
			return
		}
	}
}

func (h *HUD) adjust(state *hudControlState, direction float64) {
	ctrl := state.control
	target := math.Min(math.Max(state.value+direction*ctrl.Step, ctrl.Min), ctrl.Max)
	if math.Abs(target-state.value) < 1e-9 {
		return
	}
	switch ctrl.Type {
	case core.ParamTypeInt:
		if h.intSetter != nil && h.intSetter.SetIntParameter(ctrl.Key, int(math.Round(target))) {
			state.value = math.Round(target)
		}
	case core.ParamTypeFloat:
		if h.floatSetter != nil && h.floatSetter.SetFloatParameter(ctrl.Key, target) {
			state.value = target
		}
	}
}

// Draw paints the panel at offsetX, next to a frame of the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int, paused bool) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	h.offsetX = offsetX
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	title := strings.ToUpper(h.sim.Name())
	if paused {
		title += "  (paused)"
	}
	text.Draw(h.panel, title, face, panelPadding, panelPadding+headerBaseline, titleColor)

	for i := range h.controls {
		h.drawControl(&h.controls[i])
	}

	y := controlsTop + len(h.controls)*lineHeight + sectionGap
	for _, group := range h.snapshot.Groups {
		if y > height-panelPadding {
			break
		}
		text.Draw(h.panel, group.Name, face, panelPadding, y, mutedColor)
		y += readoutLine
		for _, p := range group.Params {
			text.Draw(h.panel, p.Label+": "+p.Value, face, panelPadding+8, y, labelColor)
			y += readoutLine
		}
		y += readoutLine / 2
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawControl(state *hudControlState) {
	face := basicfont.Face7x13
	labelY := state.top + labelBaseline
	text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, labelColor)

	value := "--"
	if state.hasValue {
		value = formatValue(state.control, state.value)
	}
	valueX := state.minusRect.Min.X - buttonGap - text.BoundString(face, value).Dx()
	text.Draw(h.panel, value, face, valueX, labelY, labelColor)

	h.drawButton(state.minusRect, "-")
	h.drawButton(state.plusRect, "+")
}

func (h *HUD) drawButton(rect image.Rectangle, label string) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(buttonColor)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, labelColor)
}

func formatValue(ctrl core.ParameterControl, v float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(v)))
	}
	precision := 1
	switch {
	case ctrl.Step < 0.01:
		precision = 3
	case ctrl.Step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// DrawMessage fills screen with a plain text notice, used when a toy could
// not be started.
func DrawMessage(screen *ebiten.Image, msg string) {
	screen.Fill(panelColor)
	y := panelPadding + headerBaseline
	for _, line := range strings.Split(msg, "\n") {
		text.Draw(screen, line, basicfont.Face7x13, panelPadding, y, labelColor)
		y += readoutLine
	}
}

const (
	panelPadding   = 12
	lineHeight     = 32
	buttonSize     = 22
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 21
	sectionGap     = 20
	readoutLine    = 15
	controlsTop    = panelPadding + headerBaseline + 14
)
