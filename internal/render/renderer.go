//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads prerendered RGBA frames into an ebiten image.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
}

// NewGridPainter allocates a painter for a w×h pixel frame.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{w: w, h: h, img: ebiten.NewImage(w, h)}
}

// Blit uploads pix and draws it at the given offset.
func (gp *GridPainter) Blit(dst *ebiten.Image, pix []byte, offsetX, offsetY float64) {
	if len(pix) != 4*gp.w*gp.h {
		return
	}
	gp.img.WritePixels(pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(offsetX, offsetY)
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
