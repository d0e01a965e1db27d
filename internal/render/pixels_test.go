package render

import (
	"image/color"
	"testing"

	"github.com/MindsEye69/information-ontology-site-sub000/internal/stability"
)

var (
	black = color.RGBA{A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.RGBA{R: 255, A: 255}
)

type captureSurface struct{ pix []byte }

func (c *captureSurface) WritePixels(pix []byte) { c.pix = append(c.pix[:0], pix...) }

func TestDrawScalesBlocks(t *testing.T) {
	r, err := NewRenderer(2, 3, []color.RGBA{black, white})
	if err != nil {
		t.Fatal(err)
	}
	if w, h := r.Bounds(); w != 6 || h != 6 {
		t.Fatalf("bounds %dx%d", w, h)
	}
	// Cell (1,0) is white, the rest black.
	pix := r.Draw([]uint8{0, 1, 0, 0})
	if len(pix) != 6*6*4 {
		t.Fatalf("frame is %d bytes", len(pix))
	}
	img := r.Image()
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			want := black
			if x >= 3 && y < 3 {
				want = white
			}
			if got := img.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v want %v", x, y, got, want)
			}
		}
	}
}

func TestDrawClampsToPalette(t *testing.T) {
	r, _ := NewRenderer(1, 1, []color.RGBA{black, white})
	r.Draw([]uint8{7})
	if got := r.Image().RGBAAt(0, 0); got != white {
		t.Fatalf("got %v", got)
	}
}

func TestDrawOutlines(t *testing.T) {
	r, _ := NewRenderer(2, 4, []color.RGBA{black})
	r.Draw(make([]uint8, 4))
	r.DrawOutlines([]stability.Edge{
		{X: 1, Y: 1, Side: stability.SideTop},
		{X: 0, Y: 0, Side: stability.SideRight},
	}, red)
	img := r.Image()
	for x := 4; x < 8; x++ {
		if img.RGBAAt(x, 4) != red {
			t.Fatalf("top edge missing at x=%d", x)
		}
		if img.RGBAAt(x, 5) != black {
			t.Fatalf("top edge is thicker than one pixel at x=%d", x)
		}
	}
	for y := 0; y < 4; y++ {
		if img.RGBAAt(3, y) != red {
			t.Fatalf("right edge missing at y=%d", y)
		}
	}
	if img.RGBAAt(0, 0) != black {
		t.Fatal("outline leaked into the cell interior")
	}
}

func TestBlit(t *testing.T) {
	r, _ := NewRenderer(1, 2, []color.RGBA{white})
	r.Draw([]uint8{0})
	var s captureSurface
	r.Blit(&s)
	if len(s.pix) != 16 || s.pix[0] != 255 || s.pix[15] != 255 {
		t.Fatalf("blit wrote %v", s.pix)
	}
}

func TestNewRendererValidates(t *testing.T) {
	if _, err := NewRenderer(0, 1, []color.RGBA{black}); err == nil {
		t.Fatal("zero size")
	}
	if _, err := NewRenderer(2, 0, []color.RGBA{black}); err == nil {
		t.Fatal("zero scale")
	}
	if _, err := NewRenderer(2, 1, nil); err == nil {
		t.Fatal("empty palette")
	}
}
