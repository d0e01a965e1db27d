package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/MindsEye69/information-ontology-site-sub000/internal/stability"
)

// Surface is anything that accepts a full RGBA frame. *ebiten.Image satisfies
// it.
type Surface interface {
	WritePixels(pix []byte)
}

// Renderer maps cell states to colors and upscales each cell to a crisp
// scale×scale block.
type Renderer struct {
	n, scale int
	palette  []color.RGBA
	img      *image.RGBA
}

// NewRenderer allocates a frame of (n*scale)² pixels.
func NewRenderer(n, scale int, palette []color.RGBA) (*Renderer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("render: grid size must be positive, got %d", n)
	}
	if scale <= 0 {
		return nil, fmt.Errorf("render: scale must be positive, got %d", scale)
	}
	if len(palette) == 0 {
		return nil, fmt.Errorf("render: empty palette")
	}
	side := n * scale
	return &Renderer{
		n:       n,
		scale:   scale,
		palette: append([]color.RGBA(nil), palette...),
		img:     image.NewRGBA(image.Rect(0, 0, side, side)),
	}, nil
}

// Scale returns the pixel size of one cell.
func (r *Renderer) Scale() int { return r.scale }

// Bounds returns the frame width and height in pixels.
func (r *Renderer) Bounds() (int, int) {
	side := r.n * r.scale
	return side, side
}

// Image exposes the frame as an image.RGBA.
func (r *Renderer) Image() *image.RGBA { return r.img }

// Draw paints every cell and returns the frame.
func (r *Renderer) Draw(cells []uint8) []byte {
	fillPaletteRGBA(r.img.Pix, r.img.Stride, cells, r.n, r.scale, r.palette)
	return r.img.Pix
}

// DrawOutlines paints one-pixel borders along the given cell edges.
func (r *Renderer) DrawOutlines(edges []stability.Edge, col color.RGBA) {
	s := r.scale
	for _, e := range edges {
		x0, y0 := e.X*s, e.Y*s
		switch e.Side {
		case stability.SideTop:
			r.hline(x0, y0, s, col)
		case stability.SideBottom:
			r.hline(x0, y0+s-1, s, col)
		case stability.SideLeft:
			r.vline(x0, y0, s, col)
		case stability.SideRight:
			r.vline(x0+s-1, y0, s, col)
		}
	}
}

// Blit pushes the current frame to dst.
func (r *Renderer) Blit(dst Surface) {
	dst.WritePixels(r.img.Pix)
}

func (r *Renderer) hline(x, y, length int, col color.RGBA) {
	for i := 0; i < length; i++ {
		r.img.SetRGBA(x+i, y, col)
	}
}

func (r *Renderer) vline(x, y, length int, col color.RGBA) {
	for i := 0; i < length; i++ {
		r.img.SetRGBA(x, y+i, col)
	}
}

// fillPaletteRGBA writes a scale×scale block per cell using a palette lookup.
// States past the end of the palette use its last color.
func fillPaletteRGBA(buf []byte, stride int, cells []uint8, n, scale int, palette []color.RGBA) {
	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		col := palette[idx]
		cx, cy := i%n, i/n
		for py := cy * scale; py < (cy+1)*scale; py++ {
			row := py * stride
			for px := cx * scale; px < (cx+1)*scale; px++ {
				base := row + px*4
				buf[base+0] = col.R
				buf[base+1] = col.G
				buf[base+2] = col.B
				buf[base+3] = col.A
			}
		}
	}
}
