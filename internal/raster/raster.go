// Package raster holds a square pixel grid and the fill primitives used to
// draw icons on it. Edges are hard pixel boundaries; nothing is anti-aliased.
package raster

import (
	"image"
	"image/color"
)

// Canvas is a square, row-major pixel grid with 3 (RGB) or 4 (RGBA)
// channels per pixel. Colors are stored unpremultiplied.
type Canvas struct {
	Size     int
	Channels int
	pix      []byte
}

// New returns a size×size canvas with every pixel set to bg. A size <= 0
// yields an empty canvas. Any channel count other than 4 is treated as RGB.
func New(size, channels int, bg color.NRGBA) *Canvas {
	if channels != 4 {
		channels = 3
	}
	if size < 0 {
		size = 0
	}
	c := &Canvas{Size: size, Channels: channels, pix: make([]byte, size*size*channels)}
	c.FillRect(0, 0, size, size, bg)
	return c
}

// Pix returns the flat row-major channel buffer. Callers must not modify it.
func (c *Canvas) Pix() []byte {
	return c.pix
}

// Set paints a single pixel. Coordinates outside the canvas are ignored.
func (c *Canvas) Set(x, y int, col color.NRGBA) {
	if x < 0 || y < 0 || x >= c.Size || y >= c.Size {
		return
	}
	off := (y*c.Size + x) * c.Channels
	c.pix[off] = col.R
	c.pix[off+1] = col.G
	c.pix[off+2] = col.B
	if c.Channels == 4 {
		c.pix[off+3] = col.A
	}
}

// At returns the color at (x, y). RGB canvases report an opaque alpha.
// Coordinates outside the canvas return the zero color.
func (c *Canvas) At(x, y int) color.NRGBA {
	if x < 0 || y < 0 || x >= c.Size || y >= c.Size {
		return color.NRGBA{}
	}
	off := (y*c.Size + x) * c.Channels
	col := color.NRGBA{R: c.pix[off], G: c.pix[off+1], B: c.pix[off+2], A: 255}
	if c.Channels == 4 {
		col.A = c.pix[off+3]
	}
	return col
}

// FillRect fills the w×h rectangle at (x, y), clamped to the canvas.
func (c *Canvas) FillRect(x, y, w, h int, col color.NRGBA) {
	x0, y0 := max(0, x), max(0, y)
	x1, y1 := min(c.Size, x+w), min(c.Size, y+h)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.Set(px, py, col)
		}
	}
}

// FillFunc calls fn for every pixel of the w×h rectangle at (x, y) that lies
// on the canvas and paints the pixel when fn reports true.
func (c *Canvas) FillFunc(x, y, w, h int, fn func(px, py int) (color.NRGBA, bool)) {
	x0, y0 := max(0, x), max(0, y)
	x1, y1 := min(c.Size, x+w), min(c.Size, y+h)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			if col, ok := fn(px, py); ok {
				c.Set(px, py, col)
			}
		}
	}
}

// FillRoundedRect fills a rectangle whose four corners are quarter discs of
// radius r. The radius is clamped to half the shorter side; r <= 0 draws a
// plain rectangle.
func (c *Canvas) FillRoundedRect(x, y, w, h, r int, col color.NRGBA) {
	r = min(r, w/2, h/2)
	if r <= 0 {
		c.FillRect(x, y, w, h, col)
		return
	}

	c.FillRect(x+r, y, w-2*r, h, col)
	c.FillRect(x, y+r, w, h-2*r, col)

	// Arc centers sit on the inner corner of each r×r corner square.
	// Distances are doubled so pixel centers stay on the integer grid.
	rr := 4 * r * r
	corner := func(cx, cy int) func(px, py int) (color.NRGBA, bool) {
		return func(px, py int) (color.NRGBA, bool) {
			dx := 2*px + 1 - 2*cx
			dy := 2*py + 1 - 2*cy
			return col, dx*dx+dy*dy <= rr
		}
	}
	c.FillFunc(x, y, r, r, corner(x+r, y+r))
	c.FillFunc(x+w-r, y, r, r, corner(x+w-r, y+r))
	c.FillFunc(x, y+h-r, r, r, corner(x+r, y+h-r))
	c.FillFunc(x+w-r, y+h-r, r, r, corner(x+w-r, y+h-r))
}

// Image copies the canvas into an *image.NRGBA.
func (c *Canvas) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.Size, c.Size))
	for y := 0; y < c.Size; y++ {
		for x := 0; x < c.Size; x++ {
			img.SetNRGBA(x, y, c.At(x, y))
		}
	}
	return img
}
