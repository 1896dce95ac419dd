// Package draw implements drawing primitives for pixel displays.
//
// Primitives compute pixel coordinates and hand them to a [Renderer], which
// either stores them in a frame buffer or sends them to the panel directly.
package draw

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/BeatGlow/gc9a01/pixel"
)

// Renderer receives rasterized pixels.
type Renderer interface {
	// Bounds is the drawable area.
	Bounds() image.Rectangle

	// SetPixel sets the pixel at (x, y). Pixels outside Bounds are clipped.
	SetPixel(x, y int, c pixel.RGB565) error
}

// Drawable can draw itself to a Renderer.
type Drawable interface {
	Draw(Renderer) error
}

// Op is an alias for image/draw.Op
type Op = draw.Op

const (
	// Over specifies ``(src in mask) over dst''.
	Over Op = draw.Over

	// Src specifies ``src in mask''.
	Src Op = draw.Src
)

// Canvas adapts a Renderer to [image/draw.Image], so that the standard
// library and font rasterizers can draw to it.
//
// Renderers that can read pixels back (like a frame buffer) are used for
// blending, others are treated as transparent. The first error returned by
// the Renderer is kept and all later writes are dropped.
type Canvas struct {
	r   Renderer
	err error
}

// NewCanvas returns a Canvas that draws to r.
func NewCanvas(r Renderer) *Canvas {
	return &Canvas{r: r}
}

func (c *Canvas) ColorModel() color.Model {
	return pixel.RGB565Model
}

func (c *Canvas) Bounds() image.Rectangle {
	return c.r.Bounds()
}

func (c *Canvas) At(x, y int) color.Color {
	if i, ok := c.r.(image.Image); ok {
		return i.At(x, y)
	}
	return color.Transparent
}

func (c *Canvas) Set(x, y int, v color.Color) {
	if c.err != nil {
		return
	}
	c.err = c.r.SetPixel(x, y, pixel.ToRGB565(v))
}

// Err returns the first error returned by the Renderer.
func (c *Canvas) Err() error {
	return c.err
}

// Picture draws an image with its top left corner at Pt.
type Picture struct {
	Src image.Image
	Pt  image.Point
	Op  Op
}

func (p Picture) Draw(r Renderer) error {
	c := NewCanvas(r)
	b := p.Src.Bounds()
	draw.Draw(c, b.Sub(b.Min).Add(p.Pt), p.Src, b.Min, p.Op)
	return c.Err()
}

// Interface checks.
var (
	_ draw.Image = (*Canvas)(nil)
	_ Drawable   = Picture{}
)
