package gc9a01

import (
	"image"
	"image/color"

	"github.com/BeatGlow/gc9a01/draw"
	"github.com/BeatGlow/gc9a01/pixel"
)

// renderer is a drawing strategy.
type renderer interface {
	draw.Renderer

	clear(pixel.RGB565) error
	render() error

	// setBackground records a color that was sent to the whole panel
	// without going through the renderer.
	setBackground(pixel.RGB565)
}

// bufferedRenderer draws to a frame buffer that is sent to the panel in one go.
type bufferedRenderer struct {
	*pixel.Framebuffer
	d *Display
}

func (r *bufferedRenderer) SetPixel(x, y int, c pixel.RGB565) error {
	r.SetRGB565(x, y, c)
	return nil
}

func (r *bufferedRenderer) clear(c pixel.RGB565) error {
	r.FillRGB565(c)
	return nil
}

func (r *bufferedRenderer) render() error {
	if err := r.d.setFullWindow(); err != nil {
		return err
	}
	return r.d.data(r.Pix...)
}

// setBackground leaves the frame buffer alone, the next Render overwrites
// the panel anyway.
func (r *bufferedRenderer) setBackground(pixel.RGB565) {}

// directRenderer sends every pixel to the panel through a 1x1 window.
//
// The panel can not be read back, so the last solid fill stands in for the
// panel contents when blending partially covered pixels, like glyph edges.
type directRenderer struct {
	d          *Display
	background pixel.RGB565
}

func (r *directRenderer) Bounds() image.Rectangle {
	return r.d.Bounds()
}

func (r *directRenderer) ColorModel() color.Model {
	return pixel.RGB565Model
}

func (r *directRenderer) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(r.Bounds()) {
		return color.Transparent
	}
	return r.background
}

func (r *directRenderer) SetPixel(x, y int, c pixel.RGB565) error {
	if !(image.Point{X: x, Y: y}).In(r.Bounds()) {
		return nil
	}
	if err := r.d.SetWindow(x, y, x, y); err != nil {
		return err
	}
	hi, lo := c.Bytes()
	return r.d.data(hi, lo)
}

func (r *directRenderer) clear(c pixel.RGB565) error {
	if err := r.d.fill(c); err != nil {
		return err
	}
	r.background = c
	return nil
}

func (r *directRenderer) render() error {
	return nil
}

func (r *directRenderer) setBackground(c pixel.RGB565) {
	r.background = c
}

// Interface checks.
var (
	_ renderer    = (*bufferedRenderer)(nil)
	_ renderer    = (*directRenderer)(nil)
	_ image.Image = (*bufferedRenderer)(nil)
	_ image.Image = (*directRenderer)(nil)
)
