package pixel

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"
)

// Image is a drawable image that can be cleared and filled.
type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

// Framebuffer is a 16-bits per pixel 5-6-5-bit RGB image.
//
// Pixels are stored row-major as big-endian words, which is the exact byte
// stream the panel expects after a memory write command.
type Framebuffer struct {
	Buffer
}

// NewFramebuffer allocates a w x h frame buffer.
func NewFramebuffer(w, h int) *Framebuffer {
	return &Framebuffer{
		Buffer: Buffer{
			Rect:   image.Rect(0, 0, w, h),
			Pix:    make([]byte, w*2*h),
			Stride: w * 2,
		},
	}
}

func (p *Framebuffer) ColorModel() color.Model {
	return RGB565Model
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (p *Framebuffer) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}

func (p *Framebuffer) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return p.RGB565At(x, y)
}

// RGB565At returns the packed color at (x, y), or black outside the bounds.
func (p *Framebuffer) RGB565At(x, y int) RGB565 {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return Black
	}
	return RGB565{binary.BigEndian.Uint16(p.Pix[p.PixOffset(x, y):])}
}

func (p *Framebuffer) Set(x, y int, c color.Color) {
	p.SetRGB565(x, y, ToRGB565(c))
}

// SetRGB565 sets the pixel at (x, y). Pixels outside the bounds are clipped.
func (p *Framebuffer) SetRGB565(x, y int, c RGB565) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	binary.BigEndian.PutUint16(p.Pix[p.PixOffset(x, y):], c.V)
}

func (p *Framebuffer) Fill(c color.Color) {
	p.FillRGB565(ToRGB565(c))
}

// FillRGB565 sets every pixel to c.
func (p *Framebuffer) FillRGB565(c RGB565) {
	if len(p.Pix) < 2 {
		return
	}
	binary.BigEndian.PutUint16(p.Pix, c.V)
	for i := 2; i < len(p.Pix); i *= 2 {
		copy(p.Pix[i:], p.Pix[:i])
	}
}

// Interface checks.
var (
	_ Image = (*Framebuffer)(nil)
)
