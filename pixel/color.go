package pixel

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// RGB565Model converts any color to RGB565.
var RGB565Model color.Model = color.ModelFunc(rgb565Model)

// Common colors.
var (
	Black = RGB565{0x0000}
	White = RGB565{0xffff}
	Red   = RGB565{0xf800}
	Green = RGB565{0x07e0}
	Blue  = RGB565{0x001f}
)

// RGB565 represents a 16-bit 5-6-5 packed RGB color, as transmitted to the panel.
type RGB565 struct {
	// CRed, 5, CGreen, 6, CBlue, 5
	V uint16
}

// Pack an 8-bit per channel color. The low bits of each channel are dropped.
func Pack(r, g, b uint8) RGB565 {
	return RGB565{uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)}
}

// Unpack returns the 8-bit channels, with the high bits replicated into the low bits.
func (c RGB565) Unpack() (r, g, b uint8) {
	r = uint8(c.V>>11) & 0x1f
	g = uint8(c.V>>5) & 0x3f
	b = uint8(c.V) & 0x1f
	return r<<3 | r>>2, g<<2 | g>>4, b<<3 | b>>2
}

// Bytes returns the big-endian wire representation.
func (c RGB565) Bytes() (hi, lo byte) {
	return byte(c.V >> 8), byte(c.V)
}

func (c RGB565) RGBA() (r, g, b, a uint32) {
	// Build a 5- or 6-bit value at the top of the low byte of each component.
	red := (c.V & 0xF800) >> 8
	grn := (c.V & 0x07E0) >> 3
	blu := (c.V & 0x001F) << 3
	// Duplicate the high bits in the low bits.
	red |= red >> 5
	grn |= grn >> 6
	blu |= blu >> 5
	// Duplicate the whole value in the high byte.
	red |= red << 8
	grn |= grn << 8
	blu |= blu << 8
	return uint32(red), uint32(grn), uint32(blu), 0xffff
}

func (c RGB565) String() string {
	return fmt.Sprintf("RGB565(%#04x)", c.V)
}

func rgb565Model(c color.Color) color.Color {
	if c, ok := c.(RGB565); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	r = (r & 0xF800)
	g = (g & 0xFC00) >> 5
	b = (b & 0xF800) >> 11
	return RGB565{uint16(r | g | b)}
}

// ToRGB565 converts any color to its packed representation.
func ToRGB565(c color.Color) RGB565 {
	if c == nil {
		return Black
	}
	return rgb565Model(c).(RGB565)
}

// ParseHex parses a "#rrggbb" or "rrggbb" string. The short "#rgb" form is accepted too.
func ParseHex(s string) (RGB565, error) {
	v := strings.TrimPrefix(s, "#")
	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	if len(v) != 6 {
		return RGB565{}, fmt.Errorf("pixel: invalid color %q", s)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return RGB565{}, fmt.Errorf("pixel: invalid color %q: %w", s, err)
	}
	return Pack(uint8(n>>16), uint8(n>>8), uint8(n)), nil
}
