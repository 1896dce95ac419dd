// Package pixel implements the packed 16-bit color encoding and the frame buffer used by RGB565 panels.
//
// The types in this package are compatible with Go's native [color.Color] and
// [image.Image] / [draw.Image] interfaces.
package pixel
