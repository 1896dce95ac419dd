package ui

import (
	"image/color"

	"github.com/BeatGlow/gc9a01/draw"
	"github.com/BeatGlow/gc9a01/pixel"
)

// LightView shows its name in white on black.
type LightView struct {
	name string
}

func NewLightView(name string) *LightView {
	return &LightView{name: name}
}

func (v *LightView) Name() string { return v.name }

func (v *LightView) Render(s Screen) error {
	if err := s.Clear(pixel.Black); err != nil {
		return err
	}
	return s.Draw(draw.Text{
		Content:   v.name,
		Position:  center(s.Bounds()),
		Alignment: draw.AlignCenter,
		Color:     pixel.White,
	})
}

// ColorView fills the screen with a color, with a ring along the round edge
// and its name in the middle.
type ColorView struct {
	name string

	// Color of the background.
	Color color.Color

	// Foreground color of the ring and text, nil is white.
	Foreground color.Color
}

func NewColorView(name string, c color.Color) *ColorView {
	return &ColorView{name: name, Color: c}
}

func (v *ColorView) Name() string { return v.name }

func (v *ColorView) Render(s Screen) error {
	fg := v.Foreground
	if fg == nil {
		fg = pixel.White
	}
	var (
		b      = s.Bounds()
		c      = center(b)
		radius = min(b.Dx(), b.Dy())/2 - 4
	)
	if err := s.Clear(v.Color); err != nil {
		return err
	}
	for _, shape := range []draw.Drawable{
		draw.Circle{Center: c, Radius: radius, Color: fg},
		draw.Circle{Center: c, Radius: radius - 1, Color: fg},
		draw.Text{Content: v.name, Position: c, Alignment: draw.AlignCenter, Color: fg},
	} {
		if err := s.Draw(shape); err != nil {
			return err
		}
	}
	return nil
}

// Interface checks.
var (
	_ View = (*LightView)(nil)
	_ View = (*ColorView)(nil)
)
