package draw

import (
	"image"
	"image/color"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

// Alignment of a text run relative to its position.
type Alignment uint8

// Supported alignments.
const (
	AlignLeft   Alignment = iota // Text starts at the position
	AlignCenter                  // Text is centered on the position
	AlignRight                   // Text ends at the position
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// DefaultFaceSize is the size in points of DefaultFace, giving 10 pixel wide glyphs.
const DefaultFaceSize = 17

var (
	defaultFaceOnce sync.Once
	defaultFace     font.Face
)

// DefaultFace is a monospace Go Mono face. If the embedded font can not be
// parsed, the 7x13 bitmap face is used instead.
func DefaultFace() font.Face {
	defaultFaceOnce.Do(func() {
		f, err := truetype.Parse(gomono.TTF)
		if err != nil {
			defaultFace = basicfont.Face7x13
			return
		}
		defaultFace = truetype.NewFace(f, &truetype.Options{
			Size:    DefaultFaceSize,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	})
	return defaultFace
}

// Text is a run of glyphs placed at Position. Lines are separated by "\n".
//
// The text block is vertically centered on Position.Y; horizontal placement
// depends on the Alignment.
type Text struct {
	Content   string
	Position  image.Point
	Alignment Alignment
	Color     color.Color

	// Face used to render the glyphs, nil selects DefaultFace.
	Face font.Face

	// LineHeight in percent of the font height, 0 means 150%.
	LineHeight int
}

func (t Text) Draw(r Renderer) error {
	face := t.Face
	if face == nil {
		face = DefaultFace()
	}
	lineHeight := t.LineHeight
	if lineHeight <= 0 {
		lineHeight = 150
	}

	var (
		c       = NewCanvas(r)
		src     = image.NewUniform(t.colorOrWhite())
		metrics = face.Metrics()
		lines   = strings.Split(t.Content, "\n")
		advance = metrics.Height.Mul(fixed.I(lineHeight)) / 100
		d       = &font.Drawer{Dst: c, Src: src, Face: face}
	)

	// Baseline of the first line, so that the middle of the block lands on Position.Y.
	block := advance*fixed.Int26_6(len(lines)-1) + metrics.Ascent + metrics.Descent
	baseline := fixed.I(t.Position.Y) - block/2 + metrics.Ascent

	for i, s := range lines {
		x := fixed.I(t.Position.X)
		switch t.Alignment {
		case AlignCenter:
			x -= d.MeasureString(s) / 2
		case AlignRight:
			x -= d.MeasureString(s)
		}
		d.Dot = fixed.Point26_6{X: x, Y: baseline + advance*fixed.Int26_6(i)}
		d.DrawString(s)
		if err := c.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (t Text) colorOrWhite() color.Color {
	if t.Color == nil {
		return color.White
	}
	return t.Color
}

var _ Drawable = Text{}
