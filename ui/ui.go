// Package ui contains the views shown on the knob display.
package ui

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/BeatGlow/gc9a01/draw"
)

// ErrNoView is returned when selecting a view that does not exist.
var ErrNoView = errors.New("ui: no such view")

// Screen is what a view draws to, typically a *gc9a01.Display.
type Screen interface {
	// Bounds is the screen bounding box (dimensions).
	Bounds() image.Rectangle

	// Clear fills the screen with a color.
	Clear(color.Color) error

	// Draw a shape.
	Draw(draw.Drawable) error

	// Render makes the drawn content visible.
	Render() error
}

// View is one screen of content.
type View interface {
	Name() string
	Render(Screen) error
}

// Manager keeps an ordered list of views.
type Manager struct {
	views []View
}

// Add a view.
func (m *Manager) Add(v View) {
	m.views = append(m.views, v)
}

// Len is the number of views.
func (m *Manager) Len() int {
	return len(m.views)
}

// Select renders the view at index i to the screen.
func (m *Manager) Select(i int, s Screen) error {
	if i < 0 || i >= len(m.views) {
		return fmt.Errorf("%w: %d of %d", ErrNoView, i, len(m.views))
	}
	v := m.views[i]
	if err := v.Render(s); err != nil {
		return fmt.Errorf("ui: render %s: %w", v.Name(), err)
	}
	return s.Render()
}

func center(r image.Rectangle) image.Point {
	return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}
