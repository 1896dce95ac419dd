package draw

import (
	"fmt"
	"image"
	"image/color"

	"github.com/BeatGlow/gc9a01/pixel"
)

// Line between two points, both ends included.
type Line struct {
	From, To image.Point
	Color    color.Color
}

func (l Line) Draw(r Renderer) error {
	return line(r, l.From.X, l.From.Y, l.To.X, l.To.Y, pixel.ToRGB565(l.Color))
}

// Circle outline around Center.
type Circle struct {
	Center image.Point
	Radius int
	Color  color.Color
}

func (c Circle) Draw(r Renderer) error {
	if c.Radius < 0 {
		return fmt.Errorf("draw: invalid circle radius %d", c.Radius)
	}
	return circle(r, c.Center.X, c.Center.Y, c.Radius, pixel.ToRGB565(c.Color))
}

// FilledCircle is a circle with its interior filled.
type FilledCircle struct {
	Center image.Point
	Radius int
	Color  color.Color
}

func (c FilledCircle) Draw(r Renderer) error {
	if c.Radius < 0 {
		return fmt.Errorf("draw: invalid circle radius %d", c.Radius)
	}
	return filledCircle(r, c.Center.X, c.Center.Y, c.Radius, pixel.ToRGB565(c.Color))
}

// Rectangle outline, Rect.Max is exclusive.
type Rectangle struct {
	Rect  image.Rectangle
	Color color.Color
}

func (s Rectangle) Draw(r Renderer) error {
	rect := s.Rect.Canon()
	if rect.Empty() {
		return nil
	}
	var (
		c      = pixel.ToRGB565(s.Color)
		x0, y0 = rect.Min.X, rect.Min.Y
		x1, y1 = rect.Max.X - 1, rect.Max.Y - 1
	)
	for _, l := range [4][4]int{
		{x0, y0, x1, y0},
		{x0, y1, x1, y1},
		{x0, y0, x0, y1},
		{x1, y0, x1, y1},
	} {
		if err := line(r, l[0], l[1], l[2], l[3], c); err != nil {
			return err
		}
	}
	return nil
}

// Box is a filled rectangle, Rect.Max is exclusive.
type Box struct {
	Rect  image.Rectangle
	Color color.Color
}

func (s Box) Draw(r Renderer) error {
	rect := s.Rect.Canon()
	c := pixel.ToRGB565(s.Color)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		if err := span(r, rect.Min.X, rect.Max.X-1, y, c); err != nil {
			return err
		}
	}
	return nil
}

// RoundedRectangle is a rectangle outline with Radius pixels rounded corners.
type RoundedRectangle struct {
	Rect   image.Rectangle
	Radius int
	Color  color.Color
}

func (s RoundedRectangle) Draw(r Renderer) error {
	rect := s.Rect.Canon()
	if rect.Empty() {
		return nil
	}
	var (
		c    = pixel.ToRGB565(s.Color)
		x, y = rect.Min.X, rect.Min.Y
		w, h = rect.Dx(), rect.Dy()
		rad  = min(s.Radius, (w-1)/2, (h-1)/2)
	)
	if rad <= 0 {
		return Rectangle{Rect: rect, Color: s.Color}.Draw(r)
	}
	for _, l := range [4][4]int{
		{x + rad, y, x + w - rad - 1, y},
		{x + rad, y + h - 1, x + w - rad - 1, y + h - 1},
		{x, y + rad, x, y + h - rad - 1},
		{x + w - 1, y + rad, x + w - 1, y + h - rad - 1},
	} {
		if err := line(r, l[0], l[1], l[2], l[3], c); err != nil {
			return err
		}
	}
	for _, corner := range [4][3]int{
		{x + rad, y + rad, 1},
		{x + w - rad - 1, y + rad, 2},
		{x + w - rad - 1, y + h - rad - 1, 4},
		{x + rad, y + h - rad - 1, 8},
	} {
		if err := roundedCorner(r, corner[0], corner[1], rad, corner[2], c); err != nil {
			return err
		}
	}
	return nil
}

// line is the integer Bresenham algorithm; it covers every octant,
// including horizontal, vertical and single point lines.
func line(r Renderer, x1, y1, x2, y2 int, c pixel.RGB565) error {
	var (
		dx, dy = abs(x2 - x1), abs(y2 - y1)
		sx, sy = 1, 1
		e      = dx - dy
	)
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	for {
		if err := r.SetPixel(x1, y1, c); err != nil {
			return err
		}
		if x1 == x2 && y1 == y2 {
			return nil
		}
		e2 := e * 2
		if e2 > -dy {
			e -= dy
			x1 += sx
		}
		if e2 < dx {
			e += dx
			y1 += sy
		}
	}
}

// span draws a horizontal run from x1 to x2 (inclusive).
func span(r Renderer, x1, x2, y int, c pixel.RGB565) error {
	for x := x1; x <= x2; x++ {
		if err := r.SetPixel(x, y, c); err != nil {
			return err
		}
	}
	return nil
}

// circle is the midpoint circle algorithm, plotting 8 symmetric points per step.
func circle(r Renderer, x0, y0, radius int, c pixel.RGB565) error {
	var (
		f    = 1 - radius
		ddFx = 1
		ddFy = -2 * radius
		x    = 0
		y    = radius
	)
	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}

		x++
		ddFx += 2
		f += ddFx

		for _, p := range [8][2]int{
			{x0 + x, y0 + y},
			{x0 - x, y0 + y},
			{x0 + x, y0 - y},
			{x0 - x, y0 - y},
			{x0 + y, y0 + x},
			{x0 - y, y0 + x},
			{x0 + y, y0 - x},
			{x0 - y, y0 - x},
		} {
			if err := r.SetPixel(p[0], p[1], c); err != nil {
				return err
			}
		}
	}

	// The loop starts past the axis points.
	for _, p := range [4][2]int{
		{x0, y0 + radius},
		{x0, y0 - radius},
		{x0 + radius, y0},
		{x0 - radius, y0},
	} {
		if err := r.SetPixel(p[0], p[1], c); err != nil {
			return err
		}
	}
	return nil
}

// filledCircle walks the midpoint circle to find the half width of every row,
// then draws each row once.
func filledCircle(r Renderer, x0, y0, radius int, c pixel.RGB565) error {
	half := make([]int, radius+1)
	for i := range half {
		half[i] = -1
	}
	half[0] = radius

	var (
		f    = 1 - radius
		ddFx = 1
		ddFy = -2 * radius
		x    = 0
		y    = radius
	)
	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}

		x++
		ddFx += 2
		f += ddFx

		half[y] = max(half[y], x)
		half[x] = max(half[x], y)
	}

	for dy, w := range half {
		if w < 0 {
			continue
		}
		if err := span(r, x0-w, x0+w, y0-dy, c); err != nil {
			return err
		}
		if dy == 0 {
			continue
		}
		if err := span(r, x0-w, x0+w, y0+dy, c); err != nil {
			return err
		}
	}
	return nil
}

// roundedCorner draws the circle quadrants selected by the quadrant bit mask
// (1: top left, 2: top right, 4: bottom right, 8: bottom left).
func roundedCorner(r Renderer, x0, y0, radius, quadrant int, c pixel.RGB565) error {
	var (
		f    = 1 - radius
		ddFx = 1
		ddFy = -2 * radius
		x    = 0
		y    = radius
		err  error
	)
	set := func(x, y int) {
		if err == nil {
			err = r.SetPixel(x, y, c)
		}
	}
	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}

		x++
		ddFx += 2
		f += ddFx

		if quadrant&4 != 0 {
			set(x0+x, y0+y)
			set(x0+y, y0+x)
		}
		if quadrant&2 != 0 {
			set(x0+x, y0-y)
			set(x0+y, y0-x)
		}
		if quadrant&8 != 0 {
			set(x0-y, y0+x)
			set(x0-x, y0+y)
		}
		if quadrant&1 != 0 {
			set(x0-y, y0-x)
			set(x0-x, y0-y)
		}
	}
	return err
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Interface checks.
var (
	_ Drawable = Line{}
	_ Drawable = Circle{}
	_ Drawable = FilledCircle{}
	_ Drawable = Rectangle{}
	_ Drawable = Box{}
	_ Drawable = RoundedRectangle{}
)
