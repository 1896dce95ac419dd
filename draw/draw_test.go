package draw

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/BeatGlow/gc9a01/pixel"
)

// testImageRenderer is a Renderer that can be read back.
type testImageRenderer struct {
	*pixel.Framebuffer
}

func (r testImageRenderer) SetPixel(x, y int, c pixel.RGB565) error {
	r.SetRGB565(x, y, c)
	return nil
}

func TestPicture(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 7))
	src.Set(5, 5, color.RGBA{R: 0xff, A: 0xff})
	src.Set(6, 5, color.RGBA{G: 0xff, A: 0xff})
	src.Set(5, 6, color.RGBA{B: 0xff, A: 0xff})
	src.Set(6, 6, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})

	r := newTestRecorder()
	if err := (Picture{Src: src, Pt: image.Pt(10, 20)}).Draw(r); err != nil {
		t.Fatal(err)
	}

	got := make(map[image.Point]pixel.RGB565)
	for i, p := range r.points {
		got[p] = r.colors[i]
	}
	want := map[image.Point]pixel.RGB565{
		{10, 20}: pixel.Red,
		{11, 20}: pixel.Green,
		{10, 21}: pixel.Blue,
		{11, 21}: pixel.White,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d pixels, got %d", len(want), len(got))
	}
	for p, c := range want {
		if got[p] != c {
			t.Errorf("pixel %s: expected %v, got %v", p, c, got[p])
		}
	}
}

func TestPictureBlendsOverReadableRenderer(t *testing.T) {
	r := testImageRenderer{pixel.NewFramebuffer(4, 4)}
	r.FillRGB565(pixel.Red)

	src := image.NewUniform(color.Transparent)
	if err := (Picture{Src: src, Op: Over}).Draw(r); err != nil {
		t.Fatal(err)
	}
	if c := r.RGB565At(1, 1); c != pixel.Red {
		t.Errorf("expected transparent pixels to keep the background, got %v", c)
	}
}

func TestCanvas(t *testing.T) {
	r := newTestRecorder()
	r.failAt = 2
	c := NewCanvas(r)

	if c.ColorModel() != pixel.RGB565Model {
		t.Error("expected the RGB565 color model")
	}
	if c.Bounds() != r.Bounds() {
		t.Errorf("expected bounds %s, got %s", r.Bounds(), c.Bounds())
	}
	if c.At(0, 0) != color.Transparent {
		t.Error("expected write-only renderers to read as transparent")
	}

	c.Set(1, 1, pixel.White)
	c.Set(2, 2, pixel.White)
	c.Set(3, 3, pixel.White)
	if !errors.Is(c.Err(), errTestRecorder) {
		t.Errorf("expected the renderer error, got %v", c.Err())
	}
	if len(r.points) != 1 {
		t.Errorf("expected writes to stop after the first error, got %d points", len(r.points))
	}
}
