package pixel

import (
	"bytes"
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func TestFramebuffer(t *testing.T) {
	testCases := []image.Point{
		{},
		image.Pt(1, 1),
		image.Pt(2, 2),
		image.Pt(240, 240),
		image.Pt(31, 7),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			i := NewFramebuffer(test.X, test.Y)

			if v := i.Bounds().Size(); !v.Eq(test) {
				it.Errorf("expected image size %s, got %s", test, v)
			}
			if v := len(i.Pix); v != test.X*test.Y*2 {
				it.Errorf("expected %d bytes of pixel data, got %d", test.X*test.Y*2, v)
			}

			it.Run("in-bounds", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := testRandomColor()
						i.Set(x, y, c)
						if v := i.ColorModel().Convert(c); i.At(x, y) != v {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
						}
					}
				}
			})

			it.Run("out-bounds", func(itt *testing.T) {
				before := append([]byte(nil), i.Pix...)
				for y := -test.Y - 1; y < test.Y*2+1; y++ {
					for x := -test.X - 1; x < test.X*2+1; x++ {
						if x >= 0 && x < test.X && y >= 0 && y < test.Y {
							continue
						}
						i.Set(x, y, testRandomColor())
						if v := i.At(x, y); v != color.Transparent {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected transparent", x, y, v)
						}
					}
				}
				if !bytes.Equal(before, i.Pix) {
					itt.Fatal("expected writes outside the bounds to be clipped")
				}
			})

			it.Run("fill", func(itt *testing.T) {
				c := testRandomColor()
				i.Fill(c)
				want := ToRGB565(c)
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						if v := i.RGB565At(x, y); v != want {
							itt.Fatalf("pixel (%d,%d) is %v, expected %v", x, y, v, want)
						}
					}
				}
			})

			it.Run("clear", func(itt *testing.T) {
				i.Clear()
				for j, v := range i.Pix {
					if v != 0 {
						itt.Fatalf("byte %d is %#02x, expected zero", j, v)
					}
				}
			})
		})
	}
}

func TestFramebufferByteOrder(t *testing.T) {
	i := NewFramebuffer(4, 2)
	i.SetRGB565(1, 1, RGB565{0x1234})
	offset := i.PixOffset(1, 1)
	if offset != 10 {
		t.Fatalf("expected offset 10, got %d", offset)
	}
	if i.Pix[offset] != 0x12 || i.Pix[offset+1] != 0x34 {
		t.Errorf("expected big-endian 0x12 0x34, got %#02x %#02x", i.Pix[offset], i.Pix[offset+1])
	}
}

func testRandomColor() color.Color {
	return color.RGBA{
		R: uint8(rand.Intn(255)),
		G: uint8(rand.Intn(255)),
		B: uint8(rand.Intn(255)),
		A: 0xFF,
	}
}
