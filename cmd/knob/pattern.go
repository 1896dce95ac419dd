package main

import (
	"image"
	"image/color"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/BeatGlow/gc9a01"
	"github.com/BeatGlow/gc9a01/draw"
	"github.com/BeatGlow/gc9a01/pixel"
)

var framesFlag int

var patternCmd = &cobra.Command{
	Use:   "pattern",
	Short: "draw an animated test pattern",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		d, bus, err := openDisplay()
		if err != nil {
			return err
		}
		defer bus.Close()

		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()

		log.Print("hit control-c to stop...")
		for offset := 0; framesFlag == 0 || offset < framesFlag; offset++ {
			if err = drawPattern(d, offset); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
		return nil
	},
}

func init() {
	patternCmd.Flags().IntVar(&framesFlag, `frames`, 0, `number of frames to draw (default: until interrupted)`)
	rootCmd.AddCommand(patternCmd)
}

func gradient(r image.Rectangle, offset int) image.Image {
	i := image.NewRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i.SetRGBA(x, y, color.RGBA{
				R: uint8(x + y + offset),
				G: uint8(x - y + offset),
				B: uint8(x + y - offset),
				A: 0xff,
			})
		}
	}
	return i
}

func drawPattern(d *gc9a01.Display, offset int) error {
	var (
		r = d.Bounds()
		c = image.Pt(r.Dx()/2, r.Dy()/2)
	)
	for _, shape := range []draw.Drawable{
		draw.Picture{Src: gradient(r, offset), Op: draw.Src},
		draw.Circle{Center: c, Radius: r.Dx()/2 - 1, Color: pixel.White},
		draw.FilledCircle{Center: c, Radius: 40, Color: pixel.Black},
		draw.Line{From: image.Pt(c.X-60, c.Y), To: image.Pt(c.X+60, c.Y), Color: pixel.White},
		draw.Line{From: image.Pt(c.X, c.Y-60), To: image.Pt(c.X, c.Y+60), Color: pixel.White},
		draw.RoundedRectangle{Rect: image.Rect(c.X-70, c.Y+50, c.X+70, c.Y+80), Radius: 8, Color: pixel.White},
		draw.Text{Content: d.String(), Position: image.Pt(c.X, c.Y+65), Alignment: draw.AlignCenter},
	} {
		if err := d.Draw(shape); err != nil {
			return err
		}
	}
	return d.Render()
}
