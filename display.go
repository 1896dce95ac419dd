// Package gc9a01 is a driver for round 240x240 TFT displays with a GC9A01
// controller, connected over SPI.
package gc9a01

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"os"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/gc9a01/draw"
	"github.com/BeatGlow/gc9a01/pixel"
)

var debug bool

func init() {
	debug = os.Getenv("DISPLAY_DEBUG") != ""
}

// Panel size, this is also the maximum size supported by the controller.
const (
	DefaultWidth  = 240
	DefaultHeight = 240
)

// Bus sends bytes to the panel, typically a *conn.SPI.
type Bus interface {
	Write(p []byte) error
}

// Strategy selects how drawn pixels reach the panel.
type Strategy uint8

// Supported strategies.
const (
	// Buffered keeps a frame buffer in memory that is sent by Render.
	Buffered Strategy = iota

	// Direct writes every pixel to the panel as it is drawn, no frame buffer
	// is allocated.
	Direct
)

func (s Strategy) String() string {
	switch s {
	case Buffered:
		return "buffered"
	case Direct:
		return "direct"
	default:
		return fmt.Sprintf("Strategy(%d)", uint8(s))
	}
}

// Config is the display configuration.
type Config struct {
	// Width of the display in pixels.
	Width int

	// Height of the display in pixels.
	Height int

	// Strategy for drawing.
	Strategy Strategy

	// SleepDelay is waited after each of the sleep and wake commands.
	SleepDelay time.Duration
}

// DefaultConfig are the default configuration values.
var DefaultConfig = Config{
	Width:  DefaultWidth,
	Height: DefaultHeight,
}

type state uint8

const (
	uninitialized state = iota
	awake
	asleep
)

func (s state) String() string {
	switch s {
	case awake:
		return "awake"
	case asleep:
		return "asleep"
	default:
		return "uninitialized"
	}
}

// Display is a GC9A01 display.
type Display struct {
	bus        Bus
	dc         gpio.PinOut
	dcLevel    gpio.Level
	reset      gpio.PinOut
	width      int
	height     int
	sleepDelay time.Duration
	renderer   renderer
	state      state

	// sleep suspends the caller, replaced in tests.
	sleep func(time.Duration)
}

// New returns a display that communicates over bus, using the data/command
// and reset pins. The display has to be initialized with Begin before drawing.
func New(bus Bus, dc, reset gpio.PinOut, config *Config) (*Display, error) {
	if config == nil {
		config = new(Config)
		*config = DefaultConfig
	}

	if bus == nil {
		return nil, ErrBus
	}
	if dc == nil || dc == gpio.INVALID {
		return nil, ErrDCPin
	}
	if reset == nil || reset == gpio.INVALID {
		return nil, ErrResetPin
	}

	width, height := config.Width, config.Height
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}
	if width < 0 || height < 0 || width > DefaultWidth || height > DefaultHeight {
		return nil, fmt.Errorf("gc9a01: invalid size %dx%d, maximum size is %dx%d", width, height, DefaultWidth, DefaultHeight)
	}

	d := &Display{
		bus:        bus,
		dc:         dc,
		reset:      reset,
		width:      width,
		height:     height,
		sleepDelay: max(config.SleepDelay, 0),
		sleep:      time.Sleep,
	}

	switch config.Strategy {
	case Buffered:
		d.renderer = &bufferedRenderer{
			Framebuffer: pixel.NewFramebuffer(width, height),
			d:           d,
		}
	case Direct:
		d.renderer = &directRenderer{d: d}
	default:
		return nil, fmt.Errorf("gc9a01: invalid strategy %d", config.Strategy)
	}

	// Start in command mode, so that the cached DC level is known.
	if err := dc.Out(gpio.Low); err != nil {
		return nil, err
	}
	d.dcLevel = gpio.Low

	return d, nil
}

func (d *Display) String() string {
	return fmt.Sprintf("GC9A01 %dx%d", d.width, d.height)
}

// Bounds is the display bounding box (dimensions).
func (d *Display) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.width, d.height)
}

// Framebuffer returns the frame buffer, or nil for the Direct strategy.
func (d *Display) Framebuffer() *pixel.Framebuffer {
	if r, ok := d.renderer.(*bufferedRenderer); ok {
		return r.Framebuffer
	}
	return nil
}

// Begin resets the panel and sends the initialization sequence.
func (d *Display) Begin() error {
	if debug {
		log.Printf("gc9a01: initializing %s", d)
	}
	if err := d.hardwareReset(); err != nil {
		return err
	}
	if err := d.play(initSequence[:]); err != nil {
		return err
	}
	d.state = awake
	return nil
}

func (d *Display) hardwareReset() (err error) {
	for _, step := range []struct {
		level gpio.Level
		wait  time.Duration
	}{
		{gpio.High, 10 * time.Millisecond},
		{gpio.Low, 120 * time.Millisecond},
		{gpio.High, 120 * time.Millisecond},
	} {
		if err = d.reset.Out(step.level); err != nil {
			return fmt.Errorf("gc9a01: reset: %w", err)
		}
		d.sleep(step.wait)
	}
	return
}

// ready checks if the panel accepts drawing operations.
func (d *Display) ready(op string) error {
	if d.state != awake {
		return fmt.Errorf("%w: %s while %s", ErrInvalidOperation, op, d.state)
	}
	return nil
}

// Clear fills the display with a color. A nil color is black.
func (d *Display) Clear(c color.Color) error {
	if err := d.ready("clear"); err != nil {
		return err
	}
	return d.renderer.clear(pixel.ToRGB565(c))
}

// SetPixel sets the pixel at (x, y), pixels outside of the display are ignored.
func (d *Display) SetPixel(x, y int, c pixel.RGB565) error {
	if err := d.ready("set pixel"); err != nil {
		return err
	}
	return d.renderer.SetPixel(x, y, c)
}

// Draw a shape.
func (d *Display) Draw(shape draw.Drawable) error {
	if err := d.ready("draw"); err != nil {
		return err
	}
	return shape.Draw(d.renderer)
}

// Render sends the frame buffer to the panel. It is a no-op for the Direct
// strategy.
func (d *Display) Render() error {
	if err := d.ready("render"); err != nil {
		return err
	}
	return d.renderer.render()
}

// SetBackground fills the whole panel with a color, bypassing the frame buffer.
// The panel is put to sleep while the pixels are sent.
func (d *Display) SetBackground(c color.Color) error {
	if err := d.ready("set background"); err != nil {
		return err
	}
	v := pixel.ToRGB565(c)
	if debug {
		log.Printf("gc9a01: set background %s", v)
	}
	if err := d.Sleep(); err != nil {
		return err
	}
	if err := d.fill(v); err != nil {
		return err
	}
	d.renderer.setBackground(v)
	return d.Wake()
}

// fill streams a solid color to the whole panel, one row at a time.
func (d *Display) fill(c pixel.RGB565) error {
	if err := d.setFullWindow(); err != nil {
		return err
	}
	var (
		hi, lo = c.Bytes()
		row    = make([]byte, d.width*2)
	)
	for i := 0; i < len(row); i += 2 {
		row[i], row[i+1] = hi, lo
	}
	for y := 0; y < d.height; y++ {
		if err := d.data(row...); err != nil {
			return err
		}
	}
	return nil
}

// Sleep turns the display off and puts the panel in sleep mode.
func (d *Display) Sleep() error {
	if d.state == uninitialized {
		return fmt.Errorf("%w: sleep while %s", ErrInvalidOperation, d.state)
	}
	if debug {
		log.Print("gc9a01: sleep")
	}
	if err := d.play(d.settle(command(cmdDISPOFF), command(cmdSLPIN))); err != nil {
		return err
	}
	d.state = asleep
	return nil
}

// Wake takes the panel out of sleep mode and turns the display on.
func (d *Display) Wake() error {
	if d.state == uninitialized {
		return fmt.Errorf("%w: wake while %s", ErrInvalidOperation, d.state)
	}
	if debug {
		log.Print("gc9a01: wake")
	}
	if err := d.play(d.settle(command(cmdSLPOUT), command(cmdDISPON))); err != nil {
		return err
	}
	d.state = awake
	return nil
}

// settle adds the configured sleep delay after each operation.
func (d *Display) settle(ops ...operation) []operation {
	if d.sleepDelay <= 0 {
		return ops
	}
	var out []operation
	for _, op := range ops {
		out = append(out, op, operation{kind: opDelay, delay: d.sleepDelay})
	}
	return out
}

// Close puts the panel to sleep and closes the bus, if it can be closed.
func (d *Display) Close() error {
	var err error
	if d.state == awake {
		err = d.Sleep()
	}
	if c, ok := d.bus.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Interface checks.
var (
	_ fmt.Stringer = (*Display)(nil)
	_ io.Closer    = (*Display)(nil)
)
