package gc9a01

import "log"

// SetWindow sets the addressing window that the following pixel data is
// written to, (x1, y1) and (x2, y2) are inclusive.
//
// The window must be ordered and within the display bounds, otherwise an
// *OutOfBoundsError is returned and nothing is sent to the panel.
func (d *Display) SetWindow(x1, y1, x2, y2 int) error {
	if x1 < 0 || y1 < 0 || x1 > x2 || y1 > y2 || x2 >= d.width || y2 >= d.height {
		return &OutOfBoundsError{X1: x1, Y1: y1, X2: x2, Y2: y2}
	}
	if debug {
		log.Printf("gc9a01: set window (%d,%d)-(%d,%d)", x1, y1, x2, y2)
	}
	return d.play([]operation{
		command(cmdCASET), data(byte(x1>>8), byte(x1), byte(x2>>8), byte(x2)), // Column address
		command(cmdRASET), data(byte(y1>>8), byte(y1), byte(y2>>8), byte(y2)), // Row address
		command(cmdRAMWR), // Write to RAM
	})
}

func (d *Display) setFullWindow() error {
	return d.SetWindow(0, 0, d.width-1, d.height-1)
}
