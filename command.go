package gc9a01

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Registers (from the GC9A01 datasheet).
const (
	cmdSLPIN   = 0x10 // Sleep In
	cmdSLPOUT  = 0x11 // Sleep Out
	cmdINVON   = 0x21 // Display Inversion On
	cmdDISPOFF = 0x28 // Display Off
	cmdDISPON  = 0x29 // Display On
	cmdCASET   = 0x2A // Column Address Set
	cmdRASET   = 0x2B // Row Address Set
	cmdRAMWR   = 0x2C // Memory Write
	cmdTEON    = 0x35 // Tearing Effect Line On
	cmdMADCTL  = 0x36 // Memory Access Control
	cmdCOLMOD  = 0x3A // Interface Pixel Format
	cmdIRE1    = 0xFE // Inter Register Enable 1
	cmdIRE2    = 0xEF // Inter Register Enable 2
)

// Memory Access Control (MADCTL) BGR order bit (D3).
const madctlBGR = 1 << 3

// Interface Pixel Format (COLMOD) for 16 bits per pixel (RGB 5-6-5).
const colmod16 = 0x05

type opKind uint8

const (
	opCommand opKind = iota
	opData
	opDelay
)

// operation is one step of a panel command sequence.
type operation struct {
	kind  opKind
	data  []byte
	delay time.Duration
}

func command(c byte) operation {
	return operation{kind: opCommand, data: []byte{c}}
}

func data(p ...byte) operation {
	return operation{kind: opData, data: p}
}

func delay(ms int) operation {
	return operation{kind: opDelay, delay: time.Duration(ms) * time.Millisecond}
}

// initSequence brings the panel from reset to an active, addressable state.
// Most registers are undocumented vendor settings; the values must be sent as is.
var initSequence = [...]operation{
	command(cmdIRE2),
	command(0xEB), data(0x14),

	command(cmdIRE1),
	command(cmdIRE2),

	command(0xEB), data(0x14),
	command(0x84), data(0x40),
	command(0x85), data(0xFF),
	command(0x86), data(0xFF),
	command(0x87), data(0xFF),
	command(0x88), data(0x0A),
	command(0x89), data(0x21),
	command(0x8A), data(0x00),
	command(0x8B), data(0x80),
	command(0x8C), data(0x01),
	command(0x8D), data(0x01),
	command(0x8E), data(0xFF),
	command(0x8F), data(0xFF),

	command(0xB6), data(0x00, 0x20), // Display Function Control

	command(cmdMADCTL), data(madctlBGR),
	command(cmdCOLMOD), data(colmod16),

	command(0x90), data(0x08, 0x08, 0x08, 0x08),
	command(0xBD), data(0x06),
	command(0xBC), data(0x00),
	command(0xFF), data(0x60, 0x01, 0x04),

	command(0xC3), data(0x13), // Power Control 2
	command(0xC4), data(0x13), // Power Control 3
	command(0xC9), data(0x22), // Power Control 4

	command(0xBE), data(0x11),
	command(0xE1), data(0x10, 0x0E),
	command(0xDF), data(0x21, 0x0C, 0x02),

	command(0xF0), data(0x45, 0x09, 0x08, 0x08, 0x26, 0x2A), // Set Gamma 1
	command(0xF1), data(0x43, 0x70, 0x72, 0x36, 0x37, 0x6F), // Set Gamma 2
	command(0xF2), data(0x45, 0x09, 0x08, 0x08, 0x26, 0x2A), // Set Gamma 3
	command(0xF3), data(0x43, 0x70, 0x72, 0x36, 0x37, 0x6F), // Set Gamma 4

	command(0xED), data(0x1B, 0x0B),
	command(0xAE), data(0x77),
	command(0xCD), data(0x63),
	command(0x70), data(0x07, 0x07, 0x04, 0x0E, 0x0F, 0x09, 0x07, 0x08, 0x03),

	command(0xE8), data(0x34), // Frame Rate

	command(0x62), data(0x18, 0x0D, 0x71, 0xED, 0x70, 0x70, 0x18, 0x0F, 0x71, 0xEF, 0x70, 0x70),
	command(0x63), data(0x18, 0x11, 0x71, 0xF1, 0x70, 0x70, 0x18, 0x13, 0x71, 0xF3, 0x70, 0x70),
	command(0x64), data(0x28, 0x29, 0xF1, 0x01, 0xF1, 0x00, 0x07),
	command(0x66), data(0x3C, 0x00, 0xCD, 0x67, 0x45, 0x45, 0x10, 0x00, 0x00, 0x00),
	command(0x67), data(0x00, 0x3C, 0x00, 0x00, 0x00, 0x01, 0x54, 0x10, 0x32, 0x98),
	command(0x74), data(0x10, 0x85, 0x80, 0x00, 0x00, 0x4E, 0x00),
	command(0x98), data(0x3E, 0x07),

	command(cmdTEON),
	command(cmdINVON),

	command(cmdSLPOUT),
	delay(120),
	command(cmdDISPON),
	delay(20),
}

// play runs the operations in order and stops at the first error.
func (d *Display) play(ops []operation) (err error) {
	for _, op := range ops {
		switch op.kind {
		case opCommand:
			err = d.command(op.data[0])
		case opData:
			err = d.data(op.data...)
		case opDelay:
			d.sleep(op.delay)
		}
		if err != nil {
			return
		}
	}
	return
}

func (d *Display) updateDC(level gpio.Level) error {
	if d.dcLevel != level {
		if err := d.dc.Out(level); err != nil {
			return err
		}
		d.dcLevel = level
	}
	return nil
}

// command sends a command byte with DC low.
func (d *Display) command(c byte) error {
	if err := d.updateDC(gpio.Low); err != nil {
		return err
	}
	return d.bus.Write([]byte{c})
}

// data sends payload bytes with DC high.
func (d *Display) data(p ...byte) error {
	if len(p) == 0 {
		return nil
	}
	if err := d.updateDC(gpio.High); err != nil {
		return err
	}
	return d.bus.Write(p)
}
