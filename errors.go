package gc9a01

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrBus              = errors.New("gc9a01: bus is invalid")
	ErrResetPin         = errors.New("gc9a01: reset GPIO pin is invalid")
	ErrDCPin            = errors.New("gc9a01: data/command (DC) GPIO pin is invalid")
	ErrBounds           = errors.New("gc9a01: out of display bounds")
	ErrInvalidOperation = errors.New("gc9a01: invalid operation")
)

// OutOfBoundsError is returned for an addressing window that is not ordered
// or does not fit the display. It carries the requested coordinates.
type OutOfBoundsError struct {
	X1, Y1, X2, Y2 int
}

func (err *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s: window (%d,%d)-(%d,%d)", ErrBounds, err.X1, err.Y1, err.X2, err.Y2)
}

// Is reports ErrBounds.
func (err *OutOfBoundsError) Is(target error) bool {
	return target == ErrBounds
}
