package conn

import "errors"

// Bus errors.
var (
	ErrConfig            = errors.New("conn: invalid bus configuration")
	ErrInvalidParameters = errors.New("conn: invalid parameters")
	ErrWriteFailed       = errors.New("conn: write failed")
	ErrReadFailed        = errors.New("conn: read failed")
	ErrTransferFailed    = errors.New("conn: transfer failed")
)
