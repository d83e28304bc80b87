package engine

import "errors"

// Errors
var (
	ErrInvalidSide       = errors.New("invalid side")
	ErrUnknownInstrument = errors.New("unknown instrument")
)
