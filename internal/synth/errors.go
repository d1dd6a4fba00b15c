package synth

import "errors"

// Sentinel kinds for generator errors.
var (
	ErrInvalidOptions = errors.New("invalid generator options")
)
