package csvio

import "errors"

// Sentinel kinds for CSV errors.
var (
	ErrEmptyInput = errors.New("csv input has no header row")
	ErrRead       = errors.New("read csv")
	ErrWrite      = errors.New("write csv")
)
