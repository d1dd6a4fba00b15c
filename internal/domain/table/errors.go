package table

import "errors"

// Sentinel kinds for frame errors.
var (
	ErrColumnNotFound  = errors.New("column not found")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrRaggedColumns   = errors.New("columns have different lengths")
	ErrNotNumeric      = errors.New("column is not numeric")
)
