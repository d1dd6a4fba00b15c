package auc

import "errors"

// Sentinel kinds for AUC errors. The texts follow the wording participants
// usually see from data-science tooling.
var (
	ErrEmptyInput     = errors.New("found array with no samples")
	ErrShapeMismatch  = errors.New("shape mismatch")
	ErrNaN            = errors.New("Input contains NaN.")                                                //nolint:staticcheck // participant-facing text
	ErrInfinite       = errors.New("Input contains infinity or a value too large for dtype('float64').") //nolint:staticcheck // participant-facing text
	ErrNotBinary      = errors.New("ground truth must contain only binary indicator values")
	ErrSingleClass    = errors.New("Only one class present in y_true. ROC AUC score is not defined in that case.") //nolint:staticcheck // participant-facing text
	ErrUnknownAverage = errors.New("unknown average")
)
