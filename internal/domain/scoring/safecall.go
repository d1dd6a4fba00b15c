package scoring

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// safeCall runs a metric and sorts its failure into a participant or an
// internal error. The solution flags describe the ground truth handed to the
// metric and drive TreatAsParticipantError.
func safeCall(metric func() (float64, error), solutionNumeric, solutionHasBools bool) (score float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			score = 0
			err = internalError("metric", fmt.Errorf("%w: %v", ErrMetricPanic, r))
		}
	}()

	score, err = metric()
	if err == nil {
		return score, nil
	}

	var se *Error
	if errors.As(err, &se) {
		return 0, se
	}
	if TreatAsParticipantError(err.Error(), solutionNumeric, solutionHasBools) {
		return 0, participantError(err)
	}
	return 0, internalError("metric", err)
}

// TreatAsParticipantError decides whether an unclassified metric failure
// can be shown to the participant without leaking solution data.
//
// The message is accepted only when the solution is purely numeric and the
// message contains no digits. Solutions with bool columns additionally
// reject messages mentioning true or false. Many safe messages are rejected;
// the filter only trims the set that needs manual handling.
func TreatAsParticipantError(msg string, solutionNumeric, solutionHasBools bool) bool {
	if !solutionNumeric {
		return false
	}
	for _, r := range msg {
		if unicode.IsDigit(r) || unicode.IsNumber(r) {
			return false
		}
	}
	if solutionHasBools {
		lower := strings.ToLower(msg)
		if strings.Contains(lower, "true") || strings.Contains(lower, "false") {
			return false
		}
	}
	return true
}
