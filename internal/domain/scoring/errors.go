package scoring

import (
	"errors"
)

// Kind classifies a scoring failure by who may see its details.
type Kind int

// Error kinds.
const (
	// KindInternal covers infrastructure failures and bad solution data.
	// Details stay in logs and never reach the participant channel.
	KindInternal Kind = iota
	// KindParticipant covers failures caused by the scored submission.
	// The message is safe to show to the submitter.
	KindParticipant
)

func (k Kind) String() string {
	if k == KindParticipant {
		return "participant"
	}
	return "internal"
}

// redactedMessage replaces internal error details on the participant channel.
const redactedMessage = "internal error while scoring the submission"

// Sentinel kinds for scoring errors. These allow errors.Is from callers.
var (
	ErrInvalidDataTypes = errors.New("Invalid submission data types found") //nolint:staticcheck // participant-facing text
	ErrNoPositiveLabels = errors.New("precondition failed: no solution column has a positive label")
	ErrMissingInput     = errors.New("missing input table")
	ErrMetricPanic      = errors.New("metric panicked")
)

// Error is a kinded scoring failure.
type Error struct {
	Kind Kind
	// Op names the step that failed, for logs.
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// PublicMessage returns the text that may be shown to the participant.
func (e *Error) PublicMessage() string {
	if e.Kind == KindParticipant {
		return e.Err.Error()
	}
	return redactedMessage
}

func participantError(err error) *Error {
	return &Error{Kind: KindParticipant, Err: err}
}

func internalError(op string, err error) *Error {
	return &Error{Kind: KindInternal, Op: op, Err: err}
}

// KindOf returns the kind of err. Errors that were never classified are
// internal.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// IsParticipantVisible reports whether err may be shown to the participant.
func IsParticipantVisible(err error) bool {
	return err != nil && KindOf(err) == KindParticipant
}

// PublicMessage returns the participant-safe text for any error.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var se *Error
	if errors.As(err, &se) {
		return se.PublicMessage()
	}
	return redactedMessage
}
