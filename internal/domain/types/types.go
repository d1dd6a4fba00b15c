// Package types contains common types used across the application
package types

// Entry represents a leaderboard entry
type Entry struct {
	Rank         int      `json:"rank"`
	SubmissionID string   `json:"submission_id"`
	Score        float64  `json:"score"`
	Scored       []string `json:"scored_columns,omitempty"`
	Skipped      []string `json:"skipped_columns,omitempty"`
}

// Failure describes a submission that could not be scored.
type Failure struct {
	SubmissionID string `json:"submission_id"`
	Path         string `json:"path,omitempty"`
	Kind         string `json:"kind"`
	// Message is the participant-safe text; internal details are redacted.
	Message string `json:"message"`
	// Detail is the full error text for operators.
	Detail string `json:"detail,omitempty"`
}

// Duplicate records a submission skipped because its content matched an
// earlier one.
type Duplicate struct {
	SubmissionID string `json:"submission_id"`
	SameAs       string `json:"same_as"`
}
