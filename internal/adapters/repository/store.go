// Package repository holds the leaderboard built during a ranking run.
package repository

import (
	"context"

	"github.com/okian/aucscore/internal/domain/types"
)

// Store provides read/write access to the ranking state.
type Store interface {
	// UpdateBest records a score for a submission if it beats the stored one.
	// Returns true if the store changed.
	UpdateBest(ctx context.Context, e types.Entry) (bool, error)

	// RecordFailure stores a submission that could not be scored.
	RecordFailure(ctx context.Context, f types.Failure)

	// TopN returns the top-N entries ordered by score desc, then id asc.
	// n == 0 returns every entry.
	TopN(ctx context.Context, n int) ([]types.Entry, error)

	// Failures returns recorded failures ordered by submission id.
	Failures(ctx context.Context) []types.Failure

	// Count returns the number of ranked submissions.
	Count(ctx context.Context) int
}
