package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/okian/aucscore/internal/domain/types"
	"github.com/okian/aucscore/pkg/metrics"
)

// MemoryStore implements Store with maps guarded by a RWMutex. Ranked views
// are built on read, which suits one batch run followed by a report.
type MemoryStore struct {
	mu       sync.RWMutex
	byID     map[string]types.Entry
	failures map[string]types.Failure
}

// NewMemoryStore constructs an empty leaderboard.
func NewMemoryStore() *MemoryStore {
	metrics.UpdateLeaderboardSize(0)
	return &MemoryStore{
		byID:     make(map[string]types.Entry),
		failures: make(map[string]types.Failure),
	}
}

func (s *MemoryStore) UpdateBest(_ context.Context, e types.Entry) (bool, error) { //nolint:gocritic // hugeParam: Entry is stored by value
	if e.SubmissionID == "" {
		return false, ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.byID[e.SubmissionID]; ok && cur.Score >= e.Score {
		return false, nil
	}
	e.Rank = 0
	s.byID[e.SubmissionID] = e
	delete(s.failures, e.SubmissionID)
	metrics.UpdateLeaderboardSize(len(s.byID))
	return true, nil
}

func (s *MemoryStore) RecordFailure(_ context.Context, f types.Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ranked := s.byID[f.SubmissionID]; ranked {
		return
	}
	s.failures[f.SubmissionID] = f
}

func (s *MemoryStore) TopN(_ context.Context, n int) ([]types.Entry, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.ranked()
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries, nil
}

func (s *MemoryStore) Failures(_ context.Context) []types.Failure {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Failure, 0, len(s.failures))
	for _, f := range s.failures {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmissionID < out[j].SubmissionID })
	return out
}

func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// ranked returns a sorted, ranked copy. Must be called with s.mu held.
func (s *MemoryStore) ranked() []types.Entry {
	entries := make([]types.Entry, 0, len(s.byID))
	for _, e := range s.byID {
		entries = append(entries, e)
	}
	sortEntries(entries)
	assignRanksWithTies(entries)
	return entries
}

// sortEntries orders by score desc, then submission id asc.
func sortEntries(entries []types.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].SubmissionID < entries[j].SubmissionID
	})
}

// assignRanksWithTies gives equal scores the same rank; the next distinct
// score gets the next consecutive rank.
func assignRanksWithTies(entries []types.Entry) {
	rank := 0
	for i := range entries {
		if i == 0 || entries[i].Score != entries[i-1].Score {
			rank++
		}
		entries[i].Rank = rank
	}
}
