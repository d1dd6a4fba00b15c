package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/aucscore/internal/domain/types"
)

// entryOf looks a submission up in the full leaderboard.
func entryOf(t *testing.T, store *MemoryStore, id string) (types.Entry, bool) {
	t.Helper()
	entries, err := store.TopN(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, e := range entries {
		if e.SubmissionID == id {
			return e, true
		}
	}
	return types.Entry{}, false
}

func TestMemoryStore_BasicOperations(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}

	updated, err := store.UpdateBest(ctx, types.Entry{SubmissionID: "team-a", Score: 0.75})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated {
		t.Error("expected update to succeed")
	}

	entry, ok := entryOf(t, store, "team-a")
	if !ok || entry.Rank != 1 || entry.Score != 0.75 {
		t.Errorf("expected rank 1 score 0.75, got %+v", entry)
	}
	if count := store.Count(ctx); count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
	if _, err := store.UpdateBest(ctx, types.Entry{Score: 1}); !errors.Is(err, ErrEmptyID) {
		t.Errorf("expected ErrEmptyID, got %v", err)
	}
}

func TestMemoryStore_KeepsBest(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, _ = store.UpdateBest(ctx, types.Entry{SubmissionID: "team-a", Score: 0.8})
	updated, _ := store.UpdateBest(ctx, types.Entry{SubmissionID: "team-a", Score: 0.6})
	if updated {
		t.Error("lower score must not replace the best")
	}
	updated, _ = store.UpdateBest(ctx, types.Entry{SubmissionID: "team-a", Score: 0.9})
	if !updated {
		t.Error("higher score must replace the best")
	}
	entry, _ := entryOf(t, store, "team-a")
	if entry.Score != 0.9 {
		t.Errorf("expected 0.9, got %f", entry.Score)
	}
}

func TestMemoryStore_OrderingAndTies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for id, score := range map[string]float64{"c": 0.9, "a": 0.9, "b": 0.7, "d": 0.5} {
		if _, err := store.UpdateBest(ctx, types.Entry{SubmissionID: id, Score: score}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := store.TopN(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []struct {
		id   string
		rank int
	}{{"a", 1}, {"c", 1}, {"b", 2}, {"d", 3}}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, w := range want {
		if entries[i].SubmissionID != w.id || entries[i].Rank != w.rank {
			t.Errorf("position %d: expected %s rank %d, got %s rank %d", i, w.id, w.rank, entries[i].SubmissionID, entries[i].Rank)
		}
	}

	top, _ := store.TopN(ctx, 2)
	if len(top) != 2 {
		t.Errorf("expected 2 entries, got %d", len(top))
	}
	if _, err := store.TopN(ctx, -1); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("expected ErrInvalidLimit, got %v", err)
	}
}

func TestMemoryStore_Failures(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.RecordFailure(ctx, types.Failure{SubmissionID: "z", Kind: "internal"})
	store.RecordFailure(ctx, types.Failure{SubmissionID: "m", Kind: "participant"})
	_, _ = store.UpdateBest(ctx, types.Entry{SubmissionID: "ok", Score: 0.5})
	store.RecordFailure(ctx, types.Failure{SubmissionID: "ok", Kind: "internal"})

	failures := store.Failures(ctx)
	if len(failures) != 2 || failures[0].SubmissionID != "m" || failures[1].SubmissionID != "z" {
		t.Errorf("unexpected failures: %+v", failures)
	}

	_, _ = store.UpdateBest(ctx, types.Entry{SubmissionID: "m", Score: 0.1})
	if got := len(store.Failures(ctx)); got != 1 {
		t.Errorf("a ranked submission must leave the failure list, got %d failures", got)
	}
}

func TestMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = store.UpdateBest(ctx, types.Entry{SubmissionID: fmt.Sprintf("sub-%03d", i), Score: float64(i) / 100})
		}(i)
	}
	wg.Wait()

	if count := store.Count(ctx); count != 100 {
		t.Errorf("expected 100 entries, got %d", count)
	}
	top, _ := store.TopN(ctx, 1)
	if top[0].SubmissionID != "sub-099" {
		t.Errorf("expected sub-099 first, got %s", top[0].SubmissionID)
	}
}
