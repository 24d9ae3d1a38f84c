package runstore

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newMemoryStore(t *testing.T) *KuzuStore {
	t.Helper()
	store, err := NewKuzuStore(":memory:", zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close(context.Background()) })
	return store
}

func TestKuzuStore_RecordAndRead(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	run := &Run{
		ID:        "run-1",
		StartedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Codebase1: "/tmp/a",
		Codebase2: "/tmp/b",
		Total1:    70.5,
		Total2:    63.2,
		Scores1:   map[string]float64{"Readability": 8.0},
		Scores2:   map[string]float64{"Readability": 6.5},
	}
	if err := store.RecordRun(ctx, run); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}

	got := runs[0]
	if got.ID != "run-1" || got.Codebase1 != "/tmp/a" || got.Codebase2 != "/tmp/b" {
		t.Fatalf("Unexpected run: %+v", got)
	}
	if got.Total1 != 70.5 || got.Total2 != 63.2 {
		t.Fatalf("Unexpected totals: %f/%f", got.Total1, got.Total2)
	}
	if got.Scores1["Readability"] != 8.0 {
		t.Fatalf("Unexpected scores1: %v", got.Scores1)
	}
	if !got.StartedAt.Equal(run.StartedAt) {
		t.Fatalf("Expected timestamp %v, got %v", run.StartedAt, got.StartedAt)
	}
}

func TestKuzuStore_RecentRunsOrderAndLimit(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		run := &Run{
			ID:        id,
			StartedAt: base.Add(time.Duration(i) * time.Hour),
			Codebase1: "/a",
			Codebase2: "/b",
		}
		if err := store.RecordRun(ctx, run); err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "new" || runs[1].ID != "mid" {
		t.Fatalf("Expected newest first [new mid], got [%s %s]", runs[0].ID, runs[1].ID)
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	if _, err := New(Options{Backend: "sqlite"}, zap.NewNop()); err == nil {
		t.Fatal("Expected error for unknown backend")
	}
}
