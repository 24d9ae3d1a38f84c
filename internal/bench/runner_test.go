package bench

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"go.uber.org/zap"

	"bench-go/internal/bench/model"
	"bench-go/internal/service/runstore"
)

// memoryStore records runs in memory for assertions
type memoryStore struct {
	mu   sync.Mutex
	runs []*runstore.Run
}

func (m *memoryStore) RecordRun(ctx context.Context, run *runstore.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, run)
	return nil
}

func (m *memoryStore) RecentRuns(ctx context.Context, limit int) ([]*runstore.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.runs) {
		limit = len(m.runs)
	}
	return m.runs[:limit], nil
}

func (m *memoryStore) Close(ctx context.Context) error { return nil }

func newTestRunner(t *testing.T, store runstore.RunStore, benchmarks ...Benchmark) *Runner {
	t.Helper()
	registry := NewRegistry(zap.NewNop())
	for _, b := range benchmarks {
		registry.Register(b)
	}
	return NewRunner(registry, store, zap.NewNop())
}

func TestRunner_Compare(t *testing.T) {
	store := &memoryStore{}
	runner := newTestRunner(t, store,
		&stubBenchmark{name: "Alpha", category: model.CategoryQuality, score: 8},
		&stubBenchmark{name: "Beta", category: model.CategoryQuality, score: 4},
	)

	dir1 := t.TempDir()
	dir2 := t.TempDir()

	cmp, err := runner.Compare(context.Background(), dir1, dir2, CompareOptions{})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if len(cmp.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(cmp.Rows))
	}
	if cmp.Total1 != 12 || cmp.Total2 != 12 {
		t.Fatalf("Expected totals 12/12, got %f/%f", cmp.Total1, cmp.Total2)
	}
	if cmp.RunID == "" {
		t.Fatal("Expected a run ID")
	}

	// The run is recorded in the store
	if len(store.runs) != 1 {
		t.Fatalf("Expected 1 recorded run, got %d", len(store.runs))
	}
	if store.runs[0].ID != cmp.RunID {
		t.Fatalf("Expected recorded run ID %s, got %s", cmp.RunID, store.runs[0].ID)
	}
}

func TestRunner_CompareWeights(t *testing.T) {
	runner := newTestRunner(t, nil,
		&stubBenchmark{name: "Alpha", category: model.CategoryQuality, score: 8},
		&stubBenchmark{name: "Beta", category: model.CategoryQuality, score: 4},
	)

	cmp, err := runner.Compare(context.Background(), t.TempDir(), t.TempDir(), CompareOptions{
		Weights: map[string]float64{"Beta": 2.0},
	})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	// Alpha 8*1 + Beta 4*2 = 16
	if cmp.Total1 != 16 {
		t.Fatalf("Expected weighted total 16, got %f", cmp.Total1)
	}
	for _, row := range cmp.Rows {
		if row.Name == "Beta" && row.Score1 != 8 {
			t.Fatalf("Expected weighted Beta score 8, got %f", row.Score1)
		}
	}
}

func TestRunner_CompareSkip(t *testing.T) {
	runner := newTestRunner(t, nil,
		&stubBenchmark{name: "Alpha", category: model.CategoryQuality, score: 8},
		&stubBenchmark{name: "Beta", category: model.CategoryQuality, score: 4},
	)

	cmp, err := runner.Compare(context.Background(), t.TempDir(), t.TempDir(), CompareOptions{
		Skip: []string{"beta", "Unknown"},
	})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	if len(cmp.Rows) != 1 || cmp.Rows[0].Name != "Alpha" {
		t.Fatalf("Expected only Alpha to run, got %+v", cmp.Rows)
	}
}

func TestRunner_CompareInvalidPath(t *testing.T) {
	runner := newTestRunner(t, nil,
		&stubBenchmark{name: "Alpha", category: model.CategoryQuality, score: 8},
	)

	if _, err := runner.Compare(context.Background(), "/nonexistent-path", t.TempDir(), CompareOptions{}); err == nil {
		t.Fatal("Expected error for missing codebase directory")
	}
}

func TestRunner_CompareBenchmarkFailureZeroesRow(t *testing.T) {
	runner := newTestRunner(t, nil,
		&stubBenchmark{name: "Good", category: model.CategoryQuality, score: 6},
		&stubBenchmark{name: "Bad", category: model.CategoryQuality, failWith: fmt.Errorf("boom")},
	)

	cmp, err := runner.Compare(context.Background(), t.TempDir(), t.TempDir(), CompareOptions{})
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	for _, row := range cmp.Rows {
		if row.Name == "Bad" {
			if row.Score1 != 0 || row.Score2 != 0 {
				t.Fatalf("Expected zeroed scores for failed benchmark, got %f/%f", row.Score1, row.Score2)
			}
			if len(row.Result1.Details) == 0 {
				t.Fatal("Expected failure detail in result")
			}
		}
	}
	if cmp.Total1 != 6 {
		t.Fatalf("Expected total 6, got %f", cmp.Total1)
	}
}

func TestRunner_Assess(t *testing.T) {
	runner := newTestRunner(t, nil,
		&stubBenchmark{name: "Alpha", category: model.CategoryQuality, score: 8},
		&stubBenchmark{name: "Beta", category: model.CategoryQuality, score: 4},
	)

	results, err := runner.Assess(context.Background(), t.TempDir(), []string{"Alpha"})
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results["Alpha"].Score != 8 {
		t.Fatalf("Expected Alpha score 8, got %f", results["Alpha"].Score)
	}

	if _, err := runner.Assess(context.Background(), t.TempDir(), []string{"Unknown"}); err == nil {
		t.Fatal("Expected error for unknown benchmark name")
	}
}
