package bench

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"bench-go/internal/bench/model"
)

// stubBenchmark returns a fixed score, or an error when failWith is set
type stubBenchmark struct {
	name     string
	category model.Category
	score    float64
	failWith error
}

func (s *stubBenchmark) Name() string             { return s.name }
func (s *stubBenchmark) Category() model.Category { return s.category }
func (s *stubBenchmark) Description() string      { return "stub" }

func (s *stubBenchmark) Assess(ctx context.Context, target string) (*model.Result, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return model.NewResult(s.score, []string{fmt.Sprintf("score %f for %s", s.score, target)}), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	registry.Register(&stubBenchmark{name: "A", category: model.CategoryQuality, score: 5})

	b, err := registry.Get("A")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if b.Name() != "A" {
		t.Fatalf("Expected benchmark A, got %s", b.Name())
	}

	if _, err := registry.Get("missing"); err == nil {
		t.Fatal("Expected error for unknown benchmark")
	}
}

func TestRegistry_OrderPreserved(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	registry.Register(&stubBenchmark{name: "C", category: model.CategoryQuality})
	registry.Register(&stubBenchmark{name: "A", category: model.CategoryQuality})
	registry.Register(&stubBenchmark{name: "B", category: model.CategoryQuality})

	names := registry.Names()
	if len(names) != 3 || names[0] != "C" || names[1] != "A" || names[2] != "B" {
		t.Fatalf("Expected registration order [C A B], got %v", names)
	}
}

func TestRegistry_ByCategory(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	registry.Register(&stubBenchmark{name: "B", category: model.CategorySecurity})
	registry.Register(&stubBenchmark{name: "A", category: model.CategorySecurity})
	registry.Register(&stubBenchmark{name: "Q", category: model.CategoryQuality})

	secure := registry.ByCategory(model.CategorySecurity)
	if len(secure) != 2 {
		t.Fatalf("Expected 2 security benchmarks, got %d", len(secure))
	}
	if secure[0].Name() != "A" || secure[1].Name() != "B" {
		t.Fatalf("Expected name-sorted [A B], got [%s %s]", secure[0].Name(), secure[1].Name())
	}
}

func TestRegistry_AssessAllContinuesOnFailure(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	registry.Register(&stubBenchmark{name: "Good", category: model.CategoryQuality, score: 7})
	registry.Register(&stubBenchmark{name: "Bad", category: model.CategoryQuality, failWith: fmt.Errorf("boom")})

	results := registry.AssessAll(context.Background(), "/tmp")
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results["Good"].Score != 7 {
		t.Fatalf("Expected Good score 7, got %f", results["Good"].Score)
	}
	if results["Bad"].Score != 0 {
		t.Fatalf("Expected Bad score zeroed, got %f", results["Bad"].Score)
	}
	if len(results["Bad"].Details) == 0 {
		t.Fatal("Expected failure detail for Bad")
	}
}
