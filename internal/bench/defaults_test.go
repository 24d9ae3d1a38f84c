package bench

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"bench-go/internal/config"
)

func TestNewDefaultRegistry(t *testing.T) {
	registry, err := NewDefaultRegistry(context.Background(), config.Default(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewDefaultRegistry failed: %v", err)
	}

	want := []string{
		"Readability",
		"Maintainability",
		"Performance",
		"Testability",
		"Robustness",
		"Security",
		"Scalability",
		"Documentation",
		"Consistency",
		"GitHealth",
		"LlmScore",
	}

	names := registry.Names()
	if len(names) != len(want) {
		t.Fatalf("Expected %d benchmarks, got %d: %v", len(want), len(names), names)
	}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("Expected %s at position %d, got %s", name, i, names[i])
		}
	}

	for _, b := range registry.GetAll() {
		if b.Description() == "" {
			t.Fatalf("Expected a description for %s", b.Name())
		}
	}
}
