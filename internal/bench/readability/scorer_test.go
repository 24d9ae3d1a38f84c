package readability

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
}

func TestAssess_NoPythonFiles(t *testing.T) {
	scorer, err := New(0, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result, err := scorer.Assess(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}
	if result.Score != 0 {
		t.Fatalf("Expected score 0, got %f", result.Score)
	}
}

func TestAssess_SimpleCode(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "simple.py", `def add(a, b):
    return a + b
`)

	scorer, err := New(0, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result, err := scorer.Assess(context.Background(), dir)
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}

	// One function with complexity 1; style score depends on whether
	// pycodestyle is installed, so only the bounds are pinned down.
	if result.Score < 8 || result.Score > 10 {
		t.Fatalf("Expected a high score for trivial code, got %f", result.Score)
	}
	if result.RawMetrics["avg_complexity"] != 1.0 {
		t.Fatalf("Expected average complexity 1.0, got %v", result.RawMetrics["avg_complexity"])
	}
	if result.RawMetrics["total_functions"] != 1 {
		t.Fatalf("Expected 1 function, got %v", result.RawMetrics["total_functions"])
	}
}

func TestAssess_FlagsHighComplexity(t *testing.T) {
	var b strings.Builder
	b.WriteString("def tangled(x):\n")
	for i := 0; i < 12; i++ {
		b.WriteString("    if x:\n        x -= 1\n")
	}
	b.WriteString("    return x\n")

	dir := t.TempDir()
	writeFixture(t, dir, "tangled.py", b.String())

	scorer, err := New(0, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result, err := scorer.Assess(context.Background(), dir)
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}

	found := false
	for _, d := range result.Details {
		if strings.Contains(d, "High complexity (13) in function 'tangled'") {
			found = true
		}
	}
	if !found {
		t.Fatalf("Expected high-complexity detail, got %v", result.Details)
	}
}
