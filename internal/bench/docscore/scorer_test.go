package docscore

import (
	"context"
	"os"
	"path/filepath"
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
	scorer, err := New(zap.NewNop())
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

func TestAssess_MixedCoverage(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "app.py", `"""Module docs."""


class Greeter:
    """Greets people by name.

    Args:
        name: who to greet.

    Returns:
        A greeting string.
    """


def undocumented():
    return 1
`)

	scorer, err := New(zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result, err := scorer.Assess(context.Background(), dir)
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}

	// Module + class documented, function not: partial coverage
	if result.Score <= 0 || result.Score >= 10 {
		t.Fatalf("Expected a partial score, got %f", result.Score)
	}
	if result.RawMetrics["total_entities"] != 3 {
		t.Fatalf("Expected 3 entities, got %v", result.RawMetrics["total_entities"])
	}
	if result.RawMetrics["documented_entities"] != 2 {
		t.Fatalf("Expected 2 documented entities, got %v", result.RawMetrics["documented_entities"])
	}

	found := false
	for _, d := range result.Details {
		if d == "Missing docstring for 'undocumented' in "+filepath.Join(dir, "app.py")+":15" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Expected missing-docstring detail, got %v", result.Details)
	}
}

func TestGoodDocstring(t *testing.T) {
	good := "Summary line.\n\nArgs:\n    x: input.\n\nReturns:\n    The result.\n"
	if !goodDocstring(good) {
		t.Fatal("Expected structured docstring to pass")
	}

	if goodDocstring("one-liner") {
		t.Fatal("Expected one-liner to fail the heuristic")
	}

	noSections := "Line one.\nLine two.\nLine three.\n"
	if goodDocstring(noSections) {
		t.Fatal("Expected docstring without Args/Returns sections to fail")
	}
}
