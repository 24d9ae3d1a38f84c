package consistency

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

func newScorer(t *testing.T) *Scorer {
	t.Helper()
	scorer, err := New(zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return scorer
}

func TestAssess_ConsistentNames(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "app.py", `class GoodClass:
    def __init__(self):
        self.ready = True

    def do_work(self):
        local_value = 1
        return local_value
`)

	result, err := newScorer(t).Assess(context.Background(), dir)
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}
	if result.Score != 10 {
		t.Fatalf("Expected score 10 for consistent names, got %f", result.Score)
	}
}

func TestAssess_InconsistentNames(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "app.py", `class bad_class:
    def BadMethod(self):
        return 1
`)

	result, err := newScorer(t).Assess(context.Background(), dir)
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}
	if result.Score != 0 {
		t.Fatalf("Expected score 0 for fully inconsistent names, got %f", result.Score)
	}

	classIssue, funcIssue := false, false
	for _, d := range result.Details {
		if strings.Contains(d, "'bad_class' should be CamelCase") {
			classIssue = true
		}
		if strings.Contains(d, "'BadMethod' should be snake_case") {
			funcIssue = true
		}
	}
	if !classIssue || !funcIssue {
		t.Fatalf("Expected naming issues in details, got %v", result.Details)
	}
}

func TestAssess_MultiLanguage(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "keep.py", "x = 1\n")
	writeFixture(t, dir, "widget.go", `package demo

func bad_name() int {
	return 1
}
`)

	result, err := newScorer(t).Assess(context.Background(), dir)
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}

	found := false
	for _, d := range result.Details {
		if strings.Contains(d, "'bad_name' should be MixedCaps") {
			found = true
		}
	}
	if !found {
		t.Fatalf("Expected Go naming issue, got %v", result.Details)
	}
}

func TestAssess_NoIdentifiers(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "empty.py", "# nothing declared\n")

	result, err := newScorer(t).Assess(context.Background(), dir)
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}
	if result.Score != 10 {
		t.Fatalf("Expected score 10 with no names to check, got %f", result.Score)
	}
	if len(result.Details) != 1 || result.Details[0] != "No relevant names found to check." {
		t.Fatalf("Unexpected details: %v", result.Details)
	}
}
