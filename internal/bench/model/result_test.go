package model

import (
	"testing"
)

func TestNewResult(t *testing.T) {
	r := NewResult(7.5, []string{"detail"})
	if r.Score != 7.5 {
		t.Fatalf("Expected score 7.5, got %f", r.Score)
	}
	if r.Interval.Low != 7.5 || r.Interval.High != 7.5 {
		t.Fatalf("Expected degenerate interval, got %+v", r.Interval)
	}
	if r.AssessedAt.IsZero() {
		t.Fatal("Expected assessment timestamp")
	}
}

func TestFormatScore(t *testing.T) {
	r := NewResult(7.5, nil)
	if got := r.FormatScore(); got != "7.50" {
		t.Fatalf("Expected '7.50', got %q", got)
	}

	r.SetInterval(6.5, 8.5)
	if got := r.FormatScore(); got != "7.50 ±1.0" {
		t.Fatalf("Expected '7.50 ±1.0', got %q", got)
	}
}

func TestSetMetric(t *testing.T) {
	r := &Result{}
	r.SetMetric("count", 3)
	if r.RawMetrics["count"] != 3 {
		t.Fatalf("Expected metric recorded, got %v", r.RawMetrics)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-1) != 0 {
		t.Fatal("Expected negative scores clamped to 0")
	}
	if Clamp(12) != 10 {
		t.Fatal("Expected scores above 10 clamped")
	}
	if Clamp(5.5) != 5.5 {
		t.Fatal("Expected in-range scores untouched")
	}
}
