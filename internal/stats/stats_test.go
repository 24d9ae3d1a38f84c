package stats

import (
	"math"
	"testing"

	"bench-go/internal/bench/model"
)

func TestAdjustForSize(t *testing.T) {
	// Small codebases get the maintainability bonus
	if got := AdjustForSize(6.0, model.BucketSmall, "maintainability"); got != 9.0 {
		t.Fatalf("Expected 9.0 for small maintainability, got %f", got)
	}
	// Medium is neutral
	if got := AdjustForSize(6.0, model.BucketMedium, "maintainability"); got != 6.0 {
		t.Fatalf("Expected 6.0 for medium maintainability, got %f", got)
	}
	// Large is penalized
	if got := AdjustForSize(6.0, model.BucketLarge, "maintainability"); math.Abs(got-5.4) > 1e-9 {
		t.Fatalf("Expected 5.4 for large maintainability, got %f", got)
	}
	// Unknown metric types fall back to the default table
	if got := AdjustForSize(6.0, model.BucketSmall, "security"); math.Abs(got-6.6) > 1e-9 {
		t.Fatalf("Expected 6.6 for small default, got %f", got)
	}
}

func TestAdjustForSize_ClampsAtTen(t *testing.T) {
	if got := AdjustForSize(9.0, model.BucketSmall, "maintainability"); got != 10.0 {
		t.Fatalf("Expected clamp to 10.0, got %f", got)
	}
}

func TestCompress_NoOutlier(t *testing.T) {
	scores := map[string]float64{"a": 8.0, "b": 12.0}
	compressed := Compress(scores)
	if compressed["b"] != 12.0 {
		t.Fatalf("Expected no compression below max 15, got %f", compressed["b"])
	}
}

func TestCompress_Outlier(t *testing.T) {
	scores := map[string]float64{"a": 8.0, "b": 20.0}
	compressed := Compress(scores)

	if compressed["a"] != 8.0 {
		t.Fatalf("Expected scores below 10 untouched, got %f", compressed["a"])
	}
	// 10 + (20-10)*0.3 = 13
	if math.Abs(compressed["b"]-13.0) > 1e-9 {
		t.Fatalf("Expected 13.0 for compressed outlier, got %f", compressed["b"])
	}
}

func TestCompress_SingleScore(t *testing.T) {
	scores := map[string]float64{"a": 30.0}
	if got := Compress(scores)["a"]; got != 30.0 {
		t.Fatalf("Expected single score untouched, got %f", got)
	}
}

func TestConfidenceInterval(t *testing.T) {
	low, high := ConfidenceInterval([]float64{5, 6, 7, 8}, 0.95)
	if low >= high {
		t.Fatalf("Expected low < high, got (%f, %f)", low, high)
	}
	mean := 6.5
	if low > mean || high < mean {
		t.Fatalf("Expected interval to contain the mean %f, got (%f, %f)", mean, low, high)
	}
}

func TestConfidenceInterval_TooFewSamples(t *testing.T) {
	low, high := ConfidenceInterval([]float64{5}, 0.95)
	if low != 0 || high != 0 {
		t.Fatalf("Expected (0, 0) for a single sample, got (%f, %f)", low, high)
	}
}

func TestMean(t *testing.T) {
	if got := Mean([]float64{2, 4, 6}); got != 4 {
		t.Fatalf("Expected mean 4, got %f", got)
	}
	if got := Mean(nil); got != 0 {
		t.Fatalf("Expected 0 for empty samples, got %f", got)
	}
}
