package model

import (
	"fmt"
	"time"
)

// Category groups related benchmarks
type Category string

const (
	CategoryStructure     Category = "structure"
	CategoryQuality       Category = "quality"
	CategorySecurity      Category = "security"
	CategoryProcess       Category = "process"
	CategoryQualitative   Category = "qualitative"
)

// SizeBucket is a coarse codebase size classification used to bias scores
type SizeBucket string

const (
	BucketSmall  SizeBucket = "small"
	BucketMedium SizeBucket = "medium"
	BucketLarge  SizeBucket = "large"
)

// ConfidenceInterval bounds a score estimate
type ConfidenceInterval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Result contains the outcome of a single benchmark run against one codebase
type Result struct {
	Score      float64            `json:"score"` // 0.0 - 10.0
	Details    []string           `json:"details"`
	RawMetrics map[string]any     `json:"raw_metrics,omitempty"`
	Interval   ConfidenceInterval `json:"confidence_interval"`
	AssessedAt time.Time          `json:"assessed_at"`
}

// NewResult creates a result with a degenerate confidence interval
func NewResult(score float64, details []string) *Result {
	return &Result{
		Score:      score,
		Details:    details,
		RawMetrics: make(map[string]any),
		Interval:   ConfidenceInterval{Low: score, High: score},
		AssessedAt: time.Now(),
	}
}

// SetInterval attaches a confidence interval to the result
func (r *Result) SetInterval(low, high float64) {
	r.Interval = ConfidenceInterval{Low: low, High: high}
}

// SetMetric records a raw metric value
func (r *Result) SetMetric(name string, value any) {
	if r.RawMetrics == nil {
		r.RawMetrics = make(map[string]any)
	}
	r.RawMetrics[name] = value
}

// FormatScore renders the score, with the half-width of the confidence
// interval when one is present
func (r *Result) FormatScore() string {
	if r.Interval.Low == r.Interval.High {
		return fmt.Sprintf("%.2f", r.Score)
	}
	half := (r.Interval.High - r.Interval.Low) / 2
	return fmt.Sprintf("%.2f ±%.1f", r.Score, half)
}

// Clamp bounds a score to the 0-10 scale
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}
