package maintainability

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bench-go/internal/analysis/census"
	"bench-go/internal/analysis/pyast"
	"bench-go/internal/bench/model"
	"bench-go/internal/stats"
	"bench-go/internal/tools"
)

// Files below this maintainability index are itemized
const lowMIThreshold = 40.0

// Scorer rates maintainability via a per-file maintainability index built
// from Halstead volume, cyclomatic complexity, and source lines. The average
// index maps 0-100 onto 0-10, with a size-bias adjustment so small codebases
// are not punished for their fixed overhead.
type Scorer struct {
	analyzer *pyast.Analyzer
	logger   *zap.Logger
}

// New creates a maintainability scorer
func New(logger *zap.Logger) (*Scorer, error) {
	analyzer, err := pyast.NewAnalyzer()
	if err != nil {
		return nil, err
	}
	return &Scorer{analyzer: analyzer, logger: logger}, nil
}

func (s *Scorer) Name() string             { return "Maintainability" }
func (s *Scorer) Category() model.Category { return model.CategoryStructure }
func (s *Scorer) Description() string {
	return "Per-file maintainability index from volume, complexity, and size"
}

func (s *Scorer) Assess(ctx context.Context, target string) (*model.Result, error) {
	c, err := census.Take(target)
	if err != nil {
		return nil, err
	}
	files := c.PythonFiles()
	if len(files) == 0 {
		return model.NewResult(0, []string{"No Python files found."}), nil
	}

	var fileScores []float64
	var details []string

	for _, file := range files {
		mod, err := s.analyzer.AnalyzeFile(ctx, file)
		if err != nil {
			details = append(details, fmt.Sprintf("Failed to parse file %s: %v", file, err))
			continue
		}
		mi := pyast.MaintainabilityIndex(mod.Halstead.Volume(), mod.TotalComplexity(), mod.SLOC)
		fileScores = append(fileScores, mi/10)
		if mi < lowMIThreshold {
			details = append(details, fmt.Sprintf("Low maintainability index (%.1f) for %s", mi, file))
		}
	}

	if len(fileScores) == 0 {
		return s.lizardFallback(ctx, target, c.SizeBucket(), details)
	}

	raw := stats.Mean(fileScores)
	bucket := c.SizeBucket()
	score := stats.AdjustForSize(raw, bucket, "maintainability")

	details = append([]string{
		fmt.Sprintf("Average maintainability index: %.1f/100 across %d files", raw*10, len(fileScores)),
	}, details...)

	result := model.NewResult(model.Clamp(score), details)
	if low, high := stats.ConfidenceInterval(fileScores, 0.95); low != high {
		result.SetInterval(model.Clamp(low), model.Clamp(high))
	}
	result.SetMetric("avg_mi", raw*10)
	result.SetMetric("file_count", len(fileScores))
	result.SetMetric("size_bucket", string(bucket))
	return result, nil
}

// lizardFallback scores from lizard's cyclomatic complexity when no file
// survives native parsing.
func (s *Scorer) lizardFallback(ctx context.Context, target string, bucket model.SizeBucket, details []string) (*model.Result, error) {
	functions, err := tools.RunLizard(ctx, target, 0)
	if err != nil || len(functions) == 0 {
		return model.NewResult(0, append(details, "No parsable Python files found.")), nil
	}

	var total float64
	for _, fn := range functions {
		total += float64(fn.Complexity)
	}
	avg := total / float64(len(functions))
	raw := model.Clamp(10 - (avg - 5))
	score := stats.AdjustForSize(raw, bucket, "maintainability")

	details = append(details,
		fmt.Sprintf("Scored from lizard complexity: average CCN %.1f over %d functions", avg, len(functions)))

	result := model.NewResult(model.Clamp(score), details)
	result.SetMetric("avg_ccn", avg)
	result.SetMetric("function_count", len(functions))
	result.SetMetric("size_bucket", string(bucket))
	return result, nil
}
