package readability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"bench-go/internal/analysis/census"
	"bench-go/internal/analysis/pyast"
	"bench-go/internal/bench/model"
	"bench-go/internal/tools"
)

const (
	complexityWeight = 0.6
	styleWeight      = 0.4

	// Functions above this cyclomatic complexity are itemized
	highComplexityThreshold = 10

	// Neutral style score when pycodestyle is not installed
	neutralStyleScore = 8.0
)

// Scorer rates readability from cyclomatic complexity and PEP8 compliance
type Scorer struct {
	analyzer     *pyast.Analyzer
	styleTimeout time.Duration
	logger       *zap.Logger
}

// New creates a readability scorer
func New(styleTimeout time.Duration, logger *zap.Logger) (*Scorer, error) {
	analyzer, err := pyast.NewAnalyzer()
	if err != nil {
		return nil, err
	}
	return &Scorer{
		analyzer:     analyzer,
		styleTimeout: styleTimeout,
		logger:       logger,
	}, nil
}

func (s *Scorer) Name() string             { return "Readability" }
func (s *Scorer) Category() model.Category { return model.CategoryQuality }
func (s *Scorer) Description() string {
	return "Average cyclomatic complexity and PEP8 compliance, lower is better for both"
}

// Assess scores the codebase: 60% complexity, 40% style
func (s *Scorer) Assess(ctx context.Context, target string) (*model.Result, error) {
	files, err := census.PythonFiles(target)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return model.NewResult(0, []string{"No Python files found."}), nil
	}

	var details []string
	totalComplexity := 0
	totalFunctions := 0

	for _, file := range files {
		mod, err := s.analyzer.AnalyzeFile(ctx, file)
		if err != nil {
			continue // unparsable files are ignored, as the complexity pass always did
		}
		for _, fn := range mod.Functions {
			if fn.Complexity > highComplexityThreshold {
				details = append(details, fmt.Sprintf("High complexity (%d) in function '%s' at %s:%d",
					fn.Complexity, fn.Name, file, fn.Line))
			}
			totalComplexity += fn.Complexity
		}
		totalFunctions += len(mod.Functions)
	}

	avgComplexity := 0.0
	if totalFunctions > 0 {
		avgComplexity = float64(totalComplexity) / float64(totalFunctions)
	}
	complexityScore := 10 - (avgComplexity - 5)
	if complexityScore < 0 {
		complexityScore = 0
	}
	details = append(details, fmt.Sprintf("Average cyclomatic complexity: %.2f", avgComplexity))

	styleScore := neutralStyleScore
	styleResult, err := tools.RunPycodestyle(ctx, files, s.styleTimeout)
	switch {
	case errors.Is(err, tools.ErrToolUnavailable):
		details = append(details, "[pycodestyle] Tool not available; assuming neutral style score.")
	case errors.Is(err, tools.ErrTimeout):
		details = append(details, "[pycodestyle] Style check timed out; assuming neutral style score.")
	case err != nil:
		return nil, err
	default:
		details = append(details, fmt.Sprintf("Found %d PEP8 style violations.", styleResult.TotalErrors))
		styleScore = 10 - float64(styleResult.TotalErrors)/5
		if styleScore < 0 {
			styleScore = 0
		}
	}

	score := complexityWeight*complexityScore + styleWeight*styleScore

	result := model.NewResult(model.Clamp(score), details)
	result.SetMetric("avg_complexity", avgComplexity)
	result.SetMetric("total_functions", totalFunctions)
	if styleResult != nil {
		result.SetMetric("pep8_errors", styleResult.TotalErrors)
	}
	return result, nil
}
