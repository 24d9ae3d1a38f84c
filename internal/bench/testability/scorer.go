package testability

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"bench-go/internal/analysis/census"
	"bench-go/internal/bench/model"
	"bench-go/internal/tools"
)

// Scorer rates testability from pytest coverage. Codebases without any
// test-named files score zero outright.
type Scorer struct {
	coverageTimeout time.Duration
	logger          *zap.Logger
}

// New creates a testability scorer
func New(coverageTimeout time.Duration, logger *zap.Logger) *Scorer {
	return &Scorer{coverageTimeout: coverageTimeout, logger: logger}
}

func (s *Scorer) Name() string             { return "Testability" }
func (s *Scorer) Category() model.Category { return model.CategoryQuality }
func (s *Scorer) Description() string {
	return "Test presence and pytest line coverage"
}

func (s *Scorer) Assess(ctx context.Context, target string) (*model.Result, error) {
	files, err := census.PythonFiles(target)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return model.NewResult(0, []string{"No Python files found."}), nil
	}

	testFiles := 0
	for _, file := range files {
		// Any file whose name mentions "test" counts, which picks up
		// conftest.py and suites that skip the test_ prefix.
		if strings.Contains(strings.ToLower(filepath.Base(file)), "test") {
			testFiles++
		}
	}
	if testFiles == 0 {
		return model.NewResult(0, []string{"No test files found (no Python file named after tests)."}), nil
	}

	percent, err := tools.RunPytestCoverage(ctx, target, s.coverageTimeout)
	switch {
	case errors.Is(err, tools.ErrToolUnavailable):
		return model.NewResult(0, []string{
			fmt.Sprintf("Found %d test files.", testFiles),
			"[pytest] Tool not available; coverage could not be measured.",
		}), nil
	case errors.Is(err, tools.ErrTimeout):
		return model.NewResult(0, []string{
			fmt.Sprintf("Found %d test files.", testFiles),
			"[pytest] Coverage run timed out.",
		}), nil
	case err != nil:
		return model.NewResult(0, []string{
			fmt.Sprintf("Found %d test files.", testFiles),
			fmt.Sprintf("[pytest] Coverage run failed: %v", err),
		}), nil
	}

	score := percent / 10

	details := []string{
		fmt.Sprintf("Found %d test files.", testFiles),
		fmt.Sprintf("Line coverage: %.1f%%", percent),
	}
	result := model.NewResult(model.Clamp(score), details)
	result.SetMetric("test_files", testFiles)
	result.SetMetric("coverage_percent", percent)
	return result, nil
}
