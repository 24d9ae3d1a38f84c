package performance

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

// Scorer rates performance. With a profile script configured it times the
// script under pyinstrument and bands the wall time; otherwise it counts
// static anti-patterns off a base of 10.
type Scorer struct {
	analyzer       *pyast.Analyzer
	profileScript  string
	profileTimeout time.Duration
	logger         *zap.Logger
}

// New creates a performance scorer. profileScript may be empty to force
// static analysis.
func New(profileScript string, profileTimeout time.Duration, logger *zap.Logger) (*Scorer, error) {
	analyzer, err := pyast.NewAnalyzer()
	if err != nil {
		return nil, err
	}
	return &Scorer{
		analyzer:       analyzer,
		profileScript:  profileScript,
		profileTimeout: profileTimeout,
		logger:         logger,
	}, nil
}

func (s *Scorer) Name() string             { return "Performance" }
func (s *Scorer) Category() model.Category { return model.CategoryStructure }
func (s *Scorer) Description() string {
	return "Profiled wall time of a representative script, or static anti-pattern count"
}

func (s *Scorer) Assess(ctx context.Context, target string) (*model.Result, error) {
	if s.profileScript != "" {
		result, err := s.assessProfiled(ctx)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, tools.ErrToolUnavailable) && !errors.Is(err, tools.ErrTimeout) {
			return nil, err
		}
		s.logger.Debug("Profiling unavailable, falling back to static analysis",
			zap.String("script", s.profileScript), zap.Error(err))
	}
	return s.assessStatic(ctx, target)
}

func (s *Scorer) assessProfiled(ctx context.Context) (*model.Result, error) {
	elapsedMs, err := tools.RunPyinstrument(ctx, s.profileScript, s.profileTimeout)
	if err != nil {
		return nil, err
	}

	var score float64
	switch {
	case elapsedMs < 200:
		score = 10
	case elapsedMs < 500:
		score = 8
	case elapsedMs < 1000:
		score = 6
	case elapsedMs < 2000:
		score = 4
	default:
		score = 2
	}

	details := []string{fmt.Sprintf("Profiled '%s': %.0f ms wall time.", s.profileScript, elapsedMs)}
	result := model.NewResult(score, details)
	result.SetMetric("elapsed_ms", elapsedMs)
	return result, nil
}

func (s *Scorer) assessStatic(ctx context.Context, target string) (*model.Result, error) {
	files, err := census.PythonFiles(target)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return model.NewResult(0, []string{"No Python files found."}), nil
	}

	score := 10.0
	insertZero := 0
	loopConcat := 0
	var details []string

	for _, file := range files {
		mod, err := s.analyzer.AnalyzeFile(ctx, file)
		if err != nil {
			continue
		}
		for _, ln := range mod.InsertZero {
			insertZero++
			score -= 1.0
			details = append(details, fmt.Sprintf("Inefficient list.insert(0, ...) in %s:%d (use collections.deque)", file, ln))
		}
		for _, ln := range mod.LoopConcat {
			loopConcat++
			score -= 0.5
			details = append(details, fmt.Sprintf("Concatenation with '+=' inside a loop in %s:%d", file, ln))
		}
	}

	if len(details) == 0 {
		details = append(details, "No common performance anti-patterns detected.")
	}

	result := model.NewResult(model.Clamp(score), details)
	result.SetMetric("insert_zero_count", insertZero)
	result.SetMetric("loop_concat_count", loopConcat)
	return result, nil
}
