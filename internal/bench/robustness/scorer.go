package robustness

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bench-go/internal/analysis/census"
	"bench-go/internal/analysis/pyast"
	"bench-go/internal/bench/model"
)

const (
	// Up to 8 points come from handler specificity
	maxHandlerPoints = 8.0
	// Using the logging module earns a flat bonus
	loggingBonus = 2.0

	noHandlersWithLogging    = 5.0
	noHandlersWithoutLogging = 2.0
)

// Scorer rates exception-handling quality and logging usage. Bare excepts
// and generic `except Exception` handlers count against the score; specific
// exception types count for it.
type Scorer struct {
	analyzer *pyast.Analyzer
	logger   *zap.Logger
}

// New creates a robustness scorer
func New(logger *zap.Logger) (*Scorer, error) {
	analyzer, err := pyast.NewAnalyzer()
	if err != nil {
		return nil, err
	}
	return &Scorer{analyzer: analyzer, logger: logger}, nil
}

func (s *Scorer) Name() string             { return "Robustness" }
func (s *Scorer) Category() model.Category { return model.CategoryQuality }
func (s *Scorer) Description() string {
	return "Exception handler specificity and logging usage"
}

func (s *Scorer) Assess(ctx context.Context, target string) (*model.Result, error) {
	files, err := census.PythonFiles(target)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return model.NewResult(0, []string{"No Python files found."}), nil
	}

	totalHandlers := 0
	goodHandlers := 0
	usesLogging := false
	var details []string

	for _, file := range files {
		mod, err := s.analyzer.AnalyzeFile(ctx, file)
		if err != nil {
			details = append(details, fmt.Sprintf("Failed to parse file %s: %v", file, err))
			continue
		}

		if mod.ImportsModule("logging") {
			usesLogging = true
		}
		for _, ec := range mod.ExceptClauses {
			totalHandlers++
			switch {
			case ec.Bare:
				details = append(details, fmt.Sprintf("Bare 'except:' used in %s:%d", file, ec.Line))
			case ec.TypeName == "Exception":
				details = append(details, fmt.Sprintf("Generic 'except Exception' used in %s:%d", file, ec.Line))
			default:
				goodHandlers++
			}
		}
	}

	if usesLogging {
		details = append([]string{"Codebase appears to use the 'logging' module."}, details...)
	} else {
		details = append([]string{"Codebase does not appear to use the 'logging' module."}, details...)
	}

	if totalHandlers == 0 {
		score := noHandlersWithoutLogging
		if usesLogging {
			score = noHandlersWithLogging
		}
		return model.NewResult(score, details), nil
	}

	quality := float64(goodHandlers) / float64(totalHandlers)
	score := quality * maxHandlerPoints
	if usesLogging {
		score += loggingBonus
	}

	summary := fmt.Sprintf("Error handling quality: %.2f%% (%d/%d specific handlers)",
		quality*100, goodHandlers, totalHandlers)
	details = append(details[:1], append([]string{summary}, details[1:]...)...)

	result := model.NewResult(model.Clamp(score), details)
	result.SetMetric("total_handlers", totalHandlers)
	result.SetMetric("specific_handlers", goodHandlers)
	result.SetMetric("uses_logging", usesLogging)
	return result, nil
}
