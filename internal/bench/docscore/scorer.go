package docscore

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"bench-go/internal/analysis/census"
	"bench-go/internal/analysis/pyast"
	"bench-go/internal/bench/model"
)

// Scorer rates docstring coverage and quality across modules, classes, and
// functions. Coverage maps 0-100% onto 0-10; quality is the fraction of
// docstrings passing the goodDocstring heuristic; the final score is the
// mean of both components.
type Scorer struct {
	analyzer *pyast.Analyzer
	logger   *zap.Logger
}

// New creates a documentation scorer
func New(logger *zap.Logger) (*Scorer, error) {
	analyzer, err := pyast.NewAnalyzer()
	if err != nil {
		return nil, err
	}
	return &Scorer{analyzer: analyzer, logger: logger}, nil
}

func (s *Scorer) Name() string             { return "Documentation" }
func (s *Scorer) Category() model.Category { return model.CategoryQuality }
func (s *Scorer) Description() string {
	return "Docstring coverage and structural quality of docstrings"
}

func (s *Scorer) Assess(ctx context.Context, target string) (*model.Result, error) {
	files, err := census.PythonFiles(target)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return model.NewResult(0, []string{"No Python files found."}), nil
	}

	totalEntities := 0
	documented := 0
	good := 0
	var details []string

	for _, file := range files {
		mod, err := s.analyzer.AnalyzeFile(ctx, file)
		if err != nil {
			continue
		}
		for _, entity := range mod.Entities {
			totalEntities++
			if entity.Docstring != "" {
				documented++
				if goodDocstring(entity.Docstring) {
					good++
				}
				continue
			}
			if entity.Kind == pyast.EntityModule {
				details = append(details, fmt.Sprintf("Missing docstring in module: %s", file))
			} else {
				details = append(details, fmt.Sprintf("Missing docstring for '%s' in %s:%d",
					entity.Name, file, entity.Line))
			}
		}
	}

	if totalEntities == 0 {
		return model.NewResult(0, []string{"No documentable entities (classes, functions) found."}), nil
	}

	coverage := float64(documented) / float64(totalEntities) * 100
	qualityRatio := 0.0
	if documented > 0 {
		qualityRatio = float64(good) / float64(documented)
	}

	coverageScore := coverage / 10
	qualityScore := qualityRatio * 10
	finalScore := (coverageScore + qualityScore) / 2

	summary := []string{
		fmt.Sprintf("Documentation coverage: %.2f%% (%d/%d)", coverage, documented, totalEntities),
		fmt.Sprintf("Good docstrings: %d/%d (%.1f%%)", good, documented, qualityRatio*100),
	}
	details = append(summary, details...)

	result := model.NewResult(model.Clamp(finalScore), details)
	result.SetMetric("coverage_percent", coverage)
	result.SetMetric("documented_entities", documented)
	result.SetMetric("total_entities", totalEntities)
	result.SetMetric("good_docstrings", good)
	return result, nil
}

// goodDocstring is a conservative structural check: at least three non-blank
// lines, no more than five consecutive blank lines, and both a parameter
// section (Args:/Parameters:) and a Returns: section.
func goodDocstring(ds string) bool {
	lines := strings.Split(ds, "\n")

	nonBlank := 0
	for _, ln := range lines {
		if strings.TrimSpace(ln) != "" {
			nonBlank++
		}
	}
	if nonBlank < 3 {
		return false
	}

	consecutiveBlanks := 0
	for _, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			consecutiveBlanks++
			if consecutiveBlanks > 5 {
				return false
			}
		} else {
			consecutiveBlanks = 0
		}
	}

	lowered := strings.ToLower(ds)
	hasArgs := strings.Contains(lowered, "args:") || strings.Contains(lowered, "parameters:")
	hasReturns := strings.Contains(lowered, "returns:")
	return hasArgs && hasReturns
}
