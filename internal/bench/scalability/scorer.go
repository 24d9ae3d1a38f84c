package scalability

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"bench-go/internal/analysis/census"
	"bench-go/internal/analysis/pyast"
	"bench-go/internal/bench/model"
)

// Libraries whose presence suggests the codebase can shed load
var scalingLibraries = []string{"celery", "redis", "memcache", "cachetools", "functools", "queue", "kafka", "rabbitmq", "pika"}

// Scorer rates scalability from concurrency and distribution signals:
// asyncio usage, multiprocessing, caching or queueing libraries, and the
// share of functions declared async.
type Scorer struct {
	analyzer *pyast.Analyzer
	logger   *zap.Logger
}

// New creates a scalability scorer
func New(logger *zap.Logger) (*Scorer, error) {
	analyzer, err := pyast.NewAnalyzer()
	if err != nil {
		return nil, err
	}
	return &Scorer{analyzer: analyzer, logger: logger}, nil
}

func (s *Scorer) Name() string             { return "Scalability" }
func (s *Scorer) Category() model.Category { return model.CategoryStructure }
func (s *Scorer) Description() string {
	return "Concurrency, parallelism, and caching/queueing signals"
}

func (s *Scorer) Assess(ctx context.Context, target string) (*model.Result, error) {
	files, err := census.PythonFiles(target)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return model.NewResult(0, []string{"No Python files found."}), nil
	}

	usesAsyncio := false
	usesMultiprocessing := false
	scalingLib := ""
	totalFunctions := 0
	asyncFunctions := 0

	for _, file := range files {
		mod, err := s.analyzer.AnalyzeFile(ctx, file)
		if err != nil {
			continue
		}
		if mod.ImportsModule("asyncio") {
			usesAsyncio = true
		}
		if mod.ImportsModule("multiprocessing") {
			usesMultiprocessing = true
		}
		if scalingLib == "" {
			for _, imp := range mod.Imports {
				for _, lib := range scalingLibraries {
					if strings.Contains(imp, lib) {
						scalingLib = lib
						break
					}
				}
				if scalingLib != "" {
					break
				}
			}
		}
		for _, fn := range mod.Functions {
			totalFunctions++
			if fn.IsAsync {
				asyncFunctions++
			}
		}
	}

	score := 0.0
	var details []string

	if usesAsyncio {
		score += 3
		details = append(details, "Uses asyncio for asynchronous I/O.")
	}
	if usesMultiprocessing {
		score += 3
		details = append(details, "Uses multiprocessing for CPU-bound parallelism.")
	}
	if scalingLib != "" {
		score += 2
		details = append(details, fmt.Sprintf("Uses a caching/queueing library ('%s').", scalingLib))
	}

	asyncRatio := 0.0
	if totalFunctions > 0 {
		asyncRatio = float64(asyncFunctions) / float64(totalFunctions)
	}
	score += 2 * asyncRatio
	details = append(details, fmt.Sprintf("Async functions: %d/%d (%.1f%%)",
		asyncFunctions, totalFunctions, asyncRatio*100))

	if score == 0 {
		details = append([]string{"No concurrency or scaling signals detected."}, details...)
	}

	result := model.NewResult(model.Clamp(score), details)
	result.SetMetric("uses_asyncio", usesAsyncio)
	result.SetMetric("uses_multiprocessing", usesMultiprocessing)
	result.SetMetric("async_functions", asyncFunctions)
	result.SetMetric("total_functions", totalFunctions)
	return result, nil
}
