package bench

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bench-go/internal/bench/model"
	"bench-go/internal/service/runstore"
	"bench-go/internal/stats"
)

// CompareOptions tunes a comparison run
type CompareOptions struct {
	// Weights multiplies per-benchmark scores; missing entries default to 1.0
	Weights map[string]float64

	// Skip lists benchmark names to leave out (matched case-insensitively)
	Skip []string
}

// Row is one benchmark's weighted outcome for both codebases
type Row struct {
	Name    string        `json:"name"`
	Weight  float64       `json:"weight"`
	Score1  float64       `json:"score1"` // weighted
	Score2  float64       `json:"score2"` // weighted
	Result1 *model.Result `json:"result1"`
	Result2 *model.Result `json:"result2"`
}

// Comparison is the full outcome of comparing two codebases
type Comparison struct {
	RunID     string        `json:"run_id"`
	Codebase1 string        `json:"codebase1"`
	Codebase2 string        `json:"codebase2"`
	Rows      []Row         `json:"rows"`
	Total1    float64       `json:"total1"`
	Total2    float64       `json:"total2"`
	StartedAt time.Time     `json:"started_at"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Runner orchestrates benchmark execution over codebase pairs
type Runner struct {
	registry *Registry
	store    runstore.RunStore // may be nil
	logger   *zap.Logger
}

// NewRunner creates a runner. store may be nil to disable run recording.
func NewRunner(registry *Registry, store runstore.RunStore, logger *zap.Logger) *Runner {
	return &Runner{
		registry: registry,
		store:    store,
		logger:   logger,
	}
}

// Assess runs the selected benchmarks (all when names is empty) against one
// codebase.
func (r *Runner) Assess(ctx context.Context, target string, names []string) (map[string]*model.Result, error) {
	if err := checkDirectory(target); err != nil {
		return nil, err
	}

	selected := r.registry.GetAll()
	if len(names) > 0 {
		selected = selected[:0]
		for _, name := range names {
			b, err := r.registry.Get(name)
			if err != nil {
				return nil, err
			}
			selected = append(selected, b)
		}
	}

	results := make(map[string]*model.Result)
	for _, b := range selected {
		result, err := b.Assess(ctx, target)
		if err != nil {
			r.logger.Warn("Benchmark failed",
				zap.String("benchmark", b.Name()),
				zap.String("target", target),
				zap.Error(err))
			result = model.NewResult(0, []string{fmt.Sprintf("Benchmark failed: %v", err)})
		}
		results[b.Name()] = result
	}
	return results, nil
}

// Compare scores two codebases with every non-skipped benchmark, applies
// weights and outlier compression, and records the run.
func (r *Runner) Compare(ctx context.Context, path1, path2 string, opts CompareOptions) (*Comparison, error) {
	if err := checkDirectory(path1); err != nil {
		return nil, err
	}
	if err := checkDirectory(path2); err != nil {
		return nil, err
	}

	skip := make(map[string]bool, len(opts.Skip))
	for _, name := range opts.Skip {
		skip[strings.ToLower(strings.TrimSpace(name))] = true
	}

	var selected []Benchmark
	for _, b := range r.registry.GetAll() {
		if skip[strings.ToLower(b.Name())] {
			continue
		}
		selected = append(selected, b)
	}

	started := time.Now()
	results1 := make(map[string]*model.Result, len(selected))
	results2 := make(map[string]*model.Result, len(selected))

	// The two codebases are scored in parallel; within one side benchmarks
	// run sequentially because scorers share tree-sitter parsers.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r.assessSide(gctx, path1, selected, results1)
		return nil
	})
	g.Go(func() error {
		r.assessSide(gctx, path2, selected, results2)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	raw1 := make(map[string]float64, len(selected))
	raw2 := make(map[string]float64, len(selected))
	for _, b := range selected {
		raw1[b.Name()] = results1[b.Name()].Score
		raw2[b.Name()] = results2[b.Name()].Score
	}
	raw1 = stats.Compress(raw1)
	raw2 = stats.Compress(raw2)

	cmp := &Comparison{
		RunID:     uuid.NewString(),
		Codebase1: path1,
		Codebase2: path2,
		StartedAt: started,
	}

	scores1 := make(map[string]float64, len(selected))
	scores2 := make(map[string]float64, len(selected))
	for _, b := range selected {
		weight := 1.0
		if w, ok := opts.Weights[b.Name()]; ok {
			weight = w
		}
		weighted1 := raw1[b.Name()] * weight
		weighted2 := raw2[b.Name()] * weight

		cmp.Rows = append(cmp.Rows, Row{
			Name:    b.Name(),
			Weight:  weight,
			Score1:  weighted1,
			Score2:  weighted2,
			Result1: results1[b.Name()],
			Result2: results2[b.Name()],
		})
		cmp.Total1 += weighted1
		cmp.Total2 += weighted2
		scores1[b.Name()] = weighted1
		scores2[b.Name()] = weighted2
	}
	cmp.Elapsed = time.Since(started)

	r.recordRun(ctx, cmp, scores1, scores2)
	return cmp, nil
}

func (r *Runner) assessSide(ctx context.Context, target string, selected []Benchmark, out map[string]*model.Result) {
	for _, b := range selected {
		result, err := b.Assess(ctx, target)
		if err != nil {
			r.logger.Warn("Benchmark failed",
				zap.String("benchmark", b.Name()),
				zap.String("target", target),
				zap.Error(err))
			result = model.NewResult(0, []string{fmt.Sprintf("Benchmark failed: %v", err)})
		}
		out[b.Name()] = result
	}
}

// recordRun saves the run for trend analysis. Store failures are logged,
// never surfaced: history is best effort.
func (r *Runner) recordRun(ctx context.Context, cmp *Comparison, scores1, scores2 map[string]float64) {
	if r.store == nil {
		return
	}
	run := &runstore.Run{
		ID:        cmp.RunID,
		StartedAt: cmp.StartedAt,
		Codebase1: cmp.Codebase1,
		Codebase2: cmp.Codebase2,
		Total1:    cmp.Total1,
		Total2:    cmp.Total2,
		Scores1:   scores1,
		Scores2:   scores2,
	}
	if err := r.store.RecordRun(ctx, run); err != nil {
		r.logger.Warn("Failed to record run", zap.String("run_id", cmp.RunID), zap.Error(err))
	}
}

func checkDirectory(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("codebase path %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("codebase path %s is not a directory", path)
	}
	return nil
}
