package bench

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"bench-go/internal/bench/model"
)

// Registry manages all registered benchmarks
type Registry struct {
	benchmarks map[string]Benchmark
	order      []string
	logger     *zap.Logger
	mu         sync.RWMutex
}

// NewRegistry creates a new benchmark registry
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		benchmarks: make(map[string]Benchmark),
		logger:     logger,
	}
}

// Register adds a benchmark to the registry. Registration order is
// preserved for report rendering.
func (r *Registry) Register(b Benchmark) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.benchmarks[b.Name()]; !exists {
		r.order = append(r.order, b.Name())
	}
	r.benchmarks[b.Name()] = b
	r.logger.Info("Registered benchmark",
		zap.String("benchmark", b.Name()),
		zap.String("category", string(b.Category())))
}

// Get retrieves a benchmark by name
func (r *Registry) Get(name string) (Benchmark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.benchmarks[name]
	if !ok {
		return nil, fmt.Errorf("benchmark not found: %s", name)
	}
	return b, nil
}

// GetAll returns all benchmarks in registration order
func (r *Registry) GetAll() []Benchmark {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Benchmark, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.benchmarks[name])
	}
	return result
}

// Names returns the registered benchmark names in registration order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// ByCategory returns all benchmarks in a category, sorted by name
func (r *Registry) ByCategory(category model.Category) []Benchmark {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Benchmark
	for _, b := range r.benchmarks {
		if b.Category() == category {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result
}

// AssessAll runs every registered benchmark against one codebase. Failures
// of individual benchmarks are logged and recorded as zero-score results;
// the run continues.
func (r *Registry) AssessAll(ctx context.Context, target string) map[string]*model.Result {
	results := make(map[string]*model.Result)

	for _, b := range r.GetAll() {
		result, err := b.Assess(ctx, target)
		if err != nil {
			r.logger.Warn("Benchmark failed",
				zap.String("benchmark", b.Name()),
				zap.String("target", target),
				zap.Error(err))
			results[b.Name()] = model.NewResult(0, []string{fmt.Sprintf("Benchmark failed: %v", err)})
			continue
		}
		results[b.Name()] = result
	}
	return results
}
