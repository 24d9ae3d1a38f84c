package bench

import (
	"context"

	"bench-go/internal/bench/model"
)

// Benchmark is the main interface for codebase quality scorers
type Benchmark interface {
	// Name returns the unique identifier for this benchmark
	Name() string

	// Category returns the category this benchmark belongs to
	Category() model.Category

	// Description returns a human-readable description
	Description() string

	// Assess scores the codebase at target on a 0-10 scale
	Assess(ctx context.Context, target string) (*model.Result, error)
}
