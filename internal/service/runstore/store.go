package runstore

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Run is one recorded comparison between two codebases
type Run struct {
	ID        string             `json:"id"`
	StartedAt time.Time          `json:"started_at"`
	Codebase1 string             `json:"codebase1"`
	Codebase2 string             `json:"codebase2"`
	Total1    float64            `json:"total1"`
	Total2    float64            `json:"total2"`
	Scores1   map[string]float64 `json:"scores1"`
	Scores2   map[string]float64 `json:"scores2"`
}

// RunStore persists comparison runs for trend analysis
type RunStore interface {
	// RecordRun saves a completed comparison run
	RecordRun(ctx context.Context, run *Run) error

	// RecentRuns returns up to limit runs, newest first
	RecentRuns(ctx context.Context, limit int) ([]*Run, error)

	// Close releases the underlying database
	Close(ctx context.Context) error
}

// Backend selects the run store implementation
type Backend string

const (
	BackendKuzu  Backend = "kuzu"
	BackendNeo4j Backend = "neo4j"
)

// Options configures the run store backends
type Options struct {
	Backend  Backend
	KuzuPath string // file path or ":memory:"

	Neo4jURI      string
	Neo4jUsername string
	Neo4jPassword string
}

// New creates a run store for the configured backend. Kuzu is the default:
// it is embedded and needs no external service.
func New(opts Options, logger *zap.Logger) (RunStore, error) {
	switch opts.Backend {
	case BackendNeo4j:
		return NewNeo4jStore(opts.Neo4jURI, opts.Neo4jUsername, opts.Neo4jPassword, logger)
	case BackendKuzu, "":
		return NewKuzuStore(opts.KuzuPath, logger)
	default:
		return nil, fmt.Errorf("unknown run store backend: %s", opts.Backend)
	}
}
