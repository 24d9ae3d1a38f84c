package bench

import (
	"context"
	"time"

	"go.uber.org/zap"

	"bench-go/internal/bench/consistency"
	"bench-go/internal/bench/docscore"
	"bench-go/internal/bench/githealth"
	"bench-go/internal/bench/llmscore"
	"bench-go/internal/bench/maintainability"
	"bench-go/internal/bench/performance"
	"bench-go/internal/bench/readability"
	"bench-go/internal/bench/robustness"
	"bench-go/internal/bench/scalability"
	"bench-go/internal/bench/security"
	"bench-go/internal/bench/testability"
	"bench-go/internal/config"
)

// NewDefaultRegistry builds a registry with the full benchmark suite wired
// from configuration.
func NewDefaultRegistry(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Registry, error) {
	registry := NewRegistry(logger)

	readabilityScorer, err := readability.New(config.Timeout(cfg.Tools.PycodestyleTimeout, 30*time.Second), logger)
	if err != nil {
		return nil, err
	}
	maintainabilityScorer, err := maintainability.New(logger)
	if err != nil {
		return nil, err
	}
	performanceScorer, err := performance.New(cfg.ProfileScript,
		config.Timeout(cfg.Tools.ProfileTimeout, 60*time.Second), logger)
	if err != nil {
		return nil, err
	}
	robustnessScorer, err := robustness.New(logger)
	if err != nil {
		return nil, err
	}
	scalabilityScorer, err := scalability.New(logger)
	if err != nil {
		return nil, err
	}
	documentationScorer, err := docscore.New(logger)
	if err != nil {
		return nil, err
	}
	consistencyScorer, err := consistency.New(logger)
	if err != nil {
		return nil, err
	}
	llmScorer, err := llmscore.New(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, logger)
	if err != nil {
		return nil, err
	}

	registry.Register(readabilityScorer)
	registry.Register(maintainabilityScorer)
	registry.Register(performanceScorer)
	registry.Register(testability.New(config.Timeout(cfg.Tools.CoverageTimeout, 120*time.Second), logger))
	registry.Register(robustnessScorer)
	registry.Register(security.New(
		config.Timeout(cfg.Tools.BanditTimeout, 60*time.Second),
		config.Timeout(cfg.Tools.SafetyTimeout, 60*time.Second),
		config.Timeout(cfg.Tools.ZapTimeout, 5*time.Minute),
		cfg.WebAppURL, logger))
	registry.Register(scalabilityScorer)
	registry.Register(documentationScorer)
	registry.Register(consistencyScorer)
	registry.Register(githealth.New(config.Timeout(cfg.Tools.GitTimeout, 30*time.Second), logger))
	registry.Register(llmScorer)

	return registry, nil
}
