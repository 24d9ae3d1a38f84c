package security

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"bench-go/internal/analysis/census"
	"bench-go/internal/bench/model"
	"bench-go/internal/stats"
	"bench-go/internal/tools"
)

const (
	staticWeight = 0.7
	depsWeight   = 0.3
	// When a web application URL is configured, the static blend takes 60%
	// and the dynamic scan 40%
	blendStatic  = 0.6
	blendDynamic = 0.4
	// Dynamic component when the baseline scan cannot run or be parsed
	neutralDynamicScore = 5.0

	maxBanditDetails = 10
)

// Scorer rates security from a bandit static scan (70%) and a safety
// dependency audit (30%). When a web application URL is configured, an OWASP
// ZAP baseline scan contributes a dynamic component.
type Scorer struct {
	banditTimeout time.Duration
	safetyTimeout time.Duration
	zapTimeout    time.Duration
	webAppURL     string
	logger        *zap.Logger
}

// New creates a security scorer. webAppURL may be empty to skip the dynamic
// scan.
func New(banditTimeout, safetyTimeout, zapTimeout time.Duration, webAppURL string, logger *zap.Logger) *Scorer {
	return &Scorer{
		banditTimeout: banditTimeout,
		safetyTimeout: safetyTimeout,
		zapTimeout:    zapTimeout,
		webAppURL:     webAppURL,
		logger:        logger,
	}
}

func (s *Scorer) Name() string             { return "Security" }
func (s *Scorer) Category() model.Category { return model.CategorySecurity }
func (s *Scorer) Description() string {
	return "Static analysis (bandit), dependency audit (safety), optional ZAP baseline"
}

func (s *Scorer) Assess(ctx context.Context, target string) (*model.Result, error) {
	c, err := census.Take(target)
	if err != nil {
		return nil, err
	}
	if len(c.PythonFiles()) == 0 {
		return model.NewResult(0, []string{"No Python files found."}), nil
	}

	var details []string
	var components []float64

	banditScore, banditDetails := s.assessBandit(ctx, target)
	details = append(details, banditDetails...)
	components = append(components, banditScore)

	safetyScore, safetyDetails := s.assessSafety(ctx, target)
	details = append(details, safetyDetails...)
	components = append(components, safetyScore)

	static := staticWeight*banditScore + depsWeight*safetyScore
	score := static

	if s.webAppURL != "" {
		zapScore, zapDetails := s.assessZap(ctx)
		details = append(details, zapDetails...)
		components = append(components, zapScore)
		score = blendWithDynamic(static, zapScore)
	}

	score = stats.AdjustForSize(score, c.SizeBucket(), "security")

	result := model.NewResult(model.Clamp(score), details)
	if low, high := stats.ConfidenceInterval(components, 0.95); low != high {
		result.SetInterval(model.Clamp(low), model.Clamp(high))
	}
	result.SetMetric("bandit_score", banditScore)
	result.SetMetric("safety_score", safetyScore)
	return result, nil
}

func (s *Scorer) assessBandit(ctx context.Context, target string) (float64, []string) {
	report, err := tools.RunBandit(ctx, target, s.banditTimeout)
	switch {
	case errors.Is(err, tools.ErrToolUnavailable):
		return 0, []string{"[bandit] Tool not available; static scan skipped."}
	case errors.Is(err, tools.ErrTimeout):
		return 3, []string{"[bandit] Scan timed out; partial credit only."}
	case err != nil:
		return 0, []string{fmt.Sprintf("[bandit] Scan failed: %v", err)}
	}

	high, medium, low := report.SeverityCounts()
	score := 10 - 3*float64(high) - 1*float64(medium) - 0.5*float64(low)
	if score < 0 {
		score = 0
	}

	details := []string{fmt.Sprintf("[bandit] %d high, %d medium, %d low severity findings.", high, medium, low)}
	details = append(details, banditFindingDetails(report)...)
	return score, details
}

// banditFindingDetails itemizes at most maxBanditDetails findings
func banditFindingDetails(report *tools.BanditReport) []string {
	findings := report.Results
	if len(findings) > maxBanditDetails {
		findings = findings[:maxBanditDetails]
	}
	details := make([]string, 0, len(findings))
	for _, f := range findings {
		details = append(details, fmt.Sprintf("[bandit] %s: %s (%s:%d)",
			f.IssueSeverity, f.IssueText, f.Filename, f.LineNumber))
	}
	return details
}

func (s *Scorer) assessSafety(ctx context.Context, target string) (float64, []string) {
	requirements := filepath.Join(target, "requirements.txt")
	if _, err := os.Stat(requirements); err != nil {
		return 8, []string{"[safety] No requirements.txt found; dependency audit skipped."}
	}

	report, err := tools.RunSafety(ctx, requirements, s.safetyTimeout)
	switch {
	case errors.Is(err, tools.ErrToolUnavailable):
		return 8, []string{"[safety] Tool not available; dependency audit skipped."}
	case errors.Is(err, tools.ErrTimeout):
		return 7, []string{"[safety] Audit timed out; partial credit only."}
	case err != nil:
		return 8, []string{fmt.Sprintf("[safety] Audit failed: %v", err)}
	}

	score := 10 - 2*float64(len(report.Vulnerabilities))
	if score < 0 {
		score = 0
	}

	details := []string{fmt.Sprintf("[safety] %d known vulnerabilities in dependencies.", len(report.Vulnerabilities))}
	for _, v := range report.Vulnerabilities {
		details = append(details, fmt.Sprintf("[safety] %s: %s", v.Package, v.Advisory))
	}
	return score, details
}

// assessZap falls back to a neutral dynamic score when the scan cannot run,
// so the configured blend still applies.
func (s *Scorer) assessZap(ctx context.Context) (float64, []string) {
	result, err := tools.RunZapBaseline(ctx, s.webAppURL, s.zapTimeout)
	switch {
	case errors.Is(err, tools.ErrToolUnavailable):
		return neutralDynamicScore, []string{"[zap] Docker not available; assuming neutral dynamic score."}
	case errors.Is(err, tools.ErrTimeout):
		return 3, []string{"[zap] Baseline scan timed out; partial credit only."}
	case err != nil:
		return neutralDynamicScore, []string{fmt.Sprintf("[zap] Baseline scan failed: %v", err)}
	}
	if !result.Parsed {
		return neutralDynamicScore, []string{"[zap] Could not parse baseline output; assuming neutral dynamic score."}
	}

	return zapAlertScore(result), []string{fmt.Sprintf("[zap] %d high, %d medium, %d low alerts against %s.",
		result.High, result.Medium, result.Low, s.webAppURL)}
}

func zapAlertScore(result *tools.ZapResult) float64 {
	score := 10 - 4*float64(result.High) - 2*float64(result.Medium) - 0.5*float64(result.Low)
	if score < 0 {
		return 0
	}
	return score
}

func blendWithDynamic(static, dynamic float64) float64 {
	return blendStatic*static + blendDynamic*dynamic
}
