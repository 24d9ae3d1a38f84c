package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CoverageReport holds the totals from a pytest coverage JSON report
type CoverageReport struct {
	Totals struct {
		PercentCovered float64 `json:"percent_covered"`
	} `json:"totals"`
}

// RunPytestCoverage runs the target codebase's tests under coverage and
// returns the overall covered percentage. The coverage.json artifact is
// removed after parsing. Assumes the codebase's dependencies are installed
// in the environment, as the original tool did.
func RunPytestCoverage(ctx context.Context, codebasePath string, timeout time.Duration) (float64, error) {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	reportPath := filepath.Join(codebasePath, "coverage.json")
	defer os.Remove(reportPath)

	_, _, err := run(ctx, timeout, codebasePath,
		"pytest",
		"--cov="+codebasePath,
		"--cov-report=json:"+reportPath,
		codebasePath)
	if err != nil {
		return 0, err
	}

	raw, err := os.ReadFile(reportPath)
	if err != nil {
		return 0, fmt.Errorf("coverage report was not generated: %w", err)
	}
	return ParseCoverageReport(raw)
}

// ParseCoverageReport extracts percent_covered from coverage JSON
func ParseCoverageReport(raw []byte) (float64, error) {
	var report CoverageReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return 0, fmt.Errorf("failed to parse coverage report: %w", err)
	}
	return report.Totals.PercentCovered, nil
}
