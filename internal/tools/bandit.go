package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// BanditFinding is one issue reported by bandit
type BanditFinding struct {
	IssueText     string `json:"issue_text"`
	IssueSeverity string `json:"issue_severity"`
	Filename      string `json:"filename"`
	LineNumber    int    `json:"line_number"`
}

// BanditReport is the parsed bandit JSON output
type BanditReport struct {
	Results []BanditFinding `json:"results"`
}

// SeverityCounts tallies findings by severity level
func (r *BanditReport) SeverityCounts() (high, medium, low int) {
	for _, f := range r.Results {
		switch f.IssueSeverity {
		case "HIGH":
			high++
		case "MEDIUM":
			medium++
		case "LOW":
			low++
		}
	}
	return
}

// banditExcludes keeps binary assets and vendored trees out of the scan
const banditExcludes = "*/stls/*,*/dataset.zip,*/.venv/*,*/node_modules/*,*/__pycache__/*,*/build/*,*/dist/*,*.pyc,*.zip,*.tar.gz,*.stl,*.step,*.blob,*.pdf,*.png,*.jpg,*.wav,*.mp3"

// RunBandit performs a recursive bandit scan of the codebase. B101 (assert
// used) and B601 are skipped as test-related noise.
func RunBandit(ctx context.Context, codebasePath string, timeout time.Duration) (*BanditReport, error) {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	stdout, _, err := run(ctx, timeout, "",
		"bandit", "-r", codebasePath, "-f", "json",
		"--skip", "B101,B601",
		"--exclude", banditExcludes)
	if err != nil {
		return nil, err
	}
	return ParseBanditReport([]byte(stdout))
}

// ParseBanditReport decodes bandit JSON output
func ParseBanditReport(raw []byte) (*BanditReport, error) {
	var report BanditReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("failed to parse bandit output: %w", err)
	}
	return &report, nil
}
