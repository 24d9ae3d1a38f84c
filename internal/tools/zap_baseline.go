package tools

import (
	"context"
	"strings"
	"time"
)

// ZapResult summarizes an OWASP ZAP baseline scan
type ZapResult struct {
	High   int
	Medium int
	Low    int
	Parsed bool // false when the scan ran but output was unreadable
}

// RunZapBaseline runs the dockerized ZAP baseline scan against a running
// web application. This is the only shim that needs docker.
func RunZapBaseline(ctx context.Context, webAppURL string, timeout time.Duration) (*ZapResult, error) {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	stdout, _, err := run(ctx, timeout, "",
		"docker", "run", "--rm", "-t",
		"owasp/zap2docker-stable",
		"zap-baseline.py",
		"-t", webAppURL,
		"-J", "/tmp/zap-report.json")
	if err != nil {
		return nil, err
	}
	return ParseZapOutput(stdout), nil
}

// ParseZapOutput counts severity markers in zap-baseline stdout
func ParseZapOutput(output string) *ZapResult {
	result := &ZapResult{}
	if !strings.Contains(output, "PASS") && !strings.Contains(output, "WARN") {
		return result
	}
	result.Parsed = true
	result.High = strings.Count(output, "HIGH")
	result.Medium = strings.Count(output, "MEDIUM")
	result.Low = strings.Count(output, "LOW")
	return result
}
