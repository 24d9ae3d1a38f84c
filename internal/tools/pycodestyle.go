package tools

import (
	"context"
	"strings"
	"time"
)

// PycodestyleResult summarizes a style check run
type PycodestyleResult struct {
	TotalErrors int
	Lines       []string
}

// RunPycodestyle checks the given files for PEP8 violations. Each output
// line is one violation in `path:row:col: code message` form.
func RunPycodestyle(ctx context.Context, files []string, timeout time.Duration) (*PycodestyleResult, error) {
	if len(files) == 0 {
		return &PycodestyleResult{}, nil
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	args := append([]string{}, files...)
	stdout, _, err := run(ctx, timeout, "", "pycodestyle", args...)
	if err != nil {
		return nil, err
	}
	return ParsePycodestyleOutput(stdout), nil
}

// ParsePycodestyleOutput counts violation lines in pycodestyle text output
func ParsePycodestyleOutput(output string) *PycodestyleResult {
	result := &PycodestyleResult{}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		result.TotalErrors++
		result.Lines = append(result.Lines, line)
	}
	return result
}
