package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// RunPyinstrument profiles a Python script and returns its wall time in
// milliseconds.
func RunPyinstrument(ctx context.Context, scriptPath string, timeout time.Duration) (float64, error) {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	tmp, err := os.CreateTemp("", "bench-profile-*.json")
	if err != nil {
		return 0, err
	}
	outPath := tmp.Name()
	tmp.Close()
	defer os.Remove(outPath)

	_, stderr, err := run(ctx, timeout, "",
		"pyinstrument", "--json", "-o", outPath, scriptPath)
	if err != nil {
		return 0, err
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		return 0, fmt.Errorf("profiling script failed to run: %s", stderr)
	}
	return ParsePyinstrumentReport(raw)
}

// ParsePyinstrumentReport extracts the profiled duration in milliseconds
func ParsePyinstrumentReport(raw []byte) (float64, error) {
	var report struct {
		Duration float64 `json:"duration"` // seconds
	}
	if err := json.Unmarshal(raw, &report); err != nil {
		return 0, fmt.Errorf("failed to parse pyinstrument output: %w", err)
	}
	return report.Duration * 1000, nil
}
