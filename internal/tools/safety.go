package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SafetyVulnerability is one vulnerable dependency finding
type SafetyVulnerability struct {
	Package  string
	Advisory string
}

// SafetyReport is the parsed output of a safety scan
type SafetyReport struct {
	Vulnerabilities []SafetyVulnerability
}

// RunSafety scans a requirements file for known-vulnerable dependencies.
// The newer `safety scan` is tried first, falling back to the deprecated
// `safety check` invocation.
func RunSafety(ctx context.Context, requirementsPath string, timeout time.Duration) (*SafetyReport, error) {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	stdout, _, err := run(ctx, timeout, "",
		"safety", "scan", "--file", requirementsPath, "--output", "json", "--disable-optional-telemetry")
	if errors.Is(err, ErrToolUnavailable) || errors.Is(err, ErrTimeout) {
		return nil, err
	}
	if err != nil || stdout == "" {
		stdout, _, err = run(ctx, timeout, "",
			"safety", "check", fmt.Sprintf("--file=%s", requirementsPath), "--json", "--disable-optional-telemetry")
		if err != nil {
			return nil, err
		}
	}

	return ParseSafetyReport([]byte(stdout))
}

// ParseSafetyReport decodes safety output in either the legacy list format
// or the newer object format. Unparsable output is treated as no findings,
// matching how safety emits non-JSON banners on clean scans.
func ParseSafetyReport(raw []byte) (*SafetyReport, error) {
	report := &SafetyReport{}

	// Legacy format: a bare JSON array of vulnerability records
	var legacy []map[string]any
	if err := json.Unmarshal(raw, &legacy); err == nil {
		for _, v := range legacy {
			report.Vulnerabilities = append(report.Vulnerabilities, SafetyVulnerability{
				Package:  firstString(v, "package_name", "package"),
				Advisory: firstString(v, "advisory", "vulnerability_id"),
			})
		}
		return report, nil
	}

	// New format: object with a "vulnerabilities" array
	var modern struct {
		Vulnerabilities []map[string]any `json:"vulnerabilities"`
	}
	if err := json.Unmarshal(raw, &modern); err == nil {
		for _, v := range modern.Vulnerabilities {
			report.Vulnerabilities = append(report.Vulnerabilities, SafetyVulnerability{
				Package:  firstString(v, "package_name", "package"),
				Advisory: firstString(v, "advisory", "vulnerability_id"),
			})
		}
		return report, nil
	}

	return report, nil
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k].(string); ok && v != "" {
			return v
		}
	}
	return "unknown"
}
