package tools

import (
	"testing"
)

func TestParseBanditReport(t *testing.T) {
	raw := []byte(`{
		"results": [
			{"issue_text": "Use of exec", "issue_severity": "HIGH", "filename": "app.py", "line_number": 10},
			{"issue_text": "Hardcoded password", "issue_severity": "MEDIUM", "filename": "db.py", "line_number": 4},
			{"issue_text": "Try/except/pass", "issue_severity": "LOW", "filename": "util.py", "line_number": 22}
		]
	}`)

	report, err := ParseBanditReport(raw)
	if err != nil {
		t.Fatalf("ParseBanditReport failed: %v", err)
	}

	high, medium, low := report.SeverityCounts()
	if high != 1 || medium != 1 || low != 1 {
		t.Fatalf("Expected 1/1/1 severities, got %d/%d/%d", high, medium, low)
	}
	if report.Results[0].Filename != "app.py" || report.Results[0].LineNumber != 10 {
		t.Fatalf("Unexpected first finding: %+v", report.Results[0])
	}
}

func TestParseSafetyReport_LegacyFormat(t *testing.T) {
	raw := []byte(`[{"package_name": "requests", "advisory": "CVE-XXXX"}]`)

	report, err := ParseSafetyReport(raw)
	if err != nil {
		t.Fatalf("ParseSafetyReport failed: %v", err)
	}
	if len(report.Vulnerabilities) != 1 {
		t.Fatalf("Expected 1 vulnerability, got %d", len(report.Vulnerabilities))
	}
	if report.Vulnerabilities[0].Package != "requests" {
		t.Fatalf("Expected package requests, got %s", report.Vulnerabilities[0].Package)
	}
}

func TestParseSafetyReport_ModernFormat(t *testing.T) {
	raw := []byte(`{"vulnerabilities": [{"package": "flask", "vulnerability_id": "12345"}]}`)

	report, err := ParseSafetyReport(raw)
	if err != nil {
		t.Fatalf("ParseSafetyReport failed: %v", err)
	}
	if len(report.Vulnerabilities) != 1 {
		t.Fatalf("Expected 1 vulnerability, got %d", len(report.Vulnerabilities))
	}
	if report.Vulnerabilities[0].Package != "flask" || report.Vulnerabilities[0].Advisory != "12345" {
		t.Fatalf("Unexpected vulnerability: %+v", report.Vulnerabilities[0])
	}
}

func TestParseSafetyReport_Garbage(t *testing.T) {
	report, err := ParseSafetyReport([]byte("safety banner text, not json"))
	if err != nil {
		t.Fatalf("Expected garbage output to parse as empty, got error: %v", err)
	}
	if len(report.Vulnerabilities) != 0 {
		t.Fatalf("Expected no vulnerabilities, got %d", len(report.Vulnerabilities))
	}
}

func TestParsePycodestyleOutput(t *testing.T) {
	output := "app.py:1:1: E302 expected 2 blank lines\napp.py:10:80: E501 line too long\n\n"
	result := ParsePycodestyleOutput(output)
	if result.TotalErrors != 2 {
		t.Fatalf("Expected 2 errors, got %d", result.TotalErrors)
	}
}

func TestParsePycodestyleOutput_Clean(t *testing.T) {
	if got := ParsePycodestyleOutput("").TotalErrors; got != 0 {
		t.Fatalf("Expected 0 errors for empty output, got %d", got)
	}
}

func TestParseCoverageReport(t *testing.T) {
	raw := []byte(`{"totals": {"percent_covered": 87.5}}`)
	percent, err := ParseCoverageReport(raw)
	if err != nil {
		t.Fatalf("ParseCoverageReport failed: %v", err)
	}
	if percent != 87.5 {
		t.Fatalf("Expected 87.5, got %f", percent)
	}

	if _, err := ParseCoverageReport([]byte("not json")); err == nil {
		t.Fatal("Expected error for invalid coverage JSON")
	}
}

func TestParsePyinstrumentReport(t *testing.T) {
	ms, err := ParsePyinstrumentReport([]byte(`{"duration": 1.25}`))
	if err != nil {
		t.Fatalf("ParsePyinstrumentReport failed: %v", err)
	}
	if ms != 1250 {
		t.Fatalf("Expected 1250 ms, got %f", ms)
	}
}

func TestParseLizardCSV(t *testing.T) {
	output := `12,3,50,2,14,"greet@5-18@app.py","app.py","greet","greet(self, name)",5,18
NLOC,CCN,token,PARAM,length,location,file,function,args,row,col`

	functions := ParseLizardCSV(output)
	if len(functions) != 1 {
		t.Fatalf("Expected 1 parsed function, got %d", len(functions))
	}
	fn := functions[0]
	if fn.NLOC != 12 || fn.Complexity != 3 || fn.Name != "greet" || fn.File != "app.py" {
		t.Fatalf("Unexpected function row: %+v", fn)
	}
	if fn.StartLine != 5 {
		t.Fatalf("Expected start line 5, got %d", fn.StartLine)
	}
}

func TestParseZapOutput(t *testing.T) {
	output := "WARN-NEW: X-Frame-Options [MEDIUM]\nPASS: Cookie Secure Flag\nFAIL-NEW: SQL Injection [HIGH]\n"
	result := ParseZapOutput(output)
	if !result.Parsed {
		t.Fatal("Expected output to be recognized")
	}
	if result.High != 1 || result.Medium != 1 {
		t.Fatalf("Expected 1 high and 1 medium, got %d/%d", result.High, result.Medium)
	}

	empty := ParseZapOutput("docker: image not found")
	if empty.Parsed {
		t.Fatal("Expected unrecognized output to be unparsed")
	}
}

func TestParseGitLog(t *testing.T) {
	output := `@abc123|alice@example.com
main.py
util.py

@def456|bob@example.com
main.py
`
	commits := ParseGitLog(output)
	if len(commits) != 2 {
		t.Fatalf("Expected 2 commits, got %d", len(commits))
	}
	if commits[0].Hash != "abc123" || commits[0].AuthorEmail != "alice@example.com" {
		t.Fatalf("Unexpected first commit: %+v", commits[0])
	}
	if len(commits[0].Files) != 2 {
		t.Fatalf("Expected 2 files in first commit, got %d", len(commits[0].Files))
	}
	if len(commits[1].Files) != 1 || commits[1].Files[0] != "main.py" {
		t.Fatalf("Unexpected second commit files: %v", commits[1].Files)
	}
}

func TestParseGitLog_Empty(t *testing.T) {
	if commits := ParseGitLog(""); len(commits) != 0 {
		t.Fatalf("Expected no commits, got %d", len(commits))
	}
}
