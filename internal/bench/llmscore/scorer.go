package llmscore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"bench-go/internal/analysis/census"
	"bench-go/internal/bench/model"
)

const (
	// Largest Python files sampled into the prompt
	sampleFiles = 5
	// Lines taken from the head of each sampled file
	sampleLines = 300
	// Hard cap on prompt size in characters
	sampleBudget = 16000
	// Characters taken from the README
	readmeBudget = 2000
)

var scoreLine = regexp.MustCompile(`(?m)^\s*SCORE:\s*(\d+)\s*(?:-\s*(.*))?$`)

const promptHeader = `You are a strict senior code reviewer. Rate the overall quality of the
following Python codebase sample on a scale of 0 to 10, where 0 is
unusable and 10 is exemplary. Consider structure, clarity, error
handling, and testing. Respond with exactly one line in the form:
SCORE: <integer> - <one-sentence justification>

Codebase sample:
`

// Scorer asks a Gemini model for a holistic quality judgment over a sample
// of the codebase. Without an API key it scores zero and explains how to
// enable itself.
type Scorer struct {
	client *genai.Client // nil when unconfigured
	model  string
	logger *zap.Logger
}

// New creates an LLM scorer. An empty apiKey leaves the scorer disabled
// rather than failing.
func New(ctx context.Context, apiKey, modelName string, logger *zap.Logger) (*Scorer, error) {
	s := &Scorer{model: modelName, logger: logger}
	if apiKey == "" {
		return s, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	s.client = client
	return s, nil
}

func (s *Scorer) Name() string             { return "LlmScore" }
func (s *Scorer) Category() model.Category { return model.CategoryQualitative }
func (s *Scorer) Description() string {
	return "Holistic quality judgment from a Gemini model over sampled code"
}

func (s *Scorer) Assess(ctx context.Context, target string) (*model.Result, error) {
	if s.client == nil {
		return model.NewResult(0, []string{
			"LLM scoring disabled: no API key configured.",
			"Set GEMINI_API_KEY (or gemini.api_key in the app config) to enable it.",
		}), nil
	}

	sample, sampled, err := buildSample(target)
	if err != nil {
		return nil, err
	}
	if sample == "" {
		return model.NewResult(0, []string{"No Python files found."}), nil
	}

	contents := []*genai.Content{genai.NewContentFromText(promptHeader+sample, genai.RoleUser)}
	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		s.logger.Warn("LLM scoring request failed", zap.Error(err))
		return model.NewResult(0, []string{fmt.Sprintf("LLM request failed: %v", err)}), nil
	}

	text := resp.Text()
	score, justification, ok := parseScore(text)
	if !ok {
		return model.NewResult(0, []string{
			"Could not parse a SCORE line from the model response.",
			fmt.Sprintf("Response was: %.200s", text),
		}), nil
	}

	details := []string{fmt.Sprintf("Model verdict: %s", justification)}
	details = append(details, fmt.Sprintf("Sampled %d files (%d chars).", sampled, len(sample)))

	result := model.NewResult(model.Clamp(float64(score)), details)
	result.SetMetric("model", s.model)
	result.SetMetric("sampled_files", sampled)
	return result, nil
}

// buildSample concatenates the README and the heads of the largest Python
// files, staying under the character budget. Returns the sample and how many
// files made it in.
func buildSample(target string) (string, int, error) {
	files, err := census.PythonFiles(target)
	if err != nil {
		return "", 0, err
	}
	if len(files) == 0 {
		return "", 0, nil
	}

	var b strings.Builder
	sampled := 0

	for _, name := range []string{"README.md", "README.rst", "README.txt", "README"} {
		if content, err := os.ReadFile(filepath.Join(target, name)); err == nil {
			if len(content) > readmeBudget {
				content = content[:readmeBudget]
			}
			b.WriteString("--- README ---\n")
			b.Write(content)
			b.WriteString("\n")
			break
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return fileSize(files[i]) > fileSize(files[j])
	})
	if len(files) > sampleFiles {
		files = files[:sampleFiles]
	}

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			continue
		}
		lines := strings.SplitN(string(content), "\n", sampleLines+1)
		if len(lines) > sampleLines {
			lines = lines[:sampleLines]
		}
		chunk := fmt.Sprintf("--- %s ---\n%s\n", filepath.Base(file), strings.Join(lines, "\n"))
		if b.Len()+len(chunk) > sampleBudget {
			break
		}
		b.WriteString(chunk)
		sampled++
	}

	sample := b.String()
	if len(sample) > sampleBudget {
		sample = sample[:sampleBudget]
	}
	return sample, sampled, nil
}

func parseScore(text string) (int, string, bool) {
	m := scoreLine.FindStringSubmatch(text)
	if m == nil {
		return 0, "", false
	}
	score, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}
	justification := strings.TrimSpace(m[2])
	if justification == "" {
		justification = "(no justification given)"
	}
	return score, justification, true
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
