package githealth

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"bench-go/internal/bench/model"
	"bench-go/internal/tools"
)

// churnWindow is how far back the commit history is examined
const churnWindow = 180 * 24 * time.Hour

// Scorer rates repository health from recent commit history: average churn
// per Python file and the bus factor (distinct author emails).
type Scorer struct {
	gitTimeout time.Duration
	logger     *zap.Logger
}

// New creates a git-health scorer
func New(gitTimeout time.Duration, logger *zap.Logger) *Scorer {
	return &Scorer{gitTimeout: gitTimeout, logger: logger}
}

func (s *Scorer) Name() string             { return "GitHealth" }
func (s *Scorer) Category() model.Category { return model.CategoryProcess }
func (s *Scorer) Description() string {
	return "Commit churn and bus factor over the last six months"
}

func (s *Scorer) Assess(ctx context.Context, target string) (*model.Result, error) {
	if !tools.IsGitRepo(ctx, target) {
		return model.NewResult(5, []string{"Not a git repository; history-based checks skipped."}), nil
	}

	since := time.Now().Add(-churnWindow)
	commits, err := tools.RunGitLog(ctx, target, since, s.gitTimeout)
	if err != nil {
		return model.NewResult(5, []string{fmt.Sprintf("Could not read git history: %v", err)}), nil
	}

	churn := make(map[string]int)
	authors := make(map[string]bool)
	for _, commit := range commits {
		authors[commit.AuthorEmail] = true
		for _, file := range commit.Files {
			if strings.HasSuffix(file, ".py") {
				churn[file]++
			}
		}
	}

	busFactor := len(authors)

	if len(churn) == 0 {
		details := []string{
			"No recent churn in Python files (last 180 days).",
			fmt.Sprintf("Bus factor: %d distinct authors.", busFactor),
		}
		result := model.NewResult(8, details)
		result.SetMetric("bus_factor", busFactor)
		return result, nil
	}

	totalChurn := 0
	for _, n := range churn {
		totalChurn += n
	}
	avgChurn := float64(totalChurn) / float64(len(churn))

	var base float64
	switch {
	case avgChurn < 3:
		base = 9
	case avgChurn < 10:
		base = 7
	case avgChurn < 20:
		base = 5
	default:
		base = 3
	}

	bonus := float64(busFactor) / 5
	if bonus > 2 {
		bonus = 2
	}
	score := base + bonus

	details := []string{
		fmt.Sprintf("Average churn: %.1f changes per Python file over %d files.", avgChurn, len(churn)),
		fmt.Sprintf("Bus factor: %d distinct authors.", busFactor),
	}
	details = append(details, topChurned(churn, 5)...)

	result := model.NewResult(model.Clamp(score), details)
	result.SetMetric("avg_churn", avgChurn)
	result.SetMetric("churned_files", len(churn))
	result.SetMetric("bus_factor", busFactor)
	return result, nil
}

// topChurned lists the n most-changed files, ties broken by name
func topChurned(churn map[string]int, n int) []string {
	type entry struct {
		file  string
		count int
	}
	entries := make([]entry, 0, len(churn))
	for file, count := range churn {
		entries = append(entries, entry{file, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].file < entries[j].file
	})
	if len(entries) > n {
		entries = entries[:n]
	}

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, fmt.Sprintf("Frequently changed: %s (%d commits)", e.file, e.count))
	}
	return out
}
