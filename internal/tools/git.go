package tools

import (
	"context"
	"strings"
	"time"
)

// GitCommit is one commit with the files it touched
type GitCommit struct {
	Hash        string
	AuthorEmail string
	Files       []string
}

// IsGitRepo reports whether path is inside a git work tree
func IsGitRepo(ctx context.Context, path string) bool {
	stdout, _, err := run(ctx, 10*time.Second, path, "git", "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(stdout) == "true"
}

// RunGitLog lists commits touching the given path since a point in time,
// with changed file names per commit.
func RunGitLog(ctx context.Context, repoPath string, since time.Time, timeout time.Duration) ([]GitCommit, error) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	stdout, _, err := run(ctx, timeout, repoPath,
		"git", "log",
		"--since="+since.Format(time.RFC3339),
		"--pretty=format:@%H|%ae",
		"--name-only",
		"--", ".")
	if err != nil {
		return nil, err
	}
	return ParseGitLog(stdout), nil
}

// ParseGitLog parses `git log --pretty=format:@%H|%ae --name-only` output.
// Each commit starts with an @-prefixed header line, followed by the files
// changed in that commit.
func ParseGitLog(output string) []GitCommit {
	var commits []GitCommit
	var current *GitCommit

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "@") {
			if current != nil {
				commits = append(commits, *current)
			}
			parts := strings.SplitN(line[1:], "|", 2)
			current = &GitCommit{Hash: parts[0]}
			if len(parts) == 2 {
				current.AuthorEmail = parts[1]
			}
			continue
		}
		if current != nil {
			current.Files = append(current.Files, line)
		}
	}
	if current != nil {
		commits = append(commits, *current)
	}
	return commits
}
