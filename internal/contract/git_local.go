package contract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/engramdev/engram/schema"
)

// Byte caps applied to commit fields before they enter a record.
const (
	shortHashLen  = 8
	maxMessageLen = 120
)

var shortlogLine = regexp.MustCompile(`^\s*(\d+)\s+(.+)$`)

// LocalGitHistory implements the HistoryProvider interface by executing the
// local 'git' binary installed on the machine. Each method runs exactly one
// git subcommand scoped to the caller's context, so the engine can give every
// query its own deadline and degrade them independently.
type LocalGitHistory struct{}

var _ HistoryProvider = &LocalGitHistory{} // Compile-time check

// NewLocalGitHistory creates a new instance of the local Git history provider.
func NewLocalGitHistory() *LocalGitHistory {
	return &LocalGitHistory{}
}

// HasHistory reports whether the repository root carries git metadata.
// A .git file also counts, which covers worktrees and submodules.
func (g *LocalGitHistory) HasHistory(root string) bool {
	_, err := os.Stat(filepath.Join(root, ".git"))
	return err == nil
}

// RecentCommits implements the HistoryProvider interface.
// Commits are returned newest first.
func (g *LocalGitHistory) RecentCommits(ctx context.Context, root string, limit int) ([]schema.CommitInfo, error) {
	out, err := g.run(ctx, root,
		"log", "--oneline", "--no-decorate", fmt.Sprintf("-%d", limit),
		"--format=%H|%an|%ad|%s", "--date=short")
	if err != nil {
		return nil, err
	}

	var commits []schema.CommitInfo
	for line := range strings.SplitSeq(out, "\n") {
		parts := strings.SplitN(strings.TrimSpace(line), "|", 4)
		if len(parts) != 4 {
			continue
		}
		hash := parts[0]
		if len(hash) > shortHashLen {
			hash = hash[:shortHashLen]
		}
		message := parts[3]
		if len(message) > maxMessageLen {
			message = message[:maxMessageLen]
		}
		commits = append(commits, schema.CommitInfo{
			Hash:    hash,
			Author:  parts[1],
			Date:    parts[2],
			Message: message,
		})
	}
	return commits, nil
}

// CommitCount implements the HistoryProvider interface.
func (g *LocalGitHistory) CommitCount(ctx context.Context, root string) (int, error) {
	out, err := g.run(ctx, root, "rev-list", "--count", "HEAD")
	if err != nil {
		return 0, err
	}
	count, err := strconv.Atoi(out)
	if err != nil {
		return 0, fmt.Errorf("unexpected rev-list output %q: %w", out, err)
	}
	return count, nil
}

// FirstCommitDate implements the HistoryProvider interface.
func (g *LocalGitHistory) FirstCommitDate(ctx context.Context, root string) (string, error) {
	out, err := g.run(ctx, root, "log", "--format=%ad", "--date=short")
	if err != nil {
		return "", err
	}
	lines := strings.Split(out, "\n")
	if len(lines) == 0 || lines[0] == "" {
		return "", errors.New("no commits found")
	}

	// The log runs newest to oldest, so the last line has the oldest commit's date
	return strings.TrimSpace(lines[len(lines)-1]), nil
}

// TopContributors implements the HistoryProvider interface.
// Contributors are ranked by commit count, merge commits excluded.
func (g *LocalGitHistory) TopContributors(ctx context.Context, root string, limit int) ([]schema.Contributor, error) {
	out, err := g.run(ctx, root, "shortlog", "-sn", "--no-merges", "HEAD")
	if err != nil {
		return nil, err
	}

	var contributors []schema.Contributor
	for line := range strings.SplitSeq(out, "\n") {
		match := shortlogLine.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		commits, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		contributors = append(contributors, schema.Contributor{
			Name:    strings.TrimSpace(match[2]),
			Commits: commits,
		})
		if len(contributors) == limit {
			break
		}
	}
	return contributors, nil
}

// run executes a git subcommand and returns its trimmed stdout.
func (g *LocalGitHistory) run(ctx context.Context, repoPath string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	if ctx.Err() != nil {
		return "", fmt.Errorf("git %s timed out in %q: %w", args[0], repoPath, ctx.Err())
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return "", fmt.Errorf("git command failed in %q: %s. If this is not a Git repository, verify the path or run 'git init'", repoPath, stderr)
	} else if err != nil {
		return "", fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return strings.TrimSpace(string(out)), nil
}
