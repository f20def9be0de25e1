// Package resolve turns an analysis target argument into a local directory.
// GitHub targets (URLs or owner/repo shorthand) are shallow-cloned into a
// temporary directory that the caller removes via Cleanup.
package resolve

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	cloneTimeout = 2 * time.Minute
	cloneDepth   = 50
)

// githubTargetRe extracts the owner and repository from the accepted
// remote forms: full https URLs, bare github.com paths and owner/repo
// shorthand. Fragments and query strings are cut from the repo segment.
var githubTargetRe = regexp.MustCompile(`^(?:https?://)?(?:github\.com/)?([^/]+)/([^/\s#?]+)`)

// Target is a resolved analysis target.
type Target struct {
	Path string // Local directory holding the repository
	Org  string // "owner/repo" for remote targets, empty otherwise

	tempRoot string // Temp clone root removed by Cleanup, empty for local targets
}

// Cleanup removes the temporary clone directory, if any. Safe to call on
// local targets and safe to call twice.
func (t *Target) Cleanup() {
	if t.tempRoot == "" {
		return
	}
	_ = os.RemoveAll(t.tempRoot)
	t.tempRoot = ""
}

// EnsureLocal resolves target into a local directory, cloning remote
// targets first.
func EnsureLocal(ctx context.Context, target string) (*Target, error) {
	if isRemote(target) {
		if owner, repo, ok := parseGitHubTarget(target); ok {
			return cloneGitHub(ctx, owner, repo)
		}
		// No owner/repo pair could be extracted, fall through and treat
		// the argument as a path.
	}
	return localTarget(target)
}

// isRemote reports whether target names a GitHub repository rather than a
// path. Anything containing github.com is remote; a bare owner/repo pair
// counts only when it is not an absolute or dotted path and nothing with
// that name exists locally.
func isRemote(target string) bool {
	if strings.Contains(target, "github.com/") {
		return true
	}
	if !strings.Contains(target, "/") {
		return false
	}
	if strings.HasPrefix(target, "/") || strings.HasPrefix(target, ".") {
		return false
	}
	if _, err := os.Stat(target); err == nil {
		return false
	}
	return true
}

// parseGitHubTarget splits a remote target into owner and repo.
func parseGitHubTarget(target string) (owner, repo string, ok bool) {
	m := githubTargetRe.FindStringSubmatch(target)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSuffix(m[2], ".git"), true
}

// localTarget normalizes a path argument. Existence is the analyzer's own
// fatal check, so a missing path still resolves here.
func localTarget(target string) (*Target, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, err
	}
	return &Target{Path: filepath.Clean(abs)}, nil
}

// cloneGitHub clones the repository into a fresh temp directory.
func cloneGitHub(ctx context.Context, owner, repo string) (*Target, error) {
	url := fmt.Sprintf("https://github.com/%s/%s.git", owner, repo)
	tmp, err := os.MkdirTemp("", "engram-")
	if err != nil {
		return nil, fmt.Errorf("create clone dir: %w", err)
	}
	dir := filepath.Join(tmp, repo)
	if err := gitClone(ctx, url, dir); err != nil {
		_ = os.RemoveAll(tmp)
		return nil, err
	}
	return &Target{Path: dir, Org: owner + "/" + repo, tempRoot: tmp}, nil
}

// gitClone runs a shallow single-branch clone. Depth 50 keeps enough
// history for the activity analysis while staying fast on big repos.
func gitClone(ctx context.Context, url, dir string) error {
	ctx, cancel := context.WithTimeout(ctx, cloneTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "clone", fmt.Sprintf("--depth=%d", cloneDepth), "--single-branch", url, dir)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("git clone timed out after %s", cloneTimeout)
		}
		return fmt.Errorf("git clone failed: %s", clipStderr(stderr.String()))
	}
	return nil
}

// clipStderr bounds git output quoted inside the clone error.
func clipStderr(s string) string {
	s = strings.TrimSpace(s)
	const max = 200
	if len(s) > max {
		s = s[:max]
	}
	if s == "" {
		return "no error output"
	}
	return s
}
