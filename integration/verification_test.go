//go:build integration

// Package integration contains end-to-end tests for engram.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/engramdev/engram/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustGit runs a git command in dir and fails the test on error.
func mustGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, string(out))
}

// analyzeJSON runs the analyzer over dir in JSON mode and returns the decoded
// report. Stdout carries the record, so it is captured apart from stderr.
func analyzeJSON(t *testing.T, dir string) *schema.AnalysisReport {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(getEngramBinary(), "analyze", ".", "--json-only", "--skip-model", "--provider", "none")
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	require.NoError(t, cmd.Run(), "analyze failed: %s", stderr.String())

	var report schema.AnalysisReport
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &report), "stdout was not valid JSON: %s", stdout.String())
	require.NotNil(t, report.Analysis)
	return &report
}

// TestAnalyzeMatchesGit builds a small repository with a known history, runs
// the analyzer over it, and checks the JSON record against what git itself
// reports for the same repository.
func TestAnalyzeMatchesGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not available")
	}

	repoDir := writeSampleRepo(t)

	mustGit(t, repoDir, "init")
	mustGit(t, repoDir, "config", "user.email", "dev@example.com")
	mustGit(t, repoDir, "config", "user.name", "Dev")
	mustGit(t, repoDir, "add", ".")
	mustGit(t, repoDir, "commit", "-m", "initial import")

	require.NoError(t, os.WriteFile(filepath.Join(repoDir, "util.go"), []byte("package main\n"), 0o644))
	mustGit(t, repoDir, "add", ".")
	mustGit(t, repoDir, "commit", "-m", "add util")

	report := analyzeJSON(t, repoDir)

	countOut, err := exec.Command("git", "-C", repoDir, "rev-list", "--count", "HEAD").Output()
	require.NoError(t, err)
	wantCommits, err := strconv.Atoi(strings.TrimSpace(string(countOut)))
	require.NoError(t, err)

	record := report.Analysis
	assert.Equal(t, wantCommits, record.CommitCount)
	assert.Equal(t, filepath.Base(repoDir), record.Name)
	assert.Equal(t, 4, record.TotalFiles)
	assert.Contains(t, record.Languages, "Go")
	assert.True(t, record.HasReadme)
	assert.NotEmpty(t, record.RecentCommits)
	assert.NotEmpty(t, record.Contributors)
	assert.Empty(t, report.ModelUsed)
}

// TestAnalyzeOutsideGit verifies that a plain directory still analyzes
// cleanly, with the history fields left empty rather than erroring out.
func TestAnalyzeOutsideGit(t *testing.T) {
	repoDir := writeSampleRepo(t)

	report := analyzeJSON(t, repoDir)

	assert.Zero(t, report.Analysis.CommitCount)
	assert.Empty(t, report.Analysis.RecentCommits)
	assert.Equal(t, 3, report.Analysis.TotalFiles)
	assert.Contains(t, report.Analysis.PackageManagers, "Go modules")
}
