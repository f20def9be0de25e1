package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptSummaryFull(t *testing.T) {
	a := &RepoAnalysis{
		Path:        "/tmp/demo",
		Name:        "demo",
		Description: "A demo project",
		TotalFiles:  42,
		TotalDirs:   7,
		TopDirs:     map[string]int{"src": 30, "docs": 5},
		Languages:   map[string]float64{"Go": 80.0, "Markdown": 20.0},
		Frameworks:  []string{"Cobra", "Testify"},
		Dependencies: map[string][]string{
			"go_modules": {"github.com/spf13/cobra", "github.com/stretchr/testify"},
		},
		HasTests:      true,
		TestFramework: "",
		TestDirs:      []string{"internal"},
		TestFileCount: 6,
		HasCI:         true,
		CIPlatform:    "GitHub Actions",
		CIFiles:       []string{".github/workflows/ci.yml"},
		HasDocker:     true,
		DockerFiles:   []string{"Dockerfile"},
		HasK8s:        true,
		Patterns:      []string{"Go project layout"},
		EntryPoints:   []string{"main.go"},
		ConfigFiles:   []string{".golangci.yml"},
		CommitCount:   120,
		FirstCommitDate: "2023-01-05",
		LastCommitDate:  "2025-06-30",
		RecentCommits: []CommitInfo{
			{Hash: "abcd1234", Author: "Jane Doe", Date: "2025-06-30", Message: "tweak"},
		},
		Contributors: []Contributor{
			{Name: "Jane Doe", Commits: 100},
			{Name: "John Roe", Commits: 20},
		},
	}

	got := a.PromptSummary()
	want := strings.Join([]string{
		"Repository: demo",
		"Description: A demo project",
		"Files: 42, Directories: 7",
		"Languages: Go (80%), Markdown (20%)",
		"Frameworks: Cobra, Testify",
		"Top directories: src/ (30 files), docs/ (5 files)",
		"go_modules deps: github.com/spf13/cobra, github.com/stretchr/testify",
		"Testing: detected, 6 test files in internal",
		"CI/CD: GitHub Actions, files: .github/workflows/ci.yml",
		"Docker: Dockerfile",
		"Kubernetes: manifests detected",
		"Patterns: Go project layout",
		"Entry points: main.go",
		"Config files: .golangci.yml",
		"Commits: 120, active 2023-01-05 to 2025-06-30",
		"Contributors: Jane Doe (100), John Roe (20)",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestPromptSummaryMinimal(t *testing.T) {
	a := &RepoAnalysis{Path: "/tmp/empty", Name: "empty"}
	got := a.PromptSummary()
	want := "Repository: empty\nFiles: 0, Directories: 0"
	assert.Equal(t, want, got)
}

func TestPromptSummaryTruncation(t *testing.T) {
	langs := map[string]float64{
		"A": 20, "B": 15, "C": 12, "D": 11, "E": 10,
		"F": 9, "G": 8, "H": 7, "I": 5, "J": 3,
	}
	a := &RepoAnalysis{Name: "big", Languages: langs}
	got := a.PromptSummary()

	langLine := ""
	for _, line := range strings.Split(got, "\n") {
		if strings.HasPrefix(line, "Languages: ") {
			langLine = line
		}
	}
	require.NotEmpty(t, langLine)
	// Top 8 only, ninth and tenth dropped.
	assert.Equal(t, 8, strings.Count(langLine, "%)"))
	assert.NotContains(t, langLine, "I (")
	assert.NotContains(t, langLine, "J (")
	// Descending percentage order.
	assert.True(t, strings.Index(langLine, "A (") < strings.Index(langLine, "B ("))
}

func TestPromptSummaryDeterministicTies(t *testing.T) {
	a := &RepoAnalysis{
		Name:    "tie",
		TopDirs: map[string]int{"zeta": 4, "alpha": 4, "mid": 9},
	}
	first := a.PromptSummary()
	for range 20 {
		assert.Equal(t, first, a.PromptSummary())
	}
	// Ties rank alphabetically after the higher count.
	assert.Contains(t, first, "Top directories: mid/ (9 files), alpha/ (4 files), zeta/ (4 files)")
}

func TestTopLanguages(t *testing.T) {
	a := &RepoAnalysis{
		Languages: map[string]float64{"Go": 70.0, "Shell": 10.0, "Make": 10.0, "HTML": 10.0},
	}

	got := a.TopLanguages(3)

	// Equal shares rank alphabetically, and the cap drops the rest.
	assert.Equal(t, []LanguageShare{
		{Name: "Go", Percent: 70.0},
		{Name: "HTML", Percent: 10.0},
		{Name: "Make", Percent: 10.0},
	}, got)

	assert.Empty(t, (&RepoAnalysis{}).TopLanguages(3))
}

func TestTopDirectories(t *testing.T) {
	a := &RepoAnalysis{
		TopDirs: map[string]int{"internal": 64, "cmd": 5, "schema": 20},
	}

	got := a.TopDirectories(2)

	assert.Equal(t, []DirFileCount{
		{Name: "internal", Files: 64},
		{Name: "schema", Files: 20},
	}, got)

	// A cap beyond the map size returns everything.
	assert.Len(t, a.TopDirectories(10), 3)
}

func TestDependencyCategoriesOrder(t *testing.T) {
	a := &RepoAnalysis{
		Name: "cats",
		Dependencies: map[string][]string{
			"python":          {"flask"},
			"dependencies":    {"react"},
			"custom":          {"x"},
			"devDependencies": {"jest"},
		},
	}
	assert.Equal(t,
		[]string{"dependencies", "devDependencies", "python", "custom"},
		a.DependencyCategories())
}
