package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree lays out files under root, creating parent directories as needed.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestWalk(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"README.md":                  "# Demo",
		"CHANGELOG.md":               "## 1.0.0",
		"LICENSE":                    "MIT License",
		"main.go":                    "package main",
		"go.mod":                     "module demo",
		"conftest.py":                "",
		"src/app.py":                 "print()",
		"src/util.py":                "print()",
		"tests/test_app.py":          "def test_ok(): pass",
		".github/workflows/ci.yml":   "on: push",
		"Dockerfile":                 "FROM alpine",
		"docker-compose.yml":         "services: {}",
		"deploy/k8s-deployment.yaml": "kind: Deployment",
		"assets/logo.png":            "\x89PNG",
		"node_modules/lib/index.js":  "module.exports = {}",
	})

	summary, err := Walk(ctx, root)
	require.NoError(t, err)

	// The png is excluded from counting and node_modules is never entered.
	assert.Equal(t, 13, summary.TotalFiles)
	assert.Equal(t, 6, summary.TotalDirs)
	assert.Equal(t, 2, summary.TopDirs["src"])
	assert.NotContains(t, summary.TopDirs, "node_modules")
	assert.Equal(t, 4, summary.FileExtensions[".py"])
	assert.NotContains(t, summary.FileExtensions, ".png")

	assert.True(t, summary.HasTests)
	assert.Equal(t, 1, summary.TestFileCount)
	assert.Equal(t, []string{"tests"}, summary.TestDirs)
	assert.Equal(t, "pytest", summary.TestFramework)

	assert.True(t, summary.HasCI)
	assert.Equal(t, "GitHub Actions", summary.CIPlatform)
	assert.Equal(t, []string{".github/workflows/ci.yml"}, summary.CIFiles)

	assert.True(t, summary.HasDocker)
	assert.Len(t, summary.DockerFiles, 2)
	assert.True(t, summary.HasK8s)

	assert.True(t, summary.HasReadme)
	assert.True(t, summary.HasChangelog)
	assert.True(t, summary.HasLicense)
	assert.False(t, summary.HasContributing)

	assert.Contains(t, summary.EntryPoints, "main.go")
	assert.Contains(t, summary.EntryPoints, "src/app.py")
}

func TestWalkReadmeMustBeAtRoot(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"docs/README.md": "# Nested",
		"main.go":        "package main",
	})

	summary, err := Walk(ctx, root)
	require.NoError(t, err)
	assert.False(t, summary.HasReadme)
}

func TestWalkTestFrameworkPriority(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	// The weak pytest marker must not displace an explicit Jest config.
	writeTree(t, root, map[string]string{
		"jest.config.js": "module.exports = {}",
		"conftest.py":    "",
	})

	summary, err := Walk(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, "Jest", summary.TestFramework)
}

func TestWalkCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"main.go": "package main"})

	_, err := Walk(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileExt(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"main.go", ".go"},
		{"ARCHIVE.TAR.GZ", ".gz"},
		{"Dockerfile", ""},
		{".gitignore", ""},
		{"trailing.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fileExt(tt.name))
		})
	}
}

func TestTopEntries(t *testing.T) {
	m := map[string]int{"a": 5, "b": 3, "c": 3, "d": 1}

	top := topEntries(m, 2)
	assert.Equal(t, map[string]int{"a": 5, "b": 3}, top)

	// Under the limit the map passes through untouched.
	assert.Equal(t, m, topEntries(m, 10))
}
