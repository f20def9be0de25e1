package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaptureKeyFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"README.md":    "# Demo\n\nA demo repository.",
		"go.mod":       "module example.com/demo",
		"Makefile":     "all:\n\ttrue",
		"docs/spec.md": "not captured, wrong directory",
	})

	contents, excerpt := CaptureKeyFiles(root)

	assert.Len(t, contents, 2)
	assert.Contains(t, contents, "README.md")
	assert.Contains(t, contents, "go.mod")
	assert.NotContains(t, contents, "Makefile")
	assert.Equal(t, "# Demo\n\nA demo repository.", excerpt)
}

func TestCaptureKeyFilesCaps(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"README.md": strings.Repeat("x", maxKeyFileBytes+1000),
	})

	contents, excerpt := CaptureKeyFiles(root)

	assert.Len(t, contents["README.md"], maxKeyFileBytes)
	assert.Len(t, excerpt, maxExcerptBytes)
}

func TestCaptureKeyFilesEmptyDir(t *testing.T) {
	contents, excerpt := CaptureKeyFiles(t.TempDir())

	assert.Nil(t, contents)
	assert.Empty(t, excerpt)
}
