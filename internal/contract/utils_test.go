package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainMark(t *testing.T) {
	assert.Equal(t, YesMark, GetPlainMark(true))
	assert.Equal(t, NoMark, GetPlainMark(false))
}

func TestGetColorMark(t *testing.T) {
	tests := []struct {
		name string
		flag bool
		mark string
	}{
		{"detected", true, YesMark},
		{"absent", false, NoMark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorMark(tt.flag)
			// Should contain the plain mark
			assert.Contains(t, result, tt.mark)
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		// Verify file was created
		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestGetStoreDBFilePath(t *testing.T) {
	path := GetStoreDBFilePath()

	// Should not be empty
	assert.NotEmpty(t, path)

	// Should contain the database name
	assert.Contains(t, path, ".engram_snapshots.db")

	// Should be in home directory
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		maxWidth int
		expected string
	}{
		{
			name:     "short path unchanged",
			path:     "src/main.go",
			maxWidth: 40,
			expected: "src/main.go",
		},
		{
			name:     "exact width unchanged",
			path:     "abcdef",
			maxWidth: 6,
			expected: "abcdef",
		},
		{
			name:     "long path gets ellipsis prefix",
			path:     "internal/generate/frontmatter.go",
			maxWidth: 20,
			expected: "...te/frontmatter.go",
		},
		{
			name:     "tiny width unchanged",
			path:     "abcdef",
			maxWidth: 3,
			expected: "abcdef",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncatePath(tt.path, tt.maxWidth)
			assert.Equal(t, tt.expected, got)
			if len(tt.path) > tt.maxWidth && tt.maxWidth > 3 {
				assert.Len(t, got, tt.maxWidth, "truncated path should not exceed max width")
			}
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input       string
		expected    bool
		expectError bool
	}{
		{"yes", true, false},
		{"YES", true, false},
		{"true", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
