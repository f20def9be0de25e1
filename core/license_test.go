package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectLicense(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		expected string
	}{
		{
			name:     "mit",
			files:    map[string]string{"LICENSE": "MIT License\n\nCopyright (c) 2026"},
			expected: "MIT",
		},
		{
			name:     "apache",
			files:    map[string]string{"LICENSE": "Apache License\nVersion 2.0, January 2004"},
			expected: "Apache-2.0",
		},
		{
			name:     "gpl",
			files:    map[string]string{"LICENSE": "GNU GENERAL PUBLIC LICENSE\nVersion 3\n\nThe GNU GPL is a copyleft license for software."},
			expected: "GPL",
		},
		{
			name:     "lgpl",
			files:    map[string]string{"LICENSE": "GNU LESSER GENERAL PUBLIC LICENSE (LGPL)\nVersion 2.1"},
			expected: "LGPL",
		},
		{
			name:     "bsd in markdown variant",
			files:    map[string]string{"LICENSE.md": "BSD 3-Clause License"},
			expected: "BSD",
		},
		{
			name:     "txt variant",
			files:    map[string]string{"LICENSE.txt": "ISC License"},
			expected: "ISC",
		},
		{
			name:     "no license file",
			files:    map[string]string{"README.md": "# Demo"},
			expected: "",
		},
		{
			name:     "unrecognized text",
			files:    map[string]string{"LICENSE": "All rights reserved."},
			expected: "",
		},
		{
			name: "plain file outranks the markdown variant",
			files: map[string]string{
				"LICENSE":    "ISC License",
				"LICENSE.md": "Apache License Version 2.0",
			},
			expected: "ISC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for name, content := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
			}
			assert.Equal(t, tt.expected, DetectLicense(root))
		})
	}
}
