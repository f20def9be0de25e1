package core

import (
	"os"
	"path/filepath"
	"strings"
)

// DetectLicense classifies the repository's license into a family label by
// scanning the head of the first license file present at the root. Returns
// an empty string when no file exists, the file is unreadable or no family
// marker matches.
func DetectLicense(root string) string {
	for _, fname := range licenseFileNames {
		path := filepath.Join(root, fname)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		// Only the first file present is consulted, readable or not.
		content, err := os.ReadFile(path)
		if err != nil {
			return ""
		}
		if len(content) > maxLicenseBytes {
			content = content[:maxLicenseBytes]
		}
		return classifyLicenseText(strings.ToLower(string(content)))
	}
	return ""
}

// classifyLicenseText matches family markers in fixed order. The GPL family
// splits on its lesser variant.
func classifyLicenseText(text string) string {
	switch {
	case strings.Contains(text, "mit"):
		return "MIT"
	case strings.Contains(text, "apache"):
		return "Apache-2.0"
	case strings.Contains(text, "gpl"):
		if strings.Contains(text, "lesser") || strings.Contains(text, "lgpl") {
			return "LGPL"
		}
		return "GPL"
	case strings.Contains(text, "bsd"):
		return "BSD"
	case strings.Contains(text, "mpl"):
		return "MPL-2.0"
	case strings.Contains(text, "isc"):
		return "ISC"
	}
	return ""
}
