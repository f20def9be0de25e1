package core

import (
	"os"
	"path/filepath"
)

// CaptureKeyFiles reads the fixed whitelist of root files kept as model
// context, each capped in size. The README head doubles as the record's
// excerpt. Missing or unreadable files are skipped.
func CaptureKeyFiles(root string) (contents map[string]string, readmeExcerpt string) {
	for _, fname := range keyFileNames {
		path := filepath.Join(root, fname)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if len(data) > maxKeyFileBytes {
			data = data[:maxKeyFileBytes]
		}
		if contents == nil {
			contents = map[string]string{}
		}
		contents[fname] = string(data)
		if fname == "README.md" {
			excerpt := data
			if len(excerpt) > maxExcerptBytes {
				excerpt = excerpt[:maxExcerptBytes]
			}
			readmeExcerpt = string(excerpt)
		}
	}
	return contents, readmeExcerpt
}
