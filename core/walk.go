package core

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/engramdev/engram/schema"
)

// Walk scans the repository tree once and collects structural facts: file
// and directory counts, extension and top-level directory histograms, and
// marker files for tests, CI, containers and docs. Unreadable entries are
// recorded as diagnostics and skipped, so a partially readable tree still
// yields a summary. The only returned error is context cancellation.
func Walk(ctx context.Context, root string) (*schema.TreeSummary, error) {
	w := &treeWalker{
		summary: &schema.TreeSummary{
			TopDirs:        map[string]int{},
			FileExtensions: map[string]int{},
		},
		testDirs: map[string]struct{}{},
	}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			w.summary.Diagnostics = append(w.summary.Diagnostics, fmt.Sprintf("walk: %v", err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			return w.visitDir(d.Name(), rel)
		}
		w.visitFile(d.Name(), rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	w.finish()
	return w.summary, nil
}

// treeWalker accumulates walk state until finish() shapes the final summary.
type treeWalker struct {
	summary  *schema.TreeSummary
	testDirs map[string]struct{}
}

func (w *treeWalker) visitDir(name, rel string) error {
	if _, ok := ignoredDirs[name]; ok {
		return fs.SkipDir
	}
	w.summary.TotalDirs++
	// A directory with no files still surfaces in the histogram.
	top := topComponent(rel)
	if _, ok := w.summary.TopDirs[top]; !ok {
		w.summary.TopDirs[top] = 0
	}
	return nil
}

func (w *treeWalker) visitFile(name, rel string) {
	// Files directly under the root belong to no top-level directory.
	if i := strings.IndexByte(rel, '/'); i >= 0 {
		w.summary.TopDirs[rel[:i]]++
	}
	ext := fileExt(name)
	if _, ok := ignoredExts[ext]; ok {
		return
	}
	w.summary.TotalFiles++
	if ext != "" {
		w.summary.FileExtensions[ext]++
	}

	lower := strings.ToLower(name)
	lowerRel := strings.ToLower(rel)
	w.noteTests(lower, lowerRel, rel)
	w.noteTestFramework(lower)
	w.noteCI(lower, rel)
	w.noteContainers(lower, rel)
	w.noteDocs(lower, rel)
	if _, ok := configFileNames[lower]; ok {
		w.summary.ConfigFiles = append(w.summary.ConfigFiles, rel)
	}
	if _, ok := entryPointNames[lower]; ok {
		w.summary.EntryPoints = append(w.summary.EntryPoints, rel)
	}
}

func (w *treeWalker) noteTests(lower, lowerRel, rel string) {
	byName := testFileRe.MatchString(lower)
	if byName {
		w.summary.TestFileCount++
	}
	if !byName && !testPathRe.MatchString(lowerRel) {
		return
	}
	w.summary.HasTests = true
	// Root-level and src/ test files name no test directory of their own.
	if i := strings.IndexByte(rel, '/'); i >= 0 && rel[:i] != "src" {
		w.testDirs[rel[:i]] = struct{}{}
	}
}

func (w *treeWalker) noteTestFramework(lower string) {
	switch lower {
	case "jest.config.js", "jest.config.ts", "jest.config.mjs":
		w.summary.TestFramework = "Jest"
	case "vitest.config.ts", "vitest.config.js", "vitest.config.mts":
		w.summary.TestFramework = "Vitest"
	case "pytest.ini", "conftest.py", "tox.ini":
		// Weak markers that never displace an already detected framework.
		if w.summary.TestFramework == "" {
			w.summary.TestFramework = "pytest"
		}
	case "phpunit.xml", "phpunit.xml.dist":
		w.summary.TestFramework = "PHPUnit"
	case ".rspec":
		w.summary.TestFramework = "RSpec"
	}
}

func (w *treeWalker) noteCI(lower, rel string) {
	platform := ""
	switch {
	case strings.HasPrefix(rel, ".github/workflows/"):
		platform = "GitHub Actions"
	case lower == ".travis.yml" || lower == ".travis.yaml":
		platform = "Travis CI"
	case lower == "jenkins.yml":
		platform = "Jenkins"
	case lower == ".gitlab-ci.yml":
		platform = "GitLab CI"
	case lower == "azure-pipelines.yml":
		platform = "Azure Pipelines"
	default:
		return
	}
	w.summary.HasCI = true
	// The first provider seen labels the platform. Later hits still
	// contribute their files.
	if w.summary.CIPlatform == "" {
		w.summary.CIPlatform = platform
	}
	w.summary.CIFiles = append(w.summary.CIFiles, rel)
}

func (w *treeWalker) noteContainers(lower, rel string) {
	if _, compose := composeFiles[lower]; compose || strings.HasPrefix(lower, "dockerfile") {
		w.summary.HasDocker = true
		w.summary.DockerFiles = append(w.summary.DockerFiles, rel)
	}
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		for _, kw := range k8sKeywords {
			if strings.Contains(lower, kw) {
				w.summary.HasK8s = true
				break
			}
		}
	}
}

func (w *treeWalker) noteDocs(lower, rel string) {
	if lower == "readme.md" && !strings.Contains(rel, "/") {
		w.summary.HasReadme = true
	}
	if lower == "contributing.md" {
		w.summary.HasContributing = true
	}
	if _, ok := changelogNames[lower]; ok {
		w.summary.HasChangelog = true
	}
	if lower == "license" || strings.HasPrefix(lower, "license.") {
		w.summary.HasLicense = true
	}
}

// finish sorts the test directories and trims both histograms to their
// top entries.
func (w *treeWalker) finish() {
	if len(w.testDirs) > 0 {
		dirs := make([]string, 0, len(w.testDirs))
		for dir := range w.testDirs {
			dirs = append(dirs, dir)
		}
		sort.Strings(dirs)
		w.summary.TestDirs = dirs
	}
	w.summary.TopDirs = topEntries(w.summary.TopDirs, topEntryLimit)
	w.summary.FileExtensions = topEntries(w.summary.FileExtensions, topEntryLimit)
}

// topComponent returns the leading path segment of a slash-separated
// relative path.
func topComponent(rel string) string {
	if i := strings.IndexByte(rel, '/'); i >= 0 {
		return rel[:i]
	}
	return rel
}

// fileExt returns the lowercase extension including the dot. Dotfiles and
// names with a trailing dot have no extension.
func fileExt(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i:])
}

// topEntries keeps the n highest-count entries, breaking count ties by name.
func topEntries(m map[string]int, n int) map[string]int {
	if len(m) <= n {
		return m
	}
	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(m))
	for name, count := range m {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	top := make(map[string]int, n)
	for _, e := range entries[:n] {
		top[e.name] = e.count
	}
	return top
}
