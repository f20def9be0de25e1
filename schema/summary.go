package schema

import (
	"fmt"
	"sort"
	"strings"
)

// depCategoryOrder fixes the rendering order of dependency categories so the
// prompt summary is deterministic. The order mirrors the manifest dispatch
// order that populates the map. Unknown categories render after these,
// alphabetically.
var depCategoryOrder = []string{
	"dependencies", "devDependencies", "peerDependencies",
	"crates", "go_modules", "python", "gems", "composer",
}

// countedName is a name with an attached count, used for ranked views.
type countedName struct {
	name  string
	count float64
}

// rankNames orders map entries by count descending, name ascending on ties.
func rankNames[V int | float64](m map[string]V) []countedName {
	ranked := make([]countedName, 0, len(m))
	for name, count := range m {
		ranked = append(ranked, countedName{name: name, count: float64(count)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].name < ranked[j].name
	})
	return ranked
}

// LanguageShare is one language with its percentage share, for ranked views.
type LanguageShare struct {
	Name    string
	Percent float64
}

// TopLanguages returns up to n languages by descending share, name ascending
// on ties.
func (a *RepoAnalysis) TopLanguages(n int) []LanguageShare {
	ranked := truncate(rankNames(a.Languages), n)
	out := make([]LanguageShare, 0, len(ranked))
	for _, l := range ranked {
		out = append(out, LanguageShare{Name: l.name, Percent: l.count})
	}
	return out
}

// DirFileCount is one top-level directory with its file count, for ranked
// views.
type DirFileCount struct {
	Name  string
	Files int
}

// TopDirectories returns up to n directories by descending file count, name
// ascending on ties.
func (a *RepoAnalysis) TopDirectories(n int) []DirFileCount {
	ranked := truncate(rankNames(a.TopDirs), n)
	out := make([]DirFileCount, 0, len(ranked))
	for _, d := range ranked {
		out = append(out, DirFileCount{Name: d.name, Files: int(d.count)})
	}
	return out
}

// DependencyCategories returns the record's dependency categories in their
// fixed rendering order.
func (a *RepoAnalysis) DependencyCategories() []string {
	known := make(map[string]struct{}, len(depCategoryOrder))
	var ordered []string
	for _, cat := range depCategoryOrder {
		known[cat] = struct{}{}
		if _, ok := a.Dependencies[cat]; ok {
			ordered = append(ordered, cat)
		}
	}
	var extra []string
	for cat := range a.Dependencies {
		if _, ok := known[cat]; !ok {
			extra = append(extra, cat)
		}
	}
	sort.Strings(extra)
	return append(ordered, extra...)
}

// PromptSummary renders the record as a concise flattened text block for
// prompt context. Field order, formats and truncation limits are fixed so
// that identical records always produce identical summaries.
func (a *RepoAnalysis) PromptSummary() string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Repository: %s", a.Name))
	if a.Description != "" {
		lines = append(lines, fmt.Sprintf("Description: %s", a.Description))
	}
	lines = append(lines, fmt.Sprintf("Files: %d, Directories: %d", a.TotalFiles, a.TotalDirs))

	if len(a.Languages) > 0 {
		var parts []string
		for _, l := range a.TopLanguages(8) {
			parts = append(parts, fmt.Sprintf("%s (%.0f%%)", l.Name, l.Percent))
		}
		lines = append(lines, fmt.Sprintf("Languages: %s", strings.Join(parts, ", ")))
	}

	if len(a.Frameworks) > 0 {
		lines = append(lines, fmt.Sprintf("Frameworks: %s", strings.Join(a.Frameworks, ", ")))
	}

	if len(a.TopDirs) > 0 {
		var parts []string
		for _, d := range a.TopDirectories(12) {
			parts = append(parts, fmt.Sprintf("%s/ (%d files)", d.Name, d.Files))
		}
		lines = append(lines, fmt.Sprintf("Top directories: %s", strings.Join(parts, ", ")))
	}

	for _, cat := range a.DependencyCategories() {
		deps := a.Dependencies[cat]
		if len(deps) > 0 {
			lines = append(lines, fmt.Sprintf("%s deps: %s", cat, strings.Join(truncate(deps, 15), ", ")))
		}
	}

	if a.HasTests {
		framework := a.TestFramework
		if framework == "" {
			framework = "detected"
		}
		dirs := strings.Join(a.TestDirs, ", ")
		if dirs == "" {
			dirs = "various dirs"
		}
		lines = append(lines, fmt.Sprintf("Testing: %s, %d test files in %s", framework, a.TestFileCount, dirs))
	}

	if a.HasCI {
		lines = append(lines, fmt.Sprintf("CI/CD: %s, files: %s", a.CIPlatform, strings.Join(a.CIFiles, ", ")))
	}

	if a.HasDocker {
		lines = append(lines, fmt.Sprintf("Docker: %s", strings.Join(a.DockerFiles, ", ")))
	}
	if a.HasK8s {
		lines = append(lines, "Kubernetes: manifests detected")
	}

	if len(a.Patterns) > 0 {
		lines = append(lines, fmt.Sprintf("Patterns: %s", strings.Join(a.Patterns, ", ")))
	}

	if len(a.EntryPoints) > 0 {
		lines = append(lines, fmt.Sprintf("Entry points: %s", strings.Join(a.EntryPoints, ", ")))
	}

	if len(a.ConfigFiles) > 0 {
		lines = append(lines, fmt.Sprintf("Config files: %s", strings.Join(a.ConfigFiles, ", ")))
	}

	if a.CommitCount > 0 {
		lines = append(lines, fmt.Sprintf("Commits: %d, active %s to %s", a.CommitCount, a.FirstCommitDate, a.LastCommitDate))
	}

	if len(a.Contributors) > 0 {
		var parts []string
		for _, c := range truncate(a.Contributors, 8) {
			parts = append(parts, fmt.Sprintf("%s (%d)", c.Name, c.Commits))
		}
		lines = append(lines, fmt.Sprintf("Contributors: %s", strings.Join(parts, ", ")))
	}

	return strings.Join(lines, "\n")
}

// truncate returns at most n leading elements of s.
func truncate[T any](s []T, n int) []T {
	return s[:min(n, len(s))]
}
