package core

import (
	"path"
	"slices"
	"strings"

	"github.com/engramdev/engram/schema"
)

// DetectPatterns derives architectural pattern labels from already recorded
// facts: the top-directory histogram, detected frameworks, the description
// and the config file list. It must run after the walk and manifest results
// have merged. The rule order is fixed so the label list is deterministic.
func DetectPatterns(record *schema.RepoAnalysis) []string {
	dirs := record.TopDirs
	has := func(names ...string) bool {
		for _, n := range names {
			if _, ok := dirs[n]; ok {
				return true
			}
		}
		return false
	}
	hasAll := func(names ...string) bool {
		for _, n := range names {
			if _, ok := dirs[n]; !ok {
				return false
			}
		}
		return true
	}

	var patterns []string
	if hasAll("src", "public") || hasAll("app", "public") {
		patterns = append(patterns, "Web application")
	}
	if has("pages", "app") && slices.Contains(record.Frameworks, "Next.js") {
		patterns = append(patterns, "Server-side rendering (SSR)")
	}
	if has("api", "routes") {
		patterns = append(patterns, "REST API")
	}
	if has("middleware") {
		patterns = append(patterns, "Middleware pattern")
	}
	if has("components") {
		patterns = append(patterns, "Component-based architecture")
	}
	if has("models", "schemas", "entities") {
		patterns = append(patterns, "Model layer")
	}
	if has("controllers", "handlers") {
		patterns = append(patterns, "MVC / Handler pattern")
	}
	if has("services") {
		patterns = append(patterns, "Service layer")
	}
	if has("repositories", "repos") {
		patterns = append(patterns, "Repository pattern")
	}
	if hasAll("domain", "application", "infrastructure") || hasAll("domain", "ports", "adapters") {
		patterns = append(patterns, "Hexagonal / Clean architecture")
	}
	if has("cmd") {
		patterns = append(patterns, "Go cmd pattern (multi-binary)")
	}
	if has("internal", "pkg") {
		patterns = append(patterns, "Go project layout")
	}
	if has("crates") || strings.Contains(strings.ToLower(record.Description), "workspace") {
		patterns = append(patterns, "Rust workspace (multi-crate)")
	}
	if _, proto := record.FileExtensions[".proto"]; proto || has("proto", "protos") {
		patterns = append(patterns, "Protocol Buffers / gRPC")
	}
	if has("migrations") {
		patterns = append(patterns, "Database migrations")
	}
	if has("packages", "apps") {
		patterns = append(patterns, "Monorepo")
	}
	for _, f := range record.ConfigFiles {
		if path.Base(f) == "lerna.json" {
			patterns = append(patterns, "Lerna monorepo")
			break
		}
	}
	if has("plugins", "extensions") {
		patterns = append(patterns, "Plugin architecture")
	}
	if has("docs", "documentation") {
		patterns = append(patterns, "Documentation site")
	}
	if has("examples", "samples") {
		patterns = append(patterns, "Example/sample code included")
	}
	return patterns
}
