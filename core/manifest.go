package core

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/engramdev/engram/schema"
)

// frameworkRule pairs a dependency name, prefix or substring with the
// framework label it proves.
type frameworkRule struct {
	dep       string
	framework string
}

// manifestParser binds one manifest filename to its ecosystem family and
// interpreter.
type manifestParser struct {
	filename string
	kind     schema.ManifestKind
	parse    func(content string) schema.ManifestResult
}

// manifestParsers is the full ecosystem set, checked in declaration order.
// Ecosystems listed earlier claim shared record fields such as the
// description first.
var manifestParsers = []manifestParser{
	{"package.json", schema.NodeManifest, parseNodeManifest},
	{"Cargo.toml", schema.CargoManifest, parseCargoManifest},
	{"go.mod", schema.GoModManifest, parseGoModManifest},
	{"pyproject.toml", schema.PythonManifest, parsePythonManifest},
	{"setup.py", schema.PythonManifest, parsePythonManifest},
	{"requirements.txt", schema.PythonManifest, parsePythonManifest},
	{"Gemfile", schema.RubyManifest, parseGemManifest},
	{"pom.xml", schema.JVMManifest, parseJVMManifest},
	{"build.gradle", schema.JVMManifest, parseJVMManifest},
	{"build.gradle.kts", schema.JVMManifest, parseJVMManifest},
	{"Package.swift", schema.SwiftManifest, parseSwiftManifest},
	{"composer.json", schema.PHPManifest, parseComposerManifest},
}

// ScanManifests parses every recognized manifest at the repository root and
// returns the non-empty partial results in table order. Unreadable manifests
// produce a diagnostic instead of aborting the scan; malformed ones yield an
// empty result from their interpreter.
func ScanManifests(root string) ([]schema.ManifestResult, []string) {
	var results []schema.ManifestResult
	var diags []string
	for _, p := range manifestParsers {
		path := filepath.Join(root, p.filename)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			diags = append(diags, fmt.Sprintf("manifest %s: %v", p.filename, err))
			continue
		}
		if len(content) > maxManifestBytes {
			content = content[:maxManifestBytes]
		}
		if res := p.parse(string(content)); !res.Empty() {
			res.Kind = p.kind
			results = append(results, res)
		}
	}
	return results, diags
}

// appendUnique appends value unless the list already holds it.
func appendUnique(list []string, value string) []string {
	if slices.Contains(list, value) {
		return list
	}
	return append(list, value)
}
