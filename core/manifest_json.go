package core

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/engramdev/engram/schema"
)

// nodePackage is the subset of package.json the interpreter inspects.
type nodePackage struct {
	Description      string            `json:"description"`
	Dependencies     map[string]string `json:"dependencies"`
	DevDependencies  map[string]string `json:"devDependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
}

// composerPackage is the subset of composer.json the interpreter inspects.
type composerPackage struct {
	Require    map[string]string `json:"require"`
	RequireDev map[string]string `json:"require-dev"`
}

var nodeFrameworkRules = []frameworkRule{
	{"next", "Next.js"},
	{"react", "React"},
	{"vue", "Vue.js"},
	{"svelte", "Svelte"},
	{"@sveltejs/kit", "SvelteKit"},
	{"express", "Express"},
	{"fastify", "Fastify"},
	{"koa", "Koa"},
	{"nuxt", "Nuxt.js"},
	{"@angular/core", "Angular"},
	{"electron", "Electron"},
	{"react-native", "React Native"},
	{"gatsby", "Gatsby"},
	{"remix", "Remix"},
	{"astro", "Astro"},
	{"vite", "Vite"},
	{"webpack", "Webpack"},
	{"rollup", "Rollup"},
	{"esbuild", "esbuild"},
	{"tailwindcss", "Tailwind CSS"},
	{"prisma", "Prisma"},
	{"drizzle-orm", "Drizzle ORM"},
	{"typeorm", "TypeORM"},
	{"jest", "Jest"},
	{"vitest", "Vitest"},
	{"mocha", "Mocha"},
	{"playwright", "Playwright"},
	{"cypress", "Cypress"},
}

var composerFrameworks = map[string]string{
	"laravel/framework":        "Laravel",
	"symfony/framework-bundle": "Symfony",
	"slim/slim":                "Slim",
	"phpunit/phpunit":          "PHPUnit",
}

// parseNodeManifest reads package.json. Runtime, dev and peer dependency
// groups are kept as separate categories while framework lookup runs over
// their union.
func parseNodeManifest(content string) schema.ManifestResult {
	var pkg nodePackage
	if err := json.Unmarshal([]byte(content), &pkg); err != nil {
		return schema.ManifestResult{}
	}
	res := schema.ManifestResult{
		PackageManager: "npm/yarn/pnpm",
		Description:    pkg.Description,
	}
	groups := []struct {
		category string
		deps     map[string]string
	}{
		{"dependencies", pkg.Dependencies},
		{"devDependencies", pkg.DevDependencies},
		{"peerDependencies", pkg.PeerDependencies},
	}
	allDeps := map[string]struct{}{}
	for _, group := range groups {
		if len(group.deps) == 0 {
			continue
		}
		if res.Dependencies == nil {
			res.Dependencies = map[string][]string{}
		}
		names := sortedKeys(group.deps)
		res.Dependencies[group.category] = names
		for _, name := range names {
			allDeps[name] = struct{}{}
		}
	}
	for _, rule := range nodeFrameworkRules {
		if _, ok := allDeps[rule.dep]; ok {
			res.Frameworks = appendUnique(res.Frameworks, rule.framework)
		}
	}
	return res
}

// parseComposerManifest reads composer.json. The package manager tag holds
// even when the JSON does not parse.
func parseComposerManifest(content string) schema.ManifestResult {
	res := schema.ManifestResult{PackageManager: "Composer"}
	var pkg composerPackage
	if err := json.Unmarshal([]byte(content), &pkg); err != nil {
		return res
	}
	deps := append(sortedKeys(pkg.Require), sortedKeys(pkg.RequireDev)...)
	for _, dep := range deps {
		if fw, ok := composerFrameworks[dep]; ok {
			res.Frameworks = appendUnique(res.Frameworks, fw)
		}
	}
	// The filter also drops the "php" runtime constraint itself.
	named := make([]string, 0, len(deps))
	for _, dep := range deps {
		if !strings.HasPrefix(dep, "php") {
			named = append(named, dep)
		}
	}
	if len(named) > depListLimit {
		named = named[:depListLimit]
	}
	if len(named) > 0 {
		res.Dependencies = map[string][]string{"composer": named}
	}
	return res
}

// sortedKeys returns a map's keys in lexical order. JSON decoding loses the
// manifest's field order, so lexical order keeps runs deterministic.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
