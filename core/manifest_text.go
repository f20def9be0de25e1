package core

import (
	"regexp"
	"slices"
	"strings"

	"github.com/engramdev/engram/schema"
)

var (
	cargoDescRe   = regexp.MustCompile(`(?m)^description\s*=\s*"([^"]+)"`)
	cargoDepRe    = regexp.MustCompile(`(?m)^(\w[\w-]*)\s*=`)
	goModDepRe    = regexp.MustCompile(`(?m)^\t([\w./\-]+)\s`)
	pythonIdentRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+`)
	gemDeclRe     = regexp.MustCompile(`gem\s+['"]([^'"]+)['"]`)
	swiftDepRe    = regexp.MustCompile(`\.package\(.*?url:\s*"([^"]+)"`)
)

// cargoMetaKeys are package-section keys the line-anchored extraction picks
// up alongside real dependencies.
var cargoMetaKeys = map[string]struct{}{
	"name": {}, "version": {}, "edition": {}, "description": {}, "authors": {}, "license": {},
}

var cargoFrameworks = map[string]string{
	"actix-web": "Actix Web",
	"axum":      "Axum",
	"rocket":    "Rocket",
	"tokio":     "Tokio",
	"async-std": "async-std",
	"serde":     "Serde",
	"diesel":    "Diesel",
	"sqlx":      "SQLx",
	"tonic":     "Tonic (gRPC)",
	"warp":      "Warp",
	"bevy":      "Bevy",
	"clap":      "Clap",
	"tracing":   "Tracing",
	"tower":     "Tower",
}

var goFrameworkRules = []frameworkRule{
	{"github.com/gin-gonic/gin", "Gin"},
	{"github.com/labstack/echo", "Echo"},
	{"github.com/gofiber/fiber", "Fiber"},
	{"github.com/gorilla/mux", "Gorilla Mux"},
	{"google.golang.org/grpc", "gRPC"},
	{"github.com/spf13/cobra", "Cobra"},
	{"github.com/urfave/cli", "urfave/cli"},
	{"gorm.io/gorm", "GORM"},
	{"github.com/stretchr/testify", "Testify"},
}

var pythonFrameworkRules = []frameworkRule{
	{"django", "Django"},
	{"flask", "Flask"},
	{"fastapi", "FastAPI"},
	{"starlette", "Starlette"},
	{"tornado", "Tornado"},
	{"celery", "Celery"},
	{"sqlalchemy", "SQLAlchemy"},
	{"pydantic", "Pydantic"},
	{"pytest", "pytest"},
	{"numpy", "NumPy"},
	{"pandas", "pandas"},
	{"scikit-learn", "scikit-learn"},
	{"torch", "PyTorch"},
	{"tensorflow", "TensorFlow"},
	{"transformers", "Transformers"},
	{"click", "Click"},
	{"typer", "Typer"},
	{"httpx", "HTTPX"},
	{"aiohttp", "aiohttp"},
	{"rich", "Rich"},
	{"uvicorn", "Uvicorn"},
}

var gemFrameworks = map[string]string{
	"rails":   "Ruby on Rails",
	"sinatra": "Sinatra",
	"rspec":   "RSpec",
	"sidekiq": "Sidekiq",
}

var jvmFrameworkRules = []frameworkRule{
	{"spring-boot", "Spring Boot"},
	{"spring-framework", "Spring"},
	{"quarkus", "Quarkus"},
	{"micronaut", "Micronaut"},
	{"junit", "JUnit"},
	{"mockito", "Mockito"},
}

// parseCargoManifest reads Cargo.toml with line-anchored extraction. Full
// TOML table semantics are not needed for a description and a flat
// dependency list.
func parseCargoManifest(content string) schema.ManifestResult {
	res := schema.ManifestResult{PackageManager: "Cargo"}
	if m := cargoDescRe.FindStringSubmatch(content); m != nil {
		res.Description = m[1]
	}
	var crates []string
	for _, m := range cargoDepRe.FindAllStringSubmatch(content, -1) {
		key := m[1]
		if fw, ok := cargoFrameworks[key]; ok {
			res.Frameworks = appendUnique(res.Frameworks, fw)
		}
		if _, meta := cargoMetaKeys[key]; !meta {
			crates = append(crates, key)
		}
	}
	if len(crates) > 0 {
		res.Dependencies = map[string][]string{"crates": crates}
	}
	return res
}

// parseGoModManifest reads go.mod. Require-block lines are tab-indented, so
// the tab-prefixed token on each line is the module path. Framework lookup
// is by path prefix to cover major-version suffixes.
func parseGoModManifest(content string) schema.ManifestResult {
	res := schema.ManifestResult{PackageManager: "Go modules"}
	var mods []string
	for _, m := range goModDepRe.FindAllStringSubmatch(content, -1) {
		mods = append(mods, m[1])
	}
	for _, mod := range mods {
		for _, rule := range goFrameworkRules {
			if strings.HasPrefix(mod, rule.dep) {
				res.Frameworks = appendUnique(res.Frameworks, rule.framework)
			}
		}
	}
	if len(mods) > depListLimit {
		mods = mods[:depListLimit]
	}
	if len(mods) > 0 {
		res.Dependencies = map[string][]string{"go_modules": mods}
	}
	return res
}

// parsePythonManifest handles pyproject.toml, setup.py and requirements.txt
// with one line-oriented scan: dependency identifiers lead their lines in
// all three formats once quoting and trailing commas are stripped.
func parsePythonManifest(content string) schema.ManifestResult {
	res := schema.ManifestResult{PackageManager: "pip"}
	var found []string
	seen := map[string]struct{}{}
	addDep := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		found = append(found, name)
	}
	for line := range strings.SplitSeq(content, "\n") {
		line = strings.TrimSpace(line)
		line = strings.Trim(line, `"`)
		line = strings.Trim(line, `'`)
		line = strings.Trim(line, ",")
		lower := strings.ToLower(line)
		for _, rule := range pythonFrameworkRules {
			if !strings.HasPrefix(lower, rule.dep) {
				continue
			}
			if slices.Contains(res.Frameworks, rule.framework) {
				continue
			}
			res.Frameworks = append(res.Frameworks, rule.framework)
			addDep(rule.dep)
		}
		if ident := pythonIdentRe.FindString(line); ident != "" {
			addDep(ident)
		}
	}
	if len(found) > 0 {
		res.Dependencies = map[string][]string{"python": found}
	}
	return res
}

// parseGemManifest reads a Gemfile by extracting the first quoted argument
// of each gem declaration.
func parseGemManifest(content string) schema.ManifestResult {
	res := schema.ManifestResult{PackageManager: "Bundler"}
	var gems []string
	for _, m := range gemDeclRe.FindAllStringSubmatch(content, -1) {
		gems = append(gems, m[1])
	}
	for _, gem := range gems {
		if fw, ok := gemFrameworks[gem]; ok {
			res.Frameworks = appendUnique(res.Frameworks, fw)
		}
	}
	if len(gems) > depListLimit {
		gems = gems[:depListLimit]
	}
	if len(gems) > 0 {
		res.Dependencies = map[string][]string{"gems": gems}
	}
	return res
}

// parseJVMManifest covers pom.xml and both Gradle dialects with a plain
// substring scan, which is enough to spot the marquee JVM frameworks.
func parseJVMManifest(content string) schema.ManifestResult {
	res := schema.ManifestResult{PackageManager: "Maven/Gradle"}
	lower := strings.ToLower(content)
	for _, rule := range jvmFrameworkRules {
		if strings.Contains(lower, rule.dep) {
			res.Frameworks = appendUnique(res.Frameworks, rule.framework)
		}
	}
	return res
}

// parseSwiftManifest reads Package.swift. Each declared package URL names a
// framework by its trailing path segment.
func parseSwiftManifest(content string) schema.ManifestResult {
	res := schema.ManifestResult{PackageManager: "Swift Package Manager"}
	for _, m := range swiftDepRe.FindAllStringSubmatch(content, -1) {
		url := strings.TrimRight(m[1], "/")
		name := url[strings.LastIndexByte(url, '/')+1:]
		name = strings.ReplaceAll(name, ".git", "")
		if name != "" {
			res.Frameworks = appendUnique(res.Frameworks, name)
		}
	}
	return res
}
