package core

import "regexp"

// ignoredDirs are directory names pruned before descent. Covers version
// control metadata, dependency caches, build output and IDE state.
var ignoredDirs = map[string]struct{}{
	".git":          {},
	"node_modules":  {},
	"__pycache__":   {},
	".venv":         {},
	"venv":          {},
	"env":           {},
	".tox":          {},
	".mypy_cache":   {},
	".pytest_cache": {},
	".ruff_cache":   {},
	"target":        {},
	"build":         {},
	"dist":          {},
	".next":         {},
	".nuxt":         {},
	".output":       {},
	"vendor":        {},
	"Pods":          {},
	".build":        {},
	".swiftpm":      {},
	"DerivedData":   {},
	"coverage":      {},
	".coverage":     {},
	"htmlcov":       {},
	".nyc_output":   {},
	".idea":         {},
	".vscode":       {},
	".vs":           {},
	".gradle":       {},
	".settings":     {},
}

// ignoredExts are compiled artifacts, media and archives excluded from file
// counting and classification. Lock files stay on disk counts but out of the
// analysis.
var ignoredExts = map[string]struct{}{
	".pyc": {}, ".pyo": {}, ".class": {}, ".o": {}, ".obj": {}, ".a": {}, ".lib": {},
	".so": {}, ".dylib": {}, ".dll": {}, ".exe": {}, ".bin": {},
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".ico": {}, ".svg": {}, ".webp": {},
	".woff": {}, ".woff2": {}, ".ttf": {}, ".eot": {},
	".zip": {}, ".tar": {}, ".gz": {}, ".bz2": {}, ".xz": {}, ".rar": {},
	".lock": {},
}

// Test file naming conventions, applied to the lowercase basename and the
// lowercase slash-separated path relative to the root.
var (
	testFileRe = regexp.MustCompile(`(^test_|_test\.|\.test\.|\.spec\.|_spec\.)`)
	testPathRe = regexp.MustCompile(`^(test|tests|__tests__|spec|specs)/`)
)

// langByExt maps a file extension to its display language for classification.
var langByExt = map[string]string{
	".py": "Python", ".pyi": "Python",
	".js": "JavaScript", ".mjs": "JavaScript", ".cjs": "JavaScript", ".jsx": "JavaScript",
	".ts": "TypeScript", ".tsx": "TypeScript", ".mts": "TypeScript",
	".rs":    "Rust",
	".go":    "Go",
	".java":  "Java",
	".kt":    "Kotlin",
	".kts":   "Kotlin",
	".rb":    "Ruby",
	".php":   "PHP",
	".swift": "Swift",
	".c":     "C",
	".h":     "C/C++",
	".cpp":   "C++",
	".cc":    "C++",
	".cxx":   "C++",
	".hpp":   "C++",
	".cs":    "C#",
	".scala": "Scala",
	".ex":    "Elixir",
	".exs":   "Elixir",
	".erl":   "Erlang",
	".hs":    "Haskell",
	".lua":   "Lua",
	".r":     "R",
	".dart":  "Dart",
	".vue":   "Vue",
	".svelte": "Svelte",
	".proto":  "Protocol Buffers",
	".sql":    "SQL",
	".sh":     "Shell",
	".bash":   "Shell",
	".zsh":    "Shell",
	".yaml":   "YAML",
	".yml":    "YAML",
	".toml":   "TOML",
	".json":   "JSON",
	".md":     "Markdown",
	".html":   "HTML",
	".htm":    "HTML",
	".css":    "CSS",
	".scss":   "SCSS",
	".sass":   "SCSS",
	".less":   "LESS",
	".zig":    "Zig",
	".nim":    "Nim",
	".v":      "V",
	".ml":     "OCaml",
	".mli":    "OCaml",
}

// composeFiles are container compose filenames matched exactly (lowercase).
var composeFiles = map[string]struct{}{
	"docker-compose.yml":  {},
	"docker-compose.yaml": {},
	"compose.yml":         {},
	"compose.yaml":        {},
}

// k8sKeywords mark a YAML basename as a likely Kubernetes manifest.
var k8sKeywords = []string{"k8s", "kubernetes", "deploy", "service", "ingress", "helm"}

// changelogNames are accepted changelog basenames (lowercase).
var changelogNames = map[string]struct{}{
	"changelog.md": {},
	"changes.md":   {},
	"history.md":   {},
}

// configFileNames is the recognized tool configuration allowlist (lowercase).
var configFileNames = map[string]struct{}{
	"tsconfig.json":      {},
	".eslintrc.json":     {},
	".eslintrc.js":       {},
	"eslint.config.js":   {},
	"prettier.config.js": {},
	".prettierrc":        {},
	"babel.config.js":    {},
	"webpack.config.js":  {},
	"rollup.config.js":   {},
	"vite.config.ts":     {},
	"next.config.js":     {},
	"next.config.mjs":    {},
	"next.config.ts":     {},
	"tailwind.config.js": {},
	"tailwind.config.ts": {},
	"rustfmt.toml":       {},
	"clippy.toml":        {},
	".golangci.yml":      {},
	"mypy.ini":           {},
	"ruff.toml":          {},
	"pyrightconfig.json": {},
}

// entryPointNames are canonical program entry filenames (lowercase).
var entryPointNames = map[string]struct{}{
	"main.py":    {},
	"app.py":     {},
	"server.py":  {},
	"index.ts":   {},
	"index.js":   {},
	"main.go":    {},
	"main.rs":    {},
	"lib.rs":     {},
	"main.swift": {},
	"app.swift":  {},
}

// keyFileNames is the whitelist of root files captured for model context,
// in capture order.
var keyFileNames = []string{
	"README.md", "CONTRIBUTING.md", "ARCHITECTURE.md",
	"package.json", "Cargo.toml", "go.mod", "pyproject.toml",
}

// licenseFileNames is the priority order for license detection.
var licenseFileNames = []string{"LICENSE", "LICENSE.md", "LICENSE.txt"}

// Content caps, in bytes.
const (
	maxManifestBytes = 50000
	maxKeyFileBytes  = 8000
	maxExcerptBytes  = 2000
	maxLicenseBytes  = 500
)

// Histogram truncation applied when walk output merges into the record.
const topEntryLimit = 20

// depListLimit caps the capped dependency categories: Go modules, gems,
// composer packages and the merged python list.
const depListLimit = 20
