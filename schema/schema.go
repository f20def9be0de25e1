// Package schema has configs, models and constants for all parts of engram.
package schema

// CommitInfo is one entry in the bounded recent-commit log.
type CommitInfo struct {
	Hash    string `json:"hash"`    // Abbreviated commit hash (8 chars)
	Author  string `json:"author"`  // Author name as recorded in the log
	Date    string `json:"date"`    // Commit date in YYYY-MM-DD form
	Message string `json:"message"` // Subject line, truncated to 120 chars
}

// Contributor is an author paired with their commit count.
type Contributor struct {
	Name    string `json:"name"`
	Commits int    `json:"commits"`
}

// RepoAnalysis is the complete heuristic analysis of one repository.
// It is assembled exactly once per run by core.AnalyzeRepo and is treated
// as immutable after that. JSON field names match the on-disk record format
// consumed by the serve viewer, with empty fields dropped.
type RepoAnalysis struct {
	Path        string `json:"path"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// Structure
	TotalFiles     int            `json:"total_files,omitempty"`
	TotalDirs      int            `json:"total_dirs,omitempty"`
	TopDirs        map[string]int `json:"top_dirs,omitempty"`        // Top-level directory -> file count (top 20)
	FileExtensions map[string]int `json:"file_extensions,omitempty"` // Extension -> file count (top 20)

	// Languages & frameworks
	Languages       map[string]float64 `json:"languages,omitempty"` // Language -> percentage over classified files
	Frameworks      []string           `json:"frameworks,omitempty"`
	PackageManagers []string           `json:"package_managers,omitempty"`

	// Dependencies
	Dependencies map[string][]string `json:"dependencies,omitempty"` // Category -> dependency names

	// Testing
	HasTests      bool     `json:"has_tests,omitempty"`
	TestFramework string   `json:"test_framework,omitempty"`
	TestDirs      []string `json:"test_dirs,omitempty"`
	TestFileCount int      `json:"test_file_count,omitempty"`

	// CI/CD
	HasCI      bool     `json:"has_ci,omitempty"`
	CIPlatform string   `json:"ci_platform,omitempty"`
	CIFiles    []string `json:"ci_files,omitempty"`

	// Infrastructure
	HasDocker   bool     `json:"has_docker,omitempty"`
	DockerFiles []string `json:"docker_files,omitempty"`
	HasK8s      bool     `json:"has_k8s,omitempty"`

	// Documentation
	HasReadme       bool   `json:"has_readme,omitempty"`
	ReadmeExcerpt   string `json:"readme_excerpt,omitempty"`
	HasContributing bool   `json:"has_contributing,omitempty"`
	HasChangelog    bool   `json:"has_changelog,omitempty"`
	HasLicense      bool   `json:"has_license,omitempty"`
	LicenseType     string `json:"license_type,omitempty"`

	// Git metadata
	RecentCommits   []CommitInfo  `json:"recent_commits,omitempty"`
	Contributors    []Contributor `json:"contributors,omitempty"`
	CommitCount     int           `json:"commit_count,omitempty"`
	FirstCommitDate string        `json:"first_commit_date,omitempty"`
	LastCommitDate  string        `json:"last_commit_date,omitempty"`

	// Code patterns
	Patterns    []string `json:"patterns,omitempty"`
	EntryPoints []string `json:"entry_points,omitempty"`
	ConfigFiles []string `json:"config_files,omitempty"`

	// Key file content for model context
	KeyFileContents map[string]string `json:"key_file_contents,omitempty"`

	// Soft failures the analysis degraded around (never fatal)
	Diagnostics []string `json:"diagnostics,omitempty"`
}
