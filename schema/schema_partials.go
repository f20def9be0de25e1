package schema

// TreeSummary is the tree walker's partial result. One traversal fills it;
// the aggregator merges it into the record and never mutates it afterwards.
type TreeSummary struct {
	TotalFiles     int
	TotalDirs      int
	TopDirs        map[string]int // Top-level directory -> file count, top 20 by count
	FileExtensions map[string]int // Extension -> file count, top 20 by count

	HasTests      bool
	TestFramework string
	TestDirs      []string // Sorted top-level directories containing test files
	TestFileCount int

	HasCI      bool
	CIPlatform string // First provider detected wins
	CIFiles    []string

	HasDocker   bool
	DockerFiles []string
	HasK8s      bool

	HasReadme       bool
	HasContributing bool
	HasChangelog    bool
	HasLicense      bool

	ConfigFiles []string
	EntryPoints []string

	Diagnostics []string // Unreadable subtrees skipped during the walk
}

// ManifestResult is one manifest interpreter's partial result. A parse
// failure yields the zero value rather than an error.
type ManifestResult struct {
	Kind           ManifestKind // Ecosystem family, stamped by the dispatch table
	PackageManager string
	Description    string
	Dependencies   map[string][]string // Category -> dependency names
	Frameworks     []string            // Table order, no duplicates within one result
}

// Empty reports whether the interpreter extracted nothing. The kind tag
// alone does not count as content.
func (m ManifestResult) Empty() bool {
	return m.PackageManager == "" && m.Description == "" &&
		len(m.Dependencies) == 0 && len(m.Frameworks) == 0
}

// HistorySummary is the history provider's partial result. Each of the four
// underlying queries degrades independently, so any subset of fields may be
// present.
type HistorySummary struct {
	RecentCommits   []CommitInfo
	Contributors    []Contributor
	CommitCount     int
	FirstCommitDate string
	LastCommitDate  string

	Diagnostics []string // One entry per degraded query
}
