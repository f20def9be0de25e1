package schema

// GeneratedSkill is one produced skill document.
type GeneratedSkill struct {
	Org     string `json:"org"`
	Repo    string `json:"repo"`
	Tier    int    `json:"tier"`
	Path    string `json:"path"` // Relative path under the skills output dir
	Name    string `json:"name"`
	Content string `json:"content"`
}

// GeneratedMemory is one produced session-memory document.
type GeneratedMemory struct {
	Org     string `json:"org"`
	Repo    string `json:"repo"`
	Path    string `json:"path"` // Relative path under the memories output dir
	Name    string `json:"name"`
	Content string `json:"content"`
}

// GenerationResult is the complete doc-generation output. Slices are always
// non-nil so the serialized form carries empty arrays rather than nulls.
type GenerationResult struct {
	Skills                []GeneratedSkill  `json:"skills"`
	Memories              []GeneratedMemory `json:"memories"`
	ModelUsed             string            `json:"model_used"`
	GenerationTimeSeconds float64           `json:"generation_time_seconds"`
	Errors                []string          `json:"errors"`
}

// NewGenerationResult returns a result with initialized slices.
func NewGenerationResult(modelUsed string) *GenerationResult {
	return &GenerationResult{
		Skills:    []GeneratedSkill{},
		Memories:  []GeneratedMemory{},
		ModelUsed: modelUsed,
		Errors:    []string{},
	}
}

// AnalysisReport is the combined on-disk and piped envelope: the record plus
// whatever generation produced. GeneratedAt is stamped when the report is
// assembled.
type AnalysisReport struct {
	Analysis              *RepoAnalysis     `json:"analysis"`
	Skills                []GeneratedSkill  `json:"skills"`
	Memories              []GeneratedMemory `json:"memories"`
	ModelUsed             string            `json:"model_used"`
	GenerationTimeSeconds float64           `json:"generation_time_seconds"`
	Errors                []string          `json:"errors"`
	GeneratedAt           string            `json:"generated_at"`
}

// NewAnalysisReport assembles the envelope for a record and an optional
// generation result. Without one, the report carries empty document lists
// and names no model.
func NewAnalysisReport(record *RepoAnalysis, gen *GenerationResult, generatedAt string) *AnalysisReport {
	report := &AnalysisReport{
		Analysis:    record,
		Skills:      []GeneratedSkill{},
		Memories:    []GeneratedMemory{},
		ModelUsed:   "none (heuristic only)",
		Errors:      []string{},
		GeneratedAt: generatedAt,
	}
	if gen != nil {
		report.Skills = gen.Skills
		report.Memories = gen.Memories
		report.ModelUsed = gen.ModelUsed
		report.GenerationTimeSeconds = gen.GenerationTimeSeconds
		report.Errors = gen.Errors
	}
	return report
}
