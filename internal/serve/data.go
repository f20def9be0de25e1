package serve

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/engramdev/engram/schema"
)

// ViewerData is the aggregate the viewer consumes. A single-report directory
// carries the full record; a multi-repo directory carries the pooled
// documents only.
type ViewerData struct {
	Skills      []schema.GeneratedSkill  `json:"skills"`
	Memories    []schema.GeneratedMemory `json:"memories"`
	Analysis    *schema.RepoAnalysis     `json:"analysis,omitempty"`
	GeneratedAt string                   `json:"generated_at"`
	ModelUsed   string                   `json:"model_used,omitempty"`
}

// loadViewerData reads analysis output from dir. Either the directory holds
// an engram-analysis.json directly, or it holds per-repo subdirectories that
// each do.
func loadViewerData(dir string) (*ViewerData, error) {
	report, err := readReport(filepath.Join(dir, "engram-analysis.json"))
	if err == nil {
		return &ViewerData{
			Skills:      report.Skills,
			Memories:    report.Memories,
			Analysis:    report.Analysis,
			GeneratedAt: report.GeneratedAt,
			ModelUsed:   report.ModelUsed,
		}, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read serve dir %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	data := &ViewerData{
		Skills:   []schema.GeneratedSkill{},
		Memories: []schema.GeneratedMemory{},
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		report, err := readReport(filepath.Join(dir, entry.Name(), "engram-analysis.json"))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		data.Skills = append(data.Skills, report.Skills...)
		data.Memories = append(data.Memories, report.Memories...)
	}

	if len(data.Skills) == 0 && len(data.Memories) == 0 {
		return nil, fmt.Errorf("no engram-analysis.json found in %s: run 'engram analyze <repo>' first to generate data", dir)
	}
	return data, nil
}

// readReport decodes one combined report file. A missing file surfaces as
// os.IsNotExist so callers can fall through to the multi-repo layout.
func readReport(path string) (*schema.AnalysisReport, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var report schema.AnalysisReport
	if err := json.Unmarshal(content, &report); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &report, nil
}
