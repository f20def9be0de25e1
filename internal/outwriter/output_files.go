package outwriter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/engramdev/engram/schema"
)

// ReportFileName is the combined report written into the output directory.
const ReportFileName = "engram-analysis.json"

// WriteReportArtifacts persists the combined report plus every generated
// document under outDir. Document paths are slash-separated and may nest,
// e.g. skills/architecture/SKILL.md.
func WriteReportArtifacts(report *schema.AnalysisReport, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir %s: %w", outDir, err)
	}

	f, err := os.Create(filepath.Join(outDir, ReportFileName))
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := writeJSON(f, report); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close report file: %w", err)
	}

	for _, s := range report.Skills {
		path := filepath.Join(outDir, "skills", filepath.FromSlash(s.Path))
		if err := writeDocument(path, s.Content); err != nil {
			return err
		}
	}
	for _, m := range report.Memories {
		path := filepath.Join(outDir, "memories", filepath.FromSlash(m.Path))
		if err := writeDocument(path, m.Content); err != nil {
			return err
		}
	}

	return nil
}

// writeDocument writes one generated document, creating parent directories.
func writeDocument(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create dir for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
