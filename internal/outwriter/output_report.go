package outwriter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/engramdev/engram/internal/contract"
	"github.com/engramdev/engram/internal/parquet"
	"github.com/engramdev/engram/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Listing caps for the summary view.
const (
	maxDescriptionWidth  = 80
	maxSummaryLanguages  = 5
	maxSummaryFrameworks = 8
	maxSummaryDocker     = 3
	maxSummaryPatterns   = 5
	maxSummaryDirs       = 10
	maxSummaryContribs   = 3
)

// WriteReportResults outputs the analysis report, dispatching based on the output format configured.
func WriteReportResults(report *schema.AnalysisReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeReportJSONResults(report, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeReportParquetResults(report, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to the human-readable report
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportText(report, cfg, duration, w)
		}, "Wrote report")
	}
	return nil
}

// writeReportJSONResults handles opening the file and calling the JSON writer.
func writeReportJSONResults(report *schema.AnalysisReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, report)
	}, "Wrote JSON")
}

// writeReportParquetResults writes the flattened analysis row. Parquet is a
// binary format, so it always goes to a file, never stdout.
func writeReportParquetResults(report *schema.AnalysisReport, cfg *contract.Config) error {
	outputPath := cfg.OutputFile
	if outputPath == "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir %s: %w", cfg.OutputDir, err)
		}
		outputPath = filepath.Join(cfg.OutputDir, "engram-analysis.parquet")
	}

	rows := []parquet.Analysis{parquet.ConvertAnalysis(report.Analysis)}
	if err := parquet.WriteAnalysisParquet(rows, outputPath); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", outputPath)
	return nil
}

// writeReportText generates and writes the human-readable report.
func writeReportText(report *schema.AnalysisReport, cfg *contract.Config, duration time.Duration, w io.Writer) error {
	if _, err := contract.TitleColor.Fprintln(w, "Repository Analysis"); err != nil {
		return err
	}

	if err := writeSummaryTable(report.Analysis, cfg, w); err != nil {
		return err
	}

	// Generated docs and the heuristic detail are alternatives: a run that
	// produced no documents and no step errors shows the detail instead.
	if len(report.Skills) > 0 || len(report.Memories) > 0 || len(report.Errors) > 0 {
		if err := writeGenerationListing(report, w); err != nil {
			return err
		}
	} else {
		if err := writeHeuristicDetail(report.Analysis, w); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nAnalysis completed in %v\n", duration.Round(time.Millisecond))
	return err
}

// summaryRows builds the key/value rows of the summary table. Only rows with
// evidence behind them appear, mirroring the record's omitempty JSON shape.
func summaryRows(a *schema.RepoAnalysis) [][]string {
	rows := [][]string{{"Name", a.Name}}

	if a.Description != "" {
		rows = append(rows, []string{"Description", truncateValue(a.Description, maxDescriptionWidth)})
	}

	rows = append(rows, []string{"Files / Dirs", fmt.Sprintf("%s / %s", formatCount(a.TotalFiles), formatCount(a.TotalDirs))})

	if len(a.Languages) > 0 {
		var parts []string
		for _, l := range a.TopLanguages(maxSummaryLanguages) {
			parts = append(parts, fmt.Sprintf("%s (%.0f%%)", l.Name, l.Percent))
		}
		rows = append(rows, []string{"Languages", strings.Join(parts, ", ")})
	}

	if len(a.Frameworks) > 0 {
		rows = append(rows, []string{"Frameworks", strings.Join(headOf(a.Frameworks, maxSummaryFrameworks), ", ")})
	}

	if a.HasTests {
		framework := a.TestFramework
		if framework == "" {
			framework = "detected"
		}
		rows = append(rows, []string{"Testing", fmt.Sprintf("%s (%d files)", framework, a.TestFileCount)})
	}

	if a.HasCI {
		rows = append(rows, []string{"CI/CD", fmt.Sprintf("%s (%d workflows)", a.CIPlatform, len(a.CIFiles))})
	}

	if a.HasDocker {
		rows = append(rows, []string{"Docker", strings.Join(headOf(a.DockerFiles, maxSummaryDocker), ", ")})
	}

	if len(a.Patterns) > 0 {
		rows = append(rows, []string{"Patterns", strings.Join(headOf(a.Patterns, maxSummaryPatterns), ", ")})
	}

	if a.CommitCount > 0 {
		rows = append(rows, []string{"Commits", formatCount(a.CommitCount)})
	}

	if len(a.Contributors) > 0 {
		top := a.Contributors
		if len(top) > maxSummaryContribs {
			top = top[:maxSummaryContribs]
		}
		cell := schema.FormatContributors(top)
		if rest := len(a.Contributors) - len(top); rest > 0 {
			cell += fmt.Sprintf(" +%d more", rest)
		}
		rows = append(rows, []string{"Contributors", cell})
	}

	if a.LicenseType != "" {
		rows = append(rows, []string{"License", a.LicenseType})
	}

	return rows
}

// writeSummaryTable renders the key/value summary rows.
func writeSummaryTable(a *schema.RepoAnalysis, cfg *contract.Config, w io.Writer) error {
	table := tablewriter.NewWriter(w)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	maxWidth := getMaxValueWidth(cfg)
	var data [][]string
	for _, row := range summaryRows(a) {
		data = append(data, []string{
			contract.SectionColor.Sprint(row[0]),
			truncateValue(row[1], maxWidth),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeHeuristicDetail prints the directory structure and the full pattern
// list. It stands in for generated docs when a run produced none.
func writeHeuristicDetail(a *schema.RepoAnalysis, w io.Writer) error {
	if len(a.TopDirs) > 0 {
		if _, err := contract.SectionColor.Fprintln(w, "\nDirectory Structure"); err != nil {
			return err
		}
		for _, d := range a.TopDirectories(maxSummaryDirs) {
			if _, err := fmt.Fprintf(w, "  %s/ (%d files)\n", d.Name, d.Files); err != nil {
				return err
			}
		}
	}

	if len(a.Patterns) > 0 {
		if _, err := contract.SectionColor.Fprintln(w, "\nDetected Patterns"); err != nil {
			return err
		}
		for _, p := range a.Patterns {
			if _, err := fmt.Fprintf(w, "  - %s\n", p); err != nil {
				return err
			}
		}
	}

	return nil
}

// writeGenerationListing prints what the generation pass produced.
func writeGenerationListing(report *schema.AnalysisReport, w io.Writer) error {
	header := fmt.Sprintf("\nResults for %s: %d skills + %d memories", reportOrg(report), len(report.Skills), len(report.Memories))
	if _, err := successColor.Fprintln(w, header); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Model: %s | Time: %.1fs | Cost: $0.00\n", report.ModelUsed, report.GenerationTimeSeconds); err != nil {
		return err
	}

	if len(report.Skills) > 0 {
		if _, err := contract.SectionColor.Fprintln(w, "\nSkills"); err != nil {
			return err
		}
		for _, s := range report.Skills {
			if _, err := fmt.Fprintf(w, "  %s (%d words)\n", skillColor.Sprint(s.Path), wordCount(s.Content)); err != nil {
				return err
			}
		}
	}

	if len(report.Memories) > 0 {
		if _, err := contract.SectionColor.Fprintln(w, "\nMemories"); err != nil {
			return err
		}
		for _, m := range report.Memories {
			if _, err := fmt.Fprintf(w, "  %s (%d words)\n", memoryColor.Sprint(m.Path), wordCount(m.Content)); err != nil {
				return err
			}
		}
	}

	if len(report.Errors) > 0 {
		if _, err := contract.SectionColor.Fprintln(w, "\nErrors"); err != nil {
			return err
		}
		for _, e := range report.Errors {
			if _, err := fmt.Fprintf(w, "  %s\n", errorColor.Sprint(e)); err != nil {
				return err
			}
		}
	}

	return nil
}

// reportOrg names the attribution org, falling back to the repo name.
func reportOrg(report *schema.AnalysisReport) string {
	if len(report.Skills) > 0 {
		return report.Skills[0].Org
	}
	if len(report.Memories) > 0 {
		return report.Memories[0].Org
	}
	return report.Analysis.Name
}
