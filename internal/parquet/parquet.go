// Package parquet provides data structures and functions for exporting engram
// analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/engramdev/engram/schema"
	"github.com/parquet-go/parquet-go"
)

// Analysis represents a single repository analysis flattened into one
// columnar row. Collection-valued fields are reduced to counts so the row
// stays flat; the JSON record remains the full-fidelity format.
type Analysis struct {
	// RepoName is the repository name
	RepoName string `parquet:"repo_name,snappy"`

	// RepoPath is the absolute path that was analyzed
	RepoPath string `parquet:"repo_path,snappy"`

	// Description is the repository description (nullable)
	Description *string `parquet:"description,optional,snappy"`

	// TotalFiles is the number of files walked
	TotalFiles int32 `parquet:"total_files,snappy"`

	// TotalDirs is the number of directories walked
	TotalDirs int32 `parquet:"total_dirs,snappy"`

	// PrimaryLanguage is the language with the highest share (nullable)
	PrimaryLanguage *string `parquet:"primary_language,optional,snappy"`

	// PrimaryLanguagePct is the primary language's percentage share
	PrimaryLanguagePct float64 `parquet:"primary_language_pct,snappy"`

	// LanguageCount is the number of detected languages
	LanguageCount int32 `parquet:"language_count,snappy"`

	// FrameworkCount is the number of detected frameworks
	FrameworkCount int32 `parquet:"framework_count,snappy"`

	// HasTests reports whether any test files were found
	HasTests bool `parquet:"has_tests,snappy"`

	// TestFramework is the detected test framework (nullable)
	TestFramework *string `parquet:"test_framework,optional,snappy"`

	// TestFileCount is the number of test files
	TestFileCount int32 `parquet:"test_file_count,snappy"`

	// HasCI reports whether a CI configuration was found
	HasCI bool `parquet:"has_ci,snappy"`

	// CIPlatform is the detected CI platform (nullable)
	CIPlatform *string `parquet:"ci_platform,optional,snappy"`

	// HasDocker reports whether Docker files were found
	HasDocker bool `parquet:"has_docker,snappy"`

	// HasReadme reports whether a README was found
	HasReadme bool `parquet:"has_readme,snappy"`

	// LicenseType is the detected license identifier (nullable)
	LicenseType *string `parquet:"license_type,optional,snappy"`

	// CommitCount is the total number of commits reachable from HEAD
	CommitCount int32 `parquet:"commit_count,snappy"`

	// ContributorCount is the number of distinct top contributors
	ContributorCount int32 `parquet:"contributor_count,snappy"`

	// FirstCommitDate is the oldest commit date in YYYY-MM-DD form (nullable)
	FirstCommitDate *string `parquet:"first_commit_date,optional,snappy"`

	// LastCommitDate is the newest commit date in YYYY-MM-DD form (nullable)
	LastCommitDate *string `parquet:"last_commit_date,optional,snappy"`

	// PatternCount is the number of detected code patterns
	PatternCount int32 `parquet:"pattern_count,snappy"`
}

// Snapshot represents one stored snapshot row flattened for export.
// This struct maps to the engram_snapshots database table, with summary
// columns lifted out of the record JSON for easy querying.
type Snapshot struct {
	// SnapshotID is the unique identifier for this snapshot
	SnapshotID string `parquet:"snapshot_id,snappy"`

	// RepoName is the repository name at snapshot time
	RepoName string `parquet:"repo_name,snappy"`

	// RepoPath is the path that was analyzed
	RepoPath string `parquet:"repo_path,snappy"`

	// CreatedAt is when the snapshot was stored (TIMESTAMP with nanosecond precision)
	CreatedAt time.Time `parquet:"created_at,snappy"`

	// TotalFiles is the number of files walked
	TotalFiles int32 `parquet:"total_files,snappy"`

	// PrimaryLanguage is the language with the highest share (nullable)
	PrimaryLanguage *string `parquet:"primary_language,optional,snappy"`

	// FrameworkCount is the number of detected frameworks
	FrameworkCount int32 `parquet:"framework_count,snappy"`

	// HasTests reports whether any test files were found
	HasTests bool `parquet:"has_tests,snappy"`

	// HasCI reports whether a CI configuration was found
	HasCI bool `parquet:"has_ci,snappy"`

	// CommitCount is the total number of commits reachable from HEAD
	CommitCount int32 `parquet:"commit_count,snappy"`

	// ContributorCount is the number of distinct top contributors
	ContributorCount int32 `parquet:"contributor_count,snappy"`

	// Record is the full analysis record as JSON
	Record string `parquet:"record,snappy"`
}

// WriteAnalysisParquet writes a slice of Analysis structs to a Parquet file.
func WriteAnalysisParquet(data []Analysis, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is inferred from the Analysis struct tags
	writer := parquet.NewGenericWriter[Analysis](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteSnapshotsParquet writes a slice of Snapshot structs to a Parquet file.
func WriteSnapshotsParquet(data []Snapshot, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is inferred from the Snapshot struct tags
	writer := parquet.NewGenericWriter[Snapshot](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertAnalysis flattens one analysis record into a columnar row.
func ConvertAnalysis(record *schema.RepoAnalysis) Analysis {
	lang, pct := primaryLanguage(record.Languages)

	return Analysis{
		RepoName:           record.Name,
		RepoPath:           record.Path,
		Description:        optionalString(record.Description),
		TotalFiles:         int32(record.TotalFiles),
		TotalDirs:          int32(record.TotalDirs),
		PrimaryLanguage:    optionalString(lang),
		PrimaryLanguagePct: pct,
		LanguageCount:      int32(len(record.Languages)),
		FrameworkCount:     int32(len(record.Frameworks)),
		HasTests:           record.HasTests,
		TestFramework:      optionalString(record.TestFramework),
		TestFileCount:      int32(record.TestFileCount),
		HasCI:              record.HasCI,
		CIPlatform:         optionalString(record.CIPlatform),
		HasDocker:          record.HasDocker,
		HasReadme:          record.HasReadme,
		LicenseType:        optionalString(record.LicenseType),
		CommitCount:        int32(record.CommitCount),
		ContributorCount:   int32(len(record.Contributors)),
		FirstCommitDate:    optionalString(record.FirstCommitDate),
		LastCommitDate:     optionalString(record.LastCommitDate),
		PatternCount:       int32(len(record.Patterns)),
	}
}

// ConvertSnapshotRows flattens stored snapshot rows for export. Summary
// columns come from the record JSON; a payload that fails to parse keeps
// its identity columns and zeroed summaries.
func ConvertSnapshotRows(rows []schema.SnapshotRow) []Snapshot {
	result := make([]Snapshot, len(rows))
	for i, row := range rows {
		snap := Snapshot{
			SnapshotID: row.ID,
			RepoName:   row.RepoName,
			RepoPath:   row.RepoPath,
			CreatedAt:  row.CreatedAt,
			Record:     row.Record,
		}

		var record schema.RepoAnalysis
		if err := json.Unmarshal([]byte(row.Record), &record); err == nil {
			lang, _ := primaryLanguage(record.Languages)
			snap.TotalFiles = int32(record.TotalFiles)
			snap.PrimaryLanguage = optionalString(lang)
			snap.FrameworkCount = int32(len(record.Frameworks))
			snap.HasTests = record.HasTests
			snap.HasCI = record.HasCI
			snap.CommitCount = int32(record.CommitCount)
			snap.ContributorCount = int32(len(record.Contributors))
		}

		result[i] = snap
	}
	return result
}

// primaryLanguage returns the language with the highest percentage share.
// Ties resolve to the alphabetically smaller name so output is deterministic.
func primaryLanguage(langs map[string]float64) (string, float64) {
	var name string
	var pct float64
	for lang, p := range langs {
		if p > pct || (p == pct && (name == "" || lang < name)) {
			name = lang
			pct = p
		}
	}
	return name, pct
}

// optionalString maps empty strings to nil for nullable columns.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
