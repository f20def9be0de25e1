// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/engramdev/engram/internal/contract"
	"github.com/engramdev/engram/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport renders the analysis report using the configured output format.
func (ow *OutWriter) WriteReport(report *schema.AnalysisReport, cfg *contract.Config, duration time.Duration) error {
	return WriteReportResults(report, cfg, duration)
}

// WriteReportFiles writes the on-disk artifacts: the JSON record plus each
// generated document under the output directory.
func (ow *OutWriter) WriteReportFiles(report *schema.AnalysisReport, cfg *contract.Config) error {
	return WriteReportArtifacts(report, cfg.OutputDir)
}

// WriteSnapshots prints stored snapshot metadata using the configured output format.
func (ow *OutWriter) WriteSnapshots(metas []schema.SnapshotMeta, cfg *contract.Config) error {
	return WriteSnapshotResults(metas, cfg)
}

// WriteStatus prints snapshot store state using the configured output format.
func (ow *OutWriter) WriteStatus(status schema.SnapshotStoreStatus, cfg *contract.Config) error {
	return WriteStatusResults(status, cfg)
}
