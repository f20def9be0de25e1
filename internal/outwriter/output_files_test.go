package outwriter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/engramdev/engram/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReportArtifacts(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, ".engram")

	gen := schema.NewGenerationResult("qwen2.5-coder:7b")
	gen.Skills = append(gen.Skills, schema.GeneratedSkill{
		Org:     "acme",
		Repo:    "relay",
		Tier:    1,
		Path:    "architecture/SKILL.md",
		Name:    "architecture",
		Content: "# Architecture\n\nLayered CLI.",
	})
	gen.Memories = append(gen.Memories, schema.GeneratedMemory{
		Org:     "acme",
		Repo:    "relay",
		Path:    "sessions/relay.md",
		Name:    "relay",
		Content: "# Session\n\nNotes.",
	})
	report := schema.NewAnalysisReport(fullReportAnalysis(), gen, "2026-02-10T12:00:00Z")

	err := WriteReportArtifacts(report, outDir)
	require.NoError(t, err)

	// Combined report decodes back with the generation attached
	content, err := os.ReadFile(filepath.Join(outDir, ReportFileName))
	require.NoError(t, err)
	var decoded schema.AnalysisReport
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Equal(t, "relay", decoded.Analysis.Name)
	assert.Equal(t, "qwen2.5-coder:7b", decoded.ModelUsed)
	require.Len(t, decoded.Skills, 1)

	// Documents land under their subtrees with parents created
	skill, err := os.ReadFile(filepath.Join(outDir, "skills", "architecture", "SKILL.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Architecture\n\nLayered CLI.", string(skill))

	memory, err := os.ReadFile(filepath.Join(outDir, "memories", "sessions", "relay.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Session\n\nNotes.", string(memory))
}

func TestWriteReportArtifactsAnalysisOnly(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "out")

	report := schema.NewAnalysisReport(fullReportAnalysis(), nil, "2026-02-10T12:00:00Z")

	err := WriteReportArtifacts(report, outDir)
	require.NoError(t, err)

	// Only the combined report exists; no document subtrees
	_, err = os.Stat(filepath.Join(outDir, ReportFileName))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "skills"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(outDir, "memories"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteReportArtifactsBadDir(t *testing.T) {
	report := schema.NewAnalysisReport(fullReportAnalysis(), nil, "2026-02-10T12:00:00Z")

	err := WriteReportArtifacts(report, "/proc/nonexistent/out")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output dir")
}

func TestWriteDocumentNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "a", "b", "c", "doc.md")

	err := writeDocument(path, "body")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "body", string(content))
}
