package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/engramdev/engram/internal/contract"
	mcp_internal "github.com/engramdev/engram/internal/mcp"
	"github.com/engramdev/engram/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleRepo creates a small analyzable directory without git history.
func sampleRepo(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "sample-repo")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "lib.go"), []byte("package src\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Sample\n"), 0o644))
	return dir
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func TestMCPServerAnalyzeRepo(t *testing.T) {
	baseCfg := &contract.Config{GitTimeout: contract.DefaultGitTimeout}
	store := new(contract.MockSnapshotStore)
	s := mcp_internal.NewMCPServer(baseCfg, contract.NewLocalGitHistory(), store)

	ctx := context.Background()
	dir := sampleRepo(t)

	tool := s.GetTool("analyze_repo")
	require.NotNil(t, tool, "Tool analyze_repo should exist")

	res, err := tool.Handler(ctx, callRequest("analyze_repo", map[string]any{
		"path":    dir,
		"timeout": 30.0,
	}))
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.False(t, res.IsError)

	var record schema.RepoAnalysis
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &record))
	assert.Equal(t, "sample-repo", record.Name)
	assert.Equal(t, 3, record.TotalFiles)
	assert.True(t, record.HasReadme)
}

func TestMCPServerAnalyzeRepoErrors(t *testing.T) {
	baseCfg := &contract.Config{GitTimeout: contract.DefaultGitTimeout}
	store := new(contract.MockSnapshotStore)
	s := mcp_internal.NewMCPServer(baseCfg, contract.NewLocalGitHistory(), store)

	ctx := context.Background()
	tool := s.GetTool("analyze_repo")
	require.NotNil(t, tool)

	t.Run("missing path", func(t *testing.T) {
		res, err := tool.Handler(ctx, callRequest("analyze_repo", map[string]any{}))
		require.NoError(t, err)
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "path is required")
	})

	t.Run("nonexistent path", func(t *testing.T) {
		res, err := tool.Handler(ctx, callRequest("analyze_repo", map[string]any{
			"path": filepath.Join(t.TempDir(), "missing"),
		}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "analysis failed")
	})
}

func TestMCPServerRepoSummary(t *testing.T) {
	baseCfg := &contract.Config{GitTimeout: contract.DefaultGitTimeout}
	store := new(contract.MockSnapshotStore)
	s := mcp_internal.NewMCPServer(baseCfg, contract.NewLocalGitHistory(), store)

	ctx := context.Background()
	dir := sampleRepo(t)

	tool := s.GetTool("repo_summary")
	require.NotNil(t, tool, "Tool repo_summary should exist")

	res, err := tool.Handler(ctx, callRequest("repo_summary", map[string]any{"path": dir}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := res.Content[0].(mcp.TextContent).Text
	assert.Contains(t, text, "Repository: sample-repo")
	assert.Contains(t, text, "Files: 3")
}

func TestMCPServerListSnapshots(t *testing.T) {
	baseCfg := &contract.Config{}
	store := new(contract.MockSnapshotStore)
	metas := []schema.SnapshotMeta{
		{
			ID:        "a1b2c3d4-0000-0000-0000-000000000001",
			RepoName:  "relay",
			RepoPath:  "/tmp/relay",
			CreatedAt: time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC),
		},
	}
	store.On("List", 5).Return(metas, nil)

	s := mcp_internal.NewMCPServer(baseCfg, contract.NewLocalGitHistory(), store)
	tool := s.GetTool("list_snapshots")
	require.NotNil(t, tool, "Tool list_snapshots should exist")

	res, err := tool.Handler(context.Background(), callRequest("list_snapshots", map[string]any{
		"limit": 5.0,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var decoded []schema.SnapshotMeta
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "relay", decoded[0].RepoName)
	store.AssertExpectations(t)
}

func TestMCPServerListSnapshotsError(t *testing.T) {
	baseCfg := &contract.Config{}
	store := new(contract.MockSnapshotStore)
	store.On("List", 0).Return(nil, assert.AnError)

	s := mcp_internal.NewMCPServer(baseCfg, contract.NewLocalGitHistory(), store)
	tool := s.GetTool("list_snapshots")
	require.NotNil(t, tool)

	res, err := tool.Handler(context.Background(), callRequest("list_snapshots", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "snapshot listing failed")
}
