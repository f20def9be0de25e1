package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/engramdev/engram/core"
	"github.com/engramdev/engram/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	history contract.HistoryProvider
	store   contract.SnapshotStore
}

// repoConfig clones the base config pointed at the requested repository.
func (h *toolHandler) repoConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	path := request.GetString("path", "")
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}

	cfg := h.baseCfg.Clone()
	cfg.RepoPath = abs
	cfg.RepoName = filepath.Base(abs)
	return cfg, nil
}

func (h *toolHandler) handleAnalyzeRepo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.repoConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid analysis parameters: %v", err)), nil
	}
	if t := request.GetInt("timeout", 0); t > 0 {
		cfg.AnalysisTimeout = time.Duration(t) * time.Second
	}

	record, err := core.AnalyzeRepo(ctx, cfg, h.history)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(record, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRepoSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.repoConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid summary parameters: %v", err)), nil
	}

	record, err := core.AnalyzeRepo(ctx, cfg, h.history)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	return mcp.NewToolResultText(record.PromptSummary()), nil
}

func (h *toolHandler) handleListSnapshots(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 0)

	metas, err := h.store.List(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("snapshot listing failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(metas, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
