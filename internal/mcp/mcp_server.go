// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/engramdev/engram/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Engram MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, history contract.HistoryProvider, store contract.SnapshotStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Engram Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		history: history,
		store:   store,
	}

	// --- 1. Tool: analyze_repo ---
	s.AddTool(mcp.NewTool("analyze_repo",
		mcp.WithDescription("Run the heuristic repository analysis and return the full record as JSON."),
		mcp.WithString("path", mcp.Description("Path to the repository to analyze."), mcp.Required()),
		mcp.WithNumber("timeout", mcp.Description("Analysis deadline in seconds. Defaults to the server's configured timeout.")),
	), h.handleAnalyzeRepo)

	// --- 2. Tool: repo_summary ---
	s.AddTool(mcp.NewTool("repo_summary",
		mcp.WithDescription("Analyze a repository and return a compact text summary suitable for prompting."),
		mcp.WithString("path", mcp.Description("Path to the repository to summarize."), mcp.Required()),
	), h.handleRepoSummary)

	// --- 3. Tool: list_snapshots ---
	s.AddTool(mcp.NewTool("list_snapshots",
		mcp.WithDescription("List stored analysis snapshots, newest first."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of snapshots returned.")),
	), h.handleListSnapshots)

	return s
}

// StartMCPServer starts the Engram MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, history contract.HistoryProvider, store contract.SnapshotStore) error {
	s := NewMCPServer(baseCfg, history, store)
	return server.ServeStdio(s)
}
