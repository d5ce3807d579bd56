// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/repocheck/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Repocheck MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Repocheck Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: scan_repo ---
	s.AddTool(mcp.NewTool("scan_repo",
		mcp.WithDescription("Run repository health checks against a directory tree within a bounded time budget."),
		mcp.WithString("root_path", mcp.Description("Path to the directory to scan (defaults to current directory if not specified).")),
		mcp.WithString("checks", mcp.Description("Comma-separated check names (comments, complexity, license-headers, test-reliability). Defaults to all checks.")),
		mcp.WithNumber("max_files", mcp.Description("Cap on the number of files analyzed per check.")),
		mcp.WithString("soft_timeout", mcp.Description("Soft time budget per check as a duration string (e.g. '10s', '1m').")),
	), h.handleScanRepo)

	// --- 2. Tool: list_checks ---
	s.AddTool(mcp.NewTool("list_checks",
		mcp.WithDescription("List the registered repository health checks with their descriptions and file eligibility."),
	), h.handleListChecks)

	// --- 3. Tool: get_score_history ---
	s.AddTool(mcp.NewTool("get_score_history",
		mcp.WithDescription("Retrieve recent recorded scores for one check from the analysis store."),
		mcp.WithString("check", mcp.Description("The check name to look up."), mcp.Required(), mcp.Enum("comments", "complexity", "license-headers", "test-reliability")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results to return. Defaults to 10.")),
	), h.handleGetScoreHistory)

	return s
}

// StartMCPServer starts the Repocheck MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
