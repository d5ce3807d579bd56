package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/repocheck/core"
	"github.com/huangsam/repocheck/internal/checks"
	"github.com/huangsam/repocheck/internal/contract"
	"github.com/huangsam/repocheck/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleScanRepo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("root_path", ""); p != "" {
		cfg.RootPath = p
	}
	if names := request.GetString("checks", ""); names != "" {
		cfg.Checks = nil
		for _, name := range strings.Split(names, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Checks = append(cfg.Checks, schema.CheckName(name))
			}
		}
	}
	if m := request.GetInt("max_files", 0); m > 0 {
		cfg.MaxFiles = m
	}
	if s := request.GetString("soft_timeout", ""); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return mcp.NewToolResultError(fmt.Sprintf("invalid soft_timeout %q", s)), nil
		}
		cfg.SoftTimeout = d
	}

	selected, err := checks.Select(cfg.Checks)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid check selection: %v", err)), nil
	}

	reports, _, err := core.GetScanResults(ctx, cfg, selected, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(reports, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListChecks(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type checkInfo struct {
		Name        schema.CheckName `json:"name"`
		Category    string           `json:"category"`
		Description string           `json:"description"`
		Extensions  []string         `json:"extensions,omitempty"`
	}

	all := checks.All()
	infos := make([]checkInfo, 0, len(all))
	for _, chk := range all {
		infos = append(infos, checkInfo{
			Name:        chk.Name,
			Category:    chk.Category,
			Description: chk.Description,
			Extensions:  chk.Extensions,
		})
	}

	jsonData, _ := json.MarshalIndent(infos, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetScoreHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := schema.CheckName(request.GetString("check", ""))
	if _, err := checks.Lookup(name); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid check: %v", err)), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	store := h.mgr.GetAnalysisStore()
	if store == nil {
		return mcp.NewToolResultError("analysis tracking is not enabled; run with --analysis-backend sqlite"), nil
	}

	results, err := store.GetRecentResults(name, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history lookup failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
