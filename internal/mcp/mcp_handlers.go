package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/relicworks/archeologist/core"
	"github.com/relicworks/archeologist/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	git     contract.GitClient
}

func (h *toolHandler) handleScanProject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("project_root", ""); p != "" {
		cfg.ProjectRoot = p
	}
	if d := request.GetString("source_dir", ""); d != "" {
		cfg.SourceDir = d
	}
	if m := request.GetInt("max_files", 0); m > 0 {
		cfg.MaxFiles = m
	}

	report, err := core.ScanProject(ctx, cfg, h.git)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRefactoringBacklog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("project_root", ""); p != "" {
		cfg.ProjectRoot = p
	}
	if d := request.GetString("source_dir", ""); d != "" {
		cfg.SourceDir = d
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.BacklogLimit = l
	}

	report, err := core.ScanProject(ctx, cfg, h.git)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report.RefactoringBacklog, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
