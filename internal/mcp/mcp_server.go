// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/relicworks/archeologist/internal/contract"
)

// NewMCPServer initializes and configures the Archeologist MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, git contract.GitClient) *server.MCPServer {
	s := server.NewMCPServer(
		"Archeologist Scan Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		git:     git,
	}

	// --- 1. Tool: scan_project ---
	s.AddTool(mcp.NewTool("scan_project",
		mcp.WithDescription("Scan a game project's C++ sources for anti-patterns and return the full report."),
		mcp.WithString("project_root", mcp.Description("Path to the project root (defaults to the configured root).")),
		mcp.WithString("source_dir", mcp.Description("Name of the source directory under the root. Defaults to 'Source'.")),
		mcp.WithNumber("max_files", mcp.Description("Cap on the number of files scanned.")),
	), h.handleScanProject)

	// --- 2. Tool: get_refactoring_backlog ---
	s.AddTool(mcp.NewTool("get_refactoring_backlog",
		mcp.WithDescription("Scan a project and return only the churn-weighted refactoring backlog."),
		mcp.WithString("project_root", mcp.Description("Path to the project root.")),
		mcp.WithString("source_dir", mcp.Description("Name of the source directory under the root.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of backlog entries returned.")),
	), h.handleGetRefactoringBacklog)

	return s
}

// StartMCPServer starts the Archeologist MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, git contract.GitClient) error {
	s := NewMCPServer(baseCfg, git)
	return server.ServeStdio(s)
}
