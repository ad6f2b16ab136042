package cmd

import (
	"github.com/relicworks/archeologist/internal/contract"
	"github.com/relicworks/archeologist/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Archeologist MCP server",
	Long:  `Launch an MCP server that allows AI agents to scan projects for anti-patterns via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Config is resolved once up front; tool calls may override
		// the project root per request.
		return sharedSetup(cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, contract.NewLocalGitClient())
	},
}
