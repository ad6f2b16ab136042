package mcp_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/relicworks/archeologist/internal/contract"
	mcp_internal "github.com/relicworks/archeologist/internal/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func baseConfig(root string) *contract.Config {
	return &contract.Config{
		ProjectRoot:      root,
		SourceDir:        contract.DefaultSourceDir,
		MaxDepth:         contract.DefaultMaxDepth,
		MaxFiles:         contract.DefaultMaxFiles,
		ReadBatchSize:    contract.DefaultReadBatchSize,
		CommitWindow:     contract.DefaultCommitWindow,
		ChurnTopN:        contract.DefaultChurnTopN,
		ShotgunThreshold: contract.DefaultShotgunThreshold,
		BacklogLimit:     contract.DefaultBacklogLimit,
	}
}

func offlineGit() *contract.MockGitClient {
	client := &contract.MockGitClient{}
	client.On("IsRepository", mock.Anything, mock.Anything).Return(false)
	return client
}

func TestMCPServerHandlers(t *testing.T) {
	root := t.TempDir()
	srcDir := filepath.Join(root, "Source")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "Legacy.h"), []byte("GWorld;\n"), 0o644))

	s := mcp_internal.NewMCPServer(baseConfig(root), offlineGit())

	t.Run("scan_project returns a full JSON report", func(t *testing.T) {
		tool := s.GetTool("scan_project")
		require.NotNil(t, tool, "Tool scan_project should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "scan_project",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(t.Context(), req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var report map[string]any
		text := res.Content[0].(mcp.TextContent).Text
		require.NoError(t, json.Unmarshal([]byte(text), &report))
		assert.Equal(t, float64(1), report["totalFiles"])
		assert.Equal(t, float64(1), report["totalAntiPatterns"])
	})

	t.Run("scan_project reports bad roots as tool errors", func(t *testing.T) {
		tool := s.GetTool("scan_project")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "scan_project",
				Arguments: map[string]any{
					"project_root": filepath.Join(root, "nope"),
				},
			},
		}

		res, err := tool.Handler(t.Context(), req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "scan failed")
	})

	t.Run("get_refactoring_backlog returns only the backlog", func(t *testing.T) {
		tool := s.GetTool("get_refactoring_backlog")
		require.NotNil(t, tool, "Tool get_refactoring_backlog should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_refactoring_backlog",
				Arguments: map[string]any{"limit": 5.0},
			},
		}

		res, err := tool.Handler(t.Context(), req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var backlog []map[string]any
		text := res.Content[0].(mcp.TextContent).Text
		require.NoError(t, json.Unmarshal([]byte(text), &backlog))
		require.Len(t, backlog, 1)
		assert.Equal(t, "Source/Legacy.h", backlog[0]["file"])
	})
}
