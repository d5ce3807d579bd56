package mcp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/huangsam/repocheck/internal/contract"
	"github.com/huangsam/repocheck/internal/iocache"
	mcp_internal "github.com/huangsam/repocheck/internal/mcp"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseTestConfig() *contract.Config {
	return &contract.Config{
		RootPath:       ".",
		SoftTimeout:    5 * time.Second,
		MaxFiles:       contract.DefaultMaxFiles,
		MaxFileSize:    1 << 20,
		MaxDirDepth:    contract.DefaultMaxDirDepth,
		PerFileTimeout: time.Second,
		Workers:        4,
		CheckParallel:  2,
	}
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := baseTestConfig()

	mgr := &iocache.MockStoreManager{}
	mgr.On("GetAnalysisStore").Return(nil)
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	ctx := context.Background()

	t.Run("scan_repo unknown check", func(t *testing.T) {
		tool := s.GetTool("scan_repo")
		require.NotNil(t, tool, "Tool scan_repo should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "scan_repo",
				Arguments: map[string]any{
					"checks": "comments,nonsense",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "unknown check")
	})

	t.Run("scan_repo invalid soft_timeout", func(t *testing.T) {
		tool := s.GetTool("scan_repo")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "scan_repo",
				Arguments: map[string]any{
					"soft_timeout": "not_a_duration",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid soft_timeout")
	})

	t.Run("scan_repo missing root", func(t *testing.T) {
		tool := s.GetTool("scan_repo")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "scan_repo",
				Arguments: map[string]any{
					"root_path": "/does/not/exist",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "scan failed")
	})

	t.Run("get_score_history invalid check", func(t *testing.T) {
		tool := s.GetTool("get_score_history")
		require.NotNil(t, tool, "Tool get_score_history should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_score_history",
				Arguments: map[string]any{
					"check": "nonsense",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "unknown check")
	})

	t.Run("get_score_history without store", func(t *testing.T) {
		tool := s.GetTool("get_score_history")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_score_history",
				Arguments: map[string]any{
					"check": "comments",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "analysis tracking is not enabled")
	})
}

func TestMCPServerHandlers_ListChecks(t *testing.T) {
	baseCfg := baseTestConfig()

	mgr := &iocache.MockStoreManager{}
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	tool := s.GetTool("list_checks")
	require.NotNil(t, tool, "Tool list_checks should exist")

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: "list_checks"},
	}

	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)

	var infos []map[string]any
	text := res.Content[0].(mcp.TextContent).Text
	require.NoError(t, json.Unmarshal([]byte(text), &infos))
	assert.Len(t, infos, 4)

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info["name"].(string))
	}
	assert.Contains(t, names, "comments")
	assert.Contains(t, names, "complexity")
	assert.Contains(t, names, "license-headers")
	assert.Contains(t, names, "test-reliability")
}
