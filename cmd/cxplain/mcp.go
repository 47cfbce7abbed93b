package main

import (
	"context"

	"github.com/codexplain/codexplain-go/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the explainer as MCP tools over stdio",
	Long: `Starts a Model Context Protocol server speaking JSON-RPC over stdio.
Exposes explain_code, detect_language, add_comments, and split_functions
so AI assistants can call the explainer directly.`,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	p, err := buildPipeline(ctx, false)
	if err != nil {
		return err
	}
	defer p.close()

	handler := mcp.NewHandler()
	handler.RegisterTool("explain_code", mcp.NewExplainCodeTool(p.explainer))
	handler.RegisterTool("detect_language", mcp.NewDetectLanguageTool(p.explainer))
	handler.RegisterTool("add_comments", mcp.NewAddCommentsTool(p.explainer))
	handler.RegisterTool("split_functions", mcp.NewSplitFunctionsTool(p.explainer))

	logger.Info("MCP server listening on stdio")
	return mcp.NewStdioTransport(handler).Start(ctx)
}
