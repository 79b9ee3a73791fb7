package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer creates an MCP server exposing the question workflow as tools.
func NewMCPServer(runner Runner, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"venda",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions("venda — ask natural-language questions about the e-commerce database and get SQL-backed answers."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("ask_database",
			mcp.WithDescription("Answer a natural-language question by generating SQL, running it against the e-commerce database and summarizing the result."),
			mcp.WithString("question", mcp.Description("The question to answer"), mcp.Required()),
		),
		mcpAskDatabase(runner),
	)

	return s
}

func mcpAskDatabase(runner Runner) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		question, err := req.RequireString("question")
		if err != nil || strings.TrimSpace(question) == "" {
			return mcpError("question is required"), nil
		}

		resp, err := runner.Run(ctx, strings.TrimSpace(question))
		if err != nil {
			return mcpError(fmt.Sprintf("failed to answer question: %v", err)), nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Answer: %s\n", resp.FinalAnswer)
		if resp.SQLQuery != "" {
			fmt.Fprintf(&b, "\nSQL:\n%s\n", resp.SQLQuery)
		}
		if resp.Error != "" {
			fmt.Fprintf(&b, "\nLast error: %s\n", resp.Error)
		}
		if resp.NeedsGraph && resp.GraphArtifact != "" {
			fmt.Fprintf(&b, "\nA %s chart was rendered (%s, %d bytes).\n",
				resp.GraphType, resp.ContentType, len(resp.GraphArtifact))
		}
		return mcpText(b.String()), nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
