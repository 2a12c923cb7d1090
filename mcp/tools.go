package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all ckscan MCP tools with the server
func RegisterTools(s *server.MCPServer) {
	handlers := NewHandlerSet(nil)

	// Tool 1: analyze_ck_metrics - Full CK suite over a path
	s.AddTool(mcp.NewTool("analyze_ck_metrics",
		mcp.WithDescription("Compute Chidamber & Kemerer metrics (WMC, DIT, NOC, CBO, RFC, LCOM) for every class in the given path"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to source code (file or directory) or a pre-extracted class model (.json)")),
		mcp.WithBoolean("recursive",
			mcp.Description("Recursively analyze directories (default: true)")),
		mcp.WithBoolean("count_inheritance",
			mcp.Description("Count inheritance relationships toward CBO (default: false)")),
		mcp.WithString("sort",
			mcp.Description("Sort criteria: name, risk, findings (default: name)")),
		mcp.WithString("output_mode",
			mcp.Description("Response detail: summary or full (default: summary)")),
	), handlers.HandleAnalyzeCKMetrics)

	// Tool 2: get_class_metrics - Single class lookup
	s.AddTool(mcp.NewTool("get_class_metrics",
		mcp.WithDescription("Get the CK metric values for a single class by name"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to source code to analyze")),
		mcp.WithString("class",
			mcp.Required(),
			mcp.Description("Qualified class name to look up")),
	), handlers.HandleGetClassMetrics)
}
