package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ludo-technologies/ckscan/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "ckscan"
	serverVersion = "1.0.0"
)

func main() {
	// Set up logging to stderr (MCP uses stdout for JSON-RPC)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	server := mcpserver.NewMCPServer(
		serverName,
		serverVersion,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	mcp.RegisterTools(server)

	log.Printf("Starting %s MCP server v%s\n", serverName, serverVersion)
	log.Println("Registered tools:")
	log.Println("  - analyze_ck_metrics: CK metric suite analysis")
	log.Println("  - get_class_metrics: Single class metric lookup")
	log.Println("")
	log.Println("Server ready - waiting for MCP client connection...")

	// Stdio transport blocks until the server is terminated
	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
