package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/qsc-search/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search.

Tools:
  search    faceted search with filters, sort and paging
  suggest   live candidates for a partial query

Resources:
  qsc://history   recent queries

By default the server communicates over stdio using JSON-RPC.
Use --port to serve over HTTP instead, e.g. for the MCP Inspector.

Examples:
  # Stdio mode (default)
  qsc mcp serve

  # HTTP mode
  qsc mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "qsc": {
        "command": "/path/to/qsc",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

var mcpPort int

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "serve over HTTP on this port instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	server, err := mcp.NewServer(&mcp.Ports{
		Search:  searchService(),
		History: historyService(),
	}, currentSettings())
	if err != nil {
		return err
	}
	watchSettings(cmd.Context(), server.SetSettings)

	if mcpPort == 0 {
		return server.Run(cmd.Context())
	}
	addr := fmt.Sprintf(":%d", mcpPort)
	fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
	return server.RunHTTP(cmd.Context(), addr)
}
