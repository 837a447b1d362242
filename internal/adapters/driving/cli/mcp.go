package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/finvo-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search
finvo records.

The server exposes the global_search tool and the finvo://domains and
finvo://history resources. By default it communicates over stdio using
JSON-RPC. Use --port to serve streamable HTTP instead.

Examples:
  # Stdio mode (default, for desktop assistants)
  finvo mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  finvo mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "finvo": {
        "command": "/path/to/finvo",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	r, err := runtimeFor(cmd)
	if err != nil {
		return err
	}
	aggregator, err := r.Aggregator(cmd.Context())
	if err != nil {
		return err
	}
	// Stdout carries the protocol in stdio mode.
	history, err := r.History(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Aggregator: aggregator,
		History:    history,
		Settings:   r.Settings(),
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
