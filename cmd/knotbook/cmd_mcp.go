package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	knotmcp "github.com/ajitpratap0/knotbook/internal/mcp"
)

func mcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP (Model Context Protocol) server over stdio",
		Long: `Starts an MCP JSON-RPC 2.0 server that reads from stdin and writes to stdout.
All diagnostic logs go to stderr so that stdout remains exclusively MCP protocol traffic.

Tools exposed:
  add_person    - add a contact to the address book
  find_persons  - find contacts by name or tag keywords
  find_weddings - find weddings and their participants
  clear_tags    - clear a contact's tags and wedding memberships
  stats         - book statistics`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger()
			store := newStorage(logger)

			mgr, err := loadModel(store, logger)
			if err != nil {
				return fmt.Errorf("mcp: loading model: %w", err)
			}

			srv := knotmcp.NewServer(mgr, store, logger)

			// Use a standard log.Logger pointing at stderr for the mcp-go error logger.
			errLogger := log.New(os.Stderr, "mcp: ", log.LstdFlags)

			logger.Info("mcp: knotbook MCP server starting", "transport", "stdio")

			return mcpserver.ServeStdio(
				srv.MCPServer(),
				mcpserver.WithErrorLogger(errLogger),
			)
		},
	}

	return cmd
}
