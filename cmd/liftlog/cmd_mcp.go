package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	liftlogmcp "github.com/datojulien/liftlog/internal/mcp"
)

func mcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP (Model Context Protocol) server over stdio",
		Long: `Starts an MCP JSON-RPC 2.0 server that reads from stdin and writes to stdout.
All diagnostic logs go to stderr so that stdout remains exclusively MCP protocol traffic.

Tools exposed:
  list_days         — workout days with summaries
  list_exercises    — exercises with summaries and personal records
  day_summary       — set-by-set detail for one day
  exercise_summary  — full history for one exercise
  personal_records  — the record set per exercise
  stats             — dataset statistics

Each tool call rereads the export, so results always reflect the current log.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger()

			srv := liftlogmcp.NewServer(newLoader(logger), logger)

			// Use a standard log.Logger pointing at stderr for the mcp-go error logger.
			errLogger := log.New(os.Stderr, "mcp: ", log.LstdFlags)

			logger.Info("mcp: liftlog MCP server starting", "transport", "stdio")

			return mcpserver.ServeStdio(
				srv.MCPServer(),
				mcpserver.WithErrorLogger(errLogger),
			)
		},
	}

	return cmd
}
