package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/stagewalk/stagewalk"
	"github.com/stagewalk/stagewalk/internal/logging"
	"github.com/stagewalk/stagewalk/pkg/adapters/mcp"
	"github.com/stagewalk/stagewalk/pkg/adapters/term"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the engine as an MCP server so AI agents can start, inspect, and
stop traversal playback as tools. Playback renders on this process's terminal.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		levelName, _ := cmd.Flags().GetString("log-level")

		// Logs go to Stderr so they never corrupt JSON-RPC on Stdout.
		logger := logging.New(logging.ParseLevel(levelName))

		out := os.Stdout
		if transport == "stdio" {
			// Stdout carries the protocol; render the playback to Stderr.
			out = os.Stderr
		}

		engine := stagewalk.New(
			term.New(term.WithOutput(out), term.WithLogger(logger)),
			stagewalk.WithLogger(logger),
		)
		defer engine.Close()

		srv := mcp.NewServer(engine, stagewalk.Version)

		switch transport {
		case "stdio":
			log.SetOutput(os.Stderr)
			logger.Info("Starting Stagewalk MCP Server (Stdio)...")
			if err := srv.ServeStdio(); err != nil {
				logger.Error("MCP Server execution failed", "error", err)
				os.Exit(1)
			}
		case "sse":
			logger.Info("Starting Stagewalk MCP Server (SSE)", "port", port)

			// Create a context that cancels on interrupt signal
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil {
				// Ignore server closed error if it was caused by context cancellation
				if err != http.ErrServerClosed {
					logger.Error("MCP Server execution failed", "error", err)
					os.Exit(1)
				}
			}
			logger.Info("MCP Server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8081, "Port to listen on (only for SSE)")
}
