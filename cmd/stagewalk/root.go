package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stagewalk",
	Short: "Stagewalk replays graph traversals as step-by-step animations",
	Long:  `Stagewalk takes a finished graph traversal and reveals it step by step on a render surface: a terminal, a browser over WebSocket, or agent tooling over MCP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
}
