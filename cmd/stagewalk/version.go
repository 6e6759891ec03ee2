package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stagewalk/stagewalk"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of stagewalk",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("stagewalk version %s\n", strings.TrimSpace(stagewalk.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
