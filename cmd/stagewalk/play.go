package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stagewalk/stagewalk"
	"github.com/stagewalk/stagewalk/internal/logging"
	"github.com/stagewalk/stagewalk/pkg/adapters/term"
	"github.com/stagewalk/stagewalk/pkg/dataset"
	"github.com/stagewalk/stagewalk/pkg/domain"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play <dataset-file>",
	Short: "Replay a traversal dataset in the terminal",
	Long:  `Loads a traversal dataset (YAML or JSON) and animates it on the terminal, one reveal per step. Use --skip to print the final frame immediately.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		skip, _ := cmd.Flags().GetBool("skip")
		descriptions, _ := cmd.Flags().GetBool("descriptions")
		levelName, _ := cmd.Flags().GetString("log-level")

		if err := runPlay(args[0], skip, descriptions, levelName); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().Bool("skip", false, "Reveal the final frame immediately instead of animating")
	playCmd.Flags().Bool("descriptions", false, "Render node descriptions as markdown")
}

func runPlay(path string, skip, descriptions bool, levelName string) error {
	ds, err := dataset.FromFile(path)
	if err != nil {
		return err
	}

	logger := logging.New(logging.ParseLevel(levelName))

	surface := term.New(
		term.WithDescriptions(descriptions),
		term.WithLogger(logger),
	)

	eng := stagewalk.New(surface, stagewalk.WithLogger(logger))
	defer eng.Close()

	done := make(chan struct{})
	progress := eng.Play(ds, skip, func() { close(done) })
	if progress.State == domain.StateIdle {
		return fmt.Errorf("dataset has no nodes, nothing to play")
	}

	<-done
	return nil
}
