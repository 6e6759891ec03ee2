package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stagewalk/stagewalk/internal/presentation/graph"
	"github.com/stagewalk/stagewalk/pkg/dataset"
	"github.com/stagewalk/stagewalk/pkg/domain"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <dataset-file>",
	Short: "Export a dataset as a Mermaid diagram",
	Long:  `Loads a dataset (YAML or JSON) and outputs a Mermaid diagram (graph TD) of its nodes and edges. With --at, nodes revealed up to that step are styled as visited.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ds, err := dataset.FromFile(args[0])
		if err != nil {
			fmt.Printf("Error loading dataset: %v\n", err)
			os.Exit(1)
		}

		var overlay *graph.Overlay
		if at, _ := cmd.Flags().GetInt("at"); at >= 0 {
			prepared, ok := dataset.Prepare(ds)
			if !ok {
				fmt.Println("Error: dataset has no nodes")
				os.Exit(1)
			}
			overlay = overlayAt(prepared, at)
		}

		fmt.Print(graph.GenerateMermaid(ds, overlay))
	},
}

func init() {
	exportCmd.Flags().Int("at", -1, "style elements revealed up to this step (last one active)")
	rootCmd.AddCommand(exportCmd)
}

// overlayAt replays the reveal order up to step and builds the matching
// overlay. Only node reveals are styled (Mermaid class statements target
// nodes); the most recently revealed node is marked active.
func overlayAt(p *dataset.Prepared, at int) *graph.Overlay {
	if at > p.TotalSteps() {
		at = p.TotalSteps()
	}

	overlay := &graph.Overlay{}
	for i := 0; i < at; i++ {
		if p.Steps[i].Kind == domain.StepNode {
			overlay.Revealed = append(overlay.Revealed, p.Steps[i].ID)
		}
	}
	if n := len(overlay.Revealed); n > 0 {
		overlay.Active = overlay.Revealed[n-1]
		overlay.Revealed = overlay.Revealed[:n-1]
	}
	return overlay
}
