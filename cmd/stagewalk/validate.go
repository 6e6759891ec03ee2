package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stagewalk/stagewalk/pkg/dataset"
)

var validateCmd = &cobra.Command{
	Use:   "validate <dataset-file>",
	Short: "Check a traversal dataset for consistency",
	Long:  `Loads a dataset (YAML or JSON) and reports duplicate ids, dangling edge endpoints, and order entries that reference unknown elements.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(args[0]); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Dataset is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	ds, err := dataset.FromFile(path)
	if err != nil {
		return err
	}

	findings := dataset.Lint(ds)
	if len(findings) == 0 {
		return nil
	}

	for _, f := range findings {
		fmt.Printf("  - %s\n", f)
	}
	return fmt.Errorf("%d problem(s) found", len(findings))
}
