package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

type classification struct {
	Path     string `json:"path"`
	Category string `json:"category"`
}

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "classify <path>...",
		Short: "Show how archive entries are classified",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := ctx.layout(cmd)
			if err != nil {
				return err
			}
			classifier := layout.Classifier()

			results := make([]classification, 0, len(args))
			for _, arg := range args {
				isDir := false
				if info, err := os.Stat(arg); err == nil {
					isDir = info.IsDir()
				}
				results = append(results, classification{
					Path:     arg,
					Category: classifier.Classify(filepath.Base(arg), isDir).String(),
				})
			}
			if jsonOutput {
				return writeJSON(cmd, results)
			}
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.Path, r.Category})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(tableSpec{Headers: []string{"Path", "Category"}, Rows: rows}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
