package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"daspub/internal/config"
	"daspub/internal/markup"
)

func newMarkupCommand() *cobra.Command {
	var jsonOutput bool
	var listSection string

	cmd := &cobra.Command{
		Use:         "markup <file>",
		Short:       "Show the sections parsed from a description file",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			sections, err := markup.ParseFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			if listSection != "" {
				items := sections.List(listSection)
				if jsonOutput {
					return writeJSON(cmd, items)
				}
				for _, item := range items {
					fmt.Fprintln(cmd.OutOrStdout(), item)
				}
				return nil
			}
			if jsonOutput {
				return writeJSON(cmd, sections)
			}

			out := cmd.OutOrStdout()
			titles := make([]string, 0, len(sections))
			for title := range sections {
				titles = append(titles, title)
			}
			slices.Sort(titles)
			for _, title := range titles {
				label := title
				if label == "" {
					label = "(untitled)"
				}
				fmt.Fprintf(out, "%s%s\n", markup.TitleMarker, label)
				fmt.Fprintf(out, "%s%s\n", statusIndent, sections.Get(title))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&listSection, "list", "", "Print one section as a list split on '*'")
	return cmd
}
