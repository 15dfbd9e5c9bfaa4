package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"daspub/internal/archive"
	"daspub/internal/report"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var showReasons bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show publication status for every course",
		RunE: func(cmd *cobra.Command, args []string) error {
			archives, err := ctx.openArchives(cmd)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			rep, err := report.Build(cmd.Context(), archive.NewMemo(), archives, logger)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, rep)
			}
			renderStatusReport(cmd, rep, showReasons)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&showReasons, "reasons", "r", false, "Include the reason for each non-complete status")
	return cmd
}

func renderStatusReport(cmd *cobra.Command, rep report.Report, showReasons bool) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	if len(rep.Entries) == 0 {
		fmt.Fprintln(out, "No courses found")
		return
	}

	headers := []string{"Program", "Course", "Status"}
	if showReasons {
		headers = append(headers, "Reason")
	}
	rows := make([][]string, 0, len(rep.Entries))
	for _, entry := range rep.Entries {
		row := []string{entry.Program, entry.Course, statusCell(entry.Verdict.Status, colorize)}
		if showReasons {
			row = append(row, entry.Verdict.Reason)
		}
		rows = append(rows, row)
	}
	fmt.Fprintln(out, renderTable(tableSpec{Headers: headers, Rows: rows, MaxWidth: 60}))
	fmt.Fprintln(out)

	for _, line := range renderSectionHeader("Summary", colorize) {
		fmt.Fprintln(out, line)
	}
	tally := rep.Tally
	lines := []struct {
		label string
		kind  statusKind
		count int
	}{
		{"Complete", statusOK, tally.Complete},
		{"Partial", statusWarn, tally.Partial},
		{"Incomplete", statusInfo, tally.Incomplete},
		{"Error", statusError, tally.Error},
	}
	for _, line := range lines {
		if line.count == 0 && line.kind == statusError {
			continue
		}
		fmt.Fprintln(out, renderStatusLine(line.label, line.kind, strconv.Itoa(line.count), colorize))
	}
	fmt.Fprintf(out, "%s%-*s %d courses, %d%% complete\n", statusIndent, statusLabelWidth, "Total:", tally.Total, rep.Percent)
}
