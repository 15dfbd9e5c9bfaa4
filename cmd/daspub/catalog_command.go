package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"daspub/internal/archive"
	"daspub/internal/catalog"
	"daspub/internal/config"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	var dbPath string

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Export and inspect the SQLite catalog",
	}
	catalogCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Catalog database path (defaults to catalog.path)")

	catalogCmd.AddCommand(newCatalogExportCommand(ctx, &dbPath))
	catalogCmd.AddCommand(newCatalogRunsCommand(ctx, &dbPath))
	return catalogCmd
}

func openCatalog(cmd *cobra.Command, ctx *commandContext, dbPath string) (*catalog.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	path := strings.TrimSpace(dbPath)
	if path == "" {
		return catalog.OpenFromConfig(cmd.Context(), cfg)
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	return catalog.Open(cmd.Context(), expanded)
}

func newCatalogExportCommand(ctx *commandContext, dbPath *string) *cobra.Command {
	var keep int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a snapshot of every configured archive to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			archives, err := ctx.openArchives(cmd)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			store, err := openCatalog(cmd, ctx, *dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.Export(cmd.Context(), archive.NewMemo(), archives, logger)
			if errors.Is(err, catalog.ErrLocked) {
				return fmt.Errorf("%w (lock file %s)", err, store.LockPath())
			}
			if err != nil {
				return fmt.Errorf("export catalog: %w", err)
			}
			var pruned int64
			if keep > 0 {
				if pruned, err = store.Prune(cmd.Context(), keep); err != nil {
					return err
				}
			}

			if jsonOutput {
				return writeJSON(cmd, run)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Exported run %s to %s\n", run.ID, store.Path())
			fmt.Fprintf(out, "%d courses (%d complete, %d partial, %d incomplete, %d error), %d assignments, %d submissions\n",
				run.Tally.Total, run.Tally.Complete, run.Tally.Partial, run.Tally.Incomplete, run.Tally.Error,
				run.Assignments, run.Submissions)
			if pruned > 0 {
				fmt.Fprintf(out, "Pruned %d older runs\n", pruned)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&keep, "keep", 0, "Keep only the newest N runs after exporting (0 keeps all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newCatalogRunsCommand(ctx *commandContext, dbPath *string) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List catalog exports",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openCatalog(cmd, ctx, *dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Runs(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, runs)
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No catalog runs")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				finished := "-"
				if run.FinishedAt != nil {
					finished = run.FinishedAt.Local().Format(time.DateTime)
				}
				rows = append(rows, []string{
					run.ID,
					finished,
					strconv.Itoa(run.Tally.Total),
					strconv.Itoa(run.Tally.Complete),
					strconv.Itoa(run.Submissions),
				})
			}
			fmt.Fprintln(out, renderTable(tableSpec{
				Headers: []string{"Run", "Finished", "Courses", "Complete", "Submissions"},
				Rows:    rows,
				Aligns:  []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
			}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
