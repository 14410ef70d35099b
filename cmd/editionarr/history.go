package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/vmunix/editionarr/internal/journal"
)

func init() {
	historyCmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show past runs from the journal",
		Long:  "Lists recent runs recorded in the journal, or the per-movie outcomes of one run when a run id is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHistory,
	}
	historyCmd.Flags().IntP("limit", "l", 20, "Maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	a, err := newApp()
	if err != nil {
		return err
	}
	if a.cfg.Journal.Path == "" {
		return fmt.Errorf("no journal configured (set journal.path)")
	}

	store, err := journal.Open(a.cfg.Journal.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if len(args) == 1 {
		return printRunItems(store, args[0])
	}
	return printRuns(store, limit)
}

func newHistoryTable() table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleRounded)
	return tw
}

func printRuns(store *journal.Store, limit int) error {
	runs, err := store.RecentRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	tw := newHistoryTable()
	tw.AppendHeader(table.Row{"RUN", "MODE", "STARTED", "TOOK", "TOTAL", "RENAMED", "SKIPPED", "FAILED"})
	for _, r := range runs {
		tw.AppendRow(table.Row{
			r.ID,
			r.Mode,
			r.StartedAt.Format(time.DateTime),
			r.FinishedAt.Sub(r.StartedAt).Round(time.Second),
			r.Total,
			r.Renamed,
			r.Skipped,
			r.Failed,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
	})
	tw.Render()
	return nil
}

func printRunItems(store *journal.Store, runID string) error {
	items, err := store.RunItems(runID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Printf("No items recorded for run %s.\n", runID)
		return nil
	}

	tw := newHistoryTable()
	tw.AppendHeader(table.Row{"ID", "TITLE", "OUTCOME", "NEW FOLDER", "ERROR"})
	for _, it := range items {
		newName := ""
		if it.NewPath != "" {
			newName = filepath.Base(it.NewPath)
		}
		tw.AppendRow(table.Row{it.MovieID, it.Title, it.Outcome, newName, it.Error})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
	})
	tw.Render()
	return nil
}
