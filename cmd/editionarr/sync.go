package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/vmunix/editionarr/internal/batch"
	"github.com/vmunix/editionarr/internal/journal"
)

func init() {
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Add or update the edition block on every movie folder",
		Long:  "Builds an {edition-...} token from each movie's quality and rating, renames the folder on disk, updates the Radarr record, and triggers a rescan.",
		RunE:  runSync,
	}
	syncCmd.Flags().Bool("dry-run", false, "Plan renames without touching disk or Radarr")

	stripCmd := &cobra.Command{
		Use:   "strip",
		Short: "Remove the edition block from every movie folder",
		RunE:  runStrip,
	}
	stripCmd.Flags().Bool("dry-run", false, "Plan renames without touching disk or Radarr")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(stripCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	return runBatch(cmd, batch.ModeSync)
}

func runStrip(cmd *cobra.Command, args []string) error {
	return runBatch(cmd, batch.ModeStrip)
}

func runBatch(cmd *cobra.Command, mode string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	a, err := newApp()
	if err != nil {
		return err
	}

	// One renamer at a time against the same library.
	if !dryRun {
		lock := flock.New(a.cfg.Sync.LockPath)
		ok, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("acquire lock: %w", err)
		}
		if !ok {
			return fmt.Errorf("another run is in progress (lock held at %s)", a.cfg.Sync.LockPath)
		}
		defer func() { _ = lock.Unlock() }()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := batch.NewRunner(a.client, batch.Options{
		Table:                      a.table,
		RatingSource:               a.cfg.Edition.RatingSource,
		IncludeRatings:             a.cfg.Edition.IncludeRatings,
		OverwriteExisting:          a.cfg.Edition.OverwriteExisting,
		ForceUpdateOnRenameFailure: a.cfg.Edition.ForceUpdateOnRenameFailure,
		Delay:                      time.Duration(a.cfg.Sync.DelayMs) * time.Millisecond,
		DryRun:                     dryRun,
	}, a.logger)

	var summary *batch.Summary
	var runErr error
	if mode == batch.ModeStrip {
		summary, runErr = runner.Strip(ctx)
	} else {
		summary, runErr = runner.Sync(ctx)
	}

	if summary != nil && !dryRun {
		recordRun(a, summary)
	}
	if summary != nil {
		printSummary(summary)
	}
	return runErr
}

// recordRun writes the summary to the journal when one is configured.
// Journal failures never fail the run.
func recordRun(a *app, summary *batch.Summary) {
	if a.cfg.Journal.Path == "" {
		return
	}

	store, err := journal.Open(a.cfg.Journal.Path)
	if err != nil {
		a.logger.Warn("journal unavailable", "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	run := &journal.Run{
		ID:         summary.RunID,
		Mode:       summary.Mode,
		StartedAt:  summary.StartedAt,
		FinishedAt: summary.FinishedAt,
		Total:      len(summary.Results),
		Renamed:    summary.Count(batch.OutcomeRenamed) + summary.Count(batch.OutcomeForced),
		Skipped:    summary.SkippedCount(),
		Failed:     summary.FailedCount(),
	}

	items := make([]journal.Item, 0, len(summary.Results))
	for _, r := range summary.Results {
		item := journal.Item{
			MovieID: r.MovieID,
			Title:   r.Title,
			OldPath: r.OldPath,
			NewPath: r.NewPath,
			Outcome: string(r.Outcome),
		}
		if r.Err != nil {
			item.Error = r.Err.Error()
		}
		items = append(items, item)
	}

	if err := store.RecordRun(run, items); err != nil {
		a.logger.Warn("journal write failed", "error", err)
	}
}

func printSummary(summary *batch.Summary) {
	renamed := summary.Count(batch.OutcomeRenamed) + summary.Count(batch.OutcomeForced)
	planned := summary.Count(batch.OutcomePlanned)
	fmt.Printf("\nRun %s (%s): %d movies", summary.RunID, summary.Mode, len(summary.Results))
	if planned > 0 {
		fmt.Printf(", %d planned", planned)
	}
	fmt.Printf(", %d renamed, %d skipped, %d failed\n",
		renamed, summary.SkippedCount(), summary.FailedCount())
}
