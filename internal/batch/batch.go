// Package batch orchestrates a synchronization run over the movie
// library: fetch all records, derive the new folder name per movie,
// rename on disk, write the change back, and trigger a rescan.
//
// Processing is strictly sequential. Per-item failures are logged and
// skipped; only the initial library fetch is fatal for the run.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/vmunix/editionarr/internal/edition"
	"github.com/vmunix/editionarr/internal/radarr"
	"github.com/vmunix/editionarr/internal/renamer"
)

// MovieService is the subset of the Radarr client the runner needs.
type MovieService interface {
	Movies(ctx context.Context) ([]radarr.Movie, error)
	UpdateMoviePath(ctx context.Context, m *radarr.Movie, newPath string) error
	RefreshMovie(ctx context.Context, id int64) error
}

// Options configures a run. All fields are read-only for the run's
// duration.
type Options struct {
	Table                      edition.Table
	RatingSource               string
	IncludeRatings             bool
	OverwriteExisting          bool
	ForceUpdateOnRenameFailure bool

	// Delay between items, giving the server room between writes.
	Delay time.Duration

	// DryRun plans every rename without touching the filesystem or the
	// server.
	DryRun bool
}

// Runner executes batch runs against one library.
type Runner struct {
	client MovieService
	opts   Options
	logger *slog.Logger
}

// NewRunner creates a runner.
func NewRunner(client MovieService, opts Options, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Table == nil {
		opts.Table = edition.DefaultTable()
	}
	return &Runner{
		client: client,
		opts:   opts,
		logger: logger,
	}
}

// Sync adds or updates the edition block on every movie folder.
func (r *Runner) Sync(ctx context.Context) (*Summary, error) {
	return r.run(ctx, ModeSync)
}

// Strip removes the edition block from every movie folder that has one.
func (r *Runner) Strip(ctx context.Context) (*Summary, error) {
	return r.run(ctx, ModeStrip)
}

func (r *Runner) run(ctx context.Context, mode string) (*Summary, error) {
	summary := &Summary{
		RunID:     uuid.NewString(),
		Mode:      mode,
		StartedAt: time.Now(),
	}
	logger := r.logger.With("run_id", summary.RunID, "mode", mode)

	movies, err := r.client.Movies(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch library: %w", err)
	}
	logger.Info("fetched movie library", "count", len(movies))

	for i := range movies {
		if i > 0 && r.opts.Delay > 0 && !r.opts.DryRun {
			select {
			case <-ctx.Done():
				summary.FinishedAt = time.Now()
				return summary, ctx.Err()
			case <-time.After(r.opts.Delay):
			}
		}

		summary.Results = append(summary.Results, r.processMovie(ctx, logger, &movies[i], mode))
	}

	summary.FinishedAt = time.Now()
	logger.Info("run finished",
		"total", len(summary.Results),
		"renamed", summary.Count(OutcomeRenamed)+summary.Count(OutcomeForced),
		"unchanged", summary.Count(OutcomeUnchanged),
		"skipped", summary.Count(OutcomeSkipped),
		"failed", summary.FailedCount(),
	)
	return summary, nil
}

// processMovie walks one movie through the per-item states: build the
// new name, rename on disk, update the record, trigger a refresh.
func (r *Runner) processMovie(ctx context.Context, logger *slog.Logger, m *radarr.Movie, mode string) Result {
	res := Result{MovieID: m.ID, Title: m.Title}
	logger = logger.With("movie_id", m.ID, "title", m.Title)

	root := m.RootFolderPath
	folder := m.FolderName
	if root == "" || folder == "" {
		logger.Error("missing rootFolderPath or folderName, skipping")
		res.Outcome = OutcomeSkipped
		return res
	}
	// Radarr reports folderName as an absolute path; only the base name
	// matters here.
	if filepath.IsAbs(folder) {
		folder = filepath.Base(folder)
	}

	currentPath := filepath.Join(root, folder)
	res.OldPath = currentPath
	if _, err := os.Stat(currentPath); err != nil {
		logger.Error("current folder not found on disk, skipping", "path", currentPath)
		res.Outcome = OutcomeSkipped
		return res
	}

	newName, ok := r.newFolderName(logger, m, folder, mode)
	if !ok {
		res.Outcome = OutcomeSkipped
		return res
	}
	if newName == folder {
		logger.Info("folder name already up to date")
		res.Outcome = OutcomeUnchanged
		return res
	}

	newPath := filepath.Join(root, newName)
	res.NewPath = newPath
	logger.Info("renaming folder", "from", currentPath, "to", newPath)

	if r.opts.DryRun {
		res.Outcome = OutcomePlanned
		return res
	}

	renamedPath, err := renamer.RenameDir(currentPath, newName)
	forced := false
	if err != nil {
		if !r.opts.ForceUpdateOnRenameFailure {
			logger.Error("rename failed, skipping record update", "error", err)
			res.Outcome = OutcomeRenameFailed
			res.Err = err
			return res
		}
		logger.Warn("rename failed, forcing record update with intended path", "error", err)
		renamedPath = newPath
		forced = true
	}

	if err := r.client.UpdateMoviePath(ctx, m, renamedPath); err != nil {
		logger.Error("record update failed", "error", err)
		res.Outcome = OutcomeUpdateFailed
		res.Err = err
		return res
	}
	logger.Info("updated record", "path", renamedPath)

	if err := r.client.RefreshMovie(ctx, m.ID); err != nil {
		// Refresh is fire-and-forget; a failure never fails the item.
		logger.Warn("refresh trigger failed", "error", err)
	} else {
		logger.Info("triggered refresh")
	}

	if forced {
		res.Outcome = OutcomeForced
	} else {
		res.Outcome = OutcomeRenamed
	}
	return res
}

// newFolderName derives the desired folder name for the mode, or false
// when the movie should be left untouched.
func (r *Runner) newFolderName(logger *slog.Logger, m *radarr.Movie, folder, mode string) (string, bool) {
	if mode == ModeStrip {
		if !edition.HasToken(folder) {
			logger.Info("no edition block present, skipping")
			return "", false
		}
		return edition.Strip(folder), true
	}

	if q := m.QualityName(); q != "" {
		if _, known := r.opts.Table[q]; !known {
			if nearest, ok := r.opts.Table.Nearest(q); ok {
				logger.Debug("quality not in translation table", "quality", q, "nearest", nearest)
			}
		}
	}

	token := edition.Token(m, r.opts.Table, edition.Options{
		RatingSource:  r.opts.RatingSource,
		IncludeRating: r.opts.IncludeRatings,
	})
	if !r.opts.OverwriteExisting && edition.HasToken(folder) {
		logger.Info("existing edition block kept, skipping")
		return "", false
	}
	return edition.Apply(folder, token, r.opts.OverwriteExisting), true
}
