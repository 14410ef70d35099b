package batch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/editionarr/internal/batch/mocks"
	"github.com/vmunix/editionarr/internal/radarr"
	"github.com/vmunix/editionarr/internal/renamer"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testMovie builds a Movie from a Radarr-shaped payload rooted at root.
func testMovie(t *testing.T, id int64, title, root, folder, quality string, tmdbRating float64) radarr.Movie {
	t.Helper()

	payload := map[string]any{
		"id":             id,
		"title":          title,
		"rootFolderPath": root,
		"folderName":     filepath.Join(root, folder),
		"path":           filepath.Join(root, folder),
		"monitored":      true,
	}
	if quality != "" {
		payload["movieFile"] = map[string]any{
			"quality": map[string]any{
				"quality": map[string]any{"name": quality},
			},
		}
	}
	if tmdbRating != 0 {
		payload["ratings"] = map[string]any{
			"tmdb": map[string]any{"value": tmdbRating},
		}
	}

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var m radarr.Movie
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func mkFolder(t *testing.T, root, name string) string {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.Mkdir(path, 0755))
	return path
}

func defaultOptions() Options {
	return Options{
		RatingSource:      "tmdb",
		IncludeRatings:    true,
		OverwriteExisting: true,
	}
}

func TestSync_RenamesUpdatesAndRefreshes(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMovieService(ctrl)

	root := t.TempDir()
	mkFolder(t, root, "Movie Name (2020)")
	m := testMovie(t, 42, "Movie Name", root, "Movie Name (2020)", "WEBDL-720p", 4.44)
	wantPath := filepath.Join(root, "Movie Name (2020) {edition-4.4 - 720p}")

	client.EXPECT().Movies(gomock.Any()).Return([]radarr.Movie{m}, nil)
	client.EXPECT().UpdateMoviePath(gomock.Any(), gomock.Any(), wantPath).Return(nil)
	client.EXPECT().RefreshMovie(gomock.Any(), int64(42)).Return(nil)

	runner := NewRunner(client, defaultOptions(), testLogger())
	summary, err := runner.Sync(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Results, 1)
	res := summary.Results[0]
	assert.Equal(t, OutcomeRenamed, res.Outcome)
	assert.Equal(t, wantPath, res.NewPath)

	_, statErr := os.Stat(wantPath)
	assert.NoError(t, statErr, "folder should be renamed on disk")
}

func TestSync_ReplacesExistingEditionBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMovieService(ctrl)

	root := t.TempDir()
	mkFolder(t, root, "Movie Name (2020) {edition-3.0 - 1080p}")
	m := testMovie(t, 7, "Movie Name", root, "Movie Name (2020) {edition-3.0 - 1080p}", "WEBDL-720p", 4.44)
	wantPath := filepath.Join(root, "Movie Name (2020) {edition-4.4 - 720p}")

	client.EXPECT().Movies(gomock.Any()).Return([]radarr.Movie{m}, nil)
	client.EXPECT().UpdateMoviePath(gomock.Any(), gomock.Any(), wantPath).Return(nil)
	client.EXPECT().RefreshMovie(gomock.Any(), int64(7)).Return(nil)

	runner := NewRunner(client, defaultOptions(), testLogger())
	summary, err := runner.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeRenamed, summary.Results[0].Outcome)

	_, statErr := os.Stat(wantPath)
	assert.NoError(t, statErr)
}

func TestSync_RenameFailureSkipsRemoteUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMovieService(ctrl)

	root := t.TempDir()
	mkFolder(t, root, "Movie A (2020)")
	// Target already exists, so the rename must fail.
	mkFolder(t, root, "Movie A (2020) {edition-4.4 - 720p}")
	mkFolder(t, root, "Movie B (2021)")

	failing := testMovie(t, 1, "Movie A", root, "Movie A (2020)", "WEBDL-720p", 4.44)
	next := testMovie(t, 2, "Movie B", root, "Movie B (2021)", "Bluray-1080p", 8.0)
	nextPath := filepath.Join(root, "Movie B (2021) {edition-8.0 - 1080p}")

	client.EXPECT().Movies(gomock.Any()).Return([]radarr.Movie{failing, next}, nil)
	// No update or refresh for the failing movie; the batch continues.
	client.EXPECT().UpdateMoviePath(gomock.Any(), gomock.Any(), nextPath).Return(nil)
	client.EXPECT().RefreshMovie(gomock.Any(), int64(2)).Return(nil)

	runner := NewRunner(client, defaultOptions(), testLogger())
	summary, err := runner.Sync(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Results, 2)
	assert.Equal(t, OutcomeRenameFailed, summary.Results[0].Outcome)
	assert.ErrorIs(t, summary.Results[0].Err, renamer.ErrTargetExists)
	assert.Equal(t, OutcomeRenamed, summary.Results[1].Outcome)
}

func TestSync_ForcedUpdateOnRenameFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMovieService(ctrl)

	root := t.TempDir()
	mkFolder(t, root, "Movie Name (2020)")
	mkFolder(t, root, "Movie Name (2020) {edition-4.4 - 720p}")
	m := testMovie(t, 9, "Movie Name", root, "Movie Name (2020)", "WEBDL-720p", 4.44)
	intendedPath := filepath.Join(root, "Movie Name (2020) {edition-4.4 - 720p}")

	client.EXPECT().Movies(gomock.Any()).Return([]radarr.Movie{m}, nil)
	client.EXPECT().UpdateMoviePath(gomock.Any(), gomock.Any(), intendedPath).Return(nil)
	client.EXPECT().RefreshMovie(gomock.Any(), int64(9)).Return(nil)

	opts := defaultOptions()
	opts.ForceUpdateOnRenameFailure = true
	runner := NewRunner(client, opts, testLogger())
	summary, err := runner.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeForced, summary.Results[0].Outcome)
}

func TestSync_UpdateFailureSkipsRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMovieService(ctrl)

	root := t.TempDir()
	mkFolder(t, root, "Movie A (2020)")
	mkFolder(t, root, "Movie B (2021)")

	first := testMovie(t, 1, "Movie A", root, "Movie A (2020)", "WEBDL-720p", 4.44)
	second := testMovie(t, 2, "Movie B", root, "Movie B (2021)", "WEBDL-720p", 5.0)

	client.EXPECT().Movies(gomock.Any()).Return([]radarr.Movie{first, second}, nil)
	client.EXPECT().UpdateMoviePath(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("radarr: unexpected status 500"))
	// No refresh for the failed update; processing continues.
	client.EXPECT().UpdateMoviePath(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	client.EXPECT().RefreshMovie(gomock.Any(), int64(2)).Return(nil)

	runner := NewRunner(client, defaultOptions(), testLogger())
	summary, err := runner.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeUpdateFailed, summary.Results[0].Outcome)
	assert.Equal(t, OutcomeRenamed, summary.Results[1].Outcome)
}

func TestSync_RefreshFailureDoesNotFailItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMovieService(ctrl)

	root := t.TempDir()
	mkFolder(t, root, "Movie Name (2020)")
	m := testMovie(t, 3, "Movie Name", root, "Movie Name (2020)", "WEBDL-720p", 4.44)

	client.EXPECT().Movies(gomock.Any()).Return([]radarr.Movie{m}, nil)
	client.EXPECT().UpdateMoviePath(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	client.EXPECT().RefreshMovie(gomock.Any(), int64(3)).Return(errors.New("command queue full"))

	runner := NewRunner(client, defaultOptions(), testLogger())
	summary, err := runner.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeRenamed, summary.Results[0].Outcome)
}

func TestSync_UnchangedFolderSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMovieService(ctrl)

	root := t.TempDir()
	folder := "Movie Name (2020) {edition-4.4 - 720p}"
	mkFolder(t, root, folder)
	m := testMovie(t, 4, "Movie Name", root, folder, "WEBDL-720p", 4.44)

	client.EXPECT().Movies(gomock.Any()).Return([]radarr.Movie{m}, nil)

	runner := NewRunner(client, defaultOptions(), testLogger())
	summary, err := runner.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnchanged, summary.Results[0].Outcome)
}

func TestSync_ExistingBlockKeptWhenOverwriteDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMovieService(ctrl)

	root := t.TempDir()
	folder := "Movie Name (2020) {edition-3.0 - 1080p}"
	mkFolder(t, root, folder)
	m := testMovie(t, 5, "Movie Name", root, folder, "WEBDL-720p", 4.44)

	client.EXPECT().Movies(gomock.Any()).Return([]radarr.Movie{m}, nil)

	opts := defaultOptions()
	opts.OverwriteExisting = false
	runner := NewRunner(client, opts, testLogger())
	summary, err := runner.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, summary.Results[0].Outcome)

	_, statErr := os.Stat(filepath.Join(root, folder))
	assert.NoError(t, statErr, "folder must be untouched")
}

func TestSync_MissingFolderOnDiskSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMovieService(ctrl)

	root := t.TempDir()
	// No folder created on disk.
	m := testMovie(t, 6, "Movie Name", root, "Movie Name (2020)", "WEBDL-720p", 4.44)

	client.EXPECT().Movies(gomock.Any()).Return([]radarr.Movie{m}, nil)

	runner := NewRunner(client, defaultOptions(), testLogger())
	summary, err := runner.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, summary.Results[0].Outcome)
}

func TestSync_FetchFailureIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMovieService(ctrl)

	client.EXPECT().Movies(gomock.Any()).Return(nil, errors.New("connection refused"))

	runner := NewRunner(client, defaultOptions(), testLogger())
	summary, err := runner.Sync(context.Background())
	require.Error(t, err)
	assert.Nil(t, summary)
}

func TestSync_DryRunTouchesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMovieService(ctrl)

	root := t.TempDir()
	mkFolder(t, root, "Movie Name (2020)")
	m := testMovie(t, 8, "Movie Name", root, "Movie Name (2020)", "WEBDL-720p", 4.44)

	client.EXPECT().Movies(gomock.Any()).Return([]radarr.Movie{m}, nil)

	opts := defaultOptions()
	opts.DryRun = true
	runner := NewRunner(client, opts, testLogger())
	summary, err := runner.Sync(context.Background())
	require.NoError(t, err)

	res := summary.Results[0]
	assert.Equal(t, OutcomePlanned, res.Outcome)
	assert.Equal(t, filepath.Join(root, "Movie Name (2020) {edition-4.4 - 720p}"), res.NewPath)

	_, statErr := os.Stat(filepath.Join(root, "Movie Name (2020)"))
	assert.NoError(t, statErr, "dry run must not rename")
}

func TestStrip_RemovesEditionBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockMovieService(ctrl)

	root := t.TempDir()
	mkFolder(t, root, "Movie A (2020) {edition-4.4 - 720p}")
	mkFolder(t, root, "Movie B (2021)")

	tagged := testMovie(t, 1, "Movie A", root, "Movie A (2020) {edition-4.4 - 720p}", "WEBDL-720p", 4.44)
	plain := testMovie(t, 2, "Movie B", root, "Movie B (2021)", "WEBDL-720p", 5.0)
	wantPath := filepath.Join(root, "Movie A (2020)")

	client.EXPECT().Movies(gomock.Any()).Return([]radarr.Movie{tagged, plain}, nil)
	client.EXPECT().UpdateMoviePath(gomock.Any(), gomock.Any(), wantPath).Return(nil)
	client.EXPECT().RefreshMovie(gomock.Any(), int64(1)).Return(nil)

	runner := NewRunner(client, defaultOptions(), testLogger())
	summary, err := runner.Strip(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.Results, 2)
	assert.Equal(t, OutcomeRenamed, summary.Results[0].Outcome)
	assert.Equal(t, OutcomeSkipped, summary.Results[1].Outcome)

	_, statErr := os.Stat(wantPath)
	assert.NoError(t, statErr)
}

func TestSummary_Counts(t *testing.T) {
	s := &Summary{Results: []Result{
		{Outcome: OutcomeRenamed},
		{Outcome: OutcomeForced},
		{Outcome: OutcomeUnchanged},
		{Outcome: OutcomeSkipped},
		{Outcome: OutcomeRenameFailed},
		{Outcome: OutcomeUpdateFailed},
	}}

	assert.Equal(t, 1, s.Count(OutcomeRenamed))
	assert.Equal(t, 2, s.FailedCount())
	assert.Equal(t, 2, s.SkippedCount())
}
