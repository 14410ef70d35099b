// Package journal persists run history in a local SQLite database so
// past runs can be audited from the CLI.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	mode        TEXT NOT NULL,
	started_at  TIMESTAMP NOT NULL,
	finished_at TIMESTAMP NOT NULL,
	total       INTEGER NOT NULL,
	renamed     INTEGER NOT NULL,
	skipped     INTEGER NOT NULL,
	failed      INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS run_items (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id   TEXT NOT NULL REFERENCES runs(id),
	movie_id INTEGER NOT NULL,
	title    TEXT NOT NULL,
	old_path TEXT NOT NULL,
	new_path TEXT NOT NULL,
	outcome  TEXT NOT NULL,
	error    TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_run_items_run ON run_items(run_id);
`

// Run is one recorded batch run.
type Run struct {
	ID         string
	Mode       string
	StartedAt  time.Time
	FinishedAt time.Time
	Total      int
	Renamed    int
	Skipped    int
	Failed     int
}

// Item is one recorded per-movie outcome.
type Item struct {
	MovieID int64
	Title   string
	OldPath string
	NewPath string
	Outcome string
	Error   string
}

// Store provides access to the run journal.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun writes a run and its items in one transaction.
func (s *Store) RecordRun(run *Run, items []Item) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO runs (id, mode, started_at, finished_at, total, renamed, skipped, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Mode, run.StartedAt, run.FinishedAt, run.Total, run.Renamed, run.Skipped, run.Failed,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, item := range items {
		_, err = tx.Exec(`
			INSERT INTO run_items (run_id, movie_id, title, old_path, new_path, outcome, error)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, item.MovieID, item.Title, item.OldPath, item.NewPath, item.Outcome, item.Error,
		)
		if err != nil {
			return fmt.Errorf("insert run item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT id, mode, started_at, finished_at, total, renamed, skipped, failed
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Mode, &r.StartedAt, &r.FinishedAt, &r.Total, &r.Renamed, &r.Skipped, &r.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// RunItems returns the recorded items of one run in insertion order.
func (s *Store) RunItems(runID string) ([]Item, error) {
	rows, err := s.db.Query(`
		SELECT movie_id, title, old_path, new_path, outcome, error
		FROM run_items WHERE run_id = ? ORDER BY id`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list run items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.MovieID, &it.Title, &it.OldPath, &it.NewPath, &it.Outcome, &it.Error); err != nil {
			return nil, fmt.Errorf("scan run item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list run items: %w", err)
	}
	return items, nil
}
