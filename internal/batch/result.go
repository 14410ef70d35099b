package batch

import "time"

// Run modes.
const (
	ModeSync  = "sync"
	ModeStrip = "strip"
)

// Outcome classifies what happened to one movie.
type Outcome string

const (
	// OutcomeRenamed: folder renamed and record updated.
	OutcomeRenamed Outcome = "renamed"

	// OutcomeForced: rename failed but the record was updated with the
	// intended path for manual reconciliation.
	OutcomeForced Outcome = "forced-update"

	// OutcomeUnchanged: folder name already matched.
	OutcomeUnchanged Outcome = "unchanged"

	// OutcomeSkipped: item not processable (missing fields, folder not
	// on disk, or an existing edition block kept).
	OutcomeSkipped Outcome = "skipped"

	// OutcomePlanned: dry run, rename computed but not performed.
	OutcomePlanned Outcome = "planned"

	// OutcomeRenameFailed: filesystem rename failed, record untouched.
	OutcomeRenameFailed Outcome = "rename-failed"

	// OutcomeUpdateFailed: folder renamed but the record update failed;
	// no refresh was attempted.
	OutcomeUpdateFailed Outcome = "update-failed"
)

// Result is the outcome of one movie.
type Result struct {
	MovieID int64
	Title   string
	OldPath string
	NewPath string
	Outcome Outcome
	Err     error
}

// Summary aggregates the results of one run.
type Summary struct {
	RunID      string
	Mode       string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []Result
}

// Count returns the number of results with the given outcome.
func (s *Summary) Count(o Outcome) int {
	n := 0
	for _, r := range s.Results {
		if r.Outcome == o {
			n++
		}
	}
	return n
}

// FailedCount returns the number of items that hit an error.
func (s *Summary) FailedCount() int {
	return s.Count(OutcomeRenameFailed) + s.Count(OutcomeUpdateFailed)
}

// SkippedCount returns the number of items left untouched without error.
func (s *Summary) SkippedCount() int {
	return s.Count(OutcomeSkipped) + s.Count(OutcomeUnchanged)
}
