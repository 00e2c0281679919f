package domain

import "time"

// RunStatus is the lifecycle state of a sync run.
type RunStatus string

const (
	// RunRunning means the run has started and not finished.
	RunRunning RunStatus = "running"
	// RunSucceeded means every listed file was handled.
	RunSucceeded RunStatus = "succeeded"
	// RunFailed means the run aborted on its first error.
	RunFailed RunStatus = "failed"
)

// IsValid returns true if the status is recognised.
func (s RunStatus) IsValid() bool {
	switch s {
	case RunRunning, RunSucceeded, RunFailed:
		return true
	default:
		return false
	}
}

// SyncRun records one execution of the sync job.
type SyncRun struct {
	// ID is the unique identifier (UUID).
	ID string
	// StartedAt is when the run began.
	StartedAt time.Time
	// FinishedAt is zero while the run is in progress.
	FinishedAt time.Time
	// Since is the modification-time watermark used for the listing.
	// Zero means every file was listed.
	Since time.Time
	// FilesListed counts files returned by the listing.
	FilesListed int
	// PagesCreated counts database entries written.
	PagesCreated int
	// FilesSkipped counts files already present in the ledger.
	FilesSkipped int
	// DryRun is true when no entries were written.
	DryRun bool
	// Status is the run state.
	Status RunStatus
	// Error holds the failure message for failed runs.
	Error string
}

// NewSyncRun creates a running SyncRun.
func NewSyncRun(id string, startedAt time.Time) *SyncRun {
	return &SyncRun{
		ID:        id,
		StartedAt: startedAt,
		Status:    RunRunning,
	}
}

// Finish marks the run succeeded, or failed when err is non-nil.
func (r *SyncRun) Finish(at time.Time, err error) {
	r.FinishedAt = at
	if err != nil {
		r.Status = RunFailed
		r.Error = err.Error()
		return
	}
	r.Status = RunSucceeded
	r.Error = ""
}

// Duration returns how long the run took, or zero if unfinished.
func (r *SyncRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// FileOutcome describes what a run did with one file.
type FileOutcome string

const (
	// OutcomeCreated means a database entry was written.
	OutcomeCreated FileOutcome = "created"
	// OutcomeSkipped means the ledger already had the file.
	OutcomeSkipped FileOutcome = "skipped"
	// OutcomePlanned means a dry run would have written an entry.
	OutcomePlanned FileOutcome = "planned"
)

// FileResult is the per-file outcome of a run.
type FileResult struct {
	File    DriveFile
	Outcome FileOutcome
	// PageID is set for OutcomeCreated.
	PageID string
}

// SyncReport is returned by a sync run, successful or not.
type SyncReport struct {
	Run     *SyncRun
	Results []FileResult
}

// SyncedFile links a storage file to the database entry created for it.
type SyncedFile struct {
	FileID string
	PageID string
	RunID  string
	// ModifiedTime is the file's modification time when the entry was created.
	ModifiedTime time.Time
	SyncedAt     time.Time
}

// Covers reports whether the recorded entry already reflects file, that is,
// file has not been modified since it was synced. Rows without a recorded
// modification time fall back to the sync time.
func (s SyncedFile) Covers(file DriveFile) bool {
	recorded := s.ModifiedTime
	if recorded.IsZero() {
		recorded = s.SyncedAt
	}
	return !file.ModifiedTime.After(recorded)
}
