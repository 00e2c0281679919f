package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/wim-web/bookin/internal/core/domain"
	"github.com/wim-web/bookin/internal/core/ports/driven"
)

// timeFormat is fixed-width so stored times sort lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// SaveRun stores or updates a run.
func (s *runStore) SaveRun(ctx context.Context, run domain.SyncRun) error {
	if run.ID == "" || !run.Status.IsValid() {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, finished_at, since, files_listed, pages_created,
			files_skipped, dry_run, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			finished_at = excluded.finished_at,
			since = excluded.since,
			files_listed = excluded.files_listed,
			pages_created = excluded.pages_created,
			files_skipped = excluded.files_skipped,
			dry_run = excluded.dry_run,
			status = excluded.status,
			error = excluded.error
	`, run.ID,
		formatTime(run.StartedAt),
		formatNullableTime(run.FinishedAt),
		formatNullableTime(run.Since),
		run.FilesListed,
		run.PagesCreated,
		run.FilesSkipped,
		boolToInt(run.DryRun),
		string(run.Status),
		nullString(run.Error))
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *runStore) GetRun(ctx context.Context, id string) (*domain.SyncRun, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, since, files_listed, pages_created,
			files_skipped, dry_run, status, error
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return run, err
}

// ListRuns returns up to limit runs, newest first.
func (s *runStore) ListRuns(ctx context.Context, limit int) ([]domain.SyncRun, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, since, files_listed, pages_created,
			files_skipped, dry_run, status, error
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.SyncRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

// MarkSynced records that a file has an entry.
func (s *runStore) MarkSynced(ctx context.Context, file domain.SyncedFile) error {
	if file.FileID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO synced_files (file_id, page_id, run_id, modified_time, synced_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(file_id) DO UPDATE SET
			page_id = excluded.page_id,
			run_id = excluded.run_id,
			modified_time = excluded.modified_time,
			synced_at = excluded.synced_at
	`, file.FileID, file.PageID, nullString(file.RunID),
		formatNullableTime(file.ModifiedTime), formatTime(file.SyncedAt))
	if err != nil {
		return fmt.Errorf("marking %s synced: %w", file.FileID, err)
	}
	return nil
}

// GetSynced returns the ledger row for a file.
func (s *runStore) GetSynced(ctx context.Context, fileID string) (*domain.SyncedFile, error) {
	var file domain.SyncedFile
	var runID, modifiedTime sql.NullString
	var syncedAt string

	err := s.store.db.QueryRowContext(ctx, `
		SELECT file_id, page_id, run_id, modified_time, synced_at
		FROM synced_files
		WHERE file_id = ?
	`, fileID).Scan(&file.FileID, &file.PageID, &runID, &modifiedTime, &syncedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading ledger for %s: %w", fileID, err)
	}

	if runID.Valid {
		file.RunID = runID.String
	}
	file.ModifiedTime = parseNullableTime(modifiedTime)
	file.SyncedAt = parseNullableTime(sql.NullString{String: syncedAt, Valid: true})
	return &file, nil
}

// ==================== Helper Functions ====================

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanRun scans a single run row.
func scanRun(row scanner) (*domain.SyncRun, error) {
	var run domain.SyncRun
	var startedAt, status string
	var finishedAt, since, errMsg sql.NullString
	var dryRun int

	if err := row.Scan(&run.ID, &startedAt, &finishedAt, &since,
		&run.FilesListed, &run.PagesCreated, &run.FilesSkipped,
		&dryRun, &status, &errMsg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	run.StartedAt = parseNullableTime(sql.NullString{String: startedAt, Valid: true})
	run.FinishedAt = parseNullableTime(finishedAt)
	run.Since = parseNullableTime(since)
	run.DryRun = dryRun == 1
	run.Status = domain.RunStatus(status)
	if errMsg.Valid {
		run.Error = errMsg.String
	}

	return &run, nil
}

// formatTime formats a time as fixed-width UTC.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

// formatNullableTime formats a time, or returns nil for zero time.
func formatNullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return formatTime(t)
}

// parseNullableTime parses a nullable time string to time.Time.
// Returns zero time if the string is empty or invalid.
func parseNullableTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// boolToInt converts a bool to 1 (true) or 0 (false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
