package driven

import (
	"context"

	"github.com/wim-web/bookin/internal/core/domain"
)

// RunStore persists run history and the synced-file ledger.
type RunStore interface {
	// SaveRun stores or updates a run.
	SaveRun(ctx context.Context, run domain.SyncRun) error

	// GetRun retrieves a run by ID.
	// Returns domain.ErrNotFound if absent.
	GetRun(ctx context.Context, id string) (*domain.SyncRun, error)

	// ListRuns returns up to limit runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.SyncRun, error)

	// MarkSynced records that a file has an entry.
	MarkSynced(ctx context.Context, file domain.SyncedFile) error

	// GetSynced returns the ledger row for a file.
	// Returns domain.ErrNotFound if the file has no entry.
	GetSynced(ctx context.Context, fileID string) (*domain.SyncedFile, error)
}
