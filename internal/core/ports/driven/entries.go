package driven

import (
	"context"

	"github.com/wim-web/bookin/internal/core/domain"
)

// EntryStore is the target database the job writes to.
type EntryStore interface {
	// LatestEntry returns the most recently created entry.
	// Returns nil and no error when the database is empty.
	LatestEntry(ctx context.Context) (*domain.DatabaseEntry, error)

	// CreateEntry creates one entry describing file and returns its ID.
	CreateEntry(ctx context.Context, file domain.DriveFile) (string, error)
}

// Throttle paces sequential downstream calls.
type Throttle interface {
	// Wait blocks until the next call may proceed or ctx is done.
	Wait(ctx context.Context) error
}
