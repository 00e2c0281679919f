package driving

import (
	"context"
	"time"

	"github.com/wim-web/bookin/internal/core/domain"
)

// SyncService runs the storage-to-database sync job.
type SyncService interface {
	// Run performs one sync run. The report is returned even when the run
	// fails, describing how far it got.
	Run(ctx context.Context, opts SyncOptions) (*domain.SyncReport, error)
}

// SyncOptions adjusts a single run.
type SyncOptions struct {
	// DryRun lists files without writing entries.
	DryRun bool

	// Since overrides the watermark taken from the latest database entry.
	Since time.Time

	// Limit caps the number of files handled. Zero means no cap.
	Limit int
}

// HistoryService reads past runs.
type HistoryService interface {
	// Recent returns up to limit runs, newest first.
	Recent(ctx context.Context, limit int) ([]domain.SyncRun, error)
}

// TokenService exposes the access token used for the storage provider.
type TokenService interface {
	// AccessToken mints a new token.
	AccessToken(ctx context.Context) (string, error)

	// Identity returns the service account the token is issued for.
	Identity() string
}
