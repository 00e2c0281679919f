package driven

import (
	"context"
	"time"

	"github.com/wim-web/bookin/internal/core/domain"
)

// FileLister lists files from cloud storage.
type FileLister interface {
	// ListModifiedSince returns one page of files modified strictly after
	// since. A zero since lists every file. An empty pageToken requests the
	// first page.
	ListModifiedSince(ctx context.Context, since time.Time, pageToken string) (*domain.FilePage, error)
}

// FileListerFactory creates a FileLister authenticated with an access token.
type FileListerFactory interface {
	NewFileLister(ctx context.Context, accessToken string) (FileLister, error)
}
