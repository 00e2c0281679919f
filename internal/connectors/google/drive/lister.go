package drive

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/wim-web/bookin/internal/connectors/google"
	"github.com/wim-web/bookin/internal/core/domain"
	"github.com/wim-web/bookin/internal/core/ports/driven"
	"github.com/wim-web/bookin/internal/logger"
)

// Ensure Lister and ListerFactory implement the port interfaces.
var (
	_ driven.FileLister        = (*Lister)(nil)
	_ driven.FileListerFactory = (*ListerFactory)(nil)
)

// Lister lists files visible to the service account, newest modifications last.
type Lister struct {
	svc         *drive.Service
	config      *Config
	rateLimiter *google.RateLimiter
}

// NewLister creates a lister over an authenticated Drive service.
func NewLister(svc *drive.Service, cfg *Config, limiter *google.RateLimiter) *Lister {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if limiter == nil {
		limiter = google.NewRateLimiter()
	}
	return &Lister{
		svc:         svc,
		config:      cfg,
		rateLimiter: limiter,
	}
}

// ListModifiedSince returns one page of files modified after since.
func (l *Lister) ListModifiedSince(ctx context.Context, since time.Time, pageToken string) (*domain.FilePage, error) {
	if err := l.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	query := BuildQuery(since, l.config.FolderIDs)
	logger.Debug("files.list q=%q pageToken=%q", query, pageToken)

	call := l.svc.Files.List().
		Q(query).
		Fields(listFields).
		OrderBy("modifiedTime").
		PageSize(l.config.PageSize).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		if google.IsRateLimited(err) {
			l.rateLimiter.RecordRateLimitError(retryAfter(err))
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrListFiles, google.WrapError(err))
	}

	page := &domain.FilePage{
		Files:         make([]domain.DriveFile, 0, len(resp.Files)),
		NextPageToken: resp.NextPageToken,
	}
	for _, f := range resp.Files {
		// The query already excludes folders; this guards shortcuts to them.
		if f.MimeType == MimeTypeFolder {
			continue
		}
		file, err := ToDomainFile(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrListFiles, err)
		}
		page.Files = append(page.Files, file)
	}

	return page, nil
}

// retryAfter reads the Retry-After header (seconds) of a Google API error.
func retryAfter(err error) time.Duration {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) || gerr.Header == nil {
		return 0
	}
	secs, convErr := strconv.Atoi(gerr.Header.Get("Retry-After"))
	if convErr != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// ListerFactory builds Listers from an access token.
type ListerFactory struct {
	config      *Config
	rateLimiter *google.RateLimiter
	options     []option.ClientOption
}

// NewListerFactory creates a factory. opts are passed to the Drive client,
// for example option.WithEndpoint in tests.
func NewListerFactory(cfg *Config, opts ...option.ClientOption) *ListerFactory {
	return &ListerFactory{
		config:      cfg,
		rateLimiter: google.NewRateLimiter(),
		options:     opts,
	}
}

// NewFileLister creates a Lister authenticated with accessToken.
func (f *ListerFactory) NewFileLister(ctx context.Context, accessToken string) (driven.FileLister, error) {
	svc, err := google.NewDriveService(ctx, google.NewStaticTokenSource(accessToken), f.options...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return NewLister(svc, f.config, f.rateLimiter), nil
}
