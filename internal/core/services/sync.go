package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wim-web/bookin/internal/core/domain"
	"github.com/wim-web/bookin/internal/core/ports/driven"
	"github.com/wim-web/bookin/internal/core/ports/driving"
	"github.com/wim-web/bookin/internal/logger"
)

// Ensure SyncService implements the interface.
var _ driving.SyncService = (*SyncService)(nil)

// SyncService pushes newly modified storage files into the target database.
type SyncService struct {
	tokens   driven.TokenProvider
	listers  driven.FileListerFactory
	entries  driven.EntryStore
	throttle driven.Throttle
	runs     driven.RunStore

	newID func() string
	now   func() time.Time
}

// NewSyncService creates a new sync service.
// runs is optional - if nil, runs are not recorded and no file is skipped.
func NewSyncService(
	tokens driven.TokenProvider,
	listers driven.FileListerFactory,
	entries driven.EntryStore,
	throttle driven.Throttle,
	runs driven.RunStore,
) *SyncService {
	return &SyncService{
		tokens:   tokens,
		listers:  listers,
		entries:  entries,
		throttle: throttle,
		runs:     runs,
		newID:    func() string { return uuid.New().String() },
		now:      time.Now,
	}
}

// Run performs one sync run.
func (s *SyncService) Run(ctx context.Context, opts driving.SyncOptions) (*domain.SyncReport, error) {
	run := domain.NewSyncRun(s.newID(), s.now())
	run.DryRun = opts.DryRun
	report := &domain.SyncReport{Run: run}

	if err := s.saveRun(ctx, run); err != nil {
		return report, err
	}

	logger.Info("Starting sync run %s", run.ID)
	err := s.run(ctx, opts, report)
	run.Finish(s.now(), err)

	// Record the outcome even when the run was cancelled.
	if saveErr := s.saveRun(context.WithoutCancel(ctx), run); saveErr != nil {
		if err == nil {
			err = saveErr
		} else {
			logger.Warn("Failed to record run %s: %v", run.ID, saveErr)
		}
	}

	if err != nil {
		logger.Error("Sync run %s failed: %v", run.ID, err)
		return report, err
	}

	logger.Info("Sync complete: %d listed, %d created, %d skipped",
		run.FilesListed, run.PagesCreated, run.FilesSkipped)
	return report, nil
}

// run is the sequential body of Run. It stops at the first error.
func (s *SyncService) run(ctx context.Context, opts driving.SyncOptions, report *domain.SyncReport) error {
	run := report.Run

	// 1. Authenticate against storage; nothing downstream happens without a token.
	logger.Section("Authenticate")
	token, err := s.tokens.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("get storage token: %w", err)
	}
	if token == "" {
		return fmt.Errorf("get storage token: %w", domain.ErrAuthRequired)
	}
	logger.Debug("Token acquired for %s", s.tokens.Identity())

	lister, err := s.listers.NewFileLister(ctx, token)
	if err != nil {
		return fmt.Errorf("create file lister: %w", err)
	}

	// 2. Watermark from the newest database entry.
	logger.Section("Watermark")
	since, err := s.watermark(ctx, opts)
	if err != nil {
		return err
	}
	run.Since = since
	if since.IsZero() {
		logger.Info("No previous entries, listing all files")
	} else {
		logger.Info("Listing files modified after %s", since.Format(time.RFC3339))
	}

	// 3. List every modified file.
	logger.Section("List")
	files, err := listAll(ctx, lister, since, opts.Limit)
	if err != nil {
		return err
	}
	run.FilesListed = len(files)
	logger.Info("Found %d files", len(files))

	// 4. One entry per file, paced by the throttle.
	logger.Section("Write")
	for _, file := range files {
		result, err := s.syncFile(ctx, run, file)
		if err != nil {
			return err
		}
		report.Results = append(report.Results, result)
	}

	return nil
}

// watermark returns the time after which files count as new.
func (s *SyncService) watermark(ctx context.Context, opts driving.SyncOptions) (time.Time, error) {
	if !opts.Since.IsZero() {
		return opts.Since, nil
	}

	latest, err := s.entries.LatestEntry(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("query latest entry: %w", err)
	}
	if latest == nil {
		return time.Time{}, nil
	}
	logger.Debug("Latest entry %s created %s", latest.ID, latest.CreatedTime.Format(time.RFC3339))
	return latest.CreatedTime, nil
}

// syncFile handles one file: skip, plan or create.
func (s *SyncService) syncFile(ctx context.Context, run *domain.SyncRun, file domain.DriveFile) (domain.FileResult, error) {
	result := domain.FileResult{File: file}

	if s.runs != nil {
		prev, err := s.runs.GetSynced(ctx, file.ID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return result, fmt.Errorf("check ledger for %s: %w", file.ID, err)
		}
		// A file modified after its entry was created gets a new entry.
		if prev != nil && prev.Covers(file) {
			logger.Debug("Skipping %s (%s): already synced", file.Name, file.ID)
			result.Outcome = domain.OutcomeSkipped
			run.FilesSkipped++
			return result, nil
		}
	}

	if run.DryRun {
		logger.Info("Would create entry for %s", file.Name)
		result.Outcome = domain.OutcomePlanned
		return result, nil
	}

	if err := s.throttle.Wait(ctx); err != nil {
		return result, fmt.Errorf("throttle: %w", err)
	}

	pageID, err := s.entries.CreateEntry(ctx, file)
	if err != nil {
		return result, fmt.Errorf("create entry for %s: %w", file.ID, err)
	}
	logger.Debug("Created entry %s for %s", pageID, file.Name)

	result.Outcome = domain.OutcomeCreated
	result.PageID = pageID
	run.PagesCreated++

	if s.runs != nil {
		synced := domain.SyncedFile{
			FileID:       file.ID,
			PageID:       pageID,
			RunID:        run.ID,
			ModifiedTime: file.ModifiedTime,
			SyncedAt:     s.now(),
		}
		if err := s.runs.MarkSynced(ctx, synced); err != nil {
			return result, fmt.Errorf("record %s in ledger: %w", file.ID, err)
		}
	}

	return result, nil
}

func (s *SyncService) saveRun(ctx context.Context, run *domain.SyncRun) error {
	if s.runs == nil {
		return nil
	}
	if err := s.runs.SaveRun(ctx, *run); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

// listAll follows page tokens until the listing is exhausted or limit is hit.
func listAll(ctx context.Context, lister driven.FileLister, since time.Time, limit int) ([]domain.DriveFile, error) {
	var files []domain.DriveFile
	pageToken := ""
	seen := make(map[string]bool)

	for {
		page, err := lister.ListModifiedSince(ctx, since, pageToken)
		if err != nil {
			return nil, fmt.Errorf("list files: %w", err)
		}

		files = append(files, page.Files...)
		if limit > 0 && len(files) >= limit {
			return files[:limit], nil
		}

		if !page.HasMore() {
			return files, nil
		}
		if seen[page.NextPageToken] {
			return nil, fmt.Errorf("list files: %w: page token %q repeated", domain.ErrListFiles, page.NextPageToken)
		}
		seen[page.NextPageToken] = true
		pageToken = page.NextPageToken
	}
}
