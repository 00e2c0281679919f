package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/wim-web/bookin/internal/core/domain"
	"github.com/wim-web/bookin/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
// Used for runs that should leave no history and in tests.
type RunStore struct {
	mu     sync.RWMutex
	runs   map[string]domain.SyncRun
	synced map[string]domain.SyncedFile
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs:   make(map[string]domain.SyncRun),
		synced: make(map[string]domain.SyncedFile),
	}
}

// SaveRun stores or updates a run.
func (s *RunStore) SaveRun(_ context.Context, run domain.SyncRun) error {
	if run.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return nil
}

// GetRun retrieves a run by ID.
func (s *RunStore) GetRun(_ context.Context, id string) (*domain.SyncRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}

// ListRuns returns up to limit runs, newest first. A non-positive limit
// returns every run.
func (s *RunStore) ListRuns(_ context.Context, limit int) ([]domain.SyncRun, error) {
	s.mu.RLock()
	runs := make([]domain.SyncRun, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	s.mu.RUnlock()

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// MarkSynced records that a file has an entry.
func (s *RunStore) MarkSynced(_ context.Context, file domain.SyncedFile) error {
	if file.FileID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.synced[file.FileID] = file
	return nil
}

// GetSynced returns the ledger row for a file.
func (s *RunStore) GetSynced(_ context.Context, fileID string) (*domain.SyncedFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	file, ok := s.synced[fileID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &file, nil
}
