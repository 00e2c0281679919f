package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/wim-web/bookin/internal/core/domain"
	"github.com/wim-web/bookin/internal/core/ports/driven"
)

// mockTokenProvider returns a fixed token or error.
type mockTokenProvider struct {
	token string
	err   error
	calls int
}

func (m *mockTokenProvider) GetToken(context.Context) (string, error) {
	m.calls++
	return m.token, m.err
}

func (m *mockTokenProvider) Identity() string { return "svc@example.test" }

// mockLister serves pages keyed by page token ("" is the first page).
type mockLister struct {
	pages  map[string]*domain.FilePage
	errAt  string
	err    error
	sinces []time.Time
	tokens []string
}

func (m *mockLister) ListModifiedSince(_ context.Context, since time.Time, pageToken string) (*domain.FilePage, error) {
	m.sinces = append(m.sinces, since)
	m.tokens = append(m.tokens, pageToken)
	if m.err != nil && pageToken == m.errAt {
		return nil, m.err
	}
	page, ok := m.pages[pageToken]
	if !ok {
		return nil, fmt.Errorf("unexpected page token %q", pageToken)
	}
	return page, nil
}

// mockListerFactory hands out one lister and records the token it was given.
type mockListerFactory struct {
	lister *mockLister
	err    error
	token  string
	calls  int
}

func (m *mockListerFactory) NewFileLister(_ context.Context, accessToken string) (driven.FileLister, error) {
	m.calls++
	m.token = accessToken
	if m.err != nil {
		return nil, m.err
	}
	return m.lister, nil
}

// mockEntryStore records created entries.
type mockEntryStore struct {
	latest    *domain.DatabaseEntry
	latestErr error
	failOn    string
	createErr error

	latestCalls int
	created     []domain.DriveFile
}

func (m *mockEntryStore) LatestEntry(context.Context) (*domain.DatabaseEntry, error) {
	m.latestCalls++
	return m.latest, m.latestErr
}

func (m *mockEntryStore) CreateEntry(_ context.Context, file domain.DriveFile) (string, error) {
	if m.failOn == file.ID {
		return "", m.createErr
	}
	m.created = append(m.created, file)
	return "page-" + file.ID, nil
}

// mockThrottle counts waits.
type mockThrottle struct {
	waits int
	err   error
}

func (m *mockThrottle) Wait(context.Context) error {
	m.waits++
	return m.err
}

// mockRunStore keeps runs and the ledger in maps and records every save.
type mockRunStore struct {
	mu     sync.Mutex
	saves  []domain.SyncRun
	runs   map[string]domain.SyncRun
	synced map[string]domain.SyncedFile
	err    error
}

func newMockRunStore() *mockRunStore {
	return &mockRunStore{
		runs:   make(map[string]domain.SyncRun),
		synced: make(map[string]domain.SyncedFile),
	}
}

func (m *mockRunStore) SaveRun(_ context.Context, run domain.SyncRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.saves = append(m.saves, run)
	m.runs[run.ID] = run
	return nil
}

func (m *mockRunStore) GetRun(_ context.Context, id string) (*domain.SyncRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}

func (m *mockRunStore) ListRuns(_ context.Context, limit int) ([]domain.SyncRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	runs := make([]domain.SyncRun, 0, len(m.runs))
	for _, r := range m.runs {
		runs = append(runs, r)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].StartedAt.After(runs[j].StartedAt) })
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (m *mockRunStore) MarkSynced(_ context.Context, file domain.SyncedFile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.synced[file.FileID] = file
	return nil
}

func (m *mockRunStore) GetSynced(_ context.Context, fileID string) (*domain.SyncedFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	file, ok := m.synced[fileID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &file, nil
}
