package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wim-web/bookin/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

// ==================== Store Creation and Initialization Tests ====================

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "bookin.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
	assert.NoError(t, store.db.Ping())
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	nestedDir := filepath.Join(t.TempDir(), "nested", "path", "to", "db")

	store, err := NewStore(nestedDir)
	require.NoError(t, err)
	defer store.Close()

	assert.DirExists(t, nestedDir)
}

func TestNewStore_Migrations(t *testing.T) {
	store := setupTestStore(t)

	var version int
	err := store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	for _, table := range []string{"runs", "synced_files"} {
		var tableExists int
		err := store.db.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&tableExists)
		require.NoError(t, err)
		assert.Equal(t, 1, tableExists, "table %s should exist", table)
	}
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestNewStore_ForeignKeysEnabled(t *testing.T) {
	store := setupTestStore(t)

	var fkEnabled int
	require.NoError(t, store.db.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled))
	assert.Equal(t, 1, fkEnabled)
}

func TestStore_Close(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.Error(t, store.db.Ping())
}

// ==================== RunStore Tests ====================

func testRun(id string, started time.Time) domain.SyncRun {
	return domain.SyncRun{
		ID:        id,
		StartedAt: started,
		Status:    domain.RunRunning,
	}
}

func TestRunStore_SaveAndGet(t *testing.T) {
	runs := setupTestStore(t).RunStore()
	ctx := context.Background()

	started := time.Date(2024, 5, 1, 9, 0, 0, 123456789, time.UTC)
	run := testRun("run-1", started)
	run.Since = time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
	run.DryRun = true
	require.NoError(t, runs.SaveRun(ctx, run))

	got, err := runs.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", got.ID)
	assert.True(t, got.StartedAt.Equal(started))
	assert.True(t, got.Since.Equal(run.Since))
	assert.True(t, got.FinishedAt.IsZero())
	assert.True(t, got.DryRun)
	assert.Equal(t, domain.RunRunning, got.Status)
	assert.Empty(t, got.Error)
}

func TestRunStore_SaveUpdates(t *testing.T) {
	runs := setupTestStore(t).RunStore()
	ctx := context.Background()

	started := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	run := testRun("run-1", started)
	require.NoError(t, runs.SaveRun(ctx, run))

	run.FilesListed = 3
	run.PagesCreated = 2
	run.FilesSkipped = 1
	run.Status = domain.RunFailed
	run.Error = "create entry for f3: boom"
	run.FinishedAt = started.Add(5 * time.Second)
	require.NoError(t, runs.SaveRun(ctx, run))

	got, err := runs.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.FilesListed)
	assert.Equal(t, 2, got.PagesCreated)
	assert.Equal(t, 1, got.FilesSkipped)
	assert.Equal(t, domain.RunFailed, got.Status)
	assert.Equal(t, "create entry for f3: boom", got.Error)
	assert.Equal(t, 5*time.Second, got.Duration())
}

func TestRunStore_SaveInvalid(t *testing.T) {
	runs := setupTestStore(t).RunStore()

	err := runs.SaveRun(context.Background(), domain.SyncRun{Status: domain.RunRunning})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = runs.SaveRun(context.Background(), domain.SyncRun{ID: "x", Status: "bogus"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRunStore_GetRun_NotFound(t *testing.T) {
	runs := setupTestStore(t).RunStore()

	_, err := runs.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunStore_ListRuns_NewestFirst(t *testing.T) {
	runs := setupTestStore(t).RunStore()
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	// Sub-second offsets check the fixed-width time ordering.
	require.NoError(t, runs.SaveRun(ctx, testRun("a", base)))
	require.NoError(t, runs.SaveRun(ctx, testRun("b", base.Add(500*time.Millisecond))))
	require.NoError(t, runs.SaveRun(ctx, testRun("c", base.Add(time.Second))))

	all, err := runs.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{all[0].ID, all[1].ID, all[2].ID})

	limited, err := runs.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "c", limited[0].ID)
}

func TestRunStore_ListRuns_Empty(t *testing.T) {
	runs := setupTestStore(t).RunStore()

	all, err := runs.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRunStore_Ledger(t *testing.T) {
	runs := setupTestStore(t).RunStore()
	ctx := context.Background()

	require.NoError(t, runs.SaveRun(ctx, testRun("run-1", time.Now())))

	_, err := runs.GetSynced(ctx, "file-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	modified := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
	syncedAt := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, runs.MarkSynced(ctx, domain.SyncedFile{
		FileID:       "file-1",
		PageID:       "page-1",
		RunID:        "run-1",
		ModifiedTime: modified,
		SyncedAt:     syncedAt,
	}))

	got, err := runs.GetSynced(ctx, "file-1")
	require.NoError(t, err)
	assert.Equal(t, "page-1", got.PageID)
	assert.Equal(t, "run-1", got.RunID)
	assert.True(t, modified.Equal(got.ModifiedTime), got.ModifiedTime)
	assert.True(t, syncedAt.Equal(got.SyncedAt), got.SyncedAt)

	// Marking again is an update, not a conflict.
	later := modified.Add(48 * time.Hour)
	require.NoError(t, runs.MarkSynced(ctx, domain.SyncedFile{
		FileID:       "file-1",
		PageID:       "page-2",
		RunID:        "run-1",
		ModifiedTime: later,
		SyncedAt:     time.Now(),
	}))

	got, err = runs.GetSynced(ctx, "file-1")
	require.NoError(t, err)
	assert.Equal(t, "page-2", got.PageID)
	assert.True(t, later.Equal(got.ModifiedTime), got.ModifiedTime)
}

func TestRunStore_Ledger_NoModifiedTime(t *testing.T) {
	runs := setupTestStore(t).RunStore()
	ctx := context.Background()

	require.NoError(t, runs.MarkSynced(ctx, domain.SyncedFile{
		FileID:   "file-1",
		PageID:   "page-1",
		SyncedAt: time.Now(),
	}))

	got, err := runs.GetSynced(ctx, "file-1")
	require.NoError(t, err)
	assert.True(t, got.ModifiedTime.IsZero())
	assert.Empty(t, got.RunID)
}

func TestRunStore_MarkSynced_UnknownRun(t *testing.T) {
	runs := setupTestStore(t).RunStore()

	err := runs.MarkSynced(context.Background(), domain.SyncedFile{
		FileID:   "file-1",
		PageID:   "page-1",
		RunID:    "no-such-run",
		SyncedAt: time.Now(),
	})
	assert.Error(t, err)

	err = runs.MarkSynced(context.Background(), domain.SyncedFile{PageID: "p"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
