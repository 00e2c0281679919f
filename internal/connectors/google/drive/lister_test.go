package drive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/wim-web/bookin/internal/connectors/google"
	"github.com/wim-web/bookin/internal/core/domain"
)

func newTestFactory(t *testing.T, handler http.HandlerFunc, cfg *Config) *ListerFactory {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewListerFactory(cfg,
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	)
}

func TestLister_ListModifiedSince(t *testing.T) {
	since := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	factory := newTestFactory(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/files"), r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, BuildQuery(since, []string{"folder-1"}), q.Get("q"))
		assert.Equal(t, "modifiedTime", q.Get("orderBy"))
		assert.Equal(t, "25", q.Get("pageSize"))
		assert.Equal(t, "", q.Get("pageToken"))
		assert.Contains(t, q.Get("fields"), "thumbnailLink")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"nextPageToken": "page-2",
			"files": [
				{"id": "1", "name": "a.pdf", "mimeType": "application/pdf",
				 "webViewLink": "https://drive.example.test/1", "thumbnailLink": "https://thumb.example.test/1",
				 "modifiedTime": "2024-05-02T00:00:00Z"},
				{"id": "2", "name": "dir", "mimeType": "application/vnd.google-apps.folder",
				 "modifiedTime": "2024-05-02T00:00:00Z"}
			]
		}`))
	}, &Config{FolderIDs: []string{"folder-1"}, PageSize: 25})

	lister, err := factory.NewFileLister(context.Background(), "ya29.token")
	require.NoError(t, err)

	page, err := lister.ListModifiedSince(context.Background(), since, "")
	require.NoError(t, err)

	require.Len(t, page.Files, 1)
	assert.Equal(t, "1", page.Files[0].ID)
	assert.Equal(t, "a.pdf", page.Files[0].Name)
	assert.Equal(t, "https://thumb.example.test/1", page.Files[0].ThumbnailLink)
	assert.Equal(t, "page-2", page.NextPageToken)
	assert.True(t, page.HasMore())
}

func TestLister_PassesPageToken(t *testing.T) {
	factory := newTestFactory(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "page-2", r.URL.Query().Get("pageToken"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"files": []}`))
	}, nil)

	lister, err := factory.NewFileLister(context.Background(), "tok")
	require.NoError(t, err)

	page, err := lister.ListModifiedSince(context.Background(), time.Time{}, "page-2")
	require.NoError(t, err)
	assert.Empty(t, page.Files)
	assert.False(t, page.HasMore())
}

func TestLister_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "unauthorized",
			status:  http.StatusUnauthorized,
			body:    `{"error":{"code":401,"message":"Invalid Credentials"}}`,
			wantErr: google.ErrUnauthorized,
		},
		{
			name:    "not found",
			status:  http.StatusNotFound,
			body:    `{"error":{"code":404,"message":"File not found"}}`,
			wantErr: google.ErrNotFound,
		},
		{
			name:    "user rate limit",
			status:  http.StatusForbidden,
			body:    `{"error":{"code":403,"message":"slow down","errors":[{"reason":"userRateLimitExceeded"}]}}`,
			wantErr: google.ErrRateLimited,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := newTestFactory(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, nil)

			lister, err := factory.NewFileLister(context.Background(), "tok")
			require.NoError(t, err)

			_, err = lister.ListModifiedSince(context.Background(), time.Time{}, "")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrListFiles)
		})
	}
}

func TestLister_CancelledContext(t *testing.T) {
	factory := newTestFactory(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"files": []}`))
	}, nil)

	lister, err := factory.NewFileLister(context.Background(), "tok")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = lister.ListModifiedSince(ctx, time.Time{}, "")
	assert.ErrorIs(t, err, context.Canceled)
}
