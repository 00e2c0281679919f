package notion

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wim-web/bookin/internal/core/domain"
)

// rewriteTransport sends every request to target, keeping the path.
type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.URL.Scheme = rt.target.Scheme
	clone.URL.Host = rt.target.Host
	clone.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(clone)
}

// newTestClient returns a Client talking to handler.
func newTestClient(t *testing.T, handler http.HandlerFunc, settings domain.NotionSettings) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	target, err := url.Parse(server.URL)
	require.NoError(t, err)

	if settings.DatabaseID == "" {
		settings.DatabaseID = "db-123"
	}
	return NewClient("secret_test", settings,
		WithHTTPClient(&http.Client{Transport: rewriteTransport{target: target}}))
}
