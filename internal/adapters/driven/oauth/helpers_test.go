package oauth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

// testRSAKey generates a 2048-bit key for signing tests.
func testRSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

// pkcs1PEM encodes a key the way older service-account files do.
func pkcs1PEM(key *rsa.PrivateKey) string {
	return string(pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}))
}

// pkcs8PEM encodes a key the way Google currently issues them.
func pkcs8PEM(t *testing.T, key *rsa.PrivateKey) string {
	t.Helper()
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
}

// testKeyJSON renders a complete service-account key document.
func testKeyJSON(t *testing.T, privateKey, tokenURI, clientEmail string) []byte {
	t.Helper()
	data, err := json.Marshal(map[string]string{
		"type":                        "service_account",
		"project_id":                  "bookin-test",
		"private_key_id":              "key-1",
		"private_key":                 privateKey,
		"client_email":                clientEmail,
		"client_id":                   "1234567890",
		"auth_uri":                    "https://accounts.example.test/o/oauth2/auth",
		"token_uri":                   tokenURI,
		"auth_provider_x509_cert_url": "https://www.example.test/oauth2/v1/certs",
		"client_x509_cert_url":        "https://www.example.test/robot/v1/metadata/x509/svc",
	})
	require.NoError(t, err)
	return data
}

// rewriteTransport sends every request to target regardless of its host,
// so tests can use realistic token URIs against an httptest server.
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

func rewritingClient(t *testing.T, serverURL string) *http.Client {
	t.Helper()
	target, err := url.Parse(serverURL)
	require.NoError(t, err)
	return &http.Client{Transport: rewriteTransport{target: target}}
}
