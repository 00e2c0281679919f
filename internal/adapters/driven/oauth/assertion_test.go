package oauth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() *ServiceAccountKey {
	return &ServiceAccountKey{
		ClientEmail: "svc@example.test",
		TokenURI:    "https://example.test/token",
	}
}

func decodeSegment(t *testing.T, seg string) map[string]any {
	t.Helper()
	raw, err := base64.RawURLEncoding.DecodeString(seg)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestNewClaimSet(t *testing.T) {
	before := time.Now().Unix()
	claims := NewClaimSet(testKey(), "scope-x", time.Now())
	after := time.Now().Unix()

	assert.Equal(t, "https://example.test/token", claims.Audience)
	assert.Equal(t, "svc@example.test", claims.Issuer)
	assert.Equal(t, "scope-x", claims.Scope)
	assert.GreaterOrEqual(t, claims.IssuedAt, before)
	assert.LessOrEqual(t, claims.IssuedAt, after)
	assert.Equal(t, claims.IssuedAt+1800, claims.Expiry)
}

func TestNewClaimSet_TruncatesToSeconds(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 999_999_999, time.UTC)

	claims := NewClaimSet(testKey(), "s", now)

	assert.Equal(t, now.Unix(), claims.IssuedAt)
	assert.Equal(t, now.Add(30*time.Minute).Unix(), claims.Expiry)
}

func TestAssertion_Format(t *testing.T) {
	signer := NewRS256SignerFromKey(testRSAKey(t))

	token, err := Assertion(NewClaimSet(testKey(), "scope-x", time.Now()), signer)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	for _, p := range parts {
		assert.NotContains(t, p, "=")
		assert.NotContains(t, p, "+")
		assert.NotContains(t, p, "/")
	}

	header := decodeSegment(t, parts[0])
	assert.Equal(t, "RS256", header["alg"])
	assert.Equal(t, "JWT", header["typ"])

	payload := decodeSegment(t, parts[1])
	assert.Equal(t, "https://example.test/token", payload["aud"])
	assert.Equal(t, "svc@example.test", payload["iss"])
	assert.Equal(t, "scope-x", payload["scope"])
	assert.Equal(t, payload["iat"].(float64)+1800, payload["exp"])
}

func TestAssertion_VerifiesWithPublicKey(t *testing.T) {
	signer := NewRS256SignerFromKey(testRSAKey(t))

	token, err := Assertion(NewClaimSet(testKey(), "scope-x", time.Now()), signer)
	require.NoError(t, err)

	var claims ClaimSet
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return signer.PublicKey(), nil
	}, jwt.WithValidMethods([]string{"RS256"}), jwt.WithAudience("https://example.test/token"))
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "scope-x", claims.Scope)
}

func TestAssertion_SameClaimsSameOutput(t *testing.T) {
	signer := NewRS256SignerFromKey(testRSAKey(t))
	claims := NewClaimSet(testKey(), "scope-x", time.Now())

	first, err := Assertion(claims, signer)
	require.NoError(t, err)
	second, err := Assertion(claims, signer)
	require.NoError(t, err)

	// PKCS#1 v1.5 signatures are deterministic, so the whole string repeats.
	assert.Equal(t, first, second)
	assert.Equal(t, strings.Split(first, ".")[1], strings.Split(second, ".")[1])
}

type fakeSigner struct {
	sig []byte
	err error
	got string
}

func (f *fakeSigner) Alg() string { return "RS256" }

func (f *fakeSigner) Sign(s string) ([]byte, error) {
	f.got = s
	return f.sig, f.err
}

func TestAssertion_UsesSigner(t *testing.T) {
	fake := &fakeSigner{sig: []byte("signature")}

	token, err := Assertion(NewClaimSet(testKey(), "s", time.Now()), fake)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	assert.Equal(t, parts[0]+"."+parts[1], fake.got)
	assert.Equal(t, base64.RawURLEncoding.EncodeToString([]byte("signature")), parts[2])
}

func TestAssertion_SignerError(t *testing.T) {
	fake := &fakeSigner{err: errors.New("hsm unavailable")}

	_, err := Assertion(NewClaimSet(testKey(), "s", time.Now()), fake)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSigningFailure)
	assert.Contains(t, err.Error(), "hsm unavailable")
}
