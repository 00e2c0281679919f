package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_AccessToken(t *testing.T) {
	provider := &mockTokenProvider{token: "ya29.abc"}
	svc := NewTokenService(provider)

	token, err := svc.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ya29.abc", token)
	assert.Equal(t, "svc@example.test", svc.Identity())

	// Minted again on every call.
	_, err = svc.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
}

func TestTokenService_AccessToken_Error(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewTokenService(&mockTokenProvider{err: boom}).AccessToken(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "get token")
}
