package services

import (
	"context"
	"fmt"

	"github.com/wim-web/bookin/internal/core/ports/driven"
	"github.com/wim-web/bookin/internal/core/ports/driving"
)

// Ensure TokenService implements the interface.
var _ driving.TokenService = (*TokenService)(nil)

// TokenService mints storage access tokens on demand.
type TokenService struct {
	provider driven.TokenProvider
}

// NewTokenService creates a new token service.
func NewTokenService(provider driven.TokenProvider) *TokenService {
	return &TokenService{provider: provider}
}

// AccessToken mints a new token.
func (s *TokenService) AccessToken(ctx context.Context) (string, error) {
	token, err := s.provider.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("get token: %w", err)
	}
	return token, nil
}

// Identity returns the account the token is issued for.
func (s *TokenService) Identity() string {
	return s.provider.Identity()
}
