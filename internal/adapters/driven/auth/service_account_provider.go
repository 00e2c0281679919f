package auth

import (
	"context"
	"fmt"

	"github.com/wim-web/bookin/internal/adapters/driven/oauth"
	"github.com/wim-web/bookin/internal/core/ports/driven"
)

// Ensure ServiceAccountProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*ServiceAccountProvider)(nil)

// ServiceAccountProvider mints Google access tokens with the two-legged
// JWT-bearer grant. Every GetToken call signs a new assertion and performs
// a new exchange; nothing is cached.
type ServiceAccountProvider struct {
	flow *oauth.TwoLeggedFlow
}

// NewServiceAccountProvider creates a provider for one service account and scope.
func NewServiceAccountProvider(flow *oauth.TwoLeggedFlow) *ServiceAccountProvider {
	return &ServiceAccountProvider{flow: flow}
}

// GetToken returns a freshly minted access token.
func (p *ServiceAccountProvider) GetToken(ctx context.Context) (string, error) {
	tok, err := p.flow.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("service account %s: %w", p.flow.Issuer(), err)
	}
	return tok.AccessToken, nil
}

// Identity returns the service account email.
func (p *ServiceAccountProvider) Identity() string {
	return p.flow.Issuer()
}
