package auth

import (
	"context"

	"github.com/wim-web/bookin/internal/core/domain"
	"github.com/wim-web/bookin/internal/core/ports/driven"
)

// Ensure StaticProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*StaticProvider)(nil)

// StaticProvider returns a fixed secret, such as a Notion integration token.
// Integration tokens don't expire and don't require refresh.
type StaticProvider struct {
	name   string
	secret string
}

// NewStaticProvider creates a provider for a fixed secret.
// name is reported by Identity.
func NewStaticProvider(name, secret string) *StaticProvider {
	return &StaticProvider{name: name, secret: secret}
}

// GetToken returns the secret, or ErrAuthRequired when none is configured.
func (p *StaticProvider) GetToken(_ context.Context) (string, error) {
	if p.secret == "" {
		return "", domain.ErrAuthRequired
	}
	return p.secret, nil
}

// Identity returns the provider name.
func (p *StaticProvider) Identity() string {
	return p.name
}
