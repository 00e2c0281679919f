package auth

import (
	"fmt"

	"github.com/wim-web/bookin/internal/adapters/driven/oauth"
	"github.com/wim-web/bookin/internal/core/domain"
)

// Factory creates TokenProviders from settings.
type Factory struct {
	exchanger *oauth.Exchanger
}

// NewFactory creates a token provider factory.
func NewFactory() *Factory {
	return &Factory{}
}

// NewFactoryWithExchanger creates a factory whose service-account providers
// use the given exchanger instead of one built from the token timeout.
func NewFactoryWithExchanger(e *oauth.Exchanger) *Factory {
	return &Factory{exchanger: e}
}

// ServiceAccount loads the credentials file named in settings and returns a
// provider minting tokens for the configured scope.
func (f *Factory) ServiceAccount(settings domain.GoogleSettings) (*ServiceAccountProvider, error) {
	if settings.CredentialsFile == "" {
		return nil, fmt.Errorf("%w: google.credentials_file is not set", domain.ErrAuthRequired)
	}

	key, err := oauth.LoadServiceAccountKey(settings.CredentialsFile)
	if err != nil {
		return nil, err
	}

	scope := settings.Scope
	if scope == "" {
		scope = domain.DefaultDriveScope
	}

	exchanger := f.exchanger
	if exchanger == nil {
		exchanger = oauth.NewExchanger(settings.TokenTimeout)
	}

	flow := oauth.NewTwoLeggedFlow(key, scope, oauth.WithExchanger(exchanger))
	return NewServiceAccountProvider(flow), nil
}

// Notion returns a provider for the Notion integration secret.
func (f *Factory) Notion(settings domain.NotionSettings) (*StaticProvider, error) {
	if settings.Secret == "" {
		return nil, fmt.Errorf("%w: notion.secret is not set", domain.ErrAuthRequired)
	}
	return NewStaticProvider("notion", settings.Secret), nil
}
