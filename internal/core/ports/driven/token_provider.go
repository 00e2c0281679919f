package driven

import "context"

// TokenProvider provides bearer tokens for authenticated API calls.
//
// The service-account implementation mints a fresh token on every call;
// nothing is cached between calls.
type TokenProvider interface {
	// GetToken returns an access token.
	GetToken(ctx context.Context) (string, error)

	// Identity returns the account the token is issued for, for display.
	// Returns empty string when the provider has no notion of identity.
	Identity() string
}
