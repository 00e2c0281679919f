package google

import (
	"golang.org/x/oauth2"
)

// NewStaticTokenSource returns a TokenSource that always yields accessToken.
// One token is minted up front for the whole run, so nothing refreshes it.
func NewStaticTokenSource(accessToken string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})
}
