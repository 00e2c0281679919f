// Package oauth implements the two-legged OAuth flow used to authenticate a
// Google service account: a JWT-bearer assertion is signed with the account's
// private key and exchanged at the token endpoint for a short-lived access token.
//
// The flow has three steps, each with its own failure mode:
//
//	key, err := oauth.ParseServiceAccountKey(data)       // ErrMalformedCredential
//	signer, err := oauth.NewRS256Signer(key.PrivateKey)  // ErrInvalidSigningKey
//	jwt, err := oauth.Assertion(oauth.NewClaimSet(key, scope, time.Now()), signer)
//	token, err := oauth.NewExchanger(0).Exchange(ctx, key.TokenURI, jwt)
//
// TwoLeggedFlow wires these together. Tokens are never cached: every call mints
// a fresh assertion and performs a fresh exchange.
package oauth
