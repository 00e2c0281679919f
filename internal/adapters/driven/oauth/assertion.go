package oauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AssertionLifetime is the validity window written into every claim set.
const AssertionLifetime = 30 * time.Minute

// ClaimSet is the payload of a JWT-bearer assertion.
// Timestamps are whole seconds since the Unix epoch.
type ClaimSet struct {
	Audience string `json:"aud"`
	Expiry   int64  `json:"exp"`
	IssuedAt int64  `json:"iat"`
	Issuer   string `json:"iss"`
	Scope    string `json:"scope"`
}

// Ensure ClaimSet can be handed to golang-jwt.
var _ jwt.Claims = ClaimSet{}

// NewClaimSet builds the claims for one token request.
// The audience is the key's token endpoint and the issuer its client email.
func NewClaimSet(key *ServiceAccountKey, scope string, now time.Time) ClaimSet {
	iat := now.Unix()
	return ClaimSet{
		Audience: key.TokenURI,
		Issuer:   key.ClientEmail,
		Scope:    scope,
		IssuedAt: iat,
		Expiry:   iat + int64(AssertionLifetime/time.Second),
	}
}

// GetExpirationTime implements jwt.Claims.
func (c ClaimSet) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.Expiry, 0)), nil
}

// GetIssuedAt implements jwt.Claims.
func (c ClaimSet) GetIssuedAt() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.IssuedAt, 0)), nil
}

// GetNotBefore implements jwt.Claims.
func (c ClaimSet) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

// GetIssuer implements jwt.Claims.
func (c ClaimSet) GetIssuer() (string, error) {
	return c.Issuer, nil
}

// GetSubject implements jwt.Claims.
func (c ClaimSet) GetSubject() (string, error) {
	return "", nil
}

// GetAudience implements jwt.Claims.
func (c ClaimSet) GetAudience() (jwt.ClaimStrings, error) {
	return jwt.ClaimStrings{c.Audience}, nil
}

// Assertion encodes and signs the claim set as a compact JWS:
// base64url(header) "." base64url(claims) "." base64url(signature).
func Assertion(claims ClaimSet, signer Signer) (string, error) {
	token := jwt.NewWithClaims(signingMethod{signer: signer}, claims)
	signed, err := token.SignedString(nil)
	if err != nil {
		if errors.Is(err, ErrSigningFailure) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrSigningFailure, err)
	}
	return signed, nil
}

// signingMethod adapts a Signer to jwt.SigningMethod so golang-jwt handles
// the header and segment encoding.
type signingMethod struct {
	signer Signer
}

func (m signingMethod) Alg() string {
	return m.signer.Alg()
}

func (m signingMethod) Sign(signingString string, _ any) ([]byte, error) {
	return m.signer.Sign(signingString)
}

func (m signingMethod) Verify(string, []byte, any) error {
	return jwt.ErrSignatureInvalid
}
