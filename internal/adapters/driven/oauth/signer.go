package oauth

import (
	"crypto/rsa"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer produces the signature segment of an assertion.
// Implementations receive the "header.payload" signing string.
type Signer interface {
	// Alg returns the JWS algorithm identifier written into the header.
	Alg() string
	// Sign signs the signing string and returns the raw signature bytes.
	Sign(signingString string) ([]byte, error)
}

// Ensure RS256Signer implements Signer.
var _ Signer = (*RS256Signer)(nil)

// RS256Signer signs with RSASSA-PKCS1-v1_5 over SHA-256.
// The scheme is deterministic: equal inputs give equal signatures.
type RS256Signer struct {
	key *rsa.PrivateKey
}

// NewRS256Signer parses a PEM-encoded RSA private key (PKCS#1 or PKCS#8).
func NewRS256Signer(privateKeyPEM string) (*RS256Signer, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSigningKey, err)
	}
	return &RS256Signer{key: key}, nil
}

// NewRS256SignerFromKey wraps an already parsed key.
func NewRS256SignerFromKey(key *rsa.PrivateKey) *RS256Signer {
	return &RS256Signer{key: key}
}

// Alg returns "RS256".
func (s *RS256Signer) Alg() string {
	return jwt.SigningMethodRS256.Alg()
}

// Sign implements Signer.
func (s *RS256Signer) Sign(signingString string) ([]byte, error) {
	sig, err := jwt.SigningMethodRS256.Sign(signingString, s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSigningFailure, err)
	}
	return sig, nil
}

// PublicKey returns the verification key matching this signer.
func (s *RS256Signer) PublicKey() *rsa.PublicKey {
	return &s.key.PublicKey
}
