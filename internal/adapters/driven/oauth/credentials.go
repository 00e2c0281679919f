package oauth

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// ServiceAccountKey is the JSON key file issued for a Google service account.
// Only ClientEmail, TokenURI and PrivateKey take part in the token flow; the
// other fields are carried along for display.
type ServiceAccountKey struct {
	Type                    string `json:"type"`
	ProjectID               string `json:"project_id"`
	PrivateKeyID            string `json:"private_key_id"`
	PrivateKey              string `json:"private_key"`
	ClientEmail             string `json:"client_email"`
	ClientID                string `json:"client_id"`
	AuthURI                 string `json:"auth_uri"`
	TokenURI                string `json:"token_uri"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url"`
	ClientX509CertURL       string `json:"client_x509_cert_url"`
}

// ParseServiceAccountKey decodes a service-account key document.
// The private key is not parsed here; a bad key surfaces when signing.
func ParseServiceAccountKey(data []byte) (*ServiceAccountKey, error) {
	var key ServiceAccountKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCredential, err)
	}

	var missing []string
	if strings.TrimSpace(key.ClientEmail) == "" {
		missing = append(missing, "client_email")
	}
	if strings.TrimSpace(key.TokenURI) == "" {
		missing = append(missing, "token_uri")
	}
	if strings.TrimSpace(key.PrivateKey) == "" {
		missing = append(missing, "private_key")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedCredential, strings.Join(missing, ", "))
	}
	if _, err := parseTokenURI(key.TokenURI); err != nil {
		return nil, err
	}

	return &key, nil
}

// parseTokenURI requires an absolute URL with a scheme and host.
func parseTokenURI(tokenURI string) (*url.URL, error) {
	u, err := url.Parse(tokenURI)
	if err != nil {
		return nil, fmt.Errorf("%w: token_uri: %w", ErrMalformedCredential, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: token_uri %q is not absolute", ErrMalformedCredential, tokenURI)
	}
	return u, nil
}

// LoadServiceAccountKey reads and parses a key file from disk.
func LoadServiceAccountKey(path string) (*ServiceAccountKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	return ParseServiceAccountKey(data)
}
