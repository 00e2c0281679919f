package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// GrantTypeJWTBearer is the grant type for JWT bearer assertions.
	GrantTypeJWTBearer = "urn:ietf:params:oauth:grant-type:jwt-bearer"

	// DefaultTimeout bounds a token exchange when no timeout is configured.
	DefaultTimeout = 30 * time.Second

	// maxErrorBody caps how much of a failed response is kept for diagnostics.
	maxErrorBody = 64 * 1024
)

// TokenResponse is the token endpoint's answer to a JWT-bearer grant.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   uint64 `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// Exchanger trades signed assertions for access tokens.
type Exchanger struct {
	client *http.Client
}

// NewExchanger creates an Exchanger whose requests time out after timeout.
// A zero or negative timeout uses DefaultTimeout.
func NewExchanger(timeout time.Duration) *Exchanger {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Exchanger{client: &http.Client{Timeout: timeout}}
}

// NewExchangerWithClient creates an Exchanger on a caller-supplied client.
func NewExchangerWithClient(client *http.Client) *Exchanger {
	if client == nil {
		return NewExchanger(0)
	}
	return &Exchanger{client: client}
}

// Exchange performs one POST to tokenURI carrying the assertion in the query
// string and an empty body. There is no retry.
func (e *Exchanger) Exchange(ctx context.Context, tokenURI, assertion string) (*TokenResponse, error) {
	endpoint, err := exchangeURL(tokenURI, assertion)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrNetwork, err)
	}
	req.ContentLength = 0
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return decodeTokenResponse(resp.Body)
}

// wireTokenResponse tells absent fields apart from zero values.
type wireTokenResponse struct {
	AccessToken *string `json:"access_token"`
	ExpiresIn   *uint64 `json:"expires_in"`
	TokenType   *string `json:"token_type"`
}

// decodeTokenResponse requires all three fields and a non-empty access_token.
func decodeTokenResponse(r io.Reader) (*TokenResponse, error) {
	var wire wireTokenResponse
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	switch {
	case wire.AccessToken == nil || *wire.AccessToken == "":
		return nil, fmt.Errorf("%w: access_token missing", ErrDecode)
	case wire.ExpiresIn == nil:
		return nil, fmt.Errorf("%w: expires_in missing", ErrDecode)
	case wire.TokenType == nil:
		return nil, fmt.Errorf("%w: token_type missing", ErrDecode)
	}

	return &TokenResponse{
		AccessToken: *wire.AccessToken,
		ExpiresIn:   *wire.ExpiresIn,
		TokenType:   *wire.TokenType,
	}, nil
}

// exchangeURL appends the grant parameters to the token endpoint.
func exchangeURL(tokenURI, assertion string) (string, error) {
	u, err := parseTokenURI(tokenURI)
	if err != nil {
		return "", err
	}

	query := "grant_type=" + url.QueryEscape(GrantTypeJWTBearer) +
		"&assertion=" + url.QueryEscape(assertion)
	if u.RawQuery != "" {
		query = u.RawQuery + "&" + query
	}
	u.RawQuery = query

	return u.String(), nil
}
