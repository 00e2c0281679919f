package oauth

import (
	"errors"
	"fmt"
)

// Errors returned by the two-legged flow. All of them are terminal for the
// current run; nothing here is retried.
var (
	// ErrMalformedCredential indicates the service-account key could not be
	// parsed or lacks a required field.
	ErrMalformedCredential = errors.New("oauth: malformed service account credential")

	// ErrInvalidSigningKey indicates the private key is not a usable RSA key.
	ErrInvalidSigningKey = errors.New("oauth: invalid signing key")

	// ErrSigningFailure indicates the assertion could not be signed.
	ErrSigningFailure = errors.New("oauth: signing failure")

	// ErrNetwork indicates the token endpoint could not be reached.
	ErrNetwork = errors.New("oauth: network error")

	// ErrHTTP indicates the token endpoint answered with a non-success status.
	ErrHTTP = errors.New("oauth: token endpoint error")

	// ErrDecode indicates the token response did not match the expected schema.
	ErrDecode = errors.New("oauth: decode token response")
)

// HTTPError carries the status and body of a failed token exchange.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("oauth: token endpoint returned %d: %s", e.StatusCode, e.Body)
}

// Is lets errors.Is(err, ErrHTTP) match any HTTPError.
func (e *HTTPError) Is(target error) bool {
	return target == ErrHTTP
}

// StatusCode returns the HTTP status of a failed exchange, or 0 when err is
// not an HTTPError.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
