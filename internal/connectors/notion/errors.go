package notion

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jomei/notionapi"

	"github.com/wim-web/bookin/internal/core/domain"
)

// Notion API errors.
var (
	// ErrUnauthorized indicates an invalid integration token or a database
	// not shared with the integration.
	ErrUnauthorized = fmt.Errorf("notion: unauthorised: %w", domain.ErrAuthInvalid)

	// ErrNotFound indicates the database or page does not exist.
	ErrNotFound = fmt.Errorf("notion: object not found: %w", domain.ErrNotFound)

	// ErrRateLimited indicates the request rate limit was exceeded.
	ErrRateLimited = fmt.Errorf("notion: rate limited: %w", domain.ErrRateLimited)
)

// APIError is a Notion error response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion: API error %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap returns the sentinel matching the status code, if any.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized, e.Code == "restricted_resource":
		return ErrUnauthorized
	case e.StatusCode == http.StatusNotFound, e.Code == "object_not_found":
		return ErrNotFound
	case e.StatusCode == http.StatusTooManyRequests, e.Code == "rate_limited":
		return ErrRateLimited
	default:
		return nil
	}
}

// WrapError converts a notionapi error to *APIError. Other errors are
// returned unchanged.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var limited *notionapi.RateLimitedError
	if errors.As(err, &limited) {
		return &APIError{
			StatusCode: http.StatusTooManyRequests,
			Code:       "rate_limited",
			Message:    limited.Message,
		}
	}

	var nerr *notionapi.Error
	if !errors.As(err, &nerr) {
		return err
	}

	return &APIError{
		StatusCode: nerr.Status,
		Code:       string(nerr.Code),
		Message:    nerr.Message,
	}
}

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNotFound returns true if the error indicates a missing object.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}
