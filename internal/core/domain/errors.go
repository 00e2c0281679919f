package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfigInvalid indicates required settings are missing or malformed.
	ErrConfigInvalid = errors.New("invalid configuration")

	// Authentication Errors.

	// ErrAuthRequired indicates a downstream call was attempted without a token.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the credentials were rejected.
	ErrAuthInvalid = errors.New("authentication invalid")

	// Downstream Errors.

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrListFiles indicates the file listing failed.
	ErrListFiles = errors.New("list files failed")

	// ErrWriteEntry indicates a database entry could not be created.
	ErrWriteEntry = errors.New("write entry failed")
)
