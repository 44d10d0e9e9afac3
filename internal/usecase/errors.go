package usecase

import "errors"

var (
	// ErrStoreUnavailable means a required backing store is not configured.
	ErrStoreUnavailable = errors.New("backing store not configured")
	// ErrRateLimited means the caller exhausted today's operation quota.
	ErrRateLimited = errors.New("daily operation limit reached")
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidInput means a required field is missing or malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized means the supplied credentials do not match.
	ErrUnauthorized = errors.New("invalid credentials")
)
