package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input validation errors (400)
	ErrValidation      = fmt.Errorf("validation failed")
	ErrInvalidFileType = fmt.Errorf("%w: invalid file type", ErrValidation)
	ErrFileTooLarge    = fmt.Errorf("%w: file too large", ErrValidation)

	// Authentication errors (401)
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	ErrTokenExpired       = fmt.Errorf("%w: token expired", ErrUnauthorized)
	ErrTokenInvalid       = fmt.Errorf("%w: invalid token", ErrUnauthorized)

	// Request and resource errors
	ErrRateLimited = fmt.Errorf("too many requests")
	ErrNotFound    = fmt.Errorf("not found")

	// Collaborator errors
	ErrDispatchFailure  = fmt.Errorf("notification dispatch failed")
	ErrStoreUnavailable = fmt.Errorf("store unavailable")
)
