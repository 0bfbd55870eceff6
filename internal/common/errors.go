package common

import "errors"

// Sentinel errors shared between the gateway, services and the CLI.
// Callers should match them with errors.Is.
var (
	// Auth errors.
	ErrUnauthorized     = errors.New("unauthorized")
	ErrNotAuthenticated = errors.New("not authenticated")

	// Upload validation errors (detected client-side, before any request).
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds size limit")

	// Batch machine errors.
	ErrNoActiveJob      = errors.New("no active batch job")
	ErrSubmitInProgress = errors.New("submission already in progress")

	// Generic.
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)
