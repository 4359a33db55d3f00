package models

import "errors"

// Error taxonomy shared by the services, the handlers and the board client.
// Services wrap these with context; callers branch with errors.Is.
var (
	// ErrValidation covers out-of-range or non-numeric fields at commit time.
	ErrValidation = errors.New("validation failed")
	// ErrConflict covers duplicate clan or player names.
	ErrConflict = errors.New("already exists")
	// ErrNotFound covers stale ids, typically after a concurrent deletion.
	ErrNotFound = errors.New("not found")
	// ErrSessionExpired forces a logout; unsaved local edits are discarded.
	ErrSessionExpired = errors.New("session expired")
)
