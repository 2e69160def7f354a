// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across storage/query/auth layers.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a uniqueness violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnauthorized indicates failed credential verification.
	ErrUnauthorized = errors.New("invalid credentials")

	// ErrRateLimited indicates temporary sign-in lockout after repeated failures.
	ErrRateLimited = errors.New("rate limited")

	// ErrNoSession indicates there is no current session (or it expired).
	ErrNoSession = errors.New("no session")
)
