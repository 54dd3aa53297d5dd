package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrQueryTooShort indicates the trimmed search query is under two characters
	ErrQueryTooShort = errors.New("search query must be at least 2 characters")

	// ErrNoResults indicates a successful search that matched nothing.
	// Non-fatal: it coexists with a valid, empty result set.
	ErrNoResults = errors.New("no images matched the search")

	// ErrSearchFailed indicates a transport or decode failure; stale results
	// are cleared so they are never shown alongside it
	ErrSearchFailed = errors.New("image search request failed")

	// ErrServiceOffline indicates the image service is unreachable
	ErrServiceOffline = errors.New("image service is unreachable")

	// ErrAuthFailed indicates the identity service rejected the credentials
	ErrAuthFailed = errors.New("authentication failed")
)
