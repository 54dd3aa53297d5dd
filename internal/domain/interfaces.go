package domain

import "context"

// Storage is the persistent key-value adapter behind the local stores.
// It is best-effort, not authoritative: Get reports absence on any read
// or decode failure, and Set/Remove never surface errors to callers.
// Higher stores degrade to session-only behavior when the medium fails.
type Storage interface {
	// Get decodes the value at key into dest and reports whether a
	// usable value was present.
	Get(key string, dest interface{}) bool

	// Set stores the JSON encoding of value at key.
	Set(key string, value interface{})

	// Remove deletes the value at key.
	Remove(key string)

	Close() error
}

// SearchRepository performs paged image searches against the provider.
type SearchRepository interface {
	Search(ctx context.Context, query string, page int) (*SearchResult, error)
}

// ImageFetcher retrieves raw image bytes for downloading.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
