// Package cache provides pluggable backends for caching HTTP responses.
//
// Three backends are available:
//   - file: persistent on-disk cache for CLI usage
//   - redis: shared cache for server deployments
//   - null: no-op cache for tests or when caching is disabled
//
// Values are opaque byte slices; callers own serialization. Keys are
// arbitrary strings and are hashed where the backend requires safe names.
package cache

import (
	"context"
	"time"
)

// Cache is the interface implemented by all cache backends.
type Cache interface {
	// Get retrieves a value by key. The second return value reports
	// whether the key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value under key. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
