// Package cache stores traversal results so read-only traversals can be
// answered without a round trip to the server.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: shared cache for several processes
//
// [Scoped] prefixes every key so that results from different servers never
// collide in one backend.
//
// # Usage
//
// Put a caching [Strategy] in front of the remote strategy:
//
//	c, _ := cache.NewFileCache(dir)
//	remote := aio.NewRemoteStrategy(client)
//	strategies := traversal.NewStrategies(cache.NewStrategy(cache.Scoped(c, addr), time.Hour, remote))
//
// Traversals containing mutating steps (addV, addE, property, drop) always
// bypass the cache.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
