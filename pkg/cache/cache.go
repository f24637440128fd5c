// Package cache stores rendered frame artifacts and auto-arrange results.
//
// Implementations:
//   - [NullCache] never stores anything and disables caching.
//   - [MemoryCache] keeps entries in a mutex-guarded map, for the HTTP host.
//   - [FileCache] keeps entries as JSON files, for repeated CLI runs.
//   - [RedisCache] shares entries between processes through Redis.
//
// Keys are produced by a [Keyer] from content hashes, so two scenes that
// paint identically share artifacts.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. A zero ttl means the entry
// never expires. All implementations are safe for concurrent use.
type Cache interface {
	// Get returns the stored data and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Default lifetimes per entry kind.
const (
	// TTLArtifact is how long rendered SVG and PNG frames are kept.
	TTLArtifact = time.Hour

	// TTLArrange is how long graphviz positions are kept. They only depend
	// on the scene structure, so they outlive artifacts.
	TTLArrange = 24 * time.Hour
)

// NullCache misses on every Get and drops every Set.
type NullCache struct{}

// NewNullCache returns a cache that disables caching.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
