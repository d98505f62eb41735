// Package cache provides the artifact cache shared by the CLI and the
// preview server.
//
// # Overview
//
// The pipeline caches each stage result under a content-derived key:
//
//   - Graph: the graph built from an input file (report or graph JSON),
//     keyed by input hash and quote book hash
//   - Layout: the serialized lane layout, keyed by graph hash and viewport
//   - Artifact: rendered bytes, keyed by layout hash and format
//
// Keys are produced by a [Keyer]. [RedisCache] stores them under its
// namespace, so several deployments can share one Redis instance.
//
// # Backends
//
//   - [NullCache]: caching disabled
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (preview server deployments)
//
// Wrap any backend with [Instrument] to report hits, misses and writes to
// the registered observability hooks.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. Callers treat any error as a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop every entry at once.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// TTLs per artifact class. Built graphs depend on the quote book, which is
// edited by hand, so they expire first.
const (
	TTLGraph    = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
