// Package cache stores computed frames and fetched item snapshots.
//
// A frame is a pure function of its inputs (items, resolved settings,
// viewport and the current day), so it can be cached under a content hash of
// those inputs and served again without recomputation. Backends implement
// [Cache]:
//
//   - [NullCache]: never stores anything (caching disabled, tests)
//   - [FileCache]: one JSON entry per key under a directory (CLI)
//   - [RedisCache]: a shared Redis instance (HTTP server)
//
// Keys are produced by a [Keyer] so that multi-tenant hosts can namespace
// them with [NewScopedKeyer].
package cache

import (
	"context"
	"time"
)

// Entry lifetimes.
const (
	// TTLFrame bounds how long a computed frame is served from cache. Frames
	// also key on the current day, so entries never outlive their day's data.
	TTLFrame = 24 * time.Hour

	// TTLItems bounds how long a snapshot from a remote source is reused.
	TTLItems = 10 * time.Minute
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored bytes and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys.
type Keyer interface {
	// ItemsKey identifies an item snapshot fetched from a remote source.
	ItemsKey(source, ref string) string

	// FrameKey identifies a computed frame.
	FrameKey(itemsHash string, opts FrameKeyOpts) string
}

// FrameKeyOpts holds everything besides the items that a frame depends on.
type FrameKeyOpts struct {
	SettingsHash string  `json:"settings"`
	ScrollTop    float64 `json:"scrollTop"`
	ScrollLeft   float64 `json:"scrollLeft"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Today        string  `json:"today"`
	Debug        bool    `json:"debug,omitempty"`
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ItemsKey returns "items:<source>:<ref>".
func (DefaultKeyer) ItemsKey(source, ref string) string {
	return "items:" + source + ":" + ref
}

// FrameKey returns "frame:<hash>" over the items hash and options.
func (DefaultKeyer) FrameKey(itemsHash string, opts FrameKeyOpts) string {
	return hashKey("frame", itemsHash, opts)
}
