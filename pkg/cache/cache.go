// Package cache provides byte-oriented caching for rendered charts.
//
// Keys cover two pipeline stages: computed layouts (chart content hash
// plus layout options) and rendered artifacts (the same hash plus render
// options). The pipeline currently caches artifacts only; the layout key
// schema is reserved for layouts expensive enough to be worth storing.
// Three backends implement the [Cache] interface:
//
//   - FileCache: directory-based, for CLI usage
//   - RedisCache: shared cache for the preview server
//   - NullCache: caching disabled
//
// Keys are produced by a [Keyer] so that CLI and server agree on key
// layout, and can be namespaced with [NewScopedKeyer].
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with optional expiration.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the options that affect layout computation and hence
// participate in the layout cache key.
type LayoutKeyOpts struct {
	Width      float64
	Height     float64
	TickTarget int
	GapRatio   float64
}

// ArtifactKeyOpts are the options that affect rendered output and hence
// participate in the artifact cache key.
type ArtifactKeyOpts struct {
	Format    string
	Gridlines bool
	AutoFill  bool
}

// Keyer generates cache keys for pipeline stages.
type Keyer interface {
	// LayoutKey generates a key for a computed layout.
	LayoutKey(chartHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(chartHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes options into fixed-prefix keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(chartHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", chartHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(chartHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", chartHash, opts)
}
