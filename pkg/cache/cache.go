// Package cache provides the caching layer for gallery generation.
//
// Chart specs are deterministic in their module, seed and parameters, so
// repeated generation runs can reuse previously built specs and pages. The
// Cache interface abstracts the storage backend: a file-based cache for CLI
// usage, Redis for shared environments, and a null cache when caching is
// disabled.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per entry kind. Specs are pure functions of their
// key, so they live longer than assembled pages, which also depend on the
// configured rotation.
const (
	TTLSpec = 7 * 24 * time.Hour
	TTLPage = 24 * time.Hour
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// SpecKeyOpts are the parameters that change a chart spec for a given
// module and seed.
type SpecKeyOpts struct {
	Points     int `json:"points"`
	Categories int `json:"categories"`
	GridSize   int `json:"grid_size"`
	Width      int `json:"width"`
	Height     int `json:"height"`
}

// PageKeyOpts are the parameters that change a built page for a given
// state.
type PageKeyOpts struct {
	Plots    int      `json:"plots"`
	Modules  []string `json:"modules"`
	Points   int      `json:"points"`
	GridSize int      `json:"grid_size"`
	Seed     int64    `json:"seed"`
}

// Keyer generates cache keys for the gallery pipeline.
type Keyer interface {
	// SpecKey generates a key for a single chart spec.
	SpecKey(moduleID string, seed int64, opts SpecKeyOpts) string

	// PageKey generates a key for an assembled state page.
	PageKey(stateCode string, opts PageKeyOpts) string
}

// DefaultKeyer is the standard key generator. Keys embed a SHA-256 hash of
// the options so any parameter change produces a distinct key.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SpecKey generates a key for a single chart spec.
func (k *DefaultKeyer) SpecKey(moduleID string, seed int64, opts SpecKeyOpts) string {
	return hashKey("spec", moduleID, seed, opts)
}

// PageKey generates a key for an assembled state page.
func (k *DefaultKeyer) PageKey(stateCode string, opts PageKeyOpts) string {
	return hashKey("page", stateCode, opts)
}
