package cache

// ScopedKeyer wraps a Keyer with a prefix so separate galleries can share a
// backend without key collisions.
//
// Example usage:
//
//	// Keys isolated per gallery title
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "perf-gallery:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SpecKey generates a prefixed key for a chart spec.
func (k *ScopedKeyer) SpecKey(moduleID string, seed int64, opts SpecKeyOpts) string {
	return k.prefix + k.inner.SpecKey(moduleID, seed, opts)
}

// PageKey generates a prefixed key for an assembled state page.
func (k *ScopedKeyer) PageKey(stateCode string, opts PageKeyOpts) string {
	return k.prefix + k.inner.PageKey(stateCode, opts)
}
