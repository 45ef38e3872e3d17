package cache

// ScopedKeyer wraps a Keyer with a prefix, giving each tenant (or each
// profile the service was started with) its own cache namespace.
//
// Example usage:
//
//	// Keys shared by every request against one profile
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "profile:"+profileHash+":")
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

// SizingKey generates a prefixed key for sizing results.
func (k *ScopedKeyer) SizingKey(mode string, request any, opts SizingKeyOpts) string {
	return k.prefix + k.inner.SizingKey(mode, request, opts)
}

// ConfigKey generates a prefixed key for chart configurations.
func (k *ScopedKeyer) ConfigKey(specHash string, opts ConfigKeyOpts) string {
	return k.prefix + k.inner.ConfigKey(specHash, opts)
}
