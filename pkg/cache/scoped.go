package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// The HTTP server scopes keys per source so that two item stores with
// identical snapshots never share entries by accident.
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "mongo:roadmap:")
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

// ItemsKey generates a prefixed key for item snapshots.
func (k *ScopedKeyer) ItemsKey(source, ref string) string {
	return k.prefix + k.inner.ItemsKey(source, ref)
}

// FrameKey generates a prefixed key for frames.
func (k *ScopedKeyer) FrameKey(itemsHash string, opts FrameKeyOpts) string {
	return k.prefix + k.inner.FrameKey(itemsHash, opts)
}
