package cache

// ScopedKeyer wraps a Keyer with a prefix so hosts sharing one cache keep
// separate namespaces. The HTTP host scopes keys by its scene ID:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "scene:"+id+":")
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

// ArtifactKey generates a prefixed key for a rendered frame.
func (k *ScopedKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sceneHash, opts)
}

// ArrangeKey generates a prefixed key for auto-arrange positions.
func (k *ScopedKeyer) ArrangeKey(dotHash string, opts ArrangeKeyOpts) string {
	return k.prefix + k.inner.ArrangeKey(dotHash, opts)
}
