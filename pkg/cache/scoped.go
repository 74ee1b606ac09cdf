package cache

// ScopedKeyer prefixes the keys of another keyer, isolating dashboards
// that share one cache:
//
//	keyer := cache.NewScopedKeyer(nil, "dash:sales:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner uses
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) DatasetKey(contentHash, sheet string) string {
	return k.prefix + k.inner.DatasetKey(contentHash, sheet)
}

func (k *ScopedKeyer) ArtifactKey(panelHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(panelHash, opts)
}
