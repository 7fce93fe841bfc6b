package cache

// ScopedKeyer puts every key of an inner Keyer under a scope, e.g. the
// build version. Layouts written by one release are then never served by
// another whose arithmetic may differ, even when both share a redis.
type ScopedKeyer struct {
	Keyer
	Scope string
}

// NewScopedKeyer scopes inner, or the default keyer when inner is nil.
// An empty scope leaves keys unchanged.
func NewScopedKeyer(inner Keyer, scope string) *ScopedKeyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{Keyer: inner, Scope: scope}
}

// LayoutKey returns "<scope>/<inner layout key>".
func (k *ScopedKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return k.scoped(k.Keyer.LayoutKey(sceneHash, opts))
}

// ArtifactKey returns "<scope>/<inner artifact key>".
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.scoped(k.Keyer.ArtifactKey(layoutHash, opts))
}

func (k *ScopedKeyer) scoped(key string) string {
	if k.Scope == "" {
		return key
	}
	return k.Scope + "/" + key
}
