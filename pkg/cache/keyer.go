package cache

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey addresses the tiled layout of a scene.
	LayoutKey(sceneHash string, opts LayoutKeyOpts) string

	// ArtifactKey addresses a rendered artifact of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the inputs, besides the scene itself, that change a
// tiled layout. Zero values mean "as declared by the scene".
type LayoutKeyOpts struct {
	Width   int  `json:"width,omitempty"`
	Height  int  `json:"height,omitempty"`
	Spacing *int `json:"spacing,omitempty"`
}

// ArtifactKeyOpts holds the inputs that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format    string `json:"format"`
	Style     string `json:"style,omitempty"`
	Labels    bool   `json:"labels,omitempty"`
	GridLines bool   `json:"grid_lines,omitempty"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sceneHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
