package cache

import "time"

// Default lifetimes of cache entries.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// LayoutKeyOpts are the inputs besides the scene document that change a
// computed layout.
type LayoutKeyOpts struct {
	// Version invalidates layouts computed by an older attachment
	// algorithm.
	Version string `json:"version,omitempty"`
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	Unpinned   bool   `json:"unpinned,omitempty"`
	Detailed   bool   `json:"detailed,omitempty"`
	Shadows    bool   `json:"shadows,omitempty"`
	ToolTips   bool   `json:"tooltips,omitempty"`
	EdgeLabels bool   `json:"edge_labels,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey keys a layout by the hash of its scene document.
	LayoutKey(sceneHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys a rendered artifact by its layout fingerprint.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key inputs into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sceneHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
