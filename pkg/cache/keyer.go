package cache

import "time"

// Key kinds.
const (
	kindArtifact = "artifact"
	kindDataset  = "dataset"
)

// Keyer derives cache keys from content hashes.
type Keyer interface {
	// DatasetKey addresses an imported dataset by the hash of the file
	// contents and the worksheet read from it.
	DatasetKey(contentHash, sheet string) string
	// ArtifactKey addresses a rendered panel by the hash of its resolved
	// definition and data.
	ArtifactKey(panelHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render settings that change an artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Theme  string  `json:"theme,omitempty"`
}

// DefaultKeyer hashes every component into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) DatasetKey(contentHash, sheet string) string {
	return hashKey(kindDataset, contentHash, sheet)
}

func (DefaultKeyer) ArtifactKey(panelHash string, opts ArtifactKeyOpts) string {
	return hashKey(kindArtifact, panelHash, opts)
}

// Default time-to-live per entry kind.
const (
	TTLDataset  = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
