package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data. Scene fingerprints and DOT sources
// are reduced with it before they reach a [Keyer].
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns kind:sha256(json(hash, opts)).
func hashKey(kind, hash string, opts any) string {
	data, _ := json.Marshal(struct {
		Hash string `json:"hash"`
		Opts any    `json:"opts"`
	}{hash, opts})
	return kind + ":" + Hash(data)
}

// Keyer builds cache keys. Hosts that share one cache between scenes wrap
// the default keyer with [NewScopedKeyer].
type Keyer interface {
	// ArtifactKey generates a key for a rendered frame.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string

	// ArrangeKey generates a key for auto-arrange positions.
	ArrangeKey(dotHash string, opts ArrangeKeyOpts) string
}

// ArtifactKeyOpts holds the render options that change a frame's bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Scale      float64 `json:"scale,omitempty"`
	ShowLabels bool    `json:"show_labels,omitempty"`
	Style      string  `json:"style,omitempty"`
	EmbedFont  bool    `json:"embed_font,omitempty"`
}

// ArrangeKeyOpts holds the graphviz options that change node positions.
type ArrangeKeyOpts struct {
	RankDir string  `json:"rankdir"`
	NodeSep float64 `json:"nodesep"`
	RankSep float64 `json:"ranksep"`
	Margin  float64 `json:"margin"`
}

// DefaultKeyer produces unprefixed keys of the form kind:sha256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}

func (DefaultKeyer) ArrangeKey(dotHash string, opts ArrangeKeyOpts) string {
	return hashKey("arrange", dotHash, opts)
}
