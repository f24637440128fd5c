// Package pipeline turns a scene into frame artifacts.
//
// The pipeline is shared by the render command and the HTTP host. It lays
// the scene out, paints it onto one canvas per requested format and caches
// the encoded bytes under a fingerprint of everything that affects them,
// so an unchanged scene is never repainted.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(0), nil, logger)
//	result, err := runner.Render(ctx, s, view.Forward(), pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	    Width:   800,
//	    Height:  600,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nodecanvas/pkg/cache"
	"github.com/matzehuels/nodecanvas/pkg/errors"
	"github.com/matzehuels/nodecanvas/pkg/render"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600

	// DefaultScale is the default PNG pixel density.
	DefaultScale = 1.0

	// MaxScale bounds the PNG pixel density.
	MaxScale = 4.0
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains the configuration of one pipeline run.
type Options struct {
	Formats []string `json:"formats,omitempty"`
	Width   int      `json:"width,omitempty"`
	Height  int      `json:"height,omitempty"`
	// Scale multiplies the PNG pixel size. SVG output is resolution
	// independent and ignores it.
	Scale      float64 `json:"scale,omitempty"`
	ShowLabels bool    `json:"show_labels,omitempty"`
	// EmbedFont inlines the Go Mono font into SVG output.
	EmbedFont bool `json:"embed_font,omitempty"`
	// Refresh skips cache reads; results are still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Theme colors the frame. The zero value means render.DefaultTheme.
	Theme  render.Theme       `json:"-"`
	Ribbon render.RibbonStyle `json:"-"`
	// Preview is the pending connection to draw, if any.
	Preview *render.Preview `json:"-"`
	Logger  *log.Logger     `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// SceneHash is the fingerprint the artifacts are cached under.
	SceneHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount       int
	ConnectionCount int
	LayoutTime      time.Duration
	RenderTime      time.Duration
}

// CacheInfo tracks which artifacts came from the cache.
type CacheInfo struct {
	// Hits lists the formats served from the cache.
	Hits []string
	// RenderHit reports whether every artifact came from the cache.
	RenderHit bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := errors.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults normalizes formats, applies defaults and checks
// the frame size. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	seen := make(map[string]bool, len(o.Formats))
	formats := o.Formats[:0:0]
	for _, f := range o.Formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if seen[f] {
			continue
		}
		seen[f] = true
		formats = append(formats, f)
	}
	if err := ValidateFormats(formats); err != nil {
		return err
	}
	o.Formats = formats

	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale %g outside (0, %g]", o.Scale, MaxScale)
	}
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if err := errors.ValidateDimensions(o.pixelWidth(), o.pixelHeight()); err != nil {
		return err
	}
	if o.Theme == (render.Theme{}) {
		o.Theme = render.DefaultTheme()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

func (o *Options) pixelWidth() int  { return int(float64(o.Width)*o.Scale + 0.5) }
func (o *Options) pixelHeight() int { return int(float64(o.Height)*o.Scale + 0.5) }

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:     format,
		Width:      o.Width,
		Height:     o.Height,
		ShowLabels: o.ShowLabels,
		Style:      styleHash(o.Theme, o.Ribbon),
	}
	switch format {
	case FormatPNG:
		opts.Scale = o.Scale
	case FormatSVG:
		opts.EmbedFont = o.EmbedFont
	}
	return opts
}
