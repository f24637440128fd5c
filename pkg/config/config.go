// Package config loads nodecanvas settings.
//
// Settings come from three layers, later ones winning:
//
//  1. [Default] values
//  2. an optional TOML file
//  3. environment variables prefixed with NODECANVAS_
//
// Environment names follow the TOML sections, for example
// NODECANVAS_CANVAS_WIDTH, NODECANVAS_SERVER_ADDR or
// NODECANVAS_THEME="node:#eeeeee,wire:#333333".
package config

import (
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/matzehuels/nodecanvas/pkg/errors"
	"github.com/matzehuels/nodecanvas/pkg/render"
	"github.com/matzehuels/nodecanvas/pkg/scene"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "NODECANVAS"

// Compatibility policy names.
const (
	CompatAny     = "any"
	CompatTagKind = "tag-kind"
)

// Config holds nodecanvas configuration.
type Config struct {
	Canvas CanvasConfig      `toml:"canvas"`
	Ribbon RibbonConfig      `toml:"ribbon"`
	Theme  map[string]string `toml:"theme"`
	Server ServerConfig      `toml:"server"`
	Cache  CacheConfig       `toml:"cache"`
}

// CanvasConfig controls frame output and scene behavior.
type CanvasConfig struct {
	Width      int      `toml:"width"`
	Height     int      `toml:"height"`
	Scale      float64  `toml:"scale"`
	Formats    []string `toml:"formats"`
	ShowLabels bool     `toml:"show_labels" split_words:"true"`
	EmbedFont  bool     `toml:"embed_font" split_words:"true"`
	// Arrange runs graphviz auto-arrange before the first frame.
	Arrange bool `toml:"arrange"`
	// Compatibility is "any" or "tag-kind".
	Compatibility string `toml:"compatibility"`
}

// RibbonConfig tunes connection drawing. Zero keeps the built-in values.
type RibbonConfig struct {
	Flatness     float64 `toml:"flatness"`
	Taper        float64 `toml:"taper"`
	PreviewTaper float64 `toml:"preview_taper" split_words:"true"`
}

// ServerConfig controls the HTTP host.
type ServerConfig struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout" split_words:"true"`
	WriteTimeout time.Duration `toml:"write_timeout" split_words:"true"`
	CacheEntries int           `toml:"cache_entries" split_words:"true"`
}

// CacheConfig controls the artifact cache.
type CacheConfig struct {
	// Dir overrides the default user cache directory.
	Dir      string `toml:"dir"`
	Disabled bool   `toml:"disabled"`
	// RedisURL, when set, replaces the file cache of the render command and
	// backs arrange results and frames of the serve host.
	RedisURL string `toml:"redis_url" split_words:"true"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Canvas: CanvasConfig{
			Width:         800,
			Height:        600,
			Scale:         1,
			Formats:       []string{"svg"},
			ShowLabels:    true,
			Compatibility: CompatAny,
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			CacheEntries: 64,
		},
	}
}

// Load builds the configuration from defaults, the TOML file at path (if
// path is not empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return errors.New(errors.ErrCodeFileNotFound, "config file %s not found", path)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	for _, f := range c.Canvas.Formats {
		if err := errors.ValidateFormat(f); err != nil {
			return err
		}
	}
	if err := errors.ValidateDimensions(c.Canvas.Width, c.Canvas.Height); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "canvas")
	}
	if c.Canvas.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas scale must be positive, got %g", c.Canvas.Scale)
	}
	switch c.Canvas.Compatibility {
	case CompatAny, CompatTagKind:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown compatibility %q (valid: %s, %s)",
			c.Canvas.Compatibility, CompatAny, CompatTagKind)
	}
	if c.Ribbon.Flatness < 0 || c.Ribbon.Taper < 0 || c.Ribbon.PreviewTaper < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "ribbon settings must not be negative")
	}
	for _, name := range sortedKeys(c.Theme) {
		if err := errors.ValidateHexColor(c.Theme[name]); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "theme %s", name)
		}
	}
	if _, err := c.RenderTheme(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "theme")
	}
	if err := errors.ValidateListenAddr(c.Server.Addr); err != nil {
		return err
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server timeouts must not be negative")
	}
	if u := c.Cache.RedisURL; u != "" && !strings.HasPrefix(u, "redis://") && !strings.HasPrefix(u, "rediss://") {
		return errors.New(errors.ErrCodeInvalidConfig, "cache redis_url must start with redis:// or rediss://")
	}
	return nil
}

// RenderTheme returns the default theme with the configured overrides.
func (c *Config) RenderTheme() (render.Theme, error) {
	th := render.DefaultTheme()
	for _, name := range sortedKeys(c.Theme) {
		if err := th.Set(name, c.Theme[name]); err != nil {
			return render.Theme{}, err
		}
	}
	return th, nil
}

// RibbonStyle converts the ribbon section for the renderer.
func (c *Config) RibbonStyle() render.RibbonStyle {
	return render.RibbonStyle{
		Flatness:     c.Ribbon.Flatness,
		Taper:        c.Ribbon.Taper,
		PreviewTaper: c.Ribbon.PreviewTaper,
	}
}

// CompatibilityPolicy returns the configured connection policy.
func (c *Config) CompatibilityPolicy() scene.Compatibility {
	if c.Canvas.Compatibility == CompatTagKind {
		return scene.TagKindCompatibility{}
	}
	return scene.AlwaysCompatible{}
}

// Write encodes the configuration as TOML.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
