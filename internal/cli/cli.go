// Package cli implements the nodecanvas command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nodecanvas/pkg/buildinfo"
	"github.com/matzehuels/nodecanvas/pkg/cache"
	"github.com/matzehuels/nodecanvas/pkg/config"
	"github.com/matzehuels/nodecanvas/pkg/layout"
	"github.com/matzehuels/nodecanvas/pkg/pipeline"
	"github.com/matzehuels/nodecanvas/pkg/render"
	"github.com/matzehuels/nodecanvas/pkg/render/sink"
	"github.com/matzehuels/nodecanvas/pkg/render/skins"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "nodecanvas"

	// configFile is looked up in the config directory when --config is unset.
	configFile = "config.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is the --config flag. Empty means the default location,
	// if a file exists there.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Nodecanvas draws and edits node graphs",
		Long:         `Nodecanvas is a node-graph canvas: nodes with typed items and connectors, wired by ribbon connections, edited with the pointer in the terminal or over HTTP, and rendered to SVG or PNG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default: "+filepath.Join("$XDG_CONFIG_HOME", appName, configFile)+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.demoCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the configuration from --config, or from the default
// config file when one exists.
func (c *CLI) loadConfig() (*config.Config, error) {
	path := c.ConfigPath
	if path == "" {
		if dir, err := configDir(); err == nil {
			if p := filepath.Join(dir, configFile); fileExists(p) {
				path = p
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	return cfg, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// pipelineOptions converts the canvas section into pipeline options.
func pipelineOptions(cfg *config.Config, logger *log.Logger) (pipeline.Options, error) {
	theme, err := cfg.RenderTheme()
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Formats:    append([]string(nil), cfg.Canvas.Formats...),
		Width:      cfg.Canvas.Width,
		Height:     cfg.Canvas.Height,
		Scale:      cfg.Canvas.Scale,
		ShowLabels: cfg.Canvas.ShowLabels,
		EmbedFont:  cfg.Canvas.EmbedFont,
		Theme:      theme,
		Ribbon:     cfg.RibbonStyle(),
		Logger:     logger,
	}, nil
}

// svgMeasurer measures with the face the SVG and PNG sinks draw with, so
// hosts that pick or arrange see the same geometry the pipeline renders.
func svgMeasurer() layout.Measurer {
	f := &render.Frame{Canvas: sink.NewSVGCanvas(1, 1), Registry: skins.NewRegistry()}
	return f.Measurer()
}

// =============================================================================
// Runner Factory
// =============================================================================

// redisDialTimeout bounds the initial ping of a configured Redis cache.
const redisDialTimeout = 3 * time.Second

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(cfg *config.Config, noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.newCache(cfg, noCache), nil, c.Logger)
}

func (c *CLI) newCache(cfg *config.Config, noCache bool) cache.Cache {
	if noCache || cfg.Cache.Disabled {
		return cache.NewNullCache()
	}
	if rc := openRedis(cfg, c.Logger); rc != nil {
		return rc
	}
	dir, err := resolveCacheDir(cfg)
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "dir", dir, "error", err)
		return cache.NewNullCache()
	}
	return fc
}

// openRedis connects to the configured Redis cache. It returns nil when no
// redis_url is set or the server is unreachable.
func openRedis(cfg *config.Config, logger *log.Logger) *cache.RedisCache {
	if cfg.Cache.RedisURL == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
	if err != nil {
		logger.Warn("redis cache unavailable", "error", err)
		return nil
	}
	logger.Debug("using redis cache")
	return rc
}

// =============================================================================
// Paths
// =============================================================================

// resolveCacheDir returns the configured cache directory or the default.
func resolveCacheDir(cfg *config.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/nodecanvas/).
func cacheDir() (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// configDir returns the config directory using XDG standard (~/.config/nodecanvas/).
func configDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
