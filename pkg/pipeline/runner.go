package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nodecanvas/pkg/cache"
	"github.com/matzehuels/nodecanvas/pkg/errors"
	"github.com/matzehuels/nodecanvas/pkg/geom"
	"github.com/matzehuels/nodecanvas/pkg/observability"
	"github.com/matzehuels/nodecanvas/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. It does not
// lock the scene: callers must not mutate the scene during Render.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Render produces one artifact per requested format for s seen through
// view. Artifacts already in the cache are reused; the rest are painted
// and stored.
func (r *Runner) Render(ctx context.Context, s *scene.Scene, view geom.Matrix, opts Options) (*Result, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "scene is nil")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		SceneHash: Fingerprint(s, view, opts.Preview),
		Artifacts: make(map[string][]byte, len(opts.Formats)),
	}
	result.Stats.NodeCount = s.Len()
	result.Stats.ConnectionCount = len(s.Connections())

	var missing []string
	for _, format := range opts.Formats {
		if data, ok := r.lookup(ctx, result.SceneHash, format, opts); ok {
			result.Artifacts[format] = data
			result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
			continue
		}
		missing = append(missing, format)
	}
	result.CacheInfo.RenderHit = len(missing) == 0
	if result.CacheInfo.RenderHit {
		r.Logger.Debug("frame served from cache", "hash", result.SceneHash[:12], "formats", opts.Formats)
		return result, nil
	}

	hooks := observability.Frame()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	err := r.renderMissing(ctx, s, view, opts, missing, result)
	result.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, missing, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("rendered frame",
		"formats", missing,
		"nodes", result.Stats.NodeCount,
		"connections", result.Stats.ConnectionCount,
		"duration", result.Stats.RenderTime)
	return result, nil
}

func (r *Runner) renderMissing(ctx context.Context, s *scene.Scene, view geom.Matrix, opts Options, missing []string, result *Result) error {
	hooks := observability.Frame()
	hooks.OnLayoutStart(ctx, s.Len())
	start := time.Now()
	layoutFrame(s, opts)
	result.Stats.LayoutTime = time.Since(start)
	hooks.OnLayoutComplete(ctx, result.Stats.LayoutTime)

	for _, format := range missing {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(errors.ErrCodeTimeout, err, "render %s", format)
		}
		data, err := renderFormat(s, view, opts, format)
		if err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
		}
		result.Artifacts[format] = data
		r.store(ctx, result.SceneHash, format, opts, data)
	}
	return nil
}

func (r *Runner) lookup(ctx context.Context, hash, format string, opts Options) ([]byte, bool) {
	if opts.Refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format)))
	if err != nil {
		r.Logger.Warn("cache read failed", "format", format, "error", err)
		hit = false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, format)
		return data, true
	}
	observability.Cache().OnCacheMiss(ctx, format)
	return nil, false
}

func (r *Runner) store(ctx context.Context, hash, format string, opts Options, data []byte) {
	key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		r.Logger.Warn("cache write failed", "format", format, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, format, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
