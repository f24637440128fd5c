package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nodecanvas/internal/sample"
	"github.com/matzehuels/nodecanvas/pkg/arrange"
	"github.com/matzehuels/nodecanvas/pkg/buildinfo"
	"github.com/matzehuels/nodecanvas/pkg/cache"
	"github.com/matzehuels/nodecanvas/pkg/config"
	"github.com/matzehuels/nodecanvas/pkg/errors"
	"github.com/matzehuels/nodecanvas/pkg/geom"
	"github.com/matzehuels/nodecanvas/pkg/interact"
	"github.com/matzehuels/nodecanvas/pkg/observability"
	"github.com/matzehuels/nodecanvas/pkg/pipeline"
	"github.com/matzehuels/nodecanvas/pkg/render"
)

// shutdownTimeout bounds graceful shutdown after the context is cancelled.
const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command, which hosts the sample scene
// over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sample scene over HTTP",
		Long: `Serve the sample scene over HTTP.

  GET  /scene.svg   current frame (also /scene.png)
  POST /events      pointer event, e.g. {"type":"press","x":120,"y":40}
  GET  /healthz     build information`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				if err := errors.ValidateListenAddr(addr); err != nil {
					return err
				}
				cfg.Server.Addr = addr
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger := loggerFromContext(ctx)
	srv, err := newServer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer srv.Close()

	hs := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	printSuccess("Serving %s", appName)
	printKeyValue("Address", "http://"+cfg.Server.Addr+"/scene.svg")
	printKeyValue("Session", srv.session)

	select {
	case err := <-errc:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// =============================================================================
// server - HTTP host
// =============================================================================

// server hosts one scene. mu serializes every handler that touches the
// scene or the controller; the pipeline runner and its cache are safe on
// their own.
type server struct {
	logger  *log.Logger
	session string
	opts    pipeline.Options
	runner  *pipeline.Runner

	mu   sync.Mutex
	ctrl *interact.Controller
}

func newServer(ctx context.Context, cfg *config.Config, logger *log.Logger) (*server, error) {
	opts, err := pipelineOptions(cfg, logger)
	if err != nil {
		return nil, err
	}
	opts.Formats = []string{pipeline.FormatSVG, pipeline.FormatPNG}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	// Images are fingerprinted by identity, so cached frames are only
	// valid for this process. The session prefix keeps them apart.
	// Arrange results depend on structure alone and stay unscoped.
	session := uuid.NewString()
	var store cache.Cache = cache.NewMemoryCache(cfg.Server.CacheEntries)
	if !cfg.Cache.Disabled {
		if rc := openRedis(cfg, logger); rc != nil {
			store = rc
		}
	}
	runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, "scene:"+session+":"), logger)

	s := sample.New(sample.Options{Logger: logger, Compatibility: cfg.CompatibilityPolicy()})
	measurer := svgMeasurer()
	if cfg.Canvas.Arrange {
		if _, err := arrange.Arrange(ctx, s, measurer, arrange.Options{Cache: runner.Cache, Keyer: cache.NewDefaultKeyer(), Logger: logger}); err != nil {
			return nil, err
		}
	}
	view := interact.NewView(geom.Sz(float64(opts.Width), float64(opts.Height)))

	return &server{
		logger:  logger,
		session: session,
		opts:    opts,
		runner:  runner,
		ctrl:    interact.NewController(s, view, interact.WithLogger(logger), interact.WithMeasurer(measurer)),
	}, nil
}

func (s *server) Close() error { return s.runner.Close() }

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(httpHooks)
	r.Use(requestLogger(s.logger))

	r.Get("/healthz", s.handleHealth)
	r.Get("/scene.{format}", s.handleScene)
	r.Post("/events", s.handleEvent)
	return r
}

// httpHooks reports every request to the observability HTTP hooks.
func httpHooks(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, statusOf(ww), time.Since(start))
	})
}

func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http", "method", r.Method, "path", r.URL.Path,
				"status", statusOf(ww), "bytes", ww.BytesWritten(), "duration", time.Since(start))
		})
	}
}

// statusOf returns the written status; handlers that never call
// WriteHeader answer 200.
func statusOf(ww middleware.WrapResponseWriter) int {
	if ww.Status() == 0 {
		return http.StatusOK
	}
	return ww.Status()
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

var contentTypes = map[string]string{
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPNG: "image/png",
}

func (s *server) handleScene(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(chi.URLParam(r, "format"))
	if err := errors.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	s.mu.Lock()
	opts := s.opts
	opts.Formats = []string{format}
	if p, ok := s.ctrl.PendingConnection(); ok {
		pv := render.Preview(p)
		opts.Preview = &pv
	}
	result, err := s.runner.Render(r.Context(), s.ctrl.Scene(), s.ctrl.View().Forward(), opts)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("ETag", `"`+result.SceneHash[:16]+`"`)
	w.Header().Set("Cache-Control", "no-cache")
	if match := r.Header.Get("If-None-Match"); match == `"`+result.SceneHash[:16]+`"` {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	_, _ = w.Write(result.Artifacts[format])
}

// =============================================================================
// Pointer events
// =============================================================================

// Event types accepted by POST /events.
const (
	eventPress       = "press"
	eventMove        = "move"
	eventRelease     = "release"
	eventClick       = "click"
	eventDoubleClick = "dblclick"
	eventWheel       = "wheel"
	eventKey         = "key"
)

// pointerEvent is one host event. X and Y are view coordinates.
type pointerEvent struct {
	Type  string  `json:"type"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Delta float64 `json:"delta,omitempty"`
	Key   string  `json:"key,omitempty"`
}

// eventResult tells the client whether to fetch a new frame.
type eventResult struct {
	Redraw bool   `json:"redraw"`
	Drag   string `json:"drag"`
	Hover  string `json:"hover,omitempty"`
	Focus  string `json:"focus,omitempty"`
}

func (s *server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var ev pointerEvent
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ev); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidEvent, err, "decode event"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	redraw, err := s.apply(ev)
	if err != nil {
		writeError(w, err)
		return
	}
	res := eventResult{Redraw: redraw, Drag: s.ctrl.Dragging().String()}
	if h := s.ctrl.Hover(); !h.IsNone() {
		res.Hover = h.String()
	}
	if f := s.ctrl.Scene().Focus(); !f.IsNone() {
		res.Focus = f.String()
	}
	writeJSON(w, http.StatusOK, res)
}

// apply feeds ev to the controller. The caller holds s.mu.
func (s *server) apply(ev pointerEvent) (bool, error) {
	p := geom.Pt(ev.X, ev.Y)
	switch ev.Type {
	case eventPress:
		return s.ctrl.Press(p), nil
	case eventMove:
		return s.ctrl.Move(p), nil
	case eventRelease:
		return s.ctrl.Release(p), nil
	case eventClick:
		return s.ctrl.Click(p), nil
	case eventDoubleClick:
		return s.ctrl.DoubleClick(p), nil
	case eventWheel:
		return s.ctrl.Wheel(ev.Delta), nil
	case eventKey:
		if ev.Key != "delete" && ev.Key != "backspace" {
			return false, errors.New(errors.ErrCodeInvalidEvent, "unsupported key %q", ev.Key)
		}
		return s.ctrl.KeyUp(interact.KeyDelete), nil
	default:
		return false, errors.New(errors.ErrCodeInvalidEvent, "unknown event type %q", ev.Type)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errors.HTTPStatus(err), map[string]string{
		"code":  string(errors.GetCode(err)),
		"error": errors.UserMessage(err),
	})
}
