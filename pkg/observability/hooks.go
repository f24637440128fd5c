// Package observability provides instrumentation hooks for the canvas.
//
// Libraries never depend on a metrics or tracing backend. Instead they
// call the hooks registered here, which default to no-ops. A host installs
// its own implementations once at startup:
//
//	func main() {
//	    observability.SetFrameHooks(&myFrameHooks{})
//	    observability.SetInteractionHooks(&myInteractionHooks{})
//	    // ... run application
//	}
//
// and libraries emit events through the getters:
//
//	observability.Frame().OnLayoutStart(ctx, nodeCount)
//	layout.Scene(s, m)
//	observability.Frame().OnLayoutComplete(ctx, time.Since(start))
//
// Interaction hooks carry no context because pointer events are delivered
// synchronously by the host.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Frame Hooks
// =============================================================================

// FrameHooks receives events from the layout and render passes.
type FrameHooks interface {
	OnLayoutStart(ctx context.Context, nodeCount int)
	OnLayoutComplete(ctx context.Context, duration time.Duration)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives artifact cache lookups and writes, keyed by format.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, format string)
	OnCacheMiss(ctx context.Context, format string)
	OnCacheSet(ctx context.Context, format string, size int)
}

// =============================================================================
// Interaction Hooks
// =============================================================================

// InteractionHooks receives pointer gesture events from the controller.
type InteractionHooks interface {
	// OnGestureStart is called when a press starts a drag of the given kind.
	OnGestureStart(kind string)

	// OnGestureEnd is called on release. moved reports whether the pointer
	// crossed the drag threshold.
	OnGestureEnd(kind string, moved bool, duration time.Duration)

	// OnConnect reports the outcome of a connection attempt made by a drop.
	OnConnect(from, to string, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks brackets every request served by the serve command.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// Defaults
// =============================================================================

// NoopFrameHooks ignores every frame event.
type NoopFrameHooks struct{}

func (NoopFrameHooks) OnLayoutStart(context.Context, int)                               {}
func (NoopFrameHooks) OnLayoutComplete(context.Context, time.Duration)                  {}
func (NoopFrameHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopFrameHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks ignores every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopInteractionHooks ignores every gesture.
type NoopInteractionHooks struct{}

func (NoopInteractionHooks) OnGestureStart(string)                    {}
func (NoopInteractionHooks) OnGestureEnd(string, bool, time.Duration) {}
func (NoopInteractionHooks) OnConnect(string, string, error)          {}

// NoopHTTPHooks ignores every request.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Registry
// =============================================================================

// slot holds one installed hook set. A nil install is ignored.
type slot[T any] struct {
	mu  sync.RWMutex
	cur T
	def T
}

func newSlot[T any](def T) *slot[T] { return &slot[T]{cur: def, def: def} }

func (s *slot[T]) get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *slot[T]) set(h T) {
	if any(h) == nil {
		return
	}
	s.mu.Lock()
	s.cur = h
	s.mu.Unlock()
}

func (s *slot[T]) reset() {
	s.mu.Lock()
	s.cur = s.def
	s.mu.Unlock()
}

var (
	frameSlot       = newSlot[FrameHooks](NoopFrameHooks{})
	cacheSlot       = newSlot[CacheHooks](NoopCacheHooks{})
	interactionSlot = newSlot[InteractionHooks](NoopInteractionHooks{})
	httpSlot        = newSlot[HTTPHooks](NoopHTTPHooks{})
)

// SetFrameHooks and its siblings install a hook set for the process.
func SetFrameHooks(h FrameHooks)             { frameSlot.set(h) }
func SetCacheHooks(h CacheHooks)             { cacheSlot.set(h) }
func SetInteractionHooks(h InteractionHooks) { interactionSlot.set(h) }
func SetHTTPHooks(h HTTPHooks)               { httpSlot.set(h) }

// Frame and its siblings return the installed hook sets.
func Frame() FrameHooks             { return frameSlot.get() }
func Cache() CacheHooks             { return cacheSlot.get() }
func Interaction() InteractionHooks { return interactionSlot.get() }
func HTTP() HTTPHooks               { return httpSlot.get() }

// Reset puts every slot back to its no-op default. Tests call it in
// Cleanup after installing recorders.
func Reset() {
	frameSlot.reset()
	cacheSlot.reset()
	interactionSlot.reset()
	httpSlot.reset()
}
