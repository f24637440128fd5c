package render

import (
	"image"
	"image/color"
	"slices"
	"sync"

	"github.com/matzehuels/nodecanvas/pkg/geom"
	"github.com/matzehuels/nodecanvas/pkg/layout"
	"github.com/matzehuels/nodecanvas/pkg/scene"
)

// Font selects one of the backend's text faces.
type Font uint8

const (
	FontItem Font = iota
	FontTitle
	FontLabel
)

// Align is the horizontal placement of text within its rectangle. Text is
// always centred vertically.
type Align uint8

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// Canvas is the drawing capability a backend provides. Coordinates are
// scene units; the backend maps them through the transform last passed to
// SetTransform. Arc angles are in degrees, clockwise from the positive x
// axis, matching the y-down coordinate system.
type Canvas interface {
	MeasureText(text string, f Font) geom.Size

	FillPolygon(pg geom.Polygon, c color.Color)
	StrokePolygon(pg geom.Polygon, c color.Color, width float64)
	FillEllipse(r geom.Rect, c color.Color)
	StrokeEllipse(r geom.Rect, c color.Color, width float64)
	StrokeArc(r geom.Rect, start, sweep float64, c color.Color, width float64)
	DrawText(text string, r geom.Rect, f Font, a Align, c color.Color)
	DrawImage(img image.Image, r geom.Rect)

	// FlattenBeziers turns cubic Bezier control points (1+3n of them)
	// into a polyline.
	FlattenBeziers(ctrl []geom.Point) []geom.Point
	// PointInRegion reports whether p lies inside the filled polygon.
	PointInRegion(pg geom.Polygon, p geom.Point) bool

	SetTransform(m geom.Matrix)
}

// Geometry implements the non-drawing part of [Canvas] with the geometry
// kernel. Backends embed it.
type Geometry struct{}

func (Geometry) FlattenBeziers(ctrl []geom.Point) []geom.Point { return geom.FlattenCubic(ctrl) }

func (Geometry) PointInRegion(pg geom.Polygon, p geom.Point) bool { return pg.Contains(p) }

// =============================================================================
// Item renderers
// =============================================================================

// ItemRenderer measures and draws items of one kind.
type ItemRenderer interface {
	// Measure returns the size the item needs, at least minimum in each
	// non-zero component.
	Measure(c Canvas, it scene.Item, minimum geom.Size) geom.Size
	// Render draws the item into bounds.
	Render(c Canvas, th *Theme, it scene.Item, bounds geom.Rect)
}

// Registry maps item kinds to renderers. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	renderers map[scene.ItemKind]ItemRenderer
}

func NewRegistry() *Registry {
	return &Registry{renderers: make(map[scene.ItemKind]ItemRenderer)}
}

// Register installs r for kind, replacing any previous renderer.
func (r *Registry) Register(kind scene.ItemKind, ir ItemRenderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[kind] = ir
}

// Lookup returns the renderer for kind.
func (r *Registry) Lookup(kind scene.ItemKind) (ItemRenderer, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ir, ok := r.renderers[kind]
	return ir, ok
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []scene.ItemKind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]scene.ItemKind, 0, len(r.renderers))
	for k := range r.renderers {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

type measurer struct {
	canvas   Canvas
	registry *Registry
}

// Measurer adapts a canvas and registry to [layout.Measurer]. Items of an
// unregistered kind measure as the zero size and get no row.
func Measurer(c Canvas, r *Registry) layout.Measurer {
	return measurer{canvas: c, registry: r}
}

func (m measurer) MeasureItem(it scene.Item, minimum geom.Size) geom.Size {
	ir, ok := m.registry.Lookup(it.Kind())
	if !ok {
		return geom.Size{}
	}
	return ir.Measure(m.canvas, it, minimum)
}
