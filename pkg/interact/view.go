package interact

import (
	"math"

	"github.com/matzehuels/nodecanvas/pkg/geom"
)

// Zoom limits and the wheel delta that doubles the zoom.
const (
	MinZoom        = 0.25
	MaxZoom        = 5.0
	WheelPerDouble = 480.0
)

// View maps between view space (host pixels) and scene space. The zero
// View is the identity with zoom 1.
//
// The forward transform is translate(Pan)·translate(center)·scale(zoom)·
// translate(-center), where center is the middle of the viewport, so
// zooming keeps the viewport centre fixed.
type View struct {
	Pan      geom.Point
	Viewport geom.Size

	zoom float64
}

// NewView returns a view of the given viewport size at zoom 1.
func NewView(viewport geom.Size) *View {
	return &View{Viewport: viewport, zoom: 1}
}

// Zoom returns the current zoom factor.
func (v *View) Zoom() float64 {
	if v.zoom == 0 {
		return 1
	}
	return v.zoom
}

// SetZoom sets the zoom, clamped to [MinZoom, MaxZoom].
func (v *View) SetZoom(z float64) {
	v.zoom = min(max(z, MinZoom), MaxZoom)
}

// ZoomBy scales the zoom by 2^(delta/WheelPerDouble) and reports whether
// it changed.
func (v *View) ZoomBy(delta float64) bool {
	before := v.Zoom()
	v.SetZoom(before * math.Pow(2, delta/WheelPerDouble))
	return v.zoom != before
}

func (v *View) center() geom.Point {
	return geom.Pt(v.Viewport.W/2, v.Viewport.H/2)
}

// Forward returns the scene-to-view transform.
func (v *View) Forward() geom.Matrix {
	c, z := v.center(), v.Zoom()
	return geom.Translate(v.Pan.X, v.Pan.Y).
		Multiply(geom.Translate(c.X, c.Y)).
		Multiply(geom.Scale(z, z)).
		Multiply(geom.Translate(-c.X, -c.Y))
}

// Inverse returns the view-to-scene transform.
func (v *View) Inverse() geom.Matrix {
	c, z := v.center(), v.Zoom()
	return geom.Translate(c.X, c.Y).
		Multiply(geom.Scale(1/z, 1/z)).
		Multiply(geom.Translate(-c.X, -c.Y)).
		Multiply(geom.Translate(-v.Pan.X, -v.Pan.Y))
}

// ToScene maps a view point into scene space.
func (v *View) ToScene(p geom.Point) geom.Point { return v.Inverse().Apply(p) }

// ToView maps a scene point into view space.
func (v *View) ToView(p geom.Point) geom.Point { return v.Forward().Apply(p) }
