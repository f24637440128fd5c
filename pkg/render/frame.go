package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nodecanvas/pkg/geom"
	"github.com/matzehuels/nodecanvas/pkg/layout"
	"github.com/matzehuels/nodecanvas/pkg/scene"
)

const (
	// BodyCorner is the corner diameter of node bodies and labels.
	BodyCorner = layout.CornerSize * 2
	// HighlightInset grows the ring drawn around compatible connectors.
	HighlightInset = 5.0

	strokeWidth = 1.0
	ellipseStep = 24
)

// Preview is the in-flight connection drawn while a connector is dragged.
// It converts directly from interact.Pending.
type Preview struct {
	From, To geom.Point
	State    scene.RenderState
}

// RibbonStyle tunes how connections are drawn. Zero fields keep the
// geometry defaults.
type RibbonStyle struct {
	// Flatness overrides the canvas Bezier flattener with one of the given
	// tolerance in pixels.
	Flatness float64 `json:"flatness,omitempty"`
	// Taper and PreviewTaper are the end-width divisors of painted and
	// in-flight connections.
	Taper        float64 `json:"taper,omitempty"`
	PreviewTaper float64 `json:"preview_taper,omitempty"`
}

// Frame paints scenes onto one canvas.
type Frame struct {
	Canvas     Canvas
	Registry   *Registry
	Theme      Theme
	Ribbon     RibbonStyle
	ShowLabels bool
	Logger     *log.Logger
}

// Measurer returns the layout measurer backed by this frame's canvas.
func (f *Frame) Measurer() layout.Measurer { return Measurer(f.Canvas, f.Registry) }

// Layout runs the layout pass over every node.
func (f *Frame) Layout(s *scene.Scene) {
	layout.Scene(s, f.Measurer())
}

// Paint lays out s and draws it under the view transform: connections back
// to front, then nodes back to front, then the preview if there is one.
func (f *Frame) Paint(s *scene.Scene, view geom.Matrix, preview *Preview) {
	if s == nil {
		return
	}
	f.Layout(s)
	f.Canvas.SetTransform(view)

	conns := s.Connections()
	for _, c := range conns {
		f.paintConnection(c)
	}
	nodes := s.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		f.paintNode(nodes[i])
	}
	if preview != nil {
		f.paintPreview(*preview)
	}
	if f.Logger != nil {
		f.Logger.Debug("painted frame", "nodes", len(nodes), "connections", len(conns), "preview", preview != nil)
	}
}

// =============================================================================
// Connections
// =============================================================================

func (f *Frame) ribbon(from, to geom.Point, arrow bool, taper float64) (geom.Polygon, geom.Point) {
	flatten := f.Canvas.FlattenBeziers
	if tol := f.Ribbon.Flatness; tol > 0 {
		flatten = func(ctrl []geom.Point) []geom.Point { return geom.FlattenCubicTolerance(ctrl, tol) }
	}
	return geom.Ribbon(from, to, geom.RibbonOptions{
		Arrow:        arrow,
		TaperDivisor: taper,
		Flatten:      flatten,
	})
}

func (f *Frame) paintConnection(c *scene.Connection) {
	if !c.Attached() {
		return
	}
	from := c.From().Anchor().Center()
	to := c.To().Anchor().Center()
	outline, mid := f.ribbon(from, to, false, orDefault(f.Ribbon.Taper, geom.TaperFill))
	f.Canvas.FillPolygon(outline, f.Theme.ConnectionColor(c.State()|scene.Connected))
	c.SetBounds(outline.Bounds())

	if !f.ShowLabels || strings.TrimSpace(c.Name) == "" {
		c.SetLabelBounds(geom.Rect{})
		return
	}
	f.paintLabel(c, mid)
}

func (f *Frame) paintLabel(c *scene.Connection, center geom.Point) {
	size := f.Canvas.MeasureText(c.Name, FontLabel)
	half := math.Ceil(layout.ConnectorSize / 2)
	box := geom.Rect{
		X: center.X - size.W/2 - half,
		Y: center.Y - size.H/2,
		W: size.W + layout.ConnectorSize,
		H: size.H,
	}
	c.SetLabelBounds(box)

	outline := geom.RoundedRect(box, BodyCorner)
	f.Canvas.FillPolygon(outline, f.Theme.ConnectionColor(c.State()))
	text := geom.Rect{X: center.X - size.W/2, Y: box.Y, W: size.W, H: size.H}
	f.Canvas.DrawText(c.Name, text, FontLabel, AlignCenter, f.Theme.Text)
	if c.State() == scene.None {
		f.Canvas.StrokePolygon(outline, f.Theme.Text, strokeWidth)
	}
}

func (f *Frame) paintPreview(p Preview) {
	outline, _ := f.ribbon(p.From, p.To, true, orDefault(f.Ribbon.PreviewTaper, geom.TaperPreview))
	f.Canvas.FillPolygon(outline, f.Theme.ConnectionColor(p.State|scene.Dragging|scene.Hover))
}

// =============================================================================
// Nodes
// =============================================================================

func (f *Frame) paintNode(n *scene.Node) {
	body := geom.RoundedRect(n.ItemsBounds(), BodyCorner)
	f.Canvas.FillPolygon(body, f.Theme.NodeColor(n.State()))
	f.Canvas.StrokePolygon(body, f.Theme.NodeBorder, strokeWidth)

	for _, it := range n.VisibleItems() {
		f.paintItem(it)
	}
	if n.Collapsed() {
		f.paintCollapsedConnectors(n)
		return
	}
	for _, it := range n.VisibleItems() {
		b := it.Base()
		if in := b.Input(); in != nil && in.Enabled() && !in.Bounds().Empty() {
			f.paintConnector(in.Bounds(), in.State())
			if state, ok := incoming(n, func(c *scene.Connection) bool { return c.To() == in }); ok {
				f.paintArrow(in.Bounds(), state)
			}
		}
		if out := b.Output(); out != nil && out.Enabled() && !out.Bounds().Empty() {
			state := out.State()
			for _, c := range n.Connections() {
				if c.From() == out {
					state |= c.State() | scene.Connected
				}
			}
			f.paintConnector(out.Bounds(), state)
		}
	}
}

func (f *Frame) paintCollapsedConnectors(n *scene.Node) {
	inState, outState := scene.None, scene.None
	for _, c := range n.Inputs() {
		inState |= c.State()
	}
	for _, c := range n.Outputs() {
		outState |= c.State()
	}
	for _, c := range n.Connections() {
		if c.Attached() && c.From().Node() == n {
			outState |= c.State() | scene.Connected
		}
	}
	if len(n.Inputs()) > 0 {
		f.paintConnector(n.InputAnchor(), inState)
	}
	if len(n.Outputs()) > 0 {
		f.paintConnector(n.OutputAnchor(), outState)
	}
	if state, ok := incoming(n, func(c *scene.Connection) bool { return c.To().Node() == n }); ok {
		f.paintArrow(n.InputAnchor(), state)
	}
}

// incoming ORs the states of n's attached connections selected by match.
func incoming(n *scene.Node, match func(*scene.Connection) bool) (scene.RenderState, bool) {
	state, found := scene.None, false
	for _, c := range n.Connections() {
		if c.Attached() && match(c) {
			state |= c.State()
			found = true
		}
	}
	return state, found
}

func (f *Frame) paintItem(it scene.Item) {
	bounds := it.Base().Bounds()
	if bounds.Empty() {
		return
	}
	ir, ok := f.Registry.Lookup(it.Kind())
	if !ok {
		return
	}
	ir.Render(f.Canvas, &f.Theme, it, bounds)
}

// paintConnector draws a connector bulb. A compatible target that is not
// the drag source gets an extra highlight ring; any other non-idle bulb is
// outlined on its left half only.
func (f *Frame) paintConnector(r geom.Rect, s scene.RenderState) {
	fill := f.Theme.ConnectionColor(s)
	f.Canvas.FillEllipse(r, fill)
	switch {
	case s == scene.None:
		f.Canvas.StrokeEllipse(r, f.Theme.Text, strokeWidth)
	case s&(scene.Compatible|scene.Dragging) == scene.Compatible:
		f.Canvas.StrokeEllipse(r, f.Theme.Text, strokeWidth)
		f.Canvas.StrokeEllipse(r.Inflate(HighlightInset, HighlightInset), f.Theme.Highlight, strokeWidth)
	default:
		f.Canvas.StrokeArc(r, 90, 180, f.Theme.Text, strokeWidth)
		f.Canvas.StrokeArc(r, 270, 180, fill, strokeWidth)
	}
}

func (f *Frame) paintArrow(r geom.Rect, s scene.RenderState) {
	tri := geom.Arrow(r.Center(), 0)
	f.Canvas.FillPolygon(tri[:], f.Theme.ConnectionColor(s|scene.Connected))
}

// EllipsePolygon approximates the ellipse inscribed in r for backends
// without a native ellipse primitive.
func EllipsePolygon(r geom.Rect) geom.Polygon { return geom.Ellipse(r, ellipseStep) }

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
