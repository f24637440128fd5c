package layout

import (
	"math"

	"github.com/matzehuels/nodecanvas/pkg/geom"
	"github.com/matzehuels/nodecanvas/pkg/scene"
)

// Node metrics in scene units.
const (
	MinimumItemWidth  = 72.0
	MinimumItemHeight = 16.0
	TitleHeight       = 12.0
	ItemSpacing       = 3.0
	TopHeight         = 4.0
	BottomHeight      = 4.0
	CornerSize        = 4.0
	ConnectorSize     = geom.ConnectorSize
	HorizontalSpacing = 2.0

	// NodeExtraWidth is the room taken by the connector columns on both
	// sides of the items.
	NodeExtraWidth = (ConnectorSize + HorizontalSpacing) * 2
)

var (
	halfConnector   = math.Ceil(ConnectorSize / 2)
	connectorOffset = math.Floor((MinimumItemHeight - ConnectorSize) / 2)
)

// Measurer reports the size an item needs. minimum is a lower bound on the
// result; a zero component means unconstrained. Unknown items measure as
// the zero size.
type Measurer interface {
	MeasureItem(it scene.Item, minimum geom.Size) geom.Size
}

// MeasureFunc adapts a function to [Measurer].
type MeasureFunc func(it scene.Item, minimum geom.Size) geom.Size

func (f MeasureFunc) MeasureItem(it scene.Item, minimum geom.Size) geom.Size {
	return f(it, minimum)
}

// Measure returns the size of n: the widest visible item plus the connector
// columns, and the stacked item heights with spacing and bottom padding.
func Measure(n *scene.Node, m Measurer) geom.Size {
	if n == nil {
		return geom.Size{}
	}
	size := geom.Size{H: BottomHeight}
	for _, it := range n.VisibleItems() {
		s := m.MeasureItem(it, geom.Size{})
		size.W = max(size.W, s.W)
		size.H += ItemSpacing + s.H
	}
	if n.Collapsed() {
		size.H -= ItemSpacing
	}
	size.W += NodeExtraWidth
	return size
}

// Node lays out n at its location.
func Node(n *scene.Node, m Measurer) {
	if n == nil {
		return
	}
	size := Measure(n, m)
	pos := n.Location
	bounds := geom.Rect{X: pos.X, Y: pos.Y, W: size.W, H: size.H}

	left := pos.X + halfConnector
	right := pos.X + size.W - halfConnector
	g := scene.Geometry{
		Bounds:      bounds,
		ItemsBounds: geom.RectFromLTRB(left, bounds.Top(), right, bounds.Bottom()),
	}

	at := geom.Pt(pos.X+ConnectorSize+HorizontalSpacing, pos.Y)
	minimum := geom.Size{W: size.W - NodeExtraWidth}

	if n.Collapsed() {
		for _, it := range n.Items() {
			b := it.Base()
			if c := b.Input(); c != nil && c.Enabled() {
				c.SetBounds(geom.Rect{})
				g.Inputs = append(g.Inputs, c)
			}
			if c := b.Output(); c != nil && c.Enabled() {
				c.SetBounds(geom.Rect{})
				g.Outputs = append(g.Outputs, c)
			}
		}
		title := n.TitleItem()
		ts := m.MeasureItem(title, minimum)
		title.SetBounds(geom.Rect{X: at.X, Y: at.Y, W: ts.W, H: ts.H})
		y := at.Y + math.Ceil((ts.H-TopHeight)/2)
		g.InputAnchor = geom.R(left-ConnectorSize/2, y, ConnectorSize, ConnectorSize)
		g.OutputAnchor = geom.R(right-ConnectorSize/2, y, ConnectorSize, ConnectorSize)
		n.SetGeometry(g)
		return
	}

	for _, it := range n.VisibleItems() {
		s := m.MeasureItem(it, minimum)
		b := it.Base()
		b.SetBounds(geom.Rect{X: at.X, Y: at.Y, W: s.W, H: s.H})
		empty := s.W <= 0 || s.H <= 0

		if c := b.Input(); c != nil && c.Enabled() {
			if empty {
				c.SetBounds(geom.Rect{})
			} else {
				c.SetBounds(geom.R(left-ConnectorSize/2, at.Y+connectorOffset, ConnectorSize, ConnectorSize))
			}
			g.Inputs = append(g.Inputs, c)
		}
		if c := b.Output(); c != nil && c.Enabled() {
			if empty {
				c.SetBounds(geom.Rect{})
			} else {
				c.SetBounds(geom.R(right-ConnectorSize/2, at.Y+s.H-(connectorOffset+ConnectorSize), ConnectorSize, ConnectorSize))
			}
			g.Outputs = append(g.Outputs, c)
		}
		at.Y += s.H + ItemSpacing
	}
	n.SetGeometry(g)
}

// Scene lays out every node, back to front.
func Scene(s *scene.Scene, m Measurer) {
	nodes := s.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		Node(nodes[i], m)
	}
}
