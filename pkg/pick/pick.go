// Package pick resolves a scene-space point to the element under it.
//
// Picking reads the geometry written by the last layout pass and the
// connection bounds recorded by the last render. Priority, highest first:
// input connector, output connector, item, node body, connection label,
// connection stroke. Nodes are tested front to back, so the front node
// wins wherever nodes overlap.
package pick

import (
	"github.com/matzehuels/nodecanvas/pkg/geom"
	"github.com/matzehuels/nodecanvas/pkg/scene"
)

// StrokePadding widens the connection hit region on both sides of the
// painted ribbon.
const StrokePadding = 5.0

// Pick returns the element at p, or the zero Element.
func Pick(s *scene.Scene, p geom.Point) scene.Element {
	if s == nil {
		return scene.Element{}
	}
	nodes := s.Nodes()
	for _, n := range nodes {
		if c := InputConnectorAt(n, p); c != nil {
			return scene.ConnectorElement(c)
		}
		if c := OutputConnectorAt(n, p); c != nil {
			return scene.ConnectorElement(c)
		}
		if !n.Bounds().Contains(p) {
			continue
		}
		if it := ItemAt(n, p); it != nil {
			return scene.ItemElement(it)
		}
		return scene.NodeElement(n)
	}
	return scene.ConnectionElement(ConnectionAt(nodes, p))
}

// Node returns the front-most node whose bounds, or one of whose
// connector anchors, contain p.
func Node(s *scene.Scene, p geom.Point) *scene.Node {
	for _, n := range s.Nodes() {
		if n.Bounds().Contains(p) || InputConnectorAt(n, p) != nil || OutputConnectorAt(n, p) != nil {
			return n
		}
	}
	return nil
}

// InputConnectorAt returns the input connector of n whose anchor contains
// p. A collapsed node exposes its shared anchor, which resolves to the
// first registered input.
func InputConnectorAt(n *scene.Node, p geom.Point) *scene.Connector {
	return connectorAt(n, scene.Input, p)
}

// OutputConnectorAt is the output counterpart of [InputConnectorAt].
func OutputConnectorAt(n *scene.Node, p geom.Point) *scene.Connector {
	return connectorAt(n, scene.Output, p)
}

func connectorAt(n *scene.Node, r scene.Role, p geom.Point) *scene.Connector {
	if n == nil {
		return nil
	}
	list := n.Connectors(r)
	if n.Collapsed() {
		if len(list) > 0 && n.Anchor(r).Contains(p) {
			return list[0]
		}
		return nil
	}
	for _, c := range list {
		if c.Bounds().Empty() {
			continue
		}
		if c.Bounds().Contains(p) {
			return c
		}
	}
	return nil
}

// ItemAt returns the visible item of n whose vertical span contains p.
// Items are scanned top to bottom and the scan stops at the first item
// below p.
func ItemAt(n *scene.Node, p geom.Point) scene.Item {
	ib := n.ItemsBounds()
	if ib.Empty() || p.X < ib.Left() || p.X > ib.Right() {
		return nil
	}
	for _, it := range n.VisibleItems() {
		b := it.Base().Bounds()
		if b.Empty() {
			continue
		}
		if p.Y < b.Top() {
			break
		}
		if p.Y < b.Bottom() {
			return it
		}
	}
	return nil
}

// ConnectionAt tests the connections of nodes, front to back and each
// connection once: first against the recorded label rectangles, then
// against the padded stroke region.
func ConnectionAt(nodes []*scene.Node, p geom.Point) *scene.Connection {
	seen := make(map[*scene.Connection]struct{})
	var candidates []*scene.Connection
	for _, n := range nodes {
		for _, c := range n.Connections() {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			candidates = append(candidates, c)
		}
	}
	for _, c := range candidates {
		if c.LabelBounds().Contains(p) {
			return c
		}
	}
	for _, c := range candidates {
		if ConnectionRegion(c).Contains(p) {
			return c
		}
	}
	return nil
}

// ConnectionRegion is the hit outline of c: its ribbon with an arrow head,
// padded by StrokePadding. It is nil for a detached connection.
func ConnectionRegion(c *scene.Connection) geom.Polygon {
	if c == nil || !c.Attached() {
		return nil
	}
	from := c.From().Anchor().Center()
	to := c.To().Anchor().Center()
	poly, _ := geom.Ribbon(from, to, geom.RibbonOptions{Extra: StrokePadding, Arrow: true})
	return poly
}
