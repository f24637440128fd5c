package scene

import "github.com/matzehuels/nodecanvas/pkg/geom"

// Connector is a connection endpoint on one side of an item.
type Connector struct {
	item    Item
	role    Role
	enabled bool
	bounds  geom.Rect
	state   RenderState
}

// Item returns the item the connector belongs to.
func (c *Connector) Item() Item { return c.item }

// Node returns the node owning the connector's item, or nil.
func (c *Connector) Node() *Node {
	if c == nil || c.item == nil {
		return nil
	}
	return c.item.Base().node
}

func (c *Connector) Role() Role { return c.role }

// Enabled reports whether the connector can take part in connections.
func (c *Connector) Enabled() bool { return c.enabled }

// SetEnabled toggles the connector. Existing connections are kept.
func (c *Connector) SetEnabled(v bool) { c.enabled = v }

// Bounds is the anchor rectangle from the last layout. It is empty for
// disabled connectors, empty items and collapsed nodes.
func (c *Connector) Bounds() geom.Rect { return c.bounds }

// SetBounds is called by the layout pass.
func (c *Connector) SetBounds(r geom.Rect) { c.bounds = r }

// Anchor is where connections attach: the node's shared anchor while the
// node is collapsed, the connector's own bounds otherwise.
func (c *Connector) Anchor() geom.Rect {
	n := c.Node()
	if n != nil && n.Collapsed() {
		if c.role == Input {
			return n.inputAnchor
		}
		return n.outputAnchor
	}
	return c.bounds
}

func (c *Connector) State() RenderState       { return c.state }
func (c *Connector) SetState(s RenderState)   { c.state = s }
func (c *Connector) AddState(f RenderState)   { c.state |= f }
func (c *Connector) ClearState(f RenderState) { c.state &^= f }

// Connections returns the connections attached to c.
func (c *Connector) Connections() []*Connection {
	n := c.Node()
	if n == nil {
		return nil
	}
	var out []*Connection
	for _, conn := range n.connections {
		if conn.from == c || conn.to == c {
			out = append(out, conn)
		}
	}
	return out
}
