package scene

import "github.com/matzehuels/nodecanvas/pkg/geom"

// Connection is a directed edge from an output connector to an input
// connector. Both endpoints are nil once the connection is disconnected.
type Connection struct {
	Name string
	Tag  any

	from        *Connector
	to          *Connector
	bounds      geom.Rect
	labelBounds geom.Rect
	state       RenderState
	doubleClick func(*Connection)
}

// From returns the output endpoint.
func (c *Connection) From() *Connector { return c.from }

// To returns the input endpoint.
func (c *Connection) To() *Connector { return c.to }

// Attached reports whether the connection is still linked.
func (c *Connection) Attached() bool { return c.from != nil && c.to != nil }

// Bounds is the bounding box of the painted ribbon from the last frame.
func (c *Connection) Bounds() geom.Rect     { return c.bounds }
func (c *Connection) SetBounds(r geom.Rect) { c.bounds = r }

// LabelBounds is the rectangle of the painted name label, empty when
// labels are hidden.
func (c *Connection) LabelBounds() geom.Rect     { return c.labelBounds }
func (c *Connection) SetLabelBounds(r geom.Rect) { c.labelBounds = r }

func (c *Connection) State() RenderState       { return c.state }
func (c *Connection) SetState(s RenderState)   { c.state = s }
func (c *Connection) AddState(f RenderState)   { c.state |= f }
func (c *Connection) ClearState(f RenderState) { c.state &^= f }

// OnDoubleClick registers a callback run by [Connection.DoubleClick].
func (c *Connection) OnDoubleClick(fn func(*Connection)) { c.doubleClick = fn }

// DoubleClick runs the registered callback, if any.
func (c *Connection) DoubleClick() {
	if c.doubleClick != nil {
		c.doubleClick(c)
	}
}
