package scene

import (
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/nodecanvas/pkg/geom"
)

// Node is a box on the canvas holding a title and an ordered list of items.
type Node struct {
	// ID is a random identifier assigned at construction.
	ID string
	// Location is the top-left corner of the node in scene coordinates.
	Location geom.Point
	Tag      any

	title     *Title
	collapsed bool
	items     []Item
	state     RenderState

	bounds       geom.Rect
	itemsBounds  geom.Rect
	inputAnchor  geom.Rect
	outputAnchor geom.Rect
	inputs       []*Connector
	outputs      []*Connector

	// connections is ordered front to back, like the scene's node list.
	connections []*Connection
}

// NewNode returns a detached node with the given title.
func NewNode(title string) *Node {
	n := &Node{ID: uuid.NewString(), title: NewTitle(title)}
	n.title.node = n
	return n
}

// Title returns the header text.
func (n *Node) Title() string { return n.title.Text }

// SetTitle changes the header text.
func (n *Node) SetTitle(s string) { n.title.Text = s }

// TitleItem returns the node's title item.
func (n *Node) TitleItem() *Title { return n.title }

// Collapsed reports whether the node is drawn as its title only. A node
// without items is always collapsed. A collapsed node shows its expanded
// geometry while it is being dragged.
func (n *Node) Collapsed() bool {
	return (n.collapsed && n.state&Dragging == 0) || len(n.items) == 0
}

// SetCollapsed stores the collapsed flag.
func (n *Node) SetCollapsed(v bool) { n.collapsed = v }

// ToggleCollapsed flips the stored collapsed flag.
func (n *Node) ToggleCollapsed() { n.collapsed = !n.collapsed }

// HasItems reports whether the node has items besides its title.
func (n *Node) HasItems() bool { return len(n.items) > 0 }

// Items returns the node's items, excluding the title.
func (n *Node) Items() []Item { return slices.Clone(n.items) }

// VisibleItems returns the items the layout pass places: the title alone
// when collapsed, the title followed by every item otherwise.
func (n *Node) VisibleItems() []Item {
	if n.Collapsed() {
		return []Item{n.title}
	}
	out := make([]Item, 0, len(n.items)+1)
	out = append(out, n.title)
	return append(out, n.items...)
}

// AddItem appends it to the node, taking it away from any previous owner.
// Connections attached to a moved item follow it into n's list and leave
// the previous owner's list unless the other end still lives there. It
// returns false if it is nil or already belongs to n.
func (n *Node) AddItem(it Item) bool {
	if it == nil || it.Base() == nil {
		return false
	}
	b := it.Base()
	if b.node == n {
		return false
	}
	old := b.node
	var moved []*Connection
	if old != nil {
		moved = old.itemConnections(it)
		old.dropItem(it)
	}
	n.items = append(n.items, it)
	b.node = n

	for _, c := range moved {
		if old != c.from.Node() && old != c.to.Node() {
			old.unlink(c)
		}
		if !slices.Contains(n.connections, c) {
			n.connections = append(n.connections, c)
		}
	}
	return true
}

// AddItems appends each item in order.
func (n *Node) AddItems(items ...Item) {
	for _, it := range items {
		n.AddItem(it)
	}
}

// RemoveItem detaches it from the node. Items with live connections are
// refused; [Scene.RemoveItem] disconnects them first.
func (n *Node) RemoveItem(it Item) bool {
	if !slices.Contains(n.items, it) || len(n.itemConnections(it)) > 0 {
		return false
	}
	n.dropItem(it)
	it.Base().node = nil
	return true
}

func (n *Node) dropItem(it Item) {
	if i := slices.Index(n.items, it); i >= 0 {
		n.items = slices.Delete(n.items, i, i+1)
	}
}

// itemConnections returns the connections of n with an endpoint on it.
func (n *Node) itemConnections(it Item) []*Connection {
	b := it.Base()
	var out []*Connection
	for _, c := range n.connections {
		if c.from == b.input || c.from == b.output || c.to == b.input || c.to == b.output {
			out = append(out, c)
		}
	}
	return out
}

// Connections returns the node's connections, front to back.
func (n *Node) Connections() []*Connection { return slices.Clone(n.connections) }

func (n *Node) State() RenderState       { return n.state }
func (n *Node) SetState(s RenderState)   { n.state = s }
func (n *Node) AddState(f RenderState)   { n.state |= f }
func (n *Node) ClearState(f RenderState) { n.state &^= f }

// Bounds is the node rectangle from the last layout.
func (n *Node) Bounds() geom.Rect { return n.bounds }

// ItemsBounds spans the item column between the connector columns.
func (n *Node) ItemsBounds() geom.Rect { return n.itemsBounds }

// InputAnchor is the shared input anchor used while collapsed.
func (n *Node) InputAnchor() geom.Rect { return n.inputAnchor }

// OutputAnchor is the shared output anchor used while collapsed.
func (n *Node) OutputAnchor() geom.Rect { return n.outputAnchor }

// Inputs returns the enabled input connectors registered by the last layout.
func (n *Node) Inputs() []*Connector { return n.inputs }

// Outputs returns the enabled output connectors registered by the last layout.
func (n *Node) Outputs() []*Connector { return n.outputs }

// Connectors returns the registered connectors of role r.
func (n *Node) Connectors(r Role) []*Connector {
	if r == Input {
		return n.inputs
	}
	return n.outputs
}

// Anchor returns the shared collapsed anchor of role r.
func (n *Node) Anchor(r Role) geom.Rect {
	if r == Input {
		return n.inputAnchor
	}
	return n.outputAnchor
}

// Geometry is the layout-owned state of a node.
type Geometry struct {
	Bounds       geom.Rect
	ItemsBounds  geom.Rect
	InputAnchor  geom.Rect
	OutputAnchor geom.Rect
	Inputs       []*Connector
	Outputs      []*Connector
}

// SetGeometry is called by the layout pass.
func (n *Node) SetGeometry(g Geometry) {
	n.bounds = g.Bounds
	n.itemsBounds = g.ItemsBounds
	n.inputAnchor = g.InputAnchor
	n.outputAnchor = g.OutputAnchor
	n.inputs = g.Inputs
	n.outputs = g.Outputs
}

// connectedTo reports whether any connection of n joins from and to.
func (n *Node) connectedTo(from, to *Connector) bool {
	for _, c := range n.connections {
		if c.from == from && c.to == to {
			return true
		}
	}
	return false
}

func (n *Node) unlink(c *Connection) {
	if i := slices.Index(n.connections, c); i >= 0 {
		n.connections = slices.Delete(n.connections, i, i+1)
	}
}

func (n *Node) promote(c *Connection) {
	if i := slices.Index(n.connections, c); i > 0 {
		n.connections = slices.Delete(n.connections, i, i+1)
		n.connections = slices.Insert(n.connections, 0, c)
	}
}
