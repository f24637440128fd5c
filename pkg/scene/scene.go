package scene

import (
	"errors"
	"slices"

	"github.com/charmbracelet/log"
)

var (
	// ErrNilConnector is returned by [Scene.Connect] when an endpoint is nil
	// or was never initialised by its item.
	ErrNilConnector = errors.New("connector is nil")

	// ErrDetachedConnector is returned by [Scene.Connect] when an endpoint's
	// item does not belong to a node.
	ErrDetachedConnector = errors.New("connector item has no node")

	// ErrDisabledConnector is returned by [Scene.Connect] when either
	// endpoint is disabled.
	ErrDisabledConnector = errors.New("connector is disabled")

	// ErrRoleMismatch is returned by [Scene.Connect] unless from is an output
	// and to is an input.
	ErrRoleMismatch = errors.New("connection must run from an output to an input")

	// ErrDuplicateConnection is returned by [Scene.Connect] when the same
	// ordered pair is already connected.
	ErrDuplicateConnection = errors.New("connectors are already connected")

	// ErrConnectionVetoed is returned by [Scene.Connect] when
	// [Hooks.ConnectionAdded] rejected the new connection.
	ErrConnectionVetoed = errors.New("connection rejected by host")
)

// Scene is the ordered set of nodes on a canvas together with the current
// focus. Index 0 of the node list is the front.
//
// A Scene is not safe for concurrent use.
type Scene struct {
	nodes  []*Node
	focus  Element
	policy Compatibility
	hooks  Hooks
	logger *log.Logger
}

// Option configures a [Scene].
type Option func(*Scene)

// WithHooks installs host hooks.
func WithHooks(h Hooks) Option { return func(s *Scene) { s.hooks = h } }

// WithCompatibility installs the compatibility policy.
func WithCompatibility(p Compatibility) Option { return func(s *Scene) { s.policy = p } }

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option { return func(s *Scene) { s.logger = l } }

// New returns an empty scene.
func New(opts ...Option) *Scene {
	s := &Scene{}
	for _, opt := range opts {
		opt(s)
	}
	if s.policy == nil {
		s.policy = AlwaysCompatible{}
	}
	if s.hooks == nil {
		s.hooks = NoopHooks{}
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s
}

// Nodes returns the nodes front to back.
func (s *Scene) Nodes() []*Node { return slices.Clone(s.nodes) }

// Len returns the number of nodes.
func (s *Scene) Len() int { return len(s.nodes) }

// Contains reports whether n is part of the scene.
func (s *Scene) Contains(n *Node) bool { return n != nil && slices.Contains(s.nodes, n) }

// Hooks returns the installed hooks.
func (s *Scene) Hooks() Hooks { return s.hooks }

// Compatible asks the compatibility policy about from and to.
func (s *Scene) Compatible(from, to *Connector) bool { return s.policy.Compatible(from, to) }

// SetCompatibility replaces the compatibility policy. Nil restores
// [AlwaysCompatible].
func (s *Scene) SetCompatibility(p Compatibility) {
	if p == nil {
		p = AlwaysCompatible{}
	}
	s.policy = p
}

// AddNode inserts n at the front and focuses it. It returns false if n is
// nil, already present or vetoed by [Hooks.NodeAdded].
func (s *Scene) AddNode(n *Node) bool {
	if n == nil || s.Contains(n) {
		return false
	}
	s.nodes = slices.Insert(s.nodes, 0, n)
	if !s.hooks.NodeAdded(n) {
		s.removeFromList(n)
		s.logger.Debug("node add vetoed", "title", n.Title())
		return false
	}
	s.SetFocus(NodeElement(n))
	s.logger.Debug("node added", "title", n.Title(), "id", n.ID)
	return true
}

// AddNodes inserts nodes so that they keep their relative order at the
// front of the scene, then focuses the last one accepted.
func (s *Scene) AddNodes(nodes ...*Node) int {
	added := 0
	var last *Node
	for _, n := range nodes {
		if n == nil || s.Contains(n) {
			continue
		}
		s.nodes = slices.Insert(s.nodes, added, n)
		if !s.hooks.NodeAdded(n) {
			s.removeFromList(n)
			continue
		}
		added++
		last = n
	}
	if last != nil {
		s.SetFocus(NodeElement(last))
	}
	return added
}

// RemoveNode severs every connection of n and removes it. It returns false
// if n is not in the scene or [Hooks.NodeRemoving] vetoed the removal.
func (s *Scene) RemoveNode(n *Node) bool {
	if !s.Contains(n) {
		return false
	}
	if !s.hooks.NodeRemoving(n) {
		return false
	}
	if s.focus.OwnerNode() == n || s.focusTouches(n) {
		s.SetFocus(Element{})
	}
	for _, c := range slices.Clone(n.connections) {
		s.unlink(c)
		s.hooks.ConnectionRemoved(c)
	}
	s.removeFromList(n)
	s.hooks.NodeRemoved(n)
	s.logger.Debug("node removed", "title", n.Title(), "id", n.ID)
	return true
}

func (s *Scene) focusTouches(n *Node) bool {
	if s.focus.Kind != ElementConnection {
		return false
	}
	c := s.focus.Connection
	return c.from.Node() == n || c.to.Node() == n
}

func (s *Scene) removeFromList(n *Node) {
	if i := slices.Index(s.nodes, n); i >= 0 {
		s.nodes = slices.Delete(s.nodes, i, i+1)
	}
}

// Connect links from (an output) to to (an input). Node connection lists
// are ordered front to back, so the new connection is added at index 0 of
// both endpoint lists: the newest connection paints on top, the same as
// appending to a back-to-front list and promoting it. On failure nothing
// was modified.
func (s *Scene) Connect(from, to *Connector) (*Connection, error) {
	if from == nil || to == nil || from.item == nil || to.item == nil {
		return nil, ErrNilConnector
	}
	fromNode, toNode := from.Node(), to.Node()
	if fromNode == nil || toNode == nil {
		return nil, ErrDetachedConnector
	}
	if !from.enabled || !to.enabled {
		return nil, ErrDisabledConnector
	}
	if from.role != Output || to.role != Input {
		return nil, ErrRoleMismatch
	}
	if fromNode.connectedTo(from, to) || toNode.connectedTo(from, to) {
		return nil, ErrDuplicateConnection
	}

	c := &Connection{from: from, to: to}
	fromNode.connections = slices.Insert(fromNode.connections, 0, c)
	if toNode != fromNode {
		toNode.connections = slices.Insert(toNode.connections, 0, c)
	}
	from.state |= Connected
	to.state |= Connected

	if !s.hooks.ConnectionAdded(c) {
		s.unlink(c)
		return nil, ErrConnectionVetoed
	}
	s.logger.Debug("connected", "from", fromNode.Title(), "to", toNode.Title(), "name", c.Name)
	return c, nil
}

// Disconnect unlinks c from both endpoint nodes and clears its endpoints.
// Disconnecting a connection twice is a no-op returning false, as is a
// removal vetoed by [Hooks.ConnectionRemoving].
func (s *Scene) Disconnect(c *Connection) bool {
	if c == nil || (c.from == nil && c.to == nil) {
		return false
	}
	if !s.hooks.ConnectionRemoving(c) {
		return false
	}
	s.unlink(c)
	s.hooks.ConnectionRemoved(c)
	s.logger.Debug("disconnected", "name", c.Name)
	return true
}

// DisconnectAll disconnects every connection of n, asking the hooks for
// each. It returns false if any removal was vetoed.
func (s *Scene) DisconnectAll(n *Node) bool {
	ok := true
	for _, c := range slices.Clone(n.connections) {
		if !s.Disconnect(c) {
			ok = false
		}
	}
	return ok
}

// RemoveItem disconnects every connection attached to it, then detaches
// it from its node. It returns false for a detached item or when a
// removal was vetoed, in which case the item stays where it was.
func (s *Scene) RemoveItem(it Item) bool {
	if it == nil || it.Base() == nil || it.Base().node == nil {
		return false
	}
	n := it.Base().node
	for _, c := range n.itemConnections(it) {
		if !s.Disconnect(c) {
			return false
		}
	}
	return n.RemoveItem(it)
}

// unlink removes c from both endpoint lists, tolerating a missing endpoint.
func (s *Scene) unlink(c *Connection) {
	if s.focus.Kind == ElementConnection && s.focus.Connection == c {
		c.state &^= Focus
		s.focus = Element{}
	}
	from, to := c.from, c.to
	if n := from.Node(); n != nil {
		n.unlink(c)
	}
	if n := to.Node(); n != nil {
		n.unlink(c)
	}
	c.from, c.to = nil, nil
	refreshConnected(from)
	refreshConnected(to)
}

func refreshConnected(c *Connector) {
	if c == nil {
		return
	}
	if len(c.Connections()) == 0 {
		c.state &^= Connected
	}
}

// Connections returns every connection in the scene once, in painting
// order: back node first, and within a node back connection first.
func (s *Scene) Connections() []*Connection {
	seen := make(map[*Connection]struct{})
	var out []*Connection
	for i := len(s.nodes) - 1; i >= 0; i-- {
		conns := s.nodes[i].connections
		for j := len(conns) - 1; j >= 0; j-- {
			c := conns[j]
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

// Focus returns the focused element: a node, a connection or none.
func (s *Scene) Focus() Element { return s.focus }

// SetFocus moves the focus to e and brings it to the front. Items and
// connectors focus their node. Elements outside the scene are ignored.
func (s *Scene) SetFocus(e Element) {
	switch e.Kind {
	case ElementItem, ElementConnector:
		e = NodeElement(e.OwnerNode())
	case ElementConnection:
		if !e.Connection.Attached() || !s.Contains(e.Connection.from.Node()) {
			return
		}
	}
	if e.Kind == ElementNode && !s.Contains(e.Node) {
		return
	}
	if s.focus.Equal(e) {
		if !e.IsNone() {
			s.BringToFront(e)
		}
		return
	}
	s.focus.ClearState(Focus)
	s.focus = e
	if e.IsNone() {
		return
	}
	e.AddState(Focus)
	s.BringToFront(e)
}

// BringToFront moves the node owning e to index 0. For a connection both
// endpoint nodes are promoted, the source last, and the connection moves
// to the front of both nodes' lists.
func (s *Scene) BringToFront(e Element) {
	switch e.Kind {
	case ElementNone:
		return
	case ElementConnection:
		c := e.Connection
		if !c.Attached() {
			return
		}
		s.promote(c.to.Node())
		s.promote(c.from.Node())
		c.to.Node().promote(c)
		c.from.Node().promote(c)
	default:
		s.promote(e.OwnerNode())
	}
}

func (s *Scene) promote(n *Node) {
	if i := slices.Index(s.nodes, n); i > 0 {
		s.nodes = slices.Delete(s.nodes, i, i+1)
		s.nodes = slices.Insert(s.nodes, 0, n)
	}
}
