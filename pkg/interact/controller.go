package interact

import (
	"errors"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nodecanvas/pkg/geom"
	"github.com/matzehuels/nodecanvas/pkg/layout"
	"github.com/matzehuels/nodecanvas/pkg/observability"
	"github.com/matzehuels/nodecanvas/pkg/pick"
	"github.com/matzehuels/nodecanvas/pkg/scene"
)

// ErrIncompatible is reported to the interaction hooks when a drop is
// refused by the scene's compatibility policy.
var ErrIncompatible = errors.New("connectors are incompatible")

// DragThreshold is the distance in scene units the pointer must travel on
// either axis before a press becomes a drag.
const DragThreshold = 1.0

// DragKind is the gesture started by the last press.
type DragKind uint8

const (
	DragNone DragKind = iota
	DragNode
	DragItem
	DragConnector
	// DragConnection is a press on a connection. The connection is detached
	// once the pointer crosses the threshold and the gesture continues as a
	// DragConnector from its output end.
	DragConnection
	DragPan
)

func (k DragKind) String() string {
	switch k {
	case DragNode:
		return "node"
	case DragItem:
		return "item"
	case DragConnector:
		return "connector"
	case DragConnection:
		return "connection"
	case DragPan:
		return "pan"
	default:
		return "none"
	}
}

// Key identifies a key delivered through [Controller.KeyUp].
type Key uint8

const (
	KeyNone Key = iota
	KeyDelete
)

// Pending describes the connection being drawn during a connector drag.
// From is on the output side and To on the input side, whichever end the
// user holds.
type Pending struct {
	From, To geom.Point
	// State carries Dragging plus Compatible or Incompatible when the
	// pointer is over a connector that could close the connection.
	State scene.RenderState
}

// Controller is the pointer state machine of one scene and view. All
// methods take view-space points and report whether the scene needs to be
// redrawn. A Controller is not safe for concurrent use.
type Controller struct {
	scene    *scene.Scene
	view     *View
	logger   *log.Logger
	measurer layout.Measurer

	drag      DragKind
	startKind DragKind
	started   time.Time
	moved     bool
	consumed  bool

	pressView  geom.Point
	lastView   geom.Point
	cursor     geom.Point
	nodeOrigin geom.Point

	dragNode      *scene.Node
	dragItem      scene.Item
	dragConnector *scene.Connector
	pending       *scene.Connection
	marked        []*scene.Connector

	hover       scene.Element
	hoverTarget scene.Element
	hoverNode   *scene.Node
	hoverItem   scene.Item
	draggedOver *scene.Node

	dropNode *scene.Node
}

// Option configures a [Controller].
type Option func(*Controller)

// WithLogger sets the logger used for gesture debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMeasurer makes the controller lay out the scene before every pointer
// event, so picking never sees stale geometry. Without it the host must
// lay out between events.
func WithMeasurer(m layout.Measurer) Option {
	return func(c *Controller) { c.measurer = m }
}

// NewController returns a controller for s. A nil view is replaced with
// an identity view.
func NewController(s *scene.Scene, v *View, opts ...Option) *Controller {
	if v == nil {
		v = &View{}
	}
	c := &Controller{scene: s, view: v, logger: log.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Scene() *scene.Scene { return c.scene }
func (c *Controller) View() *View         { return c.view }

// Dragging returns the active gesture.
func (c *Controller) Dragging() DragKind { return c.drag }

// Moved reports whether the last gesture crossed the drag threshold.
func (c *Controller) Moved() bool { return c.moved }

// Hover returns the element under the pointer after redirection: while a
// connector is dragged over a node with a single connector of the
// opposite role, that connector.
func (c *Controller) Hover() scene.Element { return c.hover }

// DraggedOver returns the node under the pointer during a connector drag,
// other than the node the drag started from.
func (c *Controller) DraggedOver() *scene.Node { return c.draggedOver }

// PendingConnection returns the connection being drawn, if any.
func (c *Controller) PendingConnection() (Pending, bool) {
	anchor := c.anchor()
	if anchor == nil || !c.moved {
		return Pending{}, false
	}
	end := c.cursor
	state := scene.Dragging
	if t := c.target(anchor); t != nil {
		end = t.Anchor().Center()
		state |= t.State() & (scene.Compatible | scene.Incompatible)
	}
	start := anchor.Anchor().Center()
	if anchor.Role() == scene.Input {
		return Pending{From: end, To: start, State: state}, true
	}
	return Pending{From: start, To: end, State: state}, true
}

func (c *Controller) relayout() {
	if c.measurer != nil {
		layout.Scene(c.scene, c.measurer)
	}
}

// =============================================================================
// Pointer events
// =============================================================================

// Press starts a gesture at p.
func (c *Controller) Press(p geom.Point) bool {
	c.relayout()
	c.reset()
	sp := c.view.ToScene(p)
	c.pressView, c.lastView, c.cursor = p, p, sp
	c.moved = false
	c.started = time.Now()

	e := pick.Pick(c.scene, sp)
	switch e.Kind {
	case scene.ElementConnector:
		c.scene.SetFocus(e)
		c.beginConnectorDrag(e.Connector)
	case scene.ElementItem:
		c.scene.SetFocus(e)
		if e.Item.OnStartDrag(sp) {
			c.drag = DragItem
			c.dragItem = e.Item
			e.Item.Base().AddState(scene.Dragging)
		} else {
			c.beginNodeDrag(e.OwnerNode())
		}
	case scene.ElementNode:
		c.scene.SetFocus(e)
		c.beginNodeDrag(e.Node)
	case scene.ElementConnection:
		c.scene.SetFocus(e)
		c.drag = DragConnection
		c.pending = e.Connection
		e.Connection.AddState(scene.Dragging)
	default:
		c.drag = DragPan
	}
	c.startKind = c.drag
	c.logger.Debug("press", "element", e, "drag", c.drag)
	observability.Interaction().OnGestureStart(c.drag.String())
	return true
}

func (c *Controller) beginNodeDrag(n *scene.Node) {
	c.drag = DragNode
	c.dragNode = n
	c.nodeOrigin = n.Location
	n.AddState(scene.Dragging)
}

func (c *Controller) beginConnectorDrag(from *scene.Connector) {
	c.drag = DragConnector
	c.dragConnector = from
	from.AddState(scene.Dragging)
	c.markCompatibility(from)
}

// markCompatibility flags every enabled connector of the opposite role
// with the policy's verdict against from. Connectors on from's own node
// are always incompatible.
func (c *Controller) markCompatibility(from *scene.Connector) {
	role := from.Role().Opposite()
	for _, n := range c.scene.Nodes() {
		for _, other := range connectors(n, role) {
			ok := n != from.Node()
			if ok {
				if role == scene.Input {
					ok = c.scene.Compatible(from, other)
				} else {
					ok = c.scene.Compatible(other, from)
				}
			}
			if ok {
				other.AddState(scene.Compatible)
			} else {
				other.AddState(scene.Incompatible)
			}
			c.marked = append(c.marked, other)
		}
	}
}

// Move tracks the pointer. It advances the active gesture once the
// pointer has crossed the drag threshold and recomputes hover.
func (c *Controller) Move(p geom.Point) bool {
	c.relayout()
	sp := c.view.ToScene(p)
	redraw := false

	if c.drag != DragNone && !c.moved {
		d := p.Sub(c.pressView).Mul(1 / c.view.Zoom())
		if math.Abs(d.X) > DragThreshold || math.Abs(d.Y) > DragThreshold {
			c.moved = true
			redraw = true
		}
	}

	if c.moved {
		switch c.drag {
		case DragPan:
			c.view.Pan = c.view.Pan.Add(p.Sub(c.lastView))
			c.lastView = p
			c.cursor = sp
			return true
		case DragNode:
			d := p.Sub(c.pressView).Mul(1 / c.view.Zoom())
			c.dragNode.Location = c.nodeOrigin.Add(d).Round()
			redraw = true
		case DragItem:
			if c.dragItem.OnDrag(sp) {
				redraw = true
			}
		case DragConnection:
			c.detach()
			redraw = true
		case DragConnector:
			redraw = true
		}
	}

	c.lastView = p
	c.cursor = sp
	if c.updateHover(sp) {
		redraw = true
	}
	return redraw
}

// detach disconnects the pressed connection and continues the gesture
// from its output end. A vetoed disconnect ends the gesture.
func (c *Controller) detach() {
	conn := c.pending
	c.pending = nil
	conn.ClearState(scene.Dragging)
	from := conn.From()
	if !c.scene.Disconnect(conn) {
		c.drag = DragNone
		return
	}
	c.logger.Debug("connection detached", "name", conn.Name)
	c.beginConnectorDrag(from)
}

// Release ends the gesture. A connector drag over an opposite-role
// connector on another node connects the two when the compatibility
// policy allows it. Gesture state is reset however the release ends.
func (c *Controller) Release(p geom.Point) (redraw bool) {
	sp := c.view.ToScene(p)
	c.cursor = sp
	defer func() {
		c.reset()
		c.relayout()
		c.updateHover(sp)
	}()

	switch c.drag {
	case DragConnector:
		// Hosts may report the release without a move to the same point.
		c.relayout()
		c.updateHover(sp)
		c.release(c.dragConnector)
		return true
	case DragPan:
		if !c.moved && !c.scene.Focus().IsNone() {
			c.scene.SetFocus(scene.Element{})
			return true
		}
		return c.moved
	case DragNone:
		return false
	}
	return true
}

func (c *Controller) release(anchor *scene.Connector) {
	t := c.target(anchor)
	if t == nil {
		return
	}
	from, to := anchor, t
	if anchor.Role() == scene.Input {
		from, to = t, anchor
	}
	if !c.scene.Compatible(from, to) {
		c.scene.SetFocus(scene.Element{})
		observability.Interaction().OnConnect(from.Node().Title(), to.Node().Title(), ErrIncompatible)
		return
	}
	conn, err := c.scene.Connect(from, to)
	observability.Interaction().OnConnect(from.Node().Title(), to.Node().Title(), err)
	if err != nil {
		c.logger.Debug("connect rejected", "err", err)
		c.scene.SetFocus(scene.Element{})
		return
	}
	c.scene.SetFocus(scene.ConnectionElement(conn))
}

// target returns the hovered connector that could close a connection
// started at anchor, or nil.
func (c *Controller) target(anchor *scene.Connector) *scene.Connector {
	if c.hover.Kind != scene.ElementConnector {
		return nil
	}
	t := c.hover.Connector
	if t.Role() != anchor.Role().Opposite() || t.Node() == anchor.Node() || !t.Enabled() {
		return nil
	}
	return t
}

// anchor returns the held end of an in-flight connection.
func (c *Controller) anchor() *scene.Connector {
	if c.drag == DragConnector {
		return c.dragConnector
	}
	return nil
}

// reset ends the active gesture and clears every flag it set.
func (c *Controller) reset() {
	if c.drag == DragNone && c.startKind == DragNone && c.dragItem == nil && len(c.marked) == 0 {
		return
	}
	if c.dragItem != nil {
		c.dragItem.OnEndDrag()
		c.dragItem.Base().ClearState(scene.Dragging)
	}
	if c.dragNode != nil {
		c.dragNode.ClearState(scene.Dragging)
	}
	if c.dragConnector != nil {
		c.dragConnector.ClearState(scene.Dragging)
	}
	if c.pending != nil {
		c.pending.ClearState(scene.Dragging)
	}
	for _, m := range c.marked {
		m.ClearState(scene.Compatible | scene.Incompatible)
	}
	if c.draggedOver != nil {
		c.draggedOver.ClearState(scene.DraggedOver)
	}
	if c.startKind != DragNone {
		observability.Interaction().OnGestureEnd(c.startKind.String(), c.moved, time.Since(c.started))
	}
	c.drag, c.startKind = DragNone, DragNone
	c.dragNode, c.dragItem, c.dragConnector, c.pending = nil, nil, nil, nil
	c.marked, c.draggedOver = nil, nil
}

// Click delivers a click at p after a release. Only items react. A click
// an item handles suppresses the double-click that may follow it.
func (c *Controller) Click(p geom.Point) bool {
	if c.moved {
		return false
	}
	c.relayout()
	e := pick.Pick(c.scene, c.view.ToScene(p))
	c.consumed = e.Kind == scene.ElementItem && e.Item.OnClick()
	return c.consumed
}

// DoubleClick fires a connection's double-click notification, or toggles
// the collapsed state of the node under p and focuses it.
func (c *Controller) DoubleClick(p geom.Point) bool {
	consumed := c.consumed
	c.consumed = false
	if c.moved || consumed {
		return false
	}
	c.relayout()
	e := pick.Pick(c.scene, c.view.ToScene(p))
	switch e.Kind {
	case scene.ElementConnection:
		e.Connection.DoubleClick()
		c.scene.Hooks().ConnectionDoubleClicked(e.Connection)
		return true
	case scene.ElementNode, scene.ElementItem:
		n := e.OwnerNode()
		n.ToggleCollapsed()
		c.scene.SetFocus(scene.NodeElement(n))
		c.logger.Debug("collapse toggled", "title", n.Title(), "collapsed", n.Collapsed())
		return true
	}
	return false
}

// KeyUp handles a released key. Delete removes the focused node or
// disconnects the focused connection.
func (c *Controller) KeyUp(k Key) bool {
	if k != KeyDelete {
		return false
	}
	f := c.scene.Focus()
	switch f.Kind {
	case scene.ElementNode:
		if !c.scene.RemoveNode(f.Node) {
			return false
		}
	case scene.ElementConnection:
		if !c.scene.Disconnect(f.Connection) {
			return false
		}
	default:
		return false
	}
	c.clearHover()
	return true
}

// Wheel zooms the view by a wheel delta in host units.
func (c *Controller) Wheel(delta float64) bool {
	return c.view.ZoomBy(delta)
}

// =============================================================================
// Drag and drop of new nodes
// =============================================================================

// DragEnter adds n to the scene while an external drag hovers the canvas.
// It returns false if the scene refused the node.
func (c *Controller) DragEnter(n *scene.Node) bool {
	c.dropNode = nil
	if !c.scene.AddNode(n) {
		return false
	}
	c.dropNode = n
	return true
}

// DragOver centres the dropped node horizontally on p, with its title row
// under the pointer.
func (c *Controller) DragOver(p geom.Point) bool {
	n := c.dropNode
	if n == nil {
		return false
	}
	c.relayout()
	sp := c.view.ToScene(p)
	title := n.TitleItem().Bounds()
	loc := geom.Pt(sp.X-n.Bounds().W/2, sp.Y-title.H/2)
	if loc == n.Location {
		return false
	}
	n.Location = loc
	return true
}

// DragLeave removes the node added by DragEnter.
func (c *Controller) DragLeave() bool {
	n := c.dropNode
	c.dropNode = nil
	if n == nil {
		return false
	}
	return c.scene.RemoveNode(n)
}

// Drop places the node added by DragEnter at p and keeps it.
func (c *Controller) Drop(p geom.Point) bool {
	n := c.dropNode
	if n == nil {
		return false
	}
	c.DragOver(p)
	c.dropNode = nil
	c.scene.SetFocus(scene.NodeElement(n))
	return true
}

// =============================================================================
// Hover
// =============================================================================

// updateHover recomputes the hovered element and its flags.
func (c *Controller) updateHover(sp geom.Point) bool {
	e := pick.Pick(c.scene, sp)
	var node *scene.Node
	if e.Kind != scene.ElementConnection {
		node = e.OwnerNode()
	}
	if c.dragItem != nil {
		e = scene.ItemElement(c.dragItem)
		node = c.dragItem.Base().Node()
	}

	var over *scene.Node
	if anchor := c.anchor(); anchor != nil && node != nil && node != anchor.Node() {
		over = node
		if e.Kind != scene.ElementConnector {
			if only := soleConnector(node, anchor.Role().Opposite()); only != nil {
				e = scene.ConnectorElement(only)
			}
		}
	}
	c.hover = e

	redraw := false
	var target scene.Element
	if e.Kind == scene.ElementConnector || e.Kind == scene.ElementConnection {
		target = e
	}
	if !c.hoverTarget.Equal(target) {
		c.hoverTarget.ClearState(scene.Hover)
		c.hoverTarget = target
		target.AddState(scene.Hover)
		redraw = true
	}

	if node != c.hoverNode {
		if c.hoverNode != nil {
			c.hoverNode.ClearState(scene.Hover)
		}
		c.hoverNode = node
		redraw = true
	}
	if node != nil && !node.State().Has(scene.Hover) {
		node.AddState(scene.Hover)
		redraw = true
	}

	var item scene.Item
	if e.Kind == scene.ElementItem {
		item = e.Item
	}
	if item != c.hoverItem {
		if c.hoverItem != nil {
			if c.hoverItem.OnLeave() {
				redraw = true
			}
			c.hoverItem.Base().ClearState(scene.Hover)
		}
		c.hoverItem = item
		if item != nil && item.OnEnter() {
			item.Base().AddState(scene.Hover)
			redraw = true
		}
	}

	if over != c.draggedOver {
		if c.draggedOver != nil {
			c.draggedOver.ClearState(scene.DraggedOver)
		}
		if over != nil {
			over.AddState(scene.DraggedOver)
		}
		c.draggedOver = over
		redraw = true
	}
	return redraw
}

func (c *Controller) clearHover() {
	c.hoverTarget.ClearState(scene.Hover)
	if c.hoverNode != nil {
		c.hoverNode.ClearState(scene.Hover)
	}
	if c.hoverItem != nil {
		c.hoverItem.OnLeave()
		c.hoverItem.Base().ClearState(scene.Hover)
	}
	c.hover, c.hoverTarget = scene.Element{}, scene.Element{}
	c.hoverNode, c.hoverItem = nil, nil
}

// connectors returns the enabled connectors of role r on every item of n,
// title first.
func connectors(n *scene.Node, r scene.Role) []*scene.Connector {
	var out []*scene.Connector
	for _, it := range append([]scene.Item{n.TitleItem()}, n.Items()...) {
		if cn := it.Base().Connector(r); cn != nil && cn.Enabled() {
			out = append(out, cn)
		}
	}
	return out
}

// soleConnector returns the only enabled connector of role r on n.
func soleConnector(n *scene.Node, r scene.Role) *scene.Connector {
	list := connectors(n, r)
	if len(list) != 1 {
		return nil
	}
	return list[0]
}
