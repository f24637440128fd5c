package scene

import "github.com/matzehuels/nodecanvas/pkg/geom"

// ItemKind names an item type. Renderers look up the visual strategy for
// an item by its kind.
type ItemKind string

// KindTitle is the kind of every node's [Title] item.
const KindTitle ItemKind = "title"

// Item is one row of a node.
//
// Concrete items embed [ItemBase], call [ItemBase.Init] from their
// constructor and override the callbacks they care about. Callbacks return
// true when the item changed and needs to be redrawn.
type Item interface {
	Base() *ItemBase
	Kind() ItemKind

	OnClick() bool
	OnEnter() bool
	OnLeave() bool
	// OnStartDrag is called on press. Returning true claims the drag;
	// otherwise the press drags the owning node.
	OnStartDrag(p geom.Point) bool
	OnDrag(p geom.Point) bool
	OnEndDrag() bool
}

// ItemBase carries the state shared by all items.
type ItemBase struct {
	// Tag is host data. [TagKindCompatibility] compares the dynamic types
	// of the tags on both ends of a prospective connection.
	Tag any

	node   *Node
	input  *Connector
	output *Connector
	bounds geom.Rect
	state  RenderState
}

// Init creates the item's connectors. self must be the concrete item that
// embeds b.
func (b *ItemBase) Init(self Item, inputEnabled, outputEnabled bool) {
	b.input = &Connector{item: self, role: Input, enabled: inputEnabled}
	b.output = &Connector{item: self, role: Output, enabled: outputEnabled}
}

func (b *ItemBase) Base() *ItemBase { return b }

// Node returns the owning node, or nil for a detached item.
func (b *ItemBase) Node() *Node { return b.node }

func (b *ItemBase) Input() *Connector  { return b.input }
func (b *ItemBase) Output() *Connector { return b.output }

// Connector returns the connector of the given role.
func (b *ItemBase) Connector(r Role) *Connector {
	if r == Input {
		return b.input
	}
	return b.output
}

// Bounds is the item's rectangle from the last layout.
func (b *ItemBase) Bounds() geom.Rect { return b.bounds }

// SetBounds is called by the layout pass.
func (b *ItemBase) SetBounds(r geom.Rect) { b.bounds = r }

func (b *ItemBase) State() RenderState          { return b.state }
func (b *ItemBase) SetState(s RenderState)      { b.state = s }
func (b *ItemBase) AddState(f RenderState)      { b.state |= f }
func (b *ItemBase) ClearState(f RenderState)    { b.state &^= f }
func (b *ItemBase) OnClick() bool               { return false }
func (b *ItemBase) OnEnter() bool               { return false }
func (b *ItemBase) OnLeave() bool               { return false }
func (b *ItemBase) OnStartDrag(geom.Point) bool { return false }
func (b *ItemBase) OnDrag(geom.Point) bool      { return false }
func (b *ItemBase) OnEndDrag() bool             { return false }

// Title is the header row every node owns. It is always laid out first
// and stays visible when the node is collapsed.
type Title struct {
	ItemBase
	Text string
}

// NewTitle returns a title item with both connectors disabled.
func NewTitle(text string) *Title {
	t := &Title{Text: text}
	t.Init(t, false, false)
	return t
}

func (t *Title) Kind() ItemKind { return KindTitle }
