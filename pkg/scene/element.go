package scene

// ElementKind discriminates [Element].
type ElementKind uint8

const (
	ElementNone ElementKind = iota
	ElementNode
	ElementItem
	ElementConnector
	ElementConnection
)

func (k ElementKind) String() string {
	switch k {
	case ElementNode:
		return "node"
	case ElementItem:
		return "item"
	case ElementConnector:
		return "connector"
	case ElementConnection:
		return "connection"
	default:
		return "none"
	}
}

// Element is one pickable thing on the canvas. Exactly the field matching
// Kind is set; the zero Element is ElementNone.
type Element struct {
	Kind       ElementKind
	Node       *Node
	Item       Item
	Connector  *Connector
	Connection *Connection
}

func NodeElement(n *Node) Element {
	if n == nil {
		return Element{}
	}
	return Element{Kind: ElementNode, Node: n}
}

func ItemElement(it Item) Element {
	if it == nil {
		return Element{}
	}
	return Element{Kind: ElementItem, Item: it}
}

func ConnectorElement(c *Connector) Element {
	if c == nil {
		return Element{}
	}
	return Element{Kind: ElementConnector, Connector: c}
}

func ConnectionElement(c *Connection) Element {
	if c == nil {
		return Element{}
	}
	return Element{Kind: ElementConnection, Connection: c}
}

// IsNone reports whether e refers to nothing.
func (e Element) IsNone() bool { return e.Kind == ElementNone }

// Equal reports whether e and o refer to the same element.
func (e Element) Equal(o Element) bool {
	if e.Kind != o.Kind {
		return false
	}
	switch e.Kind {
	case ElementNode:
		return e.Node == o.Node
	case ElementItem:
		return e.Item == o.Item
	case ElementConnector:
		return e.Connector == o.Connector
	case ElementConnection:
		return e.Connection == o.Connection
	default:
		return true
	}
}

// OwnerNode returns the node e belongs to. For a connection this is the
// node of its output end.
func (e Element) OwnerNode() *Node {
	switch e.Kind {
	case ElementNode:
		return e.Node
	case ElementItem:
		return e.Item.Base().Node()
	case ElementConnector:
		return e.Connector.Node()
	case ElementConnection:
		return e.Connection.From().Node()
	default:
		return nil
	}
}

// State returns the element's render state.
func (e Element) State() RenderState {
	switch e.Kind {
	case ElementNode:
		return e.Node.state
	case ElementItem:
		return e.Item.Base().state
	case ElementConnector:
		return e.Connector.state
	case ElementConnection:
		return e.Connection.state
	default:
		return None
	}
}

// AddState sets flags on the element.
func (e Element) AddState(f RenderState) { e.update(func(s RenderState) RenderState { return s | f }) }

// ClearState clears flags on the element.
func (e Element) ClearState(f RenderState) { e.update(func(s RenderState) RenderState { return s &^ f }) }

func (e Element) update(fn func(RenderState) RenderState) {
	switch e.Kind {
	case ElementNode:
		e.Node.state = fn(e.Node.state)
	case ElementItem:
		b := e.Item.Base()
		b.state = fn(b.state)
	case ElementConnector:
		e.Connector.state = fn(e.Connector.state)
	case ElementConnection:
		e.Connection.state = fn(e.Connection.state)
	}
}

func (e Element) String() string {
	switch e.Kind {
	case ElementNode:
		return "node " + e.Node.Title()
	case ElementItem:
		return "item " + string(e.Item.Kind())
	case ElementConnector:
		return e.Connector.Role().String() + " connector"
	case ElementConnection:
		return "connection " + e.Connection.Name
	default:
		return "none"
	}
}
