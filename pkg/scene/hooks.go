package scene

// Hooks receives structural changes to a [Scene]. Methods returning bool
// can veto the change by returning false.
type Hooks interface {
	// NodeAdded runs after a node was inserted. Returning false removes it
	// again.
	NodeAdded(n *Node) bool
	// NodeRemoving runs before a node is removed. Returning false keeps it.
	NodeRemoving(n *Node) bool
	NodeRemoved(n *Node)

	// ConnectionAdded runs after a connection was linked into both
	// endpoint nodes. Returning false unlinks it again.
	ConnectionAdded(c *Connection) bool
	// ConnectionRemoving runs before a connection is unlinked. Returning
	// false keeps it. It is not called when a node removal severs the
	// node's connections.
	ConnectionRemoving(c *Connection) bool
	ConnectionRemoved(c *Connection)

	ConnectionDoubleClicked(c *Connection)
}

// NoopHooks accepts every change.
type NoopHooks struct{}

func (NoopHooks) NodeAdded(*Node) bool                { return true }
func (NoopHooks) NodeRemoving(*Node) bool             { return true }
func (NoopHooks) NodeRemoved(*Node)                   {}
func (NoopHooks) ConnectionAdded(*Connection) bool    { return true }
func (NoopHooks) ConnectionRemoving(*Connection) bool { return true }
func (NoopHooks) ConnectionRemoved(*Connection)       {}
func (NoopHooks) ConnectionDoubleClicked(*Connection) {}
