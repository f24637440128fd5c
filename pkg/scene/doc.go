// Package scene holds the data model of the node canvas: nodes, their
// ordered items, the connectors those items expose and the connections
// between connectors.
//
// # Structure
//
// A [Scene] owns an ordered list of [Node] values. Index 0 is the front of
// the z-order: it is drawn last and picked first. Every node carries a
// [Title] item plus any number of additional [Item] values. Each item has
// exactly one input and one output [Connector], either of which may be
// disabled.
//
// A [Connection] joins an output connector to an input connector. It is
// stored in the connection list of both endpoint nodes and must always be
// reachable from both. Connections are created only by [Scene.Connect] and
// destroyed only by [Scene.Disconnect]; the package maintains this
// invariant and never exposes a way to half-link a connection.
//
// # Elements
//
// Picking and focus work on [Element], a tagged union over the four
// pickable kinds. Element dispatch is exhaustive over [ElementKind].
//
// # Geometry
//
// Bounds and connector anchors on nodes, items and connectors are written
// by the layout pass and read by picking and rendering. They are valid only
// after the most recent layout.
//
// # Hooks
//
// [Hooks] lets the host observe and veto structural changes. Embed
// [NoopHooks] to override selectively.
package scene
