package scene

import (
	"errors"
	"slices"
	"testing"
)

type testItem struct {
	ItemBase
}

func (*testItem) Kind() ItemKind { return "test" }

func newTestItem(in, out bool) *testItem {
	it := &testItem{}
	it.Init(it, in, out)
	return it
}

// pair builds a scene with two nodes, a source with an enabled output and a
// sink with an enabled input.
func pair(t *testing.T, opts ...Option) (*Scene, *Node, *Node, *testItem, *testItem) {
	t.Helper()
	s := New(opts...)
	a, b := NewNode("a"), NewNode("b")
	src, dst := newTestItem(false, true), newTestItem(true, false)
	a.AddItem(src)
	b.AddItem(dst)
	s.AddNode(a)
	s.AddNode(b)
	return s, a, b, src, dst
}

func TestConnectMirrorsIntoBothNodes(t *testing.T) {
	s, a, b, src, dst := pair(t)

	c, err := s.Connect(src.Output(), dst.Input())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if c.From() != src.Output() || c.To() != dst.Input() {
		t.Error("connection endpoints not set")
	}
	if !slices.Contains(a.Connections(), c) || !slices.Contains(b.Connections(), c) {
		t.Error("connection must be present in both endpoint nodes")
	}
	if !src.Output().State().Has(Connected) || !dst.Input().State().Has(Connected) {
		t.Error("endpoints should be flagged connected")
	}
	if got := s.Connections(); len(got) != 1 {
		t.Errorf("Connections() = %d entries, want 1", len(got))
	}
}

func TestConnectRejectsDuplicate(t *testing.T) {
	s, a, b, src, dst := pair(t)
	if _, err := s.Connect(src.Output(), dst.Input()); err != nil {
		t.Fatal(err)
	}
	_, err := s.Connect(src.Output(), dst.Input())
	if !errors.Is(err, ErrDuplicateConnection) {
		t.Fatalf("second Connect err = %v, want ErrDuplicateConnection", err)
	}
	if len(a.Connections()) != 1 || len(b.Connections()) != 1 {
		t.Error("duplicate connect must not grow connection lists")
	}
}

func TestConnectRejections(t *testing.T) {
	tests := []struct {
		name  string
		setup func(src, dst *testItem, loose *testItem) (*Connector, *Connector)
		want  error
	}{
		{
			name:  "nil source",
			setup: func(src, dst, _ *testItem) (*Connector, *Connector) { return nil, dst.Input() },
			want:  ErrNilConnector,
		},
		{
			name:  "disabled target",
			setup: func(src, dst, _ *testItem) (*Connector, *Connector) { return src.Output(), dst.Output() },
			want:  ErrDisabledConnector,
		},
		{
			name: "input to output",
			setup: func(src, dst, _ *testItem) (*Connector, *Connector) {
				src.Input().SetEnabled(true)
				dst.Output().SetEnabled(true)
				return src.Input(), dst.Output()
			},
			want: ErrRoleMismatch,
		},
		{
			name:  "detached item",
			setup: func(src, _, loose *testItem) (*Connector, *Connector) { return src.Output(), loose.Input() },
			want:  ErrDetachedConnector,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, a, b, src, dst := pair(t)
			from, to := tt.setup(src, dst, newTestItem(true, true))
			_, err := s.Connect(from, to)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Connect err = %v, want %v", err, tt.want)
			}
			if tt.want != nil && (len(a.Connections()) != 0 || len(b.Connections()) != 0) {
				t.Error("rejected connect must leave connection lists untouched")
			}
		})
	}
}

func TestDisconnectIdempotent(t *testing.T) {
	s, a, b, src, dst := pair(t)
	c, _ := s.Connect(src.Output(), dst.Input())

	if !s.Disconnect(c) {
		t.Fatal("first Disconnect should succeed")
	}
	if c.From() != nil || c.To() != nil {
		t.Error("Disconnect must clear endpoints")
	}
	if len(a.Connections()) != 0 || len(b.Connections()) != 0 {
		t.Error("Disconnect must remove from both nodes")
	}
	if src.Output().State().Has(Connected) {
		t.Error("connected flag should be cleared")
	}
	if s.Disconnect(c) {
		t.Error("second Disconnect should be a no-op")
	}
	if s.Disconnect(nil) {
		t.Error("Disconnect(nil) should be a no-op")
	}
}

func TestConnectedFlagSurvivesOtherConnection(t *testing.T) {
	s, _, b, src, dst := pair(t)
	other := newTestItem(true, false)
	b.AddItem(other)
	c1, _ := s.Connect(src.Output(), dst.Input())
	if _, err := s.Connect(src.Output(), other.Input()); err != nil {
		t.Fatal(err)
	}
	s.Disconnect(c1)
	if !src.Output().State().Has(Connected) {
		t.Error("source still has a connection and must stay flagged")
	}
	if dst.Input().State().Has(Connected) {
		t.Error("target lost its only connection")
	}
}

type vetoHooks struct {
	NoopHooks
	vetoConnect    bool
	vetoDisconnect bool
	vetoAdd        bool
	vetoRemove     bool
	removed        []*Node
	doubleClicked  int
}

func (h *vetoHooks) ConnectionAdded(*Connection) bool    { return !h.vetoConnect }
func (h *vetoHooks) ConnectionRemoving(*Connection) bool { return !h.vetoDisconnect }
func (h *vetoHooks) NodeAdded(*Node) bool                { return !h.vetoAdd }
func (h *vetoHooks) NodeRemoving(*Node) bool             { return !h.vetoRemove }
func (h *vetoHooks) NodeRemoved(n *Node)                 { h.removed = append(h.removed, n) }

func TestConnectVetoRollsBack(t *testing.T) {
	h := &vetoHooks{vetoConnect: true}
	s, a, b, src, dst := pair(t, WithHooks(h))
	c, err := s.Connect(src.Output(), dst.Input())
	if !errors.Is(err, ErrConnectionVetoed) || c != nil {
		t.Fatalf("Connect = %v, %v; want nil, ErrConnectionVetoed", c, err)
	}
	if len(a.Connections()) != 0 || len(b.Connections()) != 0 {
		t.Error("vetoed connection must be rolled back")
	}
	if src.Output().State().Has(Connected) {
		t.Error("vetoed connection must not leave connected flags")
	}
}

func TestDisconnectVeto(t *testing.T) {
	h := &vetoHooks{}
	s, a, _, src, dst := pair(t, WithHooks(h))
	c, _ := s.Connect(src.Output(), dst.Input())
	h.vetoDisconnect = true
	if s.Disconnect(c) {
		t.Fatal("vetoed Disconnect should return false")
	}
	if len(a.Connections()) != 1 || !c.Attached() {
		t.Error("vetoed Disconnect must keep the connection")
	}
}

func TestAddNodeVeto(t *testing.T) {
	s := New(WithHooks(&vetoHooks{vetoAdd: true}))
	if s.AddNode(NewNode("x")) {
		t.Error("vetoed AddNode should return false")
	}
	if s.Len() != 0 {
		t.Error("vetoed node must not stay in the scene")
	}
}

func TestRemoveNodeCascade(t *testing.T) {
	h := &vetoHooks{}
	s, a, b, src, dst := pair(t, WithHooks(h))
	c, _ := s.Connect(src.Output(), dst.Input())
	s.SetFocus(ConnectionElement(c))

	if !s.RemoveNode(a) {
		t.Fatal("RemoveNode should succeed")
	}
	if s.Contains(a) {
		t.Error("node still in scene")
	}
	if len(b.Connections()) != 0 {
		t.Error("peer node must lose the connection")
	}
	if c.Attached() {
		t.Error("severed connection must have no endpoints")
	}
	if !s.Focus().IsNone() {
		t.Error("focus on a severed connection must be cleared")
	}
	if len(h.removed) != 1 || h.removed[0] != a {
		t.Error("NodeRemoved hook not called")
	}
}

func TestRemoveNodeVeto(t *testing.T) {
	s, a, _, _, _ := pair(t, WithHooks(&vetoHooks{vetoRemove: true}))
	if s.RemoveNode(a) || !s.Contains(a) {
		t.Error("vetoed RemoveNode must keep the node")
	}
}

func TestAddNodeFocusesAndFronts(t *testing.T) {
	s, a, b, _, _ := pair(t)
	if s.Nodes()[0] != b {
		t.Error("last added node should be in front")
	}
	if f := s.Focus(); f.Kind != ElementNode || f.Node != b {
		t.Errorf("focus = %v, want node b", f)
	}
	if !b.State().Has(Focus) || a.State().Has(Focus) {
		t.Error("focus flag should move with focus")
	}
}

func TestAddNodesKeepsOrder(t *testing.T) {
	s := New()
	x, y, z := NewNode("x"), NewNode("y"), NewNode("z")
	if got := s.AddNodes(x, y, nil, x, z); got != 3 {
		t.Fatalf("AddNodes = %d, want 3", got)
	}
	got := s.Nodes()
	if got[0] != z || got[1] != x || got[2] != y {
		t.Errorf("order = %v %v %v", got[0].Title(), got[1].Title(), got[2].Title())
	}
	if s.Focus().Node != z {
		t.Error("last added node should be focused")
	}
}

func TestFocusConnectionPromotes(t *testing.T) {
	s, a, b, src, dst := pair(t)
	extra := newTestItem(true, false)
	b.AddItem(extra)
	c1, _ := s.Connect(src.Output(), dst.Input())
	c2, _ := s.Connect(src.Output(), extra.Input())
	if a.Connections()[0] != c2 {
		t.Fatal("new connection should be at the front")
	}

	s.SetFocus(ConnectionElement(c1))
	if a.Connections()[0] != c1 || b.Connections()[0] != c1 {
		t.Error("focused connection must move to the front of both lists")
	}
	if s.Nodes()[0] != a {
		t.Error("source node should end up in front")
	}
	if !c1.State().Has(Focus) || b.State().Has(Focus) {
		t.Error("only the connection should carry focus")
	}
	s.SetFocus(NodeElement(b))
	if c1.State().Has(Focus) {
		t.Error("focus flag should be cleared on the old element")
	}
}

func TestCollapsedWithoutItems(t *testing.T) {
	n := NewNode("empty")
	if !n.Collapsed() {
		t.Error("a node without items is always collapsed")
	}
	n.SetCollapsed(false)
	if !n.Collapsed() {
		t.Error("clearing the flag must not expand an empty node")
	}
	if got := n.VisibleItems(); len(got) != 1 || got[0] != Item(n.TitleItem()) {
		t.Error("collapsed node shows its title only")
	}

	n.AddItem(newTestItem(false, false))
	if n.Collapsed() {
		t.Error("node with items is expanded by default")
	}
	n.SetCollapsed(true)
	n.AddState(Dragging)
	if n.Collapsed() {
		t.Error("dragging shows expanded geometry")
	}
}

func TestAddItemMovesBetweenNodes(t *testing.T) {
	a, b := NewNode("a"), NewNode("b")
	it := newTestItem(true, true)
	if !a.AddItem(it) {
		t.Fatal("AddItem should succeed")
	}
	if a.AddItem(it) {
		t.Error("adding twice should be a no-op")
	}
	b.AddItem(it)
	if len(a.Items()) != 0 || it.Node() != b {
		t.Error("item should move to its new owner")
	}
	if !b.RemoveItem(it) || it.Node() != nil {
		t.Error("RemoveItem should clear the owner")
	}
}

func TestMoveConnectedItemKeepsMirror(t *testing.T) {
	s, a, b, src, dst := pair(t)
	c, err := s.Connect(src.Output(), dst.Input())
	if err != nil {
		t.Fatal(err)
	}
	d := NewNode("d")
	s.AddNode(d)

	d.AddItem(src)
	if slices.Contains(a.Connections(), c) {
		t.Error("old owner still lists the connection")
	}
	if !slices.Contains(d.Connections(), c) || !slices.Contains(b.Connections(), c) {
		t.Error("connection must be listed by both current endpoint nodes")
	}
	if got := src.Output().Connections(); len(got) != 1 || got[0] != c {
		t.Errorf("moved connector sees %d connections, want 1", len(got))
	}

	if !s.Disconnect(c) {
		t.Fatal("Disconnect failed")
	}
	for _, n := range []*Node{a, b, d} {
		if len(n.Connections()) != 0 {
			t.Errorf("node %s still lists %d connections", n.Title(), len(n.Connections()))
		}
	}
	if got := s.Connections(); len(got) != 0 {
		t.Errorf("Connections() = %d after Disconnect, want 0", len(got))
	}
}

func TestMoveItemWithinConnectedPair(t *testing.T) {
	s, a, b, src, dst := pair(t)
	c, err := s.Connect(src.Output(), dst.Input())
	if err != nil {
		t.Fatal(err)
	}
	// Both ends on b: the connection is listed once there and not in a.
	b.AddItem(src)
	if slices.Contains(a.Connections(), c) {
		t.Error("a still lists the connection")
	}
	if got := b.Connections(); len(got) != 1 || got[0] != c {
		t.Errorf("b lists %d connections, want exactly c", len(got))
	}
	if got := s.Connections(); len(got) != 1 {
		t.Errorf("Connections() = %d, want 1", len(got))
	}
}

func TestRemoveConnectedItem(t *testing.T) {
	h := &vetoHooks{}
	s, a, b, src, dst := pair(t, WithHooks(h))
	c, err := s.Connect(src.Output(), dst.Input())
	if err != nil {
		t.Fatal(err)
	}

	if a.RemoveItem(src) {
		t.Fatal("Node.RemoveItem must refuse an item with live connections")
	}
	h.vetoDisconnect = true
	if s.RemoveItem(src) || src.Node() != a {
		t.Fatal("vetoed disconnect must leave the item in place")
	}
	h.vetoDisconnect = false

	if !s.RemoveItem(src) {
		t.Fatal("Scene.RemoveItem failed")
	}
	if src.Node() != nil || c.Attached() {
		t.Error("item should be detached and its connection severed")
	}
	if len(a.Connections())+len(b.Connections()) != 0 || len(s.Connections()) != 0 {
		t.Error("severed connection still listed")
	}
	if s.RemoveItem(src) {
		t.Error("removing a detached item should fail")
	}
}

func TestTagKindCompatibility(t *testing.T) {
	src, dst := newTestItem(false, true), newTestItem(true, false)
	p := TagKindCompatibility{}
	if p.Compatible(src.Output(), dst.Input()) {
		t.Error("untagged items are incompatible")
	}
	src.Tag, dst.Tag = 1, 2
	if !p.Compatible(src.Output(), dst.Input()) {
		t.Error("same tag types should be compatible")
	}
	dst.Tag = "x"
	if p.Compatible(src.Output(), dst.Input()) {
		t.Error("different tag types should be incompatible")
	}
}

func TestRenderStateString(t *testing.T) {
	if got := (Hover | Focus).String(); got != "hover|focus" {
		t.Errorf("String() = %q", got)
	}
	if got := None.String(); got != "none" {
		t.Errorf("String() = %q", got)
	}
}
