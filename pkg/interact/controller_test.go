package interact

import (
	"math"
	"testing"

	"github.com/matzehuels/nodecanvas/pkg/geom"
	"github.com/matzehuels/nodecanvas/pkg/items"
	"github.com/matzehuels/nodecanvas/pkg/layout"
	"github.com/matzehuels/nodecanvas/pkg/pick"
	"github.com/matzehuels/nodecanvas/pkg/scene"
)

type row struct{ scene.ItemBase }

func (*row) Kind() scene.ItemKind { return "row" }

func newRow(in, out bool) *row {
	r := &row{}
	r.Init(r, in, out)
	return r
}

// rows measures every item as 80x16, so a node with one row spans
// 100x42 and its row sits at y+19.
var rows = layout.MeasureFunc(func(_ scene.Item, minimum geom.Size) geom.Size {
	return geom.Sz(max(80, minimum.W), 16)
})

func node(title string, x, y float64, its ...scene.Item) *scene.Node {
	n := scene.NewNode(title)
	n.Location = geom.Pt(x, y)
	n.AddItems(its...)
	return n
}

func newController(s *scene.Scene) *Controller {
	return NewController(s, NewView(geom.Size{}), WithMeasurer(rows))
}

// click runs a press and release at p without movement.
func click(c *Controller, p geom.Point) {
	c.Press(p)
	c.Release(p)
}

func TestViewRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		pan  geom.Point
		zoom float64
	}{
		{"identity", geom.Point{}, 1},
		{"panned", geom.Pt(-120, 37.5), 1},
		{"zoomed out", geom.Pt(10, 10), MinZoom},
		{"zoomed in", geom.Pt(-3, 400), MaxZoom},
		{"odd", geom.Pt(0.1, -0.7), 1.37},
	}
	points := []geom.Point{{}, {X: 1, Y: 1}, {X: -250, Y: 13.25}, {X: 1e4, Y: -1e4}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewView(geom.Sz(640, 480))
			v.Pan = tt.pan
			v.SetZoom(tt.zoom)
			for _, p := range points {
				got := v.ToScene(v.ToView(p))
				if math.Abs(got.X-p.X) > 1e-9 || math.Abs(got.Y-p.Y) > 1e-9 {
					t.Errorf("round trip of %v = %v", p, got)
				}
			}
		})
	}
}

func TestViewZoomAboutCenter(t *testing.T) {
	v := NewView(geom.Sz(200, 100))
	v.SetZoom(2)
	c := geom.Pt(100, 50)
	if got := v.ToView(c); got != c {
		t.Errorf("centre moved to %v", got)
	}
	if got := v.ToView(geom.Pt(110, 50)); got != geom.Pt(120, 50) {
		t.Errorf("ToView = %v, want (120,50)", got)
	}
}

func TestWheelZoom(t *testing.T) {
	c := NewController(scene.New(), NewView(geom.Sz(100, 100)))
	if !c.Wheel(WheelPerDouble) || c.View().Zoom() != 2 {
		t.Errorf("zoom = %v, want 2", c.View().Zoom())
	}
	c.Wheel(1e5)
	if c.View().Zoom() != MaxZoom {
		t.Errorf("zoom = %v, want %v", c.View().Zoom(), MaxZoom)
	}
	if c.Wheel(1) {
		t.Error("clamped zoom reports no change")
	}
	c.Wheel(-1e6)
	if c.View().Zoom() != MinZoom {
		t.Errorf("zoom = %v, want %v", c.View().Zoom(), MinZoom)
	}
}

func TestPressPromotesNode(t *testing.T) {
	a := node("a", 0, 0, newRow(false, false))
	b := node("b", 300, 0, newRow(false, false))
	s := scene.New()
	s.AddNodes(a, b)
	c := newController(s)
	if s.Nodes()[0] != b {
		t.Fatal("b starts in front")
	}

	click(c, geom.Pt(50, 41))
	if s.Nodes()[0] != a {
		t.Errorf("front = %s, want a", s.Nodes()[0].Title())
	}
	if f := s.Focus(); f.Node != a || !a.State().Has(scene.Focus) {
		t.Errorf("focus = %v, want a", f)
	}
}

func TestNodeDragRoundsScaledDelta(t *testing.T) {
	n := node("n", 0, 0, newRow(false, false))
	s := scene.New()
	s.AddNode(n)
	v := NewView(geom.Size{})
	v.SetZoom(2)
	c := NewController(s, v, WithMeasurer(rows))

	c.Press(geom.Pt(100, 82))
	if c.Dragging() != DragNode || !n.State().Has(scene.Dragging) {
		t.Fatalf("drag = %v", c.Dragging())
	}
	if !c.Move(geom.Pt(103, 87)) {
		t.Error("move past the threshold needs a redraw")
	}
	if n.Location != geom.Pt(2, 3) {
		t.Errorf("location = %v, want (2,3)", n.Location)
	}
	c.Release(geom.Pt(103, 87))
	if c.Dragging() != DragNone || n.State().Has(scene.Dragging) {
		t.Error("release ends the drag")
	}
}

func TestMoveBelowThresholdDoesNothing(t *testing.T) {
	n := node("n", 0, 0, newRow(false, false))
	s := scene.New()
	s.AddNode(n)
	c := newController(s)

	c.Press(geom.Pt(50, 41))
	c.Move(geom.Pt(51, 40))
	if n.Location != (geom.Point{}) || c.Moved() {
		t.Errorf("location = %v, moved = %v", n.Location, c.Moved())
	}
}

func TestPan(t *testing.T) {
	c := newController(scene.New())
	c.Press(geom.Pt(500, 500))
	if c.Dragging() != DragPan {
		t.Fatalf("drag = %v, want pan", c.Dragging())
	}
	c.Move(geom.Pt(520, 510))
	c.Move(geom.Pt(530, 510))
	if got := c.View().Pan; got != geom.Pt(30, 10) {
		t.Errorf("pan = %v, want (30,10)", got)
	}
	c.Release(geom.Pt(530, 510))
}

func TestClickEmptyClearsFocus(t *testing.T) {
	n := node("n", 0, 0, newRow(false, false))
	s := scene.New()
	s.AddNode(n)
	c := newController(s)

	if s.Focus().Node != n {
		t.Fatal("added node is focused")
	}
	click(c, geom.Pt(500, 500))
	if !s.Focus().IsNone() || n.State().Has(scene.Focus) {
		t.Errorf("focus = %v, want none", s.Focus())
	}
}

type pair struct {
	s      *scene.Scene
	c      *Controller
	a, b   *scene.Node
	out    *row
	in     *row
	outPos geom.Point
	inPos  geom.Point
}

// newPair lays out a at the origin with one output row and b at (300,200)
// with one input row.
func newPair(opts ...scene.Option) *pair {
	out, in := newRow(false, true), newRow(true, false)
	a := node("a", 0, 0, out)
	b := node("b", 300, 200, in)
	s := scene.New(opts...)
	s.AddNodes(a, b)
	layout.Scene(s, rows)
	return &pair{
		s: s, c: newController(s), a: a, b: b, out: out, in: in,
		outPos: out.Output().Bounds().Center(),
		inPos:  in.Input().Bounds().Center(),
	}
}

func TestConnectorDragConnects(t *testing.T) {
	p := newPair()
	p.c.Press(p.outPos)
	if p.c.Dragging() != DragConnector {
		t.Fatalf("drag = %v, want connector", p.c.Dragging())
	}
	if !p.in.Input().State().Has(scene.Compatible) {
		t.Error("opposite connector is marked compatible")
	}

	p.c.Move(p.inPos)
	pending, ok := p.c.PendingConnection()
	if !ok {
		t.Fatal("no pending connection")
	}
	if pending.From != p.outPos || pending.To != p.inPos {
		t.Errorf("pending = %+v", pending)
	}
	if !pending.State.Has(scene.Compatible) {
		t.Errorf("pending state = %v", pending.State)
	}

	p.c.Release(p.inPos)
	conns := p.s.Connections()
	if len(conns) != 1 {
		t.Fatalf("connections = %d, want 1", len(conns))
	}
	conn := conns[0]
	if conn.From() != p.out.Output() || conn.To() != p.in.Input() {
		t.Error("connection runs from the output to the input")
	}
	if p.s.Focus().Connection != conn {
		t.Errorf("focus = %v, want the new connection", p.s.Focus())
	}
	if p.in.Input().State().Any(scene.Compatible | scene.Incompatible | scene.Dragging) {
		t.Errorf("flags left on target: %v", p.in.Input().State())
	}
	if p.out.Output().State().Has(scene.Dragging) {
		t.Error("dragging flag left on source")
	}
	if _, ok := p.c.PendingConnection(); ok {
		t.Error("pending connection after release")
	}
}

func TestConnectorDragFromInput(t *testing.T) {
	p := newPair()
	p.c.Press(p.inPos)
	p.c.Move(p.outPos)
	pending, _ := p.c.PendingConnection()
	if pending.From != p.outPos || pending.To != p.inPos {
		t.Errorf("pending = %+v", pending)
	}
	p.c.Release(p.outPos)
	if len(p.s.Connections()) != 1 {
		t.Error("dragging from an input connects too")
	}
}

func TestRedirectToSoleConnector(t *testing.T) {
	p := newPair()
	p.c.Press(p.outPos)
	body := geom.Pt(350, 241)
	p.c.Move(body)

	if h := p.c.Hover(); h.Connector != p.in.Input() {
		t.Errorf("hover = %v, want the sole input", h)
	}
	if p.c.DraggedOver() != p.b || !p.b.State().Has(scene.DraggedOver) {
		t.Error("b is dragged over")
	}
	p.c.Release(body)
	if len(p.s.Connections()) != 1 {
		t.Error("release over a single-input node connects")
	}
	if p.b.State().Has(scene.DraggedOver) {
		t.Error("dragged-over flag cleared on release")
	}
}

func TestNoRedirectWithSeveralConnectors(t *testing.T) {
	p := newPair()
	p.b.AddItem(newRow(true, false))
	p.c.Press(p.outPos)
	p.c.Move(geom.Pt(350, p.b.Bounds().Bottom()-1))
	if h := p.c.Hover(); h.Kind == scene.ElementConnector {
		t.Errorf("hover = %v, want no connector", h)
	}
	p.c.Release(geom.Pt(350, p.b.Bounds().Bottom()-1))
	if len(p.s.Connections()) != 0 {
		t.Error("no connection without a target")
	}
}

func TestIncompatibleDropIsRefused(t *testing.T) {
	p := newPair(scene.WithCompatibility(scene.TagKindCompatibility{}))
	p.out.Tag = 1
	p.in.Tag = "text"

	p.c.Press(p.outPos)
	if !p.in.Input().State().Has(scene.Incompatible) {
		t.Errorf("target state = %v, want incompatible", p.in.Input().State())
	}
	p.c.Move(p.inPos)
	p.c.Release(p.inPos)
	if len(p.s.Connections()) != 0 {
		t.Error("incompatible connectors were connected")
	}
	if p.in.Input().State().Has(scene.Incompatible) {
		t.Error("incompatible flag cleared on release")
	}
}

func connected(t *testing.T, opts ...scene.Option) (*pair, *scene.Connection, geom.Point) {
	t.Helper()
	p := newPair(opts...)
	conn, err := p.s.Connect(p.out.Output(), p.in.Input())
	if err != nil {
		t.Fatal(err)
	}
	layout.Scene(p.s, rows)
	_, mid := geom.Ribbon(conn.From().Anchor().Center(), conn.To().Anchor().Center(),
		geom.RibbonOptions{Extra: pick.StrokePadding})
	return p, conn, mid
}

func TestConnectionPressKeepsConnection(t *testing.T) {
	p, conn, mid := connected(t)
	p.c.Press(mid)
	if p.c.Dragging() != DragConnection {
		t.Fatalf("drag = %v, want connection", p.c.Dragging())
	}
	p.c.Release(mid)
	if !conn.Attached() {
		t.Error("a click does not detach the connection")
	}
	if p.s.Focus().Connection != conn {
		t.Errorf("focus = %v", p.s.Focus())
	}

	if !p.c.KeyUp(KeyDelete) {
		t.Fatal("delete handled")
	}
	if conn.Attached() || len(p.s.Connections()) != 0 {
		t.Error("delete disconnects the focused connection")
	}
}

func TestConnectionDragReroutes(t *testing.T) {
	p, conn, mid := connected(t)
	cin := newRow(true, false)
	cn := node("c", 300, 0, cin)
	p.s.AddNode(cn)
	layout.Scene(p.s, rows)

	p.c.Press(mid)
	p.c.Move(mid.Add(geom.Pt(0, 50)))
	if conn.Attached() {
		t.Fatal("connection detached once moved")
	}
	if p.c.Dragging() != DragConnector {
		t.Fatalf("drag = %v, want connector", p.c.Dragging())
	}

	target := cin.Input().Bounds().Center()
	p.c.Move(target)
	p.c.Release(target)
	conns := p.s.Connections()
	if len(conns) != 1 || conns[0].From() != p.out.Output() || conns[0].To() != cin.Input() {
		t.Fatalf("connections = %v", conns)
	}
	if p.in.Input().State().Has(scene.Connected) {
		t.Error("old target no longer connected")
	}
}

func TestConnectionDragToNothingDisconnects(t *testing.T) {
	p, _, mid := connected(t)
	p.c.Press(mid)
	p.c.Move(geom.Pt(700, 700))
	p.c.Release(geom.Pt(700, 700))
	if len(p.s.Connections()) != 0 {
		t.Error("dropping a detached connection on nothing removes it")
	}
}

type keepConnections struct{ scene.NoopHooks }

func (keepConnections) ConnectionRemoving(*scene.Connection) bool { return false }

func TestConnectionDragVetoed(t *testing.T) {
	p, conn, mid := connected(t, scene.WithHooks(keepConnections{}))
	p.c.Press(mid)
	p.c.Move(mid.Add(geom.Pt(0, 50)))
	if !conn.Attached() {
		t.Error("vetoed detach keeps the connection")
	}
	if p.c.Dragging() != DragNone {
		t.Errorf("drag = %v, want none", p.c.Dragging())
	}
	p.c.Release(mid)
	if conn.State().Has(scene.Dragging) {
		t.Error("dragging flag cleared")
	}
}

func TestDoubleClickTogglesCollapse(t *testing.T) {
	n := node("n", 0, 0, newRow(false, false))
	s := scene.New()
	s.AddNode(n)
	s.SetFocus(scene.Element{})
	c := newController(s)

	title := geom.Pt(50, 8)
	click(c, title)
	c.Click(title)
	if !c.DoubleClick(title) {
		t.Fatal("double-click handled")
	}
	if !n.Collapsed() {
		t.Error("node collapsed")
	}
	if s.Focus().Node != n {
		t.Errorf("focus = %v", s.Focus())
	}
}

func TestDoubleClickSuppressedAfterMove(t *testing.T) {
	n := node("n", 0, 0, newRow(false, false))
	s := scene.New()
	s.AddNode(n)
	c := newController(s)

	c.Press(geom.Pt(50, 8))
	c.Move(geom.Pt(60, 18))
	c.Release(geom.Pt(60, 18))
	if c.Click(geom.Pt(60, 18)) || c.DoubleClick(geom.Pt(60, 18)) {
		t.Error("click and double-click suppressed after a drag")
	}
	if n.Collapsed() {
		t.Error("node not collapsed")
	}
}

type countDoubleClicks struct {
	scene.NoopHooks
	n int
}

func (h *countDoubleClicks) ConnectionDoubleClicked(*scene.Connection) { h.n++ }

func TestDoubleClickConnection(t *testing.T) {
	h := &countDoubleClicks{}
	p, conn, mid := connected(t, scene.WithHooks(h))
	fired := 0
	conn.OnDoubleClick(func(*scene.Connection) { fired++ })

	click(p.c, mid)
	p.c.Click(mid)
	if !p.c.DoubleClick(mid) {
		t.Fatal("double-click on a connection handled")
	}
	if fired != 1 || h.n != 1 {
		t.Errorf("callback fired %d times, hook %d times; want 1 and 1", fired, h.n)
	}
	if !conn.Attached() {
		t.Error("double-click keeps the connection")
	}

	// A pan gesture that moved suppresses the next double-click.
	empty := geom.Pt(700, 700)
	p.c.Press(empty)
	p.c.Move(empty.Add(geom.Pt(20, 20)))
	p.c.Release(empty.Add(geom.Pt(20, 20)))
	if p.c.DoubleClick(mid) {
		t.Error("double-click after a moved gesture")
	}
	if fired != 1 || h.n != 1 {
		t.Errorf("after a moved gesture: callback %d, hook %d; want 1 and 1", fired, h.n)
	}
}

func TestReleaseUsesReleasePoint(t *testing.T) {
	// Release lands on the input without a preceding move there.
	p := newPair()
	p.c.Press(p.outPos)
	p.c.Move(geom.Pt(150, 100))
	p.c.Release(p.inPos)
	if len(p.s.Connections()) != 1 {
		t.Errorf("connections = %d, want 1", len(p.s.Connections()))
	}

	// The last move hovered the input but the release is elsewhere.
	p = newPair()
	p.c.Press(p.outPos)
	p.c.Move(p.inPos)
	p.c.Release(geom.Pt(700, 700))
	if len(p.s.Connections()) != 0 {
		t.Errorf("connections = %d, want 0 for a release over nothing", len(p.s.Connections()))
	}
}

func TestClickItem(t *testing.T) {
	box := items.NewCheckbox("on", false, false, false)
	n := node("n", 0, 0, box)
	s := scene.New()
	s.AddNode(n)
	c := newController(s)

	p := geom.Pt(50, 27)
	click(c, p)
	if !c.Click(p) || !box.Checked {
		t.Fatal("click toggles the checkbox")
	}
	click(c, p)
	c.Click(p)
	if c.DoubleClick(p) {
		t.Error("a handled click suppresses the double-click")
	}
	if box.Checked || n.Collapsed() {
		t.Errorf("checked = %v, collapsed = %v", box.Checked, n.Collapsed())
	}
}

func TestItemDrag(t *testing.T) {
	sl := items.NewSlider("v", 0, 100, 0)
	n := node("n", 0, 0, sl)
	s := scene.New()
	s.AddNode(n)
	c := newController(s)

	c.Press(geom.Pt(50, 27))
	if c.Dragging() != DragItem || sl.Value() != 50 {
		t.Fatalf("drag = %v, value = %v", c.Dragging(), sl.Value())
	}
	c.Move(geom.Pt(90, 27))
	if sl.Value() != 100 {
		t.Errorf("value = %v, want 100", sl.Value())
	}
	if n.Location != (geom.Point{}) {
		t.Error("an item drag does not move the node")
	}
	c.Release(geom.Pt(90, 27))
	if sl.Dragging() {
		t.Error("release ends the item drag")
	}
}

func TestHoverFlags(t *testing.T) {
	n := node("n", 0, 0, newRow(false, false))
	s := scene.New()
	s.AddNode(n)
	c := newController(s)

	c.Move(geom.Pt(50, 41))
	if !n.State().Has(scene.Hover) || c.Hover().Node != n {
		t.Error("node hovered")
	}
	c.Move(geom.Pt(500, 500))
	if n.State().Has(scene.Hover) || !c.Hover().IsNone() {
		t.Error("hover cleared")
	}
}

func TestKeyDeleteNode(t *testing.T) {
	p, _, _ := connected(t)
	p.s.SetFocus(scene.NodeElement(p.a))
	if !p.c.KeyUp(KeyDelete) {
		t.Fatal("delete handled")
	}
	if p.s.Contains(p.a) || len(p.b.Connections()) != 0 {
		t.Error("node and its connections removed")
	}
	if p.c.KeyUp(KeyDelete) {
		t.Error("nothing focused")
	}
}

func TestDragAndDrop(t *testing.T) {
	s := scene.New()
	c := newController(s)
	n := node("new", 0, 0)

	if !c.DragEnter(n) || !s.Contains(n) {
		t.Fatal("drag enter adds the node")
	}
	c.DragOver(geom.Pt(200, 200))
	if n.Location != geom.Pt(150, 192) {
		t.Errorf("location = %v, want (150,192)", n.Location)
	}
	c.DragLeave()
	if s.Contains(n) {
		t.Error("drag leave removes the node")
	}

	c.DragEnter(n)
	c.Drop(geom.Pt(100, 100))
	if !s.Contains(n) || s.Focus().Node != n {
		t.Error("drop keeps and focuses the node")
	}
	if c.DragLeave() {
		t.Error("no pending drop after Drop")
	}
}
