package pick

import (
	"testing"

	"github.com/matzehuels/nodecanvas/pkg/geom"
	"github.com/matzehuels/nodecanvas/pkg/layout"
	"github.com/matzehuels/nodecanvas/pkg/scene"
)

type row struct{ scene.ItemBase }

func (*row) Kind() scene.ItemKind { return "row" }

func newRow(in, out bool) *row {
	r := &row{}
	r.Init(r, in, out)
	return r
}

// rows measures every item as 80x16.
var rows = layout.MeasureFunc(func(_ scene.Item, minimum geom.Size) geom.Size {
	return geom.Sz(max(80, minimum.W), 16)
})

func node(title string, at geom.Point, items ...scene.Item) *scene.Node {
	n := scene.NewNode(title)
	n.Location = at
	n.AddItems(items...)
	return n
}

func TestPickOverlappingNodes(t *testing.T) {
	back := node("back", geom.Pt(10, 5), newRow(false, false))
	front := node("front", geom.Pt(0, 0), newRow(false, false))
	s := scene.New()
	s.AddNode(back)
	s.AddNode(front)
	layout.Scene(s, rows)

	// y=17 is in the spacing between the title and the first row of front,
	// and inside the title of back.
	p := geom.Pt(60, 17)
	if !back.Bounds().Contains(p) || !front.Bounds().Contains(p) {
		t.Fatal("point must lie in both nodes")
	}
	got := Pick(s, p)
	if got.Kind != scene.ElementNode || got.Node != front {
		t.Errorf("Pick = %v, want node front", got)
	}

	s.BringToFront(scene.NodeElement(back))
	got = Pick(s, p)
	if got.Kind != scene.ElementItem || got.Item != scene.Item(back.TitleItem()) {
		t.Errorf("Pick = %v, want back title", got)
	}
}

func TestPickPriority(t *testing.T) {
	r := newRow(true, true)
	n := node("n", geom.Pt(0, 0), r)
	s := scene.New()
	s.AddNode(n)
	layout.Scene(s, rows)

	tests := []struct {
		name string
		p    geom.Point
		want scene.Element
	}{
		{"input connector", r.Input().Bounds().Center(), scene.ConnectorElement(r.Input())},
		{"output connector", r.Output().Bounds().Center(), scene.ConnectorElement(r.Output())},
		{"item", r.Bounds().Center(), scene.ItemElement(r)},
		{"title", n.TitleItem().Bounds().Center(), scene.ItemElement(n.TitleItem())},
		{"body", geom.Pt(50, n.Bounds().Bottom()-1), scene.NodeElement(n)},
		{"nothing", geom.Pt(500, 500), scene.Element{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pick(s, tt.p); !got.Equal(tt.want) {
				t.Errorf("Pick(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestPickCollapsedAnchor(t *testing.T) {
	a, b := newRow(true, false), newRow(true, true)
	n := node("n", geom.Pt(0, 0), a, b)
	n.SetCollapsed(true)
	s := scene.New()
	s.AddNode(n)
	layout.Scene(s, rows)

	if got := Pick(s, n.InputAnchor().Center()); got.Connector != a.Input() {
		t.Errorf("input anchor picked %v, want first input", got)
	}
	if got := Pick(s, n.OutputAnchor().Center()); got.Connector != b.Output() {
		t.Errorf("output anchor picked %v, want first output", got)
	}
	// Individual anchors are empty while collapsed.
	if got := ItemAt(n, b.Bounds().Center()); got != nil {
		t.Errorf("hidden item picked: %v", got)
	}
}

func TestPickDisabledConnector(t *testing.T) {
	r := newRow(false, false)
	n := node("n", geom.Pt(0, 0), r)
	s := scene.New()
	s.AddNode(n)
	layout.Scene(s, rows)

	p := geom.Pt(n.Bounds().Left()+1, r.Bounds().Center().Y)
	if got := Pick(s, p); got.Kind == scene.ElementConnector {
		t.Errorf("disabled connector picked: %v", got)
	}
}

func linked(t *testing.T) (*scene.Scene, *scene.Connection) {
	t.Helper()
	src, dst := newRow(false, true), newRow(true, false)
	a := node("a", geom.Pt(0, 0), src)
	b := node("b", geom.Pt(400, 200), dst)
	s := scene.New()
	s.AddNodes(a, b)
	c, err := s.Connect(src.Output(), dst.Input())
	if err != nil {
		t.Fatal(err)
	}
	layout.Scene(s, rows)
	return s, c
}

func TestPickConnectionStroke(t *testing.T) {
	s, c := linked(t)
	_, mid := geom.Ribbon(c.From().Anchor().Center(), c.To().Anchor().Center(),
		geom.RibbonOptions{Extra: StrokePadding})

	if got := Pick(s, mid); got.Connection != c {
		t.Errorf("Pick(midpoint) = %v, want connection", got)
	}
	if got := Pick(s, mid.Add(geom.Pt(3, 0))); got.Connection != c {
		t.Errorf("Pick(near midpoint) = %v, want connection", got)
	}
	if got := Pick(s, mid.Add(geom.Pt(-80, 0))); !got.IsNone() {
		t.Errorf("Pick(far) = %v, want none", got)
	}
}

func TestPickConnectionLabel(t *testing.T) {
	s, c := linked(t)
	c.SetLabelBounds(geom.R(1000, 1000, 40, 12))
	if got := Pick(s, geom.Pt(1010, 1005)); got.Connection != c {
		t.Errorf("label hit = %v, want connection", got)
	}

	// Nodes beat labels.
	a := s.Nodes()[0]
	c.SetLabelBounds(a.Bounds())
	if got := Pick(s, a.Bounds().Center()); got.Kind == scene.ElementConnection {
		t.Errorf("label shadowed a node: %v", got)
	}
}

func TestConnectionRegionDetached(t *testing.T) {
	s, c := linked(t)
	s.Disconnect(c)
	if ConnectionRegion(c) != nil {
		t.Error("detached connection has no region")
	}
}
