package sample

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/nodecanvas/pkg/items"
	"github.com/matzehuels/nodecanvas/pkg/scene"
)

func TestNew(t *testing.T) {
	s := New(Options{})
	if s.Len() != 3 {
		t.Fatalf("scene has %d nodes, want 3", s.Len())
	}
	conns := s.Connections()
	if len(conns) != 1 {
		t.Fatalf("scene has %d connections, want 1", len(conns))
	}
	c := conns[0]
	if c.Name != "Connection 1" {
		t.Errorf("connection name = %q", c.Name)
	}
	if c.From().Node().Title() != "Color" || c.To().Node().Title() != "My Title" {
		t.Errorf("connection %s -> %s", c.From().Node().Title(), c.To().Node().Title())
	}

	s.Hooks().ConnectionDoubleClicked(c)
	if c.Name != "Connection 2" {
		t.Errorf("renamed connection = %q", c.Name)
	}
}

func TestTagCompatibility(t *testing.T) {
	s := New(Options{})
	var swatch *items.Color
	var checks []*items.Checkbox
	for _, n := range s.Nodes() {
		for _, it := range n.Items() {
			switch v := it.(type) {
			case *items.Color:
				swatch = v
			case *items.Checkbox:
				checks = append(checks, v)
			}
		}
	}
	if swatch == nil || len(checks) != 2 {
		t.Fatal("sample items missing")
	}
	if !s.Compatible(swatch.Output(), checks[0].Input()) {
		t.Error("int tags should be compatible")
	}
	if s.Compatible(swatch.Output(), checks[1].Input()) {
		t.Error("int and float32 tags should not be compatible")
	}

	s = New(Options{Compatibility: scene.AlwaysCompatible{}})
	if !s.Compatible(nil, nil) {
		t.Error("explicit policy not used")
	}
}

func TestColorNodeMixes(t *testing.T) {
	n, swatch := ColorNode(nil)
	sliders := n.Items()[:3]
	sliders[0].(*items.Slider).SetValue(1)
	sliders[2].(*items.Slider).SetValue(0.5)

	got, _ := colorful.MakeColor(swatch.Color)
	want := colorful.Color{R: 1, G: 0, B: 0.5}
	if got.DistanceRgb(want) > 0.01 {
		t.Errorf("swatch = %s, want %s", got.Hex(), want.Hex())
	}
}

func TestPalette(t *testing.T) {
	for _, p := range Palette {
		n := p.New(nil)
		if n == nil || !n.HasItems() {
			t.Errorf("palette %q produced an empty node", p.Name)
		}
	}
	if b := Texture(16).Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Errorf("texture bounds = %v", b)
	}
}
