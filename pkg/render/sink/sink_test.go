package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/nodecanvas/pkg/geom"
	"github.com/matzehuels/nodecanvas/pkg/items"
	"github.com/matzehuels/nodecanvas/pkg/render"
	"github.com/matzehuels/nodecanvas/pkg/render/skins"
	"github.com/matzehuels/nodecanvas/pkg/scene"
)

func sampleScene(t *testing.T) (*scene.Scene, *scene.Node) {
	t.Helper()
	a := scene.NewNode("source <a>")
	a.Location = geom.Pt(16, 16)
	out := items.NewLabel("out", false, true)
	a.AddItem(out)

	b := scene.NewNode("sink")
	b.Location = geom.Pt(240, 96)
	in := items.NewLabel("in", true, false)
	b.AddItem(in)

	s := scene.New()
	s.AddNodes(a, b)
	c, err := s.Connect(out.Output(), in.Input())
	if err != nil {
		t.Fatal(err)
	}
	c.Name = "wire & co"
	return s, a
}

func frame(c render.Canvas) *render.Frame {
	return &render.Frame{Canvas: c, Registry: skins.NewRegistry(), Theme: render.DefaultTheme(), ShowLabels: true}
}

func TestSVGCanvas(t *testing.T) {
	s, _ := sampleScene(t)
	c := NewSVGCanvas(400, 200, WithBackground(color.White))
	frame(c).Paint(s, geom.Translate(5, 5), nil)
	svg := string(c.Bytes())

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 400 200"`,
		`<g transform="matrix(1 0 0 1 5 5)">`,
		`source &lt;a&gt;`,
		`wire &amp; co`,
		`<ellipse`,
		`fill="#d3d3d3"`,
		`</g>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if strings.Contains(svg, "@font-face") {
		t.Error("font embedded without WithEmbeddedFont")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("svg not closed")
	}

	c.Reset()
	if strings.Contains(string(c.Bytes()), "<path") {
		t.Error("Reset kept drawn elements")
	}
}

func TestSVGEmbeddedFont(t *testing.T) {
	c := NewSVGCanvas(10, 10, WithEmbeddedFont())
	if !strings.Contains(string(c.Bytes()), "@font-face { font-family: 'Go Mono'") {
		t.Error("font not embedded")
	}
}

func TestSVGAttrs(t *testing.T) {
	tests := []struct {
		c    color.Color
		want string
	}{
		{color.Black, ` fill="#000000"`},
		{color.NRGBA{R: 255, G: 255, B: 255, A: 0}, ` fill="none"`},
		{color.NRGBA{R: 255, G: 0, B: 0, A: 128}, ` fill="#ff0000" fill-opacity="0.5"`},
	}
	for _, tt := range tests {
		if got := fillAttrs(tt.c); got != tt.want {
			t.Errorf("fillAttrs(%v) = %q, want %q", tt.c, got, tt.want)
		}
	}
	if got := num(-0.001); got != "0" {
		t.Errorf("num(-0.001) = %q", got)
	}
	if got := num(12.5); got != "12.5" {
		t.Errorf("num(12.5) = %q", got)
	}
}

func TestPNGCanvas(t *testing.T) {
	s, a := sampleScene(t)
	c := NewPNGCanvas(400, 200, color.White)
	f := frame(c)
	f.Paint(s, geom.Identity(), nil)

	data, err := c.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 400, 200) {
		t.Errorf("bounds = %v", img.Bounds())
	}
	// A point inside node a's body, below its items, has the body color.
	p := geom.Pt(a.ItemsBounds().Center().X, a.Bounds().Bottom()-2)
	got, _ := colorful.MakeColor(img.At(int(p.X), int(p.Y)))
	want := f.Theme.NodeColor(a.State())
	if got.DistanceRgb(want) > 0.05 {
		t.Errorf("pixel at %v = %s, want %s", p, got.Hex(), want.Hex())
	}
	corner, _ := colorful.MakeColor(img.At(399, 0))
	if corner.Hex() != "#ffffff" {
		t.Errorf("background = %s", corner.Hex())
	}
}

func TestTermCanvas(t *testing.T) {
	s, a := sampleScene(t)
	th := render.DefaultTheme()
	c := NewTermCanvas(50, 12, th.Background)
	f := frame(c)
	f.Paint(s, geom.Identity(), nil)

	if cols, rows := c.Size(); cols != 50 || rows != 12 {
		t.Fatalf("Size = %d x %d", cols, rows)
	}
	body := a.ItemsBounds()
	col := int((body.Center().X) / CellWidth)
	row := int((body.Bottom() - 2) / CellHeight)
	if _, bg := c.Cell(col, row); bg.DistanceRgb(th.NodeColor(a.State())) > 0.01 {
		t.Errorf("cell (%d,%d) bg = %s", col, row, bg.Hex())
	}

	// The output bulb of a's label is a dot.
	out := a.Items()[0].Base().Output().Bounds().Center()
	if r, _ := c.Cell(int(out.X/CellWidth), int(out.Y/CellHeight)); r != '●' {
		t.Errorf("output bulb rune = %q", r)
	}

	lines := strings.Split(c.String(), "\n")
	if len(lines) != 12 {
		t.Errorf("String has %d lines, want 12", len(lines))
	}
	if r, _ := c.Cell(-1, 0); r != 0 {
		t.Error("out of range cell is not empty")
	}
}

func TestTermMeasure(t *testing.T) {
	c := NewTermCanvas(1, 1, colorful.Color{})
	if got := c.MeasureText("héllo", render.FontItem); got != geom.Sz(40, 16) {
		t.Errorf("MeasureText = %v", got)
	}
}

func TestMeasureFallsInFace(t *testing.T) {
	one := measure("m", render.FontItem)
	two := measure("mm", render.FontItem)
	if one.W <= 0 || two.W != 2*one.W {
		t.Errorf("measure = %v, %v", one, two)
	}
}
