package geom

import (
	"math"
	"testing"
)

func near(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func TestRectContains(t *testing.T) {
	r := R(10, 10, 20, 10)
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Pt(15, 15), true},
		{"top-left edge", Pt(10, 10), true},
		{"right edge exclusive", Pt(30, 15), false},
		{"bottom edge exclusive", Pt(15, 20), false},
		{"outside", Pt(0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}

	if (Rect{}).Contains(Pt(0, 0)) {
		t.Error("empty rect should contain nothing")
	}
}

func TestRectUnion(t *testing.T) {
	got := R(0, 0, 10, 10).Union(R(5, -5, 10, 5))
	want := RectFromLTRB(0, -5, 15, 10)
	if got != want {
		t.Errorf("Union = %v, want %v", got, want)
	}
	if got := (Rect{}).Union(R(1, 2, 3, 4)); got != R(1, 2, 3, 4) {
		t.Errorf("Union with empty = %v", got)
	}
}

func TestMatrixInverseRoundTrip(t *testing.T) {
	center := Pt(400, 300)
	m := Translate(35, -12).
		Multiply(Translate(center.X, center.Y)).
		Multiply(Scale(2.5, 2.5)).
		Multiply(Translate(-center.X, -center.Y))

	inv, ok := m.Invert()
	if !ok {
		t.Fatal("matrix should be invertible")
	}
	for _, p := range []Point{{0, 0}, {123.5, -42}, {800, 600}} {
		q := inv.Apply(m.Apply(p))
		if !near(q.X, p.X, 1e-9) || !near(q.Y, p.Y, 1e-9) {
			t.Errorf("round trip %v -> %v", p, q)
		}
	}
}

func TestMatrixSingular(t *testing.T) {
	inv, ok := Scale(0, 1).Invert()
	if ok {
		t.Error("Invert of singular matrix should report false")
	}
	if inv != Identity() {
		t.Errorf("singular inverse = %v, want identity", inv)
	}
}

func TestPolygonContainsWinding(t *testing.T) {
	square := Polygon{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if !square.Contains(Pt(5, 5)) {
		t.Error("square should contain its centre")
	}
	if square.Contains(Pt(15, 5)) {
		t.Error("square should not contain outside point")
	}

	// Two overlapping loops with the same orientation: the overlap has
	// winding number 2 and is still inside under the non-zero rule.
	double := Polygon{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if !double.Contains(Pt(5, 5)) {
		t.Error("non-zero winding should treat overlap as inside")
	}
}

func TestRoundedRectBounds(t *testing.T) {
	r := R(10, 20, 100, 40)
	b := RoundedRect(r, 8).Bounds()
	if !near(b.X, r.X, 1e-9) || !near(b.Y, r.Y, 1e-9) || !near(b.W, r.W, 1e-9) || !near(b.H, r.H, 1e-9) {
		t.Errorf("bounds = %v, want %v", b, r)
	}
	if RoundedRect(r, 8).Contains(Pt(10.1, 20.1)) {
		t.Error("rounded corner should cut off the exact corner")
	}
}

func TestFlattenCubicEndpoints(t *testing.T) {
	ctrl := []Point{{0, 0}, {50, 0}, {50, 100}, {100, 100}}
	pts := FlattenCubic(ctrl)
	if len(pts) < 3 {
		t.Fatalf("expected a subdivided curve, got %d points", len(pts))
	}
	if pts[0] != ctrl[0] || pts[len(pts)-1] != ctrl[3] {
		t.Errorf("endpoints = %v, %v", pts[0], pts[len(pts)-1])
	}
}

func TestSpineLoopInsertion(t *testing.T) {
	tests := []struct {
		name     string
		from, to Point
		want     int
	}{
		{"wide span", Pt(0, 0), Pt(300, 0), 4},
		{"exact threshold", Pt(0, 0), Pt(120, 0), 7},
		{"backwards", Pt(200, 0), Pt(0, 50), 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(Spine(tt.from, tt.to, 0)); got != tt.want {
				t.Errorf("len(Spine) = %d, want %d", got, tt.want)
			}
		})
	}

	s := Spine(Pt(0, 0), Pt(300, 0), 5)
	if got := s[len(s)-1].X; got != 300-ConnectorSize-5 {
		t.Errorf("spine end x = %v, want %v", got, 300-ConnectorSize-5)
	}
}

func TestRibbonMidpoint(t *testing.T) {
	outline, mid := Ribbon(Pt(0, 0), Pt(200, 0), RibbonOptions{})
	if len(outline) == 0 {
		t.Fatal("empty outline")
	}
	if !near(mid.Y, 0, 1e-6) {
		t.Errorf("midpoint Y = %v, want 0", mid.Y)
	}
	// The centre line ends ConnectorSize short of the target.
	if !near(mid.X, (200-ConnectorSize)/2, 1) {
		t.Errorf("midpoint X = %v, want about %v", mid.X, (200-ConnectorSize)/2)
	}
}

func TestRibbonWidensTowardTarget(t *testing.T) {
	outline, _ := Ribbon(Pt(0, 0), Pt(400, 0), RibbonOptions{})
	b := outline.Bounds()
	want := ConnectorSize / TaperFill
	if b.Bottom() > want+0.01 || b.Bottom() < want-0.5 {
		t.Errorf("max half width = %v, want about %v", b.Bottom(), want)
	}
	if !outline.Contains(Pt(200, 0)) {
		t.Error("ribbon should contain its centre line")
	}
	if outline.Contains(Pt(200, 10)) {
		t.Error("ribbon should be thin")
	}
}

func TestRibbonArrowAndExtra(t *testing.T) {
	to := Pt(300, 100)
	plain, _ := Ribbon(Pt(0, 100), to, RibbonOptions{})
	hit, _ := Ribbon(Pt(0, 100), to, RibbonOptions{Extra: 5, Arrow: true})

	tip := Pt(to.X, to.Y)
	if plain.Contains(tip) {
		t.Error("ribbon without arrow should stop short of the target")
	}
	if !hit.Contains(tip) {
		t.Error("arrow should cover the target point")
	}
	if !hit.Contains(Pt(150, 104)) {
		t.Error("extra thickness should widen the hit region")
	}
}

func TestRibbonDegenerate(t *testing.T) {
	outline, mid := Ribbon(Pt(10, 10), Pt(10, 10), RibbonOptions{Arrow: true})
	if len(outline) == 0 {
		t.Error("degenerate ribbon should still produce an outline")
	}
	if math.IsNaN(mid.X) || math.IsNaN(mid.Y) {
		t.Errorf("midpoint = %v", mid)
	}
}

func TestArrowPoints(t *testing.T) {
	a := Arrow(Pt(100, 50), 0)
	if a[1] != Pt(101, 50) {
		t.Errorf("tip = %v", a[1])
	}
	if a[0].X != 100-(ConnectorSize+1) || !near(a[0].Y-50, ConnectorSize/1.5, 1e-9) {
		t.Errorf("base = %v", a[0])
	}
	if !near(a[0].Y-50, 50-a[2].Y, 1e-9) {
		t.Error("arrow should be symmetric")
	}
}
