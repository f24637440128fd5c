package geom

// FlattenFunc turns a cubic Bezier spline into a polyline. ctrl holds the
// start point followed by three points per segment (control, control, end);
// the returned polyline starts at ctrl[0] and ends at the last end point.
type FlattenFunc func(ctrl []Point) []Point

// DefaultFlatness is the maximum distance in pixels between a flattened
// chord and the curve it replaces.
const DefaultFlatness = 0.25

const maxFlattenDepth = 12

// FlattenCubic flattens ctrl with [DefaultFlatness] using recursive
// subdivision. Trailing points that do not complete a segment are ignored.
func FlattenCubic(ctrl []Point) []Point {
	return FlattenCubicTolerance(ctrl, DefaultFlatness)
}

// FlattenCubicTolerance is [FlattenCubic] with an explicit flatness.
func FlattenCubicTolerance(ctrl []Point, flatness float64) []Point {
	if len(ctrl) == 0 {
		return nil
	}
	out := []Point{ctrl[0]}
	for i := 0; i+3 < len(ctrl); i += 3 {
		out = subdivide(out, ctrl[i], ctrl[i+1], ctrl[i+2], ctrl[i+3], flatness, 0)
	}
	return out
}

func subdivide(out []Point, p0, p1, p2, p3 Point, flatness float64, depth int) []Point {
	if depth >= maxFlattenDepth || flatEnough(p0, p1, p2, p3, flatness) {
		return append(out, p3)
	}
	p01 := mid(p0, p1)
	p12 := mid(p1, p2)
	p23 := mid(p2, p3)
	p012 := mid(p01, p12)
	p123 := mid(p12, p23)
	m := mid(p012, p123)
	out = subdivide(out, p0, p01, p012, m, flatness, depth+1)
	return subdivide(out, m, p123, p23, p3, flatness, depth+1)
}

// flatEnough uses the control-point deviation bound: the curve never strays
// further from its chord than 3/4 of the largest control offset.
func flatEnough(p0, p1, p2, p3 Point, flatness float64) bool {
	ux := 3*p1.X - 2*p0.X - p3.X
	uy := 3*p1.Y - 2*p0.Y - p3.Y
	vx := 3*p2.X - p0.X - 2*p3.X
	vy := 3*p2.Y - p0.Y - 2*p3.Y
	d := max(ux*ux, vx*vx) + max(uy*uy, vy*vy)
	return d <= 16*flatness*flatness
}

func mid(a, b Point) Point { return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2} }
