package geom

import "math"

// Polygon is a closed outline. The last vertex connects back to the first.
type Polygon []Point

// Bounds returns the bounding box of the outline.
func (pg Polygon) Bounds() Rect {
	if len(pg) == 0 {
		return Rect{}
	}
	l, t, r, b := pg[0].X, pg[0].Y, pg[0].X, pg[0].Y
	for _, p := range pg[1:] {
		l, t = min(l, p.X), min(t, p.Y)
		r, b = max(r, p.X), max(b, p.Y)
	}
	return RectFromLTRB(l, t, r, b)
}

// Contains reports whether p lies inside the polygon using the non-zero
// winding rule, so self-overlapping ribbons and their arrow heads count as
// filled everywhere they are painted.
func (pg Polygon) Contains(p Point) bool {
	if len(pg) < 3 {
		return false
	}
	winding := 0
	for i := range pg {
		a, b := pg[i], pg[(i+1)%len(pg)]
		if a.Y <= p.Y {
			if b.Y > p.Y && cross(a, b, p) > 0 {
				winding++
			}
		} else if b.Y <= p.Y && cross(a, b, p) < 0 {
			winding--
		}
	}
	return winding != 0
}

// cross is positive when p is left of the directed line a->b.
func cross(a, b, p Point) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (p.X-a.X)*(b.Y-a.Y)
}

// arcSteps is the number of chords per rounded corner.
const arcSteps = 4

// RoundedRect returns the outline of r with each corner replaced by a
// quarter circle of diameter corner. The corner is clamped to fit r.
func RoundedRect(r Rect, corner float64) Polygon {
	rad := min(corner/2, r.W/2, r.H/2)
	if rad <= 0 {
		return Polygon{{r.X, r.Y}, {r.Right(), r.Y}, {r.Right(), r.Bottom()}, {r.X, r.Bottom()}}
	}
	centers := [4]Point{
		{r.Right() - rad, r.Y + rad},
		{r.Right() - rad, r.Bottom() - rad},
		{r.X + rad, r.Bottom() - rad},
		{r.X + rad, r.Y + rad},
	}
	out := make(Polygon, 0, 4*(arcSteps+1))
	start := -math.Pi / 2
	for _, c := range centers {
		for s := 0; s <= arcSteps; s++ {
			a := start + float64(s)*(math.Pi/2)/arcSteps
			out = append(out, Point{c.X + rad*math.Cos(a), c.Y + rad*math.Sin(a)})
		}
		start += math.Pi / 2
	}
	return out
}

// Ellipse approximates the ellipse inscribed in r with n chords.
func Ellipse(r Rect, n int) Polygon {
	if n < 3 {
		n = 3
	}
	c := r.Center()
	out := make(Polygon, n)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(n)
		out[i] = Point{c.X + r.W/2*math.Cos(a), c.Y + r.H/2*math.Sin(a)}
	}
	return out
}
