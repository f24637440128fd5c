package geom

import (
	"math"
	"slices"
)

const (
	// ConnectorSize is the edge length of a connector bulb. Ribbons stop
	// this far short of their target so the arrow head covers the gap.
	ConnectorSize = 8.0

	// TaperFill is the end-width divisor for painted connections.
	TaperFill = 3.5
	// TaperPreview is the end-width divisor for the in-flight connection
	// drawn while a connector is dragged.
	TaperPreview = 4.0

	minReach         = 60.0
	loopSpan         = 120.0
	startHalfWidth   = 0.75
	degenerateLength = 1.0
	minOffsetGap     = 1.0
)

// RibbonOptions controls [Ribbon].
type RibbonOptions struct {
	// Extra widens the ribbon on both sides. Picking uses a positive value
	// to make thin connections easier to hit.
	Extra float64
	// Arrow appends an arrow head at the target point.
	Arrow bool
	// TaperDivisor sets the end half-width to Extra+ConnectorSize/TaperDivisor.
	// Zero means TaperFill.
	TaperDivisor float64
	// Flatten replaces the default Bezier flattener, typically with the
	// renderer's own.
	Flatten FlattenFunc
}

// Ribbon returns the filled outline of a connection from one anchor to
// another together with the midpoint of its centre line.
func Ribbon(from, to Point, opts RibbonOptions) (Polygon, Point) {
	flatten := opts.Flatten
	if flatten == nil {
		flatten = FlattenCubic
	}
	divisor := opts.TaperDivisor
	if divisor == 0 {
		divisor = TaperFill
	}

	pts := flatten(Spine(from, to, opts.Extra))
	if len(pts) == 0 {
		return nil, from
	}
	pts = append(pts, pts[len(pts)-1])

	// Tangents use the sum of the incoming and outgoing edge at each vertex.
	// Vertices whose neighbourhood collapses are dropped.
	var (
		tangents []Point
		lengths  []float64
		total    float64
	)
	for i := 0; i+2 < len(pts); {
		d := pts[i+2].Sub(pts[i])
		l := d.Len()
		if l <= degenerateLength {
			pts = slices.Delete(pts, i, i+1)
			continue
		}
		tangents = append(tangents, d.Mul(1/l))
		lengths = append(lengths, l)
		total += l
		i++
	}
	center := midpoint(pts[:len(pts)-1])

	startW := opts.Extra + startHalfWidth
	endW := opts.Extra + ConnectorSize/divisor

	var left, right []Point
	lastLeft, lastRight := pts[0], pts[0]
	current := 0.0
	for i, t := range tangents {
		p := pts[i+1]
		w := startW
		if total > 0 {
			w = current*(endW-startW)/total + startW
		}
		l := Point{p.X - t.Y*w, p.Y + t.X*w}
		r := Point{p.X + t.Y*w, p.Y - t.X*w}
		if far(lastLeft, l) {
			left = append(left, l)
			lastLeft = l
		}
		if far(lastRight, r) {
			right = append(right, r)
			lastRight = r
		}
		current += lengths[i]
	}

	outline := make(Polygon, 0, len(left)+len(right)+4)
	for i := len(right) - 1; i >= 0; i-- {
		outline = append(outline, right[i])
	}
	outline = append(outline, pts[0])
	outline = append(outline, left...)
	if opts.Arrow {
		a := Arrow(to, opts.Extra)
		outline = append(outline, a[:]...)
	}
	return outline, center
}

// Spine returns the Bezier control points of the connection centre line.
// The curve leaves the source and enters the target horizontally and stops
// ConnectorSize+extra short of the target. When the target is less than
// loopSpan to the right of the source, three mid-level points are inserted
// so the curve swings around instead of folding back on itself.
func Spine(from, to Point, extra float64) []Point {
	span := to.X - from.X
	reach := math.Max(minReach, math.Abs(span/2))
	if span < loopSpan {
		reach = minReach
	}
	midY := (from.Y + to.Y) / 2
	midX := (from.X + to.X) / 2
	xa := from.X + reach
	xb := to.X - reach

	ctrl := []Point{
		from,
		{xa, from.Y},
		{xb, to.Y},
		{to.X - ConnectorSize - extra, to.Y},
	}
	if span <= loopSpan {
		ctrl = slices.Insert(ctrl, 2, Point{xa, midY}, Point{midX, midY}, Point{xb, midY})
	}
	return ctrl
}

// Arrow returns the triangle of an arrow head whose tip sits just right of
// tip, grown by extra on every side.
func Arrow(tip Point, extra float64) [3]Point {
	back := tip.X - (ConnectorSize + 1) - extra
	spread := ConnectorSize/1.5 + extra
	return [3]Point{
		{back, tip.Y + spread},
		{tip.X + 1 + extra, tip.Y},
		{back, tip.Y - spread},
	}
}

// midpoint returns the point halfway along the polyline by arc length.
func midpoint(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i].Sub(pts[i-1]).Len()
	}
	half := total / 2
	walked := 0.0
	for i := 1; i < len(pts); i++ {
		seg := pts[i].Sub(pts[i-1]).Len()
		if seg > 0 && walked+seg >= half {
			t := (half - walked) / seg
			return pts[i-1].Add(pts[i].Sub(pts[i-1]).Mul(t))
		}
		walked += seg
	}
	return pts[len(pts)-1]
}

func far(a, b Point) bool {
	return math.Abs(a.X-b.X) > minOffsetGap || math.Abs(a.Y-b.Y) > minOffsetGap
}
