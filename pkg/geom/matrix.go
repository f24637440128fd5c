package geom

// Matrix is a 2D affine transform stored as [a, b, c, d, e, f]:
//
//	| a  c  e |
//	| b  d  f |
//	| 0  0  1 |
type Matrix [6]float64

// Identity returns the identity transform.
func Identity() Matrix { return Matrix{1, 0, 0, 1, 0, 0} }

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Matrix { return Matrix{1, 0, 0, 1, tx, ty} }

// Scale returns a scale by (sx, sy) about the origin.
func Scale(sx, sy float64) Matrix { return Matrix{sx, 0, 0, sy, 0, 0} }

// Multiply returns m*o, which applies o first and m second.
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// Apply transforms p.
func (m Matrix) Apply(p Point) Point {
	return Point{m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]}
}

// ApplyRect transforms the corners of r and returns their bounding box.
func (m Matrix) ApplyRect(r Rect) Rect {
	out := Rect{}
	for i, c := range [4]Point{{r.X, r.Y}, {r.Right(), r.Y}, {r.Right(), r.Bottom()}, {r.X, r.Bottom()}} {
		q := m.Apply(c)
		if i == 0 {
			out = Rect{X: q.X, Y: q.Y}
			continue
		}
		out = RectFromLTRB(min(out.Left(), q.X), min(out.Top(), q.Y), max(out.Right(), q.X), max(out.Bottom(), q.Y))
	}
	return out
}

// Determinant returns ad - bc.
func (m Matrix) Determinant() float64 { return m[0]*m[3] - m[1]*m[2] }

// Invert returns the inverse transform and whether m was invertible.
// A singular matrix inverts to the identity.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.Determinant()
	if det == 0 {
		return Identity(), false
	}
	inv := 1 / det
	return Matrix{
		m[3] * inv,
		-m[1] * inv,
		-m[2] * inv,
		m[0] * inv,
		(m[2]*m[5] - m[3]*m[4]) * inv,
		(m[1]*m[4] - m[0]*m[5]) * inv,
	}, true
}

// ScaleFactor returns the horizontal scale of m, ignoring skew.
func (m Matrix) ScaleFactor() float64 { return m[0] }
