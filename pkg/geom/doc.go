// Package geom provides the geometry kernel of the node canvas.
//
// It has no knowledge of nodes or connections. Everything here is plain
// 2D math on float64 coordinates:
//
//   - [Point], [Size] and [Rect] value types
//   - [Matrix], a 2D affine transform used for pan and zoom
//   - [Polygon] with a non-zero winding containment test
//   - cubic Bezier flattening ([FlattenCubic])
//   - the tapered connection [Ribbon] and its [Arrow] head
//
// # Ribbons
//
// A connection between two anchors is drawn as a filled polygon rather than
// a stroked curve. [Ribbon] builds the control polygon of a horizontal
// S-curve, flattens it into a polyline and offsets every vertex to both
// sides, widening linearly from the source to the target:
//
//	outline, mid := geom.Ribbon(geom.Pt(0, 0), geom.Pt(200, 40), geom.RibbonOptions{
//	    Arrow: true,
//	})
//
// The returned midpoint is measured along the flattened path and is used to
// anchor connection labels.
package geom
