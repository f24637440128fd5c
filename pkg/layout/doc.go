// Package layout computes node geometry: node bounds, item rectangles and
// connector anchors.
//
// Layout is the only writer of the geometry that picking and rendering
// read, and it must run after any change that affects size or position
// (item content, collapse state, node location). Item sizes come from a
// [Measurer], normally the renderer's skin registry, so this package has
// no knowledge of fonts or item kinds.
//
// Geometry is computed without rounding. Renderers may snap coordinates
// to pixels when drawing.
package layout
