// Package sink provides the [render.Canvas] backends.
//
//   - [SVGCanvas] writes an SVG document into a buffer
//   - [PNGCanvas] rasterizes with fogleman/gg and a Go Mono truetype face
//   - [TermCanvas] paints a grid of terminal cells styled with lipgloss
//
// All three measure text in scene units, so a scene laid out through one
// backend has the same geometry when painted by another, except for the
// terminal, which measures one character per cell.
//
// A canvas records one frame. Create a new canvas, or call Reset, per
// frame.
package sink
