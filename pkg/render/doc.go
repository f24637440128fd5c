// Package render paints a laid-out scene onto a drawing surface.
//
// # Overview
//
// Rendering is split in three layers:
//
//   - [Canvas], the drawing capability a backend provides (polygons,
//     ellipses, arcs, text, images, Bezier flattening)
//   - [ItemRenderer], the per-kind strategy that measures and draws one
//     item row, collected in a [Registry]
//   - [Frame], which runs layout and paints connections, nodes, connectors
//     and the pending connection preview in the right order
//
// Stock item skins live in the [skins] subpackage and backends in [sink]:
//
//	reg := render.NewRegistry()
//	skins.Register(reg)
//	canvas := sink.NewSVGCanvas(800, 600)
//	f := render.Frame{Canvas: canvas, Registry: reg, Theme: render.DefaultTheme()}
//	f.Paint(s, view.Forward(), nil)
//	svg := canvas.Bytes()
//
// # Colors
//
// [Theme] maps render state flags to colors. Node bodies turn orange while
// focused or dragged and blue while hovered. Connections and connector
// bulbs use a separate palette that switches to warmer colors while the
// pointer is over them or a connector drag is in flight, and marks
// connectors as compatible or incompatible targets during that drag.
//
// # Recorded geometry
//
// Painting writes back what picking needs: each connection's bounds, the
// bounds of its label when labels are shown, and the slider tracks
// recorded by the slider skin.
//
// [skins]: github.com/matzehuels/nodecanvas/pkg/render/skins
// [sink]: github.com/matzehuels/nodecanvas/pkg/render/sink
package render
