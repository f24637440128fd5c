// Package pkg provides the core libraries for the nodecanvas node-graph
// canvas.
//
// # Overview
//
// A scene holds nodes; each node stacks a title and typed items, and items
// expose input and output connectors. Connections join an output to an
// input and are drawn as tapered ribbons. The pkg directory is organized
// into three areas:
//
//  1. Engine - geometry, scene model, layout, picking and interaction
//  2. Drawing - canvases, themes and per-item skins
//  3. Plumbing - frame pipeline, caches, auto-arrange, config and errors
//
// # Architecture
//
// The typical flow of one frame:
//
//	host pointer event
//	         ↓
//	    [interact] controller (gesture state machine, uses [pick])
//	         ↓
//	    [scene] mutations (connect, disconnect, move, collapse)
//	         ↓
//	    [layout] pass (node, item and connector bounds)
//	         ↓
//	    [render] frame on a [render/sink] canvas (SVG, PNG, terminal)
//
// # Quick Start
//
// Build a scene and render it to SVG:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/nodecanvas/pkg/geom"
//	    "github.com/matzehuels/nodecanvas/pkg/items"
//	    "github.com/matzehuels/nodecanvas/pkg/pipeline"
//	    "github.com/matzehuels/nodecanvas/pkg/scene"
//	)
//
//	// 1. Build the graph
//	src := scene.NewNode("Source")
//	out := items.NewLabel("value", false, true)
//	src.AddItem(out)
//	dst := scene.NewNode("Sink")
//	in := items.NewCheckbox("enabled", false, true, false)
//	dst.AddItem(in)
//	dst.Location = geom.Pt(200, 40)
//
//	s := scene.New()
//	s.AddNodes(src, dst)
//	s.Connect(out.Output(), in.Input())
//
//	// 2. Lay out, paint and encode
//	r := pipeline.NewRunner(nil, nil, nil)
//	res, _ := r.Render(context.Background(), s, geom.Identity(), pipeline.Options{})
//	svg := res.Artifacts["svg"]
//
// # Main Packages
//
// ## Engine
//
// [geom] - Points, rectangles, affine matrices, cubic Bezier flattening and
// the ribbon polygon used for connections.
//
// [scene] - Nodes, items, connectors and connections, with the mirror
// invariant between a connection and both endpoint nodes, host veto hooks
// and a pluggable compatibility policy.
//
// [items] - Stock item kinds: label, checkbox, slider, color, image, text
// box and drop-down.
//
// [layout] - Measures titles and items and places connectors, anchors and
// node bounds. Collapsed nodes fold every connector into one anchor.
//
// [pick] - Hit-testing in scene space with a fixed priority: connectors,
// then items, then node bodies, then connection labels and strokes.
//
// [interact] - The pointer state machine: drag nodes, items and
// connectors, detach connections, pan and zoom, click and double-click,
// delete, and drag-and-drop of new nodes.
//
// ## Drawing
//
// [render] - Frame painting against the [render.Canvas] capability,
// themes and the item skin registry.
//
// [render/sink] - Canvases: SVG text, PNG raster and a terminal grid.
//
// [render/skins] - Stock skins for the [items] kinds.
//
// ## Plumbing
//
// [pipeline] - Fingerprints a scene and renders SVG and PNG artifacts,
// serving repeats from a [cache].
//
// [arrange] - Auto-arrange through Graphviz dot.
//
// [config] - TOML file and NODECANVAS_* environment configuration.
//
// [observability] - Hook registry for frame, cache, gesture and HTTP events.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/interact/... # Specific package
//	go test -run Example       # Examples only
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/nodecanvas/pkg/geom
// [scene]: https://pkg.go.dev/github.com/matzehuels/nodecanvas/pkg/scene
// [items]: https://pkg.go.dev/github.com/matzehuels/nodecanvas/pkg/items
// [layout]: https://pkg.go.dev/github.com/matzehuels/nodecanvas/pkg/layout
// [pick]: https://pkg.go.dev/github.com/matzehuels/nodecanvas/pkg/pick
// [interact]: https://pkg.go.dev/github.com/matzehuels/nodecanvas/pkg/interact
// [render]: https://pkg.go.dev/github.com/matzehuels/nodecanvas/pkg/render
// [render.Canvas]: https://pkg.go.dev/github.com/matzehuels/nodecanvas/pkg/render#Canvas
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/nodecanvas/pkg/render/sink
// [render/skins]: https://pkg.go.dev/github.com/matzehuels/nodecanvas/pkg/render/skins
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/nodecanvas/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/nodecanvas/pkg/cache
// [arrange]: https://pkg.go.dev/github.com/matzehuels/nodecanvas/pkg/arrange
// [config]: https://pkg.go.dev/github.com/matzehuels/nodecanvas/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/nodecanvas/pkg/observability
package pkg
