// Package arrange places nodes automatically with Graphviz.
//
// The scene is exported as a left-to-right DOT digraph in which every node
// is a fixed-size box the size of its laid-out bounds and every attached
// connection is an edge. The dot engine computes node centres, which are
// converted back to top-left scene locations:
//
//	res, err := arrange.Arrange(ctx, s, frame.Measurer(), arrange.Options{})
//
// Graphviz runs as WebAssembly inside the process, so no system install
// is needed. Results can be cached by the DOT text, which captures node
// sizes and edges but not locations.
package arrange
