// Package interact turns host pointer and keyboard events into scene
// changes.
//
// A [Controller] owns the gesture state for one scene and one [View]. The
// host forwards view-space events to it:
//
//	press → move* → release [→ click [→ double-click]]
//
// and redraws whenever a method returns true. At most one gesture is
// active at a time: dragging a node, an item, a connector or an existing
// connection, or panning the view. Per-element hover, drag and focus are
// kept in each element's [scene.RenderState].
//
// Pressing a connection does not detach it. Once the pointer crosses
// [DragThreshold] the connection is disconnected and the gesture continues
// from its output connector, so a connection can still be clicked and
// double-clicked in place.
package interact
