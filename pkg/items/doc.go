// Package items provides the stock item kinds for canvas nodes: labels,
// checkboxes, sliders, colour swatches, images, text boxes and drop-downs.
//
// Items only hold data and react to pointer callbacks. How they look and
// how much room they take is decided by the renderer's item skins, looked
// up by [scene.ItemKind].
//
//	n := scene.NewNode("Color")
//	r := items.NewSlider("R", 0, 1, 0.5)
//	r.OnValueChanged = func(s *items.Slider) { fmt.Println(s.Value()) }
//	n.AddItems(r, items.NewColor("Color", color.Black, false, true))
package items
