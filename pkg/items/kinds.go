package items

import "github.com/matzehuels/nodecanvas/pkg/scene"

// Item kinds registered by the stock skins.
const (
	KindLabel    scene.ItemKind = "label"
	KindCheckbox scene.ItemKind = "checkbox"
	KindSlider   scene.ItemKind = "slider"
	KindColor    scene.ItemKind = "color"
	KindImage    scene.ItemKind = "image"
	KindTextBox  scene.ItemKind = "textbox"
	KindDropDown scene.ItemKind = "dropdown"
)

// Align is the horizontal placement of an item's text.
type Align uint8

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// TextAlign places text next to the only enabled connector: left when just
// the input is enabled, right when just the output is, centred otherwise.
func TextAlign(it scene.Item) Align {
	b := it.Base()
	in, out := b.Input().Enabled(), b.Output().Enabled()
	switch {
	case in && !out:
		return AlignLeft
	case out && !in:
		return AlignRight
	default:
		return AlignCenter
	}
}
