package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/nodecanvas/pkg/scene"
)

// Theme is the palette used by a [Frame] and the item skins.
type Theme struct {
	Background colorful.Color

	Node       colorful.Color
	NodeHover  colorful.Color
	NodeActive colorful.Color
	NodeBorder colorful.Color

	Text      colorful.Color
	TextHover colorful.Color
	Control   colorful.Color
	Highlight colorful.Color

	// Wire colors at rest.
	Wire             colorful.Color
	WireConnected    colorful.Color
	WireCompatible   colorful.Color
	WireIncompatible colorful.Color

	// Wire colors while hovered or dragged.
	HotWire             colorful.Color
	HotWireDragging     colorful.Color
	HotWireCompatible   colorful.Color
	HotWireIncompatible colorful.Color
}

// DefaultTheme returns the stock light-grey palette.
func DefaultTheme() Theme {
	return Theme{
		Background: mustParseHex("#ffffff"),

		Node:       mustParseHex("#d3d3d3"),
		NodeHover:  mustParseHex("#b0c4de"),
		NodeActive: mustParseHex("#ff8c00"),
		NodeBorder: mustParseHex("#404040"),

		Text:      mustParseHex("#000000"),
		TextHover: mustParseHex("#ffffff"),
		Control:   mustParseHex("#d3d3d3"),
		Highlight: mustParseHex("#ff4500"),

		Wire:             mustParseHex("#d3d3d3"),
		WireConnected:    mustParseHex("#000000"),
		WireCompatible:   mustParseHex("#ffffff"),
		WireIncompatible: mustParseHex("#808080"),

		HotWire:             mustParseHex("#ff8c00"),
		HotWireDragging:     mustParseHex("#4682b4"),
		HotWireCompatible:   mustParseHex("#ff8c00"),
		HotWireIncompatible: mustParseHex("#ff0000"),
	}
}

// NodeColor returns the body fill of a node in state s. A node that is the
// candidate target of a connector drag blends the hover and active colors.
func (t *Theme) NodeColor(s scene.RenderState) colorful.Color {
	switch {
	case s.Any(scene.Dragging | scene.Focus):
		return t.NodeActive
	case s.Has(scene.DraggedOver):
		return t.NodeHover.BlendLab(t.NodeActive, 0.5).Clamped()
	case s.Has(scene.Hover):
		return t.NodeHover
	default:
		return t.Node
	}
}

// ConnectionColor returns the color of a wire, connector bulb or label in
// state s.
func (t *Theme) ConnectionColor(s scene.RenderState) colorful.Color {
	if s.Any(scene.Hover | scene.Dragging) {
		switch {
		case s.Has(scene.Incompatible):
			return t.HotWireIncompatible
		case s.Has(scene.Compatible):
			return t.HotWireCompatible
		case s.Has(scene.Dragging):
			return t.HotWireDragging
		default:
			return t.HotWire
		}
	}
	switch {
	case s.Has(scene.Incompatible):
		return t.WireIncompatible
	case s.Has(scene.Compatible):
		return t.WireCompatible
	case s.Has(scene.Connected):
		return t.WireConnected
	default:
		return t.Wire
	}
}

// TextColor returns the text color for an item in state s.
func (t *Theme) TextColor(s scene.RenderState) colorful.Color {
	if s.Has(scene.Hover) {
		return t.TextHover
	}
	return t.Text
}

// Alpha returns c with the given opacity.
func Alpha(c colorful.Color, a uint8) color.Color {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// Set overrides one color by name. Names are the lower-case field names
// with words separated by dashes, e.g. "node-hover" or "hot-wire-dragging".
func (t *Theme) Set(name, hex string) error {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fmt.Errorf("theme color %q: %w", name, err)
	}
	p, ok := t.field(name)
	if !ok {
		return fmt.Errorf("unknown theme color %q", name)
	}
	*p = c
	return nil
}

// Apply calls [Theme.Set] for every entry, stopping at the first error.
func (t *Theme) Apply(overrides map[string]string) error {
	for name, hex := range overrides {
		if err := t.Set(name, hex); err != nil {
			return err
		}
	}
	return nil
}

func (t *Theme) field(name string) (*colorful.Color, bool) {
	fields := map[string]*colorful.Color{
		"background":            &t.Background,
		"node":                  &t.Node,
		"node-hover":            &t.NodeHover,
		"node-active":           &t.NodeActive,
		"node-border":           &t.NodeBorder,
		"text":                  &t.Text,
		"text-hover":            &t.TextHover,
		"control":               &t.Control,
		"highlight":             &t.Highlight,
		"wire":                  &t.Wire,
		"wire-connected":        &t.WireConnected,
		"wire-compatible":       &t.WireCompatible,
		"wire-incompatible":     &t.WireIncompatible,
		"hot-wire":              &t.HotWire,
		"hot-wire-dragging":     &t.HotWireDragging,
		"hot-wire-compatible":   &t.HotWireCompatible,
		"hot-wire-incompatible": &t.HotWireIncompatible,
	}
	p, ok := fields[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// mustParseHex parses a constant hex color, panicking if it is malformed.
func mustParseHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
