package sink

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/nodecanvas/pkg/fonts"
	"github.com/matzehuels/nodecanvas/pkg/geom"
	"github.com/matzehuels/nodecanvas/pkg/render"
)

// Font sizes in scene units.
const (
	ItemFontSize  = 11.0
	TitleFontSize = 12.0
	LabelFontSize = 10.0
)

func fontSpec(f render.Font) (size float64, bold bool) {
	switch f {
	case render.FontTitle:
		return TitleFontSize, true
	case render.FontLabel:
		return LabelFontSize, false
	default:
		return ItemFontSize, false
	}
}

// measure sizes text in the embedded face. If the face cannot be loaded it
// falls back to the Go Mono advance of 0.6 em.
func measure(text string, f render.Font) geom.Size {
	size, bold := fontSpec(f)
	w, h, err := fonts.Measure(text, size, bold)
	if err != nil {
		return geom.Sz(float64(len([]rune(text)))*size*0.6, size*1.2)
	}
	return geom.Sz(w, h)
}

// paint splits c into an opaque color and its opacity.
func paint(c color.Color) (colorful.Color, float64) {
	if c == nil {
		return colorful.Color{}, 0
	}
	_, _, _, a := c.RGBA()
	if a == 0 {
		return colorful.Color{}, 0
	}
	cf, _ := colorful.MakeColor(c)
	return cf.Clamped(), float64(a) / 0xffff
}
