// Package skins provides the stock item renderers: title, label, text box,
// checkbox, slider, color swatch, image and drop-down.
//
// Call [Register] once on a registry before painting. Every skin measures
// at least [layout.MinimumItemWidth] by [layout.MinimumItemHeight] and
// grows to the node's minimum width when the layout asks for it.
package skins

import (
	"strings"

	"github.com/matzehuels/nodecanvas/pkg/geom"
	"github.com/matzehuels/nodecanvas/pkg/items"
	"github.com/matzehuels/nodecanvas/pkg/layout"
	"github.com/matzehuels/nodecanvas/pkg/render"
	"github.com/matzehuels/nodecanvas/pkg/scene"
)

const (
	minWidth  = layout.MinimumItemWidth
	minHeight = layout.MinimumItemHeight

	// Corner diameter of checkbox, slider track, swatch and text box
	// outlines.
	controlCorner = layout.CornerSize * 2
	spacing       = 2.0
	colorBoxSize  = 16.0
	sliderBoxSize = 4.0
	sliderHeight  = 8.0
	dropArrowSize = 6.0
	strokeWidth   = 1.0
)

// Register installs every stock skin on r.
func Register(r *render.Registry) {
	r.Register(scene.KindTitle, Title{})
	r.Register(items.KindLabel, Label{})
	r.Register(items.KindTextBox, TextBox{})
	r.Register(items.KindCheckbox, Checkbox{})
	r.Register(items.KindSlider, Slider{})
	r.Register(items.KindColor, Color{})
	r.Register(items.KindImage, Image{})
	r.Register(items.KindDropDown, DropDown{})
}

// NewRegistry returns a registry with every stock skin installed.
func NewRegistry() *render.Registry {
	r := render.NewRegistry()
	Register(r)
	return r
}

// fit grows s to minimum.
func fit(s, minimum geom.Size) geom.Size {
	return geom.Size{W: max(s.W, minimum.W), H: max(s.H, minimum.H)}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func align(it scene.Item) render.Align {
	switch items.TextAlign(it) {
	case items.AlignLeft:
		return render.AlignLeft
	case items.AlignRight:
		return render.AlignRight
	default:
		return render.AlignCenter
	}
}

// =============================================================================
// Title
// =============================================================================

// Title draws the node caption below a thin top margin.
type Title struct{}

func (Title) Measure(c render.Canvas, it scene.Item, minimum geom.Size) geom.Size {
	t, ok := it.(*scene.Title)
	if !ok {
		return geom.Size{}
	}
	size := geom.Size{W: minWidth, H: layout.TitleHeight + layout.TopHeight}
	if !blank(t.Text) {
		ts := c.MeasureText(t.Text, render.FontTitle)
		size.W = max(minWidth, ts.W+layout.CornerSize*2)
		size.H = max(layout.TitleHeight, ts.H) + layout.TopHeight
	}
	return fit(size, minimum)
}

func (Title) Render(c render.Canvas, th *render.Theme, it scene.Item, bounds geom.Rect) {
	t, ok := it.(*scene.Title)
	if !ok {
		return
	}
	r := geom.Rect{X: bounds.X, Y: bounds.Y + layout.TopHeight, W: bounds.W, H: bounds.H - layout.TopHeight}
	c.DrawText(t.Text, r, render.FontTitle, render.AlignCenter, th.TextColor(it.Base().State()))
}

// =============================================================================
// Text
// =============================================================================

// Label draws static text aligned towards its only connector.
type Label struct{}

func measureText(c render.Canvas, text string, minimum geom.Size) geom.Size {
	size := geom.Size{W: minWidth, H: minHeight}
	if !blank(text) {
		ts := c.MeasureText(text, render.FontItem)
		size = geom.Size{W: max(minWidth, ts.W), H: max(minHeight, ts.H)}
	}
	return fit(size, minimum)
}

func (Label) Measure(c render.Canvas, it scene.Item, minimum geom.Size) geom.Size {
	l, ok := it.(*items.Label)
	if !ok {
		return geom.Size{}
	}
	return measureText(c, l.Text, minimum)
}

func (Label) Render(c render.Canvas, th *render.Theme, it scene.Item, bounds geom.Rect) {
	if l, ok := it.(*items.Label); ok {
		c.DrawText(l.Text, bounds, render.FontItem, align(it), th.Text)
	}
}

// TextBox draws its text inside an outlined field.
type TextBox struct{}

func (TextBox) Measure(c render.Canvas, it scene.Item, minimum geom.Size) geom.Size {
	t, ok := it.(*items.TextBox)
	if !ok {
		return geom.Size{}
	}
	size := measureText(c, t.Text, geom.Size{})
	size.W += spacing * 2
	return fit(size, minimum)
}

func (TextBox) Render(c render.Canvas, th *render.Theme, it scene.Item, bounds geom.Rect) {
	t, ok := it.(*items.TextBox)
	if !ok {
		return
	}
	box := geom.RoundedRect(bounds, controlCorner)
	c.FillPolygon(box, render.Alpha(th.TextHover, 160))
	c.DrawText(t.Text, bounds.Inflate(-spacing, 0), render.FontItem, align(it), th.Text)
	c.StrokePolygon(box, th.TextColor(it.Base().State()), strokeWidth)
}

// =============================================================================
// Checkbox
// =============================================================================

// Checkbox draws a toggle button: translucent white when checked, dark
// when not.
type Checkbox struct{}

func (Checkbox) Measure(c render.Canvas, it scene.Item, minimum geom.Size) geom.Size {
	cb, ok := it.(*items.Checkbox)
	if !ok {
		return geom.Size{}
	}
	return measureText(c, cb.Text, minimum)
}

func (Checkbox) Render(c render.Canvas, th *render.Theme, it scene.Item, bounds geom.Rect) {
	cb, ok := it.(*items.Checkbox)
	if !ok {
		return
	}
	box := geom.RoundedRect(bounds, controlCorner)
	if cb.Checked {
		c.FillPolygon(box, render.Alpha(th.TextHover, 160))
	} else {
		c.FillPolygon(box, render.Alpha(th.Text, 64))
	}
	c.DrawText(cb.Text, bounds, render.FontItem, render.AlignCenter, th.Text)
	c.StrokePolygon(box, th.TextColor(it.Base().State()), strokeWidth)
}

// =============================================================================
// Slider
// =============================================================================

// Slider draws the caption on the left and a track with a knob on the
// right. Rendering records the knob's travel on the item so drags map
// pointer positions to values.
type Slider struct{}

func (Slider) textWidth(c render.Canvas, s *items.Slider) (geom.Size, bool) {
	if blank(s.Text) {
		return geom.Size{}, false
	}
	ts := c.MeasureText(s.Text, render.FontItem)
	ts.W = max(s.TextWidth, ts.W+4)
	return ts, true
}

func (sk Slider) Measure(c render.Canvas, it scene.Item, minimum geom.Size) geom.Size {
	s, ok := it.(*items.Slider)
	if !ok {
		return geom.Size{}
	}
	size := geom.Size{W: minWidth, H: minHeight}
	if ts, ok := sk.textWidth(c, s); ok {
		size.W = max(minWidth, ts.W+s.MinTrackWidth+sliderBoxSize+spacing)
		size.H = max(minHeight, ts.H)
	}
	return fit(size, minimum)
}

func (sk Slider) Render(c render.Canvas, th *render.Theme, it scene.Item, bounds geom.Rect) {
	s, ok := it.(*items.Slider)
	if !ok {
		return
	}
	ts, _ := sk.textWidth(c, s)
	trackW := bounds.W - (spacing + ts.W)
	track := geom.Rect{
		X: bounds.Right() - trackW,
		Y: bounds.Y + (bounds.H-sliderHeight)/2,
		W: trackW,
		H: sliderHeight,
	}
	travel := geom.Rect{X: track.X + sliderBoxSize/2, Y: track.Y, W: track.W - sliderBoxSize, H: track.H}
	s.SetTrack(travel)

	knob := geom.Rect{X: track.X + s.Fraction()*travel.W, Y: bounds.Y, W: sliderBoxSize, H: bounds.H}
	text := geom.Rect{X: bounds.X, Y: bounds.Y, W: bounds.W - trackW - spacing, H: bounds.H}

	stroke := th.Text
	if it.Base().State().Any(scene.Hover | scene.Dragging) {
		stroke = th.TextHover
	}
	c.DrawText(s.Text, text, render.FontItem, render.AlignLeft, th.Text)
	c.StrokePolygon(geom.RoundedRect(track, controlCorner), stroke, strokeWidth)
	knobPoly := geom.RoundedRect(knob, 0)
	c.FillPolygon(knobPoly, th.Control)
	c.StrokePolygon(knobPoly, stroke, strokeWidth)
}

// =============================================================================
// Color
// =============================================================================

// Color draws a swatch next to its caption.
type Color struct{}

func (Color) Measure(c render.Canvas, it scene.Item, minimum geom.Size) geom.Size {
	col, ok := it.(*items.Color)
	if !ok {
		return geom.Size{}
	}
	size := geom.Size{W: minWidth, H: layout.TitleHeight + layout.TopHeight}
	if !blank(col.Text) {
		ts := c.MeasureText(col.Text, render.FontItem)
		size = geom.Size{W: max(minWidth, ts.W+colorBoxSize+spacing), H: max(minHeight, ts.H)}
	}
	return fit(size, minimum)
}

func (Color) Render(c render.Canvas, th *render.Theme, it scene.Item, bounds geom.Rect) {
	col, ok := it.(*items.Color)
	if !ok {
		return
	}
	a := align(it)
	box := geom.Rect{X: bounds.X, Y: bounds.Y, W: colorBoxSize, H: bounds.H}
	text := geom.Rect{X: bounds.X + colorBoxSize + spacing, Y: bounds.Y, W: bounds.W - colorBoxSize - spacing, H: bounds.H}
	if a == render.AlignRight {
		box.X = bounds.Right() - colorBoxSize
		text.X = bounds.X
	}
	c.DrawText(col.Text, text, render.FontItem, a, th.Text)

	swatch := geom.RoundedRect(box, controlCorner)
	if col.Color != nil {
		c.FillPolygon(swatch, col.Color)
	}
	c.StrokePolygon(swatch, th.TextColor(it.Base().State()), strokeWidth)
}

// =============================================================================
// Image
// =============================================================================

// Image draws a picture inside a one-unit frame. A fixed width narrower
// than the row is centred.
type Image struct{}

func (Image) Measure(_ render.Canvas, it scene.Item, minimum geom.Size) geom.Size {
	img, ok := it.(*items.Image)
	if !ok {
		return geom.Size{}
	}
	w, h := img.Size()
	return fit(geom.Size{W: max(minWidth, float64(w)+2), H: max(minHeight, float64(h)+2)}, minimum)
}

func (Image) Render(c render.Canvas, th *render.Theme, it scene.Item, bounds geom.Rect) {
	img, ok := it.(*items.Image)
	if !ok {
		return
	}
	r := bounds
	if fixed := float64(img.Width) + 2; img.Width > 0 && r.W > fixed {
		r.X += (r.W - fixed) / 2
		r.W = fixed
	}
	if img.Image != nil {
		c.DrawImage(img.Image, r.Inflate(-1, -1))
	}
	c.StrokePolygon(geom.RoundedRect(r, 0), th.TextColor(it.Base().State()), strokeWidth)
}

// =============================================================================
// Drop-down
// =============================================================================

// DropDown draws the selected option in a field with a down arrow on the
// right.
type DropDown struct{}

func (DropDown) Measure(c render.Canvas, it scene.Item, minimum geom.Size) geom.Size {
	d, ok := it.(*items.DropDown)
	if !ok {
		return geom.Size{}
	}
	size := geom.Size{W: minWidth, H: minHeight}
	for _, o := range d.Options {
		if blank(o) {
			continue
		}
		ts := c.MeasureText(o, render.FontItem)
		size.W = max(size.W, ts.W+dropArrowSize+spacing*3)
		size.H = max(size.H, ts.H)
	}
	return fit(size, minimum)
}

func (DropDown) Render(c render.Canvas, th *render.Theme, it scene.Item, bounds geom.Rect) {
	d, ok := it.(*items.DropDown)
	if !ok {
		return
	}
	field := geom.RoundedRect(bounds, controlCorner)
	c.FillPolygon(field, render.Alpha(th.Text, 64))
	text := geom.Rect{X: bounds.X + spacing, Y: bounds.Y, W: bounds.W - dropArrowSize - spacing*3, H: bounds.H}
	c.DrawText(d.Text(), text, render.FontItem, render.AlignLeft, th.Text)

	cx, cy := bounds.Right()-spacing-dropArrowSize/2, bounds.Center().Y
	arrow := geom.Polygon{
		{X: cx - dropArrowSize/2, Y: cy - dropArrowSize/4},
		{X: cx + dropArrowSize/2, Y: cy - dropArrowSize/4},
		{X: cx, Y: cy + dropArrowSize/4},
	}
	stroke := th.TextColor(it.Base().State())
	c.FillPolygon(arrow, stroke)
	c.StrokePolygon(field, stroke, strokeWidth)
}
