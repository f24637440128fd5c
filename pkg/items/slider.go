package items

import (
	"github.com/matzehuels/nodecanvas/pkg/geom"
	"github.com/matzehuels/nodecanvas/pkg/scene"
)

// Slider picks a value in [Min, Max] by dragging along its track.
type Slider struct {
	scene.ItemBase
	Text string
	Min  float64
	Max  float64
	// MinTrackWidth and TextWidth are lower bounds used when measuring.
	MinTrackWidth float64
	TextWidth     float64

	OnValueChanged func(*Slider)
	OnClicked      func(*Slider)

	value    float64
	track    geom.Rect
	dragging bool
}

func NewSlider(text string, minValue, maxValue, value float64) *Slider {
	s := &Slider{Text: text, Min: minValue, Max: maxValue, MinTrackWidth: 80, TextWidth: 40}
	s.Init(s, false, false)
	s.value = s.clamp(value)
	return s
}

func (*Slider) Kind() scene.ItemKind { return KindSlider }

// Value returns the current value.
func (s *Slider) Value() float64 { return s.value }

// SetValue clamps v into range and notifies OnValueChanged if it changed.
func (s *Slider) SetValue(v float64) {
	v = s.clamp(v)
	if v == s.value {
		return
	}
	s.value = v
	if s.OnValueChanged != nil {
		s.OnValueChanged(s)
	}
}

// Fraction returns the value's position within the range, in [0, 1].
func (s *Slider) Fraction() float64 {
	if s.Max == s.Min {
		return 0
	}
	return (s.value - s.Min) / (s.Max - s.Min)
}

// Dragging reports whether the knob is being dragged.
func (s *Slider) Dragging() bool { return s.dragging }

// Track is the rectangle the knob moves along. The skin records it while
// painting; before the first paint the item bounds stand in.
func (s *Slider) Track() geom.Rect {
	if s.track.Empty() {
		return s.Bounds()
	}
	return s.track
}

// SetTrack is called by the skin.
func (s *Slider) SetTrack(r geom.Rect) { s.track = r }

func (s *Slider) OnClick() bool {
	if s.OnClicked != nil {
		s.OnClicked(s)
	}
	return true
}

func (s *Slider) OnStartDrag(p geom.Point) bool {
	s.dragging = true
	s.seek(p)
	return true
}

func (s *Slider) OnDrag(p geom.Point) bool {
	s.seek(p)
	return true
}

func (s *Slider) OnEndDrag() bool {
	s.dragging = false
	return true
}

func (s *Slider) seek(p geom.Point) {
	t := s.Track()
	if t.W <= 0 {
		return
	}
	s.SetValue(s.Min + (p.X-t.X)/t.W*(s.Max-s.Min))
}

func (s *Slider) clamp(v float64) float64 {
	lo, hi := min(s.Min, s.Max), max(s.Min, s.Max)
	return min(max(v, lo), hi)
}
