package sink

import (
	"bytes"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/nodecanvas/pkg/fonts"
	"github.com/matzehuels/nodecanvas/pkg/geom"
	"github.com/matzehuels/nodecanvas/pkg/render"
)

// PNGCanvas rasterizes a frame with fogleman/gg. Geometry is transformed
// on the CPU so that text and stroke widths follow the zoom factor.
type PNGCanvas struct {
	render.Geometry

	dc         *gg.Context
	background color.Color
	transform  geom.Matrix
	faces      map[faceKey]font.Face
}

type faceKey struct {
	font  render.Font
	scale float64
}

// NewPNGCanvas returns a width x height canvas cleared to background. A
// nil background leaves the image transparent.
func NewPNGCanvas(width, height int, background color.Color) *PNGCanvas {
	p := &PNGCanvas{
		dc:         gg.NewContext(width, height),
		background: background,
		transform:  geom.Identity(),
		faces:      make(map[faceKey]font.Face),
	}
	p.Reset()
	return p
}

// Reset clears the image.
func (p *PNGCanvas) Reset() {
	if p.background != nil {
		p.dc.SetColor(p.background)
		p.dc.Clear()
	}
	p.transform = geom.Identity()
}

// Image returns the rendered image.
func (p *PNGCanvas) Image() image.Image { return p.dc.Image() }

// EncodePNG writes the image as PNG.
func (p *PNGCanvas) EncodePNG(w io.Writer) error { return p.dc.EncodePNG(w) }

// Bytes returns the PNG encoding of the image.
func (p *PNGCanvas) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *PNGCanvas) SetTransform(m geom.Matrix) { p.transform = m }

func (p *PNGCanvas) scale() float64 { return math.Abs(p.transform.ScaleFactor()) }

func (p *PNGCanvas) MeasureText(text string, f render.Font) geom.Size { return measure(text, f) }

func (p *PNGCanvas) path(pg geom.Polygon) {
	p.dc.NewSubPath()
	for i, pt := range pg {
		v := p.transform.Apply(pt)
		if i == 0 {
			p.dc.MoveTo(v.X, v.Y)
		} else {
			p.dc.LineTo(v.X, v.Y)
		}
	}
	p.dc.ClosePath()
}

func (p *PNGCanvas) FillPolygon(pg geom.Polygon, c color.Color) {
	if len(pg) < 3 {
		return
	}
	p.path(pg)
	p.dc.SetFillRuleWinding()
	p.dc.SetColor(c)
	p.dc.Fill()
}

func (p *PNGCanvas) StrokePolygon(pg geom.Polygon, c color.Color, width float64) {
	if len(pg) < 2 {
		return
	}
	p.path(pg)
	p.stroke(c, width)
}

func (p *PNGCanvas) stroke(c color.Color, width float64) {
	p.dc.SetColor(c)
	p.dc.SetLineWidth(max(width*p.scale(), 0.5))
	p.dc.Stroke()
}

func (p *PNGCanvas) ellipse(r geom.Rect) (cx, cy, rx, ry float64) {
	v := p.transform.ApplyRect(r)
	c := v.Center()
	return c.X, c.Y, v.W / 2, v.H / 2
}

func (p *PNGCanvas) FillEllipse(r geom.Rect, c color.Color) {
	cx, cy, rx, ry := p.ellipse(r)
	p.dc.DrawEllipse(cx, cy, rx, ry)
	p.dc.SetColor(c)
	p.dc.Fill()
}

func (p *PNGCanvas) StrokeEllipse(r geom.Rect, c color.Color, width float64) {
	cx, cy, rx, ry := p.ellipse(r)
	p.dc.DrawEllipse(cx, cy, rx, ry)
	p.stroke(c, width)
}

func (p *PNGCanvas) StrokeArc(r geom.Rect, start, sweep float64, c color.Color, width float64) {
	cx, cy, rx, ry := p.ellipse(r)
	p.dc.NewSubPath()
	p.dc.DrawEllipticalArc(cx, cy, rx, ry, gg.Radians(start), gg.Radians(start+sweep))
	p.stroke(c, width)
}

func (p *PNGCanvas) face(f render.Font) font.Face {
	k := faceKey{font: f, scale: p.scale()}
	if face, ok := p.faces[k]; ok {
		return face
	}
	size, bold := fontSpec(f)
	face, err := fonts.NewFace(size*k.scale, bold)
	if err != nil {
		return nil
	}
	p.faces[k] = face
	return face
}

func (p *PNGCanvas) DrawText(text string, r geom.Rect, f render.Font, a render.Align, c color.Color) {
	face := p.face(f)
	if face == nil || text == "" {
		return
	}
	v := p.transform.ApplyRect(r)
	x, ax := v.Center().X, 0.5
	switch a {
	case render.AlignLeft:
		x, ax = v.X, 0
	case render.AlignRight:
		x, ax = v.Right(), 1
	}
	p.dc.SetFontFace(face)
	p.dc.SetColor(c)
	p.dc.DrawStringAnchored(text, x, v.Center().Y, ax, 0.5)
}

func (p *PNGCanvas) DrawImage(img image.Image, r geom.Rect) {
	if img == nil {
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	v := p.transform.ApplyRect(r)
	p.dc.Push()
	p.dc.Translate(v.X, v.Y)
	p.dc.Scale(v.W/float64(b.Dx()), v.H/float64(b.Dy()))
	p.dc.DrawImage(img, -b.Min.X, -b.Min.Y)
	p.dc.Pop()
}
