package sink

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"

	"github.com/matzehuels/nodecanvas/pkg/fonts"
	"github.com/matzehuels/nodecanvas/pkg/geom"
	"github.com/matzehuels/nodecanvas/pkg/render"
)

type SVGOption func(*SVGCanvas)

// WithBackground fills the document with c before anything is drawn.
func WithBackground(c color.Color) SVGOption { return func(s *SVGCanvas) { s.background = c } }

// WithEmbeddedFont embeds the Go Mono face as an @font-face rule so the
// document renders with the same metrics it was measured with.
func WithEmbeddedFont() SVGOption { return func(s *SVGCanvas) { s.embedFont = true } }

// SVGCanvas records drawing calls as SVG elements.
type SVGCanvas struct {
	render.Geometry

	width, height int
	background    color.Color
	embedFont     bool

	body      bytes.Buffer
	groupOpen bool
}

func NewSVGCanvas(width, height int, opts ...SVGOption) *SVGCanvas {
	s := &SVGCanvas{width: width, height: height}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reset discards everything drawn so far.
func (s *SVGCanvas) Reset() {
	s.body.Reset()
	s.groupOpen = false
}

// Bytes returns the complete document.
func (s *SVGCanvas) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		s.width, s.height, s.width, s.height)
	s.renderDefs(&buf)
	if s.background != nil {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%d" height="%d"%s/>`+"\n", s.width, s.height, fillAttrs(s.background))
	}
	buf.Write(s.body.Bytes())
	if s.groupOpen {
		buf.WriteString("  </g>\n")
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (s *SVGCanvas) renderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n    <style>\n")
	if s.embedFont {
		fmt.Fprintf(buf, "      @font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }\n",
			fonts.FontFamily, fonts.MonoTTFBase64())
	}
	fmt.Fprintf(buf, "      text { font-family: %s; dominant-baseline: central; }\n", fonts.FallbackFontFamily)
	buf.WriteString("    </style>\n  </defs>\n")
}

func (s *SVGCanvas) SetTransform(m geom.Matrix) {
	if s.groupOpen {
		s.body.WriteString("  </g>\n")
	}
	fmt.Fprintf(&s.body, `  <g transform="matrix(%s %s %s %s %s %s)">`+"\n",
		num(m[0]), num(m[1]), num(m[2]), num(m[3]), num(m[4]), num(m[5]))
	s.groupOpen = true
}

func (s *SVGCanvas) MeasureText(text string, f render.Font) geom.Size { return measure(text, f) }

func (s *SVGCanvas) FillPolygon(pg geom.Polygon, c color.Color) {
	if len(pg) < 3 {
		return
	}
	fmt.Fprintf(&s.body, `    <path d="%s"%s/>`+"\n", pathData(pg), fillAttrs(c))
}

func (s *SVGCanvas) StrokePolygon(pg geom.Polygon, c color.Color, width float64) {
	if len(pg) < 2 {
		return
	}
	fmt.Fprintf(&s.body, `    <path d="%s" fill="none"%s/>`+"\n", pathData(pg), strokeAttrs(c, width))
}

func (s *SVGCanvas) FillEllipse(r geom.Rect, c color.Color) {
	cx, cy := r.Center().X, r.Center().Y
	fmt.Fprintf(&s.body, `    <ellipse cx="%s" cy="%s" rx="%s" ry="%s"%s/>`+"\n",
		num(cx), num(cy), num(r.W/2), num(r.H/2), fillAttrs(c))
}

func (s *SVGCanvas) StrokeEllipse(r geom.Rect, c color.Color, width float64) {
	cx, cy := r.Center().X, r.Center().Y
	fmt.Fprintf(&s.body, `    <ellipse cx="%s" cy="%s" rx="%s" ry="%s" fill="none"%s/>`+"\n",
		num(cx), num(cy), num(r.W/2), num(r.H/2), strokeAttrs(c, width))
}

func (s *SVGCanvas) StrokeArc(r geom.Rect, start, sweep float64, c color.Color, width float64) {
	from := ellipsePoint(r, start)
	to := ellipsePoint(r, start+sweep)
	large, dir := 0, 1
	if math.Abs(sweep) > 180 {
		large = 1
	}
	if sweep < 0 {
		dir = 0
	}
	fmt.Fprintf(&s.body, `    <path d="M%s,%s A%s,%s 0 %d %d %s,%s" fill="none"%s/>`+"\n",
		num(from.X), num(from.Y), num(r.W/2), num(r.H/2), large, dir, num(to.X), num(to.Y), strokeAttrs(c, width))
}

func (s *SVGCanvas) DrawText(text string, r geom.Rect, f render.Font, a render.Align, c color.Color) {
	if strings.TrimSpace(text) == "" {
		return
	}
	size, bold := fontSpec(f)
	x, anchor := r.Center().X, "middle"
	switch a {
	case render.AlignLeft:
		x, anchor = r.X, "start"
	case render.AlignRight:
		x, anchor = r.Right(), "end"
	}
	weight := ""
	if bold {
		weight = ` font-weight="bold"`
	}
	fmt.Fprintf(&s.body, `    <text x="%s" y="%s" font-size="%s" text-anchor="%s"%s%s>%s</text>`+"\n",
		num(x), num(r.Center().Y), num(size), anchor, weight, fillAttrs(c), escapeXML(text))
}

func (s *SVGCanvas) DrawImage(img image.Image, r geom.Rect) {
	if img == nil {
		return
	}
	var data bytes.Buffer
	if err := png.Encode(&data, img); err != nil {
		return
	}
	fmt.Fprintf(&s.body, `    <image x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="none" href="data:image/png;base64,%s"/>`+"\n",
		num(r.X), num(r.Y), num(r.W), num(r.H), base64.StdEncoding.EncodeToString(data.Bytes()))
}

// =============================================================================
// Attribute helpers
// =============================================================================

func pathData(pg geom.Polygon) string {
	var b strings.Builder
	for i, p := range pg {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString(" L")
		}
		b.WriteString(num(p.X))
		b.WriteByte(',')
		b.WriteString(num(p.Y))
	}
	b.WriteString(" Z")
	return b.String()
}

func fillAttrs(c color.Color) string {
	cf, alpha := paint(c)
	if alpha == 0 {
		return ` fill="none"`
	}
	if alpha < 1 {
		return fmt.Sprintf(` fill="%s" fill-opacity="%s"`, cf.Hex(), num(alpha))
	}
	return fmt.Sprintf(` fill="%s"`, cf.Hex())
}

func strokeAttrs(c color.Color, width float64) string {
	cf, alpha := paint(c)
	if alpha == 0 {
		return ` stroke="none"`
	}
	out := fmt.Sprintf(` stroke="%s" stroke-width="%s"`, cf.Hex(), num(width))
	if alpha < 1 {
		out += fmt.Sprintf(` stroke-opacity="%s"`, num(alpha))
	}
	return out
}

// ellipsePoint returns the point at deg degrees on the ellipse inscribed
// in r, measured clockwise from the positive x axis.
func ellipsePoint(r geom.Rect, deg float64) geom.Point {
	a := deg * math.Pi / 180
	c := r.Center()
	return geom.Pt(c.X+r.W/2*math.Cos(a), c.Y+r.H/2*math.Sin(a))
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
