package sink

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/nodecanvas/pkg/geom"
	"github.com/matzehuels/nodecanvas/pkg/render"
)

// Size of one terminal cell in view units.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Sub-cell sample offsets used to decide whether a filled shape covers a
// cell. Thin shapes such as wires rarely cover a cell centre.
var cellSamples = [...]geom.Point{
	{X: 2, Y: 2}, {X: 6, Y: 2},
	{X: 2, Y: 6}, {X: 6, Y: 6},
	{X: 2, Y: 10}, {X: 6, Y: 10},
	{X: 2, Y: 14}, {X: 6, Y: 14},
}

type cell struct {
	r      rune
	fg, bg colorful.Color
}

// TermCanvas paints into a grid of character cells. Filled shapes set cell
// backgrounds, connector bulbs become dots and text is written one
// character per cell. Outlines are dropped; cells are too coarse for them.
type TermCanvas struct {
	render.Geometry

	cols, rows int
	background colorful.Color
	cells      []cell
	transform  geom.Matrix
}

func NewTermCanvas(cols, rows int, background colorful.Color) *TermCanvas {
	t := &TermCanvas{background: background}
	t.Resize(cols, rows)
	return t
}

// Resize changes the grid size and clears it.
func (t *TermCanvas) Resize(cols, rows int) {
	t.cols, t.rows = max(cols, 0), max(rows, 0)
	t.cells = make([]cell, t.cols*t.rows)
	t.Reset()
}

// Reset clears every cell to the background.
func (t *TermCanvas) Reset() {
	for i := range t.cells {
		t.cells[i] = cell{r: ' ', fg: t.background, bg: t.background}
	}
	t.transform = geom.Identity()
}

// Size returns the grid size in cells.
func (t *TermCanvas) Size() (cols, rows int) { return t.cols, t.rows }

// CellCenter returns the view-space centre of a cell.
func CellCenter(col, row int) geom.Point {
	return geom.Pt((float64(col)+0.5)*CellWidth, (float64(row)+0.5)*CellHeight)
}

func (t *TermCanvas) at(col, row int) *cell {
	if col < 0 || row < 0 || col >= t.cols || row >= t.rows {
		return nil
	}
	return &t.cells[row*t.cols+col]
}

// Cell returns the rune and background of a cell, for tests and hosts
// that inspect the grid.
func (t *TermCanvas) Cell(col, row int) (rune, colorful.Color) {
	c := t.at(col, row)
	if c == nil {
		return 0, colorful.Color{}
	}
	return c.r, c.bg
}

func (t *TermCanvas) SetTransform(m geom.Matrix) { t.transform = m }

// MeasureText gives every character one cell at zoom 1.
func (t *TermCanvas) MeasureText(text string, _ render.Font) geom.Size {
	return geom.Sz(float64(len([]rune(text)))*CellWidth, CellHeight)
}

// cellRange returns the cells overlapped by a view-space rectangle.
func (t *TermCanvas) cellRange(v geom.Rect) (c0, r0, c1, r1 int) {
	c0 = max(int(math.Floor(v.X/CellWidth)), 0)
	r0 = max(int(math.Floor(v.Y/CellHeight)), 0)
	c1 = min(int(math.Ceil(v.Right()/CellWidth)), t.cols)
	r1 = min(int(math.Ceil(v.Bottom()/CellHeight)), t.rows)
	return
}

func (t *TermCanvas) FillPolygon(pg geom.Polygon, c color.Color) {
	if len(pg) < 3 {
		return
	}
	col, alpha := paint(c)
	if alpha == 0 {
		return
	}
	view := make(geom.Polygon, len(pg))
	for i, p := range pg {
		view[i] = t.transform.Apply(p)
	}
	c0, r0, c1, r1 := t.cellRange(view.Bounds())
	for row := r0; row < r1; row++ {
		for cc := c0; cc < c1; cc++ {
			origin := geom.Pt(float64(cc)*CellWidth, float64(row)*CellHeight)
			for _, s := range cellSamples {
				if t.PointInRegion(view, origin.Add(s)) {
					cl := t.at(cc, row)
					cl.bg = cl.bg.BlendRgb(col, alpha).Clamped()
					break
				}
			}
		}
	}
}

func (t *TermCanvas) StrokePolygon(geom.Polygon, color.Color, float64) {}

func (t *TermCanvas) FillEllipse(r geom.Rect, c color.Color) {
	col, alpha := paint(c)
	if alpha == 0 {
		return
	}
	p := t.transform.Apply(r.Center())
	if cl := t.at(int(math.Floor(p.X/CellWidth)), int(math.Floor(p.Y/CellHeight))); cl != nil {
		cl.r, cl.fg = '●', col
	}
}

func (t *TermCanvas) StrokeEllipse(geom.Rect, color.Color, float64) {}

func (t *TermCanvas) StrokeArc(geom.Rect, float64, float64, color.Color, float64) {}

func (t *TermCanvas) DrawText(text string, r geom.Rect, _ render.Font, a render.Align, c color.Color) {
	col, alpha := paint(c)
	if alpha == 0 || strings.TrimSpace(text) == "" {
		return
	}
	v := t.transform.ApplyRect(r)
	row := int(math.Floor(v.Center().Y / CellHeight))
	runes := []rune(text)
	width := int(math.Floor(v.W / CellWidth))
	if width <= 0 {
		return
	}
	if len(runes) > width {
		runes = runes[:width]
	}
	left := int(math.Round(v.X / CellWidth))
	switch a {
	case render.AlignCenter:
		left += (width - len(runes)) / 2
	case render.AlignRight:
		left += width - len(runes)
	}
	for i, ch := range runes {
		if cl := t.at(left+i, row); cl != nil {
			cl.r, cl.fg = ch, col
		}
	}
}

// DrawImage fills the covered cells with the picture's average color.
func (t *TermCanvas) DrawImage(img image.Image, r geom.Rect) {
	if img == nil || img.Bounds().Empty() {
		return
	}
	avg := averageColor(img)
	c0, r0, c1, r1 := t.cellRange(t.transform.ApplyRect(r))
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			t.at(col, row).bg = avg
		}
	}
}

func averageColor(img image.Image) colorful.Color {
	b := img.Bounds()
	step := max(1, max(b.Dx(), b.Dy())/16)
	var sum colorful.Color
	n := 0.0
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c, _ := colorful.MakeColor(img.At(x, y))
			sum.R, sum.G, sum.B = sum.R+c.R, sum.G+c.G, sum.B+c.B
			n++
		}
	}
	return colorful.Color{R: sum.R / n, G: sum.G / n, B: sum.B / n}
}

// String renders the grid with ANSI styling, one line per row. Runs of
// cells with the same colors share one style.
func (t *TermCanvas) String() string {
	var out strings.Builder
	for row := 0; row < t.rows; row++ {
		if row > 0 {
			out.WriteByte('\n')
		}
		var run []rune
		var fg, bg colorful.Color
		flush := func() {
			if len(run) == 0 {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(fg.Hex())).
				Background(lipgloss.Color(bg.Hex()))
			out.WriteString(style.Render(string(run)))
			run = run[:0]
		}
		for col := 0; col < t.cols; col++ {
			cl := t.cells[row*t.cols+col]
			if len(run) > 0 && (cl.fg != fg || cl.bg != bg) {
				flush()
			}
			fg, bg = cl.fg, cl.bg
			run = append(run, cl.r)
		}
		flush()
	}
	return out.String()
}
