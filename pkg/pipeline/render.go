package pipeline

import (
	"fmt"

	"github.com/matzehuels/nodecanvas/pkg/geom"
	"github.com/matzehuels/nodecanvas/pkg/render"
	"github.com/matzehuels/nodecanvas/pkg/render/sink"
	"github.com/matzehuels/nodecanvas/pkg/render/skins"
	"github.com/matzehuels/nodecanvas/pkg/scene"
)

// registry holds the stock skins. It is read-only after init.
var registry = skins.NewRegistry()

func newFrame(c render.Canvas, opts Options) *render.Frame {
	return &render.Frame{
		Canvas:     c,
		Registry:   registry,
		Theme:      opts.Theme,
		Ribbon:     opts.Ribbon,
		ShowLabels: opts.ShowLabels,
		Logger:     opts.Logger,
	}
}

// layoutFrame runs the layout pass with the measurements the sinks use.
// SVG and PNG measure text with the same Go Mono face.
func layoutFrame(s *scene.Scene, opts Options) {
	newFrame(sink.NewSVGCanvas(opts.Width, opts.Height), opts).Layout(s)
}

// renderFormat paints s onto a fresh canvas for format and encodes it.
func renderFormat(s *scene.Scene, view geom.Matrix, opts Options, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		svgOpts := []sink.SVGOption{sink.WithBackground(opts.Theme.Background)}
		if opts.EmbedFont {
			svgOpts = append(svgOpts, sink.WithEmbeddedFont())
		}
		c := sink.NewSVGCanvas(opts.Width, opts.Height, svgOpts...)
		newFrame(c, opts).Paint(s, view, opts.Preview)
		return c.Bytes(), nil
	case FormatPNG:
		c := sink.NewPNGCanvas(opts.pixelWidth(), opts.pixelHeight(), opts.Theme.Background)
		newFrame(c, opts).Paint(s, geom.Scale(opts.Scale, opts.Scale).Multiply(view), opts.Preview)
		return c.Bytes()
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
