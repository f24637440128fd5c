// Package fonts provides the embedded Go Mono faces used by the canvas
// backends.
//
// The font data ships with golang.org/x/image, so rendering and text
// measurement behave the same on every machine. SVG output embeds the
// regular face as a base64 data URL; raster output and measurement use
// parsed truetype faces.
package fonts

import (
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
)

// FontFamily is the CSS font-family name of the embedded face.
const FontFamily = "Go Mono"

// FallbackFontFamily lists fallbacks for viewers that ignore the embedded
// face.
const FallbackFontFamily = `'Go Mono', 'DejaVu Sans Mono', Menlo, Consolas, monospace`

// MonoTTF returns the regular TTF data.
func MonoTTF() []byte { return gomono.TTF }

// MonoBoldTTF returns the bold TTF data.
func MonoBoldTTF() []byte { return gomonobold.TTF }

// Cache for the base64-encoded font (computed once on first access).
var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// MonoTTFBase64 returns the regular TTF data as a base64 string.
func MonoTTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(gomono.TTF)
	})
	return ttfBase64
}

var (
	parsed    [2]*truetype.Font
	parseErr  error
	parseOnce sync.Once

	facesMu sync.Mutex
	faces   = map[faceKey]font.Face{}
)

type faceKey struct {
	bold bool
	size float64
}

func parse() error {
	parseOnce.Do(func() {
		for i, data := range [][]byte{gomono.TTF, gomonobold.TTF} {
			f, err := truetype.Parse(data)
			if err != nil {
				parseErr = fmt.Errorf("parse go mono: %w", err)
				return
			}
			parsed[i] = f
		}
	})
	return parseErr
}

// Face returns a hinted face of the given point size at 72 DPI, so one
// point equals one scene unit. Faces are cached and shared; a font.Face
// is not safe for concurrent use, so callers that draw from several
// goroutines should use [NewFace].
func Face(size float64, bold bool) (font.Face, error) {
	facesMu.Lock()
	defer facesMu.Unlock()
	k := faceKey{bold: bold, size: size}
	if f, ok := faces[k]; ok {
		return f, nil
	}
	f, err := NewFace(size, bold)
	if err != nil {
		return nil, err
	}
	faces[k] = f
	return f, nil
}

// NewFace returns a fresh face that the caller owns.
func NewFace(size float64, bold bool) (font.Face, error) {
	if err := parse(); err != nil {
		return nil, err
	}
	f := parsed[0]
	if bold {
		f = parsed[1]
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// Measure returns the advance width and line height of text set in the
// given face.
func Measure(text string, size float64, bold bool) (w, h float64, err error) {
	face, err := Face(size, bold)
	if err != nil {
		return 0, 0, err
	}
	facesMu.Lock()
	defer facesMu.Unlock()
	adv := font.MeasureString(face, text)
	m := face.Metrics()
	return float64(adv) / 64, float64(m.Height) / 64, nil
}
