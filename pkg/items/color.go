package items

import (
	"image"
	"image/color"

	"github.com/matzehuels/nodecanvas/pkg/scene"
)

// Color is a labelled colour swatch.
type Color struct {
	scene.ItemBase
	Text      string
	Color     color.Color
	OnClicked func(*Color)
}

func NewColor(text string, c color.Color, inputEnabled, outputEnabled bool) *Color {
	it := &Color{Text: text, Color: c}
	it.Init(it, inputEnabled, outputEnabled)
	return it
}

func (*Color) Kind() scene.ItemKind { return KindColor }

func (c *Color) OnEnter() bool { return true }
func (c *Color) OnLeave() bool { return true }

func (c *Color) OnClick() bool {
	if c.OnClicked != nil {
		c.OnClicked(c)
	}
	return true
}

// Image shows a picture, optionally at a fixed size.
type Image struct {
	scene.ItemBase
	Image image.Image
	// Width and Height override the picture size when non-zero.
	Width, Height int
	OnClicked     func(*Image)
}

func NewImage(img image.Image, inputEnabled, outputEnabled bool) *Image {
	it := &Image{Image: img}
	it.Init(it, inputEnabled, outputEnabled)
	return it
}

func (*Image) Kind() scene.ItemKind { return KindImage }

func (i *Image) OnEnter() bool { return true }
func (i *Image) OnLeave() bool { return true }

func (i *Image) OnClick() bool {
	if i.OnClicked != nil {
		i.OnClicked(i)
	}
	return true
}

// Size returns the display size: the override where set, the picture's
// own size otherwise.
func (i *Image) Size() (w, h int) {
	if i.Image != nil {
		b := i.Image.Bounds()
		w, h = b.Dx(), b.Dy()
	}
	if i.Width > 0 {
		w = i.Width
	}
	if i.Height > 0 {
		h = i.Height
	}
	return w, h
}
