// Package sample builds the demonstration scene shared by the render,
// demo and serve commands.
package sample

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/nodecanvas/pkg/geom"
	"github.com/matzehuels/nodecanvas/pkg/items"
	"github.com/matzehuels/nodecanvas/pkg/scene"
)

// Hooks names new connections "Connection N" and renames a connection
// when it is double-clicked.
type Hooks struct {
	scene.NoopHooks
	Logger *log.Logger

	counter int
}

func (h *Hooks) next() string {
	h.counter++
	return fmt.Sprintf("Connection %d", h.counter)
}

func (h *Hooks) ConnectionAdded(c *scene.Connection) bool {
	c.Name = h.next()
	h.logger().Info("connected", "name", c.Name,
		"from", c.From().Node().Title(), "to", c.To().Node().Title())
	return true
}

func (h *Hooks) ConnectionRemoved(c *scene.Connection) {
	h.logger().Info("disconnected", "name", c.Name)
}

func (h *Hooks) ConnectionDoubleClicked(c *scene.Connection) {
	c.Name = h.next()
}

func (h *Hooks) NodeRemoved(n *scene.Node) {
	h.logger().Info("removed node", "title", n.Title())
}

func (h *Hooks) logger() *log.Logger {
	if h.Logger == nil {
		return log.Default()
	}
	return h.Logger
}

// Options configures [New].
type Options struct {
	Logger        *log.Logger
	Compatibility scene.Compatibility
}

// New returns the sample scene: a checkbox node, a colour mixer node
// wired into it and a texture node.
func New(opts Options) *scene.Scene {
	policy := opts.Compatibility
	if policy == nil {
		policy = scene.TagKindCompatibility{}
	}
	sopts := []scene.Option{
		scene.WithHooks(&Hooks{Logger: opts.Logger}),
		scene.WithCompatibility(policy),
	}
	if opts.Logger != nil {
		sopts = append(sopts, scene.WithLogger(opts.Logger))
	}
	s := scene.New(sopts...)

	checks := scene.NewNode("My Title")
	checks.Location = geom.Pt(500, 100)
	check1 := items.NewCheckbox("Check 1", true, true, false)
	check1.Tag = 31337
	check2 := items.NewCheckbox("Check 2", true, true, false)
	check2.Tag = float32(42)
	checks.AddItems(check1, check2)
	s.AddNode(checks)

	mixer, swatch := ColorNode(opts.Logger)
	mixer.Location = geom.Pt(200, 50)
	s.AddNode(mixer)

	texture := TextureNode(opts.Logger)
	texture.Location = geom.Pt(300, 150)
	s.AddNode(texture)

	if _, err := s.Connect(swatch.Output(), check1.Input()); err != nil && opts.Logger != nil {
		opts.Logger.Warn("sample connection", "error", err)
	}
	return s
}

// ColorNode returns a node mixing a colour from three channel sliders.
func ColorNode(logger *log.Logger) (*scene.Node, *items.Color) {
	n := scene.NewNode("Color")
	red := items.NewSlider("R", 0, 1, 0)
	green := items.NewSlider("G", 0, 1, 0)
	blue := items.NewSlider("B", 0, 1, 0)
	swatch := items.NewColor("Color", color.Black, false, true)
	swatch.Tag = 1337

	mix := func(*items.Slider) {
		swatch.Color = colorful.Color{R: red.Value(), G: green.Value(), B: blue.Value()}.Clamped()
	}
	for _, s := range []*items.Slider{red, green, blue} {
		s.MinTrackWidth, s.TextWidth = 64, 16
		s.OnValueChanged = mix
	}
	swatch.OnClicked = func(c *items.Color) {
		cc, _ := colorful.MakeColor(c.Color)
		if logger != nil {
			logger.Info("color clicked", "color", cc.Hex())
		}
	}
	n.AddItems(red, green, blue, swatch)
	return n, swatch
}

// TextureNode returns a node showing a generated 64x64 texture.
func TextureNode(logger *log.Logger) *scene.Node {
	n := scene.NewNode("Texture")
	img := items.NewImage(Texture(64), false, true)
	img.Width, img.Height = 64, 64
	img.Tag = float32(1000)
	img.OnClicked = func(*items.Image) {
		if logger != nil {
			logger.Info("image clicked")
		}
	}
	n.AddItem(img)
	return n
}

// EntryNode returns a node with labels, a text box and a drop-down.
func EntryNode() *scene.Node {
	n := scene.NewNode("Some node")
	n.AddItems(
		items.NewLabel("Entry 1", true, false),
		items.NewLabel("Entry 2", true, false),
		items.NewLabel("Entry 3", false, true),
		items.NewTextBox("TEXTTEXT", false, true),
		items.NewDropDown([]string{"1", "2", "3", "4"}, 0, false, false),
	)
	return n
}

// Palette lists the node factories a host can offer for drag and drop,
// in display order.
var Palette = []struct {
	Name string
	New  func(*log.Logger) *scene.Node
}{
	{"entry", func(*log.Logger) *scene.Node { return EntryNode() }},
	{"color", func(l *log.Logger) *scene.Node { n, _ := ColorNode(l); return n }},
	{"texture", TextureNode},
}

// Texture draws a square of the given size with a hue sweep and a
// checker overlay.
func Texture(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		for x := range size {
			hue := 360 * float64(x) / float64(size)
			light := 0.35 + 0.3*float64(y)/float64(size)
			if (x/8+y/8)%2 == 0 {
				light += 0.1
			}
			c := colorful.Hcl(hue, 0.5, math.Min(light, 1)).Clamped()
			r, g, b := c.RGB255()
			img.Set(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}
