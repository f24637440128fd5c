package pipeline

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/nodecanvas/pkg/cache"
	"github.com/matzehuels/nodecanvas/pkg/geom"
	"github.com/matzehuels/nodecanvas/pkg/items"
	"github.com/matzehuels/nodecanvas/pkg/render"
	"github.com/matzehuels/nodecanvas/pkg/scene"
)

// snapshot is everything in a scene that reaches the canvas. Geometry is
// left out: layout derives it from the fields below.
type snapshot struct {
	Nodes       []nodeSnapshot       `json:"nodes"`
	Connections []connectionSnapshot `json:"connections"`
	View        geom.Matrix          `json:"view"`
	Preview     *render.Preview      `json:"preview,omitempty"`
}

type nodeSnapshot struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Location  geom.Point        `json:"location"`
	Collapsed bool              `json:"collapsed,omitempty"`
	State     scene.RenderState `json:"state,omitempty"`
	Items     []itemSnapshot    `json:"items,omitempty"`
}

type itemSnapshot struct {
	Kind  scene.ItemKind    `json:"kind"`
	Value string            `json:"value,omitempty"`
	State scene.RenderState `json:"state,omitempty"`
	In    connectorSnapshot `json:"in"`
	Out   connectorSnapshot `json:"out"`
}

type connectorSnapshot struct {
	Enabled bool              `json:"enabled,omitempty"`
	State   scene.RenderState `json:"state,omitempty"`
}

type connectionSnapshot struct {
	From  string            `json:"from"`
	To    string            `json:"to"`
	Name  string            `json:"name,omitempty"`
	State scene.RenderState `json:"state,omitempty"`
}

// Fingerprint hashes the visible content of s as seen through view with
// an optional preview. Two calls return the same hash exactly when the
// frames they describe paint identically on a given canvas.
func Fingerprint(s *scene.Scene, view geom.Matrix, preview *render.Preview) string {
	snap := snapshot{View: view, Preview: preview}
	ids := make(map[scene.Item]string)
	for _, n := range s.Nodes() {
		ns := nodeSnapshot{
			ID:        n.ID,
			Title:     n.Title(),
			Location:  n.Location,
			Collapsed: n.Collapsed(),
			State:     n.State(),
		}
		for i, it := range n.Items() {
			ids[it] = n.ID + "/" + strconv.Itoa(i)
			b := it.Base()
			ns.Items = append(ns.Items, itemSnapshot{
				Kind:  it.Kind(),
				Value: itemValue(it),
				State: b.State(),
				In:    connectorSnapshot{Enabled: b.Input().Enabled(), State: b.Input().State()},
				Out:   connectorSnapshot{Enabled: b.Output().Enabled(), State: b.Output().State()},
			})
		}
		snap.Nodes = append(snap.Nodes, ns)
	}
	for _, c := range s.Connections() {
		snap.Connections = append(snap.Connections, connectionSnapshot{
			From:  ids[c.From().Item()],
			To:    ids[c.To().Item()],
			Name:  c.Name,
			State: c.State(),
		})
	}
	data, _ := json.Marshal(snap)
	return cache.Hash(data)
}

// itemValue renders the user-visible value of the stock item kinds.
// Images are identified by pointer, so their artifacts are only shared
// within one process.
func itemValue(it scene.Item) string {
	switch v := it.(type) {
	case *items.Label:
		return v.Text
	case *items.TextBox:
		return v.Text
	case *items.Checkbox:
		return fmt.Sprintf("%t %s", v.Checked, v.Text)
	case *items.Slider:
		return fmt.Sprintf("%g %g %g %s", v.Min, v.Max, v.Value(), v.Text)
	case *items.Color:
		hex := "none"
		if v.Color != nil {
			c, _ := colorful.MakeColor(v.Color)
			hex = c.Hex()
		}
		return hex + " " + v.Text
	case *items.Image:
		w, h := v.Size()
		return fmt.Sprintf("%p %dx%d", v.Image, w, h)
	case *items.DropDown:
		return fmt.Sprintf("%d %s", v.Selected(), v.Text())
	default:
		return ""
	}
}

// styleHash identifies the look of a frame independent of its content.
func styleHash(th render.Theme, rs render.RibbonStyle) string {
	data, _ := json.Marshal(struct {
		Theme  render.Theme
		Ribbon render.RibbonStyle
	}{th, rs})
	return cache.Hash(data)[:16]
}
