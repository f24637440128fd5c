package render

import (
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/nodecanvas/pkg/scene"
)

func TestConnectionColor(t *testing.T) {
	th := DefaultTheme()
	tests := []struct {
		state scene.RenderState
		want  colorful.Color
	}{
		{scene.None, th.Wire},
		{scene.Connected, th.WireConnected},
		{scene.Compatible | scene.Connected, th.WireCompatible},
		{scene.Incompatible | scene.Compatible, th.WireIncompatible},
		{scene.Hover, th.HotWire},
		{scene.Hover | scene.Connected, th.HotWire},
		{scene.Dragging, th.HotWireDragging},
		{scene.Dragging | scene.Compatible, th.HotWireCompatible},
		{scene.Hover | scene.Incompatible, th.HotWireIncompatible},
	}
	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := th.ConnectionColor(tt.state); got != tt.want {
				t.Errorf("ConnectionColor(%v) = %s, want %s", tt.state, got.Hex(), tt.want.Hex())
			}
		})
	}
}

func TestNodeColor(t *testing.T) {
	th := DefaultTheme()
	if got := th.NodeColor(scene.Focus | scene.Hover); got != th.NodeActive {
		t.Errorf("focused = %s", got.Hex())
	}
	if got := th.NodeColor(scene.Hover); got != th.NodeHover {
		t.Errorf("hovered = %s", got.Hex())
	}
	if got := th.NodeColor(scene.None); got != th.Node {
		t.Errorf("idle = %s", got.Hex())
	}
	over := th.NodeColor(scene.DraggedOver | scene.Hover)
	if over == th.NodeHover || over == th.NodeActive {
		t.Errorf("dragged over = %s, want a blend", over.Hex())
	}
}

func TestThemeSet(t *testing.T) {
	th := DefaultTheme()
	if err := th.Set("Node-Hover", "#112233"); err != nil {
		t.Fatal(err)
	}
	if got := th.NodeHover.Hex(); got != "#112233" {
		t.Errorf("NodeHover = %s", got)
	}
	if err := th.Set("nope", "#112233"); err == nil {
		t.Error("unknown name accepted")
	}
	if err := th.Set("node", "blue"); err == nil {
		t.Error("bad hex accepted")
	}
	if err := th.Apply(map[string]string{"wire": "#000000", "text": "#ffffff"}); err != nil {
		t.Fatal(err)
	}
	if th.Text.Hex() != "#ffffff" {
		t.Errorf("Text = %s", th.Text.Hex())
	}
}

func TestAlpha(t *testing.T) {
	got := Alpha(colorful.Color{R: 1, G: 1, B: 1}, 160)
	if got != (color.NRGBA{R: 255, G: 255, B: 255, A: 160}) {
		t.Errorf("Alpha = %v", got)
	}
}
