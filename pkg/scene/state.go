package scene

import "strings"

// RenderState is a set of visual state flags carried by nodes, items,
// connectors and connections.
type RenderState uint16

const (
	None      RenderState = 0
	Connected RenderState = 1 << iota
	Hover
	Dragging
	Focus
	DraggedOver
	Compatible
	Incompatible
)

// Has reports whether all flags in f are set.
func (s RenderState) Has(f RenderState) bool { return f != None && s&f == f }

// Any reports whether at least one flag in f is set.
func (s RenderState) Any(f RenderState) bool { return s&f != 0 }

var stateNames = []struct {
	flag RenderState
	name string
}{
	{Connected, "connected"},
	{Hover, "hover"},
	{Dragging, "dragging"},
	{Focus, "focus"},
	{DraggedOver, "dragged-over"},
	{Compatible, "compatible"},
	{Incompatible, "incompatible"},
}

func (s RenderState) String() string {
	if s == None {
		return "none"
	}
	var parts []string
	for _, n := range stateNames {
		if s&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Role says which side of an item a connector sits on.
type Role uint8

const (
	Input Role = iota
	Output
)

// Opposite returns the other role.
func (r Role) Opposite() Role {
	if r == Input {
		return Output
	}
	return Input
}

func (r Role) String() string {
	if r == Input {
		return "input"
	}
	return "output"
}
