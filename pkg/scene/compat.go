package scene

import "reflect"

// Compatibility decides whether an output connector may feed an input
// connector. Interaction uses it to highlight drop targets while a
// connector is dragged; [Scene.Connect] does not consult it.
type Compatibility interface {
	Compatible(from, to *Connector) bool
}

// AlwaysCompatible accepts every pair. It is the default policy.
type AlwaysCompatible struct{}

func (AlwaysCompatible) Compatible(*Connector, *Connector) bool { return true }

// CompatibilityFunc adapts a function to [Compatibility].
type CompatibilityFunc func(from, to *Connector) bool

func (f CompatibilityFunc) Compatible(from, to *Connector) bool { return f(from, to) }

// TagKindCompatibility accepts a pair when the items on both ends carry
// tags of the same dynamic type. Untagged items are incompatible with
// everything.
type TagKindCompatibility struct{}

func (TagKindCompatibility) Compatible(from, to *Connector) bool {
	if from == nil || to == nil || from.Item() == nil || to.Item() == nil {
		return false
	}
	a, b := from.Item().Base().Tag, to.Item().Base().Tag
	if a == nil || b == nil {
		return false
	}
	return reflect.TypeOf(a) == reflect.TypeOf(b)
}
