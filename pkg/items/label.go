package items

import "github.com/matzehuels/nodecanvas/pkg/scene"

// Label is a line of static text.
type Label struct {
	scene.ItemBase
	Text string
}

func NewLabel(text string, inputEnabled, outputEnabled bool) *Label {
	l := &Label{Text: text}
	l.Init(l, inputEnabled, outputEnabled)
	return l
}

func (*Label) Kind() scene.ItemKind { return KindLabel }

// TextBox shows editable text. Clicking it asks the host to edit the text
// through OnEdit; the canvas itself has no text input.
type TextBox struct {
	scene.ItemBase
	Text   string
	OnEdit func(*TextBox)
}

func NewTextBox(text string, inputEnabled, outputEnabled bool) *TextBox {
	t := &TextBox{Text: text}
	t.Init(t, inputEnabled, outputEnabled)
	return t
}

func (*TextBox) Kind() scene.ItemKind { return KindTextBox }

func (t *TextBox) OnClick() bool {
	if t.OnEdit != nil {
		t.OnEdit(t)
	}
	return true
}

// SetText replaces the text, typically from an OnEdit handler.
func (t *TextBox) SetText(s string) { t.Text = s }

func (t *TextBox) OnEnter() bool { return true }
func (t *TextBox) OnLeave() bool { return true }
