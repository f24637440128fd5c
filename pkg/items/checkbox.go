package items

import "github.com/matzehuels/nodecanvas/pkg/scene"

// Checkbox is a toggle button.
type Checkbox struct {
	scene.ItemBase
	Text     string
	Checked  bool
	OnChange func(*Checkbox)
}

func NewCheckbox(text string, checked, inputEnabled, outputEnabled bool) *Checkbox {
	c := &Checkbox{Text: text, Checked: checked}
	c.Init(c, inputEnabled, outputEnabled)
	return c
}

func (*Checkbox) Kind() scene.ItemKind { return KindCheckbox }

func (c *Checkbox) OnEnter() bool { return true }
func (c *Checkbox) OnLeave() bool { return true }

// OnClick toggles the box.
func (c *Checkbox) OnClick() bool {
	c.Checked = !c.Checked
	if c.OnChange != nil {
		c.OnChange(c)
	}
	return true
}
