package items

import "github.com/matzehuels/nodecanvas/pkg/scene"

// DropDown selects one of a fixed list of options. Clicking cycles to the
// next option.
type DropDown struct {
	scene.ItemBase
	Options  []string
	OnSelect func(*DropDown)

	selected int
}

func NewDropDown(options []string, selected int, inputEnabled, outputEnabled bool) *DropDown {
	d := &DropDown{Options: options}
	d.Init(d, inputEnabled, outputEnabled)
	d.Select(selected)
	return d
}

func (*DropDown) Kind() scene.ItemKind { return KindDropDown }

// Selected returns the selected index, or -1 without options.
func (d *DropDown) Selected() int {
	if len(d.Options) == 0 {
		return -1
	}
	return d.selected
}

// Text returns the selected option.
func (d *DropDown) Text() string {
	if i := d.Selected(); i >= 0 {
		return d.Options[i]
	}
	return ""
}

// Select sets the selection, clamped into range.
func (d *DropDown) Select(i int) {
	if len(d.Options) == 0 {
		d.selected = 0
		return
	}
	d.selected = min(max(i, 0), len(d.Options)-1)
}

func (d *DropDown) OnEnter() bool { return true }
func (d *DropDown) OnLeave() bool { return true }

func (d *DropDown) OnClick() bool {
	if len(d.Options) == 0 {
		return false
	}
	d.selected = (d.selected + 1) % len(d.Options)
	if d.OnSelect != nil {
		d.OnSelect(d)
	}
	return true
}
