package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nodecanvas/internal/sample"
	"github.com/matzehuels/nodecanvas/pkg/arrange"
	"github.com/matzehuels/nodecanvas/pkg/config"
	"github.com/matzehuels/nodecanvas/pkg/geom"
	"github.com/matzehuels/nodecanvas/pkg/interact"
	"github.com/matzehuels/nodecanvas/pkg/render"
	"github.com/matzehuels/nodecanvas/pkg/render/sink"
	"github.com/matzehuels/nodecanvas/pkg/render/skins"
)

const (
	// doubleClickTime is the longest gap between two clicks on the same
	// cell that still counts as a double-click.
	doubleClickTime = 400 * time.Millisecond

	// wheelStep is the zoom delta of one wheel notch or +/- key press.
	wheelStep = 120.0
)

// demoCommand creates the demo command: the sample scene edited with the
// mouse in the terminal.
func (c *CLI) demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Edit the sample scene in the terminal",
		Long: `Edit the sample scene in the terminal with the mouse.

Drag nodes by their title, drag from a connector to another to connect,
drag a connection away from its input to detach it, and double-click a
title to collapse a node. Keys:

  delete   remove the focused node or connection
  l        toggle connection names
  a        auto-arrange with graphviz
  1-3      drop a new node (entry, color, texture) at the pointer
  + -      zoom
  q        quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return runDemo(cmd.Context(), cfg)
		},
	}
}

func runDemo(ctx context.Context, cfg *config.Config) error {
	m, err := newDemoModel(ctx, cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// =============================================================================
// demoModel - terminal host
// =============================================================================

// demoModel hosts a scene in a bubbletea program. Terminal cells map to
// view space at sink.CellWidth x sink.CellHeight; the last row is the
// status bar. Every event runs on the update loop, so the scene and the
// controller are only touched from one goroutine.
type demoModel struct {
	ctx context.Context

	canvas *sink.TermCanvas
	frame  *render.Frame
	view   *interact.View
	ctrl   *interact.Controller

	pointer   geom.Point
	lastClick time.Time
	lastCell  [2]int
	status    string
	now       func() time.Time
}

func newDemoModel(ctx context.Context, cfg *config.Config) (*demoModel, error) {
	theme, err := cfg.RenderTheme()
	if err != nil {
		return nil, err
	}
	// The sample scene logs through hooks; keep that off the alt screen.
	quiet := log.New(io.Discard)
	s := sample.New(sample.Options{Logger: quiet, Compatibility: cfg.CompatibilityPolicy()})

	canvas := sink.NewTermCanvas(80, 23, theme.Background)
	frame := &render.Frame{
		Canvas:     canvas,
		Registry:   skins.NewRegistry(),
		Theme:      theme,
		Ribbon:     cfg.RibbonStyle(),
		ShowLabels: cfg.Canvas.ShowLabels,
	}
	view := interact.NewView(geom.Sz(80*sink.CellWidth, 23*sink.CellHeight))
	m := &demoModel{
		ctx:    ctx,
		canvas: canvas,
		frame:  frame,
		view:   view,
		ctrl:   interact.NewController(s, view, interact.WithLogger(quiet), interact.WithMeasurer(frame.Measurer())),
		now:    time.Now,
	}
	if cfg.Canvas.Arrange {
		m.arrange()
	}
	return m, nil
}

func (m *demoModel) Init() tea.Cmd { return nil }

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		return m, m.key(msg.String())
	case tea.MouseMsg:
		m.mouse(msg)
	}
	return m, nil
}

// resize fits the canvas to the terminal, leaving the last row for the
// status bar.
func (m *demoModel) resize(cols, rows int) {
	rows = max(rows-1, 1)
	m.canvas.Resize(cols, rows)
	m.view.Viewport = geom.Sz(float64(cols)*sink.CellWidth, float64(rows)*sink.CellHeight)
}

func (m *demoModel) key(k string) tea.Cmd {
	switch k {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "delete", "backspace":
		if m.ctrl.KeyUp(interact.KeyDelete) {
			m.status = "removed"
		}
	case "l":
		m.frame.ShowLabels = !m.frame.ShowLabels
	case "a":
		m.arrange()
	case "+", "=":
		m.ctrl.Wheel(wheelStep)
	case "-":
		m.ctrl.Wheel(-wheelStep)
	default:
		if len(k) == 1 && k[0] >= '1' && int(k[0]-'1') < len(sample.Palette) {
			m.drop(int(k[0] - '1'))
		}
	}
	return nil
}

// drop adds a palette node at the pointer through the controller's drag
// and drop path.
func (m *demoModel) drop(i int) {
	entry := sample.Palette[i]
	if !m.ctrl.DragEnter(entry.New(nil)) {
		m.status = "drop refused"
		return
	}
	m.ctrl.Drop(m.pointer)
	m.status = "added " + entry.Name
}

func (m *demoModel) arrange() {
	res, err := arrange.Arrange(m.ctx, m.ctrl.Scene(), m.frame.Measurer(), arrange.Options{})
	if err != nil {
		m.status = StyleWarning.Render("arrange: " + err.Error())
		return
	}
	m.status = fmt.Sprintf("arranged, %d moved", res.Moved)
}

func (m *demoModel) mouse(msg tea.MouseMsg) {
	p := sink.CellCenter(msg.X, msg.Y)
	m.pointer = p
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Action == tea.MouseActionPress {
			m.ctrl.Wheel(wheelStep)
		}
		return
	case tea.MouseButtonWheelDown:
		if msg.Action == tea.MouseActionPress {
			m.ctrl.Wheel(-wheelStep)
		}
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.status = ""
			m.ctrl.Press(p)
		}
	case tea.MouseActionMotion:
		m.ctrl.Move(p)
	case tea.MouseActionRelease:
		m.release(p, [2]int{msg.X, msg.Y})
	}
}

// release ends the gesture and synthesizes the clicks a terminal does not
// report.
func (m *demoModel) release(p geom.Point, cell [2]int) {
	m.ctrl.Release(p)
	if m.ctrl.Moved() {
		m.lastClick = time.Time{}
		return
	}
	m.ctrl.Click(p)

	now := m.now()
	if !m.lastClick.IsZero() && cell == m.lastCell && now.Sub(m.lastClick) <= doubleClickTime {
		m.ctrl.DoubleClick(p)
		m.lastClick = time.Time{}
		return
	}
	m.lastClick, m.lastCell = now, cell
}

func (m *demoModel) View() string {
	var preview *render.Preview
	if p, ok := m.ctrl.PendingConnection(); ok {
		pv := render.Preview(p)
		preview = &pv
	}
	m.canvas.Reset()
	m.frame.Paint(m.ctrl.Scene(), m.view.Forward(), preview)
	return m.canvas.String() + "\n" + m.statusLine()
}

func (m *demoModel) statusLine() string {
	s := m.ctrl.Scene()
	parts := []string{
		StyleTitle.Render(appName),
		fmt.Sprintf("%d nodes", s.Len()),
		fmt.Sprintf("%d connections", len(s.Connections())),
		fmt.Sprintf("zoom %.2f", m.view.Zoom()),
	}
	if d := m.ctrl.Dragging(); d != interact.DragNone {
		parts = append(parts, "drag "+d.String())
	}
	if f := s.Focus(); !f.IsNone() {
		parts = append(parts, "focus "+f.String())
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	cols, _ := m.canvas.Size()
	return styleStatusBar.Width(cols).Render(strings.Join(parts, " · "))
}
