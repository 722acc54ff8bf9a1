// Package ui is the terminal front-end: a Bubble Tea model that feeds
// keyboard input into the session engine and draws the open menu chain.
package ui

import (
	"github.com/atomicstack/shellmenu/internal/action"
	"github.com/atomicstack/shellmenu/internal/layout"
	"github.com/atomicstack/shellmenu/internal/menu"
	"github.com/atomicstack/shellmenu/internal/session"
	"github.com/atomicstack/shellmenu/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
)

// PipeMsg carries a completed pipemenu activation back onto the program
// goroutine.
type PipeMsg struct {
	Result session.PipeResult
}

// ReloadMsg asks for a full reconfigure, e.g. after the menu file changed on
// disk.
type ReloadMsg struct{}

// rootAnchor is where the root menu opens within the layout.
const (
	rootAnchorX = 2
	rootAnchorY = 1
)

// Model drives the session engine from terminal input.
type Model struct {
	engine *session.Engine

	width  int
	height int

	fixedWidth  int
	fixedHeight int

	styles *theme.Styles

	quitting bool
}

// NewModel wires a model around the engine. Non-zero width/height pin the
// layout instead of following the terminal.
func NewModel(engine *session.Engine, width, height int) *Model {
	return &Model{
		engine:      engine,
		fixedWidth:  width,
		fixedHeight: height,
		styles:      theme.Default(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.waitForPipe()
}

func (m *Model) waitForPipe() tea.Cmd {
	return func() tea.Msg {
		return PipeMsg{Result: <-m.engine.Results()}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.fixedWidth > 0 {
			m.width = m.fixedWidth
		}
		if m.fixedHeight > 0 {
			m.height = m.fixedHeight
		}
		m.engine.SetLayout(layout.Single(m.width, m.height))
		if m.engine.Current() == nil {
			m.openRoot()
		}
		return m, nil
	case PipeMsg:
		m.engine.HandlePipeResult(msg.Result)
		return m, m.waitForPipe()
	case ReloadMsg:
		m.engine.Reconfigure()
		m.openRoot()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.engine.Close()
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		m.engine.SelectPrevious()
	case "down", "j":
		m.engine.SelectNext()
	case "right", "l":
		m.engine.EnterSubmenu()
	case "left", "h":
		m.engine.LeaveSubmenu()
	case "enter":
		if m.engine.Activate() {
			m.quitting = true
			return m, tea.Quit
		}
		// A submenu-opening item: enter it instead.
		m.engine.EnterSubmenu()
	case "r":
		m.engine.Reconfigure()
		m.openRoot()
	}
	return m, nil
}

func (m *Model) openRoot() {
	root := m.engine.Registry().Lookup(menu.RootMenuID)
	if root == nil {
		return
	}
	m.engine.OpenRoot(root, rootAnchorX, rootAnchorY, action.TriggerContext{Surface: "terminal"})
}
