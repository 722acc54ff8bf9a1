package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/shellmenu/internal/action"
	"github.com/atomicstack/shellmenu/internal/layout"
	"github.com/atomicstack/shellmenu/internal/menu"
	"github.com/atomicstack/shellmenu/internal/scene"
	"github.com/atomicstack/shellmenu/internal/session"
	"github.com/atomicstack/shellmenu/internal/theme"
)

func newTestModel(t *testing.T) (*Model, *action.Recorder) {
	t.Helper()
	reg := menu.NewRegistry(scene.NewStub(), theme.DefaultMetrics())
	menu.EnsureDefaults(reg, 2)
	layout.PostProcess(reg)

	rec := &action.Recorder{}
	engine := session.New(reg, layout.Single(80, 24), rec)
	return NewModel(engine, 0, 0), rec
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestWindowSizeOpensRootMenu(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	current := m.engine.Current()
	if current == nil || current.ID != menu.RootMenuID {
		t.Fatalf("expected the root menu open, got %v", current)
	}
	if m.engine.InputMode() != session.InputMenu {
		t.Fatal("expected menu input mode")
	}
}

func TestNavigationKeysMoveHighlight(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	root := m.engine.Current()

	m.Update(key("down"))
	if root.Selection.Item == nil || root.Selection.Item.Label != "Reconfigure" {
		t.Fatalf("expected the first item highlighted, got %v", root.Selection.Item)
	}
	m.Update(key("down"))
	if root.Selection.Item.Label != "Exit" {
		t.Fatalf("expected Exit, got %q", root.Selection.Item.Label)
	}
	m.Update(key("up"))
	if root.Selection.Item.Label != "Reconfigure" {
		t.Fatalf("expected Reconfigure again, got %q", root.Selection.Item.Label)
	}
}

func TestEnterDispatchesAndQuits(t *testing.T) {
	m, rec := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	m.Update(key("down"))
	m.Update(key("down")) // Exit
	_, cmd := m.Update(key("enter"))

	if len(rec.Runs) != 1 || rec.Runs[0][0].Name != "Exit" {
		t.Fatalf("expected the Exit action dispatched, got %+v", rec.Runs)
	}
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if !m.quitting {
		t.Fatal("expected the model quitting")
	}
}

func TestEscapeClosesSessionAndQuits(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	_, cmd := m.Update(key("esc"))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if m.engine.InputMode() != session.InputPassthrough {
		t.Fatal("expected the session closed")
	}
}

func TestViewShowsOpenChain(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	view := m.View()
	if !strings.Contains(view, "Reconfigure") || !strings.Contains(view, "Exit") {
		t.Fatalf("expected the root items rendered:\n%s", view)
	}
}

func TestViewMarksSubmenuLinks(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	// Open the client menu instead: it carries a submenu link.
	client := m.engine.Registry().Lookup(menu.ClientMenuID)
	m.engine.OpenRoot(client, 2, 1, action.TriggerContext{Surface: "terminal"})

	view := m.View()
	if !strings.Contains(view, "Workspace ›") {
		t.Fatalf("expected the submenu indicator rendered:\n%s", view)
	}
}

func TestPadMeasuresDisplayWidth(t *testing.T) {
	// Three double-width glyphs occupy six cells, not three.
	got := pad("日本語", 10)
	if got != "日本語    " {
		t.Fatalf("expected four cells of padding, got %q", got)
	}
	if padded := pad("ascii", 8); padded != "ascii   " {
		t.Fatalf("unexpected ascii padding %q", padded)
	}
}

func TestReloadMsgRebuildsMenus(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	reloaded := false
	m.engine.Reload = func() {
		reloaded = true
		reg := m.engine.Registry()
		menu.EnsureDefaults(reg, 2)
		layout.PostProcess(reg)
	}
	m.Update(ReloadMsg{})

	if !reloaded {
		t.Fatal("expected the reload hook invoked")
	}
	if m.engine.Current() == nil {
		t.Fatal("expected the root menu re-opened after reload")
	}
}
