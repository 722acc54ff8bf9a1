package ui

import (
	"strings"

	"github.com/atomicstack/shellmenu/internal/menu"
	"github.com/charmbracelet/lipgloss"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

// View implements tea.Model. The open chain is drawn as one panel per menu,
// joined left to right the way the compositor would overlap them.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	current := m.engine.Current()
	if current == nil {
		return m.styles.Footer.Render("no menu open")
	}

	panels := make([]string, 0, 4)
	for mn := current; mn != nil; mn = mn.Selection.Menu {
		panels = append(panels, m.renderMenu(mn))
	}

	view := lipgloss.JoinHorizontal(lipgloss.Top, panels...)
	footer := m.styles.Footer.Render("↑↓ move · → enter · ← back · ⏎ run · r reload · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, view, footer)
}

func (m *Model) renderMenu(mn *menu.Menu) string {
	width := mn.Width
	if width <= 0 {
		width = 20
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(clip(mn.Label, width)))
	b.WriteString("\n")
	for _, it := range mn.Items {
		b.WriteString(m.renderItem(mn, it, width))
		b.WriteString("\n")
	}

	border := m.styles.Border
	if mn.Selection.Item != nil {
		border = m.styles.ActiveBorder
	}
	panel := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(border.GetForeground()).
		Width(width).
		Render(strings.TrimSuffix(b.String(), "\n"))
	return panel
}

func (m *Model) renderItem(mn *menu.Menu, it *menu.Item, width int) string {
	if it.IsSeparator() {
		if it.Label != "" {
			return m.styles.Separator.Render(clip("─ "+it.Label+" ─", width))
		}
		return m.styles.Separator.Render(strings.Repeat("─", width))
	}

	label := it.Label
	if it.Submenu != nil || it.Execute != "" {
		label += " ›"
	}
	label = clip(label, width)
	if mn.Selection.Item == it {
		return m.styles.SelectedItem.Render(pad(label, width))
	}
	return m.styles.Item.Render(label)
}

func clip(text string, width int) string {
	if width <= 1 {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}

func pad(text string, width int) string {
	if delta := width - runewidth.StringWidth(text); delta > 0 {
		return text + strings.Repeat(" ", delta)
	}
	return text
}
