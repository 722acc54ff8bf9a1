package theme

import "github.com/charmbracelet/lipgloss"

// Metrics describes the geometry values consumed by the layout passes. All
// values are in the abstract units of the monitor layout (cells for the
// terminal front-end).
type Metrics struct {
	MenuMinWidth int
	MenuMaxWidth int

	ItemPaddingX int
	ItemPaddingY int
	ItemHeight   int

	SeparatorLineThickness int
	SeparatorPaddingWidth  int
	SeparatorPaddingHeight int

	// Adjacent menus are pulled together by the overlap so a chain of open
	// submenus reads as one connected surface.
	OverlapX int
	OverlapY int
}

// DefaultMetrics returns the standard menu geometry.
func DefaultMetrics() Metrics {
	return Metrics{
		MenuMinWidth:           20,
		MenuMaxWidth:           80,
		ItemPaddingX:           2,
		ItemPaddingY:           0,
		ItemHeight:             1,
		SeparatorLineThickness: 1,
		SeparatorPaddingWidth:  1,
		SeparatorPaddingHeight: 0,
		OverlapX:               1,
		OverlapY:               0,
	}
}

// SeparatorHeight returns the full row height of a separator item.
func (m Metrics) SeparatorHeight() int {
	return m.SeparatorLineThickness + 2*m.SeparatorPaddingHeight
}

// Styles describes reusable Lip Gloss styles shared across the front-end.
type Styles struct {
	Item         *lipgloss.Style
	SelectedItem *lipgloss.Style
	Separator    *lipgloss.Style
	Border       *lipgloss.Style
	ActiveBorder *lipgloss.Style
	Header       *lipgloss.Style
	Footer       *lipgloss.Style
	Error        *lipgloss.Style
}

var defaultStyles = Styles{
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Separator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	Border: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	ActiveBorder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
