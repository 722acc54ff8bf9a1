package layout

import (
	"github.com/atomicstack/shellmenu/internal/menu"
	"github.com/atomicstack/shellmenu/internal/theme"
)

// UpdateWidth runs the width pass on one menu: the widest item's native
// width, clamped to the theme maximum and floored at the theme minimum, plus
// horizontal padding. Every item's visual surfaces are resized to the result.
func UpdateWidth(m *menu.Menu, metrics theme.Metrics) {
	maxWidth := metrics.MenuMinWidth
	for _, it := range m.Items {
		w := it.NativeWidth
		if w > metrics.MenuMaxWidth {
			w = metrics.MenuMaxWidth
		}
		if w > maxWidth {
			maxWidth = w
		}
	}
	m.Width = maxWidth + 2*metrics.ItemPaddingX

	for _, it := range m.Items {
		if it.IsSeparator() {
			width := m.Width - 2*metrics.SeparatorPaddingWidth
			if width < 0 {
				width = 0
			}
			if it.Normal != nil {
				it.Normal.Resize(width, metrics.SeparatorLineThickness)
			}
			continue
		}
		if it.Normal != nil {
			it.Normal.Resize(m.Width, it.Height)
		}
		if it.Selected != nil {
			it.Selected.Resize(m.Width, it.Height)
		}
	}
}

// PostProcess runs the width pass over every live menu.
func PostProcess(reg *menu.Registry) {
	for _, m := range reg.Menus() {
		UpdateWidth(m, reg.Metrics())
	}
}

// FullWidth returns the width of the menu plus its widest chain of open
// submenus, the value the auto-alignment decision is based on.
func FullWidth(m *menu.Menu, metrics theme.Metrics) int {
	width := m.Width - metrics.OverlapX
	maxChild := 0
	for _, it := range m.Items {
		if it.Submenu == nil {
			continue
		}
		if w := FullWidth(it.Submenu, metrics); w > maxChild {
			maxChild = w
		}
	}
	return width + maxChild
}
