package layout

import (
	"github.com/atomicstack/shellmenu/internal/logging/events"
	"github.com/atomicstack/shellmenu/internal/menu"
	"github.com/atomicstack/shellmenu/internal/theme"
)

// Configure places m at the candidate top-left (x, y) with the requested
// alignment and recurses into every populated submenu. depth is 0 for the
// menu anchoring the chain; submenus re-anchor differently when flipped
// upwards. When no monitor resolves the anchor the menu and its submenus are
// left unpositioned, which is logged and non-fatal.
func Configure(m *menu.Menu, x, y int, align menu.Align, lay *Layout, metrics theme.Metrics, depth int) {
	mon := lay.MonitorAt(x, y)
	if mon == nil {
		events.Layout.Unplaceable(m.ID, m.Label)
		return
	}
	area := mon.UsableArea
	// Monitor-local coordinates.
	ox := x - area.X
	oy := y - area.Y

	if align == menu.OpenAuto {
		if ox+FullWidth(m, metrics) > area.Width {
			align = menu.OpenLeft
		} else {
			align = menu.OpenRight
		}
	}

	if oy+m.Height > area.Height {
		align &^= menu.OpenBottom
		align |= menu.OpenTop
	} else {
		align &^= menu.OpenTop
		align |= menu.OpenBottom
	}

	if align&menu.OpenLeft != 0 {
		x -= m.Width - metrics.OverlapX
	}
	if align&menu.OpenTop != 0 {
		y -= m.Height
		if depth > 0 {
			// Submenus anchor their bottom-left corner to the
			// triggering item instead.
			y += m.ItemHeight
		}
	}
	if m.Node != nil {
		m.Node.SetPosition(x, y)
	}

	// Pipemenus spliced in later inherit this alignment.
	m.Align = align

	for _, it := range m.Items {
		if it.Submenu == nil {
			continue
		}
		sx, sy := SubmenuPosition(it, align, metrics)
		Configure(it.Submenu, sx, sy, align, lay, metrics, depth+1)
	}
}

// SubmenuPosition computes the anchor for the submenu opened by item: the
// parent's top-right corner (top-left when opening leftwards) offset by the
// item's vertical position, pulled back by the theme overlap so adjacent
// menus appear connected.
func SubmenuPosition(it *menu.Item, align menu.Align, metrics theme.Metrics) (int, int) {
	m := it.Parent
	x, y := 0, 0
	if m.Node != nil {
		x, y = m.Node.Position()
	}
	if align&menu.OpenRight != 0 {
		x += m.Width - metrics.OverlapX
	}
	y += it.Y - metrics.OverlapY
	return x, y
}
