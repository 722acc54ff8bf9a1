package menu

import "github.com/atomicstack/shellmenu/internal/action"

// Well-known menu ids synthesized when no menu file declares them.
const (
	RootMenuID      = "root-menu"
	ClientMenuID    = "client-menu"
	WorkspaceMenuID = "workspaces"
)

// EnsureDefaults synthesizes the root and window-context menus when the
// loaded configuration did not declare them (or declared them empty). With a
// single workspace the workspaces submenu is hidden entirely.
func EnsureDefaults(reg *Registry, workspaces int) {
	ensureRootMenu(reg)
	ensureClientMenu(reg)
	if workspaces == 1 {
		HideSubmenu(reg, WorkspaceMenuID)
	}
}

func ensureRootMenu(reg *Registry) {
	m := reg.Lookup(RootMenuID)
	if m == nil {
		m = reg.Create(RootMenuID, "", nil, false)
	}
	if len(m.Items) > 0 {
		return
	}
	addActionItem(m, "Reconfigure", "Reconfigure")
	addActionItem(m, "Exit", "Exit")
}

func ensureClientMenu(reg *Registry) {
	m := reg.Lookup(ClientMenuID)
	if m == nil {
		m = reg.Create(ClientMenuID, "", nil, false)
	}
	if len(m.Items) > 0 {
		return
	}
	addActionItem(m, "Minimize", "Iconify")
	addActionItem(m, "Maximize", "ToggleMaximize")
	addActionItem(m, "Fullscreen", "ToggleFullscreen")
	addActionItem(m, "Roll up/down", "ToggleShade")
	addActionItem(m, "Decorations", "ToggleDecorations")
	addActionItem(m, "Always on Top", "ToggleAlwaysOnTop")

	ws := reg.Create(WorkspaceMenuID, "", m, false)
	// SendToDesktop follows the window by default, so moving also switches.
	addActionItem(ws, "Move left", "SendToDesktop", "to", "left")
	addActionItem(ws, "Move right", "SendToDesktop", "to", "right")
	ws.AddSeparator("")
	addActionItem(ws, "Always on Visible Workspace", "ToggleOmnipresent")

	if link := m.AddItem("Workspace", true); link != nil {
		link.Submenu = ws
	}

	addActionItem(m, "Close", "Close")
}

// HideSubmenu destroys every item across the registry that links to the menu
// with the given id and re-stacks the menus those items were removed from.
func HideSubmenu(reg *Registry, id string) {
	hide := reg.Lookup(id)
	if hide == nil {
		return
	}
	for _, m := range reg.Menus() {
		kept := m.Items[:0]
		removed := false
		for _, it := range m.Items {
			if it.Submenu == hide {
				it.destroy()
				removed = true
				continue
			}
			kept = append(kept, it)
		}
		m.Items = kept
		if removed {
			m.Restack()
		}
	}
}

func addActionItem(m *Menu, label, name string, args ...string) *Item {
	it := m.AddItem(label, false)
	if it == nil {
		return nil
	}
	a := action.New(name)
	if a == nil {
		return it
	}
	for i := 0; i+1 < len(args); i += 2 {
		a.AddArg(args[i], args[i+1])
	}
	it.Actions = append(it.Actions, a)
	return it
}
