package menu

import "testing"

func TestEnsureDefaultsSynthesizesMenus(t *testing.T) {
	reg := newTestRegistry()
	EnsureDefaults(reg, 2)

	root := reg.Lookup(RootMenuID)
	if root == nil {
		t.Fatal("expected a synthesized root menu")
	}
	if len(root.Items) != 2 {
		t.Fatalf("expected Reconfigure and Exit, got %d items", len(root.Items))
	}
	if root.Items[0].Actions[0].Name != "Reconfigure" || root.Items[1].Actions[0].Name != "Exit" {
		t.Fatal("unexpected root menu actions")
	}

	client := reg.Lookup(ClientMenuID)
	if client == nil {
		t.Fatal("expected a synthesized client menu")
	}
	var wsLink *Item
	for _, it := range client.Items {
		if it.Submenu != nil {
			wsLink = it
		}
	}
	if wsLink == nil || wsLink.Submenu != reg.Lookup(WorkspaceMenuID) {
		t.Fatal("expected a workspace submenu link in the client menu")
	}
}

func TestEnsureDefaultsKeepsDeclaredRootMenu(t *testing.T) {
	reg := newTestRegistry()
	declared := reg.Create(RootMenuID, "Root", nil, false)
	addActionItem(declared, "Bye", "Exit")

	EnsureDefaults(reg, 2)

	root := reg.Lookup(RootMenuID)
	if root != declared {
		t.Fatal("expected the declared root menu to survive")
	}
	if len(root.Items) != 1 || root.Items[0].Label != "Bye" {
		t.Fatalf("expected declared items untouched, got %d", len(root.Items))
	}
}

func TestEnsureDefaultsFillsDeclaredButEmptyRootMenu(t *testing.T) {
	reg := newTestRegistry()
	reg.Create(RootMenuID, "Root", nil, false)

	EnsureDefaults(reg, 2)

	if len(reg.Lookup(RootMenuID).Items) != 2 {
		t.Fatal("expected default entries added to an empty declared root menu")
	}
}

func TestSingleWorkspaceHidesWorkspaceSubmenu(t *testing.T) {
	reg := newTestRegistry()
	EnsureDefaults(reg, 1)

	client := reg.Lookup(ClientMenuID)
	for _, it := range client.Items {
		if it.Submenu == reg.Lookup(WorkspaceMenuID) {
			t.Fatal("expected the workspace link removed with one workspace")
		}
	}
}

func TestHideSubmenuRestacksItems(t *testing.T) {
	reg := newTestRegistry()
	m := reg.Create("m", "M", nil, false)
	sub := reg.Create("sub", "Sub", m, false)
	addActionItem(m, "First", "Exit")
	if link := m.AddItem("Sub", true); link != nil {
		link.Submenu = sub
	}
	addActionItem(m, "Last", "Exit")
	heightBefore := m.Height

	HideSubmenu(reg, "sub")

	if len(m.Items) != 2 {
		t.Fatalf("expected the link removed, got %d items", len(m.Items))
	}
	if m.Height >= heightBefore {
		t.Fatalf("expected height to shrink, %d -> %d", heightBefore, m.Height)
	}
	if m.Items[1].Y != m.Items[0].Height {
		t.Fatal("expected surviving items re-stacked")
	}
}
