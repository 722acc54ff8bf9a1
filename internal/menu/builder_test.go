package menu

import (
	"strings"
	"testing"
)

func parseString(t *testing.T, reg *Registry, doc string) {
	t.Helper()
	if err := ParseDocument(reg, strings.NewReader(doc)); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
}

func TestRoundTripMinimalDocument(t *testing.T) {
	reg := newTestRegistry()
	parseString(t, reg, `<menu id="root-menu" label="Root"><item label="Exit"><action name="Exit"/></item></menu>`)

	if reg.Len() != 1 {
		t.Fatalf("expected exactly one menu, got %d", reg.Len())
	}
	m := reg.Lookup("root-menu")
	if m == nil {
		t.Fatal("expected root-menu to be registered")
	}
	if m.Label != "Root" {
		t.Fatalf("expected label Root, got %q", m.Label)
	}
	if len(m.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(m.Items))
	}
	it := m.Items[0]
	if !it.Selectable || it.Label != "Exit" {
		t.Fatalf("expected selectable Exit item, got %#v", it)
	}
	if len(it.Actions) != 1 || it.Actions[0].Name != "Exit" {
		t.Fatalf("expected single Exit action, got %#v", it.Actions)
	}
}

func TestWrappedDocumentAndNestedDefinition(t *testing.T) {
	reg := newTestRegistry()
	parseString(t, reg, `
<openbox_menu>
  <menu id="root-menu" label="Root">
    <menu id="apps" label="Applications">
      <item label="Terminal"><action name="Execute"><command>xterm</command></action></item>
    </menu>
    <item label="Exit"><action name="Exit"/></item>
  </menu>
</openbox_menu>`)

	root := reg.Lookup("root-menu")
	apps := reg.Lookup("apps")
	if root == nil || apps == nil {
		t.Fatal("expected both menus registered")
	}
	if apps.Parent != root {
		t.Fatal("expected nested menu to record its parent")
	}
	if len(root.Items) != 2 {
		t.Fatalf("expected link item plus exit item, got %d", len(root.Items))
	}
	link := root.Items[0]
	if link.Submenu != apps {
		t.Fatal("expected first root item to link to apps submenu")
	}
	cmd, ok := apps.Items[0].Actions[0].Arg("command")
	if !ok || cmd != "xterm" {
		t.Fatalf("expected command arg xterm, got %q/%v", cmd, ok)
	}
}

func TestToplevelMenuWithoutLabel(t *testing.T) {
	reg := newTestRegistry()
	parseString(t, reg, `<openbox_menu><menu id="root-menu"><item label="A"><action name="Exit"/></item></menu></openbox_menu>`)

	m := reg.Lookup("root-menu")
	if m == nil {
		t.Fatal("expected toplevel menu without label to be a definition")
	}
	if len(m.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(m.Items))
	}
}

func TestPipemenuLinkItem(t *testing.T) {
	reg := newTestRegistry()
	parseString(t, reg, `<menu id="root-menu" label="Root"><menu id="apps-pipe" label="Apps" execute="gen-apps"/></menu>`)

	root := reg.Lookup("root-menu")
	if len(root.Items) != 1 {
		t.Fatalf("expected one pipemenu item, got %d", len(root.Items))
	}
	it := root.Items[0]
	if it.Execute != "gen-apps" || it.PipeID != "apps-pipe" {
		t.Fatalf("unexpected pipemenu item %#v", it)
	}
	if it.Submenu != nil {
		t.Fatal("expected pipemenu submenu to stay unpopulated until activation")
	}
	if reg.Lookup("apps-pipe") != nil {
		t.Fatal("expected no menu registered for the pending pipemenu id")
	}
}

func TestPipemenuLinkWithoutIDGetsGeneratedOne(t *testing.T) {
	reg := newTestRegistry()
	parseString(t, reg, `<menu id="root-menu" label="Root"><menu label="Apps" execute="gen-apps"/></menu>`)

	it := reg.Lookup("root-menu").Items[0]
	if it.PipeID == "" {
		t.Fatal("expected a generated pipemenu id")
	}
}

func TestSubmenuReferenceResolvesAgainstEarlierMenus(t *testing.T) {
	reg := newTestRegistry()
	parseString(t, reg, `
<openbox_menu>
  <menu id="tools" label="Tools"><item label="Top"><action name="Execute"><command>top</command></action></item></menu>
  <menu id="root-menu" label="Root"><menu id="tools"/></menu>
</openbox_menu>`)

	root := reg.Lookup("root-menu")
	if len(root.Items) != 1 {
		t.Fatalf("expected one link item, got %d", len(root.Items))
	}
	link := root.Items[0]
	if link.Submenu != reg.Lookup("tools") {
		t.Fatal("expected reference to resolve to the tools menu")
	}
	if link.Label != "Tools" {
		t.Fatalf("expected link to take the referenced menu's label, got %q", link.Label)
	}
}

func TestSelfReferenceIsRejected(t *testing.T) {
	reg := newTestRegistry()
	parseString(t, reg, `<menu id="root-menu" label="Root"><item label="A"><action name="Exit"/></item><menu id="root-menu"/></menu>`)

	root := reg.Lookup("root-menu")
	if len(root.Items) != 1 {
		t.Fatalf("expected the self reference dropped, got %d items", len(root.Items))
	}
	for _, it := range root.Items {
		if it.Submenu == root {
			t.Fatal("expected no link back into the defining menu")
		}
	}
}

func TestReferenceToEnclosingMenuIsRejected(t *testing.T) {
	reg := newTestRegistry()
	parseString(t, reg, `
<openbox_menu>
  <menu id="outer" label="Outer">
    <menu id="inner" label="Inner">
      <menu id="outer"/>
    </menu>
  </menu>
</openbox_menu>`)

	inner := reg.Lookup("inner")
	if len(inner.Items) != 0 {
		t.Fatalf("expected the ancestor reference dropped, got %d items", len(inner.Items))
	}
}

func TestUnresolvedReferenceIsSkipped(t *testing.T) {
	reg := newTestRegistry()
	parseString(t, reg, `<menu id="root-menu" label="Root"><menu id="ghost"/></menu>`)

	if items := reg.Lookup("root-menu").Items; len(items) != 0 {
		t.Fatalf("expected unresolved reference to be dropped, got %d items", len(items))
	}
}

func TestPipemenuCannotLinkToStaticMenus(t *testing.T) {
	reg := newTestRegistry()
	parseString(t, reg, `<menu id="root-menu" label="Root"><item label="X"><action name="Exit"/></item></menu>`)

	pipe := reg.Create("pipe:1", "", nil, true)
	if err := ParseFragment(reg, pipe, strings.NewReader(`<menu id="root-menu"/>`)); err != nil {
		t.Fatalf("unexpected fragment error: %v", err)
	}
	if len(pipe.Items) != 0 {
		t.Fatalf("expected static link from pipemenu rejected, got %d items", len(pipe.Items))
	}
}

func TestFragmentWithBareItems(t *testing.T) {
	reg := newTestRegistry()
	pipe := reg.Create("pipe:1", "", nil, true)
	err := ParseFragment(reg, pipe, strings.NewReader(
		`<item label="One"><action name="Exit"/></item><separator/><item label="Two"><action name="Exit"/></item>`))
	if err != nil {
		t.Fatalf("unexpected fragment error: %v", err)
	}
	if len(pipe.Items) != 3 {
		t.Fatalf("expected three items, got %d", len(pipe.Items))
	}
	if !pipe.Items[1].IsSeparator() {
		t.Fatal("expected middle item to be a separator")
	}
}

func TestFragmentWithPipeWrapper(t *testing.T) {
	reg := newTestRegistry()
	pipe := reg.Create("pipe:1", "", nil, true)
	err := ParseFragment(reg, pipe, strings.NewReader(
		`<openbox_pipe_menu><item label="One"><action name="Exit"/></item></openbox_pipe_menu>`))
	if err != nil {
		t.Fatalf("unexpected fragment error: %v", err)
	}
	if len(pipe.Items) != 1 {
		t.Fatalf("expected the wrapper to be transparent, got %d items", len(pipe.Items))
	}
}

func TestInlineMenuInsideFragmentIsPipemenu(t *testing.T) {
	reg := newTestRegistry()
	pipe := reg.Create("pipe:1", "", nil, true)
	err := ParseFragment(reg, pipe, strings.NewReader(
		`<menu id="nested" label="Nested"><item label="A"><action name="Exit"/></item></menu>`))
	if err != nil {
		t.Fatalf("unexpected fragment error: %v", err)
	}
	nested := reg.Lookup("nested")
	if nested == nil || !nested.IsPipemenu {
		t.Fatalf("expected nested menu flagged as pipemenu, got %#v", nested)
	}
	if len(pipe.Items) != 1 || pipe.Items[0].Submenu != nested {
		t.Fatal("expected link item pointing at the nested menu")
	}
}

func TestCommandSupportsCDATA(t *testing.T) {
	reg := newTestRegistry()
	parseString(t, reg, `<menu id="root-menu" label="Root"><item label="Open"><action name="Execute"><command><![CDATA[xdg-open . && echo "<done>"]]></command></action></item></menu>`)

	cmd, ok := reg.Lookup("root-menu").Items[0].Actions[0].Arg("command")
	if !ok {
		t.Fatal("expected command arg")
	}
	if cmd != `xdg-open . && echo "<done>"` {
		t.Fatalf("expected CDATA passed through literally, got %q", cmd)
	}
}

func TestLegacyExecuteElement(t *testing.T) {
	reg := newTestRegistry()
	parseString(t, reg, `<menu id="root-menu" label="Root"><item label="Open"><action name="Execute"><execute>thunar</execute></action></item></menu>`)

	cmd, ok := reg.Lookup("root-menu").Items[0].Actions[0].Arg("command")
	if !ok || cmd != "thunar" {
		t.Fatalf("expected legacy execute folded into command, got %q/%v", cmd, ok)
	}
}

func TestActionFieldBeforeActionNameIsDropped(t *testing.T) {
	reg := newTestRegistry()
	parseString(t, reg, `<menu id="root-menu" label="Root"><item label="X"><action><command>oops</command></action></item></menu>`)

	it := reg.Lookup("root-menu").Items[0]
	if len(it.Actions) != 0 {
		t.Fatalf("expected no actions, got %#v", it.Actions)
	}
}

func TestActionBeforeItemLabelIsDropped(t *testing.T) {
	reg := newTestRegistry()
	parseString(t, reg, `<menu id="root-menu" label="Root"><item><action name="Exit"/></item></menu>`)

	if items := reg.Lookup("root-menu").Items; len(items) != 0 {
		t.Fatalf("expected no item without a label, got %d", len(items))
	}
}

func TestIconAttributeIsIgnored(t *testing.T) {
	reg := newTestRegistry()
	parseString(t, reg, `<menu id="root-menu" label="Root"><item label="X" icon="/tmp/x.png"><action name="Exit"/></item></menu>`)

	it := reg.Lookup("root-menu").Items[0]
	if it.Label != "X" || len(it.Actions) != 1 {
		t.Fatalf("expected icon ignored, got %#v", it)
	}
}

func TestSeparatorWithLabel(t *testing.T) {
	reg := newTestRegistry()
	parseString(t, reg, `<menu id="root-menu" label="Root"><separator label="Session"/><item label="Exit"><action name="Exit"/></item></menu>`)

	items := reg.Lookup("root-menu").Items
	if len(items) != 2 {
		t.Fatalf("expected separator plus item, got %d", len(items))
	}
	if !items[0].IsSeparator() || items[0].Label != "Session" {
		t.Fatalf("expected labelled separator, got %#v", items[0])
	}
}

func TestMalformedDocumentReturnsError(t *testing.T) {
	reg := newTestRegistry()
	err := ParseDocument(reg, strings.NewReader(`<menu id="root-menu" label="Root"><item`))
	if err == nil {
		t.Fatal("expected an error for truncated markup")
	}
}

func TestUnknownActionNameDropsFollowingArgs(t *testing.T) {
	reg := newTestRegistry()
	parseString(t, reg, `<menu id="root-menu" label="Root"><item label="X"><action name="Bogus"><command>no</command></action></item></menu>`)

	it := reg.Lookup("root-menu").Items[0]
	if len(it.Actions) != 0 {
		t.Fatalf("expected unknown action dropped, got %#v", it.Actions)
	}
}
