// Package menu holds the live menu tree: the registry of menus, the items
// they own and the declarative builder that constructs them from XML menu
// markup.
package menu

import (
	"github.com/atomicstack/shellmenu/internal/action"
	"github.com/atomicstack/shellmenu/internal/scene"
	runewidth "github.com/mattn/go-runewidth"
)

// Align is the open direction chosen for a menu relative to its anchor point.
type Align uint8

const (
	// OpenAuto lets the layout pass pick a direction from the available
	// monitor space.
	OpenAuto Align = 0

	OpenLeft   Align = 1 << 0
	OpenRight  Align = 1 << 1
	OpenTop    Align = 1 << 2
	OpenBottom Align = 1 << 3
)

const submenuArrow = "›"

// Selection tracks the highlighted item of a menu and the submenu it keeps
// open. Both are weak references into structures owned elsewhere.
type Selection struct {
	Item *Item
	Menu *Menu
}

// Menu is one vertical run of items. Menus are owned by the Registry; Parent
// and Selection hold weak references only.
type Menu struct {
	ID    string
	Label string

	Parent *Menu
	Items  []*Item

	Width      int
	Height     int
	ItemHeight int

	IsPipemenu bool
	Align      Align
	Selection  Selection

	// TriggeredBy identifies the surface the menu session was opened for.
	// Propagated from parent to submenu as the chain opens.
	TriggeredBy action.TriggerContext

	// Node is the visual root of the whole menu; nil when allocation failed.
	Node scene.Node

	reg *Registry
}

// Item is a single row of a menu. Exactly one role applies: separator
// (Selectable false), pipemenu link (Execute set), submenu link (Submenu set)
// or plain action item.
type Item struct {
	Parent *Menu
	Label  string

	Selectable bool

	// Submenu points at the linked menu; a weak reference resolved through
	// the registry, never an ownership claim.
	Submenu *Menu

	// Execute is the pipemenu generate command; PipeID the id its generated
	// menu will register under.
	Execute string
	PipeID  string

	Actions []*action.Action

	NativeWidth int
	Height      int
	Y           int

	// Visual handles: Tree is the item root, Normal/Selected the two
	// presentation states. Selected is nil for separators.
	Tree     scene.Node
	Normal   scene.Node
	Selected scene.Node
}

// IsSeparator reports whether the item is a non-selectable separator row.
func (it *Item) IsSeparator() bool {
	return !it.Selectable
}

// AddItem appends a selectable item. showArrow widens the measured text by
// the submenu indicator. Returns nil when the visual nodes cannot be
// allocated; callers skip the item and continue.
func (m *Menu) AddItem(label string, showArrow bool) *Item {
	metrics := m.reg.metrics
	if m.ItemHeight == 0 {
		m.ItemHeight = metrics.ItemHeight + 2*metrics.ItemPaddingY
	}

	it := &Item{
		Parent:     m,
		Label:      label,
		Selectable: true,
		Height:     m.ItemHeight,
	}
	it.NativeWidth = runewidth.StringWidth(label)
	if showArrow {
		it.NativeWidth += runewidth.StringWidth(submenuArrow)
	}

	it.Tree = m.reg.scn.NewNode(m.Node)
	if it.Tree == nil {
		return nil
	}
	it.Normal = m.reg.scn.NewNode(it.Tree)
	it.Selected = m.reg.scn.NewNode(it.Tree)
	if it.Normal == nil || it.Selected == nil {
		it.Tree.Destroy()
		return nil
	}
	it.Normal.SetEnabled(true)
	it.Selected.SetEnabled(false)
	it.Normal.Resize(m.Width, it.Height)
	it.Selected.Resize(m.Width, it.Height)

	it.Y = m.Height
	it.Tree.SetPosition(0, it.Y)
	m.Height += it.Height
	m.Items = append(m.Items, it)
	return it
}

// AddSeparator appends a non-selectable separator row, optionally labelled.
func (m *Menu) AddSeparator(label string) *Item {
	metrics := m.reg.metrics
	it := &Item{
		Parent: m,
		Label:  label,
		Height: metrics.SeparatorHeight(),
	}

	it.Tree = m.reg.scn.NewNode(m.Node)
	if it.Tree == nil {
		return nil
	}
	it.Normal = m.reg.scn.NewNode(it.Tree)
	if it.Normal == nil {
		it.Tree.Destroy()
		return nil
	}
	it.Normal.SetEnabled(true)
	width := m.Width - 2*metrics.SeparatorPaddingWidth
	if width < 0 {
		width = 0
	}
	it.Normal.Resize(width, metrics.SeparatorLineThickness)

	it.Y = m.Height
	it.Tree.SetPosition(0, it.Y)
	m.Height += it.Height
	m.Items = append(m.Items, it)
	return it
}

// SetSelection highlights the given item, or clears the highlight when nil.
// The previous highlight's visual state is restored first.
func (m *Menu) SetSelection(it *Item) {
	if prev := m.Selection.Item; prev != nil {
		prev.Normal.SetEnabled(true)
		if prev.Selected != nil {
			prev.Selected.SetEnabled(false)
		}
	}
	if it != nil {
		it.Normal.SetEnabled(false)
		if it.Selected != nil {
			it.Selected.SetEnabled(true)
		}
	}
	m.Selection.Item = it
}

// Restack recomputes every item's vertical offset after items were removed.
func (m *Menu) Restack() {
	m.Height = 0
	for _, it := range m.Items {
		it.Y = m.Height
		it.Tree.SetPosition(0, it.Y)
		m.Height += it.Height
	}
}

func (it *Item) destroy() {
	if it.Tree != nil {
		it.Tree.Destroy()
	}
	it.Actions = nil
	it.Submenu = nil
}
