// Package session drives keyboard and pointer navigation over the live menu
// tree: the chain of open menus, per-level selection state and the pipemenu
// pipeline that augments the tree while it is displayed.
package session

import (
	"time"

	"github.com/atomicstack/shellmenu/internal/action"
	"github.com/atomicstack/shellmenu/internal/layout"
	"github.com/atomicstack/shellmenu/internal/logging/events"
	"github.com/atomicstack/shellmenu/internal/menu"
	"github.com/google/uuid"
)

// InputMode reports where input should be routed while the engine runs.
type InputMode int

const (
	// InputPassthrough: no menu session is open; input belongs elsewhere.
	InputPassthrough InputMode = iota
	// InputMenu: a session is open and input drives the engine.
	InputMenu
)

// Engine is the navigation and selection state machine. All methods must be
// called from the single control goroutine; the only concurrency is the
// pipemenu reader, whose results re-enter through HandlePipeResult.
type Engine struct {
	reg *menu.Registry
	lay *layout.Layout

	dispatcher action.Dispatcher

	// Reload rebuilds the registry contents on Reconfigure.
	Reload func()

	current  *menu.Menu
	selected *menu.Item

	awaitingPipe bool
	pipe         *pipeContext
	results      chan PipeResult

	inputMode InputMode
	session   string

	pipeTimeout time.Duration
}

// New returns an engine navigating the given registry across the monitor
// layout, handing activated action lists to the dispatcher.
func New(reg *menu.Registry, lay *layout.Layout, dispatcher action.Dispatcher) *Engine {
	return &Engine{
		reg:         reg,
		lay:         lay,
		dispatcher:  dispatcher,
		results:     make(chan PipeResult, 4),
		pipeTimeout: pipeTimeout,
	}
}

// Registry returns the registry the engine navigates.
func (e *Engine) Registry() *menu.Registry {
	return e.reg
}

// SetLayout swaps the monitor layout, e.g. after a resize.
func (e *Engine) SetLayout(lay *layout.Layout) {
	e.lay = lay
}

// Current returns the root menu of the open session, or nil.
func (e *Engine) Current() *menu.Menu {
	return e.current
}

// InputMode returns the current input routing mode.
func (e *Engine) InputMode() InputMode {
	return e.inputMode
}

// AwaitingPipemenu reports whether a pipemenu activation is outstanding.
func (e *Engine) AwaitingPipemenu() bool {
	return e.awaitingPipe
}

// OpenRoot opens m as a new session anchored at (x, y) with automatic
// alignment. An already-open session is closed first, discarding its cached
// pipemenu subtrees.
func (e *Engine) OpenRoot(m *menu.Menu, x, y int, trigger action.TriggerContext) {
	if e.current != nil {
		e.closeMenu(e.current)
		e.reg.DestroyPipemenus()
	}
	e.session = uuid.NewString()
	trigger.Session = e.session
	m.TriggeredBy = trigger

	closeAllSubmenus(m)
	m.SetSelection(nil)
	layout.Configure(m, x, y, menu.OpenAuto, e.lay, e.reg.Metrics(), 0)
	if m.Node != nil {
		m.Node.SetEnabled(true)
	}
	e.current = m
	e.selected = nil
	e.inputMode = InputMenu
	events.Session.OpenRoot(e.session, m.ID, x, y)
}

// Close ends the open session: visuals are disabled down the chain, highlight
// state cleared, any outstanding pipemenu interrupted and cached pipemenu
// subtrees destroyed.
func (e *Engine) Close() {
	e.abortPipe()
	if e.current == nil {
		return
	}
	e.closeMenu(e.current)
	e.current = nil
	e.selected = nil
	e.inputMode = InputPassthrough
	events.Session.Close(e.session, countPipemenus(e.reg))
	e.reg.DestroyPipemenus()
}

// Reconfigure tears the whole menu set down and rebuilds it via Reload.
func (e *Engine) Reconfigure() {
	e.Close()
	e.reg.DestroyFrom(nil)
	if e.Reload != nil {
		e.Reload()
	}
	events.Session.Reconfigure()
}

// SelectItem processes a new highlight for it. Idempotent while it is
// already the processed selection or while a pipemenu is outstanding.
func (e *Engine) SelectItem(it *menu.Item) {
	if it == nil || it == e.selected {
		return
	}
	if e.awaitingPipe {
		return
	}
	e.selected = it

	if !it.Selectable {
		return
	}
	parent := it.Parent
	parent.SetSelection(it)
	events.Session.Select(parent.ID, it.Label)
	if parent.Selection.Menu != nil {
		e.closeMenu(parent.Selection.Menu)
	}

	if it.Execute != "" && it.Submenu == nil {
		// Generated asynchronously; the submenu link is set once the
		// subprocess output has been parsed.
		e.startPipemenu(it)
		return
	}

	if it.Submenu != nil {
		it.Submenu.TriggeredBy = parent.TriggeredBy
		it.Submenu.Parent = parent
		if it.Submenu.Node != nil {
			it.Submenu.Node.SetEnabled(true)
		}
	}
	parent.Selection.Menu = it.Submenu
}

// SelectNext moves the highlight to the next selectable sibling, wrapping at
// the end.
func (e *Engine) SelectNext() {
	e.selectSibling(true)
}

// SelectPrevious moves the highlight to the previous selectable sibling,
// wrapping at the start.
func (e *Engine) SelectPrevious() {
	e.selectSibling(false)
}

func (e *Engine) selectSibling(forward bool) {
	m := e.selectionLeaf()
	if m == nil {
		return
	}
	items := m.Items
	if len(items) == 0 {
		return
	}

	start := -1
	if m.Selection.Item != nil {
		start = indexOfItem(items, m.Selection.Item)
	}
	step := 1
	if !forward {
		step = len(items) - 1
	}
	// Scan all siblings once, skipping separators; no selectable sibling
	// means no-op.
	idx := start
	for i := 0; i < len(items); i++ {
		if idx < 0 && !forward {
			idx = 0
		}
		idx = (idx + step + len(items)) % len(items)
		if items[idx].Selectable && idx != start {
			e.SelectItem(items[idx])
			return
		}
	}
}

// EnterSubmenu selects the first selectable item of the submenu attached to
// the current selection.
func (e *Engine) EnterSubmenu() {
	m := e.selectionLeaf()
	if m == nil || m.Selection.Menu == nil {
		return
	}
	for _, it := range m.Selection.Menu.Items {
		if it.Selectable {
			e.SelectItem(it)
			return
		}
	}
}

// LeaveSubmenu re-selects the highlighted item one level up, collapsing focus
// without closing visuals.
func (e *Engine) LeaveSubmenu() {
	m := e.selectionLeaf()
	if m == nil || m.Parent == nil || m.Parent.Selection.Item == nil {
		return
	}
	e.selected = nil
	e.SelectItem(m.Parent.Selection.Item)
}

// Activate runs the currently selected item, if any. Reports whether an
// action list was dispatched.
func (e *Engine) Activate() bool {
	m := e.selectionLeaf()
	if m == nil || m.Selection.Item == nil {
		return false
	}
	return e.ActivateItem(m.Selection.Item)
}

// ActivateItem executes it: separators and submenu-opening items are no-ops;
// otherwise the session closes, input returns to passthrough and the action
// list is dispatched with the chain's triggering context. Cached pipemenu
// subtrees are discarded after dispatch.
func (e *Engine) ActivateItem(it *menu.Item) bool {
	if it == nil || it.Submenu != nil || !it.Selectable {
		return false
	}

	// Close before dispatching so the action applies to a shell with the
	// menu already gone.
	trigger := it.Parent.TriggeredBy
	e.abortPipe()
	if e.current != nil {
		e.closeMenu(e.current)
	}
	e.inputMode = InputPassthrough
	events.Session.Activate(it.Parent.ID, it.Label, len(it.Actions))
	e.dispatcher.Run(trigger, it.Actions)

	e.current = nil
	e.selected = nil
	e.reg.DestroyPipemenus()
	return true
}

// PointerMotion processes pointer-driven selection of an item.
func (e *Engine) PointerMotion(it *menu.Item) {
	if it == nil {
		return
	}
	e.SelectItem(it)
}

// PointerClick activates the item under the pointer.
func (e *Engine) PointerClick(it *menu.Item) bool {
	return e.ActivateItem(it)
}

// selectionLeaf returns the deepest open menu that does not yet have a
// highlighted item in its own active submenu, or the root itself.
func (e *Engine) selectionLeaf() *menu.Menu {
	m := e.current
	if m == nil {
		return nil
	}
	for m.Selection.Menu != nil {
		if m.Selection.Menu.Selection.Item == nil {
			return m
		}
		m = m.Selection.Menu
	}
	return m
}

func (e *Engine) closeMenu(m *menu.Menu) {
	if m.Node != nil {
		m.Node.SetEnabled(false)
	}
	m.SetSelection(nil)
	if m.Selection.Menu != nil {
		e.closeMenu(m.Selection.Menu)
		m.Selection.Menu = nil
	}
}

func closeAllSubmenus(m *menu.Menu) {
	for _, it := range m.Items {
		if it.Submenu != nil {
			if it.Submenu.Node != nil {
				it.Submenu.Node.SetEnabled(false)
			}
			closeAllSubmenus(it.Submenu)
		}
	}
	m.Selection.Menu = nil
}

func indexOfItem(items []*menu.Item, target *menu.Item) int {
	for i, it := range items {
		if it == target {
			return i
		}
	}
	return -1
}

func countPipemenus(reg *menu.Registry) int {
	count := 0
	for _, m := range reg.Menus() {
		if m.IsPipemenu {
			count++
		}
	}
	return count
}
