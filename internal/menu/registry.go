package menu

import (
	"github.com/atomicstack/shellmenu/internal/logging/events"
	"github.com/atomicstack/shellmenu/internal/scene"
	"github.com/atomicstack/shellmenu/internal/theme"
)

// Registry owns every live menu in registration order. Ids are unique: a
// colliding registration is logged and the earlier entry stays authoritative
// for lookups, though the newcomer is still constructed so its subtree can be
// parsed to completion.
type Registry struct {
	scn     scene.Scene
	metrics theme.Metrics

	menus []*Menu
	index map[string]*Menu
}

// NewRegistry returns an empty registry allocating visuals from scn.
func NewRegistry(scn scene.Scene, metrics theme.Metrics) *Registry {
	return &Registry{
		scn:     scn,
		metrics: metrics,
		index:   make(map[string]*Menu),
	}
}

// Metrics returns the geometry values menus in this registry are built with.
func (r *Registry) Metrics() theme.Metrics {
	return r.metrics
}

// Create registers a new menu. An empty label falls back to the id. parent
// may be nil for a root menu; pipemenu marks menus generated by a pipemenu
// subprocess.
func (r *Registry) Create(id, label string, parent *Menu, pipemenu bool) *Menu {
	if _, exists := r.index[id]; exists {
		events.Menu.DuplicateID(id)
	}
	if label == "" {
		label = id
	}
	m := &Menu{
		ID:         id,
		Label:      label,
		Parent:     parent,
		IsPipemenu: pipemenu,
		Width:      r.metrics.MenuMinWidth,
		reg:        r,
	}
	m.Node = r.scn.NewNode(nil)
	if m.Node != nil {
		m.Node.SetEnabled(false)
	}
	r.menus = append(r.menus, m)
	if _, exists := r.index[id]; !exists {
		r.index[id] = m
	}
	return m
}

// Lookup returns the menu registered under id, or nil.
func (r *Registry) Lookup(id string) *Menu {
	if id == "" {
		return nil
	}
	return r.index[id]
}

// Menus returns the live menus in registration order. The returned slice is
// shared; callers must not mutate it.
func (r *Registry) Menus() []*Menu {
	return r.menus
}

// Len returns the number of live menus.
func (r *Registry) Len() int {
	return len(r.menus)
}

// Destroy removes m from the registry. Every weak reference elsewhere that
// points at m (item submenu links and, for pipemenus, child parent links) is
// cleared before m's own items, actions and visual root are released.
func (r *Registry) Destroy(m *Menu) {
	r.clearReferencesTo(m)

	for _, it := range m.Items {
		it.destroy()
	}
	m.Items = nil
	m.Selection = Selection{}

	if m.Node != nil {
		m.Node.Destroy()
		m.Node = nil
	}
	r.unregister(m)
}

// DestroyFrom destroys m and every menu registered after it. A nil argument
// destroys everything.
func (r *Registry) DestroyFrom(from *Menu) {
	destroying := from == nil
	// Snapshot: Destroy mutates r.menus underneath us.
	live := append([]*Menu(nil), r.menus...)
	for _, m := range live {
		if m == from {
			destroying = true
		}
		if !destroying {
			continue
		}
		r.Destroy(m)
	}
}

// DestroyPipemenus releases every pipemenu-generated subtree. Called when a
// menu session closes; pipemenus are cached for the whole session so repeated
// hovers do not re-spawn their processes.
func (r *Registry) DestroyPipemenus() {
	live := append([]*Menu(nil), r.menus...)
	for _, m := range live {
		if m.IsPipemenu {
			r.Destroy(m)
		}
	}
}

func (r *Registry) clearReferencesTo(m *Menu) {
	for _, other := range r.menus {
		for _, it := range other.Items {
			if it.Submenu == m {
				// Keep scanning: several items may point at the
				// same menu.
				it.Submenu = nil
			}
		}
		if other.Selection.Menu == m {
			other.Selection.Menu = nil
		}
		// Pipemenu children must not keep a dangling parent.
		if other.Parent == m {
			other.Parent = nil
		}
	}
}

func (r *Registry) unregister(m *Menu) {
	for i, candidate := range r.menus {
		if candidate == m {
			r.menus = append(r.menus[:i], r.menus[i+1:]...)
			break
		}
	}
	if r.index[m.ID] == m {
		delete(r.index, m.ID)
		// A shadowed duplicate becomes visible again.
		for _, candidate := range r.menus {
			if candidate.ID == m.ID {
				r.index[m.ID] = candidate
				break
			}
		}
	}
}
