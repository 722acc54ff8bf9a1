package menu

import "github.com/atomicstack/shellmenu/internal/logging/events"

// Validate removes malformed actions from every item in the registry. Run
// after each load or pipemenu splice so the dispatcher only ever sees
// well-formed action lists.
func Validate(reg *Registry) {
	for _, m := range reg.Menus() {
		validateMenu(m)
	}
}

func validateMenu(m *Menu) {
	for _, it := range m.Items {
		kept := it.Actions[:0]
		for _, a := range it.Actions {
			if a.Valid() {
				kept = append(kept, a)
				continue
			}
			events.Menu.InvalidActionRemoved(m.ID, it.Label)
		}
		it.Actions = kept
	}
}
