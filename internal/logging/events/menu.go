package events

import "github.com/atomicstack/shellmenu/internal/logging"

type MenuTracer struct{}

type ParserTracer struct{}

var (
	Menu   = MenuTracer{}
	Parser = ParserTracer{}
)

func (MenuTracer) DuplicateID(id string) {
	logging.Errorf("menu id %s already exists", id)
	logging.Trace("menu.duplicate-id", map[string]interface{}{"id": id})
}

func (MenuTracer) UnresolvedReference(id string) {
	logging.Errorf("no menu with id '%s'", id)
	logging.Trace("menu.unresolved-reference", map[string]interface{}{"id": id})
}

func (MenuTracer) CyclicReference(id string) {
	logging.Errorf("menu %q cannot link to itself or an enclosing menu", id)
	logging.Trace("menu.cyclic-reference", map[string]interface{}{"id": id})
}

func (MenuTracer) PipemenuLink(id, label, execute string) {
	logging.Trace("menu.pipemenu-link", map[string]interface{}{
		"id":      id,
		"label":   label,
		"execute": execute,
	})
}

func (MenuTracer) InvalidActionRemoved(menuID, item string) {
	logging.Errorf("removed invalid action from item %q in menu %s", item, menuID)
	logging.Trace("menu.invalid-action", map[string]interface{}{"menu": menuID, "item": item})
}

func (MenuTracer) SourceRead(path string) {
	logging.Trace("menu.source", map[string]interface{}{"path": path})
}

func (MenuTracer) SourceMalformed(path string, err error) {
	logging.Errorf("unable to parse menu file %s: %v", path, err)
	logging.Trace("menu.source-malformed", map[string]interface{}{
		"path":  path,
		"error": err.Error(),
	})
}

func (ParserTracer) SequenceError(tag, content string) {
	logging.Errorf("element %q with content %q out of required order", tag, content)
	logging.Trace("parser.sequence-error", map[string]interface{}{
		"tag":     tag,
		"content": content,
	})
}

func (ParserTracer) StaticLinkFromPipemenu(id string) {
	logging.Errorf("cannot link to static menu %q from pipemenu", id)
	logging.Trace("parser.pipemenu-static-link", map[string]interface{}{"id": id})
}

func (ParserTracer) UnknownAction(name string) {
	logging.Errorf("unknown action name %q", name)
	logging.Trace("parser.unknown-action", map[string]interface{}{"name": name})
}
