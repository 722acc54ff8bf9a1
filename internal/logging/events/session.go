package events

import "github.com/atomicstack/shellmenu/internal/logging"

type SessionTracer struct{}

type PipeTracer struct{}

type LayoutTracer struct{}

var (
	Session = SessionTracer{}
	Pipe    = PipeTracer{}
	Layout  = LayoutTracer{}
)

func (SessionTracer) OpenRoot(session, menuID string, x, y int) {
	logging.Trace("session.open-root", map[string]interface{}{
		"session": session,
		"menu":    menuID,
		"x":       x,
		"y":       y,
	})
}

func (SessionTracer) Close(session string, pipemenus int) {
	logging.Trace("session.close", map[string]interface{}{
		"session":   session,
		"pipemenus": pipemenus,
	})
}

func (SessionTracer) Select(menuID, label string) {
	logging.Trace("session.select", map[string]interface{}{"menu": menuID, "item": label})
}

func (SessionTracer) Activate(menuID, label string, actions int) {
	logging.Trace("session.activate", map[string]interface{}{
		"menu":    menuID,
		"item":    label,
		"actions": actions,
	})
}

func (SessionTracer) Reconfigure() {
	logging.Trace("session.reconfigure", nil)
}

func (PipeTracer) Spawned(id, execute string, pid int) {
	logging.Trace("pipe.spawn", map[string]interface{}{"id": id, "execute": execute, "pid": pid})
}

func (PipeTracer) SpawnFailed(execute string, err error) {
	logging.Errorf("failed to spawn pipemenu process %s: %v", execute, err)
	logging.Trace("pipe.spawn-failed", map[string]interface{}{"execute": execute, "error": err.Error()})
}

func (PipeTracer) DuplicateID(id string) {
	logging.Errorf("duplicate id '%s'; abort pipemenu", id)
	logging.Trace("pipe.duplicate-id", map[string]interface{}{"id": id})
}

func (PipeTracer) Overflow(id, execute string, limit int) {
	logging.Errorf("pipemenu %s too big (> %d bytes); killing %s", id, limit, execute)
	logging.Trace("pipe.overflow", map[string]interface{}{"id": id, "execute": execute, "limit": limit})
}

func (PipeTracer) Timeout(id, execute string) {
	logging.Errorf("pipemenu %s timeout reached, killing %s", id, execute)
	logging.Trace("pipe.timeout", map[string]interface{}{"id": id, "execute": execute})
}

func (PipeTracer) Malformed(id string) {
	logging.Errorf("expect pipemenu %s output to start with '<'; abort", id)
	logging.Trace("pipe.malformed", map[string]interface{}{"id": id})
}

func (PipeTracer) ReadFailed(id string, err error) {
	logging.Errorf("pipemenu %s read failed: %v", id, err)
	logging.Trace("pipe.read-failed", map[string]interface{}{"id": id, "error": err.Error()})
}

func (PipeTracer) ParentGone(id string) {
	logging.Errorf("pipemenu %s parent menu already closed; dropping result", id)
	logging.Trace("pipe.parent-gone", map[string]interface{}{"id": id})
}

func (PipeTracer) Spliced(id string, items int) {
	logging.Trace("pipe.spliced", map[string]interface{}{"id": id, "items": items})
}

func (LayoutTracer) Unplaceable(menuID, label string) {
	logging.Errorf("failed to position menu %s (%s) and its submenus: not enough screen space", menuID, label)
	logging.Trace("layout.unplaceable", map[string]interface{}{"menu": menuID, "label": label})
}
