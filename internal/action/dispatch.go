package action

import "github.com/atomicstack/shellmenu/internal/logging"

// TriggerContext identifies the window or surface a menu session was opened
// for. It travels down the open chain so activated actions apply to the right
// target.
type TriggerContext struct {
	// Surface is an opaque identifier of the triggering window; empty for
	// menus opened over the desktop.
	Surface string
	// Session tags every dispatch with the menu session that produced it.
	Session string
}

// Dispatcher consumes an item's action list on activation.
type Dispatcher interface {
	Run(ctx TriggerContext, actions []*Action)
}

// LogDispatcher traces dispatched actions without executing anything. The
// demo front-end uses it in place of a real shell integration.
type LogDispatcher struct{}

func (LogDispatcher) Run(ctx TriggerContext, actions []*Action) {
	for _, a := range actions {
		payload := map[string]interface{}{
			"session": ctx.Session,
			"surface": ctx.Surface,
			"name":    a.Name,
		}
		for _, arg := range a.Args() {
			payload["arg."+arg.Name] = arg.Value
		}
		logging.Trace("dispatch.run", payload)
	}
}

// Recorder captures dispatched action lists for tests.
type Recorder struct {
	Contexts []TriggerContext
	Runs     [][]*Action
}

func (r *Recorder) Run(ctx TriggerContext, actions []*Action) {
	r.Contexts = append(r.Contexts, ctx)
	r.Runs = append(r.Runs, actions)
}
