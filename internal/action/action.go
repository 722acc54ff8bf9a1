package action

import "strings"

// Action is one entry of an item's action list: a name plus an ordered set of
// named arguments, consumed read-only by the dispatcher once activated.
type Action struct {
	Name string
	args []Arg
}

// Arg is a single named argument value.
type Arg struct {
	Name  string
	Value string
}

// knownNames is the closed set of action names accepted from menu markup.
// Anything else is rejected at parse time.
var knownNames = map[string]struct{}{
	"Execute":            {},
	"Reconfigure":        {},
	"Exit":               {},
	"Iconify":            {},
	"Close":              {},
	"ToggleMaximize":     {},
	"ToggleFullscreen":   {},
	"ToggleShade":        {},
	"ToggleDecorations":  {},
	"ToggleAlwaysOnTop":  {},
	"ToggleOmnipresent":  {},
	"SendToDesktop":      {},
	"GoToDesktop":        {},
	"ShowMenu":           {},
}

// requiredArgs maps action names to an argument they cannot function without.
var requiredArgs = map[string]string{
	"Execute":       "command",
	"SendToDesktop": "to",
	"GoToDesktop":   "to",
	"ShowMenu":      "menu",
}

// New creates an action for a recognized name, or nil for an unknown one.
func New(name string) *Action {
	name = strings.TrimSpace(name)
	if _, ok := knownNames[name]; !ok {
		return nil
	}
	return &Action{Name: name}
}

// AddArg appends a named argument. The legacy "execute" field is folded into
// "command"; later duplicates overwrite the earlier value in place so argument
// order stays stable.
func (a *Action) AddArg(name, value string) {
	if name == "execute" {
		name = "command"
	}
	for i := range a.args {
		if a.args[i].Name == name {
			a.args[i].Value = value
			return
		}
	}
	a.args = append(a.args, Arg{Name: name, Value: value})
}

// Arg returns the value for a named argument and whether it was set.
func (a *Action) Arg(name string) (string, bool) {
	for _, arg := range a.args {
		if arg.Name == name {
			return arg.Value, true
		}
	}
	return "", false
}

// Args returns the ordered argument list.
func (a *Action) Args() []Arg {
	return a.args
}

// Valid reports whether the action carries every argument it requires.
func (a *Action) Valid() bool {
	if a == nil {
		return false
	}
	if _, ok := knownNames[a.Name]; !ok {
		return false
	}
	required, ok := requiredArgs[a.Name]
	if !ok {
		return true
	}
	value, ok := a.Arg(required)
	return ok && strings.TrimSpace(value) != ""
}
