package keys

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/mockmsg/internal/tui/ui"
)

// Action represents a keybinding action.
type Action struct {
	Key  tcell.Key
	Rune rune
	// Label is what the menu shows for the key, e.g. "Enter" or "t".
	Label       string
	Description string
	Handler     func()
	Visible     bool
}

// Matches returns true if the event matches this action.
func (a *Action) Matches(ev *tcell.EventKey) bool {
	if a.Key != tcell.KeyRune {
		return ev.Key() == a.Key
	}
	return ev.Key() == tcell.KeyRune && ev.Rune() == a.Rune
}

// Hint returns the menu hint of the action.
func (a *Action) Hint() ui.MenuHint {
	label := a.Label
	if label == "" {
		if a.Key == tcell.KeyRune {
			label = string(a.Rune)
		} else {
			label = tcell.KeyNames[a.Key]
		}
	}
	return ui.MenuHint{Key: label, Description: a.Description}
}

type named struct {
	name   string
	action *Action
}

// Registry holds keybindings organized by scope. Bindings keep their
// registration order, which is also the order of the menu hints.
type Registry struct {
	global []named
	views  map[string][]named
}

// NewRegistry creates a new keybinding registry.
func NewRegistry() *Registry {
	return &Registry{
		views: make(map[string][]named),
	}
}

// AddGlobal registers a global keybinding. Registering a name twice
// replaces the earlier action.
func (r *Registry) AddGlobal(name string, action *Action) {
	r.global = upsert(r.global, name, action)
}

// AddView registers a view-specific keybinding.
func (r *Registry) AddView(view, name string, action *Action) {
	r.views[view] = upsert(r.views[view], name, action)
}

func upsert(list []named, name string, action *Action) []named {
	for i := range list {
		if list[i].name == name {
			list[i].action = action
			return list
		}
	}
	return append(list, named{name: name, action: action})
}

// Hints returns the visible hints for a view: view bindings first, then
// globals.
func (r *Registry) Hints(view string) []ui.MenuHint {
	var hints []ui.MenuHint
	for _, n := range r.views[view] {
		if n.action.Visible {
			hints = append(hints, n.action.Hint())
		}
	}
	for _, n := range r.global {
		if n.action.Visible {
			hints = append(hints, n.action.Hint())
		}
	}
	return hints
}

// HandleView dispatches a key event to the view's own bindings only.
func (r *Registry) HandleView(view string, ev *tcell.EventKey) bool {
	for _, n := range r.views[view] {
		if n.action.Matches(ev) {
			n.action.Handler()
			return true
		}
	}
	return false
}

// HandleEvent dispatches a key event to matching action in the given view.
// Returns true if a handler matched.
func (r *Registry) HandleEvent(view string, ev *tcell.EventKey) bool {
	if r.HandleView(view, ev) {
		return true
	}
	for _, n := range r.global {
		if n.action.Matches(ev) {
			n.action.Handler()
			return true
		}
	}
	return false
}
