package ui

// MenuHint describes a keyboard shortcut for display in the menu bar.
type MenuHint struct {
	Key         string
	Description string
}

// Component is the lifecycle interface for all TUI views.
type Component interface {
	Name() string
	Start()
	Stop()
	Hints() []MenuHint
}

// Themed is implemented by widgets that can re-apply their colors after the
// theme changed in place.
type Themed interface {
	ApplyTheme()
}
