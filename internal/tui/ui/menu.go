package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
)

// Menu displays the keyboard shortcut hints of the current view on one line.
type Menu struct {
	*tview.TextView
	theme *Theme
	hints []MenuHint
}

// NewMenu creates a new menu hint bar.
func NewMenu(theme *Theme) *Menu {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	tv.SetBorderPadding(0, 0, 1, 0)

	m := &Menu{
		TextView: tv,
		theme:    theme,
	}
	m.ApplyTheme()
	return m
}

// ApplyTheme re-reads the colors from the theme.
func (m *Menu) ApplyTheme() {
	m.SetBackgroundColor(m.theme.BgColor)
	m.Update(m.hints)
}

// Update renders menu hints.
func (m *Menu) Update(hints []MenuHint) {
	m.hints = hints
	m.Clear()
	_, _ = fmt.Fprint(m, FormatHints(hints, ColorName(m.theme.MenuKeyColor)))
}

// FormatHints renders hints as "<key> desc" pairs with the key in keyColor.
func FormatHints(hints []MenuHint, keyColor string) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, fmt.Sprintf("[%s::b]<%s>[-:-:-] %s", keyColor, tview.Escape(h.Key), h.Description))
	}
	return strings.Join(parts, "  ")
}
