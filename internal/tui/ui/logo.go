package ui

import (
	"fmt"

	"github.com/rivo/tview"
)

// Logo displays a compact ASCII art logo on the chat list header.
type Logo struct {
	*tview.TextView
	theme *Theme
}

// NewLogo creates a new logo component.
func NewLogo(theme *Theme) *Logo {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	tv.SetBorderPadding(0, 0, 1, 0)

	l := &Logo{
		TextView: tv,
		theme:    theme,
	}
	l.ApplyTheme()
	return l
}

// ApplyTheme re-reads the colors from the theme.
func (l *Logo) ApplyTheme() {
	l.SetBackgroundColor(l.theme.BgColor)
	l.Clear()
	_, _ = fmt.Fprintf(l, "[%s::b]mock[-:-:-][%s]msg[-:-:-]",
		ColorName(l.theme.TitleColor), ColorName(l.theme.FgColor))
}
