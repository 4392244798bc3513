package views

import (
	"fmt"
	"strings"

	"github.com/matheus3301/mockmsg/internal/tui/ui"
	"github.com/rivo/tview"
)

// HelpSection is a titled group of key descriptions.
type HelpSection struct {
	Title string
	Keys  []ui.MenuHint
}

// DefaultHelp lists every key the application binds.
var DefaultHelp = []HelpSection{
	{"Global", []ui.MenuHint{
		{Key: ":", Description: "Command mode"},
		{Key: "Esc", Description: "Back / close"},
		{Key: "?", Description: "Help"},
		{Key: "D", Description: "Debug panel"},
		{Key: "` ` `", Description: "Debug panel (triple press)"},
		{Key: "f", Description: "Film mode"},
		{Key: "q", Description: "Quit"},
	}},
	{"Chat list", []ui.MenuHint{
		{Key: "Enter", Description: "Open chat"},
		{Key: "1-9", Description: "Jump to Nth chat"},
		{Key: "/", Description: "Filter"},
		{Key: "c", Description: "Contacts"},
	}},
	{"Chat", []ui.MenuHint{
		{Key: "i", Description: "Focus composer"},
		{Key: "Enter", Description: "Send (composer) / inspect (list)"},
		{Key: "j/k", Description: "Select message"},
		{Key: "t", Description: "Fire next tap trigger"},
	}},
	{"Contacts", []ui.MenuHint{
		{Key: "Enter", Description: "Edit contact"},
		{Key: "n", Description: "New contact"},
		{Key: "d", Description: "Delete contact"},
	}},
	{"Debug panel", []ui.MenuHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl-E", Description: "Edit JSON"},
	}},
	{"Commands", []ui.MenuHint{
		{Key: ":chat <name>", Description: "Open chat by name"},
		{Key: ":tap", Description: "Fire next tap trigger"},
		{Key: ":all", Description: "Deliver every trigger"},
		{Key: ":reset", Description: "Reset session"},
		{Key: ":defaults", Description: "Restore default data"},
		{Key: ":dark / :light", Description: "Switch theme"},
		{Key: ":film", Description: "Toggle film mode"},
		{Key: ":quit / :q", Description: "Quit"},
	}},
}

// HelpView displays key binding reference.
type HelpView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewHelpView creates a new help view.
func NewHelpView(theme *ui.Theme) *HelpView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetTitle(" Help ")

	hv := &HelpView{
		TextView: tv,
		theme:    theme,
	}
	hv.ApplyTheme()
	return hv
}

// ApplyTheme implements ui.Themed.
func (hv *HelpView) ApplyTheme() {
	hv.SetBorderColor(hv.theme.BorderColor)
	hv.SetBackgroundColor(hv.theme.BgColor)
	hv.SetTextColor(hv.theme.FgColor)
	hv.SetTitleColor(hv.theme.TitleColor)
	hv.SetText(RenderHelp(DefaultHelp, ui.ColorName(hv.theme.MenuKeyColor)))
}

// Name implements Component.
func (hv *HelpView) Name() string { return "Help" }

// Start implements Component.
func (hv *HelpView) Start() {}

// Stop implements Component.
func (hv *HelpView) Stop() {}

// Hints implements Component.
func (hv *HelpView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
	}
}

// RenderHelp lays sections out as aligned key columns.
func RenderHelp(sections []HelpSection, keyColor string) string {
	width := 0
	for _, s := range sections {
		for _, k := range s.Keys {
			width = max(width, len(k.Key))
		}
	}

	var b strings.Builder
	for _, s := range sections {
		fmt.Fprintf(&b, "\n  [::b]%s[-:-:-]\n\n", s.Title)
		for _, k := range s.Keys {
			pad := strings.Repeat(" ", width-len(k.Key))
			fmt.Fprintf(&b, "  [%s]%s[-:-:-]%s  %s\n", keyColor, tview.Escape(k.Key), pad, k.Description)
		}
	}
	return b.String()
}
