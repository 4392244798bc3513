package views

import (
	"fmt"
	"strings"

	"github.com/matheus3301/mockmsg/internal/mock"
	"github.com/matheus3301/mockmsg/internal/tui/ui"
	"github.com/rivo/tview"
)

// MessageInspector shows the fields of a single message.
type MessageInspector struct {
	*tview.TextView
	theme *ui.Theme
}

// NewMessageInspector creates a new inspector view.
func NewMessageInspector(theme *ui.Theme) *MessageInspector {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)
	tv.SetBorder(true)
	tv.SetTitle(" Message ")

	mi := &MessageInspector{
		TextView: tv,
		theme:    theme,
	}
	mi.ApplyTheme()
	return mi
}

// ApplyTheme implements ui.Themed.
func (mi *MessageInspector) ApplyTheme() {
	mi.SetBorderColor(mi.theme.BorderFocusColor)
	mi.SetBackgroundColor(mi.theme.BgColor)
	mi.SetTextColor(mi.theme.FgColor)
	mi.SetTitleColor(mi.theme.TitleColor)
}

// Name implements Component.
func (mi *MessageInspector) Name() string { return "Message" }

// Start implements Component.
func (mi *MessageInspector) Start() {}

// Stop implements Component.
func (mi *MessageInspector) Stop() {}

// Hints implements Component.
func (mi *MessageInspector) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Close"},
	}
}

// Update renders m. sender is the display name of m.From.
func (mi *MessageInspector) Update(m mock.Message, sender string) {
	mi.SetText(InspectText(m, sender, mi.theme))
	mi.ScrollToBeginning()
}

// InspectText formats the inspector body.
func InspectText(m mock.Message, sender string, t *ui.Theme) string {
	fg := ui.ColorName(t.FgColor)
	ct := ui.ColorName(t.CounterColor)

	status := m.Status
	if status == "" {
		status = "-"
	}
	rows := []struct{ label, value string }{
		{"ID", m.ID},
		{"From", sender},
		{"Time", m.Time},
		{"Status", status},
		{"Text", m.Text},
	}
	var b strings.Builder
	b.WriteString("\n")
	for _, r := range rows {
		fmt.Fprintf(&b, " [%s::b]%-7s[-:-:-] [%s]%s[-]\n", fg, r.label+":", ct, clean(r.value))
	}
	return b.String()
}
