package ui

import (
	"fmt"
	"strings"

	"github.com/matheus3301/mockmsg/internal/mock"
	"github.com/rivo/tview"
)

// PhoneBar imitates a phone's status bar: clock on the left, carrier in the
// middle, signal and battery on the right.
type PhoneBar struct {
	*tview.Flex
	theme   *Theme
	clock   *tview.TextView
	carrier *tview.TextView
	right   *tview.TextView
	status  mock.SystemStatus
}

// NewPhoneBar creates the phone status bar.
func NewPhoneBar(theme *Theme) *PhoneBar {
	newCell := func(align int) *tview.TextView {
		tv := tview.NewTextView().SetDynamicColors(true).SetTextAlign(align)
		tv.SetBorderPadding(0, 0, 1, 1)
		return tv
	}
	pb := &PhoneBar{
		theme:   theme,
		clock:   newCell(tview.AlignLeft),
		carrier: newCell(tview.AlignCenter),
		right:   newCell(tview.AlignRight),
	}
	pb.Flex = tview.NewFlex().
		AddItem(pb.clock, 0, 1, false).
		AddItem(pb.carrier, 0, 1, false).
		AddItem(pb.right, 0, 1, false)
	pb.ApplyTheme()
	return pb
}

// ApplyTheme re-reads the colors from the theme.
func (pb *PhoneBar) ApplyTheme() {
	for _, tv := range []*tview.TextView{pb.clock, pb.carrier, pb.right} {
		tv.SetBackgroundColor(pb.theme.PhoneBarBg)
		tv.SetTextColor(pb.theme.PhoneBarFg)
	}
	pb.Flex.SetBackgroundColor(pb.theme.PhoneBarBg)
	pb.Update(pb.status)
}

// Update renders the given system status.
func (pb *PhoneBar) Update(s mock.SystemStatus) {
	pb.status = s

	pb.clock.SetText(fmt.Sprintf("[::b]%s[-:-:-]", tview.Escape(s.Time)))

	carrier := strings.TrimSpace(s.Network.Provider + " " + s.Network.Type)
	pb.carrier.SetText(tview.Escape(carrier))

	pb.right.SetText(fmt.Sprintf("%s  %s", SignalBars(s.Wifi), BatteryGauge(s.Battery)))
}

// SignalBars draws a 4-step signal indicator with n steps filled.
func SignalBars(n int) string {
	steps := []rune("▂▄▆█")
	n = max(0, min(n, len(steps)))
	var b strings.Builder
	for i, r := range steps {
		if i < n {
			b.WriteRune(r)
		} else {
			b.WriteRune('·')
		}
	}
	return b.String()
}

// BatteryGauge renders the battery as percent, a 4-cell gauge and a bolt
// while charging.
func BatteryGauge(b mock.Battery) string {
	pct := max(0, min(b.Percent, 100))
	filled := (pct + 12) / 25
	gauge := strings.Repeat("█", filled) + strings.Repeat("░", 4-filled)
	s := fmt.Sprintf("%d%% [%s]", pct, gauge)
	if b.Charging {
		s += " ⚡"
	}
	return tview.Escape(s)
}
