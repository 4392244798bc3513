package views

import (
	"fmt"
	"time"

	"github.com/matheus3301/mockmsg/internal/tui/ui"
	"github.com/rivo/tview"
)

// FilmIndicator is the REC line shown while film mode is on.
type FilmIndicator struct {
	*tview.TextView
	theme *ui.Theme
	blink bool
}

// NewFilmIndicator creates the indicator.
func NewFilmIndicator(theme *ui.Theme) *FilmIndicator {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignRight)
	tv.SetBorderPadding(0, 0, 1, 1)
	fi := &FilmIndicator{TextView: tv, theme: theme}
	fi.ApplyTheme()
	return fi
}

// ApplyTheme implements ui.Themed.
func (fi *FilmIndicator) ApplyTheme() {
	fi.SetBackgroundColor(fi.theme.BgColor)
	fi.SetTextColor(fi.theme.FgColor)
}

// Update renders the elapsed recording time. The dot blinks on every call.
func (fi *FilmIndicator) Update(elapsed time.Duration) {
	fi.blink = !fi.blink
	dot := " "
	if fi.blink {
		dot = "●"
	}
	fi.SetText(fmt.Sprintf("[%s::b]%s REC[-:-:-] %s", ui.ColorName(fi.theme.RecColor), dot, FormatElapsed(elapsed)))
}

// FormatElapsed renders d as HH:MM:SS.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s/60%60, s%60)
}
