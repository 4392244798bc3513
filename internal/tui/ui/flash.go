package ui

import (
	"fmt"
	"sync"
	"time"

	"github.com/rivo/tview"
)

// FlashLevel is the severity of a flash notice.
type FlashLevel int

const (
	FlashInfo FlashLevel = iota
	FlashWarn
	FlashErr
)

var flashTTL = map[FlashLevel]time.Duration{
	FlashInfo: 4 * time.Second,
	FlashWarn: 6 * time.Second,
	FlashErr:  10 * time.Second,
}

// FlashMessage is one notice with its expiry.
type FlashMessage struct {
	Text    string
	Level   FlashLevel
	Expires time.Time
}

// FlashModel keeps the latest notice and wakes a watcher when it changes.
type FlashModel struct {
	mu      sync.RWMutex
	now     func() time.Time
	current FlashMessage
	notify  chan struct{}
}

// NewFlashModel creates an empty model. A nil clock means time.Now.
func NewFlashModel(now func() time.Time) *FlashModel {
	if now == nil {
		now = time.Now
	}
	return &FlashModel{now: now, notify: make(chan struct{}, 1)}
}

func (f *FlashModel) Info(msg string) { f.Show(msg, FlashInfo, flashTTL[FlashInfo]) }

func (f *FlashModel) Warn(msg string) { f.Show(msg, FlashWarn, flashTTL[FlashWarn]) }

func (f *FlashModel) Err(err error) {
	if err == nil {
		return
	}
	f.Show(err.Error(), FlashErr, flashTTL[FlashErr])
}

// Show replaces the current notice with msg for ttl.
func (f *FlashModel) Show(msg string, level FlashLevel, ttl time.Duration) {
	f.mu.Lock()
	f.current = FlashMessage{Text: msg, Level: level, Expires: f.now().Add(ttl)}
	f.mu.Unlock()
	select {
	case f.notify <- struct{}{}:
	default:
	}
}

// Current returns the notice unless it expired or none was set.
func (f *FlashModel) Current() (FlashMessage, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.current.Text == "" || !f.now().Before(f.current.Expires) {
		return FlashMessage{}, false
	}
	return f.current, true
}

// Clear drops the current notice.
func (f *FlashModel) Clear() {
	f.mu.Lock()
	f.current = FlashMessage{}
	f.mu.Unlock()
}

// Watch fires after each Show. Bursts collapse into one wakeup.
func (f *FlashModel) Watch() <-chan struct{} {
	return f.notify
}

// FlashBar is the one-line notice strip at the bottom of the screen.
type FlashBar struct {
	*tview.TextView
	theme *Theme
}

func NewFlashBar(theme *Theme) *FlashBar {
	tv := tview.NewTextView().SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)
	return &FlashBar{TextView: tv, theme: theme}
}

// ApplyTheme re-reads the colors from the theme.
func (fb *FlashBar) ApplyTheme() {
	fb.SetBackgroundColor(fb.theme.BgColor)
}

// Update renders msg, or blanks the bar when ok is false.
func (fb *FlashBar) Update(msg FlashMessage, ok bool) {
	fb.Clear()
	if !ok {
		return
	}
	color, mark := ColorName(fb.theme.FlashInfoColor), "i"
	switch msg.Level {
	case FlashWarn:
		color, mark = ColorName(fb.theme.FlashWarnColor), "!"
	case FlashErr:
		color, mark = ColorName(fb.theme.FlashErrColor), "x"
	}
	_, _ = fmt.Fprintf(fb, " [%s::b]%s[::-] %s[-]", color, mark, tview.Escape(msg.Text))
}
