package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/mockmsg/internal/mock"
	"github.com/rivo/tview"
)

func TestSignalBars(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "····"},
		{1, "▂···"},
		{3, "▂▄▆·"},
		{4, "▂▄▆█"},
		{9, "▂▄▆█"},
		{-1, "····"},
	}
	for _, tt := range tests {
		if got := SignalBars(tt.n); got != tt.want {
			t.Errorf("SignalBars(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestBatteryGauge(t *testing.T) {
	got := BatteryGauge(mock.Battery{Percent: 78})
	if !strings.HasPrefix(got, "78% [███░") {
		t.Errorf("BatteryGauge(78) = %q", got)
	}
	if strings.Contains(got, "⚡") {
		t.Error("bolt shown while not charging")
	}
	if got := BatteryGauge(mock.Battery{Percent: 5, Charging: true}); !strings.Contains(got, "⚡") || !strings.HasPrefix(got, "5% [░░░░") {
		t.Errorf("BatteryGauge(5, charging) = %q", got)
	}
	if got := BatteryGauge(mock.Battery{Percent: 150}); !strings.HasPrefix(got, "100% [████") {
		t.Errorf("BatteryGauge(150) = %q", got)
	}
}

func TestPagesStack(t *testing.T) {
	p := NewPages()
	for _, n := range []string{"chats", "chat", "inspector"} {
		p.AddPage(n, tview.NewBox(), true, false)
	}
	var last []string
	p.SetOnChange(func(stack []string) { last = stack })

	p.Reset("chats")
	p.Push("chat")
	p.Push("inspector")
	if p.Current() != "inspector" || p.Depth() != 3 {
		t.Fatalf("current = %q depth = %d", p.Current(), p.Depth())
	}
	if !p.InStack("chat") || p.InStack("debug") {
		t.Error("InStack mismatch")
	}

	p.PopTo("chats")
	if p.Current() != "chats" || p.Depth() != 1 {
		t.Errorf("after PopTo current = %q depth = %d", p.Current(), p.Depth())
	}
	if len(last) != 1 || last[0] != "chats" {
		t.Errorf("onChange stack = %v", last)
	}

	p.PopTo("missing")
	if p.Depth() != 1 {
		t.Error("PopTo(missing) changed the stack")
	}
	if got := p.Pop(); got != "chats" || p.Pop() != "" {
		t.Errorf("Pop() = %q", got)
	}
}

func TestPagesModal(t *testing.T) {
	p := NewPages()
	for _, n := range []string{"chats", "chat", "inspector"} {
		p.AddPage(n, tview.NewBox(), true, false)
	}
	p.Reset("chats")
	p.Push("chat")
	p.PushModal("inspector")
	if name, _ := p.GetFrontPage(); name != "inspector" {
		t.Errorf("front = %q, want inspector", name)
	}
	if got := p.Stack(); len(got) != 3 || got[1] != "chat" {
		t.Errorf("Stack() = %v", got)
	}
	p.Pop()
	if name, _ := p.GetFrontPage(); name != "chat" {
		t.Errorf("front after pop = %q, want chat", name)
	}
}

func TestFlashModelExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := NewFlashModel(func() time.Time { return now })

	if _, ok := f.Current(); ok {
		t.Fatal("empty model reports a notice")
	}
	f.Info("hello")
	if m, ok := f.Current(); !ok || m.Text != "hello" || m.Level != FlashInfo {
		t.Errorf("Current() = %+v, %v", m, ok)
	}
	select {
	case <-f.Watch():
	default:
		t.Error("Show did not wake the watcher")
	}

	now = now.Add(5 * time.Second)
	if _, ok := f.Current(); ok {
		t.Error("info notice outlived its ttl")
	}

	f.Warn("careful")
	if m, ok := f.Current(); !ok || m.Level != FlashWarn {
		t.Errorf("Current() = %+v, want warn", m)
	}
	f.Err(nil)
	if m, _ := f.Current(); m.Text != "careful" {
		t.Error("Err(nil) replaced the notice")
	}
	f.Clear()
	if _, ok := f.Current(); ok {
		t.Error("Clear left a notice")
	}
}

func TestFormatHints(t *testing.T) {
	got := FormatHints([]MenuHint{{Key: "Enter", Description: "Open"}, {Key: "q", Description: "Quit"}}, "red")
	want := "[red::b]<Enter>[-:-:-] Open  [red::b]<q>[-:-:-] Quit"
	if got != want {
		t.Errorf("FormatHints() = %q, want %q", got, want)
	}
}

func TestThemeFor(t *testing.T) {
	if !ThemeFor(true).Dark || ThemeFor(false).Dark {
		t.Error("ThemeFor picked the wrong palette")
	}
	if got := ColorName(tcell.NewHexColor(0x123456)); got != "#123456" {
		t.Errorf("ColorName(hex) = %q, want #123456", got)
	}
}

func TestPromptHistoryAndCompletion(t *testing.T) {
	p := NewPrompt(ThemeFor(false), []string{"chat", "contacts", "quit"})

	p.Activate(PromptCommand)
	if c := p.complete("c"); len(c) != 2 || c[0] != "chat" {
		t.Errorf("complete(c) = %v", c)
	}
	if c := p.complete("chat anna"); c != nil {
		t.Errorf("arguments completed: %v", c)
	}

	for _, cmd := range []string{"tap", "tap", "reset"} {
		p.remember(cmd)
	}
	if h := p.History(); len(h) != 2 || h[0] != "tap" || h[1] != "reset" {
		t.Errorf("History() = %v", h)
	}
	p.Activate(PromptCommand)
	p.recall(-1)
	if p.GetText() != "reset" {
		t.Errorf("recall = %q, want reset", p.GetText())
	}
	p.recall(-1)
	p.recall(-1)
	if p.GetText() != "tap" {
		t.Errorf("recall past oldest = %q, want tap", p.GetText())
	}
	p.recall(1)
	p.recall(1)
	if p.GetText() != "" {
		t.Errorf("recall past newest = %q, want empty", p.GetText())
	}

	p.Activate(PromptFilter)
	if c := p.complete("c"); c != nil {
		t.Error("filter mode completed words")
	}
}
