package keys

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestRegistryDispatch(t *testing.T) {
	r := NewRegistry()
	var calls []string
	r.AddGlobal("quit", &Action{Key: tcell.KeyRune, Rune: 'q', Description: "Quit", Visible: true,
		Handler: func() { calls = append(calls, "global-q") }})
	r.AddView("chat", "tap", &Action{Key: tcell.KeyRune, Rune: 't', Description: "Tap", Visible: true,
		Handler: func() { calls = append(calls, "chat-t") }})
	r.AddView("chat", "quit", &Action{Key: tcell.KeyRune, Rune: 'q', Description: "Back",
		Handler: func() { calls = append(calls, "chat-q") }})

	tests := []struct {
		view string
		ev   *tcell.EventKey
		want bool
	}{
		{"chat", tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModNone), true},
		{"chat", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true},
		{"chats", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true},
		{"chats", tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModNone), false},
		{"chat", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), false},
	}
	for _, tt := range tests {
		if got := r.HandleEvent(tt.view, tt.ev); got != tt.want {
			t.Errorf("HandleEvent(%s, %q) = %v, want %v", tt.view, tt.ev.Rune(), got, tt.want)
		}
	}

	want := []string{"chat-t", "chat-q", "global-q"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestRegistryHints(t *testing.T) {
	r := NewRegistry()
	r.AddGlobal("help", &Action{Key: tcell.KeyRune, Rune: '?', Description: "Help", Visible: true, Handler: func() {}})
	r.AddView("chats", "open", &Action{Key: tcell.KeyEnter, Description: "Open", Visible: true, Handler: func() {}})
	r.AddView("chats", "hidden", &Action{Key: tcell.KeyRune, Rune: 'x', Description: "Hidden", Handler: func() {}})
	r.AddView("chats", "debug", &Action{Key: tcell.KeyRune, Rune: 'D', Label: "Shift-D", Description: "Debug", Visible: true, Handler: func() {}})
	r.AddView("chats", "open", &Action{Key: tcell.KeyEnter, Description: "Open chat", Visible: true, Handler: func() {}})

	hints := r.Hints("chats")
	want := []struct{ key, desc string }{
		{"Enter", "Open chat"},
		{"Shift-D", "Debug"},
		{"?", "Help"},
	}
	if len(hints) != len(want) {
		t.Fatalf("hints = %+v", hints)
	}
	for i, w := range want {
		if hints[i].Key != w.key || hints[i].Description != w.desc {
			t.Errorf("hints[%d] = %+v, want %s %s", i, hints[i], w.key, w.desc)
		}
	}
}

func TestHandleViewSkipsGlobals(t *testing.T) {
	r := NewRegistry()
	hit := ""
	r.AddGlobal("film", &Action{Key: tcell.KeyRune, Rune: 'f', Handler: func() { hit = "global" }})
	r.AddView("debug", "edit", &Action{Key: tcell.KeyCtrlE, Handler: func() { hit = "debug" }})

	if r.HandleView("debug", tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone)) {
		t.Error("HandleView ran a global binding")
	}
	if !r.HandleView("debug", tcell.NewEventKey(tcell.KeyCtrlE, 0, tcell.ModCtrl)) || hit != "debug" {
		t.Errorf("HandleView(Ctrl-E) hit = %q", hit)
	}
}
