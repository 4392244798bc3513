package mock

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("Validate(Default()) error = %v", err)
	}
}

func TestDefaultContents(t *testing.T) {
	d := Default()
	if len(d.Contacts) != 2 {
		t.Fatalf("got %d contacts, want 2", len(d.Contacts))
	}
	if len(d.Chats["c1"]) != 2 || len(d.Chats["c2"]) != 1 {
		t.Errorf("chat sizes = %d/%d, want 2/1", len(d.Chats["c1"]), len(d.Chats["c2"]))
	}
	t1 := d.FakeTriggers[0]
	if t1.Delay() != 8*time.Second || t1.Typing() != 2*time.Second {
		t.Errorf("t1 delay/typing = %v/%v, want 8s/2s", t1.Delay(), t1.Typing())
	}
	if d.FakeTriggers[1].Delay() != 0 {
		t.Errorf("tap trigger delay = %v, want 0", d.FakeTriggers[1].Delay())
	}
	if d.SystemStatus.Time != "09:41" || d.SystemStatus.Network.Provider != "MockTel" {
		t.Errorf("system status = %+v", d.SystemStatus)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	b, err := Encode(Default())
	if err != nil {
		t.Fatal(err)
	}
	d, err := DecodeValid(b)
	if err != nil {
		t.Fatal(err)
	}
	if *d.FakeTriggers[0].DelaySec != 8 {
		t.Errorf("delaySec = %v, want 8", *d.FakeTriggers[0].DelaySec)
	}
	if d.Chats["c1"][1].From != Me {
		t.Errorf("from = %q, want me", d.Chats["c1"][1].From)
	}
}

func TestDecodeUsesWireNames(t *testing.T) {
	blob := `{"contacts":[{"id":"a","name":"A"}],"chats":{"a":[]},
		"fakeTriggers":[{"id":"t","chatId":"a","type":"tap","message":{"from":"a","text":"x","time":"10:00"}}],
		"systemStatus":{"time":"10:00","battery":{"percent":5,"charging":true},"wifi":0,"network":{"type":"LTE","provider":"P"},"darkMode":true}}`
	d, err := DecodeValid([]byte(blob))
	if err != nil {
		t.Fatal(err)
	}
	if d.FakeTriggers[0].ChatID != "a" || !d.SystemStatus.DarkMode || !d.SystemStatus.Battery.Charging {
		t.Errorf("decoded = %+v", d)
	}
}

func TestDecodeNormalizesMissingCollections(t *testing.T) {
	d, err := Decode([]byte(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if d.Contacts == nil || d.Chats == nil || d.FakeTriggers == nil {
		t.Errorf("collections not normalized: %+v", d)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *AppData)
	}{
		{"empty contact id", func(d *AppData) { d.Contacts[0].ID = "" }},
		{"duplicate contact id", func(d *AppData) { d.Contacts[1].ID = "c1" }},
		{"chat without contact", func(d *AppData) { d.Chats["ghost"] = nil }},
		{"duplicate message id", func(d *AppData) { d.Chats["c1"][1].ID = "m1" }},
		{"bad message status", func(d *AppData) { d.Chats["c2"][0].Status = "lost" }},
		{"trigger unknown chat", func(d *AppData) { d.FakeTriggers[0].ChatID = "ghost" }},
		{"trigger bad type", func(d *AppData) { d.FakeTriggers[0].Type = "swipe" }},
		{"duplicate trigger id", func(d *AppData) { d.FakeTriggers[1].ID = "t1" }},
		{"timer without delay", func(d *AppData) { d.FakeTriggers[0].DelaySec = nil }},
		{"negative delay", func(d *AppData) { d.FakeTriggers[0].DelaySec = Seconds(-1) }},
		{"huge delay", func(d *AppData) { d.FakeTriggers[0].DelaySec = Seconds(1e300) }},
		{"huge typing duration", func(d *AppData) { d.FakeTriggers[0].TypingDuration = Seconds(86401) }},
		{"message id with bracket", func(d *AppData) { d.Chats["c1"][0].ID = "m1]" }},
		{"message id with quote", func(d *AppData) { d.Chats["c1"][0].ID = `m"1` }},
		{"wifi out of range", func(d *AppData) { d.SystemStatus.Wifi = 5 }},
		{"battery out of range", func(d *AppData) { d.SystemStatus.Battery.Percent = 101 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Default()
			tt.mutate(&d)
			if err := Validate(d); err == nil {
				t.Error("Validate() expected error")
			}
		})
	}
}

func TestValidationErrorListsProblems(t *testing.T) {
	d := Default()
	d.FakeTriggers[0].ChatID = "x"
	d.FakeTriggers[1].ChatID = "y"
	err := Validate(d)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if len(verr.Problems) != 2 {
		t.Errorf("got %d problems, want 2: %v", len(verr.Problems), verr.Problems)
	}
}

func TestCloneIsDeep(t *testing.T) {
	d := Default()
	c := d.Clone()
	c.Chats["c1"][0].Text = "changed"
	c.Contacts[0].Name = "changed"
	*c.FakeTriggers[0].DelaySec = 99
	if d.Chats["c1"][0].Text == "changed" || d.Contacts[0].Name == "changed" || *d.FakeTriggers[0].DelaySec == 99 {
		t.Error("Clone shares state with the original")
	}
}

func TestWithContactsCascades(t *testing.T) {
	d := Default()
	out := d.WithContacts([]Contact{{ID: "c2", Name: "Jonas"}})

	if _, ok := out.Chats["c1"]; ok {
		t.Error("chat c1 should be dropped with its contact")
	}
	if len(out.FakeTriggers) != 0 {
		t.Errorf("got %d triggers, want 0", len(out.FakeTriggers))
	}
	if err := Validate(out); err != nil {
		t.Errorf("cascaded data invalid: %v", err)
	}
	if len(d.Contacts) != 2 {
		t.Error("WithContacts mutated the receiver")
	}
}

func TestTriggersFor(t *testing.T) {
	d := Default()
	if got := len(d.TriggersFor("c1")); got != 2 {
		t.Errorf("TriggersFor(c1) = %d, want 2", got)
	}
	if got := len(d.TriggersFor("c2")); got != 0 {
		t.Errorf("TriggersFor(c2) = %d, want 0", got)
	}
}

func TestTriggerDurationsClamped(t *testing.T) {
	tests := []struct {
		secs float64
		want time.Duration
	}{
		{2.5, 2500 * time.Millisecond},
		{-3, 0},
		{1e300, 24 * time.Hour},
	}
	for _, tt := range tests {
		tr := FakeTrigger{Type: TriggerTimer, DelaySec: Seconds(tt.secs), ShowTyping: true, TypingDuration: Seconds(tt.secs)}
		if got := tr.Delay(); got != tt.want {
			t.Errorf("Delay(%v) = %v, want %v", tt.secs, got, tt.want)
		}
		if got := tr.Typing(); got != tt.want {
			t.Errorf("Typing(%v) = %v, want %v", tt.secs, got, tt.want)
		}
	}
}
