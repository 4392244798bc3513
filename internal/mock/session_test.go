package mock

import (
	"testing"
	"time"
)

func TestChatMessagesConcatenatesInOrder(t *testing.T) {
	d := Default()
	s := NewSession()
	s.Add("c1", Message{ID: "s1", From: Me, Text: "one"})
	s.Add("c1", Message{ID: "s2", From: "c1", Text: "two"})
	s.Add("c2", Message{ID: "s3", From: Me, Text: "other"})

	for _, chatID := range []string{"c1", "c2", "unknown"} {
		got := s.ChatMessages(d, chatID)
		want := append(append([]Message{}, d.Chats[chatID]...), s.Messages(chatID)...)
		if len(got) != len(want) {
			t.Fatalf("%s: got %d messages, want %d", chatID, len(got), len(want))
		}
		for i := range want {
			if got[i].ID != want[i].ID {
				t.Errorf("%s[%d] = %q, want %q", chatID, i, got[i].ID, want[i].ID)
			}
		}
	}
}

func TestSessionNeverTouchesPersisted(t *testing.T) {
	d := Default()
	s := NewSession()
	s.Add("c1", Message{ID: "s1", From: Me})
	if len(d.Chats["c1"]) != 2 {
		t.Errorf("persisted chat changed: %d messages", len(d.Chats["c1"]))
	}
}

func TestReset(t *testing.T) {
	s := NewSession()
	s.Add("c1", Message{ID: "s1"})
	s.Add("c2", Message{ID: "s2"})
	s.Activate("t1")

	s.Reset()

	if len(s.Messages("c1")) != 0 || len(s.Messages("c2")) != 0 {
		t.Error("session messages not cleared")
	}
	if s.IsActive("t1") || s.ActiveCount() != 0 {
		t.Error("active triggers not cleared")
	}
}

func TestSetStatus(t *testing.T) {
	s := NewSession()
	s.Add("c1", Message{ID: "s1", Status: StatusSent})
	if !s.SetStatus("c1", "s1", StatusRead) {
		t.Fatal("SetStatus() = false, want true")
	}
	if got := s.Messages("c1")[0].Status; got != StatusRead {
		t.Errorf("status = %q, want read", got)
	}
	if s.SetStatus("c1", "missing", StatusRead) {
		t.Error("SetStatus() on missing message = true")
	}
}

func TestNewMessageIDUnique(t *testing.T) {
	d := Default()
	s := NewSession()
	seen := map[string]bool{}
	for _, m := range s.ChatMessages(d, "c1") {
		seen[m.ID] = true
	}
	for i := 0; i < 100; i++ {
		id := s.NewMessageID(d, "c1")
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
		s.Add("c1", Message{ID: id})
	}
}

func TestNewOutgoing(t *testing.T) {
	now := time.Date(2024, 5, 1, 7, 5, 0, 0, time.Local)
	m := NewOutgoing("x", "hi", now)
	if m.From != Me || m.Status != StatusSent || m.Time != "07:05" || m.Text != "hi" {
		t.Errorf("NewOutgoing = %+v", m)
	}
}

func TestCollisionsAndReassign(t *testing.T) {
	d := Default()
	s := NewSession()
	s.Add("c1", Message{ID: "s1", From: Me, Text: "mine"})
	s.Add("c2", Message{ID: "m9", From: Me, Text: "other chat"})

	if got := s.Collisions(d); len(got) != 0 {
		t.Fatalf("Collisions() = %v, want none", got)
	}

	d.Chats["c1"] = append(d.Chats["c1"], Message{ID: "s1", From: "c1", Text: "edited in"})
	if got := s.Collisions(d); len(got) != 1 {
		t.Fatalf("Collisions() = %v, want one", got)
	}

	if n := s.Reassign(d); n != 1 {
		t.Errorf("Reassign() = %d, want 1", n)
	}
	msgs := s.Messages("c1")
	if msgs[0].ID == "s1" || msgs[0].Text != "mine" {
		t.Errorf("session message = %+v", msgs[0])
	}
	if s.Messages("c2")[0].ID != "m9" {
		t.Error("message of another chat renamed")
	}
	if got := s.Collisions(d); len(got) != 0 {
		t.Errorf("Collisions() after Reassign = %v", got)
	}
}
