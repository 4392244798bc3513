package mock

import (
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session holds the state of the current run that is never persisted:
// messages sent or injected during the run and the set of triggers that
// already fired.
type Session struct {
	mu       sync.RWMutex
	messages map[string][]Message
	active   map[string]struct{}
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{
		messages: make(map[string][]Message),
		active:   make(map[string]struct{}),
	}
}

// Add appends a message to a chat's session list.
func (s *Session) Add(chatID string, m Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[chatID] = append(s.messages[chatID], m)
}

// Messages returns a copy of a chat's session messages in insertion order.
func (s *Session) Messages(chatID string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.messages[chatID])
}

// SetStatus updates the delivery status of a session message. It reports
// whether the message was found.
func (s *Session) SetStatus(chatID, msgID, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.messages[chatID]
	for i := range msgs {
		if msgs[i].ID == msgID {
			msgs[i].Status = status
			return true
		}
	}
	return false
}

// Activate marks a trigger as fired for this run.
func (s *Session) Activate(triggerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[triggerID] = struct{}{}
}

// IsActive reports whether a trigger already fired in this run.
func (s *Session) IsActive(triggerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.active[triggerID]
	return ok
}

// ActiveCount returns the number of fired triggers.
func (s *Session) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.active)
}

// Reset drops every session message and clears the active trigger set.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = make(map[string][]Message)
	s.active = make(map[string]struct{})
}

// Merge returns the persisted messages followed by the session messages.
func Merge(persisted, session []Message) []Message {
	out := make([]Message, 0, len(persisted)+len(session))
	out = append(out, persisted...)
	return append(out, session...)
}

// ChatMessages returns what a chat displays: its persisted messages followed
// by the session messages.
func (s *Session) ChatMessages(d AppData, chatID string) []Message {
	return Merge(d.Chats[chatID], s.Messages(chatID))
}

// NewMessageID returns an id that is not used in the chat's combined
// sequence.
func (s *Session) NewMessageID(d AppData, chatID string) string {
	taken := make(map[string]struct{})
	for _, m := range s.ChatMessages(d, chatID) {
		taken[m.ID] = struct{}{}
	}
	return freshID(taken)
}

func freshID(taken map[string]struct{}) string {
	for {
		id := "m" + uuid.NewString()
		if _, dup := taken[id]; !dup {
			return id
		}
	}
}

// Collisions lists the persisted message ids of d that a session message of
// the same chat already uses.
func (s *Session) Collisions(d AppData) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, chatID := range slices.Sorted(maps.Keys(s.messages)) {
		persisted := make(map[string]struct{}, len(d.Chats[chatID]))
		for _, m := range d.Chats[chatID] {
			persisted[m.ID] = struct{}{}
		}
		for _, m := range s.messages[chatID] {
			if _, dup := persisted[m.ID]; dup {
				out = append(out, fmt.Sprintf("message id %q in chat %q is used by a session message", m.ID, chatID))
			}
		}
	}
	return out
}

// Reassign gives every session message whose id clashes with a persisted
// message of d a fresh id. It returns the number of messages renamed.
func (s *Session) Reassign(d AppData) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for chatID, msgs := range s.messages {
		taken := make(map[string]struct{}, len(d.Chats[chatID])+len(msgs))
		for _, m := range d.Chats[chatID] {
			taken[m.ID] = struct{}{}
		}
		for _, m := range msgs {
			taken[m.ID] = struct{}{}
		}
		for i, m := range msgs {
			if !slices.ContainsFunc(d.Chats[chatID], func(p Message) bool { return p.ID == m.ID }) {
				continue
			}
			msgs[i].ID = freshID(taken)
			taken[msgs[i].ID] = struct{}{}
			n++
		}
	}
	return n
}

// NewOutgoing builds a message sent by the user at the given wall time.
func NewOutgoing(id, text string, now time.Time) Message {
	return Message{
		ID:     id,
		From:   Me,
		Text:   text,
		Time:   ClockTime(now),
		Status: StatusSent,
	}
}

// ClockTime formats t the way message timestamps are shown (24h, HH:MM).
func ClockTime(t time.Time) string {
	return t.Format("15:04")
}
