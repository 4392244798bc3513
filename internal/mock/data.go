package mock

import (
	"maps"
	"slices"
	"time"

	"github.com/samber/lo"
)

// Delay returns the timer delay of the trigger. Zero for tap triggers or
// when unset.
func (t FakeTrigger) Delay() time.Duration {
	if t.DelaySec == nil {
		return 0
	}
	return secondsToDuration(*t.DelaySec)
}

// Typing returns how long the typing indicator shows before delivery.
// Zero when the trigger has no typing indicator.
func (t FakeTrigger) Typing() time.Duration {
	if !t.ShowTyping || t.TypingDuration == nil {
		return 0
	}
	return secondsToDuration(*t.TypingDuration)
}

// maxTriggerSeconds bounds delaySec and typingDuration. Validate rejects
// larger values; the clamp keeps unvalidated data from overflowing.
const maxTriggerSeconds = 86400

func secondsToDuration(s float64) time.Duration {
	if !(s > 0) {
		return 0
	}
	return time.Duration(min(s, maxTriggerSeconds) * float64(time.Second))
}

// Clone returns a deep copy so callers can mutate the result freely.
func (d AppData) Clone() AppData {
	out := AppData{
		Contacts:     slices.Clone(d.Contacts),
		Chats:        make(map[string][]Message, len(d.Chats)),
		FakeTriggers: make([]FakeTrigger, len(d.FakeTriggers)),
		SystemStatus: d.SystemStatus,
	}
	for id, msgs := range d.Chats {
		out.Chats[id] = slices.Clone(msgs)
	}
	for i, t := range d.FakeTriggers {
		if t.DelaySec != nil {
			t.DelaySec = Seconds(*t.DelaySec)
		}
		if t.TypingDuration != nil {
			t.TypingDuration = Seconds(*t.TypingDuration)
		}
		out.FakeTriggers[i] = t
	}
	return out
}

// Contact returns the contact with the given id.
func (d AppData) Contact(id string) (Contact, bool) {
	return lo.Find(d.Contacts, func(c Contact) bool { return c.ID == id })
}

// HasChat reports whether id names an existing chat. Chats are keyed by
// contact id, so a chat exists exactly when its contact does.
func (d AppData) HasChat(id string) bool {
	_, ok := d.Contact(id)
	return ok
}

// TriggersFor returns the triggers bound to a chat, in catalog order.
func (d AppData) TriggersFor(chatID string) []FakeTrigger {
	return lo.Filter(d.FakeTriggers, func(t FakeTrigger, _ int) bool { return t.ChatID == chatID })
}

// ChatIDs returns the ids of every chat in contact order.
func (d AppData) ChatIDs() []string {
	return lo.Map(d.Contacts, func(c Contact, _ int) string { return c.ID })
}

// WithContacts replaces the contact list. Chats and triggers of contacts that
// no longer exist are dropped so the result stays consistent.
func (d AppData) WithContacts(contacts []Contact) AppData {
	out := d.Clone()
	out.Contacts = slices.Clone(contacts)
	keep := lo.SliceToMap(contacts, func(c Contact) (string, struct{}) { return c.ID, struct{}{} })

	maps.DeleteFunc(out.Chats, func(id string, _ []Message) bool {
		_, ok := keep[id]
		return !ok
	})
	out.FakeTriggers = lo.Filter(out.FakeTriggers, func(t FakeTrigger, _ int) bool {
		_, ok := keep[t.ChatID]
		return ok
	})
	return out
}

// WithSystemStatus replaces the system status.
func (d AppData) WithSystemStatus(s SystemStatus) AppData {
	out := d.Clone()
	out.SystemStatus = s
	return out
}

// normalize fills nil collections so decoded partial blobs behave like
// empty ones.
func (d *AppData) normalize() {
	if d.Contacts == nil {
		d.Contacts = []Contact{}
	}
	if d.Chats == nil {
		d.Chats = map[string][]Message{}
	}
	if d.FakeTriggers == nil {
		d.FakeTriggers = []FakeTrigger{}
	}
}
