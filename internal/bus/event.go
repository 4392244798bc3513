package bus

import "time"

// Event kinds published in-process. Subscribers filter by prefix, so
// "trigger." receives every trigger event.
const (
	DataSaved           = "data.saved"
	DataReloaded        = "data.reloaded"
	SessionReset        = "session.reset"
	SessionMessageAdded = "session.message_added"
	TriggerStateChanged = "trigger.state_changed"
	TriggerTyping       = "trigger.typing"
	TriggerFired        = "trigger.fired"
	MessageStatus       = "message.status_changed"
)

// Event represents a domain event published on the bus.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}

// NewEvent builds an event stamped with the current time.
func NewEvent(kind string, payload any) Event {
	return Event{Kind: kind, Timestamp: time.Now(), Payload: payload}
}

// MessageRef identifies a message within a chat.
type MessageRef struct {
	ChatID    string
	MessageID string
}

// StatusChanged is the payload of MessageStatus events.
type StatusChanged struct {
	MessageRef
	Status string
}
