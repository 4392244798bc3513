package mock

// Me is the sender reference used for outgoing messages.
const Me = "me"

// Delivery statuses of a message.
const (
	StatusSent      = "sent"
	StatusDelivered = "delivered"
	StatusRead      = "read"
)

// Trigger activation modes.
const (
	TriggerTimer = "timer"
	TriggerTap   = "tap"
)

// Contact is a chat partner. Its id doubles as the chat id.
type Contact struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Photo  string `json:"photo,omitempty"`
	Status string `json:"status,omitempty"`
}

// Message is a single chat message. From is Me or a contact id.
type Message struct {
	ID     string `json:"id" validate:"required"`
	From   string `json:"from" validate:"required"`
	Text   string `json:"text"`
	Time   string `json:"time"`
	Status string `json:"status,omitempty" validate:"omitempty,oneof=sent delivered read"`
}

// ScriptedMessage is a message template without an id. The id is assigned
// when a trigger delivers it.
type ScriptedMessage struct {
	From   string `json:"from" validate:"required"`
	Text   string `json:"text"`
	Time   string `json:"time"`
	Status string `json:"status,omitempty" validate:"omitempty,oneof=sent delivered read"`
}

// WithID turns the template into a concrete message.
func (s ScriptedMessage) WithID(id string) Message {
	return Message{ID: id, From: s.From, Text: s.Text, Time: s.Time, Status: s.Status}
}

// FakeTrigger injects a scripted incoming message into a chat, either after
// DelaySec seconds (timer) or on explicit tap.
type FakeTrigger struct {
	ID             string          `json:"id" validate:"required"`
	ChatID         string          `json:"chatId" validate:"required"`
	Type           string          `json:"type" validate:"required,oneof=timer tap"`
	DelaySec       *float64        `json:"delaySec,omitempty" validate:"omitempty,gte=0,lte=86400"`
	Message        ScriptedMessage `json:"message"`
	ShowTyping     bool            `json:"showTyping,omitempty"`
	TypingDuration *float64        `json:"typingDuration,omitempty" validate:"omitempty,gte=0,lte=86400"`
}

// Battery is the simulated battery indicator.
type Battery struct {
	Percent  int  `json:"percent" validate:"gte=0,lte=100"`
	Charging bool `json:"charging"`
}

// Network is the simulated cellular network label.
type Network struct {
	Type     string `json:"type"`
	Provider string `json:"provider"`
}

// SystemStatus drives the fake phone status bar and the theme.
type SystemStatus struct {
	Time     string  `json:"time"`
	Battery  Battery `json:"battery"`
	Wifi     int     `json:"wifi" validate:"gte=0,lte=4"`
	Network  Network `json:"network"`
	DarkMode bool    `json:"darkMode"`
}

// AppData is the whole persisted state.
type AppData struct {
	Contacts     []Contact            `json:"contacts" validate:"dive"`
	Chats        map[string][]Message `json:"chats" validate:"dive,dive"`
	FakeTriggers []FakeTrigger        `json:"fakeTriggers" validate:"dive"`
	SystemStatus SystemStatus         `json:"systemStatus"`
}
