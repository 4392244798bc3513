package mock

// Default returns the built-in dataset used on first start and whenever the
// stored blob cannot be used.
func Default() AppData {
	return AppData{
		Contacts: []Contact{
			{ID: "c1", Name: "Anna Meier", Status: "online"},
			{ID: "c2", Name: "Jonas Kramer", Status: "zuletzt heute um 14:22"},
		},
		Chats: map[string][]Message{
			"c1": {
				{ID: "m1", From: "c1", Text: "Bin gleich da!", Time: "14:21", Status: StatusRead},
				{ID: "m2", From: Me, Text: "Ok, ich warte.", Time: "14:22", Status: StatusRead},
			},
			"c2": {
				{ID: "m3", From: "c2", Text: "Hallo! Wie gehts?", Time: "09:15", Status: StatusRead},
			},
		},
		FakeTriggers: []FakeTrigger{
			{
				ID:             "t1",
				ChatID:         "c1",
				Type:           TriggerTimer,
				DelaySec:       Seconds(8),
				ShowTyping:     true,
				TypingDuration: Seconds(2),
				Message:        ScriptedMessage{From: "c1", Text: "Stehe vor der Tür.", Time: "14:23", Status: StatusDelivered},
			},
			{
				ID:      "t2",
				ChatID:  "c1",
				Type:    TriggerTap,
				Message: ScriptedMessage{From: "c1", Text: "Kannst du öffnen?", Time: "14:24", Status: StatusDelivered},
			},
		},
		SystemStatus: SystemStatus{
			Time:    "09:41",
			Battery: Battery{Percent: 78},
			Wifi:    3,
			Network: Network{Type: "5G", Provider: "MockTel"},
		},
	}
}

// Seconds returns a pointer to s, for the optional duration fields of a trigger.
func Seconds(s float64) *float64 {
	return &s
}
