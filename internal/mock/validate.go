package mock

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// messageIDReserved are characters that would break the region tags message
// ids are rendered into.
const messageIDReserved = `"[]`

// ValidationError lists every relational problem found in an AppData.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid app data: " + strings.Join(e.Problems, "; ")
}

// Validate checks field rules and the relational invariants between
// contacts, chats and triggers.
func Validate(d AppData) error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("invalid app data: %w", err)
	}

	var problems []string
	contacts := make(map[string]struct{}, len(d.Contacts))
	for _, c := range d.Contacts {
		if _, dup := contacts[c.ID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate contact id %q", c.ID))
		}
		contacts[c.ID] = struct{}{}
	}

	for chatID, msgs := range d.Chats {
		if _, ok := contacts[chatID]; !ok {
			problems = append(problems, fmt.Sprintf("chat %q has no contact", chatID))
		}
		seen := make(map[string]struct{}, len(msgs))
		for _, m := range msgs {
			if strings.ContainsAny(m.ID, messageIDReserved) {
				problems = append(problems, fmt.Sprintf("message id %q in chat %q contains one of %s", m.ID, chatID, messageIDReserved))
			}
			if _, dup := seen[m.ID]; dup {
				problems = append(problems, fmt.Sprintf("duplicate message id %q in chat %q", m.ID, chatID))
			}
			seen[m.ID] = struct{}{}
		}
	}

	triggers := make(map[string]struct{}, len(d.FakeTriggers))
	for _, t := range d.FakeTriggers {
		if _, dup := triggers[t.ID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate trigger id %q", t.ID))
		}
		triggers[t.ID] = struct{}{}
		if _, ok := contacts[t.ChatID]; !ok {
			problems = append(problems, fmt.Sprintf("trigger %q references unknown chat %q", t.ID, t.ChatID))
		}
		if t.Type == TriggerTimer && t.DelaySec == nil {
			problems = append(problems, fmt.Sprintf("timer trigger %q has no delaySec", t.ID))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
