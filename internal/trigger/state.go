package trigger

import (
	"fmt"
	"slices"
	"sync"
)

// State is the lifecycle state of one trigger run.
type State string

const (
	Idle      State = "IDLE"
	Armed     State = "ARMED"
	Typing    State = "TYPING"
	Fired     State = "FIRED"
	Cancelled State = "CANCELLED"
)

// validTransitions defines allowed state transitions.
var validTransitions = map[State][]State{
	Idle:      {Armed},
	Armed:     {Typing, Fired, Cancelled},
	Typing:    {Fired, Cancelled},
	Fired:     {},
	Cancelled: {},
}

// Run tracks one pending delivery of a trigger and enforces its transitions.
type Run struct {
	mu        sync.Mutex
	triggerID string
	chatID    string
	current   State
	onChange  func(StateChange)
}

// StateChange is the payload for trigger state events.
type StateChange struct {
	TriggerID string
	ChatID    string
	From      State
	To        State
}

func newRun(triggerID, chatID string, onChange func(StateChange)) *Run {
	return &Run{triggerID: triggerID, chatID: chatID, current: Idle, onChange: onChange}
}

// Current returns the current state.
func (r *Run) Current() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Transition attempts to move to a new state. Returns error if transition is invalid.
func (r *Run) Transition(to State) error {
	r.mu.Lock()
	allowed := validTransitions[r.current]
	if !slices.Contains(allowed, to) {
		from := r.current
		r.mu.Unlock()
		return fmt.Errorf("trigger %s: invalid transition from %s to %s", r.triggerID, from, to)
	}
	change := StateChange{TriggerID: r.triggerID, ChatID: r.chatID, From: r.current, To: to}
	r.current = to
	r.mu.Unlock()

	if r.onChange != nil {
		r.onChange(change)
	}
	return nil
}
