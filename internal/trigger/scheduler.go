package trigger

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/matheus3301/mockmsg/internal/bus"
	"github.com/matheus3301/mockmsg/internal/mock"
	"go.uber.org/zap"
)

// Timer is a pending callback that can be stopped.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run after d.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Options configure a Scheduler.
type Options struct {
	// NewID returns a fresh message id for a chat.
	NewID func(chatID string) string
	// OnTyping is called when a chat's typing indicator turns on or off.
	OnTyping func(chatID string, typing bool)
	// OnDeliver is called after a scripted message was added to the session.
	OnDeliver func(chatID string, m mock.Message)
	// After replaces time.AfterFunc, for tests.
	After AfterFunc
}

type pending struct {
	trigger mock.FakeTrigger
	run     *Run
	timer   Timer
}

// Scheduler fires scripted trigger messages into the session, either when a
// timer expires or on an explicit tap, with an optional typing indicator in
// front.
type Scheduler struct {
	mu      sync.Mutex
	session *mock.Session
	bus     *bus.Bus
	logger  *zap.Logger
	opts    Options
	runs    map[string]*pending
	typing  map[string]int
}

// NewScheduler creates a scheduler that delivers into session.
func NewScheduler(session *mock.Session, b *bus.Bus, logger *zap.Logger, opts Options) *Scheduler {
	if opts.After == nil {
		opts.After = realAfterFunc
	}
	if opts.NewID == nil {
		opts.NewID = func(string) string { return "m" + uuid.NewString() }
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		session: session,
		bus:     b,
		logger:  logger,
		opts:    opts,
		runs:    make(map[string]*pending),
		typing:  make(map[string]int),
	}
}

// Arm starts the timers of every timer trigger of the chat that has not
// fired yet and is not already pending. It returns how many were armed.
func (s *Scheduler) Arm(chatID string, triggers []mock.FakeTrigger) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	armed := 0
	for _, t := range triggers {
		if t.ChatID != chatID || t.Type != mock.TriggerTimer {
			continue
		}
		if s.session.IsActive(t.ID) {
			continue
		}
		if _, ok := s.runs[t.ID]; ok {
			continue
		}
		p := s.start(t)
		p.timer = s.opts.After(t.Delay(), func() { s.expire(p) })
		armed++
		s.logger.Debug("trigger armed", zap.String("trigger", t.ID), zap.Duration("delay", t.Delay()))
	}
	return armed
}

// Tap fires the first tap trigger of the chat that has not fired yet and is
// not already pending. It reports false when none is left.
func (s *Scheduler) Tap(chatID string, triggers []mock.FakeTrigger) bool {
	s.mu.Lock()
	var next *pending
	for _, t := range triggers {
		if t.ChatID != chatID || t.Type != mock.TriggerTap {
			continue
		}
		if s.session.IsActive(t.ID) {
			continue
		}
		if _, ok := s.runs[t.ID]; ok {
			continue
		}
		next = s.start(t)
		break
	}
	s.mu.Unlock()

	if next == nil {
		return false
	}
	s.expire(next)
	return true
}

// FireAll delivers the message of every trigger into its chat right away.
// No typing indicator is shown and no trigger is marked active.
func (s *Scheduler) FireAll(triggers []mock.FakeTrigger) int {
	for _, t := range triggers {
		m := t.Message.WithID(s.opts.NewID(t.ChatID))
		s.session.Add(t.ChatID, m)
		s.bus.Emit(bus.TriggerFired, bus.MessageRef{ChatID: t.ChatID, MessageID: m.ID})
		if s.opts.OnDeliver != nil {
			s.opts.OnDeliver(t.ChatID, m)
		}
	}
	return len(triggers)
}

// Disarm cancels every pending run. Cancelled triggers are not marked active
// and arm again the next time their chat opens.
func (s *Scheduler) Disarm() {
	s.mu.Lock()
	var stopped []string
	for id, p := range s.runs {
		wasTyping := p.run.Current() == Typing
		if err := p.run.Transition(Cancelled); err != nil {
			continue
		}
		if p.timer != nil {
			p.timer.Stop()
		}
		if wasTyping {
			if s.typing[p.trigger.ChatID]--; s.typing[p.trigger.ChatID] <= 0 {
				delete(s.typing, p.trigger.ChatID)
				stopped = append(stopped, p.trigger.ChatID)
			}
		}
		delete(s.runs, id)
	}
	s.mu.Unlock()

	for _, chatID := range stopped {
		s.notifyTyping(chatID, false)
	}
}

// Pending returns the ids of triggers that are armed or typing.
func (s *Scheduler) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.runs))
	for id := range s.runs {
		ids = append(ids, id)
	}
	return ids
}

// State returns the state of a trigger's pending run, or Idle when none.
func (s *Scheduler) State(triggerID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.runs[triggerID]; ok {
		return p.run.Current()
	}
	return Idle
}

// IsTyping reports whether the chat currently shows a typing indicator.
func (s *Scheduler) IsTyping(chatID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typing[chatID] > 0
}

// start registers an armed run. Callers hold s.mu.
func (s *Scheduler) start(t mock.FakeTrigger) *pending {
	run := newRun(t.ID, t.ChatID, func(c StateChange) {
		s.bus.Emit(bus.TriggerStateChanged, c)
	})
	_ = run.Transition(Armed)
	p := &pending{trigger: t, run: run}
	s.runs[t.ID] = p
	return p
}

// expire runs when the delay of p elapsed: typing first if configured,
// otherwise delivery.
func (s *Scheduler) expire(p *pending) {
	typing := p.trigger.Typing()
	if typing <= 0 {
		s.deliver(p)
		return
	}

	s.mu.Lock()
	if err := p.run.Transition(Typing); err != nil {
		s.mu.Unlock()
		return
	}
	s.typing[p.trigger.ChatID]++
	p.timer = s.opts.After(typing, func() { s.deliver(p) })
	s.mu.Unlock()

	s.bus.Emit(bus.TriggerTyping, p.trigger.ChatID)
	s.notifyTyping(p.trigger.ChatID, true)
}

func (s *Scheduler) deliver(p *pending) {
	s.mu.Lock()
	wasTyping := p.run.Current() == Typing
	if err := p.run.Transition(Fired); err != nil {
		s.mu.Unlock()
		return
	}
	chatID := p.trigger.ChatID
	stopTyping := false
	if wasTyping {
		if s.typing[chatID]--; s.typing[chatID] <= 0 {
			delete(s.typing, chatID)
			stopTyping = true
		}
	}
	m := p.trigger.Message.WithID(s.opts.NewID(chatID))
	s.session.Add(chatID, m)
	s.session.Activate(p.trigger.ID)
	delete(s.runs, p.trigger.ID)
	s.mu.Unlock()

	s.logger.Info("trigger fired", zap.String("trigger", p.trigger.ID), zap.String("chat", chatID), zap.String("msg_id", m.ID))
	s.bus.Emit(bus.TriggerFired, bus.MessageRef{ChatID: chatID, MessageID: m.ID})
	if stopTyping {
		s.notifyTyping(chatID, false)
	}
	if s.opts.OnDeliver != nil {
		s.opts.OnDeliver(chatID, m)
	}
}

func (s *Scheduler) notifyTyping(chatID string, typing bool) {
	if s.opts.OnTyping != nil {
		s.opts.OnTyping(chatID, typing)
	}
}
