package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/matheus3301/mockmsg/internal/bus"
	"github.com/matheus3301/mockmsg/internal/mock"
	"github.com/matheus3301/mockmsg/internal/receipts"
	"github.com/matheus3301/mockmsg/internal/trigger"
	"github.com/matheus3301/mockmsg/internal/tui/ui"
	"go.uber.org/zap"
)

var (
	// ErrNoChat is returned by chat operations while no chat is open.
	ErrNoChat = errors.New("no chat open")
	// ErrEmptyMessage is returned when sending only whitespace.
	ErrEmptyMessage = errors.New("message is empty")
)

// Store loads and saves the app data blob.
type Store interface {
	Load() (mock.AppData, error)
	Save(mock.AppData) error
}

// Deps are the collaborators of a ViewModel.
type Deps struct {
	Store    Store
	Session  *mock.Session
	Receipts *receipts.Progressor
	Bus      *bus.Bus
	Logger   *zap.Logger
	// After replaces time.AfterFunc for trigger timers, for tests.
	After trigger.AfterFunc
	// Now replaces time.Now, for tests.
	Now func() time.Time
}

// ViewModel holds the state the views render and applies user actions:
// the persisted app data, the session, the open chat and film mode.
//
// vm.mu is never held while calling into the scheduler, whose callbacks read
// the app data back through vm.
type ViewModel struct {
	mu sync.RWMutex

	store    Store
	session  *mock.Session
	sched    *trigger.Scheduler
	receipts *receipts.Progressor
	bus      *bus.Bus
	logger   *zap.Logger
	now      func() time.Time

	data       mock.AppData
	activeChat string
	filmSince  time.Time

	Flash *ui.FlashModel

	refreshCh chan struct{}
	cancel    context.CancelFunc
}

// NewViewModel creates a view model. Call Load before rendering.
func NewViewModel(d Deps) *ViewModel {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Session == nil {
		d.Session = mock.NewSession()
	}
	vm := &ViewModel{
		store:     d.Store,
		session:   d.Session,
		receipts:  d.Receipts,
		bus:       d.Bus,
		logger:    d.Logger,
		now:       d.Now,
		data:      mock.Default(),
		Flash:     ui.NewFlashModel(d.Now),
		refreshCh: make(chan struct{}, 1),
	}
	vm.sched = trigger.NewScheduler(d.Session, d.Bus, d.Logger, trigger.Options{
		NewID:     vm.newMessageID,
		OnTyping:  func(string, bool) { vm.signalRefresh() },
		OnDeliver: func(string, mock.Message) { vm.signalRefresh() },
		After:     d.After,
	})
	if vm.receipts != nil {
		vm.receipts.SetOnChange(func(string) { vm.signalRefresh() })
	}
	return vm
}

// RefreshCh returns the channel that signals UI refresh.
func (vm *ViewModel) RefreshCh() <-chan struct{} {
	return vm.refreshCh
}

func (vm *ViewModel) signalRefresh() {
	select {
	case vm.refreshCh <- struct{}{}:
	default:
	}
}

// Start forwards bus events into refresh signals until ctx is done.
func (vm *ViewModel) Start(ctx context.Context) {
	ctx, vm.cancel = context.WithCancel(ctx)
	if vm.bus == nil {
		return
	}
	events, unsubscribe := vm.bus.Subscribe("", 64)
	go func() {
		defer unsubscribe()
		for {
			select {
			case <-events:
				vm.signalRefresh()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop cancels pending triggers and the event forwarder.
func (vm *ViewModel) Stop() {
	vm.sched.Disarm()
	if vm.cancel != nil {
		vm.cancel()
	}
}

// Load reads the persisted app data.
func (vm *ViewModel) Load() error {
	d, err := vm.store.Load()
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.data = d
	vm.mu.Unlock()
	vm.signalRefresh()
	return nil
}

// Data returns a copy of the current app data.
func (vm *ViewModel) Data() mock.AppData {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.data.Clone()
}

// Contacts returns the contact list in catalog order.
func (vm *ViewModel) Contacts() []mock.Contact {
	return vm.Data().Contacts
}

// SystemStatus returns the simulated phone status.
func (vm *ViewModel) SystemStatus() mock.SystemStatus {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.data.SystemStatus
}

// DarkMode reports whether the dark theme is selected.
func (vm *ViewModel) DarkMode() bool {
	return vm.SystemStatus().DarkMode
}

// ChatMessages returns the persisted messages of a chat followed by its
// session messages.
func (vm *ViewModel) ChatMessages(chatID string) []mock.Message {
	vm.mu.RLock()
	persisted := vm.data.Chats[chatID]
	vm.mu.RUnlock()
	return mock.Merge(persisted, vm.session.Messages(chatID))
}

// LastMessage returns the newest message of a chat.
func (vm *ViewModel) LastMessage(chatID string) (mock.Message, bool) {
	msgs := vm.ChatMessages(chatID)
	if len(msgs) == 0 {
		return mock.Message{}, false
	}
	return msgs[len(msgs)-1], true
}

// FindMessage looks a message up in a chat's merged sequence.
func (vm *ViewModel) FindMessage(chatID, msgID string) (mock.Message, bool) {
	for _, m := range vm.ChatMessages(chatID) {
		if m.ID == msgID {
			return m, true
		}
	}
	return mock.Message{}, false
}

// SenderName returns "me" for outgoing messages and the contact name
// otherwise, falling back to the raw sender id.
func (vm *ViewModel) SenderName(m mock.Message) string {
	if m.From == mock.Me {
		return mock.Me
	}
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	if c, ok := vm.data.Contact(m.From); ok {
		return c.Name
	}
	return m.From
}

// ActiveChat returns the id of the open chat, or "".
func (vm *ViewModel) ActiveChat() string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.activeChat
}

// ActiveContact returns the contact of the open chat.
func (vm *ViewModel) ActiveContact() (mock.Contact, bool) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	if vm.activeChat == "" {
		return mock.Contact{}, false
	}
	return vm.data.Contact(vm.activeChat)
}

// OpenChat makes chatID the open chat and arms its timer triggers.
func (vm *ViewModel) OpenChat(chatID string) error {
	vm.mu.Lock()
	if _, ok := vm.data.Contact(chatID); !ok {
		vm.mu.Unlock()
		return fmt.Errorf("open chat %q: unknown contact", chatID)
	}
	prev := vm.activeChat
	vm.activeChat = chatID
	triggers := vm.data.TriggersFor(chatID)
	vm.mu.Unlock()

	if prev != "" && prev != chatID {
		vm.sched.Disarm()
	}
	n := vm.sched.Arm(chatID, triggers)
	vm.logger.Debug("chat opened", zap.String("chat", chatID), zap.Int("armed", n))
	vm.signalRefresh()
	return nil
}

// CloseChat leaves the open chat and cancels its pending triggers.
func (vm *ViewModel) CloseChat() {
	vm.mu.Lock()
	vm.activeChat = ""
	vm.mu.Unlock()
	vm.sched.Disarm()
	vm.signalRefresh()
}

// IsTyping reports whether the chat shows the typing indicator.
func (vm *ViewModel) IsTyping(chatID string) bool {
	return vm.sched.IsTyping(chatID)
}

// Send appends an outgoing session message to the open chat.
func (vm *ViewModel) Send(text string) (mock.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return mock.Message{}, ErrEmptyMessage
	}
	chatID := vm.ActiveChat()
	if chatID == "" {
		return mock.Message{}, ErrNoChat
	}

	now := vm.now()
	m := mock.NewOutgoing(vm.newMessageID(chatID), text, now)
	vm.session.Add(chatID, m)
	vm.bus.Emit(bus.SessionMessageAdded, bus.MessageRef{ChatID: chatID, MessageID: m.ID})
	if vm.receipts != nil {
		vm.receipts.Track(chatID, m.ID, now)
	}
	vm.signalRefresh()
	return m, nil
}

// TapTrigger fires the next tap trigger of the open chat. It reports false
// when none is left.
func (vm *ViewModel) TapTrigger() (bool, error) {
	vm.mu.RLock()
	chatID := vm.activeChat
	triggers := vm.data.TriggersFor(chatID)
	vm.mu.RUnlock()
	if chatID == "" {
		return false, ErrNoChat
	}
	return vm.sched.Tap(chatID, triggers), nil
}

// TriggerAll delivers the message of every trigger right away and returns
// how many were delivered.
func (vm *ViewModel) TriggerAll() int {
	vm.mu.RLock()
	triggers := vm.data.Clone().FakeTriggers
	vm.mu.RUnlock()
	n := vm.sched.FireAll(triggers)
	vm.signalRefresh()
	return n
}

// ResetSession drops all session messages and fired triggers. Timer
// triggers of the open chat arm again.
func (vm *ViewModel) ResetSession() {
	vm.sched.Disarm()
	vm.session.Reset()
	if vm.receipts != nil {
		vm.receipts.Reset()
	}
	vm.bus.Emit(bus.SessionReset, nil)
	vm.logger.Info("session reset")

	vm.mu.RLock()
	chatID := vm.activeChat
	triggers := vm.data.TriggersFor(chatID)
	vm.mu.RUnlock()
	if chatID != "" {
		vm.sched.Arm(chatID, triggers)
	}
	vm.signalRefresh()
}

// Update validates and persists d as the new app data. On failure the
// current data stays untouched.
func (vm *ViewModel) Update(d mock.AppData) error {
	if clashes := vm.session.Collisions(d); len(clashes) > 0 {
		return &mock.ValidationError{Problems: clashes}
	}
	if err := vm.store.Save(d); err != nil {
		return err
	}
	vm.apply(d.Clone())
	vm.bus.Emit(bus.DataSaved, nil)
	return nil
}

// UpdateJSON parses an edited AppData document and persists it.
func (vm *ViewModel) UpdateJSON(text string) error {
	d, err := mock.DecodeValid([]byte(text))
	if err != nil {
		return err
	}
	return vm.Update(d)
}

// SaveContacts replaces the contact list. Chats and triggers of removed
// contacts are dropped with it.
func (vm *ViewModel) SaveContacts(contacts []mock.Contact) error {
	return vm.Update(vm.Data().WithContacts(contacts))
}

// SetSystemStatus replaces the simulated phone status.
func (vm *ViewModel) SetSystemStatus(s mock.SystemStatus) error {
	return vm.Update(vm.Data().WithSystemStatus(s))
}

// RestoreDefaults replaces the app data with the built-in dataset.
func (vm *ViewModel) RestoreDefaults() error {
	return vm.Update(mock.Default())
}

// Reload installs data that was already persisted elsewhere, such as a
// scenario file.
func (vm *ViewModel) Reload(d mock.AppData) {
	if n := vm.session.Reassign(d); n > 0 {
		vm.logger.Warn("session message ids reassigned", zap.Int("count", n))
	}
	vm.apply(d.Clone())
}

// apply swaps the data in. The open chat is closed when its contact is gone,
// otherwise its triggers are re-armed against the new catalog.
func (vm *ViewModel) apply(d mock.AppData) {
	vm.mu.Lock()
	vm.data = d
	chatID := vm.activeChat
	_, stillThere := d.Contact(chatID)
	if chatID != "" && !stillThere {
		vm.activeChat = ""
	}
	triggers := d.TriggersFor(chatID)
	vm.mu.Unlock()

	if chatID != "" {
		vm.sched.Disarm()
		if stillThere {
			vm.sched.Arm(chatID, triggers)
		}
	}
	vm.signalRefresh()
}

// ToggleFilm switches film mode and reports whether it is now on.
func (vm *ViewModel) ToggleFilm() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.filmSince.IsZero() {
		vm.filmSince = vm.now()
		return true
	}
	vm.filmSince = time.Time{}
	return false
}

// Filming returns how long film mode has been on and whether it is on.
func (vm *ViewModel) Filming() (time.Duration, bool) {
	vm.mu.RLock()
	since := vm.filmSince
	vm.mu.RUnlock()
	if since.IsZero() {
		return 0, false
	}
	return vm.now().Sub(since), true
}

// newMessageID must not be called with vm.mu held.
func (vm *ViewModel) newMessageID(chatID string) string {
	vm.mu.RLock()
	d := vm.data
	vm.mu.RUnlock()
	return vm.session.NewMessageID(d, chatID)
}
