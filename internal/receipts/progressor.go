// Package receipts simulates delivery and read receipts for messages the
// user sends during a session.
package receipts

import (
	"context"
	"sync"
	"time"

	"github.com/matheus3301/mockmsg/internal/bus"
	"github.com/matheus3301/mockmsg/internal/mock"
	"go.uber.org/zap"
)

// StatusSetter updates the status of a session message.
type StatusSetter interface {
	SetStatus(chatID, msgID, status string) bool
}

type tracked struct {
	chatID string
	msgID  string
	sentAt time.Time
	status string
}

// Progressor advances tracked messages from sent to delivered to read.
type Progressor struct {
	mu             sync.Mutex
	setter         StatusSetter
	bus            *bus.Bus
	logger         *zap.Logger
	deliveredAfter time.Duration
	readAfter      time.Duration
	interval       time.Duration
	tracked        []*tracked
	onChange       func(chatID string)
	cancel         context.CancelFunc
}

// NewProgressor creates a progressor. A zero delay disables that stage;
// readAfter is measured from the send time.
func NewProgressor(setter StatusSetter, b *bus.Bus, logger *zap.Logger, deliveredAfter, readAfter time.Duration) *Progressor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Progressor{
		setter:         setter,
		bus:            b,
		logger:         logger,
		deliveredAfter: deliveredAfter,
		readAfter:      readAfter,
		interval:       250 * time.Millisecond,
	}
}

// Enabled reports whether any receipt stage is configured.
func (p *Progressor) Enabled() bool {
	return p.deliveredAfter > 0 || p.readAfter > 0
}

// SetOnChange sets a callback invoked with the chat id after a status moved.
func (p *Progressor) SetOnChange(fn func(chatID string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onChange = fn
}

// Track starts following a sent message.
func (p *Progressor) Track(chatID, msgID string, sentAt time.Time) {
	if !p.Enabled() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tracked = append(p.tracked, &tracked{chatID: chatID, msgID: msgID, sentAt: sentAt, status: mock.StatusSent})
}

// Reset forgets every tracked message.
func (p *Progressor) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tracked = nil
}

// Start begins advancing statuses in the background.
func (p *Progressor) Start(ctx context.Context) {
	if !p.Enabled() {
		return
	}
	ctx, p.cancel = context.WithCancel(ctx)
	go p.loop(ctx)
}

// Stop stops the background loop.
func (p *Progressor) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
}

func (p *Progressor) loop(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			p.Advance(now)
		case <-ctx.Done():
			return
		}
	}
}

// Advance moves every tracked message whose delay elapsed at now to its next
// status and returns how many changed.
func (p *Progressor) Advance(now time.Time) int {
	p.mu.Lock()
	var changed []*tracked
	kept := p.tracked[:0]
	for _, t := range p.tracked {
		next := p.next(t, now)
		if next != t.status {
			t.status = next
			changed = append(changed, &tracked{chatID: t.chatID, msgID: t.msgID, status: next})
		}
		if t.status != mock.StatusRead && !(t.status == mock.StatusDelivered && p.readAfter <= 0) {
			kept = append(kept, t)
		}
	}
	p.tracked = kept
	onChange := p.onChange
	p.mu.Unlock()

	n := 0
	for _, c := range changed {
		if !p.setter.SetStatus(c.chatID, c.msgID, c.status) {
			continue
		}
		n++
		p.logger.Debug("receipt", zap.String("chat", c.chatID), zap.String("msg_id", c.msgID), zap.String("status", c.status))
		p.bus.Emit(bus.MessageStatus, bus.StatusChanged{
			MessageRef: bus.MessageRef{ChatID: c.chatID, MessageID: c.msgID},
			Status:     c.status,
		})
		if onChange != nil {
			onChange(c.chatID)
		}
	}
	return n
}

func (p *Progressor) next(t *tracked, now time.Time) string {
	elapsed := now.Sub(t.sentAt)
	if p.readAfter > 0 && elapsed >= p.readAfter {
		return mock.StatusRead
	}
	if p.deliveredAfter > 0 && elapsed >= p.deliveredAfter && t.status == mock.StatusSent {
		return mock.StatusDelivered
	}
	return t.status
}
