// Package recorder provides a transport that keeps messages in memory instead
// of delivering them.
//
// It is meant for tests: configure the mailer with the "array" DSN (or pass a
// recorder explicitly) and inspect what would have been sent:
//
//	rec := recorder.New()
//	m := mailer.New(mailer.Config{}, mailer.WithTransport(rec))
//	_ = m.Send(ctx, email, nil)
//
//	last := rec.Last()
//	welcome := rec.Filter(func(msg message.Message) bool {
//		return message.Subject(msg.MIME()) == "Welcome"
//	})
package recorder

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrymomot/courier/pkg/message"
	"github.com/dmitrymomot/courier/pkg/transport"
)

// Scheme is the DSN scheme that selects the recorder.
const Scheme = "array"

// Transport records every message it receives, in order.
type Transport struct {
	messages []message.Message
	mu       sync.RWMutex
}

// New creates an empty recorder.
func New() *Transport {
	return &Transport{}
}

// Send implements transport.Transport. It stores the original message,
// not a transformed copy, so templated messages keep their template state.
func (t *Transport) Send(_ context.Context, msg *transport.SentMessage) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.messages = append(t.messages, msg.Original)
	return nil
}

func (t *Transport) String() string {
	return Scheme + "://"
}

// Messages returns all recorded messages in the order they were sent.
func (t *Transport) Messages() []message.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return slices.Clone(t.messages)
}

// Len returns the number of recorded messages.
func (t *Transport) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.messages)
}

// Last returns the most recently recorded message, or nil if there is none.
func (t *Transport) Last() message.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(t.messages) == 0 {
		return nil
	}
	return t.messages[len(t.messages)-1]
}

// Clear removes all recorded messages.
func (t *Transport) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.messages = nil
}

// Filter returns, in send order, the recorded messages for which keep returns true.
func (t *Transport) Filter(keep func(message.Message) bool) []message.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []message.Message
	for _, msg := range t.messages {
		if keep(msg) {
			out = append(out, msg)
		}
	}
	return out
}

var _ transport.Transport = (*Transport)(nil)
