package transport

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"

	"github.com/dmitrymomot/courier/pkg/logger"
	"github.com/dmitrymomot/courier/pkg/message"
)

// Observer is notified after every delivery attempt.
type Observer interface {
	ObserveSend(transport string, duration time.Duration, err error)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver adds a delivery observer.
func WithObserver(obs Observer) ClientOption {
	return func(c *Client) {
		if obs != nil {
			c.observers = append(c.observers, obs)
		}
	}
}

// Client is the mail client: it prepares messages and hands them to a transport.
type Client struct {
	transport Transport
	logger    *slog.Logger
	observers []Observer
}

// NewClient creates a mail client delivering through t.
func NewClient(t Transport, opts ...ClientOption) *Client {
	c := &Client{
		transport: t,
		logger:    logger.NewNope(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Transport returns the transport the client delivers through.
func (c *Client) Transport() Transport {
	return c.transport
}

// Send delivers msg. When env is nil the envelope is derived from the message headers.
// Missing Date and Message-ID headers are added before delivery.
func (c *Client) Send(ctx context.Context, msg message.Message, env *Envelope) (*SentMessage, error) {
	if msg == nil || msg.MIME() == nil {
		return nil, ErrNilMessage
	}

	var envelope Envelope
	if env != nil {
		envelope = *env
		if err := envelope.Validate(); err != nil {
			return nil, err
		}
	} else {
		derived, err := EnvelopeFromMessage(msg)
		if err != nil {
			return nil, err
		}
		envelope = derived
	}

	m := msg.MIME()
	if len(m.GetGenHeader(mail.HeaderDate)) == 0 {
		m.SetDate()
	}

	messageID := messageIDOf(m)
	if messageID == "" {
		messageID = newMessageID(envelope.SenderAddress())
		m.SetGenHeader(mail.HeaderMessageID, "<"+messageID+">")
	}

	sent := &SentMessage{
		Original:  msg,
		Envelope:  envelope,
		MessageID: messageID,
	}

	ctx = logger.WithMessageID(ctx, messageID)
	name := c.transport.String()

	start := time.Now()
	err := c.transport.Send(ctx, sent)
	elapsed := time.Since(start)

	for _, obs := range c.observers {
		obs.ObserveSend(name, elapsed, err)
	}

	if err != nil {
		c.logger.ErrorContext(ctx, "email delivery failed",
			slog.String("transport", name),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.DebugContext(ctx, "email sent",
		slog.String("transport", name),
		slog.Int("recipients", len(envelope.Recipients)),
		slog.Duration("duration", elapsed),
	)

	return sent, nil
}

func messageIDOf(m *mail.Msg) string {
	values := m.GetGenHeader(mail.HeaderMessageID)
	if len(values) == 0 {
		return ""
	}
	return strings.Trim(values[0], "<>")
}

// newMessageID builds "<uuid>@<sender domain>".
func newMessageID(sender string) string {
	domain := "localhost"
	if at := strings.LastIndex(sender, "@"); at >= 0 && at < len(sender)-1 {
		domain = sender[at+1:]
	}
	return uuid.NewString() + "@" + domain
}
