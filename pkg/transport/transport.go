package transport

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/courier/pkg/message"
)

// Transport delivers a prepared message.
type Transport interface {
	// Send delivers the message to the envelope recipients.
	Send(ctx context.Context, msg *SentMessage) error

	// String returns a display identity such as "smtp://mail.example.com:587".
	String() string
}

// SentMessage is a message on its way through a transport.
type SentMessage struct {
	// Original is the message as handed to the client.
	Original  message.Message
	Envelope  Envelope
	MessageID string
}

// Factory creates transports for the DSN schemes it supports.
type Factory interface {
	// Supports reports whether the factory handles the DSN scheme.
	Supports(dsn Dsn) bool

	// Create builds a transport for dsn.
	Create(dsn Dsn, opts FactoryOptions) (Transport, error)
}

// FactoryOptions carries dependencies shared by all factories.
type FactoryOptions struct {
	// Logger receives transport diagnostics. Nil disables logging.
	Logger *slog.Logger
}
