// Package sendmail delivers messages by piping them to a local sendmail binary.
//
//	sendmail://default
//	sendmail://default?command=/usr/local/bin/msmtp
//
// The binary is invoked with -oi -t, so recipients are read from the headers.
// The envelope sender is passed with -f.
package sendmail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/wneessen/go-mail"

	"github.com/dmitrymomot/courier/pkg/logger"
	"github.com/dmitrymomot/courier/pkg/transport"
)

// DefaultCommand is the sendmail binary used when none is configured.
const DefaultCommand = mail.SendmailPath

// ErrEnvelopeRecipients indicates an envelope recipient override, which
// sendmail -t cannot honor.
var ErrEnvelopeRecipients = errors.New("sendmail: envelope recipients must match the message recipients")

// Transport pipes messages to sendmail.
type Transport struct {
	logger  *slog.Logger
	command string
}

// Option configures a Transport.
type Option func(*Transport)

// WithLogger sets the transport logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Transport) {
		if l != nil {
			t.logger = l
		}
	}
}

// New creates a sendmail transport. An empty command means DefaultCommand.
func New(command string, opts ...Option) *Transport {
	if command == "" {
		command = DefaultCommand
	}
	t := &Transport{command: command, logger: logger.NewNope()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Send implements transport.Transport.
func (t *Transport) Send(ctx context.Context, msg *transport.SentMessage) error {
	m := msg.Original.MIME()

	rcpts, err := m.GetRecipients()
	if err != nil {
		return ErrEnvelopeRecipients
	}
	want := msg.Envelope.RecipientAddresses()
	slices.Sort(rcpts)
	slices.Sort(want)
	if !slices.Equal(slices.Compact(rcpts), slices.Compact(want)) {
		return ErrEnvelopeRecipients
	}

	if err := m.WriteToSendmailWithContext(ctx, t.command, "-f", msg.Envelope.SenderAddress()); err != nil {
		return fmt.Errorf("sendmail: %s: %w", t.command, err)
	}

	t.logger.DebugContext(ctx, "message piped to sendmail", slog.String("command", t.command))
	return nil
}

func (t *Transport) String() string {
	return "sendmail://" + t.command
}

// Factory creates sendmail transports for the sendmail scheme.
type Factory struct{}

// Supports implements transport.Factory.
func (Factory) Supports(dsn transport.Dsn) bool {
	return dsn.Scheme == "sendmail"
}

// Create implements transport.Factory.
func (Factory) Create(dsn transport.Dsn, fo transport.FactoryOptions) (transport.Transport, error) {
	return New(dsn.Option("command"), WithLogger(fo.Logger)), nil
}

var _ transport.Transport = (*Transport)(nil)
