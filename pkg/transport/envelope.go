package transport

import (
	"fmt"
	netmail "net/mail"

	"github.com/dmitrymomot/courier/pkg/message"
)

// Envelope holds SMTP-level addressing, distinct from the message headers.
type Envelope struct {
	// Sender is the bounce address (MAIL FROM).
	Sender string
	// Recipients are the delivery addresses (RCPT TO).
	Recipients []string
}

// EnvelopeFromMessage derives an envelope from the message headers.
// The sender is the envelope-from address when set, the From address otherwise.
// Recipients are To, Cc and Bcc.
func EnvelopeFromMessage(msg message.Message) (Envelope, error) {
	m := msg.MIME()

	var env Envelope
	if sender, err := m.GetSender(false); err == nil {
		env.Sender = sender
	}
	if rcpts, err := m.GetRecipients(); err == nil {
		env.Recipients = rcpts
	}

	return env, env.Validate()
}

// Validate checks that the envelope has a parsable sender and at least one recipient.
func (e Envelope) Validate() error {
	if e.Sender == "" {
		return ErrNoSender
	}
	if _, err := netmail.ParseAddress(e.Sender); err != nil {
		return fmt.Errorf("%w: sender %q: %v", ErrInvalidAddress, e.Sender, err)
	}
	if len(e.Recipients) == 0 {
		return ErrNoRecipients
	}
	for _, r := range e.Recipients {
		if _, err := netmail.ParseAddress(r); err != nil {
			return fmt.Errorf("%w: recipient %q: %v", ErrInvalidAddress, r, err)
		}
	}
	return nil
}

// SenderAddress returns the bare sender address.
func (e Envelope) SenderAddress() string {
	if a, err := netmail.ParseAddress(e.Sender); err == nil {
		return a.Address
	}
	return e.Sender
}

// RecipientAddresses returns the bare recipient addresses.
func (e Envelope) RecipientAddresses() []string {
	out := make([]string, 0, len(e.Recipients))
	for _, r := range e.Recipients {
		if a, err := netmail.ParseAddress(r); err == nil {
			out = append(out, a.Address)
			continue
		}
		out = append(out, r)
	}
	return out
}
