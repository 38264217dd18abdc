// Package postmark delivers messages through the Postmark HTTP API.
//
//	postmark+api://SERVER_TOKEN@default
//	postmark+api://SERVER_TOKEN@default?message_stream=broadcast
package postmark

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mrz1836/postmark"

	"github.com/dmitrymomot/courier/pkg/logger"
	"github.com/dmitrymomot/courier/pkg/transport"
)

// DefaultBaseURL is the Postmark API endpoint.
const DefaultBaseURL = "https://api.postmarkapp.com"

// ErrRejected indicates Postmark answered with a non-zero error code.
var ErrRejected = errors.New("postmark: message rejected")

// Transport implements transport.Transport using the Postmark API.
type Transport struct {
	client        *postmark.Client
	logger        *slog.Logger
	messageStream string
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

// WithMessageStream selects a Postmark message stream.
func WithMessageStream(stream string) Option {
	return func(t *Transport) {
		t.messageStream = stream
	}
}

// WithBaseURL points the client at a different API endpoint.
func WithBaseURL(u string) Option {
	return func(t *Transport) {
		if u != "" {
			t.client.BaseURL = strings.TrimSuffix(u, "/")
		}
	}
}

// New creates a Postmark transport authenticated with a server token.
func New(serverToken string, opts ...Option) *Transport {
	t := &Transport{
		client: postmark.NewClient(serverToken, ""),
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Send implements transport.Transport.
// On success the message ID is replaced with the one assigned by Postmark.
func (t *Transport) Send(ctx context.Context, msg *transport.SentMessage) error {
	p, err := transport.NewPayload(msg)
	if err != nil {
		return err
	}

	email := postmark.Email{
		From:          p.From,
		To:            strings.Join(p.To, ","),
		Cc:            strings.Join(p.Cc, ","),
		Bcc:           strings.Join(p.Bcc, ","),
		ReplyTo:       strings.Join(p.ReplyTo, ","),
		Subject:       p.Subject,
		HTMLBody:      p.HTML,
		TextBody:      p.Text,
		Metadata:      p.Metadata,
		MessageStream: t.messageStream,
	}
	// Postmark accepts a single tag.
	if len(p.Tags) > 0 {
		email.Tag = p.Tags[0]
	}
	for name, value := range p.Headers {
		email.Headers = append(email.Headers, postmark.Header{Name: name, Value: value})
	}
	for _, a := range p.Attachments {
		att := postmark.Attachment{
			Name:        a.Filename,
			Content:     base64.StdEncoding.EncodeToString(a.Content),
			ContentType: a.ContentType,
		}
		if a.Inline() {
			att.ContentID = "cid:" + a.ContentID
		}
		email.Attachments = append(email.Attachments, att)
	}

	resp, err := t.client.SendEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("postmark: failed to send email: %w", err)
	}
	if resp.ErrorCode > 0 {
		return fmt.Errorf("%w: %d - %s", ErrRejected, resp.ErrorCode, resp.Message)
	}

	if resp.MessageID != "" {
		msg.MessageID = resp.MessageID
	}
	t.logger.DebugContext(ctx, "postmark accepted message", slog.String("postmark_id", msg.MessageID))
	return nil
}

func (t *Transport) String() string {
	return "postmark+api://" + strings.TrimPrefix(strings.TrimPrefix(t.client.BaseURL, "https://"), "http://")
}

// Factory creates Postmark transports for the postmark and postmark+api schemes.
type Factory struct{}

// Supports implements transport.Factory.
func (Factory) Supports(dsn transport.Dsn) bool {
	return dsn.Scheme == "postmark" || dsn.Scheme == "postmark+api"
}

// Create implements transport.Factory. The DSN user is the server token.
func (Factory) Create(dsn transport.Dsn, fo transport.FactoryOptions) (transport.Transport, error) {
	if err := dsn.RequireUser(); err != nil {
		return nil, err
	}

	opts := []Option{
		WithLogger(fo.Logger),
		WithMessageStream(dsn.Option("message_stream")),
	}
	if !dsn.IsDefaultHost() {
		host := dsn.Host
		if dsn.Port > 0 {
			host = fmt.Sprintf("%s:%d", host, dsn.Port)
		}
		opts = append(opts, WithBaseURL("https://"+host))
	}
	return New(dsn.User, opts...), nil
}

var _ transport.Transport = (*Transport)(nil)
