// Package resend delivers messages through the Resend HTTP API.
//
//	resend+api://API_KEY@default
package resend

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/courier/pkg/logger"
	"github.com/dmitrymomot/courier/pkg/transport"
)

// Transport implements transport.Transport using the Resend API.
type Transport struct {
	client *resend.Client
	logger *slog.Logger
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

// WithBaseURL points the client at a different API endpoint.
func WithBaseURL(u *url.URL) Option {
	return func(t *Transport) {
		if u != nil {
			t.client.BaseURL = u
		}
	}
}

// New creates a Resend transport.
func New(apiKey string, opts ...Option) *Transport {
	t := &Transport{
		client: resend.NewClient(apiKey),
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Send implements transport.Transport.
// On success the message ID is replaced with the one assigned by Resend.
func (t *Transport) Send(ctx context.Context, msg *transport.SentMessage) error {
	p, err := transport.NewPayload(msg)
	if err != nil {
		return err
	}

	req := &resend.SendEmailRequest{
		From:    p.From,
		To:      p.To,
		Subject: p.Subject,
		Html:    p.HTML,
		Text:    p.Text,
		Cc:      p.Cc,
		Bcc:     p.Bcc,
		ReplyTo: strings.Join(p.ReplyTo, ", "),
		Headers: p.Headers,
	}

	if len(p.Attachments) > 0 {
		req.Attachments = convertAttachments(p.Attachments)
	}
	if len(p.Tags) > 0 || len(p.Metadata) > 0 {
		req.Tags = convertTags(p.Tags, p.Metadata)
	}

	resp, err := t.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}

	if resp != nil && resp.Id != "" {
		msg.MessageID = resp.Id
	}
	t.logger.DebugContext(ctx, "resend accepted message", slog.String("resend_id", msg.MessageID))
	return nil
}

func (t *Transport) String() string {
	return "resend+api://" + t.client.BaseURL.Host
}

func convertAttachments(attachments []transport.Attachment) []*resend.Attachment {
	result := make([]*resend.Attachment, len(attachments))
	for i, a := range attachments {
		result[i] = &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
			ContentId:   a.ContentID,
		}
	}
	return result
}

// convertTags maps bare tags to name="true" and metadata to name/value pairs.
func convertTags(tags []string, metadata map[string]string) []resend.Tag {
	result := make([]resend.Tag, 0, len(tags)+len(metadata))
	for _, name := range tags {
		result = append(result, resend.Tag{Name: name, Value: "true"})
	}
	for name, value := range metadata {
		result = append(result, resend.Tag{Name: name, Value: value})
	}
	return result
}

// Factory creates Resend transports for the resend and resend+api schemes.
type Factory struct{}

// Supports implements transport.Factory.
func (Factory) Supports(dsn transport.Dsn) bool {
	return dsn.Scheme == "resend" || dsn.Scheme == "resend+api"
}

// Create implements transport.Factory. The DSN user is the API key; a
// non-default host overrides the API endpoint.
func (Factory) Create(dsn transport.Dsn, fo transport.FactoryOptions) (transport.Transport, error) {
	if err := dsn.RequireUser(); err != nil {
		return nil, err
	}

	opts := []Option{WithLogger(fo.Logger)}
	if !dsn.IsDefaultHost() {
		host := dsn.Host
		if dsn.Port > 0 {
			host = fmt.Sprintf("%s:%d", host, dsn.Port)
		}
		opts = append(opts, WithBaseURL(&url.URL{Scheme: "https", Host: host, Path: "/"}))
	}
	return New(dsn.User, opts...), nil
}

var _ transport.Transport = (*Transport)(nil)
