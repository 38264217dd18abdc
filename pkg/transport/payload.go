package transport

import (
	"bytes"
	"fmt"
	"mime"
	netmail "net/mail"
	"slices"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/dmitrymomot/courier/pkg/message"
)

// Header names understood by HTTP API transports.
const (
	// TagHeader carries a provider tag. Repeat it for several tags.
	TagHeader = "X-Tag"
	// MetadataHeaderPrefix prefixes key/value metadata headers, e.g. X-Metadata-User-ID.
	MetadataHeaderPrefix = "X-Metadata-"
)

// skippedHeaders are represented by dedicated Payload fields or set by the provider.
var skippedHeaders = []string{
	"From", "To", "Cc", "Bcc", "Reply-To", "Subject", "Sender", "Date",
	"Message-Id", "Mime-Version", "Content-Type", "Content-Transfer-Encoding",
	"Return-Path", "User-Agent", "X-Mailer", TagHeader,
}

// Payload is a flattened message for HTTP API providers.
type Payload struct {
	Headers     map[string]string // Custom headers
	Metadata    map[string]string // Values of X-Metadata-* headers, keyed by canonical suffix
	Tags        []string          // Values of X-Tag headers
	From        string
	Subject     string
	HTML        string
	Text        string
	To          []string // Envelope recipients not listed in Cc or Bcc
	Cc          []string
	Bcc         []string
	ReplyTo     []string
	Attachments []Attachment
}

// Attachment is a file attached to or embedded in a message.
type Attachment struct {
	Filename    string // Display name for the attachment
	ContentType string // MIME type (e.g., "application/pdf")
	ContentID   string // Content-ID for inline attachments, without angle brackets
	Content     []byte
}

// Inline reports whether the attachment is embedded in the HTML body.
func (a Attachment) Inline() bool {
	return a.ContentID != ""
}

// NewPayload flattens sent for API delivery. Envelope recipients drive the
// To list, so an envelope override is honored.
func NewPayload(sent *SentMessage) (*Payload, error) {
	m := sent.Original.MIME()

	p := &Payload{
		Subject:  message.Subject(m),
		Text:     message.Body(m, mail.TypeTextPlain),
		HTML:     message.Body(m, mail.TypeTextHTML),
		Cc:       formatAddresses(m.GetCc()),
		Bcc:      formatAddresses(m.GetBcc()),
		ReplyTo:  message.HeaderValues(m, string(mail.HeaderReplyTo)),
		Headers:  map[string]string{},
		Metadata: map[string]string{},
	}

	if from := m.GetFrom(); len(from) > 0 {
		p.From = formatAddress(from[0])
	} else {
		p.From = sent.Envelope.Sender
	}

	p.To = envelopeTo(sent.Envelope, m)

	if err := p.readHeaders(m); err != nil {
		return nil, err
	}

	files := append(m.GetAttachments(), m.GetEmbeds()...)
	for _, f := range files {
		var buf bytes.Buffer
		if _, err := f.Writer(&buf); err != nil {
			return nil, fmt.Errorf("transport: failed to read attachment %q: %w", f.Name, err)
		}
		p.Attachments = append(p.Attachments, Attachment{
			Filename:    f.Name,
			ContentType: string(f.ContentType),
			ContentID:   strings.Trim(f.Header.Get("Content-ID"), "<>"),
			Content:     buf.Bytes(),
		})
	}

	return p, nil
}

// readHeaders collects the headers not covered by other Payload fields.
// go-mail keeps generic headers private, so they are read back from the
// serialized message.
func (p *Payload) readHeaders(m *mail.Msg) error {
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return fmt.Errorf("transport: failed to serialize message: %w", err)
	}
	parsed, err := netmail.ReadMessage(&buf)
	if err != nil {
		return fmt.Errorf("transport: failed to read message headers: %w", err)
	}

	dec := new(mime.WordDecoder)
	for name, values := range parsed.Header {
		if slices.Contains(skippedHeaders, name) || len(values) == 0 {
			continue
		}
		decoded := make([]string, len(values))
		for i, v := range values {
			if d, err := dec.DecodeHeader(v); err == nil {
				v = d
			}
			decoded[i] = v
		}

		switch {
		case strings.HasPrefix(name, MetadataHeaderPrefix):
			p.Metadata[strings.TrimPrefix(name, MetadataHeaderPrefix)] = decoded[0]
		default:
			p.Headers[name] = strings.Join(decoded, ", ")
		}
	}

	p.Tags = append(p.Tags, m.GetGenHeader(TagHeader)...)
	return nil
}

func envelopeTo(env Envelope, m *mail.Msg) []string {
	names := map[string]string{}
	for _, a := range m.GetTo() {
		names[strings.ToLower(a.Address)] = formatAddress(a)
	}
	copied := map[string]bool{}
	for _, a := range append(m.GetCc(), m.GetBcc()...) {
		copied[strings.ToLower(a.Address)] = true
	}

	var to []string
	for _, r := range env.RecipientAddresses() {
		key := strings.ToLower(r)
		if copied[key] {
			continue
		}
		if named, ok := names[key]; ok {
			to = append(to, named)
			continue
		}
		to = append(to, r)
	}
	return to
}

func formatAddresses(addrs []*netmail.Address) []string {
	if len(addrs) == 0 {
		return nil
	}
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = formatAddress(a)
	}
	return out
}

// formatAddress renders a bare address when there is no display name.
func formatAddress(a *netmail.Address) string {
	if a.Name == "" {
		return a.Address
	}
	return a.String()
}
