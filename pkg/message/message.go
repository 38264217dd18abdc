package message

import (
	"net/textproto"
	"strings"

	"github.com/wneessen/go-mail"
)

// Message is anything the mail client can deliver.
type Message interface {
	// MIME returns the underlying MIME message.
	MIME() *mail.Msg
}

// Email is a MIME message with helpers for the text and HTML bodies.
type Email struct {
	*mail.Msg
}

// New creates an empty email.
func New(opts ...mail.MsgOption) *Email {
	return &Email{Msg: mail.NewMsg(opts...)}
}

// Wrap turns an existing go-mail message into an Email.
// A nil message yields an empty email.
func Wrap(m *mail.Msg) *Email {
	if m == nil {
		m = mail.NewMsg()
	}
	return &Email{Msg: m}
}

// MIME implements Message.
func (e *Email) MIME() *mail.Msg {
	return e.Msg
}

// TextBody returns the plain text body, or an empty string if there is none.
func (e *Email) TextBody() string {
	return Body(e.Msg, mail.TypeTextPlain)
}

// HTMLBody returns the HTML body, or an empty string if there is none.
func (e *Email) HTMLBody() string {
	return Body(e.Msg, mail.TypeTextHTML)
}

// SetTextBody replaces the plain text body and keeps the HTML body.
func (e *Email) SetTextBody(text string) {
	setBodies(e.Msg, text, e.HTMLBody())
}

// SetHTMLBody replaces the HTML body and keeps the plain text body.
func (e *Email) SetHTMLBody(html string) {
	setBodies(e.Msg, e.TextBody(), html)
}

// GetSubject returns the subject header value.
func (e *Email) GetSubject() string {
	return Subject(e.Msg)
}

// SetSubject sets the subject header.
func (e *Email) SetSubject(subject string) {
	e.Msg.Subject(subject)
}

// Body returns the content of the first part with the given content type.
func Body(m *mail.Msg, contentType mail.ContentType) string {
	if m == nil {
		return ""
	}
	for _, part := range m.GetParts() {
		if part.GetContentType() != contentType {
			continue
		}
		content, err := part.GetContent()
		if err != nil {
			return ""
		}
		return string(content)
	}
	return ""
}

// Subject returns the subject of m.
func Subject(m *mail.Msg) string {
	if m == nil {
		return ""
	}
	values := m.GetGenHeader(mail.HeaderSubject)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// HeaderValues returns the values of an arbitrary header.
// Address headers are returned in their RFC 5322 string form.
func HeaderValues(m *mail.Msg, name string) []string {
	if m == nil {
		return nil
	}
	if h, ok := AddressHeader(name); ok {
		addrs := m.GetAddrHeader(h)
		out := make([]string, 0, len(addrs))
		for _, a := range addrs {
			out = append(out, a.String())
		}
		return out
	}
	return m.GetGenHeader(HeaderName(name))
}

// knownHeaders keeps the spelling go-mail uses for headers whose canonical
// MIME form differs (Message-Id vs Message-ID).
var knownHeaders = []mail.Header{
	mail.HeaderSubject,
	mail.HeaderMessageID,
	mail.HeaderReplyTo,
	mail.HeaderDate,
	mail.HeaderInReplyTo,
	mail.HeaderReferences,
	mail.HeaderOrganization,
	mail.HeaderUserAgent,
	mail.HeaderXMailer,
	mail.HeaderPriority,
	mail.HeaderXPriority,
	mail.HeaderImportance,
}

// HeaderName returns the key go-mail stores a generic header under.
// Matching is case-insensitive.
func HeaderName(name string) mail.Header {
	name = strings.TrimSpace(name)
	for _, h := range knownHeaders {
		if strings.EqualFold(string(h), name) {
			return h
		}
	}
	return mail.Header(textproto.CanonicalMIMEHeaderKey(name))
}

// AddressHeader maps a header name to its go-mail address header.
// Matching is case-insensitive.
func AddressHeader(name string) (mail.AddrHeader, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "from":
		return mail.HeaderFrom, true
	case "to":
		return mail.HeaderTo, true
	case "cc":
		return mail.HeaderCc, true
	case "bcc":
		return mail.HeaderBcc, true
	}
	return "", false
}

// setBodies rebuilds the part list: text first, HTML as the alternative.
func setBodies(m *mail.Msg, text, html string) {
	switch {
	case text != "" && html != "":
		m.SetBodyString(mail.TypeTextPlain, text)
		m.AddAlternativeString(mail.TypeTextHTML, html)
	case html != "":
		m.SetBodyString(mail.TypeTextHTML, html)
	default:
		m.SetBodyString(mail.TypeTextPlain, text)
	}
}
