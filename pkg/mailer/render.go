package mailer

import (
	"log/slog"

	"github.com/wneessen/go-mail"

	"github.com/dmitrymomot/courier/pkg/message"
	"github.com/dmitrymomot/courier/pkg/sanitizer"
)

// MessageKey is the template variable holding the message being rendered,
// so templates can read its headers.
const MessageKey = "message"

// Render renders the text and HTML templates of msg into its bodies using the
// message locale. A message that has already been rendered is left alone.
// The message is marked rendered even when it has only one template.
// View errors are returned unchanged and leave the message unrendered.
func (m *Mailer) Render(msg message.Templated) error {
	if msg.IsRendered() {
		return nil
	}

	m.renderMu.Lock()
	defer m.renderMu.Unlock()

	if msg.IsRendered() {
		return nil
	}

	v := m.View()
	locale := msg.Locale()

	data := msg.Context()
	if data == nil {
		data = make(map[string]any, 1)
	}
	data[MessageKey] = msg

	if name := msg.TextTemplate(); name != "" {
		text, err := v.Render(name, data, locale)
		if err != nil {
			return err
		}
		msg.SetTextBody(text)
	}

	var html string
	if name := msg.HTMLTemplate(); name != "" {
		var err error
		html, err = v.Render(name, data, locale)
		if err != nil {
			return err
		}
		msg.SetHTMLBody(html)
	}

	if m.cfg.TextFromHTML && html != "" && message.Body(msg.MIME(), mail.TypeTextPlain) == "" {
		msg.SetTextBody(sanitizer.HTMLToText(html))
	}

	msg.MarkAsRendered()

	m.logger.Debug("email rendered",
		slog.String("text_template", msg.TextTemplate()),
		slog.String("html_template", msg.HTMLTemplate()),
	)

	return nil
}
