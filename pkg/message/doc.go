// Package message defines the email message model used by the mailer.
//
// Messages are backed by github.com/wneessen/go-mail. Email wraps *mail.Msg and
// keeps the plain text and HTML parts consistent, so callers can set either
// body independently:
//
//	email := message.New()
//	_ = email.From("noreply@example.com")
//	_ = email.To("user@example.com")
//	email.Subject("Welcome")
//	email.SetTextBody("Hello!")
//	email.SetHTMLBody("<p>Hello!</p>")
//
// # Templated Messages
//
// TemplatedEmail defers its bodies to named view templates. The mailer renders
// them once, right before delivery:
//
//	email := message.NewTemplated()
//	email.SetTextTemplate("welcome")
//	email.SetHTMLTemplate("welcome-html")
//	email.SetContext(map[string]any{"name": "John"})
//	email.SetLocale("de")
//
// Any type implementing Templated is treated the same way, which lets
// applications define their own message types by composing Email with a
// Templating record.
package message
