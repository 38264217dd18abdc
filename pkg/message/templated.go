package message

import (
	"maps"

	"github.com/wneessen/go-mail"
)

// Templated marks a message whose bodies are rendered from view templates.
type Templated interface {
	Message

	// TextTemplate returns the view name for the plain text body.
	TextTemplate() string
	// HTMLTemplate returns the view name for the HTML body.
	HTMLTemplate() string
	// Context returns the template variables.
	Context() map[string]any
	// Locale returns the locale to render with, or an empty string for the current one.
	Locale() string
	// IsRendered reports whether the templates have already been rendered.
	IsRendered() bool
	// MarkAsRendered flags the message as rendered.
	MarkAsRendered()

	SetTextBody(text string)
	SetHTMLBody(html string)
}

// Templating holds the template state of a templated message.
// Embed it next to an Email to satisfy Templated.
type Templating struct {
	context      map[string]any
	textTemplate string
	htmlTemplate string
	locale       string
	rendered     bool
}

// TextTemplate implements Templated.
func (t *Templating) TextTemplate() string { return t.textTemplate }

// HTMLTemplate implements Templated.
func (t *Templating) HTMLTemplate() string { return t.htmlTemplate }

// Locale implements Templated.
func (t *Templating) Locale() string { return t.locale }

// IsRendered implements Templated.
func (t *Templating) IsRendered() bool { return t.rendered }

// MarkAsRendered implements Templated.
func (t *Templating) MarkAsRendered() { t.rendered = true }

// Context returns a copy of the template variables.
func (t *Templating) Context() map[string]any {
	return maps.Clone(t.context)
}

// SetTextTemplate sets the view name for the plain text body.
func (t *Templating) SetTextTemplate(name string) { t.textTemplate = name }

// SetHTMLTemplate sets the view name for the HTML body.
func (t *Templating) SetHTMLTemplate(name string) { t.htmlTemplate = name }

// SetLocale sets the locale used while rendering.
func (t *Templating) SetLocale(locale string) { t.locale = locale }

// SetContext replaces the template variables.
func (t *Templating) SetContext(ctx map[string]any) { t.context = maps.Clone(ctx) }

// TemplatedEmail is an Email whose bodies come from view templates.
type TemplatedEmail struct {
	*Email
	Templating
}

// NewTemplated creates an empty templated email.
func NewTemplated(opts ...mail.MsgOption) *TemplatedEmail {
	return &TemplatedEmail{Email: New(opts...)}
}

var (
	_ Message   = (*Email)(nil)
	_ Templated = (*TemplatedEmail)(nil)
)
