// Package markdown renders ".md" mail views.
//
// A view may start with YAML frontmatter, exposed to the template as
// {{.meta}}. The body is executed as a text/template with the view funcs,
// then converted to HTML by goldmark. Call-to-action links are written as
//
//	[!button|Verify Email]({{.url}})
//
// Use it as the alternate renderer of a view:
//
//	v := view.New(fsys, cfg, view.WithRenderer(markdown.New()))
package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"path"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/dmitrymomot/courier/pkg/view"
)

// Extension is the file extension handled by Renderer.
const Extension = ".md"

// MetaKey is the data key holding the frontmatter.
const MetaKey = "meta"

var (
	// ErrInvalidFrontmatter indicates malformed YAML frontmatter.
	ErrInvalidFrontmatter = errors.New("markdown: invalid frontmatter")

	// ErrConvert indicates goldmark failed to convert the rendered body.
	ErrConvert = errors.New("markdown: failed to convert to html")
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithButtonClass sets the CSS class of button links.
func WithButtonClass(class string) Option {
	return func(r *Renderer) {
		r.buttonClass = class
	}
}

// WithExtensions adds goldmark extensions.
func WithExtensions(ext ...goldmark.Extender) Option {
	return func(r *Renderer) {
		r.extensions = append(r.extensions, ext...)
	}
}

// Renderer is a view.Renderer for markdown views.
type Renderer struct {
	md          goldmark.Markdown
	buttonClass string
	extensions  []goldmark.Extender
}

type parsed struct {
	meta map[string]any
	tmpl *template.Template
}

// New creates a markdown renderer. Raw HTML in views is passed through.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}

	exts := append([]goldmark.Extender{
		ButtonExtension(r.buttonClass),
		extension.Table,
		extension.Strikethrough,
		extension.Linkify,
	}, r.extensions...)

	r.md = goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	return r
}

// Extension implements view.Renderer.
func (*Renderer) Extension() string {
	return Extension
}

// RenderFile implements view.Renderer.
func (r *Renderer) RenderFile(v *view.View, file string, data map[string]any) (string, error) {
	loaded, err := v.Load("markdown", file, func(src []byte) (any, error) {
		meta, body, err := SplitFrontmatter(src)
		if err != nil {
			return nil, err
		}
		tmpl, err := template.New(path.Base(file)).Funcs(v.Funcs()).Parse(string(body))
		if err != nil {
			return nil, err
		}
		return &parsed{meta: meta, tmpl: tmpl}, nil
	})
	if err != nil {
		return "", err
	}
	p, ok := loaded.(*parsed)
	if !ok {
		return "", fmt.Errorf("%w: %s: unexpected cached %T", view.ErrTemplateParse, file, loaded)
	}

	d := maps.Clone(data)
	if d == nil {
		d = make(map[string]any, 1)
	}
	d[MetaKey] = p.meta

	source, err := v.Capture(func(w io.Writer) error {
		return p.tmpl.Execute(w, d)
	})
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	if err := r.md.Convert([]byte(source), &out); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrConvert, file, err)
	}
	return out.String(), nil
}

var _ view.Renderer = (*Renderer)(nil)
