package view

import (
	htmltemplate "html/template"
	"io"
	"maps"
	"path"
)

// HTMLExtension is the extension handled by HTMLRenderer.
const HTMLExtension = ".html"

// HTMLRenderer renders ".html" views with html/template, escaping data by
// context. Output of render, clip and the layout content is trusted.
type HTMLRenderer struct{}

// NewHTMLRenderer creates an html/template renderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Extension implements Renderer.
func (*HTMLRenderer) Extension() string {
	return HTMLExtension
}

// RenderFile implements Renderer.
func (*HTMLRenderer) RenderFile(v *View, file string, data map[string]any) (string, error) {
	loaded, err := v.Load("html", file, func(src []byte) (any, error) {
		return htmltemplate.New(path.Base(file)).Funcs(htmlFuncs(v)).Parse(string(src))
	})
	if err != nil {
		return "", err
	}
	tmpl, ok := loaded.(*htmltemplate.Template)
	if !ok {
		return "", mismatch(file, loaded)
	}

	if content, ok := data[ContentKey].(string); ok {
		data = maps.Clone(data)
		data[ContentKey] = htmltemplate.HTML(content) //nolint:gosec // rendered by this view
	}

	return v.Capture(func(w io.Writer) error {
		return tmpl.Execute(w, data)
	})
}

func htmlFuncs(v *View) htmltemplate.FuncMap {
	funcs := htmltemplate.FuncMap(v.Funcs())
	funcs["render"] = func(name string, data ...map[string]any) (htmltemplate.HTML, error) {
		var d map[string]any
		if len(data) > 0 {
			d = data[0]
		}
		out, err := v.RenderPartial(name, d)
		return htmltemplate.HTML(out), err //nolint:gosec // rendered by this view
	}
	funcs["clip"] = func(name string) htmltemplate.HTML {
		return htmltemplate.HTML(v.Clip(name)) //nolint:gosec // rendered by this view
	}
	return funcs
}
